package validate

import (
	"event_planner/model"

	"github.com/gofiber/fiber/v2"
)

func CreateGallery() fiber.Handler {
	return body[model.CreateGalleryInput]("inputCreateGallery")
}

func UpdateGallery() fiber.Handler {
	return body[model.UpdateGalleryInput]("inputUpdateGallery")
}

func PublishGallery() fiber.Handler {
	return body[model.PublishGalleryInput]("inputPublishGallery")
}

func GalleryFilter() fiber.Handler {
	return query[model.GalleryFilter]("inputGalleryFilter")
}
