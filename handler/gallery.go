package handler

import (
	"errors"
	"path/filepath"
	"strings"

	"event_planner/constants"
	"event_planner/model"
	"event_planner/utils"

	"github.com/gofiber/fiber/v2"
)

const maxImageSize = 5 * 1024 * 1024

var imageExtensions = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true}

func (h *Handler) PublicGallery(c *fiber.Ctx) error {
	filter, ok := input[model.GalleryFilter](c, "inputGalleryFilter")
	if !ok {
		return missingInput(c, "inputGalleryFilter")
	}
	cards, total, err := h.gallery.PublicList(c.UserContext(), filter)
	if err != nil {
		return h.handleError(c, err)
	}
	return listResponse(c, cards, filter.Pagination, total)
}

func (h *Handler) PublicGalleryDetail(c *fiber.Ctx) error {
	item, err := h.gallery.PublicDetail(c.UserContext(), c.Params("slug"))
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, item)
}

func (h *Handler) LikeGallery(c *fiber.Ctx) error {
	likes, err := h.gallery.Like(c.UserContext(), c.Params("slug"))
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"likes": likes})
}

func (h *Handler) ListGallery(c *fiber.Ctx) error {
	filter, ok := input[model.GalleryFilter](c, "inputGalleryFilter")
	if !ok {
		return missingInput(c, "inputGalleryFilter")
	}
	items, total, err := h.gallery.List(c.UserContext(), filter)
	if err != nil {
		return h.handleError(c, err)
	}
	return listResponse(c, items, filter.Pagination, total)
}

func (h *Handler) GetGallery(c *fiber.Ctx) error {
	item, err := h.gallery.Get(c.UserContext(), paramId(c, "id"))
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, item)
}

func (h *Handler) CreateGallery(c *fiber.Ctx) error {
	in, ok := input[model.CreateGalleryInput](c, "inputCreateGallery")
	if !ok {
		return missingInput(c, "inputCreateGallery")
	}
	item, err := h.gallery.Create(c.UserContext(), in)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, item)
}

func (h *Handler) UpdateGallery(c *fiber.Ctx) error {
	in, ok := input[model.UpdateGalleryInput](c, "inputUpdateGallery")
	if !ok {
		return missingInput(c, "inputUpdateGallery")
	}
	item, err := h.gallery.Update(c.UserContext(), paramId(c, "id"), in)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, item)
}

func (h *Handler) PublishGallery(c *fiber.Ctx) error {
	in, ok := input[model.PublishGalleryInput](c, "inputPublishGallery")
	if !ok {
		return missingInput(c, "inputPublishGallery")
	}
	item, err := h.gallery.SetPublished(c.UserContext(), paramId(c, "id"), *in.Published)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, item)
}

func (h *Handler) DeleteGallery(c *fiber.Ctx) error {
	if err := h.gallery.Delete(c.UserContext(), paramId(c, "id")); err != nil {
		return h.handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UploadGalleryImages takes multipart "images" files. With cover=true the first file becomes the cover.
// Files that fail are reported individually and do not stop the rest.
func (h *Handler) UploadGalleryImages(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}
	files := form.File["images"]
	if len(files) == 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errors.New("no images uploaded"))
	}
	asCover := c.FormValue("cover") == "true"
	id := paramId(c, "id")

	var (
		item        *model.GalleryItem
		failedFiles []fiber.Map
	)
	for idx, file := range files {
		ext := strings.ToLower(filepath.Ext(file.Filename))
		if !imageExtensions[ext] {
			failedFiles = append(failedFiles, fiber.Map{"filename": file.Filename, "error": "only JPG, PNG and WEBP are supported"})
			continue
		}
		if file.Size > maxImageSize {
			failedFiles = append(failedFiles, fiber.Map{"filename": file.Filename, "error": "file is larger than 5MB"})
			continue
		}

		f, err := file.Open()
		if err != nil {
			failedFiles = append(failedFiles, fiber.Map{"filename": file.Filename, "error": "could not open file"})
			continue
		}
		updated, err := h.gallery.UploadImage(c.UserContext(), id, f, asCover && idx == 0)
		f.Close()
		if err != nil {
			if errors.Is(err, constants.ErrGalleryNotFound) {
				return h.handleError(c, err)
			}
			h.log.Warn().Err(err).Str("filename", file.Filename).Uint("galleryId", id).Msg("image upload failed")
			failedFiles = append(failedFiles, fiber.Map{"filename": file.Filename, "error": "upload failed"})
			continue
		}
		item = updated
	}

	status := fiber.StatusOK
	if item == nil {
		status = fiber.StatusUnprocessableEntity
	}
	return utils.SuccessResponse(c, status, fiber.Map{
		"item":        item,
		"failedFiles": failedFiles,
	})
}
