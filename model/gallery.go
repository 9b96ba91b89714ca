package model

import (
	"time"

	"gorm.io/datatypes"
)

type GalleryItem struct {
	DTO
	Title           string                      `gorm:"size:200;not null" json:"title"`
	Slug            string                      `gorm:"size:220;uniqueIndex;not null" json:"slug"`
	ClientNames     string                      `gorm:"size:200" json:"clientNames"`
	Location        *string                     `gorm:"size:255" json:"location"`
	Style           string                      `gorm:"size:100;index" json:"style"`
	Category        *string                     `gorm:"size:100;index" json:"category"`
	PackageName     *string                     `gorm:"size:50" json:"packageName"`
	ServiceIds      datatypes.JSONSlice[string] `json:"serviceIds"`
	CoverImage      string                      `json:"coverImage"`
	Images          datatypes.JSONSlice[string] `json:"images"`
	Status          string                      `gorm:"size:20;not null;default:'draft';index" json:"status"`
	PublishedAt     *time.Time                  `json:"publishedAt"`
	Views           int64                       `gorm:"not null;default:0" json:"views"`
	Likes           int64                       `gorm:"not null;default:0" json:"likes"`
	SourceReference *string                     `gorm:"size:20" json:"sourceReference"`
}

func (g *GalleryItem) IsPublished() bool {
	return g.Status == "published"
}

type CreateGalleryInput struct {
	Title       string   `json:"title" validate:"required,min=2,max=200"`
	ClientNames string   `json:"clientNames" validate:"omitempty,max=200"`
	Location    *string  `json:"location" validate:"omitempty,max=255"`
	Style       string   `json:"style" validate:"omitempty,max=100"`
	Category    *string  `json:"category" validate:"omitempty,max=100"`
	PackageName *string  `json:"packageName" validate:"omitempty,oneof=Silver Gold Platinum"`
	ServiceIds  []string `json:"serviceIds" validate:"omitempty,dive,required,max=50"`
	CoverImage  string   `json:"coverImage" validate:"omitempty,url"`
	Images      []string `json:"images" validate:"omitempty,dive,url"`
}

type UpdateGalleryInput struct {
	Title       *string   `json:"title" validate:"omitempty,min=2,max=200"`
	ClientNames *string   `json:"clientNames" validate:"omitempty,max=200"`
	Location    *string   `json:"location" validate:"omitempty,max=255"`
	Style       *string   `json:"style" validate:"omitempty,max=100"`
	Category    *string   `json:"category" validate:"omitempty,max=100"`
	PackageName *string   `json:"packageName" validate:"omitempty,oneof=Silver Gold Platinum"`
	ServiceIds  *[]string `json:"serviceIds" validate:"omitempty" copier:"-"`
	CoverImage  *string   `json:"coverImage" validate:"omitempty,url"`
	Images      *[]string `json:"images" validate:"omitempty" copier:"-"`
}

type PublishGalleryInput struct {
	Published *bool `json:"published" validate:"required"`
}

type GalleryFilter struct {
	Pagination
	Status    *string `query:"status"`
	Category  *string `query:"category"`
	Style     *string `query:"style"`
	SearchKey string  `query:"searchKey"`
}

// GalleryCard is the public listing view of a published item.
type GalleryCard struct {
	ID          uint       `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	ClientNames string     `json:"clientNames"`
	Location    *string    `json:"location"`
	Style       string     `json:"style"`
	Category    *string    `json:"category"`
	PackageName *string    `json:"packageName"`
	CoverImage  string     `json:"coverImage"`
	PublishedAt *time.Time `json:"publishedAt"`
	Views       int64      `json:"views"`
	Likes       int64      `json:"likes"`
}
