package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"event_planner/constants"
	"event_planner/model"
	"event_planner/service/ports"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
)

type GalleryService struct {
	repo     ports.GalleryRepo
	uploader ports.Uploader
	folder   string
	log      zerolog.Logger
	now      func() time.Time
}

func NewGalleryService(repo ports.GalleryRepo, uploader ports.Uploader, folder string, log zerolog.Logger) *GalleryService {
	return &GalleryService{repo: repo, uploader: uploader, folder: folder, log: log, now: time.Now}
}

func (s *GalleryService) Create(ctx context.Context, input model.CreateGalleryInput) (*model.GalleryItem, error) {
	item := &model.GalleryItem{Status: constants.GALLERY_DRAFT}
	if err := copier.Copy(item, &input); err != nil {
		return nil, fmt.Errorf("copy gallery input: %w", err)
	}
	item.Title = strings.TrimSpace(item.Title)
	item.ServiceIds = datatypes.JSONSlice[string](nonNil(input.ServiceIds))
	item.Images = datatypes.JSONSlice[string](nonNil(input.Images))
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *GalleryService) Update(ctx context.Context, id uint, input model.UpdateGalleryInput) (*model.GalleryItem, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// nil fields keep the stored value; the JSON slices are handled below
	if err := copier.CopyWithOption(item, &input, copier.Option{IgnoreEmpty: true}); err != nil {
		return nil, fmt.Errorf("copy gallery input: %w", err)
	}
	item.Title = strings.TrimSpace(item.Title)
	if input.ServiceIds != nil {
		item.ServiceIds = datatypes.JSONSlice[string](nonNil(*input.ServiceIds))
	}
	if input.Images != nil {
		item.Images = datatypes.JSONSlice[string](nonNil(*input.Images))
	}
	if err := s.repo.Save(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *GalleryService) SetPublished(ctx context.Context, id uint, published bool) (*model.GalleryItem, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if published {
		item.Status = constants.GALLERY_PUBLISHED
		if item.PublishedAt == nil {
			now := s.now()
			item.PublishedAt = &now
		}
	} else {
		item.Status = constants.GALLERY_DRAFT
	}
	if err := s.repo.Save(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *GalleryService) Get(ctx context.Context, id uint) (*model.GalleryItem, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *GalleryService) List(ctx context.Context, filter model.GalleryFilter) ([]model.GalleryItem, int64, error) {
	return s.repo.List(ctx, filter)
}

func (s *GalleryService) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

// PublicList only ever returns published items.
func (s *GalleryService) PublicList(ctx context.Context, filter model.GalleryFilter) ([]model.GalleryCard, int64, error) {
	published := constants.GALLERY_PUBLISHED
	filter.Status = &published
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	cards := make([]model.GalleryCard, 0, len(items))
	if err := copier.Copy(&cards, &items); err != nil {
		return nil, 0, fmt.Errorf("copy gallery cards: %w", err)
	}
	return cards, total, nil
}

// PublicDetail returns a published item and counts the view. Drafts look missing.
func (s *GalleryService) PublicDetail(ctx context.Context, slug string) (*model.GalleryItem, error) {
	item, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !item.IsPublished() {
		return nil, constants.ErrGalleryNotFound
	}
	if err := s.repo.IncrementViews(ctx, item.ID); err != nil {
		s.log.Warn().Err(err).Uint("galleryId", item.ID).Msg("count view failed")
	} else {
		item.Views++
	}
	return item, nil
}

func (s *GalleryService) Like(ctx context.Context, slug string) (int64, error) {
	item, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return 0, err
	}
	if !item.IsPublished() {
		return 0, constants.ErrGalleryNotFound
	}
	return s.repo.IncrementLikes(ctx, item.ID)
}

// UploadImage stores file in the object store and attaches its URL as the cover or an extra image.
func (s *GalleryService) UploadImage(ctx context.Context, id uint, file io.Reader, asCover bool) (*model.GalleryItem, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	publicID := fmt.Sprintf("gallery_%d_%d", id, s.now().UnixNano())
	url, err := s.uploader.Upload(ctx, file, s.folder, publicID)
	if err != nil {
		return nil, err
	}
	if asCover {
		item.CoverImage = url
	} else {
		item.Images = append(item.Images, url)
		if item.CoverImage == "" {
			item.CoverImage = url
		}
	}
	if err := s.repo.Save(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
