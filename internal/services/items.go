package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	wardroberepo "github.com/yungbote/wardrobe-backend/internal/data/repos/wardrobe"
	"github.com/yungbote/wardrobe-backend/internal/domain/wardrobe"
	"github.com/yungbote/wardrobe-backend/internal/platform/apierr"
	"github.com/yungbote/wardrobe-backend/internal/platform/dbctx"
	"github.com/yungbote/wardrobe-backend/internal/platform/gcp"
	"github.com/yungbote/wardrobe-backend/internal/platform/logger"
)

type ItemInput struct {
	Name        string
	Description string
	ImageURL    string
	Color       string
	Category    wardrobe.Category
	Seasons     []string
	Occasion    string
	Rating      int
	Price       *float64
}

// ItemPatch updates only the fields that are set.
type ItemPatch struct {
	Name        *string
	Description *string
	Color       *string
	Occasion    *string
	Rating      *int
	Price       *float64
}

type ItemService interface {
	Create(ctx context.Context, in ItemInput) (*wardrobe.ClothingItem, error)
	List(ctx context.Context, filter wardroberepo.ClothingItemFilter) ([]*wardrobe.ClothingItem, error)
	Get(ctx context.Context, id uuid.UUID) (*wardrobe.ClothingItem, error)
	Update(ctx context.Context, id uuid.UUID, patch ItemPatch) (*wardrobe.ClothingItem, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// SetImage replaces the item's photo. It fails with ErrImageStorageOff
	// when no bucket is configured.
	SetImage(ctx context.Context, id uuid.UUID, img ImageUpload) (*wardrobe.ClothingItem, error)
}

type ImageUpload struct {
	ContentType string
	Body        io.Reader
}

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

type itemService struct {
	log    *logger.Logger
	items  wardroberepo.ClothingItemRepo
	images gcp.ImageBucket
}

// NewItemService accepts a nil bucket; photo upload is then disabled.
func NewItemService(log *logger.Logger, items wardroberepo.ClothingItemRepo, images gcp.ImageBucket) ItemService {
	return &itemService{
		log:    log.With("service", "ItemService"),
		items:  items,
		images: images,
	}
}

func (s *itemService) Create(ctx context.Context, in ItemInput) (*wardrobe.ClothingItem, error) {
	rd, err := requestIdentity(ctx)
	if err != nil {
		return nil, err
	}
	if !in.Category.Valid() {
		return nil, apierr.New(http.StatusBadRequest, "invalid_category", fmt.Errorf("unknown category %q", in.Category))
	}
	if in.Rating == 0 {
		in.Rating = wardrobe.DefaultRating
	}
	if !wardrobe.ValidRating(in.Rating) {
		return nil, apierr.New(http.StatusBadRequest, "invalid_rating", fmt.Errorf("rating must be between %d and %d", wardrobe.MinRating, wardrobe.MaxRating))
	}
	occasion := strings.TrimSpace(in.Occasion)
	if occasion == "" {
		occasion = "any"
	}

	item := &wardrobe.ClothingItem{
		UserID:      rd.UserID,
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		ImageURL:    strings.TrimSpace(in.ImageURL),
		Color:       strings.TrimSpace(in.Color),
		Category:    in.Category,
		Season:      strings.Join(in.Seasons, ","),
		Occasion:    occasion,
		Rating:      in.Rating,
		Price:       in.Price,
	}
	if _, err := s.items.Create(dbctx.Context{Ctx: ctx}, []*wardrobe.ClothingItem{item}); err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}
	s.log.Debug("created clothing item", "user_id", rd.UserID, "item_id", item.ID, "category", item.Category)
	return item, nil
}

func (s *itemService) List(ctx context.Context, filter wardroberepo.ClothingItemFilter) ([]*wardrobe.ClothingItem, error) {
	rd, err := requestIdentity(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := s.items.ListByUser(dbctx.Context{Ctx: ctx}, rd.UserID, filter)
	if err != nil || filter.Season == "" {
		return rows, err
	}
	out := make([]*wardrobe.ClothingItem, 0, len(rows))
	for _, it := range rows {
		if it.WornIn(filter.Season) {
			out = append(out, it)
		}
	}
	return out, nil
}

func (s *itemService) Get(ctx context.Context, id uuid.UUID) (*wardrobe.ClothingItem, error) {
	rd, err := requestIdentity(ctx)
	if err != nil {
		return nil, err
	}
	it, err := s.items.GetByID(dbctx.Context{Ctx: ctx}, rd.UserID, id)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, ErrItemNotFound
	}
	return it, nil
}

func (s *itemService) Update(ctx context.Context, id uuid.UUID, patch ItemPatch) (*wardrobe.ClothingItem, error) {
	rd, err := requestIdentity(ctx)
	if err != nil {
		return nil, err
	}
	dbc := dbctx.Context{Ctx: ctx}
	it, err := s.items.GetByID(dbc, rd.UserID, id)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, ErrItemNotFound
	}

	updates := map[string]interface{}{}
	if patch.Name != nil {
		updates["name"] = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil {
		updates["description"] = strings.TrimSpace(*patch.Description)
	}
	if patch.Color != nil {
		updates["color"] = strings.TrimSpace(*patch.Color)
	}
	if patch.Occasion != nil {
		updates["occasion"] = strings.TrimSpace(*patch.Occasion)
	}
	if patch.Rating != nil {
		if !wardrobe.ValidRating(*patch.Rating) {
			return nil, apierr.New(http.StatusBadRequest, "invalid_rating", fmt.Errorf("rating must be between %d and %d", wardrobe.MinRating, wardrobe.MaxRating))
		}
		updates["rating"] = *patch.Rating
	}
	if patch.Price != nil {
		updates["price"] = *patch.Price
	}
	if err := s.items.UpdateFields(dbc, rd.UserID, id, updates); err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}
	return s.items.GetByID(dbc, rd.UserID, id)
}

func (s *itemService) Delete(ctx context.Context, id uuid.UUID) error {
	rd, err := requestIdentity(ctx)
	if err != nil {
		return err
	}
	dbc := dbctx.Context{Ctx: ctx}
	it, err := s.items.GetByID(dbc, rd.UserID, id)
	if err != nil {
		return err
	}
	if it == nil {
		return ErrItemNotFound
	}
	ok, err := s.items.Delete(dbc, rd.UserID, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if !ok {
		return ErrItemNotFound
	}
	s.dropImage(ctx, it.ImageKey)
	return nil
}

func (s *itemService) SetImage(ctx context.Context, id uuid.UUID, img ImageUpload) (*wardrobe.ClothingItem, error) {
	rd, err := requestIdentity(ctx)
	if err != nil {
		return nil, err
	}
	if s.images == nil {
		return nil, ErrImageStorageOff
	}
	ext, ok := imageExtensions[strings.ToLower(strings.TrimSpace(img.ContentType))]
	if !ok {
		return nil, ErrUnsupportedImage
	}
	dbc := dbctx.Context{Ctx: ctx}
	it, err := s.items.GetByID(dbc, rd.UserID, id)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, ErrItemNotFound
	}

	key := fmt.Sprintf("items/%s/%s/%s%s", rd.UserID, it.ID, uuid.New(), ext)
	if err := s.images.Upload(ctx, key, img.ContentType, img.Body); err != nil {
		return nil, fmt.Errorf("upload item photo: %w", err)
	}
	url := s.images.PublicURL(key)
	if err := s.items.UpdateFields(dbc, rd.UserID, id, map[string]interface{}{
		"image_url": url,
		"image_key": key,
	}); err != nil {
		s.dropImage(ctx, key)
		return nil, fmt.Errorf("record item photo: %w", err)
	}
	s.dropImage(ctx, it.ImageKey)
	s.log.Debug("stored item photo", "user_id", rd.UserID, "item_id", it.ID, "key", key)

	it.ImageURL = url
	it.ImageKey = key
	return it, nil
}

// dropImage deletes an object that no row points at any more. Failures only
// leave an orphan behind, so they are logged.
func (s *itemService) dropImage(ctx context.Context, key string) {
	if s.images == nil || key == "" {
		return
	}
	if err := s.images.Delete(ctx, key); err != nil {
		s.log.Warn("failed to delete item photo", "key", key, "error", err)
	}
}
