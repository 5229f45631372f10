package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/yungbote/wardrobe-backend/internal/modules/outfit"
	"github.com/yungbote/wardrobe-backend/internal/platform/apierr"
	"github.com/yungbote/wardrobe-backend/internal/platform/ctxutil"
)

var (
	ErrUnauthorized      = apierr.New(http.StatusUnauthorized, "unauthorized", errors.New("missing or invalid session"))
	ErrNoGeneratedOutfit = apierr.New(http.StatusNotFound, "no_generated_outfit", errors.New("no generated outfit in this session"))
	ErrItemsNotFound     = apierr.New(http.StatusConflict, "items_not_found", errors.New("some items of the outfit were not found"))
	ErrAlreadyRated      = apierr.New(http.StatusConflict, "already_rated", errors.New("outfit already rated"))
	ErrOutfitChanged     = apierr.New(http.StatusConflict, "outfit_changed", errors.New("a newer outfit was generated in this session"))
	ErrNotEnoughItems    = apierr.New(http.StatusUnprocessableEntity, "not_enough_items", errors.New("not enough items in the selected categories"))
	ErrImageStorageOff   = apierr.New(http.StatusServiceUnavailable, "image_storage_disabled", errors.New("item photo upload is not configured"))
	ErrUnsupportedImage  = apierr.New(http.StatusUnsupportedMediaType, "unsupported_image", errors.New("photo must be jpeg, png, webp or gif"))
	ErrItemNotFound      = apierr.New(http.StatusNotFound, "item_not_found", errors.New("clothing item not found"))
	ErrOutfitNotFound    = apierr.New(http.StatusNotFound, "outfit_not_found", errors.New("outfit not found"))
	ErrEmailTaken        = apierr.New(http.StatusConflict, "email_taken", errors.New("email already registered"))
	ErrInvalidLogin      = apierr.New(http.StatusUnauthorized, "invalid_credentials", errors.New("invalid email or password"))
)

// engineError maps generation and learning failures onto API errors.
func engineError(err error) error {
	switch {
	case errors.Is(err, outfit.ErrNotEnoughCategories):
		return apierr.New(http.StatusUnprocessableEntity, "not_enough_categories", err)
	case errors.Is(err, outfit.ErrFirstCategoryEmpty):
		return apierr.New(http.StatusUnprocessableEntity, "first_category_empty", err)
	case errors.Is(err, outfit.ErrInvalidRating):
		return apierr.New(http.StatusBadRequest, "invalid_rating", err)
	}
	return err
}

func requestIdentity(ctx context.Context) (*ctxutil.RequestData, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	return rd, nil
}
