package handlers

import (
	"bufio"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	wardroberepo "github.com/yungbote/wardrobe-backend/internal/data/repos/wardrobe"
	"github.com/yungbote/wardrobe-backend/internal/domain/wardrobe"
	"github.com/yungbote/wardrobe-backend/internal/http/response"
	"github.com/yungbote/wardrobe-backend/internal/services"
)

const defaultMaxImageBytes int64 = 10 << 20

type ItemHandler struct {
	items         services.ItemService
	maxImageBytes int64
}

// NewItemHandler caps photo uploads at maxImageBytes, or 10 MiB when it is
// not positive.
func NewItemHandler(items services.ItemService, maxImageBytes int64) *ItemHandler {
	if maxImageBytes <= 0 {
		maxImageBytes = defaultMaxImageBytes
	}
	return &ItemHandler{items: items, maxImageBytes: maxImageBytes}
}

type createItemRequest struct {
	Name        string   `json:"name" validate:"required,max=100"`
	Description string   `json:"description" validate:"max=2000"`
	ImageURL    string   `json:"image_url" validate:"omitempty,url,max=255"`
	Color       string   `json:"color" validate:"max=50"`
	Category    string   `json:"category" validate:"required,oneof=outer dress top bottom shoes accessory"`
	Seasons     []string `json:"seasons" validate:"omitempty,unique,dive,oneof=spring summer autumn winter all"`
	Occasion    string   `json:"occasion" validate:"max=50"`
	Rating      int      `json:"rating" validate:"omitempty,min=1,max=5"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
}

type updateItemRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string  `json:"description" validate:"omitempty,max=2000"`
	Color       *string  `json:"color" validate:"omitempty,max=50"`
	Occasion    *string  `json:"occasion" validate:"omitempty,max=50"`
	Rating      *int     `json:"rating" validate:"omitempty,min=1,max=5"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
}

// POST /items
func (h *ItemHandler) Create(c *gin.Context) {
	var req createItemRequest
	if !bindJSON(c, &req, "invalid_item") {
		return
	}
	it, err := h.items.Create(c.Request.Context(), services.ItemInput{
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Color:       req.Color,
		Category:    wardrobe.ParseCategory(req.Category),
		Seasons:     req.Seasons,
		Occasion:    req.Occasion,
		Rating:      req.Rating,
		Price:       req.Price,
	})
	if err != nil {
		respondServiceError(c, err, "create_item_failed")
		return
	}
	response.RespondCreated(c, gin.H{"item": it})
}

// GET /items?category=top&occasion=casual&season=summer
func (h *ItemHandler) List(c *gin.Context) {
	var filter wardroberepo.ClothingItemFilter
	if raw := strings.TrimSpace(c.Query("category")); raw != "" {
		cat := wardrobe.ParseCategory(raw)
		if !cat.Valid() {
			response.RespondError(c, http.StatusBadRequest, "invalid_category", errUnknownCategory(raw))
			return
		}
		filter.Category = &cat
	}
	filter.Occasion = strings.TrimSpace(c.Query("occasion"))
	filter.Season = strings.TrimSpace(c.Query("season"))

	items, err := h.items.List(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err, "list_items_failed")
		return
	}
	response.RespondOK(c, gin.H{"items": items})
}

// GET /items/:id
func (h *ItemHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	it, err := h.items.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "get_item_failed")
		return
	}
	response.RespondOK(c, gin.H{"item": it})
}

// PATCH /items/:id
func (h *ItemHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateItemRequest
	if !bindJSON(c, &req, "invalid_item") {
		return
	}
	it, err := h.items.Update(c.Request.Context(), id, services.ItemPatch{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		Occasion:    req.Occasion,
		Rating:      req.Rating,
		Price:       req.Price,
	})
	if err != nil {
		respondServiceError(c, err, "update_item_failed")
		return
	}
	response.RespondOK(c, gin.H{"item": it})
}

// DELETE /items/:id
func (h *ItemHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.items.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "delete_item_failed")
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

// PUT /items/:id/image (multipart field "image")
func (h *ItemHandler) UploadImage(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxImageBytes+(1<<20))
	fh, err := c.FormFile("image")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.RespondError(c, http.StatusRequestEntityTooLarge, "image_too_large", err)
			return
		}
		response.RespondError(c, http.StatusBadRequest, "invalid_image", err)
		return
	}
	if fh.Size > h.maxImageBytes {
		response.RespondError(c, http.StatusRequestEntityTooLarge, "image_too_large",
			fmt.Errorf("photo is %d bytes, limit is %d", fh.Size, h.maxImageBytes))
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_image", err)
		return
	}
	defer f.Close()

	// The declared part type is client controlled; sniff the bytes instead.
	br := bufio.NewReaderSize(f, 512)
	head, _ := br.Peek(512)
	it, err := h.items.SetImage(c.Request.Context(), id, services.ImageUpload{
		ContentType: http.DetectContentType(head),
		Body:        br,
	})
	if err != nil {
		respondServiceError(c, err, "upload_image_failed")
		return
	}
	response.RespondOK(c, gin.H{"item": it})
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return uuid.Nil, false
	}
	return id, true
}
