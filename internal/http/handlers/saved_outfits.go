package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/wardrobe-backend/internal/http/response"
	"github.com/yungbote/wardrobe-backend/internal/services"
)

type SavedOutfitHandler struct {
	saved services.SavedOutfitService
}

func NewSavedOutfitHandler(saved services.SavedOutfitService) *SavedOutfitHandler {
	return &SavedOutfitHandler{saved: saved}
}

type saveOutfitRequest struct {
	Name        string      `json:"name" validate:"required,max=200"`
	Description string      `json:"description" validate:"max=2000"`
	Occasion    string      `json:"occasion" validate:"max=50"`
	Rating      int         `json:"rating" validate:"omitempty,min=1,max=5"`
	ItemIDs     []uuid.UUID `json:"item_ids"`
}

func (r saveOutfitRequest) input() services.SavedOutfitInput {
	return services.SavedOutfitInput{
		Name:        r.Name,
		Description: r.Description,
		Occasion:    r.Occasion,
		Rating:      r.Rating,
		ItemIDs:     r.ItemIDs,
	}
}

// GET /outfits
func (h *SavedOutfitHandler) List(c *gin.Context) {
	outfits, err := h.saved.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "list_outfits_failed")
		return
	}
	response.RespondOK(c, gin.H{"outfits": outfits})
}

// POST /outfits
// body: { "name": "...", "item_ids": ["..."], "occasion": "work", "rating": 4 }
func (h *SavedOutfitHandler) Create(c *gin.Context) {
	var req saveOutfitRequest
	if !bindJSON(c, &req, "invalid_outfit") {
		return
	}
	o, err := h.saved.Create(c.Request.Context(), req.input())
	if err != nil {
		respondServiceError(c, err, "create_outfit_failed")
		return
	}
	response.RespondCreated(c, gin.H{"outfit": o})
}

// POST /outfits/current/save
// body: { "name": "..." }
func (h *SavedOutfitHandler) SaveCurrent(c *gin.Context) {
	var req saveOutfitRequest
	if !bindJSON(c, &req, "invalid_outfit") {
		return
	}
	o, err := h.saved.SaveCurrent(c.Request.Context(), req.input())
	if err != nil {
		respondServiceError(c, err, "save_outfit_failed")
		return
	}
	response.RespondCreated(c, gin.H{"outfit": o})
}

// GET /outfits/:id
func (h *SavedOutfitHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	o, err := h.saved.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "get_outfit_failed")
		return
	}
	response.RespondOK(c, gin.H{"outfit": o})
}

// DELETE /outfits/:id
func (h *SavedOutfitHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.saved.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "delete_outfit_failed")
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

// GET /summary
func (h *SavedOutfitHandler) Summary(c *gin.Context) {
	sum, err := h.saved.Summary(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "summary_failed")
		return
	}
	response.RespondOK(c, sum)
}
