package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/wardrobe-backend/internal/domain/wardrobe"
	"github.com/yungbote/wardrobe-backend/internal/http/response"
	"github.com/yungbote/wardrobe-backend/internal/services"
)

type OutfitHandler struct {
	outfits services.OutfitService
}

func NewOutfitHandler(outfits services.OutfitService) *OutfitHandler {
	return &OutfitHandler{outfits: outfits}
}

// POST /outfits/generate
// body: { "categories": ["top", "bottom", "shoes"] }
func (h *OutfitHandler) Generate(c *gin.Context) {
	var req struct {
		Categories []string `json:"categories" validate:"dive,oneof=outer dress top bottom shoes accessory"`
	}
	if !bindJSON(c, &req, "invalid_category") {
		return
	}
	cats := make([]wardrobe.Category, 0, len(req.Categories))
	for _, raw := range req.Categories {
		cats = append(cats, wardrobe.ParseCategory(raw))
	}
	out, err := h.outfits.Generate(c.Request.Context(), cats)
	if err != nil {
		respondServiceError(c, err, "generate_failed")
		return
	}
	response.RespondOK(c, gin.H{"outfit": out})
}

// POST /outfits/regenerate
func (h *OutfitHandler) Regenerate(c *gin.Context) {
	out, err := h.outfits.Regenerate(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "generate_failed")
		return
	}
	response.RespondOK(c, gin.H{"outfit": out})
}

// GET /outfits/current
func (h *OutfitHandler) Current(c *gin.Context) {
	out, err := h.outfits.Current(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "current_outfit_failed")
		return
	}
	response.RespondOK(c, gin.H{"outfit": out})
}

// POST /outfits/rate
// body: { "rating": 1..5 }
func (h *OutfitHandler) Rate(c *gin.Context) {
	var req struct {
		Rating *int `json:"rating" validate:"required,min=1,max=5"`
	}
	if !bindJSON(c, &req, "invalid_rating") {
		return
	}
	res, err := h.outfits.Rate(c.Request.Context(), *req.Rating)
	if err != nil {
		respondServiceError(c, err, "rate_failed")
		return
	}
	response.RespondOK(c, res)
}

// GET /outfits/recommendations
func (h *OutfitHandler) Recommendations(c *gin.Context) {
	recs, err := h.outfits.Recommendations(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "recommendations_failed")
		return
	}
	response.RespondOK(c, gin.H{"recommendations": recs})
}
