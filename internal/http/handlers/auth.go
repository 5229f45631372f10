package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/wardrobe-backend/internal/domain/user"
	"github.com/yungbote/wardrobe-backend/internal/http/response"
	"github.com/yungbote/wardrobe-backend/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (ah *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Email     string `json:"email" validate:"required,email"`
		FirstName string `json:"first_name" validate:"required,max=255"`
		LastName  string `json:"last_name" validate:"required,max=255"`
		Password  string `json:"password" validate:"required,min=8,max=72"`
	}
	if !bindJSON(c, &req, "invalid_request") {
		return
	}
	u := user.User{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	}
	if err := ah.authService.RegisterUser(c.Request.Context(), &u); err != nil {
		respondServiceError(c, err, "registration_failed")
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

func (ah *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" validate:"required"`
		Password string `json:"password" validate:"required"`
	}
	if !bindJSON(c, &req, "invalid_request") {
		return
	}
	accessToken, err := ah.authService.LoginUser(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err, "invalid_credentials")
		return
	}
	expiresIn := int(ah.authService.GetAccessTTL().Seconds())
	response.RespondOK(c, gin.H{
		"access_token": accessToken,
		"expires_in":   expiresIn,
	})
}
