package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"sandalo.app/clubpoints/internal/dto"
	"sandalo.app/clubpoints/internal/service"
	"sandalo.app/clubpoints/pkg/response"
	"sandalo.app/clubpoints/pkg/validator"
)

type AuthHandler struct {
	service service.AuthService
}

func NewAuthHandler(service service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input dto.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	result, err := h.service.Login(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
