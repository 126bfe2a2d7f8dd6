package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"sandalo.app/clubpoints/internal/dto"
	"sandalo.app/clubpoints/internal/service"
	"sandalo.app/clubpoints/pkg/response"
	"sandalo.app/clubpoints/pkg/validator"
)

type CompletionHandler struct {
	service service.CompletionService
}

func NewCompletionHandler(service service.CompletionService) *CompletionHandler {
	return &CompletionHandler{service: service}
}

func (h *CompletionHandler) RecordCompletion(c *gin.Context) {
	var input dto.CreateCompletionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	completion, err := h.service.RecordCompletion(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, completion)
}

func (h *CompletionHandler) GetCompletions(c *gin.Context) {
	var query dto.ListCompletionsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	result, err := h.service.GetCompletions(c.Request.Context(), query)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
