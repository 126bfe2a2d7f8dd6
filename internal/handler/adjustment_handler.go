package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"sandalo.app/clubpoints/internal/dto"
	"sandalo.app/clubpoints/internal/service"
	"sandalo.app/clubpoints/pkg/response"
	"sandalo.app/clubpoints/pkg/validator"
)

type AdjustmentHandler struct {
	service service.AdjustmentService
}

func NewAdjustmentHandler(service service.AdjustmentService) *AdjustmentHandler {
	return &AdjustmentHandler{service: service}
}

func (h *AdjustmentHandler) RecordAdjustment(c *gin.Context) {
	var input dto.CreateAdjustmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	adjustment, err := h.service.RecordAdjustment(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, adjustment)
}

func (h *AdjustmentHandler) GetAdjustments(c *gin.Context) {
	var query dto.ListAdjustmentsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	result, err := h.service.GetAdjustments(c.Request.Context(), query)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
