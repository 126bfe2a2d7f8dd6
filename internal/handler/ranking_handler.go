package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"sandalo.app/clubpoints/internal/service"
	"sandalo.app/clubpoints/pkg/response"
)

type RankingHandler struct {
	service  service.RankingService
	exporter service.ExportService
}

func NewRankingHandler(service service.RankingService, exporter service.ExportService) *RankingHandler {
	return &RankingHandler{service: service, exporter: exporter}
}

func (h *RankingHandler) GetRanking(c *gin.Context) {
	period := c.DefaultQuery("period", service.PeriodAll)

	// Unparsable or non-positive limits coerce to the default, matching the
	// period fallback policy.
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	result, err := h.service.BuildRanking(c.Request.Context(), period, limit)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *RankingHandler) GetMyScore(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	period := c.DefaultQuery("period", service.PeriodAll)

	result, err := h.service.MemberScore(c.Request.Context(), userID, period)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *RankingHandler) ExportRanking(c *gin.Context) {
	period := c.DefaultQuery("period", service.PeriodAll)

	filename, data, err := h.exporter.ExportRankingCSV(c.Request.Context(), period)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv", data)
}
