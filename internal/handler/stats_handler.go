package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"zigzax/internal/service"
)

type StatsHandler struct {
	statsService service.StatsService
}

func NewStatsHandler(statsService service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

func (h *StatsHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/api/stats", h.GetStats)
}

// GetStats godoc
// @Summary      Dashboard statistics
// @Description  Row counts for products, accounts and invoices
// @Tags         stats
// @Produce      json
// @Success      200  {object}  service.StatsResponse
// @Failure      500  {object}  map[string]string
// @Router       /api/stats [get]
func (h *StatsHandler) GetStats(c *gin.Context) {
	stats, err := h.statsService.GetStats(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
