package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"zigzax/internal/service"
	"zigzax/pkg/apperr"
)

type RateHandler struct {
	rateService service.RateService
}

func NewRateHandler(rateService service.RateService) *RateHandler {
	return &RateHandler{rateService: rateService}
}

func (h *RateHandler) RegisterRoutes(router *gin.RouterGroup) {
	rates := router.Group("/api/rates")
	{
		rates.GET("", h.ListRates)
		rates.GET("/latest", h.LatestRate)
		rates.POST("", h.UpsertRate)
	}
}

// LatestRate godoc
// @Summary      Latest exchange rate
// @Description  Most recent daily USD/TRY and USD/EUR factors, falling back to defaults when the ledger is empty
// @Tags         rates
// @Produce      json
// @Success      200  {object}  service.RateResponse
// @Failure      500  {object}  map[string]string
// @Router       /api/rates/latest [get]
func (h *RateHandler) LatestRate(c *gin.Context) {
	rate, err := h.rateService.Latest(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, rate)
}

// ListRates godoc
// @Summary      Rate history
// @Description  Daily rates, newest first, capped at 30 rows
// @Tags         rates
// @Produce      json
// @Success      200  {array}   model.ExchangeRate
// @Failure      500  {object}  map[string]string
// @Router       /api/rates [get]
func (h *RateHandler) ListRates(c *gin.Context) {
	rates, err := h.rateService.History(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, rates)
}

// UpsertRate godoc
// @Summary      Record a daily rate
// @Description  Inserts the rate for a date, or overwrites the existing row for that date in place
// @Tags         rates
// @Accept       json
// @Produce      json
// @Param        payload  body      service.UpsertRateRequest  true  "Rate Payload"
// @Success      200      {object}  map[string]interface{}
// @Success      201      {object}  map[string]interface{}
// @Failure      400      {object}  map[string]string
// @Router       /api/rates [post]
func (h *RateHandler) UpsertRate(c *gin.Context) {
	var req service.UpsertRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.Validation("invalid request payload: %s", err.Error()))
		return
	}

	rate, created, err := h.rateService.Upsert(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}

	status := http.StatusOK
	message := "updated"
	if created {
		status = http.StatusCreated
		message = "created"
	}
	c.JSON(status, gin.H{
		"message": message,
		"date":    rate.Date,
		"usd_try": rate.UsdTry,
		"usd_eur": rate.UsdEur,
	})
}
