package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"zigzax/internal/service"
	"zigzax/pkg/apperr"
	"zigzax/pkg/response"
)

// DraftHandler exposes the server-held invoice form sessions.
type DraftHandler struct {
	draftService service.DraftService
}

func NewDraftHandler(draftService service.DraftService) *DraftHandler {
	return &DraftHandler{draftService: draftService}
}

func (h *DraftHandler) RegisterRoutes(router *gin.RouterGroup) {
	drafts := router.Group("/api/invoice-drafts")
	{
		drafts.POST("", h.CreateDraft)
		drafts.GET("/:id", h.GetDraft)
		drafts.PATCH("/:id", h.UpdateDraft)
		drafts.POST("/:id/lines", h.AddLine)
		drafts.PATCH("/:id/lines/:lineId", h.UpdateLine)
		drafts.DELETE("/:id/lines/:lineId", h.RemoveLine)
		drafts.POST("/:id/save", h.SaveDraft)
	}
}

func (h *DraftHandler) respond(c *gin.Context, status int, view service.DraftView, err error) {
	if err != nil {
		s := statusFor(err)
		c.JSON(s, response.Error(s, err.Error()))
		return
	}
	c.JSON(status, response.Success(status, view))
}

// CreateDraft godoc
// @Summary      Open an invoice draft
// @Description  Creates a session seeded with today's dates, USD currency and the latest exchange rate
// @Tags         drafts
// @Produce      json
// @Success      201  {object}  response.Response{data=service.DraftView}
// @Failure      500  {object}  response.Response
// @Router       /api/invoice-drafts [post]
func (h *DraftHandler) CreateDraft(c *gin.Context) {
	view, err := h.draftService.CreateDraft(c.Request.Context())
	h.respond(c, http.StatusCreated, view, err)
}

// GetDraft godoc
// @Summary      Get an invoice draft
// @Tags         drafts
// @Produce      json
// @Param        id   path      string  true  "Draft ID"
// @Success      200  {object}  response.Response{data=service.DraftView}
// @Failure      404  {object}  response.Response
// @Router       /api/invoice-drafts/{id} [get]
func (h *DraftHandler) GetDraft(c *gin.Context) {
	view, err := h.draftService.GetDraft(c.Param("id"))
	h.respond(c, http.StatusOK, view, err)
}

// UpdateDraft godoc
// @Summary      Patch draft header fields
// @Description  Updates account, dates, warehouse, currency, tax mode or transportation; currency changes re-derive every line from its USD snapshot
// @Tags         drafts
// @Accept       json
// @Produce      json
// @Param        id       path      string                      true  "Draft ID"
// @Param        payload  body      service.UpdateDraftRequest  true  "Draft Patch"
// @Success      200      {object}  response.Response{data=service.DraftView}
// @Failure      400      {object}  response.Response
// @Router       /api/invoice-drafts/{id} [patch]
func (h *DraftHandler) UpdateDraft(c *gin.Context) {
	var req service.UpdateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respond(c, 0, service.DraftView{}, apperr.Validation("invalid request payload: %s", err.Error()))
		return
	}
	view, err := h.draftService.UpdateDraft(c.Request.Context(), c.Param("id"), req)
	h.respond(c, http.StatusOK, view, err)
}

// AddLine godoc
// @Summary      Append an empty draft line
// @Tags         drafts
// @Produce      json
// @Param        id   path      string  true  "Draft ID"
// @Success      200  {object}  response.Response{data=service.DraftView}
// @Failure      404  {object}  response.Response
// @Router       /api/invoice-drafts/{id}/lines [post]
func (h *DraftHandler) AddLine(c *gin.Context) {
	view, err := h.draftService.AddLine(c.Param("id"))
	h.respond(c, http.StatusOK, view, err)
}

// UpdateLine godoc
// @Summary      Patch a draft line
// @Description  Product and variant selection, quantity, manual price override and rate fields
// @Tags         drafts
// @Accept       json
// @Produce      json
// @Param        id       path      string                     true  "Draft ID"
// @Param        lineId   path      string                     true  "Line ID"
// @Param        payload  body      service.UpdateLineRequest  true  "Line Patch"
// @Success      200      {object}  response.Response{data=service.DraftView}
// @Failure      400      {object}  response.Response
// @Router       /api/invoice-drafts/{id}/lines/{lineId} [patch]
func (h *DraftHandler) UpdateLine(c *gin.Context) {
	var req service.UpdateLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respond(c, 0, service.DraftView{}, apperr.Validation("invalid request payload: %s", err.Error()))
		return
	}
	view, err := h.draftService.UpdateLine(c.Request.Context(), c.Param("id"), c.Param("lineId"), req)
	h.respond(c, http.StatusOK, view, err)
}

// RemoveLine godoc
// @Summary      Remove a draft line
// @Tags         drafts
// @Produce      json
// @Param        id      path      string  true  "Draft ID"
// @Param        lineId  path      string  true  "Line ID"
// @Success      200     {object}  response.Response{data=service.DraftView}
// @Failure      404     {object}  response.Response
// @Router       /api/invoice-drafts/{id}/lines/{lineId} [delete]
func (h *DraftHandler) RemoveLine(c *gin.Context) {
	view, err := h.draftService.RemoveLine(c.Param("id"), c.Param("lineId"))
	h.respond(c, http.StatusOK, view, err)
}

// SaveDraft godoc
// @Summary      Save a draft as an invoice
// @Description  Persists the draft atomically and discards the session
// @Tags         drafts
// @Produce      json
// @Param        id   path      string  true  "Draft ID"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/invoice-drafts/{id}/save [post]
func (h *DraftHandler) SaveDraft(c *gin.Context) {
	invoiceID, err := h.draftService.SaveDraft(c.Request.Context(), c.Param("id"))
	if err != nil {
		s := statusFor(err)
		c.JSON(s, response.Error(s, err.Error()))
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, gin.H{"invoiceId": invoiceID}))
}
