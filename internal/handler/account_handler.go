package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"zigzax/internal/service"
)

type AccountHandler struct {
	accountService service.AccountService
}

func NewAccountHandler(accountService service.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

func (h *AccountHandler) RegisterRoutes(router *gin.RouterGroup) {
	accounts := router.Group("/api/accounts")
	{
		accounts.GET("", h.ListAccounts)
	}
}

// ListAccounts godoc
// @Summary      List accounts
// @Description  Customer and supplier counterparties, ordered by name
// @Tags         accounts
// @Produce      json
// @Success      200  {array}   model.Account
// @Failure      500  {object}  map[string]string
// @Router       /api/accounts [get]
func (h *AccountHandler) ListAccounts(c *gin.Context) {
	accounts, err := h.accountService.ListAccounts(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, accounts)
}
