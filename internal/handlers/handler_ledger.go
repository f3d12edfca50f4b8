package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/revenue_cycle_app/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

type ledgerHandler struct {
	ledgerService portssvc.LedgerSvc
}

func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvc) {
	h := &ledgerHandler{ledgerService: ledgerService}

	ledger := rg.Group("/ledger")
	{
		ledger.GET("/accounts/:accountID", h.getAccountLedger)
		ledger.GET("/balances", h.getAllBalances)
	}
}

// getAccountLedger godoc
// @Summary General ledger of one account
// @Description Every line posted to the account in posting order with a running balance
// @Tags ledger
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {object} domain.AccountLedger
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /ledger/accounts/{accountID} [get]
func (h *ledgerHandler) getAccountLedger(c *gin.Context) {
	ledger, err := h.ledgerService.ComputeAccountLedger(c.Request.Context(), c.Param("accountID"))
	if err != nil {
		respondError(c, err, "Failed to compute account ledger")
		return
	}
	c.JSON(http.StatusOK, ledger)
}

// getAllBalances godoc
// @Summary Balances of every account
// @Tags ledger
// @Produce  json
// @Success 200 {array} domain.AccountBalance
// @Security BearerAuth
// @Router /ledger/balances [get]
func (h *ledgerHandler) getAllBalances(c *gin.Context) {
	balances, err := h.ledgerService.ComputeAllAccountBalances(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to compute balances")
		return
	}
	c.JSON(http.StatusOK, balances)
}
