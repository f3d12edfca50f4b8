package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/revenue_cycle_app/internal/core/ports/services"
	"github.com/SscSPs/revenue_cycle_app/internal/dto"
	"github.com/SscSPs/revenue_cycle_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// revenueHandler handles the four revenue-cycle transaction endpoints.
type revenueHandler struct {
	revenueService portssvc.RevenueSvcFacade
}

func newRevenueHandler(rs portssvc.RevenueSvcFacade) *revenueHandler {
	return &revenueHandler{revenueService: rs}
}

// registerRevenueRoutes registers cash, credit, receivable payment and other income routes.
func registerRevenueRoutes(rg *gin.RouterGroup, revenueService portssvc.RevenueSvcFacade) {
	h := newRevenueHandler(revenueService)

	rg.POST("/cash-revenues", h.createCashRevenue)
	rg.GET("/cash-revenues", h.listCashRevenues)

	rg.POST("/credit-revenues", h.createCreditRevenue)
	rg.GET("/credit-revenues", h.listCreditRevenues)
	rg.GET("/credit-revenues/:creditID", h.getCreditRevenue)

	rg.POST("/receivable-payments", h.createReceivablePayment)
	rg.GET("/receivable-payments", h.listReceivablePayments)

	rg.POST("/other-incomes", h.createOtherIncome)
	rg.GET("/other-incomes", h.listOtherIncomes)
}

// createCashRevenue godoc
// @Summary Record a cash sale
// @Description Records a cash sale and posts debit Cash / credit Sales Revenue in the same unit of work
// @Tags revenues
// @Accept  json
// @Produce  json
// @Param   revenue body dto.CreateCashRevenueRequest true "Cash sale"
// @Success 201 {object} dto.PostedResponse[domain.CashRevenue]
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 404 {object} map[string]string "Customer not found"
// @Failure 500 {object} map[string]string "Failed to record cash revenue"
// @Security BearerAuth
// @Router /cash-revenues [post]
func (h *revenueHandler) createCashRevenue(c *gin.Context) {
	var req dto.CreateCashRevenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "CreateCashRevenue")
		return
	}
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	posted, err := h.revenueService.CreateCashRevenue(c.Request.Context(), req, caller)
	if err != nil {
		respondError(c, err, "Failed to record cash revenue")
		return
	}
	c.JSON(http.StatusCreated, dto.ToPostedResponse(posted, "Transaksi kas berhasil dicatat"))
}

// listCashRevenues godoc
// @Summary List cash sales
// @Tags revenues
// @Produce  json
// @Success 200 {array} domain.CashRevenue
// @Failure 500 {object} map[string]string "Failed to list cash revenues"
// @Security BearerAuth
// @Router /cash-revenues [get]
func (h *revenueHandler) listCashRevenues(c *gin.Context) {
	revenues, err := h.revenueService.ListCashRevenues(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list cash revenues")
		return
	}
	c.JSON(http.StatusOK, revenues)
}

// createCreditRevenue godoc
// @Summary Record a credit sale
// @Description Records a sale on account and posts debit Accounts Receivable / credit Sales Revenue
// @Tags revenues
// @Accept  json
// @Produce  json
// @Param   revenue body dto.CreateCreditRevenueRequest true "Credit sale"
// @Success 201 {object} dto.PostedResponse[domain.CreditRevenue]
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 404 {object} map[string]string "Customer not found"
// @Failure 500 {object} map[string]string "Failed to record credit revenue"
// @Security BearerAuth
// @Router /credit-revenues [post]
func (h *revenueHandler) createCreditRevenue(c *gin.Context) {
	var req dto.CreateCreditRevenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "CreateCreditRevenue")
		return
	}
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	posted, err := h.revenueService.CreateCreditRevenue(c.Request.Context(), req, caller)
	if err != nil {
		respondError(c, err, "Failed to record credit revenue")
		return
	}
	c.JSON(http.StatusCreated, dto.ToPostedResponse(posted, "Penjualan kredit berhasil dicatat"))
}

// listCreditRevenues godoc
// @Summary List credit sales with their payments
// @Tags revenues
// @Produce  json
// @Success 200 {array} domain.CreditRevenue
// @Failure 500 {object} map[string]string "Failed to list credit revenues"
// @Security BearerAuth
// @Router /credit-revenues [get]
func (h *revenueHandler) listCreditRevenues(c *gin.Context) {
	revenues, err := h.revenueService.ListCreditRevenues(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list credit revenues")
		return
	}
	c.JSON(http.StatusOK, revenues)
}

// getCreditRevenue godoc
// @Summary Get a credit sale
// @Tags revenues
// @Produce  json
// @Param   creditID path string true "Credit revenue ID"
// @Success 200 {object} domain.CreditRevenue
// @Failure 404 {object} map[string]string "Credit revenue not found"
// @Security BearerAuth
// @Router /credit-revenues/{creditID} [get]
func (h *revenueHandler) getCreditRevenue(c *gin.Context) {
	credit, err := h.revenueService.GetCreditRevenueByID(c.Request.Context(), c.Param("creditID"))
	if err != nil {
		respondError(c, err, "Failed to get credit revenue")
		return
	}
	c.JSON(http.StatusOK, credit)
}

// createReceivablePayment godoc
// @Summary Record a receivable payment
// @Description Settles part or all of a credit sale and posts debit Cash / credit Accounts Receivable
// @Tags revenues
// @Accept  json
// @Produce  json
// @Param   payment body dto.CreateReceivablePaymentRequest true "Payment"
// @Success 201 {object} dto.PostedResponse[domain.ReceivablePayment]
// @Failure 400 {object} map[string]string "Validation error, e.g. overpayment"
// @Failure 404 {object} map[string]string "Credit revenue not found"
// @Failure 409 {object} map[string]string "Concurrent payment conflict"
// @Failure 500 {object} map[string]string "Failed to record receivable payment"
// @Security BearerAuth
// @Router /receivable-payments [post]
func (h *revenueHandler) createReceivablePayment(c *gin.Context) {
	var req dto.CreateReceivablePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "CreateReceivablePayment")
		return
	}
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Received receivable payment",
		slog.String("credit_revenue_id", req.CreditID))

	posted, err := h.revenueService.CreateReceivablePayment(c.Request.Context(), req, caller)
	if err != nil {
		respondError(c, err, "Failed to record receivable payment")
		return
	}
	c.JSON(http.StatusCreated, dto.ToPostedResponse(posted, "Pembayaran piutang berhasil dicatat"))
}

// listReceivablePayments godoc
// @Summary List receivable payments
// @Tags revenues
// @Produce  json
// @Success 200 {array} domain.ReceivablePayment
// @Security BearerAuth
// @Router /receivable-payments [get]
func (h *revenueHandler) listReceivablePayments(c *gin.Context) {
	payments, err := h.revenueService.ListReceivablePayments(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list receivable payments")
		return
	}
	c.JSON(http.StatusOK, payments)
}

// createOtherIncome godoc
// @Summary Record other income
// @Description Records non-sales income and posts debit Cash / credit Other Income
// @Tags revenues
// @Accept  json
// @Produce  json
// @Param   income body dto.CreateOtherIncomeRequest true "Other income"
// @Success 201 {object} dto.PostedResponse[domain.OtherIncome]
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 500 {object} map[string]string "Failed to record other income"
// @Security BearerAuth
// @Router /other-incomes [post]
func (h *revenueHandler) createOtherIncome(c *gin.Context) {
	var req dto.CreateOtherIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "CreateOtherIncome")
		return
	}
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	posted, err := h.revenueService.CreateOtherIncome(c.Request.Context(), req, caller)
	if err != nil {
		respondError(c, err, "Failed to record other income")
		return
	}
	c.JSON(http.StatusCreated, dto.ToPostedResponse(posted, "Pendapatan lain berhasil dicatat"))
}

// listOtherIncomes godoc
// @Summary List other incomes
// @Tags revenues
// @Produce  json
// @Success 200 {array} domain.OtherIncome
// @Security BearerAuth
// @Router /other-incomes [get]
func (h *revenueHandler) listOtherIncomes(c *gin.Context) {
	incomes, err := h.revenueService.ListOtherIncomes(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list other incomes")
		return
	}
	c.JSON(http.StatusOK, incomes)
}
