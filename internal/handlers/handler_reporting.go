package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/revenue_cycle_app/internal/core/ports/services"
	"github.com/SscSPs/revenue_cycle_app/internal/dto"
	"github.com/gin-gonic/gin"
)

type reportingHandler struct {
	reportingService portssvc.ReportingService
	auditService     portssvc.AuditReaderSvc
}

func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService, auditService portssvc.AuditReaderSvc) {
	h := &reportingHandler{reportingService: reportingService, auditService: auditService}

	rg.GET("/dashboard", h.getDashboard)
	rg.GET("/audit-trail", h.listAuditTrail)
}

// getDashboard godoc
// @Summary Dashboard figures
// @Description Total revenue, outstanding receivables, total cash in and the latest cash sales
// @Tags reports
// @Produce  json
// @Success 200 {object} domain.DashboardSummary
// @Security BearerAuth
// @Router /dashboard [get]
func (h *reportingHandler) getDashboard(c *gin.Context) {
	summary, err := h.reportingService.GetDashboard(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to build dashboard")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// listAuditTrail godoc
// @Summary Latest audit records
// @Tags reports
// @Produce  json
// @Param   limit query int false "Number of records" default(100)
// @Success 200 {array} domain.AuditRecord
// @Security BearerAuth
// @Router /audit-trail [get]
func (h *reportingHandler) listAuditTrail(c *gin.Context) {
	var params dto.AuditTrailParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err, "ListAuditTrail")
		return
	}

	records, err := h.auditService.ListAuditTrail(c.Request.Context(), params.Limit)
	if err != nil {
		respondError(c, err, "Failed to list audit trail")
		return
	}
	c.JSON(http.StatusOK, records)
}
