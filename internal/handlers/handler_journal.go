package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/revenue_cycle_app/internal/core/ports/services"
	"github.com/SscSPs/revenue_cycle_app/internal/dto"
	"github.com/gin-gonic/gin"
)

type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

func newJournalHandler(journalService portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{journalService: journalService}
}

func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	journals := rg.Group("/journal-entries")
	{
		journals.POST("", h.createManualJournal)
		journals.GET("", h.listJournalEntries)
		journals.GET("/:journalEntryID", h.getJournalEntry)
	}
}

// createManualJournal godoc
// @Summary Post a manual journal entry
// @Description Administrators only. Debits and credits must balance within 0.01.
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   journal body dto.CreateManualJournalRequest true "Journal lines"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Unbalanced or invalid lines"
// @Failure 403 {object} map[string]string "Caller is not an administrator"
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /journal-entries [post]
func (h *journalHandler) createManualJournal(c *gin.Context) {
	var req dto.CreateManualJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "CreateManualJournal")
		return
	}
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	entry, err := h.journalService.CreateManualJournal(c.Request.Context(), req, caller)
	if err != nil {
		respondError(c, err, "Failed to create journal entry")
		return
	}
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// listJournalEntries godoc
// @Summary List journal entries
// @Description Newest first, with lines. Pass nextToken from the previous page to continue.
// @Tags journals
// @Produce  json
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListJournalEntriesResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Security BearerAuth
// @Router /journal-entries [get]
func (h *journalHandler) listJournalEntries(c *gin.Context) {
	var params dto.ListJournalEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err, "ListJournalEntries")
		return
	}

	resp, err := h.journalService.ListJournalEntries(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list journal entries")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getJournalEntry godoc
// @Summary Get a journal entry with its lines
// @Tags journals
// @Produce  json
// @Param   journalEntryID path string true "Journal entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 404 {object} map[string]string "Journal entry not found"
// @Security BearerAuth
// @Router /journal-entries/{journalEntryID} [get]
func (h *journalHandler) getJournalEntry(c *gin.Context) {
	entry, err := h.journalService.GetJournalEntryByID(c.Request.Context(), c.Param("journalEntryID"))
	if err != nil {
		respondError(c, err, "Failed to get journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}
