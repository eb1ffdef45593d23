package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/athena_ledger/internal/core/ports/services"
	"github.com/SscSPs/athena_ledger/internal/dto"
	"github.com/SscSPs/athena_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// journalHandler handles HTTP requests related to journal entries and their lifecycle.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
	postingService portssvc.PostingSvc
}

// newJournalHandler creates a new journalHandler.
func newJournalHandler(js portssvc.JournalSvcFacade, ps portssvc.PostingSvc) *journalHandler {
	return &journalHandler{
		journalService: js,
		postingService: ps,
	}
}

// registerJournalRoutes registers routes related to journal entries.
func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade, postingService portssvc.PostingSvc) {
	h := newJournalHandler(journalService, postingService)

	entries := rg.Group("/journal-entries")
	{
		entries.POST("", h.createJournal)
		entries.GET("", h.listJournals)
		entries.GET("/:id", h.getJournal)
		entries.PATCH("/:id", h.updateJournal)
		entries.POST("/:id/post", h.postJournal)
		entries.POST("/:id/void", h.voidJournal)
		entries.POST("/:id/reversal", h.createReversal)
	}
}

// createJournal godoc
// @Summary Create a draft journal entry
// @Description Creates a DRAFT entry with its lines. Balance is checked when the entry is posted.
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   entry body dto.CreateJournalRequest true "Entry and lines"
// @Success 201 {object} dto.JournalResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create journal entry"
// @Security BearerAuth
// @Router /journal-entries [post]
func (h *journalHandler) createJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	scope, userID, ok := requestIdentity(c, logger)
	if !ok {
		return
	}

	var req dto.CreateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateJournal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("scope", scope.String()))
	entry, err := h.journalService.CreateJournal(c.Request.Context(), scope, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create journal entry")
		return
	}

	logger.Info("Journal entry created successfully", slog.String("entry_id", entry.EntryID), slog.Int("line_count", len(entry.Lines)))
	c.JSON(http.StatusCreated, dto.ToJournalResponse(entry))
}

// getJournal godoc
// @Summary Get a journal entry
// @Description Retrieves an entry with its lines
// @Tags journal-entries
// @Produce  json
// @Param   id path string true "Entry ID"
// @Success 200 {object} dto.JournalResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Journal entry not found"
// @Failure 500 {object} map[string]string "Failed to retrieve journal entry"
// @Security BearerAuth
// @Router /journal-entries/{id} [get]
func (h *journalHandler) getJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	scope, _, ok := requestIdentity(c, logger)
	if !ok {
		return
	}
	entryID := c.Param("id")

	entry, err := h.journalService.GetJournalByID(c.Request.Context(), scope, entryID)
	if err != nil {
		respondServiceError(c, logger.With(slog.String("entry_id", entryID)), err, "Failed to retrieve journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalResponse(entry))
}

// listJournals godoc
// @Summary List journal entries
// @Description Lists entries newest entry date first, with token based pagination
// @Tags journal-entries
// @Produce  json
// @Param   status query string false "DRAFT, POSTED or VOID"
// @Param   limit query int false "Page size" default(50)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListJournalsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list journal entries"
// @Security BearerAuth
// @Router /journal-entries [get]
func (h *journalHandler) listJournals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	scope, _, ok := requestIdentity(c, logger)
	if !ok {
		return
	}

	var params dto.ListJournalsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListJournals", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.journalService.ListJournals(c.Request.Context(), scope, params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list journal entries")
		return
	}

	logger.Info("Journal entries listed successfully", slog.Int("count", len(resp.Entries)))
	c.JSON(http.StatusOK, resp)
}

// updateJournal godoc
// @Summary Update a draft journal entry
// @Description Edits a DRAFT entry. Lines, when given, replace all existing lines.
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   id path string true "Entry ID"
// @Param   entry body dto.UpdateJournalRequest true "Fields to change"
// @Success 200 {object} dto.JournalResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Journal entry not found"
// @Failure 409 {object} map[string]string "Entry is not a draft or was modified concurrently"
// @Failure 500 {object} map[string]string "Failed to update journal entry"
// @Security BearerAuth
// @Router /journal-entries/{id} [patch]
func (h *journalHandler) updateJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	scope, userID, ok := requestIdentity(c, logger)
	if !ok {
		return
	}
	entryID := c.Param("id")
	logger = logger.With(slog.String("entry_id", entryID))

	var req dto.UpdateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateJournal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	entry, err := h.journalService.UpdateJournal(c.Request.Context(), scope, entryID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update journal entry")
		return
	}

	logger.Info("Journal entry updated successfully")
	c.JSON(http.StatusOK, dto.ToJournalResponse(entry))
}

// bindTransition reads the optional transition body. An empty body is allowed.
func bindTransition(c *gin.Context, logger *slog.Logger) (dto.TransitionRequest, bool) {
	var req dto.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		logger.Warn("Failed to bind JSON for transition", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return req, false
	}
	return req, true
}

// postJournal godoc
// @Summary Post a journal entry
// @Description Moves a balanced DRAFT entry to POSTED
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   id path string true "Entry ID"
// @Param   body body dto.TransitionRequest false "Optimistic concurrency check"
// @Success 200 {object} dto.JournalResponse
// @Failure 400 {object} map[string]string "Entry is unbalanced or has no lines"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Journal entry not found"
// @Failure 409 {object} map[string]string "Entry is not a draft or was modified concurrently"
// @Failure 500 {object} map[string]string "Failed to post journal entry"
// @Security BearerAuth
// @Router /journal-entries/{id}/post [post]
func (h *journalHandler) postJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	scope, userID, ok := requestIdentity(c, logger)
	if !ok {
		return
	}
	entryID := c.Param("id")
	logger = logger.With(slog.String("entry_id", entryID))

	req, ok := bindTransition(c, logger)
	if !ok {
		return
	}

	entry, err := h.postingService.PostJournal(c.Request.Context(), scope, entryID, req.ExpectedVersion, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to post journal entry")
		return
	}

	logger.Info("Journal entry posted successfully")
	c.JSON(http.StatusOK, dto.ToJournalResponse(entry))
}

// voidJournal godoc
// @Summary Void a journal entry
// @Description Moves a POSTED entry to VOID. Lines are kept.
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   id path string true "Entry ID"
// @Param   body body dto.TransitionRequest false "Optimistic concurrency check"
// @Success 200 {object} dto.JournalResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Journal entry not found"
// @Failure 409 {object} map[string]string "Entry is not posted or was modified concurrently"
// @Failure 500 {object} map[string]string "Failed to void journal entry"
// @Security BearerAuth
// @Router /journal-entries/{id}/void [post]
func (h *journalHandler) voidJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	scope, userID, ok := requestIdentity(c, logger)
	if !ok {
		return
	}
	entryID := c.Param("id")
	logger = logger.With(slog.String("entry_id", entryID))

	req, ok := bindTransition(c, logger)
	if !ok {
		return
	}

	entry, err := h.postingService.VoidJournal(c.Request.Context(), scope, entryID, req.ExpectedVersion, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to void journal entry")
		return
	}

	logger.Info("Journal entry voided successfully")
	c.JSON(http.StatusOK, dto.ToJournalResponse(entry))
}

// createReversal godoc
// @Summary Create a reversal draft
// @Description Creates a DRAFT entry mirroring a POSTED entry with debits and credits swapped
// @Tags journal-entries
// @Produce  json
// @Param   id path string true "Entry ID to reverse"
// @Success 201 {object} dto.JournalResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Journal entry not found"
// @Failure 409 {object} map[string]string "Entry is not posted"
// @Failure 500 {object} map[string]string "Failed to create reversal"
// @Security BearerAuth
// @Router /journal-entries/{id}/reversal [post]
func (h *journalHandler) createReversal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	scope, userID, ok := requestIdentity(c, logger)
	if !ok {
		return
	}
	entryID := c.Param("id")
	logger = logger.With(slog.String("entry_id", entryID))

	reversal, err := h.journalService.CreateReversal(c.Request.Context(), scope, entryID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create reversal")
		return
	}

	logger.Info("Reversal draft created successfully", slog.String("reversal_entry_id", reversal.EntryID))
	c.JSON(http.StatusCreated, dto.ToJournalResponse(reversal))
}
