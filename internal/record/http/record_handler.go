// Package http provides HTTP handlers for record operations.
package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/demands/internal/httputil"
	recordDomain "github.com/allisson/demands/internal/record/domain"
	"github.com/allisson/demands/internal/record/http/dto"
	recordUseCase "github.com/allisson/demands/internal/record/usecase"
	customValidation "github.com/allisson/demands/internal/validation"
)

// RecordHandler handles HTTP requests for record operations.
//
// The record store is not safe for concurrent use, so every handler holds mu for the
// whole store call.
type RecordHandler struct {
	mu            sync.Mutex
	recordUseCase recordUseCase.RecordUseCase
	clock         func() time.Time
	logger        *slog.Logger
}

// NewRecordHandler creates a new record handler.
func NewRecordHandler(
	recordUseCase recordUseCase.RecordUseCase,
	clock func() time.Time,
	logger *slog.Logger,
) *RecordHandler {
	return &RecordHandler{
		recordUseCase: recordUseCase,
		clock:         clock,
		logger:        logger,
	}
}

// ListHandler lists records in display order.
// GET /v1/records?filter=pending|completed|cancelled&due=YYYY-MM-DD&completed_from=&completed_to=
func (h *RecordHandler) ListHandler(c *gin.Context) {
	var query dto.ListRecordsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := query.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	ctx := c.Request.Context()

	h.mu.Lock()
	defer h.mu.Unlock()

	var views []recordDomain.View
	switch {
	case query.Due != "":
		due, _ := recordDomain.ParseDate(query.Due)
		views = h.recordUseCase.DueOn(ctx, due)
	case query.CompletedFrom != "":
		from, _ := recordDomain.ParseDate(query.CompletedFrom)
		to, _ := recordDomain.ParseDate(query.CompletedTo)
		views = h.recordUseCase.CompletedBetween(ctx, from, to)
	case query.Filter == dto.FilterPending:
		views = h.recordUseCase.Pending(ctx)
	case query.Filter == dto.FilterCompleted:
		views = h.recordUseCase.Completed(ctx)
	case query.Filter == dto.FilterCancelled:
		views = h.recordUseCase.Cancelled(ctx)
	default:
		views = h.recordUseCase.View(ctx)
	}

	c.JSON(http.StatusOK, dto.MapViewsToListResponse(views))
}

// CreateHandler creates a record.
// POST /v1/records - Returns 201 Created with the new id.
func (h *RecordHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	id, err := h.recordUseCase.Add(c.Request.Context(), req.Fields)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.CreateRecordResponse{ID: id.String()})
}

// GetHandler returns one record.
// GET /v1/records/:id
func (h *RecordHandler) GetHandler(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	record, err := h.recordUseCase.Get(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapRecordToResponse(record, recordDomain.DateOf(h.clock())))
}

// UpdateHandler applies a partial update.
// PATCH /v1/records/:id - Returns 200 OK with the updated record.
func (h *RecordHandler) UpdateHandler(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req dto.UpdateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	record, err := h.recordUseCase.Update(c.Request.Context(), id, req.Fields)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapRecordToResponse(record, recordDomain.DateOf(h.clock())))
}

// DeleteHandler deletes a record.
// DELETE /v1/records/:id - Returns 204 No Content, 404 when unknown, 409 when completed.
func (h *RecordHandler) DeleteHandler(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()

	h.mu.Lock()
	defer h.mu.Unlock()

	record, err := h.recordUseCase.Get(ctx, id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	if record.IsCompleted() {
		httputil.HandleErrorGin(c, recordDomain.ErrRecordCompleted, h.logger)
		return
	}

	deleted, err := h.recordUseCase.Delete(ctx, id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	if !deleted {
		httputil.HandleErrorGin(c, recordDomain.ErrRecordNotFound, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

func (h *RecordHandler) parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid record id: %w", err), h.logger)
		return uuid.Nil, false
	}
	return id, true
}
