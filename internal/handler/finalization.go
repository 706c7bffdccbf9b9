package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jv1nicius/keyControlBack/internal/model"
	"github.com/jv1nicius/keyControlBack/internal/queue"
	"github.com/jv1nicius/keyControlBack/internal/repository"
	queue_publisher "github.com/jv1nicius/keyControlBack/internal/service"
	"github.com/jv1nicius/keyControlBack/internal/validation"
)

// FinalizationHandler serves the finalization surface.  Create is the
// finalize operation: it writes the finalization row and the history
// snapshot in one transaction, both or neither.  Finalizations are an
// additive log; the reservation row survives and may be finalized
// again.
type FinalizationHandler struct {
	Reservations  *repository.ReservationRepo
	Finalizations *repository.FinalizationRepo
	History       *repository.HistoryRepo
}

// NewFinalizationHandler constructs a FinalizationHandler.
func NewFinalizationHandler(reservations *repository.ReservationRepo, finalizations *repository.FinalizationRepo, history *repository.HistoryRepo) *FinalizationHandler {
	return &FinalizationHandler{Reservations: reservations, Finalizations: finalizations, History: history}
}

type finalizationCreateRequest struct {
	ReservationID uint64 `json:"reservation_id"`
	FinalizedAt   string `json:"finalized_at"`
}

type finalizationUpdateRequest struct {
	ReservationID *uint64 `json:"reservation_id"`
	FinalizedAt   *string `json:"finalized_at"`
}

// List handles GET /finalizations.
func (h *FinalizationHandler) List(c echo.Context) error {
	page, perPage := pageParams(c)
	finalizations, err := h.Finalizations.List(c.Request().Context(), page, perPage)
	if err != nil {
		return storageError(c, "list finalizations", err)
	}
	return c.JSON(http.StatusOK, finalizations)
}

// Create handles POST /finalizations.  The reservation must exist
// (404), the timestamp must parse (422); then the finalization and the
// history snapshot commit together.  The broker event goes out only
// after the commit and never fails the request.
func (h *FinalizationHandler) Create(c echo.Context) error {
	var body finalizationCreateRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	ctx := c.Request().Context()
	tx, err := h.Finalizations.DB().BeginTx(ctx, nil)
	if err != nil {
		return storageError(c, "begin finalization tx", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := h.Reservations.GetByIDTx(ctx, tx, body.ReservationID)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return storageError(c, "get reservation", err)
	}

	finalizedAt, err := validation.ParseTimestamp(body.FinalizedAt)
	if err != nil {
		return invalidData(c, map[string]string{"finalized_at": validation.MsgISO8601})
	}

	fin := &model.Finalization{ReservationID: res.ID, FinalizedAt: finalizedAt}
	if err := h.Finalizations.CreateTx(ctx, tx, fin); err != nil {
		return storageError(c, "create finalization", err)
	}
	entry := &model.HistoryEntry{
		ReservationID: res.ID,
		RoomID:        res.RoomID,
		ResponsibleID: res.ResponsibleID,
		StartTime:     res.StartTime,
		EndTimeActual: finalizedAt,
	}
	if err := h.History.CreateTx(ctx, tx, entry); err != nil {
		return storageError(c, "create history entry", err)
	}
	if err := tx.Commit(); err != nil {
		return storageError(c, "commit finalization", err)
	}
	committed = true
	log.Printf("finalization %d created, reservation %d archived to history", fin.ID, res.ID)

	// Best-effort event after commit; the broker being down is not the
	// caller's problem.
	event := queue.ReservationFinalizedEvent{
		FinalizationID: fin.ID,
		ReservationID:  res.ID,
		RoomID:         res.RoomID,
		ResponsibleID:  res.ResponsibleID,
		StartedAt:      res.StartTime.UTC().Format(time.RFC3339),
		FinalizedAt:    finalizedAt.UTC().Format(time.RFC3339),
	}
	go func() {
		pctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = queue_publisher.PublishReservationFinalized(pctx, event)
	}()

	return c.JSON(http.StatusCreated, fin)
}

// Get handles GET /finalizations/:id.
func (h *FinalizationHandler) Get(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "finalization not found"})
	}
	fin, err := h.Finalizations.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrFinalizationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "finalization not found"})
		}
		return storageError(c, "get finalization", err)
	}
	return c.JSON(http.StatusOK, fin)
}

// Update handles PUT /finalizations/:id.  Only the supplied fields
// change; the history snapshot created at finalize time is untouched.
func (h *FinalizationHandler) Update(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "finalization not found"})
	}
	ctx := c.Request().Context()
	fin, err := h.Finalizations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrFinalizationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "finalization not found"})
		}
		return storageError(c, "get finalization", err)
	}

	var body finalizationUpdateRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.FinalizedAt != nil {
		t, err := validation.ParseTimestamp(*body.FinalizedAt)
		if err != nil {
			return invalidData(c, map[string]string{"finalized_at": validation.MsgISO8601})
		}
		fin.FinalizedAt = t
	}
	if body.ReservationID != nil {
		fin.ReservationID = *body.ReservationID
	}
	if err := h.Finalizations.Update(ctx, fin); err != nil {
		return storageError(c, "update finalization", err)
	}
	return c.JSON(http.StatusOK, fin)
}

// Delete handles DELETE /finalizations/:id.
func (h *FinalizationHandler) Delete(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "finalization not found"})
	}
	if err := h.Finalizations.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrFinalizationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "finalization not found"})
		}
		return storageError(c, "delete finalization", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "finalization deleted"})
}
