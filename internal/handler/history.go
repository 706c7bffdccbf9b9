package handler

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/jv1nicius/keyControlBack/internal/model"
	"github.com/jv1nicius/keyControlBack/internal/repository"
	"github.com/jv1nicius/keyControlBack/internal/validation"
)

// HistoryHandler serves the CRUD surface for history entries.  Entries
// are snapshots, so no referential checks apply here: the reservation a
// snapshot points to may be long gone.
type HistoryHandler struct {
	History  *repository.HistoryRepo
	Validate *validator.Validate
}

// NewHistoryHandler constructs a HistoryHandler.
func NewHistoryHandler(history *repository.HistoryRepo, v *validator.Validate) *HistoryHandler {
	return &HistoryHandler{History: history, Validate: v}
}

type historyCreateRequest struct {
	ReservationID uint64 `json:"reservation_id" validate:"required"`
	RoomID        uint64 `json:"room_id" validate:"required"`
	ResponsibleID uint64 `json:"responsible_id" validate:"required"`
	StartTime     string `json:"start_time" validate:"required"`
	EndTimeActual string `json:"end_time_actual" validate:"required"`
}

type historyUpdateRequest struct {
	ReservationID *uint64 `json:"reservation_id"`
	RoomID        *uint64 `json:"room_id"`
	ResponsibleID *uint64 `json:"responsible_id"`
	StartTime     *string `json:"start_time"`
	EndTimeActual *string `json:"end_time_actual"`
}

// List handles GET /history.
func (h *HistoryHandler) List(c echo.Context) error {
	page, perPage := pageParams(c)
	entries, err := h.History.List(c.Request().Context(), page, perPage)
	if err != nil {
		return storageError(c, "list history", err)
	}
	return c.JSON(http.StatusOK, entries)
}

// Create handles POST /history.
func (h *HistoryHandler) Create(c echo.Context) error {
	var body historyCreateRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	details := map[string]string{}
	if err := h.Validate.Struct(&body); err != nil {
		details = validation.Fields(err)
	}
	entry := &model.HistoryEntry{
		ReservationID: body.ReservationID,
		RoomID:        body.RoomID,
		ResponsibleID: body.ResponsibleID,
	}
	if body.StartTime != "" {
		t, err := validation.ParseTimestamp(body.StartTime)
		if err != nil {
			details["start_time"] = validation.MsgISO8601
		} else {
			entry.StartTime = t
		}
	}
	if body.EndTimeActual != "" {
		t, err := validation.ParseTimestamp(body.EndTimeActual)
		if err != nil {
			details["end_time_actual"] = validation.MsgISO8601
		} else {
			entry.EndTimeActual = t
		}
	}
	if len(details) > 0 {
		return invalidData(c, details)
	}

	if err := h.History.Create(c.Request().Context(), entry); err != nil {
		return storageError(c, "create history entry", err)
	}
	return c.JSON(http.StatusCreated, entry)
}

// Get handles GET /history/:id.
func (h *HistoryHandler) Get(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "history entry not found"})
	}
	entry, err := h.History.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrHistoryNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "history entry not found"})
		}
		return storageError(c, "get history entry", err)
	}
	return c.JSON(http.StatusOK, entry)
}

// Update handles PUT /history/:id.  Only the supplied fields change.
func (h *HistoryHandler) Update(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "history entry not found"})
	}
	ctx := c.Request().Context()
	entry, err := h.History.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrHistoryNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "history entry not found"})
		}
		return storageError(c, "get history entry", err)
	}

	var body historyUpdateRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	details := map[string]string{}
	if body.StartTime != nil {
		if t, err := validation.ParseTimestamp(*body.StartTime); err != nil {
			details["start_time"] = validation.MsgISO8601
		} else {
			entry.StartTime = t
		}
	}
	if body.EndTimeActual != nil {
		if t, err := validation.ParseTimestamp(*body.EndTimeActual); err != nil {
			details["end_time_actual"] = validation.MsgISO8601
		} else {
			entry.EndTimeActual = t
		}
	}
	if len(details) > 0 {
		return invalidData(c, details)
	}

	if body.ReservationID != nil {
		entry.ReservationID = *body.ReservationID
	}
	if body.RoomID != nil {
		entry.RoomID = *body.RoomID
	}
	if body.ResponsibleID != nil {
		entry.ResponsibleID = *body.ResponsibleID
	}
	if err := h.History.Update(ctx, entry); err != nil {
		return storageError(c, "update history entry", err)
	}
	return c.JSON(http.StatusOK, entry)
}

// Delete handles DELETE /history/:id.
func (h *HistoryHandler) Delete(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "history entry not found"})
	}
	if err := h.History.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrHistoryNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "history entry not found"})
		}
		return storageError(c, "delete history entry", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "history entry deleted"})
}
