package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jv1nicius/keyControlBack/internal/model"
	"github.com/jv1nicius/keyControlBack/internal/repository"
	"github.com/jv1nicius/keyControlBack/internal/validation"
)

// ReservationHandler serves the reservation lifecycle.  Create runs the
// full admission sequence inside one transaction: room lock, referential
// checks, availability scan, field validation, insert.  The check order
// is part of the contract: a missing room or responsible answers 404
// before any conflict or validation response is possible.
type ReservationHandler struct {
	Rooms        *repository.RoomRepo
	Responsibles *repository.ResponsibleRepo
	Reservations *repository.ReservationRepo
}

// NewReservationHandler constructs a ReservationHandler.
func NewReservationHandler(rooms *repository.RoomRepo, responsibles *repository.ResponsibleRepo, reservations *repository.ReservationRepo) *ReservationHandler {
	return &ReservationHandler{Rooms: rooms, Responsibles: responsibles, Reservations: reservations}
}

type reservationCreateRequest struct {
	RoomID        uint64 `json:"room_id"`
	ResponsibleID uint64 `json:"responsible_id"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
}

type reservationUpdateRequest struct {
	RoomID        *uint64 `json:"room_id"`
	ResponsibleID *uint64 `json:"responsible_id"`
	StartTime     *string `json:"start_time"`
	EndTime       *string `json:"end_time"`
}

// List handles GET /reservations.
func (h *ReservationHandler) List(c echo.Context) error {
	page, perPage := pageParams(c)
	reservations, err := h.Reservations.List(c.Request().Context(), page, perPage)
	if err != nil {
		return storageError(c, "list reservations", err)
	}
	return c.JSON(http.StatusOK, reservations)
}

// Create handles POST /reservations.  All checks happen before the
// insert, and everything from the room lock onward shares one
// transaction so two concurrent requests for the same room cannot both
// pass the availability scan.
func (h *ReservationHandler) Create(c echo.Context) error {
	var body reservationCreateRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	ctx := c.Request().Context()
	tx, err := h.Reservations.DB().BeginTx(ctx, nil)
	if err != nil {
		return storageError(c, "begin reservation tx", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Referential checks first.  The FOR UPDATE lock on the room row
	// serializes concurrent creators of the same room until commit.
	if _, err := h.Rooms.LockTx(ctx, tx, body.RoomID); err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return storageError(c, "lock room", err)
	}
	if _, err := h.Responsibles.GetByID(ctx, body.ResponsibleID); err != nil {
		if errors.Is(err, repository.ErrResponsibleNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "responsible not found"})
		}
		return storageError(c, "get responsible", err)
	}

	details := map[string]string{}
	start, errStart := validation.ParseTimestamp(body.StartTime)
	if errStart != nil {
		details["start_time"] = validation.MsgISO8601
	}
	end, errEnd := validation.ParseTimestamp(body.EndTime)
	if errEnd != nil {
		details["end_time"] = validation.MsgISO8601
	}
	if len(details) > 0 {
		return invalidData(c, details)
	}

	// Availability: scan every reservation of the room and test the
	// half-open overlap predicate.  Touching boundaries do not conflict.
	existing, err := h.Reservations.ListByRoomTx(ctx, tx, body.RoomID)
	if err != nil {
		return storageError(c, "list room reservations", err)
	}
	if model.HasConflict(existing, start, end) {
		return c.JSON(http.StatusConflict, echo.Map{"error": "the room is not available for the requested period"})
	}

	if !start.Before(end) {
		return invalidData(c, map[string]string{"start_time": "the start_time field must be before end_time"})
	}

	res := &model.Reservation{
		RoomID:        body.RoomID,
		ResponsibleID: body.ResponsibleID,
		StartTime:     start,
		EndTime:       end,
	}
	if err := h.Reservations.CreateTx(ctx, tx, res); err != nil {
		return storageError(c, "create reservation", err)
	}
	if err := tx.Commit(); err != nil {
		return storageError(c, "commit reservation", err)
	}
	committed = true
	return c.JSON(http.StatusCreated, res)
}

// Get handles GET /reservations/:id.
func (h *ReservationHandler) Get(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
	}
	res, err := h.Reservations.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return storageError(c, "get reservation", err)
	}
	return c.JSON(http.StatusOK, res)
}

// Update handles PUT /reservations/:id.  Only the supplied fields are
// validated and applied.  Interval changes bypass the availability
// scan: an update can move a reservation onto an occupied slot.
func (h *ReservationHandler) Update(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
	}
	ctx := c.Request().Context()
	res, err := h.Reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return storageError(c, "get reservation", err)
	}

	var body reservationUpdateRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	details := map[string]string{}
	var start, end time.Time
	if body.StartTime != nil {
		if start, err = validation.ParseTimestamp(*body.StartTime); err != nil {
			details["start_time"] = validation.MsgISO8601
		}
	}
	if body.EndTime != nil {
		if end, err = validation.ParseTimestamp(*body.EndTime); err != nil {
			details["end_time"] = validation.MsgISO8601
		}
	}
	if len(details) > 0 {
		return invalidData(c, details)
	}

	if body.RoomID != nil {
		res.RoomID = *body.RoomID
	}
	if body.ResponsibleID != nil {
		res.ResponsibleID = *body.ResponsibleID
	}
	if body.StartTime != nil {
		res.StartTime = start
	}
	if body.EndTime != nil {
		res.EndTime = end
	}
	if err := h.Reservations.Update(ctx, res); err != nil {
		return storageError(c, "update reservation", err)
	}
	return c.JSON(http.StatusOK, res)
}

// Delete handles DELETE /reservations/:id.  History snapshots taken
// from this reservation stay in place.
func (h *ReservationHandler) Delete(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
	}
	if err := h.Reservations.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return storageError(c, "delete reservation", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "reservation deleted"})
}
