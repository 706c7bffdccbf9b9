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

// RoomHandler serves the CRUD surface for rooms.
type RoomHandler struct {
	Rooms    *repository.RoomRepo
	Validate *validator.Validate
}

// NewRoomHandler constructs a RoomHandler.
func NewRoomHandler(rooms *repository.RoomRepo, v *validator.Validate) *RoomHandler {
	return &RoomHandler{Rooms: rooms, Validate: v}
}

type roomCreateRequest struct {
	Name    string `json:"name" validate:"required,min=3,max=255"`
	KeyName string `json:"key_name" validate:"required,min=3,max=255"`
}

type roomUpdateRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=3,max=255"`
	KeyName *string `json:"key_name" validate:"omitempty,min=3,max=255"`
}

// List handles GET /rooms.
func (h *RoomHandler) List(c echo.Context) error {
	page, perPage := pageParams(c)
	rooms, err := h.Rooms.List(c.Request().Context(), page, perPage)
	if err != nil {
		return storageError(c, "list rooms", err)
	}
	return c.JSON(http.StatusOK, rooms)
}

// Create handles POST /rooms.
func (h *RoomHandler) Create(c echo.Context) error {
	var body roomCreateRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := h.Validate.Struct(&body); err != nil {
		return invalidData(c, validation.Fields(err))
	}
	room := &model.Room{Name: body.Name, KeyName: body.KeyName}
	if err := h.Rooms.Create(c.Request().Context(), room); err != nil {
		return storageError(c, "create room", err)
	}
	return c.JSON(http.StatusCreated, room)
}

// Get handles GET /rooms/:id.
func (h *RoomHandler) Get(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
	}
	room, err := h.Rooms.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return storageError(c, "get room", err)
	}
	return c.JSON(http.StatusOK, room)
}

// Update handles PUT /rooms/:id.  Only the supplied fields change.
func (h *RoomHandler) Update(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
	}
	room, err := h.Rooms.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return storageError(c, "get room", err)
	}
	var body roomUpdateRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := h.Validate.Struct(&body); err != nil {
		return invalidData(c, validation.Fields(err))
	}
	if body.Name != nil {
		room.Name = *body.Name
	}
	if body.KeyName != nil {
		room.KeyName = *body.KeyName
	}
	if err := h.Rooms.Update(c.Request().Context(), room); err != nil {
		return storageError(c, "update room", err)
	}
	return c.JSON(http.StatusOK, room)
}

// Delete handles DELETE /rooms/:id.
func (h *RoomHandler) Delete(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
	}
	if err := h.Rooms.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return storageError(c, "delete room", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "room deleted"})
}
