package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/jv1nicius/keyControlBack/internal/model"
	"github.com/jv1nicius/keyControlBack/internal/repository"
	"github.com/jv1nicius/keyControlBack/internal/validation"
)

// ResponsibleHandler serves the CRUD surface for responsibles.  The
// siap and cpf fields are checked for uniqueness in the handler before
// any insert, so callers get a field-level validation message instead
// of a constraint error; the unique indexes behind them only catch the
// concurrent-write race.
type ResponsibleHandler struct {
	Responsibles *repository.ResponsibleRepo
	Validate     *validator.Validate
}

// NewResponsibleHandler constructs a ResponsibleHandler.
func NewResponsibleHandler(responsibles *repository.ResponsibleRepo, v *validator.Validate) *ResponsibleHandler {
	return &ResponsibleHandler{Responsibles: responsibles, Validate: v}
}

type responsibleCreateRequest struct {
	Name      string `json:"name" validate:"required,min=4,max=255"`
	Siap      string `json:"siap" validate:"required,min=4,max=255"`
	CPF       string `json:"cpf" validate:"required,min=4,max=255"`
	BirthDate string `json:"birth_date" validate:"required"`
}

type responsibleUpdateRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=4,max=255"`
	Siap      *string `json:"siap" validate:"omitempty,min=4,max=255"`
	CPF       *string `json:"cpf" validate:"omitempty,min=4,max=255"`
	BirthDate *string `json:"birth_date"`
}

// List handles GET /responsibles.
func (h *ResponsibleHandler) List(c echo.Context) error {
	page, perPage := pageParams(c)
	responsibles, err := h.Responsibles.List(c.Request().Context(), page, perPage)
	if err != nil {
		return storageError(c, "list responsibles", err)
	}
	return c.JSON(http.StatusOK, responsibles)
}

// Create handles POST /responsibles.
func (h *ResponsibleHandler) Create(c echo.Context) error {
	var body responsibleCreateRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	details := map[string]string{}
	if err := h.Validate.Struct(&body); err != nil {
		details = validation.Fields(err)
	}
	var birthDate time.Time
	if body.BirthDate != "" {
		var err error
		if birthDate, err = validation.ParseTimestamp(body.BirthDate); err != nil {
			details["birth_date"] = validation.MsgISO8601
		}
	}

	ctx := c.Request().Context()
	if body.Siap != "" {
		if inUse, err := h.Responsibles.SiapInUse(ctx, body.Siap, 0); err != nil {
			return storageError(c, "check siap uniqueness", err)
		} else if inUse {
			details["siap"] = "the siap field must be unique"
		}
	}
	if body.CPF != "" {
		if inUse, err := h.Responsibles.CPFInUse(ctx, body.CPF, 0); err != nil {
			return storageError(c, "check cpf uniqueness", err)
		} else if inUse {
			details["cpf"] = "the cpf field must be unique"
		}
	}
	if len(details) > 0 {
		return invalidData(c, details)
	}

	resp := &model.Responsible{Name: body.Name, Siap: body.Siap, CPF: body.CPF, BirthDate: birthDate}
	if err := h.Responsibles.Create(ctx, resp); err != nil {
		if repository.IsDuplicateEntry(err) {
			// Pre-check raced with a concurrent insert; same response shape.
			return invalidData(c, map[string]string{"siap": "the siap and cpf fields must be unique"})
		}
		return storageError(c, "create responsible", err)
	}
	return c.JSON(http.StatusCreated, resp)
}

// Get handles GET /responsibles/:id.
func (h *ResponsibleHandler) Get(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "responsible not found"})
	}
	resp, err := h.Responsibles.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrResponsibleNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "responsible not found"})
		}
		return storageError(c, "get responsible", err)
	}
	return c.JSON(http.StatusOK, resp)
}

// Update handles PUT /responsibles/:id.  Only the supplied fields
// change; uniqueness checks skip the row being updated.
func (h *ResponsibleHandler) Update(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "responsible not found"})
	}
	ctx := c.Request().Context()
	resp, err := h.Responsibles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrResponsibleNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "responsible not found"})
		}
		return storageError(c, "get responsible", err)
	}

	var body responsibleUpdateRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	details := map[string]string{}
	if err := h.Validate.Struct(&body); err != nil {
		details = validation.Fields(err)
	}
	if body.BirthDate != nil {
		if t, err := validation.ParseTimestamp(*body.BirthDate); err != nil {
			details["birth_date"] = validation.MsgISO8601
		} else {
			resp.BirthDate = t
		}
	}
	if body.Siap != nil {
		if inUse, err := h.Responsibles.SiapInUse(ctx, *body.Siap, id); err != nil {
			return storageError(c, "check siap uniqueness", err)
		} else if inUse {
			details["siap"] = "the siap field must be unique"
		}
	}
	if body.CPF != nil {
		if inUse, err := h.Responsibles.CPFInUse(ctx, *body.CPF, id); err != nil {
			return storageError(c, "check cpf uniqueness", err)
		} else if inUse {
			details["cpf"] = "the cpf field must be unique"
		}
	}
	if len(details) > 0 {
		return invalidData(c, details)
	}

	if body.Name != nil {
		resp.Name = *body.Name
	}
	if body.Siap != nil {
		resp.Siap = *body.Siap
	}
	if body.CPF != nil {
		resp.CPF = *body.CPF
	}
	if err := h.Responsibles.Update(ctx, resp); err != nil {
		if repository.IsDuplicateEntry(err) {
			return invalidData(c, map[string]string{"siap": "the siap and cpf fields must be unique"})
		}
		return storageError(c, "update responsible", err)
	}
	return c.JSON(http.StatusOK, resp)
}

// Delete handles DELETE /responsibles/:id.
func (h *ResponsibleHandler) Delete(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "responsible not found"})
	}
	if err := h.Responsibles.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrResponsibleNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "responsible not found"})
		}
		return storageError(c, "delete responsible", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "responsible deleted"})
}
