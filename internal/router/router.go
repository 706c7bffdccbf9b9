// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/jv1nicius/keyControlBack/internal/handler"
)

// RegisterRoutes wires every handler onto the provided Echo instance.
// The surface is five CRUD resources plus a health check; POST on
// /reservations and /finalizations carry the lifecycle semantics
// (conflict admission, atomic finalize) rather than plain inserts.
func RegisterRoutes(e *echo.Echo, rooms *handler.RoomHandler, responsibles *handler.ResponsibleHandler, reservations *handler.ReservationHandler, finalizations *handler.FinalizationHandler, history *handler.HistoryHandler) {
	e.GET("/healthz", handler.Health)

	e.GET("/rooms", rooms.List)
	e.POST("/rooms", rooms.Create)
	e.GET("/rooms/:id", rooms.Get)
	e.PUT("/rooms/:id", rooms.Update)
	e.DELETE("/rooms/:id", rooms.Delete)

	e.GET("/responsibles", responsibles.List)
	e.POST("/responsibles", responsibles.Create)
	e.GET("/responsibles/:id", responsibles.Get)
	e.PUT("/responsibles/:id", responsibles.Update)
	e.DELETE("/responsibles/:id", responsibles.Delete)

	e.GET("/reservations", reservations.List)
	e.POST("/reservations", reservations.Create)
	e.GET("/reservations/:id", reservations.Get)
	e.PUT("/reservations/:id", reservations.Update)
	e.DELETE("/reservations/:id", reservations.Delete)

	e.GET("/finalizations", finalizations.List)
	e.POST("/finalizations", finalizations.Create)
	e.GET("/finalizations/:id", finalizations.Get)
	e.PUT("/finalizations/:id", finalizations.Update)
	e.DELETE("/finalizations/:id", finalizations.Delete)

	e.GET("/history", history.List)
	e.POST("/history", history.Create)
	e.GET("/history/:id", history.Get)
	e.PUT("/history/:id", history.Update)
	e.DELETE("/history/:id", history.Delete)
}
