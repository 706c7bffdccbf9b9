package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/jv1nicius/keyControlBack/internal/config"
	"github.com/jv1nicius/keyControlBack/internal/database"
	"github.com/jv1nicius/keyControlBack/internal/handler"
	"github.com/jv1nicius/keyControlBack/internal/middleware"
	"github.com/jv1nicius/keyControlBack/internal/queue"
	"github.com/jv1nicius/keyControlBack/internal/repository"
	"github.com/jv1nicius/keyControlBack/internal/router"
	"github.com/jv1nicius/keyControlBack/internal/validation"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Println(".env not found, continuing with environment variables")
	}

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connect failed: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.EnsureSchema(ctx, db); err != nil {
		cancel()
		log.Fatalf("schema bootstrap failed: %v", err)
	}
	cancel()

	// Repositories and handlers.
	roomRepo := repository.NewRoomRepo(db)
	responsibleRepo := repository.NewResponsibleRepo(db)
	reservationRepo := repository.NewReservationRepo(db)
	finalizationRepo := repository.NewFinalizationRepo(db)
	historyRepo := repository.NewHistoryRepo(db)

	v := validation.New()
	rooms := handler.NewRoomHandler(roomRepo, v)
	responsibles := handler.NewResponsibleHandler(responsibleRepo, v)
	reservations := handler.NewReservationHandler(roomRepo, responsibleRepo, reservationRepo)
	finalizations := handler.NewFinalizationHandler(reservationRepo, finalizationRepo, historyRepo)
	history := handler.NewHistoryHandler(historyRepo, v)

	e := echo.New()

	// Redis is optional: with no client both middlewares are no-ops.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, response cache and rate limiting disabled")
	}
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	e.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))

	router.RegisterRoutes(e, rooms, responsibles, reservations, finalizations, history)

	// Background consumer mirroring finalized reservations to the log.
	go queue.StartFinalizedConsumer()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
