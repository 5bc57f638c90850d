package main

import (
	"database/sql"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"drivelux/internal/api"
	"drivelux/internal/auth"
	"drivelux/internal/repository"
	"drivelux/internal/service"
)

func main() {
	godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Fatal("DATABASE_URL not set")
	}
	database, err := sql.Open("postgres", dbURL)
	if err != nil {
		logger.Fatal("failed to open DB", zap.Error(err))
	}
	if err := database.Ping(); err != nil {
		logger.Fatal("failed to connect to DB", zap.Error(err))
	}

	availabilityRepo := repository.NewAvailabilityRepository(database, logger)
	blockRepo := repository.NewBlockRepository(database, logger)

	sender := service.NewSenderService(logger)
	notifier := service.NewNotifyService(availabilityRepo, sender, logger)
	availabilitySvc := service.NewAvailabilityService(availabilityRepo, logger)
	blockSvc := service.NewBlockService(blockRepo, availabilityRepo, notifier, logger)
	jobSvc := service.NewJobService(blockRepo, logger)

	availabilityHandler := api.NewAvailabilityHandler(availabilitySvc)
	adminHandler := api.NewAdminHandler(blockSvc)

	r := mux.NewRouter()

	// Public endpoints
	r.HandleFunc("/api/availability/check", availabilityHandler.CheckAvailability).Methods("GET")
	r.HandleFunc("/api/availability/calendar", availabilityHandler.GetMonthlyCalendar).Methods("GET")

	// Admin endpoints (protected)
	admin := r.PathPrefix("/api/admin").Subrouter()
	admin.Use(auth.AdminAuthMiddleware)
	admin.HandleFunc("/availability/blocks", adminHandler.CreateBlock).Methods("POST")
	admin.HandleFunc("/availability/blocks/{id}", adminHandler.DeleteBlock).Methods("DELETE")
	admin.HandleFunc("/availability/vehicles/{vehicle_id}/blocks", adminHandler.ListVehicleBlocks).Methods("GET")

	c := cron.New()
	if _, err := c.AddFunc("0 3 * * *", func() {
		if err := jobSvc.PurgeExpiredBlocks(); err != nil {
			logger.Error("expired block purge failed", zap.Error(err))
		}
	}); err != nil {
		logger.Fatal("failed to schedule block purge", zap.Error(err))
	}
	c.Start()
	defer c.Stop()

	corsOrigin := os.Getenv("CORS_ORIGIN")
	if corsOrigin == "" {
		corsOrigin = "*"
	}
	corsHandler := handlers.CORS(
		handlers.AllowedOrigins([]string{corsOrigin}),
		handlers.AllowedMethods([]string{"GET", "POST", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
	)(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logger.Info("server running", zap.String("port", port))
	if err := http.ListenAndServe(":"+port, handlers.RecoveryHandler()(corsHandler)); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
