package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/clinicdesk/booking-api/internal/config"
	"github.com/clinicdesk/booking-api/internal/handler"
	appointmentHandler "github.com/clinicdesk/booking-api/internal/handler/appointment"
	categoryHandler "github.com/clinicdesk/booking-api/internal/handler/category"
	clinicHandler "github.com/clinicdesk/booking-api/internal/handler/clinic"
	doctorHandler "github.com/clinicdesk/booking-api/internal/handler/doctor"
	patientHandler "github.com/clinicdesk/booking-api/internal/handler/patient"
	specialityHandler "github.com/clinicdesk/booking-api/internal/handler/speciality"
	"github.com/clinicdesk/booking-api/internal/repository/postgres"
	"github.com/clinicdesk/booking-api/internal/router"
	appointmentService "github.com/clinicdesk/booking-api/internal/service/appointment"
	categoryService "github.com/clinicdesk/booking-api/internal/service/category"
	clinicService "github.com/clinicdesk/booking-api/internal/service/clinic"
	doctorService "github.com/clinicdesk/booking-api/internal/service/doctor"
	patientService "github.com/clinicdesk/booking-api/internal/service/patient"
	specialityService "github.com/clinicdesk/booking-api/internal/service/speciality"
	"github.com/clinicdesk/booking-api/pkg/logger"
	"github.com/clinicdesk/booking-api/pkg/messaging"
	"github.com/clinicdesk/booking-api/pkg/messaging/redis"
	"github.com/clinicdesk/booking-api/pkg/metrics"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLog := setupLogging(cfg.Logging)

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		appLog.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	m := metrics.NewMetrics("booking_api")

	go func() {
		for range time.Tick(15 * time.Second) {
			m.DatabaseConnections.Set(float64(db.Stats().OpenConnections))
		}
	}()

	clinicRepo := postgres.NewClinicRepository(db)
	specialityRepo := postgres.NewSpecialityRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)
	doctorRepo := postgres.NewDoctorRepository(db)
	patientRepo := postgres.NewPatientRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db, m)
	entityStore := postgres.NewEntityStore(db)

	// The broker is optional. Without Redis the API still books
	// appointments, it just publishes no events.
	var broker messaging.Broker
	if cfg.Redis.URL != "" {
		broker, err = redis.NewRedisBroker(redis.Config{
			URL:          cfg.Redis.URL,
			MaxRetries:   cfg.Redis.MaxRetries,
			RetryBackoff: cfg.Redis.RetryBackoff,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
		})
		if err != nil {
			appLog.Fatal(err, "failed to connect to Redis")
		}
		defer broker.Close()
	}

	clinicSvc := clinicService.NewService(clinicRepo, doctorRepo, appointmentRepo)
	specialitySvc := specialityService.NewService(specialityRepo, doctorRepo)
	categorySvc := categoryService.NewService(categoryRepo, appointmentRepo)
	doctorSvc := doctorService.NewService(doctorRepo, entityStore, appointmentRepo)
	patientSvc := patientService.NewService(patientRepo, appointmentRepo)
	appointmentSvc := appointmentService.NewService(appointmentRepo, doctorRepo, entityStore, broker, m)

	h := handler.NewHandler(db)

	r := router.NewRouter(
		h,
		clinicHandler.NewHandler(clinicSvc),
		specialityHandler.NewHandler(specialitySvc),
		categoryHandler.NewHandler(categorySvc),
		doctorHandler.NewHandler(doctorSvc),
		patientHandler.NewHandler(patientSvc),
		appointmentHandler.NewHandler(appointmentSvc),
		router.Config{
			RateLimitRPS:   cfg.Server.RateLimitRPS,
			RateLimitBurst: cfg.Server.RateLimitBurst,
			RequestTimeout: time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
			CORSConfig:     router.DefaultConfig().CORSConfig,
			MetricsPrefix:  "booking_api_http",
			ReleaseMode:    true,
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		appLog.Info("starting server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Fatal(err, "failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLog.Fatal(err, "server forced to shutdown")
	}

	appLog.Info("server exited properly")
}

// setupLogging configures the global zerolog level used by the HTTP
// middleware and returns the application logger for main's own messages.
func setupLogging(cfg config.LoggingConfig) *logger.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	return logger.NewLogger(&logger.Config{
		Level:      level,
		TimeFormat: time.RFC3339,
		Output:     os.Stdout,
		Pretty:     cfg.Pretty,
	})
}
