package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"time"

	"github.com/anikett35/MediMage/internal/appointment"
	"github.com/anikett35/MediMage/internal/booking"
	"github.com/anikett35/MediMage/internal/config"
	"github.com/anikett35/MediMage/internal/db"
	"github.com/anikett35/MediMage/internal/health"
	"github.com/anikett35/MediMage/internal/identity"
	"github.com/anikett35/MediMage/internal/kafka"
	"github.com/anikett35/MediMage/internal/logger"
	"github.com/anikett35/MediMage/internal/messaging"
	"github.com/anikett35/MediMage/internal/metrics"
	"github.com/anikett35/MediMage/internal/middleware"
	"github.com/anikett35/MediMage/internal/notify"
	"github.com/anikett35/MediMage/internal/submission"
	"github.com/anikett35/MediMage/internal/telemetry"

	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

type App struct {
	config        *config.Config
	router        chi.Router
	server        *http.Server
	logger        *slog.Logger
	database      *bun.DB
	producer      eventProducer
	meterProvider *sdkmetric.MeterProvider
}

// Handlers groups everything mounted by NewRouter.
type Handlers struct {
	Health       *health.Handler
	Submissions  *submission.Handler
	Appointments *appointment.Handler
	Booking      *booking.Handler
}

type eventProducer interface {
	submission.Producer
	io.Closer
}

func New() *App {
	slogLogger := logger.NewWithServiceContext(ServiceName, Version)

	// Set as default logger so slog.Info() uses JSON format
	slog.SetDefault(slogLogger)

	slogLogger.Info("initializing application", "git_commit", GitCommit, "build_time", BuildTime)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	slogLogger.Info("config loaded", "env", cfg.Env, "events_driver", cfg.Events.Driver)

	ctx := context.Background()

	meterProvider, err := telemetry.InitMeterProvider(ctx, cfg.Telemetry, ServiceName, Version, slogLogger)
	if err != nil {
		log.Fatalf("failed to initialize telemetry: %v", err)
	}

	meter := meterProvider.Meter(ServiceName)
	m, err := metrics.New(meter)
	if err != nil {
		log.Fatalf("failed to create metrics: %v", err)
	}
	if _, err := metrics.NewRuntimeMetrics(meter); err != nil {
		slogLogger.Warn("failed to register runtime metrics", "error", err)
	}
	if err := m.Health.RegisterServiceInfo(meter, ServiceName, Version, cfg.Env); err != nil {
		slogLogger.Warn("failed to register service info metric", "error", err)
	}
	if err := m.Health.RegisterDependencies(meter, health.DependencyPostgres); err != nil {
		slogLogger.Warn("failed to register dependency metrics", "error", err)
	}

	database, err := db.New(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := m.Database.RegisterDB(database.DB, meter); err != nil {
		slogLogger.Warn("failed to register database pool metrics", "error", err)
	}

	if err := db.RunMigrations(ctx, database, (*submission.Submission)(nil), (*appointment.Appointment)(nil)); err != nil {
		log.Fatal("failed to run migrations:", err)
	}

	producer := newProducer(cfg, slogLogger)

	submissionService := submission.NewService(submission.NewRepository(database, m), producer, slogLogger, m)
	appointmentService := appointment.NewService(appointment.NewRepository(database, m), slogLogger, m)

	handlers := Handlers{
		Health:       health.NewHandler(database, m.Health, slogLogger),
		Submissions:  submission.NewHandler(submissionService, slogLogger),
		Appointments: appointment.NewHandler(appointmentService, slogLogger),
		Booking:      booking.NewHandler(slogLogger),
	}

	var verifier *identity.TokenVerifier
	if cfg.Identity.SigningKey != "" {
		verifier = identity.NewTokenVerifier(cfg.Identity.SigningKey, cfg.Identity.Issuer)
	} else {
		slogLogger.Warn("identity signing key not set, requests are treated as signed out")
	}

	app := &App{
		config:        cfg,
		router:        NewRouter(cfg.Server.CORSOrigins, handlers, verifier, slogLogger),
		logger:        slogLogger,
		database:      database,
		producer:      producer,
		meterProvider: meterProvider,
	}

	slogLogger.Info("application initialized successfully")

	return app
}

// NewRouter mounts health checks at the root and the rest under /api.
func NewRouter(corsOrigins []string, h Handlers, verifier *identity.TokenVerifier, logger *slog.Logger) chi.Router {
	router := chi.NewRouter()

	// Apply CORS middleware globally
	router.Use(middleware.CORS(corsOrigins))

	h.Health.RegisterRoutes(router)

	router.Route("/api", func(r chi.Router) {
		if verifier != nil {
			r.Use(identity.Middleware(verifier, logger))
		}
		h.Submissions.RegisterRoutes(r)
		h.Submissions.RegisterLegacyRoutes(r)
		h.Appointments.RegisterRoutes(r)
		h.Booking.RegisterRoutes(r)
	})

	return router
}

// newProducer picks the events driver, falling back to log-only notifications when the broker
// cannot be reached at startup.
func newProducer(cfg *config.Config, logger *slog.Logger) eventProducer {
	fallback := func(err error) eventProducer {
		logger.Warn("failed to initialize event producer, falling back to log notifications",
			"driver", cfg.Events.Driver,
			"error", err,
		)
		return notify.NewNotifier(cfg.Notifications.SupportEmail, logger)
	}

	switch cfg.Events.Driver {
	case "nats":
		p, err := messaging.NewProducer(cfg.NATS.URL, cfg.NATS.Subject, logger)
		if err != nil {
			return fallback(err)
		}
		logger.Info("NATS producer initialized successfully")
		return p
	case "kafka":
		p, err := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
		if err != nil {
			return fallback(err)
		}
		logger.Info("Kafka producer initialized successfully")
		return p
	default:
		return notify.NewNotifier(cfg.Notifications.SupportEmail, logger)
	}
}

func (a *App) Run() error {
	a.server = &http.Server{
		Addr:         fmt.Sprintf(":%s", a.config.Server.Port),
		Handler:      a.router,
		ReadTimeout:  time.Duration(a.config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(a.config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(a.config.Server.IdleTimeout) * time.Second,
	}

	a.logger.Info("server starting", "port", a.config.Server.Port)
	if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("shutting down server")

	var errs []error
	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close producer: %w", err))
		}
	}
	db.Close(a.database)
	if err := telemetry.Shutdown(ctx, a.meterProvider, a.logger); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
