// Command notifier consumes submission.created events and sends the confirmation and
// support notifications for each new contact submission.
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anikett35/MediMage/internal/config"
	"github.com/anikett35/MediMage/internal/kafka"
	"github.com/anikett35/MediMage/internal/logger"
	"github.com/anikett35/MediMage/internal/messaging"
	"github.com/anikett35/MediMage/internal/metrics"
	"github.com/anikett35/MediMage/internal/notify"
	"github.com/anikett35/MediMage/internal/telemetry"

	"github.com/joho/godotenv"
)

const serviceName = "medimaga-notifier"

var Version = "dev"

type consumer interface {
	Start(ctx context.Context) error
	Close() error
}

func main() {
	// Load .env file if it exists (ignore error if file doesn't exist)
	_ = godotenv.Load()

	slogLogger := logger.NewWithServiceContext(serviceName, Version)
	slog.SetDefault(slogLogger)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	meterProvider, err := telemetry.InitMeterProvider(ctx, cfg.Telemetry, serviceName, Version, slogLogger)
	if err != nil {
		log.Fatalf("failed to initialize telemetry: %v", err)
	}
	m, err := metrics.New(meterProvider.Meter(serviceName))
	if err != nil {
		log.Fatalf("failed to create metrics: %v", err)
	}

	notifier := notify.NewNotifier(cfg.Notifications.SupportEmail, slogLogger)

	var c consumer
	switch cfg.Events.Driver {
	case "nats":
		c, err = messaging.NewConsumer(cfg.NATS.URL, cfg.NATS.Subject, cfg.Notifications.ConsumerGroup, notifier.HandleSubmissionCreated, slogLogger, m)
	case "kafka":
		c, err = kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.Notifications.ConsumerGroup, notifier.HandleSubmissionCreated, slogLogger, m)
	default:
		slogLogger.Info("events driver sends notifications inline, nothing to consume", "driver", cfg.Events.Driver)
		os.Exit(0)
	}
	if err != nil {
		log.Fatalf("failed to start %s consumer: %v", cfg.Events.Driver, err)
	}

	slogLogger.Info("notifier started", "driver", cfg.Events.Driver)
	if err := c.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slogLogger.Error("consumer stopped", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := c.Close(); err != nil {
		slogLogger.Warn("failed to close consumer", "error", err)
	}
	if err := telemetry.Shutdown(shutdownCtx, meterProvider, slogLogger); err != nil {
		slogLogger.Warn("failed to shut down telemetry", "error", err)
	}

	log.Println("Notifier exited gracefully")
}
