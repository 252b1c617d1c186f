package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Env           string              `mapstructure:"env"`
	Server        ServerConfig        `mapstructure:"server"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Events        EventsConfig        `mapstructure:"events"`
	NATS          NATSConfig          `mapstructure:"nats"`
	Kafka         KafkaConfig         `mapstructure:"kafka"`
	Notifications NotificationsConfig `mapstructure:"notifications"`
	Identity      IdentityConfig      `mapstructure:"identity"`
	Telemetry     TelemetryConfig     `mapstructure:"telemetry"`
}

type ServerConfig struct {
	Port         string   `mapstructure:"port"`
	ReadTimeout  int      `mapstructure:"read_timeout_seconds"`
	WriteTimeout int      `mapstructure:"write_timeout_seconds"`
	IdleTimeout  int      `mapstructure:"idle_timeout_seconds"`
	CORSOrigins  []string `mapstructure:"cors_origins"`
}

type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            string `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"name"`
	SSLMode         string `mapstructure:"ssl_mode"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime_seconds"`
	ConnMaxIdleTime int    `mapstructure:"conn_max_idle_time_seconds"`
}

// EventsConfig selects where submission.created events go: "nats", "kafka" or "log".
type EventsConfig struct {
	Driver string `mapstructure:"driver"`
}

type NATSConfig struct {
	URL     string `mapstructure:"url"`
	Subject string `mapstructure:"subject"`
}

type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

type NotificationsConfig struct {
	SupportEmail  string `mapstructure:"support_email"`
	ConsumerGroup string `mapstructure:"consumer_group"`
}

type IdentityConfig struct {
	Issuer     string `mapstructure:"issuer"`
	SigningKey string `mapstructure:"signing_key"`
}

type TelemetryConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "local")
	v.SetDefault("server.port", "5000")
	v.SetDefault("server.read_timeout_seconds", 15)
	v.SetDefault("server.write_timeout_seconds", 15)
	v.SetDefault("server.idle_timeout_seconds", 60)
	v.SetDefault("server.cors_origins", []string{"http://localhost:5173"})
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.name", "medimaga")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("events.driver", "log")
	v.SetDefault("nats.url", "nats://localhost:4222")
	v.SetDefault("nats.subject", "submissions.created")
	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.topic", "submissions.created")
	v.SetDefault("notifications.support_email", "support@medimaga.com")
	v.SetDefault("notifications.consumer_group", "medimaga-notifier")
	v.SetDefault("telemetry.otlp_endpoint", "localhost:4317")
}

func Load() (*Config, error) {
	// Get environment from ENV, default to "local"
	env := os.Getenv("ENV")
	if env == "" {
		env = "local"
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName(fmt.Sprintf("config.%s", env))
	v.SetConfigType("yaml")
	v.AddConfigPath("/configs")   // Kubernetes mount
	v.AddConfigPath("./configs")  // repo root
	v.AddConfigPath("../configs") // IDE from cmd/

	// Config file is optional - continue with defaults and ENV variables
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// ENV overrides take precedence over the config file (SERVER_PORT, NATS_URL, ...)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.BindEnv("env", "ENV")
	v.BindEnv("database.user", "DB_USER")
	v.BindEnv("database.password", "DB_PASSWORD")
	v.BindEnv("server.port", "PORT")
	v.BindEnv("identity.signing_key", "IDENTITY_SIGNING_KEY")

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) validate() error {
	switch c.Events.Driver {
	case "nats", "kafka", "log":
	default:
		return fmt.Errorf("invalid events.driver %q: must be nats, kafka or log", c.Events.Driver)
	}
	if c.Server.Port == "" {
		return fmt.Errorf("server.port must be set")
	}
	return nil
}
