package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"

	EnvProduction = "production"
)

type (
	APP struct {
		Name      string
		Host      string
		Port      string
		Env       string
		JWTSecret string
		JWTTTL    time.Duration
	}
	DB struct {
		Driver   string
		User     string
		Password string
		Name     string
		Host     string
		Port     string
		SSLMode  string
		Migrate  bool
	}
	MQ struct {
		Enabled      bool
		User         string
		Password     string
		Vhost        string
		Host         string
		AmqpPort     string
		Exchange     string
		ExchangeType string
		QueueName    string
	}
	Security struct {
		BcryptCost    int
		LoginRequests int
		LoginWindow   time.Duration
	}
	Log struct {
		Level  string
		Format string
	}

	Config struct {
		App      APP
		DB       DB
		MQ       MQ
		Security Security
		Log      Log
	}
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVICE_NAME", "user-account-api")
	v.SetDefault("SERVICE_PORT", "8080")
	v.SetDefault("SERVICE_ENV", "development")
	v.SetDefault("SERVICE_JWT_TTL", "24h")

	v.SetDefault("DB_DRIVER", DriverPostgres)
	v.SetDefault("POSTGRES_PORT", "5432")
	v.SetDefault("POSTGRES_SSL_MODE", "disable")
	v.SetDefault("DB_MIGRATE", true)

	v.SetDefault("MQ_ENABLED", true)
	v.SetDefault("RABBITMQ_VHOST", "/")
	v.SetDefault("RABBITMQ_AMQP_PORT", "5672")
	v.SetDefault("RABBITMQ_EXCHANGE", "users")
	v.SetDefault("RABBITMQ_EXCHANGE_TYPE", "topic")
	v.SetDefault("RABBITMQ_QUEUE_NAME", "user-events")

	v.SetDefault("BCRYPT_COST", 10)
	v.SetDefault("LOGIN_RATE_LIMIT", 10)
	v.SetDefault("LOGIN_RATE_WINDOW", "1m")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}

// Load reads the process environment, with .env (when present) filling in
// unset variables.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	cfg := Config{
		App: APP{
			Name:      v.GetString("SERVICE_NAME"),
			Host:      v.GetString("SERVICE_HOST"),
			Port:      v.GetString("SERVICE_PORT"),
			Env:       v.GetString("SERVICE_ENV"),
			JWTSecret: v.GetString("SERVICE_JWT_SECRET"),
			JWTTTL:    v.GetDuration("SERVICE_JWT_TTL"),
		},
		DB: DB{
			Driver:   strings.ToLower(v.GetString("DB_DRIVER")),
			User:     v.GetString("POSTGRES_USER"),
			Password: v.GetString("POSTGRES_PASSWORD"),
			Name:     v.GetString("POSTGRES_DB"),
			Host:     v.GetString("POSTGRES_HOST"),
			Port:     v.GetString("POSTGRES_PORT"),
			SSLMode:  v.GetString("POSTGRES_SSL_MODE"),
			Migrate:  v.GetBool("DB_MIGRATE"),
		},
		MQ: MQ{
			Enabled:      v.GetBool("MQ_ENABLED"),
			User:         v.GetString("RABBITMQ_USER"),
			Password:     v.GetString("RABBITMQ_PASSWORD"),
			Vhost:        v.GetString("RABBITMQ_VHOST"),
			Host:         v.GetString("RABBITMQ_HOST"),
			AmqpPort:     v.GetString("RABBITMQ_AMQP_PORT"),
			Exchange:     v.GetString("RABBITMQ_EXCHANGE"),
			ExchangeType: v.GetString("RABBITMQ_EXCHANGE_TYPE"),
			QueueName:    v.GetString("RABBITMQ_QUEUE_NAME"),
		},
		Security: Security{
			BcryptCost:    v.GetInt("BCRYPT_COST"),
			LoginRequests: v.GetInt("LOGIN_RATE_LIMIT"),
			LoginWindow:   v.GetDuration("LOGIN_RATE_WINDOW"),
		},
		Log: Log{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) validate() error {
	if c.App.JWTSecret == "" {
		return fmt.Errorf("invalid config: SERVICE_JWT_SECRET is required")
	}
	if c.App.JWTTTL <= 0 {
		return fmt.Errorf("invalid config: SERVICE_JWT_TTL must be positive")
	}
	switch c.DB.Driver {
	case DriverPostgres, DriverMemory:
	default:
		return fmt.Errorf("invalid config: unknown DB_DRIVER %q", c.DB.Driver)
	}
	return nil
}

func (c Config) DBDSN() (string, error) {
	if c.DB.User == "" || c.DB.Name == "" || c.DB.Host == "" || c.DB.Port == "" {
		return "", fmt.Errorf("incomplete DB config")
	}

	dsn := fmt.Sprintf(
		"postgres://%s@%s:%s/%s",
		url.UserPassword(c.DB.User, c.DB.Password).String(),
		c.DB.Host,
		c.DB.Port,
		c.DB.Name,
	)
	if c.DB.SSLMode != "" {
		dsn += "?sslmode=" + url.QueryEscape(c.DB.SSLMode)
	}

	return dsn, nil
}

func (c Config) AMQPDSN() (string, error) {
	if c.MQ.User == "" || c.MQ.Host == "" || c.MQ.AmqpPort == "" {
		return "", fmt.Errorf("invalid MQ config: user, host and amqp port are required")
	}

	return fmt.Sprintf(
		"%s://%s@%s:%s/%s",
		"amqp",
		url.UserPassword(c.MQ.User, c.MQ.Password).String(),
		c.MQ.Host,
		c.MQ.AmqpPort,
		url.PathEscape(c.MQ.Vhost),
	), nil
}
