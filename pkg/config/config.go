package config

import (
	"errors"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTP     HTTP
	Logger   Logger
	Postgres Postgres
	Kafka    Kafka
	S3       S3
	Jobs     Jobs
	Import   Import
}

type HTTP struct {
	Port int `env:"HTTP_PORT" envDefault:"8080"`
}

type Logger struct {
	Level string `env:"LOG_LEVEL" envDefault:"info"`
}

type Postgres struct {
	DSN     string `env:"POSTGRES_DSN"`
	MaxConn int32  `env:"POSTGRES_MAX_CONNS" envDefault:"10"`
}

type Kafka struct {
	Brokers           []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092"`
	RecordEventsTopic string   `env:"KAFKA_RECORD_EVENTS_TOPIC" envDefault:"magsav.records"`
}

type S3 struct {
	Bucket    string `env:"S3_PHOTOS_BUCKET" envDefault:""`
	Region    string `env:"S3_REGION" envDefault:"eu-west-3"`
	Endpoint  string `env:"S3_ENDPOINT" envDefault:""`
	PathStyle bool   `env:"S3_PATH_STYLE" envDefault:"false"`
}

type Jobs struct {
	MaintenanceInterval time.Duration `env:"JOB_MAINTENANCE_INTERVAL" envDefault:"1h"`
	MaintenanceEnabled  bool          `env:"JOB_MAINTENANCE_ENABLED" envDefault:"true"`
}

type Import struct {
	MaxBytes int64 `env:"IMPORT_MAX_BYTES" envDefault:"10485760"`
}

// Console is the configuration of the terminal back office.
type Console struct {
	APIURL      string        `env:"API_URL" envDefault:"http://localhost:8080/api"`
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT" envDefault:"30s"`
	RetryMax    int           `env:"HTTP_RETRY_MAX" envDefault:"0"`
	LogFile     string        `env:"CONSOLE_LOG_FILE" envDefault:"magsav-console.log"`
	LogLevel    string        `env:"LOG_LEVEL" envDefault:"info"`
}

func New(envPath string) (Config, error) {
	return load[Config](envPath)
}

func NewConsole(envPath string) (Console, error) {
	return load[Console](envPath)
}

func load[T any](envPath string) (T, error) {
	var zero T

	err := godotenv.Load(envPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return zero, err
	}

	c, err := env.ParseAsWithOptions[T](env.Options{
		RequiredIfNoDef: true,
	})
	if err != nil {
		return zero, err
	}

	return c, nil
}
