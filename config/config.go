package config

import (
	"os"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

type Config struct {
	DatabaseURL       string        `envconfig:"DATABASE_URL"         required:"true"`
	Port              string        `envconfig:"PORT"                 default:":8080"`
	LogLevel          string        `envconfig:"LOG_LEVEL"            default:"info"`
	VerifyPrices      bool          `envconfig:"VERIFY_PRICES"        default:"false"`
	DBMaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS"    default:"25"`
	DBMaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS"    default:"5"`
	DBConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"30m"`
}

var (
	config Config
	once   sync.Once
)

func LoadConfig(logger *logrus.Logger) *Config {
	once.Do(func() {
		err := godotenv.Load()
		if err != nil && !os.IsNotExist(err) {
			logger.Warnf("Error loading .env file (but continuing): %v", err)
		} else if err == nil {
			logger.Info("Loaded configuration from .env file")
		}

		if err = envconfig.Process("", &config); err != nil {
			logger.Fatalf("Failed to process configuration from environment variables: %v", err)
		}

		logger.Infof("Configuration loaded: Port=%s, LogLevel=%s, VerifyPrices=%t", config.Port, config.LogLevel, config.VerifyPrices)
	})
	return &config
}
