package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/Annany2002/nebula-connector/internal/connection"
	"github.com/Annany2002/nebula-connector/internal/core"
	"github.com/Annany2002/nebula-connector/internal/logger"
	"github.com/Annany2002/nebula-connector/internal/storage"
)

var (
	customLog = logger.NewLogger()
)

// Config holds application configuration values
type Config struct {
	ServerPort       string
	JWTSecret        string
	DBDriver         string
	Connection       connection.Descriptor // Default descriptor, used when a request carries none
	ExecTimeout      time.Duration
	RateLimit        int
	IdentifierPolicy core.IdentifierPolicy
}

// LoadConfig loads configuration from environment variables.
// It uses a .env file for local development if present (ignores it for production).
func LoadConfig() (*Config, error) {
	customLog.Println("Loading configuration from environment variables...")

	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			customLog.Warnf("Warning: Error loading .env file: %v", err)
		}
	}

	port := getEnv("SERVER_PORT", "8080")
	jwtSecret := getEnv("JWT_SECRET", "")
	driver := getEnv("DB_DRIVER", storage.DriverOracle)
	timeoutStr := getEnv("EXEC_TIMEOUT_SECONDS", "30")
	rateStr := getEnv("RATE_LIMIT_PER_MINUTE", "60")

	// --- Validation and Parsing ---
	if jwtSecret == "" {
		return nil, errors.New("JWT_SECRET environment variable must be set")
	}
	if driver != storage.DriverOracle && driver != storage.DriverSQLite {
		return nil, errors.New("DB_DRIVER must be 'oracle' or 'sqlite3'")
	}

	policy, err := core.ParseIdentifierPolicy(getEnv("IDENTIFIER_POLICY", string(core.PolicyVerbatim)))
	if err != nil {
		return nil, err
	}

	timeoutSecs, err := strconv.Atoi(timeoutStr)
	if err != nil || timeoutSecs <= 0 {
		customLog.Warnf("Invalid EXEC_TIMEOUT_SECONDS '%s'. Using default 30s. Error: %v", timeoutStr, err)
		timeoutSecs = 30
	}

	rate, err := strconv.Atoi(rateStr)
	if err != nil || rate <= 0 {
		customLog.Warnf("Invalid RATE_LIMIT_PER_MINUTE '%s'. Using default 60. Error: %v", rateStr, err)
		rate = 60
	}

	// Connection fields are optional here; requests may supply their own.
	cfg := &Config{
		ServerPort: port,
		JWTSecret:  jwtSecret,
		DBDriver:   driver,
		Connection: connection.Descriptor{
			Host:           os.Getenv("ORACLE_HOST"),
			Port:           getEnv("ORACLE_PORT", "1521"),
			Username:       os.Getenv("ORACLE_USERNAME"),
			Password:       os.Getenv("ORACLE_PASSWORD"),
			ConnectionType: getEnv("ORACLE_CONNECTION_TYPE", connection.TypeSID),
		},
		ExecTimeout:      time.Duration(timeoutSecs) * time.Second,
		RateLimit:        rate,
		IdentifierPolicy: policy,
	}

	customLog.Printf("Configuration loaded successfully. Port: %s, Driver: %s, Exec timeout: %v", cfg.ServerPort, cfg.DBDriver, cfg.ExecTimeout)
	return cfg, nil
}

// getEnv reads an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
