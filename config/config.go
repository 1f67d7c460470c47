package config

import (
	"encoding/json"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/linesmerrill/police-records-api/models"
)

// Defaults used when the environment leaves a value unset or unparsable
const (
	DefaultPort           = "8080"
	DefaultTxTimeout      = 15 * time.Second
	DefaultTxMaxAttempts  = 3
	DefaultRequestTimeout = 30 * time.Second
)

// Config holds the project config values
type Config struct {
	URL            string
	DatabaseName   string
	BaseURL        string
	Port           string
	Env            string
	JWTSecret      string
	TxTimeout      time.Duration
	TxMaxAttempts  int
	RequestTimeout time.Duration
}

// New sets up all config related services
func New() *Config {
	// .env is optional, real environment variables win
	_ = godotenv.Load()

	env := os.Getenv("ENV")

	//setup zap logger and replace default logger
	logger, err := setLogger(env)
	if err != nil {
		logger = zap.NewExample()
	}
	_ = zap.ReplaceGlobals(logger)

	port := os.Getenv("PORT")
	if port == "" {
		port = DefaultPort
	}

	return &Config{
		URL:            os.Getenv("DB_URI"),
		DatabaseName:   os.Getenv("DB_NAME"),
		BaseURL:        os.Getenv("BASE_URL"),
		Port:           port,
		Env:            env,
		JWTSecret:      os.Getenv("JWT_SECRET"),
		TxTimeout:      durationEnv("TX_TIMEOUT", DefaultTxTimeout),
		TxMaxAttempts:  intEnv("TX_MAX_ATTEMPTS", DefaultTxMaxAttempts),
		RequestTimeout: durationEnv("REQUEST_TIMEOUT", DefaultRequestTimeout),
	}
}

func durationEnv(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		zap.S().Warnw("invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func intEnv(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		zap.S().Warnw("invalid integer, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

// ErrorStatus is a useful function that will log, write http headers and body for a
// give message, status code and err
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	zap.S().Errorw(message, "error", err, "status", httpStatusCode)
	WriteError(w, httpStatusCode, models.ErrorResponse{
		Success: false,
		Error:   message,
		Code:    httpStatusCode,
	})
}

// WriteError writes an already built error body without logging it
func WriteError(w http.ResponseWriter, httpStatusCode int, body models.ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatusCode)
	_ = json.NewEncoder(w).Encode(body)
}
