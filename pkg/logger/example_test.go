package logger_test

import (
	"errors"

	"github.com/wonny/stockgrade/pkg/config"
	"github.com/wonny/stockgrade/pkg/logger"
)

// Example_basic demonstrates basic logger usage
func Example_basic() {
	cfg := &config.Config{
		Env:       "development",
		LogLevel:  "info",
		LogFormat: "console",
	}

	log := logger.New(cfg)

	log.Debug("This won't appear (level is info)")
	log.Info("API server started")
	log.Infof("Serving %d symbols", 55)
}

// Example_withFields demonstrates structured logging with fields
func Example_withFields() {
	cfg := &config.Config{
		Env:       "production",
		LogLevel:  "info",
		LogFormat: "json",
	}

	log := logger.New(cfg)

	log.WithFields(map[string]interface{}{
		"symbol": "AAPL",
		"score":  87,
		"grade":  "A",
	}).Info("Grade computed")
}

// Example_withError demonstrates error logging
func Example_withError() {
	cfg := &config.Config{
		Env:       "production",
		LogLevel:  "error",
		LogFormat: "json",
	}

	log := logger.New(cfg)

	err := errors.New("upstream timeout")
	log.WithError(err).WithField("symbol", "TSLA").Error("Skipping symbol")
}
