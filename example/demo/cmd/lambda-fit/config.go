package main

import (
	"errors"

	"github.com/caarlos0/env/v11"
)

var (
	// ErrParsingConfigFailed is returned when the environment cannot be parsed into a Config.
	ErrParsingConfigFailed = errors.New("parsing configuration from environment failed")

	// ErrInvalidTargetMean is returned when the configured target mean is not positive.
	ErrInvalidTargetMean = errors.New("target mean must be positive")
)

// Config holds the fit settings, parsed from the environment.
type Config struct {
	TargetMean float64 `env:"TARGET_MEAN" envDefault:"0.5"`
	Categories int     `env:"CATEGORIES" envDefault:"8"`
	MaxSteps   int     `env:"MAX_STEPS" envDefault:"25"`
	Tolerance  float64 `env:"TOLERANCE" envDefault:"1e-9"`
	Verbose    bool    `env:"VERBOSE" envDefault:"false"`
}

// ParseConfig reads the fit settings from environment variables, falling
// back to the defaults above.
func ParseConfig() (Config, error) {
	var config Config

	if parseErr := env.Parse(&config); parseErr != nil {
		return Config{}, errors.Join(ErrParsingConfigFailed, parseErr)
	}

	if config.TargetMean <= 0 {
		return Config{}, ErrInvalidTargetMean
	}

	return config, nil
}
