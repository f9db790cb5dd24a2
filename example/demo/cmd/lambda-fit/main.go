// Package main implements a small fitting demo: it drives the rate of an
// exponential distribution with damped multiplicative updates until the
// distribution mean reaches a configured target, journaling every parameter
// change as a JSON line on stdout and logging the trail on stderr.
package main

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"os"

	"github.com/lmittmann/tint"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/numkit/constrained-parameters-go/params"
	"github.com/numkit/constrained-parameters-go/params/journal"
	"github.com/numkit/constrained-parameters-go/params/oteladapters"
	"github.com/numkit/constrained-parameters-go/prob"
)

const (
	initialRate = 1.0

	// dampingFactor keeps each multiplicative update from jumping straight
	// to the closed-form solution, so the journal shows a convergence trail.
	dampingFactor = 0.7

	serviceName    = "lambda-fit"
	serviceVersion = "demo"

	metricDiscretizationsTotal = "distribution_discretizations_total"
	metricFittedRate           = "distribution_fitted_rate"
)

func main() {
	config, configErr := ParseConfig()
	if configErr != nil {
		slog.New(tint.NewHandler(os.Stderr, nil)).Error("invalid configuration", "error", configErr.Error())
		os.Exit(1)
	}

	handler := newHandler(config.Verbose)
	logger := slog.New(handler)
	bridgeLogger := oteladapters.NewSlogBridgeLoggerWithHandler(handler)

	reader := sdkmetric.NewManualReader()

	meterProvider, providerErr := newMeterProvider(reader)
	if providerErr != nil {
		logger.Error("building meter provider failed", "error", providerErr.Error())
		os.Exit(1)
	}

	metricsCollector := oteladapters.NewMetricsCollector(meterProvider.Meter(serviceName))

	exponential, buildErr := prob.NewExponential(config.Categories, initialRate,
		prob.WithLogger(bridgeLogger),
		prob.WithMetrics(metricsCollector))
	if buildErr != nil {
		logger.Error("building the distribution failed", "error", buildErr.Error())
		os.Exit(1)
	}

	if journalErr := attachJournal(exponential, bridgeLogger); journalErr != nil {
		logger.Error("attaching the journal failed", "error", journalErr.Error())
		os.Exit(1)
	}

	logger.Info("fit started",
		"target_mean", config.TargetMean,
		"categories", config.Categories,
		"initial_rate", exponential.Rate())

	converged := runFit(exponential, config, logger)

	logger.Info("final discretization",
		"rate", exponential.Rate(),
		"mean", exponential.Mean(),
		"categories", exponential.Categories(),
		"probabilities", exponential.Probabilities())

	metricsCollector.RecordValue(metricFittedRate, exponential.Rate(),
		map[string]string{"distribution": exponential.Name()})

	logDiscretizationCount(reader, logger)

	if shutdownErr := meterProvider.Shutdown(context.Background()); shutdownErr != nil {
		logger.Warn("meter provider shutdown failed", "error", shutdownErr.Error())
	}

	if !converged {
		logger.Error("fit did not converge", "max_steps", config.MaxSteps, "tolerance", config.Tolerance)
		os.Exit(1)
	}
}

// runFit drives the rate towards the target mean and reports whether the
// fit converged within the configured step budget.
func runFit(exponential *prob.Exponential, config Config, logger *slog.Logger) bool {
	for step := 1; step <= config.MaxSteps; step++ {
		if math.Abs(exponential.Mean()-config.TargetMean) <= config.Tolerance {
			logger.Info("fit converged", "steps", step-1, "rate", exponential.Rate(), "mean", exponential.Mean())
			return true
		}

		nextRate := exponential.Rate() * math.Pow(exponential.Mean()/config.TargetMean, dampingFactor)

		if setErr := exponential.SetRate(nextRate); setErr != nil {
			logger.Error("rate update rejected", "error", setErr.Error(), "rate", nextRate)
			return false
		}

		logger.Debug("fit step",
			"step", step,
			"rate", exponential.Rate(),
			"mean", exponential.Mean(),
			"gap", math.Abs(exponential.Mean()-config.TargetMean))
	}

	if math.Abs(exponential.Mean()-config.TargetMean) <= config.Tolerance {
		logger.Info("fit converged", "steps", config.MaxSteps, "rate", exponential.Rate(), "mean", exponential.Mean())
		return true
	}

	return false
}

// attachJournal registers a journal listener on the distribution's rate
// parameter, writing one JSON line per change to stdout.
func attachJournal(exponential *prob.Exponential, logger params.Logger) error {
	lambda, found := exponential.Parameters().Get(prob.LambdaParameterName)
	if !found {
		return errors.New("rate parameter not found on the distribution")
	}

	journalListener, listenerErr := journal.NewListener("journal", os.Stdout, journal.WithLogger(logger))
	if listenerErr != nil {
		return listenerErr
	}

	lambda.AddListener(journalListener, params.Shared)

	return nil
}

func newHandler(verbose bool) slog.Handler {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	return tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05",
	})
}

func newMeterProvider(reader *sdkmetric.ManualReader) (*sdkmetric.MeterProvider, error) {
	res, resErr := resource.New(context.Background(),
		resource.WithAttributes(
			semconv.ServiceNameKey.String(serviceName),
			semconv.ServiceVersionKey.String(serviceVersion),
		),
	)
	if resErr != nil {
		return nil, resErr
	}

	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(reader),
		sdkmetric.WithResource(res),
	)

	return meterProvider, nil
}

// logDiscretizationCount reads the recompute counter back from the manual
// reader, demonstrating that the metrics wiring is live.
func logDiscretizationCount(reader *sdkmetric.ManualReader, logger *slog.Logger) {
	var resourceMetrics metricdata.ResourceMetrics

	if collectErr := reader.Collect(context.Background(), &resourceMetrics); collectErr != nil {
		logger.Warn("collecting metrics failed", "error", collectErr.Error())
		return
	}

	for _, scopeMetrics := range resourceMetrics.ScopeMetrics {
		for _, m := range scopeMetrics.Metrics {
			if m.Name != metricDiscretizationsTotal {
				continue
			}

			if sum, ok := m.Data.(metricdata.Sum[int64]); ok && len(sum.DataPoints) > 0 {
				logger.Info("discretizations recorded", "count", sum.DataPoints[0].Value)
				return
			}
		}
	}
}
