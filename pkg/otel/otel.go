// Package otel wires OpenTelemetry tracing for the feed service into the fx
// lifecycle. The aggregator and lifecycle spans go through the global
// provider installed here.
package otel

import (
	"context"

	"github.com/Fardeen26/flashfeed/pkg/config"
	"github.com/Fardeen26/flashfeed/pkg/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.uber.org/fx"
)

const ServiceName = "flashfeed"

// Settings selects where spans go and how many are kept.
type Settings struct {
	Endpoint    string
	Environment string
	SampleRatio float64
}

func SettingsFrom(cfg *config.Config) Settings {
	return Settings{
		Endpoint:    cfg.Otel.Endpoint,
		Environment: cfg.App.Env,
		SampleRatio: cfg.Otel.SampleRatio,
	}
}

// Sampler honours the caller's sampling decision and samples new root traces
// at ratio.
func Sampler(ratio float64) sdktrace.Sampler {
	switch {
	case ratio >= 1:
		return sdktrace.ParentBased(sdktrace.AlwaysSample())
	case ratio <= 0:
		return sdktrace.ParentBased(sdktrace.NeverSample())
	default:
		return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))
	}
}

// Setup installs the tracer provider. With no endpoint nothing is installed
// and spans go to the global no-op tracer.
func Setup(ctx context.Context, s Settings) (shutdown func(context.Context) error, err error) {
	noop := func(context.Context) error { return nil }
	if s.Endpoint == "" {
		return noop, nil
	}

	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(s.Endpoint))
	if err != nil {
		return noop, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(ServiceName),
			semconv.DeploymentEnvironment(s.Environment),
		),
	)
	if err != nil {
		return noop, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(Sampler(s.SampleRatio)),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}

// Invoke registers tracing setup and flush with the fx lifecycle.
func Invoke(lc fx.Lifecycle, cfg *config.Config, log logger.Logger) {
	var shutdown func(context.Context) error
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			var err error
			shutdown, err = Setup(ctx, SettingsFrom(cfg))
			if err != nil {
				log.Warn("Tracing disabled", "error", err)
				return nil
			}
			if cfg.Otel.Endpoint != "" {
				log.Info("Tracing enabled", "endpoint", cfg.Otel.Endpoint, "sample_ratio", cfg.Otel.SampleRatio)
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if shutdown == nil {
				return nil
			}
			return shutdown(ctx)
		},
	})
}
