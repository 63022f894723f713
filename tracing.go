// SPDX-FileCopyrightText: 2025 Patisson Company
// SPDX-License-Identifier: MIT

package applauncher

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
)

// TracingConfig configures the optional OpenTelemetry tracing collaborator.
type TracingConfig struct {
	// Enabled turns span export on.  When false, NewTracing produces an
	// inert component and no exporter is created.
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled" toml:"enabled"`

	// Endpoint is the host:port of the OTLP/HTTP collector.  When empty,
	// the exporter's environment-driven default applies.
	Endpoint string `json:"endpoint" yaml:"endpoint" mapstructure:"endpoint" toml:"endpoint"`

	// Insecure disables TLS on the exporter connection.
	Insecure bool `json:"insecure" yaml:"insecure" mapstructure:"insecure" toml:"insecure"`
}

// Tracing owns the configured tracer provider, if any.
type Tracing struct {
	provider *sdktrace.TracerProvider
}

// NewTracing builds a tracer provider that exports spans over OTLP/HTTP,
// tagged with the service name, and installs it as the global provider.
// Disabled tracing yields an inert component whose methods are all no-ops.
func NewTracing(ctx context.Context, serviceName string, cfg TracingConfig) (*Tracing, error) {
	if !cfg.Enabled {
		return new(Tracing), nil
	}

	var opts []otlptracehttp.Option
	if len(cfg.Endpoint) > 0 {
		opts = append(opts, otlptracehttp.WithEndpoint(cfg.Endpoint))
	}
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}

	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, err
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
		),
	)
	if err != nil {
		return nil, err
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(provider)
	return &Tracing{provider: provider}, nil
}

// Tracer returns a tracer from the configured provider, or the global
// provider's tracer when tracing is disabled.
func (t *Tracing) Tracer(name string) trace.Tracer {
	if t.provider == nil {
		return otel.Tracer(name)
	}

	return t.provider.Tracer(name)
}

// Shutdown flushes and stops the provider.  Safe to call when tracing is
// disabled.
func (t *Tracing) Shutdown(ctx context.Context) error {
	if t.provider == nil {
		return nil
	}

	return t.provider.Shutdown(ctx)
}

// BindTracing ties provider shutdown to the enclosing application's
// lifecycle.
func BindTracing(t *Tracing, lc fx.Lifecycle) {
	lc.Append(fx.StopHook(t.Shutdown))
}
