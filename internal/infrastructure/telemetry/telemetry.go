// Package telemetry wires OpenTelemetry tracing, metrics and log export, and
// optional Pyroscope profiling. Everything is off unless telemetry.enabled is
// set; the providers then fall back to no-op implementations.
package telemetry

import (
	"context"
	"fmt"
	"time"

	otelpyroscope "github.com/grafana/otel-profiling-go"
	"github.com/grafana/pyroscope-go"
	"github.com/rentdesk/backend/internal/infrastructure/config"
	"go.opentelemetry.io/contrib/bridges/otelzap"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/propagation"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const serviceVersion = "1.0.0"

// Providers owns the exporters started by Setup
type Providers struct {
	cfg    config.TelemetryConfig
	logger *zap.Logger

	tracer   *sdktrace.TracerProvider
	traces   trace.TracerProvider
	meter    *sdkmetric.MeterProvider
	logs     *sdklog.LoggerProvider
	profiler *pyroscope.Profiler
}

// Setup starts the exporters enabled in cfg and registers them as the otel
// globals. A disabled config returns no-op providers and starts nothing.
func Setup(ctx context.Context, cfg config.TelemetryConfig, log *zap.Logger) (*Providers, error) {
	p := &Providers{cfg: cfg, logger: log.Named("telemetry")}
	if !cfg.Enabled {
		p.logger.Debug("Telemetry disabled")
		return p, nil
	}

	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(serviceVersion),
	))
	if err != nil {
		return nil, fmt.Errorf("telemetry resource: %w", err)
	}

	if err := p.startTracing(ctx, res); err != nil {
		return nil, err
	}
	if err := p.startMetrics(ctx, res); err != nil {
		_ = p.Shutdown(ctx)
		return nil, err
	}
	if cfg.LogsEnabled {
		if err := p.startLogs(ctx, res); err != nil {
			_ = p.Shutdown(ctx)
			return nil, err
		}
	}
	if cfg.ProfilingEnabled {
		if err := p.startProfiling(); err != nil {
			_ = p.Shutdown(ctx)
			return nil, err
		}
	}

	p.logger.Info("Telemetry enabled",
		zap.String("collector_endpoint", cfg.CollectorEndpoint),
		zap.Float64("sampling_ratio", cfg.SamplingRatio),
		zap.Bool("logs", cfg.LogsEnabled),
		zap.Bool("profiling", cfg.ProfilingEnabled))
	return p, nil
}

func (p *Providers) startTracing(ctx context.Context, res *resource.Resource) error {
	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(p.cfg.CollectorEndpoint)}
	if p.cfg.Insecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}
	exporter, err := otlptracegrpc.New(ctx, opts...)
	if err != nil {
		return fmt.Errorf("otlp trace exporter: %w", err)
	}

	p.tracer = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(p.cfg.SamplingRatio))),
	)
	p.traces = p.tracer
	otel.SetTracerProvider(p.traces)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	return nil
}

func (p *Providers) startMetrics(ctx context.Context, res *resource.Resource) error {
	opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithEndpoint(p.cfg.CollectorEndpoint)}
	if p.cfg.Insecure {
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}
	exporter, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return fmt.Errorf("otlp metric exporter: %w", err)
	}

	p.meter = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter,
			sdkmetric.WithInterval(p.cfg.MetricsInterval))),
	)
	otel.SetMeterProvider(p.meter)
	return nil
}

func (p *Providers) startLogs(ctx context.Context, res *resource.Resource) error {
	opts := []otlploggrpc.Option{otlploggrpc.WithEndpoint(p.cfg.CollectorEndpoint)}
	if p.cfg.Insecure {
		opts = append(opts, otlploggrpc.WithInsecure())
	}
	exporter, err := otlploggrpc.New(ctx, opts...)
	if err != nil {
		return fmt.Errorf("otlp log exporter: %w", err)
	}

	p.logs = sdklog.NewLoggerProvider(
		sdklog.WithResource(res),
		sdklog.WithProcessor(sdklog.NewBatchProcessor(exporter)),
	)
	global.SetLoggerProvider(p.logs)
	return nil
}

// startProfiling runs Pyroscope and links CPU samples to the active span
func (p *Providers) startProfiling() error {
	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName: p.cfg.ServiceName,
		ServerAddress:   p.cfg.ProfilingServer,
		Logger:          pyroscopeLogger{p.logger.Named("pyroscope").Sugar()},
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileInuseSpace,
			pyroscope.ProfileGoroutines,
		},
	})
	if err != nil {
		return fmt.Errorf("start pyroscope: %w", err)
	}
	p.profiler = profiler

	if p.tracer != nil {
		p.traces = otelpyroscope.NewTracerProvider(p.tracer)
		otel.SetTracerProvider(p.traces)
	}
	return nil
}

// Enabled reports whether exporters were started
func (p *Providers) Enabled() bool {
	return p.tracer != nil
}

// Config returns the settings Setup was called with
func (p *Providers) Config() config.TelemetryConfig {
	return p.cfg
}

// TracerProvider returns the active tracer provider, or a no-op one
func (p *Providers) TracerProvider() trace.TracerProvider {
	if p.traces == nil {
		return tracenoop.NewTracerProvider()
	}
	return p.traces
}

// MeterProvider returns the active meter provider, or a no-op one
func (p *Providers) MeterProvider() metric.MeterProvider {
	if p.meter == nil {
		return metricnoop.NewMeterProvider()
	}
	return p.meter
}

// Logger tees base into the otel log exporter when log export is enabled.
// Entries below base's level are not exported.
func (p *Providers) Logger(base *zap.Logger) *zap.Logger {
	if p.logs == nil {
		return base
	}
	otelCore := zapcore.Core(otelzap.NewCore(p.cfg.ServiceName, otelzap.WithLoggerProvider(p.logs)))
	if leveled, err := zapcore.NewIncreaseLevelCore(otelCore, base.Level()); err == nil {
		otelCore = leveled
	}
	return base.WithOptions(zap.WrapCore(func(c zapcore.Core) zapcore.Core {
		return zapcore.NewTee(c, otelCore)
	}))
}

// Shutdown flushes and stops every started exporter
func (p *Providers) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var err error
	if p.profiler != nil {
		err = multierr.Append(err, p.profiler.Stop())
	}
	if p.logs != nil {
		err = multierr.Append(err, p.logs.Shutdown(ctx))
	}
	if p.meter != nil {
		err = multierr.Append(err, p.meter.Shutdown(ctx))
	}
	if p.tracer != nil {
		err = multierr.Append(err, p.tracer.Shutdown(ctx))
	}
	p.profiler, p.logs, p.meter, p.tracer, p.traces = nil, nil, nil, nil, nil
	return err
}

// pyroscopeLogger satisfies pyroscope.Logger through the sugared printf methods
type pyroscopeLogger struct{ *zap.SugaredLogger }
