package otel

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutlog"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/metric"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	otelsemconv "go.opentelemetry.io/otel/semconv/v1.30.0"
	oteltrace "go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const instrumentationName = "github.com/tmeire/typedtracks"

// Config selects where telemetry goes. With neither field set, Setup
// installs nothing and the global no-op providers stay in place.
type Config struct {
	// Endpoint is the OTLP gRPC collector address, e.g. localhost:4317.
	Endpoint string `json:"endpoint" yaml:"endpoint"`
	// Stdout writes logs to stdout instead of the collector.
	Stdout bool `json:"stdout" yaml:"stdout"`
}

type ShutdownFunc func(context.Context) error

// Setup installs the tracer, meter and logger providers for service name and
// routes slog through OpenTelemetry. The returned func flushes and closes
// everything that was started.
func Setup(ctx context.Context, name, version string, conf Config) (ShutdownFunc, error) {
	var shutdowns []ShutdownFunc
	shutdown := func(ctx context.Context) error {
		var err error
		for i := len(shutdowns) - 1; i >= 0; i-- {
			err = errors.Join(err, shutdowns[i](ctx))
		}
		return err
	}

	if conf.Endpoint == "" && !conf.Stdout {
		return shutdown, nil
	}

	rs, err := resource.Merge(
		resource.Default(),
		resource.NewSchemaless(
			otelsemconv.ServiceNameKey.String(name),
			otelsemconv.ServiceVersionKey.String(version),
		),
	)
	if err != nil {
		return nil, err
	}

	var conn *grpc.ClientConn
	if conf.Endpoint != "" {
		// Make a gRPC connection with otel collector.
		conn, err = grpc.NewClient(conf.Endpoint,
			// Note the use of insecure transport here. TLS is recommended in production.
			grpc.WithTransportCredentials(insecure.NewCredentials()),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create gRPC connection to collector: %w", err)
		}
		shutdowns = append(shutdowns, func(context.Context) error { return conn.Close() })

		tp, err := setupTracerProvider(ctx, conn, rs)
		if err != nil {
			return nil, errors.Join(err, shutdown(ctx))
		}
		shutdowns = append(shutdowns, tp.Shutdown)

		mp, err := setupMeterProvider(ctx, conn, rs)
		if err != nil {
			return nil, errors.Join(err, shutdown(ctx))
		}
		shutdowns = append(shutdowns, mp.Shutdown)
	}

	lp, err := setupLoggerProvider(ctx, conn, conf.Stdout, rs)
	if err != nil {
		return nil, errors.Join(err, shutdown(ctx))
	}
	shutdowns = append(shutdowns, lp.Shutdown)

	slog.SetDefault(otelslog.NewLogger(name, otelslog.WithLoggerProvider(lp)))

	return shutdown, nil
}

func setupTracerProvider(ctx context.Context, conn *grpc.ClientConn, rs *resource.Resource) (*trace.TracerProvider, error) {
	exp, err := otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	tp := trace.NewTracerProvider(
		trace.WithBatcher(exp),
		trace.WithResource(rs),
	)
	otel.SetTracerProvider(tp)

	return tp, nil
}

func setupMeterProvider(ctx context.Context, conn *grpc.ClientConn, rs *resource.Resource) (*sdkmetric.MeterProvider, error) {
	exp, err := otlpmetricgrpc.New(ctx, otlpmetricgrpc.WithGRPCConn(conn))
	if err != nil {
		return nil, fmt.Errorf("failed to create metric exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp)),
		sdkmetric.WithResource(rs),
	)
	otel.SetMeterProvider(mp)

	if err := runtime.Start(runtime.WithMeterProvider(mp)); err != nil {
		return nil, fmt.Errorf("failed to start runtime instrumentation: %w", err)
	}

	return mp, nil
}

func setupLoggerProvider(ctx context.Context, conn *grpc.ClientConn, stdout bool, rs *resource.Resource) (*sdklog.LoggerProvider, error) {
	var (
		exp sdklog.Exporter
		err error
	)
	if stdout || conn == nil {
		exp, err = stdoutlog.New()
	} else {
		exp, err = otlploggrpc.New(ctx, otlploggrpc.WithGRPCConn(conn))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create log exporter: %w", err)
	}

	lp := sdklog.NewLoggerProvider(
		sdklog.WithProcessor(sdklog.NewBatchProcessor(exp)),
		sdklog.WithResource(rs),
	)
	global.SetLoggerProvider(lp)

	return lp, nil
}

// Trace wraps h so every request gets a server span.
func Trace(h http.Handler) (http.Handler, error) {
	return otelhttp.NewHandler(h, "action"), nil
}

// Tracer returns the tracer used for spans started by this module.
func Tracer() oteltrace.Tracer {
	return otel.Tracer(instrumentationName)
}

// ResponseCounter creates the counter of responses written by actions.
func ResponseCounter() (metric.Int64Counter, error) {
	return otel.Meter(instrumentationName).Int64Counter("tracks.responses",
		metric.WithDescription("Responses written by actions."),
		metric.WithUnit("{response}"),
	)
}
