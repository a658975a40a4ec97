package telemetry

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var (
	Logger *zap.Logger
	Tracer trace.Tracer

	tracerProvider *sdktrace.TracerProvider
)

// InitTelemetry sets up the global logger and the OTLP trace exporter. The
// exporter endpoint comes from the standard OTEL_EXPORTER_OTLP_* environment
// variables.
func InitTelemetry(serviceName string) error {
	var err error
	Logger, err = zap.NewProduction()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	exporter, err := otlptracehttp.New(context.Background())
	if err != nil {
		return fmt.Errorf("init trace exporter: %w", err)
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
		),
	)
	if err != nil {
		return fmt.Errorf("build resource: %w", err)
	}

	tracerProvider = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tracerProvider)
	Tracer = otel.Tracer(serviceName)

	return nil
}

func Shutdown(ctx context.Context) {
	if tracerProvider != nil {
		if err := tracerProvider.Shutdown(ctx); err != nil && Logger != nil {
			Logger.Error("Failed to shut down tracer provider", zap.Error(err))
		}
	}
	if Logger != nil {
		Logger.Sync()
	}
}

// TracingMiddleware opens a server span per request and stores its context on
// the request for downstream use.
func TracingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tracer := Tracer
		if tracer == nil {
			tracer = otel.Tracer("boost-service")
		}

		ctx, span := tracer.Start(c.Request.Context(), c.Request.Method+" "+c.FullPath(),
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", c.Request.Method),
				attribute.String("http.route", c.FullPath()),
			),
		)
		defer span.End()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		span.SetAttributes(attribute.Int("http.status_code", c.Writer.Status()))
	}
}
