package telemetry

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// endpointConfig is one otlp destination. A grpc endpoint wins over an
// http one when both are set.
type endpointConfig struct {
	GrpcEndpoint string            `json:"grpc_endpoint"`
	HttpEndpoint string            `json:"http_endpoint"`
	Headers      map[string]string `json:"headers"`
}

func (e endpointConfig) protocol() string {
	if e.GrpcEndpoint != "" {
		return "grpc"
	}
	return "http"
}

func (e endpointConfig) endpoint() string {
	if e.GrpcEndpoint != "" {
		return e.GrpcEndpoint
	}
	return e.HttpEndpoint
}

type otlpConfig struct {
	Traces  endpointConfig `json:"traces"`
	Metrics endpointConfig `json:"metrics"`
}

type config struct {
	Otlp otlpConfig `json:"otlp"`
}

func newResource(serviceName string) (*resource.Resource, error) {
	return resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
		),
	)
}

func newTraceProvider(ctx context.Context, r *resource.Resource, c config) (*trace.TracerProvider, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Second*3)
	defer cancel()

	ep := c.Otlp.Traces
	slog.Info("exporting traces over otlp",
		"protocol", ep.protocol(),
		"endpoint", ep.endpoint(),
	)

	var exporter trace.SpanExporter
	var err error
	if ep.protocol() == "grpc" {
		exporter, err = otlptracegrpc.New(
			ctx,
			otlptracegrpc.WithEndpointURL(ep.GrpcEndpoint),
			otlptracegrpc.WithHeaders(ep.Headers),
		)
	} else {
		exporter, err = otlptracehttp.New(
			ctx,
			otlptracehttp.WithEndpointURL(ep.HttpEndpoint),
			otlptracehttp.WithHeaders(ep.Headers),
		)
	}
	if err != nil {
		return nil, err
	}

	return trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithResource(r),
	), nil
}

func newMetricProvider(ctx context.Context, r *resource.Resource, c config) (*metric.MeterProvider, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Second*3)
	defer cancel()

	ep := c.Otlp.Metrics
	slog.Info("exporting metrics over otlp",
		"protocol", ep.protocol(),
		"endpoint", ep.endpoint(),
	)

	var exporter metric.Exporter
	var err error
	if ep.protocol() == "grpc" {
		exporter, err = otlpmetricgrpc.New(
			ctx,
			otlpmetricgrpc.WithEndpointURL(ep.GrpcEndpoint),
			otlpmetricgrpc.WithHeaders(ep.Headers),
		)
	} else {
		exporter, err = otlpmetrichttp.New(
			ctx,
			otlpmetrichttp.WithEndpointURL(ep.HttpEndpoint),
			otlpmetrichttp.WithHeaders(ep.Headers),
		)
	}
	if err != nil {
		return nil, err
	}

	return metric.NewMeterProvider(
		metric.WithReader(metric.NewPeriodicReader(exporter, metric.WithInterval(time.Second*5))),
		metric.WithResource(r),
	), nil
}
