// Package otel turns forest events into OpenTelemetry spans and metrics.
package otel

import (
	"context"
	"sync"

	callid "github.com/hanpama/rcforest/internal/callid"
	eventbus "github.com/hanpama/rcforest/internal/eventbus"
	events "github.com/hanpama/rcforest/internal/events"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const instrumentationName = "github.com/hanpama/rcforest"

// Setup exports traces to an OTLP collector over gRPC and attaches the
// forest subscribers to the process-wide event bus. Metrics go to the
// global MeterProvider. If endpoint is empty, nothing is configured.
func Setup(endpoint, service string) (func(context.Context) error, error) {
	if endpoint == "" {
		return func(context.Context) error { return nil }, nil
	}
	exp, err := otlptracegrpc.New(context.Background(),
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())))
	if err != nil {
		return nil, err
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(service),
		)),
	)
	otel.SetTracerProvider(tp)

	unsubscribe, err := Instrument(otel.Tracer(instrumentationName), otel.Meter(instrumentationName))
	if err != nil {
		_ = tp.Shutdown(context.Background())
		return nil, err
	}
	return func(ctx context.Context) error {
		unsubscribe()
		return tp.Shutdown(ctx)
	}, nil
}

// Instrument subscribes span and metric recording for forest updates and
// traversals to the process-wide event bus.
func Instrument(tracer trace.Tracer, meter metric.Meter) (unsubscribe func(), err error) {
	ins, err := newInstruments(meter)
	if err != nil {
		return nil, err
	}
	s := &subscriber{tracer: tracer, ins: ins}
	return s.register(), nil
}

type subscriber struct {
	tracer         trace.Tracer
	ins            *instruments
	updateSpans    sync.Map // call id -> trace.Span
	traversalSpans sync.Map // call id -> trace.Span
}

func (s *subscriber) register() func() {
	unsubs := []func(){
		eventbus.Subscribe(func(ctx context.Context, e events.UpdateStart) {
			id, _ := callid.FromContext(ctx)
			_, span := s.tracer.Start(ctx, "forest.update", trace.WithAttributes(
				attribute.Int("forest.trees", e.Trees),
				attribute.Bool("forest.parallel", e.Parallel),
			))
			s.updateSpans.Store(id, span)
		}),

		eventbus.Subscribe(func(ctx context.Context, e events.UpdateFinish) {
			s.ins.recordUpdate(ctx, e)
			id, _ := callid.FromContext(ctx)
			v, ok := s.updateSpans.LoadAndDelete(id)
			if !ok {
				return
			}
			span := v.(trace.Span)
			span.SetAttributes(attribute.Int64("forest.total_updates", e.TotalUpdates))
			endSpan(span, e.Err)
		}),

		eventbus.Subscribe(func(ctx context.Context, e events.TraversalStart) {
			id, _ := callid.FromContext(ctx)
			_, span := s.tracer.Start(ctx, "forest.traversal", trace.WithAttributes(
				attribute.String("forest.variant", e.Variant),
				attribute.Int("forest.trees", e.Trees),
				attribute.Int("forest.workers", e.Workers),
			))
			s.traversalSpans.Store(id, span)
		}),

		eventbus.Subscribe(func(ctx context.Context, e events.TraversalFinish) {
			s.ins.recordTraversal(ctx, e)
			id, _ := callid.FromContext(ctx)
			v, ok := s.traversalSpans.LoadAndDelete(id)
			if !ok {
				return
			}
			span := v.(trace.Span)
			span.SetAttributes(attribute.Int("forest.visited", e.Visited))
			endSpan(span, e.Err)
		}),
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
