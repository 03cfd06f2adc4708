package otel

import (
	"context"

	events "github.com/hanpama/rcforest/internal/events"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type instruments struct {
	updates          metric.Int64Counter
	updateLatency    metric.Float64Histogram
	traversals       metric.Int64Counter
	traversalLatency metric.Float64Histogram
	treesVisited     metric.Int64Histogram
}

func newInstruments(meter metric.Meter) (*instruments, error) {
	var (
		ins instruments
		err error
	)
	ins.updates, err = meter.Int64Counter(
		"forest_updates_total",
		metric.WithDescription("Number of forest update calls"),
	)
	if err != nil {
		return nil, err
	}
	ins.updateLatency, err = meter.Float64Histogram(
		"forest_update_duration_seconds",
		metric.WithDescription("Duration of forest update calls"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}
	ins.traversals, err = meter.Int64Counter(
		"forest_traversals_total",
		metric.WithDescription("Number of forest traversals"),
	)
	if err != nil {
		return nil, err
	}
	ins.traversalLatency, err = meter.Float64Histogram(
		"forest_traversal_duration_seconds",
		metric.WithDescription("Duration of forest traversals"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}
	ins.treesVisited, err = meter.Int64Histogram(
		"forest_trees_visited",
		metric.WithDescription("Trees visited per traversal"),
	)
	if err != nil {
		return nil, err
	}
	return &ins, nil
}

func (ins *instruments) recordUpdate(ctx context.Context, e events.UpdateFinish) {
	attrs := metric.WithAttributes(attribute.Bool("success", e.Err == nil))
	ins.updates.Add(ctx, 1, attrs)
	ins.updateLatency.Record(ctx, e.Duration.Seconds(), attrs)
}

func (ins *instruments) recordTraversal(ctx context.Context, e events.TraversalFinish) {
	attrs := metric.WithAttributes(
		attribute.String("variant", e.Variant),
		attribute.Bool("success", e.Err == nil),
	)
	ins.traversals.Add(ctx, 1, attrs)
	ins.traversalLatency.Record(ctx, e.Duration.Seconds(), attrs)
	ins.treesVisited.Record(ctx, int64(e.Visited), metric.WithAttributes(attribute.String("variant", e.Variant)))
}
