// Package rendermetrics records OpenCensus metrics for render passes.
package rendermetrics

import (
	"context"
	"time"

	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"

	"cellray/scene"
)

var outcomeKey = tag.MustNewKey("outcome")

// Renderer is satisfied by *scene.Scene.
type Renderer interface {
	RenderContext(ctx context.Context, g *scene.Grid, workers int) error
}

type Wrapper struct {
	rays    *stats.Int64Measure
	hits    *stats.Int64Measure
	latency *stats.Float64Measure

	views []*view.View

	inner Renderer
}

func New(inner Renderer) *Wrapper {
	w := &Wrapper{}

	w.rays = stats.Int64("cellray/rays", "Rays cast by render passes", stats.UnitDimensionless)
	w.hits = stats.Int64("cellray/hits", "Cells that hit an object", stats.UnitDimensionless)
	w.latency = stats.Float64("cellray/render_latency", "Wall time of one render pass", stats.UnitMilliseconds)

	w.views = []*view.View{
		{
			Name:        "cellray/rays",
			Description: "Total rays cast",
			TagKeys:     []tag.Key{outcomeKey},
			Measure:     w.rays,
			Aggregation: view.Sum(),
		},
		{
			Name:        "cellray/hits",
			Description: "Total cells that hit an object",
			TagKeys:     []tag.Key{outcomeKey},
			Measure:     w.hits,
			Aggregation: view.Sum(),
		},
		{
			Name:        "cellray/render_latency",
			Description: "Distribution of render pass wall time",
			TagKeys:     []tag.Key{outcomeKey},
			Measure:     w.latency,
			Aggregation: view.Distribution(1, 2, 5, 10, 20, 50, 100, 200, 500, 1000),
		},
		{
			Name:        "cellray/renders",
			Description: "Counter of render passes",
			TagKeys:     []tag.Key{outcomeKey},
			Measure:     w.latency,
			Aggregation: view.Count(),
		},
	}

	w.inner = inner

	return w
}

func (w *Wrapper) RegisterMetrics() error {
	return view.Register(w.views...)
}

func (w *Wrapper) UnregisterMetrics() {
	view.Unregister(w.views...)
}

// RenderContext renders through the wrapped renderer and records what it
// did.
func (w *Wrapper) RenderContext(ctx context.Context, g *scene.Grid, workers int) error {
	start := time.Now()
	err := w.inner.RenderContext(ctx, g, workers)
	elapsed := time.Since(start)

	outcome := "ok"
	if err != nil {
		outcome = "error"
	}

	cols, rows := g.Size()
	stats.RecordWithOptions(
		ctx,
		stats.WithTags(tag.Insert(outcomeKey, outcome)),
		stats.WithMeasurements(
			w.rays.M(int64(cols*rows)),
			w.hits.M(int64(g.Hits())),
			w.latency.M(float64(elapsed)/float64(time.Millisecond)),
		))

	return err
}
