package scene

import (
	"context"
	"fmt"
	"runtime"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
	"golang.org/x/xerrors"

	"cellray/affinetransform"
	"cellray/camera"
	"cellray/contact"
	"cellray/geometry"
)

// Scene is a set of objects seen through one camera.
//
// Objects and the camera must not be mutated while a render is in flight.
type Scene struct {
	Objects []*geometry.Object
	Camera  *camera.Camera

	// Spin, if set, is applied to every object by Step.
	Spin *affinetransform.AffineTransform
}

func New(c *camera.Camera, objects ...*geometry.Object) *Scene {
	return &Scene{
		Objects: objects,
		Camera:  c,
	}
}

// AddObject is a convenience function to register an object and get its
// index.
func (s *Scene) AddObject(o *geometry.Object) int {
	s.Objects = append(s.Objects, o)
	return len(s.Objects) - 1
}

// Step advances the scene's animation by one frame.
func (s *Scene) Step() {
	if s.Spin == nil {
		return
	}
	for _, o := range s.Objects {
		o.Apply(*s.Spin)
	}
}

// EmptyRender returns a fresh grid sized to the camera's current screen.
func (s *Scene) EmptyRender() *Grid {
	return NewGrid(s.Camera.ScreenSize())
}

// TestRay returns what the camera sees through cell (x, y).  Cells outside
// the screen are empty.
func (s *Scene) TestRay(x, y int) Cell {
	r, ok := s.Camera.Ray(x, y)
	if !ok {
		return Empty()
	}

	nearest := contact.ContactNaN()
	var color geometry.RGB
	for _, o := range s.Objects {
		if c := o.Intersect(r); contact.Nearer(c, nearest) {
			nearest = c
			color = o.Color()
		}
	}

	if nearest.IsNaN() {
		return Empty()
	}
	return HitCell(color, nearest.Distance)
}

func (s *Scene) checkGrid(g *Grid) {
	cols, rows := s.Camera.ScreenSize()
	if gc, gr := g.Size(); gc != cols || gr != rows {
		panic(fmt.Sprintf("scene: %dx%d grid does not match %dx%d screen", gc, gr, cols, rows))
	}
}

// Render fills g row-major from the camera's current screen.  g must be sized
// to the screen, as EmptyRender does.
func (s *Scene) Render(g *Grid) {
	s.checkGrid(g)
	cols, rows := g.Size()
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			g.Set(x, y, s.TestRay(x, y))
		}
	}
}

// RenderContext is Render with rows traced in parallel on up to workers
// goroutines.  workers <= 0 means one per CPU.  The grid holds the same
// cells Render would produce.
func (s *Scene) RenderContext(ctx context.Context, g *Grid, workers int) error {
	s.checkGrid(g)
	cols, rows := g.Size()

	tracer := otel.Tracer("cellray/scene")
	var span trace.Span
	ctx, span = tracer.Start(ctx, "Scene Render", trace.WithAttributes(
		attribute.Int("cellray.cols", cols),
		attribute.Int("cellray.rows", rows),
		attribute.Int("cellray.objects", len(s.Objects)),
	))
	defer span.End()

	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	// Each row is one unit of work.
	eg, ctx := errgroup.WithContext(ctx)
	sem := semaphore.NewWeighted(int64(workers))

	for y := 0; y < rows; y++ {
		y := y

		if err := sem.Acquire(ctx, 1); err != nil {
			eg.Wait()
			return xerrors.Errorf("while acquiring render worker: %w", err)
		}

		eg.Go(func() error {
			defer sem.Release(1)
			if err := ctx.Err(); err != nil {
				return err
			}
			row := g.Row(y)
			for x := 0; x < cols; x++ {
				row[x] = s.TestRay(x, y)
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return xerrors.Errorf("while waiting for render rows: %w", err)
	}

	span.SetAttributes(attribute.Int("cellray.hits", g.Hits()))
	return nil
}
