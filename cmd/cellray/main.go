// cellray renders a triangle scene to a grid of cells by casting one ray per
// cell, animates it for a number of frames, and writes snapshots.
package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/golang/glog"
	"go.opencensus.io/stats/view"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"golang.org/x/term"
	"golang.org/x/xerrors"

	"cellray/affinetransform"
	"cellray/frame"
	"cellray/rendermetrics"
	"cellray/scene"
	"cellray/scenefile"
	"cellray/snapshot"
	"cellray/vmath/vec3"
)

var (
	scenePath = flag.String("scene", "", "JSON scene description.  Empty renders the built-in demo scene.")
	frames    = flag.Int("frames", 1, "Number of animation frames to render.")
	output    = flag.String("output", "", "Snapshot path (.webp, .png, or .txt).  May contain one %d verb for the frame number.  Empty writes the last frame as text to stdout.")
	workers   = flag.Int("workers", 0, "Render goroutines.  0 means one per CPU.")

	cols = flag.Int("cols", 0, "Screen width in cells.  0 takes the terminal width, or the scene's screen when stdout is not a terminal.")
	rows = flag.Int("rows", 0, "Screen height in cells.  0 takes twice the terminal height, or the scene's screen when stdout is not a terminal.")

	orbit   = flag.Float64("orbit", 0, "Degrees to orbit the camera about +y per frame.")
	dolly   = flag.Float64("dolly", 0, "Eye distance change per frame.")
	move    = flag.String("move", "", "Comma-separated camera moves applied before the first frame: w/a/s/d step, W/A/S/D orbit, f/F dolly.")
	noSpin  = flag.Bool("no-spin", false, "Ignore the scene's object spin.")
	falloff = flag.Float64("falloff", snapshot.DefaultFalloff, "Distance at which hits fade to black.")

	cellWidth  = flag.Int("cell-width", 4, "Pixels per cell horizontally in image snapshots.")
	cellHeight = flag.Int("cell-height", 4, "Pixels per cell vertically in image snapshots.")

	traceSpans    = flag.Bool("trace", false, "Log a trace span for every render pass.")
	metricsPeriod = flag.Duration("metrics-period", 0, "Log render metrics at this period.  0 disables.")
)

func main() {
	flag.Parse()

	glog.CopyStandardLogTo("INFO")
	defer glog.Flush()

	glog.Infof("flags:")
	glog.Infof("scene: %v", *scenePath)
	glog.Infof("frames: %v", *frames)
	glog.Infof("output: %v", *output)
	glog.Infof("workers: %v", *workers)
	glog.Infof("cols: %v", *cols)
	glog.Infof("rows: %v", *rows)
	glog.Infof("orbit: %v", *orbit)
	glog.Infof("dolly: %v", *dolly)
	glog.Infof("move: %v", *move)
	glog.Infof("no-spin: %v", *noSpin)
	glog.Infof("falloff: %v", *falloff)
	glog.Infof("trace: %v", *traceSpans)
	glog.Infof("metrics-period: %v", *metricsPeriod)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if *traceSpans {
		tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(logSpanProcessor{}))
		defer tp.Shutdown(context.Background())
		otel.SetTracerProvider(tp)
	}

	cfg := scenefile.Demo()
	if *scenePath != "" {
		var err error
		cfg, err = scenefile.Load(*scenePath)
		if err != nil {
			glog.Exitf("Failed to load scene: %v", err)
		}
	}

	arena := frame.NewArena()
	s := cfg.Build(arena)
	defer s.Camera.Close()
	if *noSpin {
		s.Spin = nil
	}

	resizeScreen(s)

	if err := applyMoves(s, *move); err != nil {
		glog.Exitf("Bad -move: %v", err)
	}

	renderer := rendermetrics.New(s)
	if err := renderer.RegisterMetrics(); err != nil {
		glog.Exitf("Failed to register metrics: %v", err)
	}
	if *metricsPeriod > 0 {
		view.RegisterExporter(rendermetrics.LogExporter{})
		view.SetReportingPeriod(*metricsPeriod)
		defer view.UnregisterExporter(rendermetrics.LogExporter{})
	}

	opts := snapshot.Options{
		Falloff:    *falloff,
		CellWidth:  *cellWidth,
		CellHeight: *cellHeight,
	}

	g := s.EmptyRender()
	for i := 0; i < *frames; i++ {
		start := time.Now()
		if err := renderer.RenderContext(ctx, g, *workers); err != nil {
			glog.Exitf("Failed to render frame %d: %v", i, err)
		}
		glog.V(1).Infof("Rendered frame %d: %d hits in %v", i, g.Hits(), time.Since(start))

		if *output != "" {
			path := *output
			if strings.Contains(path, "%") {
				path = fmt.Sprintf(path, i)
			}
			if err := snapshot.WriteFile(path, g, opts); err != nil {
				glog.Exitf("Failed to write frame %d: %v", i, err)
			}
		} else if i == *frames-1 {
			if err := snapshot.WriteText(os.Stdout, g, opts); err != nil {
				glog.Exitf("Failed to write frame %d: %v", i, err)
			}
		}

		s.Step()
		if *orbit != 0 {
			s.Camera.Orbit(*orbit*math.Pi/180, vec3.Direction{0, 1, 0})
		}
		if *dolly != 0 {
			s.Camera.Dolly(*dolly)
		}
	}
}

// resizeScreen applies -cols and -rows, falling back to the terminal size.
// A terminal line holds two cells vertically.
func resizeScreen(s *scene.Scene) {
	c, r := *cols, *rows
	if c == 0 || r == 0 {
		fd := int(os.Stdout.Fd())
		if term.IsTerminal(fd) {
			w, h, err := term.GetSize(fd)
			if err != nil {
				glog.Errorf("Couldn't get terminal size: %v", err)
			} else {
				if c == 0 {
					c = w
				}
				if r == 0 {
					r = 2 * h
				}
			}
		}
	}
	if c <= 0 || r <= 0 {
		return
	}

	sc, sr := s.Camera.ScreenSize()
	if c == sc && r == sr {
		return
	}
	glog.Infof("Resizing screen from %dx%d to %dx%d cells", sc, sr, c, r)

	// Keep the scene's cell size, and keep the eye centered in front of the
	// new screen at its old distance.
	cellSize := s.Camera.CellSize()
	eye := s.Camera.LocalEye()
	w, h := cellSize[0]*float64(c), cellSize[1]*float64(r)
	s.Camera.SetScreen(cellSize, [2]int{c, r})
	s.Camera.SetLocalEye(vec3.Point{w / 2, h / 2, eye[2]})
}

const (
	stepSize  = 2.5
	orbitStep = 2 * math.Pi / 180
	dollyStep = 5
)

// applyMoves performs keyboard-style camera moves.  Lowercase wasd step in
// the camera's own orientation, uppercase WASD orbit about the camera pivot,
// and f/F push the eye away from or toward the screen.
func applyMoves(s *scene.Scene, moves string) error {
	if moves == "" {
		return nil
	}
	for _, m := range strings.Split(moves, ",") {
		switch m {
		case "w":
			s.Camera.ApplyRelative(affinetransform.Translate(vec3.Direction{0, 0, -stepSize}))
		case "a":
			s.Camera.ApplyRelative(affinetransform.Translate(vec3.Direction{-stepSize, 0, 0}))
		case "s":
			s.Camera.ApplyRelative(affinetransform.Translate(vec3.Direction{0, 0, stepSize}))
		case "d":
			s.Camera.ApplyRelative(affinetransform.Translate(vec3.Direction{stepSize, 0, 0}))
		case "W":
			s.Camera.Orbit(orbitStep, vec3.Direction{-1, 0, 0})
		case "A":
			s.Camera.Orbit(orbitStep, vec3.Direction{0, 1, 0})
		case "S":
			s.Camera.Orbit(orbitStep, vec3.Direction{1, 0, 0})
		case "D":
			s.Camera.Orbit(orbitStep, vec3.Direction{0, -1, 0})
		case "f":
			s.Camera.Dolly(dollyStep)
		case "F":
			s.Camera.Dolly(-dollyStep)
		default:
			return xerrors.Errorf("unknown move %q", m)
		}
	}
	return nil
}
