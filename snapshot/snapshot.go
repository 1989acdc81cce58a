// Package snapshot turns rendered grids into images and text.
package snapshot

import (
	"bufio"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"
	"golang.org/x/xerrors"

	"cellray/scene"
)

// DefaultFalloff is the distance at which a hit fades to black.
const DefaultFalloff = 50

// ramp orders characters from dimmest to brightest.
const ramp = " .:-=+*#%@"

type Options struct {
	// Falloff is the distance at which hits fade to black.  Zero means
	// DefaultFalloff.
	Falloff float64

	// CellWidth and CellHeight are the pixel size of one cell in exported
	// images.  Zero means 1.
	CellWidth, CellHeight int
}

func (o Options) falloff() float64 {
	if o.Falloff <= 0 {
		return DefaultFalloff
	}
	return o.Falloff
}

// Brightness maps a cell to [0, 1]: (falloff - distance)/falloff for hits,
// clamped, and 0 for empty cells.
func Brightness(c scene.Cell, falloff float64) float64 {
	if !c.Hit {
		return 0
	}
	k := (falloff - c.Distance) / falloff
	if k < 0 {
		return 0
	}
	if k > 1 {
		return 1
	}
	return k
}

// Shade returns the cell's color dimmed by distance.
func Shade(c scene.Cell, falloff float64) color.RGBA {
	k := Brightness(c, falloff)
	return color.RGBA{
		R: uint8(float64(c.Color.R) * k),
		G: uint8(float64(c.Color.G) * k),
		B: uint8(float64(c.Color.B) * k),
		A: 0xff,
	}
}

// Image renders g with one pixel per cell, then scales each cell up to
// CellWidth x CellHeight pixels.
func Image(g *scene.Grid, o Options) *image.RGBA {
	cols, rows := g.Size()
	base := image.NewRGBA(image.Rect(0, 0, cols, rows))
	f := o.falloff()
	for y := 0; y < rows; y++ {
		for x, c := range g.Row(y) {
			base.SetRGBA(x, y, Shade(c, f))
		}
	}

	cw, ch := o.CellWidth, o.CellHeight
	if cw <= 0 {
		cw = 1
	}
	if ch <= 0 {
		ch = 1
	}
	if cw == 1 && ch == 1 {
		return base
	}

	scaled := image.NewRGBA(image.Rect(0, 0, cols*cw, rows*ch))
	draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), base, base.Bounds(), draw.Src, nil)
	return scaled
}

func WriteWebP(w io.Writer, g *scene.Grid, o Options) error {
	if err := nativewebp.Encode(w, Image(g, o), nil); err != nil {
		return xerrors.Errorf("while encoding webp: %w", err)
	}
	return nil
}

func WritePNG(w io.Writer, g *scene.Grid, o Options) error {
	if err := png.Encode(w, Image(g, o)); err != nil {
		return xerrors.Errorf("while encoding png: %w", err)
	}
	return nil
}

// WriteText writes one line per grid row, one character per cell, picked
// from a brightness ramp.
func WriteText(w io.Writer, g *scene.Grid, o Options) error {
	bw := bufio.NewWriter(w)
	cols, rows := g.Size()
	f := o.falloff()
	line := make([]byte, 0, cols+1)
	for y := 0; y < rows; y++ {
		line = line[:0]
		for _, c := range g.Row(y) {
			line = append(line, rampChar(c, f))
		}
		line = append(line, '\n')
		if _, err := bw.Write(line); err != nil {
			return xerrors.Errorf("while writing row %d: %w", y, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return xerrors.Errorf("while flushing text snapshot: %w", err)
	}
	return nil
}

func rampChar(c scene.Cell, falloff float64) byte {
	if !c.Hit {
		return ramp[0]
	}
	// Every hit is at least the dimmest visible character.
	i := 1 + int(Brightness(c, falloff)*float64(len(ramp)-2)+0.5)
	if i >= len(ramp) {
		i = len(ramp) - 1
	}
	return ramp[i]
}

// WriteFile writes g to path, choosing the format from the extension: .webp,
// .png, or .txt.
func WriteFile(path string, g *scene.Grid, o Options) (retErr error) {
	var write func(io.Writer, *scene.Grid, Options) error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".webp":
		write = WriteWebP
	case ".png":
		write = WritePNG
	case ".txt":
		write = WriteText
	default:
		return xerrors.Errorf("unknown snapshot format %q for %s", ext, path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return xerrors.Errorf("while creating output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return xerrors.Errorf("while creating %s: %w", path, err)
	}
	defer func() {
		if err := f.Close(); err != nil && retErr == nil {
			retErr = xerrors.Errorf("while closing %s: %w", path, err)
		}
	}()

	return write(f, g, o)
}
