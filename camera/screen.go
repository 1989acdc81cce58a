package camera

import (
	"cellray/affinetransform"
	"cellray/vmath/vec3"
)

// Screen is a grid of cell centers in its local z=0 plane.
//
// Cell (x, y) is centered at (x*w + w/2, y*h + h/2, 0) for cell size (w, h).
// Centers are stored row-major.
type Screen struct {
	cellSize   [2]float64
	cellCounts [2]int

	centers []vec3.Point
	corners [4]vec3.Point
}

func NewScreen(cellSize [2]float64, cellCounts [2]int) Screen {
	cols, rows := cellCounts[0], cellCounts[1]
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}

	s := Screen{
		cellSize:   cellSize,
		cellCounts: [2]int{cols, rows},
		centers:    make([]vec3.Point, 0, cols*rows),
	}
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			s.centers = append(s.centers, vec3.Point{
				float64(x)*cellSize[0] + cellSize[0]/2,
				float64(y)*cellSize[1] + cellSize[1]/2,
				0,
			})
		}
	}

	w, h := s.Extent()
	s.corners = [4]vec3.Point{
		{0, 0, 0},
		{w, 0, 0},
		{w, h, 0},
		{0, h, 0},
	}
	return s
}

// DefaultScreen is 64x64 cells of size 0.25.
func DefaultScreen() Screen {
	return NewScreen([2]float64{0.25, 0.25}, [2]int{64, 64})
}

// Size returns the cell counts.
func (s Screen) Size() (cols, rows int) {
	return s.cellCounts[0], s.cellCounts[1]
}

func (s Screen) CellSize() [2]float64 {
	return s.cellSize
}

// Extent returns the screen's width and height in local units.
func (s Screen) Extent() (w, h float64) {
	return s.cellSize[0] * float64(s.cellCounts[0]), s.cellSize[1] * float64(s.cellCounts[1])
}

func (s Screen) inRange(x, y int) bool {
	return x >= 0 && y >= 0 && x < s.cellCounts[0] && y < s.cellCounts[1]
}

// Center returns the center of cell (x, y), or false if the cell is outside
// the grid.
func (s Screen) Center(x, y int) (vec3.Point, bool) {
	if !s.inRange(x, y) {
		return vec3.Point{}, false
	}
	return s.centers[y*s.cellCounts[0]+x], true
}

// Centers returns every cell center, row-major.
func (s Screen) Centers() []vec3.Point {
	return append([]vec3.Point(nil), s.centers...)
}

// Corners returns the extremal points of the grid, counterclockwise from
// the local origin.
func (s Screen) Corners() [4]vec3.Point {
	return s.corners
}

// TransformScreen maps every center and corner of s through t.  s itself is
// left untouched.
func TransformScreen(t affinetransform.AffineTransform, s Screen) Screen {
	result := s
	result.centers = make([]vec3.Point, len(s.centers))
	for i, c := range s.centers {
		result.centers[i] = affinetransform.TransformPoint(t, c)
	}
	for i, c := range s.corners {
		result.corners[i] = affinetransform.TransformPoint(t, c)
	}
	return result
}
