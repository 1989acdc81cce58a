package scene

import (
	"fmt"

	"cellray/geometry"
)

// Cell is one rendered screen cell.  The zero Cell is empty.
type Cell struct {
	Hit      bool
	Color    geometry.RGB
	Distance float64
}

func Empty() Cell {
	return Cell{}
}

func HitCell(c geometry.RGB, distance float64) Cell {
	return Cell{Hit: true, Color: c, Distance: distance}
}

func (c Cell) String() string {
	if !c.Hit {
		return "empty"
	}
	return fmt.Sprintf("hit{#%02x%02x%02x %.3f}", c.Color.R, c.Color.G, c.Color.B, c.Distance)
}

// Grid is a fixed-size row-major array of cells.
type Grid struct {
	cols, rows int
	cells      []Cell
}

func NewGrid(cols, rows int) *Grid {
	if cols < 0 || rows < 0 {
		panic(fmt.Sprintf("scene: negative grid size %dx%d", cols, rows))
	}
	return &Grid{
		cols:  cols,
		rows:  rows,
		cells: make([]Cell, cols*rows),
	}
}

func (g *Grid) Size() (cols, rows int) {
	return g.cols, g.rows
}

func (g *Grid) At(x, y int) Cell {
	return g.cells[g.index(x, y)]
}

func (g *Grid) Set(x, y int, c Cell) {
	g.cells[g.index(x, y)] = c
}

// Row returns row y.  The slice aliases the grid.
func (g *Grid) Row(y int) []Cell {
	if y < 0 || y >= g.rows {
		panic(fmt.Sprintf("scene: row %d outside grid of %d rows", y, g.rows))
	}
	return g.cells[y*g.cols : (y+1)*g.cols]
}

// Cells returns every cell, row-major.  The slice aliases the grid.
func (g *Grid) Cells() []Cell {
	return g.cells
}

// Hits counts the non-empty cells.
func (g *Grid) Hits() int {
	n := 0
	for _, c := range g.cells {
		if c.Hit {
			n++
		}
	}
	return n
}

func (g *Grid) index(x, y int) int {
	if x < 0 || y < 0 || x >= g.cols || y >= g.rows {
		panic(fmt.Sprintf("scene: cell (%d, %d) outside %dx%d grid", x, y, g.cols, g.rows))
	}
	return y*g.cols + x
}
