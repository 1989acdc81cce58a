package aabox

import "cellray/vmath/vec3"

// AABox is an axis-aligned box given by its minimum and maximum corners.
type AABox struct {
	Min, Max vec3.Point
}

// Degenerate returns the zero-sized box at the origin.
func Degenerate() AABox {
	return AABox{}
}

// FromPoints returns the smallest box containing ps, or the degenerate box
// if ps is empty.
func FromPoints(ps ...vec3.Point) AABox {
	if len(ps) == 0 {
		return Degenerate()
	}
	result := AABox{Min: ps[0], Max: ps[0]}
	for _, p := range ps[1:] {
		result.Min = vec3.LowerBound(result.Min, p)
		result.Max = vec3.UpperBound(result.Max, p)
	}
	return result
}

func MinContainingAABox(a, b AABox) AABox {
	return AABox{
		Min: vec3.LowerBound(a.Min, b.Min),
		Max: vec3.UpperBound(a.Max, b.Max),
	}
}

// Corners returns {Min, Max}, indexable by a ray's per-axis sign bit.
func (a AABox) Corners() [2]vec3.Point {
	return [2]vec3.Point{a.Min, a.Max}
}

func (a AABox) Contains(p vec3.Point) bool {
	for i := 0; i < 3; i++ {
		if p[i] < a.Min[i] || p[i] > a.Max[i] {
			return false
		}
	}
	return true
}
