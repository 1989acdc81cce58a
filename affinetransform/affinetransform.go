// Package affinetransform implements 4x4 affine transforms whose bottom row is
// fixed at [0, 0, 0, 1].
//
// The matrix is stored as its upper-left 3x3 linear block plus the offset
// column, so every value of AffineTransform is a valid affine matrix.
package affinetransform

import (
	"math"

	"cellray/vmath/mat33"
	"cellray/vmath/mat44"
	"cellray/vmath/vec3"
)

type AffineTransform struct {
	Linear mat33.T
	Offset vec3.T
}

func Identity() AffineTransform {
	return AffineTransform{
		Linear: mat33.Identity(),
		Offset: vec3.T{0.0, 0.0, 0.0},
	}
}

func Scale(s float64) AffineTransform {
	return AffineTransform{
		Linear: mat33.T{s, 0.0, 0.0, 0.0, s, 0.0, 0.0, 0.0, s},
		Offset: vec3.T{0.0, 0.0, 0.0},
	}
}

func Translate(ofs vec3.Direction) AffineTransform {
	result := Identity()
	result.Offset = vec3.T(ofs)
	return result
}

// Rotate returns a rotation by angle radians about axis, through the origin.
//
// The Rodrigues matrix is built from axis as given.  Callers must pass a unit
// axis to get a rigid rotation.
func Rotate(angle float64, axis vec3.Direction) AffineTransform {
	l, m, n := axis[0], axis[1], axis[2]
	st, ct := math.Sincos(angle)
	cm := 1 - ct

	return AffineTransform{
		Linear: mat33.T{
			l*l*cm + ct, m*l*cm - n*st, n*l*cm + m*st,
			l*m*cm + n*st, m*m*cm + ct, n*m*cm - l*st,
			l*n*cm - m*st, m*n*cm + l*st, n*n*cm + ct,
		},
	}
}

// Pivot returns a rotation by angle radians about axis, through center.
func Pivot(angle float64, axis vec3.Direction, center vec3.Point) AffineTransform {
	toOrigin := Translate(vec3.Scale(center.Direction(), -1))
	back := Translate(center.Direction())
	return Compose(back, Compose(Rotate(angle, axis), toOrigin))
}

// Compose returns a∘b: the transform that applies b first, then a.
func Compose(a, b AffineTransform) AffineTransform {
	o := mat33.MulMV(a.Linear, b.Offset)
	return AffineTransform{
		Linear: mat33.MulMM(a.Linear, b.Linear),
		Offset: vec3.T{a.Offset[0] + o[0], a.Offset[1] + o[1], a.Offset[2] + o[2]},
	}
}

func TransformPoint(a AffineTransform, b vec3.Point) vec3.Point {
	p := mat33.MulMV(a.Linear, vec3.T(b))
	return vec3.Point{
		p[0] + a.Offset[0],
		p[1] + a.Offset[1],
		p[2] + a.Offset[2],
	}
}

// TransformDirection ignores the offset, as w=0 does in the 4x4 product.
func TransformDirection(a AffineTransform, b vec3.Direction) vec3.Direction {
	return vec3.Direction(mat33.MulMV(a.Linear, vec3.T(b)))
}

// Matrix returns the full homogeneous matrix.
func (t AffineTransform) Matrix() mat44.T {
	return mat44.T{
		t.Linear[0], t.Linear[1], t.Linear[2], t.Offset[0],
		t.Linear[3], t.Linear[4], t.Linear[5], t.Offset[1],
		t.Linear[6], t.Linear[7], t.Linear[8], t.Offset[2],
		0, 0, 0, 1,
	}
}
