package ray

import (
	"math"

	"cellray/aabox"
	"cellray/vmath/vec3"
)

// Ray is an origin and a direction, with the reciprocal of each direction
// component and its sign precomputed for box tests.
//
// The direction need not be unit length.  Zero direction components give
// infinite reciprocals, which the box test relies on.
type Ray struct {
	Origin vec3.Point
	Slope  vec3.Direction

	inv  [3]float64
	sign [3]int
}

func New(origin vec3.Point, slope vec3.Direction) Ray {
	r := Ray{
		Origin: origin,
		Slope:  slope,
	}
	for i := 0; i < 3; i++ {
		r.inv[i] = 1 / slope[i]
		if r.inv[i] < 0 {
			r.sign[i] = 1
		}
	}
	return r
}

func (r *Ray) Inverse() [3]float64 {
	return r.inv
}

func (r *Ray) Sign() [3]int {
	return r.sign
}

func (r *Ray) Eval(t float64) vec3.Point {
	return vec3.Point{
		r.Origin[0] + t*r.Slope[0],
		r.Origin[1] + t*r.Slope[1],
		r.Origin[2] + t*r.Slope[2],
	}
}

// CollidesBox reports whether the ray enters b at a non-negative parameter.
//
// Each axis contributes the slab interval [near, far].  NaN bounds, which
// appear when the origin lies on a slab plane the ray is parallel to, are
// ignored rather than poisoning the running interval.
func (r *Ray) CollidesBox(b aabox.AABox) bool {
	bounds := b.Corners()
	tmin, tmax := math.Inf(-1), math.Inf(1)

	for i := 0; i < 3; i++ {
		near := (bounds[r.sign[i]][i] - r.Origin[i]) * r.inv[i]
		far := (bounds[1-r.sign[i]][i] - r.Origin[i]) * r.inv[i]

		if near > tmax || tmin > far {
			return false
		}
		if near > tmin {
			tmin = near
		}
		if far < tmax {
			tmax = far
		}
	}

	return tmax >= tmin && tmax >= 0
}
