package contact

import (
	"math"

	"cellray/ray"
	"cellray/vmath/vec3"
)

// Contact is a ray hit.
//
// Distance is the Euclidean distance from the ray origin to P, recomputed from
// the two points rather than scaled from T.  Rays are not normalized, so only
// Distance is comparable between contacts produced by different rays.
type Contact struct {
	T        float64
	R        ray.Ray
	P        vec3.Point
	Distance float64
}

func ContactNaN() Contact {
	return Contact{
		T:        math.NaN(),
		Distance: math.NaN(),
	}
}

// At builds the contact for parameter t along r.
func At(r ray.Ray, t float64) Contact {
	p := r.Eval(t)
	return Contact{
		T:        t,
		R:        r,
		P:        p,
		Distance: vec3.Norm(vec3.Between(p, r.Origin)),
	}
}

func (c Contact) IsNaN() bool {
	return math.IsNaN(c.T)
}

// Nearer reports whether a is a hit strictly closer than b.  A miss is never
// nearer, and every hit is nearer than a miss.  Exact ties keep b, so callers
// folding over a list keep the first of several equidistant hits.
func Nearer(a, b Contact) bool {
	if a.IsNaN() {
		return false
	}
	if b.IsNaN() {
		return true
	}
	return a.Distance < b.Distance
}
