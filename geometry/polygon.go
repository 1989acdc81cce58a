package geometry

import (
	"fmt"
	"math"

	"cellray/aabox"
	"cellray/affinetransform"
	"cellray/contact"
	"cellray/ray"
	"cellray/vmath/vec3"
)

// Epsilon bounds both the parallel-ray determinant test and the minimum
// accepted ray parameter in triangle intersection.
const Epsilon = 1e-7

type Kind int

const (
	KindTriangle Kind = iota
)

func (k Kind) String() string {
	switch k {
	case KindTriangle:
		return "triangle"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Polygon is a closed set of planar shapes, discriminated by Kind.  Every
// operation switches on Kind; adding a shape means adding a case to each.
type Polygon struct {
	Kind Kind

	// Vertices holds the shape's points.  A triangle uses all three.
	Vertices [3]vec3.Point
}

func Triangle(p0, p1, p2 vec3.Point) Polygon {
	return Polygon{
		Kind:     KindTriangle,
		Vertices: [3]vec3.Point{p0, p1, p2},
	}
}

func (p Polygon) Bounds() aabox.AABox {
	switch p.Kind {
	case KindTriangle:
		return aabox.FromPoints(p.Vertices[:]...)
	}
	panic(fmt.Sprintf("geometry: bounds of unknown polygon %v", p.Kind))
}

// Transformed returns p with every vertex mapped through t.
func (p Polygon) Transformed(t affinetransform.AffineTransform) Polygon {
	switch p.Kind {
	case KindTriangle:
		result := p
		for i := range result.Vertices {
			result.Vertices[i] = affinetransform.TransformPoint(t, result.Vertices[i])
		}
		return result
	}
	panic(fmt.Sprintf("geometry: transform of unknown polygon %v", p.Kind))
}

// Intersect returns the forward hit of r on p, or a NaN contact.
func (p Polygon) Intersect(r ray.Ray) contact.Contact {
	switch p.Kind {
	case KindTriangle:
		return intersectTriangle(p.Vertices, r)
	}
	panic(fmt.Sprintf("geometry: intersect of unknown polygon %v", p.Kind))
}

// intersectTriangle is the Moller-Trumbore test.  The edges and the origin
// offset are directions, so every dot product below is the plain 3D one.
func intersectTriangle(v [3]vec3.Point, r ray.Ray) contact.Contact {
	edge1 := vec3.Between(v[0], v[1])
	edge2 := vec3.Between(v[0], v[2])

	h := vec3.Cross(edge2, r.Slope)
	a := vec3.Dot(edge1, h)
	if math.Abs(a) < Epsilon {
		// Parallel to the triangle's plane.
		return contact.ContactNaN()
	}

	f := 1 / a
	s := vec3.Between(v[0], r.Origin)
	u := f * vec3.Dot(s, h)
	if u < 0 || u > 1 {
		return contact.ContactNaN()
	}

	q := vec3.Cross(edge1, s)
	w := f * vec3.Dot(r.Slope, q)
	if w < 0 || u+w > 1 {
		return contact.ContactNaN()
	}

	t := f * vec3.Dot(edge2, q)
	if t <= Epsilon {
		return contact.ContactNaN()
	}

	return contact.At(r, t)
}
