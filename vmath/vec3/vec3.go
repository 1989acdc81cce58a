// Package vec3 implements homogeneous 3D points and directions.
//
// A Point carries an implicit homogeneous coordinate w=1 and a Direction an
// implicit w=0.  Arithmetic only ever touches the three real coordinates; the
// tag changes only through an explicit Point/Direction conversion.
package vec3

import "math"

// T is a bare coordinate triple with no homogeneous tag.
type T [3]float64

func (v T) Norm() float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

func Normalize(v T) T {
	l := v.Norm()
	return T{
		v[0] / l,
		v[1] / l,
		v[2] / l,
	}
}

// Point is an affine position (w=1).
type Point T

// Direction is a free vector (w=0).
type Direction T

func NewPoint(x, y, z float64) Point {
	return Point{x, y, z}
}

func NewDirection(x, y, z float64) Direction {
	return Direction{x, y, z}
}

func (Point) W() float64     { return 1 }
func (Direction) W() float64 { return 0 }

// Direction reinterprets p as a free vector, resetting the tag to 0.
func (p Point) Direction() Direction { return Direction(p) }

// Point reinterprets d as a position, resetting the tag to 1.
func (d Direction) Point() Point { return Point(d) }

// Homogeneous is satisfied by Point and Direction.
type Homogeneous interface {
	Point | Direction
	W() float64
}

// H returns the full homogeneous 4-vector of v.
func H[V Homogeneous](v V) [4]float64 {
	return [4]float64{v[0], v[1], v[2], v.W()}
}

func Add[V Homogeneous](a, b V) V {
	return V{
		a[0] + b[0],
		a[1] + b[1],
		a[2] + b[2],
	}
}

func Sub[V Homogeneous](a, b V) V {
	return V{
		a[0] - b[0],
		a[1] - b[1],
		a[2] - b[2],
	}
}

// Mul is the componentwise product.
func Mul[V Homogeneous](a, b V) V {
	return V{
		a[0] * b[0],
		a[1] * b[1],
		a[2] * b[2],
	}
}

// Div is the componentwise quotient.  Zero components yield IEEE infinities.
func Div[V Homogeneous](a, b V) V {
	return V{
		a[0] / b[0],
		a[1] / b[1],
		a[2] / b[2],
	}
}

func Scale[V Homogeneous](a V, s float64) V {
	return V{
		a[0] * s,
		a[1] * s,
		a[2] * s,
	}
}

func DivS[V Homogeneous](a V, s float64) V {
	return V{
		a[0] / s,
		a[1] / s,
		a[2] / s,
	}
}

// Cross is the 3D cross product a × b.  The result keeps the type of its
// operands.
func Cross[V Homogeneous](a, b V) V {
	return V{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// Dot is the full 4-component dot product, so Point·Point includes the
// w*w = 1 term while any product involving a Direction reduces to the 3D dot.
func Dot[A, B Homogeneous](a A, b B) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] + a.W()*b.W()
}

// Norm is the Euclidean length of the three real coordinates.
func Norm[V Homogeneous](v V) float64 {
	return T(v).Norm()
}

// LowerBound is the componentwise minimum of a and b.
func LowerBound[V Homogeneous](a, b V) V {
	return V{
		math.Min(a[0], b[0]),
		math.Min(a[1], b[1]),
		math.Min(a[2], b[2]),
	}
}

// UpperBound is the componentwise maximum of a and b.
func UpperBound[V Homogeneous](a, b V) V {
	return V{
		math.Max(a[0], b[0]),
		math.Max(a[1], b[1]),
		math.Max(a[2], b[2]),
	}
}

// Between returns the direction b - a.
func Between(a, b Point) Direction {
	return Direction{
		b[0] - a[0],
		b[1] - a[1],
		b[2] - a[2],
	}
}

// Displace returns p moved by d.
func Displace(p Point, d Direction) Point {
	return Point{
		p[0] + d[0],
		p[1] + d[1],
		p[2] + d[2],
	}
}
