package geometry

import (
	"image/color"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"gonum.org/v1/gonum/spatial/r3"

	"cellray/aabox"
	"cellray/affinetransform"
	"cellray/ray"
	"cellray/vmath/vec3"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

var flat = Triangle(
	vec3.Point{0, 0, 0},
	vec3.Point{2, 0, 0},
	vec3.Point{0, 2, 0},
)

func TestTriangleHit(t *testing.T) {
	r := ray.New(vec3.Point{0.5, 0.5, -10}, vec3.Direction{0, 0, 1})
	c := flat.Intersect(r)
	if c.IsNaN() {
		t.Fatalf("ray through the triangle missed")
	}
	if math.Abs(c.Distance-10) > 1e-9 {
		t.Errorf("Distance = %v, want 10", c.Distance)
	}
	if diff := cmp.Diff(c.P, vec3.Point{0.5, 0.5, 0}, approx); diff != "" {
		t.Errorf("hit point: (-got +want)\n%s", diff)
	}
}

func TestTriangleDistanceIgnoresSlopeLength(t *testing.T) {
	r := ray.New(vec3.Point{0.5, 0.5, -10}, vec3.Direction{0, 0, 0.125})
	c := flat.Intersect(r)
	if c.IsNaN() {
		t.Fatalf("ray through the triangle missed")
	}
	if math.Abs(c.Distance-10) > 1e-9 {
		t.Errorf("Distance = %v, want 10", c.Distance)
	}
	if math.Abs(c.T-80) > 1e-9 {
		t.Errorf("T = %v, want 80", c.T)
	}
}

func TestTriangleMisses(t *testing.T) {
	testCases := []struct {
		name   string
		origin vec3.Point
		slope  vec3.Direction
	}{
		{"outside", vec3.Point{5, 5, -10}, vec3.Direction{0, 0, 1}},
		{"in plane", vec3.Point{-1, 0.5, 0}, vec3.Direction{1, 0, 0}},
		{"behind", vec3.Point{0.5, 0.5, 10}, vec3.Direction{0, 0, 1}},
		{"past hypotenuse", vec3.Point{1.5, 1.5, -1}, vec3.Direction{0, 0, 1}},
		{"negative u", vec3.Point{-0.1, 0.5, -1}, vec3.Direction{0, 0, 1}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if c := flat.Intersect(ray.New(tc.origin, tc.slope)); !c.IsNaN() {
				t.Errorf("got hit %+v, want miss", c)
			}
		})
	}
}

// TestTriangleMatchesR3 checks hit points against a plane intersection done
// with an independent vector library.
func TestTriangleMatchesR3(t *testing.T) {
	tri := Triangle(
		vec3.Point{1, -1, 3},
		vec3.Point{4, 0, 2},
		vec3.Point{2, 3, 5},
	)
	v := tri.Vertices
	n := r3.Cross(
		r3.Sub(r3.Vec{X: v[1][0], Y: v[1][1], Z: v[1][2]}, r3.Vec{X: v[0][0], Y: v[0][1], Z: v[0][2]}),
		r3.Sub(r3.Vec{X: v[2][0], Y: v[2][1], Z: v[2][2]}, r3.Vec{X: v[0][0], Y: v[0][1], Z: v[0][2]}),
	)
	p0 := r3.Vec{X: v[0][0], Y: v[0][1], Z: v[0][2]}

	origin := r3.Vec{X: 0, Y: 0, Z: -5}
	// Aim at the centroid.
	target := r3.Scale(1.0/3, r3.Add(p0, r3.Add(r3.Vec{X: v[1][0], Y: v[1][1], Z: v[1][2]}, r3.Vec{X: v[2][0], Y: v[2][1], Z: v[2][2]})))
	dir := r3.Sub(target, origin)

	tt := r3.Dot(n, r3.Sub(p0, origin)) / r3.Dot(n, dir)
	want := r3.Add(origin, r3.Scale(tt, dir))

	c := tri.Intersect(ray.New(vec3.Point{origin.X, origin.Y, origin.Z}, vec3.Direction{dir.X, dir.Y, dir.Z}))
	if c.IsNaN() {
		t.Fatalf("ray at centroid missed")
	}
	if diff := cmp.Diff(c.P, vec3.Point{want.X, want.Y, want.Z}, approx); diff != "" {
		t.Errorf("hit point: (-got +want)\n%s", diff)
	}
	if math.Abs(c.Distance-r3.Norm(r3.Sub(want, origin))) > 1e-9 {
		t.Errorf("Distance = %v, want %v", c.Distance, r3.Norm(r3.Sub(want, origin)))
	}
}

func TestPolygonBoundsAndTransform(t *testing.T) {
	want := aabox.AABox{Min: vec3.Point{0, 0, 0}, Max: vec3.Point{2, 2, 0}}
	if diff := cmp.Diff(flat.Bounds(), want); diff != "" {
		t.Errorf("Bounds: (-got +want)\n%s", diff)
	}

	moved := flat.Transformed(affinetransform.Translate(vec3.Direction{1, 1, 1}))
	if diff := cmp.Diff(moved.Vertices[1], vec3.Point{3, 1, 1}); diff != "" {
		t.Errorf("Transformed: (-got +want)\n%s", diff)
	}
	if diff := cmp.Diff(flat.Vertices[1], vec3.Point{2, 0, 0}); diff != "" {
		t.Errorf("Transformed mutated its receiver: (-got +want)\n%s", diff)
	}
}

func TestUnknownKindPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Bounds of an unknown kind did not panic")
		}
	}()
	Polygon{Kind: Kind(42)}.Bounds()
}

func TestEmptyObjectBounds(t *testing.T) {
	o := NewObject(RGB{1, 2, 3})
	if diff := cmp.Diff(o.Bounds(), aabox.Degenerate()); diff != "" {
		t.Errorf("(-got +want)\n%s", diff)
	}
	if c := o.Intersect(ray.New(vec3.Point{0, 0, -1}, vec3.Direction{0, 0, 1})); !c.IsNaN() {
		t.Errorf("empty object reported a hit %+v", c)
	}
}

func TestObjectBoundsFollowGeometry(t *testing.T) {
	o := NewObject(RGB{}, flat)
	o.Append(Triangle(vec3.Point{0, 0, -3}, vec3.Point{1, 0, -3}, vec3.Point{0, 5, -3}))

	want := aabox.AABox{Min: vec3.Point{0, 0, -3}, Max: vec3.Point{2, 5, 0}}
	if diff := cmp.Diff(o.Bounds(), want); diff != "" {
		t.Errorf("after Append: (-got +want)\n%s", diff)
	}

	o.Apply(affinetransform.Rotate(math.Pi/2, vec3.Direction{0, 0, 1}))
	want = aabox.AABox{Min: vec3.Point{-5, 0, -3}, Max: vec3.Point{0, 2, 0}}
	if diff := cmp.Diff(o.Bounds(), want, approx); diff != "" {
		t.Errorf("after Apply: (-got +want)\n%s", diff)
	}

	polys := o.Polygons()
	recomputed := polys[0].Bounds()
	for _, p := range polys[1:] {
		recomputed = aabox.MinContainingAABox(recomputed, p.Bounds())
	}
	if diff := cmp.Diff(o.Bounds(), recomputed); diff != "" {
		t.Errorf("cached bounds differ from polygon bounds: (-got +want)\n%s", diff)
	}
}

func TestObjectIntersectKeepsNearest(t *testing.T) {
	far := Triangle(vec3.Point{0, 0, 5}, vec3.Point{2, 0, 5}, vec3.Point{0, 2, 5})
	o := NewObject(RGB{}, far, flat)

	c := o.Intersect(ray.New(vec3.Point{0.5, 0.5, -10}, vec3.Direction{0, 0, 1}))
	if c.IsNaN() {
		t.Fatalf("missed")
	}
	if math.Abs(c.Distance-10) > 1e-9 {
		t.Errorf("Distance = %v, want 10 (the nearer polygon)", c.Distance)
	}
}

func TestObjectIntersectRejectsByBox(t *testing.T) {
	o := NewObject(RGB{}, flat)
	// Passes under the triangle's plane entirely.
	if c := o.Intersect(ray.New(vec3.Point{0.5, 0.5, -10}, vec3.Direction{1, 0, 0})); !c.IsNaN() {
		t.Errorf("got hit %+v, want miss", c)
	}
}

func TestRGBIsColor(t *testing.T) {
	var c color.Color = RGB{R: 0xff, G: 0x80, B: 0}
	got := color.RGBAModel.Convert(c).(color.RGBA)
	if diff := cmp.Diff(got, color.RGBA{R: 0xff, G: 0x80, B: 0, A: 0xff}); diff != "" {
		t.Errorf("(-got +want)\n%s", diff)
	}
}
