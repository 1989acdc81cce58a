package affinetransform

import (
	"fmt"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"cellray/vmath/mat44"
	"cellray/vmath/vec3"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

var points = []vec3.Point{
	{0, 0, 0},
	{1, 2, 3},
	{-7.5, 0.25, 12},
	{100, -100, 3.5},
}

var axes = []vec3.Direction{
	{1, 0, 0},
	{0, 1, 0},
	{0, 0, 1},
}

var angles = []float64{0, math.Pi / 4, math.Pi / 2, math.Pi}

func sampleTransforms() map[string]AffineTransform {
	return map[string]AffineTransform{
		"identity":  Identity(),
		"translate": Translate(vec3.Direction{3, -2, 7}),
		"rotate-x":  Rotate(math.Pi/3, vec3.Direction{1, 0, 0}),
		"rotate-y":  Rotate(-math.Pi/5, vec3.Direction{0, 1, 0}),
		"rotate-z":  Rotate(2, vec3.Direction{0, 0, 1}),
		"pivot":     Pivot(math.Pi/7, vec3.Direction{0, 1, 0}, vec3.Point{15, 15, -10}),
		"scale":     Scale(2.5),
	}
}

func TestIdentity(t *testing.T) {
	for _, p := range points {
		if diff := cmp.Diff(TransformPoint(Identity(), p), p); diff != "" {
			t.Errorf("identity moved point %v: (-got +want)\n%s", p, diff)
		}
		d := p.Direction()
		if diff := cmp.Diff(TransformDirection(Identity(), d), d); diff != "" {
			t.Errorf("identity moved direction %v: (-got +want)\n%s", d, diff)
		}
	}
}

func TestComposeMatchesSequentialApplication(t *testing.T) {
	ts := sampleTransforms()
	for n1, t1 := range ts {
		for n2, t2 := range ts {
			composed := Compose(t2, t1)
			for _, p := range points {
				want := TransformPoint(t2, TransformPoint(t1, p))
				if diff := cmp.Diff(TransformPoint(composed, p), want, approx); diff != "" {
					t.Errorf("%s after %s on %v: (-got +want)\n%s", n2, n1, p, diff)
				}

				wantD := TransformDirection(t2, TransformDirection(t1, p.Direction()))
				if diff := cmp.Diff(TransformDirection(composed, p.Direction()), wantD, approx); diff != "" {
					t.Errorf("%s after %s on direction %v: (-got +want)\n%s", n2, n1, p, diff)
				}
			}
		}
	}
}

func TestComposeIsAssociative(t *testing.T) {
	ts := sampleTransforms()
	a, b, c := ts["pivot"], ts["translate"], ts["rotate-x"]
	left := Compose(Compose(a, b), c)
	right := Compose(a, Compose(b, c))
	if diff := cmp.Diff(left, right, approx); diff != "" {
		t.Errorf("(a∘b)∘c != a∘(b∘c): (-left +right)\n%s", diff)
	}
}

func TestTranslateInverse(t *testing.T) {
	v := vec3.Direction{3.25, -11, 0.125}
	there := Translate(v)
	back := Translate(vec3.Scale(v, -1))
	for _, p := range points {
		got := TransformPoint(back, TransformPoint(there, p))
		for i := range got {
			if math.Abs(got[i]-p[i]) > 1e-9 {
				t.Errorf("translate round trip of %v gave %v", p, got)
				break
			}
		}
	}
}

func TestTranslateIgnoresDirections(t *testing.T) {
	d := vec3.Direction{1, 2, 3}
	if diff := cmp.Diff(TransformDirection(Translate(vec3.Direction{5, 5, 5}), d), d); diff != "" {
		t.Errorf("translate moved a direction: (-got +want)\n%s", diff)
	}
}

func TestRotateInverse(t *testing.T) {
	for _, axis := range axes {
		for _, angle := range angles {
			t.Run(fmt.Sprintf("axis=%v/angle=%v", axis, angle), func(t *testing.T) {
				round := Compose(Rotate(-angle, axis), Rotate(angle, axis))
				for _, p := range points {
					if diff := cmp.Diff(TransformPoint(round, p), p, approx); diff != "" {
						t.Errorf("rotate round trip moved %v: (-got +want)\n%s", p, diff)
					}
				}
			})
		}
	}
}

func mglEqual(t *testing.T, name string, got AffineTransform, want mgl64.Mat4) {
	t.Helper()
	m := got.Matrix()
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			if math.Abs(m.At(r, c)-want.At(r, c)) > 1e-9 {
				t.Errorf("%s: element (%d, %d) = %v, want %v\ngot  %v\nwant %v", name, r, c, m.At(r, c), want.At(r, c), m, want)
				return
			}
		}
	}
}

func TestRotateMatchesMathGL(t *testing.T) {
	for _, axis := range append(axes, vec3.Direction(vec3.Normalize(vec3.T{1, 2, -2}))) {
		for _, angle := range []float64{0.3, -1.2, math.Pi / 2, 3} {
			want := mgl64.HomogRotate3D(angle, mgl64.Vec3{axis[0], axis[1], axis[2]})
			mglEqual(t, fmt.Sprintf("Rotate(%v, %v)", angle, axis), Rotate(angle, axis), want)
		}
	}
}

func TestTranslateMatchesMathGL(t *testing.T) {
	mglEqual(t, "Translate", Translate(vec3.Direction{1, -2, 3}), mgl64.Translate3D(1, -2, 3))
}

func TestPivotMatchesMathGL(t *testing.T) {
	center := vec3.Point{15, 15, -10}
	axis := vec3.Direction{0, 1, 0}
	angle := 2 * math.Pi / 240

	want := mgl64.Translate3D(15, 15, -10).
		Mul4(mgl64.HomogRotate3D(angle, mgl64.Vec3{0, 1, 0})).
		Mul4(mgl64.Translate3D(-15, -15, 10))
	mglEqual(t, "Pivot", Pivot(angle, axis, center), want)

	if diff := cmp.Diff(TransformPoint(Pivot(angle, axis, center), center), center, approx); diff != "" {
		t.Errorf("Pivot moved its own center: (-got +want)\n%s", diff)
	}
}

func TestMatrixBottomRow(t *testing.T) {
	for name, tr := range sampleTransforms() {
		m := tr.Matrix()
		if diff := cmp.Diff([4]float64{m.At(3, 0), m.At(3, 1), m.At(3, 2), m.At(3, 3)}, [4]float64{0, 0, 0, 1}); diff != "" {
			t.Errorf("%s bottom row: (-got +want)\n%s", name, diff)
		}
	}
}

func TestMatrixAgreesWithHomogeneousProduct(t *testing.T) {
	ts := sampleTransforms()
	for n1, t1 := range ts {
		for n2, t2 := range ts {
			want := mat44.MulMM(t2.Matrix(), t1.Matrix())
			if diff := cmp.Diff(Compose(t2, t1).Matrix(), want, approx); diff != "" {
				t.Errorf("%s∘%s: (-got +want)\n%s", n2, n1, diff)
			}
		}

		for _, p := range points {
			got := mat44.MulMV(t1.Matrix(), vec3.H(p))
			tp := TransformPoint(t1, p)
			if diff := cmp.Diff(got, [4]float64{tp[0], tp[1], tp[2], 1}, approx); diff != "" {
				t.Errorf("%s on point %v: (-got +want)\n%s", n1, p, diff)
			}

			d := p.Direction()
			gotD := mat44.MulMV(t1.Matrix(), vec3.H(d))
			td := TransformDirection(t1, d)
			if diff := cmp.Diff(gotD, [4]float64{td[0], td[1], td[2], 0}, approx); diff != "" {
				t.Errorf("%s on direction %v: (-got +want)\n%s", n1, d, diff)
			}
		}
	}

	if diff := cmp.Diff(Identity().Matrix(), mat44.Identity()); diff != "" {
		t.Errorf("identity: (-got +want)\n%s", diff)
	}
}
