// Package scenefile reads JSON scene descriptions and builds scenes from them.
package scenefile

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"io"
	"math"
	"os"

	"github.com/golang/glog"
	"golang.org/x/xerrors"

	"cellray/affinetransform"
	"cellray/camera"
	"cellray/frame"
	"cellray/geometry"
	"cellray/scene"
	"cellray/vmath/vec3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = xerrors.New("invalid scene file")

//go:embed demo.json
var demo []byte

// TransformCfg is one step of a transform chain.  Exactly one field is set.
// Angles are in degrees.
type TransformCfg struct {
	Translate *vec3.Direction `json:"translate,omitempty"`
	Scale     *float64        `json:"scale,omitempty"`
	Rotate    *RotateCfg      `json:"rotate,omitempty"`
	Pivot     *RotateCfg      `json:"pivot,omitempty"`
}

// RotateCfg is a rotation about Axis through Center.  Center is ignored for
// plain rotations.  Axis is normalized on load.
type RotateCfg struct {
	AngleDeg float64        `json:"angleDeg"`
	Axis     vec3.Direction `json:"axis"`
	Center   vec3.Point     `json:"center,omitempty"`
}

type CameraCfg struct {
	CellSize   [2]float64 `json:"cellSize"`
	CellCounts [2]int     `json:"cellCounts"`

	// Eye is in screen-local coordinates.  Nil centers the eye
	// camera.DefaultEyeDistance in front of the screen.
	Eye *vec3.Point `json:"eye,omitempty"`

	Transforms []TransformCfg `json:"transforms,omitempty"`
}

type ObjectCfg struct {
	Name       string          `json:"name,omitempty"`
	Color      geometry.RGB    `json:"color"`
	Triangles  [][3]vec3.Point `json:"triangles"`
	Transforms []TransformCfg  `json:"transforms,omitempty"`
}

type Config struct {
	Camera  *CameraCfg  `json:"camera,omitempty"`
	Objects []ObjectCfg `json:"objects"`

	// Spin is applied to every object once per animation frame.
	Spin *RotateCfg `json:"spin,omitempty"`
}

// Decode parses and validates one scene description.
func Decode(r io.Reader) (*Config, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	cfg := &Config{}
	if err := dec.Decode(cfg); err != nil {
		return nil, xerrors.Errorf("while decoding scene: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads a scene description from path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, xerrors.Errorf("while opening scene file: %w", err)
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return nil, xerrors.Errorf("while loading %s: %w", path, err)
	}
	return cfg, nil
}

// Demo returns the built-in three-object scene.
func Demo() *Config {
	cfg, err := Decode(bytes.NewReader(demo))
	if err != nil {
		panic(err)
	}
	return cfg
}

func (c *Config) Validate() error {
	if c.Camera != nil {
		if c.Camera.CellSize[0] <= 0 || c.Camera.CellSize[1] <= 0 {
			return xerrors.Errorf("camera cell size %v: %w", c.Camera.CellSize, ErrInvalid)
		}
		if c.Camera.CellCounts[0] <= 0 || c.Camera.CellCounts[1] <= 0 {
			return xerrors.Errorf("camera cell counts %v: %w", c.Camera.CellCounts, ErrInvalid)
		}
		if err := validateTransforms(c.Camera.Transforms); err != nil {
			return xerrors.Errorf("camera: %w", err)
		}
	}
	for i, o := range c.Objects {
		if err := validateTransforms(o.Transforms); err != nil {
			return xerrors.Errorf("object %d (%q): %w", i, o.Name, err)
		}
		for j, tri := range o.Triangles {
			for _, p := range tri {
				if !finite(vec3.T(p)) {
					return xerrors.Errorf("object %d (%q) triangle %d has non-finite vertex: %w", i, o.Name, j, ErrInvalid)
				}
			}
		}
	}
	if c.Spin != nil {
		if err := validateRotate(c.Spin); err != nil {
			return xerrors.Errorf("spin: %w", err)
		}
	}
	return nil
}

func finite(v vec3.T) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

func validateRotate(r *RotateCfg) error {
	if vec3.Norm(r.Axis) == 0 {
		return xerrors.Errorf("zero rotation axis: %w", ErrInvalid)
	}
	return nil
}

func validateTransforms(ts []TransformCfg) error {
	for i, t := range ts {
		set := 0
		if t.Translate != nil {
			set++
		}
		if t.Scale != nil {
			set++
		}
		if t.Rotate != nil {
			set++
			if err := validateRotate(t.Rotate); err != nil {
				return xerrors.Errorf("transform %d: %w", i, err)
			}
		}
		if t.Pivot != nil {
			set++
			if err := validateRotate(t.Pivot); err != nil {
				return xerrors.Errorf("transform %d: %w", i, err)
			}
		}
		if set != 1 {
			return xerrors.Errorf("transform %d sets %d operations, want 1: %w", i, set, ErrInvalid)
		}
	}
	return nil
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Transform returns the rotation r describes, pivoting about Center when
// pivot is set.
func (r RotateCfg) Transform(pivot bool) affinetransform.AffineTransform {
	axis := vec3.Direction(vec3.Normalize(vec3.T(r.Axis)))
	if pivot {
		return affinetransform.Pivot(radians(r.AngleDeg), axis, r.Center)
	}
	return affinetransform.Rotate(radians(r.AngleDeg), axis)
}

// Transform returns the single step t describes.
func (t TransformCfg) Transform() affinetransform.AffineTransform {
	switch {
	case t.Translate != nil:
		return affinetransform.Translate(*t.Translate)
	case t.Scale != nil:
		return affinetransform.Scale(*t.Scale)
	case t.Rotate != nil:
		return t.Rotate.Transform(false)
	case t.Pivot != nil:
		return t.Pivot.Transform(true)
	}
	return affinetransform.Identity()
}

// Chain composes ts so that ts[0] is applied first.
func Chain(ts []TransformCfg) affinetransform.AffineTransform {
	result := affinetransform.Identity()
	for _, t := range ts {
		result = affinetransform.Compose(t.Transform(), result)
	}
	return result
}

// Build constructs the scene c describes.  The camera's frame is allocated in
// frames.
func (c *Config) Build(frames *frame.Arena) *scene.Scene {
	var cam *camera.Camera
	if c.Camera == nil {
		cam = camera.Default(frames)
	} else {
		eye := vec3.Point{
			c.Camera.CellSize[0] * float64(c.Camera.CellCounts[0]) / 2,
			c.Camera.CellSize[1] * float64(c.Camera.CellCounts[1]) / 2,
			camera.DefaultEyeDistance,
		}
		if c.Camera.Eye != nil {
			eye = *c.Camera.Eye
		}
		cam = camera.New(frames, c.Camera.CellSize, c.Camera.CellCounts, eye)
		for _, t := range c.Camera.Transforms {
			cam.Apply(t.Transform())
		}
	}

	s := scene.New(cam)
	for _, oc := range c.Objects {
		polys := make([]geometry.Polygon, 0, len(oc.Triangles))
		for _, tri := range oc.Triangles {
			polys = append(polys, geometry.Triangle(tri[0], tri[1], tri[2]))
		}
		o := geometry.NewObject(oc.Color, polys...)
		if len(oc.Transforms) > 0 {
			o.Apply(Chain(oc.Transforms))
		}
		s.AddObject(o)
		glog.V(2).Infof("Built object %q: %d polygons, bounds %v", oc.Name, len(polys), o.Bounds())
	}

	if c.Spin != nil {
		spin := c.Spin.Transform(true)
		s.Spin = &spin
	}

	cols, rows := cam.ScreenSize()
	glog.V(2).Infof("Built scene: %d objects, %dx%d screen", len(s.Objects), cols, rows)
	return s
}
