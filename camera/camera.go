package camera

import (
	"cellray/affinetransform"
	"cellray/frame"
	"cellray/ray"
	"cellray/vmath/vec3"
)

// DefaultEyeDistance is how far in front of the screen plane the default eye
// sits, in screen-local units.
const DefaultEyeDistance = 45

// Camera is an eye and a screen bound to one shared frame.
//
// Moving the frame moves both together.  Only Dolly, which edits the eye's
// local coordinates, changes the distance between them.
type Camera struct {
	eye    *frame.Relative[vec3.Point]
	screen *frame.Relative[Screen]
}

// New allocates a frame for the camera in frames and binds the eye and a new
// screen to it.  eye is in screen-local coordinates.
func New(frames *frame.Arena, cellSize [2]float64, cellCounts [2]int, eye vec3.Point) *Camera {
	f := frames.New()
	defer f.Release()

	return &Camera{
		eye:    frame.Bind(f, eye, frame.Points),
		screen: frame.Bind(f, NewScreen(cellSize, cellCounts), TransformScreen),
	}
}

// Default is a camera on the default screen with the eye centered
// DefaultEyeDistance in front of it.
func Default(frames *frame.Arena) *Camera {
	s := DefaultScreen()
	cols, rows := s.Size()
	w, h := s.Extent()
	return New(frames, s.CellSize(), [2]int{cols, rows}, vec3.Point{w / 2, h / 2, DefaultEyeDistance})
}

// Close releases the camera's frame references.
func (c *Camera) Close() {
	c.eye.Release()
	c.screen.Release()
}

// Apply moves the camera in world coordinates.
func (c *Camera) Apply(t affinetransform.AffineTransform) {
	c.eye.Apply(t)
}

// ApplyRelative moves the camera in its own orientation, so that for example
// a translation along -z moves toward the screen however the camera faces.
func (c *Camera) ApplyRelative(t affinetransform.AffineTransform) {
	c.eye.ApplyRelative(t)
}

// Transform returns the camera frame's accumulated transform.
func (c *Camera) Transform() affinetransform.AffineTransform {
	return c.eye.Frame().Transform()
}

// Eye returns the eye in world coordinates.
func (c *Camera) Eye() vec3.Point {
	return c.eye.Absolute()
}

// Dolly moves the eye along its local z axis without touching the frame,
// changing its distance from the screen.
func (c *Camera) Dolly(dz float64) {
	(*c.eye.LocalMut())[2] += dz
}

// LocalEye returns the eye in screen-local coordinates.
func (c *Camera) LocalEye() vec3.Point {
	return c.eye.Local()
}

// SetLocalEye moves the eye in screen-local coordinates without touching the
// frame.
func (c *Camera) SetLocalEye(p vec3.Point) {
	*c.eye.LocalMut() = p
}

// ScreenSize returns the screen's cell counts.
func (c *Camera) ScreenSize() (cols, rows int) {
	return c.screen.Local().Size()
}

func (c *Camera) CellSize() [2]float64 {
	return c.screen.Local().CellSize()
}

// SetScreen replaces the local screen grid.  Output grids sized for the old
// screen must be reallocated.
func (c *Camera) SetScreen(cellSize [2]float64, cellCounts [2]int) {
	*c.screen.LocalMut() = NewScreen(cellSize, cellCounts)
}

// Center returns the world position of cell (x, y), or false if the cell is
// outside the screen.
func (c *Camera) Center(x, y int) (vec3.Point, bool) {
	local, ok := c.screen.Local().Center(x, y)
	if !ok {
		return vec3.Point{}, false
	}
	return frame.Project(c.screen, func(Screen) vec3.Point { return local }, frame.Points), true
}

// Centers returns every cell center in world coordinates, row-major.
func (c *Camera) Centers() []vec3.Point {
	return c.screen.Absolute().Centers()
}

// Corners returns the screen corners in world coordinates.
func (c *Camera) Corners() [4]vec3.Point {
	return frame.Project(c.screen, Screen.Corners, func(t affinetransform.AffineTransform, cs [4]vec3.Point) [4]vec3.Point {
		for i := range cs {
			cs[i] = affinetransform.TransformPoint(t, cs[i])
		}
		return cs
	})
}

// Ray returns the ray for cell (x, y), or false if the cell is outside the
// screen.  The ray starts at the cell's center and points away from the eye.
// Its slope is center - eye and is not normalized.
func (c *Camera) Ray(x, y int) (ray.Ray, bool) {
	center, ok := c.Center(x, y)
	if !ok {
		return ray.Ray{}, false
	}
	return ray.New(center, vec3.Between(c.Eye(), center)), true
}

// Pivot returns the midpoint between the eye and the screen's middle cell,
// the default point to orbit the camera about.
func (c *Camera) Pivot() vec3.Point {
	cols, rows := c.ScreenSize()
	mid, ok := c.Center(cols/2, rows/2)
	if !ok {
		mid = frame.Project(c.screen, func(s Screen) vec3.Point {
			w, h := s.Extent()
			return vec3.Point{w / 2, h / 2, 0}
		}, frame.Points)
	}
	eye := c.Eye()
	return vec3.Point{
		(eye[0] + mid[0]) / 2,
		(eye[1] + mid[1]) / 2,
		(eye[2] + mid[2]) / 2,
	}
}

// Orbit rotates the camera by angle radians about axis through Pivot.
func (c *Camera) Orbit(angle float64, axis vec3.Direction) {
	c.Apply(affinetransform.Pivot(angle, axis, c.Pivot()))
}
