package frame

import (
	"cellray/affinetransform"
	"cellray/vmath/vec3"
)

// Applier realizes a local value under a transform.  It must not mutate its
// argument.
type Applier[T any] func(affinetransform.AffineTransform, T) T

// Points and Directions are the appliers for the vector types.
var (
	Points     Applier[vec3.Point]     = affinetransform.TransformPoint
	Directions Applier[vec3.Direction] = affinetransform.TransformDirection
)

// Relative is a value expressed in the local coordinates of a shared frame.
//
// Frame operations never touch the local value.  The world value is derived
// from the frame on every call to Absolute and is never cached.
type Relative[T any] struct {
	local T
	frame Shared
	apply Applier[T]
}

// Bind takes a new reference to f and binds local to it.
func Bind[T any](f Shared, local T, apply Applier[T]) *Relative[T] {
	return &Relative[T]{
		local: local,
		frame: f.Clone(),
		apply: apply,
	}
}

// Absolute returns the local value realized in world coordinates.
func (r *Relative[T]) Absolute() T {
	return r.apply(r.frame.Transform(), r.local)
}

// Local returns the local value with no transform applied.
func (r *Relative[T]) Local() T {
	return r.local
}

// LocalMut gives direct access to the local value.  Mutations through it
// change the local geometry independently of the frame.
func (r *Relative[T]) LocalMut() *T {
	return &r.local
}

// Frame returns the binding's frame reference.  It remains owned by r.
func (r *Relative[T]) Frame() Shared {
	return r.frame
}

// Apply applies t to the shared frame in world coordinates.  Every binding
// on the same frame observes it.
func (r *Relative[T]) Apply(t affinetransform.AffineTransform) {
	r.frame.Apply(t)
}

// ApplyRelative applies t to the shared frame in its local orientation.
func (r *Relative[T]) ApplyRelative(t affinetransform.AffineTransform) {
	r.frame.ApplyRelative(t)
}

// Release drops the binding's frame reference.  r must not be used
// afterwards.
func (r *Relative[T]) Release() {
	r.frame.Release()
}

// Project realizes a single field of r's local value, without realizing the
// whole value.
func Project[T, R any](r *Relative[T], pick func(T) R, apply Applier[R]) R {
	return apply(r.frame.Transform(), pick(r.local))
}

// Owned is a value with a frame of its own that no other binding can share.
type Owned[T any] struct {
	local T
	frame Frame
	apply Applier[T]
}

func Own[T any](local T, apply Applier[T]) *Owned[T] {
	return &Owned[T]{
		local: local,
		frame: New(),
		apply: apply,
	}
}

func (o *Owned[T]) Absolute() T {
	return o.apply(o.frame.Transform(), o.local)
}

func (o *Owned[T]) Local() T {
	return o.local
}

func (o *Owned[T]) LocalMut() *T {
	return &o.local
}

func (o *Owned[T]) Transform() affinetransform.AffineTransform {
	return o.frame.Transform()
}

func (o *Owned[T]) Apply(t affinetransform.AffineTransform) {
	o.frame.Apply(t)
}

func (o *Owned[T]) ApplyRelative(t affinetransform.AffineTransform) {
	o.frame.ApplyRelative(t)
}
