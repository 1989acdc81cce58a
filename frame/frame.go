// Package frame implements accumulated local-to-world coordinate frames and
// values bound to them.
//
// A Frame is owned by a single value.  Frames that several bindings must see
// mutate together live in an Arena and are reached through Shared handles.
package frame

import "cellray/affinetransform"

// Frame holds the composition of every transform applied to it, in
// application order.
type Frame struct {
	acc affinetransform.AffineTransform
}

// New returns a frame at the identity.
func New() Frame {
	return Frame{acc: affinetransform.Identity()}
}

// Apply composes t on top of the frame, with t expressed in world
// coordinates: frame <- t∘frame.
func (f *Frame) Apply(t affinetransform.AffineTransform) {
	f.acc = affinetransform.Compose(t, f.acc)
}

// ApplyRelative composes t underneath the frame, with t expressed in the
// frame's current local orientation: frame <- frame∘t.
func (f *Frame) ApplyRelative(t affinetransform.AffineTransform) {
	f.acc = affinetransform.Compose(f.acc, t)
}

// Transform returns the accumulated local-to-world transform.
func (f *Frame) Transform() affinetransform.AffineTransform {
	return f.acc
}
