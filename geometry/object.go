package geometry

import (
	"image/color"

	"cellray/aabox"
	"cellray/affinetransform"
	"cellray/contact"
	"cellray/ray"
)

// RGB is an opaque 8-bit-per-channel color tag.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

func (c RGB) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}.RGBA()
}

// Object is a group of polygons sharing a color, with a cached bounding box.
//
// The box is recomputed from scratch after every change to the polygons.
type Object struct {
	polygons []Polygon
	bounds   aabox.AABox
	color    RGB
}

func NewObject(c RGB, polygons ...Polygon) *Object {
	o := &Object{
		polygons: append([]Polygon(nil), polygons...),
		color:    c,
	}
	o.recomputeBounds()
	return o
}

func (o *Object) recomputeBounds() {
	if len(o.polygons) == 0 {
		o.bounds = aabox.Degenerate()
		return
	}
	o.bounds = o.polygons[0].Bounds()
	for _, p := range o.polygons[1:] {
		o.bounds = aabox.MinContainingAABox(o.bounds, p.Bounds())
	}
}

func (o *Object) Bounds() aabox.AABox {
	return o.bounds
}

func (o *Object) Color() RGB {
	return o.color
}

// Polygons returns a copy of the object's polygons.
func (o *Object) Polygons() []Polygon {
	return append([]Polygon(nil), o.polygons...)
}

func (o *Object) Append(polygons ...Polygon) {
	o.polygons = append(o.polygons, polygons...)
	o.recomputeBounds()
}

// Apply bakes t into every vertex.
func (o *Object) Apply(t affinetransform.AffineTransform) {
	for i := range o.polygons {
		o.polygons[i] = o.polygons[i].Transformed(t)
	}
	o.recomputeBounds()
}

// Intersect returns the nearest polygon hit of r, or a NaN contact.  The
// bounding box is tested first.
func (o *Object) Intersect(r ray.Ray) contact.Contact {
	if !r.CollidesBox(o.bounds) {
		return contact.ContactNaN()
	}

	nearest := contact.ContactNaN()
	for _, p := range o.polygons {
		if c := p.Intersect(r); contact.Nearer(c, nearest) {
			nearest = c
		}
	}
	return nearest
}
