// seehuhn.de/go/sketch - recognition of hand-drawn pen strokes
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package raster

import (
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// MaxGridSize is the largest grid dimension used for measurements.
const MaxGridSize = 256

// Mask holds per-pixel coverage values in [0, 1], in row-major order.
type Mask struct {
	Width, Height int
	Pix           []float32
}

// Sum returns the total coverage, in pixels.
func (m *Mask) Sum() float64 {
	var s float64
	for _, c := range m.Pix {
		s += float64(c)
	}
	return s
}

// IoU returns the intersection over union of two masks of equal size,
// using min and max as fuzzy intersection and union.  Two empty masks have
// IoU 0.
func (m *Mask) IoU(other *Mask) float64 {
	var inter, union float64
	for i, a := range m.Pix {
		b := other.Pix[i]
		inter += float64(min(a, b))
		union += float64(max(a, b))
	}
	if union == 0 {
		return 0
	}
	return inter / union
}

// Frame maps a region of the drawing surface onto a grid of at most
// [MaxGridSize] pixels in each direction.
type Frame struct {
	CTM           matrix.Matrix
	Width, Height int
	Scale         float64 // pixels per surface unit
}

// NewFrame returns a frame which covers bbox, enlarged by margin on every
// side.  A degenerate box gives a frame with an empty grid.
func NewFrame(bbox rect.Rect, margin float64) Frame {
	w := bbox.URx - bbox.LLx + 2*margin
	h := bbox.URy - bbox.LLy + 2*margin
	if !(w > 0) || !(h > 0) || math.IsInf(w, 0) || math.IsInf(h, 0) {
		return Frame{CTM: matrix.Identity}
	}
	s := MaxGridSize / max(w, h)
	return Frame{
		CTM:    matrix.Scale(s, s).Translate(-(bbox.LLx-margin)*s, -(bbox.LLy-margin)*s),
		Width:  max(1, int(math.Ceil(w*s))),
		Height: max(1, int(math.Ceil(h*s))),
		Scale:  s,
	}
}

// Fill renders p into the frame.
func (fr Frame) Fill(p *path.Data, rule Rule) *Mask {
	r := NewRasterizer(fr.Width, fr.Height)
	r.CTM = fr.CTM
	return r.Fill(p, rule)
}

// Area converts a coverage sum into an area on the drawing surface.
func (fr Frame) Area(m *Mask) float64 {
	if fr.Scale == 0 {
		return 0
	}
	return m.Sum() / (fr.Scale * fr.Scale)
}

// Bounds returns the bounding box of all coordinates of the given paths.
// Since Bézier curves lie in the convex hull of their control points, the
// box contains the paths.
func Bounds(paths ...*path.Data) (rect.Rect, bool) {
	var bbox rect.Rect
	first := true
	for _, p := range paths {
		if p == nil {
			continue
		}
		for _, c := range p.Coords {
			if first {
				bbox = rect.Rect{LLx: c.X, LLy: c.Y, URx: c.X, URy: c.Y}
				first = false
				continue
			}
			bbox.LLx = min(bbox.LLx, c.X)
			bbox.LLy = min(bbox.LLy, c.Y)
			bbox.URx = max(bbox.URx, c.X)
			bbox.URy = max(bbox.URy, c.Y)
		}
	}
	return bbox, !first
}

// FillArea returns the area enclosed by p under the nonzero rule.
func FillArea(p *path.Data) float64 {
	bbox, ok := Bounds(p)
	if !ok {
		return 0
	}
	fr := NewFrame(bbox, framePadding(bbox))
	return fr.Area(fr.Fill(p, NonZero))
}

// Overlap returns the intersection over union of the regions enclosed by
// a and b, rendered into a common frame.
func Overlap(a, b *path.Data) float64 {
	bbox, ok := Bounds(a, b)
	if !ok {
		return 0
	}
	fr := NewFrame(bbox, framePadding(bbox))
	return fr.Fill(a, NonZero).IoU(fr.Fill(b, NonZero))
}

// Polygon returns the closed path through pts.
func Polygon(pts []vec.Vec2) *path.Data {
	p := &path.Data{}
	if len(pts) == 0 {
		return p
	}
	p = p.MoveTo(pts[0])
	for _, q := range pts[1:] {
		p = p.LineTo(q)
	}
	return p.Close()
}

// InkArea returns the area covered by the ink of pen along pts.
// Overlapping parts of the ink are counted once.
func InkArea(pts []vec.Vec2, pen Pen) float64 {
	bbox, ok := Bounds(pen.Outline(pts))
	if !ok {
		return 0
	}
	fr := NewFrame(bbox, framePadding(bbox))
	return fr.Area(fr.ink(pts, pen))
}

// InkDensity returns the fraction of the ink bounding box covered by the
// ink of pen along pts.  The result is in [0, 1].
func InkDensity(pts []vec.Vec2, pen Pen) float64 {
	bbox, ok := Bounds(pen.Outline(pts))
	if !ok {
		return 0
	}
	fr := NewFrame(bbox, 0)
	if fr.Width == 0 {
		return 0
	}
	return fr.ink(pts, pen).Sum() / float64(fr.Width*fr.Height)
}

// ink renders the pieces of the pen outline one by one and merges them,
// so that anti-aliased borders of overlapping pieces do not add up.
func (fr Frame) ink(pts []vec.Vec2, pen Pen) *Mask {
	r := NewRasterizer(fr.Width, fr.Height)
	r.CTM = fr.CTM
	m := &Mask{Width: fr.Width, Height: fr.Height, Pix: make([]float32, fr.Width*fr.Height)}
	for _, piece := range pen.pieces(pts) {
		r.FillMax(Polygon(piece), NonZero, m)
	}
	return m
}

// framePadding keeps anti-aliased borders inside the grid.
func framePadding(bbox rect.Rect) float64 {
	return 0.02 * max(bbox.URx-bbox.LLx, bbox.URy-bbox.LLy)
}
