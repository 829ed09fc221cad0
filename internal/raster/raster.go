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

// Package raster measures filled areas, overlaps and pen ink of paths by
// rendering them into a small anti-aliased coverage grid.
package raster

import (
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// Rule selects how overlapping parts of a path contribute to coverage.
type Rule int

// These are the supported fill rules.
const (
	NonZero Rule = iota
	EvenOdd
)

// edge is a line segment in grid coordinates.
type edge struct {
	x0, y0 float64
	x1, y1 float64
	dxdy   float64 // (x1-x0)/(y1-y0)
}

// Rasterizer converts paths into a coverage [Mask].  The zero value is not
// usable; use [NewRasterizer].  Buffers are reused between calls.
//
// A Rasterizer is not safe for concurrent use.
type Rasterizer struct {
	// CTM maps path coordinates to grid coordinates.
	CTM matrix.Matrix

	// Width and Height give the grid size in pixels.
	Width, Height int

	// Flatness is the curve flattening tolerance in pixels.
	Flatness float64

	cover     []float32
	area      []float32
	row       []float32
	edges     []edge
	crossings []float64
}

// NewRasterizer returns a rasterizer for a grid of the given size, with the
// identity transformation.
func NewRasterizer(width, height int) *Rasterizer {
	return &Rasterizer{
		CTM:      matrix.Identity,
		Width:    width,
		Height:   height,
		Flatness: defaultFlatness,
	}
}

// Fill renders p with the given rule.  Open subpaths are closed
// implicitly.
func (r *Rasterizer) Fill(p *path.Data, rule Rule) *Mask {
	m := &Mask{Width: r.Width, Height: r.Height}
	m.Pix = make([]float32, r.Width*r.Height)
	r.render(p, rule, m, false)
	return m
}

// FillMax renders p like [Rasterizer.Fill] and merges the result into m,
// keeping the larger coverage of every pixel.  Merging the pieces of a
// region this way measures their union without counting overlaps twice.
// m must have the grid size of r.
func (r *Rasterizer) FillMax(p *path.Data, rule Rule, m *Mask) {
	r.render(p, rule, m, true)
}

func (r *Rasterizer) render(p *path.Data, rule Rule, m *Mask, merge bool) {
	size := r.Width * r.Height
	if size == 0 || p == nil {
		return
	}

	r.collect(p)
	if len(r.edges) == 0 {
		return
	}

	// only the rows touched by an edge are cleared and integrated
	yMin, yMax := r.Height, 0
	for _, e := range r.edges {
		yMin = min(yMin, max(int(math.Floor(min(e.y0, e.y1))), 0))
		yMax = max(yMax, min(int(math.Floor(max(e.y0, e.y1)))+1, r.Height))
	}
	if yMax <= yMin {
		return
	}

	r.cover = slices.Grow(r.cover[:0], size)[:size]
	r.area = slices.Grow(r.area[:0], size)[:size]
	r.row = slices.Grow(r.row[:0], r.Width)[:r.Width]
	clear(r.cover[yMin*r.Width : yMax*r.Width])
	clear(r.area[yMin*r.Width : yMax*r.Width])

	for i := range r.edges {
		e := &r.edges[i]
		yLo := max(int(math.Floor(min(e.y0, e.y1))), 0)
		yHi := min(int(math.Floor(max(e.y0, e.y1)))+1, r.Height)
		for y := yLo; y < yHi; y++ {
			off := y * r.Width
			r.accumulate(e, y, r.cover[off:off+r.Width], r.area[off:off+r.Width])
		}
	}

	for y := yMin; y < yMax; y++ {
		off := y * r.Width
		dst := m.Pix[off : off+r.Width]
		if !merge {
			integrate(dst, r.cover[off:off+r.Width], r.area[off:off+r.Width], rule)
			continue
		}
		integrate(r.row, r.cover[off:off+r.Width], r.area[off:off+r.Width], rule)
		for i, c := range r.row {
			dst[i] = max(dst[i], c)
		}
	}
}

// collect flattens p into the edge list.
func (r *Rasterizer) collect(p *path.Data) {
	r.edges = r.edges[:0]

	var cur, start vec.Vec2
	open := false
	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			if open && cur != start {
				r.addEdge(cur, start)
			}
			cur = p.Coords[k]
			start = cur
			open = true
			k++
		case path.CmdLineTo:
			r.addEdge(cur, p.Coords[k])
			cur = p.Coords[k]
			k++
		case path.CmdQuadTo:
			r.flattenQuadratic(cur, p.Coords[k], p.Coords[k+1])
			cur = p.Coords[k+1]
			k += 2
		case path.CmdCubeTo:
			r.flattenCubic(cur, p.Coords[k], p.Coords[k+1], p.Coords[k+2])
			cur = p.Coords[k+2]
			k += 3
		case path.CmdClose:
			if cur != start {
				r.addEdge(cur, start)
			}
			cur = start
			open = false
		}
	}
	if open && cur != start {
		r.addEdge(cur, start)
	}
}

func (r *Rasterizer) apply(v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: r.CTM[0]*v.X + r.CTM[2]*v.Y + r.CTM[4],
		Y: r.CTM[1]*v.X + r.CTM[3]*v.Y + r.CTM[5],
	}
}

// linear applies the linear part of the CTM, for tolerance checks.
func (r *Rasterizer) linear(v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: r.CTM[0]*v.X + r.CTM[2]*v.Y,
		Y: r.CTM[1]*v.X + r.CTM[3]*v.Y,
	}
}

func (r *Rasterizer) addEdge(a, b vec.Vec2) {
	p := r.apply(a)
	q := r.apply(b)
	dy := q.Y - p.Y
	if dy > -horizontalEdgeThreshold && dy < horizontalEdgeThreshold {
		return
	}
	r.edges = append(r.edges, edge{
		x0: p.X, y0: p.Y,
		x1: q.X, y1: q.Y,
		dxdy: (q.X - p.X) / dy,
	})
}

// flattenQuadratic approximates a quadratic Bézier by line segments.
func (r *Rasterizer) flattenQuadratic(p0, p1, p2 vec.Vec2) {
	e := r.linear(p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25)).Length()
	n := 1
	if e > r.Flatness {
		n = int(math.Ceil(math.Sqrt(e / r.Flatness)))
	}
	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s).Add(p1.Mul(2 * s * t)).Add(p2.Mul(t * t))
		r.addEdge(prev, pt)
		prev = pt
	}
}

// flattenCubic approximates a cubic Bézier by line segments, choosing the
// segment count by Wang's formula.
func (r *Rasterizer) flattenCubic(p0, p1, p2, p3 vec.Vec2) {
	d1 := r.linear(p0.Sub(p1.Mul(2)).Add(p2)).Length()
	d2 := r.linear(p1.Sub(p2.Mul(2)).Add(p3)).Length()
	n := 1
	if m := max(d1, d2); m > 0 {
		if nf := math.Sqrt(3 * m / (4 * r.Flatness)); nf > 1 {
			n = int(math.Ceil(nf))
		}
	}
	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s * s).
			Add(p1.Mul(3 * s * s * t)).
			Add(p2.Mul(3 * s * t * t)).
			Add(p3.Mul(t * t * t))
		r.addEdge(prev, pt)
		prev = pt
	}
}

// Coverage accumulation:
//
// For every pixel two values are collected.  cover is the signed vertical
// extent of all edge pieces inside the pixel, area is cover weighted by
// the part of the pixel to the right of the edge piece.  Integrating a row
// from left to right, the coverage of pixel i is the running sum of cover
// over pixels 0..i-1 plus area[i].

// accumulate adds the contribution of e within scanline y.
func (r *Rasterizer) accumulate(e *edge, y int, cover, area []float32) {
	yTop := max(float64(y), min(e.y0, e.y1))
	yBot := min(float64(y+1), max(e.y0, e.y1))
	if yBot <= yTop {
		return
	}
	sign := float32(1)
	if e.y1 < e.y0 {
		sign = -1
	}

	xTop := e.x0 + e.dxdy*(yTop-e.y0)
	xBot := e.x0 + e.dxdy*(yBot-e.y0)
	left := int(math.Floor(min(xTop, xBot)))
	right := int(math.Floor(max(xTop, xBot)))

	r.crossings = append(r.crossings[:0], yTop, yBot)
	if left != right {
		dydx := 1 / e.dxdy
		for x := left + 1; x <= right; x++ {
			yx := e.y0 + dydx*(float64(x)-e.x0)
			if yx > yTop && yx < yBot {
				r.crossings = append(r.crossings, yx)
			}
		}
		slices.Sort(r.crossings)
	}

	for i := 1; i < len(r.crossings); i++ {
		y0, y1 := r.crossings[i-1], r.crossings[i]
		if y1 <= y0 {
			continue
		}
		c := sign * float32(y1-y0)
		xMid := e.x0 + e.dxdy*((y0+y1)/2-e.y0)
		pix := int(math.Floor(xMid))
		switch {
		case pix < 0:
			cover[0] += c
			area[0] += c
		case pix < len(cover):
			cover[pix] += c
			area[pix] += c * float32(1-(xMid-float64(pix)))
		}
	}
}

// integrate converts one row of accumulated values into coverage.
func integrate(out, cover, area []float32, rule Rule) {
	var acc float32
	for i := range out {
		raw := acc + area[i]
		acc += cover[i]
		if raw < 0 {
			raw = -raw
		}
		if rule == EvenOdd {
			mod := raw - 2*float32(int(raw/2))
			raw = 1 - abs32(1-mod)
		}
		out[i] = min(raw, 1)
	}
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

const (
	// defaultFlatness is the curve flattening tolerance in pixels.
	defaultFlatness = 0.1

	// horizontalEdgeThreshold is the minimal vertical extent of an edge
	// which contributes to coverage.
	horizontalEdgeThreshold = 1e-10
)
