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

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/sketch/internal/geometry"
)

// Pen describes the ink left by a pen moving along a polyline.
type Pen struct {
	// Width is the diameter of the pen tip.
	Width float64

	// Cap sets the shape at the ends of the polyline.
	Cap graphics.LineCapStyle

	// Join sets the shape at interior vertices.  Joins other than round
	// are beveled.
	Join graphics.LineJoinStyle
}

// RoundPen returns a round pen tip of the given width.
func RoundPen(width float64) Pen {
	return Pen{Width: width, Cap: graphics.LineCapRound, Join: graphics.LineJoinRound}
}

// arcSteps is the number of polygon vertices used for a full circle.
const arcSteps = 24

// Outline returns the ink region of the pen along pts as a union of
// clockwise polygons, suitable for the nonzero rule.  The polygons
// overlap at joins; use [InkArea] or [InkDensity] to measure the ink.
func (pen Pen) Outline(pts []vec.Vec2) *path.Data {
	p := &path.Data{}
	for _, piece := range pen.pieces(pts) {
		p = addClockwise(p, piece)
	}
	return p
}

// pieces returns the convex polygons whose union is the ink of the pen
// along pts.
func (pen Pen) pieces(pts []vec.Vec2) [][]vec.Vec2 {
	d := pen.Width / 2
	if len(pts) == 0 || !(d > 0) {
		return nil
	}

	var segs []geometry.Line
	for i := 1; i < len(pts); i++ {
		if geometry.Dist(pts[i-1], pts[i]) > zeroSegmentLength {
			segs = append(segs, geometry.Line{A: pts[i-1], B: pts[i]})
		}
	}
	if len(segs) == 0 {
		switch pen.Cap {
		case graphics.LineCapRound:
			return [][]vec.Vec2{disc(pts[0], d)}
		case graphics.LineCapSquare:
			c := pts[0]
			return [][]vec.Vec2{{
				{X: c.X - d, Y: c.Y - d}, {X: c.X + d, Y: c.Y - d},
				{X: c.X + d, Y: c.Y + d}, {X: c.X - d, Y: c.Y + d},
			}}
		}
		return nil
	}

	var res [][]vec.Vec2
	for i, s := range segs {
		t := geometry.Unit(s.B.Sub(s.A))
		a, b := s.A, s.B
		if pen.Cap == graphics.LineCapSquare {
			if i == 0 {
				a = a.Sub(t.Mul(d))
			}
			if i == len(segs)-1 {
				b = b.Add(t.Mul(d))
			}
		}
		n := geometry.Perp(t).Mul(d)
		res = append(res, []vec.Vec2{a.Add(n), b.Add(n), b.Sub(n), a.Sub(n)})
	}

	for i := 1; i < len(segs); i++ {
		c := segs[i].A
		if pen.Join == graphics.LineJoinRound {
			res = append(res, disc(c, d))
			continue
		}
		n1 := geometry.Perp(geometry.Unit(segs[i-1].B.Sub(segs[i-1].A))).Mul(d)
		n2 := geometry.Perp(geometry.Unit(segs[i].B.Sub(segs[i].A))).Mul(d)
		res = append(res,
			[]vec.Vec2{c, c.Add(n1), c.Add(n2)},
			[]vec.Vec2{c, c.Sub(n1), c.Sub(n2)})
	}

	if pen.Cap == graphics.LineCapRound {
		res = append(res, disc(segs[0].A, d), disc(segs[len(segs)-1].B, d))
	}
	return res
}

// addClockwise appends the closed polygon pts with negative orientation
// (clockwise in a y-up frame).  Degenerate polygons are skipped.
func addClockwise(p *path.Data, pts []vec.Vec2) *path.Data {
	a := geometry.SignedArea(pts)
	if math.Abs(a) < zeroSegmentLength {
		return p
	}
	if a > 0 {
		rev := make([]vec.Vec2, len(pts))
		for i, q := range pts {
			rev[len(pts)-1-i] = q
		}
		pts = rev
	}
	p = p.MoveTo(pts[0])
	for _, q := range pts[1:] {
		p = p.LineTo(q)
	}
	return p.Close()
}

// disc returns a regular polygon approximating the circle of radius r
// around c.
func disc(c vec.Vec2, r float64) []vec.Vec2 {
	pts := make([]vec.Vec2, arcSteps)
	for i := range pts {
		phi := -2 * math.Pi * float64(i) / arcSteps
		pts[i] = c.Add(vec.Vec2{X: r * math.Cos(phi), Y: r * math.Sin(phi)})
	}
	return pts
}

// zeroSegmentLength is the length below which pen segments are ignored.
const zeroSegmentLength = 1e-10
