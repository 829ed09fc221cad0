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

// Package shape holds the beautified geometry of recognized strokes.
//
// A [Shape] is a declarative vector path built from straight segments and
// Bézier curves.  Circular and elliptical arcs are represented by cubic
// Bézier segments spanning at most 90° each.  Composite shapes carry their
// labelled parts in addition to the concatenated path.
package shape

import (
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// Shape is the idealized geometry of one interpretation.
type Shape struct {
	// Path is the outline of the shape.
	Path *path.Data

	// Closed is set for shapes which enclose a region.
	Closed bool

	// Raw is set if Path follows the input points instead of fitted
	// parameters.
	Raw bool

	// Parts lists the components of composite shapes, in stroke order.
	Parts []Part
}

// Part is a labelled component of a composite shape.
type Part struct {
	Label string
	Shape *Shape
}

// Line returns the segment from a to b.
func Line(a, b vec.Vec2) *Shape {
	return &Shape{Path: (&path.Data{}).MoveTo(a).LineTo(b)}
}

// Polyline returns the open polyline through pts.
func Polyline(pts []vec.Vec2) *Shape {
	return &Shape{Path: polyline(pts)}
}

// Polygon returns the closed polygon with the given vertices.
func Polygon(pts []vec.Vec2) *Shape {
	p := polyline(pts)
	if len(pts) > 0 {
		p = p.Close()
	}
	return &Shape{Path: p, Closed: true}
}

// Raw returns the polyline through the input points.
func Raw(pts []vec.Vec2) *Shape {
	return &Shape{Path: polyline(pts), Raw: true}
}

// Samples returns a polyline through points sampled from a parametric
// curve.
func Samples(pts []vec.Vec2, closed bool) *Shape {
	s := Polygon(pts)
	if !closed {
		s = Polyline(pts)
	}
	return s
}

func polyline(pts []vec.Vec2) *path.Data {
	p := &path.Data{}
	for i, q := range pts {
		if i == 0 {
			p = p.MoveTo(q)
		} else {
			p = p.LineTo(q)
		}
	}
	return p
}

// Circle returns the circle with center c and radius r.
func Circle(c vec.Vec2, r float64) *Shape {
	return Ellipse(c, r, r, 0)
}

// Ellipse returns the ellipse with center c, semi-axes a and b, and the
// a-axis rotated by angle (radians) from the x-axis.
func Ellipse(c vec.Vec2, a, b, angle float64) *Shape {
	m := matrix.RotateDeg(angle * 180 / math.Pi).Translate(c.X, c.Y)
	tr := func(x, y float64) vec.Vec2 {
		return apply(m, vec.Vec2{X: a * x, Y: b * y})
	}

	p := (&path.Data{}).MoveTo(tr(1, 0))
	for q := range 4 {
		phi0 := float64(q) * math.Pi / 2
		phi1 := phi0 + math.Pi/2
		c0, s0 := math.Cos(phi0), math.Sin(phi0)
		c1, s1 := math.Cos(phi1), math.Sin(phi1)
		p = p.CubeTo(
			tr(c0-kappa*s0, s0+kappa*c0),
			tr(c1+kappa*s1, s1-kappa*c1),
			tr(c1, s1),
		)
	}
	return &Shape{Path: p.Close(), Closed: true}
}

// Arc returns the circular arc with center c and radius r, starting at
// angle start and sweeping by sweep radians.  Positive sweeps turn from the
// x-axis towards the y-axis.
func Arc(c vec.Vec2, r, start, sweep float64) *Shape {
	pt := func(phi float64) vec.Vec2 {
		return vec.Vec2{X: c.X + r*math.Cos(phi), Y: c.Y + r*math.Sin(phi)}
	}
	p := (&path.Data{}).MoveTo(pt(start))
	n := max(1, int(math.Ceil(math.Abs(sweep)/(math.Pi/2)-1e-9)))
	theta := sweep / float64(n)
	k := 4.0 / 3 * math.Tan(theta/4)
	for i := range n {
		phi0 := start + float64(i)*theta
		phi1 := phi0 + theta
		p0, p1 := pt(phi0), pt(phi1)
		t0 := vec.Vec2{X: -math.Sin(phi0), Y: math.Cos(phi0)}.Mul(r * k)
		t1 := vec.Vec2{X: -math.Sin(phi1), Y: math.Cos(phi1)}.Mul(r * k)
		p = p.CubeTo(p0.Add(t0), p1.Sub(t1), p1)
	}
	return &Shape{Path: p}
}

// curveSamples is the number of segments used for Bézier curves of degree
// four and above.
const curveSamples = 32

// Curve returns the Bézier curve with the given control points.  Curves of
// degree up to three are represented exactly, higher degrees are sampled.
func Curve(ctrl []vec.Vec2) *Shape {
	p := &path.Data{}
	switch len(ctrl) {
	case 0:
		return &Shape{Path: p}
	case 1:
		return &Shape{Path: p.MoveTo(ctrl[0])}
	case 2:
		return Line(ctrl[0], ctrl[1])
	case 3:
		return &Shape{Path: p.MoveTo(ctrl[0]).QuadTo(ctrl[1], ctrl[2])}
	case 4:
		return &Shape{Path: p.MoveTo(ctrl[0]).CubeTo(ctrl[1], ctrl[2], ctrl[3])}
	}
	pts := make([]vec.Vec2, curveSamples+1)
	for i := range pts {
		pts[i] = deCasteljau(ctrl, float64(i)/curveSamples)
	}
	return &Shape{Path: polyline(pts)}
}

// Group concatenates the paths of the given parts.  The group is closed
// if all parts are closed.
func Group(parts ...Part) *Shape {
	g := &Shape{Path: &path.Data{}, Parts: parts, Closed: len(parts) > 0}
	for _, part := range parts {
		if part.Shape == nil {
			continue
		}
		g.Path.Cmds = append(g.Path.Cmds, part.Shape.Path.Cmds...)
		g.Path.Coords = append(g.Path.Coords, part.Shape.Path.Coords...)
		g.Closed = g.Closed && part.Shape.Closed
		g.Raw = g.Raw || part.Shape.Raw
	}
	return g
}

// Points returns the end points of all path commands, for example the
// vertices of a polygon.
func (s *Shape) Points() []vec.Vec2 {
	var res []vec.Vec2
	k := 0
	for _, cmd := range s.Path.Cmds {
		switch cmd {
		case path.CmdMoveTo, path.CmdLineTo:
			res = append(res, s.Path.Coords[k])
			k++
		case path.CmdQuadTo:
			res = append(res, s.Path.Coords[k+1])
			k += 2
		case path.CmdCubeTo:
			res = append(res, s.Path.Coords[k+2])
			k += 3
		}
	}
	return res
}

func deCasteljau(ctrl []vec.Vec2, t float64) vec.Vec2 {
	tmp := append([]vec.Vec2(nil), ctrl...)
	for k := len(tmp) - 1; k > 0; k-- {
		for i := range k {
			tmp[i] = tmp[i].Mul(1 - t).Add(tmp[i+1].Mul(t))
		}
	}
	return tmp[0]
}

func apply(m matrix.Matrix, v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: m[0]*v.X + m[2]*v.Y + m[4],
		Y: m[1]*v.X + m[3]*v.Y + m[5],
	}
}

// kappa is the control point distance for a quarter circle of radius 1.
const kappa = 0.5522847498307936
