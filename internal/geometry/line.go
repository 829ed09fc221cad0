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

package geometry

import (
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/vec"
)

// Line is the line through A and B.  Depending on the method, it is
// treated as an infinite line or as the segment from A to B.
type Line struct {
	A, B vec.Vec2
}

// Length returns the length of the segment.
func (l Line) Length() float64 {
	return l.B.Sub(l.A).Length()
}

// Angle returns the direction of the segment from A to B.
func (l Line) Angle() float64 {
	d := l.B.Sub(l.A)
	return math.Atan2(d.Y, d.X)
}

// Midpoint returns the point halfway between A and B.
func (l Line) Midpoint() vec.Vec2 {
	return l.A.Add(l.B).Mul(0.5)
}

// Side returns a value whose sign tells on which side of the infinite line
// p lies.  The magnitude is the distance times the segment length.
func (l Line) Side(p vec.Vec2) float64 {
	return Cross(l.B.Sub(l.A), p.Sub(l.A))
}

// Dist returns the distance from p to the infinite line.  For a degenerate
// line the distance to A is returned.
func (l Line) Dist(p vec.Vec2) float64 {
	length := l.Length()
	if length < zeroLengthThreshold {
		return Dist(l.A, p)
	}
	return math.Abs(l.Side(p)) / length
}

// SegmentDist returns the distance from p to the segment.
func (l Line) SegmentDist(p vec.Vec2) float64 {
	d := l.B.Sub(l.A)
	ll := d.Dot(d)
	if ll < zeroLengthThreshold {
		return Dist(l.A, p)
	}
	t := p.Sub(l.A).Dot(d) / ll
	t = max(0, min(1, t))
	return Dist(l.A.Add(d.Mul(t)), p)
}

// Project returns the orthogonal projection of p onto the infinite line.
func (l Line) Project(p vec.Vec2) vec.Vec2 {
	d := l.B.Sub(l.A)
	ll := d.Dot(d)
	if ll < zeroLengthThreshold {
		return l.A
	}
	return l.A.Add(d.Mul(p.Sub(l.A).Dot(d) / ll))
}

// Bisector returns the perpendicular bisector of the segment.  The
// returned line passes through the midpoint and has the same length as l.
func (l Line) Bisector() Line {
	m := l.Midpoint()
	h := Perp(l.B.Sub(l.A)).Mul(0.5)
	return Line{A: m.Sub(h), B: m.Add(h)}
}

// Intersect returns the intersection of the two infinite lines.  The
// second return value is false if the lines are parallel or degenerate.
func (l Line) Intersect(m Line) (vec.Vec2, bool) {
	d1 := l.B.Sub(l.A)
	d2 := m.B.Sub(m.A)
	den := Cross(d1, d2)
	if math.Abs(den) < parallelThreshold*d1.Length()*d2.Length() || den == 0 {
		return vec.Vec2{}, false
	}
	t := Cross(m.A.Sub(l.A), d2) / den
	return l.A.Add(d1.Mul(t)), true
}

// SegmentsIntersect returns the intersection of the two segments, if
// they cross.
func (l Line) SegmentsIntersect(m Line) (vec.Vec2, bool) {
	d1 := l.B.Sub(l.A)
	d2 := m.B.Sub(m.A)
	den := Cross(d1, d2)
	if den == 0 {
		return vec.Vec2{}, false
	}
	w := m.A.Sub(l.A)
	t := Cross(w, d2) / den
	u := Cross(w, d1) / den
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return vec.Vec2{}, false
	}
	return l.A.Add(d1.Mul(t)), true
}

// Circumcenter returns the center of the circle through a, b and c, found
// by intersecting two perpendicular bisectors.  The second return value is
// false for collinear points.
func Circumcenter(a, b, c vec.Vec2) (vec.Vec2, bool) {
	return Line{A: a, B: b}.Bisector().Intersect(Line{A: b, B: c}.Bisector())
}

func sortPoints(pts []vec.Vec2) {
	slices.SortFunc(pts, func(p, q vec.Vec2) int {
		if c := cmp.Compare(p.X, q.X); c != 0 {
			return c
		}
		return cmp.Compare(p.Y, q.Y)
	})
}
