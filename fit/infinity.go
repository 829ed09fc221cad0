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

package fit

import (
	"math"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/sketch/internal/geometry"
	"seehuhn.de/go/sketch/shape"
)

// Fail codes of [InfinityFit].
const (
	InfinityFailNotClosed = iota
	InfinityFailIntersection
	InfinityFailOrientation
	InfinityFailLoops
	InfinityFailAreaRatio
)

// InfinityFit tests whether a stroke is a figure eight: two loops of
// opposite orientation and similar size joined at a self-intersection.
type InfinityFit struct {
	result
	crossing vec.Vec2
	loops    [2][]vec.Vec2
}

func newInfinityFit(a *arena) *InfinityFit {
	f := a.feat
	th := a.th
	inf := &InfinityFit{result: newResult()}
	pts := f.Vecs()
	if inf.short(len(pts), 5) {
		return inf
	}

	found := inf.split(pts)
	var areas, revs [2]float64
	var signs [2]float64
	for i, loop := range inf.loops {
		if len(loop) < 3 {
			continue
		}
		signs[i] = geometry.SignedArea(loop)
		areas[i] = geometry.PolygonArea(loop)
		closed := append(loop[:len(loop):len(loop)], loop[0], loop[1])
		revs[i] = math.Abs(geometry.TotalTurning(closed)) / (2 * math.Pi)
	}
	inf.err = geometry.SafeRatioError(min(areas[0], areas[1]), max(areas[0], areas[1]), th.LargeError)

	inf.check(f.EndpointRatio() < th.ClosedDistancePct, InfinityFailNotClosed)
	inf.check(found, InfinityFailIntersection)
	inf.check(signs[0]*signs[1] < 0, InfinityFailOrientation)
	inf.check(min(revs[0], revs[1]) >= th.InfinityMinLoopRevs, InfinityFailLoops)
	inf.check(inf.err <= th.InfinityAreaRatio, InfinityFailAreaRatio)

	if found {
		var parts []shape.Part
		for _, loop := range inf.loops {
			parts = append(parts, shape.Part{Label: Ellipse.String(), Shape: loopEllipse(loop)})
		}
		inf.shape = shape.Group(parts...)
	}
	return inf
}

func (*InfinityFit) Kind() Kind   { return Infinity }
func (*InfinityFit) Name() string { return Infinity.String() }

// Crossing returns the self-intersection joining the two loops.
func (inf *InfinityFit) Crossing() vec.Vec2 { return inf.crossing }

// split finds the self-intersection which divides the stroke most evenly
// into two loops.  The second loop wraps around from the end of the
// stroke to its start.
func (inf *InfinityFit) split(pts []vec.Vec2) bool {
	n := len(pts)
	bestI, bestJ, bestLen := -1, -1, 0
	var crossing vec.Vec2
	for i := 0; i+1 < n; i++ {
		si := geometry.Line{A: pts[i], B: pts[i+1]}
		for j := i + 2; j+1 < n; j++ {
			p, ok := si.SegmentsIntersect(geometry.Line{A: pts[j], B: pts[j+1]})
			if !ok {
				continue
			}
			inner := j - i
			if l := min(inner, n-inner); l > bestLen {
				bestI, bestJ, bestLen = i, j, l
				crossing = p
			}
		}
	}
	if bestI < 0 {
		return false
	}
	inf.crossing = crossing
	first := []vec.Vec2{crossing}
	first = append(first, pts[bestI+1:bestJ+1]...)
	second := []vec.Vec2{crossing}
	second = append(second, pts[bestJ+1:]...)
	second = append(second, pts[:bestI+1]...)
	inf.loops = [2][]vec.Vec2{first, second}
	return true
}

// loopEllipse returns the ellipse whose major axis joins the two points of
// the loop farthest apart, and whose area equals the area of the loop.
func loopEllipse(loop []vec.Vec2) *shape.Shape {
	var major geometry.Line
	for i := range loop {
		for j := i + 1; j < len(loop); j++ {
			if l := (geometry.Line{A: loop[i], B: loop[j]}); l.Length() > major.Length() {
				major = l
			}
		}
	}
	a := major.Length() / 2
	b := geometry.Finite(geometry.PolygonArea(loop)/(math.Pi*a), 0)
	return shape.Ellipse(major.Midpoint(), a, b, major.Angle())
}
