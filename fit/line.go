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
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/sketch/internal/geometry"
	"seehuhn.de/go/sketch/shape"
	"seehuhn.de/go/sketch/thresholds"
)

// Fail codes of [LineFit].
const (
	LineFailLSE = iota
	LineFailFeatureArea
	LineFailEndpointRatio
)

// LineFit tests whether a stroke is a straight line.
type LineFit struct {
	result
	lt lineTest
}

func newLineFit(a *arena) *LineFit {
	f := a.feat
	lf := &LineFit{result: newResult()}
	pts := f.Vecs()
	if len(pts) < 2 {
		lf.reject(FailTooFewPoints)
		return lf
	}

	best := f.BestFitLine()
	lf.lt = lineTest{
		line:     geometry.Line{A: best.Project(pts[0]), B: best.Project(pts[len(pts)-1])},
		length:   f.Length(),
		endRatio: f.EndpointRatio(),
	}
	if len(pts) > 2 {
		lf.lt.lse = perLength(f.BestFitLSE(), f.Length(), a.th.LargeError)
		lf.lt.area = perLength(geometry.FeatureAreaToLine(pts, best), f.Length(), a.th.LargeError)
	} else {
		lf.lt.endRatio = 1
	}

	lf.err = lf.lt.lse
	lf.lt.check(&lf.result, a.th)
	lf.shape = shape.Line(lf.lt.line.A, lf.lt.line.B)
	lf.setFloat("length", lf.lt.line.Length())
	return lf
}

func (*LineFit) Kind() Kind         { return Line }
func (*LineFit) Name() string       { return Line.String() }
func (lf *LineFit) Start() vec.Vec2 { return lf.lt.line.A }
func (lf *LineFit) End() vec.Vec2   { return lf.lt.line.B }

// Length returns the length of the beautified line.
func (lf *LineFit) Length() float64 { return lf.lt.line.Length() }

// Angle returns the direction of the beautified line.
func (lf *LineFit) Angle() float64 { return lf.lt.line.Angle() }

// lineTest holds the measurements of the line test applied to a point
// sequence.
type lineTest struct {
	line     geometry.Line
	length   float64
	lse      float64 // squared orthogonal error per unit length
	area     float64 // feature area per unit length
	endRatio float64
}

// testLine runs the line test on pts.  The fitted line is directed from
// the first towards the last point.
func testLine(pts []vec.Vec2, th *thresholds.Thresholds) lineTest {
	if len(pts) < 2 {
		return lineTest{lse: th.LargeError, area: th.LargeError}
	}
	best, sse := geometry.LeastSquaresLine(pts)
	lt := lineTest{
		line:   geometry.Line{A: best.Project(pts[0]), B: best.Project(pts[len(pts)-1])},
		length: geometry.PolylineLength(pts),
	}
	if len(pts) == 2 {
		lt.endRatio = 1
		return lt
	}
	lt.lse = perLength(sse, lt.length, th.LargeError)
	lt.area = perLength(geometry.FeatureAreaToLine(pts, best), lt.length, th.LargeError)
	lt.endRatio = perLength(geometry.Dist(pts[0], pts[len(pts)-1]), lt.length, 0)
	return lt
}

func (lt lineTest) check(r *result, th *thresholds.Thresholds) {
	r.check(lt.lse <= th.LineLSError, LineFailLSE)
	r.check(lt.area <= th.LineFeatureArea, LineFailFeatureArea)
	r.check(lt.endRatio >= th.LineMinEndpointRatio, LineFailEndpointRatio)
}

func (lt lineTest) passes(th *thresholds.Thresholds) bool {
	r := newResult()
	lt.check(&r, th)
	return r.passed
}

// perLength divides x by length, returning large for a zero length.
func perLength(x, length, large float64) float64 {
	if length <= 0 {
		if x == 0 {
			return 0
		}
		return large
	}
	return geometry.Finite(x/length, large)
}
