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
	"seehuhn.de/go/sketch/internal/raster"
	"seehuhn.de/go/sketch/shape"
)

// Fail codes of [EllipseFit].
const (
	EllipseFailClosed = iota
	EllipseFailNDDE
	EllipseFailDCR
	EllipseFailFeatureArea
)

// EllipseFit tests whether a stroke is an ellipse.  The major axis joins
// the two points farthest apart; the minor axis is the perpendicular
// bisector of the major axis, clipped against the stroke.
type EllipseFit struct {
	result
	center   vec.Vec2
	major    float64
	minor    float64
	angle    float64
	fallback bool
}

func newEllipseFit(a *arena) *EllipseFit {
	f := a.feat
	th := a.th
	ef := &EllipseFit{result: newResult()}
	pts := f.Vecs()
	if ef.short(len(pts), 3) {
		return ef
	}

	axis := f.MajorAxis()
	ef.center = axis.Midpoint()
	ef.major = axis.Length() / 2
	ef.angle = axis.Angle()
	minor, ok := minorAxis(pts, axis)
	if !ok {
		minor = geometry.Finite(geometry.PolygonArea(pts)/(math.Pi*ef.major), 0)
		ef.fallback = true
	}
	ef.minor = minor

	ideal := math.Pi * ef.major * ef.minor * max(1, f.Revolutions())
	ef.err = geometry.SafeRatioError(geometry.FeatureAreaToPoint(pts, ef.center), ideal, th.LargeError)

	ef.check(f.Closed() || f.Overtraced(), EllipseFailClosed)
	ef.check(f.NDDE() >= th.EllipseNDDE, EllipseFailNDDE)
	ef.check(f.DCR() <= th.EllipseDCR, EllipseFailDCR)
	limit := th.EllipseFeatureArea
	if 2*ef.major < th.EllipseSmallMajor {
		limit = th.EllipseSmallFeatureArea
	}
	ef.check(ef.err <= limit, EllipseFailFeatureArea)

	ef.shape = shape.Ellipse(ef.center, ef.major, ef.minor, ef.angle)
	ef.setFloat("majorAxis", 2*ef.major)
	ef.setFloat("minorAxis", 2*ef.minor)
	ef.setFloat("overlap", raster.Overlap(raster.Polygon(pts), ef.shape.Path))
	return ef
}

func (*EllipseFit) Kind() Kind   { return Ellipse }
func (*EllipseFit) Name() string { return Ellipse.String() }

// Center returns the center of the ellipse.
func (ef *EllipseFit) Center() vec.Vec2 { return ef.center }

// SemiAxes returns the semi-major and semi-minor axis lengths.
func (ef *EllipseFit) SemiAxes() (float64, float64) { return ef.major, ef.minor }

// Angle returns the direction of the major axis.
func (ef *EllipseFit) Angle() float64 { return ef.angle }

// minorAxis intersects the perpendicular bisector of the major axis with
// the closed polygon through pts, and returns half the distance between
// the outermost intersections on either side of the major axis.
func minorAxis(pts []vec.Vec2, major geometry.Line) (float64, bool) {
	length := major.Length()
	if length == 0 {
		return 0, false
	}
	c := major.Midpoint()
	dir := geometry.Unit(geometry.Perp(major.B.Sub(major.A)))
	ray := geometry.Line{A: c.Sub(dir.Mul(2 * length)), B: c.Add(dir.Mul(2 * length))}

	lo, hi := 0.0, 0.0
	n := len(pts)
	for i := range n {
		edge := geometry.Line{A: pts[i], B: pts[(i+1)%n]}
		if p, ok := ray.SegmentsIntersect(edge); ok {
			t := p.Sub(c).Dot(dir)
			lo, hi = min(lo, t), max(hi, t)
		}
	}
	if lo >= 0 || hi <= 0 {
		return 0, false
	}
	return (hi - lo) / 2, true
}

// Fail codes of [CircleFit].
const (
	CircleFailClosed = iota
	CircleFailNDDE
	CircleFailDCR
	CircleFailAxisRatio
	CircleFailFeatureArea
	CircleFailRadialDeviation
)

// CircleFit tests whether a stroke is a circle.  It is derived from the
// [EllipseFit] of the same stroke.
type CircleFit struct {
	result
	ellipse   *EllipseFit
	center    vec.Vec2
	radius    float64
	deviation float64
}

func newCircleFit(a *arena) *CircleFit {
	f := a.feat
	th := a.th
	ef := a.ellipse()
	cf := &CircleFit{result: newResult(), ellipse: ef}
	if cf.inherit(ef) {
		return cf
	}
	pts := f.Vecs()

	cf.center = ef.center
	cf.radius = meanDist(pts, cf.center)
	cf.deviation = perLength(spread(pts, cf.center, cf.radius), cf.radius, th.LargeError)
	small := cf.radius < th.CircleSmallRadius

	axisErr := geometry.SafeRatioError(ef.minor, ef.major, th.LargeError)
	ideal := math.Pi * cf.radius * cf.radius * max(1, f.Revolutions())
	cf.err = geometry.SafeRatioError(geometry.FeatureAreaToPoint(pts, cf.center), ideal, th.LargeError)

	cf.check(f.Closed() || f.Overtraced(), CircleFailClosed)
	cf.check(f.NDDE() >= th.CircleNDDE, CircleFailNDDE)
	cf.check(f.DCR() <= th.CircleDCR, CircleFailDCR)
	axisLimit, areaLimit, radialLimit := th.CircleAxisRatio, th.CircleFeatureArea, th.CircleRadialDeviation
	if small {
		axisLimit, areaLimit, radialLimit = th.CircleSmallAxisRatio, th.CircleSmallFeatureArea, th.CircleSmallRadialDeviation
	}
	cf.check(axisErr <= axisLimit, CircleFailAxisRatio)
	cf.check(cf.err <= areaLimit, CircleFailFeatureArea)
	cf.check(cf.deviation <= radialLimit, CircleFailRadialDeviation)

	cf.shape = shape.Circle(cf.center, cf.radius)
	cf.setFloat("radius", cf.radius)
	cf.setFloat("overlap", raster.Overlap(raster.Polygon(pts), cf.shape.Path))
	return cf
}

func (*CircleFit) Kind() Kind   { return Circle }
func (*CircleFit) Name() string { return Circle.String() }

// Center returns the center of the circle.
func (cf *CircleFit) Center() vec.Vec2 { return cf.center }

// Radius returns the mean distance of the stroke from the center.
func (cf *CircleFit) Radius() float64 { return cf.radius }

// RadialDeviation returns the standard deviation of the distance of the
// stroke from the center, relative to the radius.
func (cf *CircleFit) RadialDeviation() float64 { return cf.deviation }

// Ellipse returns the ellipse fit the circle was derived from.
func (cf *CircleFit) Ellipse() *EllipseFit { return cf.ellipse }
