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

// Fail codes of [ArcFit].
const (
	ArcFailClosed = iota
	ArcFailSweep
	ArcFailNDDE
	ArcFailDCR
	ArcFailFeatureArea
	ArcFailPointsDown
)

// ArcFit tests whether a stroke is a circular arc.
type ArcFit struct {
	result
	center   vec.Vec2
	radius   float64
	start    float64
	sweep    float64
	fallback bool
}

func newArcFit(a *arena) *ArcFit {
	f := a.feat
	th := a.th
	af := &ArcFit{result: newResult()}
	pts := f.Vecs()
	if af.short(len(pts), 3) {
		return af
	}

	center, ok := arcCenter(pts)
	if !ok {
		center = geometry.Centroid(pts)
		af.fallback = true
	}
	af.center = center
	af.radius = meanDist(pts, center)
	af.start, af.sweep = sweep(pts, center)

	ideal := af.radius * af.radius * math.Abs(af.sweep) / 2
	af.err = geometry.SafeRatioError(geometry.FeatureAreaToPoint(pts, center), ideal, th.LargeError)

	af.check(!f.Closed(), ArcFailClosed)
	af.check(math.Abs(af.sweep) >= th.ArcMinSweep && math.Abs(af.sweep) < 2*math.Pi, ArcFailSweep)
	af.check(f.NDDE() >= th.ArcNDDE, ArcFailNDDE)
	af.check(f.DCR() <= th.ArcDCR, ArcFailDCR)
	limit := th.ArcFeatureArea
	if af.radius < th.ArcSmallRadius {
		limit = th.ArcSmallFeatureArea
	}
	af.check(af.err <= limit, ArcFailFeatureArea)
	if a.cfg.Heuristics.RequireArcsPointDown {
		af.check(pointsDown(pts), ArcFailPointsDown)
	}

	af.shape = shape.Arc(center, af.radius, af.start, af.sweep)
	af.setFloat("radius", af.radius)
	af.setFloat("sweep", af.sweep)
	if af.fallback {
		af.setAttr("center", "centroid")
	}
	return af
}

func (*ArcFit) Kind() Kind   { return Arc }
func (*ArcFit) Name() string { return Arc.String() }

// Center returns the center of the circle the arc lies on.
func (af *ArcFit) Center() vec.Vec2 { return af.center }

// Radius returns the mean distance of the stroke from the center.
func (af *ArcFit) Radius() float64 { return af.radius }

// StartAngle returns the direction from the center to the first point.
func (af *ArcFit) StartAngle() float64 { return af.start }

// Sweep returns the signed angle covered by the arc, counter-clockwise
// positive in y-up coordinates.
func (af *ArcFit) Sweep() float64 { return af.sweep }

// arcCenter estimates the center of an arc through pts by averaging the
// circumcenters of the first point, an interior point and the last point.
// The second return value is false if all perpendicular bisectors are
// parallel.
func arcCenter(pts []vec.Vec2) (vec.Vec2, bool) {
	n := len(pts)
	first, last := pts[0], pts[n-1]
	var sum vec.Vec2
	var count int
	for _, i := range []int{n / 4, n / 2, 3 * n / 4} {
		if i == 0 || i == n-1 {
			continue
		}
		if c, ok := geometry.Circumcenter(first, pts[i], last); ok {
			sum = sum.Add(c)
			count++
		}
	}
	if count == 0 {
		return vec.Vec2{}, false
	}
	return sum.Mul(1 / float64(count)), true
}

// sweep returns the direction from c to the first point, and the signed
// angle by which the direction from c turns while moving along pts.
func sweep(pts []vec.Vec2, c vec.Vec2) (float64, float64) {
	angle := func(p vec.Vec2) float64 {
		d := p.Sub(c)
		return math.Atan2(d.Y, d.X)
	}
	start := angle(pts[0])
	prev := start
	var total float64
	for _, p := range pts[1:] {
		theta := angle(p)
		total += geometry.AngleDiff(prev, theta)
		prev = theta
	}
	return start, total
}

func meanDist(pts []vec.Vec2, c vec.Vec2) float64 {
	if len(pts) == 0 {
		return 0
	}
	var sum float64
	for _, p := range pts {
		sum += geometry.Dist(p, c)
	}
	return sum / float64(len(pts))
}

// spread returns the standard deviation of the distances of pts from c,
// where mean is their mean.
func spread(pts []vec.Vec2, c vec.Vec2, mean float64) float64 {
	if len(pts) == 0 {
		return 0
	}
	var sum float64
	for _, p := range pts {
		d := geometry.Dist(p, c) - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(pts)))
}

// pointsDown reports whether the point farthest from the chord lies below
// the chord in screen coordinates.
func pointsDown(pts []vec.Vec2) bool {
	chord := geometry.Line{A: pts[0], B: pts[len(pts)-1]}
	apex, best := pts[0], -1.0
	for _, p := range pts {
		if d := chord.Dist(p); d > best {
			apex, best = p, d
		}
	}
	return apex.Y > chord.Midpoint().Y
}
