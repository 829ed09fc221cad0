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

// turn is the circle fitted to one revolution of a stroke.
type turn struct {
	center vec.Vec2
	radius float64
	revs   float64 // revolutions of the sub-stroke
	err    float64 // feature area error of the circle
}

// turns fits a circle to every revolution of the stroke.
func (a *arena) turns() ([]turn, error) {
	seg, err := a.revolutions()
	if err != nil {
		return nil, err
	}
	var res []turn
	for _, sub := range seg.Substrokes {
		if len(sub) < 3 {
			continue
		}
		child := a.child(sub)
		cf := newCircleFit(child)
		if cf.FailCode() == FailTooFewPoints {
			continue
		}
		res = append(res, turn{
			center: cf.center,
			radius: cf.radius,
			revs:   child.feat.Revolutions(),
			err:    cf.err,
		})
	}
	return res, nil
}

func turnStats(turns []turn) (center vec.Vec2, rMin, rMax, rMean float64) {
	if len(turns) == 0 {
		return vec.Vec2{}, 0, 0, 0
	}
	rMin, rMax = math.Inf(1), math.Inf(-1)
	for _, t := range turns {
		center = center.Add(t.center)
		rMin, rMax = min(rMin, t.radius), max(rMax, t.radius)
		rMean += t.radius
	}
	n := float64(len(turns))
	return center.Mul(1 / n), rMin, rMax, rMean / n
}

// Fail codes of [SpiralFit].
const (
	SpiralFailNotOvertraced = iota
	SpiralFailTurns
	SpiralFailCenters
	SpiralFailRadiusOrder
	SpiralFailRadiusRatio
	SpiralFailFeatureArea
)

// SpiralFit tests whether a stroke is an Archimedean spiral: several
// turns around a common center with steadily growing or shrinking radius.
type SpiralFit struct {
	result
	center   vec.Vec2
	r0, r1   float64
	start    float64
	rotation float64
	turns    int
}

func newSpiralFit(a *arena) *SpiralFit {
	f := a.feat
	th := a.th
	sf := &SpiralFit{result: newResult()}
	pts := f.Vecs()
	if sf.short(len(pts), 3) {
		return sf
	}
	turns, err := a.turns()
	if err != nil {
		sf.reject(FailNoSegmentation)
		return sf
	}
	sf.turns = len(turns)

	center, rMin, rMax, rMean := turnStats(turns)
	if len(turns) == 0 {
		center = f.Centroid()
	}
	var drift float64
	increasing, decreasing := true, true
	for i := 1; i < len(turns); i++ {
		drift = max(drift, geometry.Dist(turns[i-1].center, turns[i].center))
		increasing = increasing && turns[i].radius > turns[i-1].radius
		decreasing = decreasing && turns[i].radius < turns[i-1].radius
	}

	sf.center = center
	sf.start = math.Atan2(pts[0].Y-center.Y, pts[0].X-center.X)
	sf.err = sf.fitRadius(pts, th.LargeError)

	sf.check(f.Overtraced(), SpiralFailNotOvertraced)
	sf.check(len(turns) >= 2, SpiralFailTurns)
	sf.check(perLength(drift, rMean, th.LargeError) <= th.SpiralCenterCloseness, SpiralFailCenters)
	sf.check(increasing || decreasing, SpiralFailRadiusOrder)
	sf.check(geometry.SafeRatioError(rMin, rMax, th.LargeError) >= th.SpiralRadiusRatio, SpiralFailRadiusRatio)
	sf.check(sf.err <= th.SpiralFeatureArea, SpiralFailFeatureArea)

	sf.shape = shape.Samples(sf.samples(), false)
	sf.setFloat("revolutions", f.Revolutions())
	return sf
}

// fitRadius fits the radius as a linear function of the angle swept
// around the center.  The error is the RMS residual per mean radius.
func (sf *SpiralFit) fitRadius(pts []vec.Vec2, large float64) float64 {
	phi := make([]float64, len(pts))
	r := make([]float64, len(pts))
	prev := sf.start
	var swept, mean float64
	for i, p := range pts {
		d := p.Sub(sf.center)
		a := math.Atan2(d.Y, d.X)
		swept += geometry.AngleDiff(prev, a)
		prev = a
		phi[i], r[i] = swept, d.Length()
		mean += r[i] / float64(len(pts))
	}
	slope, intercept, sse := geometry.LinearRegression(phi, r)
	sf.rotation = swept
	sf.r0, sf.r1 = intercept, intercept+slope*swept
	return perLength(math.Sqrt(sse/float64(len(pts))), mean, large)
}

func (*SpiralFit) Kind() Kind   { return Spiral }
func (*SpiralFit) Name() string { return Spiral.String() }

// Center returns the center of the spiral.
func (sf *SpiralFit) Center() vec.Vec2 { return sf.center }

// Radii returns the radius of the fitted spiral at the first and at the
// last point.
func (sf *SpiralFit) Radii() (float64, float64) { return sf.r0, sf.r1 }

// Turns returns the number of revolutions found by the segmentation.
func (sf *SpiralFit) Turns() int { return sf.turns }

func (sf *SpiralFit) samples() []vec.Vec2 {
	steps := max(16, int(64*math.Abs(sf.rotation)/(2*math.Pi)))
	res := make([]vec.Vec2, steps+1)
	for k := range res {
		t := float64(k) / float64(steps)
		r := sf.r0 + (sf.r1-sf.r0)*t
		phi := sf.start + sf.rotation*t
		res[k] = sf.center.Add(vec.Vec2{X: r * math.Cos(phi), Y: r * math.Sin(phi)})
	}
	return res
}

// Fail codes of [HelixFit].
const (
	HelixFailNotOvertraced = iota
	HelixFailTurns
	HelixFailCenterDrift
	HelixFailRadius
	HelixFailCenterLine
	HelixFailTurnShape
)

// HelixFit tests whether a stroke is a helix: loops of similar radius
// whose centers move along a straight line.
type HelixFit struct {
	result
	from, to vec.Vec2
	radius   float64
	start    float64
	rotation float64
	turns    int
}

func newHelixFit(a *arena) *HelixFit {
	f := a.feat
	th := a.th
	hf := &HelixFit{result: newResult()}
	pts := f.Vecs()
	if hf.short(len(pts), 3) {
		return hf
	}
	turns, err := a.turns()
	if err != nil {
		hf.reject(FailNoSegmentation)
		return hf
	}

	_, rMin, rMax, rMean := turnStats(turns)
	centers := make([]vec.Vec2, len(turns))
	for i, t := range turns {
		centers[i] = t.center
	}
	var drift, lineErr float64
	if len(turns) >= 2 {
		hf.from, hf.to = centers[0], centers[len(centers)-1]
		drift = perLength(geometry.Dist(hf.from, hf.to), rMean*float64(len(turns)-1), th.LargeError)
		_, sse := geometry.LeastSquaresLine(centers)
		lineErr = perLength(math.Sqrt(sse/float64(len(centers))), rMean, th.LargeError)
	} else {
		hf.from, hf.to = f.Centroid(), f.Centroid()
	}
	// partial turns need not look like circles
	full, round := 0, true
	for _, t := range turns {
		if t.revs >= th.ClosedMinRevs {
			full++
			round = round && t.err <= th.HelixTurnFeatureArea
		}
	}
	hf.turns = full
	hf.radius = rMean
	hf.start = math.Atan2(pts[0].Y-hf.from.Y, pts[0].X-hf.from.X)
	hf.rotation = f.Rotation()
	hf.err = lineErr

	hf.check(f.Overtraced(), HelixFailNotOvertraced)
	hf.check(full >= 2, HelixFailTurns)
	hf.check(drift >= th.HelixMinCenterDrift, HelixFailCenterDrift)
	hf.check(geometry.SafeRatioError(rMin, rMax, th.LargeError) <= th.HelixRadiusRatio, HelixFailRadius)
	hf.check(lineErr <= th.HelixCenterLineError, HelixFailCenterLine)
	hf.check(round, HelixFailTurnShape)

	hf.shape = shape.Samples(hf.samples(), false)
	hf.setFloat("revolutions", f.Revolutions())
	return hf
}

func (*HelixFit) Kind() Kind   { return Helix }
func (*HelixFit) Name() string { return Helix.String() }

// Axis returns the centers of the first and of the last loop.
func (hf *HelixFit) Axis() (vec.Vec2, vec.Vec2) { return hf.from, hf.to }

// Radius returns the mean loop radius.
func (hf *HelixFit) Radius() float64 { return hf.radius }

// Turns returns the number of full loops.
func (hf *HelixFit) Turns() int { return hf.turns }

func (hf *HelixFit) samples() []vec.Vec2 {
	steps := max(16, int(64*math.Abs(hf.rotation)/(2*math.Pi)))
	res := make([]vec.Vec2, steps+1)
	for k := range res {
		t := float64(k) / float64(steps)
		c := hf.from.Mul(1 - t).Add(hf.to.Mul(t))
		phi := hf.start + hf.rotation*t
		res[k] = c.Add(vec.Vec2{X: hf.radius * math.Cos(phi), Y: hf.radius * math.Sin(phi)})
	}
	return res
}
