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
	"strconv"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/sketch/internal/geometry"
	"seehuhn.de/go/sketch/shape"
)

// Fail codes of [WaveFit].
const (
	WaveFailClosed = iota
	WaveFailSegments
	WaveFailLengths
	WaveFailAmplitude
)

// WaveFit tests whether a stroke is a wave: a curve oscillating around
// the chord from the first to the last point with regular half periods.
type WaveFit struct {
	result
	axis      geometry.Line
	amplitude float64
	extrema   []float64 // positions of the extrema along the axis
}

func newWaveFit(a *arena) *WaveFit {
	f := a.feat
	th := a.th
	wf := &WaveFit{result: newResult()}
	pts := f.Vecs()
	if wf.short(len(pts), 3) {
		return wf
	}
	seg, err := a.waves()
	if err != nil {
		wf.reject(FailNoSegmentation)
		return wf
	}
	corners, ok := cornersOf(seg)
	if !ok {
		wf.reject(FailNoSegmentation)
		return wf
	}
	m := len(corners) - 1

	wf.axis = geometry.Line{A: pts[0], B: pts[len(pts)-1]}
	dir := geometry.Unit(wf.axis.B.Sub(wf.axis.A))
	var halfMin, halfMax float64 = math.Inf(1), math.Inf(-1)
	for i := range m {
		if m > 2 && (i == 0 || i == m-1) {
			// the outer pieces are quarter periods
			continue
		}
		l := geometry.PolylineLength(pts[corners[i] : corners[i+1]+1])
		halfMin, halfMax = min(halfMin, l), max(halfMax, l)
	}
	for _, c := range corners[1:m] {
		d := pts[c].Sub(wf.axis.A)
		wf.extrema = append(wf.extrema, d.Dot(dir))
		wf.amplitude += math.Abs(geometry.Cross(dir, d)) / float64(m-1)
	}
	wf.err = geometry.SafeRatioError(halfMin, halfMax, th.LargeError)
	sign := 1.0
	if m > 1 && geometry.Cross(dir, pts[corners[1]].Sub(wf.axis.A)) < 0 {
		sign = -1
	}

	wf.check(!f.Closed(), WaveFailClosed)
	wf.check(m >= th.WaveMinSegments, WaveFailSegments)
	wf.check(wf.err <= th.WaveLengthSimilarity, WaveFailLengths)
	wf.check(wf.amplitude >= th.WaveMinAmplitude, WaveFailAmplitude)

	wf.shape = shape.Samples(wf.samples(dir, sign), false)
	wf.setAttr("extrema", strconv.Itoa(len(wf.extrema)))
	wf.setFloat("amplitude", wf.amplitude)
	return wf
}

func (*WaveFit) Kind() Kind   { return Wave }
func (*WaveFit) Name() string { return Wave.String() }

// Amplitude returns the mean distance of the extrema from the axis.
func (wf *WaveFit) Amplitude() float64 { return wf.amplitude }

// Extrema returns the number of extrema.
func (wf *WaveFit) Extrema() int { return len(wf.extrema) }

// samples interpolates the extrema, alternating between both sides of
// the axis, with half cosine waves.
func (wf *WaveFit) samples(dir vec.Vec2, sign float64) []vec.Vec2 {
	type knot struct{ u, v float64 }
	knots := []knot{{0, 0}}
	for i, u := range wf.extrema {
		v := sign * wf.amplitude
		if i%2 == 1 {
			v = -v
		}
		knots = append(knots, knot{u, v})
	}
	knots = append(knots, knot{wf.axis.Length(), 0})

	const steps = 8
	normal := geometry.Perp(dir)
	res := []vec.Vec2{wf.axis.A}
	for k := 1; k < len(knots); k++ {
		k0, k1 := knots[k-1], knots[k]
		for j := 1; j <= steps; j++ {
			t := float64(j) / steps
			u := k0.u + (k1.u-k0.u)*t
			v := k0.v + (k1.v-k0.v)*(1-math.Cos(math.Pi*t))/2
			res = append(res, wf.axis.A.Add(dir.Mul(u)).Add(normal.Mul(v)))
		}
	}
	return res
}

// Fail codes of [GullFit].
const (
	GullFailClosed = iota
	GullFailSegments
	GullFailCusp
	GullFailOrientation
	GullFailRadius
	GullFailSmoothness
	GullFailWings
)

// GullFit tests whether a stroke is a gull: two arcs of similar radius
// bulging to the same side, meeting in a cusp.
type GullFit struct {
	result
	wings [2]*ArcFit
}

func newGullFit(a *arena) *GullFit {
	f := a.feat
	th := a.th
	gf := &GullFit{result: newResult()}
	pts := f.Vecs()
	if gf.short(len(pts), 5) {
		return gf
	}
	seg, err := a.cusp()
	if err != nil {
		gf.reject(FailNoSegmentation)
		return gf
	}
	ok := seg.Len() == 2 && len(seg.Substrokes[0]) >= 3 && len(seg.Substrokes[1]) >= 3
	gf.check(ok, GullFailSegments)
	if !ok {
		return gf
	}

	chord := geometry.Line{A: pts[0], B: pts[len(pts)-1]}
	var sides [2]float64
	var smooth [2]bool
	for i := range gf.wings {
		child := a.child(seg.Substrokes[i])
		child.cfg.Heuristics.RequireArcsPointDown = false // wings may bulge to either side
		gf.wings[i] = newArcFit(child)
		wing := child.feat.Vecs()
		apex, best := wing[0], -1.0
		for _, p := range wing {
			if d := chord.Dist(p); d > best {
				apex, best = p, d
			}
		}
		sides[i] = chord.Side(apex)
		smooth[i] = child.feat.DCR() <= th.GullMaxDCR
	}
	left, right := seg.Substrokes[0].Vecs(), seg.Substrokes[1].Vecs()
	turn := math.Abs(geometry.AngleDiff(tangentAngle(left, true), tangentAngle(right, false)))
	r0, r1 := gf.wings[0].radius, gf.wings[1].radius
	gf.err = geometry.SafeRatioError(min(r0, r1), max(r0, r1), th.LargeError)

	gf.check(!f.Closed(), GullFailClosed)
	gf.check(turn >= math.Pi/2, GullFailCusp)
	gf.check(sides[0]*sides[1] > 0, GullFailOrientation)
	gf.check(gf.err <= th.GullRadiusRatio, GullFailRadius)
	gf.check(gf.wings[0].Passed() && gf.wings[1].Passed(), GullFailWings)
	if a.cfg.Heuristics.DistinguishGullFromM {
		gf.check(smooth[0] && smooth[1], GullFailSmoothness)
	}

	gf.shape = shape.Group(
		shape.Part{Label: Arc.String(), Shape: gf.wings[0].shape},
		shape.Part{Label: Arc.String(), Shape: gf.wings[1].shape},
	)
	return gf
}

func (*GullFit) Kind() Kind   { return Gull }
func (*GullFit) Name() string { return Gull.String() }

// Wings returns the arcs fitted to the two halves of the gull.
func (gf *GullFit) Wings() [2]*ArcFit { return gf.wings }

// tangentAngle returns the direction of pts near its end (or start), over
// the last (or first) fifth of the points.
func tangentAngle(pts []vec.Vec2, atEnd bool) float64 {
	k := max(1, len(pts)/5)
	if atEnd {
		return vecAngle(pts[len(pts)-1].Sub(pts[len(pts)-1-k]))
	}
	return vecAngle(pts[k].Sub(pts[0]))
}
