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

package stroke

import (
	"math"
	"slices"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/sketch/internal/geometry"
	"seehuhn.de/go/sketch/thresholds"
)

// noiseThreshold is the magnitude below which accumulated rotations are
// treated as zero.
const noiseThreshold = 1e-7

// majorAxisHullThreshold is the number of points above which the major
// axis is searched on the convex hull only.
const majorAxisHullThreshold = 50

// DirectionFit is the least-squares line through the direction graph,
// i.e. through the points (arc length, direction).
type DirectionFit struct {
	Slope     float64 // radians per unit length
	Intercept float64
	SSE       float64 // residual sum of squares
	Error     float64 // SSE per sample
}

// CornerDistance summarizes the distances between one corner of the
// bounding box and the points of the stroke.
type CornerDistance struct {
	Min, Avg, Max, StdDev float64
}

// Features holds all signals derived from one stroke.  A Features value is
// computed once by [NewFeatures] and is read-only afterwards.
//
// The derived arrays refer to the cleaned points returned by
// [Features.Points]: Directions, SegmentLengths and Speeds have one entry
// per segment, CumulativeLength, Curvature and TotalCurvature have one
// entry per point.
type Features struct {
	orig   Stroke
	pts    Stroke
	vecs   []vec.Vec2
	smooth bool
	hooks  bool

	dir       []float64
	segLen    []float64
	cum       []float64
	speed     []float64
	curv      []float64
	totalCurv []float64

	length    float64
	bbox      rect.Rect
	centroid  vec.Vec2
	rotation  float64
	revs      float64
	overtrace bool
	closed    bool
	endRatio  float64
	ndde      float64
	dcr       float64

	bestFit    geometry.Line
	bestFitSSE float64
	dirFit     DirectionFit

	dirWindowPassed   bool
	dirWindowFraction float64

	majorAxis geometry.Line
	corners   [4]CornerDistance
}

// NewFeatures computes the features of s.  If smooth is set, the
// direction graph is median filtered.  A nil th selects
// [thresholds.Default].
//
// Strokes with fewer than two points are accepted; in this case all
// array-valued signals are empty and the scalar signals are zero.
func NewFeatures(s Stroke, smooth bool, th *thresholds.Thresholds) *Features {
	if th == nil {
		th = thresholds.Default()
	}
	f := &Features{
		orig:   append(Stroke(nil), s...),
		pts:    clean(s),
		smooth: smooth,
	}
	f.derive()
	if f.removeHooks(th) {
		f.hooks = true
		f.derive()
	}
	f.summarize(th)
	return f
}

// derive computes the per-point and per-segment arrays.
func (f *Features) derive() {
	n := len(f.pts)
	f.vecs = f.pts.Vecs()
	f.cum = make([]float64, n)
	f.curv = make([]float64, n)
	f.totalCurv = make([]float64, n)
	if n < 2 {
		f.dir, f.segLen, f.speed = nil, nil, nil
		f.length = 0
		return
	}

	f.dir = make([]float64, n-1)
	f.segLen = make([]float64, n-1)
	f.speed = make([]float64, n-1)
	for i := 0; i < n-1; i++ {
		d := f.vecs[i+1].Sub(f.vecs[i])
		f.segLen[i] = d.Length()
		f.cum[i+1] = f.cum[i] + f.segLen[i]
		if dt := f.pts[i+1].T - f.pts[i].T; dt > 0 {
			f.speed[i] = f.segLen[i] / dt
		}
		theta := math.Atan2(d.Y, d.X)
		if i > 0 {
			// keep the direction graph continuous
			theta = f.dir[i-1] + geometry.AngleDiff(f.dir[i-1], theta)
		}
		f.dir[i] = theta
	}
	f.length = f.cum[n-1]

	if f.smooth {
		f.dir = medianFilter(f.dir)
	}

	for i := 1; i < n-1; i++ {
		ds := (f.segLen[i-1] + f.segLen[i]) / 2
		if ds > 0 {
			f.curv[i] = math.Abs(f.dir[i]-f.dir[i-1]) / ds
		}
		f.totalCurv[i] = f.totalCurv[i-1] + f.curv[i]
	}
	if n > 1 {
		f.totalCurv[n-1] = f.totalCurv[n-2]
	}
}

// removeHooks cuts off sharp direction changes near the end points.  It
// reports whether any points were removed.
func (f *Features) removeHooks(th *thresholds.Thresholds) bool {
	n := len(f.pts)
	if n < th.HookMinPoints || n < 3 {
		return false
	}
	window := min(th.HookMaxLength, th.HookMaxPct*f.length)

	start := 0
	var acc, best float64
	cut := 0
	for i := 1; i < n-1 && f.cum[i] <= window; i++ {
		d := math.Abs(f.dir[i] - f.dir[i-1])
		acc += d
		if d > best {
			best, cut = d, i
		}
	}
	if acc > th.HookMinCurvature {
		start = cut
	}

	end := n - 1
	acc, best, cut = 0, 0, n-1
	for i := n - 2; i > 0 && f.length-f.cum[i] <= window; i-- {
		d := math.Abs(f.dir[i] - f.dir[i-1])
		acc += d
		if d > best {
			best, cut = d, i
		}
	}
	if acc > th.HookMinCurvature {
		end = cut
	}

	if start == 0 && end == n-1 {
		return false
	}
	if end-start+1 < max(3, n/2) {
		return false
	}
	f.pts = f.pts[start : end+1]
	return true
}

// summarize computes the whole-stroke summaries.
func (f *Features) summarize(th *thresholds.Thresholds) {
	n := len(f.vecs)
	if n == 0 {
		f.dirWindowPassed = true
		f.dirWindowFraction = 1
		return
	}

	f.centroid = geometry.Centroid(f.vecs)
	f.bbox = rect.Rect{LLx: f.vecs[0].X, LLy: f.vecs[0].Y, URx: f.vecs[0].X, URy: f.vecs[0].Y}
	for _, p := range f.vecs[1:] {
		f.bbox.LLx = min(f.bbox.LLx, p.X)
		f.bbox.LLy = min(f.bbox.LLy, p.Y)
		f.bbox.URx = max(f.bbox.URx, p.X)
		f.bbox.URy = max(f.bbox.URy, p.Y)
	}

	f.rotation = geometry.TotalTurning(f.vecs)
	if math.Abs(f.rotation) < noiseThreshold {
		f.rotation = 0
	}
	f.revs = math.Abs(f.rotation) / (2 * math.Pi)
	if f.revs < noiseThreshold {
		f.revs = 0
	}
	f.overtrace = f.revs > th.OvertracedRevs

	if f.length > 0 {
		f.endRatio = geometry.Dist(f.vecs[0], f.vecs[n-1]) / f.length
	}
	f.closed = n >= 3 && f.length > 0 &&
		f.endRatio < th.ClosedDistancePct && f.revs > th.ClosedMinRevs

	f.ndde = f.computeNDDE()
	f.dcr = f.computeDCR(th.DCRTrimPct)

	f.bestFit, f.bestFitSSE = geometry.LeastSquaresLine(f.vecs)
	if len(f.dir) > 0 {
		xs := make([]float64, len(f.dir))
		for i := range f.dir {
			xs[i] = (f.cum[i] + f.cum[i+1]) / 2
		}
		slope, icept, sse := geometry.LinearRegression(xs, f.dir)
		f.dirFit = DirectionFit{Slope: slope, Intercept: icept, SSE: sse, Error: sse / float64(len(f.dir))}
	}

	f.dirWindowFraction = directionWindows(f.dir, th.DirWindowSize)
	f.dirWindowPassed = f.dirWindowFraction >= th.DirWindowMinPass

	f.majorAxis = majorAxis(f.vecs)
	f.corners = cornerDistances(f.bbox, f.vecs)
}

func (f *Features) computeNDDE() float64 {
	if len(f.dir) == 0 || f.length == 0 {
		return 0
	}
	iMax, iMin := 0, 0
	for i, d := range f.dir {
		if d > f.dir[iMax] {
			iMax = i
		}
		if d < f.dir[iMin] {
			iMin = i
		}
	}
	sMax := (f.cum[iMax] + f.cum[iMax+1]) / 2
	sMin := (f.cum[iMin] + f.cum[iMin+1]) / 2
	return math.Abs(sMax-sMin) / f.length
}

func (f *Features) computeDCR(trimPct float64) float64 {
	k := int(trimPct * float64(len(f.dir)))
	dir := f.dir[k : len(f.dir)-k]
	if len(dir) < 2 {
		return 0
	}
	var maxDelta, sum float64
	for i := 1; i < len(dir); i++ {
		d := math.Abs(dir[i] - dir[i-1])
		maxDelta = max(maxDelta, d)
		sum += d
	}
	mean := sum / float64(len(dir)-1)
	if mean == 0 {
		return 0
	}
	return maxDelta / mean
}

// directionWindows averages the direction graph over windows of the given
// size and returns the fraction of consecutive window averages which
// follow the dominant (non-decreasing or non-increasing) trend.
func directionWindows(dir []float64, size int) float64 {
	size = max(size, 1)
	nw := len(dir) / size
	if nw < 2 {
		return 1
	}
	avg := make([]float64, nw)
	for w := range nw {
		var s float64
		for _, d := range dir[w*size : (w+1)*size] {
			s += d
		}
		avg[w] = s / float64(size)
	}
	var inc, dec int
	for w := 1; w < nw; w++ {
		if avg[w] >= avg[w-1] {
			inc++
		}
		if avg[w] <= avg[w-1] {
			dec++
		}
	}
	return float64(max(inc, dec)) / float64(nw-1)
}

// majorAxis returns the segment between the two points farthest apart.
func majorAxis(pts []vec.Vec2) geometry.Line {
	cand := pts
	if len(pts) > majorAxisHullThreshold {
		cand = geometry.ConvexHull(pts)
	}
	var best geometry.Line
	bestD := -1.0
	for i := range cand {
		for j := i + 1; j < len(cand); j++ {
			d := cand[j].Sub(cand[i])
			if l := d.Dot(d); l > bestD {
				bestD = l
				best = geometry.Line{A: cand[i], B: cand[j]}
			}
		}
	}
	if bestD < 0 {
		return geometry.Line{A: pts[0], B: pts[0]}
	}
	return best
}

func cornerDistances(bbox rect.Rect, pts []vec.Vec2) [4]CornerDistance {
	corners := [4]vec.Vec2{
		{X: bbox.LLx, Y: bbox.LLy},
		{X: bbox.URx, Y: bbox.LLy},
		{X: bbox.URx, Y: bbox.URy},
		{X: bbox.LLx, Y: bbox.URy},
	}
	var res [4]CornerDistance
	for k, c := range corners {
		cd := CornerDistance{Min: math.Inf(1)}
		var sum, sum2 float64
		for _, p := range pts {
			d := geometry.Dist(c, p)
			cd.Min = min(cd.Min, d)
			cd.Max = max(cd.Max, d)
			sum += d
			sum2 += d * d
		}
		n := float64(len(pts))
		cd.Avg = sum / n
		cd.StdDev = math.Sqrt(max(0, sum2/n-cd.Avg*cd.Avg))
		res[k] = cd
	}
	return res
}

// medianFilter applies a 3-tap median filter, keeping the end values.
func medianFilter(xs []float64) []float64 {
	if len(xs) < 3 {
		return xs
	}
	res := make([]float64, len(xs))
	res[0], res[len(xs)-1] = xs[0], xs[len(xs)-1]
	var w [3]float64
	for i := 1; i < len(xs)-1; i++ {
		copy(w[:], xs[i-1:i+2])
		slices.Sort(w[:])
		res[i] = w[1]
	}
	return res
}

// Orig returns the stroke as it was passed to [NewFeatures].
func (f *Features) Orig() Stroke { return f.orig }

// Points returns the cleaned points after hook removal.
func (f *Features) Points() Stroke { return f.pts }

// Vecs returns the positions of [Features.Points].
func (f *Features) Vecs() []vec.Vec2 { return f.vecs }

// Len returns the number of cleaned points.
func (f *Features) Len() int { return len(f.pts) }

// Directions returns the continuous (unwrapped) direction of every
// segment, in radians.
func (f *Features) Directions() []float64 { return f.dir }

// Curvature returns the unsigned curvature at every point.  The end
// points have curvature zero.
func (f *Features) Curvature() []float64 { return f.curv }

// TotalCurvature returns the running sum of [Features.Curvature].
func (f *Features) TotalCurvature() []float64 { return f.totalCurv }

// SegmentLengths returns the length of every segment.
func (f *Features) SegmentLengths() []float64 { return f.segLen }

// CumulativeLength returns the arc length from the first point to every
// point.
func (f *Features) CumulativeLength() []float64 { return f.cum }

// Speeds returns the pen speed along every segment, in length units per
// millisecond.
func (f *Features) Speeds() []float64 { return f.speed }

// Length returns the arc length of the stroke.
func (f *Features) Length() float64 { return f.length }

// BBox returns the bounding box of the cleaned points.
func (f *Features) BBox() rect.Rect { return f.bbox }

// Diagonal returns the length of the bounding box diagonal.
func (f *Features) Diagonal() float64 {
	return math.Hypot(f.bbox.URx-f.bbox.LLx, f.bbox.URy-f.bbox.LLy)
}

// Rotation returns the signed sum of all turning angles.
func (f *Features) Rotation() float64 { return f.rotation }

// Revolutions returns |Rotation|/2π.
func (f *Features) Revolutions() float64 { return f.revs }

// Overtraced reports whether the stroke revolves noticeably more than once.
func (f *Features) Overtraced() bool { return f.overtrace }

// Closed reports whether the stroke ends close to where it started after
// most of a revolution.
func (f *Features) Closed() bool { return f.closed }

// EndpointRatio returns the distance between the end points divided by the
// stroke length.
func (f *Features) EndpointRatio() float64 { return f.endRatio }

// NDDE returns the normalized distance between the direction extremes.
func (f *Features) NDDE() float64 { return f.ndde }

// DCR returns the direction change ratio.
func (f *Features) DCR() float64 { return f.dcr }

// BestFitLine returns the least-squares line through the points.
func (f *Features) BestFitLine() geometry.Line { return f.bestFit }

// BestFitLSE returns the squared orthogonal error of [Features.BestFitLine].
func (f *Features) BestFitLSE() float64 { return f.bestFitSSE }

// DirectionFit returns the least-squares line through the direction graph.
func (f *Features) DirectionFit() DirectionFit { return f.dirFit }

// DirWindowPassed reports whether the windowed direction averages are
// monotone for enough window steps.
func (f *Features) DirWindowPassed() bool { return f.dirWindowPassed }

// DirWindowFraction returns the fraction of monotone window steps.
func (f *Features) DirWindowFraction() float64 { return f.dirWindowFraction }

// MajorAxis returns the segment between the two points farthest apart.
func (f *Features) MajorAxis() geometry.Line { return f.majorAxis }

// MajorAxisLength returns the length of [Features.MajorAxis].
func (f *Features) MajorAxisLength() float64 { return f.majorAxis.Length() }

// MajorAxisAngle returns the direction of [Features.MajorAxis].
func (f *Features) MajorAxisAngle() float64 { return f.majorAxis.Angle() }

// CornerDistances returns the distance statistics for the bounding box
// corners, in the order (LLx,LLy), (URx,LLy), (URx,URy), (LLx,URy).
func (f *Features) CornerDistances() [4]CornerDistance { return f.corners }

// Centroid returns the mean of the cleaned points.
func (f *Features) Centroid() vec.Vec2 { return f.centroid }

// HooksRemoved reports whether hook removal shortened the stroke.
func (f *Features) HooksRemoved() bool { return f.hooks }

// Smoothed reports whether the direction graph was median filtered.
func (f *Features) Smoothed() bool { return f.smooth }
