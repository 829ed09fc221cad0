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
	"slices"
	"strconv"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/sketch/internal/geometry"
	"seehuhn.de/go/sketch/internal/raster"
	"seehuhn.de/go/sketch/segment"
	"seehuhn.de/go/sketch/shape"
	"seehuhn.de/go/sketch/stroke"
	"seehuhn.de/go/sketch/thresholds"
)

// Fail codes of [PolylineFit].
const (
	PolylineFailSegments = iota
	PolylineFailLineFailures
	PolylineFailLSE
	PolylineFailShortSegment
)

// PolylineFit tests whether a stroke is a sequence of straight lines.
// The corner segmentation of the stroke is refined by the polyline
// combination heuristics before every piece is tested against a line.
type PolylineFit struct {
	result
	subs     []stroke.Stroke
	tests    []lineTest
	vertices []vec.Vec2
}

func newPolylineFit(a *arena) *PolylineFit {
	f := a.feat
	th := a.th
	pf := &PolylineFit{result: newResult()}
	if f.Len() < 2 {
		pf.reject(FailTooFewPoints)
		return pf
	}
	seg, err := a.corners()
	if err != nil {
		pf.reject(FailNoSegmentation)
		return pf
	}
	corners, ok := cornersOf(seg)
	if !ok {
		pf.reject(FailNoSegmentation)
		return pf
	}

	pts := f.Vecs()
	corners = combine(pts, corners, a.cfg.Heuristics, th)
	for i := 1; i < len(corners); i++ {
		pf.subs = append(pf.subs, f.Points().Sub(corners[i-1], corners[i]+1))
		pf.tests = append(pf.tests, testLine(pts[corners[i-1]:corners[i]+1], th))
	}

	var failures int
	var sse float64
	shortest := math.Inf(1)
	for _, lt := range pf.tests {
		if !lt.passes(th) {
			failures++
		}
		sse += lt.lse * lt.length
		shortest = min(shortest, lt.length)
	}
	m := len(pf.tests)
	pf.err = perLength(sse, f.Length(), th.LargeError)

	pf.check(m <= th.PolylineMaxSegments, PolylineFailSegments)
	pf.check(float64(failures) <= th.PolylineLineFailuresPct*float64(m), PolylineFailLineFailures)
	pf.check(pf.err <= th.PolylineLSError, PolylineFailLSE)
	pf.check(m == 1 || shortest >= th.PolylineMinSegmentLength, PolylineFailShortSegment)

	pf.vertices = vertices(pts, corners, pf.tests)
	pf.shape = shape.Polyline(pf.vertices)
	pf.setAttr("segments", strconv.Itoa(m))
	return pf
}

func (*PolylineFit) Kind() Kind   { return Polyline }
func (*PolylineFit) Name() string { return Polyline.String() }

// Segments returns the number of straight pieces.
func (pf *PolylineFit) Segments() int { return len(pf.tests) }

// Vertices returns the corners of the beautified polyline, including both
// end points.
func (pf *PolylineFit) Vertices() []vec.Vec2 { return slices.Clone(pf.vertices) }

// Substrokes returns the pieces of the stroke after combination.
func (pf *PolylineFit) Substrokes() []stroke.Stroke { return slices.Clone(pf.subs) }

// cornersOf returns the corner indices of seg.  Segmentations without
// corner indices are reconstructed from the sub-stroke lengths.  Pieces
// may share their end points, or follow each other without overlap; in
// the latter case the last point of a piece is its corner.
func cornersOf(seg segment.Segmentation) ([]int, bool) {
	if len(seg.Corners) == seg.Len()+1 {
		return slices.Clone(seg.Corners), true
	}
	subs := seg.Substrokes
	corners := []int{0}
	start := 0 // index of the first point of the current piece
	for i, sub := range subs {
		if len(sub) == 0 {
			return nil, false
		}
		end := start + len(sub) - 1
		if end <= corners[len(corners)-1] {
			return nil, false
		}
		corners = append(corners, end)
		start = end + 1
		if i+1 < len(subs) && len(subs[i+1]) > 0 && subs[i+1][0] == sub[len(sub)-1] {
			start = end
		}
	}
	return corners, true
}

// combine applies the enabled combination heuristics to the corners of
// a polyline.
func combine(pts []vec.Vec2, corners []int, h Heuristics, th *thresholds.Thresholds) []int {
	piece := func(i int) []vec.Vec2 { return pts[corners[i] : corners[i+1]+1] }
	chord := func(i int) geometry.Line {
		p := piece(i)
		return geometry.Line{A: p[0], B: p[len(p)-1]}
	}
	// merge removes the corner between piece i and piece i+1.
	merge := func(i int) {
		corners = slices.Delete(corners, i+1, i+2)
	}
	pairwise := func(join func(i int) bool) {
		for i := 0; i+1 < len(corners)-1; {
			if join(i) {
				merge(i)
				continue
			}
			i++
		}
	}

	if h.CombineOvertracedLineSegments {
		pairwise(func(i int) bool {
			d := geometry.AngleDiff(chord(i).Angle(), chord(i+1).Angle())
			return math.Abs(d) > math.Pi-th.PolylineOvertracedAngle
		})
	}
	if h.CombineSmallPolylineSegments {
		total := geometry.PolylineLength(pts)
		for len(corners) > 2 {
			short, shortLen := -1, th.PolylineSmallSegmentPct*total
			for i := range len(corners) - 1 {
				if l := geometry.PolylineLength(piece(i)); l < shortLen {
					short, shortLen = i, l
				}
			}
			if short < 0 {
				break
			}
			last := len(corners) - 2
			switch {
			case short == 0:
				merge(0)
			case short == last:
				merge(last - 1)
			case geometry.PolylineLength(piece(short-1)) < geometry.PolylineLength(piece(short+1)):
				merge(short - 1)
			default:
				merge(short)
			}
		}
	}
	if h.CombineSimilarSlopeSegments {
		pairwise(func(i int) bool {
			d := geometry.AngleDiff(chord(i).Angle(), chord(i+1).Angle())
			return math.Abs(d) < th.PolylineSimilarSlope
		})
	}
	if h.CombineSegmentsThatPassLineTest {
		pairwise(func(i int) bool {
			union := pts[corners[i] : corners[i+2]+1]
			return testLine(union, th).passes(th)
		})
	}
	return corners
}

// vertices returns the corners of the beautified polyline.  Inner
// vertices are the intersections of adjacent fitted lines, unless the
// lines meet far from the stroke corner.
func vertices(pts []vec.Vec2, corners []int, tests []lineTest) []vec.Vec2 {
	m := len(tests)
	res := make([]vec.Vec2, m+1)
	res[0] = tests[0].line.A
	res[m] = tests[m-1].line.B
	for k := 1; k < m; k++ {
		corner := pts[corners[k]]
		res[k] = corner
		p, ok := tests[k-1].line.Intersect(tests[k].line)
		limit := min(tests[k-1].length, tests[k].length) / 2
		if ok && geometry.Dist(p, corner) <= limit {
			res[k] = p
		}
	}
	return res
}

// Fail codes of [PolygonFit].
const (
	PolygonFailNotClosed = iota
	PolygonFailSides
)

// PolygonFit tests whether a stroke is a closed polygon.  It is derived
// from the [PolylineFit] of the same stroke.
type PolygonFit struct {
	result
	polyline *PolylineFit
	vertices []vec.Vec2
}

func newPolygonFit(a *arena) *PolygonFit {
	f := a.feat
	th := a.th
	pl := a.polyline()
	pf := &PolygonFit{result: newResult(), polyline: pl}
	if code := pl.FailCode(); code == FailTooFewPoints || code == FailNoSegmentation {
		pf.reject(code)
		return pf
	}

	pts := f.Vecs()
	gap := perLength(geometry.Dist(pts[0], pts[len(pts)-1]), f.Length(), th.LargeError)
	sides := pl.Segments()
	pf.err = pl.err

	pf.check(pl.Passed(), FailDependency)
	pf.check(gap < th.PolygonClosedPct, PolygonFailNotClosed)
	pf.check(sides >= th.PolygonMinSides && sides <= th.PolygonMaxSides, PolygonFailSides)

	pf.vertices = slices.Clone(pl.vertices[:sides])
	first, last := pl.tests[0].line, pl.tests[sides-1].line
	if p, ok := last.Intersect(first); ok && geometry.Dist(p, pts[0]) <= min(first.Length(), last.Length())/2 {
		pf.vertices[0] = p
	} else {
		pf.vertices[0] = pl.vertices[0].Add(pl.vertices[sides]).Mul(0.5)
	}
	pf.shape = shape.Polygon(pf.vertices)
	pf.setAttr("sides", strconv.Itoa(sides))
	pf.setFloat("overlap", raster.Overlap(raster.Polygon(pts), pf.shape.Path))
	return pf
}

func (*PolygonFit) Kind() Kind   { return Polygon }
func (*PolygonFit) Name() string { return Polygon.String() }

// Sides returns the number of sides.
func (pf *PolygonFit) Sides() int { return len(pf.vertices) }

// Vertices returns the corners of the beautified polygon.
func (pf *PolygonFit) Vertices() []vec.Vec2 { return slices.Clone(pf.vertices) }

// Polyline returns the polyline fit the polygon was derived from.
func (pf *PolygonFit) Polyline() *PolylineFit { return pf.polyline }
