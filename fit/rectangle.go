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

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/sketch/internal/geometry"
	"seehuhn.de/go/sketch/internal/raster"
	"seehuhn.de/go/sketch/shape"
)

// Fail codes of [RectangleFit].
const (
	RectangleFailSegments = iota
	RectangleFailNotClosed
	RectangleFailTilt
	RectangleFailFeatureArea
	RectangleFailCorners
)

// RectangleFit tests whether a stroke is a rectangle.  The orientation is
// the dominant direction of the corner segmentation; the beautified shape
// is the bounding box in that orientation.
type RectangleFit struct {
	result
	center  vec.Vec2
	width   float64
	height  float64
	angle   float64
	corners []vec.Vec2
}

func newRectangleFit(a *arena) *RectangleFit {
	f := a.feat
	th := a.th
	rf := &RectangleFit{result: newResult()}
	pts := f.Vecs()
	if rf.short(len(pts), 3) {
		return rf
	}
	seg, err := a.corners()
	if err != nil {
		rf.reject(FailNoSegmentation)
		return rf
	}
	corners, ok := cornersOf(seg)
	if !ok {
		rf.reject(FailNoSegmentation)
		return rf
	}

	rf.angle = dominantAngle(pts, corners)
	lo, hi := rotatedBounds(pts, rf.angle)
	rf.width, rf.height = hi.X-lo.X, hi.Y-lo.Y
	rf.center = geometry.Rotate(lo.Add(hi).Mul(0.5), rf.angle)
	rf.corners = []vec.Vec2{
		geometry.Rotate(lo, rf.angle),
		geometry.Rotate(vec.Vec2{X: hi.X, Y: lo.Y}, rf.angle),
		geometry.Rotate(hi, rf.angle),
		geometry.Rotate(vec.Vec2{X: lo.X, Y: hi.Y}, rf.angle),
	}

	fill := raster.FillArea(raster.Polygon(pts))
	rf.err = geometry.SafeRatioError(fill, rf.width*rf.height, th.LargeError)
	diag := math.Hypot(rf.width, rf.height)
	var cornerDist float64
	for _, c := range rf.corners {
		_, d := nearest(pts, c)
		cornerDist += d / 4
	}
	gap := perLength(geometry.Dist(pts[0], pts[len(pts)-1]), f.Length(), th.LargeError)
	m := len(corners) - 1

	rf.check(m >= th.RectangleMinSegments && m <= th.RectangleMaxSegments, RectangleFailSegments)
	rf.check(gap < th.PolygonClosedPct, RectangleFailNotClosed)
	rf.check(math.Abs(rf.angle) <= th.RectangleMaxTilt, RectangleFailTilt)
	rf.check(rf.err <= th.RectangleFeatureArea, RectangleFailFeatureArea)
	rf.check(perLength(cornerDist, diag, th.LargeError) <= th.RectangleCornerDistance, RectangleFailCorners)

	rf.shape = shape.Polygon(rf.corners)
	rf.setFloat("width", rf.width)
	rf.setFloat("height", rf.height)
	rf.setFloat("overlap", raster.Overlap(raster.Polygon(pts), rf.shape.Path))
	return rf
}

func (*RectangleFit) Kind() Kind   { return Rectangle }
func (*RectangleFit) Name() string { return Rectangle.String() }

// Size returns the side lengths of the rectangle.
func (rf *RectangleFit) Size() (width, height float64) { return rf.width, rf.height }

// Angle returns the rotation of the rectangle.
func (rf *RectangleFit) Angle() float64 { return rf.angle }

// Corners returns the corners of the beautified rectangle.
func (rf *RectangleFit) Corners() []vec.Vec2 { return slices.Clone(rf.corners) }

// dominantAngle returns the length-weighted mean direction of the pieces
// between the corners, modulo a right angle, in (-π/4, π/4].
func dominantAngle(pts []vec.Vec2, corners []int) float64 {
	var sx, sy float64
	for i := 1; i < len(corners); i++ {
		d := pts[corners[i]].Sub(pts[corners[i-1]])
		w := d.Length()
		phi := 4 * math.Atan2(d.Y, d.X)
		sx += w * math.Cos(phi)
		sy += w * math.Sin(phi)
	}
	if sx == 0 && sy == 0 {
		return 0
	}
	return math.Atan2(sy, sx) / 4
}

// rotatedBounds returns the bounding box of pts rotated by -angle.
func rotatedBounds(pts []vec.Vec2, angle float64) (lo, hi vec.Vec2) {
	lo = vec.Vec2{X: math.Inf(1), Y: math.Inf(1)}
	hi = vec.Vec2{X: math.Inf(-1), Y: math.Inf(-1)}
	for _, p := range pts {
		q := geometry.Rotate(p, -angle)
		lo = vec.Vec2{X: min(lo.X, q.X), Y: min(lo.Y, q.Y)}
		hi = vec.Vec2{X: max(hi.X, q.X), Y: max(hi.Y, q.Y)}
	}
	return lo, hi
}

// nearest returns the index of the point closest to c, and its distance.
func nearest(pts []vec.Vec2, c vec.Vec2) (int, float64) {
	best, bestD := 0, math.Inf(1)
	for i, p := range pts {
		if d := geometry.Dist(p, c); d < bestD {
			best, bestD = i, d
		}
	}
	return best, bestD
}

// Fail codes of [SquareFit].
const (
	SquareFailAspect = iota
)

// SquareFit tests whether a stroke is a square.  It is derived from the
// [RectangleFit] of the same stroke.
type SquareFit struct {
	result
	rect    *RectangleFit
	side    float64
	corners []vec.Vec2
}

func newSquareFit(a *arena) *SquareFit {
	th := a.th
	rf := a.rectangle()
	sf := &SquareFit{result: newResult(), rect: rf}
	if sf.inherit(rf) {
		return sf
	}
	if code := rf.FailCode(); code == FailNoSegmentation {
		sf.reject(code)
		return sf
	}

	short, long := min(rf.width, rf.height), max(rf.width, rf.height)
	aspect := geometry.SafeRatioError(short, long, th.LargeError)
	sf.err = rf.err
	sf.check(rf.Passed(), FailDependency)
	sf.check(aspect <= th.SquareAspect, SquareFailAspect)

	sf.side = (rf.width + rf.height) / 2
	h := sf.side / 2
	for _, d := range []vec.Vec2{{X: -h, Y: -h}, {X: h, Y: -h}, {X: h, Y: h}, {X: -h, Y: h}} {
		sf.corners = append(sf.corners, rf.center.Add(geometry.Rotate(d, rf.angle)))
	}
	sf.shape = shape.Polygon(sf.corners)
	sf.setFloat("side", sf.side)
	sf.setFloat("overlap", raster.Overlap(raster.Polygon(a.feat.Vecs()), sf.shape.Path))
	return sf
}

func (*SquareFit) Kind() Kind   { return Square }
func (*SquareFit) Name() string { return Square.String() }

// Side returns the side length of the square.
func (sf *SquareFit) Side() float64 { return sf.side }

// Corners returns the corners of the beautified square.
func (sf *SquareFit) Corners() []vec.Vec2 { return slices.Clone(sf.corners) }

// Rectangle returns the rectangle fit the square was derived from.
func (sf *SquareFit) Rectangle() *RectangleFit { return sf.rect }

// Fail codes of [DiamondFit].
const (
	DiamondFailSegments = iota
	DiamondFailNotClosed
	DiamondFailVertices
	DiamondFailBowtie
	DiamondFailFeatureArea
	DiamondFailSides
)

// DiamondFit tests whether a stroke is a diamond: a rhombus whose
// vertices lie at the midpoints of the sides of the bounding box.
type DiamondFit struct {
	result
	vertices []vec.Vec2
}

func newDiamondFit(a *arena) *DiamondFit {
	f := a.feat
	th := a.th
	df := &DiamondFit{result: newResult()}
	pts := f.Vecs()
	if df.short(len(pts), 3) {
		return df
	}
	seg, err := a.corners()
	if err != nil {
		df.reject(FailNoSegmentation)
		return df
	}

	bbox := f.BBox()
	cx, cy := (bbox.LLx+bbox.URx)/2, (bbox.LLy+bbox.URy)/2
	ideal := []vec.Vec2{
		{X: cx, Y: bbox.LLy},
		{X: bbox.URx, Y: cy},
		{X: cx, Y: bbox.URy},
		{X: bbox.LLx, Y: cy},
	}

	// order the vertices as the stroke visits them
	type visit struct {
		vertex, index int
	}
	visits := make([]visit, len(ideal))
	var vertexDist float64
	for i, v := range ideal {
		idx, d := nearest(pts, v)
		visits[i] = visit{vertex: i, index: idx}
		vertexDist += d / 4
	}
	slices.SortStableFunc(visits, func(p, q visit) int { return p.index - q.index })
	cyclic := true
	for i := range visits {
		next := visits[(i+1)%4]
		step := (next.vertex - visits[i].vertex + 4) % 4
		cyclic = cyclic && next.index != visits[i].index && (step == 1 || step == 3) &&
			step == (visits[1].vertex-visits[0].vertex+4)%4
	}
	var matched []vec.Vec2
	for _, v := range visits {
		matched = append(matched, pts[v.index])
		df.vertices = append(df.vertices, ideal[v.vertex])
	}
	_, cross1 := geometry.Line{A: matched[0], B: matched[1]}.SegmentsIntersect(geometry.Line{A: matched[2], B: matched[3]})
	_, cross2 := geometry.Line{A: matched[1], B: matched[2]}.SegmentsIntersect(geometry.Line{A: matched[3], B: matched[0]})

	w, h := bbox.URx-bbox.LLx, bbox.URy-bbox.LLy
	fill := raster.FillArea(raster.Polygon(pts))
	df.err = geometry.SafeRatioError(fill, w*h/2, th.LargeError)
	gap := perLength(geometry.Dist(pts[0], pts[len(pts)-1]), f.Length(), th.LargeError)
	m := seg.Len()

	df.check(m >= th.RectangleMinSegments && m <= th.RectangleMaxSegments, DiamondFailSegments)
	df.check(gap < th.PolygonClosedPct, DiamondFailNotClosed)
	df.check(perLength(vertexDist, math.Hypot(w, h), th.LargeError) <= th.DiamondVertexDistance, DiamondFailVertices)
	df.check(cyclic && !cross1 && !cross2, DiamondFailBowtie)
	df.check(df.err <= th.DiamondFeatureArea, DiamondFailFeatureArea)
	df.check(a.polyline().Segments() == 4, DiamondFailSides)

	df.shape = shape.Polygon(df.vertices)
	df.setFloat("overlap", raster.Overlap(raster.Polygon(pts), df.shape.Path))
	return df
}

func (*DiamondFit) Kind() Kind   { return Diamond }
func (*DiamondFit) Name() string { return Diamond.String() }

// Vertices returns the vertices of the beautified diamond, in the order
// in which the stroke visits them.
func (df *DiamondFit) Vertices() []vec.Vec2 { return slices.Clone(df.vertices) }
