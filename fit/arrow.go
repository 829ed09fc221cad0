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

// Fail codes of [ArrowFit].
const (
	ArrowFailSegments = iota
	ArrowFailShaft
	ArrowFailHeadCloseness
	ArrowFailHeadSimilarity
	ArrowFailHeadSize
	ArrowFailSides
	ArrowFailShaftAngle
	ArrowFailIntersection
)

// ArrowFit tests whether a stroke is an arrow drawn in one go: the shaft
// from tail to tip, followed by a head.  An open head goes out to one
// barb, back to the tip and out to the other barb; a triangular head goes
// to one barb, across to the other and back to the tip.
type ArrowFit struct {
	result
	tail, tip vec.Vec2
	barbs     [2]vec.Vec2
	triangle  bool
}

func newArrowFit(a *arena) *ArrowFit {
	f := a.feat
	th := a.th
	af := &ArrowFit{result: newResult()}
	pts := f.Vecs()
	if af.short(len(pts), 3) {
		return af
	}
	seg, err := a.corners()
	if err != nil {
		af.reject(FailNoSegmentation)
		return af
	}
	corners, ok := cornersOf(seg)
	if !ok {
		af.reject(FailNoSegmentation)
		return af
	}
	m := len(corners) - 1
	af.check(m == 4, ArrowFailSegments)
	if m < 4 {
		// not enough pieces to locate a head
		return af
	}

	var lse float64
	tests := make([]lineTest, m)
	for i := range tests {
		tests[i] = testLine(pts[corners[i]:corners[i+1]+1], th)
		lse += tests[i].lse / float64(m)
	}
	af.err = lse

	af.tail = pts[0]
	af.tip = pts[corners[1]]
	b1 := pts[corners[2]]
	p3 := pts[corners[3]]
	end := pts[corners[m]]
	af.triangle = geometry.Dist(end, af.tip) < geometry.Dist(p3, af.tip)
	closing := p3
	b2 := end
	if af.triangle {
		closing, b2 = end, p3
	}
	af.barbs = [2]vec.Vec2{b1, b2}

	shaft := geometry.Line{A: af.tail, B: af.tip}
	l1, l2 := geometry.Dist(b1, af.tip), geometry.Dist(b2, af.tip)
	head := (l1 + l2) / 2
	back := af.tail.Sub(af.tip)
	angle1 := math.Abs(geometry.AngleDiff(vecAngle(back), vecAngle(b1.Sub(af.tip))))
	angle2 := math.Abs(geometry.AngleDiff(vecAngle(back), vecAngle(b2.Sub(af.tip))))
	_, crosses := geometry.Line{A: b1, B: b2}.SegmentsIntersect(shaft)

	af.check(tests[0].passes(th), ArrowFailShaft)
	af.check(perLength(geometry.Dist(closing, af.tip), head, th.LargeError) <= th.ArrowHeadCloseness, ArrowFailHeadCloseness)
	af.check(geometry.SafeRatioError(min(l1, l2), max(l1, l2), th.LargeError) <= th.ArrowHeadSimilarity, ArrowFailHeadSimilarity)
	af.check(perLength(head, shaft.Length(), th.LargeError) <= th.ArrowHeadShaftRatio, ArrowFailHeadSize)
	af.check(shaft.Side(b1)*shaft.Side(b2) < 0, ArrowFailSides)
	af.check(angle1 < math.Pi/2 && angle2 < math.Pi/2 && math.Abs(angle1-angle2) <= th.ArrowShaftAngle, ArrowFailShaftAngle)
	af.check(crosses, ArrowFailIntersection)

	headPart := shape.Part{Label: Polyline.String(), Shape: shape.Polyline([]vec.Vec2{b1, af.tip, b2})}
	kind := "open"
	if af.triangle {
		headPart = shape.Part{Label: Polygon.String(), Shape: shape.Polygon([]vec.Vec2{af.tip, b1, b2})}
		kind = "triangle"
	}
	af.shape = shape.Group(shape.Part{Label: Line.String(), Shape: shape.Line(af.tail, af.tip)}, headPart)
	af.setAttr("head", kind)
	return af
}

func (*ArrowFit) Kind() Kind   { return Arrow }
func (*ArrowFit) Name() string { return Arrow.String() }

// Shaft returns the tail and the tip of the arrow.
func (af *ArrowFit) Shaft() (tail, tip vec.Vec2) { return af.tail, af.tip }

// Barbs returns the outer points of the arrow head.
func (af *ArrowFit) Barbs() [2]vec.Vec2 { return af.barbs }

// Triangle reports whether the arrow head is a closed triangle.
func (af *ArrowFit) Triangle() bool { return af.triangle }

func vecAngle(v vec.Vec2) float64 {
	return math.Atan2(v.Y, v.X)
}
