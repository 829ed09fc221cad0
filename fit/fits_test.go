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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/sketch/segment"
	"seehuhn.de/go/sketch/stroke"
	"seehuhn.de/go/sketch/thresholds"
)

func testArena(s stroke.Stroke, cfg Config) *arena {
	th := thresholds.Default()
	return &arena{
		feat: stroke.NewFeatures(s, false, th),
		th:   th,
		cfg:  cfg,
		seg:  Segmenters{}.withDefaults(),
		log:  NopLogger(),
	}
}

// arcStroke samples the arc of radius r around (200, 200) between the
// angles from and to, inclusive.
func arcStroke(n int, r, from, to float64) stroke.Stroke {
	pts := make([]vec.Vec2, n)
	for i := range pts {
		phi := from + (to-from)*float64(i)/float64(n-1)
		pts[i] = vec.Vec2{X: 200 + r*math.Cos(phi), Y: 200 + r*math.Sin(phi)}
	}
	return stroke.FromVecs(pts, 10)
}

func polyStroke(step float64, vertices ...vec.Vec2) stroke.Stroke {
	var pts []vec.Vec2
	for i := 1; i < len(vertices); i++ {
		a, b := vertices[i-1], vertices[i]
		n := max(1, int(math.Ceil(b.Sub(a).Length()/step)))
		for k := range n {
			t := float64(k) / float64(n)
			pts = append(pts, a.Mul(1-t).Add(b.Mul(t)))
		}
	}
	pts = append(pts, vertices[len(vertices)-1])
	return stroke.FromVecs(pts, 10)
}

func TestArcFit_HalfCircle(t *testing.T) {
	af := newArcFit(testArena(arcStroke(41, 50, 0, math.Pi), DefaultConfig()))
	require.True(t, af.Passed(), "fail code %d", af.FailCode())
	assert.InDelta(t, 200, af.Center().X, 1e-6)
	assert.InDelta(t, 200, af.Center().Y, 1e-6)
	assert.InDelta(t, 50, af.Radius(), 1e-6)
	assert.InDelta(t, math.Pi, math.Abs(af.Sweep()), 1e-6)
	assert.Less(t, af.ErrorScore(), 0.01)
	assert.NotContains(t, af.Attributes(), "center")
}

func TestArcFit_PointsDown(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Heuristics.RequireArcsPointDown = true

	down := newArcFit(testArena(arcStroke(41, 50, 0, math.Pi), cfg))
	assert.True(t, down.Passed())

	up := newArcFit(testArena(arcStroke(41, 50, 0, -math.Pi), cfg))
	assert.False(t, up.Passed())
	assert.Equal(t, ArcFailPointsDown, up.FailCode())
}

func TestArcFit_TooFewPoints(t *testing.T) {
	af := newArcFit(testArena(stroke.Stroke{{X: 0, Y: 0}, {X: 1, Y: 1, T: 1}}, DefaultConfig()))
	assert.True(t, af.Passed())
	assert.True(t, af.Trivial())
	assert.Zero(t, af.ErrorScore())

	af = newArcFit(testArena(stroke.Stroke{{X: 0, Y: 0}}, DefaultConfig()))
	assert.False(t, af.Passed())
	assert.False(t, af.Trivial())
	assert.Equal(t, FailTooFewPoints, af.FailCode())

	af = newArcFit(testArena(arcStroke(41, 50, 0, math.Pi), DefaultConfig()))
	assert.False(t, af.Trivial())
}

func TestCircleFit_InheritsTrivial(t *testing.T) {
	a := testArena(stroke.Stroke{{X: 0, Y: 0}, {X: 10, Y: 0, T: 1}}, DefaultConfig())
	cf := newCircleFit(a)
	assert.True(t, cf.Passed())
	assert.True(t, cf.Trivial())
	assert.Zero(t, cf.ErrorScore())

	sf := newSquareFit(a)
	assert.True(t, sf.Passed())
	assert.True(t, sf.Trivial())
}

func TestDotFit_SinglePoint(t *testing.T) {
	df := newDotFit(testArena(stroke.Stroke{{X: 5, Y: 5}}, DefaultConfig()))
	require.True(t, df.Passed())
	assert.Equal(t, 1.0, df.Density())
	assert.Equal(t, thresholds.Default().PenWidth/2, df.Radius())
}

func TestPolylineFit_LShape(t *testing.T) {
	s := polyStroke(5, vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 100, Y: 0}, vec.Vec2{X: 100, Y: 100})
	pf := newPolylineFit(testArena(s, DefaultConfig()))
	require.True(t, pf.Passed(), "fail code %d", pf.FailCode())
	require.Equal(t, 2, pf.Segments())
	vs := pf.Vertices()
	require.Len(t, vs, 3)
	assert.InDelta(t, 100, vs[1].X, 1e-6)
	assert.InDelta(t, 0, vs[1].Y, 1e-6)
	assert.Len(t, pf.Substrokes(), 2)
	assert.Equal(t, "2", pf.Attributes()["segments"])
}

func TestCombine(t *testing.T) {
	th := thresholds.Default()
	line := lineStroke(31, vec.Vec2{}, vec.Vec2{X: 150}).Vecs()

	h := Heuristics{CombineSegmentsThatPassLineTest: true}
	assert.Equal(t, []int{0, 30}, combine(line, []int{0, 10, 20, 30}, h, th))

	h = Heuristics{CombineSimilarSlopeSegments: true}
	assert.Equal(t, []int{0, 30}, combine(line, []int{0, 10, 20, 30}, h, th))

	h = Heuristics{CombineSmallPolylineSegments: true}
	assert.Equal(t, []int{0, 15, 30}, combine(line, []int{0, 1, 15, 30}, h, th))

	assert.Equal(t, []int{0, 10, 20, 30}, combine(line, []int{0, 10, 20, 30}, Heuristics{}, th))

	back := polyStroke(5, vec.Vec2{}, vec.Vec2{X: 100}, vec.Vec2{X: 5}).Vecs()
	h = Heuristics{CombineOvertracedLineSegments: true}
	assert.Equal(t, []int{0, len(back) - 1}, combine(back, []int{0, 20, len(back) - 1}, h, th))
}

func TestConfig(t *testing.T) {
	cfg := DefaultConfig()
	for _, k := range Kinds() {
		assert.True(t, cfg.Enabled(k), "%s", k)
	}
	assert.True(t, cfg.Heuristics.CombineSmallPolylineSegments)
	assert.False(t, cfg.Heuristics.DetectSmallVShapes)

	cfg = OnlyConfig(Circle, Arc)
	assert.True(t, cfg.Enabled(Circle))
	assert.True(t, cfg.Enabled(Arc))
	assert.False(t, cfg.Enabled(Ellipse))
	cfg.Set(Ellipse, true)
	assert.True(t, cfg.Enabled(Ellipse))
	assert.True(t, cfg.Heuristics.CombineSimilarSlopeSegments)
}

func TestKind(t *testing.T) {
	for _, k := range Kinds() {
		got, ok := ParseKind(k.String())
		assert.True(t, ok)
		assert.Equal(t, k, got)
	}
	_, ok := ParseKind("Hexagon")
	assert.False(t, ok)
	assert.Len(t, Kinds(), 20)
}

func TestComplexFit_RecognizesEachPieceOnce(t *testing.T) {
	type piece struct {
		first, last stroke.Point
		n           int
	}
	for _, name := range []string{"line_then_arc", "staircase", "retrace"} {
		r := &Recognizer{}
		seen := make(map[piece]int)
		a := testArena(caseStroke(t, name), DefaultConfig())
		a.sub = func(s stroke.Stroke) ([]Interpretation, error) {
			seen[piece{s[0], s[len(s)-1], len(s)}]++
			return r.Recognize(s)
		}
		cf := newComplexFit(a)
		require.NotEmpty(t, seen, name)
		for p, n := range seen {
			assert.Equal(t, 1, n, "%s: piece of %d points", name, p.n)
		}
		assert.NotEmpty(t, cf.Parts(), name)
	}
}

func TestCornersOf(t *testing.T) {
	s := polyStroke(5, vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 50, Y: 0}, vec.Vec2{X: 50, Y: 50})
	require.Len(t, s, 21)

	shared := segment.Segmentation{Substrokes: []stroke.Stroke{s[:11], s[10:]}}
	corners, ok := cornersOf(shared)
	require.True(t, ok)
	assert.Equal(t, []int{0, 10, 20}, corners)

	disjoint := segment.Segmentation{Substrokes: []stroke.Stroke{s[:11], s[11:]}}
	corners, ok = cornersOf(disjoint)
	require.True(t, ok)
	assert.Equal(t, []int{0, 10, 20}, corners)

	given := segment.Segmentation{Substrokes: disjoint.Substrokes, Corners: []int{0, 9, 20}}
	corners, ok = cornersOf(given)
	require.True(t, ok)
	assert.Equal(t, []int{0, 9, 20}, corners)

	_, ok = cornersOf(segment.Segmentation{Substrokes: []stroke.Stroke{s[:11], nil, s[11:]}})
	assert.False(t, ok)
}

func TestPolylineFit_DisjointPieces(t *testing.T) {
	s := polyStroke(5, vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 100, Y: 0}, vec.Vec2{X: 100, Y: 100})
	corner := slices.IndexFunc(s, func(p stroke.Point) bool { return p.X == 100 && p.Y == 0 })
	require.Positive(t, corner)
	split := segment.SegmenterFunc(func(s stroke.Stroke) ([]segment.Segmentation, error) {
		return []segment.Segmentation{{
			Name:       "disjoint",
			Substrokes: []stroke.Stroke{s[:corner+1], s[corner+1:]},
		}}, nil
	})
	a := testArena(s, DefaultConfig())
	a.seg.Corner = split
	a.seg.MultiCorner = split
	pf := newPolylineFit(a)
	require.True(t, pf.Passed(), "fail code %d", pf.FailCode())
	vs := pf.Vertices()
	require.Len(t, vs, 3)
	assert.InDelta(t, 100, vs[1].X, 1e-6)
	assert.InDelta(t, 0, vs[1].Y, 1e-6)
}
