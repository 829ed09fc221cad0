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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/sketch/thresholds"
)

func circleStroke(n int, r float64, revs float64) Stroke {
	pts := make([]vec.Vec2, n)
	for i := range pts {
		phi := 2 * math.Pi * revs * float64(i) / float64(n)
		pts[i] = vec.Vec2{X: 200 + r*math.Cos(phi), Y: 200 + r*math.Sin(phi)}
	}
	return FromVecs(pts, 10)
}

func lineStroke(n int, from, to vec.Vec2) Stroke {
	pts := make([]vec.Vec2, n)
	for i := range pts {
		t := float64(i) / float64(n-1)
		pts[i] = from.Mul(1 - t).Add(to.Mul(t))
	}
	return FromVecs(pts, 10)
}

func TestClean_DuplicatesAndTimestamps(t *testing.T) {
	s := Stroke{
		{X: 0, Y: 0, T: 0},
		{X: 0, Y: 0, T: 5},
		{X: 1, Y: 0, T: 10},
		{X: 2, Y: 0, T: 10},
		{X: 3, Y: 0, T: 10},
		{X: 4, Y: 0, T: 40},
	}
	got := clean(s)
	require.Len(t, got, 5, "consecutive duplicate must be dropped")
	for i := 1; i < len(got); i++ {
		assert.Greater(t, got[i].T, got[i-1].T, "timestamps must increase at %d", i)
	}
	assert.Equal(t, 40.0, got[4].T)
	assert.Equal(t, 10.0, s[3].T, "input must not be modified")
}

func TestClean_TrailingEqualTimestamps(t *testing.T) {
	s := Stroke{{X: 0, T: 3}, {X: 1, T: 3}, {X: 2, T: 3}}
	got := clean(s)
	assert.Equal(t, []float64{3, 4, 5}, []float64{got[0].T, got[1].T, got[2].T})
}

func TestNewFeatures_Degenerate(t *testing.T) {
	for _, s := range []Stroke{nil, {{X: 1, Y: 2}}} {
		f := NewFeatures(s, false, nil)
		assert.Empty(t, f.Directions())
		assert.Empty(t, f.SegmentLengths())
		assert.Zero(t, f.Length())
		assert.Zero(t, f.Revolutions())
		assert.Zero(t, f.NDDE())
		assert.Zero(t, f.DCR())
		assert.False(t, f.Closed())
		assert.False(t, f.Overtraced())
	}
}

func TestNewFeatures_ArrayLengths(t *testing.T) {
	s := circleStroke(40, 50, 0.6)
	f := NewFeatures(s, false, nil)
	n := f.Len()
	assert.Len(t, f.Directions(), n-1)
	assert.Len(t, f.SegmentLengths(), n-1)
	assert.Len(t, f.Speeds(), n-1)
	assert.Len(t, f.CumulativeLength(), n)
	assert.Len(t, f.Curvature(), n)
	assert.Len(t, f.TotalCurvature(), n)
	assert.Len(t, f.Orig(), len(s))
}

func TestNewFeatures_Line(t *testing.T) {
	s := lineStroke(20, vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 100, Y: 0})
	f := NewFeatures(s, false, nil)

	assert.InDelta(t, 100, f.Length(), 1e-9)
	assert.InDelta(t, 1, f.EndpointRatio(), 1e-9)
	assert.Zero(t, f.Rotation())
	assert.Zero(t, f.Revolutions())
	assert.InDelta(t, 0, f.BestFitLSE(), 1e-9)
	assert.InDelta(t, 100, f.MajorAxisLength(), 1e-9)
	assert.InDelta(t, 0, math.Sin(f.MajorAxisAngle()), 1e-9)
	assert.False(t, f.Closed())
	assert.True(t, f.DirWindowPassed())
	assert.InDelta(t, 100.0/19/10, f.Speeds()[0], 1e-9)

	bbox := f.BBox()
	assert.Equal(t, 0.0, bbox.LLx)
	assert.Equal(t, 100.0, bbox.URx)
}

func TestNewFeatures_Circle(t *testing.T) {
	f := NewFeatures(circleStroke(64, 50, 1), false, nil)

	assert.InDelta(t, 62.0/64, f.Revolutions(), 1e-6)
	assert.True(t, f.Closed())
	assert.False(t, f.Overtraced())
	assert.Greater(t, f.NDDE(), 0.9)
	assert.InDelta(t, 1, f.DCR(), 1e-6)
	assert.InDelta(t, 100, f.MajorAxisLength(), 0.5)
	c := f.Centroid()
	assert.InDelta(t, 200, c.X, 1e-6)
	assert.InDelta(t, 200, c.Y, 1e-6)
	assert.True(t, f.DirWindowPassed())
	assert.InDelta(t, 1, f.DirectionFit().Slope*50, 1e-2)
}

func TestNewFeatures_Overtraced(t *testing.T) {
	f := NewFeatures(circleStroke(150, 40, 2.2), false, nil)
	assert.True(t, f.Overtraced())
	assert.InDelta(t, 2.2, f.Revolutions(), 0.05)
}

func TestNewFeatures_RotationSign(t *testing.T) {
	ccw := NewFeatures(circleStroke(30, 40, 0.5), false, nil)
	s := circleStroke(30, 40, 0.5)
	for i := range s {
		s[i].Y = -s[i].Y
	}
	cw := NewFeatures(s, false, nil)
	assert.Greater(t, ccw.Rotation(), 0.0)
	assert.Less(t, cw.Rotation(), 0.0)
	assert.InDelta(t, ccw.Revolutions(), cw.Revolutions(), 1e-9)
}

func TestNewFeatures_Antiparallel(t *testing.T) {
	s := FromVecs([]vec.Vec2{{X: 0}, {X: 10}, {X: 5}}, 10)
	f := NewFeatures(s, false, nil)
	assert.InDelta(t, math.Pi, f.Rotation(), 1e-12)
}

func TestNewFeatures_Hooks(t *testing.T) {
	pts := []vec.Vec2{{X: -3, Y: 4}, {X: -1, Y: 2}, {X: 0, Y: 0}}
	for i := 1; i <= 40; i++ {
		pts = append(pts, vec.Vec2{X: 5 * float64(i), Y: 0})
	}
	s := FromVecs(pts, 10)
	f := NewFeatures(s, false, nil)

	require.True(t, f.HooksRemoved())
	assert.Less(t, f.Len(), len(pts))
	assert.Len(t, f.Orig(), len(pts))
	assert.InDelta(t, 0, f.BestFitLSE(), 1e-9)
	assert.Equal(t, f.Len()-1, len(f.Directions()))
}

func TestNewFeatures_NoHooksOnShortStroke(t *testing.T) {
	s := FromVecs([]vec.Vec2{{X: 0, Y: 5}, {X: 0, Y: 0}, {X: 10, Y: 0}, {X: 20, Y: 0}}, 10)
	f := NewFeatures(s, false, nil)
	assert.False(t, f.HooksRemoved())
}

func TestNewFeatures_Idempotent(t *testing.T) {
	s := circleStroke(70, 30, 1.3)
	for _, smooth := range []bool{false, true} {
		a := NewFeatures(s, smooth, nil)
		b := NewFeatures(s, smooth, nil)
		assert.Equal(t, a, b, "smooth=%v", smooth)
	}
}

func TestNewFeatures_CornerDistances(t *testing.T) {
	s := FromVecs([]vec.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}, {X: 0, Y: 0.5}}, 10)
	f := NewFeatures(s, false, nil)
	for k, cd := range f.CornerDistances() {
		assert.InDelta(t, 0, cd.Min, 0.5+1e-9, "corner %d", k)
		assert.InDelta(t, math.Sqrt(200), cd.Max, 1e-9, "corner %d", k)
		assert.GreaterOrEqual(t, cd.StdDev, 0.0)
	}
}

func TestMedianFilter(t *testing.T) {
	got := medianFilter([]float64{0, 1, 10, 3, 4})
	assert.Equal(t, []float64{0, 1, 3, 4, 4}, got)
	assert.Equal(t, []float64{1, 2}, medianFilter([]float64{1, 2}))
}

func TestDirectionWindows(t *testing.T) {
	inc := make([]float64, 30)
	for i := range inc {
		inc[i] = float64(i)
	}
	assert.Equal(t, 1.0, directionWindows(inc, 5))
	assert.Equal(t, 1.0, directionWindows(inc[:7], 5), "fewer than two windows")

	zig := []float64{0, 0, 1, 1, 0, 0, 1, 1, 0, 0}
	assert.Less(t, directionWindows(zig, 2), 0.9)
}

func TestNewFeatures_ThresholdsScale(t *testing.T) {
	th, err := thresholds.New(192)
	require.NoError(t, err)
	pts := []vec.Vec2{{X: -3, Y: 4}, {X: -1, Y: 2}, {X: 0, Y: 0}}
	for i := 1; i <= 40; i++ {
		pts = append(pts, vec.Vec2{X: 5 * float64(i), Y: 0})
	}
	f := NewFeatures(FromVecs(pts, 10), false, th)
	assert.True(t, f.HooksRemoved())
}
