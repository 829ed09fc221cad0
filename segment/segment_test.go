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

package segment

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/sketch/stroke"
)

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

func TestFromCorners(t *testing.T) {
	s := polyStroke(1, vec.Vec2{}, vec.Vec2{X: 4})
	require.Len(t, s, 5)

	seg, err := FromCorners("test", s, []int{2})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2, 4}, seg.Corners)
	require.Equal(t, 2, seg.Len())
	assert.Len(t, seg.Substrokes[0], 3)
	assert.Len(t, seg.Substrokes[1], 3)
	assert.Equal(t, seg.Substrokes[0][2], seg.Substrokes[1][0], "pieces share the split point")

	seg, err = FromCorners("test", s, []int{0, 4})
	require.NoError(t, err)
	assert.Equal(t, 1, seg.Len())

	_, err = FromCorners("test", s, []int{3, 2})
	assert.ErrorIs(t, err, ErrNoSegmentation)
	_, err = FromCorners("test", s, []int{7})
	assert.ErrorIs(t, err, ErrNoSegmentation)
	_, err = FromCorners("test", s[:1], nil)
	assert.ErrorIs(t, err, ErrNoSegmentation)
}

func TestCornerFinder_LShape(t *testing.T) {
	s := polyStroke(5, vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 100, Y: 0}, vec.Vec2{X: 100, Y: 100})
	segs, err := CornerFinder{}.Segment(s)
	require.NoError(t, err)
	require.Len(t, segs, 1)
	seg := segs[0]
	assert.Equal(t, []int{0, 20, 40}, seg.Corners)
	assert.Equal(t, "corner", seg.Name)
}

func TestCornerFinder_Degenerate(t *testing.T) {
	_, err := CornerFinder{}.Segment(stroke.Stroke{{X: 1, Y: 1}})
	assert.ErrorIs(t, err, ErrNoSegmentation)

	_, err = CornerFinder{}.Segment(stroke.Stroke{{X: 1, Y: 1}, {X: 1, Y: 1, T: 1}})
	assert.ErrorIs(t, err, ErrNoSegmentation)
}

func TestMultiCornerFinder(t *testing.T) {
	s := polyStroke(5, vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 100, Y: 0}, vec.Vec2{X: 100, Y: 100}, vec.Vec2{X: 0, Y: 100})
	segs, err := MultiCornerFinder{}.Segment(s)
	require.NoError(t, err)
	require.NotEmpty(t, segs)
	assert.Equal(t, 3, segs[0].Len())
	for i := 1; i < len(segs); i++ {
		assert.NotEqual(t, segs[0].Corners, segs[i].Corners)
	}

	_, err = MultiCornerFinder{}.Segment(s[:1])
	assert.ErrorIs(t, err, ErrNoSegmentation)
}

func TestWaveSegmenter(t *testing.T) {
	pts := make([]vec.Vec2, 81)
	for i := range pts {
		x := 2.5 * float64(i)
		pts[i] = vec.Vec2{X: x, Y: 20 * math.Sin(2*math.Pi*x/100)}
	}
	segs, err := WaveSegmenter{}.Segment(stroke.FromVecs(pts, 10))
	require.NoError(t, err)
	assert.Equal(t, []int{0, 10, 30, 50, 70, 80}, segs[0].Corners)

	_, err = WaveSegmenter{}.Segment(polyStroke(5, vec.Vec2{}, vec.Vec2{X: 100}))
	assert.ErrorIs(t, err, ErrNoSegmentation)
}

func TestRevolutionSegmenter(t *testing.T) {
	pts := make([]vec.Vec2, 100)
	for i := range pts {
		phi := 2 * math.Pi * 2.5 * float64(i) / 100
		pts[i] = vec.Vec2{X: 50 * math.Cos(phi), Y: 50 * math.Sin(phi)}
	}
	segs, err := RevolutionSegmenter{}.Segment(stroke.FromVecs(pts, 10))
	require.NoError(t, err)
	assert.Equal(t, 3, segs[0].Len())

	half := pts[:40]
	segs, err = RevolutionSegmenter{}.Segment(stroke.FromVecs(half, 10))
	require.NoError(t, err)
	assert.Equal(t, 1, segs[0].Len())
}

func TestVSegmenter(t *testing.T) {
	s := polyStroke(1, vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 5, Y: 10}, vec.Vec2{X: 10, Y: 0})
	segs, err := VSegmenter{}.Segment(s)
	require.NoError(t, err)
	seg := segs[0]
	require.Equal(t, 2, seg.Len())
	apex := seg.Substrokes[0][len(seg.Substrokes[0])-1]
	assert.InDelta(t, 5, apex.X, 1e-9)
	assert.InDelta(t, 10, apex.Y, 1e-9)

	_, err = VSegmenter{}.Segment(polyStroke(5, vec.Vec2{}, vec.Vec2{X: 100}))
	assert.ErrorIs(t, err, ErrNoSegmentation)
}

func TestSegmenterFunc(t *testing.T) {
	var sf Segmenter = SegmenterFunc(func(s stroke.Stroke) ([]Segmentation, error) {
		return nil, ErrNoSegmentation
	})
	_, err := sf.Segment(nil)
	assert.ErrorIs(t, err, ErrNoSegmentation)
}

func TestCuspSegmenter(t *testing.T) {
	s := polyStroke(2, vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 20, Y: 20}, vec.Vec2{X: 40, Y: 0})
	segs, err := CuspSegmenter{}.Segment(s)
	require.NoError(t, err)
	seg := segs[0]
	require.Equal(t, 2, seg.Len())
	cusp := seg.Substrokes[1][0]
	assert.InDelta(t, 20, cusp.X, 1e-9)
	assert.InDelta(t, 20, cusp.Y, 1e-9)

	_, err = CuspSegmenter{}.Segment(polyStroke(5, vec.Vec2{}, vec.Vec2{X: 100}))
	assert.ErrorIs(t, err, ErrNoSegmentation)
}
