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

package shape

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/sketch/internal/raster"
)

func assertNear(t *testing.T, want, got vec.Vec2, delta float64) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, delta, "x")
	assert.InDelta(t, want.Y, got.Y, delta, "y")
}

func TestPolygon(t *testing.T) {
	pts := []vec.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 5}}
	s := Polygon(pts)
	assert.True(t, s.Closed)
	assert.False(t, s.Raw)
	assert.Equal(t, path.CmdClose, s.Path.Cmds[len(s.Path.Cmds)-1])
	assert.Equal(t, pts, s.Points())
	assert.InDelta(t, 25, raster.FillArea(s.Path), 0.5)

	open := Polyline(pts)
	assert.False(t, open.Closed)
	assert.Len(t, open.Path.Cmds, 3)
}

func TestCircle(t *testing.T) {
	c := vec.Vec2{X: 50, Y: -20}
	s := Circle(c, 30)
	require.True(t, s.Closed)
	for _, p := range s.Points() {
		assert.InDelta(t, 30, p.Sub(c).Length(), 1e-9)
	}
	assert.InDelta(t, math.Pi*900, raster.FillArea(s.Path), 0.01*math.Pi*900)
}

func TestEllipse_Rotated(t *testing.T) {
	c := vec.Vec2{X: 10, Y: 10}
	s := Ellipse(c, 40, 10, math.Pi/2)
	pts := s.Points()
	require.Len(t, pts, 5)
	assertNear(t, vec.Vec2{X: 10, Y: 50}, pts[0], 1e-9)
	assertNear(t, vec.Vec2{X: 0, Y: 10}, pts[1], 1e-9)
	assert.InDelta(t, math.Pi*400, raster.FillArea(s.Path), 0.02*math.Pi*400)
}

func TestArc(t *testing.T) {
	c := vec.Vec2{X: 0, Y: 0}
	s := Arc(c, 10, 0, 3*math.Pi/4)
	pts := s.Points()
	require.Len(t, pts, 3, "start point and two cubic segments")
	assertNear(t, vec.Vec2{X: 10, Y: 0}, pts[0], 1e-9)
	assertNear(t, vec.Vec2{X: 10 * math.Cos(3*math.Pi/4), Y: 10 * math.Sin(3*math.Pi/4)}, pts[2], 1e-9)
	assert.False(t, s.Closed)

	// the curve midpoint of one segment stays on the circle
	k := s.Path.Coords
	mid := k[0].Mul(0.125).Add(k[1].Mul(0.375)).Add(k[2].Mul(0.375)).Add(k[3].Mul(0.125))
	assert.InDelta(t, 10, mid.Length(), 1e-3)

	neg := Arc(c, 10, 0, -math.Pi/2)
	assertNear(t, vec.Vec2{X: 0, Y: -10}, neg.Points()[1], 1e-9)
}

func TestCurve(t *testing.T) {
	ctrl := []vec.Vec2{{X: 0, Y: 0}, {X: 10, Y: 20}, {X: 20, Y: -20}, {X: 30, Y: 20}, {X: 40, Y: 0}}
	s := Curve(ctrl)
	pts := s.Points()
	assert.Len(t, pts, curveSamples+1)
	assertNear(t, ctrl[0], pts[0], 1e-12)
	assertNear(t, ctrl[4], pts[curveSamples], 1e-12)

	assert.Equal(t, []path.Command{path.CmdMoveTo, path.CmdQuadTo}, Curve(ctrl[:3]).Path.Cmds)
	assert.Equal(t, []path.Command{path.CmdMoveTo, path.CmdCubeTo}, Curve(ctrl[:4]).Path.Cmds)
	assert.Equal(t, []path.Command{path.CmdMoveTo, path.CmdLineTo}, Curve(ctrl[:2]).Path.Cmds)
	assert.Empty(t, Curve(nil).Path.Cmds)
}

func TestGroup(t *testing.T) {
	a := Line(vec.Vec2{}, vec.Vec2{X: 1})
	b := Circle(vec.Vec2{X: 5}, 1)
	g := Group(Part{Label: "Line", Shape: a}, Part{Label: "Circle", Shape: b})

	assert.Len(t, g.Parts, 2)
	assert.Equal(t, len(a.Path.Cmds)+len(b.Path.Cmds), len(g.Path.Cmds))
	assert.Equal(t, len(a.Path.Coords)+len(b.Path.Coords), len(g.Path.Coords))
	assert.False(t, g.Closed)

	assert.True(t, Group(Part{Label: "Circle", Shape: b}).Closed)
	assert.True(t, Group(Part{Label: "Raw", Shape: Raw([]vec.Vec2{{}, {X: 1}})}).Raw)
}
