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

package raster

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/vector"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/sketch/internal/geometry"
)

func regularPolygon(c vec.Vec2, r float64, n int) []vec.Vec2 {
	pts := make([]vec.Vec2, n)
	for i := range pts {
		phi := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = c.Add(vec.Vec2{X: r * math.Cos(phi), Y: r * math.Sin(phi)})
	}
	return pts
}

// referenceCoverage renders the closed polygon pts with x/image/vector.
func referenceCoverage(pts []vec.Vec2, w, h int) []float32 {
	z := vector.NewRasterizer(w, h)
	z.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		z.LineTo(float32(p.X), float32(p.Y))
	}
	z.ClosePath()
	dst := image.NewAlpha(image.Rect(0, 0, w, h))
	z.Draw(dst, dst.Bounds(), image.NewUniform(color.Alpha{A: 255}), image.Point{})

	res := make([]float32, w*h)
	for i, a := range dst.Pix {
		res[i] = float32(a) / 255
	}
	return res
}

func TestFill_AgainstReference(t *testing.T) {
	tri := []vec.Vec2{{X: 3.2, Y: 4.7}, {X: 58.1, Y: 12.3}, {X: 20.5, Y: 60.9}}
	poly := regularPolygon(vec.Vec2{X: 32, Y: 32}, 25.3, 17)
	cases := map[string]struct {
		pts  []vec.Vec2
		area float64
	}{
		"triangle": {tri, math.Abs(geometry.SignedArea(tri))},
		"square":   {[]vec.Vec2{{X: 8, Y: 8}, {X: 40, Y: 8}, {X: 40, Y: 40}, {X: 8, Y: 40}}, 32 * 32},
		"polygon":  {poly, 17.0 / 2 * 25.3 * 25.3 * math.Sin(2*math.Pi/17)},
		"bowtie":   {[]vec.Vec2{{X: 5, Y: 5}, {X: 60, Y: 60}, {X: 60, Y: 5}, {X: 5, Y: 60}}, 2 * 55 * 27.5 / 2},
	}
	const w, h = 64, 64
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			r := NewRasterizer(w, h)
			got := r.Fill(Polygon(c.pts), NonZero)
			assert.InDelta(t, c.area, got.Sum(), 1e-3*c.area, "coverage is exact")

			// x/image/vector approximates coverage near vertices
			want := referenceCoverage(c.pts, w, h)
			require.Len(t, got.Pix, len(want))
			var maxDiff float64
			for i := range want {
				maxDiff = max(maxDiff, math.Abs(float64(got.Pix[i]-want[i])))
			}
			assert.Less(t, maxDiff, 0.1, "largest per-pixel difference")
		})
	}
}

func TestFill_EvenOdd(t *testing.T) {
	outer := regularPolygon(vec.Vec2{X: 32, Y: 32}, 30, 64)
	inner := regularPolygon(vec.Vec2{X: 32, Y: 32}, 15, 64)
	p := Polygon(outer)
	p = p.MoveTo(inner[0])
	for _, q := range inner[1:] {
		p = p.LineTo(q)
	}
	p = p.Close()

	r := NewRasterizer(64, 64)
	nonZero := r.Fill(p, NonZero).Sum()
	evenOdd := r.Fill(p, EvenOdd).Sum()
	ring := math.Pi * (30*30 - 15*15)
	assert.InDelta(t, ring, evenOdd, 0.02*ring)
	assert.Greater(t, nonZero, evenOdd)
}

func TestFill_Curves(t *testing.T) {
	const k = 0.5522847498
	c, rad := vec.Vec2{X: 32, Y: 32}, 20.0
	p := (&path.Data{}).
		MoveTo(vec.Vec2{X: c.X + rad, Y: c.Y}).
		CubeTo(vec.Vec2{X: c.X + rad, Y: c.Y + k*rad}, vec.Vec2{X: c.X + k*rad, Y: c.Y + rad}, vec.Vec2{X: c.X, Y: c.Y + rad}).
		CubeTo(vec.Vec2{X: c.X - k*rad, Y: c.Y + rad}, vec.Vec2{X: c.X - rad, Y: c.Y + k*rad}, vec.Vec2{X: c.X - rad, Y: c.Y}).
		CubeTo(vec.Vec2{X: c.X - rad, Y: c.Y - k*rad}, vec.Vec2{X: c.X - k*rad, Y: c.Y - rad}, vec.Vec2{X: c.X, Y: c.Y - rad}).
		CubeTo(vec.Vec2{X: c.X + k*rad, Y: c.Y - rad}, vec.Vec2{X: c.X + rad, Y: c.Y - k*rad}, vec.Vec2{X: c.X + rad, Y: c.Y}).
		Close()
	area := NewRasterizer(64, 64).Fill(p, NonZero).Sum()
	assert.InDelta(t, math.Pi*rad*rad, area, 0.01*math.Pi*rad*rad)
}

func TestFill_Empty(t *testing.T) {
	r := NewRasterizer(8, 8)
	assert.Zero(t, r.Fill(&path.Data{}, NonZero).Sum())
	assert.Zero(t, r.Fill(nil, NonZero).Sum())
	assert.Zero(t, NewRasterizer(0, 0).Fill(Polygon(regularPolygon(vec.Vec2{}, 1, 5)), NonZero).Sum())
}

func TestFillArea(t *testing.T) {
	rectangle := []vec.Vec2{{X: 100, Y: 100}, {X: 110, Y: 100}, {X: 110, Y: 120}, {X: 100, Y: 120}}
	assert.InDelta(t, 200, FillArea(Polygon(rectangle)), 2)

	disc := regularPolygon(vec.Vec2{X: -40, Y: 7}, 50, 200)
	assert.InDelta(t, math.Pi*2500, FillArea(Polygon(disc)), 0.01*math.Pi*2500)

	assert.Zero(t, FillArea(&path.Data{}))
}

func TestOverlap(t *testing.T) {
	a := Polygon([]vec.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}})
	b := Polygon([]vec.Vec2{{X: 5, Y: 0}, {X: 15, Y: 0}, {X: 15, Y: 10}, {X: 5, Y: 10}})
	c := Polygon([]vec.Vec2{{X: 20, Y: 0}, {X: 30, Y: 0}, {X: 30, Y: 10}, {X: 20, Y: 10}})

	assert.InDelta(t, 1, Overlap(a, a), 1e-6)
	assert.InDelta(t, 1.0/3, Overlap(a, b), 0.01)
	assert.InDelta(t, 0, Overlap(a, c), 1e-6)
	assert.Zero(t, Overlap(nil, nil))
}

func TestNewFrame(t *testing.T) {
	fr := NewFrame(rect.Rect{LLx: 10, LLy: 20, URx: 110, URy: 70}, 0)
	assert.InDelta(t, MaxGridSize, fr.Width, 1)
	assert.InDelta(t, MaxGridSize/2, fr.Height, 1)
	assert.InDelta(t, 2.56, fr.Scale, 1e-12)

	empty := NewFrame(rect.Rect{LLx: 1, LLy: 1, URx: 1, URy: 1}, 0)
	assert.Zero(t, empty.Width)
	assert.Zero(t, empty.Area(&Mask{}))
}

func TestPen_Outline(t *testing.T) {
	pen := RoundPen(4)

	// back and forth across the same line must not cancel
	pts := []vec.Vec2{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 0, Y: 0}}
	want := 100*4 + math.Pi*4
	assert.InDelta(t, want, InkArea(pts, pen), 0.03*want)
	assert.Greater(t, FillArea(pen.Outline(pts)), InkArea(pts, pen), "outline pieces overlap")

	butt := Pen{Width: 4, Cap: graphics.LineCapButt, Join: graphics.LineJoinBevel}
	assert.InDelta(t, 400, InkArea(pts[:2], butt), 0.03*400)

	square := Pen{Width: 4, Cap: graphics.LineCapSquare, Join: graphics.LineJoinMiter}
	assert.InDelta(t, 104*4, InkArea(pts[:2], square), 0.03*104*4)

	assert.Empty(t, butt.Outline(pts[:1]).Cmds)
	assert.Zero(t, InkArea(pts[:1], butt))
	assert.NotEmpty(t, pen.Outline(pts[:1]).Cmds)
}

func TestFillMax(t *testing.T) {
	sq := Polygon([]vec.Vec2{{X: 8.5, Y: 8.5}, {X: 40.5, Y: 8.5}, {X: 40.5, Y: 40.5}, {X: 8.5, Y: 40.5}})
	r := NewRasterizer(64, 64)
	m := &Mask{Width: 64, Height: 64, Pix: make([]float32, 64*64)}
	r.FillMax(sq, NonZero, m)
	r.FillMax(sq, NonZero, m)
	assert.InDelta(t, 32*32, m.Sum(), 0.1)

	other := Polygon([]vec.Vec2{{X: 48, Y: 48}, {X: 58, Y: 48}, {X: 58, Y: 58}, {X: 48, Y: 58}})
	r.FillMax(other, NonZero, m)
	assert.InDelta(t, 32*32+100, m.Sum(), 0.1)
	assert.InDelta(t, 100, r.Fill(other, NonZero).Sum(), 0.1, "fill is independent of earlier calls")
}

func TestInkDensity(t *testing.T) {
	pen := RoundPen(4)
	dot := InkDensity([]vec.Vec2{{X: 5, Y: 5}}, pen)
	assert.InDelta(t, 12*math.Sin(2*math.Pi/arcSteps)/4, dot, 0.02)

	line := InkDensity([]vec.Vec2{{X: 0, Y: 0}, {X: 100, Y: 100}}, pen)
	assert.Less(t, line, 0.1)

	// retracing adds no ink
	retrace := InkDensity([]vec.Vec2{{X: 0, Y: 0}, {X: 100, Y: 100}, {X: 0, Y: 0}}, pen)
	assert.InDelta(t, line, retrace, 0.005)

	assert.Zero(t, InkDensity(nil, pen))
}
