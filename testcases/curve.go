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

package testcases

import (
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// kappa for cubic Bezier approximation of a quarter circle
const kappa = 0.5522847498307936

// curveCases are open strokes without corners.
var curveCases = []Case{
	{
		Name: "half_circle",
		Path: arcPath(120, 100, 60, 0, math.Pi),
		Want: "Arc",
		Top:  true,
	},
	{
		Name: "quarter_circle",
		Path: arcPath(120, 100, 80, 0, math.Pi/2),
		Want: "Arc",
		Top:  true,
	},
	{
		Name: "three_quarter_circle",
		Path: arcPath(120, 100, 50, 0, 3*math.Pi/2),
		Want: "Arc",
		Top:  true,
	},
	{
		Name: "quadratic",
		Path: quadraticCurve(20, 150, 110, 20, 200, 150),
		Want: "Arc",
		Top:  true,
	},
	{
		Name: "s_curve",
		Path: cubicCurve(20, 100, 100, -20, 120, 220, 200, 100),
		Want: "Curve",
	},
	{
		Name: "wave",
		Path: wavePath(20, 100, 240, 25, 3),
		Want: "Wave",
		Top:  true,
	},
	{
		Name: "gull",
		Path: gullPath(120, 100, 60),
		Want: "Gull",
	},
}

// quadraticCurve builds an open path with a quadratic Bezier curve.
func quadraticCurve(x1, y1, cx, cy, x2, y2 float64) path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		if !yield(path.CmdMoveTo, []vec.Vec2{pt(x1, y1)}) {
			return
		}
		yield(path.CmdQuadTo, []vec.Vec2{pt(cx, cy), pt(x2, y2)})
	}
}

// cubicCurve builds an open path with a cubic Bezier curve.
func cubicCurve(x1, y1, c1x, c1y, c2x, c2y, x2, y2 float64) path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		if !yield(path.CmdMoveTo, []vec.Vec2{pt(x1, y1)}) {
			return
		}
		yield(path.CmdCubeTo, []vec.Vec2{pt(c1x, c1y), pt(c2x, c2y), pt(x2, y2)})
	}
}

// wavePath builds a sine wave of the given number of periods along the
// horizontal line at height y, from x to x+length.
func wavePath(x, y, length, amplitude, periods float64) path.Path {
	n := int(length / 2)
	return parametric(n, func(t float64) vec.Vec2 {
		return pt(x+t*length, y+amplitude*math.Sin(2*math.Pi*periods*t))
	})
}

// gullPath builds two upward arcs of radius r which meet in a cusp at
// (cx, cy), like a seagull drawn from left to right.
func gullPath(cx, cy, r float64) path.Path {
	left := arcPath(cx-r, cy, r, math.Pi, 2*math.Pi)
	right := arcPath(cx+r, cy, r, math.Pi, 2*math.Pi)
	return func(yield func(path.Command, []vec.Vec2) bool) {
		for cmd, pts := range left {
			if !yield(cmd, pts) {
				return
			}
		}
		for cmd, pts := range right {
			if cmd == path.CmdMoveTo {
				continue
			}
			if !yield(cmd, pts) {
				return
			}
		}
	}
}
