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
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// degenerateCases are strokes with very few points or very small extent.
var degenerateCases = []Case{
	{
		Name: "single_point",
		Path: dotPath(50, 50),
		Want: "Dot",
		Top:  true,
	},
	{
		Name: "two_points",
		Path: polyPath(pt(20, 20), pt(120, 20)),
		Step: 500,
		Want: "Line",
		Top:  true,
	},
	{
		Name: "three_points",
		Path: polyPath(pt(20, 20), pt(70, 20), pt(120, 20)),
		Step: 50,
		Want: "Line",
		Top:  true,
	},
	{
		Name: "tiny_scribble",
		Path: polyPath(pt(50, 50), pt(53, 51), pt(51, 53), pt(54, 54)),
		Step: 0.5,
		Want: "Dot",
		Top:  true,
	},
	{
		Name: "filled_dot",
		Path: scribble(60, 60, 10, 6),
		Step: 1,
		Want: "Dot",
		Top:  true,
	},
	{
		Name: "subpixel_line",
		Path: polyPath(pt(10.25, 10.75), pt(10.5, 10.6)),
		Step: 0.1,
		Want: "Dot",
		Top:  true,
	},
	{
		Name: "far_from_origin",
		Path: polyPath(pt(1e6, 1e6), pt(1e6+200, 1e6+50)),
		Want: "Line",
		Top:  true,
	},
}

// dotPath is a path consisting of a single point.
func dotPath(x, y float64) path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		yield(path.CmdMoveTo, []vec.Vec2{pt(x, y)})
	}
}

// scribble fills a square of the given size at (x, y) with n back and
// forth passes.
func scribble(x, y, size float64, n int) path.Path {
	var vs []vec.Vec2
	for i := range n + 1 {
		yy := y + size*float64(i)/float64(n)
		if i%2 == 0 {
			vs = append(vs, pt(x, yy), pt(x+size, yy))
		} else {
			vs = append(vs, pt(x+size, yy), pt(x, yy))
		}
	}
	return polyPath(vs...)
}
