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

// lineCases are strokes made from straight pieces.
var lineCases = []Case{
	{
		Name: "horizontal",
		Path: polyPath(pt(20, 100), pt(220, 100)),
		Want: "Line",
		Top:  true,
	},
	{
		Name: "diagonal",
		Path: polyPath(pt(20, 20), pt(180, 140)),
		Want: "Line",
		Top:  true,
	},
	{
		Name: "vertical_short",
		Path: polyPath(pt(50, 50), pt(50, 90)),
		Want: "Line",
		Top:  true,
	},
	{
		Name:   "shaky",
		Path:   polyPath(pt(20, 100), pt(220, 110)),
		Jitter: 0.5,
		Want:   "Line",
		Top:    true,
	},
	{
		Name: "l_shape",
		Path: polyPath(pt(20, 20), pt(20, 150), pt(150, 150)),
		Want: "Polyline",
		Top:  true,
	},
	{
		Name: "zigzag",
		Path: polyPath(pt(20, 150), pt(60, 30), pt(100, 150), pt(140, 30)),
		Want: "Polyline",
		Top:  true,
	},
	{
		Name: "staircase",
		Path: staircase(20, 20, 30, 4),
		Want: "Polyline",
	},
	{
		Name: "arrow_open",
		Path: arrowPath(pt(20, 150), pt(200, 40), 30, false),
		Want: "Arrow",
		Top:  true,
	},
	{
		Name: "retrace",
		Path: polyPath(pt(20, 100), pt(200, 100), pt(30, 102)),
		Want: "Complex",
		Top:  true,
	},
}

// staircase builds n steps of the given size, starting at (x, y).
func staircase(x, y, size float64, n int) path.Path {
	var vs []vec.Vec2
	p := pt(x, y)
	vs = append(vs, p)
	for range n {
		p = p.Add(pt(size, 0))
		vs = append(vs, p)
		p = p.Add(pt(0, size))
		vs = append(vs, p)
	}
	return polyPath(vs...)
}

// arrowPath draws the shaft from tail to tip and then the head, as a
// single stroke.  The head is either two barbs or a closed triangle.
func arrowPath(tail, tip vec.Vec2, head float64, triangle bool) path.Path {
	d := tip.Sub(tail)
	u := d.Mul(1 / d.Length())
	n := pt(-u.Y, u.X)
	back := tip.Sub(u.Mul(head))
	left := back.Add(n.Mul(head / 2))
	right := back.Sub(n.Mul(head / 2))
	if triangle {
		return polyPath(tail, tip, left, right, tip)
	}
	return polyPath(tail, tip, left, tip, right)
}
