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

// closedCases are strokes which end where they started.
var closedCases = []Case{
	{
		Name: "circle",
		Path: circle(120, 120, 50),
		Want: "Circle",
		Top:  true,
	},
	{
		Name: "circle_large",
		Path: circle(300, 300, 200),
		Step: 5,
		Want: "Circle",
		Top:  true,
	},
	{
		Name: "ellipse",
		Path: ellipse(150, 100, 60, 25),
		Want: "Ellipse",
		Top:  true,
	},
	{
		Name: "rectangle",
		Path: rectangle(20, 20, 220, 120),
		Want: "Rectangle",
		Top:  true,
	},
	{
		Name: "square",
		Path: rectangle(20, 20, 140, 140),
		Want: "Square",
		Top:  true,
	},
	{
		Name: "diamond",
		Path: closedPath(pt(100, 20), pt(180, 100), pt(100, 180), pt(20, 100)),
		Want: "Diamond",
		Top:  true,
	},
	{
		Name: "triangle",
		Path: triangle(20, 160, 110, 20, 200, 160),
		Want: "Polygon",
		Top:  true,
	},
	{
		Name: "star",
		Path: fivePointStar(120, 120, 80),
		Want: "Polygon",
		Top:  true,
	},
	{
		Name: "pentagon",
		Path: regularPolygon(120, 120, 80, 5),
		Want: "Polygon",
		Top:  true,
	},
	{
		Name: "blob",
		Path: blobPath(120, 120, 60),
		Want: "Blob",
	},
}

// circle builds an approximate circle using four cubic Bezier curves.
func circle(cx, cy, r float64) path.Path {
	return ellipse(cx, cy, r, r)
}

// ellipse builds an approximate ellipse using four cubic Bezier curves.
func ellipse(cx, cy, rx, ry float64) path.Path {
	kx := rx * kappa
	ky := ry * kappa

	return func(yield func(path.Command, []vec.Vec2) bool) {
		if !yield(path.CmdMoveTo, []vec.Vec2{pt(cx+rx, cy)}) {
			return
		}
		quadrants := [][]vec.Vec2{
			{pt(cx+rx, cy-ky), pt(cx+kx, cy-ry), pt(cx, cy-ry)},
			{pt(cx-kx, cy-ry), pt(cx-rx, cy-ky), pt(cx-rx, cy)},
			{pt(cx-rx, cy+ky), pt(cx-kx, cy+ry), pt(cx, cy+ry)},
			{pt(cx+kx, cy+ry), pt(cx+rx, cy+ky), pt(cx+rx, cy)},
		}
		for _, q := range quadrants {
			if !yield(path.CmdCubeTo, q) {
				return
			}
		}
		yield(path.CmdClose, nil)
	}
}

// triangle builds a triangular path.
func triangle(x1, y1, x2, y2, x3, y3 float64) path.Path {
	return closedPath(pt(x1, y1), pt(x2, y2), pt(x3, y3))
}

// fivePointStar builds a five-pointed star (self-intersecting).
func fivePointStar(cx, cy, r float64) path.Path {
	pts := make([]vec.Vec2, 5)
	for i := range 5 {
		angle := float64(i)*2*math.Pi/5 - math.Pi/2
		pts[i] = pt(cx+r*math.Cos(angle), cy+r*math.Sin(angle))
	}

	// draw star: 0 -> 2 -> 4 -> 1 -> 3 -> 0
	return closedPath(pts[0], pts[2], pts[4], pts[1], pts[3])
}

// regularPolygon builds a polygon with n sides.
func regularPolygon(cx, cy, r float64, n int) path.Path {
	pts := make([]vec.Vec2, n)
	for i := range n {
		angle := float64(i)*2*math.Pi/float64(n) - math.Pi/2
		pts[i] = pt(cx+r*math.Cos(angle), cy+r*math.Sin(angle))
	}
	return closedPath(pts...)
}

// rectangle builds a rectangular path.
func rectangle(x1, y1, x2, y2 float64) path.Path {
	return closedPath(pt(x1, y1), pt(x2, y1), pt(x2, y2), pt(x1, y2))
}

// blobPath builds an irregular closed curve around (cx, cy).
func blobPath(cx, cy, r float64) path.Path {
	return parametric(120, func(t float64) vec.Vec2 {
		phi := 2 * math.Pi * t
		rho := r * (1 + 0.3*math.Sin(3*phi) + 0.15*math.Cos(5*phi))
		return pt(cx+rho*math.Cos(phi), cy+rho*math.Sin(phi))
	})
}
