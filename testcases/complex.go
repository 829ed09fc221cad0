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

// compositeCases are strokes made from several primitives, or with
// self-intersections and repeated turns.
var compositeCases = []Case{
	{
		Name: "spiral",
		Path: spiralPath(150, 150, 20, 100, 3),
		Want: "Spiral",
		Top:  true,
	},
	{
		Name: "helix",
		Path: helixPath(40, 100, 40, 30, 4),
		Want: "Helix",
		Top:  true,
	},
	{
		Name: "overtraced_circle",
		Path: spiralPath(120, 120, 50, 52, 2.5),
		Want: "Circle",
		Top:  true,
	},
	{
		Name: "infinity",
		Path: lemniscatePath(150, 100, 100, 50),
		Want: "Infinity",
		Top:  true,
	},
	{
		Name: "figure_eight",
		Path: figureEight(120, 150, 100),
		Want: "Polyline",
	},
	{
		Name: "arrow_triangle",
		Path: arrowPath(pt(20, 150), pt(200, 40), 30, true),
		Want: "Arrow",
		Top:  true,
	},
	{
		Name: "line_then_arc",
		Path: mixedLinesCurves(),
		Want: "Arc",
	},
	{
		Name: "tight_curl",
		Path: tightCurl(120, 120, 40),
		Want: "Arc",
		Top:  true,
	},
}

// spiralPath builds an Archimedean spiral from radius rMin to rMax.
func spiralPath(cx, cy, rMin, rMax float64, turns float64) path.Path {
	steps := max(8, int(turns*32)) // 32 segments per turn
	return parametric(steps, func(t float64) vec.Vec2 {
		angle := t * turns * 2 * math.Pi
		r := rMin + t*(rMax-rMin)
		return pt(cx+r*math.Cos(angle), cy+r*math.Sin(angle))
	})
}

// helixPath builds a sequence of loops of radius r whose centers move
// along the horizontal line at height y by advance per turn.
func helixPath(x, y, r, advance, turns float64) path.Path {
	steps := int(turns * 48)
	return parametric(steps, func(t float64) vec.Vec2 {
		angle := t * turns * 2 * math.Pi
		c := pt(x+t*turns*advance, y)
		return pt(c.X+r*math.Cos(angle), c.Y+r*math.Sin(angle))
	})
}

// lemniscatePath builds the lemniscate of Gerono, starting and ending at
// the right tip.  The two loops are traversed in opposite directions.
func lemniscatePath(cx, cy, a, b float64) path.Path {
	return parametric(200, func(t float64) vec.Vec2 {
		phi := 2 * math.Pi * t
		return pt(cx+a*math.Cos(phi), cy+b*math.Sin(2*phi)/2)
	})
}

// figureEight builds a vertical figure eight from two circles touching
// at (cx, cy).
func figureEight(cx, cy, size float64) path.Path {
	r := size / 4
	top := pt(cx, cy-r)
	bottom := pt(cx, cy+r)
	return parametric(160, func(t float64) vec.Vec2 {
		phi := 4 * math.Pi * t
		if t < 0.5 {
			// clockwise around the upper circle, in y-down coordinates
			return top.Add(pt(r*math.Sin(phi), r*math.Cos(phi)))
		}
		return bottom.Add(pt(-r*math.Sin(phi), -r*math.Cos(phi)))
	})
}

// mixedLinesCurves draws a straight line followed by a half circle.
func mixedLinesCurves() path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		if !yield(path.CmdMoveTo, []vec.Vec2{pt(20, 100)}) {
			return
		}
		if !yield(path.CmdLineTo, []vec.Vec2{pt(120, 100)}) {
			return
		}
		const r = 40
		k := r * kappa
		if !yield(path.CmdCubeTo, []vec.Vec2{pt(120+k, 100), pt(160, 100+r-k), pt(160, 100+r)}) {
			return
		}
		yield(path.CmdCubeTo, []vec.Vec2{pt(160, 100+r+k), pt(120+k, 100+2*r), pt(120, 100+2*r)})
	}
}

// tightCurl draws a small loop in the middle of a horizontal stroke.
func tightCurl(cx, cy, size float64) path.Path {
	return parametric(120, func(t float64) vec.Vec2 {
		phi := 2 * math.Pi * t
		x := cx - size + 2*size*t - 0.4*size*math.Sin(phi)
		y := cy - 0.4*size*(1-math.Cos(phi))
		return pt(x, y)
	})
}
