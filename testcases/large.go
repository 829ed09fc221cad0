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
	"seehuhn.de/go/geom/matrix"
)

// largeCases are strokes drawn at ten times the usual size, as produced
// by high resolution input devices.
var largeCases = []Case{
	{
		Name: "large_line",
		Path: polyPath(pt(20, 100), pt(220, 100)),
		CTM:  matrix.Scale(10, 10),
		Step: 25,
		Want: "Line",
		Top:  true,
	},
	{
		Name: "large_circle",
		Path: circle(120, 120, 50),
		CTM:  matrix.Scale(10, 10),
		Step: 25,
		Want: "Circle",
		Top:  true,
	},
	{
		Name: "large_rectangle",
		Path: rectangle(20, 20, 220, 120),
		CTM:  matrix.Scale(10, 10),
		Step: 25,
		Want: "Rectangle",
		Top:  true,
	},
	{
		Name: "large_spiral",
		Path: spiralPath(150, 150, 20, 100, 3),
		CTM:  matrix.Scale(10, 10),
		Step: 25,
		Want: "Spiral",
		Top:  true,
	},
}
