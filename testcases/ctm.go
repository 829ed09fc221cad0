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

// transformedCases repeat basic shapes under rotations and scalings.  The
// recognition result must not depend on the orientation of the drawing.
var transformedCases = []Case{
	{
		Name: "line_rotate_30deg",
		Path: polyPath(pt(-80, 0), pt(80, 0)),
		CTM:  matrix.RotateDeg(30).Translate(120, 120),
		Want: "Line",
		Top:  true,
	},
	{
		Name: "line_rotate_90deg",
		Path: polyPath(pt(-80, 0), pt(80, 0)),
		CTM:  matrix.RotateDeg(90).Translate(120, 120),
		Want: "Line",
		Top:  true,
	},
	{
		Name: "circle_scale_half",
		Path: circle(0, 0, 80),
		CTM:  matrix.Scale(0.5, 0.5).Translate(100, 100),
		Want: "Circle",
		Top:  true,
	},
	{
		Name: "ellipse_rotate_45deg",
		Path: ellipse(0, 0, 60, 25),
		CTM:  matrix.RotateDeg(45).Translate(120, 120),
		Want: "Ellipse",
		Top:  true,
	},
	{
		Name: "circle_stretched",
		Path: circle(0, 0, 40),
		CTM:  matrix.Scale(1.5, 0.6).Translate(120, 120),
		Want: "Ellipse",
		Top:  true,
	},
	{
		Name: "rectangle_rotate_5deg",
		Path: rectangle(-60, -30, 60, 30),
		CTM:  matrix.RotateDeg(5).Translate(120, 120),
		Want: "Rectangle",
		Top:  true,
	},
	{
		Name: "square_rotate_45deg",
		Path: rectangle(-50, -50, 50, 50),
		CTM:  matrix.RotateDeg(45).Translate(120, 120),
		Want: "Diamond",
		Top:  true,
	},
	{
		Name: "arc_mirrored",
		Path: arcPath(0, 0, 60, 0, 3.14159),
		CTM:  matrix.Scale(1, -1).Translate(120, 120),
		Want: "Arc",
		Top:  true,
	},
}
