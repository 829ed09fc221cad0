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

package fit

import "fmt"

// Kind identifies a primitive shape type.
type Kind int

// The primitive shape types, in the order in which they are computed by
// [Recognizer.Analyze].
const (
	Line Kind = iota
	Arc
	Curve
	Ellipse
	Circle
	Spiral
	Helix
	Polyline
	Polygon
	Rectangle
	Square
	Diamond
	Arrow
	Dot
	Wave
	Gull
	Blob
	Infinity
	NBC
	Complex

	numKinds
)

var kindNames = [numKinds]string{
	Line:      "Line",
	Arc:       "Arc",
	Curve:     "Curve",
	Ellipse:   "Ellipse",
	Circle:    "Circle",
	Spiral:    "Spiral",
	Helix:     "Helix",
	Polyline:  "Polyline",
	Polygon:   "Polygon",
	Rectangle: "Rectangle",
	Square:    "Square",
	Diamond:   "Diamond",
	Arrow:     "Arrow",
	Dot:       "Dot",
	Wave:      "Wave",
	Gull:      "Gull",
	Blob:      "Blob",
	Infinity:  "Infinity",
	NBC:       "NBC",
	Complex:   "Complex",
}

// String returns the label of the shape type.
func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Kinds returns all shape types.
func Kinds() []Kind {
	res := make([]Kind, numKinds)
	for i := range res {
		res[i] = Kind(i)
	}
	return res
}

// ParseKind returns the shape type with the given label.
func ParseKind(label string) (Kind, bool) {
	for k, name := range kindNames {
		if name == label {
			return Kind(k), true
		}
	}
	return 0, false
}
