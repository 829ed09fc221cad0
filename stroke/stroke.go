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

// Package stroke represents pen strokes and derives the geometric signals
// used by the shape fits.
package stroke

import (
	"errors"

	"seehuhn.de/go/geom/vec"
)

// ErrEmptyStroke indicates a stroke without any points.
var ErrEmptyStroke = errors.New("stroke: no points")

// Point is a sample of the pen position.
type Point struct {
	X, Y float64 // position on the drawing surface, y grows downwards
	T    float64 // time stamp in milliseconds
}

// Vec returns the position of p.
func (p Point) Vec() vec.Vec2 {
	return vec.Vec2{X: p.X, Y: p.Y}
}

// Stroke is the ordered sequence of samples between pen-down and pen-up.
// Strokes are treated as immutable; functions which need to change the
// points work on a copy.
type Stroke []Point

// Len returns the number of points.
func (s Stroke) Len() int {
	return len(s)
}

// Sub returns a copy of the contiguous sub-stroke s[i:j].
func (s Stroke) Sub(i, j int) Stroke {
	return append(Stroke(nil), s[i:j]...)
}

// Vecs returns the positions of all points.
func (s Stroke) Vecs() []vec.Vec2 {
	res := make([]vec.Vec2, len(s))
	for i, p := range s {
		res[i] = p.Vec()
	}
	return res
}

// FromVecs builds a stroke from positions, with time stamps spaced dt
// milliseconds apart.
func FromVecs(pts []vec.Vec2, dt float64) Stroke {
	s := make(Stroke, len(pts))
	for i, p := range pts {
		s[i] = Point{X: p.X, Y: p.Y, T: float64(i) * dt}
	}
	return s
}

// clean returns a copy of s without consecutive duplicate positions, and
// with strictly increasing time stamps.
func clean(s Stroke) Stroke {
	res := make(Stroke, 0, len(s))
	for i, p := range s {
		if i > 0 && p.X == res[len(res)-1].X && p.Y == res[len(res)-1].Y {
			continue
		}
		res = append(res, p)
	}

	for i := 1; i < len(res); i++ {
		prev := res[i-1].T
		if res[i].T > prev {
			continue
		}
		j := i + 1
		for j < len(res) && res[j].T <= prev {
			j++
		}
		if j < len(res) {
			step := (res[j].T - prev) / float64(j-i+1)
			for k := i; k < j; k++ {
				res[k].T = prev + step*float64(k-i+1)
			}
		} else {
			for k := i; k < len(res); k++ {
				res[k].T = res[k-1].T + 1
			}
		}
		i = j - 1
	}
	return res
}
