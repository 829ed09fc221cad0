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

package segment

import (
	"fmt"
	"math"

	"seehuhn.de/go/sketch/internal/geometry"
	"seehuhn.de/go/sketch/stroke"
)

// WaveSegmenter splits a stroke at the extrema of its displacement
// perpendicular to the chord from the first to the last point.
type WaveSegmenter struct {
	// Hysteresis is the fraction of the displacement range a signal must
	// move back before an extremum is accepted.  Zero selects 0.25.
	Hysteresis float64
}

// Segment implements the [Segmenter] interface.
func (ws WaveSegmenter) Segment(s stroke.Stroke) ([]Segmentation, error) {
	if len(s) < 3 {
		return nil, fmt.Errorf("%w: %d points", ErrNoSegmentation, len(s))
	}
	pts := s.Vecs()
	axis := geometry.Line{A: pts[0], B: pts[len(pts)-1]}
	if axis.Length() == 0 {
		return nil, fmt.Errorf("%w: closed stroke has no wave axis", ErrNoSegmentation)
	}

	v := make([]float64, len(pts))
	vMin, vMax := math.Inf(1), math.Inf(-1)
	for i, p := range pts {
		v[i] = axis.Side(p) / axis.Length()
		vMin, vMax = min(vMin, v[i]), max(vMax, v[i])
	}
	h := ws.Hysteresis
	if h <= 0 {
		h = 0.25
	}
	h *= vMax - vMin
	if h == 0 {
		return nil, fmt.Errorf("%w: stroke is straight", ErrNoSegmentation)
	}

	// dir is +1 while searching a maximum and -1 while searching a minimum
	var corners []int
	dir := 0
	ext := 0
	for i := 1; i < len(v); i++ {
		switch {
		case dir == 0:
			if v[i]-v[0] >= h {
				dir, ext = 1, i
			} else if v[0]-v[i] >= h {
				dir, ext = -1, i
			}
		case dir > 0:
			if v[i] > v[ext] {
				ext = i
			} else if v[ext]-v[i] >= h {
				corners = append(corners, ext)
				dir, ext = -1, i
			}
		default:
			if v[i] < v[ext] {
				ext = i
			} else if v[i]-v[ext] >= h {
				corners = append(corners, ext)
				dir, ext = 1, i
			}
		}
	}
	if len(corners) == 0 {
		return nil, fmt.Errorf("%w: no extrema", ErrNoSegmentation)
	}

	seg, err := FromCorners("wave", s, corners)
	if err != nil {
		return nil, err
	}
	return []Segmentation{seg}, nil
}

// RevolutionSegmenter splits a stroke after every full turn.
type RevolutionSegmenter struct{}

// Segment implements the [Segmenter] interface.  Strokes with less than
// one full turn give a single sub-stroke.
func (RevolutionSegmenter) Segment(s stroke.Stroke) ([]Segmentation, error) {
	if len(s) < 3 {
		return nil, fmt.Errorf("%w: %d points", ErrNoSegmentation, len(s))
	}
	pts := s.Vecs()
	var corners []int
	var acc float64
	for i := 1; i < len(pts)-1; i++ {
		a := pts[i].Sub(pts[i-1])
		b := pts[i+1].Sub(pts[i])
		acc += math.Atan2(geometry.Cross(a, b), a.Dot(b))
		if math.Abs(acc) >= 2*math.Pi {
			corners = append(corners, i)
			acc -= math.Copysign(2*math.Pi, acc)
		}
	}
	seg, err := FromCorners("revolution", s, corners)
	if err != nil {
		return nil, err
	}
	return []Segmentation{seg}, nil
}

// VSegmenter splits a stroke into two pieces at the point farthest from
// the chord.  It serves as a fallback for small V shapes, where corner
// finding is unreliable.
type VSegmenter struct{}

// Segment implements the [Segmenter] interface.
func (VSegmenter) Segment(s stroke.Stroke) ([]Segmentation, error) {
	if len(s) < 3 {
		return nil, fmt.Errorf("%w: %d points", ErrNoSegmentation, len(s))
	}
	pts := s.Vecs()
	chord := geometry.Line{A: pts[0], B: pts[len(pts)-1]}
	best, bestD := 0, 0.0
	for i := 1; i < len(pts)-1; i++ {
		if d := chord.SegmentDist(pts[i]); d > bestD {
			best, bestD = i, d
		}
	}
	if best == 0 {
		return nil, fmt.Errorf("%w: no apex", ErrNoSegmentation)
	}
	seg, err := FromCorners("v", s, []int{best})
	if err != nil {
		return nil, err
	}
	return []Segmentation{seg}, nil
}

// CuspSegmenter splits a stroke into two pieces at its sharpest turn.
// Points within the first and last tenth of the stroke are not
// considered.
type CuspSegmenter struct{}

// Segment implements the [Segmenter] interface.
func (CuspSegmenter) Segment(s stroke.Stroke) ([]Segmentation, error) {
	if len(s) < 5 {
		return nil, fmt.Errorf("%w: %d points", ErrNoSegmentation, len(s))
	}
	pts := s.Vecs()
	margin := max(1, len(pts)/10)
	best, bestTurn := 0, 0.0
	for i := margin; i < len(pts)-margin; i++ {
		a := pts[i].Sub(pts[i-1])
		b := pts[i+1].Sub(pts[i])
		turn := math.Abs(math.Atan2(geometry.Cross(a, b), a.Dot(b)))
		if turn > bestTurn {
			best, bestTurn = i, turn
		}
	}
	if best == 0 {
		return nil, fmt.Errorf("%w: no cusp", ErrNoSegmentation)
	}
	seg, err := FromCorners("cusp", s, []int{best})
	if err != nil {
		return nil, err
	}
	return []Segmentation{seg}, nil
}
