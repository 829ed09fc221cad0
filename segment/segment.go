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

// Package segment splits strokes into sub-strokes at corners or at
// periodic features.
//
// The shape fits only consume segmentations.  Several strategies are
// provided here; callers may plug in their own by implementing
// [Segmenter].
package segment

import (
	"errors"
	"fmt"

	"seehuhn.de/go/sketch/stroke"
)

// ErrNoSegmentation is returned by a [Segmenter] which cannot split a
// stroke.
var ErrNoSegmentation = errors.New("segment: no valid segmentation")

// Segmentation is an ordered split of a stroke into sub-strokes which
// together cover the stroke.  The segmenters of this package let
// consecutive sub-strokes share their end points.  Custom segmenters may
// instead return pieces which follow each other without overlap; then the
// last point of each piece counts as its corner.
type Segmentation struct {
	// Name identifies the strategy which produced the segmentation.
	Name string

	// Substrokes are the pieces, in stroke order.
	Substrokes []stroke.Stroke

	// Corners are the indices of the split points in the segmented
	// stroke, including the first and last index.  Corners may be nil,
	// in which case they are derived from the sub-strokes.
	Corners []int
}

// Len returns the number of sub-strokes.
func (seg Segmentation) Len() int {
	return len(seg.Substrokes)
}

// Segmenter is implemented by segmentation strategies.  Segment returns
// the candidate segmentations best-first; at least one is returned unless
// the error is non-nil.
type Segmenter interface {
	Segment(s stroke.Stroke) ([]Segmentation, error)
}

// SegmenterFunc adapts a function to the [Segmenter] interface.
type SegmenterFunc func(s stroke.Stroke) ([]Segmentation, error)

// Segment calls f(s).
func (f SegmenterFunc) Segment(s stroke.Stroke) ([]Segmentation, error) {
	return f(s)
}

// FromCorners splits s at the given corner indices.  The indices must be
// strictly increasing; the first and last point of s are added if they
// are missing.
func FromCorners(name string, s stroke.Stroke, corners []int) (Segmentation, error) {
	if len(s) < 2 {
		return Segmentation{}, fmt.Errorf("%w: %d points", ErrNoSegmentation, len(s))
	}
	cs := make([]int, 0, len(corners)+2)
	if len(corners) == 0 || corners[0] != 0 {
		cs = append(cs, 0)
	}
	for _, c := range corners {
		if c < 0 || c >= len(s) || (len(cs) > 0 && c <= cs[len(cs)-1]) {
			return Segmentation{}, fmt.Errorf("%w: corner index %d out of order", ErrNoSegmentation, c)
		}
		cs = append(cs, c)
	}
	if cs[len(cs)-1] != len(s)-1 {
		cs = append(cs, len(s)-1)
	}

	seg := Segmentation{Name: name, Corners: cs}
	for i := 1; i < len(cs); i++ {
		seg.Substrokes = append(seg.Substrokes, s.Sub(cs[i-1], cs[i]+1))
	}
	return seg, nil
}
