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
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/simplify"

	"seehuhn.de/go/sketch/internal/geometry"
	"seehuhn.de/go/sketch/stroke"
)

// DefaultCornerTolerance is the Douglas–Peucker tolerance of a
// [CornerFinder], relative to the bounding box diagonal.
const DefaultCornerTolerance = 0.04

// CornerFinder splits a stroke at the vertices kept by Douglas–Peucker
// simplification.
type CornerFinder struct {
	// Tolerance is the maximal distance between the stroke and the
	// simplified polyline, as a fraction of the bounding box diagonal.
	// Zero selects DefaultCornerTolerance.
	Tolerance float64
}

// Segment implements the [Segmenter] interface.
func (cf CornerFinder) Segment(s stroke.Stroke) ([]Segmentation, error) {
	corners, err := cf.corners(s)
	if err != nil {
		return nil, err
	}
	seg, err := FromCorners("corner", s, corners)
	if err != nil {
		return nil, err
	}
	return []Segmentation{seg}, nil
}

func (cf CornerFinder) corners(s stroke.Stroke) ([]int, error) {
	if len(s) < 2 {
		return nil, fmt.Errorf("%w: %d points", ErrNoSegmentation, len(s))
	}
	tol := cf.Tolerance
	if tol <= 0 {
		tol = DefaultCornerTolerance
	}
	diag := diagonal(s)
	if diag == 0 {
		return nil, fmt.Errorf("%w: stroke has no extent", ErrNoSegmentation)
	}

	ls := make(orb.LineString, len(s))
	for i, p := range s {
		ls[i] = orb.Point{p.X, p.Y}
	}
	simplified, ok := simplify.DouglasPeucker(tol * diag).Simplify(ls.Clone()).(orb.LineString)
	if !ok || len(simplified) < 2 {
		return nil, fmt.Errorf("%w: simplification failed", ErrNoSegmentation)
	}

	// The simplifier keeps a subsequence of the input points, so the
	// indices are recovered by a forward scan.
	corners := make([]int, 0, len(simplified))
	j := 0
	for _, q := range simplified {
		for j < len(ls) && ls[j] != q {
			j++
		}
		if j == len(ls) {
			return nil, fmt.Errorf("%w: simplified vertex not on stroke", ErrNoSegmentation)
		}
		corners = append(corners, j)
		j++
	}
	if corners[len(corners)-1] != len(s)-1 {
		corners = append(corners, len(s)-1)
	}
	return corners, nil
}

// MultiCornerFinder runs a [CornerFinder] at several tolerances and
// returns the distinct results, best first.
type MultiCornerFinder struct {
	// Tolerances lists the relative tolerances to try.  Nil selects
	// DefaultTolerances.
	Tolerances []float64
}

// DefaultTolerances are the tolerances tried by a [MultiCornerFinder].
var DefaultTolerances = []float64{0.02, 0.04, 0.07, 0.1}

// Segment implements the [Segmenter] interface.
func (mf MultiCornerFinder) Segment(s stroke.Stroke) ([]Segmentation, error) {
	tols := mf.Tolerances
	if tols == nil {
		tols = DefaultTolerances
	}

	type candidate struct {
		seg   Segmentation
		score float64
	}
	var cands []candidate
	var lastErr error
	diag := diagonal(s)
	for _, tol := range tols {
		corners, err := CornerFinder{Tolerance: tol}.corners(s)
		if err != nil {
			lastErr = err
			continue
		}
		if slices.ContainsFunc(cands, func(c candidate) bool { return slices.Equal(c.seg.Corners, corners) }) {
			continue
		}
		seg, err := FromCorners("multi-corner", s, corners)
		if err != nil {
			lastErr = err
			continue
		}
		cands = append(cands, candidate{seg: seg, score: score(seg, diag)})
	}
	if len(cands) == 0 {
		if lastErr == nil {
			lastErr = ErrNoSegmentation
		}
		return nil, lastErr
	}

	slices.SortStableFunc(cands, func(a, b candidate) int {
		return cmp.Compare(a.score, b.score)
	})
	res := make([]Segmentation, len(cands))
	for i, c := range cands {
		res[i] = c.seg
	}
	return res, nil
}

// score balances the number of segments against the RMS distance of the
// points from their segment chords, measured in percent of the diagonal.
func score(seg Segmentation, diag float64) float64 {
	var sse float64
	var n int
	for _, sub := range seg.Substrokes {
		pts := sub.Vecs()
		chord := geometry.Line{A: pts[0], B: pts[len(pts)-1]}
		for _, p := range pts {
			d := chord.SegmentDist(p)
			sse += d * d
		}
		n += len(pts)
	}
	rms := math.Sqrt(sse / float64(max(n, 1)))
	return float64(seg.Len()) + 100*rms/diag
}

func diagonal(s stroke.Stroke) float64 {
	if len(s) == 0 {
		return 0
	}
	xMin, xMax := s[0].X, s[0].X
	yMin, yMax := s[0].Y, s[0].Y
	for _, p := range s[1:] {
		xMin, xMax = min(xMin, p.X), max(xMax, p.X)
		yMin, yMax = min(yMin, p.Y), max(yMax, p.Y)
	}
	return math.Hypot(xMax-xMin, yMax-yMin)
}
