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

import (
	"fmt"
	"log/slog"

	"seehuhn.de/go/sketch/segment"
	"seehuhn.de/go/sketch/stroke"
	"seehuhn.de/go/sketch/thresholds"
)

// Segmenters are the segmentation strategies used by the composite
// fits.  Nil fields select the strategies of package segment with their
// default parameters.
type Segmenters struct {
	// Corner splits strokes at corners, for polylines, polygons,
	// rectangles, diamonds, arrows and complex shapes.
	Corner segment.Segmenter

	// MultiCorner replaces Corner if the heuristic
	// PreferMultiSegmentationCornerFinder is set.
	MultiCorner segment.Segmenter

	// SmallV splits small strokes with a single corner, if the heuristic
	// DetectSmallVShapes is set.
	SmallV segment.Segmenter

	// Wave splits strokes at the extrema of a wave.
	Wave segment.Segmenter

	// Revolution splits strokes after every full turn, for spirals and
	// helixes.
	Revolution segment.Segmenter

	// Cusp splits strokes at their sharpest turn, for gulls.
	Cusp segment.Segmenter
}

func (s Segmenters) withDefaults() Segmenters {
	if s.Corner == nil {
		s.Corner = segment.CornerFinder{}
	}
	if s.MultiCorner == nil {
		s.MultiCorner = segment.MultiCornerFinder{}
	}
	if s.SmallV == nil {
		s.SmallV = segment.VSegmenter{}
	}
	if s.Wave == nil {
		s.Wave = segment.WaveSegmenter{}
	}
	if s.Revolution == nil {
		s.Revolution = segment.RevolutionSegmenter{}
	}
	if s.Cusp == nil {
		s.Cusp = segment.CuspSegmenter{}
	}
	return s
}

// arena holds the fits and segmentations computed for one stroke.  A new
// arena is used for every recognition call.
type arena struct {
	feat  *stroke.Features
	th    *thresholds.Thresholds
	cfg   Config
	seg   Segmenters
	log   *slog.Logger
	depth int

	// sub recognizes a sub-stroke, for complex fits.
	sub func(s stroke.Stroke) ([]Interpretation, error)

	fits [numKinds]Fit
	segs map[string]segResult
}

type segResult struct {
	seg segment.Segmentation
	err error
}

// get returns the fit for shape type k, computing it on first use.
func (a *arena) get(k Kind) Fit {
	if f := a.fits[k]; f != nil {
		return f
	}
	f := a.compute(k)
	a.fits[k] = f
	a.log.Debug("fit computed",
		"kind", k,
		"passed", f.Passed(),
		"fail", f.FailCode(),
		"error", f.ErrorScore())
	return f
}

// enabled returns the fit for shape type k, or nil if k is disabled.
func (a *arena) enabled(k Kind) Fit {
	if !a.cfg.Enabled(k) {
		return nil
	}
	return a.get(k)
}

func (a *arena) compute(k Kind) Fit {
	switch k {
	case Line:
		return newLineFit(a)
	case Arc:
		return newArcFit(a)
	case Curve:
		return newCurveFit(a)
	case Ellipse:
		return newEllipseFit(a)
	case Circle:
		return newCircleFit(a)
	case Spiral:
		return newSpiralFit(a)
	case Helix:
		return newHelixFit(a)
	case Polyline:
		return newPolylineFit(a)
	case Polygon:
		return newPolygonFit(a)
	case Rectangle:
		return newRectangleFit(a)
	case Square:
		return newSquareFit(a)
	case Diamond:
		return newDiamondFit(a)
	case Arrow:
		return newArrowFit(a)
	case Dot:
		return newDotFit(a)
	case Wave:
		return newWaveFit(a)
	case Gull:
		return newGullFit(a)
	case Blob:
		return newBlobFit(a)
	case Infinity:
		return newInfinityFit(a)
	case NBC:
		return newNBCFit(a)
	case Complex:
		return newComplexFit(a)
	}
	panic(fmt.Sprintf("fit: unknown kind %d", int(k)))
}

func (a *arena) ellipse() *EllipseFit     { return a.get(Ellipse).(*EllipseFit) }
func (a *arena) polyline() *PolylineFit   { return a.get(Polyline).(*PolylineFit) }
func (a *arena) rectangle() *RectangleFit { return a.get(Rectangle).(*RectangleFit) }
func (a *arena) line() *LineFit           { return a.get(Line).(*LineFit) }

// child returns a fresh arena for the sub-stroke s.
func (a *arena) child(s stroke.Stroke) *arena {
	return &arena{
		feat:  stroke.NewFeatures(s, a.cfg.Heuristics.MedianFilterDirectionGraph, a.th),
		th:    a.th,
		cfg:   a.cfg,
		seg:   a.seg,
		log:   a.log,
		depth: a.depth,
		sub:   a.sub,
	}
}

// corners returns the corner segmentation of the stroke.
func (a *arena) corners() (segment.Segmentation, error) {
	return a.segmentation("corner", func(s stroke.Stroke) (segment.Segmentation, error) {
		h := a.cfg.Heuristics
		sg := a.seg.Corner
		if h.PreferMultiSegmentationCornerFinder {
			sg = a.seg.MultiCorner
		}
		seg, err := first(sg, s)
		if h.DetectSmallVShapes && a.small() && (err != nil || seg.Len() == 1) {
			if v, vErr := first(a.seg.SmallV, s); vErr == nil {
				return v, nil
			}
		}
		return seg, err
	})
}

func (a *arena) waves() (segment.Segmentation, error) {
	return a.segmentation("wave", func(s stroke.Stroke) (segment.Segmentation, error) {
		return first(a.seg.Wave, s)
	})
}

func (a *arena) revolutions() (segment.Segmentation, error) {
	return a.segmentation("revolution", func(s stroke.Stroke) (segment.Segmentation, error) {
		return first(a.seg.Revolution, s)
	})
}

func (a *arena) cusp() (segment.Segmentation, error) {
	return a.segmentation("cusp", func(s stroke.Stroke) (segment.Segmentation, error) {
		return first(a.seg.Cusp, s)
	})
}

func (a *arena) segmentation(name string, run func(stroke.Stroke) (segment.Segmentation, error)) (segment.Segmentation, error) {
	if r, ok := a.segs[name]; ok {
		return r.seg, r.err
	}
	seg, err := run(a.feat.Points())
	if err != nil {
		a.log.Debug("segmentation failed", "strategy", name, "error", err)
	}
	if a.segs == nil {
		a.segs = make(map[string]segResult)
	}
	a.segs[name] = segResult{seg: seg, err: err}
	return seg, err
}

// small reports whether the stroke is small enough for the small-V
// fallback.
func (a *arena) small() bool {
	return a.feat.Diagonal() <= 2*a.th.ArcSmallRadius
}

// first returns the best segmentation found by sg.
func first(sg segment.Segmenter, s stroke.Stroke) (segment.Segmentation, error) {
	segs, err := sg.Segment(s)
	if err != nil {
		return segment.Segmentation{}, err
	}
	if len(segs) == 0 || segs[0].Len() == 0 {
		return segment.Segmentation{}, fmt.Errorf("%w: empty result", segment.ErrNoSegmentation)
	}
	return segs[0], nil
}
