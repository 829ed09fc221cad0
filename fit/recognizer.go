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
	"log/slog"
	"maps"

	"seehuhn.de/go/sketch/shape"
	"seehuhn.de/go/sketch/stroke"
	"seehuhn.de/go/sketch/thresholds"
)

// Interpretation is one candidate reading of a stroke.
type Interpretation struct {
	// Label names the shape type, for example "Circle".
	Label string

	Kind Kind

	// Error is the fit error of the shape type.  Values of different
	// shape types are not comparable.
	Error float64

	// Confidence is derived from the rank alone: 1 - i/n for the i-th of
	// n interpretations.
	Confidence float64

	// Shape is the beautified geometry, or nil.
	Shape *shape.Shape

	Attributes map[string]string
}

// Recognizer classifies single pen strokes.  The zero value is ready to
// use and recognizes all shape types with the default thresholds.
//
// A Recognizer is not modified by recognition and may be used
// concurrently, provided the segmenters may.
type Recognizer struct {
	// Thresholds are the recognition constants.  Nil selects
	// [thresholds.Default].
	Thresholds *thresholds.Thresholds

	// Config selects the shape types and heuristics.  Nil selects
	// [DefaultConfig].
	Config *Config

	// Segmenters are the segmentation strategies.
	Segmenters Segmenters

	// Logger receives debug records about every recognition.  Nil
	// disables logging.
	Logger *slog.Logger
}

// Analysis is the complete outcome of recognizing a stroke.
type Analysis struct {
	Features *stroke.Features

	// List is the ordered list of passed fits.
	List *List

	// Interpretations are the entries of List, with confidences.
	Interpretations []Interpretation

	fits [numKinds]Fit
}

// Fit returns the fit of shape type k, or nil if k is disabled or was
// not needed.  Fits of all enabled shape types are available after
// [Recognizer.Analyze].  Failed fits are included.
func (an *Analysis) Fit(k Kind) Fit {
	if k < 0 || k >= numKinds {
		return nil
	}
	return an.fits[k]
}

// Hierarchy returns the index of the ordering rule which inserted the
// best interpretation.
func (an *Analysis) Hierarchy() int {
	return an.List.Hierarchy()
}

// Recognize returns the interpretations of s, best first.  The stroke
// must have at least one point; an empty stroke gives
// [stroke.ErrEmptyStroke].  Single points are recognized as dots.
func (r *Recognizer) Recognize(s stroke.Stroke) ([]Interpretation, error) {
	an, err := r.run(s, 0, false)
	if err != nil {
		return nil, err
	}
	return an.Interpretations, nil
}

// Analyze is like [Recognizer.Recognize], but also computes the fits of
// all enabled shape types and returns them together with the features.
// Like Recognize, it fails with [stroke.ErrEmptyStroke] for empty strokes.
func (r *Recognizer) Analyze(s stroke.Stroke) (*Analysis, error) {
	return r.run(s, 0, true)
}

func (r *Recognizer) run(s stroke.Stroke, depth int, all bool) (*Analysis, error) {
	if len(s) == 0 {
		return nil, stroke.ErrEmptyStroke
	}

	th := r.Thresholds
	if th == nil {
		th = thresholds.Default()
	}
	cfg := DefaultConfig()
	if r.Config != nil {
		cfg = *r.Config
	}
	log := r.Logger
	if log == nil {
		log = nopLogger
	}
	if depth > 0 {
		log = log.With("depth", depth)
	}

	feat := stroke.NewFeatures(s, cfg.Heuristics.MedianFilterDirectionGraph, th)
	log.Debug("stroke features",
		"points", feat.Len(),
		"length", feat.Length(),
		"revolutions", feat.Revolutions(),
		"closed", feat.Closed(),
		"overtraced", feat.Overtraced(),
		"ndde", feat.NDDE(),
		"dcr", feat.DCR())

	a := &arena{
		feat:  feat,
		th:    th,
		cfg:   cfg,
		seg:   r.Segmenters.withDefaults(),
		log:   log,
		depth: depth,
	}
	a.sub = func(sub stroke.Stroke) ([]Interpretation, error) {
		an, err := r.run(sub, depth+1, false)
		if err != nil {
			return nil, err
		}
		return an.Interpretations, nil
	}

	list := NewList()
	list.convert = func(f Fit) Fit {
		if pl, ok := f.(*PolylineFit); ok && pl.Segments() <= 1 {
			return a.enabled(Line)
		}
		return f
	}
	o := &orderer{
		list:   list,
		lookup: a.enabled,
		sig: signals{
			closed:          feat.Closed(),
			overtraced:      feat.Overtraced(),
			dirWindowPassed: feat.DirWindowPassed(),
			diagonal:        feat.Diagonal(),
			dcr:             feat.DCR(),
		},
		th:  th,
		log: log,
	}
	if feat.Len() < 2 {
		// a single point can only be a dot
		o.rule = 1
		list.Add(a.enabled(Dot), o.rule)
		if list.Len() == 0 {
			return nil, ErrTooFewPoints
		}
	} else {
		o.run()
	}

	if all {
		for k := range numKinds {
			a.enabled(k)
		}
	}

	an := &Analysis{
		Features:        feat,
		List:            list,
		Interpretations: interpretations(list),
	}
	for k, f := range a.fits {
		if cfg.Enabled(Kind(k)) {
			an.fits[k] = f
		}
	}
	return an, nil
}

func interpretations(l *List) []Interpretation {
	fits := l.Fits()
	res := make([]Interpretation, len(fits))
	n := float64(len(fits))
	for i, f := range fits {
		res[i] = Interpretation{
			Label:      f.Name(),
			Kind:       f.Kind(),
			Error:      f.ErrorScore(),
			Confidence: 1 - float64(i)/n,
			Shape:      f.Shape(),
			Attributes: maps.Clone(f.Attributes()),
		}
	}
	return res
}
