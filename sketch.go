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

// Package sketch recognizes hand-drawn pen strokes as geometric primitives.
//
// A stroke is the sequence of time-stamped pen positions between pen-down
// and pen-up.  [Recognize] tests the stroke against about twenty shape
// types (lines, arcs, circles, polygons, spirals and so on) and returns the
// candidate interpretations, best first.  Every interpretation carries a
// beautified version of the stroke.
//
// The work is done by [fit.Recognizer]; this package adds functional
// options for the common settings.
package sketch

//go:generate go run ./testcases/export

import (
	"errors"
	"fmt"
	"log/slog"

	"seehuhn.de/go/sketch/fit"
	"seehuhn.de/go/sketch/segment"
	"seehuhn.de/go/sketch/stroke"
	"seehuhn.de/go/sketch/thresholds"
)

// ErrUnknownLabel is returned by [WithLabels] for a label which names no
// shape type.
var ErrUnknownLabel = errors.New("sketch: unknown shape label")

// Interpretation is one candidate reading of a stroke.
type Interpretation = fit.Interpretation

// Option configures a recognizer.
type Option func(*fit.Recognizer) error

// NewRecognizer returns a recognizer for all shape types and the default
// thresholds, modified by the given options.
func NewRecognizer(opts ...Option) (*fit.Recognizer, error) {
	r := &fit.Recognizer{}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Recognize returns the interpretations of s, best first.  Empty strokes
// give [stroke.ErrEmptyStroke].
func Recognize(s stroke.Stroke, opts ...Option) ([]Interpretation, error) {
	r, err := NewRecognizer(opts...)
	if err != nil {
		return nil, err
	}
	return r.Recognize(s)
}

// WithThresholds sets the recognition constants.
func WithThresholds(th *thresholds.Thresholds) Option {
	return func(r *fit.Recognizer) error {
		r.Thresholds = th
		return nil
	}
}

// WithDPI scales the recognition constants to the resolution of the input
// device, in dots per inch.
func WithDPI(dpi float64) Option {
	return func(r *fit.Recognizer) error {
		th, err := thresholds.New(dpi)
		if err != nil {
			return err
		}
		r.Thresholds = th
		return nil
	}
}

// WithConfig sets the shape types and heuristics.
func WithConfig(c fit.Config) Option {
	return func(r *fit.Recognizer) error {
		r.Config = &c
		return nil
	}
}

// WithKinds restricts recognition to the given shape types.  Heuristics
// set by an earlier option are kept.
func WithKinds(kinds ...fit.Kind) Option {
	return func(r *fit.Recognizer) error {
		c := fit.OnlyConfig(kinds...)
		if r.Config != nil {
			c.Heuristics = r.Config.Heuristics
		}
		r.Config = &c
		return nil
	}
}

// WithLabels is like [WithKinds], but takes shape type labels such as
// "Circle".
func WithLabels(labels ...string) Option {
	return func(r *fit.Recognizer) error {
		kinds := make([]fit.Kind, len(labels))
		for i, label := range labels {
			k, ok := fit.ParseKind(label)
			if !ok {
				return fmt.Errorf("%w: %q", ErrUnknownLabel, label)
			}
			kinds[i] = k
		}
		return WithKinds(kinds...)(r)
	}
}

// WithHeuristics sets the optional refinements of the fits.  The enabled
// shape types are kept.
func WithHeuristics(h fit.Heuristics) Option {
	return func(r *fit.Recognizer) error {
		c := fit.DefaultConfig()
		if r.Config != nil {
			c = *r.Config
		}
		c.Heuristics = h
		r.Config = &c
		return nil
	}
}

// WithLogger sets the logger for debug records.  A nil logger disables
// logging.
func WithLogger(l *slog.Logger) Option {
	return func(r *fit.Recognizer) error {
		r.Logger = l
		return nil
	}
}

// WithSegmenter replaces the corner finder used by the composite fits.
func WithSegmenter(sg segment.Segmenter) Option {
	return func(r *fit.Recognizer) error {
		r.Segmenters.Corner = sg
		return nil
	}
}

// WithSegmenters replaces all segmentation strategies.  Nil fields select
// the defaults.
func WithSegmenters(sg fit.Segmenters) Option {
	return func(r *fit.Recognizer) error {
		r.Segmenters = sg
		return nil
	}
}
