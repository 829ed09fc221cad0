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
	"math"
	"slices"

	"seehuhn.de/go/sketch/thresholds"
)

// signals are the stroke properties consulted by the ordering rules.
type signals struct {
	closed          bool
	overtraced      bool
	dirWindowPassed bool
	diagonal        float64
	dcr             float64
}

// orderer applies the ordering rules to a list.
type orderer struct {
	list   *List
	lookup func(Kind) Fit // nil for disabled shape types
	sig    signals
	th     *thresholds.Thresholds
	log    *slog.Logger
	rule   int
}

// rule is one step of the ordering.  Its 1-based position in rules is
// recorded as the hierarchy index of the fits it inserts.
type rule struct {
	name  string
	apply func(o *orderer)
}

// Accessors used by rules which look at the parameters of a fit.
type (
	segmented interface{ Segments() int }
	sided     interface{ Sides() int }
	swept     interface{ Sweep() float64 }
	composed  interface{ PartLabels() []string }
	periodic  interface{ Extrema() int }
)

// run applies all rules in order.
func (o *orderer) run() {
	for i, r := range rules {
		o.rule = i + 1
		before := o.kinds()
		r.apply(o)
		if after := o.kinds(); !slices.Equal(before, after) {
			o.log.Debug("ordering rule applied", "rule", o.rule, "name", r.name, "list", after)
		}
	}
}

func (o *orderer) kinds() []Kind {
	res := make([]Kind, len(o.list.entries))
	for i, e := range o.list.entries {
		res[i] = e.fit.Kind()
	}
	return res
}

func (o *orderer) fit(k Kind) Fit {
	return o.lookup(k)
}

func (o *orderer) passed(k Kind) bool {
	f := o.fit(k)
	return f != nil && f.Passed()
}

func (o *orderer) has(k Kind) bool { return o.list.Has(k) }
func (o *orderer) empty() bool     { return o.list.Len() == 0 }
func (o *orderer) add(k Kind)      { o.list.Add(o.fit(k), o.rule) }
func (o *orderer) remove(k Kind)   { o.list.Remove(k) }
func (o *orderer) toTail(k Kind)   { o.list.MoveToTail(k) }

func (o *orderer) insertBefore(k, before Kind) {
	o.list.InsertBefore(o.fit(k), before, o.rule)
}

// err returns the error of the fit of shape type k.  Missing fits have
// the largest possible error.
func (o *orderer) err(k Kind) float64 {
	f := o.list.Get(k)
	if f == nil {
		f = o.fit(k)
	}
	if f == nil {
		return math.Inf(1)
	}
	return f.ErrorScore()
}

// first returns the listed kind among ks which comes first in the list.
func (o *orderer) first(ks ...Kind) (Kind, bool) {
	best, bestIdx := Kind(0), -1
	for _, k := range ks {
		if i := o.list.Index(k); i >= 0 && (bestIdx < 0 || i < bestIdx) {
			best, bestIdx = k, i
		}
	}
	return best, bestIdx >= 0
}

func (o *orderer) segments(k Kind) int {
	if s, ok := o.fit(k).(segmented); ok {
		return s.Segments()
	}
	return 0
}

func (o *orderer) sides(k Kind) int {
	if s, ok := o.fit(k).(sided); ok {
		return s.Sides()
	}
	return 0
}

func (o *orderer) sweep(k Kind) float64 {
	if s, ok := o.fit(k).(swept); ok {
		return math.Abs(s.Sweep())
	}
	return 0
}

func (o *orderer) extrema(k Kind) int {
	if p, ok := o.fit(k).(periodic); ok {
		return p.Extrema()
	}
	return 0
}

// onlyLines reports whether all parts of the complex fit are lines.
func (o *orderer) onlyLines() bool {
	c, ok := o.fit(Complex).(composed)
	if !ok {
		return false
	}
	labels := c.PartLabels()
	return len(labels) > 0 && !slices.ContainsFunc(labels, func(l string) bool { return l != Line.String() })
}

// specific reports whether the list holds a fit other than the generic
// fall back shapes.
func (o *orderer) specific() bool {
	return slices.ContainsFunc(o.list.entries, func(e entry) bool {
		switch e.fit.Kind() {
		case Polyline, Curve, Blob, NBC, Complex:
			return false
		}
		return true
	})
}

// demoteRoundBoxes removes the box kind k if an ellipse passed, unless
// the box fits better or the direction graph is not monotone.
func (o *orderer) demoteRoundBoxes(k, round Kind) {
	if !o.has(k) || !o.passed(round) {
		return
	}
	if o.err(k) < o.err(round) || !o.sig.dirWindowPassed {
		return
	}
	o.remove(k)
}

var rules = []rule{
	// dots
	{"dot", func(o *orderer) { o.add(Dot) }},

	// overtraced strokes
	{"overtraced-spiral", func(o *orderer) {
		if o.sig.overtraced {
			o.add(Spiral)
		}
	}},
	{"overtraced-helix", func(o *orderer) {
		if o.sig.overtraced {
			o.add(Helix)
		}
	}},
	{"overtraced-circle", func(o *orderer) {
		if o.sig.overtraced {
			o.add(Circle)
		}
	}},
	{"overtraced-ellipse", func(o *orderer) {
		if o.sig.overtraced {
			o.add(Ellipse)
		}
	}},
	{"circle-before-spiral", func(o *orderer) {
		if o.has(Spiral) && o.has(Circle) && o.err(Circle) < o.err(Spiral) {
			o.toTail(Spiral)
		}
	}},
	{"helix-before-spiral", func(o *orderer) {
		if o.has(Spiral) && o.has(Helix) && o.err(Helix) < o.err(Spiral) {
			o.insertBefore(Helix, Spiral)
		}
	}},
	{"circle-before-ellipse", func(o *orderer) {
		if o.has(Circle) && o.has(Ellipse) {
			o.insertBefore(Circle, Ellipse)
		}
	}},
	{"overtraced-blob", func(o *orderer) {
		if o.sig.overtraced && o.empty() {
			o.add(Blob)
		}
	}},

	// open strokes: lines, arcs and curves
	{"line", func(o *orderer) {
		if !o.sig.closed {
			o.add(Line)
		}
	}},
	{"arc", func(o *orderer) {
		if !o.sig.closed {
			o.add(Arc)
		}
	}},
	{"bent-arc-before-line", func(o *orderer) {
		if o.has(Line) && o.has(Arc) && o.sweep(Arc) >= math.Pi/2 {
			o.insertBefore(Arc, Line)
		}
	}},
	{"curve-after-line", func(o *orderer) {
		if !o.sig.closed && o.has(Line) {
			o.add(Curve)
		}
	}},
	{"corner-polyline-before-arc", func(o *orderer) {
		if o.has(Arc) && o.passed(Polyline) && o.segments(Polyline) == 2 && o.sig.dcr > o.th.ArcDCR {
			o.insertBefore(Polyline, Arc)
		}
	}},
	{"smooth-arc-before-polyline", func(o *orderer) {
		if o.has(Arc) && o.passed(Polyline) && o.segments(Polyline) == 2 && o.sig.dcr <= o.th.ArcDCR {
			o.add(Polyline)
		}
	}},

	// closed curved shapes
	{"closed-circle", func(o *orderer) {
		if o.sig.closed {
			o.add(Circle)
		}
	}},
	{"closed-ellipse", func(o *orderer) {
		if o.sig.closed {
			o.add(Ellipse)
		}
	}},
	{"closed-circle-before-ellipse", func(o *orderer) {
		if o.has(Circle) && o.has(Ellipse) {
			o.insertBefore(Circle, Ellipse)
		}
	}},
	{"arc-after-circle", func(o *orderer) {
		if o.has(Arc) && (o.has(Circle) || o.has(Ellipse)) {
			o.toTail(Arc)
		}
	}},

	// boxes and polygons
	{"rectangle", func(o *orderer) { o.add(Rectangle) }},
	{"square-before-rectangle", func(o *orderer) {
		if o.has(Rectangle) {
			o.insertBefore(Square, Rectangle)
		}
	}},
	{"square", func(o *orderer) { o.add(Square) }},
	{"diamond", func(o *orderer) { o.add(Diamond) }},
	{"rectangle-and-diamond", func(o *orderer) {
		if (o.has(Rectangle) || o.has(Square)) && o.has(Diamond) {
			o.toTail(Rectangle)
			o.toTail(Square)
			o.toTail(Diamond)
		}
	}},
	{"ellipse-suppresses-rectangle", func(o *orderer) { o.demoteRoundBoxes(Rectangle, Ellipse) }},
	{"ellipse-suppresses-square", func(o *orderer) { o.demoteRoundBoxes(Square, Ellipse) }},
	{"circle-suppresses-square", func(o *orderer) { o.demoteRoundBoxes(Square, Circle) }},
	{"rectangle-before-round", func(o *orderer) {
		if !o.has(Rectangle) {
			return
		}
		if round, ok := o.first(Circle, Ellipse); ok && o.err(Rectangle) < o.err(round) {
			o.insertBefore(Rectangle, round)
		}
	}},
	{"square-before-round", func(o *orderer) {
		if !o.has(Square) {
			return
		}
		if round, ok := o.first(Circle, Ellipse); ok && o.err(Square) < o.err(round) {
			o.insertBefore(Square, round)
		}
	}},
	{"polygon", func(o *orderer) {
		if !o.has(Rectangle) && !o.has(Square) && !o.has(Diamond) {
			o.add(Polygon)
		}
	}},
	{"polygon-after-boxes", func(o *orderer) { o.add(Polygon) }},
	{"many-sided-polygon-after-round", func(o *orderer) {
		if o.has(Polygon) && o.sides(Polygon) >= 7 && (o.has(Circle) || o.has(Ellipse)) {
			o.toTail(Polygon)
		}
	}},
	{"triangle-before-round", func(o *orderer) {
		if !o.has(Polygon) || o.sides(Polygon) != 3 {
			return
		}
		if round, ok := o.first(Circle, Ellipse); ok {
			o.insertBefore(Polygon, round)
		}
	}},

	// composite open shapes
	{"arrow", func(o *orderer) {
		if o.has(Line) {
			o.insertBefore(Arrow, Line)
		} else {
			o.add(Arrow)
		}
	}},
	{"wave", func(o *orderer) { o.add(Wave) }},
	{"wave-before-arc", func(o *orderer) {
		if o.has(Wave) && o.has(Arc) {
			o.insertBefore(Wave, Arc)
		}
	}},
	{"wave-before-curve", func(o *orderer) {
		if o.has(Wave) && o.has(Curve) {
			o.insertBefore(Wave, Curve)
		}
	}},
	{"gull", func(o *orderer) { o.add(Gull) }},
	{"gull-before-short-wave", func(o *orderer) {
		if o.has(Gull) && o.has(Wave) && o.extrema(Wave) < 3 {
			o.insertBefore(Gull, Wave)
		}
	}},
	{"gull-before-arc", func(o *orderer) {
		if o.has(Gull) && o.has(Arc) {
			o.insertBefore(Gull, Arc)
		}
	}},
	{"infinity", func(o *orderer) { o.add(Infinity) }},
	{"infinity-before-round", func(o *orderer) {
		if !o.has(Infinity) {
			return
		}
		if round, ok := o.first(Circle, Ellipse); ok {
			o.insertBefore(Infinity, round)
		}
	}},
	{"infinity-before-polygon", func(o *orderer) {
		if o.has(Infinity) && o.has(Polygon) {
			o.insertBefore(Infinity, Polygon)
		}
	}},

	// polylines
	{"open-polyline", func(o *orderer) {
		if !o.sig.closed && !o.has(Arrow) && !o.has(Wave) {
			o.add(Polyline)
		}
	}},
	{"polyline-before-curve", func(o *orderer) {
		if o.has(Polyline) && o.has(Curve) && o.sig.dcr > o.th.CurveDCR {
			o.insertBefore(Polyline, Curve)
		}
	}},
	{"polyline-after-arrow", func(o *orderer) {
		if o.has(Arrow) {
			o.add(Polyline)
		}
	}},
	{"zigzag-before-wave", func(o *orderer) {
		if o.has(Wave) && o.passed(Polyline) && o.sig.dcr > o.th.CurveDCR {
			o.insertBefore(Polyline, Wave)
		}
	}},
	{"closed-polyline", func(o *orderer) {
		if o.sig.closed && o.empty() {
			o.add(Polyline)
		}
	}},
	{"polyline", func(o *orderer) {
		if !o.has(Polygon) {
			o.add(Polyline)
		}
	}},

	// free-form shapes
	{"curve", func(o *orderer) {
		if !o.has(Arc) {
			o.add(Curve)
		}
	}},
	{"curve-after-arc", func(o *orderer) { o.add(Curve) }},
	{"smooth-curve-before-polyline", func(o *orderer) {
		if o.has(Curve) && o.has(Polyline) && o.segments(Polyline) > 4 && o.sig.dcr <= o.th.CurveDCR {
			o.insertBefore(Curve, Polyline)
		}
	}},
	{"blob", func(o *orderer) {
		if o.sig.closed || o.sig.overtraced {
			o.add(Blob)
		}
	}},
	{"blob-after-round", func(o *orderer) {
		if o.has(Blob) && (o.has(Circle) || o.has(Ellipse)) {
			o.toTail(Blob)
		}
	}},
	{"blob-before-jagged-polyline", func(o *orderer) {
		if o.has(Blob) && o.has(Polyline) && o.segments(Polyline) > o.th.PolygonMaxSides {
			o.insertBefore(Blob, Polyline)
		}
	}},

	// complex shapes
	{"complex", func(o *orderer) {
		if o.empty() {
			o.add(Complex)
		}
	}},
	{"complex-before-curve", func(o *orderer) {
		if o.has(Curve) && o.passed(Complex) && o.err(Complex) < o.err(Curve) {
			o.insertBefore(Complex, Curve)
		}
	}},
	{"complex-append", func(o *orderer) {
		if !o.specific() {
			o.add(Complex)
		}
	}},
	{"complex-of-lines", func(o *orderer) {
		if o.has(Complex) && o.has(Polyline) && o.onlyLines() {
			o.remove(Complex)
		}
	}},

	// fallbacks
	{"fallback-polyline", func(o *orderer) {
		if o.empty() {
			o.add(Polyline)
		}
	}},
	{"fallback-line", func(o *orderer) {
		if o.empty() {
			o.add(Line)
		}
	}},
	{"fallback-curve", func(o *orderer) {
		if o.empty() {
			o.add(Curve)
		}
	}},
	{"fallback-blob", func(o *orderer) {
		if o.empty() {
			o.add(Blob)
		}
	}},
	{"fallback-nbc", func(o *orderer) {
		if o.empty() {
			o.add(NBC)
		}
	}},

	// final adjustments
	{"drop-trivial", func(o *orderer) {
		if !slices.ContainsFunc(o.list.entries, func(e entry) bool { return !e.fit.Trivial() }) {
			return
		}
		for _, k := range o.kinds() {
			if o.list.Get(k).Trivial() {
				o.remove(k)
			}
		}
	}},
	{"tiny-dot-only", func(o *orderer) {
		if !o.has(Dot) || o.sig.diagonal > o.th.DotMaxDiagonal {
			return
		}
		for _, k := range o.kinds() {
			if k != Dot {
				o.remove(k)
			}
		}
	}},
	{"closed-line-last", func(o *orderer) {
		if o.sig.closed && o.has(Line) {
			o.toTail(Line)
		}
	}},
	{"overtraced-line-after-loops", func(o *orderer) {
		if !o.sig.overtraced || !o.has(Line) {
			return
		}
		if _, ok := o.first(Circle, Ellipse, Spiral, Helix); ok {
			o.toTail(Line)
		}
	}},
	{"curve-after-specific", func(o *orderer) {
		if !o.has(Curve) {
			return
		}
		if _, ok := o.first(Line, Arc, Wave, Gull); ok {
			o.toTail(Curve)
		}
	}},
	{"blob-last", func(o *orderer) {
		if o.has(Blob) && o.list.Len() > 1 {
			o.toTail(Blob)
		}
	}},
	{"nbc-last", func(o *orderer) {
		if o.has(NBC) && o.list.Len() > 1 {
			o.toTail(NBC)
		}
	}},
}
