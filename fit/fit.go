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

// Package fit tests pen strokes against primitive shapes and orders the
// results into a ranked list of interpretations.
//
// Every shape type has its own fit, which runs a fixed sequence of tests
// against the stroke features.  A fit which fails a test records a fail
// code; the tests are never short-circuited, so the final fail code is
// the one of the last failing test.  Fits which depend on other fits (a
// circle on its ellipse, a square on its rectangle) or on a
// segmentation obtain them from a per-call arena.
package fit

import (
	"errors"
	"strconv"

	"seehuhn.de/go/sketch/shape"
)

// ErrTooFewPoints is returned when a stroke has too few points for any
// of the enabled shape types.
var ErrTooFewPoints = errors.New("fit: too few points")

// Fail codes shared by all fits.  The fail codes of the individual fits
// are small non-negative integers.
const (
	// FailTooFewPoints marks fits which need more points than the stroke
	// has.
	FailTooFewPoints = 100 + iota

	// FailNoSegmentation marks composite fits whose segmentation could not
	// be computed.
	FailNoSegmentation

	// FailDependency marks fits whose upstream fit is unusable.
	FailDependency
)

// noFail is the fail code of a fit which passed all its tests.
const noFail = -1

// Fit is the result of testing a stroke against one shape type.
//
// The concrete fit types are defined in this package; each provides
// typed accessors for its fitted parameters.
type Fit interface {
	// Kind returns the shape type.
	Kind() Kind

	// Name returns the label used in interpretations.
	Name() string

	// Passed reports whether the stroke passed all tests.
	Passed() bool

	// ErrorScore returns the fit error.  Smaller is better; the scale
	// depends on the shape type.
	ErrorScore() float64

	// FailCode returns the code of the last failing test, or -1.
	FailCode() int

	// Shape returns the beautified shape.  The result may be nil if not
	// even the shape parameters could be estimated.
	Shape() *shape.Shape

	// Attributes returns additional information about the fit.
	Attributes() map[string]string

	// Trivial reports whether the fit passed only because the stroke has
	// two points, too few for its tests.  Trivial fits have zero error.
	Trivial() bool

	isFit()
}

// result holds the state shared by all fits.
type result struct {
	passed  bool
	trivial bool
	fail    int
	err     float64
	shape   *shape.Shape
	attrs   map[string]string
}

func newResult() result {
	return result{passed: true, fail: noFail}
}

// check records a failing test if ok is false.
func (r *result) check(ok bool, code int) {
	if !ok {
		r.passed = false
		r.fail = code
	}
}

// reject marks the fit as failed with the given code.
func (r *result) reject(code int) {
	r.passed = false
	r.fail = code
}

// short handles strokes with fewer than need points.  A stroke with two
// points passes trivially; anything shorter is rejected.  The return
// value reports whether the fit has been decided.
func (r *result) short(n, need int) bool {
	switch {
	case n >= need:
		return false
	case n == 2:
		r.trivial = true
	default:
		r.reject(FailTooFewPoints)
	}
	return true
}

// inherit copies the outcome of a dependency which was decided by
// [result.short].  The return value reports whether there was one.
func (r *result) inherit(dep Fit) bool {
	switch {
	case dep.Trivial():
		r.trivial = true
	case dep.FailCode() == FailTooFewPoints:
		r.reject(FailTooFewPoints)
	default:
		return false
	}
	return true
}

func (r *result) setAttr(key, value string) {
	if r.attrs == nil {
		r.attrs = make(map[string]string)
	}
	r.attrs[key] = value
}

func (r *result) setFloat(key string, x float64) {
	r.setAttr(key, strconv.FormatFloat(x, 'g', 6, 64))
}

func (r *result) Passed() bool                  { return r.passed }
func (r *result) ErrorScore() float64           { return r.err }
func (r *result) FailCode() int                 { return r.fail }
func (r *result) Shape() *shape.Shape           { return r.shape }
func (r *result) Attributes() map[string]string { return r.attrs }
func (r *result) Trivial() bool                 { return r.trivial }
func (r *result) isFit()                        {}
