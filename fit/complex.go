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
	"slices"
	"strings"

	"seehuhn.de/go/sketch/shape"
	"seehuhn.de/go/sketch/stroke"
)

// Fail codes of [ComplexFit].
const (
	ComplexFailDepth = iota
	ComplexFailSegments
	ComplexFailParts
)

// ComplexFit describes a stroke as a sequence of primitives.  The stroke
// is split at its corners and every piece is recognized on its own; then
// adjacent pieces are merged while their union is recognized as a single
// line, arc or curve with no larger error.
type ComplexFit struct {
	result
	parts []Interpretation
}

func newComplexFit(a *arena) *ComplexFit {
	f := a.feat
	th := a.th
	cf := &ComplexFit{result: newResult()}
	if a.depth >= th.ComplexMaxDepth || a.sub == nil {
		cf.reject(ComplexFailDepth)
		return cf
	}
	if cf.short(f.Len(), 3) {
		return cf
	}
	seg, err := a.corners()
	if err != nil {
		cf.reject(FailNoSegmentation)
		return cf
	}
	corners, ok := cornersOf(seg)
	if !ok {
		cf.reject(FailNoSegmentation)
		return cf
	}

	pts := f.Points()
	type span struct{ from, to int }
	type found struct {
		head Interpretation
		ok   bool
	}
	memo := make(map[span]found)
	bestOf := func(i, j int) (Interpretation, bool) {
		key := span{corners[i], corners[j]}
		b, seen := memo[key]
		if !seen {
			b.head, b.ok = a.best(pts.Sub(key.from, key.to+1))
			memo[key] = b
		}
		return b.head, b.ok
	}
	var missing bool
	for i := range len(corners) - 1 {
		head, ok := bestOf(i, i+1)
		missing = missing || !ok
		cf.parts = append(cf.parts, head)
	}
	for merged := true; merged && len(cf.parts) > 1; {
		merged = false
		for i := 0; i+1 < len(cf.parts); i++ {
			head, ok := bestOf(i, i+2)
			if !ok || !mergeable(head.Kind) {
				continue
			}
			if head.Error > max(cf.parts[i].Error, cf.parts[i+1].Error) {
				continue
			}
			cf.parts = slices.Replace(cf.parts, i, i+2, head)
			corners = slices.Delete(corners, i+1, i+2)
			merged = true
			break
		}
	}

	var labels []string
	var parts []shape.Part
	for _, p := range cf.parts {
		cf.err += p.Error / float64(len(cf.parts))
		labels = append(labels, p.Label)
		if p.Shape != nil {
			parts = append(parts, shape.Part{Label: p.Label, Shape: p.Shape})
		}
	}
	cf.check(len(cf.parts) >= 2, ComplexFailSegments)
	cf.check(!missing, ComplexFailParts)

	cf.shape = shape.Group(parts...)
	cf.setAttr("parts", strings.Join(labels, "+"))
	return cf
}

func (*ComplexFit) Kind() Kind   { return Complex }
func (*ComplexFit) Name() string { return Complex.String() }

// Parts returns the best interpretation of every piece.
func (cf *ComplexFit) Parts() []Interpretation { return slices.Clone(cf.parts) }

// PartLabels returns the labels of the pieces, in stroke order.
func (cf *ComplexFit) PartLabels() []string {
	res := make([]string, len(cf.parts))
	for i, p := range cf.parts {
		res[i] = p.Label
	}
	return res
}

func mergeable(k Kind) bool {
	return k == Line || k == Arc || k == Curve
}

// best returns the top interpretation of the sub-stroke s.
func (a *arena) best(s stroke.Stroke) (Interpretation, bool) {
	res, err := a.sub(s)
	if err != nil || len(res) == 0 {
		return Interpretation{Label: NBC.String(), Kind: NBC, Error: a.th.LargeError}, false
	}
	return res[0], true
}
