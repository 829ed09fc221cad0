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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFit is a fit with preset parameters, for testing the list and the
// ordering rules in isolation.
type fakeFit struct {
	result
	kind     Kind
	segments int
	sides    int
	sweep    float64
	extrema  int
	labels   []string
}

func fake(k Kind, passed bool, err float64) *fakeFit {
	f := &fakeFit{result: newResult(), kind: k}
	f.err = err
	if !passed {
		f.reject(0)
	}
	return f
}

func (f *fakeFit) Kind() Kind           { return f.kind }
func (f *fakeFit) Name() string         { return f.kind.String() }
func (f *fakeFit) Segments() int        { return f.segments }
func (f *fakeFit) Sides() int           { return f.sides }
func (f *fakeFit) Sweep() float64       { return f.sweep }
func (f *fakeFit) Extrema() int         { return f.extrema }
func (f *fakeFit) PartLabels() []string { return f.labels }

func listKinds(l *List) []Kind {
	var res []Kind
	for _, f := range l.Fits() {
		res = append(res, f.Kind())
	}
	return res
}

func TestList_Add(t *testing.T) {
	l := NewList()
	assert.Equal(t, 0, l.Hierarchy())

	assert.True(t, l.Add(fake(Line, true, 0.1), 3))
	assert.False(t, l.Add(fake(Line, true, 0.05), 4), "duplicate kind")
	assert.False(t, l.Add(fake(Arc, false, 0), 5), "failed fit")
	assert.False(t, l.Add(nil, 6), "nil fit")
	assert.True(t, l.Add(fake(Curve, true, 0.2), 7))

	assert.Equal(t, []Kind{Line, Curve}, listKinds(l))
	assert.Equal(t, 3, l.Hierarchy())
	assert.Equal(t, 0.1, l.Get(Line).ErrorScore(), "first fit of a kind is kept")
	assert.Nil(t, l.Get(Arc))
	assert.Equal(t, -1, l.Index(Arc))
}

func TestList_InsertBefore(t *testing.T) {
	l := NewList()
	l.Add(fake(Line, true, 0), 1)
	l.Add(fake(Arc, true, 0), 2)

	assert.True(t, l.InsertBefore(fake(Curve, true, 0), Line, 3))
	assert.Equal(t, []Kind{Curve, Line, Arc}, listKinds(l))
	assert.Equal(t, 3, l.Hierarchy())

	// an entry which is already in front stays where it is
	assert.False(t, l.InsertBefore(fake(Curve, true, 0), Arc, 4))
	assert.Equal(t, []Kind{Curve, Line, Arc}, listKinds(l))

	// moving keeps the rule of the original insertion
	assert.True(t, l.InsertBefore(fake(Arc, true, 0), Curve, 5))
	assert.Equal(t, []Kind{Arc, Curve, Line}, listKinds(l))
	assert.Equal(t, 2, l.Hierarchy())

	// a missing anchor appends
	assert.True(t, l.InsertBefore(fake(Polyline, true, 0), Spiral, 6))
	assert.Equal(t, Polyline, l.Fits()[3].Kind())

	assert.False(t, l.InsertBefore(fake(Wave, false, 0), Arc, 7))
	assert.False(t, l.InsertBefore(nil, Arc, 7))
	assert.Equal(t, 4, l.Len())
}

func TestList_RemoveAndMove(t *testing.T) {
	l := NewList()
	for i, k := range []Kind{Circle, Ellipse, Blob} {
		l.Add(fake(k, true, 0), i+1)
	}

	assert.True(t, l.MoveToTail(Circle))
	assert.False(t, l.MoveToTail(Circle), "already last")
	assert.False(t, l.MoveToTail(Line), "not present")
	assert.Equal(t, []Kind{Ellipse, Blob, Circle}, listKinds(l))
	assert.Equal(t, 2, l.Hierarchy())

	assert.True(t, l.Remove(Blob))
	assert.False(t, l.Remove(Blob))
	assert.Equal(t, []Kind{Ellipse, Circle}, listKinds(l))
	assert.True(t, l.Has(Circle))
	assert.False(t, l.Has(Blob))
}

func TestList_Convert(t *testing.T) {
	line := fake(Line, true, 0.01)
	l := NewList()
	l.convert = func(f Fit) Fit {
		if f.Kind() == Polyline {
			return line
		}
		if f.Kind() == Wave {
			return nil
		}
		return f
	}

	require.True(t, l.Add(fake(Polyline, true, 0.3), 1))
	assert.Equal(t, []Kind{Line}, listKinds(l))
	assert.Same(t, line, l.Get(Line))
	assert.False(t, l.Add(fake(Wave, true, 0), 2))
	assert.False(t, l.Add(fake(Polyline, true, 0.3), 3), "converted duplicate")
}
