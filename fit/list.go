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

import "slices"

// List is an ordered set of passed fits, at most one per shape type.
// Every entry remembers the ordering rule which inserted it.
type List struct {
	entries []entry

	// convert replaces fits before insertion.  It may return nil to drop
	// a fit.
	convert func(Fit) Fit
}

type entry struct {
	fit  Fit
	rule int
}

// NewList returns an empty list.
func NewList() *List {
	return &List{}
}

// Add appends f, recording rule as the rule which inserted it.  Nil fits,
// failed fits and fits of a shape type already in the list are dropped.
// Add reports whether the list changed.
func (l *List) Add(f Fit, rule int) bool {
	f = l.admit(f)
	if f == nil || l.Has(f.Kind()) {
		return false
	}
	l.entries = append(l.entries, entry{fit: f, rule: rule})
	return true
}

// InsertBefore inserts f in front of the fit of shape type before.  If f
// is already in the list, it is moved.  If before is not in the list, f is
// appended.  InsertBefore reports whether the list changed.
func (l *List) InsertBefore(f Fit, before Kind, rule int) bool {
	f = l.admit(f)
	if f == nil || f.Kind() == before {
		return false
	}
	e := entry{fit: f, rule: rule}
	if i := l.Index(f.Kind()); i >= 0 {
		e = l.entries[i]
		if j := l.Index(before); j >= 0 && j < i {
			l.entries = slices.Delete(l.entries, i, i+1)
			l.entries = slices.Insert(l.entries, j, e)
			return true
		}
		return false
	}
	if j := l.Index(before); j >= 0 {
		l.entries = slices.Insert(l.entries, j, e)
		return true
	}
	l.entries = append(l.entries, e)
	return true
}

// Remove deletes the fit of shape type k and reports whether it was
// present.
func (l *List) Remove(k Kind) bool {
	i := l.Index(k)
	if i < 0 {
		return false
	}
	l.entries = slices.Delete(l.entries, i, i+1)
	return true
}

// MoveToTail moves the fit of shape type k to the end of the list and
// reports whether the list changed.
func (l *List) MoveToTail(k Kind) bool {
	i := l.Index(k)
	if i < 0 || i == len(l.entries)-1 {
		return false
	}
	e := l.entries[i]
	l.entries = append(slices.Delete(l.entries, i, i+1), e)
	return true
}

// Has reports whether the list contains a fit of shape type k.
func (l *List) Has(k Kind) bool {
	return l.Index(k) >= 0
}

// Index returns the position of the fit of shape type k, or -1.
func (l *List) Index(k Kind) int {
	return slices.IndexFunc(l.entries, func(e entry) bool { return e.fit.Kind() == k })
}

// Get returns the fit of shape type k, or nil.
func (l *List) Get(k Kind) Fit {
	if i := l.Index(k); i >= 0 {
		return l.entries[i].fit
	}
	return nil
}

// Len returns the number of fits in the list.
func (l *List) Len() int {
	return len(l.entries)
}

// Fits returns the fits in order.
func (l *List) Fits() []Fit {
	res := make([]Fit, len(l.entries))
	for i, e := range l.entries {
		res[i] = e.fit
	}
	return res
}

// Hierarchy returns the 1-based index of the ordering rule which inserted
// the first fit of the list, or 0 for an empty list.
func (l *List) Hierarchy() int {
	if len(l.entries) == 0 {
		return 0
	}
	return l.entries[0].rule
}

func (l *List) admit(f Fit) Fit {
	if f == nil || !f.Passed() {
		return nil
	}
	if l.convert != nil {
		f = l.convert(f)
		if f == nil || !f.Passed() {
			return nil
		}
	}
	return f
}
