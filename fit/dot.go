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
	"seehuhn.de/go/sketch/internal/geometry"
	"seehuhn.de/go/sketch/internal/raster"
	"seehuhn.de/go/sketch/shape"
)

// Fail codes of [DotFit].
const (
	DotFailSize = iota
	DotFailDensity
)

// DotFit tests whether a stroke is a dot: either tiny, or small and
// filled in by the pen.
type DotFit struct {
	result
	density float64
	radius  float64
}

func newDotFit(a *arena) *DotFit {
	f := a.feat
	th := a.th
	df := &DotFit{result: newResult()}
	if f.Len() == 0 {
		df.reject(FailTooFewPoints)
		return df
	}

	pts := f.Vecs()
	diag := f.Diagonal()
	df.density = 1
	if len(pts) > 1 {
		df.density = raster.InkDensity(pts, raster.RoundPen(th.PenWidth))
	}
	df.err = geometry.Finite(diag/th.DotFilledMaxDiagonal, th.LargeError)

	df.check(diag <= th.DotFilledMaxDiagonal, DotFailSize)
	df.check(diag <= th.DotMaxDiagonal || df.density >= th.DotMinDensity, DotFailDensity)

	df.radius = max(diag, th.PenWidth) / 2
	df.shape = shape.Circle(f.Centroid(), df.radius)
	df.setFloat("density", df.density)
	return df
}

func (*DotFit) Kind() Kind   { return Dot }
func (*DotFit) Name() string { return Dot.String() }

// Radius returns the radius of the beautified dot.
func (df *DotFit) Radius() float64 { return df.radius }

// Density returns the fraction of the bounding box covered by ink.
func (df *DotFit) Density() float64 { return df.density }
