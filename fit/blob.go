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

// Fail codes of [BlobFit].
const (
	BlobFailNotClosed = iota
	BlobFailRevolutions
	BlobFailArea
)

// BlobFit tests whether a stroke is a closed free-form shape.  The
// error compares the filled area with the area of the convex hull.  The
// beautified shape is the stroke itself.
type BlobFit struct {
	result
	area float64
}

func newBlobFit(a *arena) *BlobFit {
	f := a.feat
	th := a.th
	bf := &BlobFit{result: newResult()}
	pts := f.Vecs()
	if bf.short(len(pts), 3) {
		return bf
	}

	bf.area = raster.FillArea(raster.Polygon(pts))
	hull := geometry.PolygonArea(geometry.ConvexHull(pts))
	bf.err = geometry.SafeRatioError(bf.area, hull, th.LargeError)

	bf.check(f.Closed() || f.Overtraced(), BlobFailNotClosed)
	bf.check(f.Revolutions() <= th.BlobMaxRevs, BlobFailRevolutions)
	bf.check(bf.area > 0, BlobFailArea)

	bf.shape = shape.Raw(f.Orig().Vecs())
	bf.shape.Closed = true
	bf.setFloat("area", bf.area)
	return bf
}

func (*BlobFit) Kind() Kind   { return Blob }
func (*BlobFit) Name() string { return Blob.String() }

// Area returns the area enclosed by the stroke.
func (bf *BlobFit) Area() float64 { return bf.area }

// NBCFit keeps a stroke as drawn.  It passes for every stroke with at
// least two points and serves as the last resort of the ordering.
type NBCFit struct {
	result
}

func newNBCFit(a *arena) *NBCFit {
	nf := &NBCFit{result: newResult()}
	if a.feat.Len() < 2 {
		nf.reject(FailTooFewPoints)
		return nf
	}
	nf.err = 1
	nf.shape = shape.Raw(a.feat.Orig().Vecs())
	return nf
}

func (*NBCFit) Kind() Kind   { return NBC }
func (*NBCFit) Name() string { return NBC.String() }
