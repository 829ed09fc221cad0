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
	"math"
	"slices"
	"strconv"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/sketch/internal/geometry"
	"seehuhn.de/go/sketch/shape"
)

// Fail codes of [CurveFit].
const (
	CurveFailLSE = iota
	CurveFailDCR
	CurveFailOvertraced
)

// CurveFit tests whether a stroke is a smooth Bézier curve.  The lowest
// degree which fits well enough is used.  The beautified shape is the
// stroke itself.
type CurveFit struct {
	result
	ctrl []vec.Vec2
}

func newCurveFit(a *arena) *CurveFit {
	f := a.feat
	th := a.th
	cf := &CurveFit{result: newResult()}
	pts := f.Vecs()
	if len(pts) < 2 {
		cf.reject(FailTooFewPoints)
		return cf
	}

	if len(pts) == 2 {
		cf.ctrl = slices.Clone(pts)
	} else {
		cf.err = math.Inf(1)
		for degree := 2; degree <= th.CurveMaxDegree; degree++ {
			ctrl, sse, ok := geometry.FitBezier(pts, degree)
			if !ok {
				continue
			}
			e := perLength(sse, f.Length(), th.LargeError)
			if e < cf.err {
				cf.ctrl, cf.err = ctrl, e
			}
			if e <= th.CurveLSError {
				break
			}
		}
		if cf.ctrl == nil {
			cf.ctrl = []vec.Vec2{pts[0], pts[len(pts)-1]}
			cf.err = th.LargeError
		}

		cf.check(cf.err <= th.CurveLSError, CurveFailLSE)
		cf.check(f.DCR() <= th.CurveDCR, CurveFailDCR)
		cf.check(!f.Overtraced(), CurveFailOvertraced)
	}

	cf.shape = shape.Raw(f.Orig().Vecs())
	cf.setAttr("degree", strconv.Itoa(cf.Degree()))
	return cf
}

func (*CurveFit) Kind() Kind   { return Curve }
func (*CurveFit) Name() string { return Curve.String() }

// Degree returns the degree of the fitted Bézier curve.
func (cf *CurveFit) Degree() int { return len(cf.ctrl) - 1 }

// Control returns the control points of the fitted Bézier curve.
func (cf *CurveFit) Control() []vec.Vec2 { return slices.Clone(cf.ctrl) }
