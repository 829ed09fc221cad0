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

package geometry

import (
	"seehuhn.de/go/geom/vec"
)

// BezierPoint evaluates the Bézier curve with the given control points at
// parameter t, using de Casteljau's algorithm.
func BezierPoint(ctrl []vec.Vec2, t float64) vec.Vec2 {
	if len(ctrl) == 0 {
		return vec.Vec2{}
	}
	tmp := append([]vec.Vec2(nil), ctrl...)
	for k := len(tmp) - 1; k > 0; k-- {
		for i := range k {
			tmp[i] = tmp[i].Mul(1 - t).Add(tmp[i+1].Mul(t))
		}
	}
	return tmp[0]
}

// ChordParameters returns the normalized cumulative chord length of pts,
// starting at 0 and ending at 1.
func ChordParameters(pts []vec.Vec2) []float64 {
	ts := make([]float64, len(pts))
	for i := 1; i < len(pts); i++ {
		ts[i] = ts[i-1] + Dist(pts[i-1], pts[i])
	}
	if total := ts[len(ts)-1]; total > 0 {
		for i := range ts {
			ts[i] /= total
		}
	}
	return ts
}

// FitBezier fits a Bézier curve of the given degree to pts.  The end
// points of the curve coincide with the first and last point; the inner
// control points minimize the squared distance between pts[i] and the
// curve at the chord-length parameter of pts[i].  The function returns the
// control points and the residual sum of squares.  The last return value
// is false if the inner control points are not determined by the data.
func FitBezier(pts []vec.Vec2, degree int) ([]vec.Vec2, float64, bool) {
	if len(pts) < 2 || degree < 1 {
		return nil, 0, false
	}
	p0, pn := pts[0], pts[len(pts)-1]
	ts := ChordParameters(pts)
	inner := degree - 1

	ctrl := make([]vec.Vec2, degree+1)
	ctrl[0], ctrl[degree] = p0, pn
	if inner > 0 {
		a := make([][]float64, inner)
		for i := range a {
			a[i] = make([]float64, inner)
		}
		bx := make([]float64, inner)
		by := make([]float64, inner)
		basis := make([]float64, degree+1)
		for i, p := range pts {
			bernstein(degree, ts[i], basis)
			rx := p.X - basis[0]*p0.X - basis[degree]*pn.X
			ry := p.Y - basis[0]*p0.Y - basis[degree]*pn.Y
			for j := range inner {
				bj := basis[j+1]
				for k := range inner {
					a[j][k] += bj * basis[k+1]
				}
				bx[j] += bj * rx
				by[j] += bj * ry
			}
		}
		ay := make([][]float64, inner)
		for i := range a {
			ay[i] = append([]float64(nil), a[i]...)
		}
		xs, ok1 := solve(a, bx)
		ys, ok2 := solve(ay, by)
		if !ok1 || !ok2 {
			return nil, 0, false
		}
		for j := range inner {
			ctrl[j+1] = vec.Vec2{X: xs[j], Y: ys[j]}
		}
	}

	var sse float64
	for i, p := range pts {
		d := BezierPoint(ctrl, ts[i]).Sub(p)
		sse += d.Dot(d)
	}
	return ctrl, sse, true
}

// bernstein fills out with the Bernstein basis polynomials of degree n
// evaluated at t.
func bernstein(n int, t float64, out []float64) {
	omt := 1 - t
	for k := 0; k <= n; k++ {
		c := float64(binomial(n, k))
		v := c
		for range k {
			v *= t
		}
		for range n - k {
			v *= omt
		}
		out[k] = v
	}
}

func binomial(n, k int) int {
	if k < 0 || k > n {
		return 0
	}
	r := 1
	for i := 1; i <= k; i++ {
		r = r * (n - k + i) / i
	}
	return r
}
