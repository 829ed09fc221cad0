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
	"math"

	"seehuhn.de/go/geom/vec"
)

// LeastSquaresLine returns the line minimizing the sum of squared
// orthogonal distances to pts, together with that sum.  The returned
// segment spans the projections of all points.
func LeastSquaresLine(pts []vec.Vec2) (Line, float64) {
	switch len(pts) {
	case 0:
		return Line{}, 0
	case 1:
		return Line{A: pts[0], B: pts[0]}, 0
	}

	c := Centroid(pts)
	var sxx, syy, sxy float64
	for _, p := range pts {
		dx, dy := p.X-c.X, p.Y-c.Y
		sxx += dx * dx
		syy += dy * dy
		sxy += dx * dy
	}
	theta := 0.5 * math.Atan2(2*sxy, sxx-syy)
	dir := vec.Vec2{X: math.Cos(theta), Y: math.Sin(theta)}

	tMin, tMax := math.Inf(1), math.Inf(-1)
	var sse float64
	for _, p := range pts {
		d := p.Sub(c)
		t := d.Dot(dir)
		tMin = min(tMin, t)
		tMax = max(tMax, t)
		e := Cross(dir, d)
		sse += e * e
	}
	return Line{A: c.Add(dir.Mul(tMin)), B: c.Add(dir.Mul(tMax))}, sse
}

// SquaredError returns the sum of the squared distances from pts to the
// infinite line l.
func SquaredError(pts []vec.Vec2, l Line) float64 {
	var sse float64
	for _, p := range pts {
		d := l.Dist(p)
		sse += d * d
	}
	return sse
}

// LinearRegression fits y = slope*x + intercept by ordinary least squares
// and returns the coefficients together with the residual sum of squares.
// If all x values coincide, the slope is zero.
func LinearRegression(xs, ys []float64) (slope, intercept, sse float64) {
	n := min(len(xs), len(ys))
	if n == 0 {
		return 0, 0, 0
	}
	var mx, my float64
	for i := range n {
		mx += xs[i]
		my += ys[i]
	}
	mx /= float64(n)
	my /= float64(n)

	var sxx, sxy float64
	for i := range n {
		dx := xs[i] - mx
		sxx += dx * dx
		sxy += dx * (ys[i] - my)
	}
	if sxx > 0 {
		slope = sxy / sxx
	}
	intercept = my - slope*mx
	for i := range n {
		r := ys[i] - (slope*xs[i] + intercept)
		sse += r * r
	}
	return slope, intercept, sse
}

// solve solves the square system a·x = b in place by Gaussian elimination
// with partial pivoting.  It returns false if the system is singular.
func solve(a [][]float64, b []float64) ([]float64, bool) {
	n := len(b)
	for col := range n {
		pivot := col
		for r := col + 1; r < n; r++ {
			if math.Abs(a[r][col]) > math.Abs(a[pivot][col]) {
				pivot = r
			}
		}
		if math.Abs(a[pivot][col]) < 1e-12 {
			return nil, false
		}
		a[col], a[pivot] = a[pivot], a[col]
		b[col], b[pivot] = b[pivot], b[col]
		for r := col + 1; r < n; r++ {
			f := a[r][col] / a[col][col]
			for c := col; c < n; c++ {
				a[r][c] -= f * a[col][c]
			}
			b[r] -= f * b[col]
		}
	}
	x := make([]float64, n)
	for r := n - 1; r >= 0; r-- {
		s := b[r]
		for c := r + 1; c < n; c++ {
			s -= a[r][c] * x[c]
		}
		x[r] = s / a[r][r]
	}
	return x, true
}
