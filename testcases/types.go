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

// Package testcases provides synthetic pen strokes for testing and
// benchmarking the recognizer.
//
// Every case describes the trajectory of the pen as a path.  The path is
// sampled at equal arc length distances into a time-stamped stroke.
package testcases

import (
	"hash/fnv"
	"math"
	"math/rand/v2"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/sketch/stroke"
)

// Case defines a single synthetic stroke.
type Case struct {
	Name   string        // lowercase a-z and _ only
	Path   path.Path     // the pen trajectory; only the first subpath is used
	Step   float64       // sampling distance (zero means DefaultStep)
	CTM    matrix.Matrix // transformation matrix (zero-value means no transform)
	Jitter float64       // amplitude of the simulated hand tremor

	// Want is a label which must be among the interpretations of the
	// stroke, or "" if the case carries no expectation.
	Want string

	// Top is set if Want must be the best interpretation.
	Top bool
}

// DefaultStep is the sampling distance of cases without an explicit Step.
const DefaultStep = 2.5

// SampleInterval is the time between consecutive samples, in
// milliseconds.
const SampleInterval = 10

// curveSteps is the number of pieces used to flatten one Bézier segment.
const curveSteps = 32

// Stroke samples the case into a stroke.  The result is deterministic.
func (c Case) Stroke() stroke.Stroke {
	step := c.Step
	if step <= 0 {
		step = DefaultStep
	}
	pts := resample(flatten(c.Path, c.CTM), step)
	if c.Jitter > 0 {
		h := fnv.New64a()
		h.Write([]byte(c.Name))
		rng := rand.New(rand.NewPCG(h.Sum64(), 1))
		for i := range pts {
			pts[i] = pts[i].Add(vec.Vec2{
				X: c.Jitter * (2*rng.Float64() - 1),
				Y: c.Jitter * (2*rng.Float64() - 1),
			})
		}
	}
	return stroke.FromVecs(pts, SampleInterval)
}

// flatten converts the first subpath of p into a polyline.
func flatten(p path.Path, m matrix.Matrix) []vec.Vec2 {
	if m == (matrix.Matrix{}) {
		m = matrix.Identity
	}
	var res []vec.Vec2
	var cur, start vec.Vec2
	inSubpath := false
	for cmd, pts := range p {
		switch cmd {
		case path.CmdMoveTo:
			if inSubpath {
				return res
			}
			inSubpath = true
			cur, start = pts[0], pts[0]
			res = append(res, apply(m, cur))

		case path.CmdLineTo:
			cur = pts[0]
			res = append(res, apply(m, cur))

		case path.CmdQuadTo:
			ctrl := []vec.Vec2{cur, pts[0], pts[1]}
			for i := 1; i <= curveSteps; i++ {
				res = append(res, apply(m, bezier(ctrl, float64(i)/curveSteps)))
			}
			cur = pts[1]

		case path.CmdCubeTo:
			ctrl := []vec.Vec2{cur, pts[0], pts[1], pts[2]}
			for i := 1; i <= curveSteps; i++ {
				res = append(res, apply(m, bezier(ctrl, float64(i)/curveSteps)))
			}
			cur = pts[2]

		case path.CmdClose:
			if cur != start {
				res = append(res, apply(m, start))
			}
			return res
		}
	}
	return res
}

// resample places points at equal arc length distances along poly.  The
// first and last point of poly are always included.
func resample(poly []vec.Vec2, step float64) []vec.Vec2 {
	if len(poly) < 2 {
		return poly
	}
	res := []vec.Vec2{poly[0]}
	carry := 0.0 // arc length since the last emitted point
	for i := 1; i < len(poly); i++ {
		a, b := poly[i-1], poly[i]
		seg := b.Sub(a).Length()
		if seg == 0 {
			continue
		}
		pos := step - carry
		for pos < seg {
			res = append(res, a.Add(b.Sub(a).Mul(pos/seg)))
			pos += step
		}
		carry = seg - (pos - step)
	}
	if last := poly[len(poly)-1]; res[len(res)-1] != last {
		if res[len(res)-1].Sub(last).Length() < step/4 && len(res) > 1 {
			res[len(res)-1] = last
		} else {
			res = append(res, last)
		}
	}
	return res
}

func bezier(ctrl []vec.Vec2, t float64) vec.Vec2 {
	tmp := append([]vec.Vec2(nil), ctrl...)
	for k := len(tmp) - 1; k > 0; k-- {
		for i := range k {
			tmp[i] = tmp[i].Mul(1 - t).Add(tmp[i+1].Mul(t))
		}
	}
	return tmp[0]
}

func apply(m matrix.Matrix, v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: m[0]*v.X + m[2]*v.Y + m[4],
		Y: m[1]*v.X + m[3]*v.Y + m[5],
	}
}

// pt is a helper to create a vec.Vec2 from x, y coordinates.
func pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}

// polyPath builds an open path through the given vertices.
func polyPath(vertices ...vec.Vec2) path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		for i, v := range vertices {
			cmd := path.CmdLineTo
			if i == 0 {
				cmd = path.CmdMoveTo
			}
			if !yield(cmd, []vec.Vec2{v}) {
				return
			}
		}
	}
}

// closedPath builds a closed path through the given vertices.
func closedPath(vertices ...vec.Vec2) path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		for cmd, pts := range polyPath(vertices...) {
			if !yield(cmd, pts) {
				return
			}
		}
		yield(path.CmdClose, nil)
	}
}

// parametric samples the curve f on [0, 1] at n+1 points.
func parametric(n int, f func(t float64) vec.Vec2) path.Path {
	pts := make([]vec.Vec2, n+1)
	for i := range pts {
		pts[i] = f(float64(i) / float64(n))
	}
	return polyPath(pts...)
}

// arcPath builds the circular arc around (cx, cy) from angle phi0 to phi1
// (radians), in y-up orientation.
func arcPath(cx, cy, r, phi0, phi1 float64) path.Path {
	n := max(8, int(math.Abs(phi1-phi0)*r/2))
	return parametric(n, func(t float64) vec.Vec2 {
		phi := phi0 + t*(phi1-phi0)
		return pt(cx+r*math.Cos(phi), cy+r*math.Sin(phi))
	})
}
