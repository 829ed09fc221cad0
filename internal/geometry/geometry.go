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

// Package geometry collects the plane geometry shared by the stroke
// features and the shape fits.
package geometry

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"seehuhn.de/go/geom/vec"
)

// LargeError is the error substituted for ratios which cannot be computed.
const LargeError = 1e4

// Numerical tolerances.
const (
	// parallelThreshold is the minimal |cross product| of two unit
	// directions for lines to be considered intersecting.
	parallelThreshold = 1e-9

	// zeroLengthThreshold is the minimal length of a direction vector.
	zeroLengthThreshold = 1e-12
)

// Cross returns the z-component of the cross product of a and b.
func Cross(a, b vec.Vec2) float64 {
	return a.X*b.Y - a.Y*b.X
}

// Perp returns v rotated by 90° counter-clockwise.
func Perp(v vec.Vec2) vec.Vec2 {
	return vec.Vec2{X: -v.Y, Y: v.X}
}

// Rotate returns v rotated by the angle theta around the origin.
func Rotate(v vec.Vec2, theta float64) vec.Vec2 {
	s, c := math.Sincos(theta)
	return vec.Vec2{X: c*v.X - s*v.Y, Y: s*v.X + c*v.Y}
}

// Dist returns the Euclidean distance between a and b.
func Dist(a, b vec.Vec2) float64 {
	return b.Sub(a).Length()
}

// Unit returns v scaled to length 1.  The zero vector is returned
// unchanged.
func Unit(v vec.Vec2) vec.Vec2 {
	l := v.Length()
	if l < zeroLengthThreshold {
		return v
	}
	return v.Mul(1 / l)
}

// NormalizeAngle maps an angle into the interval (-π, π].
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a <= -math.Pi {
		a += 2 * math.Pi
	} else if a > math.Pi {
		a -= 2 * math.Pi
	}
	return a
}

// AngleDiff returns the signed difference b-a, mapped into (-π, π].
func AngleDiff(a, b float64) float64 {
	return NormalizeAngle(b - a)
}

// LineAngleDiff returns the angle between two undirected lines with the
// given directions, in [0, π/2].
func LineAngleDiff(a, b float64) float64 {
	d := math.Abs(math.Mod(b-a, math.Pi))
	if d > math.Pi/2 {
		d = math.Pi - d
	}
	return d
}

// TotalTurning sums the signed turning angles between consecutive
// segments of the polyline pts.  Exactly antiparallel segments turn by π
// in the direction of the rotation accumulated so far.
func TotalTurning(pts []vec.Vec2) float64 {
	var rot float64
	for i := 1; i < len(pts)-1; i++ {
		a := pts[i].Sub(pts[i-1])
		b := pts[i+1].Sub(pts[i])
		cross := Cross(a, b)
		dot := a.Dot(b)
		switch {
		case cross == 0 && dot >= 0:
			// collinear, no turn
		case cross == 0:
			if rot < 0 {
				rot -= math.Pi
			} else {
				rot += math.Pi
			}
		default:
			rot += math.Atan2(cross, dot)
		}
	}
	return rot
}

// Centroid returns the mean of the points.
func Centroid(pts []vec.Vec2) vec.Vec2 {
	if len(pts) == 0 {
		return vec.Vec2{}
	}
	var sx, sy float64
	for _, p := range pts {
		sx += p.X
		sy += p.Y
	}
	n := float64(len(pts))
	return vec.Vec2{X: sx / n, Y: sy / n}
}

// SafeRatioError returns |1 - measured/ideal|.  If the ratio is not a
// finite number, large is returned instead.
func SafeRatioError(measured, ideal, large float64) float64 {
	if ideal == 0 {
		return large
	}
	r := measured / ideal
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return large
	}
	return math.Abs(1 - r)
}

// Finite returns x, or large if x is NaN or infinite.
func Finite(x, large float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return large
	}
	return x
}

// PolylineLength returns the length of the polyline through pts.
func PolylineLength(pts []vec.Vec2) float64 {
	if len(pts) < 2 {
		return 0
	}
	return planar.Length(toLineString(pts))
}

// PolygonArea returns the (unsigned) area enclosed by the polygon with the
// given vertices.  The polygon is closed implicitly.  Self-intersecting
// outlines give the shoelace area, where oppositely oriented parts cancel.
func PolygonArea(pts []vec.Vec2) float64 {
	if len(pts) < 3 {
		return 0
	}
	ring := make(orb.Ring, 0, len(pts)+1)
	for _, p := range pts {
		ring = append(ring, orb.Point{p.X, p.Y})
	}
	if pts[0] != pts[len(pts)-1] {
		ring = append(ring, ring[0])
	}
	return math.Abs(planar.Area(ring))
}

// SignedArea returns the shoelace area of the implicitly closed polygon,
// positive for counter-clockwise orientation in a y-up frame.
func SignedArea(pts []vec.Vec2) float64 {
	var a float64
	for i := range pts {
		j := (i + 1) % len(pts)
		a += Cross(pts[i], pts[j])
	}
	return a / 2
}

func toLineString(pts []vec.Vec2) orb.LineString {
	ls := make(orb.LineString, len(pts))
	for i, p := range pts {
		ls[i] = orb.Point{p.X, p.Y}
	}
	return ls
}

// FeatureAreaToPoint returns the area swept by the segment from c to a
// point moving along pts, i.e. the sum of the triangle areas (c, p[i],
// p[i+1]).
func FeatureAreaToPoint(pts []vec.Vec2, c vec.Vec2) float64 {
	var area float64
	for i := 1; i < len(pts); i++ {
		area += math.Abs(Cross(pts[i-1].Sub(c), pts[i].Sub(c))) / 2
	}
	return area
}

// FeatureAreaToLine returns the area between the polyline pts and the
// infinite line l.  Segments which cross the line contribute two
// triangles.
func FeatureAreaToLine(pts []vec.Vec2, l Line) float64 {
	dir := Unit(l.B.Sub(l.A))
	if dir.Length() < zeroLengthThreshold {
		return 0
	}
	var area float64
	for i := 1; i < len(pts); i++ {
		a := pts[i-1].Sub(l.A)
		b := pts[i].Sub(l.A)
		s0, s1 := a.Dot(dir), b.Dot(dir)
		d0, d1 := Cross(dir, a), Cross(dir, b)
		w := math.Abs(s1 - s0)
		if d0*d1 >= 0 {
			area += w * (math.Abs(d0) + math.Abs(d1)) / 2
		} else {
			t := d0 / (d0 - d1)
			area += w * (t*math.Abs(d0) + (1-t)*math.Abs(d1)) / 2
		}
	}
	return area
}

// ConvexHull returns the convex hull of pts in counter-clockwise order
// (y-up), using Andrew's monotone chain.
func ConvexHull(pts []vec.Vec2) []vec.Vec2 {
	if len(pts) < 3 {
		return append([]vec.Vec2(nil), pts...)
	}
	sorted := append([]vec.Vec2(nil), pts...)
	sortPoints(sorted)

	hull := make([]vec.Vec2, 0, 2*len(sorted))
	for _, p := range sorted {
		for len(hull) >= 2 && Cross(hull[len(hull)-1].Sub(hull[len(hull)-2]), p.Sub(hull[len(hull)-2])) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	lower := len(hull) + 1
	for i := len(sorted) - 2; i >= 0; i-- {
		p := sorted[i]
		for len(hull) >= lower && Cross(hull[len(hull)-1].Sub(hull[len(hull)-2]), p.Sub(hull[len(hull)-2])) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	return hull[:len(hull)-1]
}
