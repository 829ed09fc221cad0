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

package sketch

import (
	"fmt"
	"math"
	"testing"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/sketch/fit"
	"seehuhn.de/go/sketch/stroke"
	"seehuhn.de/go/sketch/testcases"
	"seehuhn.de/go/sketch/thresholds"
)

var benchSizes = []int{16, 128, 1024}

// benchCircle returns a closed circular stroke with n points.
func benchCircle(n int) stroke.Stroke {
	pts := make([]vec.Vec2, n)
	for i := range pts {
		phi := 2 * math.Pi * float64(i) / float64(n-1)
		pts[i] = vec.Vec2{X: 200 + 100*math.Cos(phi), Y: 200 + 100*math.Sin(phi)}
	}
	return stroke.FromVecs(pts, testcases.SampleInterval)
}

// BenchmarkFeatures measures the feature extraction for circles of
// increasing point count.
func BenchmarkFeatures(b *testing.B) {
	th := thresholds.Default()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("%dpts", n), func(b *testing.B) {
			s := benchCircle(n)
			b.ReportAllocs()
			for b.Loop() {
				stroke.NewFeatures(s, false, th)
			}
		})
	}
}

// BenchmarkRecognize measures full recognition for circles of increasing
// point count.
func BenchmarkRecognize(b *testing.B) {
	r := &fit.Recognizer{}
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("%dpts", n), func(b *testing.B) {
			s := benchCircle(n)
			b.ReportAllocs()
			for b.Loop() {
				if _, err := r.Recognize(s); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkCases recognizes every synthetic test stroke once per
// iteration.
func BenchmarkCases(b *testing.B) {
	var strokes []stroke.Stroke
	for _, cases := range testcases.All {
		for _, c := range cases {
			strokes = append(strokes, c.Stroke())
		}
	}
	r := &fit.Recognizer{}

	b.ReportAllocs()
	for b.Loop() {
		for _, s := range strokes {
			if _, err := r.Recognize(s); err != nil {
				b.Fatal(err)
			}
		}
	}
}
