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
	"maps"
	"path/filepath"
	"slices"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seehuhn.de/go/sketch/fit"
	"seehuhn.de/go/sketch/segment"
	"seehuhn.de/go/sketch/stroke"
	"seehuhn.de/go/sketch/testcases"
	"seehuhn.de/go/sketch/thresholds"
)

func labels(res []Interpretation) []string {
	out := make([]string, len(res))
	for i, in := range res {
		out[i] = in.Label
	}
	return out
}

func checkResult(t *testing.T, res []Interpretation, want string, top bool) {
	t.Helper()
	require.NotEmpty(t, res)

	seen := make(map[string]bool)
	for i, in := range res {
		_, ok := fit.ParseKind(in.Label)
		assert.True(t, ok, "unknown label %q", in.Label)
		assert.False(t, seen[in.Label], "duplicate label %q", in.Label)
		seen[in.Label] = true
		assert.InDelta(t, 1-float64(i)/float64(len(res)), in.Confidence, 1e-12)
	}

	switch {
	case want == "":
	case top:
		assert.Equal(t, want, res[0].Label, "interpretations %v", labels(res))
	default:
		assert.Contains(t, labels(res), want)
	}
}

func TestCases(t *testing.T) {
	r, err := NewRecognizer()
	require.NoError(t, err)

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, c := range testcases.All[category] {
			t.Run(category+"_"+c.Name, func(t *testing.T) {
				require.NotEmpty(t, c.Want, "every case names its shape")
				res, err := r.Recognize(c.Stroke())
				require.NoError(t, err)
				checkResult(t, res, c.Want, c.Top)
			})
		}
	}
}

type fixtureFile struct {
	Strokes []fixtureStroke `toml:"stroke"`
}

type fixtureStroke struct {
	Name   string       `toml:"name"`
	Want   string       `toml:"want"`
	Top    bool         `toml:"top"`
	Kinds  []string     `toml:"kinds"`
	Points [][3]float64 `toml:"points"`
}

func TestFixtures(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "*.toml"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, name := range files {
		var ff fixtureFile
		_, err := toml.DecodeFile(name, &ff)
		require.NoError(t, err, name)

		for _, fs := range ff.Strokes {
			t.Run(fs.Name, func(t *testing.T) {
				s := make(stroke.Stroke, len(fs.Points))
				for i, p := range fs.Points {
					s[i] = stroke.Point{X: p[0], Y: p[1], T: p[2]}
				}
				var opts []Option
				if len(fs.Kinds) > 0 {
					opts = append(opts, WithLabels(fs.Kinds...))
				}
				res, err := Recognize(s, opts...)
				require.NoError(t, err)
				checkResult(t, res, fs.Want, fs.Top)
				if len(fs.Kinds) > 0 {
					for _, in := range res {
						assert.Contains(t, fs.Kinds, in.Label)
					}
				}
			})
		}
	}
}

func TestRecognize_Empty(t *testing.T) {
	_, err := Recognize(nil)
	assert.ErrorIs(t, err, stroke.ErrEmptyStroke)
}

func TestWithDPI(t *testing.T) {
	_, err := NewRecognizer(WithDPI(0))
	assert.ErrorIs(t, err, thresholds.ErrInvalidResolution)

	r, err := NewRecognizer(WithDPI(192))
	require.NoError(t, err)
	require.NotNil(t, r.Thresholds)
	assert.Equal(t, 2.0, r.Thresholds.Ratio())

	// a stroke drawn at twice the resolution reads the same
	s := make(stroke.Stroke, 40)
	for i := range s {
		s[i] = stroke.Point{X: 10 * float64(i), Y: 2 * float64(i), T: 10 * float64(i)}
	}
	res, err := r.Recognize(s)
	require.NoError(t, err)
	require.NotEmpty(t, res)
	assert.Equal(t, "Line", res[0].Label)
}

func TestWithKinds(t *testing.T) {
	h := fit.Heuristics{RequireArcsPointDown: true}
	r, err := NewRecognizer(WithHeuristics(h), WithKinds(fit.Circle, fit.Line))
	require.NoError(t, err)
	require.NotNil(t, r.Config)
	assert.Equal(t, h, r.Config.Heuristics, "heuristics survive")
	assert.True(t, r.Config.Enabled(fit.Circle))
	assert.True(t, r.Config.Enabled(fit.Line))
	assert.False(t, r.Config.Enabled(fit.Ellipse))

	r, err = NewRecognizer(WithKinds(fit.Arc), WithHeuristics(h))
	require.NoError(t, err)
	assert.True(t, r.Config.Enabled(fit.Arc))
	assert.False(t, r.Config.Enabled(fit.Line), "shape types survive")
}

func TestWithLabels(t *testing.T) {
	r, err := NewRecognizer(WithLabels("Dot", "Spiral"))
	require.NoError(t, err)
	assert.True(t, r.Config.Enabled(fit.Dot))
	assert.True(t, r.Config.Enabled(fit.Spiral))
	assert.False(t, r.Config.Enabled(fit.Helix))

	_, err = NewRecognizer(WithLabels("Circle", "Squircle"))
	assert.ErrorIs(t, err, ErrUnknownLabel)
}

func TestWithSegmenter(t *testing.T) {
	failing := segment.SegmenterFunc(func(stroke.Stroke) ([]segment.Segmentation, error) {
		return nil, segment.ErrNoSegmentation
	})
	r, err := NewRecognizer(WithSegmenter(failing), WithConfig(fit.OnlyConfig(fit.Polyline)))
	require.NoError(t, err)
	assert.NotNil(t, r.Segmenters.Corner)

	s := make(stroke.Stroke, 0, 41)
	for i := range 21 {
		s = append(s, stroke.Point{X: 5 * float64(i), T: float64(len(s))})
	}
	for i := 1; i <= 20; i++ {
		s = append(s, stroke.Point{X: 100, Y: 5 * float64(i), T: float64(len(s))})
	}
	an, err := r.Analyze(s)
	require.NoError(t, err)
	pf := an.Fit(fit.Polyline)
	require.NotNil(t, pf)
	assert.False(t, pf.Passed())
	assert.Equal(t, fit.FailNoSegmentation, pf.FailCode())
	assert.Empty(t, an.Interpretations)

	r, err = NewRecognizer(WithSegmenters(fit.Segmenters{}))
	require.NoError(t, err)
	assert.Nil(t, r.Segmenters.Corner)
}

func TestWithLogger(t *testing.T) {
	r, err := NewRecognizer(WithLogger(nil))
	require.NoError(t, err)
	assert.Nil(t, r.Logger)

	l := fit.NopLogger()
	r, err = NewRecognizer(WithLogger(l))
	require.NoError(t, err)
	assert.Same(t, l, r.Logger)
}
