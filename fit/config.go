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

// Heuristics are optional refinements of the individual fits.
type Heuristics struct {
	// PreferMultiSegmentationCornerFinder selects a corner finder which
	// tries several tolerances.
	PreferMultiSegmentationCornerFinder bool

	// DetectSmallVShapes splits small strokes with a single corner at the
	// point farthest from the chord, where the general corner finder is
	// unreliable.
	DetectSmallVShapes bool

	// RequireArcsPointDown only accepts arcs which bulge downward, in
	// screen coordinates where y grows downward.
	RequireArcsPointDown bool

	// CombineSmallPolylineSegments merges polyline segments shorter than
	// a fraction of the stroke length into a neighbour.
	CombineSmallPolylineSegments bool

	// CombineSimilarSlopeSegments merges consecutive polyline segments of
	// similar direction.
	CombineSimilarSlopeSegments bool

	// CombineSegmentsThatPassLineTest merges consecutive polyline
	// segments whose union passes the line test.
	CombineSegmentsThatPassLineTest bool

	// CombineOvertracedLineSegments merges consecutive polyline segments
	// which retrace each other.
	CombineOvertracedLineSegments bool

	// MedianFilterDirectionGraph smooths the direction signal of the
	// stroke features.
	MedianFilterDirectionGraph bool

	// DistinguishGullFromM requires both wings of a gull to be smooth.
	DistinguishGullFromM bool
}

// Config selects the shape types to test for.  Disabled shape types are
// never computed unless another shape type depends on them, and they never
// appear in the output.
type Config struct {
	Line, Arc, Curve, Ellipse, Circle      bool
	Spiral, Helix                          bool
	Polyline, Polygon                      bool
	Rectangle, Square, Diamond             bool
	Arrow, Dot, Wave, Gull, Blob, Infinity bool
	NBC, Complex                           bool

	Heuristics Heuristics
}

// DefaultConfig enables all shape types.  The polyline combination
// heuristics are switched on, all other heuristics are off.
func DefaultConfig() Config {
	c := allKinds(true)
	c.Heuristics = Heuristics{
		CombineSmallPolylineSegments:    true,
		CombineSimilarSlopeSegments:     true,
		CombineSegmentsThatPassLineTest: true,
		CombineOvertracedLineSegments:   true,
	}
	return c
}

// OnlyConfig enables the given shape types, with the heuristics of
// [DefaultConfig].
func OnlyConfig(kinds ...Kind) Config {
	c := allKinds(false)
	c.Heuristics = DefaultConfig().Heuristics
	for _, k := range kinds {
		if p := c.field(k); p != nil {
			*p = true
		}
	}
	return c
}

// Enabled reports whether shape type k is enabled.
func (c *Config) Enabled(k Kind) bool {
	p := c.field(k)
	return p != nil && *p
}

// Set enables or disables shape type k.
func (c *Config) Set(k Kind, on bool) {
	if p := c.field(k); p != nil {
		*p = on
	}
}

func allKinds(on bool) Config {
	var c Config
	for _, k := range Kinds() {
		*c.field(k) = on
	}
	return c
}

func (c *Config) field(k Kind) *bool {
	switch k {
	case Line:
		return &c.Line
	case Arc:
		return &c.Arc
	case Curve:
		return &c.Curve
	case Ellipse:
		return &c.Ellipse
	case Circle:
		return &c.Circle
	case Spiral:
		return &c.Spiral
	case Helix:
		return &c.Helix
	case Polyline:
		return &c.Polyline
	case Polygon:
		return &c.Polygon
	case Rectangle:
		return &c.Rectangle
	case Square:
		return &c.Square
	case Diamond:
		return &c.Diamond
	case Arrow:
		return &c.Arrow
	case Dot:
		return &c.Dot
	case Wave:
		return &c.Wave
	case Gull:
		return &c.Gull
	case Blob:
		return &c.Blob
	case Infinity:
		return &c.Infinity
	case NBC:
		return &c.NBC
	case Complex:
		return &c.Complex
	}
	return nil
}
