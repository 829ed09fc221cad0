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

// Package thresholds holds the numeric constants which parameterize the
// stroke feature engine and every shape test.
//
// Constants that describe a length on the drawing surface are given for
// [ReferenceDPI] and are scaled by the device resolution when a threshold
// set is constructed.  Ratios, angles and counts are resolution
// independent.  A Thresholds value is never modified after construction.
package thresholds

import (
	"errors"
	"fmt"
	"math"
)

// ReferenceDPI is the resolution for which the length constants are tuned.
const ReferenceDPI = 96

// Version identifies the constant set.  It changes whenever a default
// value changes, so that stored recognition results can be related to the
// thresholds which produced them.
const Version = 4

// ErrInvalidResolution is returned by [New] for a resolution which is not
// a positive, finite number.
var ErrInvalidResolution = errors.New("thresholds: invalid resolution")

// Thresholds is a complete set of recognition constants for one device
// resolution.
type Thresholds struct {
	// DPI is the device resolution the length constants were scaled for.
	DPI float64

	// Version is the constant set version, see [Version].
	Version int

	// Feature engine.

	// HookMaxLength is the maximal length of a pen-down or pen-up hook.
	HookMaxLength float64
	// HookMaxPct limits a hook to this fraction of the stroke length.
	HookMaxPct float64
	// HookMinCurvature is the accumulated direction change (radians)
	// within the hook window above which the window is cut off.
	HookMinCurvature float64
	// HookMinPoints is the minimal number of points for hook removal.
	HookMinPoints int
	// ClosedDistancePct: endpoint distance below this fraction of the
	// stroke length (together with ClosedMinRevs) makes a stroke closed.
	ClosedDistancePct float64
	// ClosedMinRevs is the minimal number of revolutions of a closed stroke.
	ClosedMinRevs float64
	// OvertracedRevs is the number of revolutions above which a stroke
	// counts as overtraced.
	OvertracedRevs float64
	// DirWindowSize is the number of direction samples per window.
	DirWindowSize int
	// DirWindowMinPass is the fraction of monotone window steps needed to
	// pass the direction window test.
	DirWindowMinPass float64
	// DCRTrimPct is trimmed from each end before computing the DCR.
	DCRTrimPct float64

	// Line.

	LineLSError          float64 // squared distance sum per unit length
	LineFeatureArea      float64 // feature area per unit length
	LineMinEndpointRatio float64

	// Arc.

	ArcNDDE             float64 // minimal NDDE
	ArcDCR              float64 // maximal DCR
	ArcFeatureArea      float64
	ArcSmallRadius      float64
	ArcSmallFeatureArea float64
	ArcMinSweep         float64 // radians

	// Curve.

	CurveLSError   float64
	CurveDCR       float64
	CurveMaxDegree int

	// Ellipse.

	EllipseNDDE             float64
	EllipseDCR              float64
	EllipseFeatureArea      float64
	EllipseSmallMajor       float64
	EllipseSmallFeatureArea float64

	// Circle.

	CircleNDDE                 float64
	CircleDCR                  float64
	CircleAxisRatio            float64 // maximal |1 - minor/major|
	CircleSmallAxisRatio       float64
	CircleSmallRadius          float64
	CircleFeatureArea          float64
	CircleSmallFeatureArea     float64
	CircleRadialDeviation      float64 // maximal stddev/mean of the distance to the center
	CircleSmallRadialDeviation float64

	// Spiral and helix.

	SpiralCenterCloseness float64 // maximal center drift per mean radius
	SpiralRadiusRatio     float64 // minimal |1 - rMin/rMax|
	SpiralFeatureArea     float64
	HelixMinCenterDrift   float64 // minimal center drift per revolution and radius
	HelixRadiusRatio      float64 // maximal |1 - rMin/rMax|
	HelixCenterLineError  float64
	HelixTurnFeatureArea  float64 // maximal circle feature area error of a full turn

	// Polyline and polygon.

	PolylineLSError          float64
	PolylineSmallSegmentPct  float64
	PolylineSimilarSlope     float64 // radians
	PolylineOvertracedAngle  float64 // radians, deviation from antiparallel
	PolygonClosedPct         float64
	PolygonMinSides          int
	PolygonMaxSides          int
	PolylineMaxSegments      int
	PolylineLineFailuresPct  float64
	PolylineMinSegmentLength float64

	// Rectangle, square and diamond.

	RectangleFeatureArea    float64
	RectangleCornerDistance float64 // mean corner distance per diagonal
	RectangleMinSegments    int
	RectangleMaxSegments    int
	RectangleMaxTilt        float64 // radians
	SquareAspect            float64 // maximal |1 - short/long|
	DiamondFeatureArea      float64
	DiamondVertexDistance   float64

	// Arrow.

	ArrowHeadCloseness  float64
	ArrowHeadSimilarity float64
	ArrowHeadShaftRatio float64
	ArrowShaftAngle     float64 // radians

	// Dot.

	DotMaxDiagonal       float64
	DotFilledMaxDiagonal float64
	DotMinDensity        float64
	PenWidth             float64

	// Wave.

	WaveMinSegments      int
	WaveLengthSimilarity float64
	WaveMinAmplitude     float64

	// Gull.

	GullRadiusRatio float64
	GullMaxDCR      float64

	// Blob.

	BlobMaxRevs float64

	// Infinity.

	InfinityMinLoopRevs float64
	InfinityAreaRatio   float64

	// Complex.

	ComplexMaxDepth int

	// LargeError replaces errors which cannot be computed, so that
	// comparisons between fits stay total.
	LargeError float64
}

// New returns the threshold set for the given device resolution.
func New(dpi float64) (*Thresholds, error) {
	if !(dpi > 0) || math.IsInf(dpi, 0) {
		return nil, fmt.Errorf("%w: %g dpi", ErrInvalidResolution, dpi)
	}
	s := dpi / ReferenceDPI

	return &Thresholds{
		DPI:     dpi,
		Version: Version,

		HookMaxLength:     15 * s,
		HookMaxPct:        0.1,
		HookMinCurvature:  1.2,
		HookMinPoints:     10,
		ClosedDistancePct: 0.16,
		ClosedMinRevs:     0.75,
		OvertracedRevs:    1.36,
		DirWindowSize:     5,
		DirWindowMinPass:  0.9,
		DCRTrimPct:        0.05,

		LineLSError:          1.5 * s,
		LineFeatureArea:      4.5 * s,
		LineMinEndpointRatio: 0.93,

		ArcNDDE:             0.8,
		ArcDCR:              6,
		ArcFeatureArea:      0.35,
		ArcSmallRadius:      16 * s,
		ArcSmallFeatureArea: 0.6,
		ArcMinSweep:         0.35,

		CurveLSError:   0.9 * s,
		CurveDCR:       8,
		CurveMaxDegree: 5,

		EllipseNDDE:             0.65,
		EllipseDCR:              8,
		EllipseFeatureArea:      0.33,
		EllipseSmallMajor:       30 * s,
		EllipseSmallFeatureArea: 0.5,

		CircleNDDE:                 0.65,
		CircleDCR:                  8,
		CircleAxisRatio:            0.25,
		CircleSmallAxisRatio:       0.4,
		CircleSmallRadius:          16 * s,
		CircleFeatureArea:          0.35,
		CircleSmallFeatureArea:     0.55,
		CircleRadialDeviation:      0.1,
		CircleSmallRadialDeviation: 0.2,

		SpiralCenterCloseness: 0.5,
		SpiralRadiusRatio:     0.15,
		SpiralFeatureArea:     0.5,
		HelixMinCenterDrift:   0.3,
		HelixRadiusRatio:      0.5,
		HelixCenterLineError:  0.25,
		HelixTurnFeatureArea:  0.25,

		PolylineLSError:          1.5 * s,
		PolylineSmallSegmentPct:  0.05,
		PolylineSimilarSlope:     10 * math.Pi / 180,
		PolylineOvertracedAngle:  20 * math.Pi / 180,
		PolygonClosedPct:         0.1,
		PolygonMinSides:          3,
		PolygonMaxSides:          12,
		PolylineMaxSegments:      20,
		PolylineLineFailuresPct:  0.25,
		PolylineMinSegmentLength: 4 * s,

		RectangleFeatureArea:    0.2,
		RectangleCornerDistance: 0.12,
		RectangleMinSegments:    3,
		RectangleMaxSegments:    7,
		RectangleMaxTilt:        math.Pi / 8,
		SquareAspect:            0.2,
		DiamondFeatureArea:      0.25,
		DiamondVertexDistance:   0.15,

		ArrowHeadCloseness:  0.35,
		ArrowHeadSimilarity: 0.5,
		ArrowHeadShaftRatio: 0.6,
		ArrowShaftAngle:     0.5,

		DotMaxDiagonal:       8 * s,
		DotFilledMaxDiagonal: 30 * s,
		DotMinDensity:        0.6,
		PenWidth:             2 * s,

		WaveMinSegments:      3,
		WaveLengthSimilarity: 0.5,
		WaveMinAmplitude:     3 * s,

		GullRadiusRatio: 0.5,
		GullMaxDCR:      6,

		BlobMaxRevs: 2.5,

		InfinityMinLoopRevs: 0.6,
		InfinityAreaRatio:   0.7,

		ComplexMaxDepth: 2,

		LargeError: 1e4,
	}, nil
}

// Default returns the threshold set for [ReferenceDPI].
func Default() *Thresholds {
	th, _ := New(ReferenceDPI)
	return th
}

// Ratio returns the factor by which length constants were scaled.
func (th *Thresholds) Ratio() float64 {
	return th.DPI / ReferenceDPI
}

// Scaled converts a length given for [ReferenceDPI] to the resolution of
// th.
func (th *Thresholds) Scaled(length float64) float64 {
	return length * th.Ratio()
}
