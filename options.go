// seehuhn.de/go/picosvg - reduce SVG documents to a minimal subset
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

package picosvg

import (
	"context"
	"log/slog"

	"seehuhn.de/go/picosvg/materialize"
	"seehuhn.de/go/picosvg/pathops"
)

// Options control the conversion. The zero value selects the defaults.
type Options struct {
	// Precision is the number of fractional digits of output coordinates.
	// Zero selects DefaultPrecision; use a negative value for integer
	// coordinates.
	Precision int

	// MaxDepth bounds the nesting of <use> elements and of clip paths
	// which are clipped themselves. Zero selects DefaultMaxDepth.
	MaxDepth int

	// Lenient makes references to missing elements act as if the
	// referencing attribute was absent, instead of failing the conversion.
	Lenient bool

	// Tolerance is the maximal distance between a curve and the polygon
	// which replaces it when strokes and clip paths are reduced. Zero
	// derives the tolerance from the size of the viewBox.
	Tolerance float64

	// ClipToViewBox removes the parts of the drawing which lie outside
	// the viewBox. Shapes entirely outside are dropped.
	ClipToViewBox bool

	// Engine computes stroke outlines and path intersections. Nil selects
	// a [pathops.Clipper] with the configured tolerance.
	Engine pathops.Engine

	// Logger receives debug messages about dropped elements. Nil disables
	// logging.
	Logger *slog.Logger
}

// Default option values.
const (
	DefaultPrecision = 3
	DefaultMaxDepth  = materialize.DefaultMaxDepth
)

// relativeTolerance is the flattening tolerance as a fraction of the
// larger side of the viewBox.
const relativeTolerance = 0.001

func (o *Options) digits() int {
	switch {
	case o.Precision > 0:
		return o.Precision
	case o.Precision < 0:
		return 0
	default:
		return DefaultPrecision
	}
}

func (o *Options) maxDepth() int {
	if o.MaxDepth > 0 {
		return o.MaxDepth
	}
	return DefaultMaxDepth
}

// tolerance returns the flattening tolerance for a document whose viewBox
// has the given size.
func (o *Options) tolerance(w, h float64) float64 {
	if o.Tolerance > 0 {
		return o.Tolerance
	}
	if size := max(w, h); size > 0 {
		return relativeTolerance * size
	}
	return pathops.DefaultTolerance
}

func (o *Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(nopHandler{})
}

// nopHandler discards all log records.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }
