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

// Package pathops computes stroke outlines and boolean combinations of
// filled paths.
//
// All results are polygonal paths whose subpaths are closed and oriented
// so that the nonzero and the even-odd fill rule give the same region:
// outer boundaries have positive signed area and every level of nesting
// alternates the orientation.
package pathops

import (
	"fmt"
	"math"
	"sync"

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/picosvg/svgerr"
	"seehuhn.de/go/picosvg/svgpath"
)

// Op selects a boolean operation.
type Op int

// These are the supported boolean operations.
const (
	Union Op = iota
	Intersect
	Difference
)

func (op Op) String() string {
	switch op {
	case Union:
		return "union"
	case Intersect:
		return "intersect"
	case Difference:
		return "difference"
	default:
		return fmt.Sprintf("Op(%d)", int(op))
	}
}

// Operand is a filled region: a path together with the rule which decides
// which points are inside.
type Operand struct {
	Path *svgpath.Path
	Rule svgpath.FillRule
}

// StrokeStyle describes the pen used to stroke a path.
type StrokeStyle struct {
	// Width is the stroke width. Must be positive.
	Width float64

	// Cap sets the style for stroke endpoints (butt, round, or square).
	Cap graphics.LineCapStyle

	// Join sets the style for stroke corners (miter, round, or bevel).
	Join graphics.LineJoinStyle

	// MiterLimit caps miter join length. Values below 1 select the
	// default.
	MiterLimit float64

	// Dash specifies alternating on/off lengths. All elements must be
	// non-negative, and at least one must be positive. Nil means solid.
	Dash []float64

	// DashPhase offsets into the dash pattern.
	DashPhase float64
}

// Engine is the geometry backend used to eliminate strokes and clip paths.
//
// Implementations must be safe for concurrent use.
type Engine interface {
	// Stroke returns the outline of the area covered by stroking p.
	Stroke(p *svgpath.Path, style StrokeStyle) (*svgpath.Path, error)

	// Boolean combines two filled regions. An empty result is returned as
	// an empty, non-nil path.
	Boolean(op Op, a, b Operand) (*svgpath.Path, error)
}

// DefaultTolerance is the flattening tolerance used by a Clipper with
// Tolerance zero.
const DefaultTolerance = 0.1

// Clipper is the default Engine. Curves are replaced by polygons which
// deviate from the curve by at most Tolerance, strokes are expanded by a
// polygon stroker, and boolean operations use the Martinez-Rueda algorithm.
//
// A Clipper can be shared between goroutines. Scratch buffers are reused
// across calls and never shrink.
type Clipper struct {
	// Tolerance is the maximal distance between a curve and its polygonal
	// approximation.
	Tolerance float64

	mu sync.Mutex
	st stroker
}

// NewClipper returns a Clipper with the given flattening tolerance.
func NewClipper(tolerance float64) *Clipper {
	return &Clipper{Tolerance: tolerance}
}

func (c *Clipper) tolerance() float64 {
	if c.Tolerance > 0 && !math.IsInf(c.Tolerance, 0) {
		return c.Tolerance
	}
	return DefaultTolerance
}

// Stroke implements the [Engine] interface.
func (c *Clipper) Stroke(p *svgpath.Path, style StrokeStyle) (res *svgpath.Path, err error) {
	defer recoverGeometry("stroke", &err)

	if !(style.Width > 0) || math.IsInf(style.Width, 0) {
		return nil, svgerr.New(svgerr.GeometryReductionError, "invalid stroke width %g", style.Width)
	}
	if style.MiterLimit < 1 {
		style.MiterLimit = defaultMiterLimit
	}
	if !validDash(style.Dash) {
		style.Dash = nil
	}
	if err := checkFinite(p); err != nil {
		return nil, err
	}

	// each group is filled on its own; the oriented results have winding
	// number 1 inside, so that their union is again a nonzero fill
	var all [][]vec.Vec2
	for _, group := range c.outline(p, style) {
		part, err := region(group, svgpath.NonZero)
		if err != nil {
			return nil, err
		}
		all = append(all, oriented(part)...)
	}
	covered, err := region(all, svgpath.NonZero)
	if err != nil {
		return nil, err
	}
	return toPath(covered), nil
}

func (c *Clipper) outline(p *svgpath.Path, style StrokeStyle) [][][]vec.Vec2 {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.st.StrokeStyle = style
	c.st.flatness = c.tolerance()
	return c.st.outline(p)
}

// Boolean implements the [Engine] interface.
func (c *Clipper) Boolean(op Op, a, b Operand) (res *svgpath.Path, err error) {
	defer recoverGeometry(op.String(), &err)

	if err := checkFinite(a.Path); err != nil {
		return nil, err
	}
	if err := checkFinite(b.Path); err != nil {
		return nil, err
	}

	tol := c.tolerance()
	ra, err := region(flatten(a.Path, tol), a.Rule)
	if err != nil {
		return nil, err
	}
	rb, err := region(flatten(b.Path, tol), b.Rule)
	if err != nil {
		return nil, err
	}

	var out polygon
	switch op {
	case Union:
		out = union(ra, rb)
	case Intersect:
		out = intersect(ra, rb)
	case Difference:
		out = difference(ra, rb)
	default:
		return nil, svgerr.New(svgerr.GeometryReductionError, "unknown boolean operation %s", op)
	}
	return toPath(out), nil
}

// Simplify returns a path which covers the same region as p under the
// given rule, with contours oriented so that the nonzero rule applies.
func Simplify(e Engine, p *svgpath.Path, rule svgpath.FillRule) (*svgpath.Path, error) {
	return e.Boolean(Union, Operand{Path: p, Rule: rule}, Operand{Path: &svgpath.Path{}})
}

var errTooComplex = svgerr.New(svgerr.GeometryReductionError,
	"too many self-intersections under the nonzero fill rule")

// recoverGeometry turns a panic inside the polygon code into an error.
func recoverGeometry(what string, err *error) {
	if r := recover(); r != nil {
		*err = svgerr.New(svgerr.GeometryReductionError, "%s failed: %v", what, r)
	}
}

func checkFinite(p *svgpath.Path) error {
	if p == nil {
		return nil
	}
	for _, pts := range p.Iter() {
		for _, v := range pts {
			if math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsInf(v.X, 0) || math.IsInf(v.Y, 0) {
				return svgerr.New(svgerr.GeometryReductionError, "non-finite coordinate in path")
			}
		}
	}
	return nil
}

func validDash(dash []float64) bool {
	if len(dash) == 0 {
		return false
	}
	total := 0.0
	for _, d := range dash {
		if d < 0 || math.IsNaN(d) || math.IsInf(d, 0) {
			return false
		}
		total += d
	}
	return total > 0
}

// Default values for stroke parameters.
const (
	// defaultMiterLimit is the initial value of stroke-miterlimit.
	defaultMiterLimit = 4.0
)

// Numerical tolerances for the stroker.
const (
	// zeroLengthThreshold is the minimum length for a stroke segment.
	// Segments shorter than this are skipped.
	zeroLengthThreshold = 1e-10

	// collinearityThreshold is used to detect nearly collinear segments
	// where no join is needed.
	collinearityThreshold = 1e-6

	// cuspCosineThreshold is the cosine threshold for detecting cusps
	// (path doubling back on itself). cos(179.43°) ≈ -0.9999
	cuspCosineThreshold = -0.9999
)
