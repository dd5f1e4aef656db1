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

// Package svgpath implements the path model used while reducing SVG
// documents: parsing and formatting of path data, the basic shapes, arc
// conversion, affine transforms and bounding boxes.
//
// A [Path] is a sequence of subpaths. Each [Subpath] has a start point, a
// list of segments and a flag which records whether it was closed. All
// coordinates are absolute; relative and shorthand commands are expanded
// by [Parse].
package svgpath

import (
	"slices"

	"seehuhn.de/go/geom/vec"
)

// Segment is one of [LineTo], [QuadTo], [CubeTo] or [ArcTo].
type Segment interface {
	// End returns the end point of the segment.
	End() vec.Vec2

	isSegment()
}

// LineTo is a straight line to P.
type LineTo struct {
	P vec.Vec2
}

// QuadTo is a quadratic Bézier curve with control point C, ending at P.
type QuadTo struct {
	C, P vec.Vec2
}

// CubeTo is a cubic Bézier curve with control points C1 and C2, ending at P.
type CubeTo struct {
	C1, C2, P vec.Vec2
}

// ArcTo is an elliptical arc ending at P, in SVG endpoint parametrisation.
// Rotation is the x-axis rotation of the ellipse in degrees.
type ArcTo struct {
	RX, RY   float64
	Rotation float64
	LargeArc bool
	Sweep    bool
	P        vec.Vec2
}

func (s LineTo) End() vec.Vec2 { return s.P }
func (s QuadTo) End() vec.Vec2 { return s.P }
func (s CubeTo) End() vec.Vec2 { return s.P }
func (s ArcTo) End() vec.Vec2  { return s.P }

func (LineTo) isSegment() {}
func (QuadTo) isSegment() {}
func (CubeTo) isSegment() {}
func (ArcTo) isSegment()  {}

// Subpath is a connected piece of a path.
type Subpath struct {
	Start    vec.Vec2
	Segments []Segment
	Closed   bool
}

// End returns the current point after the last segment.
func (sp *Subpath) End() vec.Vec2 {
	if len(sp.Segments) == 0 {
		return sp.Start
	}
	return sp.Segments[len(sp.Segments)-1].End()
}

// Path is a sequence of subpaths.
type Path struct {
	Subpaths []Subpath
}

// FillRule selects how the interior of a path is determined.
type FillRule int

// These are the fill rules supported by SVG.
const (
	NonZero FillRule = iota
	EvenOdd
)

// ParseFillRule parses the value of a fill-rule or clip-rule property.
func ParseFillRule(s string) (FillRule, bool) {
	switch s {
	case "nonzero":
		return NonZero, true
	case "evenodd":
		return EvenOdd, true
	}
	return NonZero, false
}

func (r FillRule) String() string {
	if r == EvenOdd {
		return "evenodd"
	}
	return "nonzero"
}

// MoveTo starts a new subpath at p.
func (p *Path) MoveTo(pt vec.Vec2) {
	p.Subpaths = append(p.Subpaths, Subpath{Start: pt})
}

// current returns the subpath which receives new segments. After a close,
// a new subpath is started at the start point of the closed one.
func (p *Path) current() *Subpath {
	if len(p.Subpaths) == 0 {
		p.Subpaths = append(p.Subpaths, Subpath{})
	}
	last := &p.Subpaths[len(p.Subpaths)-1]
	if last.Closed {
		p.Subpaths = append(p.Subpaths, Subpath{Start: last.Start})
		last = &p.Subpaths[len(p.Subpaths)-1]
	}
	return last
}

// CurrentPoint returns the end point of the last subpath.
func (p *Path) CurrentPoint() vec.Vec2 {
	if len(p.Subpaths) == 0 {
		return vec.Vec2{}
	}
	last := &p.Subpaths[len(p.Subpaths)-1]
	if last.Closed {
		return last.Start
	}
	return last.End()
}

// Append adds a segment to the current subpath.
func (p *Path) Append(s Segment) {
	sp := p.current()
	sp.Segments = append(sp.Segments, s)
}

// LineTo appends a straight line.
func (p *Path) LineTo(pt vec.Vec2) {
	p.Append(LineTo{P: pt})
}

// CubeTo appends a cubic Bézier curve.
func (p *Path) CubeTo(c1, c2, pt vec.Vec2) {
	p.Append(CubeTo{C1: c1, C2: c2, P: pt})
}

// Close closes the current subpath.
func (p *Path) Close() {
	if len(p.Subpaths) == 0 {
		return
	}
	p.Subpaths[len(p.Subpaths)-1].Closed = true
}

// IsEmpty reports whether the path contains no segments.
func (p *Path) IsEmpty() bool {
	if p == nil {
		return true
	}
	for i := range p.Subpaths {
		if len(p.Subpaths[i].Segments) > 0 {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of p.
func (p *Path) Clone() *Path {
	res := &Path{Subpaths: make([]Subpath, len(p.Subpaths))}
	for i, sp := range p.Subpaths {
		res.Subpaths[i] = Subpath{
			Start:    sp.Start,
			Segments: append([]Segment(nil), sp.Segments...),
			Closed:   sp.Closed,
		}
	}
	return res
}

// Extend appends all subpaths of q to p.
func (p *Path) Extend(q *Path) {
	if q == nil {
		return
	}
	p.Subpaths = append(p.Subpaths, q.Clone().Subpaths...)
}

// WithoutEmptySubpaths returns a copy of p with all subpaths which contain
// no segments removed.
func (p *Path) WithoutEmptySubpaths() *Path {
	res := &Path{}
	for _, sp := range p.Clone().Subpaths {
		if len(sp.Segments) > 0 {
			res.Subpaths = append(res.Subpaths, sp)
		}
	}
	return res
}

// Equal reports whether p and q consist of the same subpaths and segments.
func (p *Path) Equal(q *Path) bool {
	var ps, qs []Subpath
	if p != nil {
		ps = p.Subpaths
	}
	if q != nil {
		qs = q.Subpaths
	}
	return slices.EqualFunc(ps, qs, func(a, b Subpath) bool {
		return a.Start == b.Start && a.Closed == b.Closed && slices.Equal(a.Segments, b.Segments)
	})
}
