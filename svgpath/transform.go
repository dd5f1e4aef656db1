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

package svgpath

import (
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/picosvg/affine"
	"seehuhn.de/go/picosvg/num"
)

// Transform returns a copy of p mapped by m. Arcs are converted to cubic
// curves first, since an affine map of an elliptical arc cannot always be
// expressed with the same arc parameters after rounding.
func (p *Path) Transform(m matrix.Matrix) *Path {
	src := p
	if p.HasArcs() {
		src = p.ToCubics()
	}
	if affine.IsIdentity(m) {
		return src.Clone()
	}
	f := func(v vec.Vec2) vec.Vec2 { return affine.Apply(m, v) }
	return src.mapPoints(f)
}

// mapPoints applies f to every point of a path without arcs.
func (p *Path) mapPoints(f func(vec.Vec2) vec.Vec2) *Path {
	res := &Path{Subpaths: make([]Subpath, len(p.Subpaths))}
	for i, sp := range p.Subpaths {
		out := Subpath{Start: f(sp.Start), Closed: sp.Closed}
		out.Segments = make([]Segment, len(sp.Segments))
		for j, seg := range sp.Segments {
			switch s := seg.(type) {
			case LineTo:
				out.Segments[j] = LineTo{P: f(s.P)}
			case QuadTo:
				out.Segments[j] = QuadTo{C: f(s.C), P: f(s.P)}
			case CubeTo:
				out.Segments[j] = CubeTo{C1: f(s.C1), C2: f(s.C2), P: f(s.P)}
			case ArcTo:
				s.P = f(s.P)
				out.Segments[j] = s
			}
		}
		res.Subpaths[i] = out
	}
	return res
}

// Round returns a copy of p with every coordinate rounded to the given
// number of fractional digits.
func (p *Path) Round(digits int) *Path {
	r := func(x float64) float64 { return num.Round(x, digits) }
	res := p.mapPoints(func(v vec.Vec2) vec.Vec2 {
		return vec.Vec2{X: r(v.X), Y: r(v.Y)}
	})
	for i := range res.Subpaths {
		for j, seg := range res.Subpaths[i].Segments {
			if a, ok := seg.(ArcTo); ok {
				a.RX, a.RY, a.Rotation = r(a.RX), r(a.RY), r(a.Rotation)
				res.Subpaths[i].Segments[j] = a
			}
		}
	}
	return res
}

// Iter returns the path as a sequence of drawing commands. Arcs are
// reported as cubic curves. Subpaths without segments are reported as a
// single MoveTo.
func (p *Path) Iter() path.Path {
	src := p
	if p.HasArcs() {
		src = p.ToCubics()
	}
	return func(yield func(path.Command, []vec.Vec2) bool) {
		var buf [3]vec.Vec2
		for _, sp := range src.Subpaths {
			buf[0] = sp.Start
			if !yield(path.CmdMoveTo, buf[:1]) {
				return
			}
			for _, seg := range sp.Segments {
				var ok bool
				switch s := seg.(type) {
				case LineTo:
					buf[0] = s.P
					ok = yield(path.CmdLineTo, buf[:1])
				case QuadTo:
					buf[0], buf[1] = s.C, s.P
					ok = yield(path.CmdQuadTo, buf[:2])
				case CubeTo:
					buf[0], buf[1], buf[2] = s.C1, s.C2, s.P
					ok = yield(path.CmdCubeTo, buf[:3])
				}
				if !ok {
					return
				}
			}
			if sp.Closed {
				if !yield(path.CmdClose, nil) {
					return
				}
			}
		}
	}
}

// Bounds returns the exact bounding box of all subpaths which contain at
// least one segment. The second return value is false if there are none.
func (p *Path) Bounds() (rect.Rect, bool) {
	var b bbox
	for _, sp := range p.ToCubics().Subpaths {
		if len(sp.Segments) == 0 {
			continue
		}
		b.add(sp.Start)
		cur := sp.Start
		for _, seg := range sp.Segments {
			switch s := seg.(type) {
			case LineTo:
				b.add(s.P)
			case CubeTo:
				b.addCubic(cur, s.C1, s.C2, s.P)
			}
			cur = seg.End()
		}
	}
	return b.r, b.ok
}

type bbox struct {
	r  rect.Rect
	ok bool
}

func (b *bbox) add(v vec.Vec2) {
	if !b.ok {
		b.r = rect.Rect{LLx: v.X, LLy: v.Y, URx: v.X, URy: v.Y}
		b.ok = true
		return
	}
	b.r.LLx = min(b.r.LLx, v.X)
	b.r.LLy = min(b.r.LLy, v.Y)
	b.r.URx = max(b.r.URx, v.X)
	b.r.URy = max(b.r.URy, v.Y)
}

// addCubic adds the end point and all axis extrema of a cubic curve.
func (b *bbox) addCubic(p0, p1, p2, p3 vec.Vec2) {
	b.add(p3)
	eval := func(t float64) vec.Vec2 {
		omt := 1 - t
		return p0.Mul(omt * omt * omt).
			Add(p1.Mul(3 * omt * omt * t)).
			Add(p2.Mul(3 * omt * t * t)).
			Add(p3.Mul(t * t * t))
	}
	for _, t := range cubicExtrema(p0.X, p1.X, p2.X, p3.X) {
		b.add(eval(t))
	}
	for _, t := range cubicExtrema(p0.Y, p1.Y, p2.Y, p3.Y) {
		b.add(eval(t))
	}
}

// cubicExtrema returns the parameters in (0, 1) where the derivative of the
// one-dimensional cubic Bézier curve vanishes.
func cubicExtrema(x0, x1, x2, x3 float64) []float64 {
	a := -x0 + 3*x1 - 3*x2 + x3
	b := 2 * (x0 - 2*x1 + x2)
	c := x1 - x0

	var roots []float64
	keep := func(t float64) {
		if t > 0 && t < 1 {
			roots = append(roots, t)
		}
	}
	if math.Abs(a) < 1e-12 {
		if math.Abs(b) > 1e-12 {
			keep(-c / b)
		}
		return roots
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		return nil
	}
	sq := math.Sqrt(disc)
	keep((-b + sq) / (2 * a))
	keep((-b - sq) / (2 * a))
	return roots
}
