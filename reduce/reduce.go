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

// Package reduce removes strokes and clip paths from shapes, by asking a
// [pathops.Engine] for stroke outlines and intersections.
//
// All paths returned by this package are in root coordinates and use the
// nonzero fill rule.
package reduce

import (
	"math"

	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/picosvg/affine"
	"seehuhn.de/go/picosvg/paint"
	"seehuhn.de/go/picosvg/pathops"
	"seehuhn.de/go/picosvg/svgerr"
	"seehuhn.de/go/picosvg/svgpath"
)

// Reducer turns filled, stroked and clipped shapes into plain filled
// outlines.
type Reducer struct {
	Engine pathops.Engine
}

// Fill returns the fill region of p in root coordinates, with quadratic
// and arc segments replaced by cubic curves. Even-odd regions are
// rewritten so that the nonzero rule gives the same area.
func (r *Reducer) Fill(p *svgpath.Path, rule svgpath.FillRule, ctm matrix.Matrix) (*svgpath.Path, error) {
	res := p.ToCubics().Transform(ctm)
	if rule != svgpath.EvenOdd || res.IsEmpty() {
		return res, nil
	}
	res, err := pathops.Simplify(r.Engine, res, svgpath.EvenOdd)
	if err != nil {
		return nil, geometryError(err, "fill-rule conversion")
	}
	return res, nil
}

// StrokeToFill returns the outline of the stroke of p in root
// coordinates. The result is nil if s paints no stroke.
//
// If ctm is a similarity transform, the path is mapped to root
// coordinates first and the pen is scaled, so that the flattening
// tolerance applies in root units. Otherwise the outline is computed in
// the local coordinate system and transformed afterwards.
func (r *Reducer) StrokeToFill(p *svgpath.Path, s *paint.Style, ctm matrix.Matrix) (*svgpath.Path, error) {
	if !s.HasStroke() || p.IsEmpty() {
		return nil, nil
	}

	style := pathops.StrokeStyle{
		Width:      s.StrokeWidth,
		Cap:        s.LineCap,
		Join:       s.LineJoin,
		MiterLimit: s.MiterLimit,
		Dash:       s.Dash,
		DashPhase:  s.DashOffset,
	}

	if scale, ok := similarity(ctm); ok {
		style.Width *= scale
		style.DashPhase *= scale
		if style.Dash != nil {
			dash := make([]float64, len(style.Dash))
			for i, d := range style.Dash {
				dash[i] = d * scale
			}
			style.Dash = dash
		}
		res, err := r.Engine.Stroke(p.Transform(ctm), style)
		if err != nil {
			return nil, geometryError(err, "stroke")
		}
		return res, nil
	}

	res, err := r.Engine.Stroke(p, style)
	if err != nil {
		return nil, geometryError(err, "stroke")
	}
	return res.Transform(ctm), nil
}

// Clip intersects the nonzero region shape with every clip outline in
// turn. The result is nil if the intersection is empty.
func (r *Reducer) Clip(shape *svgpath.Path, clips ...*svgpath.Path) (*svgpath.Path, error) {
	res := shape
	for _, c := range clips {
		if res.IsEmpty() {
			return nil, nil
		}
		var err error
		res, err = r.Engine.Boolean(pathops.Intersect,
			pathops.Operand{Path: res, Rule: svgpath.NonZero},
			pathops.Operand{Path: c, Rule: svgpath.NonZero})
		if err != nil {
			return nil, geometryError(err, "clip")
		}
	}
	if res.IsEmpty() {
		return nil, nil
	}
	return res, nil
}

// similarity reports whether m maps circles to circles, and returns the
// scale factor.
func similarity(m matrix.Matrix) (float64, bool) {
	const eps = 1e-9
	a, b, c, d := m[0], m[1], m[2], m[3]
	rotation := math.Abs(a-d) <= eps*(math.Abs(a)+math.Abs(d)+1) &&
		math.Abs(b+c) <= eps*(math.Abs(b)+math.Abs(c)+1)
	reflection := math.Abs(a+d) <= eps*(math.Abs(a)+math.Abs(d)+1) &&
		math.Abs(b-c) <= eps*(math.Abs(b)+math.Abs(c)+1)
	if !rotation && !reflection {
		return 0, false
	}
	scale := math.Sqrt(math.Abs(affine.Det(m)))
	return scale, scale > 0
}

// geometryError makes sure that errors from the engine carry a code.
func geometryError(err error, what string) error {
	if svgerr.CodeOf(err) != "" {
		return err
	}
	return svgerr.Wrap(svgerr.GeometryReductionError, err, "%s failed", what)
}
