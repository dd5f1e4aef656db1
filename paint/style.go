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

package paint

import (
	"math"
	"strings"

	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/picosvg/num"
	"seehuhn.de/go/picosvg/svg"
	"seehuhn.de/go/picosvg/svgerr"
	"seehuhn.de/go/picosvg/svgpath"
)

// Style holds the computed presentation properties of an element.
type Style struct {
	Fill        Paint
	FillOpacity float64
	FillRule    svgpath.FillRule

	Stroke        Paint
	StrokeOpacity float64
	StrokeWidth   float64
	LineCap       graphics.LineCapStyle
	LineJoin      graphics.LineJoinStyle
	MiterLimit    float64
	Dash          []float64
	DashOffset    float64

	ClipRule svgpath.FillRule
	Color    Color
	Visible  bool

	// Opacity is the product of the opacity properties of the element and
	// all its ancestors.
	Opacity float64

	// The following properties are not inherited.
	Display  bool
	ClipPath string
	Mask     string
	Filter   string
}

// Initial returns the style of the root element before any properties are
// applied.
func Initial() Style {
	return Style{
		Fill:          Solid{Color: Black},
		FillOpacity:   1,
		Stroke:        None{},
		StrokeOpacity: 1,
		StrokeWidth:   1,
		LineCap:       graphics.LineCapButt,
		LineJoin:      graphics.LineJoinMiter,
		MiterLimit:    4,
		Color:         Black,
		Visible:       true,
		Opacity:       1,
		Display:       true,
	}
}

// HasStroke reports whether s paints a stroke.
func (s *Style) HasStroke() bool {
	_, none := s.Stroke.(None)
	return !none && s.StrokeWidth > 0 && s.StrokeOpacity > 0
}

// HasFill reports whether s paints a fill.
func (s *Style) HasFill() bool {
	_, none := s.Fill.(None)
	return !none && s.FillOpacity > 0
}

// Resolver computes element styles.
type Resolver struct {
	// Sheet holds the document style sheets, may be nil.
	Sheet *Sheet

	// Diagonal is the normalized diagonal sqrt((w²+h²)/2) of the viewport,
	// the reference length for percentages in stroke properties.
	Diagonal float64
}

// Cascade returns the style of n, given the style of its parent. Invalid
// property values are ignored. References to external resources give an
// error with code [svgerr.UnsupportedFeature].
func (r *Resolver) Cascade(parent Style, n *svg.Node) (Style, error) {
	s := parent
	s.Display = true
	s.ClipPath = ""
	s.Mask = ""
	s.Filter = ""

	decls := r.Sheet.Declarations(n)

	// color first, so that currentColor below sees the new value
	if v, ok := decls["color"]; ok && v != "inherit" {
		if c, err := ParseColor(v); err == nil {
			s.Color = c
		}
	}

	ownOpacity := 1.0
	for prop, v := range decls {
		if v == "inherit" {
			continue
		}
		switch prop {
		case "fill", "stroke":
			p, err := ParsePaint(v)
			if svgerr.Is(err, svgerr.UnsupportedFeature) {
				return Style{}, err
			} else if err != nil {
				continue
			}
			if prop == "fill" {
				s.Fill = p
			} else {
				s.Stroke = p
			}
		case "fill-opacity":
			if a, ok := parseOpacity(v); ok {
				s.FillOpacity = a
			}
		case "stroke-opacity":
			if a, ok := parseOpacity(v); ok {
				s.StrokeOpacity = a
			}
		case "opacity":
			if a, ok := parseOpacity(v); ok {
				ownOpacity = a
			}
		case "fill-rule":
			if rule, ok := svgpath.ParseFillRule(v); ok {
				s.FillRule = rule
			}
		case "clip-rule":
			if rule, ok := svgpath.ParseFillRule(v); ok {
				s.ClipRule = rule
			}
		case "stroke-width":
			if w, err := num.ParseLength(v, r.Diagonal); err == nil && w >= 0 {
				s.StrokeWidth = w
			}
		case "stroke-linecap":
			switch v {
			case "butt":
				s.LineCap = graphics.LineCapButt
			case "round":
				s.LineCap = graphics.LineCapRound
			case "square":
				s.LineCap = graphics.LineCapSquare
			}
		case "stroke-linejoin":
			switch v {
			case "miter", "miter-clip", "arcs":
				s.LineJoin = graphics.LineJoinMiter
			case "round":
				s.LineJoin = graphics.LineJoinRound
			case "bevel":
				s.LineJoin = graphics.LineJoinBevel
			}
		case "stroke-miterlimit":
			if m, err := num.Parse(v); err == nil && m >= 1 {
				s.MiterLimit = m
			}
		case "stroke-dasharray":
			if dash, ok := r.parseDash(v); ok {
				s.Dash = dash
			}
		case "stroke-dashoffset":
			if off, err := num.ParseLength(v, r.Diagonal); err == nil {
				s.DashOffset = off
			}
		case "display":
			s.Display = v != "none"
		case "visibility":
			s.Visible = v == "visible"
		case "clip-path":
			if v != "none" {
				s.ClipPath = v
			}
		case "mask":
			if v != "none" {
				s.Mask = v
			}
		case "filter":
			if v != "none" {
				s.Filter = v
			}
		}
	}
	s.Opacity = parent.Opacity * ownOpacity

	if _, ok := s.Fill.(CurrentColor); ok {
		s.Fill = Solid{Color: s.Color}
	}
	if _, ok := s.Stroke.(CurrentColor); ok {
		s.Stroke = Solid{Color: s.Color}
	}
	return s, nil
}

// parseOpacity parses a number or percentage and clamps it to [0, 1].
func parseOpacity(v string) (float64, bool) {
	a, err := num.ParseLength(v, 1)
	if err != nil || strings.HasSuffix(v, "px") {
		return 0, false
	}
	return min(max(a, 0), 1), true
}

// parseDash parses stroke-dasharray. "none", an all-zero list or a list
// with negative entries disable dashing. Odd lists are repeated to give an
// even number of entries.
func (r *Resolver) parseDash(v string) ([]float64, bool) {
	if v == "none" {
		return nil, true
	}
	fields := strings.FieldsFunc(v, func(c rune) bool {
		return c == ',' || c == ' ' || c == '\t' || c == '\n'
	})
	if len(fields) == 0 {
		return nil, false
	}
	dash := make([]float64, 0, 2*len(fields))
	total := 0.0
	for _, f := range fields {
		d, err := num.ParseLength(f, r.Diagonal)
		if err != nil {
			return nil, false
		}
		if d < 0 || math.IsNaN(d) {
			return nil, true
		}
		dash = append(dash, d)
		total += d
	}
	if total == 0 {
		return nil, true
	}
	if len(dash)%2 == 1 {
		dash = append(dash, dash...)
	}
	return dash, true
}
