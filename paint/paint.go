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

// Package paint resolves the presentation properties of SVG elements: the
// style cascade, colors, paints and gradients.
package paint

import (
	"strings"

	"seehuhn.de/go/picosvg/svg"
	"seehuhn.de/go/picosvg/svgerr"
)

// Paint is the value of a fill or stroke property. It is one of [None],
// [Solid], [GradientRef] or [CurrentColor].
type Paint interface {
	isPaint()
}

// None paints nothing.
type None struct{}

// Solid paints a single color.
type Solid struct {
	Color Color
}

// GradientRef paints with the gradient of the given id. Fallback, which
// may be nil, is used if the reference cannot be resolved.
type GradientRef struct {
	ID       string
	Fallback Paint
}

// CurrentColor paints with the value of the color property. The cascade
// replaces it by a [Solid] paint.
type CurrentColor struct{}

func (None) isPaint()         {}
func (Solid) isPaint()        {}
func (GradientRef) isPaint()  {}
func (CurrentColor) isPaint() {}

// ParsePaint parses the value of a fill or stroke property.
func ParsePaint(s string) (Paint, error) {
	s = strings.TrimSpace(s)
	switch s {
	case "none":
		return None{}, nil
	case "currentColor", "currentcolor":
		return CurrentColor{}, nil
	}
	if strings.HasPrefix(s, "url(") {
		end := strings.IndexByte(s, ')')
		if end < 0 {
			return nil, svgerr.New(svgerr.MalformedDocument, "invalid paint %q", s)
		}
		id, local := svg.RefID(s[:end+1])
		if !local {
			return nil, svgerr.New(svgerr.UnsupportedFeature, "external paint server %q", s)
		}
		ref := GradientRef{ID: id}
		if rest := strings.TrimSpace(s[end+1:]); rest != "" {
			fb, err := ParsePaint(rest)
			if err != nil {
				return nil, err
			}
			ref.Fallback = fb
		}
		return ref, nil
	}
	c, err := ParseColor(s)
	if err != nil {
		return nil, svgerr.Wrap(svgerr.MalformedDocument, err, "invalid paint")
	}
	return Solid{Color: c}, nil
}
