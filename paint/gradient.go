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
	"slices"
	"strings"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/picosvg/affine"
	"seehuhn.de/go/picosvg/num"
	"seehuhn.de/go/picosvg/svg"
	"seehuhn.de/go/picosvg/svgerr"
)

// GradientKind distinguishes linear and radial gradients.
type GradientKind int

// These are the supported gradient kinds.
const (
	Linear GradientKind = iota
	Radial
)

// Units is the coordinate system of gradient geometry.
type Units int

// These are the values of the gradientUnits attribute.
const (
	ObjectBoundingBox Units = iota
	UserSpaceOnUse
)

// Stop is a color stop of a gradient.
type Stop struct {
	Offset  float64
	Color   Color
	Opacity float64
}

// Gradient is a fully resolved gradient: href templates have been applied
// and defaults filled in.
type Gradient struct {
	ID        string
	Kind      GradientKind
	Units     Units
	Transform matrix.Matrix
	Spread    string // "pad", "reflect" or "repeat"

	X1, Y1, X2, Y2 float64 // linear gradients

	CX, CY, R, FX, FY, FR float64 // radial gradients

	Stops []Stop
}

// attributes shared by both gradient kinds, which are inherited through
// href across kinds
var commonGradientAttrs = []string{"gradientUnits", "gradientTransform", "spreadMethod"}

var kindGradientAttrs = map[svg.Kind][]string{
	svg.KindLinearGradient: {"x1", "y1", "x2", "y2"},
	svg.KindRadialGradient: {"cx", "cy", "r", "fx", "fy", "fr"},
}

// GradientResolver resolves gradient definitions of a document.
type GradientResolver struct {
	Index    svg.Index
	Sheet    *Sheet
	Viewport rect.Rect

	// Lenient makes dangling href references on gradients act as if the
	// attribute was absent, instead of failing.
	Lenient bool

	cache map[string]*Gradient
}

// Resolve returns the gradient with the given id. It returns an error with
// code [svgerr.UnresolvedReference] if there is no such gradient, and
// [svgerr.CyclicGradientReference] if the href chain loops.
func (gr *GradientResolver) Resolve(id string) (*Gradient, error) {
	if g, ok := gr.cache[id]; ok {
		return g, nil
	}
	n := gr.Index[id]
	if n == nil || !n.Kind.IsGradient() {
		return nil, svgerr.New(svgerr.UnresolvedReference, "no gradient with id %q", id)
	}

	attrs, stops, err := gr.merge(n, nil)
	if err != nil {
		return nil, err
	}
	g, err := gr.build(id, n.Kind, attrs, stops)
	if err != nil {
		return nil, svgerr.Locate(err, id)
	}
	if gr.cache == nil {
		gr.cache = map[string]*Gradient{}
	}
	gr.cache[id] = g
	return g, nil
}

// ResolveGradients returns a resolver for the gradients below root, after
// resolving every gradient with an id once. This reports broken href
// chains even for gradients which are never used.
func ResolveGradients(root *svg.Node, sheet *Sheet, viewport rect.Rect, lenient bool) (*GradientResolver, error) {
	gr := &GradientResolver{
		Index:    svg.BuildIndex(root),
		Sheet:    sheet,
		Viewport: viewport,
		Lenient:  lenient,
	}
	var err error
	svg.Walk(root, func(n *svg.Node) bool {
		if err != nil {
			return false
		}
		if id := n.ID(); id != "" && n.Kind.IsGradient() && gr.Index[id] == n {
			_, err = gr.Resolve(id)
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return gr, nil
}

// merge follows the href chain of n, collecting attributes (the nearest
// definition wins) and the stops of the first gradient which has any.
func (gr *GradientResolver) merge(n *svg.Node, visiting []string) (map[string]string, []*svg.Node, error) {
	id := n.ID()
	if slices.Contains(visiting, id) {
		return nil, nil, svgerr.New(svgerr.CyclicGradientReference, "gradient href chain %s -> %s loops",
			strings.Join(visiting, " -> "), id).At(id)
	}
	visiting = append(visiting, id)

	attrs := map[string]string{}
	var stops []*svg.Node
	if href := n.Href(); href != "" {
		target, tid, local := gr.Index.Lookup(href)
		switch {
		case !local:
			return nil, nil, svgerr.New(svgerr.UnsupportedFeature, "external gradient template %q", href).At(id)
		case target == nil || !target.Kind.IsGradient():
			if !gr.Lenient {
				return nil, nil, svgerr.New(svgerr.UnresolvedReference, "gradient template %q not found", tid).At(id)
			}
		default:
			tAttrs, tStops, err := gr.merge(target, visiting)
			if err != nil {
				return nil, nil, err
			}
			for _, name := range commonGradientAttrs {
				if v, ok := tAttrs[name]; ok {
					attrs[name] = v
				}
			}
			if target.Kind == n.Kind {
				for _, name := range kindGradientAttrs[n.Kind] {
					if v, ok := tAttrs[name]; ok {
						attrs[name] = v
					}
				}
			}
			stops = tStops
		}
	}

	for _, name := range commonGradientAttrs {
		if v, ok := n.Attr(name); ok {
			attrs[name] = v
		}
	}
	for _, name := range kindGradientAttrs[n.Kind] {
		if v, ok := n.Attr(name); ok {
			attrs[name] = v
		}
	}
	var own []*svg.Node
	for _, c := range n.Children {
		if c.Kind == svg.KindStop {
			own = append(own, c)
		}
	}
	if len(own) > 0 {
		stops = own
	}
	return attrs, stops, nil
}

func (gr *GradientResolver) build(id string, kind svg.Kind, attrs map[string]string, stopNodes []*svg.Node) (*Gradient, error) {
	g := &Gradient{
		ID:        id,
		Transform: matrix.Identity,
		Spread:    "pad",
	}
	if attrs["gradientUnits"] == "userSpaceOnUse" {
		g.Units = UserSpaceOnUse
	}
	if v, ok := attrs["gradientTransform"]; ok {
		m, err := affine.Parse(v)
		if err != nil {
			return nil, err
		}
		g.Transform = m
	}
	if v := attrs["spreadMethod"]; v == "reflect" || v == "repeat" {
		g.Spread = v
	}

	w, h := 1.0, 1.0
	if g.Units == UserSpaceOnUse {
		w = gr.Viewport.URx - gr.Viewport.LLx
		h = gr.Viewport.URy - gr.Viewport.LLy
	}
	diag := math.Sqrt((w*w + h*h) / 2)
	length := func(name, def string, ref float64) (float64, error) {
		v, ok := attrs[name]
		if !ok {
			v = def
		}
		x, err := num.ParseLength(v, ref)
		if err != nil {
			return 0, svgerr.Wrap(svgerr.MalformedDocument, err, "attribute %s=%q", name, v)
		}
		return x, nil
	}

	var err error
	set := func(dst *float64, name, def string, ref float64) {
		if err == nil {
			*dst, err = length(name, def, ref)
		}
	}
	switch kind {
	case svg.KindLinearGradient:
		g.Kind = Linear
		set(&g.X1, "x1", "0%", w)
		set(&g.Y1, "y1", "0%", h)
		set(&g.X2, "x2", "100%", w)
		set(&g.Y2, "y2", "0%", h)
	case svg.KindRadialGradient:
		g.Kind = Radial
		set(&g.CX, "cx", "50%", w)
		set(&g.CY, "cy", "50%", h)
		set(&g.R, "r", "50%", diag)
		// fx and fy default to the already parsed cx and cy
		set(&g.FX, "fx", num.Format(g.CX, 17), w)
		set(&g.FY, "fy", num.Format(g.CY, 17), h)
		set(&g.FR, "fr", "0", diag)
	}
	if err != nil {
		return nil, err
	}

	last := 0.0
	for _, sn := range stopNodes {
		st, err := gr.stop(sn)
		if err != nil {
			return nil, err
		}
		st.Offset = max(st.Offset, last)
		last = st.Offset
		g.Stops = append(g.Stops, st)
	}
	return g, nil
}

func (gr *GradientResolver) stop(n *svg.Node) (Stop, error) {
	st := Stop{Color: Black, Opacity: 1}
	if v, ok := n.Attr("offset"); ok {
		off, err := num.ParseLength(v, 1)
		if err != nil {
			return Stop{}, svgerr.Wrap(svgerr.MalformedDocument, err, "stop offset %q", v)
		}
		st.Offset = min(max(off, 0), 1)
	}
	decls := gr.Sheet.Declarations(n)
	if v, ok := decls["stop-color"]; ok {
		if c, err := ParseColor(v); err == nil {
			st.Color = c
		}
	}
	if v, ok := decls["stop-opacity"]; ok {
		if a, ok := parseOpacity(v); ok {
			st.Opacity = a
		}
	}
	// alpha of the color itself folds into the opacity
	st.Opacity *= st.Color.A
	st.Color = st.Color.Opaque()
	return st, nil
}

// InUserSpace returns a copy of g expressed in the root coordinate system:
// objectBoundingBox units are resolved against bbox and the transform ctm
// of the painted element is folded into the gradient transform. The
// translation part of the resulting transform is moved into the gradient
// geometry, and a uniform scaling is folded in as well, so that simple
// cases need no gradientTransform at all.
func (g *Gradient) InUserSpace(bbox rect.Rect, ctm matrix.Matrix) (*Gradient, error) {
	res := *g
	res.Stops = slices.Clone(g.Stops)

	t := g.Transform
	if g.Units == ObjectBoundingBox {
		m, err := affine.UnitToRect(bbox)
		if err != nil {
			return nil, svgerr.New(svgerr.SingularTransform, "objectBoundingBox gradient on an element without area").At(g.ID)
		}
		t = t.Mul(m)
	}
	t = t.Mul(ctm)
	res.Units = UserSpaceOnUse

	dx, dy, lin, err := affine.SplitTranslation(t)
	if err != nil {
		return nil, svgerr.Locate(err, g.ID)
	}
	res.X1 += dx
	res.Y1 += dy
	res.X2 += dx
	res.Y2 += dy
	res.CX += dx
	res.CY += dy
	res.FX += dx
	res.FY += dy

	if s := lin[0]; lin[1] == 0 && lin[2] == 0 && lin[3] == s && s > 0 {
		res.X1 *= s
		res.Y1 *= s
		res.X2 *= s
		res.Y2 *= s
		res.CX *= s
		res.CY *= s
		res.FX *= s
		res.FY *= s
		res.R *= s
		res.FR *= s
		lin = matrix.Identity
	}
	res.Transform = lin
	return &res, nil
}
