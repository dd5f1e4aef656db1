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

package reduce

import (
	"slices"
	"strings"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/picosvg/affine"
	"seehuhn.de/go/picosvg/materialize"
	"seehuhn.de/go/picosvg/paint"
	"seehuhn.de/go/picosvg/pathops"
	"seehuhn.de/go/picosvg/svg"
	"seehuhn.de/go/picosvg/svgerr"
	"seehuhn.de/go/picosvg/svgpath"
)

// ClipResolver computes the outlines of <clipPath> elements.
//
// A ClipResolver is used for a single document and is not safe for
// concurrent use.
type ClipResolver struct {
	Reducer  *Reducer
	Index    svg.Index
	Styles   *paint.Resolver
	Viewport rect.Rect

	// Root is the document root, used to locate elements in error
	// messages. May be nil.
	Root *svg.Node

	// MaxDepth bounds the nesting of clip paths which are themselves
	// clipped.
	MaxDepth int

	// Lenient makes references to missing clip paths act as if there was
	// no clip-path property.
	Lenient bool

	stack []string
}

// Outline returns the region, in root coordinates, of the clip path
// referenced by ref, for an element with transform ctm and bounding box
// bbox in its own coordinates.
//
// The region is the union of the children of the <clipPath>, each
// filled with its clip-rule and clipped by its own clip-path property.
// The clip-path property of the <clipPath> element itself is intersected
// in. The result is nil if the reference is dropped in lenient mode, and
// an empty path if the clip region is empty.
func (c *ClipResolver) Outline(ref string, ctm matrix.Matrix, bbox rect.Rect) (*svgpath.Path, error) {
	n, err := materialize.Resolve(c.Index, ref, svg.KindClipPath)
	if err != nil {
		if c.Lenient && svgerr.Is(err, svgerr.UnresolvedReference) {
			return nil, nil
		}
		return nil, err
	}

	id := n.ID()
	if slices.Contains(c.stack, id) {
		return nil, svgerr.New(svgerr.CyclicClipReference, "clip path chain %s -> %s loops",
			strings.Join(c.stack, " -> "), id).At(id)
	}
	maxDepth := c.MaxDepth
	if maxDepth <= 0 {
		maxDepth = materialize.DefaultMaxDepth
	}
	if len(c.stack) >= maxDepth {
		return nil, svgerr.New(svgerr.DepthExceeded, "more than %d nested clip paths", maxDepth).At(id)
	}
	c.stack = append(c.stack, id)
	defer func() { c.stack = c.stack[:len(c.stack)-1] }()

	tf, err := affine.Parse(n.Get("transform"))
	if err != nil {
		return nil, svgerr.Locate(err, id)
	}
	base := ctm
	if n.Get("clipPathUnits") == "objectBoundingBox" {
		unit, err := affine.UnitToRect(bbox)
		if err != nil {
			// an element without area is clipped away completely
			return &svgpath.Path{}, nil
		}
		base = unit.Mul(base)
	}
	base = tf.Mul(base)

	style, err := c.Styles.Cascade(paint.Initial(), n)
	if err != nil {
		return nil, svgerr.Locate(err, id)
	}
	res, err := c.union(n.Children, style, base)
	if err != nil {
		return nil, svgerr.Locate(err, id)
	}

	if style.ClipPath != "" {
		res, err = c.clipBy(res, style.ClipPath, ctm, bbox)
		if err != nil {
			return nil, svgerr.Locate(err, id)
		}
	}
	return res, nil
}

// union returns the union of the clip regions of nodes.
func (c *ClipResolver) union(nodes []*svg.Node, parent paint.Style, m matrix.Matrix) (*svgpath.Path, error) {
	res := &svgpath.Path{}
	for _, n := range nodes {
		part, err := c.part(n, parent, m)
		if err != nil {
			return nil, svgerr.Locate(err, c.locate(n))
		}
		if part.IsEmpty() {
			continue
		}
		if res.IsEmpty() {
			res = part
			continue
		}
		res, err = c.Reducer.Engine.Boolean(pathops.Union,
			pathops.Operand{Path: res, Rule: svgpath.NonZero},
			pathops.Operand{Path: part, Rule: svgpath.NonZero})
		if err != nil {
			return nil, geometryError(err, "clip union")
		}
	}
	return res, nil
}

// part returns the contribution of a single child of a <clipPath>.
func (c *ClipResolver) part(n *svg.Node, parent paint.Style, m matrix.Matrix) (*svgpath.Path, error) {
	empty := &svgpath.Path{}
	if n.Kind != svg.KindGroup && !n.Kind.IsShape() {
		return empty, nil
	}

	style, err := c.Styles.Cascade(parent, n)
	if err != nil {
		return nil, err
	}
	if !style.Display {
		return empty, nil
	}
	tf, err := affine.Parse(n.Get("transform"))
	if err != nil {
		return nil, err
	}
	cm := tf.Mul(m)
	if affine.IsSingular(cm) {
		return empty, nil
	}

	var res *svgpath.Path
	var bbox rect.Rect
	if n.Kind == svg.KindGroup {
		res, err = c.union(n.Children, style, cm)
		if err != nil {
			return nil, err
		}
		if b, ok := res.Bounds(); ok {
			inv, _ := affine.Invert(cm)
			bbox = affine.Bounds(inv, b)
		}
	} else {
		if !style.Visible {
			return empty, nil
		}
		p, err := Geometry(n, c.Viewport)
		if err != nil {
			return nil, err
		}
		bbox, _ = p.Bounds()
		res, err = c.Reducer.Fill(p, style.ClipRule, cm)
		if err != nil {
			return nil, err
		}
	}

	if style.ClipPath != "" && !res.IsEmpty() {
		res, err = c.clipBy(res, style.ClipPath, cm, bbox)
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}

// clipBy intersects res with the clip path ref.
func (c *ClipResolver) clipBy(res *svgpath.Path, ref string, ctm matrix.Matrix, bbox rect.Rect) (*svgpath.Path, error) {
	clip, err := c.Outline(ref, ctm, bbox)
	if err != nil || clip == nil {
		return res, err
	}
	res, err = c.Reducer.Clip(res, clip)
	if err != nil {
		return nil, err
	}
	if res == nil {
		res = &svgpath.Path{}
	}
	return res, nil
}

func (c *ClipResolver) locate(n *svg.Node) string {
	if c.Root != nil {
		return svg.Locate(c.Root, n)
	}
	if id := n.ID(); id != "" {
		return id
	}
	return "<" + n.Name + ">"
}
