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

// Package materialize replaces references between elements of an SVG
// document by copies of the referenced content.
//
// [Uses] expands <use> elements, [NestedSVGs] turns nested <svg> elements
// into groups, and [Resolve] looks up the targets of url(#id) references
// for the later reduction stages.
package materialize

import (
	"slices"
	"strings"

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/picosvg/num"
	"seehuhn.de/go/picosvg/svg"
	"seehuhn.de/go/picosvg/svgerr"
)

// DefaultMaxDepth is the nesting limit used when Options.MaxDepth is zero.
const DefaultMaxDepth = 32

// Options control the expansion of references.
type Options struct {
	// MaxDepth bounds the nesting of <use> elements inside the content of
	// other <use> elements.
	MaxDepth int

	// Lenient drops <use> elements whose target does not exist, instead of
	// failing.
	Lenient bool

	// Width and Height are the size of the root viewport, the reference
	// for percentage lengths on <use> elements.
	Width, Height float64
}

// attributes of <use> which are consumed by the expansion and not copied
// to the replacement group
var useOnlyAttrs = []string{"x", "y", "width", "height", "transform", "href"}

// Uses replaces every <use> element in doc by a <g> element holding a copy
// of the referenced content. The group carries the presentation attributes
// of the <use> element, and its transform is the transform of the <use>
// element applied after the translation by (x, y).
//
// Content which itself contains <use> elements is expanded recursively.
// A reference cycle gives an error with code [svgerr.CyclicUseReference],
// nesting deeper than opts.MaxDepth gives [svgerr.DepthExceeded].
// Elements copied by the expansion get fresh ids, so that ids stay unique
// within the document.
func Uses(doc *svg.Document, opts Options) error {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	m := &useExpander{
		root: doc.Root,
		idx:  svg.BuildIndex(doc.Root),
		ids:  map[string]bool{},
		opts: opts,
	}
	svg.Walk(doc.Root, func(n *svg.Node) bool {
		if id := n.ID(); id != "" {
			m.ids[id] = true
		}
		return true
	})
	return m.children(doc.Root, nil)
}

type useExpander struct {
	root *svg.Node
	idx  svg.Index
	ids  map[string]bool
	opts Options
}

// children expands the <use> elements below n. Stack holds the ids of
// the <use> targets currently being expanded.
func (m *useExpander) children(n *svg.Node, stack []string) error {
	out := n.Children[:0]
	for _, c := range n.Children {
		if c.Kind != svg.KindUse {
			if err := m.children(c, stack); err != nil {
				return err
			}
			out = append(out, c)
			continue
		}
		g, err := m.expand(c, stack)
		if err != nil {
			return err
		}
		if g != nil {
			out = append(out, g)
		}
	}
	clear(n.Children[len(out):])
	n.Children = out
	return nil
}

// expand returns the group which replaces the <use> element u. The result
// is nil if u is dropped.
func (m *useExpander) expand(u *svg.Node, stack []string) (*svg.Node, error) {
	href := u.Href()
	if strings.TrimSpace(href) == "" {
		return nil, nil
	}
	target, id, local := m.idx.Lookup(href)
	switch {
	case !local:
		return nil, svgerr.New(svgerr.UnsupportedFeature, "external reference %q", href).At(m.locate(u))
	case target == nil:
		if m.opts.Lenient {
			return nil, nil
		}
		return nil, svgerr.New(svgerr.UnresolvedReference, "no element with id %q", id).At(m.locate(u))
	case slices.Contains(stack, id):
		return nil, svgerr.New(svgerr.CyclicUseReference, "use chain %s -> %s loops",
			strings.Join(stack, " -> "), id).At(m.locate(u))
	case len(stack) >= m.opts.MaxDepth:
		return nil, svgerr.New(svgerr.DepthExceeded, "more than %d nested uses", m.opts.MaxDepth).At(m.locate(u))
	}

	g := svg.NewNode("g")
	for _, a := range u.Attrs {
		if (a.Space == "" && slices.Contains(useOnlyAttrs, a.Name)) || (a.Name == "href" && a.Space == svg.NamespaceXLink) {
			continue
		}
		g.Attrs = append(g.Attrs, a)
	}
	x, _ := num.ParseLength(u.Get("x"), m.opts.Width)
	y, _ := num.ParseLength(u.Get("y"), m.opts.Height)
	tf := strings.TrimSpace(u.Get("transform"))
	if x != 0 || y != 0 {
		tf = strings.TrimSpace(tf + " translate(" + num.Format(x, 9) + " " + num.Format(y, 9) + ")")
	}
	if tf != "" {
		g.Set("transform", tf)
	}

	clone := target.Clone()
	m.renameIDs(clone)
	if target.Kind == svg.KindSymbol {
		if err := m.symbolToGroup(clone, u); err != nil {
			return nil, svgerr.Locate(err, m.locate(u))
		}
	}

	inner := append(slices.Clip(stack), id)
	if clone.Kind == svg.KindUse {
		c, err := m.expand(clone, inner)
		if err != nil {
			return nil, err
		}
		clone = c
	} else if err := m.children(clone, inner); err != nil {
		return nil, err
	}
	if clone != nil {
		g.Children = []*svg.Node{clone}
	}
	return g, nil
}

// symbolToGroup turns a copy of a <symbol> into a group. If the symbol
// has a viewBox, it is mapped onto the width and height of the
// referencing <use> element.
func (m *useExpander) symbolToGroup(sym, u *svg.Node) error {
	sym.Kind = svg.KindGroup
	sym.Name = "g"
	vbAttr, hasVB := sym.Attr("viewBox")
	par := sym.Get("preserveAspectRatio")
	for _, name := range []string{"viewBox", "preserveAspectRatio", "x", "y", "width", "height", "refX", "refY"} {
		sym.Del(name)
	}
	if !hasVB {
		return nil
	}
	vb, err := ParseViewBox(vbAttr)
	if err != nil {
		return err
	}
	w, h := m.opts.Width, m.opts.Height
	if v, ok := u.Attr("width"); ok {
		w, _ = num.ParseLength(v, m.opts.Width)
	}
	if v, ok := u.Attr("height"); ok {
		h, _ = num.ParseLength(v, m.opts.Height)
	}
	if !(w > 0 && h > 0) {
		w, h = vb.URx-vb.LLx, vb.URy-vb.LLy
	}
	vp := rect.Rect{URx: w, URy: h}
	tf, err := ViewBoxTransform(vb, vp, par)
	if err != nil {
		return err
	}
	sym.Set("transform", formatMatrix(tf))
	return nil
}

// renameIDs gives every element of a copied subtree an id which is not
// yet used in the document.
func (m *useExpander) renameIDs(n *svg.Node) {
	svg.Walk(n, func(c *svg.Node) bool {
		if id := c.ID(); id != "" {
			c.Set("id", svg.UniqueID(id, m.ids))
		}
		return true
	})
}

func (m *useExpander) locate(n *svg.Node) string {
	return svg.Locate(m.root, n)
}
