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

package materialize

import (
	"slices"
	"strings"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/picosvg/affine"
	"seehuhn.de/go/picosvg/num"
	"seehuhn.de/go/picosvg/svg"
	"seehuhn.de/go/picosvg/svgerr"
)

// attributes of a nested <svg> element which only describe its viewport
var viewportAttrs = []string{
	"x", "y", "width", "height", "viewBox", "preserveAspectRatio",
	"overflow", "version", "baseProfile", "zoomAndPan", "xmlns",
}

// NestedSVGs replaces every <svg> element below the root by a group. The
// group maps the viewBox of the element onto its viewport, or translates
// by (x, y) if there is no viewBox. Unless overflow is visible, the
// content is clipped to the viewport by a new <clipPath>. Elements with an
// empty viewport are removed.
func NestedSVGs(doc *svg.Document) error {
	u := &unnester{root: doc.Root, ids: map[string]bool{}}
	svg.Walk(doc.Root, func(n *svg.Node) bool {
		if id := n.ID(); id != "" {
			u.ids[id] = true
		}
		return true
	})

	var w, h float64
	if vb, err := ParseViewBox(doc.Root.Get("viewBox")); err == nil {
		w, h = vb.URx-vb.LLx, vb.URy-vb.LLy
	} else {
		w, _ = num.ParseLength(doc.Root.Get("width"), 0)
		h, _ = num.ParseLength(doc.Root.Get("height"), 0)
	}
	if err := u.children(doc.Root, w, h); err != nil {
		return err
	}
	if len(u.clips) > 0 {
		defs := defsNode(doc.Root)
		defs.Children = append(defs.Children, u.clips...)
	}
	return nil
}

type unnester struct {
	root  *svg.Node
	ids   map[string]bool
	clips []*svg.Node
}

// children processes the children of n, where w and h give the size of
// the nearest enclosing viewport.
func (u *unnester) children(n *svg.Node, w, h float64) error {
	out := n.Children[:0]
	for _, c := range n.Children {
		if c.Kind != svg.KindSVG {
			if err := u.children(c, w, h); err != nil {
				return err
			}
			out = append(out, c)
			continue
		}
		g, err := u.unnest(c, w, h)
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

func (u *unnester) unnest(n *svg.Node, pw, ph float64) (*svg.Node, error) {
	loc := svg.Locate(u.root, n)
	length := func(name string, ref, def float64) float64 {
		v, ok := n.Attr(name)
		if !ok {
			return def
		}
		l, err := num.ParseLength(v, ref)
		if err != nil {
			return def
		}
		return l
	}
	x := length("x", pw, 0)
	y := length("y", ph, 0)
	w := length("width", pw, pw)
	h := length("height", ph, ph)

	var vb rect.Rect
	vbAttr, hasVB := n.Attr("viewBox")
	if hasVB {
		var err error
		vb, err = ParseViewBox(vbAttr)
		if svgerr.Is(err, svgerr.SingularTransform) {
			return nil, nil
		} else if err != nil {
			return nil, svgerr.Locate(err, loc)
		}
		if !(w > 0 && h > 0) && pw == 0 && ph == 0 {
			// no outer viewport to size against
			w, h = vb.URx-vb.LLx, vb.URy-vb.LLy
		}
	}
	if !(w > 0 && h > 0) {
		return nil, nil
	}
	vp := rect.Rect{LLx: x, LLy: y, URx: x + w, URy: y + h}

	tf := matrix.Translate(x, y)
	innerW, innerH := w, h
	if hasVB {
		var err error
		tf, err = ViewBoxTransform(vb, vp, n.Get("preserveAspectRatio"))
		if err != nil {
			return nil, svgerr.Locate(err, loc)
		}
		innerW, innerH = vb.URx-vb.LLx, vb.URy-vb.LLy
	}

	own := strings.TrimSpace(n.Get("transform"))
	overflow := n.Get("overflow")
	clip := overflow != "visible" && overflow != "auto"

	n.Kind = svg.KindGroup
	n.Name = "g"
	n.Attrs = slices.DeleteFunc(n.Attrs, func(a svg.Attr) bool {
		return a.Space == svg.NamespaceXMLNS || a.Space == "" && slices.Contains(viewportAttrs, a.Name)
	})
	n.Del("transform")

	if err := u.children(n, innerW, innerH); err != nil {
		return nil, err
	}

	if !clip {
		if !affine.IsIdentity(tf) {
			own = strings.TrimSpace(own + " " + formatMatrix(tf))
		}
		if own != "" {
			n.Set("transform", own)
		}
		return n, nil
	}

	if !affine.IsIdentity(tf) {
		n.Set("transform", formatMatrix(tf))
	}
	id := svg.UniqueID("viewport", u.ids)
	cp := svg.NewNode("clipPath", svg.Attr{Name: "id", Value: id})
	cp.Children = []*svg.Node{svg.NewNode("rect",
		svg.Attr{Name: "x", Value: num.Format(x, 9)},
		svg.Attr{Name: "y", Value: num.Format(y, 9)},
		svg.Attr{Name: "width", Value: num.Format(w, 9)},
		svg.Attr{Name: "height", Value: num.Format(h, 9)},
	)}
	u.clips = append(u.clips, cp)

	wrapper := svg.NewNode("g")
	if own != "" {
		wrapper.Set("transform", own)
	}
	wrapper.Set("clip-path", "url(#"+id+")")
	wrapper.Children = []*svg.Node{n}
	return wrapper, nil
}

// defsNode returns the first <defs> child of root, adding one if
// necessary.
func defsNode(root *svg.Node) *svg.Node {
	for _, c := range root.Children {
		if c.Kind == svg.KindDefs {
			return c
		}
	}
	defs := svg.NewNode("defs")
	root.Children = slices.Insert(root.Children, 0, defs)
	return defs
}

func formatMatrix(m matrix.Matrix) string {
	var b strings.Builder
	b.WriteString("matrix(")
	for i, v := range m {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(num.Format(v, 9))
	}
	b.WriteByte(')')
	return b.String()
}
