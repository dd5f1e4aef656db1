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

package picosvg

import (
	"seehuhn.de/go/picosvg/num"
	"seehuhn.de/go/picosvg/paint"
	"seehuhn.de/go/picosvg/svg"
)

// attributes of the input root element which are copied to the output
var rootAttrs = []string{"viewBox", "width", "height"}

// emit builds the output document from the collected items. Equal
// gradients are merged; each keeps the id of its first use, and
// different gradients which share an id are renamed.
func (c *converter) emit(src *svg.Node) *svg.Document {
	root := svg.NewNode("svg", svg.Attr{Name: "xmlns", Value: svg.NamespaceSVG})
	for _, name := range rootAttrs {
		if v, ok := src.Attr(name); ok {
			root.Set(name, v)
		}
	}
	defs := svg.NewNode("defs")
	root.Children = append(root.Children, defs)

	opacityDigits := max(c.digits, 2)
	byKey := map[string]string{}
	used := map[string]bool{}
	for _, it := range c.items {
		d := it.path.Format(c.digits)
		if d == "" {
			continue
		}
		opacity := num.Round(it.opacity, opacityDigits)
		if opacity <= 0 {
			continue
		}

		n := svg.NewNode("path", svg.Attr{Name: "d", Value: d})
		switch {
		case it.grad != nil:
			key := it.grad.Key(c.digits)
			id, ok := byKey[key]
			if !ok {
				base := it.grad.ID
				if base == "" {
					base = "gradient"
				}
				id = svg.UniqueID(base, used)
				byKey[key] = id
				defs.Children = append(defs.Children, it.grad.Node(id, c.digits))
			}
			n.Set("fill", "url(#"+id+")")
		case it.color != paint.Black:
			n.Set("fill", it.color.String())
		}
		if opacity < 1 {
			n.Set("opacity", num.Format(opacity, opacityDigits))
		}
		root.Children = append(root.Children, n)
	}
	return &svg.Document{Root: root}
}
