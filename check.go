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
	"fmt"
	"maps"
	"slices"
	"strings"

	"seehuhn.de/go/picosvg/svg"
)

// Violation describes a part of a document which is not valid pico SVG.
type Violation struct {
	Node    string // id or structural path of the element
	Message string
}

func (v Violation) String() string {
	return v.Node + ": " + v.Message
}

// attributes allowed on the paths of a pico SVG document
var pathAttrs = map[string]bool{
	"d": true, "fill": true, "opacity": true, "fill-opacity": true, "id": true,
}

// Check returns the ways in which doc violates the pico SVG rules. The
// result is empty for the output of [Convert].
func Check(doc *svg.Document) []Violation {
	var res []Violation
	root := doc.Root
	rootLoc := svg.NewLocator(root)
	report := func(loc *svg.Locator, n *svg.Node, format string, args ...any) {
		res = append(res, Violation{Node: loc.For(n), Message: fmt.Sprintf(format, args...)})
	}

	if root.Kind != svg.KindSVG {
		report(rootLoc, root, "root element is <%s>", root.Name)
		return res
	}

	gradients := map[string]bool{}
	referenced := map[string]bool{}
	type pending struct {
		loc *svg.Locator
		n   *svg.Node
	}
	var defsSeen []pending

	for i, n := range root.Children {
		loc := rootLoc.Child(n.Name)
		switch {
		case n.Kind == svg.KindDefs:
			if i != 0 {
				report(loc, n, "<defs> is not the first child of the root")
			}
			if len(defsSeen) > 0 {
				report(loc, n, "more than one <defs> element")
			}
			defsSeen = append(defsSeen, pending{loc, n})
			for _, g := range n.Children {
				gLoc := loc.Child(g.Name)
				if !g.Kind.IsGradient() {
					report(gLoc, g, "<%s> inside <defs>", g.Name)
					continue
				}
				if g.Href() != "" {
					report(gLoc, g, "gradient with href")
				}
				id := g.ID()
				if id == "" {
					report(gLoc, g, "gradient without id")
				} else if gradients[id] {
					report(gLoc, g, "duplicate id %q", id)
				}
				gradients[id] = true
				for _, s := range g.Children {
					if s.Kind != svg.KindStop {
						report(gLoc.Child(s.Name), s, "<%s> inside gradient", s.Name)
					}
				}
			}
		case n.Kind == svg.KindPath:
			for _, a := range n.Attrs {
				if a.Space != "" || !pathAttrs[a.Name] {
					report(loc, n, "attribute %s", a.QName())
				}
			}
			if cmd, ok := checkPathData(n.Get("d")); !ok {
				report(loc, n, "path command %q", cmd)
			}
			if fill := n.Get("fill"); strings.HasPrefix(fill, "url(") {
				id, local := svg.RefID(fill)
				if !local {
					report(loc, n, "external paint %q", fill)
				}
				referenced[id] = true
			}
			for _, c := range n.Children {
				report(loc.Child(c.Name), c, "child element <%s> of a path", c.Name)
			}
		default:
			report(loc, n, "<%s> element", n.Name)
		}
	}

	if len(defsSeen) == 0 {
		report(rootLoc, root, "no <defs> element")
	}
	for _, d := range defsSeen {
		for _, g := range d.n.Children {
			if id := g.ID(); g.Kind.IsGradient() && id != "" && !referenced[id] {
				report(d.loc.Child(g.Name), g, "unused gradient %q", id)
			}
		}
	}
	for _, id := range slices.Sorted(maps.Keys(referenced)) {
		if !gradients[id] {
			res = append(res, Violation{Node: "/" + root.Name + "[0]", Message: fmt.Sprintf("reference to missing gradient %q", id)})
		}
	}
	return res
}

// checkPathData reports whether d uses only the absolute commands M, L, C
// and Z. Otherwise the offending command is returned.
func checkPathData(d string) (string, bool) {
	for i := 0; i < len(d); i++ {
		switch c := d[i]; {
		case c == 'M' || c == 'L' || c == 'C' || c == 'Z':
		case c == 'e' || c == 'E':
			// exponent
		case c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z':
			return string(c), false
		}
	}
	return "", true
}
