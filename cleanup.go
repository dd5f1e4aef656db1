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
	"slices"

	"seehuhn.de/go/picosvg/svg"
	"seehuhn.de/go/picosvg/svgerr"
)

// unsupported lists the elements which cannot be expressed in pico SVG.
var unsupported = map[svg.Kind]bool{
	svg.KindFilter:        true,
	svg.KindMask:          true,
	svg.KindText:          true,
	svg.KindImage:         true,
	svg.KindPattern:       true,
	svg.KindMarker:        true,
	svg.KindForeignObject: true,
}

// cleanup removes elements and attributes which do not contribute to the
// rendering, and rejects elements which cannot be converted.
func (c *converter) cleanup(root *svg.Node) error {
	var err error
	var walk func(n *svg.Node, loc *svg.Locator)
	walk = func(n *svg.Node, loc *svg.Locator) {
		n.Attrs = slices.DeleteFunc(n.Attrs, foreignAttr)

		kept := n.Children[:0]
		for _, child := range n.Children {
			childLoc := loc.Child(child.Name)
			if err != nil {
				break
			}
			switch {
			case unsupported[child.Kind]:
				err = svgerr.New(svgerr.UnsupportedFeature, "<%s> element", child.Name).At(childLoc.For(child))
				continue
			case child.Kind == svg.KindMetadata, child.Kind == svg.KindForeign:
				continue
			case child.Kind == svg.KindUnknown:
				c.log.Debug("dropping unknown element", "element", child.Name, "node", childLoc.For(child))
				continue
			case child.Kind == svg.KindSymbol && child.ID() == "":
				continue
			case child.Kind == svg.KindSwitch:
				switchToGroup(child)
			}
			walk(child, childLoc)
			kept = append(kept, child)
		}
		clear(n.Children[len(kept):])
		n.Children = kept
	}
	walk(root, svg.NewLocator(root))
	return err
}

// foreignAttr reports whether a is in a namespace which has no meaning
// for the conversion.
func foreignAttr(a svg.Attr) bool {
	switch a.Space {
	case "", svg.NamespaceXLink, svg.NamespaceXML, svg.NamespaceXMLNS:
		return false
	}
	return true
}

// switchToGroup replaces a <switch> element by a group which holds the
// first child without conditional processing attributes.
func switchToGroup(n *svg.Node) {
	n.Kind = svg.KindGroup
	n.Name = "g"
	for _, c := range n.Children {
		if c.Kind == svg.KindForeign || c.Kind == svg.KindMetadata {
			continue
		}
		if c.Has("requiredExtensions") || c.Has("systemLanguage") {
			continue
		}
		n.Children = []*svg.Node{c}
		return
	}
	n.Children = nil
}
