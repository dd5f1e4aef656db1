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

	"seehuhn.de/go/picosvg/svg"
	"seehuhn.de/go/picosvg/svgerr"
)

// Resolve returns the element referenced by ref, which has the form "#id"
// or "url(#id)". If kinds is not empty, the element must have one of the
// given kinds.
//
// References to other documents and references to <mask> elements give
// an error with code [svgerr.UnsupportedFeature]. A missing target, or a
// target of the wrong kind, gives [svgerr.UnresolvedReference].
func Resolve(idx svg.Index, ref string, kinds ...svg.Kind) (*svg.Node, error) {
	n, id, local := idx.Lookup(ref)
	switch {
	case !local:
		return nil, svgerr.New(svgerr.UnsupportedFeature, "external reference %q", ref)
	case n == nil:
		return nil, svgerr.New(svgerr.UnresolvedReference, "no element with id %q", id)
	case n.Kind == svg.KindMask:
		return nil, svgerr.New(svgerr.UnsupportedFeature, "mask %q", id)
	case len(kinds) > 0 && !slices.Contains(kinds, n.Kind):
		return nil, svgerr.New(svgerr.UnresolvedReference, "element %q is a <%s>", id, n.Name)
	}
	return n, nil
}
