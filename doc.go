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

// Package picosvg converts SVG documents into "pico SVG", a small subset
// of SVG which is easy to rasterize or to embed into other formats.
//
// A pico SVG document consists of an <svg> element with one <defs>
// element, which holds only gradients, followed only by <path> elements.
// The paths use absolute coordinates in the coordinate system of the root
// element, they have no strokes, no clip paths and no transforms, and
// every reference points to a gradient in the <defs> element.
//
// The conversion expands <use> elements and nested <svg> elements,
// applies the style cascade, turns strokes into filled outlines,
// intersects shapes with their clip paths, maps all coordinates through
// the accumulated transforms and finally merges equal gradients:
//
//	doc, err := svg.Parse(r)
//	if err != nil {
//		return err
//	}
//	pico, err := picosvg.Convert(doc, nil)
//	if err != nil {
//		return err
//	}
//	_, err = pico.WriteTo(w)
//
// Conversion either succeeds completely or fails with an error from
// package [svgerr] which names the offending element.
package picosvg
