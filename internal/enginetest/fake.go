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

// Package enginetest provides a deterministic stand-in for the geometry
// engine. It works on bounding boxes only, which is enough to check how
// the reduction stages call the engine.
package enginetest

import (
	"fmt"
	"sync"

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/picosvg/pathops"
	"seehuhn.de/go/picosvg/svgpath"
)

// Fake implements [pathops.Engine] on axis-aligned boxes:
//   - Stroke returns the bounding box of the path grown by half the pen
//     width,
//   - Boolean returns the union or intersection of the bounding boxes of
//     its operands, or the box of the first operand for Difference.
//
// Results are rectangles, which are empty if the box has no area.
type Fake struct {
	// Err, if set, is returned by every call.
	Err error

	mu     sync.Mutex
	calls  []string
	styles []pathops.StrokeStyle
}

// Stroke implements the [pathops.Engine] interface.
func (f *Fake) Stroke(p *svgpath.Path, style pathops.StrokeStyle) (*svgpath.Path, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fmt.Sprintf("stroke %g", style.Width))
	f.styles = append(f.styles, style)
	if f.Err != nil {
		return nil, f.Err
	}

	b, ok := p.Bounds()
	if !ok {
		return &svgpath.Path{}, nil
	}
	d := style.Width / 2
	return box(rect.Rect{LLx: b.LLx - d, LLy: b.LLy - d, URx: b.URx + d, URy: b.URy + d}), nil
}

// Boolean implements the [pathops.Engine] interface.
func (f *Fake) Boolean(op pathops.Op, a, b pathops.Operand) (*svgpath.Path, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, op.String())
	if f.Err != nil {
		return nil, f.Err
	}

	ba, okA := a.Path.Bounds()
	bb, okB := b.Path.Bounds()
	switch op {
	case pathops.Union:
		switch {
		case !okA && !okB:
			return &svgpath.Path{}, nil
		case !okA:
			return box(bb), nil
		case !okB:
			return box(ba), nil
		}
		return box(rect.Rect{
			LLx: min(ba.LLx, bb.LLx), LLy: min(ba.LLy, bb.LLy),
			URx: max(ba.URx, bb.URx), URy: max(ba.URy, bb.URy),
		}), nil
	case pathops.Intersect:
		if !okA || !okB {
			return &svgpath.Path{}, nil
		}
		return box(rect.Rect{
			LLx: max(ba.LLx, bb.LLx), LLy: max(ba.LLy, bb.LLy),
			URx: min(ba.URx, bb.URx), URy: min(ba.URy, bb.URy),
		}), nil
	default:
		if !okA {
			return &svgpath.Path{}, nil
		}
		return box(ba), nil
	}
}

// Calls returns a description of every call so far, for example
// "stroke 2" or "intersect".
func (f *Fake) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// Styles returns the pen of every Stroke call so far.
func (f *Fake) Styles() []pathops.StrokeStyle {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]pathops.StrokeStyle(nil), f.styles...)
}

func box(r rect.Rect) *svgpath.Path {
	return svgpath.Rect(r.LLx, r.LLy, r.URx-r.LLx, r.URy-r.LLy, 0, 0)
}
