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

// Package coverage rasterizes paths into alpha masks, so that tests can
// check that two paths cover the same area.
package coverage

import (
	"image"
	"image/draw"

	"golang.org/x/image/vector"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/picosvg/affine"
	"seehuhn.de/go/picosvg/svgpath"
)

// Mask rasterizes p under the nonzero rule into a w×h mask. The matrix m
// maps path coordinates to pixel coordinates.
func Mask(p *svgpath.Path, m matrix.Matrix, w, h int) *image.Alpha {
	r := vector.NewRasterizer(w, h)
	r.DrawOp = draw.Src
	addPath(r, p, m)
	dst := image.NewAlpha(image.Rect(0, 0, w, h))
	r.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})
	return dst
}

// MaskEvenOdd rasterizes p under the even-odd rule. Each subpath is
// rasterized on its own and the results are combined by parity, which is
// exact for subpaths without self-intersections.
func MaskEvenOdd(p *svgpath.Path, m matrix.Matrix, w, h int) *image.Alpha {
	res := image.NewAlpha(image.Rect(0, 0, w, h))
	for _, sp := range p.Subpaths {
		single := &svgpath.Path{Subpaths: []svgpath.Subpath{sp}}
		layer := Mask(single, m, w, h)
		for i, a := range layer.Pix {
			// |x - y| is the parity combination for coverage values
			b := res.Pix[i]
			if a > b {
				res.Pix[i] = a - b
			} else {
				res.Pix[i] = b - a
			}
		}
	}
	return res
}

// Area returns the covered area of a mask, in pixels.
func Area(a *image.Alpha) float64 {
	var sum int
	for _, v := range a.Pix {
		sum += int(v)
	}
	return float64(sum) / 255
}

// Diff returns the area, in pixels, where the two masks differ.
func Diff(a, b *image.Alpha) float64 {
	var sum int
	for i, v := range a.Pix {
		d := int(v) - int(b.Pix[i])
		if d < 0 {
			d = -d
		}
		sum += d
	}
	return float64(sum) / 255
}

func addPath(r *vector.Rasterizer, p *svgpath.Path, m matrix.Matrix) {
	pt := func(v vec.Vec2) (float32, float32) {
		q := affine.Apply(m, v)
		return float32(q.X), float32(q.Y)
	}
	open := false
	for cmd, pts := range p.Iter() {
		switch cmd {
		case path.CmdMoveTo:
			if open {
				r.ClosePath()
			}
			r.MoveTo(pt(pts[0]))
			open = true
		case path.CmdLineTo:
			r.LineTo(pt(pts[0]))
		case path.CmdQuadTo:
			x1, y1 := pt(pts[0])
			x2, y2 := pt(pts[1])
			r.QuadTo(x1, y1, x2, y2)
		case path.CmdCubeTo:
			x1, y1 := pt(pts[0])
			x2, y2 := pt(pts[1])
			x3, y3 := pt(pts[2])
			r.CubeTo(x1, y1, x2, y2, x3, y3)
		case path.CmdClose:
			r.ClosePath()
			open = false
		}
	}
	if open {
		r.ClosePath()
	}
}
