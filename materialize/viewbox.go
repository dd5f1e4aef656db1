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
	"strings"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/picosvg/num"
	"seehuhn.de/go/picosvg/svgerr"
)

// ParseViewBox parses the value of a viewBox attribute. The width and
// height must be positive.
func ParseViewBox(s string) (rect.Rect, error) {
	v, err := num.ParseList(s)
	if err != nil || len(v) != 4 {
		return rect.Rect{}, svgerr.New(svgerr.MalformedDocument, "invalid viewBox %q", s)
	}
	if !(v[2] > 0 && v[3] > 0) {
		return rect.Rect{}, svgerr.New(svgerr.SingularTransform, "viewBox %q has no area", s)
	}
	return rect.Rect{LLx: v[0], LLy: v[1], URx: v[0] + v[2], URy: v[1] + v[3]}, nil
}

// ViewBoxTransform returns the transform which maps the viewBox vb into
// the viewport vp, following the preserveAspectRatio value par. An empty
// par means "xMidYMid meet".
func ViewBoxTransform(vb, vp rect.Rect, par string) (matrix.Matrix, error) {
	vbW, vbH := vb.URx-vb.LLx, vb.URy-vb.LLy
	vpW, vpH := vp.URx-vp.LLx, vp.URy-vp.LLy
	if !(vbW > 0 && vbH > 0) || !(vpW > 0 && vpH > 0) {
		return matrix.Matrix{}, svgerr.New(svgerr.SingularTransform, "empty viewBox or viewport")
	}

	align, slice := "xMidYMid", false
	fields := strings.Fields(par)
	if len(fields) > 0 && fields[0] == "defer" {
		fields = fields[1:]
	}
	if len(fields) > 0 {
		align = fields[0]
	}
	if len(fields) > 1 {
		slice = fields[1] == "slice"
	}

	sx, sy := vpW/vbW, vpH/vbH
	if align != "none" {
		if slice {
			sx = max(sx, sy)
		} else {
			sx = min(sx, sy)
		}
		sy = sx
	}
	tx := vp.LLx - vb.LLx*sx
	ty := vp.LLy - vb.LLy*sy

	extraX, extraY := vpW-vbW*sx, vpH-vbH*sy
	switch {
	case strings.HasPrefix(align, "xMid"):
		tx += extraX / 2
	case strings.HasPrefix(align, "xMax"):
		tx += extraX
	}
	switch {
	case strings.HasSuffix(align, "YMid"):
		ty += extraY / 2
	case strings.HasSuffix(align, "YMax"):
		ty += extraY
	}
	return matrix.Matrix{sx, 0, 0, sy, tx, ty}, nil
}
