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

// Package affine implements the 2D affine transforms used by SVG.
//
// Transforms are represented as [matrix.Matrix] values [a b c d e f], which
// map a point (x, y) to (a·x + c·y + e, b·x + d·y + f). This is the same
// layout as the SVG matrix() transform function.
package affine

import (
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/picosvg/num"
	"seehuhn.de/go/picosvg/svgerr"
)

// singularThreshold is the determinant magnitude below which a transform
// is treated as non-invertible.
const singularThreshold = 1e-12

// Apply maps the point p.
func Apply(m matrix.Matrix, p vec.Vec2) vec.Vec2 {
	x, y := m.Apply(p.X, p.Y)
	return vec.Vec2{X: x, Y: y}
}

// ApplyVec maps the direction v, ignoring the translation part.
func ApplyVec(m matrix.Matrix, v vec.Vec2) vec.Vec2 {
	m[4], m[5] = 0, 0
	return Apply(m, v)
}

// Det returns the determinant of the linear part of m.
func Det(m matrix.Matrix) float64 {
	return m[0]*m[3] - m[1]*m[2]
}

// IsSingular reports whether m collapses the plane onto a line or a point.
func IsSingular(m matrix.Matrix) bool {
	return math.Abs(Det(m)) < singularThreshold || !isFinite(m)
}

func isFinite(m matrix.Matrix) bool {
	for _, x := range m {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

// IsIdentity reports whether m is exactly the identity transform.
func IsIdentity(m matrix.Matrix) bool {
	return m == matrix.Identity
}

// IsTranslation reports whether m only translates.
func IsTranslation(m matrix.Matrix) bool {
	return m[0] == 1 && m[1] == 0 && m[2] == 0 && m[3] == 1
}

// Invert returns the inverse of m. A singular transform gives an error with
// code [svgerr.SingularTransform].
func Invert(m matrix.Matrix) (matrix.Matrix, error) {
	if IsSingular(m) {
		return matrix.Matrix{}, svgerr.New(svgerr.SingularTransform, "transform %v is not invertible", m)
	}
	return m.Inv(), nil
}

// Rotate returns a rotation by deg degrees. In the y-down coordinate
// system of SVG, positive angles rotate clockwise on screen.
func Rotate(deg float64) matrix.Matrix {
	if s, c, ok := quarterTurn(deg); ok {
		return matrix.Matrix{c, s, -s, c, 0, 0}
	}
	return matrix.RotateDeg(deg)
}

// RotateAround returns a rotation by deg degrees about (cx, cy).
func RotateAround(deg, cx, cy float64) matrix.Matrix {
	return matrix.Translate(-cx, -cy).Mul(Rotate(deg)).Translate(cx, cy)
}

// SkewX returns a skew along the x axis.
func SkewX(deg float64) matrix.Matrix {
	return matrix.Matrix{1, 0, math.Tan(deg * math.Pi / 180), 1, 0, 0}
}

// SkewY returns a skew along the y axis.
func SkewY(deg float64) matrix.Matrix {
	return matrix.Matrix{1, math.Tan(deg * math.Pi / 180), 0, 1, 0, 0}
}

// quarterTurn returns exact sine and cosine values for multiples of 90
// degrees, so that axis-aligned rotations do not pick up rounding noise.
func quarterTurn(deg float64) (sin, cos float64, ok bool) {
	q := math.Mod(deg, 360)
	if q < 0 {
		q += 360
	}
	switch q {
	case 0:
		return 0, 1, true
	case 90:
		return 1, 0, true
	case 180:
		return 0, -1, true
	case 270:
		return -1, 0, true
	}
	return 0, 0, false
}

// RectToRect returns the transform which maps src onto dst. Both rectangles
// must have non-zero width and height, otherwise an error with code
// [svgerr.SingularTransform] is returned.
func RectToRect(src, dst rect.Rect) (matrix.Matrix, error) {
	if src.Dx() == 0 || src.Dy() == 0 {
		return matrix.Matrix{}, svgerr.New(svgerr.SingularTransform, "empty source rectangle")
	}
	if dst.Dx() == 0 || dst.Dy() == 0 {
		return matrix.Matrix{}, svgerr.New(svgerr.SingularTransform, "empty target rectangle")
	}
	sx := dst.Dx() / src.Dx()
	sy := dst.Dy() / src.Dy()
	return matrix.Scale(sx, sy).Translate(dst.LLx-src.LLx*sx, dst.LLy-src.LLy*sy), nil
}

// UnitToRect maps the unit square onto r. This is the transform used for
// objectBoundingBox units.
func UnitToRect(r rect.Rect) (matrix.Matrix, error) {
	return RectToRect(rect.Rect{LLx: 0, LLy: 0, URx: 1, URy: 1}, r)
}

// SplitTranslation writes m as a translation by (dx, dy), applied first,
// followed by the linear transform lin. This fails if m is singular.
func SplitTranslation(m matrix.Matrix) (dx, dy float64, lin matrix.Matrix, err error) {
	lin = matrix.Matrix{m[0], m[1], m[2], m[3], 0, 0}
	inv, err := Invert(lin)
	if err != nil {
		return 0, 0, matrix.Matrix{}, err
	}
	t := ApplyVec(inv, vec.Vec2{X: m[4], Y: m[5]})
	return t.X, t.Y, lin, nil
}

// Round rounds every coefficient of m to the given number of fractional
// digits.
func Round(m matrix.Matrix, digits int) matrix.Matrix {
	var res matrix.Matrix
	for i, x := range m {
		res[i] = num.Round(x, digits)
	}
	return res
}

// Bounds returns the bounding box of r after transforming it by m.
func Bounds(m matrix.Matrix, r rect.Rect) rect.Rect {
	corners := [4]vec.Vec2{
		Apply(m, vec.Vec2{X: r.LLx, Y: r.LLy}),
		Apply(m, vec.Vec2{X: r.URx, Y: r.LLy}),
		Apply(m, vec.Vec2{X: r.URx, Y: r.URy}),
		Apply(m, vec.Vec2{X: r.LLx, Y: r.URy}),
	}
	res := rect.Rect{LLx: corners[0].X, LLy: corners[0].Y, URx: corners[0].X, URy: corners[0].Y}
	for _, c := range corners[1:] {
		res.LLx = min(res.LLx, c.X)
		res.LLy = min(res.LLy, c.Y)
		res.URx = max(res.URx, c.X)
		res.URy = max(res.URy, c.Y)
	}
	return res
}
