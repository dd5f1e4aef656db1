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

package affine

import (
	"strings"

	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/picosvg/num"
	"seehuhn.de/go/picosvg/svgerr"
)

// Parse parses the value of an SVG transform attribute. Transform functions
// are applied right to left, so "translate(10) scale(2)" scales first.
// An empty string gives the identity.
func Parse(s string) (matrix.Matrix, error) {
	res := matrix.Identity
	rest := strings.TrimSpace(s)
	for rest != "" {
		open := strings.IndexByte(rest, '(')
		if open < 0 {
			return matrix.Matrix{}, malformed(s)
		}
		name := strings.TrimSpace(rest[:open])
		end := strings.IndexByte(rest[open:], ')')
		if end < 0 {
			return matrix.Matrix{}, malformed(s)
		}
		args, err := num.ParseList(rest[open+1 : open+end])
		if err != nil {
			return matrix.Matrix{}, malformed(s)
		}
		m, ok := function(name, args)
		if !ok {
			return matrix.Matrix{}, malformed(s)
		}
		res = m.Mul(res)

		rest = strings.TrimLeft(rest[open+end+1:], " \t\r\n,")
	}
	return res, nil
}

func function(name string, args []float64) (matrix.Matrix, bool) {
	switch name {
	case "matrix":
		if len(args) != 6 {
			return matrix.Matrix{}, false
		}
		return matrix.Matrix{args[0], args[1], args[2], args[3], args[4], args[5]}, true
	case "translate":
		switch len(args) {
		case 1:
			return matrix.Translate(args[0], 0), true
		case 2:
			return matrix.Translate(args[0], args[1]), true
		}
	case "scale":
		switch len(args) {
		case 1:
			return matrix.Scale(args[0], args[0]), true
		case 2:
			return matrix.Scale(args[0], args[1]), true
		}
	case "rotate":
		switch len(args) {
		case 1:
			return Rotate(args[0]), true
		case 3:
			return RotateAround(args[0], args[1], args[2]), true
		}
	case "skewX":
		if len(args) == 1 {
			return SkewX(args[0]), true
		}
	case "skewY":
		if len(args) == 1 {
			return SkewY(args[0]), true
		}
	}
	return matrix.Matrix{}, false
}

func malformed(s string) error {
	return svgerr.New(svgerr.MalformedDocument, "invalid transform %q", s)
}

// Format returns the transform attribute value for m, using the given
// number of fractional digits. The identity gives the empty string.
func Format(m matrix.Matrix, digits int) string {
	m = Round(m, digits)
	if IsIdentity(m) {
		return ""
	}
	f := func(x float64) string { return num.Format(x, digits) }
	if IsTranslation(m) {
		if m[5] == 0 {
			return "translate(" + f(m[4]) + ")"
		}
		return "translate(" + f(m[4]) + ", " + f(m[5]) + ")"
	}
	if m[1] == 0 && m[2] == 0 && m[4] == 0 && m[5] == 0 {
		return "scale(" + f(m[0]) + ", " + f(m[3]) + ")"
	}
	return "matrix(" + f(m[0]) + " " + f(m[1]) + " " + f(m[2]) + " " + f(m[3]) + " " + f(m[4]) + " " + f(m[5]) + ")"
}
