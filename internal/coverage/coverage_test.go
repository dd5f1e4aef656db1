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

package coverage

import (
	"math"
	"testing"

	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/picosvg/svgpath"
)

func TestMaskArea(t *testing.T) {
	cases := []struct {
		d    string
		even bool
		want float64
	}{
		{"M2,2 L12,2 L12,12 L2,12 Z", false, 100},
		{"M2,2 L12,2 L12,12 L2,12 Z M4,4 L4,10 L10,10 L10,4 Z", false, 64},
		{"M2,2 L12,2 L12,12 L2,12 Z M4,4 L10,4 L10,10 L4,10 Z", false, 100},
		{"M2,2 L12,2 L12,12 L2,12 Z M4,4 L10,4 L10,10 L4,10 Z", true, 64},
	}
	for _, c := range cases {
		p := svgpath.MustParse(c.d)
		var got float64
		if c.even {
			got = Area(MaskEvenOdd(p, matrix.Identity, 16, 16))
		} else {
			got = Area(Mask(p, matrix.Identity, 16, 16))
		}
		if math.Abs(got-c.want) > 0.5 {
			t.Errorf("%s: area %g, want %g", c.d, got, c.want)
		}
	}
}

func TestDiff(t *testing.T) {
	a := Mask(svgpath.MustParse("M0,0 L8,0 L8,8 L0,8 Z"), matrix.Identity, 10, 10)
	b := Mask(svgpath.MustParse("M0,0 L8,0 L8,4 L0,4 Z"), matrix.Identity, 10, 10)
	if d := Diff(a, b); math.Abs(d-32) > 0.5 {
		t.Errorf("diff %g, want 32", d)
	}
	if d := Diff(a, a); d != 0 {
		t.Errorf("self diff %g", d)
	}
}
