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

package pathops

import (
	"math"
	"sync"
	"testing"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/picosvg/internal/coverage"
	"seehuhn.de/go/picosvg/svgpath"
)

func TestBooleanSquares(t *testing.T) {
	a := Operand{Path: svgpath.MustParse("M0,0 L10,0 L10,10 L0,10 Z")}
	b := Operand{Path: svgpath.MustParse("M5,5 L15,5 L15,15 L5,15 Z")}

	cases := []struct {
		op   Op
		want float64
	}{
		{Union, 175},
		{Intersect, 25},
		{Difference, 75},
	}
	c := NewClipper(0)
	for _, tc := range cases {
		res, err := c.Boolean(tc.op, a, b)
		if err != nil {
			t.Fatalf("%s: %v", tc.op, err)
		}
		if got := area(res); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("%s: area %g, want %g", tc.op, got, tc.want)
		}
	}
}

func TestBooleanEmpty(t *testing.T) {
	a := Operand{Path: svgpath.MustParse("M0,0 L10,0 L10,10 L0,10 Z")}
	b := Operand{Path: svgpath.MustParse("M20,20 L30,20 L30,30 L20,30 Z")}
	c := NewClipper(0)

	res, err := c.Boolean(Intersect, a, b)
	if err != nil {
		t.Fatal(err)
	}
	if res == nil || !res.IsEmpty() {
		t.Errorf("disjoint intersection: got %v", res)
	}

	res, err = c.Boolean(Difference, a, Operand{Path: &svgpath.Path{}})
	if err != nil {
		t.Fatal(err)
	}
	if got := area(res); got != 100 {
		t.Errorf("difference with empty: area %g", got)
	}

	// a line encloses no area
	res, err = c.Boolean(Union, Operand{Path: svgpath.MustParse("M0,0 L10,10")}, Operand{Path: &svgpath.Path{}})
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsEmpty() {
		t.Errorf("line: got %s", res)
	}
}

func TestSimplifyFillRules(t *testing.T) {
	cases := []struct {
		name string
		d    string
		rule svgpath.FillRule
		want float64
	}{
		{"ring_evenodd", "M2,2 L12,2 L12,12 L2,12 Z M4,4 L10,4 L10,10 L4,10 Z", svgpath.EvenOdd, 64},
		{"ring_nonzero_same_direction", "M2,2 L12,2 L12,12 L2,12 Z M4,4 L10,4 L10,10 L4,10 Z", svgpath.NonZero, 100},
		{"ring_nonzero_reversed", "M2,2 L12,2 L12,12 L2,12 Z M4,4 L4,10 L10,10 L10,4 Z", svgpath.NonZero, 64},
		{"island_in_hole", "M0,0 L30,0 L30,30 L0,30 Z M5,5 L5,25 L25,25 L25,5 Z M10,10 L20,10 L20,20 L10,20 Z", svgpath.NonZero, 600},
		{"overlap_nonzero", "M0,0 L10,0 L10,10 L0,10 Z M5,5 L15,5 L15,15 L5,15 Z", svgpath.NonZero, 175},
		{"overlap_evenodd", "M0,0 L10,0 L10,10 L0,10 Z M5,5 L15,5 L15,15 L5,15 Z", svgpath.EvenOdd, 150},
		{"overlap_cancel", "M0,0 L10,0 L10,10 L0,10 Z M5,5 L5,15 L15,15 L15,5 Z", svgpath.NonZero, 150},
	}
	c := NewClipper(0)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := Simplify(c, svgpath.MustParse(tc.d), tc.rule)
			if err != nil {
				t.Fatal(err)
			}
			if got := area(res); math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("area %g, want %g", got, tc.want)
			}
		})
	}
}

// star returns a five-pointed star drawn as a single self-intersecting
// subpath.
func star(cx, cy, r float64) *svgpath.Path {
	var coords []float64
	for _, i := range []int{0, 2, 4, 1, 3} {
		angle := float64(i)*2*math.Pi/5 - math.Pi/2
		coords = append(coords, cx+r*math.Cos(angle), cy+r*math.Sin(angle))
	}
	return svgpath.Poly(coords, true)
}

func TestSimplifyStar(t *testing.T) {
	const R = 25
	p := star(32, 32, R)
	c := NewClipper(0)

	nonzero, err := Simplify(c, p, svgpath.NonZero)
	if err != nil {
		t.Fatal(err)
	}
	evenodd, err := Simplify(c, p, svgpath.EvenOdd)
	if err != nil {
		t.Fatal(err)
	}

	// the pentagon in the middle has winding number 2
	ri := R * math.Cos(2*math.Pi/5) / math.Cos(math.Pi/5)
	pentagon := 2.5 * ri * ri * math.Sin(2*math.Pi/5)
	if d := area(nonzero) - area(evenodd); math.Abs(d-pentagon) > 1e-4 {
		t.Errorf("area difference %g, want %g", d, pentagon)
	}

	want := coverage.Mask(p, matrix.Identity, 64, 64)
	got := coverage.Mask(nonzero, matrix.Identity, 64, 64)
	if d := coverage.Diff(want, got); d > 0.5 {
		t.Errorf("nonzero star differs from the input by %g pixels", d)
	}
	// both rules give the same result on the simplified path
	got = coverage.MaskEvenOdd(nonzero, matrix.Identity, 64, 64)
	if d := coverage.Diff(want, got); d > 0.5 {
		t.Errorf("simplified star depends on the fill rule (%g pixels)", d)
	}
}

func TestOrientation(t *testing.T) {
	c := NewClipper(0)
	res, err := Simplify(c, svgpath.MustParse(
		"M0,0 L30,0 L30,30 L0,30 Z M5,5 L25,5 L25,25 L5,25 Z M10,10 L20,10 L20,20 L10,20 Z"), svgpath.EvenOdd)
	if err != nil {
		t.Fatal(err)
	}
	contours := flatten(res, 0.1)
	if len(contours) != 3 {
		t.Fatalf("got %d contours, want 3", len(contours))
	}
	depth := nestingDepths(contours)
	for i, c := range contours {
		if (polygonArea(c) > 0) != (depth[i]%2 == 0) {
			t.Errorf("contour %d at depth %d has area %g", i, depth[i], polygonArea(c))
		}
	}
}

func TestClipperConcurrent(t *testing.T) {
	c := NewClipper(0.05)
	p := svgpath.MustParse("M10,10 C20,0 40,0 50,10 S60,40 30,50")
	style := StrokeStyle{Width: 3, Cap: graphics.LineCapRound, Join: graphics.LineJoinRound, Dash: []float64{7, 3}}

	ref, err := c.Stroke(p, style)
	if err != nil {
		t.Fatal(err)
	}
	want := ref.String()

	var wg sync.WaitGroup
	errs := make([]string, 8)
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := c.Stroke(p, style)
			if err != nil {
				errs[i] = err.Error()
			} else if res.String() != want {
				errs[i] = "different result"
			}
		}()
	}
	wg.Wait()
	for i, e := range errs {
		if e != "" {
			t.Errorf("goroutine %d: %s", i, e)
		}
	}
}
