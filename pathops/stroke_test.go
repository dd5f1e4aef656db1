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
	"testing"

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/picosvg/svgerr"
	"seehuhn.de/go/picosvg/svgpath"
)

// area returns the area covered by a path produced by the engine. The
// orientation of holes makes their signed areas cancel.
func area(p *svgpath.Path) float64 {
	total := 0.0
	for _, c := range flatten(p, 0.01) {
		total += polygonArea(c)
	}
	return total
}

func TestStrokeArea(t *testing.T) {
	butt := StrokeStyle{Width: 4, Cap: graphics.LineCapButt, Join: graphics.LineJoinMiter, MiterLimit: 10}
	with := func(f func(*StrokeStyle)) StrokeStyle {
		s := butt
		f(&s)
		return s
	}
	square := "M10,10 L50,10 L50,50 L10,50 Z"

	cases := []struct {
		name  string
		d     string
		style StrokeStyle
		want  float64
		slack float64
	}{
		{"line_butt", "M10,32 L54,32", with(func(s *StrokeStyle) { s.Width = 8 }), 352, 1e-6},
		{"line_round", "M10,32 L54,32", with(func(s *StrokeStyle) { s.Width = 8; s.Cap = graphics.LineCapRound }), 352 + 16*math.Pi, 0.5},
		{"line_square", "M10,32 L54,32", with(func(s *StrokeStyle) { s.Width = 8; s.Cap = graphics.LineCapSquare }), 416, 1e-6},
		{"dash_single_element", "M5,32 L59,32", with(func(s *StrokeStyle) { s.Dash = []float64{10} }), 120, 1e-6},
		{"dash_three_element", "M5,32 L59,32", with(func(s *StrokeStyle) { s.Dash = []float64{5, 3, 8} }), 120, 1e-6},
		{"dash_phase", "M5,32 L59,32", with(func(s *StrokeStyle) { s.Dash = []float64{10, 10}; s.DashPhase = 5 }), 100, 1e-6},
		{"dash_negative_phase", "M5,32 L59,32", with(func(s *StrokeStyle) { s.Dash = []float64{10, 10}; s.DashPhase = -15 }), 100, 1e-6},
		{"closed_miter", square, butt, 44*44 - 36*36, 1e-6},
		{"closed_bevel", square, with(func(s *StrokeStyle) { s.Join = graphics.LineJoinBevel }), 640 - 4*2, 1e-6},
		{"closed_round", square, with(func(s *StrokeStyle) { s.Join = graphics.LineJoinRound }), 640 - 4*(4-math.Pi), 0.2},
		{"miter_limit_exceeded", square, with(func(s *StrokeStyle) { s.MiterLimit = 1.2 }), 632, 1e-6},
		{"closed_reversed", "M10,10 L10,50 L50,50 L50,10 Z", butt, 640, 1e-6},
		{"closed_start_mid_edge", "M30,10 L50,10 L50,50 L10,50 L10,10 Z", butt, 640, 1e-6},
		{"closed_thick", "M10,10 L12,10 L12,12 L10,12 Z", butt, 36, 1e-6},
		{"closed_dashed", square, with(func(s *StrokeStyle) { s.Dash = []float64{40, 40} }), 2 * 40 * 4, 1e-6},
		{"dot_round", "M20,20 L20,20", with(func(s *StrokeStyle) { s.Width = 10; s.Cap = graphics.LineCapRound }), 25 * math.Pi, 0.3},
		{"dot_square", "M20,20 Z", with(func(s *StrokeStyle) { s.Width = 10; s.Cap = graphics.LineCapSquare }), 100, 1e-6},
		{"dot_butt", "M20,20 L20,20", with(func(s *StrokeStyle) { s.Width = 10 }), 0, 0},
	}

	c := NewClipper(0.01)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := c.Stroke(svgpath.MustParse(tc.d), tc.style)
			if err != nil {
				t.Fatal(err)
			}
			if got := area(res); math.Abs(got-tc.want) > tc.slack {
				t.Errorf("area %g, want %g", got, tc.want)
			}
		})
	}
}

func TestStrokeJoins(t *testing.T) {
	// the corner has an interior angle of 2α with tan α = 22/36
	corner := svgpath.MustParse("M10,50 L32,14 L54,50")
	sinAlpha := 22 / math.Hypot(22, 36)

	cases := []struct {
		join graphics.LineJoinStyle
		top  float64
	}{
		{graphics.LineJoinMiter, 14 - 3/sinAlpha},
		{graphics.LineJoinBevel, 14 - 3*sinAlpha},
		{graphics.LineJoinRound, 14 - 3},
	}

	c := NewClipper(0.001)
	for _, tc := range cases {
		res, err := c.Stroke(corner, StrokeStyle{Width: 6, Join: tc.join, MiterLimit: 10})
		if err != nil {
			t.Fatal(err)
		}
		box, ok := res.Bounds()
		if !ok {
			t.Fatalf("join %v: empty outline", tc.join)
		}
		if math.Abs(box.LLy-tc.top) > 0.01 {
			t.Errorf("join %v: top at %g, want %g", tc.join, box.LLy, tc.top)
		}
	}
}

func TestStrokeCurve(t *testing.T) {
	// a full circle of radius 20, stroked with width 4, is an annulus
	circle := svgpath.Circle(32, 32, 20)
	c := NewClipper(0.001)
	res, err := c.Stroke(circle, StrokeStyle{Width: 4})
	if err != nil {
		t.Fatal(err)
	}
	want := math.Pi * (22*22 - 18*18)
	if got := area(res); math.Abs(got-want) > 0.5 {
		t.Errorf("area %g, want %g", got, want)
	}
	if n := len(res.Subpaths); n != 2 {
		t.Errorf("got %d subpaths, want 2", n)
	}
}

func TestStrokeErrors(t *testing.T) {
	c := NewClipper(0)
	_, err := c.Stroke(svgpath.MustParse("M0,0 L1,1"), StrokeStyle{Width: 0})
	if !svgerr.Is(err, svgerr.GeometryReductionError) {
		t.Errorf("zero width: got %v", err)
	}

	nan := vec.Vec2{X: math.NaN(), Y: 0}
	p := &svgpath.Path{}
	p.MoveTo(nan)
	p.LineTo(vec.Vec2{X: 1, Y: 1})
	_, err = c.Stroke(p, StrokeStyle{Width: 1})
	if !svgerr.Is(err, svgerr.GeometryReductionError) {
		t.Errorf("NaN path: got %v", err)
	}
}

func TestFlattenCubicTolerance(t *testing.T) {
	p0 := vec.Vec2{X: 0, Y: 0}
	p1 := vec.Vec2{X: 0, Y: 100}
	p2 := vec.Vec2{X: 100, Y: 100}
	p3 := vec.Vec2{X: 100, Y: 0}
	prevCount := 0
	for _, tol := range []float64{1, 0.1, 0.01} {
		var pts []vec.Vec2
		flattenCubic(p0, p1, p2, p3, tol, func(_, to vec.Vec2) {
			pts = append(pts, to)
		})
		if len(pts) <= prevCount {
			t.Errorf("tolerance %g: %d segments, not more than for the larger tolerance", tol, len(pts))
		}
		prevCount = len(pts)
		if pts[len(pts)-1] != p3 {
			t.Errorf("tolerance %g: curve ends at %v", tol, pts[len(pts)-1])
		}
		// the curve reaches y = 75 at t = 1/2
		top := 0.0
		for _, p := range pts {
			top = max(top, p.Y)
		}
		if top < 75-tol || top > 75+1e-9 {
			t.Errorf("tolerance %g: maximum height %g", tol, top)
		}
	}
}
