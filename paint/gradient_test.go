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

package paint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/picosvg/svg"
	"seehuhn.de/go/picosvg/svgerr"
)

func newResolver(t *testing.T, src string, lenient bool) *GradientResolver {
	t.Helper()
	doc := parseDoc(t, src)
	sheet, err := CollectSheet(doc.Root)
	require.NoError(t, err)
	return &GradientResolver{
		Index:    svg.BuildIndex(doc.Root),
		Sheet:    sheet,
		Viewport: rect.Rect{LLx: 0, LLy: 0, URx: 200, URy: 100},
		Lenient:  lenient,
	}
}

func TestResolveDefaults(t *testing.T) {
	gr := newResolver(t, `<svg><defs>
		<linearGradient id="lin"><stop offset="0" stop-color="red"/><stop offset="150%" style="stop-color:blue;stop-opacity:0.5"/></linearGradient>
		<radialGradient id="rad" gradientUnits="userSpaceOnUse" cx="20%"/>
	</defs></svg>`, false)

	lin, err := gr.Resolve("lin")
	require.NoError(t, err)
	assert.Equal(t, Linear, lin.Kind)
	assert.Equal(t, ObjectBoundingBox, lin.Units)
	assert.Equal(t, [4]float64{0, 0, 1, 0}, [4]float64{lin.X1, lin.Y1, lin.X2, lin.Y2})
	require.Len(t, lin.Stops, 2)
	assert.Equal(t, 1.0, lin.Stops[1].Offset)
	assert.Equal(t, 0.5, lin.Stops[1].Opacity)
	assert.Equal(t, Color{B: 255, A: 1}, lin.Stops[1].Color)

	rad, err := gr.Resolve("rad")
	require.NoError(t, err)
	assert.Equal(t, UserSpaceOnUse, rad.Units)
	assert.InDelta(t, 40, rad.CX, 1e-9)
	assert.InDelta(t, 50, rad.CY, 1e-9)
	assert.InDelta(t, 40, rad.FX, 1e-9)
	assert.InDelta(t, 50, rad.FY, 1e-9)
	assert.InDelta(t, 79.0569, rad.R, 1e-4)
}

func TestResolveTemplates(t *testing.T) {
	gr := newResolver(t, `<svg><defs>
		<linearGradient id="base" x1="0.25" gradientUnits="userSpaceOnUse">
			<stop offset="0.6" stop-color="red"/><stop offset="0.2" stop-color="blue"/>
		</linearGradient>
		<linearGradient id="mid" href="#base" x2="0.5"/>
		<radialGradient id="top" xlink:href="#mid" r="3"><stop offset="0" stop-color="lime"/></radialGradient>
	</defs></svg>`, false)

	mid, err := gr.Resolve("mid")
	require.NoError(t, err)
	assert.Equal(t, 0.25, mid.X1)
	assert.Equal(t, 0.5, mid.X2)
	assert.Equal(t, UserSpaceOnUse, mid.Units)
	require.Len(t, mid.Stops, 2)
	assert.Equal(t, 0.6, mid.Stops[1].Offset, "offsets never decrease")

	top, err := gr.Resolve("top")
	require.NoError(t, err)
	assert.Equal(t, Radial, top.Kind)
	assert.Equal(t, UserSpaceOnUse, top.Units, "common attributes cross kinds")
	assert.Equal(t, 3.0, top.R)
	require.Len(t, top.Stops, 1, "own stops replace the template's")
}

func TestResolveErrors(t *testing.T) {
	src := `<svg><defs>
		<linearGradient id="a" href="#b"/>
		<linearGradient id="b" href="#a"/>
		<linearGradient id="d" href="#missing"><stop offset="0"/></linearGradient>
		<rect id="r"/>
	</defs></svg>`
	gr := newResolver(t, src, false)

	_, err := gr.Resolve("a")
	assert.True(t, svgerr.Is(err, svgerr.CyclicGradientReference), "%v", err)

	_, err = gr.Resolve("d")
	assert.True(t, svgerr.Is(err, svgerr.UnresolvedReference))

	_, err = gr.Resolve("r")
	assert.True(t, svgerr.Is(err, svgerr.UnresolvedReference))

	lenient := newResolver(t, src, true)
	d, err := lenient.Resolve("d")
	require.NoError(t, err)
	assert.Len(t, d.Stops, 1)
}

func TestResolveGradients(t *testing.T) {
	vp := rect.Rect{URx: 10, URy: 10}

	doc := parseDoc(t, `<svg><defs>
		<linearGradient id="unused" href="#loop"/>
		<linearGradient id="loop" href="#unused"/>
	</defs></svg>`)
	_, err := ResolveGradients(doc.Root, nil, vp, true)
	assert.True(t, svgerr.Is(err, svgerr.CyclicGradientReference), "cycles fail even in lenient mode")

	doc = parseDoc(t, `<svg><defs>
		<linearGradient id="a"><stop offset="1" stop-color="red"/></linearGradient>
		<radialGradient id="b" href="#gone"/>
	</defs></svg>`)
	_, err = ResolveGradients(doc.Root, nil, vp, false)
	assert.True(t, svgerr.Is(err, svgerr.UnresolvedReference))

	gr, err := ResolveGradients(doc.Root, nil, vp, true)
	require.NoError(t, err)
	a, err := gr.Resolve("a")
	require.NoError(t, err)
	require.Len(t, a.Stops, 1)
	assert.Equal(t, "red", a.Stops[0].Color.String())
}

func TestInUserSpace(t *testing.T) {
	g := &Gradient{
		ID: "g", Kind: Linear, Units: ObjectBoundingBox, Transform: matrix.Identity,
		X1: 0, Y1: 0, X2: 1, Y2: 0,
	}
	bbox := rect.Rect{LLx: 10, LLy: 20, URx: 30, URy: 40}
	u, err := g.InUserSpace(bbox, matrix.Translate(5, 5))
	require.NoError(t, err)
	assert.Equal(t, UserSpaceOnUse, u.Units)
	assert.Equal(t, matrix.Identity, u.Transform)
	assert.InDelta(t, 15, u.X1, 1e-9)
	assert.InDelta(t, 25, u.Y1, 1e-9)
	assert.InDelta(t, 35, u.X2, 1e-9)
	assert.InDelta(t, 25, u.Y2, 1e-9)

	// a non-square box keeps a scaling transform
	wide := rect.Rect{LLx: 0, LLy: 0, URx: 20, URy: 10}
	u, err = g.InUserSpace(wide, matrix.Identity)
	require.NoError(t, err)
	assert.Equal(t, matrix.Matrix{20, 0, 0, 10, 0, 0}, u.Transform)

	_, err = g.InUserSpace(rect.Rect{LLx: 0, LLy: 0, URx: 10, URy: 0}, matrix.Identity)
	assert.True(t, svgerr.Is(err, svgerr.SingularTransform))
}

func TestGradientNodeAndKey(t *testing.T) {
	g := &Gradient{
		Kind: Radial, Units: UserSpaceOnUse, Transform: matrix.Identity, Spread: "pad",
		CX: 5, CY: 5, R: 2.00004, FX: 5, FY: 5,
		Stops: []Stop{{Offset: 0, Color: Color{R: 255, A: 1}, Opacity: 1}, {Offset: 1, Color: Black, Opacity: 0.5}},
	}
	n := g.Node("rg", 3)
	doc := &svg.Document{Root: n}
	want := `<radialGradient id="rg" cx="5" cy="5" r="2" gradientUnits="userSpaceOnUse">
  <stop offset="0" stop-color="red"/>
  <stop offset="1" stop-color="black" stop-opacity="0.5"/>
</radialGradient>
`
	assert.Equal(t, want, doc.String())

	h := *g
	h.R = 2.0001
	assert.Equal(t, g.Key(3), h.Key(3))
	h.R = 2.1
	assert.NotEqual(t, g.Key(3), h.Key(3))
}
