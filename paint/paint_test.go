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
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/picosvg/svg"
	"seehuhn.de/go/picosvg/svgerr"
	"seehuhn.de/go/picosvg/svgpath"
)

func TestParseColor(t *testing.T) {
	cases := []struct {
		in   string
		want Color
	}{
		{"red", Color{R: 255, A: 1}},
		{"RED", Color{R: 255, A: 1}},
		{"#f00", Color{R: 255, A: 1}},
		{"#ff000080", Color{R: 255, A: 128.0 / 255}},
		{"#0f08", Color{G: 255, A: 136.0 / 255}},
		{"rgb(0, 128, 255)", Color{G: 128, B: 255, A: 1}},
		{"rgba(100%,0%,0%,0.5)", Color{R: 255, A: 0.5}},
		{"rgb(255 0 0 / 25%)", Color{R: 255, A: 0.25}},
		{"transparent", Color{}},
	}
	for _, c := range cases {
		got, err := ParseColor(c.in)
		require.NoError(t, err, c.in)
		assert.Equal(t, c.want, got, c.in)
	}
	for _, bad := range []string{"", "#12", "#ggg", "rgb(1,2)", "nocolor", "rgb(1px,2,3)"} {
		_, err := ParseColor(bad)
		assert.ErrorIs(t, err, ErrColor, bad)
	}
}

func TestColorString(t *testing.T) {
	assert.Equal(t, "red", Color{R: 255, A: 1}.String())
	assert.Equal(t, "black", Black.String())
	assert.Equal(t, "aqua", Color{G: 255, B: 255, A: 1}.String())
	assert.Equal(t, "#123456", Color{R: 0x12, G: 0x34, B: 0x56, A: 0.5}.String())
}

func TestParsePaint(t *testing.T) {
	p, err := ParsePaint("none")
	require.NoError(t, err)
	assert.Equal(t, None{}, p)

	p, err = ParsePaint("url(#g1) red")
	require.NoError(t, err)
	assert.Equal(t, GradientRef{ID: "g1", Fallback: Solid{Color: Color{R: 255, A: 1}}}, p)

	p, err = ParsePaint("url('#g2')")
	require.NoError(t, err)
	assert.Equal(t, GradientRef{ID: "g2"}, p)

	p, err = ParsePaint("currentColor")
	require.NoError(t, err)
	assert.Equal(t, CurrentColor{}, p)

	_, err = ParsePaint("url(other.svg#g)")
	assert.True(t, svgerr.Is(err, svgerr.UnsupportedFeature))

	_, err = ParsePaint("bogus")
	assert.True(t, svgerr.Is(err, svgerr.MalformedDocument))
}

func parseDoc(t *testing.T, s string) *svg.Document {
	t.Helper()
	doc, err := svg.ParseString(s)
	require.NoError(t, err)
	return doc
}

func TestCascade(t *testing.T) {
	doc := parseDoc(t, `<svg>
		<style>
			path { stroke-width: 3 }
			.thick { stroke-width: 5 }
			#p2 { fill: blue !important }
		</style>
		<g fill="red" stroke="green" opacity="0.5" color="#00f">
			<path id="p1" class="thick" style="stroke-linecap: round; fill-opacity: 50%"/>
			<path id="p2" fill="yellow" style="fill: lime" stroke="currentColor" opacity="0.5"/>
			<path id="p3" style="stroke-width:2" stroke-width="7" stroke-dasharray="1 2 3" display="none"/>
		</g>
	</svg>`)
	sheet, err := CollectSheet(doc.Root)
	require.NoError(t, err)
	r := &Resolver{Sheet: sheet, Diagonal: 100}

	root, err := r.Cascade(Initial(), doc.Root)
	require.NoError(t, err)
	g, err := r.Cascade(root, doc.Root.Children[1])
	require.NoError(t, err)
	assert.Equal(t, 0.5, g.Opacity)

	p1, err := r.Cascade(g, g1(doc, 0))
	require.NoError(t, err)
	assert.Equal(t, Solid{Color: Color{R: 255, A: 1}}, p1.Fill)
	assert.Equal(t, 5.0, p1.StrokeWidth)
	assert.Equal(t, graphics.LineCapRound, p1.LineCap)
	assert.Equal(t, 0.5, p1.FillOpacity)
	assert.Equal(t, 0.5, p1.Opacity)

	p2, err := r.Cascade(g, g1(doc, 1))
	require.NoError(t, err)
	assert.Equal(t, Solid{Color: Color{B: 255, A: 1}}, p2.Fill, "!important sheet rules win")
	assert.Equal(t, Solid{Color: Color{B: 255, A: 1}}, p2.Stroke, "currentColor")
	assert.Equal(t, 0.25, p2.Opacity)
	assert.True(t, p2.Display)

	p3, err := r.Cascade(g, g1(doc, 2))
	require.NoError(t, err)
	assert.Equal(t, 2.0, p3.StrokeWidth, "style attribute beats presentation attribute")
	assert.Equal(t, []float64{1, 2, 3, 1, 2, 3}, p3.Dash)
	assert.False(t, p3.Display)
}

func TestInlineStyleLastDeclaration(t *testing.T) {
	r := &Resolver{Diagonal: 100}
	cases := []struct {
		attrs []svg.Attr
		check func(*testing.T, Style)
	}{
		{
			[]svg.Attr{{Name: "style", Value: "fill:red"}},
			func(t *testing.T, s Style) { assert.Equal(t, Solid{Color: Color{R: 255, A: 1}}, s.Fill) },
		},
		{
			[]svg.Attr{{Name: "fill", Value: "blue"}, {Name: "style", Value: " fill: red "}},
			func(t *testing.T, s Style) { assert.Equal(t, Solid{Color: Color{R: 255, A: 1}}, s.Fill) },
		},
		{
			[]svg.Attr{{Name: "stroke-width", Value: "7"}, {Name: "style", Value: "stroke:red;stroke-width:2"}},
			func(t *testing.T, s Style) { assert.Equal(t, 2.0, s.StrokeWidth) },
		},
		{
			[]svg.Attr{{Name: "style", Value: "display:none"}},
			func(t *testing.T, s Style) { assert.False(t, s.Display) },
		},
		{
			[]svg.Attr{{Name: "fill", Value: "blue"}, {Name: "style", Value: "fill:"}},
			func(t *testing.T, s Style) { assert.Equal(t, Solid{Color: Color{B: 255, A: 1}}, s.Fill) },
		},
	}
	for _, tc := range cases {
		s, err := r.Cascade(Initial(), svg.NewNode("rect", tc.attrs...))
		require.NoError(t, err)
		tc.check(t, s)
	}
}

func g1(doc *svg.Document, i int) *svg.Node {
	return doc.Root.Children[1].Children[i]
}

func TestCascadeRulesAndReferences(t *testing.T) {
	n := svg.NewNode("path",
		svg.Attr{Name: "fill-rule", Value: "evenodd"},
		svg.Attr{Name: "clip-path", Value: "url(#c)"},
		svg.Attr{Name: "stroke-width", Value: "10%"},
		svg.Attr{Name: "stroke-miterlimit", Value: "0.5"},
		svg.Attr{Name: "visibility", Value: "hidden"},
	)
	r := &Resolver{Diagonal: 50}
	s, err := r.Cascade(Initial(), n)
	require.NoError(t, err)
	assert.Equal(t, svgpath.EvenOdd, s.FillRule)
	assert.Equal(t, "url(#c)", s.ClipPath)
	assert.Equal(t, 5.0, s.StrokeWidth)
	assert.Equal(t, 4.0, s.MiterLimit, "invalid miter limit is ignored")
	assert.False(t, s.Visible)

	// clip-path is not inherited
	child, err := r.Cascade(s, svg.NewNode("path"))
	require.NoError(t, err)
	assert.Equal(t, "", child.ClipPath)
	assert.Equal(t, svgpath.EvenOdd, child.FillRule)

	bad := svg.NewNode("path", svg.Attr{Name: "fill", Value: "url(x.svg#a)"})
	_, err = r.Cascade(Initial(), bad)
	assert.True(t, svgerr.Is(err, svgerr.UnsupportedFeature))
}

func TestDash(t *testing.T) {
	r := &Resolver{Diagonal: 10}
	cases := []struct {
		in   string
		want []float64
		ok   bool
	}{
		{"none", nil, true},
		{"0 0", nil, true},
		{"1,-2", nil, true},
		{"4", []float64{4, 4}, true},
		{"10%, 2", []float64{1, 2}, true},
		{"a", nil, false},
	}
	for _, c := range cases {
		got, ok := r.parseDash(c.in)
		assert.Equal(t, c.ok, ok, c.in)
		assert.Equal(t, c.want, got, c.in)
	}
}
