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

package svgpath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/picosvg/svgerr"
)

func TestParseFormat(t *testing.T) {
	cases := []struct {
		in, out string
	}{
		{"", ""},
		{"M0 0 L10 0 L10 10 L0 10 Z", "M0,0 L10,0 L10,10 L0,10 Z"},
		{"m5,5 l1,1", "M5,5 L6,6"},
		{"M0,0 10,0 10,10z", "M0,0 L10,0 L10,10 Z"},
		{"m1 1 2 2", "M1,1 L3,3"},
		{"M0 0 H5 V5 h-5 v-5", "M0,0 L5,0 L5,5 L0,5 L0,0"},
		{"M1e1,2E0", "M10,2"},
		{"M0,0 C1,2 3,4 5,6 S9,10 11,12", "M0,0 C1,2 3,4 5,6 C7,8 9,10 11,12"},
		{"M0,0 Q1,1 2,0 T4,0", "M0,0 Q1,1 2,0 Q3,-1 4,0"},
		{"M0,0 s1,1 2,2", "M0,0 C0,0 1,1 2,2"},
		{"M0,0 a5 5 0 1010,0", "M0,0 A5,5 0 1,0 10,0"},
		{"M0,0 L1,1 Z L2,2", "M0,0 L1,1 Z M0,0 L2,2"},
		{"M0,0 Z m1,1 l1,0", "M0,0 Z M1,1 L2,1"},
		{"M 0.0001 0.0006", "M0,0.001"},
	}
	for _, c := range cases {
		p, err := Parse(c.in)
		require.NoError(t, err, c.in)
		assert.Equal(t, c.out, p.String(), "input %q", c.in)
	}
}

func TestParseImplicitLineAfterMove(t *testing.T) {
	p := MustParse("M0-1.5.5 1")
	assert.Equal(t, "M0,-1.5 L0.5,1", p.String())
}

func TestParseErrors(t *testing.T) {
	cases := []string{
		"L0,0",
		"M0",
		"M0,0 L1",
		"M0,0 X1,1",
		"M0,0 A1,1 0 2,0 1,1",
		"M0,0 L1,1,",
		"M0,0 L1,,1",
	}
	for _, in := range cases {
		_, err := Parse(in)
		assert.True(t, svgerr.Is(err, svgerr.MalformedPathData), "input %q: %v", in, err)
	}
}

func TestShapes(t *testing.T) {
	assert.Equal(t, "M0,0 L10,0 L10,10 L0,10 Z", Rect(0, 0, 10, 10, 0, 0).String())
	assert.True(t, Rect(0, 0, 0, 10, 0, 0).IsEmpty())
	assert.True(t, Ellipse(0, 0, 0, 1).IsEmpty())
	assert.Equal(t, "M1,2 L3,4", Line(1, 2, 3, 4).String())
	assert.Equal(t, "M0,0 L1,0 L1,1 Z", Poly([]float64{0, 0, 1, 0, 1, 1, 7}, true).String())
	assert.Equal(t, "M0,0 L1,0", Poly([]float64{0, 0, 1, 0}, false).String())

	r := Rect(0, 0, 10, 4, 5, 0.5)
	b, ok := r.Bounds()
	require.True(t, ok)
	assert.InDelta(t, 0, b.LLx, 1e-9)
	assert.InDelta(t, 0, b.LLy, 1e-9)
	assert.InDelta(t, 10, b.URx, 1e-9)
	assert.InDelta(t, 4, b.URy, 1e-9)
}

func TestCircleToCubics(t *testing.T) {
	p := Circle(10, 10, 5).ToCubics()
	require.Len(t, p.Subpaths, 1)
	sp := p.Subpaths[0]
	assert.Len(t, sp.Segments, 4)
	assert.True(t, sp.Closed)
	for _, seg := range sp.Segments {
		c, ok := seg.(CubeTo)
		require.True(t, ok)
		assert.InDelta(t, 5, c.P.Sub(vec.Vec2{X: 10, Y: 10}).Length(), 1e-9)
	}
	assert.Equal(t, vec.Vec2{X: 15, Y: 10}, sp.Segments[3].End())

	b, ok := p.Bounds()
	require.True(t, ok)
	assert.InDelta(t, 5, b.LLx, 1e-3)
	assert.InDelta(t, 15, b.URx, 1e-3)
	assert.InDelta(t, 5, b.LLy, 1e-3)
	assert.InDelta(t, 15, b.URy, 1e-3)
}

func TestArcDegenerate(t *testing.T) {
	p := MustParse("M0,0 A0,5 0 0,1 10,0").ToCubics()
	assert.Equal(t, "M0,0 L10,0", p.String())

	p = MustParse("M3,3 A5,5 0 0,1 3,3").ToCubics()
	assert.Empty(t, p.Subpaths[0].Segments)

	// radii too small are scaled up until the arc is a half ellipse
	p = MustParse("M0,0 A1,1 0 0,1 10,0").ToCubics()
	b, ok := p.Bounds()
	require.True(t, ok)
	assert.InDelta(t, -5, b.LLy, 1e-3)
	assert.InDelta(t, 0, b.URy, 1e-9)
}

func TestTransform(t *testing.T) {
	p := MustParse("M0,0 L1,0 Q1,1 0,1 Z")
	q := p.Transform(matrix.Scale(2, 2).Mul(matrix.Translate(24, 24)))
	assert.Equal(t, "M24,24 L26,24 Q26,26 24,26 Z", q.String())
	// the original is unchanged
	assert.Equal(t, "M0,0 L1,0 Q1,1 0,1 Z", p.String())

	arc := MustParse("M0,0 A5,5 0 0,1 10,0").Transform(matrix.Translate(1, 0))
	assert.False(t, arc.HasArcs())
}

func TestIter(t *testing.T) {
	p := MustParse("M0,0 L1,0 Q1,1 0,1 Z M5,5")
	var cmds []path.Command
	var n int
	for cmd, pts := range p.Iter() {
		cmds = append(cmds, cmd)
		n += len(pts)
	}
	assert.Equal(t, []path.Command{path.CmdMoveTo, path.CmdLineTo, path.CmdQuadTo, path.CmdClose, path.CmdMoveTo}, cmds)
	assert.Equal(t, 5, n)
}

func TestBoundsCubic(t *testing.T) {
	p := MustParse("M0,0 C0,10 10,10 10,0")
	b, ok := p.Bounds()
	require.True(t, ok)
	assert.InDelta(t, 7.5, b.URy, 1e-9)

	_, ok = MustParse("M1,1").Bounds()
	assert.False(t, ok)
}

func TestRoundIdempotent(t *testing.T) {
	p := MustParse("M0.12345,1.98765 C1.0005,2.0005 3.33333,4.44444 5.55555,6.66666")
	once := p.Round(3)
	twice := once.Round(3)
	assert.Equal(t, once.String(), twice.String())
	assert.Equal(t, p.String(), once.String())

	q, err := Parse(once.String())
	require.NoError(t, err)
	assert.Equal(t, once.String(), q.String())
	assert.False(t, math.IsNaN(q.CurrentPoint().X))
}

func TestEmptySubpaths(t *testing.T) {
	p := MustParse("M0,0 M1,1 L2,2 M3,3")
	assert.False(t, p.IsEmpty())
	assert.Equal(t, "M1,1 L2,2", p.WithoutEmptySubpaths().String())
	assert.True(t, MustParse("M0,0 M1,1").IsEmpty())
}

func TestEqual(t *testing.T) {
	a := MustParse("M0,0 L10,0 Q5,5 0,0 Z")
	assert.True(t, a.Equal(MustParse("m0,0 h10 q-5,5 -10,0 z")))
	assert.False(t, a.Equal(MustParse("M0,0 L10,0 Q5,5 0,0")))
	assert.False(t, a.Equal(nil))
	assert.True(t, (*Path)(nil).Equal(&Path{}))
}
