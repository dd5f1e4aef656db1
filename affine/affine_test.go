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
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/picosvg/svgerr"
)

func assertMatrix(t *testing.T, want, got matrix.Matrix) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-9, "coefficient %d of %v", i, got)
	}
}

func TestMulOrder(t *testing.T) {
	// scale first, then translate
	m := matrix.Scale(2, 2).Mul(matrix.Translate(24, 24))
	p := Apply(m, vec.Vec2{X: 1, Y: 1})
	assert.Equal(t, vec.Vec2{X: 26, Y: 26}, p)

	// translate first, then scale
	m = matrix.Translate(24, 24).Mul(matrix.Scale(2, 2))
	p = Apply(m, vec.Vec2{X: 1, Y: 1})
	assert.Equal(t, vec.Vec2{X: 50, Y: 50}, p)
}

func TestInvert(t *testing.T) {
	m := Rotate(30).Mul(matrix.Scale(2, 3)).Mul(matrix.Translate(5, -7))
	inv, err := Invert(m)
	require.NoError(t, err)
	assertMatrix(t, matrix.Identity, m.Mul(inv))

	_, err = Invert(matrix.Scale(0, 1))
	assert.True(t, svgerr.Is(err, svgerr.SingularTransform))
}

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want matrix.Matrix
	}{
		{"", matrix.Identity},
		{"translate(10)", matrix.Translate(10, 0)},
		{"translate(10, 20)", matrix.Translate(10, 20)},
		{"scale(2)", matrix.Scale(2, 2)},
		{"translate(10,20) scale(2)", matrix.Scale(2, 2).Mul(matrix.Translate(10, 20))},
		{"matrix(1 2 3 4 5 6)", matrix.Matrix{1, 2, 3, 4, 5, 6}},
		{"rotate(90)", matrix.Matrix{0, 1, -1, 0, 0, 0}},
		{"rotate(90 10 10)", matrix.Matrix{0, 1, -1, 0, 20, 0}},
		{"skewX(45)", matrix.Matrix{1, 0, 1, 1, 0, 0}},
		{" scale(1,2) , translate(3 4) ", matrix.Translate(3, 4).Mul(matrix.Scale(1, 2))},
	}
	for _, c := range cases {
		got, err := Parse(c.in)
		require.NoError(t, err, c.in)
		assertMatrix(t, c.want, got)
	}

	for _, bad := range []string{"translate", "scale(1,2,3)", "foo(1)", "rotate(1", "matrix(1 2 3)"} {
		_, err := Parse(bad)
		assert.True(t, svgerr.Is(err, svgerr.MalformedDocument), "input %q", bad)
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "", Format(matrix.Identity, 3))
	assert.Equal(t, "translate(5)", Format(matrix.Translate(5, 0), 3))
	assert.Equal(t, "translate(5, 6)", Format(matrix.Translate(5, 6), 3))
	assert.Equal(t, "scale(2, 3)", Format(matrix.Scale(2, 3), 3))
	assert.Equal(t, "matrix(0 1 -1 0 0 0)", Format(Rotate(90), 3))

	m, err := Parse(Format(matrix.Matrix{1.5, 0.25, -0.125, 2, 3, 4}, 6))
	require.NoError(t, err)
	assertMatrix(t, matrix.Matrix{1.5, 0.25, -0.125, 2, 3, 4}, m)
}

func TestSplitTranslation(t *testing.T) {
	m := matrix.Translate(3, 4).Mul(Rotate(45).Mul(matrix.Scale(2, 1)))
	dx, dy, lin, err := SplitTranslation(m)
	require.NoError(t, err)
	assertMatrix(t, m, matrix.Translate(dx, dy).Mul(lin))
	assert.InDelta(t, 3, dx, 1e-9)
	assert.InDelta(t, 4, dy, 1e-9)

	_, _, _, err = SplitTranslation(matrix.Matrix{1, 0, 0, 0, 1, 1})
	assert.Error(t, err)
}

func TestRectToRect(t *testing.T) {
	m, err := UnitToRect(rect.Rect{LLx: 10, LLy: 20, URx: 30, URy: 60})
	require.NoError(t, err)
	assert.Equal(t, vec.Vec2{X: 10, Y: 20}, Apply(m, vec.Vec2{}))
	assert.Equal(t, vec.Vec2{X: 30, Y: 60}, Apply(m, vec.Vec2{X: 1, Y: 1}))

	_, err = UnitToRect(rect.Rect{LLx: 0, LLy: 0, URx: 0, URy: 5})
	assert.True(t, svgerr.Is(err, svgerr.SingularTransform))
	_, err = UnitToRect(rect.Rect{LLx: 0, LLy: 3, URx: 5, URy: 3})
	assert.True(t, svgerr.Is(err, svgerr.SingularTransform))
	_, err = RectToRect(rect.Rect{LLx: 1, LLy: 1, URx: 1, URy: 2}, rect.Rect{URx: 1, URy: 1})
	assert.True(t, svgerr.Is(err, svgerr.SingularTransform))
}

func TestRotateQuarterTurns(t *testing.T) {
	assert.Equal(t, matrix.Matrix{0, 1, -1, 0, 0, 0}, Rotate(90))
	assert.Equal(t, matrix.Matrix{-1, 0, 0, -1, 0, 0}, Rotate(-180))
	assert.Equal(t, matrix.Matrix{0, -1, 1, 0, 0, 0}, Rotate(630))
	assertMatrix(t, matrix.RotateDeg(30), Rotate(30))

	p := Apply(RotateAround(90, 10, 10), vec.Vec2{X: 20, Y: 10})
	assert.Equal(t, vec.Vec2{X: 10, Y: 20}, p)
}

func TestBounds(t *testing.T) {
	r := Bounds(Rotate(90), rect.Rect{LLx: 0, LLy: 0, URx: 2, URy: 1})
	assert.InDelta(t, -1, r.LLx, 1e-12)
	assert.InDelta(t, 0, r.LLy, 1e-12)
	assert.InDelta(t, 0, r.URx, 1e-12)
	assert.InDelta(t, 2, r.URy, 1e-12)
	assert.False(t, IsSingular(Rotate(33)))
	assert.True(t, IsSingular(matrix.Matrix{math.NaN(), 0, 0, 1, 0, 0}))
}
