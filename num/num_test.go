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

package num

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	cases := []struct {
		v      float64
		digits int
		want   string
	}{
		{0, 3, "0"},
		{-0.0001, 3, "0"},
		{10, 3, "10"},
		{1.5, 0, "2"},
		{2.5, 0, "2"},
		{0.125, 2, "0.12"},
		{0.375, 2, "0.38"},
		{1.23456, 3, "1.235"},
		{-1.2, 3, "-1.2"},
		{3.0000000001, 3, "3"},
		{1e-7, 3, "0"},
		{123456.5, 1, "123456.5"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Format(c.v, c.digits), "Format(%g, %d)", c.v, c.digits)
	}
}

func TestRound(t *testing.T) {
	assert.Equal(t, 0.12, Round(0.125, 2))
	assert.Equal(t, 1.0, Round(0.9999999999, 3))
	assert.Equal(t, Round(Round(1.23456, 3), 3), Round(1.23456, 3))
}

func TestParse(t *testing.T) {
	v, err := Parse(" 1e2 ")
	require.NoError(t, err)
	assert.Equal(t, 100.0, v)

	v, err = Parse("-.5")
	require.NoError(t, err)
	assert.Equal(t, -0.5, v)

	for _, bad := range []string{"", "abc", "1x", "--1"} {
		_, err := Parse(bad)
		assert.ErrorIs(t, err, ErrSyntax, "input %q", bad)
	}
}

func TestParseList(t *testing.T) {
	vs, err := ParseList("0,0 10 , 5\n-3.5e1")
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 10, 5, -35}, vs)

	vs, err = ParseList("1-2.5.5")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, -2.5, 0.5}, vs)

	vs, err = ParseList("   ")
	require.NoError(t, err)
	assert.Empty(t, vs)

	_, err = ParseList("1,,2")
	assert.Error(t, err)
	_, err = ParseList("1 x")
	assert.Error(t, err)
}

func TestParseLength(t *testing.T) {
	cases := []struct {
		in   string
		ref  float64
		want float64
	}{
		{"10", 0, 10},
		{"10px", 0, 10},
		{"50%", 200, 100},
		{"1in", 0, 96},
		{"72pt", 0, 96},
	}
	for _, c := range cases {
		got, err := ParseLength(c.in, c.ref)
		require.NoError(t, err, c.in)
		assert.InDelta(t, c.want, got, 1e-9, c.in)
	}
	_, err := ParseLength("px", 0)
	assert.Error(t, err)
}

func TestScan(t *testing.T) {
	v, n := Scan([]byte(" , 4.5 rest"))
	assert.Equal(t, 4.5, v)
	assert.Equal(t, 6, n)

	_, n = Scan([]byte("rest"))
	assert.Equal(t, 0, n)
}
