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

// Package num scans and formats the numbers found in SVG attributes.
package num

import (
	"errors"
	"math"
	"strconv"
	"strings"

	tstrconv "github.com/tdewolff/parse/v2/strconv"
)

// ErrSyntax is returned when a string does not hold a valid number.
var ErrSyntax = errors.New("invalid number")

// integerEpsilon is the distance to an integer below which a value is
// printed without fractional digits.
const integerEpsilon = 1e-9

// Scan reads one number from the start of b, skipping leading whitespace
// and at most one comma. It returns the value and the number of bytes
// consumed, or n == 0 if b does not start with a number.
func Scan(b []byte) (v float64, n int) {
	i := skipSeparators(b, 0)
	if i >= len(b) {
		return 0, 0
	}
	v, k := tstrconv.ParseFloat(b[i:])
	if k == 0 {
		return 0, 0
	}
	return v, i + k
}

func skipSeparators(b []byte, i int) int {
	comma := false
	for i < len(b) {
		switch b[i] {
		case ' ', '\t', '\n', '\r', '\f':
			i++
		case ',':
			if comma {
				return i
			}
			comma = true
			i++
		default:
			return i
		}
	}
	return i
}

// Parse parses a single number, allowing surrounding whitespace.
func Parse(s string) (float64, error) {
	b := []byte(strings.TrimSpace(s))
	if len(b) == 0 {
		return 0, ErrSyntax
	}
	v, n := tstrconv.ParseFloat(b)
	if n != len(b) || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrSyntax
	}
	return v, nil
}

// ParseList parses a list of numbers separated by whitespace and/or
// single commas, as used by the points and stroke-dasharray attributes.
func ParseList(s string) ([]float64, error) {
	b := []byte(s)
	var res []float64
	i := 0
	for {
		j := skipSeparators(b, i)
		if j >= len(b) {
			if j > i && len(res) > 0 && strings.ContainsRune(string(b[i:j]), ',') {
				return nil, ErrSyntax
			}
			return res, nil
		}
		v, n := tstrconv.ParseFloat(b[j:])
		if n == 0 {
			return nil, ErrSyntax
		}
		res = append(res, v)
		i = j + n
	}
}

// ParseLength parses a length or percentage. Percentages are relative to
// ref. Absolute units are converted to user units at 96dpi.
func ParseLength(s string, ref float64) (float64, error) {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "%") {
		v, err := Parse(s[:len(s)-1])
		if err != nil {
			return 0, err
		}
		return v / 100 * ref, nil
	}
	scale := 1.0
	for _, u := range units {
		if strings.HasSuffix(s, u.suffix) {
			s = s[:len(s)-len(u.suffix)]
			scale = u.scale
			break
		}
	}
	v, err := Parse(s)
	if err != nil {
		return 0, err
	}
	return v * scale, nil
}

var units = []struct {
	suffix string
	scale  float64
}{
	{"px", 1},
	{"pt", 96.0 / 72},
	{"pc", 16},
	{"mm", 96 / 25.4},
	{"cm", 96 / 2.54},
	{"in", 96},
}

// Format formats v with at most digits fractional digits. Ties are rounded
// to even, trailing zeros are removed, values within 1e-9 of an integer
// are printed as integers and negative zero is printed as "0".
func Format(v float64, digits int) string {
	if r := math.Round(v); math.Abs(v-r) < integerEpsilon {
		v = r
	}
	s := strconv.FormatFloat(v, 'f', max(digits, 0), 64)
	if strings.ContainsRune(s, '.') {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" {
		s = "0"
	}
	return s
}

// Round rounds v to the given number of fractional digits, using the same
// rules as [Format].
func Round(v float64, digits int) float64 {
	r, _ := strconv.ParseFloat(Format(v, digits), 64)
	return r
}
