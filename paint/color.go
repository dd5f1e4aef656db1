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
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/image/colornames"

	"seehuhn.de/go/picosvg/num"
)

// ErrColor is returned for values which are not valid colors.
var ErrColor = errors.New("invalid color")

// Color is an sRGB color with a separate alpha value in [0, 1].
type Color struct {
	R, G, B uint8
	A       float64
}

// Black is the initial value of the fill property.
var Black = Color{A: 1}

// ParseColor parses a CSS color value: a keyword, "transparent", a hex
// notation with 3, 4, 6 or 8 digits, or the rgb() and rgba() functions
// with numbers or percentages.
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "transparent":
		return Color{}, nil
	case strings.HasPrefix(s, "#"):
		return parseHex(s[1:])
	case strings.HasPrefix(s, "rgb(") || strings.HasPrefix(s, "rgba("):
		return parseRGB(s)
	}
	if c, ok := colornames.Map[s]; ok {
		return Color{R: c.R, G: c.G, B: c.B, A: 1}, nil
	}
	return Color{}, fmt.Errorf("%w %q", ErrColor, s)
}

func parseHex(h string) (Color, error) {
	for _, c := range h {
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f') {
			return Color{}, fmt.Errorf("%w #%s", ErrColor, h)
		}
	}
	digit := func(i, n int) uint8 {
		v, _ := strconv.ParseUint(h[i:i+n], 16, 8)
		if n == 1 {
			v *= 17
		}
		return uint8(v)
	}
	switch len(h) {
	case 3, 4:
		c := Color{R: digit(0, 1), G: digit(1, 1), B: digit(2, 1), A: 1}
		if len(h) == 4 {
			c.A = float64(digit(3, 1)) / 255
		}
		return c, nil
	case 6, 8:
		c := Color{R: digit(0, 2), G: digit(2, 2), B: digit(4, 2), A: 1}
		if len(h) == 8 {
			c.A = float64(digit(6, 2)) / 255
		}
		return c, nil
	}
	return Color{}, fmt.Errorf("%w #%s", ErrColor, h)
}

func parseRGB(s string) (Color, error) {
	open := strings.IndexByte(s, '(')
	if !strings.HasSuffix(s, ")") {
		return Color{}, fmt.Errorf("%w %q", ErrColor, s)
	}
	inner := strings.ReplaceAll(s[open+1:len(s)-1], "/", ",")
	args := strings.FieldsFunc(inner, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	if len(args) != 3 && len(args) != 4 {
		return Color{}, fmt.Errorf("%w %q", ErrColor, s)
	}
	var rgb [3]uint8
	for i := range 3 {
		v, err := channel(args[i], 255)
		if err != nil {
			return Color{}, fmt.Errorf("%w %q", ErrColor, s)
		}
		rgb[i] = uint8(math.Round(v))
	}
	c := Color{R: rgb[0], G: rgb[1], B: rgb[2], A: 1}
	if len(args) == 4 {
		a, err := channel(args[3], 1)
		if err != nil {
			return Color{}, fmt.Errorf("%w %q", ErrColor, s)
		}
		c.A = a
	}
	return c, nil
}

// channel parses a number or a percentage of full, clamped to [0, full].
func channel(s string, full float64) (float64, error) {
	v, err := num.ParseLength(s, full)
	if err != nil || strings.HasSuffix(s, "px") {
		return 0, ErrColor
	}
	return min(max(v, 0), full), nil
}

// reverseNames maps opaque colors to their shortest CSS keyword, picking
// the alphabetically first name if there is a choice.
var reverseNames = sync.OnceValue(func() map[color.RGBA]string {
	res := make(map[color.RGBA]string, len(colornames.Map))
	for name, c := range colornames.Map {
		old, ok := res[c]
		if !ok || len(name) < len(old) || len(name) == len(old) && name < old {
			res[c] = name
		}
	}
	return res
})

// String returns a canonical representation of the opaque part of c: a
// CSS keyword where one exists, and "#rrggbb" otherwise.
func (c Color) String() string {
	key := color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
	if name, ok := reverseNames()[key]; ok {
		return name
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Opaque returns c with alpha 1.
func (c Color) Opaque() Color {
	c.A = 1
	return c
}
