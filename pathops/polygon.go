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
	"slices"

	polyclip "github.com/ctessum/polyclip-go"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/picosvg/svgpath"
)

// polygon is a region of the plane, described by closed contours under
// the even-odd rule.
type polygon = polyclip.Polygon

func toContour(pts []vec.Vec2) polyclip.Contour {
	c := make(polyclip.Contour, len(pts))
	for i, p := range pts {
		c[i] = polyclip.Point{X: p.X, Y: p.Y}
	}
	return c
}

func isEmpty(p polygon) bool {
	for _, c := range p {
		if len(c) >= 3 {
			return false
		}
	}
	return true
}

func union(a, b polygon) polygon {
	switch {
	case isEmpty(a):
		return b
	case isEmpty(b):
		return a
	}
	return a.Construct(polyclip.UNION, b)
}

func intersect(a, b polygon) polygon {
	if isEmpty(a) || isEmpty(b) {
		return nil
	}
	return a.Construct(polyclip.INTERSECTION, b)
}

func difference(a, b polygon) polygon {
	switch {
	case isEmpty(a):
		return nil
	case isEmpty(b):
		return a
	}
	return a.Construct(polyclip.DIFFERENCE, b)
}

// region returns the area enclosed by the contours under the given fill
// rule, as a polygon without overlapping contours.
func region(contours [][]vec.Vec2, rule svgpath.FillRule) (polygon, error) {
	if len(contours) == 0 {
		return nil, nil
	}
	if tangled(contours) {
		if rule == svgpath.EvenOdd {
			return arrange(contours, func(w int) bool { return w%2 != 0 })
		}
		return arrange(contours, func(w int) bool { return w != 0 })
	}
	if rule == svgpath.EvenOdd {
		p := make(polygon, len(contours))
		for i, c := range contours {
			p[i] = toContour(c)
		}
		return p, nil
	}
	return nestedRegion(contours), nil
}

// nestedRegion handles the nonzero rule for simple contours which do not
// cross each other. A contour is part of the boundary exactly if the
// winding number is zero on one side of it and non-zero on the other.
func nestedRegion(contours [][]vec.Vec2) polygon {
	sign := make([]int, len(contours))
	for i, c := range contours {
		sign[i] = 1
		if polygonArea(c) < 0 {
			sign[i] = -1
		}
	}

	var res polygon
	for i, c := range contours {
		mid := vec.Middle(c[0], c[1])
		wIn := sign[i]
		for j, other := range contours {
			if j != i && windingNumber(other, mid) != 0 {
				wIn += sign[j]
			}
		}
		wOut := wIn - sign[i]
		if (wIn != 0) != (wOut != 0) {
			res = append(res, toContour(c))
		}
	}
	return res
}

// tangled reports whether any contour intersects itself or another
// contour.
func tangled(contours [][]vec.Vec2) bool {
	type box struct{ xMin, yMin, xMax, yMax float64 }
	boxes := make([]box, len(contours))
	for i, c := range contours {
		b := box{math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1)}
		for _, p := range c {
			b.xMin, b.xMax = min(b.xMin, p.X), max(b.xMax, p.X)
			b.yMin, b.yMax = min(b.yMin, p.Y), max(b.yMax, p.Y)
		}
		boxes[i] = b
	}

	for i, a := range contours {
		n := len(a)
		for k := range n {
			for l := k + 2; l < n; l++ {
				if k == 0 && l == n-1 {
					continue // adjacent through the closing edge
				}
				if segmentsMeet(a[k], a[(k+1)%n], a[l], a[(l+1)%n]) {
					return true
				}
			}
		}
		for j := i + 1; j < len(contours); j++ {
			bi, bj := boxes[i], boxes[j]
			if bi.xMax < bj.xMin || bj.xMax < bi.xMin || bi.yMax < bj.yMin || bj.yMax < bi.yMin {
				continue
			}
			b := contours[j]
			for k := range a {
				for l := range b {
					if segmentsMeet(a[k], a[(k+1)%len(a)], b[l], b[(l+1)%len(b)]) {
						return true
					}
				}
			}
		}
	}
	return false
}

// segmentsMeet reports whether the closed segments p1p2 and q1q2 have a
// point in common.
func segmentsMeet(p1, p2, q1, q2 vec.Vec2) bool {
	d1 := orient(q1, q2, p1)
	d2 := orient(q1, q2, p2)
	d3 := orient(p1, p2, q1)
	d4 := orient(p1, p2, q2)
	if (d1 > 0 && d2 < 0 || d1 < 0 && d2 > 0) && (d3 > 0 && d4 < 0 || d3 < 0 && d4 > 0) {
		return true
	}
	onSegment := func(a, b, p vec.Vec2) bool {
		return min(a.X, b.X) <= p.X && p.X <= max(a.X, b.X) &&
			min(a.Y, b.Y) <= p.Y && p.Y <= max(a.Y, b.Y)
	}
	return d1 == 0 && onSegment(q1, q2, p1) ||
		d2 == 0 && onSegment(q1, q2, p2) ||
		d3 == 0 && onSegment(p1, p2, q1) ||
		d4 == 0 && onSegment(p1, p2, q2)
}

func orient(a, b, c vec.Vec2) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// windingNumber returns the winding number of the closed polygon c around
// p.
func windingNumber(c []vec.Vec2, p vec.Vec2) int {
	w := 0
	for i, a := range c {
		b := c[(i+1)%len(c)]
		if a.Y <= p.Y {
			if b.Y > p.Y && orient(a, b, p) > 0 {
				w++
			}
		} else if b.Y <= p.Y && orient(a, b, p) < 0 {
			w--
		}
	}
	return w
}

func fromContour(c polyclip.Contour) []vec.Vec2 {
	pts := make([]vec.Vec2, len(c))
	for i, p := range c {
		pts[i] = vec.Vec2{X: p.X, Y: p.Y}
	}
	return pts
}

// cleanContours converts the contours of p, dropping degenerate ones.
func cleanContours(p polygon) [][]vec.Vec2 {
	var res [][]vec.Vec2
	for _, c := range p {
		pts := fromContour(c)
		if len(pts) > 1 && pts[0] == pts[len(pts)-1] {
			pts = pts[:len(pts)-1]
		}
		if len(pts) < 3 || math.Abs(polygonArea(pts)) < 1e-12 {
			continue
		}
		res = append(res, pts)
	}
	return res
}

// nestingDepths returns, for each contour of a polygon without crossing
// contours, the number of other contours which enclose it.
func nestingDepths(contours [][]vec.Vec2) []int {
	depth := make([]int, len(contours))
	for i, c := range contours {
		mid := vec.Middle(c[0], c[1])
		for j, other := range contours {
			if j != i && windingNumber(other, mid) != 0 {
				depth[i]++
			}
		}
	}
	return depth
}

// toPath converts a polygon into a path which describes the same region
// under both fill rules. Outer contours are counter-clockwise in a y-up
// coordinate system and the orientation alternates with nesting depth.
func toPath(p polygon) *svgpath.Path {
	res := &svgpath.Path{}
	for _, c := range oriented(p) {
		res.MoveTo(c[0])
		for _, pt := range c[1:] {
			res.LineTo(pt)
		}
		res.Close()
	}
	return res
}

// oriented returns the contours of p, reversed where necessary so that
// outer contours have positive area and the orientation alternates with
// nesting depth. The winding number of the result is 1 inside the region
// and 0 outside.
func oriented(p polygon) [][]vec.Vec2 {
	contours := cleanContours(p)
	depth := nestingDepths(contours)
	for i, c := range contours {
		if (polygonArea(c) > 0) != (depth[i]%2 == 0) {
			slices.Reverse(c)
		}
	}
	return contours
}
