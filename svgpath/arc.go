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

	"seehuhn.de/go/geom/vec"
)

// maxArcSweep is the largest angle covered by a single cubic when
// converting arcs. The small excess avoids splitting exact quarter arcs.
const maxArcSweep = math.Pi/2 + 0.001

// arcToCubics converts the arc from p0 into a sequence of cubic Bézier
// curves, following the endpoint to centre conversion of SVG 1.1 F.6.5.
// Degenerate arcs become a straight line, or nothing if the end point
// equals the start point.
func arcToCubics(p0 vec.Vec2, a ArcTo) []Segment {
	p1 := a.P
	if p0 == p1 {
		return nil
	}
	rx, ry := math.Abs(a.RX), math.Abs(a.RY)
	if rx == 0 || ry == 0 {
		return []Segment{LineTo{P: p1}}
	}

	sinPhi, cosPhi := math.Sincos(a.Rotation * math.Pi / 180)
	dx2 := (p0.X - p1.X) / 2
	dy2 := (p0.Y - p1.Y) / 2
	x1p := cosPhi*dx2 + sinPhi*dy2
	y1p := -sinPhi*dx2 + cosPhi*dy2

	// scale up radii which are too small to reach the end point
	lambda := x1p*x1p/(rx*rx) + y1p*y1p/(ry*ry)
	if lambda > 1 {
		s := math.Sqrt(lambda)
		rx *= s
		ry *= s
	}

	rx2, ry2 := rx*rx, ry*ry
	numerator := rx2*ry2 - rx2*y1p*y1p - ry2*x1p*x1p
	denominator := rx2*y1p*y1p + ry2*x1p*x1p
	coef := 0.0
	if denominator > 0 && numerator > 0 {
		coef = math.Sqrt(numerator / denominator)
	}
	if a.LargeArc == a.Sweep {
		coef = -coef
	}
	cxp := coef * rx * y1p / ry
	cyp := -coef * ry * x1p / rx
	cx := cosPhi*cxp - sinPhi*cyp + (p0.X+p1.X)/2
	cy := sinPhi*cxp + cosPhi*cyp + (p0.Y+p1.Y)/2

	u := vec.Vec2{X: (x1p - cxp) / rx, Y: (y1p - cyp) / ry}
	v := vec.Vec2{X: (-x1p - cxp) / rx, Y: (-y1p - cyp) / ry}
	theta1 := vecAngle(vec.Vec2{X: 1, Y: 0}, u)
	dTheta := vecAngle(u, v)
	if !a.Sweep && dTheta > 0 {
		dTheta -= 2 * math.Pi
	} else if a.Sweep && dTheta < 0 {
		dTheta += 2 * math.Pi
	}

	n := int(math.Ceil(math.Abs(dTheta) / maxArcSweep))
	n = max(n, 1)
	delta := dTheta / float64(n)
	k := 4.0 / 3.0 * math.Tan(delta/4)

	// maps a point on the unit circle onto the ellipse
	toEllipse := func(x, y float64) vec.Vec2 {
		return vec.Vec2{
			X: cx + rx*cosPhi*x - ry*sinPhi*y,
			Y: cy + rx*sinPhi*x + ry*cosPhi*y,
		}
	}

	res := make([]Segment, 0, n)
	for i := range n {
		t1 := theta1 + float64(i)*delta
		t2 := t1 + delta
		s1, c1 := math.Sincos(t1)
		s2, c2 := math.Sincos(t2)
		end := toEllipse(c2, s2)
		if i == n-1 {
			end = p1
		}
		res = append(res, CubeTo{
			C1: toEllipse(c1-k*s1, s1+k*c1),
			C2: toEllipse(c2+k*s2, s2-k*c2),
			P:  end,
		})
	}
	return res
}

// vecAngle returns the signed angle from u to v.
func vecAngle(u, v vec.Vec2) float64 {
	return math.Atan2(u.X*v.Y-u.Y*v.X, u.Dot(v))
}

// quadToCubic returns the cubic curve which traces the same points as the
// quadratic curve from p0.
func quadToCubic(p0 vec.Vec2, q QuadTo) CubeTo {
	return CubeTo{
		C1: p0.Add(q.C.Sub(p0).Mul(2.0 / 3.0)),
		C2: q.P.Add(q.C.Sub(q.P).Mul(2.0 / 3.0)),
		P:  q.P,
	}
}

// ToCubics returns a copy of p in which all quadratic curves and arcs have
// been replaced by cubic curves.
func (p *Path) ToCubics() *Path {
	res := &Path{Subpaths: make([]Subpath, 0, len(p.Subpaths))}
	for _, sp := range p.Subpaths {
		out := Subpath{Start: sp.Start, Closed: sp.Closed}
		cur := sp.Start
		for _, seg := range sp.Segments {
			switch s := seg.(type) {
			case LineTo, CubeTo:
				out.Segments = append(out.Segments, s)
			case QuadTo:
				out.Segments = append(out.Segments, quadToCubic(cur, s))
			case ArcTo:
				out.Segments = append(out.Segments, arcToCubics(cur, s)...)
			}
			cur = seg.End()
		}
		res.Subpaths = append(res.Subpaths, out)
	}
	return res
}

// HasArcs reports whether p contains arc segments.
func (p *Path) HasArcs() bool {
	for _, sp := range p.Subpaths {
		for _, seg := range sp.Segments {
			if _, ok := seg.(ArcTo); ok {
				return true
			}
		}
	}
	return false
}
