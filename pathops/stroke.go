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

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/picosvg/svgpath"
)

// strokeSegment is a line segment of a flattened path.
type strokeSegment struct {
	A, B vec.Vec2 // endpoints
	T    vec.Vec2 // unit tangent (A→B direction)
	N    vec.Vec2 // unit normal (90° CCW from T)
}

// stroker converts paths into stroke outline polygons. The zero value is
// ready to use once StrokeStyle and flatness are set. Buffers are reused
// across calls.
type stroker struct {
	StrokeStyle

	// flatness is the maximal distance between curves (including round
	// joins and caps) and their polygonal approximation.
	flatness float64

	stroke        []vec.Vec2 // outline vertices of all polygons, contiguous
	strokeOffsets []int      // start index of each polygon in stroke
	strokeGroups  []int      // group of each polygon
	group         int

	segs             []strokeSegment // segments of all subpaths, contiguous
	segsOffsets      []int           // start index of each subpath in segs
	subpathClosed    []bool          // whether each subpath is closed
	degeneratePoints []vec.Vec2      // subpaths without extent

	dashedSegs []strokeSegment // segments of all dashes, contiguous
	dashes     [][2]int        // index range of each dash in dashedSegs
}

// outline returns the stroke outline of p as a list of polygon groups.
// The contours of each group cover their area under the nonzero rule.
// Groups overlap where the stroke overlaps itself; the covered area is
// their union.
func (s *stroker) outline(p *svgpath.Path) [][][]vec.Vec2 {
	s.flattenPath(p.Iter())
	s.stroke = s.stroke[:0]
	s.strokeOffsets = s.strokeOffsets[:0]
	s.strokeGroups = s.strokeGroups[:0]
	s.group = 0

	// Zero-length subpaths have no direction. SVG draws round caps as a
	// circle and square caps as an axis-aligned square.
	for _, pt := range s.degeneratePoints {
		switch s.Cap {
		case graphics.LineCapRound:
			s.addPolygon(func() { s.addArc(pt, s.Width/2, vec.Vec2{X: 1, Y: 0}, 2*math.Pi, true) })
		case graphics.LineCapSquare:
			s.addPolygon(func() { s.addSquare(pt, vec.Vec2{X: 1, Y: 0}, s.Width/2) })
		}
	}

	if len(s.Dash) > 0 {
		s.strokeDashedSubpaths()
	} else {
		s.strokeAllSubpaths()
	}

	var res [][][]vec.Vec2
	for i, start := range s.strokeOffsets {
		end := len(s.stroke)
		if i+1 < len(s.strokeOffsets) {
			end = s.strokeOffsets[i+1]
		}
		c := slices.Clone(s.stroke[start:end])
		if i > 0 && s.strokeGroups[i] == s.strokeGroups[i-1] {
			res[len(res)-1] = append(res[len(res)-1], c)
		} else {
			res = append(res, [][]vec.Vec2{c})
		}
	}
	return res
}

// strokeAllSubpaths strokes all flattened subpaths without dashing.
func (s *stroker) strokeAllSubpaths() {
	for i := range s.segsOffsets {
		s.strokeSubpath(s.subpathSegments(i), s.subpathClosed[i])
	}
}

// addPolygon records the vertices appended by build as a polygon of its
// own group, unless it is degenerate.
func (s *stroker) addPolygon(build func()) {
	start := len(s.stroke)
	build()
	if len(s.stroke)-start >= 3 {
		s.strokeOffsets = append(s.strokeOffsets, start)
		s.strokeGroups = append(s.strokeGroups, s.group)
		s.group++
	} else {
		s.stroke = s.stroke[:start]
	}
}

func (s *stroker) subpathSegments(i int) []strokeSegment {
	end := len(s.segs)
	if i+1 < len(s.segsOffsets) {
		end = s.segsOffsets[i+1]
	}
	return s.segs[s.segsOffsets[i]:end]
}

// strokeDashedSubpaths splits the subpaths into dashes and strokes each
// dash as an open subpath.
func (s *stroker) strokeDashedSubpaths() {
	s.applyDashPattern()

	for _, r := range s.dashes {
		segs := s.dashedSegs[r[0]:r[1]]

		// zero-length dashes keep the direction of the underlying path
		if len(segs) == 1 && segs[0].A == segs[0].B {
			seg := &segs[0]
			switch s.Cap {
			case graphics.LineCapRound:
				s.addPolygon(func() { s.addArc(seg.A, s.Width/2, vec.Vec2{X: 1, Y: 0}, 2*math.Pi, true) })
			case graphics.LineCapSquare:
				s.addPolygon(func() { s.addSquare(seg.A, seg.T, s.Width/2) })
			}
			continue
		}

		s.strokeSubpath(segs, false)
	}
}

// flattenPath replaces curves by line segments and fills the segment
// buffers.
func (s *stroker) flattenPath(p path.Path) {
	s.segs = s.segs[:0]
	s.segsOffsets = s.segsOffsets[:0]
	s.subpathClosed = s.subpathClosed[:0]
	s.degeneratePoints = s.degeneratePoints[:0]

	var currentPt, subpathStartPt vec.Vec2
	subpathStartIdx := 0
	inSubpath := false
	sawDrawingCmd := false

	endSubpath := func(closed bool) {
		if len(s.segs) == subpathStartIdx {
			s.degeneratePoints = append(s.degeneratePoints, subpathStartPt)
		} else {
			s.segsOffsets = append(s.segsOffsets, subpathStartIdx)
			s.subpathClosed = append(s.subpathClosed, closed)
		}
	}

	for cmd, pts := range p {
		switch cmd {
		case path.CmdMoveTo:
			// a lone moveto is not drawn, but "M x,y L x,y" is
			if inSubpath && (len(s.segs) > subpathStartIdx || sawDrawingCmd) {
				endSubpath(false)
			}
			currentPt = pts[0]
			subpathStartPt = currentPt
			subpathStartIdx = len(s.segs)
			inSubpath = true
			sawDrawingCmd = false

		case path.CmdLineTo:
			if !inSubpath {
				continue
			}
			sawDrawingCmd = true
			s.addStrokeSegment(currentPt, pts[0])
			currentPt = pts[0]

		case path.CmdQuadTo:
			if !inSubpath {
				continue
			}
			sawDrawingCmd = true
			flattenQuadratic(currentPt, pts[0], pts[1], s.flatness, s.addStrokeSegment)
			currentPt = pts[1]

		case path.CmdCubeTo:
			if !inSubpath {
				continue
			}
			sawDrawingCmd = true
			flattenCubic(currentPt, pts[0], pts[1], pts[2], s.flatness, s.addStrokeSegment)
			currentPt = pts[2]

		case path.CmdClose:
			if !inSubpath {
				continue
			}
			if currentPt != subpathStartPt {
				s.addStrokeSegment(currentPt, subpathStartPt)
			}
			endSubpath(true)
			currentPt = subpathStartPt
			subpathStartIdx = len(s.segs)
			inSubpath = false
			sawDrawingCmd = false
		}
	}

	if inSubpath && (len(s.segs) > subpathStartIdx || sawDrawingCmd) {
		endSubpath(false)
	}
}

func (s *stroker) addStrokeSegment(a, b vec.Vec2) {
	d := b.Sub(a)
	length := d.Length()
	if length < zeroLengthThreshold {
		return
	}
	t := d.Mul(1 / length)
	n := vec.Vec2{X: -t.Y, Y: t.X}
	s.segs = append(s.segs, strokeSegment{A: a, B: b, T: t, N: n})
}

// strokeSubpath records the outline of one subpath. An open subpath gives
// a single polygon: forward along the +N side, then backward along the -N
// side, with caps at both ends. Join geometry goes on the outer side of
// each corner.
func (s *stroker) strokeSubpath(segs []strokeSegment, closed bool) {
	if len(segs) == 0 {
		return
	}
	s.addPolygon(func() { s.strokeOpen(segs, !closed) })
	if closed {
		s.addPolygon(func() { s.closingJoin(segs) })
	}
}

// turn returns the sine of the angle from t1 to t2.
func turn(t1, t2 vec.Vec2) float64 {
	return t1.X*t2.Y - t1.Y*t2.X
}

// closingJoin adds the join where a closed subpath returns to its start,
// as a wedge between the two segment ends on the outer side of the
// corner. The rest of the corner is covered by the butt ends of the
// segments.
func (s *stroker) closingJoin(segs []strokeSegment) {
	d := s.Width / 2
	first := &segs[0]
	last := &segs[len(segs)-1]
	P := first.A
	sinTheta := turn(last.T, first.T)
	if math.Abs(sinTheta) < collinearityThreshold && last.T.Dot(first.T) > 0 {
		return
	}
	s.stroke = append(s.stroke, P)
	if sinTheta > 0 {
		s.stroke = append(s.stroke, P.Sub(first.N.Mul(d)))
		s.addJoin(P, last.T, first.T, d, false)
		s.stroke = append(s.stroke, P.Sub(last.N.Mul(d)))
	} else {
		s.stroke = append(s.stroke, P.Add(last.N.Mul(d)))
		s.addJoin(P, last.T, first.T, d, true)
		s.stroke = append(s.stroke, P.Add(first.N.Mul(d)))
	}
}

// strokeOpen appends the outline of an open subpath. Without caps, the
// ends of the outline are cut off square at the end points.
func (s *stroker) strokeOpen(segs []strokeSegment, caps bool) {
	d := s.Width / 2
	first := &segs[0]
	last := &segs[len(segs)-1]

	if caps {
		s.addCap(first.A, first.T.Mul(-1), d)
	}

	// forward pass, +N side
	skipNextA := false
	for i := range segs {
		seg := &segs[i]
		if !skipNextA {
			s.stroke = append(s.stroke, seg.A.Add(seg.N.Mul(d)))
		}
		skipNextA = false
		if i == len(segs)-1 {
			s.stroke = append(s.stroke, seg.B.Add(seg.N.Mul(d)))
			break
		}
		next := &segs[i+1]
		sinTheta := turn(seg.T, next.T)
		switch {
		case math.Abs(sinTheta) < collinearityThreshold && seg.T.Dot(next.T) > 0:
			s.stroke = append(s.stroke, seg.B.Add(seg.N.Mul(d)))
		case sinTheta > 0:
			skipNextA = s.addInnerIntersectionOrOffsets(seg.B, seg.T, next.T, seg.N, next.N, d, true)
		default:
			s.stroke = append(s.stroke, seg.B.Add(seg.N.Mul(d)))
			s.addJoin(seg.B, seg.T, next.T, d, true)
		}
	}

	if caps {
		s.addCap(last.B, last.T, d)
	}

	// backward pass, -N side
	skipNextB := false
	for i := len(segs) - 1; i >= 0; i-- {
		seg := &segs[i]
		if !skipNextB {
			s.stroke = append(s.stroke, seg.B.Sub(seg.N.Mul(d)))
		}
		skipNextB = false
		if i == 0 {
			s.stroke = append(s.stroke, seg.A.Sub(seg.N.Mul(d)))
			break
		}
		prev := &segs[i-1]
		sinTheta := turn(prev.T, seg.T)
		switch {
		case math.Abs(sinTheta) < collinearityThreshold:
			s.stroke = append(s.stroke, seg.A.Sub(seg.N.Mul(d)))
		case sinTheta > 0:
			s.stroke = append(s.stroke, seg.A.Sub(seg.N.Mul(d)))
			s.addJoin(seg.A, prev.T, seg.T, d, false)
		default:
			skipNextB = s.addInnerIntersectionOrOffsets(seg.A, prev.T, seg.T, prev.N, seg.N, d, false)
		}
	}
}

// addCap adds a line cap at point P. T is the outward tangent direction
// and d is half the stroke width.
func (s *stroker) addCap(P, T vec.Vec2, d float64) {
	N := vec.Vec2{X: -T.Y, Y: T.X}

	switch s.Cap {
	case graphics.LineCapSquare:
		ext := P.Add(T.Mul(d))
		s.stroke = append(s.stroke, ext.Add(N.Mul(d)), ext.Sub(N.Mul(d)))

	case graphics.LineCapRound:
		// half circle from +N through T to -N
		s.addArc(P, d, N, -math.Pi, true)
	}
}

// innerIntersection returns the point where the two inner offset lines
// at a corner meet. For nearly collinear segments, ok is false.
func innerIntersection(P, T1, T2 vec.Vec2, d float64, positiveSide bool) (vec.Vec2, bool) {
	cosTheta := T1.Dot(T2)
	if cosTheta > 1-1e-9 {
		return vec.Vec2{}, false
	}

	// cos(θ/2) = sqrt((1 + cos θ) / 2)
	halfAngle := math.Sqrt((1 + cosTheta) / 2)
	if halfAngle < 1e-9 {
		return vec.Vec2{}, false
	}

	N1 := vec.Vec2{X: -T1.Y, Y: T1.X}
	N2 := vec.Vec2{X: -T2.Y, Y: T2.X}
	innerDir := N1.Add(N2)
	if !positiveSide {
		innerDir = innerDir.Mul(-1)
	}
	l := innerDir.Length()
	if l < 1e-9 {
		return vec.Vec2{}, false
	}
	innerDir = innerDir.Mul(1 / l)

	return P.Add(innerDir.Mul(d / halfAngle)), true
}

// addInnerIntersectionOrOffsets handles the inner side of a corner. It
// returns true if the intersection point was used, in which case the
// caller must not add the offset point of the following segment.
func (s *stroker) addInnerIntersectionOrOffsets(P, T1, T2, N1, N2 vec.Vec2, d float64, positiveSide bool) bool {
	if pt, ok := innerIntersection(P, T1, T2, d, positiveSide); ok {
		s.stroke = append(s.stroke, pt)
		return true
	}
	if positiveSide {
		s.stroke = append(s.stroke, P.Add(N1.Mul(d)), P.Add(N2.Mul(d)))
	} else {
		s.stroke = append(s.stroke, P.Sub(N1.Mul(d)), P.Sub(N2.Mul(d)))
	}
	return false
}

// addJoin adds a line join at P where the tangent changes from T1 to T2.
// d is half the stroke width, positiveSide selects the side of the outline
// being built.
func (s *stroker) addJoin(P, T1, T2 vec.Vec2, d float64, positiveSide bool) {
	cosTheta := T1.Dot(T2)
	sinTheta := turn(T1, T2)
	if math.Abs(sinTheta) < collinearityThreshold && cosTheta > 0 {
		return
	}

	// the path doubles back: two caps instead of a join
	if cosTheta < cuspCosineThreshold {
		s.addCap(P, T1, d)
		s.addCap(P, T2.Mul(-1), d)
		return
	}

	switch s.Join {
	case graphics.LineJoinMiter:
		// The miter length ratio is 1/sin(φ/2) for the interior angle
		// φ = π - θ, and sin(φ/2) = cos(θ/2).
		sinHalf := math.Sqrt((1 + cosTheta) / 2)
		const miterEpsilon = 1e-10
		if sinHalf > 0 && 1/sinHalf <= s.MiterLimit+miterEpsilon {
			N1 := vec.Vec2{X: -T1.Y, Y: T1.X}
			N2 := vec.Vec2{X: -T2.Y, Y: T2.X}
			bisector := N1.Add(N2)
			if !positiveSide {
				bisector = bisector.Mul(-1)
			}
			if l := bisector.Length(); l > zeroLengthThreshold {
				s.stroke = append(s.stroke, P.Add(bisector.Mul(d/(l*sinHalf))))
			}
		}
		// beyond the miter limit the join is a bevel

	case graphics.LineJoinRound:
		angle := math.Acos(max(-1, min(1, cosTheta)))
		if positiveSide {
			N1 := vec.Vec2{X: -T1.Y, Y: T1.X}
			if sinTheta > 0 {
				s.addArc(P, d, N1, angle, false)
			} else {
				s.addArc(P, d, N1, -angle, false)
			}
		} else {
			// the backward pass runs from T2 to T1
			N2 := vec.Vec2{X: T2.Y, Y: -T2.X}
			if sinTheta > 0 {
				s.addArc(P, d, N2, -angle, false)
			} else {
				s.addArc(P, d, N2, angle, false)
			}
		}
	}
}

// addArc adds the vertices of a circular arc with the given center and
// radius. startDir is the unit vector from the center to the start of the
// arc, sweep is the angle in radians (positive = CCW).
func (s *stroker) addArc(center vec.Vec2, radius float64, startDir vec.Vec2, sweep float64, includeStart bool) {
	rot := func(angle float64) vec.Vec2 {
		c, sn := math.Cos(angle), math.Sin(angle)
		return vec.Vec2{
			X: startDir.X*c - startDir.Y*sn,
			Y: startDir.X*sn + startDir.Y*c,
		}
	}

	if radius < s.flatness {
		if includeStart {
			s.stroke = append(s.stroke, center.Add(startDir.Mul(radius)))
		}
		s.stroke = append(s.stroke, center.Add(rot(sweep).Mul(radius)))
		return
	}

	// A chord subtending the angle θ deviates from the arc by the sagitta
	// r·(1 - cos(θ/2)). Setting this to the flatness gives the step size.
	angleStep := 2 * math.Acos(1-s.flatness/radius)
	if angleStep <= 0 || math.IsNaN(angleStep) {
		angleStep = math.Pi / 4
	}
	n := max(int(math.Ceil(math.Abs(sweep)/angleStep)), 1)

	dt := sweep / float64(n)
	i := 0
	if !includeStart {
		i = 1
	}
	for ; i <= n; i++ {
		s.stroke = append(s.stroke, center.Add(rot(float64(i)*dt).Mul(radius)))
	}
}

// addSquare adds a square with side length 2d, centered at center and
// aligned with the tangent T.
func (s *stroker) addSquare(center vec.Vec2, T vec.Vec2, d float64) {
	N := vec.Vec2{X: -T.Y, Y: T.X}
	s.stroke = append(s.stroke,
		center.Add(T.Mul(d)).Add(N.Mul(d)),
		center.Add(T.Mul(d)).Sub(N.Mul(d)),
		center.Sub(T.Mul(d)).Sub(N.Mul(d)),
		center.Sub(T.Mul(d)).Add(N.Mul(d)),
	)
}

// applyDashPattern splits the flattened subpaths into dashes, which are
// stored in s.dashedSegs and s.dashes.
func (s *stroker) applyDashPattern() {
	s.dashedSegs = s.dashedSegs[:0]
	s.dashes = s.dashes[:0]

	dash := s.Dash
	dashLen := len(dash)

	patternLen := 0.0
	for _, d := range dash {
		patternLen += d
	}
	if dashLen%2 == 1 {
		patternLen *= 2
	}
	if patternLen <= 0 {
		return
	}

	phase := math.Mod(s.DashPhase, patternLen)
	if phase < 0 {
		phase += patternLen
	}

	for spIdx := range s.segsOffsets {
		segments := s.subpathSegments(spIdx)
		closed := s.subpathClosed[spIdx]
		if len(segments) == 0 {
			continue
		}

		// every subpath restarts the pattern
		dashIdx := 0
		dist := phase
		for dist >= dash[dashIdx%dashLen] && dash[dashIdx%dashLen] > 0 {
			dist -= dash[dashIdx%dashLen]
			dashIdx++
		}
		remaining := dash[dashIdx%dashLen] - dist
		isOn := dashIdx%2 == 0

		// a zero-length dash at the start becomes a dot
		if isOn && remaining == 0 {
			seg := segments[0]
			s.dashedSegs = append(s.dashedSegs, strokeSegment{A: seg.A, B: seg.A, T: seg.T, N: seg.N})
			s.dashes = append(s.dashes, [2]int{len(s.dashedSegs) - 1, len(s.dashedSegs)})
			dashIdx++
			remaining = dash[dashIdx%dashLen]
			isOn = dashIdx%2 == 0
		}

		// for closed subpaths, the first and the last dash may need joining
		startedOn := isOn
		firstDash := -1 // index into s.dashes

		dashStartIdx := len(s.dashedSegs)
		segIdx := 0
		segDist := 0.0

		for segIdx < len(segments) {
			seg := segments[segIdx]
			segLen := seg.B.Sub(seg.A).Length()
			segRemaining := segLen - segDist

			if remaining >= segRemaining {
				// the current dash extends past this segment
				if isOn {
					if segDist > 0 {
						startPt := seg.A.Add(seg.B.Sub(seg.A).Mul(segDist / segLen))
						s.dashedSegs = append(s.dashedSegs, strokeSegment{A: startPt, B: seg.B, T: seg.T, N: seg.N})
					} else {
						s.dashedSegs = append(s.dashedSegs, seg)
					}
				}
				remaining -= segRemaining
				segIdx++
				segDist = 0
				continue
			}

			// the current dash ends within this segment
			endDist := segDist + remaining
			splitPt := seg.A.Add(seg.B.Sub(seg.A).Mul(endDist / segLen))

			if isOn {
				startPt := seg.A.Add(seg.B.Sub(seg.A).Mul(segDist / segLen))
				d := splitPt.Sub(startPt)
				if dLen := d.Length(); dLen > zeroLengthThreshold {
					t := d.Mul(1 / dLen)
					s.dashedSegs = append(s.dashedSegs, strokeSegment{
						A: startPt, B: splitPt,
						T: t, N: vec.Vec2{X: -t.Y, Y: t.X},
					})
				} else if len(s.dashedSegs) == dashStartIdx {
					s.dashedSegs = append(s.dashedSegs, strokeSegment{A: startPt, B: startPt, T: seg.T, N: seg.N})
				}

				if len(s.dashedSegs) > dashStartIdx {
					if firstDash < 0 {
						firstDash = len(s.dashes)
					}
					s.dashes = append(s.dashes, [2]int{dashStartIdx, len(s.dashedSegs)})
					dashStartIdx = len(s.dashedSegs)
				}
			}

			segDist = endDist
			dashIdx++
			remaining = dash[dashIdx%dashLen]
			isOn = dashIdx%2 == 0
		}

		if len(s.dashedSegs) > dashStartIdx {
			if closed && startedOn && isOn && firstDash >= 0 {
				// the last dash continues into the first one
				r := s.dashes[firstDash]
				for i := r[0]; i < r[1]; i++ {
					s.dashedSegs = append(s.dashedSegs, s.dashedSegs[i])
				}
				s.dashes = slices.Delete(s.dashes, firstDash, firstDash+1)
			}
			s.dashes = append(s.dashes, [2]int{dashStartIdx, len(s.dashedSegs)})
		}
	}
}
