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

package picosvg

import (
	"log/slog"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/picosvg/affine"
	"seehuhn.de/go/picosvg/materialize"
	"seehuhn.de/go/picosvg/num"
	"seehuhn.de/go/picosvg/paint"
	"seehuhn.de/go/picosvg/pathops"
	"seehuhn.de/go/picosvg/reduce"
	"seehuhn.de/go/picosvg/svg"
	"seehuhn.de/go/picosvg/svgerr"
	"seehuhn.de/go/picosvg/svgpath"
)

// Convert returns the pico SVG version of doc. The input document is not
// modified. If opts is nil, the defaults are used.
//
// Errors carry one of the codes from package [svgerr] and identify the
// offending element. No partial result is returned.
func Convert(doc *svg.Document, opts *Options) (*svg.Document, error) {
	if opts == nil {
		opts = &Options{}
	}
	c := &converter{
		opts:   opts,
		log:    opts.logger(),
		digits: opts.digits(),
	}
	work := doc.Clone()
	if err := c.run(work.Root); err != nil {
		return nil, err
	}
	return c.emit(doc.Root), nil
}

// converter holds the state of a single conversion.
type converter struct {
	opts   *Options
	log    *slog.Logger
	digits int

	viewport rect.Rect
	disabled bool

	styles  *paint.Resolver
	grads   *paint.GradientResolver
	reducer *reduce.Reducer
	clips   *reduce.ClipResolver

	items []item
}

// item is a filled path of the output.
type item struct {
	path    *svgpath.Path
	color   paint.Color     // used if grad is nil
	grad    *paint.Gradient // in user space
	opacity float64
}

// scope is the state inherited by the children of an element.
type scope struct {
	style paint.Style
	ctm   matrix.Matrix
	clips []*svgpath.Path // in root coordinates
}

func (c *converter) run(root *svg.Node) error {
	if err := c.cleanup(root); err != nil {
		return err
	}
	if err := c.setViewport(root); err != nil {
		return err
	}
	if c.disabled {
		c.log.Debug("empty viewBox, nothing to draw")
		return nil
	}
	w, h := c.viewport.URx-c.viewport.LLx, c.viewport.URy-c.viewport.LLy

	engine := c.opts.Engine
	if engine == nil {
		tol := c.opts.tolerance(w, h)
		c.log.Debug("using polygon clipper", "tolerance", tol)
		engine = pathops.NewClipper(tol)
	}

	doc := &svg.Document{Root: root}
	if err := materialize.NestedSVGs(doc); err != nil {
		return err
	}
	err := materialize.Uses(doc, materialize.Options{
		MaxDepth: c.opts.maxDepth(),
		Lenient:  c.opts.Lenient,
		Width:    w,
		Height:   h,
	})
	if err != nil {
		return err
	}

	sheet, err := paint.CollectSheet(root)
	if err != nil {
		return err
	}
	c.styles = &paint.Resolver{Sheet: sheet, Diagonal: math.Sqrt((w*w + h*h) / 2)}
	c.grads, err = paint.ResolveGradients(root, sheet, c.viewport, c.opts.Lenient)
	if err != nil {
		return err
	}
	c.reducer = &reduce.Reducer{Engine: engine}
	c.clips = &reduce.ClipResolver{
		Reducer:  c.reducer,
		Index:    svg.BuildIndex(root),
		Styles:   c.styles,
		Viewport: c.viewport,
		Root:     root,
		MaxDepth: c.opts.maxDepth(),
		Lenient:  c.opts.Lenient,
	}

	ctx := scope{style: paint.Initial(), ctm: matrix.Identity}
	return c.walk(root, ctx, svg.NewLocator(root))
}

// setViewport determines the coordinate range of the document from the
// viewBox, or from width and height if there is no viewBox.
func (c *converter) setViewport(root *svg.Node) error {
	if v, ok := root.Attr("viewBox"); ok {
		vb, err := materialize.ParseViewBox(v)
		if svgerr.Is(err, svgerr.SingularTransform) {
			c.disabled = true
			return nil
		} else if err != nil {
			return svgerr.Locate(err, "/"+root.Name+"[0]")
		}
		c.viewport = vb
		return nil
	}
	w, errW := num.ParseLength(root.Get("width"), 0)
	h, errH := num.ParseLength(root.Get("height"), 0)
	if errW == nil && errH == nil && w > 0 && h > 0 {
		c.viewport = rect.Rect{URx: w, URy: h}
	}
	return nil
}

// walk visits n and its descendants in document order.
func (c *converter) walk(n *svg.Node, ctx scope, loc *svg.Locator) error {
	switch n.Kind {
	case svg.KindSVG, svg.KindGroup, svg.KindAnchor, svg.KindSwitch:
		return c.group(n, ctx, loc)
	case svg.KindPath, svg.KindRect, svg.KindCircle, svg.KindEllipse,
		svg.KindLine, svg.KindPolygon, svg.KindPolyline:
		return c.shape(n, ctx, loc)
	case svg.KindDefs, svg.KindSymbol, svg.KindClipPath, svg.KindStyle,
		svg.KindLinearGradient, svg.KindRadialGradient, svg.KindStop,
		svg.KindMetadata, svg.KindUse, svg.KindForeign, svg.KindUnknown:
		// not rendered directly
		return nil
	case svg.KindFilter, svg.KindMask, svg.KindText, svg.KindImage,
		svg.KindPattern, svg.KindMarker, svg.KindForeignObject:
		return svgerr.New(svgerr.UnsupportedFeature, "<%s> element", n.Name).At(loc.For(n))
	}
	return nil
}

// prepare computes the style and transform of n. The second return value
// is false if n and its descendants are not rendered.
func (c *converter) prepare(n *svg.Node, ctx scope, loc *svg.Locator) (paint.Style, matrix.Matrix, bool, error) {
	st, err := c.styles.Cascade(ctx.style, n)
	if err != nil {
		return st, matrix.Matrix{}, false, svgerr.Locate(err, loc.For(n))
	}
	if st.Filter != "" {
		return st, matrix.Matrix{}, false, svgerr.New(svgerr.UnsupportedFeature, "filter %q", st.Filter).At(loc.For(n))
	}
	if st.Mask != "" {
		return st, matrix.Matrix{}, false, svgerr.New(svgerr.UnsupportedFeature, "mask %q", st.Mask).At(loc.For(n))
	}
	if !st.Display {
		return st, matrix.Matrix{}, false, nil
	}

	tf, err := affine.Parse(n.Get("transform"))
	if err != nil {
		return st, matrix.Matrix{}, false, svgerr.Locate(err, loc.For(n))
	}
	ctm := tf.Mul(ctx.ctm)
	if affine.IsSingular(ctm) {
		c.log.Debug("dropping element with singular transform", "node", loc.For(n))
		return st, matrix.Matrix{}, false, nil
	}
	return st, ctm, true, nil
}

func (c *converter) group(n *svg.Node, ctx scope, loc *svg.Locator) error {
	st, ctm, ok, err := c.prepare(n, ctx, loc)
	if err != nil || !ok {
		return err
	}

	clips := ctx.clips
	if st.ClipPath != "" {
		bbox, _ := c.bounds(n, matrix.Identity)
		outline, err := c.clips.Outline(st.ClipPath, ctm, bbox)
		if err != nil {
			return svgerr.Locate(err, loc.For(n))
		}
		if outline != nil {
			if outline.IsEmpty() {
				c.log.Debug("dropping group with empty clip path", "node", loc.For(n))
				return nil
			}
			clips = append(slices.Clip(clips), outline)
		}
	}

	inner := scope{style: st, ctm: ctm, clips: clips}
	for _, child := range n.Children {
		if err := c.walk(child, inner, loc.Child(child.Name)); err != nil {
			return err
		}
	}
	return nil
}

func (c *converter) shape(n *svg.Node, ctx scope, loc *svg.Locator) error {
	st, ctm, ok, err := c.prepare(n, ctx, loc)
	if err != nil || !ok {
		return err
	}
	p, err := reduce.Geometry(n, c.viewport)
	if err != nil {
		return svgerr.Locate(err, loc.For(n))
	}
	if !st.Visible || p.IsEmpty() {
		return nil
	}
	bbox, _ := p.Bounds()

	clips := ctx.clips
	if st.ClipPath != "" {
		outline, err := c.clips.Outline(st.ClipPath, ctm, bbox)
		if err != nil {
			return svgerr.Locate(err, loc.For(n))
		}
		if outline != nil {
			if outline.IsEmpty() {
				return nil
			}
			clips = append(slices.Clip(clips), outline)
		}
	}

	// the stroke is painted on top of the fill
	if st.HasFill() {
		fill, err := c.reducer.Fill(p, st.FillRule, ctm)
		if err == nil {
			fill, err = c.clip(fill, clips, loc.For(n))
		}
		if err != nil {
			return svgerr.Locate(err, loc.For(n))
		}
		if err := c.add(fill, st.Fill, st.Opacity*st.FillOpacity, bbox, ctm, loc.For(n)); err != nil {
			return err
		}
	}
	if st.HasStroke() {
		stroke, err := c.reducer.StrokeToFill(p, &st, ctm)
		if err == nil {
			stroke, err = c.clip(stroke, clips, loc.For(n))
		}
		if err != nil {
			return svgerr.Locate(err, loc.For(n))
		}
		if err := c.add(stroke, st.Stroke, st.Opacity*st.StrokeOpacity, bbox, ctm, loc.For(n)); err != nil {
			return err
		}
	}
	return nil
}

// clip intersects the filled outline p, in root coordinates, with the
// given clip outlines. With Options.ClipToViewBox, outlines outside the
// viewBox are dropped and outlines crossing its boundary are cut.
func (c *converter) clip(p *svgpath.Path, clips []*svgpath.Path, node string) (*svgpath.Path, error) {
	if p == nil || p.IsEmpty() {
		return nil, nil
	}
	if c.opts.ClipToViewBox && !c.viewport.IsZero() {
		vp := c.viewport
		b, _ := p.Bounds()
		switch {
		case b.URx <= vp.LLx || b.LLx >= vp.URx || b.URy <= vp.LLy || b.LLy >= vp.URy:
			c.log.Debug("dropping shape outside the viewBox", "node", node)
			return nil, nil
		case !vp.Covers(b):
			clips = append(slices.Clip(clips), svgpath.Rect(vp.LLx, vp.LLy, vp.Dx(), vp.Dy(), 0, 0))
		}
	}
	if len(clips) == 0 {
		return p, nil
	}
	return c.reducer.Clip(p, clips...)
}

// add appends a filled path to the output. Gradients are resolved against
// the bounding box bbox of the painted element, in the coordinate system
// given by ctm.
func (c *converter) add(p *svgpath.Path, pt paint.Paint, opacity float64, bbox rect.Rect, ctm matrix.Matrix, node string) error {
	if p == nil || p.IsEmpty() || opacity <= 0 {
		return nil
	}

	switch pt := pt.(type) {
	case paint.Solid:
		c.items = append(c.items, item{path: p, color: pt.Color.Opaque(), opacity: opacity * pt.Color.A})
	case paint.GradientRef:
		g, err := c.grads.Resolve(pt.ID)
		if svgerr.Is(err, svgerr.UnresolvedReference) {
			if pt.Fallback != nil {
				return c.add(p, pt.Fallback, opacity, bbox, ctm, node)
			}
			if c.opts.Lenient {
				c.log.Debug("dropping paint with missing gradient", "node", node, "gradient", pt.ID)
				return nil
			}
		}
		if err != nil {
			return svgerr.Locate(err, node)
		}

		switch len(g.Stops) {
		case 0:
			return nil
		case 1:
			s := g.Stops[0]
			c.items = append(c.items, item{path: p, color: s.Color, opacity: opacity * s.Opacity})
			return nil
		}
		ug, err := g.InUserSpace(bbox, ctm)
		if svgerr.Is(err, svgerr.SingularTransform) {
			c.log.Debug("dropping gradient fill without area", "node", node, "gradient", pt.ID)
			return nil
		} else if err != nil {
			return svgerr.Locate(err, node)
		}
		c.items = append(c.items, item{path: p, grad: ug, opacity: opacity})
	case paint.None, paint.CurrentColor:
		// CurrentColor is replaced during the cascade
	}
	return nil
}

// bounds returns the bounding box, in the coordinate system given by m, of
// all shapes below n which are rendered.
func (c *converter) bounds(n *svg.Node, m matrix.Matrix) (rect.Rect, bool) {
	var res rect.Rect
	found := false
	for _, child := range n.Children {
		tf, err := affine.Parse(child.Get("transform"))
		if err != nil {
			continue
		}
		cm := tf.Mul(m)
		var b rect.Rect
		var ok bool
		switch {
		case child.Kind.IsShape():
			p, err := reduce.Geometry(child, c.viewport)
			if err != nil {
				continue
			}
			b, ok = p.Bounds()
			b = affine.Bounds(cm, b)
		case child.Kind == svg.KindGroup || child.Kind == svg.KindAnchor || child.Kind == svg.KindSwitch:
			b, ok = c.bounds(child, cm)
		}
		if !ok {
			continue
		}
		if !found {
			res, found = b, true
			continue
		}
		res.LLx = min(res.LLx, b.LLx)
		res.LLy = min(res.LLy, b.LLy)
		res.URx = max(res.URx, b.URx)
		res.URy = max(res.URy, b.URy)
	}
	return res, found
}
