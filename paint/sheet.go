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
	"cmp"
	"slices"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"

	"seehuhn.de/go/picosvg/svg"
	"seehuhn.de/go/picosvg/svgerr"
)

// Properties lists the presentation attributes which take part in the
// cascade.
var Properties = []string{
	"fill", "fill-opacity", "fill-rule",
	"stroke", "stroke-width", "stroke-opacity",
	"stroke-linecap", "stroke-linejoin", "stroke-miterlimit",
	"stroke-dasharray", "stroke-dashoffset",
	"opacity", "color", "display", "visibility",
	"clip-path", "clip-rule", "mask", "filter",
	"stop-color", "stop-opacity",
}

var isProperty = func() map[string]bool {
	res := make(map[string]bool, len(Properties))
	for _, p := range Properties {
		res[p] = true
	}
	return res
}()

// Sheet holds the rules of the <style> elements of a document. Only
// compound selectors made of a type, an id and classes are supported;
// rules with other selectors are ignored.
type Sheet struct {
	rules []rule
}

type rule struct {
	sel   selector
	order int
	decls []*css.Declaration
}

type selector struct {
	tag     string // empty or "*" matches any element
	id      string
	classes []string
}

func (s selector) specificity() int {
	res := len(s.classes) * 10
	if s.id != "" {
		res += 100
	}
	if s.tag != "" && s.tag != "*" {
		res++
	}
	return res
}

func (s selector) matches(n *svg.Node) bool {
	if s.tag != "" && s.tag != "*" && s.tag != n.Name {
		return false
	}
	if s.id != "" && s.id != n.ID() {
		return false
	}
	if len(s.classes) > 0 {
		have := n.Classes()
		for _, c := range s.classes {
			if !slices.Contains(have, c) {
				return false
			}
		}
	}
	return true
}

// parseSelector parses a compound selector. The second return value is
// false for selectors which use combinators, pseudo-classes or attribute
// tests.
func parseSelector(s string) (selector, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, " \t\n>+~:[") {
		return selector{}, false
	}
	var sel selector
	i := 0
	next := func() string {
		j := i
		for j < len(s) && s[j] != '.' && s[j] != '#' {
			j++
		}
		tok := s[i:j]
		i = j
		return tok
	}
	sel.tag = next()
	for i < len(s) {
		kind := s[i]
		i++
		tok := next()
		if tok == "" {
			return selector{}, false
		}
		if kind == '.' {
			sel.classes = append(sel.classes, tok)
		} else {
			sel.id = tok
		}
	}
	return sel, true
}

// ParseSheet parses the text of a <style> element.
func ParseSheet(text string) (*Sheet, error) {
	sh := &Sheet{}
	if err := sh.Add(text); err != nil {
		return nil, err
	}
	return sh, nil
}

// Add appends the rules of another <style> element.
func (sh *Sheet) Add(text string) error {
	ss, err := parser.Parse(text)
	if err != nil {
		return svgerr.Wrap(svgerr.MalformedDocument, err, "invalid style sheet")
	}
	for _, r := range ss.Rules {
		if r.Kind == css.AtRule {
			continue
		}
		for _, s := range r.Selectors {
			sel, ok := parseSelector(s)
			if !ok {
				continue
			}
			sh.rules = append(sh.rules, rule{sel: sel, order: len(sh.rules), decls: r.Declarations})
		}
	}
	return nil
}

// CollectSheet gathers the style sheets of all <style> elements below root.
func CollectSheet(root *svg.Node) (*Sheet, error) {
	sh := &Sheet{}
	var err error
	svg.Walk(root, func(n *svg.Node) bool {
		if err != nil {
			return false
		}
		if n.Kind == svg.KindStyle {
			if t := n.Get("type"); t != "" && t != "text/css" {
				return false
			}
			err = sh.Add(n.Text)
			return false
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return sh, nil
}

// Declarations returns the specified property values of n. Presentation
// attributes have the lowest priority, followed by matching sheet rules in
// order of specificity and position, the style attribute, and finally
// !important sheet and style declarations.
func (sh *Sheet) Declarations(n *svg.Node) map[string]string {
	res := map[string]string{}
	for _, a := range n.Attrs {
		if a.Space == "" && isProperty[a.Name] {
			res[a.Name] = strings.TrimSpace(a.Value)
		}
	}

	var matched []rule
	if sh != nil {
		for _, r := range sh.rules {
			if r.sel.matches(n) {
				matched = append(matched, r)
			}
		}
	}
	slices.SortStableFunc(matched, func(a, b rule) int {
		return cmp.Or(
			cmp.Compare(a.sel.specificity(), b.sel.specificity()),
			cmp.Compare(a.order, b.order),
		)
	})

	var inline []*css.Declaration
	if style, ok := n.Attr("style"); ok {
		// the parser drops the value of a final declaration without ';'
		style = strings.TrimSpace(style)
		if !strings.HasSuffix(style, ";") {
			style += ";"
		}
		// invalid style attributes are ignored, like invalid declarations
		inline, _ = parser.ParseDeclarations(style)
	}

	apply := func(decls []*css.Declaration, important bool) {
		for _, d := range decls {
			v := strings.TrimSpace(d.Value)
			if d.Important == important && v != "" {
				res[d.Property] = v
			}
		}
	}
	for _, r := range matched {
		apply(r.decls, false)
	}
	apply(inline, false)
	for _, r := range matched {
		apply(r.decls, true)
	}
	apply(inline, true)
	return res
}
