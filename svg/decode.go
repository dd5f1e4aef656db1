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

package svg

import (
	"bytes"
	"errors"
	"html"
	"io"
	"maps"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/xml"

	"seehuhn.de/go/picosvg/svgerr"
)

// Document is a parsed SVG document.
type Document struct {
	Root *Node
}

// Parse reads an SVG document. Comments, processing instructions and the
// document type declaration are discarded. Character references and the
// predefined entities are decoded in attribute values and text.
//
// Elements without a namespace declaration are taken to be in the SVG
// namespace, and the prefix "xlink" is bound to the XLink namespace unless
// declared otherwise.
func Parse(r io.Reader) (*Document, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseBytes(b)
}

// ParseString is like [Parse] but reads from a string.
func ParseString(s string) (*Document, error) {
	return ParseBytes([]byte(s))
}

// ParseBytes is like [Parse] but reads from a byte slice.
func ParseBytes(b []byte) (*Document, error) {
	d := &decoder{
		lex: xml.NewLexer(parse.NewInputBytes(b)),
	}
	root, err := d.run()
	if err != nil {
		return nil, err
	}
	return &Document{Root: root}, nil
}

type scope map[string]string

var defaultScope = scope{
	"":      NamespaceSVG,
	"xml":   NamespaceXML,
	"xmlns": NamespaceXMLNS,
	"xlink": NamespaceXLink,
}

type openElement struct {
	node  *Node
	scope scope
}

type decoder struct {
	lex   *xml.Lexer
	stack []openElement
	root  *Node

	pending *Node // element whose start tag is being read
	inPI    bool
}

func (d *decoder) run() (*Node, error) {
	for {
		tt, data := d.lex.Next()
		switch tt {
		case xml.ErrorToken:
			if err := d.lex.Err(); err != nil && !errors.Is(err, io.EOF) {
				return nil, svgerr.Wrap(svgerr.MalformedDocument, err, "invalid XML")
			}
			if d.root == nil {
				return nil, svgerr.New(svgerr.MalformedDocument, "no root element")
			}
			if len(d.stack) > 0 {
				return nil, svgerr.New(svgerr.MalformedDocument, "unclosed element <%s>", d.stack[len(d.stack)-1].node.Name)
			}
			if d.root.Kind != KindSVG {
				return nil, svgerr.New(svgerr.MalformedDocument, "root element is <%s>, not <svg>", d.root.Name)
			}
			return d.root, nil

		case xml.StartTagPIToken:
			d.inPI = true
		case xml.StartTagClosePIToken:
			d.inPI = false

		case xml.StartTagToken:
			if len(d.stack) == 0 && d.root != nil {
				return nil, svgerr.New(svgerr.MalformedDocument, "more than one root element")
			}
			d.pending = &Node{Name: string(d.lex.Text())}

		case xml.AttributeToken:
			if d.inPI || d.pending == nil {
				continue
			}
			name := string(d.lex.Text())
			val := d.lex.AttrVal()
			if len(val) >= 2 && (val[0] == '"' || val[0] == '\'') && val[len(val)-1] == val[0] {
				val = val[1 : len(val)-1]
			}
			d.pending.Attrs = append(d.pending.Attrs, Attr{
				Name:  name,
				Value: html.UnescapeString(string(val)),
			})

		case xml.StartTagCloseToken, xml.StartTagCloseVoidToken:
			if d.inPI || d.pending == nil {
				continue
			}
			n := d.pending
			d.pending = nil
			sc := d.resolve(n)
			if len(d.stack) == 0 {
				d.root = n
			} else {
				parent := d.stack[len(d.stack)-1].node
				parent.Children = append(parent.Children, n)
			}
			if tt == xml.StartTagCloseToken {
				d.stack = append(d.stack, openElement{node: n, scope: sc})
			}

		case xml.EndTagToken:
			name := string(d.lex.Text())
			if len(d.stack) == 0 {
				return nil, svgerr.New(svgerr.MalformedDocument, "unexpected end tag </%s>", name)
			}
			top := d.stack[len(d.stack)-1].node
			if qname(top.Prefix, top.Name) != name {
				return nil, svgerr.New(svgerr.MalformedDocument, "end tag </%s> does not match <%s>", name, qname(top.Prefix, top.Name))
			}
			d.stack = d.stack[:len(d.stack)-1]

		case xml.TextToken:
			if len(d.stack) > 0 && len(bytes.TrimSpace(data)) > 0 {
				top := d.stack[len(d.stack)-1].node
				top.Text += html.UnescapeString(string(data))
			}
		case xml.CDATAToken:
			if len(d.stack) > 0 {
				top := d.stack[len(d.stack)-1].node
				top.Text += string(d.lex.Text())
			}

		case xml.CommentToken, xml.DOCTYPEToken:
			// discarded
		}
	}
}

// resolve applies the namespace declarations of n and resolves the
// namespaces of n and its attributes. It returns the scope for the
// children of n.
func (d *decoder) resolve(n *Node) scope {
	parent := defaultScope
	if len(d.stack) > 0 {
		parent = d.stack[len(d.stack)-1].scope
	}
	sc := parent
	copied := false
	for _, a := range n.Attrs {
		prefix, local := splitName(a.Name)
		var decl string
		switch {
		case prefix == "" && local == "xmlns":
			decl = ""
		case prefix == "xmlns":
			decl = local
		default:
			continue
		}
		if !copied {
			sc = maps.Clone(parent)
			copied = true
		}
		sc[decl] = a.Value
	}

	n.Prefix, n.Name = splitName(n.Name)
	n.Space = sc[n.Prefix]
	n.Kind = KindOf(n.Space, n.Name)

	for i := range n.Attrs {
		a := &n.Attrs[i]
		a.Prefix, a.Name = splitName(a.Name)
		switch {
		case a.Prefix == "":
			a.Space = ""
		default:
			a.Space = sc[a.Prefix]
			if a.Space == "" {
				// undeclared prefix, keep it distinct from unprefixed names
				a.Space = a.Prefix
			}
		}
	}
	return sc
}

func splitName(s string) (prefix, local string) {
	if i := strings.IndexByte(s, ':'); i >= 0 {
		return s[:i], s[i+1:]
	}
	return "", s
}

func qname(prefix, local string) string {
	if prefix == "" {
		return local
	}
	return prefix + ":" + local
}
