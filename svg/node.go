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

// Package svg holds the generic element tree of an SVG document, together
// with an XML decoder and encoder which preserve document order, attribute
// order and attribute values.
package svg

import (
	"slices"
	"strings"
)

// Namespace URIs known to the decoder.
const (
	NamespaceSVG   = "http://www.w3.org/2000/svg"
	NamespaceXLink = "http://www.w3.org/1999/xlink"
	NamespaceXML   = "http://www.w3.org/XML/1998/namespace"
	NamespaceXMLNS = "http://www.w3.org/2000/xmlns/"
)

// Kind classifies an element.
type Kind int

// These are the element kinds distinguished by the reduction pipeline.
const (
	KindUnknown Kind = iota // an SVG element without special meaning
	KindSVG
	KindGroup
	KindAnchor
	KindSwitch
	KindPath
	KindRect
	KindCircle
	KindEllipse
	KindLine
	KindPolygon
	KindPolyline
	KindLinearGradient
	KindRadialGradient
	KindStop
	KindDefs
	KindUse
	KindClipPath
	KindSymbol
	KindStyle
	KindMetadata
	KindMask
	KindFilter
	KindPattern
	KindMarker
	KindText
	KindImage
	KindForeignObject
	KindForeign // an element outside the SVG namespace
)

var kindNames = map[string]Kind{
	"svg":            KindSVG,
	"g":              KindGroup,
	"a":              KindAnchor,
	"switch":         KindSwitch,
	"path":           KindPath,
	"rect":           KindRect,
	"circle":         KindCircle,
	"ellipse":        KindEllipse,
	"line":           KindLine,
	"polygon":        KindPolygon,
	"polyline":       KindPolyline,
	"linearGradient": KindLinearGradient,
	"radialGradient": KindRadialGradient,
	"stop":           KindStop,
	"defs":           KindDefs,
	"use":            KindUse,
	"clipPath":       KindClipPath,
	"symbol":         KindSymbol,
	"style":          KindStyle,
	"title":          KindMetadata,
	"desc":           KindMetadata,
	"metadata":       KindMetadata,
	"mask":           KindMask,
	"filter":         KindFilter,
	"pattern":        KindPattern,
	"marker":         KindMarker,
	"text":           KindText,
	"tspan":          KindText,
	"textPath":       KindText,
	"image":          KindImage,
	"foreignObject":  KindForeignObject,
}

// KindOf returns the kind of the element with the given namespace and
// local name.
func KindOf(space, name string) Kind {
	if space != NamespaceSVG {
		return KindForeign
	}
	if k, ok := kindNames[name]; ok {
		return k
	}
	return KindUnknown
}

// IsShape reports whether elements of kind k describe geometry directly.
func (k Kind) IsShape() bool {
	switch k {
	case KindPath, KindRect, KindCircle, KindEllipse, KindLine, KindPolygon, KindPolyline:
		return true
	}
	return false
}

// IsGradient reports whether k is one of the gradient kinds.
func (k Kind) IsGradient() bool {
	return k == KindLinearGradient || k == KindRadialGradient
}

// Attr is an attribute of an element. Prefix is the namespace prefix as
// written in the document, Space the namespace it resolves to. Attributes
// without a prefix have an empty Space.
type Attr struct {
	Prefix string
	Name   string
	Space  string
	Value  string
}

// QName returns the attribute name as written in the document.
func (a Attr) QName() string {
	if a.Prefix == "" {
		return a.Name
	}
	return a.Prefix + ":" + a.Name
}

// Node is an element of an SVG document. Children are owned by their
// parent.
type Node struct {
	Kind     Kind
	Prefix   string // namespace prefix as written
	Name     string // local name
	Space    string // namespace URI
	Attrs    []Attr
	Children []*Node

	// Text holds the character data of the element, for example the
	// contents of a <style> element.
	Text string
}

// NewNode returns an empty SVG element with the given local name.
func NewNode(name string, attrs ...Attr) *Node {
	return &Node{
		Kind:  KindOf(NamespaceSVG, name),
		Name:  name,
		Space: NamespaceSVG,
		Attrs: attrs,
	}
}

// Attr returns the value of the unprefixed attribute name.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Space == "" && a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Get returns the value of the unprefixed attribute name, or the empty
// string if it is not set.
func (n *Node) Get(name string) string {
	v, _ := n.Attr(name)
	return v
}

// Has reports whether the unprefixed attribute name is set.
func (n *Node) Has(name string) bool {
	_, ok := n.Attr(name)
	return ok
}

// Set sets the unprefixed attribute name. An existing attribute keeps its
// position, a new one is appended.
func (n *Node) Set(name, value string) {
	for i, a := range n.Attrs {
		if a.Space == "" && a.Name == name {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})
}

// Del removes the unprefixed attribute name.
func (n *Node) Del(name string) {
	n.Attrs = slices.DeleteFunc(n.Attrs, func(a Attr) bool {
		return a.Space == "" && a.Name == name
	})
}

// ID returns the id attribute.
func (n *Node) ID() string {
	return n.Get("id")
}

// Href returns the target of an href or xlink:href attribute. The plain
// attribute takes precedence.
func (n *Node) Href() string {
	var xlink string
	for _, a := range n.Attrs {
		if a.Name != "href" {
			continue
		}
		switch a.Space {
		case "":
			return a.Value
		case NamespaceXLink:
			xlink = a.Value
		}
	}
	return xlink
}

// DelHref removes both href and xlink:href.
func (n *Node) DelHref() {
	n.Attrs = slices.DeleteFunc(n.Attrs, func(a Attr) bool {
		return a.Name == "href" && (a.Space == "" || a.Space == NamespaceXLink)
	})
}

// Classes returns the entries of the class attribute.
func (n *Node) Classes() []string {
	return strings.Fields(n.Get("class"))
}

// Clone returns a deep copy of n.
func (n *Node) Clone() *Node {
	res := *n
	res.Attrs = slices.Clone(n.Attrs)
	res.Children = make([]*Node, len(n.Children))
	for i, c := range n.Children {
		res.Children[i] = c.Clone()
	}
	return &res
}

// Walk calls fn for n and all its descendants in document order. If fn
// returns false, the children of that node are skipped.
func Walk(n *Node, fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		Walk(c, fn)
	}
}

// RemoveChildren removes all descendants of n for which drop returns true.
func RemoveChildren(n *Node, drop func(*Node) bool) {
	n.Children = slices.DeleteFunc(n.Children, drop)
	for _, c := range n.Children {
		RemoveChildren(c, drop)
	}
}
