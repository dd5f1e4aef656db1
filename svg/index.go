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
	"strconv"
	"strings"
)

// Index maps element ids to elements.
type Index map[string]*Node

// BuildIndex returns the ids of all elements below and including root.
// If an id occurs more than once, the first element in document order
// wins.
func BuildIndex(root *Node) Index {
	idx := Index{}
	Walk(root, func(n *Node) bool {
		if id := n.ID(); id != "" {
			if _, seen := idx[id]; !seen {
				idx[id] = n
			}
		}
		return true
	})
	return idx
}

// Lookup resolves a local IRI reference of the form "#id" or "url(#id)".
// The second return value is false for references which are not local.
func (idx Index) Lookup(ref string) (node *Node, id string, local bool) {
	id, local = RefID(ref)
	if !local {
		return nil, id, false
	}
	return idx[id], id, true
}

// RefID extracts the id from a local reference "#id" or "url(#id)",
// allowing quotes inside url(). The second return value is false if ref
// does not refer to an element of the same document.
func RefID(ref string) (string, bool) {
	ref = strings.TrimSpace(ref)
	if strings.HasPrefix(ref, "url(") {
		end := strings.IndexByte(ref, ')')
		if end < 0 {
			return "", false
		}
		ref = strings.Trim(strings.TrimSpace(ref[4:end]), `"'`)
	}
	if !strings.HasPrefix(ref, "#") || len(ref) == 1 {
		return ref, false
	}
	return ref[1:], true
}

// UniqueID returns base if it is not in use, and otherwise the first
// of "base_1", "base_2", ... which is free. The returned id is added to
// used.
func UniqueID(base string, used map[string]bool) string {
	id := base
	for i := 1; used[id]; i++ {
		id = base + "_" + strconv.Itoa(i)
	}
	used[id] = true
	return id
}

// Locate returns a description of n for error messages: its id if it has
// one, and otherwise its structural position below root, for example
// "/svg[0]/g[1]/path[0]". Indices count preceding siblings with the same
// name.
func Locate(root, n *Node) string {
	if id := n.ID(); id != "" {
		return id
	}
	if p, ok := structuralPath(root, n, "/"+root.Name+"[0]"); ok {
		return p
	}
	return "<" + n.Name + ">"
}

func structuralPath(cur, target *Node, prefix string) (string, bool) {
	if cur == target {
		return prefix, true
	}
	counts := map[string]int{}
	for _, c := range cur.Children {
		i := counts[c.Name]
		counts[c.Name]++
		p := prefix + "/" + c.Name + "[" + strconv.Itoa(i) + "]"
		if res, ok := structuralPath(c, target, p); ok {
			return res, true
		}
	}
	return "", false
}

// Locator assigns structural paths to nodes while walking a tree, without
// searching the whole tree for every node.
type Locator struct {
	path   string
	counts map[string]int
}

// NewLocator returns the locator of the root element.
func NewLocator(root *Node) *Locator {
	return &Locator{path: "/" + root.Name + "[0]"}
}

// Child returns the locator of the next child with the given name.
func (l *Locator) Child(name string) *Locator {
	if l.counts == nil {
		l.counts = map[string]int{}
	}
	i := l.counts[name]
	l.counts[name]++
	return &Locator{path: l.path + "/" + name + "[" + strconv.Itoa(i) + "]"}
}

// For returns the id of n if it has one, and the structural path
// otherwise.
func (l *Locator) For(n *Node) string {
	if id := n.ID(); id != "" {
		return id
	}
	return l.path
}

// Path returns the structural path.
func (l *Locator) Path() string {
	return l.path
}
