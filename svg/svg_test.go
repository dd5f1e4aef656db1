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
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seehuhn.de/go/picosvg/svgerr"
)

const sample = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE svg>
<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink"
     xmlns:inkscape="http://www.inkscape.org/namespaces/inkscape" viewBox="0 0 10 10">
  <!-- a comment -->
  <style><![CDATA[ .a { fill: red } ]]></style>
  <g id="g1" inkscape:label="layer">
    <rect width="10" height="10" title="a &amp; b"/>
    <use xlink:href="#g1" x="1"/>
  </g>
  <inkscape:thing/>
</svg>`

func TestParse(t *testing.T) {
	doc, err := ParseString(sample)
	require.NoError(t, err)

	root := doc.Root
	assert.Equal(t, KindSVG, root.Kind)
	require.Len(t, root.Children, 3)

	style := root.Children[0]
	assert.Equal(t, KindStyle, style.Kind)
	assert.Equal(t, " .a { fill: red } ", style.Text)

	g := root.Children[1]
	assert.Equal(t, KindGroup, g.Kind)
	assert.Equal(t, "g1", g.ID())
	assert.Equal(t, "http://www.inkscape.org/namespaces/inkscape", g.Attrs[1].Space)
	_, ok := g.Attr("label")
	assert.False(t, ok, "prefixed attributes are not found by local name")

	rect := g.Children[0]
	assert.Equal(t, KindRect, rect.Kind)
	assert.Equal(t, "a & b", rect.Get("title"))

	use := g.Children[1]
	assert.Equal(t, KindUse, use.Kind)
	assert.Equal(t, "#g1", use.Href())

	assert.Equal(t, KindForeign, root.Children[2].Kind)
}

func TestParseWithoutNamespace(t *testing.T) {
	doc, err := ParseString(`<svg><path d="M0,0"/></svg>`)
	require.NoError(t, err)
	assert.Equal(t, KindPath, doc.Root.Children[0].Kind)
}

func TestParseErrors(t *testing.T) {
	cases := []string{
		``,
		`<svg>`,
		`<svg></g>`,
		`<g/>`,
		`<svg/><svg/>`,
	}
	for _, in := range cases {
		_, err := ParseString(in)
		assert.True(t, svgerr.Is(err, svgerr.MalformedDocument), "input %q: %v", in, err)
	}
}

func TestRoundTrip(t *testing.T) {
	doc, err := ParseString(sample)
	require.NoError(t, err)
	out := doc.String()

	doc2, err := ParseString(out)
	require.NoError(t, err)
	if diff := cmp.Diff(doc.Root, doc2.Root); diff != "" {
		t.Errorf("round trip changed the tree (-want +got):\n%s", diff)
	}
	assert.True(t, strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg"`))
	assert.Contains(t, out, `title="a &amp; b"`)
}

func TestWriteEscaping(t *testing.T) {
	n := NewNode("svg", Attr{Name: "data", Value: `say "hi" & <bye>`})
	n.Children = append(n.Children, NewNode("path", Attr{Name: "d", Value: "M0,0 L1,1"}))
	doc := &Document{Root: n}
	want := "<svg data='say \"hi\" &amp; &lt;bye>'>\n  <path d=\"M0,0 L1,1\"/>\n</svg>\n"
	assert.Equal(t, want, doc.String())
}

func TestAttrHelpers(t *testing.T) {
	n := NewNode("rect", Attr{Name: "x", Value: "1"})
	n.Set("y", "2")
	n.Set("x", "3")
	assert.Equal(t, []Attr{{Name: "x", Value: "3"}, {Name: "y", Value: "2"}}, n.Attrs)
	n.Del("x")
	assert.False(t, n.Has("x"))

	n.Attrs = append(n.Attrs, Attr{Prefix: "xlink", Name: "href", Space: NamespaceXLink, Value: "#b"})
	assert.Equal(t, "#b", n.Href())
	n.Set("href", "#a")
	assert.Equal(t, "#a", n.Href())
	n.DelHref()
	assert.Equal(t, "", n.Href())

	n.Set("class", " a  b ")
	assert.Equal(t, []string{"a", "b"}, n.Classes())
}

func TestCloneIsDeep(t *testing.T) {
	doc, err := ParseString(sample)
	require.NoError(t, err)
	c := doc.Root.Clone()
	c.Children[1].Set("id", "other")
	c.Children[1].Children[0].Set("width", "5")
	assert.Equal(t, "g1", doc.Root.Children[1].ID())
	assert.Equal(t, "10", doc.Root.Children[1].Children[0].Get("width"))
}

func TestIndexAndRefs(t *testing.T) {
	doc, err := ParseString(sample)
	require.NoError(t, err)
	idx := BuildIndex(doc.Root)

	n, id, local := idx.Lookup("url(#g1)")
	assert.True(t, local)
	assert.Equal(t, "g1", id)
	assert.Same(t, doc.Root.Children[1], n)

	n, _, local = idx.Lookup(`url("#missing")`)
	assert.True(t, local)
	assert.Nil(t, n)

	_, _, local = idx.Lookup("other.svg#g1")
	assert.False(t, local)

	used := map[string]bool{"a": true, "a_1": true}
	assert.Equal(t, "a_2", UniqueID("a", used))
	assert.Equal(t, "b", UniqueID("b", used))
	assert.True(t, used["a_2"])
}

func TestLocate(t *testing.T) {
	doc, err := ParseString(`<svg><g><path/></g><g><path/><path/></g></svg>`)
	require.NoError(t, err)
	target := doc.Root.Children[1].Children[1]
	assert.Equal(t, "/svg[0]/g[1]/path[1]", Locate(doc.Root, target))

	target.Set("id", "p")
	assert.Equal(t, "p", Locate(doc.Root, target))

	loc := NewLocator(doc.Root)
	loc.Child("g")
	g1 := loc.Child("g")
	g1.Child("path")
	assert.Equal(t, "/svg[0]/g[1]/path[1]", g1.Child("path").Path())
}
