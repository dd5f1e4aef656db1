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
	"bufio"
	"bytes"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2/xml"
)

// WriteTo writes the document as XML. Elements without children or text
// are written as empty-element tags. Children are indented by two spaces
// per level.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: bufio.NewWriter(w)}
	e := &encoder{w: cw}
	e.node(d.Root, 0)
	e.writeString("\n")
	if e.err == nil {
		e.err = cw.w.Flush()
	}
	return cw.n, e.err
}

// Bytes returns the serialized document.
func (d *Document) Bytes() []byte {
	var buf bytes.Buffer
	d.WriteTo(&buf)
	return buf.Bytes()
}

// String returns the serialized document.
func (d *Document) String() string {
	return string(d.Bytes())
}

// Clone returns a deep copy of d.
func (d *Document) Clone() *Document {
	return &Document{Root: d.Root.Clone()}
}

type countingWriter struct {
	w *bufio.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}

type encoder struct {
	w   io.Writer
	buf []byte
	err error
}

func (e *encoder) writeString(s string) {
	if e.err != nil {
		return
	}
	_, e.err = io.WriteString(e.w, s)
}

func (e *encoder) write(b []byte) {
	if e.err != nil {
		return
	}
	_, e.err = e.w.Write(b)
}

func (e *encoder) node(n *Node, depth int) {
	indent := strings.Repeat("  ", depth)
	name := qname(n.Prefix, n.Name)

	e.writeString(indent + "<" + name)
	for _, a := range n.Attrs {
		e.writeString(" " + a.QName() + "=")
		// EscapeAttrVal quotes the value and escapes quote characters only
		e.write(xml.EscapeAttrVal(&e.buf, []byte(attrEscaper.Replace(a.Value))))
	}
	if len(n.Children) == 0 && n.Text == "" {
		e.writeString("/>")
		return
	}
	e.writeString(">")
	if n.Text != "" {
		e.writeString(escapeText(n.Text))
	}
	for _, c := range n.Children {
		e.writeString("\n")
		e.node(c, depth+1)
	}
	if len(n.Children) > 0 {
		e.writeString("\n" + indent)
	}
	e.writeString("</" + name + ">")
}

var attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", "\n", "&#10;", "\t", "&#9;")

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escapeText(s string) string {
	return textEscaper.Replace(s)
}
