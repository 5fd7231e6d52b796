// Package htmldoc is a small navigable view over an HTML document: element lookup by
// tag and attribute, detaching and discarding elements, text extraction and
// order-preserving serialization of child nodes. It is backed by goquery.
package htmldoc

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Document is a parsed HTML tree.
type Document struct {
	doc *goquery.Document
}

// Parse builds a Document from HTML source. Fragments are wrapped in the usual
// html/head/body scaffolding by the HTML5 parsing algorithm.
func Parse(src []byte) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return &Document{doc: doc}, nil
}

// Query selects elements by tag name and attribute values. The class attribute
// matches when the value is one of the element's classes; other attributes must
// match exactly.
type Query struct {
	Tag   string
	Attrs map[string]string
}

func (q Query) selector() string {
	var sb strings.Builder
	tag := strings.TrimSpace(q.Tag)
	if tag == "" {
		tag = "*"
	}
	sb.WriteString(tag)

	keys := make([]string, 0, len(q.Attrs))
	for k := range q.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		op := "="
		if k == "class" {
			op = "~="
		}
		fmt.Fprintf(&sb, "[%s%s%q]", k, op, q.Attrs[k])
	}
	return sb.String()
}

// FindAll returns every element matching q in document order.
func (d *Document) FindAll(q Query) []*Element {
	var out []*Element
	d.doc.Find(q.selector()).Each(func(_ int, s *goquery.Selection) {
		out = append(out, &Element{sel: s})
	})
	return out
}

// Find returns the first element matching q.
func (d *Document) Find(q Query) (*Element, bool) {
	s := d.doc.Find(q.selector()).First()
	if s.Length() == 0 {
		return nil, false
	}
	return &Element{sel: s}, true
}

// Body returns the <body> element.
func (d *Document) Body() *Element {
	return &Element{sel: d.doc.Find("body").First()}
}

// Element is a single node in the tree: an element, or a text/comment node when
// obtained through Contents.
type Element struct {
	sel *goquery.Selection
}

// Text returns the combined text of the node and its descendants.
func (e *Element) Text() string {
	return e.sel.Text()
}

// IsText reports whether the node is a text node.
func (e *Element) IsText() bool {
	n := e.sel.Get(0)
	return n != nil && n.Type == html.TextNode
}

// Extract detaches the element from its parent and returns it. The detached
// element keeps its children and can still be read.
func (e *Element) Extract() *Element {
	return &Element{sel: e.sel.Remove()}
}

// Decompose detaches the element and discards its children.
func (e *Element) Decompose() {
	e.sel.Remove().Empty()
}

// Contents returns the direct child nodes, text nodes included, in order.
func (e *Element) Contents() []*Element {
	var out []*Element
	e.sel.Contents().Each(func(_ int, s *goquery.Selection) {
		out = append(out, &Element{sel: s})
	})
	return out
}

// Render serializes the node, including its own tag, back to HTML.
func (e *Element) Render() (string, error) {
	if e.sel.Length() == 0 {
		return "", nil
	}
	return goquery.OuterHtml(e.sel)
}

// InnerHTML concatenates the rendered form of each child node, in order, with no
// separators.
func (e *Element) InnerHTML() (string, error) {
	var sb strings.Builder
	for _, child := range e.Contents() {
		s, err := child.Render()
		if err != nil {
			return "", fmt.Errorf("render node: %w", err)
		}
		sb.WriteString(s)
	}
	return sb.String(), nil
}
