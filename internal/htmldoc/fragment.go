package htmldoc

import (
	"unicode/utf8"

	"github.com/kk-code-lab/hilite/internal/findtext"
	"golang.org/x/net/html"
)

const activeAttr = "data-active"

type textFragment struct {
	doc  *Document
	node *html.Node
}

func (f *textFragment) Text() string { return f.node.Data }

// Split keeps the left half in the original node and inserts the right half
// as its next sibling.
func (f *textFragment) Split(offset int) (findtext.Fragment, findtext.Fragment) {
	cut := byteOffset(f.node.Data, offset)
	right := &html.Node{Type: html.TextNode, Data: f.node.Data[cut:]}
	f.node.Data = f.node.Data[:cut]
	if parent := f.node.Parent; parent != nil {
		parent.InsertBefore(right, f.node.NextSibling)
	}
	return f, &textFragment{doc: f.doc, node: right}
}

// Wrap moves the text node into a new highlight element at the same position.
func (f *textFragment) Wrap() findtext.Unit {
	mark := &html.Node{
		Type:     html.ElementNode,
		Data:     f.doc.tag,
		DataAtom: f.doc.tagAtom,
	}
	u := &unit{doc: f.doc, node: mark}
	u.SetActive(false)
	if parent := f.node.Parent; parent != nil {
		parent.InsertBefore(mark, f.node)
		parent.RemoveChild(f.node)
	}
	mark.AppendChild(f.node)
	return u
}

// byteOffset returns the byte index of the rune at offset, clamped to s. An
// invalid byte counts as one rune, as in utf8.RuneCountInString, so slicing
// at the result keeps the original bytes.
func byteOffset(s string, offset int) int {
	i := 0
	for n := 0; n < offset && i < len(s); n++ {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return i
}

type unit struct {
	doc  *Document
	node *html.Node
}

func (u *unit) Text() string { return textContent(u.node) }

func (u *unit) Attached() bool { return u.node.Parent != nil }

// Unwrap replaces the element by a text node with its content and merges
// the parent's adjacent text nodes.
func (u *unit) Unwrap() {
	parent := u.node.Parent
	if parent == nil {
		return
	}
	if text := textContent(u.node); text != "" {
		parent.InsertBefore(&html.Node{Type: html.TextNode, Data: text}, u.node)
	}
	parent.RemoveChild(u.node)
	mergeText(parent)
}

func (u *unit) SetActive(active bool) {
	color := u.doc.colors.Highlight
	if active {
		color = u.doc.colors.Active
		setAttr(u.node, activeAttr, "true")
	} else {
		removeAttr(u.node, activeAttr)
	}
	setAttr(u.node, "style", "background: "+color)
}

func (u *unit) ScrollIntoView() {
	u.doc.scrolled = u.node
	if u.doc.onScroll != nil {
		u.doc.onScroll(u.node)
	}
}

// mergeText joins adjacent text children and drops empty ones.
func mergeText(parent *html.Node) {
	for c := parent.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type != html.TextNode {
			c = next
			continue
		}
		if c.Data == "" {
			parent.RemoveChild(c)
			c = next
			continue
		}
		for next != nil && next.Type == html.TextNode {
			c.Data += next.Data
			after := next.NextSibling
			parent.RemoveChild(next)
			next = after
		}
		c = next
	}
}
