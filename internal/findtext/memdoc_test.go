package findtext

import (
	"strings"
	"unicode/utf8"
)

// memDoc is an in-memory fragment arena. Nodes with the same parent merge
// back together on unwrap, like sibling text nodes of one element.
type memDoc struct {
	nodes    []*memNode
	scrolled []*memNode
}

type memNode struct {
	doc    *memDoc
	parent int
	text   string
	marked bool
	active bool
}

// newMemDoc builds one node per part; each part gets its own parent so
// parts never merge with each other.
func newMemDoc(parts ...string) *memDoc {
	d := &memDoc{}
	for i, part := range parts {
		d.nodes = append(d.nodes, &memNode{doc: d, parent: i, text: part})
	}
	return d
}

func (d *memDoc) Fragments() []Fragment {
	var out []Fragment
	for _, n := range d.nodes {
		if !n.marked {
			out = append(out, n)
		}
	}
	return out
}

func (d *memDoc) FirstHighlight() (Unit, bool) {
	for _, n := range d.nodes {
		if n.marked {
			return n, true
		}
	}
	return nil, false
}

func (d *memDoc) text() string {
	var b strings.Builder
	for _, n := range d.nodes {
		b.WriteString(n.text)
	}
	return b.String()
}

func (d *memDoc) texts() []string {
	out := make([]string, 0, len(d.nodes))
	for _, n := range d.nodes {
		out = append(out, n.text)
	}
	return out
}

func (d *memDoc) marks() []*memNode {
	var out []*memNode
	for _, n := range d.nodes {
		if n.marked {
			out = append(out, n)
		}
	}
	return out
}

func (d *memDoc) indexOf(n *memNode) int {
	for i, cur := range d.nodes {
		if cur == n {
			return i
		}
	}
	return -1
}

func (d *memDoc) normalize() {
	merged := d.nodes[:0]
	for _, n := range d.nodes {
		if !n.marked && n.text == "" {
			continue
		}
		if len(merged) > 0 {
			prev := merged[len(merged)-1]
			if !prev.marked && !n.marked && prev.parent == n.parent {
				prev.text += n.text
				continue
			}
		}
		merged = append(merged, n)
	}
	d.nodes = merged
}

func (n *memNode) Text() string { return n.text }

func (n *memNode) Split(offset int) (Fragment, Fragment) {
	cut := 0
	for i := 0; i < offset && cut < len(n.text); i++ {
		_, size := utf8.DecodeRuneInString(n.text[cut:])
		cut += size
	}
	right := &memNode{doc: n.doc, parent: n.parent, text: n.text[cut:]}
	n.text = n.text[:cut]
	idx := n.doc.indexOf(n)
	nodes := append([]*memNode{}, n.doc.nodes[:idx+1]...)
	nodes = append(nodes, right)
	n.doc.nodes = append(nodes, n.doc.nodes[idx+1:]...)
	return n, right
}

func (n *memNode) Wrap() Unit {
	n.marked = true
	return n
}

// Attached is false once the node is unwrapped back into plain text.
func (n *memNode) Attached() bool { return n.marked && n.doc.indexOf(n) >= 0 }

func (n *memNode) Unwrap() {
	n.marked = false
	n.active = false
	n.doc.normalize()
}

func (n *memNode) SetActive(active bool) { n.active = active }

func (n *memNode) ScrollIntoView() { n.doc.scrolled = append(n.doc.scrolled, n) }
