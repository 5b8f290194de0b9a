// Package htmldoc adapts an HTML tree to the findtext fragment model: text
// nodes are fragments and highlights are <mark> elements spliced into the
// tree.
package htmldoc

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/kk-code-lab/hilite/internal/findtext"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/unicode/norm"
)

const (
	DefaultTag            = "mark"
	DefaultHighlightColor = "#FFFF55"
	DefaultActiveColor    = "#FF9633"
)

// ErrNoRoot is returned when the configured root does not exist.
var ErrNoRoot = errors.New("target root not found")

var skippedKinds = map[string]struct{}{
	"script":   {},
	"style":    {},
	"noscript": {},
	"template": {},
	"form":     {},
	"textarea": {},
	"select":   {},
	"input":    {},
	"button":   {},
}

// Colors are CSS colors written into the style of highlighted units.
type Colors struct {
	Highlight string
	Active    string
}

// Options configure a Document.
type Options struct {
	// Root selects the subtree to search: "#id", a tag name, or "" for <body>.
	Root string
	// Tag is the element used for highlighted units.
	Tag string
	// Skip reports whether text inside an element of the given kind is
	// excluded. Nil uses DefaultSkip(Tag).
	Skip func(kind string) bool
	// Normalize rewrites every text node to NFC when the document is loaded.
	Normalize bool
	Colors    Colors
	// OnScroll is called with the element a highlight asked to be centered on.
	OnScroll func(n *html.Node)
}

// DefaultSkip excludes the highlight tag itself, scripts and form controls.
func DefaultSkip(tag string) func(kind string) bool {
	tag = strings.ToLower(tag)
	return func(kind string) bool {
		kind = strings.ToLower(kind)
		if kind == tag {
			return true
		}
		_, ok := skippedKinds[kind]
		return ok
	}
}

// Document is an HTML tree searched through findtext.
type Document struct {
	doc      *html.Node
	root     *html.Node
	tag      string
	tagAtom  atom.Atom
	skip     func(kind string) bool
	colors   Colors
	onScroll func(n *html.Node)
	scrolled *html.Node
}

var _ findtext.Document = (*Document)(nil)

// Parse reads HTML from r.
func Parse(r io.Reader, opts Options) (*Document, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return New(doc, opts)
}

// ParseString parses an HTML string.
func ParseString(s string, opts Options) (*Document, error) {
	return Parse(strings.NewReader(s), opts)
}

// New wraps an already parsed tree.
func New(doc *html.Node, opts Options) (*Document, error) {
	if doc == nil {
		return nil, ErrNoRoot
	}
	tag := strings.ToLower(strings.TrimSpace(opts.Tag))
	if tag == "" {
		tag = DefaultTag
	}
	skip := opts.Skip
	if skip == nil {
		skip = DefaultSkip(tag)
	}
	colors := opts.Colors
	if colors.Highlight == "" {
		colors.Highlight = DefaultHighlightColor
	}
	if colors.Active == "" {
		colors.Active = DefaultActiveColor
	}

	root, err := selectRoot(doc, opts.Root)
	if err != nil {
		return nil, err
	}
	if opts.Normalize {
		normalizeText(root)
	}

	return &Document{
		doc:      doc,
		root:     root,
		tag:      tag,
		tagAtom:  atom.Lookup([]byte(tag)),
		skip:     skip,
		colors:   colors,
		onScroll: opts.OnScroll,
	}, nil
}

func selectRoot(doc *html.Node, selector string) (*html.Node, error) {
	selector = strings.TrimSpace(selector)
	var match func(n *html.Node) bool
	switch {
	case selector == "":
		match = func(n *html.Node) bool { return n.Data == "body" }
	case strings.HasPrefix(selector, "#"):
		id := selector[1:]
		match = func(n *html.Node) bool { return attr(n, "id") == id }
	default:
		name := strings.ToLower(selector)
		match = func(n *html.Node) bool { return n.Data == name }
	}

	if found := findElement(doc, match); found != nil {
		return found, nil
	}
	if selector == "" {
		return doc, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNoRoot, selector)
}

func findElement(n *html.Node, match func(*html.Node) bool) *html.Node {
	if n.Type == html.ElementNode && match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, match); found != nil {
			return found
		}
	}
	return nil
}

func normalizeText(n *html.Node) {
	if n.Type == html.TextNode {
		n.Data = norm.NFC.String(n.Data)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		normalizeText(c)
	}
}

// Root returns the searched subtree.
func (d *Document) Root() *html.Node {
	if d == nil {
		return nil
	}
	return d.root
}

// Tag returns the highlight element name.
func (d *Document) Tag() string { return d.tag }

// Fragments returns the text nodes under the root in document order,
// skipping subtrees whose element kind is excluded.
func (d *Document) Fragments() []findtext.Fragment {
	if d == nil || d.root == nil || d.skippable(d.root) {
		return nil
	}
	var out []findtext.Fragment
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch c.Type {
			case html.TextNode:
				out = append(out, &textFragment{doc: d, node: c})
			case html.ElementNode:
				if !d.skippable(c) {
					walk(c)
				}
			}
		}
	}
	walk(d.root)
	return out
}

func (d *Document) skippable(n *html.Node) bool {
	return n.Type == html.ElementNode && d.skip(n.Data)
}

// FirstHighlight returns the first highlight element under the root.
func (d *Document) FirstHighlight() (findtext.Unit, bool) {
	if d == nil || d.root == nil {
		return nil, false
	}
	n := findElement(d.root, d.isHighlight)
	if n == nil || n == d.root {
		return nil, false
	}
	return &unit{doc: d, node: n}, true
}

func (d *Document) isHighlight(n *html.Node) bool {
	return n.Type == html.ElementNode && n.Data == d.tag
}

// TextContent returns the concatenated text of every text node under the root.
func (d *Document) TextContent() string {
	if d == nil || d.root == nil {
		return ""
	}
	return textContent(d.root)
}

// ScrollTarget returns the element most recently scrolled into view.
func (d *Document) ScrollTarget() *html.Node { return d.scrolled }

// Render writes the whole document, highlights included.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.doc)
}

// Highlights returns the highlight elements under the root in document order.
func (d *Document) Highlights() []*html.Node {
	var out []*html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if d.isHighlight(c) {
				out = append(out, c)
				continue
			}
			walk(c)
		}
	}
	if d.root != nil {
		walk(d.root)
	}
	return out
}

// IsActive reports whether a highlight element carries the active state.
func IsActive(n *html.Node) bool {
	return attr(n, activeAttr) == "true"
}

func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				b.WriteString(c.Data)
				continue
			}
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Namespace == "" && n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func removeAttr(n *html.Node, key string) {
	kept := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			continue
		}
		kept = append(kept, a)
	}
	n.Attr = kept
}
