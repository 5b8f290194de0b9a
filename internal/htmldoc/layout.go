package htmldoc

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// PieceState says how a piece of laid out text is painted.
type PieceState int

const (
	PiecePlain PieceState = iota
	PieceMatch
	PieceActive
)

// Piece is a run of text on one line with a single paint state. Mark is the
// highlight element the text belongs to, if any.
type Piece struct {
	Text  string
	State PieceState
	Mark  *html.Node
}

// Line is one row of laid out document text.
type Line []Piece

// Text returns the plain text of the line.
func (l Line) Text() string {
	var b strings.Builder
	for _, p := range l {
		b.WriteString(p.Text)
	}
	return b.String()
}

var hiddenKinds = map[string]struct{}{
	"head":     {},
	"script":   {},
	"style":    {},
	"noscript": {},
	"template": {},
}

var blockKinds = map[string]struct{}{
	"address": {}, "article": {}, "aside": {}, "blockquote": {}, "dd": {}, "div": {},
	"dl": {}, "dt": {}, "fieldset": {}, "figcaption": {}, "figure": {}, "footer": {},
	"form": {}, "h1": {}, "h2": {}, "h3": {}, "h4": {}, "h5": {}, "h6": {}, "header": {},
	"hr": {}, "li": {}, "main": {}, "nav": {}, "ol": {}, "p": {}, "pre": {}, "section": {},
	"table": {}, "tr": {}, "ul": {},
}

var spacedKinds = map[string]struct{}{
	"blockquote": {}, "h1": {}, "h2": {}, "h3": {}, "h4": {}, "h5": {}, "h6": {},
	"ol": {}, "p": {}, "pre": {}, "table": {}, "ul": {},
}

// Lines lays out the text under the root as terminal rows. Block elements
// start new lines, whitespace collapses outside <pre>, and text inside
// highlight elements carries their paint state.
func (d *Document) Lines() []Line {
	if d == nil || d.root == nil {
		return nil
	}
	b := &lineBuilder{}
	d.layout(b, d.root, PiecePlain, nil)
	b.breakLine()
	for len(b.lines) > 0 && len(b.lines[len(b.lines)-1]) == 0 {
		b.lines = b.lines[:len(b.lines)-1]
	}
	return b.lines
}

// LineOf returns the index of the first line holding text of mark, or -1.
func LineOf(lines []Line, mark *html.Node) int {
	if mark == nil {
		return -1
	}
	for i, line := range lines {
		for _, p := range line {
			if p.Mark == mark {
				return i
			}
		}
	}
	return -1
}

func (d *Document) layout(b *lineBuilder, n *html.Node, state PieceState, mark *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			b.text(c.Data, state, mark)
		case html.ElementNode:
			if _, hidden := hiddenKinds[c.Data]; hidden {
				continue
			}
			if c.Data == "br" {
				b.forceLine()
				continue
			}
			childState, childMark := state, mark
			if d.isHighlight(c) {
				childMark = c
				childState = PieceMatch
				if IsActive(c) {
					childState = PieceActive
				}
			}
			_, block := blockKinds[c.Data]
			if block {
				b.breakLine()
			}
			if c.Data == "pre" {
				b.pre++
			}
			d.layout(b, c, childState, childMark)
			if c.Data == "pre" {
				b.pre--
			}
			if block {
				b.breakLine()
				if _, spaced := spacedKinds[c.Data]; spaced {
					b.blankLine()
				}
			}
		}
	}
}

type lineBuilder struct {
	lines   []Line
	current Line
	pending bool
	pre     int
}

func (b *lineBuilder) text(s string, state PieceState, mark *html.Node) {
	if b.pre > 0 {
		parts := strings.Split(s, "\n")
		for i, part := range parts {
			if i > 0 {
				b.forceLine()
			}
			b.add(part, state, mark)
		}
		return
	}

	var run strings.Builder
	for _, r := range s {
		if unicode.IsSpace(r) {
			if len(b.current) > 0 || run.Len() > 0 {
				b.pending = true
			}
			continue
		}
		if b.pending {
			b.pending = false
			if run.Len() == 0 && len(b.current) > 0 {
				// A space between two different highlights stays unpainted.
				if last := b.current[len(b.current)-1]; last.Mark == mark {
					b.add(" ", state, mark)
				} else {
					b.add(" ", PiecePlain, nil)
				}
			} else {
				run.WriteByte(' ')
			}
		}
		run.WriteRune(r)
	}
	b.add(run.String(), state, mark)
}

func (b *lineBuilder) add(s string, state PieceState, mark *html.Node) {
	if s == "" {
		return
	}
	if n := len(b.current); n > 0 && b.current[n-1].State == state && b.current[n-1].Mark == mark {
		b.current[n-1].Text += s
		return
	}
	b.current = append(b.current, Piece{Text: s, State: state, Mark: mark})
}

// breakLine ends the current line if it has content.
func (b *lineBuilder) breakLine() {
	b.pending = false
	if len(b.current) == 0 {
		return
	}
	b.lines = append(b.lines, b.current)
	b.current = nil
}

// forceLine ends the current line even when it is empty.
func (b *lineBuilder) forceLine() {
	b.pending = false
	b.lines = append(b.lines, b.current)
	b.current = nil
}

func (b *lineBuilder) blankLine() {
	if len(b.lines) == 0 || len(b.lines[len(b.lines)-1]) == 0 {
		return
	}
	b.lines = append(b.lines, nil)
}
