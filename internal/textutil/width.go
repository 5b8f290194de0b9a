// Package textutil measures and cleans text for terminal output.
package textutil

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

const DefaultTabWidth = 4

// DisplayWidth reports the terminal columns text occupies, counting each
// grapheme cluster once.
func DisplayWidth(text string) int {
	width := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		width += ClusterWidth(g.Str())
	}
	return width
}

// ClusterWidth is the width of a single grapheme cluster. Emoji sequences
// count as two columns and zero-width clusters as one so the cursor always
// advances.
func ClusterWidth(cluster string) int {
	w := uniseg.StringWidth(cluster)
	if w <= 0 {
		w = runewidth.StringWidth(cluster)
	}
	if w <= 0 {
		w = 1
	}
	return w
}

// Truncate cuts text to at most width columns, appending ellipsis when
// something was dropped. Clusters are never split.
func Truncate(text string, width int, ellipsis string) string {
	if width <= 0 {
		return ""
	}
	if DisplayWidth(text) <= width {
		return text
	}
	room := width - DisplayWidth(ellipsis)
	if room < 0 {
		return runewidth.Truncate(ellipsis, width, "")
	}
	var b strings.Builder
	used := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		w := ClusterWidth(g.Str())
		if used+w > room {
			break
		}
		b.WriteString(g.Str())
		used += w
	}
	b.WriteString(ellipsis)
	return b.String()
}

// PadRight fills text with spaces up to width columns.
func PadRight(text string, width int) string {
	if pad := width - DisplayWidth(text); pad > 0 {
		return text + strings.Repeat(" ", pad)
	}
	return text
}

// ExpandTabs replaces tabs with spaces up to the next tab stop. Columns
// restart after each newline.
func ExpandTabs(text string, tabWidth int) string {
	out, _ := ExpandTabsAt(text, 0, tabWidth)
	return out
}

// ExpandTabsAt expands tabs in text that starts at the given column and
// returns the column after it, so a line can be expanded piece by piece.
func ExpandTabsAt(text string, column, tabWidth int) (string, int) {
	if tabWidth <= 0 || !strings.ContainsRune(text, '\t') {
		return text, advance(text, column)
	}
	var b strings.Builder
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		cluster := g.Str()
		switch cluster {
		case "\t":
			spaces := tabWidth - column%tabWidth
			b.WriteString(strings.Repeat(" ", spaces))
			column += spaces
		case "\n", "\r\n":
			b.WriteString(cluster)
			column = 0
		default:
			b.WriteString(cluster)
			column += ClusterWidth(cluster)
		}
	}
	return b.String(), column
}

func advance(text string, column int) int {
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		if c := g.Str(); c == "\n" || c == "\r\n" {
			column = 0
			continue
		}
		column += ClusterWidth(g.Str())
	}
	return column
}
