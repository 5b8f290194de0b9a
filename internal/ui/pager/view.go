package pager

import (
	"strings"

	"github.com/kk-code-lab/hilite/internal/htmldoc"
	"github.com/kk-code-lab/hilite/internal/textutil"
	"github.com/kk-code-lab/hilite/internal/ui/theme"
	"github.com/rivo/uniseg"
	"golang.org/x/net/html"
)

// row is one screen row of pieces.
type row []htmldoc.Piece

func (r row) text() string {
	var b strings.Builder
	for _, p := range r {
		b.WriteString(p.Text)
	}
	return b.String()
}

func (r row) add(cluster string, src htmldoc.Piece) row {
	if n := len(r); n > 0 && r[n-1].State == src.State && r[n-1].Mark == src.Mark {
		r[n-1].Text += cluster
		return r
	}
	return append(r, htmldoc.Piece{Text: cluster, State: src.State, Mark: src.Mark})
}

// wrapLines soft-wraps lines to width columns. Tabs are expanded against
// the line, control characters are made harmless and an empty line still
// takes a row.
func wrapLines(lines []htmldoc.Line, width int) []row {
	if width < 1 {
		width = 1
	}
	var rows []row
	for _, line := range lines {
		var current row
		lineCol, rowCol := 0, 0
		for _, piece := range line {
			expanded, _ := textutil.ExpandTabsAt(piece.Text, lineCol, textutil.DefaultTabWidth)
			clean := textutil.SanitizeTerminalText(expanded)
			g := uniseg.NewGraphemes(clean)
			for g.Next() {
				cluster := g.Str()
				w := textutil.ClusterWidth(cluster)
				if rowCol+w > width && rowCol > 0 {
					rows = append(rows, current)
					current = nil
					rowCol = 0
				}
				current = current.add(cluster, piece)
				rowCol += w
				lineCol += w
			}
		}
		rows = append(rows, current)
	}
	return rows
}

// rowOf returns the first row holding text of mark, or -1.
func rowOf(rows []row, mark *html.Node) int {
	if mark == nil {
		return -1
	}
	for i, r := range rows {
		for _, p := range r {
			if p.Mark == mark {
				return i
			}
		}
	}
	return -1
}

// centerOffset returns the first visible row that puts target in the middle
// of a window of visible rows, clamped to the content.
func centerOffset(target, visible, total int) int {
	offset := target - visible/2
	if maxOffset := total - visible; offset > maxOffset {
		offset = maxOffset
	}
	if offset < 0 {
		offset = 0
	}
	return offset
}

func paintRow(r row, th theme.Theme) string {
	var b strings.Builder
	for _, p := range r {
		switch p.State {
		case htmldoc.PieceMatch:
			b.WriteString(th.MatchOn())
			b.WriteString(p.Text)
			b.WriteString(th.Off())
		case htmldoc.PieceActive:
			b.WriteString(th.ActiveOn())
			b.WriteString(p.Text)
			b.WriteString(th.Off())
		default:
			b.WriteString(p.Text)
		}
	}
	return b.String()
}

func clip(s string, width int) string {
	return textutil.Truncate(textutil.SanitizeTerminalText(s), width, "…")
}

func pad(s string, width int) string {
	return textutil.PadRight(s, width)
}
