// Package theme turns configured colors into terminal escape sequences.
package theme

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
)

const reset = "\x1b[0m"

// Theme holds the colors the pager paints with.
type Theme struct {
	Match    tcell.Color
	Active   tcell.Color
	MatchFg  tcell.Color
	ActiveFg tcell.Color
	StatusFg tcell.Color
	StatusBg tcell.Color
}

// Default mirrors the highlight colors written into HTML output.
func Default() Theme {
	return Theme{
		Match:    tcell.NewHexColor(0xFFFF55),
		Active:   tcell.NewHexColor(0xFF9633),
		MatchFg:  tcell.ColorBlack,
		ActiveFg: tcell.ColorBlack,
		StatusFg: tcell.ColorDefault,
		StatusBg: tcell.ColorDefault,
	}
}

// ParseColor accepts CSS names and #rrggbb values as understood by tcell.
func ParseColor(s string) (tcell.Color, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return tcell.ColorDefault, false
	}
	c := tcell.GetColor(strings.ToLower(s))
	if c == tcell.ColorDefault {
		return tcell.ColorDefault, false
	}
	return c, true
}

// New builds a theme from highlight and active colors. Unparsable values
// keep the defaults.
func New(highlight, active string) Theme {
	t := Default()
	if c, ok := ParseColor(highlight); ok {
		t.Match = c
	}
	if c, ok := ParseColor(active); ok {
		t.Active = c
	}
	return t
}

// MatchOn starts painting an inactive highlight.
func (t Theme) MatchOn() string { return sgr(t.MatchFg, t.Match) }

// ActiveOn starts painting the active highlight.
func (t Theme) ActiveOn() string { return sgr(t.ActiveFg, t.Active) }

// StatusOn starts the status line style. Without explicit colors it falls
// back to reverse video.
func (t Theme) StatusOn() string {
	if t.StatusFg == tcell.ColorDefault && t.StatusBg == tcell.ColorDefault {
		return "\x1b[7m"
	}
	return sgr(t.StatusFg, t.StatusBg)
}

// Off resets all attributes.
func (t Theme) Off() string { return reset }

func sgr(fg, bg tcell.Color) string {
	var b strings.Builder
	if code := colorCode(fg, false); code != "" {
		b.WriteString("\x1b[" + code + "m")
	}
	if code := colorCode(bg, true); code != "" {
		b.WriteString("\x1b[" + code + "m")
	}
	if b.Len() == 0 {
		return "\x1b[7m"
	}
	return b.String()
}

func colorCode(c tcell.Color, background bool) string {
	if c == tcell.ColorDefault || !c.Valid() {
		return ""
	}
	r, g, bl := c.RGB()
	if r < 0 {
		return ""
	}
	layer := 38
	if background {
		layer = 48
	}
	return fmt.Sprintf("%d;2;%d;%d;%d", layer, r, g, bl)
}
