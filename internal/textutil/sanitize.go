package textutil

import "strings"

// Invisible formatting runes are shown by name so bidi overrides cannot
// reorder what the user sees.
var formattingLabels = map[rune]string{
	0x061C: "<ALM>",
	0x200B: "<ZWSP>",
	0x200E: "<LRM>",
	0x200F: "<RLM>",
	0x202A: "<LRE>",
	0x202B: "<RLE>",
	0x202C: "<PDF>",
	0x202D: "<LRO>",
	0x202E: "<RLO>",
	0x2066: "<LRI>",
	0x2067: "<RLI>",
	0x2068: "<FSI>",
	0x2069: "<PDI>",
	0xFEFF: "<BOM>",
}

// SanitizeTerminalText makes text safe to write to a terminal: control
// characters become '?', line breaks and tabs become spaces and formatting
// runes are labeled.
func SanitizeTerminalText(text string) string {
	if !needsSanitizing(text) {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if label, ok := formattingLabels[r]; ok {
			b.WriteString(label)
			continue
		}
		switch {
		case r == '\t' || r == '\n' || r == '\r':
			b.WriteByte(' ')
		case r < 0x20 || r == 0x7f || (r >= 0x80 && r < 0xa0):
			b.WriteByte('?')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func needsSanitizing(text string) bool {
	for _, r := range text {
		if r < 0x20 || r == 0x7f || (r >= 0x80 && r < 0xa0) {
			return true
		}
		if _, ok := formattingLabels[r]; ok {
			return true
		}
	}
	return false
}
