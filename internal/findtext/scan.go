package findtext

import (
	"strings"
	"unicode/utf8"
)

// Match is a hit in the flattened text, in runes.
type Match struct {
	Offset int
	Length int
}

// Flatten concatenates the text of every fragment in order.
func Flatten(fragments []Fragment) string {
	if len(fragments) == 0 {
		return ""
	}
	var b strings.Builder
	for _, frag := range fragments {
		b.WriteString(frag.Text())
	}
	return b.String()
}

// Scan returns every non-overlapping match of p in text, left to right.
// Each match has the query's length regardless of how much text the
// expression consumed.
func (p *Pattern) Scan(text string) []Match {
	if p == nil || text == "" {
		return nil
	}
	var matches []Match
	searchFrom := 0
	countedTo := 0
	runeOffset := 0
	for searchFrom <= len(text) {
		loc := p.re.FindStringIndex(text[searchFrom:])
		if loc == nil || loc[1] == loc[0] {
			break
		}
		start := searchFrom + loc[0]
		runeOffset += utf8.RuneCountInString(text[countedTo:start])
		countedTo = start
		matches = append(matches, Match{Offset: runeOffset, Length: p.size})
		searchFrom += loc[1]
	}
	return matches
}
