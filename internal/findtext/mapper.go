package findtext

import "unicode/utf8"

// Span is the part of a match inside one fragment. Fragment indexes the slice
// passed to MapSpans; Start and End are rune offsets in that fragment's
// original text.
type Span struct {
	Fragment int
	Start    int
	End      int
}

// Len returns the number of runes covered by the span.
func (s Span) Len() int { return s.End - s.Start }

// Group holds the highlighted units of one match in document order.
type Group struct {
	Units []Unit
	Spans []Span
}

// Len returns the number of runes highlighted for the match.
func (g Group) Len() int {
	total := 0
	for _, sp := range g.Spans {
		total += sp.Len()
	}
	return total
}

// MapSpans wraps every match in highlighted units and returns one group per
// match. Fragments are walked once; fragments outside any match are left
// untouched. A match running into the previous match's tail is trimmed to
// start where the previous one ended, and a match cut short by the end of
// the text keeps the units it got.
func MapSpans(fragments []Fragment, matches []Match) []Group {
	if len(fragments) == 0 || len(matches) == 0 {
		return nil
	}

	groups := make([]Group, 0, len(matches))
	next := 0
	pos := 0
	prevEnd := 0
	begin, finish := matchBounds(matches[next], prevEnd)
	var current Group

	for i, frag := range fragments {
		local := 0
		for frag != nil && next < len(matches) {
			size := utf8.RuneCountInString(frag.Text())
			start := begin - pos
			if start >= size {
				break
			}
			end := finish - pos
			if end > size {
				end = size
			}

			unit, after := isolate(frag, start, end, size)
			current.Units = append(current.Units, unit)
			current.Spans = append(current.Spans, Span{Fragment: i, Start: local + start, End: local + end})

			pos += end
			local += end
			begin = pos
			frag = after

			if pos == finish {
				groups = append(groups, current)
				current = Group{}
				prevEnd = finish
				next++
				if next < len(matches) {
					begin, finish = matchBounds(matches[next], prevEnd)
				}
			}
		}
		if next >= len(matches) {
			break
		}
		if frag != nil {
			pos += utf8.RuneCountInString(frag.Text())
		}
	}

	if len(current.Units) > 0 {
		groups = append(groups, current)
	}
	return groups
}

func matchBounds(m Match, prevEnd int) (int, int) {
	begin := m.Offset
	if begin < prevEnd {
		begin = prevEnd
	}
	return begin, m.Offset + m.Length
}

// isolate splits frag into before/matched/after pieces and wraps the matched
// one. It returns the unit and the after piece, if any.
func isolate(frag Fragment, start, end, size int) (Unit, Fragment) {
	var after Fragment
	if end < size {
		frag, after = frag.Split(end)
	}
	if start > 0 {
		_, frag = frag.Split(start)
	}
	return frag.Wrap(), after
}
