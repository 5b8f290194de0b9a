package findtext

import (
	"reflect"
	"testing"
)

func mustPattern(t *testing.T, query string) *Pattern {
	t.Helper()
	p, err := CompilePattern(query)
	if err != nil {
		t.Fatalf("CompilePattern(%q): %v", query, err)
	}
	return p
}

func offsets(matches []Match) []int {
	out := make([]int, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Offset)
	}
	return out
}

func TestScanFindsNonOverlappingMatches(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		query string
		want  []int
	}{
		{"case insensitive", "The cat sat on the mat.", "AT", []int{5, 9, 20}},
		{"non overlapping", "aaaa", "aa", []int{0, 2}},
		{"multibyte offsets in runes", "żółw i żółw", "żółw", []int{0, 7}},
		{"collapsed whitespace", "hello   world, hello world", "hello world", []int{0, 15}},
		{"punctuation spacing", "don ' t and don't", "don't", []int{0, 12}},
		{"no match", "nothing here", "absent", []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := offsets(mustPattern(t, tt.query).Scan(tt.text))
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Scan(%q, %q)=%v want %v", tt.text, tt.query, got, tt.want)
			}
		})
	}
}

func TestScanUsesQueryLengthForEveryMatch(t *testing.T) {
	matches := mustPattern(t, "hello world").Scan("hello     world")
	if len(matches) != 1 {
		t.Fatalf("expected one match, got %d", len(matches))
	}
	if matches[0].Length != len("hello world") {
		t.Fatalf("match length=%d want %d", matches[0].Length, len("hello world"))
	}
}

func TestScanStopsOnEmptyMatch(t *testing.T) {
	// Only a foldable mark: the expression is empty and matches nothing useful.
	p := mustPattern(t, "\u0301")
	if got := p.Scan("abc"); len(got) != 0 {
		t.Fatalf("expected no matches for empty expression, got %v", got)
	}
}

func TestFlattenConcatenatesInOrder(t *testing.T) {
	doc := newMemDoc("one ", "two", " three")
	if got := Flatten(doc.Fragments()); got != "one two three" {
		t.Fatalf("Flatten=%q", got)
	}
	if got := Flatten(nil); got != "" {
		t.Fatalf("Flatten(nil)=%q want empty", got)
	}
}
