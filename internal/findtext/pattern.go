package findtext

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrEmptyQuery is returned when the query is blank after trimming.
var ErrEmptyQuery = errors.New("empty query")

const (
	spaceClass    = `[\s\p{Zs}]`
	optionalSpace = spaceClass + "*"
	spaceRun      = spaceClass + "+"
)

// Marks that act as letters in their scripts and must never be folded away.
var diacriticExceptions = map[rune]struct{}{
	0x3099: {}, 0x309a: {},
	0x094d: {}, 0x09cd: {}, 0x0a4d: {}, 0x0acd: {}, 0x0b4d: {}, 0x0bcd: {}, 0x0c4d: {}, 0x0ccd: {}, 0x0d3b: {},
	0x0d3c: {}, 0x0d4d: {}, 0x0dca: {}, 0x0e3a: {}, 0x0eba: {}, 0x0f84: {}, 0x1039: {}, 0x103a: {}, 0x1714: {},
	0x1734: {}, 0x17d2: {}, 0x1a60: {}, 0x1b44: {}, 0x1baa: {}, 0x1bab: {}, 0x1bf2: {}, 0x1bf3: {}, 0x2d7f: {},
	0xa806: {}, 0xa82c: {}, 0xa8c4: {}, 0xa953: {}, 0xa9c0: {}, 0xaaf6: {}, 0xabed: {},
	0x0c56: {},
	0x0f71: {},
	0x0f72: {}, 0x0f7a: {}, 0x0f7b: {}, 0x0f7c: {}, 0x0f7d: {}, 0x0f80: {},
	0x0f74: {},
}

// Pattern is a compiled, case-insensitive fuzzy matcher for one query.
type Pattern struct {
	query string
	expr  string
	re    *regexp.Regexp
	size  int
}

// NormalizeQuery trims surrounding whitespace from a raw query.
func NormalizeQuery(query string) string {
	return strings.TrimSpace(query)
}

// CompilePattern builds the fuzzy pattern for query.
func CompilePattern(query string) (*Pattern, error) {
	query = NormalizeQuery(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	expr := fuzzyExpression(query)
	re, err := regexp.Compile("(?i)" + expr)
	if err != nil {
		return nil, fmt.Errorf("compile pattern %q: %w", query, err)
	}
	return &Pattern{
		query: query,
		expr:  expr,
		re:    re,
		size:  utf8.RuneCountInString(query),
	}, nil
}

// String returns the expression without the case-insensitivity flag.
func (p *Pattern) String() string { return p.expr }

// Query returns the normalized query the pattern was built from.
func (p *Pattern) Query() string { return p.query }

// Len is the rune length of the normalized query, used as the length of every match.
func (p *Pattern) Len() int { return p.size }

func fuzzyExpression(query string) string {
	var b strings.Builder
	b.Grow(len(query) * 2)
	inSpace := false
	for _, r := range query {
		if isSpace(r) {
			if !inSpace {
				b.WriteString(spaceRun)
			}
			inSpace = true
			continue
		}
		inSpace = false
		switch {
		case isMeta(r):
			b.WriteString(optionalSpace)
			b.WriteByte('\\')
			b.WriteRune(r)
			b.WriteString(optionalSpace)
		case unicode.IsPunct(r):
			b.WriteString(optionalSpace)
			b.WriteString(regexp.QuoteMeta(string(r)))
			b.WriteString(optionalSpace)
		case unicode.Is(unicode.M, r):
			if _, keep := diacriticExceptions[r]; keep {
				b.WriteRune(r)
			}
		case unicode.IsLetter(r):
			b.WriteRune(r)
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	return strings.TrimSuffix(b.String(), optionalSpace)
}

func isMeta(r rune) bool {
	return strings.ContainsRune(`.*+?^${}()|[]\`, r)
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || unicode.Is(unicode.Zs, r)
}
