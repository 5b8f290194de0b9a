package htmldoc

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/kk-code-lab/hilite/internal/findtext"
	"golang.org/x/net/html"
)

func mustParse(t *testing.T, src string, opts Options) *Document {
	t.Helper()
	doc, err := ParseString(src, opts)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	return doc
}

func render(t *testing.T, doc *Document) string {
	t.Helper()
	var buf bytes.Buffer
	if err := doc.Render(&buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return buf.String()
}

func TestFindAcrossInlineMarkup(t *testing.T) {
	doc := mustParse(t, `<p>The <b>c</b>at sat on the m<i>at</i>.</p>`, Options{})
	f := findtext.New(doc)

	n, ok := f.Find("at")
	if !ok || n != 3 {
		t.Fatalf("Find=(%d,%v) want (3,true)", n, ok)
	}
	if got := len(doc.Highlights()); got != 3 {
		t.Fatalf("got %d highlight elements want 3", got)
	}
	out := render(t, doc)
	if !strings.Contains(out, `<mark style="background: #FFFF55">at</mark>`) {
		t.Fatalf("rendered output missing highlight: %s", out)
	}
	if !strings.Contains(out, `<i><mark style="background: #FFFF55">at</mark></i>`) {
		t.Fatalf("highlight inside inline element not nested in place: %s", out)
	}
}

func TestWhitespaceMatchSpansThreeElements(t *testing.T) {
	doc := mustParse(t, `<p><i>hello</i><span>   </span><b>world</b></p>`, Options{})
	f := findtext.New(doc)
	if n, _ := f.Find("hello world"); n != 1 {
		t.Fatalf("got %d matches want 1", n)
	}
	groups := f.Groups()
	if len(groups) != 1 || len(groups[0].Units) != 3 {
		t.Fatalf("expected one group of 3 units, got %+v", groups)
	}
}

func TestSkippedKindsAreNotSearched(t *testing.T) {
	src := `<body><p>alpha</p><script>var alpha = 1;</script>` +
		`<form><label>alpha</label><textarea>alpha</textarea></form>` +
		`<style>.alpha{}</style><p>alpha</p></body>`
	doc := mustParse(t, src, Options{})
	if n, _ := findtext.New(doc).Find("alpha"); n != 2 {
		t.Fatalf("got %d matches want 2", n)
	}
}

func TestCustomSkipPredicate(t *testing.T) {
	src := `<p>alpha <code>alpha</code></p><script>alpha</script>`
	doc := mustParse(t, src, Options{Skip: func(kind string) bool { return kind == "code" || kind == "mark" }})
	if n, _ := findtext.New(doc).Find("alpha"); n != 2 {
		t.Fatalf("got %d matches want 2 (paragraph + script)", n)
	}
}

func TestSkippableRootYieldsNothing(t *testing.T) {
	doc := mustParse(t, `<form id="f">alpha</form>`, Options{Root: "#f"})
	n, ok := findtext.New(doc).Find("alpha")
	if !ok || n != 0 {
		t.Fatalf("Find=(%d,%v) want (0,true)", n, ok)
	}
}

func TestRootSelection(t *testing.T) {
	src := `<div id="side">cat</div><div id="main">cat <span>cat</span></div><article>cat</article>`
	tests := []struct {
		root string
		want int
	}{
		{"", 4},
		{"#main", 2},
		{"#side", 1},
		{"article", 1},
	}
	for _, tt := range tests {
		doc := mustParse(t, src, Options{Root: tt.root})
		if n, _ := findtext.New(doc).Find("cat"); n != tt.want {
			t.Fatalf("root %q: got %d matches want %d", tt.root, n, tt.want)
		}
	}

	if _, err := ParseString(src, Options{Root: "#missing"}); !errors.Is(err, ErrNoRoot) {
		t.Fatalf("missing root err=%v want ErrNoRoot", err)
	}
}

func TestHighlightingIsLossless(t *testing.T) {
	srcs := []string{
		`<p>The <b>c</b>at sat on the m<i>at</i>.</p>`,
		`<ul><li>don ' t</li><li>don't <em>stop</em></li></ul>`,
		`<p><i>hello</i><span>   </span><b>world</b> hello world</p>`,
	}
	queries := []string{"at", "don't", "hello world"}

	for i, src := range srcs {
		doc := mustParse(t, src, Options{})
		before := render(t, doc)
		text := doc.TextContent()
		f := findtext.New(doc)

		if n, _ := f.Find(queries[i]); n == 0 {
			t.Fatalf("expected matches for %q", queries[i])
		}
		f.GotoMatch(0)
		if _, ok := f.Find(""); ok {
			t.Fatalf("blank find must report no search")
		}
		if got := doc.TextContent(); got != text {
			t.Fatalf("text=%q want %q", got, text)
		}
		if got := render(t, doc); got != before {
			t.Fatalf("tree not restored:\n got %s\nwant %s", got, before)
		}
	}
}

func TestHighlightingKeepsInvalidUTF8(t *testing.T) {
	const src = "<p>caf\xe9 noir \xff\xfeend</p>"
	tests := []struct {
		query string
		want  string
	}{
		{query: "noir", want: "noir"},
		{query: "caf", want: "caf"},
		{query: "end", want: "end"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			doc := mustParse(t, src, Options{})
			before := render(t, doc)
			text := doc.TextContent()
			f := findtext.New(doc)

			if n, _ := f.Find(tt.query); n != 1 {
				t.Fatalf("got %d matches want 1", n)
			}
			marks := doc.Highlights()
			if len(marks) != 1 || textContent(marks[0]) != tt.want {
				t.Fatalf("highlighted %d units, want one holding %q", len(marks), tt.want)
			}
			f.Remove()
			if got := doc.TextContent(); got != text {
				t.Fatalf("text=%q want %q", got, text)
			}
			if got := render(t, doc); got != before {
				t.Fatalf("tree not restored:\n got %q\nwant %q", got, before)
			}
		})
	}
}

func TestByteOffset(t *testing.T) {
	tests := []struct {
		s      string
		offset int
		want   int
	}{
		{s: "abc", offset: 2, want: 2},
		{s: "\u00e9a", offset: 1, want: 2},
		{s: "\xe9a", offset: 1, want: 1},
		{s: "\xff\xfe\u00e9", offset: 2, want: 2},
		{s: "ab", offset: 5, want: 2},
		{s: "ab", offset: -1, want: 0},
	}
	for _, tt := range tests {
		if got := byteOffset(tt.s, tt.offset); got != tt.want {
			t.Fatalf("byteOffset(%q, %d) got %d want %d", tt.s, tt.offset, got, tt.want)
		}
	}
}

func TestRepeatedFindIsStable(t *testing.T) {
	doc := mustParse(t, `<p>at <b>at</b> a<i>t</i></p>`, Options{})
	f := findtext.New(doc)
	n1, _ := f.Find("at")
	first := render(t, doc)
	n2, _ := f.Find("at")
	if n1 != n2 || n1 != 3 {
		t.Fatalf("counts %d and %d want 3", n1, n2)
	}
	if got := render(t, doc); got != first {
		t.Fatalf("second search produced different tree:\n%s\n%s", got, first)
	}
}

func TestGotoMatchPaintsActiveGroup(t *testing.T) {
	var scrolled *html.Node
	doc := mustParse(t, `<p>one cat, two c<b>at</b>s, three cats</p>`, Options{
		Colors:   Colors{Highlight: "yellow", Active: "orange"},
		OnScroll: func(n *html.Node) { scrolled = n },
	})
	f := findtext.New(doc)
	if n, _ := f.Find("cat"); n != 3 {
		t.Fatalf("got %d matches want 3", n)
	}

	f.GotoMatch(0)
	f.GotoMatch(1)

	marks := doc.Highlights()
	if len(marks) != 4 {
		t.Fatalf("got %d highlight elements want 4", len(marks))
	}
	wantActive := []bool{false, true, true, false}
	for i, m := range marks {
		if IsActive(m) != wantActive[i] {
			t.Fatalf("mark %d (%q) active=%v want %v", i, textContent(m), IsActive(m), wantActive[i])
		}
		color := "yellow"
		if wantActive[i] {
			color = "orange"
		}
		if got := attr(m, "style"); got != "background: "+color {
			t.Fatalf("mark %d style=%q", i, got)
		}
	}
	if scrolled != marks[1] || doc.ScrollTarget() != marks[1] {
		t.Fatalf("expected first unit of match 1 to be scrolled into view")
	}
}

func TestCustomHighlightTag(t *testing.T) {
	doc := mustParse(t, `<p>find me</p>`, Options{Tag: "SPAN"})
	f := findtext.New(doc)
	f.Find("me")
	out := render(t, doc)
	if !strings.Contains(out, `<span style="background: #FFFF55">me</span>`) {
		t.Fatalf("expected span highlight, got %s", out)
	}
	f.Remove()
	if strings.Contains(render(t, doc), "<span") {
		t.Fatalf("span highlight left after Remove")
	}
}

func TestCleanupRemovesPreexistingEmptyMarks(t *testing.T) {
	doc := mustParse(t, `<p>a<mark></mark>b <mark>c</mark></p>`, Options{})
	findtext.New(doc).Find("ab")
	if got := len(doc.Highlights()); got != 1 {
		t.Fatalf("got %d highlights want only the new one", got)
	}
}

func TestNormalizeComposesText(t *testing.T) {
	doc := mustParse(t, "<p>cafe\u0301</p>", Options{Normalize: true})
	if got := doc.TextContent(); got != "caf\u00e9" {
		t.Fatalf("TextContent=%q want NFC form", got)
	}
	raw := mustParse(t, "<p>cafe\u0301</p>", Options{})
	if got := raw.TextContent(); got != "cafe\u0301" {
		t.Fatalf("TextContent=%q want untouched text", got)
	}
}

func TestDefaultSkip(t *testing.T) {
	skip := DefaultSkip("MARK")
	for _, kind := range []string{"mark", "SCRIPT", "form", "input"} {
		if !skip(kind) {
			t.Fatalf("expected %q to be skipped", kind)
		}
	}
	for _, kind := range []string{"p", "span", "b"} {
		if skip(kind) {
			t.Fatalf("expected %q to be searched", kind)
		}
	}
}
