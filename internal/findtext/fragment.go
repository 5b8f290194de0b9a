// Package findtext finds a fuzzy phrase across text fragments and highlights
// every occurrence in place.
//
// The document that owns the fragments stays opaque: it hands out fragments
// in document order and knows how to split them, wrap them in highlighted
// units and unwrap those units again.
package findtext

// Fragment is a run of plain text owned by a Document.
type Fragment interface {
	Text() string
	// Split cuts the fragment at a rune offset. The receiver must not be used afterwards.
	Split(offset int) (left, right Fragment)
	// Wrap replaces the fragment in place by a highlighted unit holding the same text.
	Wrap() Unit
}

// Unit is a highlighted wrapper around the text of one span.
type Unit interface {
	Text() string
	// Attached reports whether the unit still has a parent in the document.
	// It must be false once Unwrap has run.
	Attached() bool
	// Unwrap replaces the unit by plain text and merges adjacent text.
	Unwrap()
	SetActive(active bool)
	ScrollIntoView()
}

// Document is the fragment source searched by a Finder.
type Document interface {
	// Fragments returns the searchable fragments in document order, without
	// fragments inside skipped kinds (including existing highlights).
	Fragments() []Fragment
	FirstHighlight() (Unit, bool)
}
