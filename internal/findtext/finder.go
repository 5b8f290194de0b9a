package findtext

import "errors"

// Finder runs searches over one Document. It is not safe for concurrent use;
// callers serialize Find, GotoMatch and Remove.
type Finder struct {
	doc      Document
	logf     func(format string, args ...any)
	query    string
	pattern  *Pattern
	registry *Registry
}

// Option configures a Finder.
type Option func(*Finder)

// WithLogger routes debug messages to logf.
func WithLogger(logf func(format string, args ...any)) Option {
	return func(f *Finder) {
		if logf != nil {
			f.logf = logf
		}
	}
}

// New returns a Finder over doc. A nil doc makes every search a no-op.
func New(doc Document, opts ...Option) *Finder {
	f := &Finder{
		doc:      doc,
		logf:     func(string, ...any) {},
		registry: NewRegistry(nil),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Find clears previous highlights, then highlights every match of query and
// returns the number of matches. The boolean is false when nothing was
// searched: blank query, no document or a pattern that would not compile.
func (f *Finder) Find(query string) (int, bool) {
	f.Remove()
	if f.doc == nil {
		return 0, false
	}

	pattern, err := CompilePattern(query)
	if err != nil {
		if !errors.Is(err, ErrEmptyQuery) {
			f.logf("find: %v", err)
		}
		return 0, false
	}

	fragments := f.doc.Fragments()
	matches := pattern.Scan(Flatten(fragments))
	groups := MapSpans(fragments, matches)

	f.query = pattern.Query()
	f.pattern = pattern
	f.registry = NewRegistry(groups)
	f.logf("find %q: pattern %s, %d fragments, %d matches, %d groups", f.query, pattern.String(), len(fragments), len(matches), len(groups))
	return len(groups), true
}

// GotoMatch scrolls to match i and marks it active. Navigation is a visual
// side effect only: the result is always false, whether or not i was valid.
func (f *Finder) GotoMatch(i int) bool {
	if !f.registry.Goto(i) {
		f.logf("goto %d: out of range (%d matches)", i, f.registry.Len())
	}
	return false
}

// Next activates the following match, wrapping to the first one.
func (f *Finder) Next() int { return f.registry.Step(1) }

// Prev activates the preceding match, wrapping to the last one.
func (f *Finder) Prev() int { return f.registry.Step(-1) }

// Remove unwraps all highlights and forgets the current matches.
func (f *Finder) Remove() {
	if n := Cleanup(f.doc); n > 0 {
		f.logf("cleanup: unwrapped %d units", n)
	}
	f.query = ""
	f.pattern = nil
	f.registry = NewRegistry(nil)
}

// Count returns the number of highlighted matches.
func (f *Finder) Count() int { return f.registry.Len() }

// Active returns the index of the active match, or -1.
func (f *Finder) Active() int { return f.registry.Active() }

// Groups returns the highlighted groups of the latest search.
func (f *Finder) Groups() []Group { return f.registry.Groups() }

// Query returns the normalized query of the latest search.
func (f *Finder) Query() string { return f.query }

// Pattern returns the compiled pattern of the latest search, or nil.
func (f *Finder) Pattern() *Pattern { return f.pattern }
