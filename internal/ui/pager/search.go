package pager

import "fmt"

// handleKey applies one key and reports whether the pager should exit.
func (p *Pager) handleKey(ev keyEvent) bool {
	if p.searchMode {
		p.handleSearchKey(ev)
		return false
	}
	p.message = ""
	page := p.contentRows()

	switch ev.kind {
	case keyEscape, keyCtrlC:
		return true
	case keyCtrlZ:
		if err := p.suspendToShell(); err != nil {
			p.message = err.Error()
		}
	case keyUp:
		p.offset--
	case keyDown, keyEnter:
		p.offset++
	case keyPageUp:
		p.offset -= page
	case keyPageDown:
		p.offset += page
	case keyHome:
		p.offset = 0
	case keyEnd:
		p.offset = len(p.rows)
	case keyRune:
		return p.handleRune(ev.r, page)
	}
	p.clampScroll()
	return false
}

func (p *Pager) handleRune(r rune, page int) bool {
	switch r {
	case 'q', 'Q':
		return true
	case '/':
		p.searchMode = true
		p.searchInput = []rune(p.finder.Query())
	case 'n':
		p.step(1)
	case 'N':
		p.step(-1)
	case 'c':
		p.finder.Remove()
		p.dirty = true
		p.message = "highlights cleared"
	case 'k':
		p.offset--
	case 'j':
		p.offset++
	case ' ', 'f':
		p.offset += page
	case 'b':
		p.offset -= page
	case 'g':
		p.offset = 0
	case 'G':
		p.offset = len(p.rows)
	}
	p.clampScroll()
	return false
}

func (p *Pager) handleSearchKey(ev keyEvent) {
	switch ev.kind {
	case keyEnter:
		p.searchMode = false
		query := string(p.searchInput)
		p.searchInput = nil
		p.runSearch(query)
	case keyEscape, keyCtrlC:
		p.searchMode = false
		p.searchInput = nil
	case keyBackspace:
		if len(p.searchInput) > 0 {
			p.searchInput = p.searchInput[:len(p.searchInput)-1]
		}
	case keyRune:
		p.searchInput = append(p.searchInput, ev.r)
	}
}

// runSearch highlights query and jumps to its first match.
func (p *Pager) runSearch(query string) {
	n, ok := p.finder.Find(query)
	p.dirty = true
	p.logf("pager search %q: %d matches", query, n)
	switch {
	case !ok:
		p.message = "highlights cleared"
	case n == 0:
		p.message = fmt.Sprintf("pattern not found: %s", query)
	default:
		p.finder.GotoMatch(0)
		p.focusActive()
	}
}

func (p *Pager) step(delta int) {
	if p.finder.Count() == 0 {
		p.message = "no active search"
		return
	}
	if delta > 0 {
		p.finder.Next()
	} else {
		p.finder.Prev()
	}
	p.dirty = true
	p.focusActive()
}
