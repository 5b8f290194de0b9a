// Package pager shows a highlighted document in the terminal and runs
// searches against it interactively.
package pager

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"

	"github.com/kk-code-lab/hilite/internal/findtext"
	"github.com/kk-code-lab/hilite/internal/htmldoc"
	"github.com/kk-code-lab/hilite/internal/ui/theme"
	"golang.org/x/term"
)

// Options configure a Pager.
type Options struct {
	Title string
	Theme theme.Theme
	Logf  func(format string, args ...any)
}

// Pager owns the terminal while it runs. The finder must search doc.
type Pager struct {
	doc    *htmldoc.Document
	finder *findtext.Finder
	theme  theme.Theme
	title  string
	logf   func(format string, args ...any)

	input       *os.File
	output      io.Writer
	reader      *bufio.Reader
	writer      *bufio.Writer
	restoreTerm *term.State
	width       int
	height      int

	rows      []row
	rowsWidth int
	dirty     bool
	offset    int

	searchMode  bool
	searchInput []rune
	message     string
}

// New prepares a pager; the terminal is not touched until Run.
func New(doc *htmldoc.Document, finder *findtext.Finder, opts Options) (*Pager, error) {
	if doc == nil || finder == nil {
		return nil, errors.New("pager needs a document and a finder")
	}
	logf := opts.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}
	th := opts.Theme
	if th == (theme.Theme{}) {
		th = theme.Default()
	}
	return &Pager{
		doc:    doc,
		finder: finder,
		theme:  th,
		title:  opts.Title,
		logf:   logf,
		dirty:  true,
	}, nil
}

// Run shows the document until the user quits.
func (p *Pager) Run() error {
	if err := p.initTerminal(); err != nil {
		return err
	}
	defer p.cleanupTerminal()

	done := make(chan struct{})
	defer close(done)
	events, errs, stop := p.startKeyReader(done)
	if stop != nil {
		defer stop()
	}

	resized := make(chan os.Signal, 1)
	if sigs := resizeSignals(); len(sigs) > 0 {
		signal.Notify(resized, sigs...)
		defer signal.Stop(resized)
	}

	p.updateSize()
	if p.finder.Active() >= 0 {
		p.focusActive()
	}
	for {
		if err := p.render(); err != nil {
			return err
		}
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if p.handleKey(ev) {
				return nil
			}
		case err := <-errs:
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		case <-resized:
			p.updateSize()
		}
	}
}

func (p *Pager) initTerminal() error {
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		if runtime.GOOS != "windows" {
			return fmt.Errorf("open terminal: %w", err)
		}
		p.input = os.Stdin
		p.output = os.Stdout
	} else {
		p.input = tty
		p.output = tty
	}

	p.reader = bufio.NewReader(p.input)
	p.writer = bufio.NewWriter(p.output)

	rawState, err := term.MakeRaw(int(p.input.Fd()))
	if err != nil {
		return fmt.Errorf("raw mode: %w", err)
	}
	p.restoreTerm = rawState
	p.writeString("\x1b[?1049h")
	return nil
}

func (p *Pager) cleanupTerminal() {
	p.writeString("\x1b[?1049l")
	p.writeString("\x1b[?25h")
	if p.writer != nil {
		_ = p.writer.Flush()
	}
	if p.input != nil && p.restoreTerm != nil {
		_ = term.Restore(int(p.input.Fd()), p.restoreTerm)
	}
	if p.input != nil && p.input.Name() == "/dev/tty" {
		_ = p.input.Close()
	}
}

func (p *Pager) writeString(s string) {
	switch {
	case p.writer != nil:
		_, _ = p.writer.WriteString(s)
	case p.output != nil:
		_, _ = io.WriteString(p.output, s)
	}
}

func (p *Pager) printf(format string, args ...any) {
	p.writeString(fmt.Sprintf(format, args...))
}

func (p *Pager) updateSize() {
	if p.input == nil {
		return
	}
	width, height, err := term.GetSize(int(p.input.Fd()))
	if err == nil {
		p.width = width
		p.height = height
	}
}

// contentRows is the screen height minus the title and status rows.
func (p *Pager) contentRows() int {
	if rows := p.height - 2; rows > 0 {
		return rows
	}
	return 1
}

func (p *Pager) ensureRows() {
	if p.width <= 0 {
		p.width = 80
	}
	if !p.dirty && p.rowsWidth == p.width {
		return
	}
	p.rows = wrapLines(p.doc.Lines(), p.width)
	p.rowsWidth = p.width
	p.dirty = false
}

func (p *Pager) clampScroll() {
	maxOffset := len(p.rows) - p.contentRows()
	if p.offset > maxOffset {
		p.offset = maxOffset
	}
	if p.offset < 0 {
		p.offset = 0
	}
}

// focusActive centers the view on the element the finder last scrolled to.
func (p *Pager) focusActive() {
	p.ensureRows()
	idx := rowOf(p.rows, p.doc.ScrollTarget())
	if idx < 0 {
		return
	}
	p.offset = centerOffset(idx, p.contentRows(), len(p.rows))
}

func (p *Pager) render() error {
	if p.height <= 0 {
		p.height = 24
	}
	p.ensureRows()
	p.clampScroll()

	p.writeString("\x1b[?25l")
	p.writeString("\x1b[H")

	p.drawTitle()
	visible := p.contentRows()
	for i := 0; i < visible; i++ {
		p.printf("\x1b[%d;1H\x1b[2K", i+2)
		if idx := p.offset + i; idx < len(p.rows) {
			p.writeString(paintRow(p.rows[idx], p.theme))
		}
	}
	p.drawStatus()

	if p.writer != nil {
		return p.writer.Flush()
	}
	return nil
}

func (p *Pager) drawTitle() {
	p.writeString("\x1b[1;1H\x1b[2K")
	if p.title == "" {
		return
	}
	p.writeString("\x1b[1m")
	p.writeString(clip(p.title, p.width))
	p.writeString("\x1b[22m")
}

func (p *Pager) drawStatus() {
	if p.height < 2 {
		return
	}
	p.printf("\x1b[%d;1H\x1b[2K", p.height)
	p.writeString(p.theme.StatusOn())
	p.writeString(pad(clip(p.statusLine(), p.width), p.width))
	p.writeString(p.theme.Off())
	if p.searchMode {
		p.writeString("\x1b[?25h")
	}
}

func (p *Pager) statusLine() string {
	if p.searchMode {
		return "/" + string(p.searchInput)
	}
	first, last := 0, 0
	if len(p.rows) > 0 {
		first = p.offset + 1
		last = min(p.offset+p.contentRows(), len(p.rows))
	}
	status := fmt.Sprintf("%d-%d/%d", first, last, len(p.rows))
	if q := p.finder.Query(); q != "" {
		if n := p.finder.Count(); n > 0 {
			status += fmt.Sprintf("  %q %d/%d", q, p.finder.Active()+1, n)
		} else {
			status += fmt.Sprintf("  %q no matches", q)
		}
	}
	if p.message != "" {
		status += "  " + p.message
	}
	return status + "  / search  n/N next/prev  q quit"
}
