//go:build !windows && !plan9 && !js && !wasip1

package pager

import (
	"fmt"
	"syscall"

	"golang.org/x/term"
)

// suspendToShell restores the terminal, stops the process group and puts
// the terminal back into raw mode once the shell resumes us.
func (p *Pager) suspendToShell() error {
	p.writeString("\x1b[?1049l\x1b[?25h")
	if p.writer != nil {
		_ = p.writer.Flush()
	}
	if p.input != nil && p.restoreTerm != nil {
		_ = term.Restore(int(p.input.Fd()), p.restoreTerm)
	}
	if err := syscall.Kill(0, syscall.SIGTSTP); err != nil {
		return fmt.Errorf("suspend: %w", err)
	}
	if p.input != nil {
		rawState, err := term.MakeRaw(int(p.input.Fd()))
		if err != nil {
			return fmt.Errorf("raw mode: %w", err)
		}
		p.restoreTerm = rawState
	}
	p.writeString("\x1b[?1049h")
	p.updateSize()
	return nil
}
