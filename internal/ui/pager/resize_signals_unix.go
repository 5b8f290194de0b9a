//go:build !windows && !plan9 && !js && !wasip1

package pager

import (
	"os"
	"syscall"
)

// resizeSignals trigger a size refresh: window changes and resuming after
// a suspend.
func resizeSignals() []os.Signal {
	return []os.Signal{syscall.SIGWINCH, syscall.SIGCONT}
}
