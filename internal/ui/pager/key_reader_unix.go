//go:build !windows && !plan9 && !js && !wasip1

package pager

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

// startKeyReader decodes keys on a goroutine. select(2) waits on the input
// and a cancel pipe so the goroutine can be stopped without closing the tty.
func (p *Pager) startKeyReader(done <-chan struct{}) (<-chan keyEvent, <-chan error, func()) {
	events := make(chan keyEvent, 1)
	errCh := make(chan error, 1)
	if p.input == nil {
		errCh <- errors.New("no pager input available")
		return events, errCh, nil
	}
	cancelR, cancelW, err := os.Pipe()
	if err != nil {
		errCh <- err
		return events, errCh, nil
	}
	stop := func() {
		_, _ = cancelW.Write([]byte{1})
		_ = cancelW.Close()
	}

	send := func() bool {
		ev, err := p.readKeyEvent()
		if err != nil {
			select {
			case errCh <- err:
			default:
			}
			return false
		}
		select {
		case <-done:
			return false
		case events <- ev:
			return true
		}
	}

	go func() {
		defer func() {
			_ = cancelR.Close()
		}()
		inputFd := int(p.input.Fd())
		cancelFd := int(cancelR.Fd())
		for {
			// Bytes already buffered (a paste, a multi-key burst) would never
			// wake select.
			if p.reader.Buffered() > 0 {
				if !send() {
					return
				}
				continue
			}
			var readfds unix.FdSet
			readfds.Set(inputFd)
			readfds.Set(cancelFd)
			n, err := unix.Select(max(inputFd, cancelFd)+1, &readfds, nil, nil, nil)
			if err == unix.EINTR {
				continue
			}
			if err != nil {
				select {
				case errCh <- err:
				default:
				}
				return
			}
			if n == 0 {
				continue
			}
			if readfds.IsSet(cancelFd) {
				return
			}
			if readfds.IsSet(inputFd) && !send() {
				return
			}
		}
	}()

	return events, errCh, stop
}
