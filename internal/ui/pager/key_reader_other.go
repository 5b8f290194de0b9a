//go:build windows || plan9 || js || wasip1

package pager

// startKeyReader reads keys with blocking reads; the goroutine ends with the
// process.
func (p *Pager) startKeyReader(done <-chan struct{}) (<-chan keyEvent, <-chan error, func()) {
	events := make(chan keyEvent, 1)
	errCh := make(chan error, 1)
	go func() {
		for {
			ev, err := p.readKeyEvent()
			if err != nil {
				errCh <- err
				return
			}
			select {
			case <-done:
				return
			case events <- ev:
			}
		}
	}()
	return events, errCh, nil
}
