//go:build windows || plan9 || js || wasip1

package pager

import "errors"

func (p *Pager) suspendToShell() error {
	return errors.New("suspend not supported")
}
