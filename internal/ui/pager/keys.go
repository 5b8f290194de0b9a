package pager

import (
	"errors"
	"unicode/utf8"
)

type keyKind int

const (
	keyUnknown keyKind = iota
	keyRune
	keyUp
	keyDown
	keyPageUp
	keyPageDown
	keyHome
	keyEnd
	keyEnter
	keyBackspace
	keyEscape
	keyCtrlC
	keyCtrlZ
)

type keyEvent struct {
	kind keyKind
	r    rune
}

func (p *Pager) readKeyEvent() (keyEvent, error) {
	if p.reader == nil {
		return keyEvent{}, errors.New("no reader available")
	}
	b, err := p.reader.ReadByte()
	if err != nil {
		return keyEvent{}, err
	}

	switch b {
	case 0x1b:
		return p.parseEscapeSequence()
	case '\r', '\n':
		return keyEvent{kind: keyEnter}, nil
	case 0x7f, 0x08:
		return keyEvent{kind: keyBackspace}, nil
	case 0x03:
		return keyEvent{kind: keyCtrlC}, nil
	case 0x1a:
		return keyEvent{kind: keyCtrlZ}, nil
	}
	if b < 0x20 {
		return keyEvent{kind: keyUnknown}, nil
	}
	if b < utf8.RuneSelf {
		return keyEvent{kind: keyRune, r: rune(b)}, nil
	}

	if err := p.reader.UnreadByte(); err != nil {
		return keyEvent{kind: keyUnknown}, nil
	}
	r, _, err := p.reader.ReadRune()
	if err != nil || r == utf8.RuneError {
		return keyEvent{kind: keyUnknown}, nil
	}
	return keyEvent{kind: keyRune, r: r}, nil
}

func (p *Pager) parseEscapeSequence() (keyEvent, error) {
	if p.reader.Buffered() == 0 {
		return keyEvent{kind: keyEscape}, nil
	}
	next, err := p.reader.ReadByte()
	if err != nil {
		return keyEvent{kind: keyEscape}, nil
	}

	switch next {
	case '[':
		return p.parseCSI()
	case 'O':
		final, err := p.reader.ReadByte()
		if err != nil {
			return keyEvent{kind: keyEscape}, nil
		}
		switch final {
		case 'H':
			return keyEvent{kind: keyHome}, nil
		case 'F':
			return keyEvent{kind: keyEnd}, nil
		}
		return keyEvent{kind: keyUnknown}, nil
	}
	return keyEvent{kind: keyEscape}, nil
}

func (p *Pager) parseCSI() (keyEvent, error) {
	var seq []byte
	for len(seq) < 6 {
		b, err := p.reader.ReadByte()
		if err != nil {
			return keyEvent{kind: keyEscape}, nil
		}
		seq = append(seq, b)
		if (b >= 'A' && b <= 'Z') || b == '~' {
			break
		}
	}

	switch seq[len(seq)-1] {
	case 'A':
		return keyEvent{kind: keyUp}, nil
	case 'B':
		return keyEvent{kind: keyDown}, nil
	case 'H':
		return keyEvent{kind: keyHome}, nil
	case 'F':
		return keyEvent{kind: keyEnd}, nil
	case '~':
		switch string(seq[:len(seq)-1]) {
		case "1", "7":
			return keyEvent{kind: keyHome}, nil
		case "4", "8":
			return keyEvent{kind: keyEnd}, nil
		case "5":
			return keyEvent{kind: keyPageUp}, nil
		case "6":
			return keyEvent{kind: keyPageDown}, nil
		}
	}
	return keyEvent{kind: keyUnknown}, nil
}
