// Package fs loads documents from disk or stdin and decodes them to UTF-8.
package fs

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

// MaxDocumentSize caps how much of a file is read.
const MaxDocumentSize = 32 << 20

const (
	sniffSize                    = 4096
	nonPrintableThresholdPercent = 30
)

var (
	// ErrBinary is returned for content that does not look like text.
	ErrBinary = errors.New("binary content")
	// ErrTooLarge is returned when a document exceeds MaxDocumentSize.
	ErrTooLarge = errors.New("document too large")
)

type byteOrder int

const (
	orderNone byteOrder = iota
	orderUTF8BOM
	orderUTF16LE
	orderUTF16BE
)

var htmlExtensions = map[string]struct{}{
	".htm":   {},
	".html":  {},
	".xhtml": {},
}

// Source is a decoded document ready for parsing.
type Source struct {
	Path string
	// HTML is the markup to parse. Plain text sources are escaped and wrapped
	// in <pre> so their line layout survives.
	HTML string
	// Markup reports whether the input was HTML.
	Markup bool
}

// Load reads path ("-" for stdin) and decodes it.
func Load(path string) (Source, error) {
	var (
		r    io.Reader
		name = path
	)
	if path == "-" || path == "" {
		r = os.Stdin
		name = "<stdin>"
	} else {
		f, err := os.Open(path)
		if err != nil {
			return Source{}, fmt.Errorf("open %s: %w", path, err)
		}
		defer func() {
			_ = f.Close()
		}()
		r = f
	}
	return Read(r, name)
}

// Read decodes a document from r. The name decides between HTML and plain
// text when its extension is known.
func Read(r io.Reader, name string) (Source, error) {
	content, err := io.ReadAll(io.LimitReader(r, MaxDocumentSize+1))
	if err != nil {
		return Source{}, fmt.Errorf("read %s: %w", name, err)
	}
	if len(content) > MaxDocumentSize {
		return Source{}, fmt.Errorf("%s: %w", name, ErrTooLarge)
	}
	if !IsText(content) {
		return Source{}, fmt.Errorf("%s: %w", name, ErrBinary)
	}

	text := DecodeText(content)
	src := Source{Path: name, Markup: LooksLikeHTML(name, text)}
	if src.Markup {
		src.HTML = text
	} else {
		src.HTML = "<pre>" + html.EscapeString(text) + "</pre>"
	}
	return src, nil
}

// LooksLikeHTML decides by extension first and falls back to sniffing the
// first tag of the content.
func LooksLikeHTML(name, text string) bool {
	if _, ok := htmlExtensions[strings.ToLower(filepath.Ext(name))]; ok {
		return true
	}
	head := text
	if len(head) > sniffSize {
		head = head[:sniffSize]
	}
	head = strings.ToLower(strings.TrimSpace(head))
	for _, prefix := range []string{"<!doctype html", "<html", "<body", "<!--"} {
		if strings.HasPrefix(head, prefix) {
			return true
		}
	}
	return false
}

// IsText reports whether content is text. Unicode BOMs settle it; otherwise
// NUL bytes or too many control bytes in the first block mean binary.
func IsText(content []byte) bool {
	if len(content) == 0 {
		return true
	}
	sample := content
	if len(sample) > sniffSize {
		sample = sample[:sniffSize]
	}
	if detectByteOrder(sample) != orderNone {
		return true
	}
	if bytes.IndexByte(sample, 0x00) != -1 {
		return false
	}
	if utf8.Valid(sample) {
		return true
	}
	bad := 0
	for _, b := range sample {
		if !isTextByte(b) {
			bad++
		}
	}
	return bad*100/len(sample) < nonPrintableThresholdPercent
}

func isTextByte(b byte) bool {
	switch {
	case b == '\t' || b == '\n' || b == '\r' || b == 0x1b:
		return true
	case b >= 0x20 && b != 0x7f:
		return true
	default:
		return false
	}
}

func detectByteOrder(sample []byte) byteOrder {
	switch {
	case bytes.HasPrefix(sample, []byte{0xEF, 0xBB, 0xBF}):
		return orderUTF8BOM
	case bytes.HasPrefix(sample, []byte{0xFF, 0xFE}):
		return orderUTF16LE
	case bytes.HasPrefix(sample, []byte{0xFE, 0xFF}):
		return orderUTF16BE
	}
	return orderNone
}

// DecodeText strips a UTF-8 BOM and converts UTF-16 input to UTF-8.
func DecodeText(content []byte) string {
	switch detectByteOrder(content) {
	case orderUTF8BOM:
		return string(content[3:])
	case orderUTF16LE:
		return decodeUTF16(content, unicode.LittleEndian)
	case orderUTF16BE:
		return decodeUTF16(content, unicode.BigEndian)
	}
	return string(content)
}

func decodeUTF16(content []byte, endian unicode.Endianness) string {
	out, err := unicode.UTF16(endian, unicode.ExpectBOM).NewDecoder().Bytes(content)
	if err != nil {
		return string(content)
	}
	return string(out)
}
