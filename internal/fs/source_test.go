package fs

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDecodeText(t *testing.T) {
	tests := []struct {
		name    string
		content []byte
		want    string
	}{
		{"utf16le", []byte{0xFF, 0xFE, 0x41, 0x00, 0x0D, 0x00, 0x0A, 0x00}, "A\r\n"},
		{"utf16be", []byte{0xFE, 0xFF, 0x00, 0x68, 0x00, 0x69}, "hi"},
		{"utf8 bom", []byte{0xEF, 0xBB, 0xBF, 'o', 'k'}, "ok"},
		{"plain", []byte("plain"), "plain"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DecodeText(tt.content); got != tt.want {
				t.Fatalf("DecodeText=%q want %q", got, tt.want)
			}
		})
	}
}

func TestIsText(t *testing.T) {
	if !IsText([]byte{0xFF, 0xFE, 0x41, 0x00}) {
		t.Fatalf("UTF-16 content must be text")
	}
	if IsText([]byte{'a', 0x00, 'b'}) {
		t.Fatalf("NUL bytes must mean binary")
	}
	if !IsText(nil) {
		t.Fatalf("empty content is text")
	}
	if IsText([]byte{0x01, 0x02, 0x03, 0xff, 0x04}) {
		t.Fatalf("control bytes must mean binary")
	}
}

func TestLooksLikeHTML(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"page.HTML", "anything", true},
		{"notes.txt", "just words", false},
		{"<stdin>", "  <!DOCTYPE html><p>x</p>", true},
		{"<stdin>", "<html><body>x</body></html>", true},
		{"readme", "a < b", false},
	}
	for _, tt := range tests {
		if got := LooksLikeHTML(tt.name, tt.text); got != tt.want {
			t.Fatalf("LooksLikeHTML(%q,%q)=%v want %v", tt.name, tt.text, got, tt.want)
		}
	}
}

func TestReadWrapsPlainText(t *testing.T) {
	src, err := Read(strings.NewReader("a < b\n\tc"), "notes.txt")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if src.Markup {
		t.Fatalf("plain text reported as markup")
	}
	if want := "<pre>a &lt; b\n\tc</pre>"; src.HTML != want {
		t.Fatalf("HTML=%q want %q", src.HTML, want)
	}
}

func TestReadRejectsBinary(t *testing.T) {
	_, err := Read(strings.NewReader("\x00\x01\x02"), "blob")
	if !errors.Is(err, ErrBinary) {
		t.Fatalf("err=%v want ErrBinary", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.html")
	if err := os.WriteFile(path, []byte("\xEF\xBB\xBF<p>hi</p>"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	src, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !src.Markup || src.HTML != "<p>hi</p>" || src.Path != path {
		t.Fatalf("unexpected source %+v", src)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.html")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("missing file err=%v want ErrNotExist", err)
	}
}
