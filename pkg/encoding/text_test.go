package encoding

import (
	"bytes"
	"io"
	"testing"
)

// utf16LE encodes ASCII s as UTF-16LE with a BOM.
func utf16LE(s string) []byte {
	out := []byte{0xFF, 0xFE}
	for i := 0; i < len(s); i++ {
		out = append(out, s[i], 0)
	}
	return out
}

// utf16BE encodes ASCII s as UTF-16BE with a BOM.
func utf16BE(s string) []byte {
	out := []byte{0xFE, 0xFF}
	for i := 0; i < len(s); i++ {
		out = append(out, 0, s[i])
	}
	return out
}

func TestNewReader(t *testing.T) {
	const text = "v 1 2 3\nf 1 2 3\n"

	tests := []struct {
		name  string
		input []byte
	}{
		{"plain", []byte(text)},
		{"utf8 bom", append([]byte{0xEF, 0xBB, 0xBF}, text...)},
		{"utf16le bom", utf16LE(text)},
		{"utf16be bom", utf16BE(text)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := io.ReadAll(NewReader(bytes.NewReader(tt.input)))
			if err != nil {
				t.Fatalf("ReadAll failed: %v", err)
			}
			if string(got) != text {
				t.Errorf("got %q, want %q", got, text)
			}
		})
	}
}

func TestInvalidUTF8Replaced(t *testing.T) {
	got, err := io.ReadAll(NewReader(bytes.NewReader([]byte("# \xff\n"))))
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if string(got) != "# \uFFFD\n" {
		t.Errorf("got %q, want replacement character", got)
	}
}
