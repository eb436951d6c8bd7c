package keywatch

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"
)

// byteFeed serves a fixed byte slice and then reports no data forever.
func byteFeed(data []byte) byteSource {
	i := 0
	return func() (byte, error) {
		if i >= len(data) {
			return 0, errNoData
		}
		b := data[i]
		i++
		return b, nil
	}
}

func newTestDecoder(data []byte) (*decoder, *bytes.Buffer) {
	var buf bytes.Buffer
	return &decoder{next: byteFeed(data), dbg: log.New(&buf, "", 0)}, &buf
}

func TestDecodePlainAndWhitespace(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  string
	}{
		{"letter", []byte("a"), "a"},
		{"digit", []byte("7"), "7"},
		{"tab", []byte("\t"), "tab"},
		{"newline", []byte("\n"), "enter"},
		{"carriage return", []byte("\r"), "enter"},
		{"space", []byte(" "), "space"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, _ := newTestDecoder(tt.input)
			got, ok := d.readKey()
			if !ok || got != tt.want {
				t.Fatalf("readKey() = (%q, %v), want (%q, true)", got, ok, tt.want)
			}
		})
	}
}

func TestDecodeEscapeSequences(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  string
	}{
		{"lone escape", []byte{0x1b}, "esc"},
		{"delete char", []byte{0x7f}, "backspace"},
		{"arrow up", []byte("\x1b[A"), "up"},
		{"arrow up application mode", []byte("\x1bOA"), "up"},
		{"f5", []byte("\x1b[15~"), "f5"},
		{"f13 xterm", []byte("\x1b[1;2P"), "f13"},
		{"home rxvt", []byte("\x1b[1~"), "home"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, dbg := newTestDecoder(tt.input)
			got, ok := d.readKey()
			if !ok || got != tt.want {
				t.Fatalf("readKey() = (%q, %v), want (%q, true)", got, ok, tt.want)
			}
			if dbg.Len() != 0 {
				t.Fatalf("unexpected debug output: %s", dbg.String())
			}
		})
	}
}

func TestDecodeUnknownSequenceSkips(t *testing.T) {
	d, dbg := newTestDecoder([]byte("\x1b[Z"))
	got, ok := d.readKey()
	if ok || got != "" {
		t.Fatalf("readKey() = (%q, %v), want skip", got, ok)
	}
	out := dbg.String()
	if !strings.Contains(out, `\x1b[Z`) {
		t.Errorf("debug output %q does not name the raw bytes", out)
	}
	if n := strings.Count(out, "\n"); n != 1 {
		t.Errorf("got %d debug lines, want exactly one: %s", n, out)
	}
}

func TestDecodeUnknownControlSkips(t *testing.T) {
	d, dbg := newTestDecoder([]byte{0x01})
	if got, ok := d.readKey(); ok || got != "" {
		t.Fatalf("readKey() = (%q, %v), want skip", got, ok)
	}
	if dbg.Len() == 0 {
		t.Error("unknown control byte was not logged")
	}
}

func TestDecodeUTF8Rune(t *testing.T) {
	d, _ := newTestDecoder([]byte("ä"))
	got, ok := d.readKey()
	if !ok || got != "ä" {
		t.Fatalf("readKey() = (%q, %v), want (ä, true)", got, ok)
	}
}

func TestDecodeTruncatedUTF8Skips(t *testing.T) {
	d, dbg := newTestDecoder([]byte{0xc3})
	if got, ok := d.readKey(); ok || got != "" {
		t.Fatalf("readKey() = (%q, %v), want skip", got, ok)
	}
	if dbg.Len() == 0 {
		t.Error("truncated rune was not logged")
	}
}

func TestDecodeNoData(t *testing.T) {
	d, _ := newTestDecoder(nil)
	got, ok := d.readKey()
	if !ok || got != "" {
		t.Fatalf("readKey() = (%q, %v), want empty tick", got, ok)
	}
}

func TestDecodeReadError(t *testing.T) {
	hard := errors.New("input stream closed")
	var buf bytes.Buffer
	d := &decoder{
		next: func() (byte, error) { return 0, hard },
		dbg:  log.New(&buf, "", 0),
	}
	if got, ok := d.readKey(); ok || got != "" {
		t.Fatalf("readKey() = (%q, %v), want skip", got, ok)
	}
	if !strings.Contains(buf.String(), "read error") {
		t.Errorf("debug output %q does not mention the read error", buf.String())
	}
}

func TestDecodeSuccessiveKeys(t *testing.T) {
	d, _ := newTestDecoder([]byte("ab"))
	for _, want := range []string{"a", "b"} {
		got, ok := d.readKey()
		if !ok || got != want {
			t.Fatalf("readKey() = (%q, %v), want (%q, true)", got, ok, want)
		}
	}
	if got, ok := d.readKey(); !ok || got != "" {
		t.Fatalf("readKey() after drain = (%q, %v), want empty tick", got, ok)
	}
}
