package keywatch

import (
	"errors"
	"log"
	"unicode/utf8"
)

// errNoData reports that no input byte is available right now.
var errNoData = errors.New("no input data")

// maxEscapeTail is how many bytes beyond the escape introducer a single
// sequence may span. The longest entry in ansiKeys is seven bytes total.
const maxEscapeTail = 6

// byteSource returns the next available input byte, errNoData when the
// stream has nothing pending, or a hard read error.
type byteSource func() (byte, error)

// decoder assembles raw terminal bytes into readable key tokens. It
// owns the escape-sequence lookahead, UTF-8 assembly and the whitespace
// renaming; case folding is left to the listener.
type decoder struct {
	next byteSource
	dbg  *log.Logger
}

// readKey implements the Source contract over a byte stream.
func (d *decoder) readKey() (string, bool) {
	b, err := d.next()
	if errors.Is(err, errNoData) {
		return "", true
	}
	if err != nil {
		d.dbg.Printf("read error: %v", err)
		return "", false
	}

	switch {
	case isEscapeIntroducer(b):
		return d.readEscape(b)
	case b >= utf8.RuneSelf:
		return d.readRune(b)
	}
	return renameControl(string(rune(b))), true
}

// isEscapeIntroducer reports whether b starts an escape sequence. The
// whitespace controls have readable names of their own and DEL doubles
// as the backspace key.
func isEscapeIntroducer(b byte) bool {
	if b == '\t' || b == '\n' || b == '\r' {
		return false
	}
	return b < 0x20 || b == 0x7f
}

// readEscape drains up to maxEscapeTail immediately-available bytes
// after the introducer and resolves the whole buffer against the
// sequence table. A lone introducer is itself a valid sequence (esc,
// backspace). Unresolved sequences are skipped, never blocked on.
func (d *decoder) readEscape(intro byte) (string, bool) {
	seq := make([]byte, 1, maxEscapeTail+1)
	seq[0] = intro
	for len(seq) < cap(seq) {
		b, err := d.next()
		if err != nil {
			break
		}
		seq = append(seq, b)
	}
	if name, ok := lookupANSI(seq); ok {
		return name, true
	}
	d.dbg.Printf("unsupported escape sequence: %q", seq)
	return "", false
}

// readRune collects the continuation bytes of a multi-byte UTF-8
// character so keys like "ä" come through as one token.
func (d *decoder) readRune(first byte) (string, bool) {
	buf := make([]byte, 1, utf8.UTFMax)
	buf[0] = first
	for !utf8.FullRune(buf) && len(buf) < utf8.UTFMax {
		b, err := d.next()
		if err != nil {
			break
		}
		buf = append(buf, b)
	}
	r, _ := utf8.DecodeRune(buf)
	if r == utf8.RuneError {
		d.dbg.Printf("invalid input bytes: %q", buf)
		return "", false
	}
	return string(r), true
}
