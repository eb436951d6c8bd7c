//go:build !windows

package keywatch

import (
	"errors"
	"fmt"
	"log"
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// terminalSource owns the raw, non-blocking terminal and decodes keys
// from it. Restore must run on every exit path so the shell gets its
// terminal back in a sane state.
type terminalSource struct {
	fd    int
	state *term.State
	dec   decoder
}

func openTerminal(dbg *log.Logger) (sessionSource, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, errors.New("stdin is not a terminal")
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("enter raw mode: %w", err)
	}
	if err := unix.SetNonblock(fd, true); err != nil {
		_ = term.Restore(fd, state)
		return nil, fmt.Errorf("set non-blocking: %w", err)
	}
	ts := &terminalSource{fd: fd, state: state}
	ts.dec = decoder{next: ts.readByte, dbg: dbg}
	return ts, nil
}

// ReadKey decodes the next key token from the terminal.
func (t *terminalSource) ReadKey() (string, bool) {
	return t.dec.readKey()
}

// readByte pulls one byte off the non-blocking terminal fd. EAGAIN and
// EOF both mean there is nothing to read this tick.
func (t *terminalSource) readByte() (byte, error) {
	var buf [1]byte
	n, err := unix.Read(t.fd, buf[:])
	if err != nil {
		if errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EINTR) {
			return 0, errNoData
		}
		return 0, err
	}
	if n == 0 {
		return 0, errNoData
	}
	return buf[0], nil
}

// Restore undoes the non-blocking flag and raw mode.
func (t *terminalSource) Restore() {
	_ = unix.SetNonblock(t.fd, false)
	_ = term.Restore(t.fd, t.state)
}
