//go:build windows

package keywatch

import (
	"fmt"
	"log"
	"unsafe"

	"golang.org/x/sys/windows"
)

// winKeys maps console key units to readable names. Extended keys
// arrive as two units in the classic getwch convention: a 0x00 or 0xE0
// prefix followed by the key's code.
var winKeys = map[string]string{
	"\x1b": "esc",
	"\b":   "backspace",

	"àR": "insert",
	"àS": "delete",
	"àI": "pageup",
	"àQ": "pagedown",
	"àG": "home",
	"àO": "end",
	"àH": "up",
	"àP": "down",
	"àM": "right",
	"àK": "left",

	"\x00;": "f1",
	"\x00<": "f2",
	"\x00=": "f3",
	"\x00>": "f4",
	"\x00?": "f5",
	"\x00@": "f6",
	"\x00A": "f7",
	"\x00B": "f8",
	"\x00C": "f9",
	"\x00D": "f10",
	// f11 has no reliable two-unit form across consoles
	"à": "f12",
}

const (
	keyEventType = 0x0001
	enhancedKey  = 0x0100
)

var (
	kernel32                          = windows.NewLazySystemDLL("kernel32.dll")
	procReadConsoleInputW             = kernel32.NewProc("ReadConsoleInputW")
	procGetNumberOfConsoleInputEvents = kernel32.NewProc("GetNumberOfConsoleInputEvents")
)

// inputRecord mirrors INPUT_RECORD.
type inputRecord struct {
	eventType uint16
	_         uint16
	event     [16]byte
}

// keyEventRecord mirrors KEY_EVENT_RECORD.
type keyEventRecord struct {
	keyDown         int32
	repeatCount     uint16
	virtualKeyCode  uint16
	virtualScanCode uint16
	unicodeChar     uint16
	controlKeyState uint32
}

// consoleSource reads key events from the Windows console. Raw mode
// here only means disabling line buffering and echo; non-blocking
// behavior comes from polling the event queue before reading.
type consoleSource struct {
	handle  windows.Handle
	oldMode uint32
	pending []rune
	dbg     *log.Logger
}

func openTerminal(dbg *log.Logger) (sessionSource, error) {
	h, err := windows.GetStdHandle(windows.STD_INPUT_HANDLE)
	if err != nil {
		return nil, fmt.Errorf("console handle: %w", err)
	}
	var mode uint32
	if err := windows.GetConsoleMode(h, &mode); err != nil {
		return nil, fmt.Errorf("console mode: %w", err)
	}
	raw := mode &^ uint32(windows.ENABLE_LINE_INPUT|windows.ENABLE_ECHO_INPUT|windows.ENABLE_PROCESSED_INPUT)
	if err := windows.SetConsoleMode(h, raw); err != nil {
		return nil, fmt.Errorf("set console mode: %w", err)
	}
	return &consoleSource{handle: h, oldMode: mode, dbg: dbg}, nil
}

// Restore puts the console mode back.
func (c *consoleSource) Restore() {
	_ = windows.SetConsoleMode(c.handle, c.oldMode)
}

// ReadKey polls the console event queue. No pending key event means an
// empty tick; unresolved multi-unit keys are skipped with a notice.
func (c *consoleSource) ReadKey() (string, bool) {
	u, ok := c.readUnit()
	if !ok {
		return "", true
	}
	unit := string(u)
	if u == 0x1b || u == '\b' || u == 0x00 || u == 0xe0 {
		if u == 0x00 || u == 0xe0 {
			u2, ok := c.readUnit()
			if !ok {
				c.dbg.Printf("truncated console key: %q", unit)
				return "", false
			}
			unit += string(u2)
		}
		if name, ok := winKeys[unit]; ok {
			return name, true
		}
		c.dbg.Printf("unsupported console key: %q", unit)
		return "", false
	}
	return renameControl(unit), true
}

// modifierVKs are key-down events that produce no character on their
// own and must not be turned into units.
var modifierVKs = map[uint16]bool{
	0x10: true, // shift
	0x11: true, // control
	0x12: true, // alt
	0x14: true, // caps lock
	0x5b: true, // left win
	0x5c: true, // right win
	0x90: true, // num lock
	0x91: true, // scroll lock
}

// readUnit emulates a single wide-character console read: queued units
// first, then the next key-down event, never blocking.
func (c *consoleSource) readUnit() (rune, bool) {
	if len(c.pending) > 0 {
		u := c.pending[0]
		c.pending = c.pending[1:]
		return u, true
	}
	for {
		var waiting uint32
		r, _, err := procGetNumberOfConsoleInputEvents.Call(uintptr(c.handle), uintptr(unsafe.Pointer(&waiting)))
		if r == 0 {
			c.dbg.Printf("console poll: %v", err)
			return 0, false
		}
		if waiting == 0 {
			return 0, false
		}
		var rec inputRecord
		var read uint32
		r, _, err = procReadConsoleInputW.Call(uintptr(c.handle), uintptr(unsafe.Pointer(&rec)), 1, uintptr(unsafe.Pointer(&read)))
		if r == 0 || read == 0 {
			c.dbg.Printf("console read: %v", err)
			return 0, false
		}
		if rec.eventType != keyEventType {
			continue
		}
		kev := (*keyEventRecord)(unsafe.Pointer(&rec.event[0]))
		if kev.keyDown == 0 || modifierVKs[kev.virtualKeyCode] {
			continue
		}
		if kev.unicodeChar != 0 {
			u := rune(kev.unicodeChar)
			for i := uint16(1); i < kev.repeatCount; i++ {
				c.pending = append(c.pending, u)
			}
			return u, true
		}
		// Extended key: emit prefix then code, matching the getwch
		// convention the winKeys table is written in.
		prefix := rune(0)
		if kev.controlKeyState&enhancedKey != 0 {
			prefix = 0xe0
		}
		code := rune(kev.virtualScanCode)
		if kev.virtualKeyCode == 0x7b { // F12 reports outside the scan-code range
			prefix, code = 0xe0, 0x86
		}
		if code == 0 {
			continue
		}
		c.pending = append(c.pending, code)
		return prefix, true
	}
}
