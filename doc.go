// Package keywatch listens to a terminal's raw input stream and turns
// it into key press and release events, even though terminals never
// report key releases. It is meant for keyboard control over SSH and
// other places where /dev/input style device access is not available.
//
// A release is inferred from silence: while a key is held the terminal
// auto-repeats its bytes, so once no byte has arrived for longer than
// both configured thresholds the held key is considered released. The
// first repeat arrives noticeably later than the rest, which is why
// there are two thresholds.
//
// Minimal use:
//
//	cfg := keywatch.DefaultConfig()
//	cfg.OnPress = func(key string) error {
//		fmt.Printf("%q pressed\n", key)
//		return nil
//	}
//	cfg.OnRelease = func(key string) error {
//		fmt.Printf("%q released\n", key)
//		return nil
//	}
//	if err := keywatch.Listen(cfg); err != nil {
//		log.Fatal(err)
//	}
//
// Listening stops when the Until key is read (esc by default), when
// Stop is called, when the context given to Listener.Listen is
// cancelled, or when a handler returns an error. The terminal is
// restored from raw mode on every exit path.
package keywatch
