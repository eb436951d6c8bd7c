package keywatch

// Source yields decoded key tokens from a terminal input stream.
//
// ReadKey reports one of three outcomes:
//   - (token, true): a decoded key such as "a", "up" or "enter".
//   - ("", true): no input is pending this tick.
//   - ("", false): this tick produced nothing usable (a failed read or
//     an unrecognized sequence) and the iteration should be skipped.
//
// The distinction between the last two matters: a no-input tick feeds
// the release-inference clock, a skipped tick does not.
//
// The platform terminal source is used by default; tests and embedders
// can inject their own through Config.Source, in which case the
// terminal is never put into raw mode.
type Source interface {
	ReadKey() (token string, ok bool)
}

// sessionSource is a Source bound to a terminal whose mode must be
// restored on every exit path.
type sessionSource interface {
	Source
	Restore()
}
