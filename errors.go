package readmet

import "errors"

// Decode errors. All of them are fatal for the decode that raised them;
// the format has no resynchronisation markers, so there is no recovery
// past a bad byte. Match with errors.Is.
var (
	// ErrUnrecognizedFormat is returned when the leading format byte is
	// neither 0xE0 (v14.0) nor 0xE1 (v14.1).
	ErrUnrecognizedFormat = errors.New("unrecognized .part.met format")
	// ErrTruncatedInput is returned when the stream ends before a field
	// could be read in full.
	ErrTruncatedInput = errors.New("truncated input")
	// ErrSeek is returned when an absolute seek target is unreachable.
	ErrSeek = errors.New("seek failed")
	// ErrUnrecognizedTagType is returned for a tag type code other than
	// string (2) or integer (3). Tags decoded before the bad record are
	// still returned to the caller.
	ErrUnrecognizedTagType = errors.New("unrecognized tag type")
)
