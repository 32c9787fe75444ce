package readmet

import (
	"encoding/binary"
	"fmt"
	"io"
)

// metReader is a sequential little-endian cursor over a .part.met stream.
// Every read consumes exactly the requested byte count; a short read is a
// fatal ErrTruncatedInput.
type metReader struct {
	r io.ReadSeeker
}

func (m *metReader) readByte(what string) (byte, error) {
	buf, err := m.readBytes(1, what)
	if err != nil {
		return 0, err
	}
	return buf[0], nil
}

func (m *metReader) readUint16(what string) (uint16, error) {
	buf, err := m.readBytes(2, what)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(buf), nil
}

func (m *metReader) readUint32(what string) (uint32, error) {
	buf, err := m.readBytes(4, what)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf), nil
}

func (m *metReader) readBytes(n int, what string) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(m.r, buf); err != nil {
		return nil, fmt.Errorf("%w: reading %s (%d bytes): %v", ErrTruncatedInput, what, n, err)
	}
	return buf, nil
}

// seek repositions the cursor to an absolute offset from start-of-stream.
func (m *metReader) seek(offset int64) error {
	if _, err := m.r.Seek(offset, io.SeekStart); err != nil {
		return fmt.Errorf("%w: offset %d: %v", ErrSeek, offset, err)
	}
	return nil
}
