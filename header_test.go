package readmet

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func headerBytes14_0(blockCount uint16) []byte {
	buf := make([]byte, 23+int(blockCount)*16+4)
	buf[0] = formatTag14_0
	binary.LittleEndian.PutUint16(buf[21:23], blockCount)
	return buf
}

func TestParseHeader_Version14_0(t *testing.T) {
	cases := []struct {
		blockCount     uint16
		tagCountOffset int64
	}{
		{blockCount: 0, tagCountOffset: 23},
		{blockCount: 3, tagCountOffset: 71},
		{blockCount: 10, tagCountOffset: 183},
	}
	for _, tc := range cases {
		r := &metReader{r: bytes.NewReader(headerBytes14_0(tc.blockCount))}
		hdr, err := parseHeader(r)
		require.NoError(t, err)
		assert.Equal(t, Version14_0, hdr.Version)
		assert.Equal(t, int64(5), hdr.HashOffset)
		assert.Equal(t, tc.blockCount, hdr.BlockCount)
		assert.Equal(t, tc.tagCountOffset, hdr.TagCountOffset)
	}
}

func TestParseHeader_Version14_1(t *testing.T) {
	// tag count offset is fixed, whatever else the stream holds
	data := append([]byte{formatTag14_1}, bytes.Repeat([]byte{0xFF}, 30)...)
	r := &metReader{r: bytes.NewReader(data)}
	hdr, err := parseHeader(r)
	require.NoError(t, err)
	assert.Equal(t, Version14_1, hdr.Version)
	assert.Equal(t, int64(6), hdr.HashOffset)
	assert.Equal(t, int64(22), hdr.TagCountOffset)
	assert.Equal(t, uint16(0), hdr.BlockCount)
}

func TestParseHeader_UnrecognizedFormat(t *testing.T) {
	for _, lead := range []byte{0x00, 0x01, 0xE2, 0xFF} {
		data := append([]byte{lead}, bytes.Repeat([]byte{0xE0}, 64)...)
		r := &metReader{r: bytes.NewReader(data)}
		_, err := parseHeader(r)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnrecognizedFormat)
	}
}

func TestParseHeader_Truncated(t *testing.T) {
	r := &metReader{r: bytes.NewReader(nil)}
	_, err := parseHeader(r)
	assert.ErrorIs(t, err, ErrTruncatedInput)

	// v14.0 stream too short to hold the block count
	r = &metReader{r: bytes.NewReader([]byte{formatTag14_0, 0, 0, 0, 0})}
	_, err = parseHeader(r)
	assert.ErrorIs(t, err, ErrTruncatedInput)
}

func TestFormatVersion_String(t *testing.T) {
	assert.Equal(t, "14.0", Version14_0.String())
	assert.Equal(t, "14.1", Version14_1.String())
}
