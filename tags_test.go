package readmet

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeTag_String(t *testing.T) {
	data := []byte{
		0x02,       // string type
		0x04, 0x00, // name length
		'n', 'a', 'm', 'e',
		0x05, 0x00, // value length
		'v', 'a', 'l', 'u', 'e',
	}
	r := &metReader{r: bytes.NewReader(data)}
	tag, err := decodeTag(r)
	require.NoError(t, err)
	assert.Equal(t, TagString, tag.Type)
	assert.Equal(t, []byte("name"), tag.Name)
	assert.Equal(t, "value", tag.StringValue)
	assert.Equal(t, uint32(0), tag.IntValue)
}

func TestDecodeTag_Integer(t *testing.T) {
	data := []byte{
		0x03,       // integer type
		0x01, 0x00, // name length
		0x02,                   // file size field code
		0x00, 0x00, 0x40, 0x06, // 104857600 little-endian
	}
	r := &metReader{r: bytes.NewReader(data)}
	tag, err := decodeTag(r)
	require.NoError(t, err)
	assert.Equal(t, TagInteger, tag.Type)
	assert.Equal(t, []byte{0x02}, tag.Name)
	assert.Equal(t, uint32(104857600), tag.IntValue)
}

func TestDecodeTag_NameIsOpaque(t *testing.T) {
	// names may contain sentinel and NUL bytes - they must survive untouched
	data := []byte{
		0x03,
		0x04, 0x00,
		0x09, 0x00, 'A', 0x00,
		0xE8, 0x03, 0x00, 0x00,
	}
	r := &metReader{r: bytes.NewReader(data)}
	tag, err := decodeTag(r)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x09, 0x00, 'A', 0x00}, tag.Name)
}

func TestDecodeTag_UnrecognizedType(t *testing.T) {
	data := []byte{99, 0x01, 0x00, 'x', 0, 0, 0, 0}
	r := &metReader{r: bytes.NewReader(data)}
	_, err := decodeTag(r)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnrecognizedTagType)
}

func TestDecodeTag_Truncated(t *testing.T) {
	// string tag that promises more value bytes than the stream holds
	data := []byte{0x02, 0x01, 0x00, 'n', 0x0A, 0x00, 'x'}
	r := &metReader{r: bytes.NewReader(data)}
	_, err := decodeTag(r)
	assert.ErrorIs(t, err, ErrTruncatedInput)
}

func TestEncodeDecodeTag_RoundTrip(t *testing.T) {
	cases := []*Tag{
		{Type: TagString, Name: []byte{0x01}, StringValue: "movie.avi"},
		{Type: TagString, Name: []byte("Artist"), StringValue: "Somebody"},
		{Type: TagString, Name: []byte("x"), StringValue: ""},
		{Type: TagInteger, Name: []byte{0x02}, IntValue: 104857600},
		{Type: TagInteger, Name: []byte{0x09, 'A'}, IntValue: 1000},
		{Type: TagInteger, Name: []byte{0x0A, 'A'}, IntValue: 2000},
		{Type: TagInteger, Name: []byte{0x09, 0x00, 0xFF}, IntValue: 0},
	}
	for _, original := range cases {
		var buf bytes.Buffer
		require.NoError(t, encodeTag(&buf, original))
		r := &metReader{r: bytes.NewReader(buf.Bytes())}
		decoded, err := decodeTag(r)
		require.NoError(t, err)
		assert.Equal(t, original, decoded)
		// the whole encoding must have been consumed
		_, err = r.readByte("trailing")
		assert.ErrorIs(t, err, ErrTruncatedInput)
	}
}

func TestEncodeTag_UnrecognizedType(t *testing.T) {
	var buf bytes.Buffer
	err := encodeTag(&buf, &Tag{Type: TagType(7), Name: []byte("x")})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnrecognizedTagType)
	assert.Zero(t, buf.Len())
}

func TestParseTags_AbortPreservesDecoded(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, encodeTag(&buf, &Tag{Type: TagString, Name: []byte{0x01}, StringValue: "movie.avi"}))
	require.NoError(t, encodeTag(&buf, &Tag{Type: TagInteger, Name: []byte{0x02}, IntValue: 42}))
	buf.Write([]byte{99, 0x01, 0x00, 'x', 0, 0, 0, 0}) // bad type code

	r := &metReader{r: bytes.NewReader(buf.Bytes())}
	tags, err := parseTags(r, 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnrecognizedTagType)
	require.Len(t, tags, 2)
	assert.Equal(t, "movie.avi", tags[0].StringValue)
	assert.Equal(t, uint32(42), tags[1].IntValue)
}

func TestParseTags_CountHonored(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, encodeTag(&buf, &Tag{Type: TagInteger, Name: []byte{0x02}, IntValue: 1}))
	require.NoError(t, encodeTag(&buf, &Tag{Type: TagInteger, Name: []byte{0x08}, IntValue: 2}))

	r := &metReader{r: bytes.NewReader(buf.Bytes())}
	tags, err := parseTags(r, 1) // only the first record is requested
	require.NoError(t, err)
	assert.Len(t, tags, 1)
}
