package readmet

import (
	"encoding/binary"
	"fmt"
	"io"
)

// TagType is the value encoding of a meta tag record. The format defines
// exactly two codes; anything else is a decode failure, not a third variant.
type TagType byte

const (
	// TagString tags carry a length-prefixed string value.
	TagString TagType = 2
	// TagInteger tags carry a 4-byte little-endian integer value.
	TagInteger TagType = 3
)

func (t TagType) String() string {
	switch t {
	case TagString:
		return "string"
	case TagInteger:
		return "integer"
	}
	return fmt.Sprintf("0x%02X", byte(t))
}

// Tag is one decoded meta tag record. Name is the raw name bytes as they
// appear on the wire - not a text string. Special and gap tags smuggle
// sentinel bytes (including NULs and control characters) through it, so any
// textual interpretation belongs to classification, not decoding.
//
// StringValue and IntValue are mutually exclusive; Type says which one is
// populated.
type Tag struct {
	Type        TagType
	Name        []byte
	StringValue string
	IntValue    uint32
}

// decodeTag reads one meta tag record from the cursor.
func decodeTag(r *metReader) (*Tag, error) {
	typeCode, err := r.readByte("tag type")
	if err != nil {
		return nil, err
	}
	nameLen, err := r.readUint16("tag name length")
	if err != nil {
		return nil, err
	}
	name, err := r.readBytes(int(nameLen), "tag name")
	if err != nil {
		return nil, err
	}
	tag := &Tag{Type: TagType(typeCode), Name: name}
	switch tag.Type {
	case TagString:
		valueLen, err := r.readUint16("tag value length")
		if err != nil {
			return nil, err
		}
		value, err := r.readBytes(int(valueLen), "tag value")
		if err != nil {
			return nil, err
		}
		tag.StringValue = string(value)
	case TagInteger:
		if tag.IntValue, err = r.readUint32("tag value"); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: 0x%02X", ErrUnrecognizedTagType, typeCode)
	}
	return tag, nil
}

// encodeTag writes a tag record in the exact wire layout decodeTag reads,
// so decode(encode(tag)) round-trips bit-for-bit.
func encodeTag(w io.Writer, tag *Tag) error {
	if tag.Type != TagString && tag.Type != TagInteger {
		return fmt.Errorf("%w: 0x%02X", ErrUnrecognizedTagType, byte(tag.Type))
	}
	var buf []byte
	buf = append(buf, byte(tag.Type))
	buf = binary.LittleEndian.AppendUint16(buf, uint16(len(tag.Name)))
	buf = append(buf, tag.Name...)
	if tag.Type == TagString {
		buf = binary.LittleEndian.AppendUint16(buf, uint16(len(tag.StringValue)))
		buf = append(buf, tag.StringValue...)
	} else {
		buf = binary.LittleEndian.AppendUint32(buf, tag.IntValue)
	}
	_, err := w.Write(buf)
	return err
}

// parseTags decodes count records from the cursor. On failure the tags
// decoded so far are returned alongside the error - a bad record aborts the
// remainder of the stream but does not invalidate what came before it.
func parseTags(r *metReader, count uint32) ([]*Tag, error) {
	tags := make([]*Tag, 0, min(count, 64))
	for i := uint32(0); i < count; i++ {
		tag, err := decodeTag(r)
		if err != nil {
			return tags, fmt.Errorf("tag %d of %d: %w", i+1, count, err)
		}
		tags = append(tags, tag)
	}
	return tags, nil
}
