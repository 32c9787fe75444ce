package readmet

import "fmt"

// FormatVersion identifies the two supported .part.met layouts, tagged by
// the leading byte of the file.
type FormatVersion uint8

const (
	// Version14_0 is the eDonkey2000 v14.0 layout (leading byte 0xE0).
	Version14_0 FormatVersion = iota
	// Version14_1 is the v14.1 layout (leading byte 0xE1).
	Version14_1
)

func (v FormatVersion) String() string {
	if v == Version14_1 {
		return "14.1"
	}
	return "14.0"
}

const (
	formatTag14_0 = 0xE0
	formatTag14_1 = 0xE1

	hashOffset14_0 = 5
	hashOffset14_1 = 6

	// v14.0 carries a hash-set block table between the content hash and the
	// tag count; the u16 block count sits at a fixed offset and each block
	// is 16 bytes.
	blockCountOffset14_0 = 21
	blockSize14_0        = 16
	tagCountBase14_0     = 23

	// v14.1 has no block table - the tag count follows the hash directly.
	tagCountOffset14_1 = 22
)

// Header represents the resolved .part.met header: the detected version and
// the absolute offsets of the content hash and the tag count. The two
// offsets are unrelated positions with intervening content, so extraction
// seeks to each independently.
type Header struct {
	Version        FormatVersion
	HashOffset     int64
	TagCountOffset int64
	// BlockCount is the hash-set block count (v14.0 only, zero for v14.1).
	BlockCount uint16
}

func parseHeader(r *metReader) (Header, error) {
	tag, err := r.readByte("format tag")
	if err != nil {
		return Header{}, err
	}
	switch tag {
	case formatTag14_0:
		hdr := Header{Version: Version14_0, HashOffset: hashOffset14_0}
		if err = r.seek(blockCountOffset14_0); err != nil {
			return Header{}, err
		}
		if hdr.BlockCount, err = r.readUint16("block count"); err != nil {
			return Header{}, err
		}
		hdr.TagCountOffset = tagCountBase14_0 + blockSize14_0*int64(hdr.BlockCount)
		return hdr, nil
	case formatTag14_1:
		return Header{
			Version:        Version14_1,
			HashOffset:     hashOffset14_1,
			TagCountOffset: tagCountOffset14_1,
		}, nil
	default:
		return Header{}, fmt.Errorf("%w: leading byte 0x%02X", ErrUnrecognizedFormat, tag)
	}
}
