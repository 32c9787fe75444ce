// Package readmet decodes the .part.met partial-download metadata files
// written by eDonkey2000, Overnet and eMule clients: the ED2K content hash,
// the self-describing meta tag stream, and the downloaded/missing byte
// ranges of the in-progress file.
package readmet

import (
	"fmt"
	"io"
	"os"
	"strings"
)

type ParseMode uint8

const (
	// ParseFull decodes the header, hash, tag count and every tag.
	ParseFull ParseMode = iota
	// ParseHeaderOnly stops after the hash and tag count - useful for just
	// listing version/hash metadata without touching the tag stream.
	ParseHeaderOnly
)

// ParseOptions represents the parsing options passed to Parse
type ParseOptions struct {
	// Mode determines how much of the file to parse
	//
	// the default is ParseFull - parses everything
	Mode ParseMode
}

// PartMet represents the decoded contents of a .part.met file
type PartMet struct {
	// Header is the resolved format header (version and field offsets)
	Header Header
	// Hash is the 16-byte ED2K content identifier
	Hash Hash
	// TagCount is the declared number of meta tags
	TagCount uint32
	// Tags is the decoded meta tag stream
	Tags []*Tag
}

// Parse decodes a .part.met stream from the supplied reader with the
// supplied ParseOptions.
//
// if the ParseOptions supplied is nil, default (full) options are used
//
// When the tag stream aborts with ErrUnrecognizedTagType, the returned
// PartMet still carries the tags decoded before the bad record.
func Parse(r io.ReadSeeker, options *ParseOptions) (result *PartMet, err error) {
	if options == nil {
		options = &ParseOptions{
			Mode: ParseFull,
		}
	}
	mr := &metReader{r: r}
	result = &PartMet{}
	if result.Header, err = parseHeader(mr); err != nil {
		return result, err
	}
	if result.Hash, err = parseHash(mr, result.Header); err != nil {
		return result, err
	}
	if err = mr.seek(result.Header.TagCountOffset); err != nil {
		return result, err
	}
	if result.TagCount, err = mr.readUint32("tag count"); err != nil {
		return result, err
	}
	if options.Mode < ParseHeaderOnly {
		result.Tags, err = parseTags(mr, result.TagCount)
	}
	return result, err
}

// ParseFile opens path read-only, decodes it and closes it on every path.
func ParseFile(path string, options *ParseOptions) (*PartMet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()
	result, err := Parse(f, options)
	if err != nil {
		return result, fmt.Errorf("%s: %w", path, err)
	}
	return result, nil
}

// SpecialTag retrieves the first special tag with the given field code.
func (p *PartMet) SpecialTag(id byte) (*Tag, bool) {
	for _, tag := range p.Tags {
		if got, ok := tag.SpecialID(); ok && got == id {
			return tag, true
		}
	}
	return nil, false
}

// StandardTag retrieves the first tag whose name matches the given text
// label, compared case-insensitively.
func (p *PartMet) StandardTag(name string) (*Tag, bool) {
	for _, tag := range p.Tags {
		if Classify(tag) == CategoryStandard && strings.EqualFold(string(tag.Name), name) {
			return tag, true
		}
	}
	return nil, false
}

// FileName returns the target filename, or "" when absent.
func (p *PartMet) FileName() string {
	if tag, ok := p.SpecialTag(FieldFileName); ok && tag.Type == TagString {
		return tag.StringValue
	}
	return ""
}

// FileSize returns the target file size in bytes, or 0 when absent.
func (p *PartMet) FileSize() uint32 {
	if tag, ok := p.SpecialTag(FieldFileSize); ok && tag.Type == TagInteger {
		return tag.IntValue
	}
	return 0
}

// DownloadedBytes returns the number of bytes downloaded so far, or 0 when
// absent.
func (p *PartMet) DownloadedBytes() uint32 {
	if tag, ok := p.SpecialTag(FieldDownloaded); ok && tag.Type == TagInteger {
		return tag.IntValue
	}
	return 0
}

// LastSeen returns the unix timestamp the file was last seen complete on
// the network.
func (p *PartMet) LastSeen() (uint32, bool) {
	if tag, ok := p.SpecialTag(FieldLastSeen); ok && tag.Type == TagInteger {
		return tag.IntValue, true
	}
	return 0, false
}

// Status returns the download status code (field 20).
func (p *PartMet) Status() (uint32, bool) {
	if tag, ok := p.SpecialTag(FieldStatus); ok && tag.Type == TagInteger {
		return tag.IntValue, true
	}
	return 0, false
}

// Progress returns the download progress as a percentage, 0 when the file
// size is unknown or zero.
func (p *PartMet) Progress() float64 {
	return Percentage(p.DownloadedBytes(), p.FileSize())
}

// Gaps reconciles the gap tags into undownloaded byte ranges.
func (p *PartMet) Gaps() []GapRange {
	return CollectGaps(p.Tags)
}
