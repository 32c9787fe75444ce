package readmet

import "strings"

// TagCategory is the semantic category of a tag. The format has no explicit
// discriminator - category is inferred from how the name is encoded: a
// single-byte name is a numeric field code, a longer name starting with a
// gap sentinel is a gap marker, a recognized text name is a standard media
// attribute, and everything else is unknown.
type TagCategory uint8

const (
	CategorySpecial TagCategory = iota
	CategoryGap
	CategoryStandard
	CategoryUnknown
)

func (c TagCategory) String() string {
	switch c {
	case CategorySpecial:
		return "special"
	case CategoryGap:
		return "gap"
	case CategoryStandard:
		return "standard"
	}
	return "unknown"
}

// Special tag field codes (single-byte tag names).
const (
	FieldFileName         byte = 1
	FieldFileSize         byte = 2
	FieldFileType         byte = 3
	FieldFileFormat       byte = 4
	FieldLastSeen         byte = 5
	FieldDownloaded       byte = 8
	FieldTempFileName     byte = 18
	FieldOldPriority      byte = 19
	FieldStatus           byte = 20
	FieldDownloadPriority byte = 24
	FieldUploadPriority   byte = 25
)

// Gap tag name sentinels (first byte of a multi-byte tag name).
const (
	GapStart byte = 9
	GapEnd   byte = 10
)

// Classify assigns a tag to its semantic category. The order of the checks
// is part of the format's conventions: a 1-byte name is always a special
// field code, even when the byte equals a gap sentinel; longer names are
// tested for the gap sentinel before the text-label comparison.
func Classify(tag *Tag) TagCategory {
	if len(tag.Name) == 1 {
		return CategorySpecial
	}
	if len(tag.Name) >= 2 && (tag.Name[0] == GapStart || tag.Name[0] == GapEnd) {
		return CategoryGap
	}
	if StandardTagDescription(string(tag.Name)) != "" {
		return CategoryStandard
	}
	return CategoryUnknown
}

// Category is a convenience for Classify; it is computed on demand, never
// stored on the tag.
func (t *Tag) Category() TagCategory {
	return Classify(t)
}

// SpecialID returns the field code of a special tag.
func (t *Tag) SpecialID() (byte, bool) {
	if len(t.Name) != 1 {
		return 0, false
	}
	return t.Name[0], true
}

// GapReference returns the sentinel byte and the reference token of a gap
// tag. The token is the raw name bytes after the sentinel, compared as text
// when pairing gap starts with gap ends.
func (t *Tag) GapReference() (sentinel byte, ref string, ok bool) {
	if Classify(t) != CategoryGap {
		return 0, "", false
	}
	return t.Name[0], string(t.Name[1:]), true
}

// SpecialTagDescription describes a special tag field code. For the status
// and priority fields the description depends on the integer value. Returns
// "" for codes with no known meaning.
func SpecialTagDescription(id byte, intValue uint32) string {
	switch id {
	case FieldFileName:
		return "Filename"
	case FieldFileSize:
		return "File size in bytes"
	case FieldFileType:
		return "File type"
	case FieldFileFormat:
		return "File format"
	case FieldLastSeen:
		return "Last time file was seen complete on network"
	case FieldDownloaded:
		return "Number of bytes downloaded so far"
	case FieldTempFileName:
		return "Temporary (.part) filename"
	case FieldOldPriority:
		return "Download priority (eDonkey/Overnet <0.49)"
	case FieldStatus:
		switch intValue {
		case 0:
			return "Download status: Ready"
		case 1:
			return "Download status: Empty"
		case 2:
			return "Download status: Waiting for hash"
		case 3:
			return "Download status: Hashing"
		case 4:
			return "Download status: Error"
		case 7:
			return "Download status: Paused"
		case 8:
			return "Download status: Completing"
		case 9:
			return "Download status: Completed"
		default:
			return "Download status: Unknown"
		}
	case FieldDownloadPriority:
		switch intValue {
		case 0:
			return "Download priority: Low"
		case 1:
			return "Download priority: Normal"
		case 2:
			return "Download priority: High"
		case 3:
			return "Download priority: Very high (eMule) / Highest/Horde (eDonkey/Overnet)"
		case 4:
			return "Download priority: Very low (eMule)"
		case 5:
			return "Download priority: Auto (eMule)"
		default:
			return "Download priority: Unknown"
		}
	case FieldUploadPriority:
		switch intValue {
		case 0:
			return "Upload priority: Low"
		case 1:
			return "Upload priority: Normal"
		case 2:
			return "Upload priority: High"
		case 3:
			return "Upload priority: Very high"
		case 4:
			return "Upload priority: Very low"
		case 5:
			return "Upload priority: Auto"
		default:
			return "Upload priority: Unknown"
		}
	}
	return ""
}

// GapTagDescription describes a gap sentinel byte, or "" if the byte is not
// a gap sentinel.
func GapTagDescription(sentinel byte) string {
	switch sentinel {
	case GapStart:
		return "Start of gap (undownloaded area)"
	case GapEnd:
		return "End of gap (undownloaded area)"
	}
	return ""
}

var standardTagDescriptions = map[string]string{
	"artist":  "Media file artist",
	"album":   "Media file album",
	"title":   "Media file title",
	"length":  "Media file duration",
	"bitrate": "Media file bitrate",
	"codec":   "Media file codec",
}

// StandardTagDescription describes a recognized standard tag name, matched
// case-insensitively. Returns "" for unrecognized names.
func StandardTagDescription(name string) string {
	return standardTagDescriptions[strings.ToLower(name)]
}
