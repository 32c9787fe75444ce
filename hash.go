package readmet

import "fmt"

// Hash is the 16-byte ED2K content identifier.
type Hash [16]byte

// String renders the hash as 32 uppercase hex characters in stream byte
// order, with no separators.
func (h Hash) String() string {
	return fmt.Sprintf("%X", h[:])
}

func parseHash(r *metReader, hdr Header) (Hash, error) {
	var h Hash
	if err := r.seek(hdr.HashOffset); err != nil {
		return h, err
	}
	raw, err := r.readBytes(len(h), "content hash")
	if err != nil {
		return h, err
	}
	copy(h[:], raw)
	return h, nil
}
