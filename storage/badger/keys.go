package badger

import (
	"encoding/binary"

	"github.com/poiesic/promptclass/core"
)

// Key prefixes for different data types
const (
	keywordVectorPrefix = "kwvec"
)

// makeModelPrefix generates the key prefix shared by all vectors of one model.
// Format: prefix:modelID
func makeModelPrefix(model string) []byte {
	prefix := keywordVectorPrefix + ":"
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(core.IDFromContent(model)))
	return buf
}

// makeVectorKey generates a composite key for a keyword vector.
// Format: prefix:modelID:textID
func makeVectorKey(model, text string) []byte {
	modelPrefix := makeModelPrefix(model)
	buf := make([]byte, len(modelPrefix)+8)
	offset := copy(buf, modelPrefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(core.IDFromContent(text)))
	return buf
}
