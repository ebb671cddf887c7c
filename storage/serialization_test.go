package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalVectorEntry(t *testing.T) {
	entry := &VectorEntry{
		Model:  "embeddinggemma",
		Text:   "c++",
		Vector: []float32{0.25, -0.5, 1, 0},
	}

	data := MarshalVectorEntry(entry)
	require.NotEmpty(t, data)

	decoded, err := UnmarshalVectorEntry(data)
	require.NoError(t, err)
	assert.Equal(t, entry, decoded)
}

func TestUnmarshalVectorEntry_Invalid(t *testing.T) {
	full := MarshalVectorEntry(&VectorEntry{
		Model:  "m",
		Text:   "python",
		Vector: []float32{1, 2, 3},
	})

	tests := []struct {
		name string
		data []byte
	}{
		{"empty data", []byte{}},
		{"truncated vector", full[:len(full)-2]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalVectorEntry(tt.data)
			assert.ErrorIs(t, err, ErrSerializationFailed)
		})
	}
}
