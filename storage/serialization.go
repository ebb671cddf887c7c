// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package storage

import (
	"fmt"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// VectorEntry is the persisted form of one cached keyword vector.
// Model and Text are stored alongside the vector so that a hash collision
// on the key is detected as a miss instead of returning a foreign vector.
type VectorEntry struct {
	Model  string
	Text   string
	Vector []float32
}

// VectorEntryMUS is the mus-go serializer for VectorEntry.
var VectorEntryMUS = vectorEntryMUS{}

type vectorEntryMUS struct{}

func (s vectorEntryMUS) Marshal(v VectorEntry, bs []byte) (n int) {
	n = ord.String.Marshal(v.Model, bs)
	n += ord.String.Marshal(v.Text, bs[n:])
	n += varint.Uint64.Marshal(uint64(len(v.Vector)), bs[n:])
	for _, f := range v.Vector {
		n += raw.Float32.Marshal(f, bs[n:])
	}
	return
}

func (s vectorEntryMUS) Unmarshal(bs []byte) (v VectorEntry, n int, err error) {
	v.Model, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Text, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	var length uint64
	length, n1, err = varint.Uint64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	if length > uint64(len(bs)-n)/4 {
		err = ErrTruncatedData
		return
	}
	v.Vector = make([]float32, length)
	for i := range v.Vector {
		v.Vector[i], n1, err = raw.Float32.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	return
}

func (s vectorEntryMUS) Size(v VectorEntry) (size int) {
	size = ord.String.Size(v.Model)
	size += ord.String.Size(v.Text)
	size += varint.Uint64.Size(uint64(len(v.Vector)))
	for _, f := range v.Vector {
		size += raw.Float32.Size(f)
	}
	return
}

// MarshalVectorEntry serializes a VectorEntry to bytes.
func MarshalVectorEntry(entry *VectorEntry) []byte {
	buf := make([]byte, VectorEntryMUS.Size(*entry))
	VectorEntryMUS.Marshal(*entry, buf)
	return buf
}

// UnmarshalVectorEntry deserializes a VectorEntry from bytes.
func UnmarshalVectorEntry(data []byte) (*VectorEntry, error) {
	entry, _, err := VectorEntryMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &entry, nil
}
