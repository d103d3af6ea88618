package core

import (
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
)

// ChunkMUS is the binary serializer for Chunk values.
// Fields are written in declaration order; the embedding is a
// length-prefixed run of raw float32s.
var ChunkMUS = chunkMUS{}

var embeddingMUS = ord.NewSliceSer[float32](raw.Float32)

type chunkMUS struct{}

func (s chunkMUS) Marshal(v Chunk, bs []byte) (n int) {
	n = ord.String.Marshal(v.ID, bs)
	n += ord.String.Marshal(v.Content, bs[n:])
	n += ord.String.Marshal(v.Source, bs[n:])
	return n + embeddingMUS.Marshal(v.Embedding, bs[n:])
}

func (s chunkMUS) Unmarshal(bs []byte) (v Chunk, n int, err error) {
	v.ID, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Content, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Source, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Embedding, n1, err = embeddingMUS.Unmarshal(bs[n:])
	n += n1
	if err == nil && len(v.Embedding) == 0 {
		v.Embedding = nil
	}
	return
}

func (s chunkMUS) Size(v Chunk) (size int) {
	size = ord.String.Size(v.ID)
	size += ord.String.Size(v.Content)
	size += ord.String.Size(v.Source)
	return size + embeddingMUS.Size(v.Embedding)
}

func (s chunkMUS) Skip(bs []byte) (n int, err error) {
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	for range 2 {
		var n1 int
		n1, err = ord.String.Skip(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	n1, err := embeddingMUS.Skip(bs[n:])
	n += n1
	return
}
