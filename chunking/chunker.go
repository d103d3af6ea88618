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


package chunking

import (
	"errors"
	"strings"

	"github.com/poiesic/regindex/core"
)

const (
	// DefaultMaxChars is the soft upper bound on chunk length, in characters.
	DefaultMaxChars = 1200
	// DefaultOverlap is how many trailing characters of a chunk seed the next one.
	DefaultOverlap = 200
)

var (
	// ErrInvalidMaxChars is returned when the chunk size bound is not positive.
	ErrInvalidMaxChars = errors.New("max chars must be positive")

	// ErrInvalidOverlap is returned when the overlap is negative.
	ErrInvalidOverlap = errors.New("overlap cannot be negative")
)

// Chunker splits document text into overlapping, size-bounded chunks along
// line boundaries. A Chunker holds no state between calls and is safe for
// concurrent use.
type Chunker struct {
	maxChars int
	overlap  int
	newID    func(label string) string
}

// Option configures a Chunker.
type Option func(*Chunker) error

// WithMaxChars sets the soft length bound. Default is DefaultMaxChars.
func WithMaxChars(n int) Option {
	return func(c *Chunker) error {
		if n <= 0 {
			return ErrInvalidMaxChars
		}
		c.maxChars = n
		return nil
	}
}

// WithOverlap sets the number of characters carried into the next chunk.
// Zero disables overlap. Default is DefaultOverlap.
func WithOverlap(n int) Option {
	return func(c *Chunker) error {
		if n < 0 {
			return ErrInvalidOverlap
		}
		c.overlap = n
		return nil
	}
}

// WithIDFunc replaces the chunk ID generator. Default is core.NewChunkID.
func WithIDFunc(fn func(label string) string) Option {
	return func(c *Chunker) error {
		if fn != nil {
			c.newID = fn
		}
		return nil
	}
}

// New creates a Chunker with the given options applied over the defaults.
func New(opts ...Option) (*Chunker, error) {
	c := &Chunker{
		maxChars: DefaultMaxChars,
		overlap:  DefaultOverlap,
		newID:    core.NewChunkID,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// MaxChars returns the configured length bound.
func (c *Chunker) MaxChars() int {
	return c.maxChars
}

// Overlap returns the configured overlap length.
func (c *Chunker) Overlap() int {
	return c.overlap
}

// Chunk splits text into chunks labelled with label.
//
// Lines accumulate in a buffer until adding the next line would push the
// buffer past the length bound. The buffer is then emitted trimmed, and the
// next buffer starts with the last Overlap characters of the untrimmed
// buffer, a newline, and the line. The tail may begin mid-word. A single line
// longer than the bound becomes a chunk of its own. Lengths count characters,
// not bytes, and exclude the newline being appended.
//
// Chunks never have empty content. A buffer with no visible characters is
// not emitted, but its tail still seeds the next buffer.
func (c *Chunker) Chunk(text, label string) []*core.Chunk {
	var chunks []*core.Chunk
	buf := newBuffer()

	for _, line := range strings.Split(text, "\n") {
		lineLen := runeCount(line)
		if buf.len() == 0 || buf.len()+lineLen <= c.maxChars {
			buf.appendLine(line, lineLen)
			continue
		}

		if content := strings.TrimSpace(buf.String()); content != "" {
			chunks = append(chunks, c.newChunk(content, label))
		}
		tail := buf.tail(c.overlap)
		buf.reset()
		buf.appendLine(tail, runeCount(tail))
		buf.appendLine(line, lineLen)
	}

	if content := strings.TrimSpace(buf.String()); content != "" {
		chunks = append(chunks, c.newChunk(content, label))
	}
	return chunks
}

func (c *Chunker) newChunk(content, label string) *core.Chunk {
	return &core.Chunk{
		ID:      c.newID(label),
		Content: content,
		Source:  label,
	}
}
