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


package ingestion

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/poiesic/regindex/chunking"
	"github.com/poiesic/regindex/core"
	"github.com/poiesic/regindex/embedding"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Manifest lists the documents to index and, optionally, tuning overrides.
//
//	documents:
//	  - path: GDPR.md
//	    label: GDPR
//	chunking:
//	  max_chars: 1200
//	  overlap: 200
//	embedding:
//	  batch_size: 100
//	  pause: 500ms
type Manifest struct {
	Documents []core.Source     `yaml:"documents"`
	Chunking  ChunkingSettings  `yaml:"chunking"`
	Embedding EmbeddingSettings `yaml:"embedding"`
}

// ChunkingSettings overrides chunker defaults. Zero values keep the default.
type ChunkingSettings struct {
	MaxChars int `yaml:"max_chars"`
	// Overlap is a pointer so an explicit 0 can disable overlap.
	Overlap *int `yaml:"overlap"`
}

// EmbeddingSettings overrides batcher defaults. Zero values keep the default.
type EmbeddingSettings struct {
	BatchSize int    `yaml:"batch_size"`
	Pause     string `yaml:"pause"`
}

// LoadManifest reads and validates a YAML manifest. Unknown keys are rejected.
func LoadManifest(fs afero.Fs, path string) (*Manifest, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	return ParseManifest(data)
}

// ParseManifest decodes and validates manifest YAML.
func ParseManifest(data []byte) (*Manifest, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var m Manifest
	if err := dec.Decode(&m); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidManifest, err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks documents and settings.
func (m *Manifest) Validate() error {
	if len(m.Documents) == 0 {
		return fmt.Errorf("%w: no documents listed", ErrInvalidManifest)
	}

	labels := make(map[string]bool, len(m.Documents))
	for i, doc := range m.Documents {
		if err := core.ValidateSource(doc); err != nil {
			return fmt.Errorf("%w: document %d: %w", ErrInvalidManifest, i, err)
		}
		if labels[doc.Label] {
			return fmt.Errorf("%w: duplicate label %q", ErrInvalidManifest, doc.Label)
		}
		labels[doc.Label] = true
	}

	if m.Chunking.MaxChars < 0 {
		return fmt.Errorf("%w: max_chars cannot be negative", ErrInvalidManifest)
	}
	if m.Chunking.Overlap != nil && *m.Chunking.Overlap < 0 {
		return fmt.Errorf("%w: overlap cannot be negative", ErrInvalidManifest)
	}
	if m.Embedding.BatchSize < 0 {
		return fmt.Errorf("%w: batch_size cannot be negative", ErrInvalidManifest)
	}
	if _, err := m.pause(); err != nil {
		return err
	}
	return nil
}

func (m *Manifest) pause() (time.Duration, error) {
	if m.Embedding.Pause == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(m.Embedding.Pause)
	if err != nil {
		return 0, fmt.Errorf("%w: pause: %w", ErrInvalidManifest, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: pause cannot be negative", ErrInvalidManifest)
	}
	return d, nil
}

// ChunkerOptions returns chunker options for the settings that are set.
func (m *Manifest) ChunkerOptions() []chunking.Option {
	var opts []chunking.Option
	if m.Chunking.MaxChars > 0 {
		opts = append(opts, chunking.WithMaxChars(m.Chunking.MaxChars))
	}
	if m.Chunking.Overlap != nil {
		opts = append(opts, chunking.WithOverlap(*m.Chunking.Overlap))
	}
	return opts
}

// BatcherOptions returns batcher options for the settings that are set.
func (m *Manifest) BatcherOptions() []embedding.Option {
	var opts []embedding.Option
	if m.Embedding.BatchSize > 0 {
		opts = append(opts, embedding.WithBatchSize(m.Embedding.BatchSize))
	}
	if m.Embedding.Pause != "" {
		if d, err := m.pause(); err == nil {
			opts = append(opts, embedding.WithPause(d))
		}
	}
	return opts
}
