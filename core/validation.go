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


package core

import (
	"fmt"
	"strings"
)

// ValidateChunk validates a Chunk according to domain rules.
//
// Validation rules:
//   - ID must not be empty
//   - Content must not be empty and must already be trimmed
//   - Source must not be empty
//
// NOT validated:
//   - Embedding (absent when the chunk's batch failed)
func ValidateChunk(chunk *Chunk) error {
	if chunk == nil {
		return fmt.Errorf("%w: chunk is nil", ErrInvalidChunk)
	}

	if chunk.ID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptyID)
	}

	trimmed := strings.TrimSpace(chunk.Content)
	if trimmed == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptyContent)
	}
	if trimmed != chunk.Content {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrUntrimmedContent)
	}

	if chunk.Source == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptyLabel)
	}

	return nil
}

// ValidateSource checks that a document source names both a path and a label.
func ValidateSource(src Source) error {
	if strings.TrimSpace(src.Path) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidSource, ErrEmptyPath)
	}
	if strings.TrimSpace(src.Label) == "" {
		return fmt.Errorf("%w: %w (path %s)", ErrInvalidSource, ErrEmptyLabel, src.Path)
	}
	return nil
}
