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

import "errors"

// Domain validation errors
var (
	// ErrInvalidChunk indicates a Chunk failed validation.
	ErrInvalidChunk = errors.New("invalid chunk")

	// ErrInvalidSource indicates a Source failed validation.
	ErrInvalidSource = errors.New("invalid source")

	// ErrEmptyID indicates the ID field is empty.
	ErrEmptyID = errors.New("id cannot be empty")

	// ErrEmptyContent indicates the Content field is empty after trimming.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrUntrimmedContent indicates the Content field has surrounding whitespace.
	ErrUntrimmedContent = errors.New("content must be trimmed")

	// ErrEmptyLabel indicates a source label is empty.
	ErrEmptyLabel = errors.New("label cannot be empty")

	// ErrEmptyPath indicates a source path is empty.
	ErrEmptyPath = errors.New("path cannot be empty")
)
