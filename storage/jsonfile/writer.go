package jsonfile

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/go-crypt/x/blake2b"
	"github.com/poiesic/regindex/core"
	"github.com/poiesic/regindex/storage"
	"github.com/spf13/afero"
)

// DefaultPath is where the collection is written when no path is given.
const DefaultPath = "lib/data/chunks.json"

// Manifest describes the last collection a Writer produced.
type Manifest struct {
	Path     string
	Count    int
	Embedded int
	Bytes    int
	// Digest is the hex BLAKE2b-256 sum of the written file.
	Digest string
}

// Writer writes a chunk collection as a pretty-printed JSON array.
type Writer struct {
	fs       afero.Fs
	path     string
	logger   *slog.Logger
	manifest *Manifest
}

var _ storage.ChunkWriter = (*Writer)(nil)

// Option configures a Writer or Reader.
type Option func(*options)

type options struct {
	fs     afero.Fs
	logger *slog.Logger
}

// WithFilesystem sets the filesystem files are read from and written to.
// Default is the OS filesystem.
func WithFilesystem(fs afero.Fs) Option {
	return func(o *options) {
		if fs != nil {
			o.fs = fs
		}
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func applyOptions(opts []Option) options {
	o := options{fs: afero.NewOsFs(), logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewWriter creates a Writer targeting path. An empty path means DefaultPath.
func NewWriter(path string, opts ...Option) *Writer {
	if path == "" {
		path = DefaultPath
	}
	o := applyOptions(opts)
	return &Writer{
		fs:     o.fs,
		path:   path,
		logger: o.logger.With("component", "json-writer"),
	}
}

// Path returns the output file path.
func (w *Writer) Path() string {
	return w.path
}

// WriteChunks validates chunks and writes them to the output path, replacing
// any previous file. The file is written to a temporary sibling first and
// renamed into place. Chunks without an embedding have no "embedding" field.
func (w *Writer) WriteChunks(ctx context.Context, chunks []*core.Chunk) error {
	if err := storage.ValidateCollection(chunks); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := encode(chunks)
	if err != nil {
		return fmt.Errorf("%w: %w", storage.ErrSerializationFailed, err)
	}

	dir := filepath.Dir(w.path)
	if err := w.fs.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	tmp := w.path + ".tmp"
	if err := afero.WriteFile(w.fs, tmp, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", tmp, err)
	}
	if err := w.fs.Rename(tmp, w.path); err != nil {
		_ = w.fs.Remove(tmp)
		return fmt.Errorf("replacing %s: %w", w.path, err)
	}

	digest, err := digestOf(data)
	if err != nil {
		return err
	}

	embedded := 0
	for _, c := range chunks {
		if c.HasEmbedding() {
			embedded++
		}
	}

	w.manifest = &Manifest{
		Path:     w.path,
		Count:    len(chunks),
		Embedded: embedded,
		Bytes:    len(data),
		Digest:   digest,
	}
	w.logger.Info("wrote chunk collection",
		"path", w.path,
		"chunks", len(chunks),
		"embedded", embedded,
		"bytes", len(data),
		"blake2b", digest)
	return nil
}

// Manifest returns a description of the last successful write, or nil.
func (w *Writer) Manifest() *Manifest {
	return w.manifest
}

func encode(chunks []*core.Chunk) ([]byte, error) {
	if chunks == nil {
		chunks = []*core.Chunk{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(chunks); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func digestOf(data []byte) (string, error) {
	h, err := blake2b.New(32, nil)
	if err != nil {
		return "", err
	}
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil)), nil
}
