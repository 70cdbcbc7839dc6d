// Package writer serializes a semantic.Document into a well-formed PDF
// file: catalog, page tree, base-14 font dictionaries, content streams,
// image XObjects, link annotations, outlines, info dictionary, cross
// reference table and trailer.
package writer

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/humaxai2025/Papercraft/semantic"
)

// Sentinel errors for writer operations.
var (
	ErrNoPages     = errors.New("writer: document has no pages")
	ErrCreateFile  = errors.New("writer: failed to create output file")
	ErrWriteOutput = errors.New("writer: failed to write output")
)

// Config controls serialization.
type Config struct {
	// Compress enables Flate compression of content streams and raw image
	// data. JPEG images keep their DCTDecode stream either way.
	Compress bool
}

// Write serializes doc to w. The document is not modified.
func Write(doc *semantic.Document, w io.Writer, cfg Config) error {
	if doc == nil || len(doc.Pages) == 0 {
		return ErrNoPages
	}
	s := newSerializer(cfg)
	data, err := s.serialize(doc)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}

// WriteFile serializes doc to the file at path. On any failure the error
// wraps the I/O reason; a partially written file is removed.
func WriteFile(doc *semantic.Document, path string, cfg Config) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCreateFile, err)
	}
	if err := Write(doc, f, cfg); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}
