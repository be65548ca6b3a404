package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/snappy"
	"gopkg.in/yaml.v3"
)

// Format is an on-disk encoding of a Document
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// CompressedExt marks snappy framed files
const CompressedExt = ".sz"

var ErrUnknownFormat = errors.New("unknown export format")

// ParseFormat maps a config value onto a Format
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json", "":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%q: %w", s, ErrUnknownFormat)
	}
}

// FormatFromPath infers the format and compression of a file from its name,
// e.g. network.yaml.sz
func FormatFromPath(path string) (Format, bool) {
	compressed := strings.HasSuffix(path, CompressedExt)
	ext := filepath.Ext(strings.TrimSuffix(path, CompressedExt))
	if ext == ".yaml" || ext == ".yml" {
		return FormatYAML, compressed
	}
	return FormatJSON, compressed
}

// Encode writes doc to w
func Encode(w io.Writer, doc Document, f Format) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%q: %w", f, ErrUnknownFormat)
	}
}

// Decode reads a Document from r, unwrapping a snappy stream if compressed
func Decode(r io.Reader, f Format, compressed bool) (Document, error) {
	if compressed {
		r = snappy.NewReader(r)
	}

	var doc Document
	var err error
	switch f {
	case FormatJSON:
		err = json.NewDecoder(r).Decode(&doc)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&doc)
	default:
		return Document{}, fmt.Errorf("%q: %w", f, ErrUnknownFormat)
	}
	if err != nil {
		return Document{}, fmt.Errorf("decode %s document: %w", f, err)
	}
	return doc, nil
}

// WriteOptions controls Write
type WriteOptions struct {
	Format   Format
	Compress bool
}

// Write stores doc at path, creating parent directories, and returns the
// number of bytes written to disk
func Write(path string, doc Document, opts WriteOptions) (int64, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	cw := &countingWriter{w: f}
	if !opts.Compress {
		if err := Encode(cw, doc, opts.Format); err != nil {
			return 0, fmt.Errorf("encode %s: %w", path, err)
		}
		return cw.n, f.Close()
	}

	sw := snappy.NewBufferedWriter(cw)
	if err := Encode(sw, doc, opts.Format); err != nil {
		return 0, fmt.Errorf("encode %s: %w", path, err)
	}
	if err := sw.Close(); err != nil {
		return 0, fmt.Errorf("flush %s: %w", path, err)
	}
	return cw.n, f.Close()
}

// ReadFile loads a Document written by Write
func ReadFile(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, err
	}
	defer f.Close()

	format, compressed := FormatFromPath(path)
	return Decode(f, format, compressed)
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
