package trace

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/golang/snappy"
)

// snappyMagic is the stream identifier chunk that starts every snappy
// framed stream.
var snappyMagic = []byte("\xff\x06\x00\x00sNaPpY")

// File is an open trace file.
type File struct {
	io.Reader
	f          *os.File
	compressed bool
}

// Open opens a trace file. Snappy framed files are decompressed
// transparently.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open trace file: %w", err)
	}

	br := bufio.NewReader(f)
	head, err := br.Peek(len(snappyMagic))
	if err != nil && err != io.EOF {
		f.Close()
		return nil, fmt.Errorf("failed to read trace file: %w", err)
	}

	file := &File{Reader: br, f: f}
	if bytes.Equal(head, snappyMagic) {
		file.Reader = snappy.NewReader(br)
		file.compressed = true
	}

	return file, nil
}

// Compressed reports whether the file is snappy compressed.
func (f *File) Compressed() bool {
	return f.compressed
}

// Close closes the underlying file.
func (f *File) Close() error {
	return f.f.Close()
}

// WriteCompressed writes records as a snappy framed trace.
func WriteCompressed(w io.Writer, records []Record) error {
	sw := snappy.NewBufferedWriter(w)
	if err := Write(sw, records); err != nil {
		sw.Close()
		return err
	}

	if err := sw.Close(); err != nil {
		return fmt.Errorf("failed to flush compressed trace: %w", err)
	}

	return nil
}

// Write writes records in the plain text trace format.
func Write(w io.Writer, records []Record) error {
	bw := bufio.NewWriter(w)
	for _, rec := range records {
		if _, err := fmt.Fprintf(bw, "%x %s\n", rec.Address, rec.Outcome); err != nil {
			return fmt.Errorf("failed to write trace: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write trace: %w", err)
	}

	return nil
}
