package trace

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// DefaultMaxLineLength is the longest line a Reader accepts unless
// WithMaxLineLength says otherwise.
const DefaultMaxLineLength = 64 * 1024

// ErrLineTooLong is the cause of a ParseError for a line longer than the
// reader's limit.
var ErrLineTooLong = errors.New("invalid line: too long")

// Reader yields the well-formed records of a trace in order. Blank lines are
// ignored. Malformed lines, including lines over the length limit, are
// skipped and reported to the diagnostics writer, if one is set.
type Reader struct {
	br            *bufio.Reader
	maxLineLength int
	diagnostics   io.Writer
	line          int
	skipped       uint64
	records       uint64
}

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// WithDiagnostics sets the writer that receives one line per malformed
// record.
func WithDiagnostics(w io.Writer) ReaderOption {
	return func(r *Reader) {
		r.diagnostics = w
	}
}

// WithMaxLineLength sets the longest line, in bytes, that can hold a record.
// Non-positive values keep the default.
func WithMaxLineLength(n int) ReaderOption {
	return func(r *Reader) {
		if n > 0 {
			r.maxLineLength = n
		}
	}
}

// NewReader creates a Reader over r.
func NewReader(r io.Reader, opts ...ReaderOption) *Reader {
	reader := &Reader{
		br:            bufio.NewReader(r),
		maxLineLength: DefaultMaxLineLength,
	}

	for _, opt := range opts {
		opt(reader)
	}

	return reader
}

// Next returns the next well-formed record. It returns io.EOF once the
// trace is exhausted.
func (r *Reader) Next() (Record, error) {
	for {
		text, err := r.readLine()
		if errors.Is(err, io.EOF) {
			return Record{}, io.EOF
		}
		if err != nil && !errors.Is(err, ErrLineTooLong) {
			return Record{}, fmt.Errorf("failed to read trace: %w", err)
		}

		r.line++
		if err != nil {
			r.skip(&ParseError{Line: r.line, Err: err})
			continue
		}

		rec, err := ParseRecord(text)
		if errors.Is(err, errBlankLine) {
			continue
		}
		if err != nil {
			r.skip(&ParseError{Line: r.line, Text: text, Err: err})
			continue
		}

		r.records++
		return rec, nil
	}
}

// readLine returns the next line without its terminator. A line over the
// length limit is consumed up to its newline and reported as ErrLineTooLong.
func (r *Reader) readLine() (string, error) {
	var (
		buf     []byte
		size    int
		started bool
	)

	for {
		chunk, isPrefix, err := r.br.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) && started {
				break
			}
			return "", err
		}

		started = true
		size += len(chunk)
		if size <= r.maxLineLength {
			buf = append(buf, chunk...)
		}

		if !isPrefix {
			break
		}
	}

	if size > r.maxLineLength {
		return "", fmt.Errorf("%w (over %d bytes)", ErrLineTooLong, r.maxLineLength)
	}

	return string(buf), nil
}

func (r *Reader) skip(err *ParseError) {
	r.skipped++
	if r.diagnostics != nil {
		fmt.Fprintln(r.diagnostics, err.Error())
	}
}

// Skipped returns the number of malformed lines skipped so far.
func (r *Reader) Skipped() uint64 {
	return r.skipped
}

// Records returns the number of records returned so far.
func (r *Reader) Records() uint64 {
	return r.records
}

// ReadAll reads every remaining record.
func (r *Reader) ReadAll() ([]Record, error) {
	var records []Record
	for {
		rec, err := r.Next()
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return records, err
		}
		records = append(records, rec)
	}
}
