// Package trace reads branch traces: one resolved branch per line, a
// hexadecimal address followed by an outcome code ('n' or 't').
package trace

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sarchlab/gsharesim/predictor"
)

// Record is a resolved branch read from a trace.
type Record struct {
	Address uint64
	Outcome predictor.Outcome
}

// errBlankLine marks a line that holds no record.
var errBlankLine = errors.New("blank line")

// ParseError describes a malformed trace line.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseRecord parses a single trace line. The outcome token is checked
// before the address.
func ParseRecord(line string) (Record, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Record{}, errBlankLine
	}
	if len(fields) < 2 {
		return Record{}, fmt.Errorf("invalid line: '%s'", line)
	}

	outcome, err := predictor.ParseOutcome(fields[1][0])
	if err != nil {
		return Record{}, err
	}

	address, err := parseAddress(fields[0])
	if err != nil {
		return Record{}, err
	}

	return Record{Address: address, Outcome: outcome}, nil
}

func parseAddress(token string) (uint64, error) {
	digits := token
	if len(digits) > 2 && digits[0] == '0' && (digits[1] == 'x' || digits[1] == 'X') {
		digits = digits[2:]
	}

	address, err := strconv.ParseUint(digits, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid address '%s': %w", token, err)
	}

	return address, nil
}
