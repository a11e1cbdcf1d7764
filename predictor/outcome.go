package predictor

import "fmt"

// Outcome is the resolved direction of a branch.
type Outcome uint8

const (
	// NotTaken means the branch fell through.
	NotTaken Outcome = iota
	// Taken means the branch jumped to its target.
	Taken
)

// String returns the trace code of the outcome.
func (o Outcome) String() string {
	switch o {
	case NotTaken:
		return "n"
	case Taken:
		return "t"
	default:
		return fmt.Sprintf("Outcome(%d)", uint8(o))
	}
}

// ParseOutcome converts a trace outcome code into an Outcome. Only 'n' and
// 't' are recognized.
func ParseOutcome(code byte) (Outcome, error) {
	switch code {
	case 'n':
		return NotTaken, nil
	case 't':
		return Taken, nil
	default:
		return NotTaken, fmt.Errorf("invalid prediction outcome code: '%c'", code)
	}
}
