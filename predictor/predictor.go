// Package predictor implements a gshare dynamic branch predictor built on a
// packed table of 2-bit saturating counters.
package predictor

// BranchPredictor is a direction predictor that learns from resolved
// branches.
type BranchPredictor interface {
	// Update trains the predictor with the resolved outcome of the branch at
	// address and records whether the prediction was a miss.
	Update(address uint64, outcome Outcome)

	// MissPredictionRatio returns the percentage of updates that were
	// mispredicted.
	MissPredictionRatio() float64

	// Stats returns the accumulated statistics.
	Stats() Stats
}

// Stats counts resolved branches by whether the counter guessed them right.
type Stats struct {
	Predictions    uint64 // every Update call
	Correct        uint64
	Mispredictions uint64
}

// Accuracy is the share of branches predicted right, in percent. It is 0
// before any branch resolves.
func (s Stats) Accuracy() float64 {
	if s.Predictions == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Predictions) * 100
}

// MispredictionRate is 100 * Mispredictions / Predictions, or 0 when nothing
// was predicted.
func (s Stats) MispredictionRate() float64 {
	if s.Predictions == 0 {
		return 0
	}
	return float64(s.Mispredictions) * 100 / float64(s.Predictions)
}

// Prediction is the direction a predictor would give for a branch.
type Prediction struct {
	// Taken indicates whether the branch is predicted to be taken.
	Taken bool
	// Index is the hashed table index that was consulted.
	Index uint64
	// Counter is the value of the consulted counter.
	Counter uint8
}
