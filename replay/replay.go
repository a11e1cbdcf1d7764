// Package replay feeds a branch trace through a predictor on an Akita
// serial engine. Each record is one event, scheduled one clock period after
// the previous record, so the trace order is preserved exactly.
package replay

import (
	"errors"
	"fmt"
	"io"

	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/gsharesim/predictor"
	"github.com/sarchlab/gsharesim/trace"
)

// Source supplies trace records in order. Next returns io.EOF at the end
// of the trace.
type Source interface {
	Next() (trace.Record, error)
}

// skipCounter is implemented by sources that drop malformed records.
type skipCounter interface {
	Skipped() uint64
}

// Result summarizes a replay.
type Result struct {
	// Records is the number of records fed to the predictor.
	Records uint64
	// Skipped is the number of malformed records dropped by the source.
	Skipped uint64
	// SimulatedTime is the time of the last branch event.
	SimulatedTime sim.VTimeInSec
	// Stats is the predictor statistics at the end of the replay.
	Stats predictor.Stats
	// MissPredictionRatio is the final misprediction percentage.
	MissPredictionRatio float64
}

// branchEvent resolves one branch.
type branchEvent struct {
	*sim.EventBase
	seq    uint64
	record trace.Record
}

// Replayer drives a predictor with a trace source.
type Replayer struct {
	engine    sim.Engine
	freq      sim.Freq
	predictor predictor.BranchPredictor
	source    Source

	records uint64
	err     error
}

// Option configures a Replayer.
type Option func(*Replayer)

// WithEngine sets the engine that schedules branch events.
func WithEngine(engine sim.Engine) Option {
	return func(r *Replayer) {
		r.engine = engine
	}
}

// WithFrequency sets the rate at which branches resolve.
func WithFrequency(freq sim.Freq) Option {
	return func(r *Replayer) {
		r.freq = freq
	}
}

// NewReplayer creates a Replayer. By default it uses a serial engine and
// resolves one branch per nanosecond.
func NewReplayer(
	p predictor.BranchPredictor,
	src Source,
	opts ...Option,
) *Replayer {
	r := &Replayer{
		freq:      1 * sim.GHz,
		predictor: p,
		source:    src,
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.engine == nil {
		r.engine = sim.NewSerialEngine()
	}

	return r
}

// Run replays the whole source. It must be called at most once.
func (r *Replayer) Run() (Result, error) {
	r.scheduleNext(0)

	// The serial engine drops handler errors; failures are kept in r.err.
	_ = r.engine.Run()

	if r.err != nil {
		return Result{}, r.err
	}

	result := Result{
		Records:             r.records,
		SimulatedTime:       r.engine.CurrentTime(),
		Stats:               r.predictor.Stats(),
		MissPredictionRatio: r.predictor.MissPredictionRatio(),
	}

	if sc, ok := r.source.(skipCounter); ok {
		result.Skipped = sc.Skipped()
	}

	return result, nil
}

// Handle resolves the branch carried by a branchEvent and schedules the
// next record.
func (r *Replayer) Handle(e sim.Event) error {
	evt, ok := e.(*branchEvent)
	if !ok {
		err := fmt.Errorf("replay: unexpected event %T", e)
		if r.err == nil {
			r.err = err
		}
		return err
	}

	r.predictor.Update(evt.record.Address, evt.record.Outcome)
	r.records++

	r.scheduleNext(evt.seq + 1)

	return nil
}

func (r *Replayer) scheduleNext(seq uint64) {
	rec, err := r.source.Next()
	if errors.Is(err, io.EOF) {
		return
	}
	if err != nil {
		if r.err == nil {
			r.err = fmt.Errorf("replay stopped after %d records: %w", r.records, err)
		}
		return
	}

	evt := &branchEvent{
		EventBase: sim.NewEventBase(r.freq.Period()*sim.VTimeInSec(seq), r),
		seq:       seq,
		record:    rec,
	}
	r.engine.Schedule(evt)
}

// SliceSource replays records held in memory.
type SliceSource struct {
	records []trace.Record
	pos     int
}

// NewSliceSource creates a Source over records.
func NewSliceSource(records []trace.Record) *SliceSource {
	return &SliceSource{records: records}
}

// Next returns the next record.
func (s *SliceSource) Next() (trace.Record, error) {
	if s.pos >= len(s.records) {
		return trace.Record{}, io.EOF
	}

	rec := s.records[s.pos]
	s.pos++

	return rec, nil
}
