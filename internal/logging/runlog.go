package logging

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// RunLogFileName is the JSONL file a RunLog appends to.
const RunLogFileName = "runs.jsonl"

// Run log events.
const (
	RunStarted  = "run_started"
	RunFinished = "run_finished"
	RunFailed   = "run_failed"
)

// RunRecord is one line of the run log. Every record of a run repeats the
// run's parameters so lines can be read independently.
type RunRecord struct {
	Event string    `json:"event"`
	Time  time.Time `json:"time"`

	Seed        uint64  `json:"seed"`
	Particles   int     `json:"particles"`
	States      int     `json:"states"`
	Checkpoints int     `json:"checkpoints"`
	EndTime     float64 `json:"end_time"`
	Merge       string  `json:"merge,omitempty"`
	Output      string  `json:"output,omitempty"`

	// Set on run_finished.
	Workers        int     `json:"workers,omitempty"`
	ElapsedSeconds float64 `json:"elapsed_s,omitempty"`
	Steps          int64   `json:"steps,omitempty"`
	RejectedDraws  int64   `json:"rejected_draws,omitempty"`
	Rows           int     `json:"rows,omitempty"`

	// Set on run_failed.
	Error string `json:"error,omitempty"`
}

// RunOutcome summarizes a completed run for the run_finished record.
type RunOutcome struct {
	Workers       int
	Elapsed       time.Duration
	Steps         int64
	RejectedDraws int64
	Rows          int
}

// RunLog appends the records of one run to a JSONL file. A nil RunLog
// discards everything, so callers need not check whether logging is on.
type RunLog struct {
	mu   sync.Mutex
	f    *os.File
	enc  *json.Encoder
	run  RunRecord
	done bool
}

// OpenRunLog opens dir/runs.jsonl for append when level is debug or trace.
// At info level it returns a nil RunLog and creates nothing.
func OpenRunLog(dir, level string) (*RunLog, error) {
	if ParseLevel(level) >= slog.LevelInfo {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("creating run log directory: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, RunLogFileName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("opening run log: %w", err)
	}
	return &RunLog{f: f, enc: json.NewEncoder(f)}, nil
}

// Start records run_started. The parameters in run are repeated in the
// run's later records.
func (l *RunLog) Start(run RunRecord) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.run = run
	l.write(RunStarted, func(*RunRecord) {})
}

// Finish records run_finished with the run's outcome.
func (l *RunLog) Finish(out RunOutcome) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.write(RunFinished, func(r *RunRecord) {
		r.Workers = out.Workers
		r.ElapsedSeconds = out.Elapsed.Seconds()
		r.Steps = out.Steps
		r.RejectedDraws = out.RejectedDraws
		r.Rows = out.Rows
	})
}

// Fail records run_failed. Only the first Finish or Fail of a run is kept.
func (l *RunLog) Fail(err error) {
	if l == nil || err == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.write(RunFailed, func(r *RunRecord) { r.Error = err.Error() })
}

// write must be called with l.mu held.
func (l *RunLog) write(event string, fill func(*RunRecord)) {
	if l.f == nil || l.done {
		return
	}
	rec := l.run
	rec.Event = event
	rec.Time = time.Now().UTC()
	fill(&rec)
	_ = l.enc.Encode(rec)
	if event != RunStarted {
		l.done = true
	}
}

// Close closes the file. Safe to call on nil receiver and more than once.
func (l *RunLog) Close() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.f == nil {
		return nil
	}
	err := l.f.Close()
	l.f = nil
	return err
}

// ReadRunLog returns the records in path, oldest first. Lines that do not
// parse are skipped.
func ReadRunLog(path string) ([]RunRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening run log: %w", err)
	}
	defer f.Close()

	var records []RunRecord
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var rec RunRecord
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading run log: %w", err)
	}
	return records, nil
}
