package logging

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func testRun() RunRecord {
	return RunRecord{
		Seed:        7,
		Particles:   100,
		States:      5,
		Checkpoints: 2,
		EndTime:     10,
		Merge:       "local",
		Output:      "occ.txt",
	}
}

func TestOpenRunLog_InfoLevel(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".mlwalk")
	l, err := OpenRunLog(dir, "info")
	if err != nil {
		t.Fatalf("OpenRunLog() error = %v", err)
	}
	if l != nil {
		t.Fatal("expected nil RunLog at info level")
	}
	l.Start(testRun())
	l.Finish(RunOutcome{Rows: 3})

	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Error("run log directory should not exist at info level")
	}
}

func TestRunLog_StartAndFinish(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".mlwalk")
	l, err := OpenRunLog(dir, "debug")
	if err != nil {
		t.Fatalf("OpenRunLog() error = %v", err)
	}

	l.Start(testRun())
	l.Finish(RunOutcome{Workers: 4, Elapsed: 1500 * time.Millisecond, Steps: 900, RejectedDraws: 2, Rows: 3})
	if err := l.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	path := filepath.Join(dir, RunLogFileName)
	records, err := ReadRunLog(path)
	if err != nil {
		t.Fatalf("ReadRunLog() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}

	started, finished := records[0], records[1]
	if started.Event != RunStarted || started.Seed != 7 || started.Particles != 100 {
		t.Errorf("unexpected start record: %+v", started)
	}
	if started.Time.IsZero() {
		t.Error("start record has no time")
	}
	if finished.Event != RunFinished {
		t.Errorf("second record event = %q, want %q", finished.Event, RunFinished)
	}
	if finished.Seed != 7 || finished.Output != "occ.txt" {
		t.Errorf("finish record does not repeat the run parameters: %+v", finished)
	}
	if finished.Workers != 4 || finished.ElapsedSeconds != 1.5 || finished.RejectedDraws != 2 || finished.Rows != 3 {
		t.Errorf("unexpected outcome fields: %+v", finished)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("failed to stat runs.jsonl: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("file permissions = %o, want 0600", perm)
	}
}

func TestRunLog_FailKeepsOnlyFirstOutcome(t *testing.T) {
	dir := t.TempDir()
	l, err := OpenRunLog(dir, "trace")
	if err != nil {
		t.Fatalf("OpenRunLog() error = %v", err)
	}
	l.Start(testRun())
	l.Fail(errors.New("ensemble run: context canceled"))
	l.Finish(RunOutcome{Rows: 3})
	l.Close()

	records, err := ReadRunLog(filepath.Join(dir, RunLogFileName))
	if err != nil {
		t.Fatalf("ReadRunLog() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[1].Event != RunFailed || !strings.Contains(records[1].Error, "canceled") {
		t.Errorf("unexpected failure record: %+v", records[1])
	}
}

func TestRunLog_AppendsAcrossRuns(t *testing.T) {
	dir := t.TempDir()
	for seed := uint64(1); seed <= 2; seed++ {
		l, err := OpenRunLog(dir, "debug")
		if err != nil {
			t.Fatalf("OpenRunLog() error = %v", err)
		}
		run := testRun()
		run.Seed = seed
		l.Start(run)
		l.Finish(RunOutcome{Rows: 3})
		l.Close()
	}

	records, err := ReadRunLog(filepath.Join(dir, RunLogFileName))
	if err != nil {
		t.Fatalf("ReadRunLog() error = %v", err)
	}
	if len(records) != 4 || records[3].Seed != 2 {
		t.Errorf("unexpected records after two runs: %+v", records)
	}
}

func TestReadRunLog_SkipsBadLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), RunLogFileName)
	content := `{"event":"run_started","seed":3}
not json
{"event":"run_finished","seed":3,"rows":2}
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	records, err := ReadRunLog(path)
	if err != nil {
		t.Fatalf("ReadRunLog() error = %v", err)
	}
	if len(records) != 2 || records[1].Rows != 2 {
		t.Errorf("unexpected records: %+v", records)
	}
}

func TestRunLog_NilSafety(t *testing.T) {
	var l *RunLog
	l.Start(testRun())
	l.Finish(RunOutcome{})
	l.Fail(errors.New("boom"))
	if err := l.Close(); err != nil {
		t.Errorf("Close() on nil = %v", err)
	}
}

func TestRunLog_WriteAfterClose(t *testing.T) {
	l, err := OpenRunLog(t.TempDir(), "debug")
	if err != nil {
		t.Fatalf("OpenRunLog() error = %v", err)
	}
	l.Close()
	l.Start(testRun())
	if err := l.Close(); err != nil {
		t.Errorf("second Close() = %v", err)
	}
}
