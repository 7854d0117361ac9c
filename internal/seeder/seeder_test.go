package seeder

import (
	"bytes"
	"context"
	"errors"
	"io"
	"slices"
	"strings"
	"testing"

	"github.com/Rana718/custseed/internal/config"
)

func batchSizes(batches []Batch) []int {
	sizes := make([]int, len(batches))
	for i, b := range batches {
		sizes[i] = len(b)
	}
	return sizes
}

func TestSeedFiveBatchesOfFive(t *testing.T) {
	loader := &fakeLoader{}
	var out bytes.Buffer
	s := New(SeedConfig{Table: "customers", Total: 25, Batch: 5, RandSeed: 1}, loader, WithOutput(&out))

	state, err := s.Seed(context.Background())
	if err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	if !slices.Equal(batchSizes(loader.batches), []int{5, 5, 5, 5, 5}) {
		t.Errorf("Expected five batches of five, got %v", batchSizes(loader.batches))
	}
	if got := distinctEmails(loader.records()); got != 25 {
		t.Errorf("Expected 25 distinct emails, got %d", got)
	}
	if state.Committed != 25 || state.Batches != 5 || !state.Done() {
		t.Errorf("Unexpected final state: %+v", state)
	}
	if got := strings.Count(out.String(), "records inserted..."); got != 5 {
		t.Errorf("Expected 5 progress lines, got %d", got)
	}
	if !strings.Contains(out.String(), "25 records inserted...") {
		t.Errorf("Expected final progress line, got:\n%s", out.String())
	}
	if !strings.Contains(out.String(), s.RunID()) {
		t.Error("Expected the run id in the output")
	}
}

func TestSeedFinalPartialBatch(t *testing.T) {
	loader := &fakeLoader{}
	s := New(SeedConfig{Table: "customers", Total: 23, Batch: 5, RandSeed: 1}, loader, WithOutput(io.Discard))

	state, err := s.Seed(context.Background())
	if err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	if !slices.Equal(batchSizes(loader.batches), []int{5, 5, 5, 5, 3}) {
		t.Errorf("Expected [5 5 5 5 3], got %v", batchSizes(loader.batches))
	}
	if state.Committed != 23 {
		t.Errorf("Expected exactly 23 committed, got %d", state.Committed)
	}
}

func TestSeedStopsOnLoadFailure(t *testing.T) {
	loader := &fakeLoader{failAt: 3}
	var out bytes.Buffer
	s := New(SeedConfig{Table: "customers", Total: 25, Batch: 5, RandSeed: 1}, loader, WithOutput(&out))

	state, err := s.Seed(context.Background())
	if !errors.Is(err, errBoom) {
		t.Fatalf("Expected errBoom, got %v", err)
	}
	if !strings.Contains(err.Error(), "failed to load batch 3") {
		t.Errorf("Expected the batch number in the error, got %v", err)
	}
	if state.Committed != 10 || state.Batches != 2 {
		t.Errorf("Expected 10 records in 2 batches, got %+v", state)
	}
	if loader.loads != 3 {
		t.Errorf("Expected no batch after the failing one, got %d loads", loader.loads)
	}
	if !strings.Contains(out.String(), "Seeding stopped after 10 records") {
		t.Errorf("Expected a failure line, got:\n%s", out.String())
	}
}

func TestSeedUniquenessExhausted(t *testing.T) {
	loader := &fakeLoader{}
	s := New(SeedConfig{Table: "customers", Total: 4, Batch: 2, MaxAttempts: 5}, loader,
		WithOutput(io.Discard),
		WithFaker(func(int) Faker {
			return &scriptedFaker{emails: []string{"a@x.io", "b@x.io", "c@x.io"}}
		}))

	state, err := s.Seed(context.Background())
	if !errors.Is(err, ErrUniquenessExhausted) {
		t.Fatalf("Expected ErrUniquenessExhausted, got %v", err)
	}
	if state.Committed != 2 || len(loader.batches) != 1 {
		t.Errorf("Expected only the first batch committed, got %+v", state)
	}
}

func TestSeedTruncatesFirst(t *testing.T) {
	loader := &fakeLoader{}
	s := New(SeedConfig{Table: "customers", Total: 4, Batch: 2, Truncate: true, RandSeed: 1}, loader, WithOutput(io.Discard))

	if _, err := s.Seed(context.Background()); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	if !slices.Equal(loader.calls, []string{"truncate", "load:2", "load:2"}) {
		t.Errorf("Unexpected call order: %v", loader.calls)
	}
}

func TestSeedTruncateFailure(t *testing.T) {
	loader := &fakeLoader{truncErr: errBoom}
	s := New(SeedConfig{Table: "customers", Total: 4, Batch: 2, Truncate: true}, loader, WithOutput(io.Discard))

	if _, err := s.Seed(context.Background()); !errors.Is(err, errBoom) {
		t.Fatalf("Expected errBoom, got %v", err)
	}
	if loader.loads != 0 {
		t.Errorf("Expected no loads after a failed truncate, got %d", loader.loads)
	}
}

func TestSeedNothingToDo(t *testing.T) {
	s := New(SeedConfig{Table: "customers", Total: 0, Batch: 5}, &fakeLoader{}, WithOutput(io.Discard))
	if _, err := s.Seed(context.Background()); err == nil {
		t.Fatal("Expected an error for total=0")
	}
}

func TestSeedCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	loader := &fakeLoader{}
	s := New(SeedConfig{Table: "customers", Total: 10, Batch: 5, RandSeed: 1}, loader, WithOutput(io.Discard))

	state, err := s.Seed(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
	if state.Committed != 0 || loader.loads != 0 {
		t.Errorf("Expected nothing loaded, got %+v", state)
	}
}

func TestSeedConcurrentWorkers(t *testing.T) {
	loader := &fakeLoader{}
	s := New(SeedConfig{Table: "customers", Total: 1003, Batch: 50, Workers: 4, RandSeed: 42}, loader, WithOutput(io.Discard))

	state, err := s.Seed(context.Background())
	if err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	if state.Committed != 1003 || state.Batches != 21 {
		t.Errorf("Expected 1003 records in 21 batches, got %+v", state)
	}
	records := loader.records()
	if len(records) != 1003 || distinctEmails(records) != 1003 {
		t.Errorf("Expected 1003 unique records, got %d (%d distinct)", len(records), distinctEmails(records))
	}

	sizes := batchSizes(loader.batches)
	slices.Sort(sizes)
	if sizes[0] != 3 || sizes[len(sizes)-1] != 50 {
		t.Errorf("Expected one batch of 3 and the rest of 50, got %v", sizes)
	}
}

func TestSeedConcurrentLoadFailure(t *testing.T) {
	loader := &fakeLoader{failAt: 2}
	s := New(SeedConfig{Table: "customers", Total: 500, Batch: 10, Workers: 3, RandSeed: 42}, loader, WithOutput(io.Discard))

	state, err := s.Seed(context.Background())
	if !errors.Is(err, errBoom) {
		t.Fatalf("Expected errBoom, got %v", err)
	}
	if state.Committed != 10 || loader.loads != 2 {
		t.Errorf("Expected one committed batch and no loads after the failure, got %+v (%d loads)", state, loader.loads)
	}
}

func TestConfigFrom(t *testing.T) {
	cfg := &config.Config{Seed: config.Seed{
		Table: "people", Total: 7, BatchSize: 3, Workers: 2, MaxAttempts: 9, Truncate: true, RandSeed: 5,
	}}
	got := ConfigFrom(cfg)
	want := SeedConfig{Table: "people", Total: 7, Batch: 3, Workers: 2, MaxAttempts: 9, Truncate: true, RandSeed: 5}
	if got != want {
		t.Errorf("ConfigFrom = %+v, want %+v", got, want)
	}
}
