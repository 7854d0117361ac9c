package seeder

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Rana718/custseed/internal/config"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type Seeder struct {
	seedConfig SeedConfig
	loader     BatchLoader
	newFaker   func(worker int) Faker
	out        io.Writer
	runID      string
}

type Option func(*Seeder)

// WithOutput sends progress lines to w instead of stdout.
func WithOutput(w io.Writer) Option {
	return func(s *Seeder) { s.out = w }
}

// WithFaker replaces the default word-list generator. newFaker is called
// once per worker.
func WithFaker(newFaker func(worker int) Faker) Option {
	return func(s *Seeder) { s.newFaker = newFaker }
}

// ConfigFrom maps the loaded configuration onto a SeedConfig.
func ConfigFrom(cfg *config.Config) SeedConfig {
	return SeedConfig{
		Table:       cfg.Seed.Table,
		Total:       cfg.Seed.Total,
		Batch:       cfg.Seed.BatchSize,
		Workers:     cfg.Seed.Workers,
		MaxAttempts: cfg.Seed.MaxAttempts,
		Truncate:    cfg.Seed.Truncate,
		RandSeed:    cfg.Seed.RandSeed,
	}
}

func New(seedConfig SeedConfig, loader BatchLoader, opts ...Option) *Seeder {
	if seedConfig.Workers <= 0 {
		seedConfig.Workers = 1
	}
	if seedConfig.MaxAttempts <= 0 {
		seedConfig.MaxAttempts = DefaultMaxAttempts
	}

	base := seedConfig.RandSeed
	if base == 0 {
		base = time.Now().UnixNano()
	}

	s := &Seeder{
		seedConfig: seedConfig,
		loader:     loader,
		newFaker: func(worker int) Faker {
			return NewDataGenerator(base + int64(worker))
		},
		out:   os.Stdout,
		runID: uuid.NewString(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Seeder) RunID() string { return s.runID }

// Seed generates and commits Total records, Batch per transaction, and
// returns the final state. It stops at the first error; the returned state
// then counts only the batches the store acknowledged.
func (s *Seeder) Seed(ctx context.Context) (RunState, error) {
	cfg := s.seedConfig
	state := RunState{TotalTarget: cfg.Total, BatchSize: cfg.Batch}

	plan := planBatches(cfg.Total, cfg.Batch)
	if len(plan) == 0 {
		return state, fmt.Errorf("nothing to seed: total=%d batch=%d", cfg.Total, cfg.Batch)
	}

	color.New(color.FgCyan).Fprintf(s.out, "🌱 Starting customer seeding (run %s)\n", s.runID)
	fmt.Fprintf(s.out, "📋 %s records into %s, %d batches of up to %s\n",
		humanize.Comma(int64(cfg.Total)), cfg.Table, len(plan), humanize.Comma(int64(cfg.Batch)))

	if cfg.Truncate {
		color.New(color.FgYellow).Fprintf(s.out, "🗑️  Truncating %s...\n", cfg.Table)
		if err := s.loader.Truncate(ctx); err != nil {
			return state, err
		}
	}

	seen := NewEmailSet(cfg.Total)

	var err error
	if cfg.Workers > 1 {
		err = s.seedConcurrent(ctx, plan, seen, &state)
	} else {
		err = s.seedSequential(ctx, plan, seen, &state)
	}
	if err != nil {
		color.New(color.FgRed).Fprintf(s.out, "❌ Seeding stopped after %s records: %v\n",
			humanize.Comma(int64(state.Committed)), err)
		return state, err
	}

	color.New(color.FgGreen).Fprintf(s.out, "✅ Data generation complete! %s records in %d batches\n",
		humanize.Comma(int64(state.Committed)), state.Batches)
	return state, nil
}

func (s *Seeder) seedSequential(ctx context.Context, plan []int, seen *EmailSet, state *RunState) error {
	gen := NewRecordGenerator(s.newFaker(0), s.seedConfig.MaxAttempts)

	for i, size := range plan {
		if err := ctx.Err(); err != nil {
			return err
		}
		batch, err := BuildBatch(gen, seen, size)
		if err != nil {
			return fmt.Errorf("failed to generate batch %d: %w", i+1, err)
		}
		if err := s.commit(ctx, batch, state); err != nil {
			return err
		}
	}
	return nil
}

// seedConcurrent lets several workers build batches ahead of a single
// committer. Commits stay one at a time; only their order may differ from plan.
func (s *Seeder) seedConcurrent(ctx context.Context, plan []int, seen *EmailSet, state *RunState) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	workers := s.seedConfig.Workers
	jobs := make(chan int)
	batches := make(chan Batch, workers)

	producers, pctx := errgroup.WithContext(ctx)
	producers.Go(func() error {
		defer close(jobs)
		for _, size := range plan {
			select {
			case jobs <- size:
			case <-pctx.Done():
				return pctx.Err()
			}
		}
		return nil
	})

	for w := 0; w < workers; w++ {
		gen := NewRecordGenerator(s.newFaker(w), s.seedConfig.MaxAttempts)
		producers.Go(func() error {
			for size := range jobs {
				batch, err := BuildBatch(gen, seen, size)
				if err != nil {
					return fmt.Errorf("failed to generate batch: %w", err)
				}
				select {
				case batches <- batch:
				case <-pctx.Done():
					return pctx.Err()
				}
			}
			return nil
		})
	}

	var produceErr error
	go func() {
		produceErr = producers.Wait()
		close(batches)
	}()

	var commitErr error
	for batch := range batches {
		if commitErr != nil || pctx.Err() != nil {
			continue // drain so producers can exit
		}
		if err := s.commit(ctx, batch, state); err != nil {
			commitErr = err
			cancel()
		}
	}

	if commitErr != nil {
		return commitErr
	}
	return produceErr
}

func (s *Seeder) commit(ctx context.Context, batch Batch, state *RunState) error {
	n, err := s.loader.LoadBatch(ctx, batch)
	if err != nil {
		return fmt.Errorf("failed to load batch %d: %w", state.Batches+1, err)
	}
	state.Committed += n
	state.Batches++

	color.New(color.FgGreen).Fprintf(s.out, "  %s records inserted...\n", humanize.Comma(int64(state.Committed)))
	return nil
}
