package seeder

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var errBoom = errors.New("boom")

// scriptedFaker hands out emails from a fixed list, wrapping around.
type scriptedFaker struct {
	emails []string
	next   int
}

func (f *scriptedFaker) Name() string { return "Test Customer" }

func (f *scriptedFaker) Email() string {
	e := f.emails[f.next%len(f.emails)]
	f.next++
	return e
}

func (f *scriptedFaker) CreatedAt() time.Time {
	return time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
}

// fakeLoader records every batch it is given and can fail on a chosen one.
type fakeLoader struct {
	batches   []Batch
	loads     int
	failAt    int // 1-based batch number to fail on, 0 = never
	truncated bool
	truncErr  error
	calls     []string
}

func (l *fakeLoader) LoadBatch(ctx context.Context, batch Batch) (int, error) {
	l.loads++
	l.calls = append(l.calls, fmt.Sprintf("load:%d", len(batch)))
	if l.loads == l.failAt {
		return 0, errBoom
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	l.batches = append(l.batches, batch)
	return len(batch), nil
}

func (l *fakeLoader) Truncate(ctx context.Context) error {
	l.calls = append(l.calls, "truncate")
	if l.truncErr != nil {
		return l.truncErr
	}
	l.truncated = true
	return nil
}

func (l *fakeLoader) records() []Record {
	var out []Record
	for _, b := range l.batches {
		out = append(out, b...)
	}
	return out
}

func distinctEmails(records []Record) int {
	set := make(map[string]struct{}, len(records))
	for _, r := range records {
		set[r.Email] = struct{}{}
	}
	return len(set)
}
