package seeder

import "time"

type SeedConfig struct {
	Table       string // Target table, must already exist
	Total       int    // Records to commit over the whole run
	Batch       int    // Records per transaction
	Workers     int    // Batch generators running ahead of the committer
	MaxAttempts int    // Email draws per record before giving up
	Truncate    bool   // Empty the table before seeding
	RandSeed    int64  // 0 = seeded from the clock
}

// Record is one synthetic customer row.
type Record struct {
	Name      string
	Email     string
	CreatedAt time.Time
}

// Batch is an ordered group of records committed in one transaction.
type Batch []Record

// RunState tracks progress of a run. Committed only moves after a commit
// is acknowledged by the store.
type RunState struct {
	TotalTarget int
	BatchSize   int
	Committed   int
	Batches     int
}

// Done reports whether the run reached its target.
func (s RunState) Done() bool {
	return s.Committed >= s.TotalTarget
}

var customerColumns = []string{"name", "email", "created_at"}
