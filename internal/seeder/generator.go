package seeder

import (
	"errors"
	"fmt"
)

// ErrUniquenessExhausted is returned when no unused email turned up within
// the attempt budget for one record.
var ErrUniquenessExhausted = errors.New("unique email space exhausted")

const DefaultMaxAttempts = 100

// RecordGenerator produces records whose emails are unique within a run.
type RecordGenerator struct {
	faker       Faker
	maxAttempts int
}

func NewRecordGenerator(faker Faker, maxAttempts int) *RecordGenerator {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &RecordGenerator{faker: faker, maxAttempts: maxAttempts}
}

// Generate returns a record whose email was not yet in seen, and adds it.
// seen grows by exactly one on success and is left untouched on error.
func (g *RecordGenerator) Generate(seen *EmailSet) (Record, error) {
	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		email := g.faker.Email()
		if !seen.Claim(email) {
			continue
		}
		return Record{
			Name:      g.faker.Name(),
			Email:     email,
			CreatedAt: g.faker.CreatedAt(),
		}, nil
	}
	return Record{}, fmt.Errorf("%w: no unused email after %d attempts (%d already claimed)",
		ErrUniquenessExhausted, g.maxAttempts, seen.Len())
}
