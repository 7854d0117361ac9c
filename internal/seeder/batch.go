package seeder

import "fmt"

// BuildBatch calls gen exactly size times and returns the records in
// generation order. It does no deduplication of its own.
func BuildBatch(gen *RecordGenerator, seen *EmailSet, size int) (Batch, error) {
	batch := make(Batch, 0, size)
	for i := 0; i < size; i++ {
		record, err := gen.Generate(seen)
		if err != nil {
			return nil, fmt.Errorf("record %d of %d: %w", i+1, size, err)
		}
		batch = append(batch, record)
	}
	return batch, nil
}

// planBatches splits total into batch-sized chunks. A remainder becomes one
// final, smaller batch so the run commits exactly total records.
func planBatches(total, size int) []int {
	if total <= 0 || size <= 0 {
		return nil
	}
	plan := make([]int, 0, total/size+1)
	for remaining := total; remaining > 0; remaining -= size {
		plan = append(plan, min(size, remaining))
	}
	return plan
}
