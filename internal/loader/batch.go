package loader

// CalculateBatches returns the [start, end) bounds of every batch for total
// records. The last batch may be shorter than size.
func CalculateBatches(total, size int) [][2]int {
	if total <= 0 || size <= 0 {
		return nil
	}

	count := total / size
	if total%size > 0 {
		count++
	}

	bounds := make([][2]int, count)
	for i := range count {
		start := i * size
		end := min(start+size, total)
		bounds[i] = [2]int{start, end}
	}
	return bounds
}

// Partition splits records into consecutive batches of at most size records.
// The returned batches share the backing array of records.
func Partition[T any](records []T, size int) [][]T {
	bounds := CalculateBatches(len(records), size)
	batches := make([][]T, len(bounds))
	for i, b := range bounds {
		batches[i] = records[b[0]:b[1]:b[1]]
	}
	return batches
}
