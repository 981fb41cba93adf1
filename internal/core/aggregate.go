package core

// Result maps each category to the sum of its values for one run.
type Result map[string]float64

// Aggregate sums Value per Category in one pass over the rows, accumulating
// in source order. The key set of the result is exactly the set of distinct
// categories observed: no key invented, none dropped. An empty input yields
// an empty, non-nil result.
func Aggregate(rows []Row) Result {
	out := make(Result, len(rows))
	for _, r := range rows {
		out[r.Category] += r.Value
	}
	return out
}
