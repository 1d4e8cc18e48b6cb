package profile

// Record is one load-profile record (spec §3): a timestamp, an ordered
// sequence of numeric values, and an optional hex status word.
type Record struct {
	Timestamp string
	Values    []float64
	Status    string // empty when absent
}
