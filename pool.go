package md2slides

import "runtime"

// Worker sizing constants for batch conversion.
const (
	// MinWorkers ensures at least one conversion runs.
	MinWorkers = 1

	// MaxWorkers caps concurrent conversions; each one holds a whole note
	// and its embeds in memory.
	MaxWorkers = 16
)

// ResolveWorkers determines the number of concurrent conversions.
// Priority: explicit workers > GOMAXPROCS (adjusted by automaxprocs for
// containers).
func ResolveWorkers(workers int) int {
	if workers > 0 {
		return min(workers, MaxWorkers)
	}
	return max(MinWorkers, min(runtime.GOMAXPROCS(0), MaxWorkers))
}
