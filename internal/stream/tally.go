package stream

import "fmt"

// Tally accumulates per-run counts of processed candidate identifiers.
// It is a plain value: the Processor keeps one per worker and merges them
// when the run completes, so no counter is ever shared between
// goroutines.
type Tally struct {
	// Total is the number of input lines read.
	Total uint64
	// Good is the number of lines that parsed as valid CUSIPs.
	Good uint64
	// Bad is the number of lines rejected for any reason.
	Bad uint64
	// Fixed is the number of rejected lines repaired in fix mode.
	Fixed uint64
}

// merge folds another tally into t.
func (t *Tally) merge(other Tally) {
	t.Total += other.Total
	t.Good += other.Good
	t.Bad += other.Bad
	t.Fixed += other.Fixed
}

// Remaining returns the number of rejected lines that were not repaired.
func (t Tally) Remaining() uint64 {
	return t.Bad - t.Fixed
}

// Summary returns the human-readable one-line summary for the run.
func (t Tally) Summary(fix bool) string {
	if fix {
		return fmt.Sprintf(
			"Read %d values; %d were valid CUSIPs and %d were not. Fixed %d; Omitted %d.",
			t.Total, t.Good, t.Bad, t.Fixed, t.Remaining(),
		)
	}
	return fmt.Sprintf(
		"Read %d values; %d were valid CUSIPs and %d were not.",
		t.Total, t.Good, t.Bad,
	)
}

// ExitCode returns the process exit status for the run: zero when no
// irrecoverable bad inputs remain, non-zero otherwise. In fix mode,
// repaired inputs do not count against the run.
func (t Tally) ExitCode(fix bool) int {
	if fix {
		if t.Remaining() > 0 {
			return 1
		}
		return 0
	}
	if t.Bad > 0 {
		return 1
	}
	return 0
}
