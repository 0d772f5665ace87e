package importer

import "fmt"

// RowError records why the row at RowIndex (0-based, data rows only) was skipped.
type RowError struct {
	RowIndex int
	Reason   string
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.RowIndex, e.Reason)
}

// Summary tallies a Transform. TotalRows == Imported + Skipped and
// len(Errors) == Skipped.
type Summary struct {
	TotalRows int
	Imported  int
	Skipped   int
	Errors    []RowError

	// AmbiguousDates lists imported rows whose date was read as month/day
	// but would also be valid as day/month.
	AmbiguousDates []int
}

// Outcome classifies a Summary for reporting.
type Outcome int

const (
	OutcomeEmpty Outcome = iota
	OutcomeAllFailed
	OutcomePartial
	OutcomeComplete
)

func (o Outcome) String() string {
	switch o {
	case OutcomeEmpty:
		return "empty"
	case OutcomeAllFailed:
		return "all-failed"
	case OutcomePartial:
		return "partial"
	case OutcomeComplete:
		return "complete"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Outcome reports whether the file was empty, every row failed, some rows
// failed, or all rows were imported.
func (s Summary) Outcome() Outcome {
	switch {
	case s.TotalRows == 0:
		return OutcomeEmpty
	case s.Imported == 0:
		return OutcomeAllFailed
	case s.Skipped > 0:
		return OutcomePartial
	default:
		return OutcomeComplete
	}
}

// Message is the user-facing one-line result.
func (s Summary) Message() string {
	switch s.Outcome() {
	case OutcomeEmpty:
		return "No rows found in file"
	case OutcomeAllFailed:
		return fmt.Sprintf("Nothing imported: all %d rows failed", s.TotalRows)
	default:
		return fmt.Sprintf("Imported %d of %d rows (%d skipped)", s.Imported, s.TotalRows, s.Skipped)
	}
}

// ReasonCounts groups Errors by reason.
func (s Summary) ReasonCounts() map[string]int {
	counts := make(map[string]int)
	for _, e := range s.Errors {
		counts[e.Reason]++
	}
	return counts
}
