package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummary_Outcome(t *testing.T) {
	tests := []struct {
		summary Summary
		outcome Outcome
		message string
	}{
		{Summary{}, OutcomeEmpty, "No rows found in file"},
		{Summary{TotalRows: 3, Skipped: 3}, OutcomeAllFailed, "Nothing imported: all 3 rows failed"},
		{Summary{TotalRows: 10, Imported: 7, Skipped: 3}, OutcomePartial, "Imported 7 of 10 rows (3 skipped)"},
		{Summary{TotalRows: 2, Imported: 2}, OutcomeComplete, "Imported 2 of 2 rows (0 skipped)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.outcome, tt.summary.Outcome())
		assert.Equal(t, tt.message, tt.summary.Message())
	}
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "partial", OutcomePartial.String())
	assert.Equal(t, "Outcome(9)", Outcome(9).String())
}

func TestSummary_ReasonCounts(t *testing.T) {
	s := Summary{Errors: []RowError{
		{RowIndex: 0, Reason: "Invalid amount format"},
		{RowIndex: 2, Reason: "Invalid amount format"},
		{RowIndex: 5, Reason: "Invalid date format"},
	}}
	assert.Equal(t, map[string]int{"Invalid amount format": 2, "Invalid date format": 1}, s.ReasonCounts())
}

func TestRowError_Error(t *testing.T) {
	e := RowError{RowIndex: 4, Reason: "Invalid date format"}
	assert.Equal(t, "row 4: Invalid date format", e.Error())
}
