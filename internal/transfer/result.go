package transfer

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"
)

// Result summarizes an import.
type Result struct {
	// Version is the envelope version, or 0 for a legacy flat map.
	Version int

	ImportedStandard  int
	ImportedSkillPair int

	// SkippedCount counts items left alone, whether they already held
	// data or failed validation. InvalidCount is the failed subset.
	SkippedCount int
	InvalidCount int

	// ImportedKeys lists each written item once, in import order.
	ImportedKeys []string

	// Errors combines the per-item validation failures.
	Errors error
}

// ImportedCount is the number of item sections written.
func (r Result) ImportedCount() int {
	return r.ImportedStandard + r.ImportedSkillPair
}

// Legacy reports whether the input was an un-enveloped flat map.
func (r Result) Legacy() bool {
	return r.Version == 0
}

// ItemErrors returns the per-item validation failures.
func (r Result) ItemErrors() []error {
	return multierr.Errors(r.Errors)
}

// Message returns the user-facing summary of the import.
func (r Result) Message() string {
	switch {
	case r.ImportedCount() > 0 && r.Legacy():
		msg := fmt.Sprintf("Successfully imported data for %d weapon(s) (legacy format)", r.ImportedCount())
		if r.SkippedCount > 0 {
			return msg + fmt.Sprintf(", skipped %d weapon(s) that already had data.", r.SkippedCount)
		}
		return msg + "."

	case r.ImportedCount() > 0:
		var parts []string
		if r.ImportedStandard > 0 {
			parts = append(parts, fmt.Sprintf("%d standard weapon(s)", r.ImportedStandard))
		}
		if r.ImportedSkillPair > 0 {
			parts = append(parts, fmt.Sprintf("%d Gogma weapon(s)", r.ImportedSkillPair))
		}
		msg := "Successfully imported: " + strings.Join(parts, ", ")
		if r.SkippedCount > 0 {
			msg += fmt.Sprintf(". Skipped %d weapon(s) that already had data.", r.SkippedCount)
		}
		return msg

	case r.SkippedCount > 0:
		return fmt.Sprintf("No data was imported. %d weapon(s) were skipped because they already had data.", r.SkippedCount)

	default:
		return "No valid weapon data found to import."
	}
}
