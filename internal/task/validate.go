package task

import (
	"github.com/twiced-technology-gmbh/todo/internal/clierr"
)

// ValidatePriority checks that a priority is a single uppercase letter A-Z.
func ValidatePriority(p string) error {
	if len(p) == 1 && p[0] >= 'A' && p[0] <= 'Z' {
		return nil
	}
	return clierr.Newf(clierr.InvalidPriority, "invalid priority %q: must be a single letter A-Z", p).
		WithDetails(map[string]any{"priority": p})
}

// ValidateTaskNumber returns a CLIError for non-numeric task number input.
func ValidateTaskNumber(input string) *clierr.Error {
	return clierr.Newf(clierr.InvalidTaskNumber, "invalid task number %q", input).
		WithDetails(map[string]any{"input": input})
}

// ValidateDate returns a CLIError for invalid date input.
func ValidateDate(field, input string) *clierr.Error {
	return clierr.Newf(clierr.InvalidDate, "invalid %s date %q: expected YYYY-MM-DD", field, input).
		WithDetails(map[string]any{"field": field, "input": input})
}
