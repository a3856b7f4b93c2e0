package runtime

import (
	"strings"

	"github.com/manav03panchal/habitual/internal/errors"
)

// Suggestions provides helpful suggestions for common errors.
var Suggestions = map[error]string{
	errors.ErrStoreLocked:    "Another habitual process holds the store lock. If none is running, remove the stale .lock file beside the store.",
	errors.ErrStoreCorrupted: "The store file is not a valid version-1 document. Restore it from a backup or move it aside to start fresh.",
	errors.ErrHabitNotFound:  "Use 'habitual list' to see available habits.",
	errors.ErrDebtNotFound:   "Use 'habitual penalty list' to see open debts.",
}

// GetSuggestion returns a suggestion for an error, if available.
func GetSuggestion(err error) string {
	if ue, ok := errors.AsUsageError(err); ok && ue.Suggestion != "" {
		return ue.Suggestion
	}
	for knownErr, suggestion := range Suggestions {
		if errors.Is(err, knownErr) {
			return suggestion
		}
	}
	return ""
}

// FormatError formats an error with optional suggestion and, for
// ambiguous selectors, the candidate list.
func FormatError(err error) string {
	var sb strings.Builder
	sb.WriteString(err.Error())
	if ae, ok := errors.AsAmbiguousError(err); ok {
		for _, c := range ae.Candidates {
			sb.WriteString("\n  " + c)
		}
		return sb.String()
	}
	if suggestion := GetSuggestion(err); suggestion != "" {
		sb.WriteString("\n" + suggestion)
	}
	return sb.String()
}
