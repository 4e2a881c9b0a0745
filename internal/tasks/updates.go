package tasks

import (
	"fmt"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	CopyAddresses Phase = iota
	CopyLettings
	CopyProfiles
	ClearLettings
	ClearProfiles
)

func (p Phase) String() string {
	switch p {
	case CopyAddresses:
		return "copy_addresses"
	case CopyLettings:
		return "copy_lettings"
	case CopyProfiles:
		return "copy_profiles"
	case ClearLettings:
		return "clear_lettings"
	case ClearProfiles:
		return "clear_profiles"
	default:
		return ""
	}
}

func skippedUpdate(phase Phase, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   phase,
		Message: fmt.Sprintf("Skipped: %v", err),
	}
}

func startedUpdate(phase Phase, total int, kind string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   phase,
		Total:   total,
		Message: fmt.Sprintf("Copying %d legacy %s...", total, kind),
	}
}

func copiedUpdate(phase Phase, step, total int, item fmt.Stringer) ProgressUpdate {
	return ProgressUpdate{
		Phase:   phase,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s", step, total, item),
		Data:    item,
	}
}

func clearedUpdate(phase Phase, table string, n int64) ProgressUpdate {
	return ProgressUpdate{
		Phase:   phase,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Removed %d rows from %s", n, table),
	}
}
