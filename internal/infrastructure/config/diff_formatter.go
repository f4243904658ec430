package config

import (
	"fmt"
	"strings"
)

// FormatChangesAsDiff renders migration changes as a plain diff.
func FormatChangesAsDiff(changes []KeyChange) string {
	if len(changes) == 0 {
		return "No changes detected."
	}

	var sb strings.Builder
	sb.WriteString("Config migration changes:\n\n")

	for _, change := range changes {
		switch change.Type {
		case KeyChangeAdded:
			sb.WriteString(fmt.Sprintf("  + %s = %s\n", change.NewKey, change.NewValue))
		case KeyChangeRemoved:
			sb.WriteString(fmt.Sprintf("  - %s = %s (unknown)\n", change.OldKey, change.OldValue))
		case KeyChangeRenamed:
			sb.WriteString(fmt.Sprintf("  ~ %s -> %s\n", change.OldKey, change.NewKey))
			sb.WriteString(fmt.Sprintf("    (value: %s)\n", change.OldValue))
		}
	}
	return sb.String()
}
