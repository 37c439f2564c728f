// Package emoji provides symbol constants for CLI output.
package emoji

// Status symbols prefixed to command messages.
const (
	// Success marks a completed operation.
	Success = "✓"

	// Error marks a failed operation.
	Error = "✗"

	// Warning marks something the user should look at before continuing.
	Warning = "!"

	// Skipped marks an operation the user declined or that had nothing to do.
	Skipped = "-"
)
