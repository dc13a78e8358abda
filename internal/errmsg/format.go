// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Cover art operations
	OpCoverRead   Op = "read cover art"
	OpCoverWrite  Op = "embed cover art"
	OpCoverRemove Op = "remove cover art"
	OpCoverExport Op = "export cover art"

	// Text metadata operations
	OpMetadataRead  Op = "read metadata"
	OpMetadataWrite Op = "update metadata"

	// Tag inspection
	OpTagInspect Op = "inspect tag"

	// Initialization
	OpConfigLoad Op = "load configuration"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
