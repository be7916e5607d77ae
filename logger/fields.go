package logger

// Standard field names for consistent structured logging across rglue.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Files and paths
	FieldFile   = "file"
	FieldPath   = "path"
	FieldTarget = "target"

	// Generation model
	FieldPackage  = "package"
	FieldFunction = "function"
	FieldArgument = "argument"
	FieldDefault  = "default"

	// Results
	FieldCount   = "count"
	FieldUpdated = "updated"
	FieldRemoved = "removed"

	// Errors
	FieldError = "error"
)
