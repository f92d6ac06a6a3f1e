// export_test.go exports private functions for white-box testing.
package logger

// ErrorEntry exposes errorEntry to tests.
type ErrorEntry = errorEntry

// Exported error formatting helpers.
var (
	CollectErrorEntries = collectErrorEntries
	FormatErrorEntries  = formatErrorEntries
)
