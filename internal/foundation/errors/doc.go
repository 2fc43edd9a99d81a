// Package errors provides the classified error type used across docstats.
//
// Errors carry a category (config, git, analytics, filesystem, ...), a
// severity, structured context and an optional operator hint. Most of the
// pipeline degrades instead of failing, so classified errors are mainly
// consumed by log statements and by the CLI adapter that picks the process
// exit code.
//
//	err := errors.WrapError(cause, errors.CategoryGit, "history query failed").
//		WithContext("path", file).
//		Build()
package errors
