package errors

// ErrorCategory groups errors by the subsystem that produced them. The CLI
// adapter maps categories to exit codes.
type ErrorCategory string

const (
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"
	CategoryAuth       ErrorCategory = "auth"
	CategoryNotFound   ErrorCategory = "not_found"

	// Remote systems: git history and the Search Console API.
	CategoryNetwork   ErrorCategory = "network"
	CategoryGit       ErrorCategory = "git"
	CategoryAnalytics ErrorCategory = "analytics"

	// Content and artifact I/O.
	CategoryFileSystem ErrorCategory = "filesystem"
	CategoryPublish    ErrorCategory = "publish"

	CategoryRuntime  ErrorCategory = "runtime"
	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity says whether a run can continue with degraded output.
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // the command stops
	SeverityError   ErrorSeverity = "error"   // the current operation fails
	SeverityWarning ErrorSeverity = "warning" // output is degraded
	SeverityInfo    ErrorSeverity = "info"
)

// ErrorContext carries structured key/value details logged with an error.
type ErrorContext map[string]any

// Set adds or replaces a value, allocating the map when nil.
func (c ErrorContext) Set(key string, value any) ErrorContext {
	if c == nil {
		c = make(ErrorContext)
	}
	c[key] = value
	return c
}

// Get looks up a value.
func (c ErrorContext) Get(key string) (any, bool) {
	v, ok := c[key]
	return v, ok
}

// String looks up a string value.
func (c ErrorContext) String(key string) string {
	s, _ := c[key].(string)
	return s
}

func (c ErrorContext) clone(extra int) ErrorContext {
	out := make(ErrorContext, len(c)+extra)
	for k, v := range c {
		out[k] = v
	}
	return out
}
