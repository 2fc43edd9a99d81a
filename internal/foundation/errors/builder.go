package errors

// ErrorBuilder assembles a ClassifiedError.
type ErrorBuilder struct {
	err ClassifiedError
}

// NewError starts a builder with severity error and an empty context.
func NewError(category ErrorCategory, message string) *ErrorBuilder {
	return &ErrorBuilder{err: ClassifiedError{
		category: category,
		severity: SeverityError,
		message:  message,
		context:  make(ErrorContext),
	}}
}

// WrapError starts a builder around cause.
func WrapError(cause error, category ErrorCategory, message string) *ErrorBuilder {
	return NewError(category, message).WithCause(cause)
}

func (b *ErrorBuilder) WithCause(cause error) *ErrorBuilder {
	b.err.cause = cause
	return b
}

// WithCategory replaces the category picked by the constructor.
func (b *ErrorBuilder) WithCategory(category ErrorCategory) *ErrorBuilder {
	b.err.category = category
	return b
}

func (b *ErrorBuilder) WithSeverity(severity ErrorSeverity) *ErrorBuilder {
	b.err.severity = severity
	return b
}

// WithContext records a structured detail.
func (b *ErrorBuilder) WithContext(key string, value any) *ErrorBuilder {
	b.err.context = b.err.context.Set(key, value)
	return b
}

// WithHint attaches operator guidance shown by the CLI adapter.
func (b *ErrorBuilder) WithHint(hint string) *ErrorBuilder {
	b.err.hint = hint
	return b
}

func (b *ErrorBuilder) Fatal() *ErrorBuilder   { return b.WithSeverity(SeverityFatal) }
func (b *ErrorBuilder) Warning() *ErrorBuilder { return b.WithSeverity(SeverityWarning) }

// Build returns a copy of the assembled error; the builder may be reused.
func (b *ErrorBuilder) Build() *ClassifiedError {
	e := b.err
	e.context = b.err.context.clone(0)
	return &e
}

// ConfigError is a fatal configuration error.
func ConfigError(message string) *ErrorBuilder {
	return NewError(CategoryConfig, message).Fatal()
}

// ValidationError is a fatal invalid-input error.
func ValidationError(message string) *ErrorBuilder {
	return NewError(CategoryValidation, message).Fatal()
}

// AuthError reports a Search Console credential problem.
func AuthError(message string) *ErrorBuilder {
	return NewError(CategoryAuth, message)
}

// NetworkError reports a failed remote call.
func NetworkError(message string) *ErrorBuilder {
	return NewError(CategoryNetwork, message)
}

// GitError reports a history failure. It only ever skips one file.
func GitError(message string) *ErrorBuilder {
	return NewError(CategoryGit, message).Warning()
}

// AnalyticsError reports a degraded Search Console query.
func AnalyticsError(message string) *ErrorBuilder {
	return NewError(CategoryAnalytics, message).Warning()
}

// FileSystemError reports content or artifact I/O failure.
func FileSystemError(message string) *ErrorBuilder {
	return NewError(CategoryFileSystem, message)
}

// PublishError reports that the artifact could not be copied into the build output.
func PublishError(message string) *ErrorBuilder {
	return NewError(CategoryPublish, message)
}

// InternalError reports a bug or recovered panic.
func InternalError(message string) *ErrorBuilder {
	return NewError(CategoryInternal, message).Fatal()
}
