package errors

// ErrorBuilder assembles a ClassifiedError. Severity defaults to error.
type ErrorBuilder struct {
	err ClassifiedError
}

// NewError starts an error of category c.
func NewError(c ErrorCategory, message string) *ErrorBuilder {
	return &ErrorBuilder{err: ClassifiedError{category: c, severity: SeverityError, message: message}}
}

// WrapError starts an error of category c around cause.
func WrapError(cause error, c ErrorCategory, message string) *ErrorBuilder {
	b := NewError(c, message)
	b.err.cause = cause
	return b
}

// ValidationError starts a fatal validation error.
func ValidationError(message string) *ErrorBuilder {
	return NewError(CategoryValidation, message).Fatal()
}

func (b *ErrorBuilder) WithContext(key string, value any) *ErrorBuilder {
	b.err.context = b.err.context.with(key, value)
	return b
}

// WithPath records the file or directory the error is about.
func (b *ErrorBuilder) WithPath(path string) *ErrorBuilder {
	return b.WithContext("path", path)
}

func (b *ErrorBuilder) Fatal() *ErrorBuilder {
	b.err.severity = SeverityFatal
	return b
}

func (b *ErrorBuilder) Warning() *ErrorBuilder {
	b.err.severity = SeverityWarning
	return b
}

// Build returns the error. The builder may be reused afterwards.
func (b *ErrorBuilder) Build() *ClassifiedError {
	out := b.err
	return &out
}
