package errors

// Error is a classified failure from the grid core or the puzzle catalog.
//
// Metadata keys are lower-case and feed the message templates of the errors
// locale namespace, for example {{.row}} or {{.char}}. Error() is the
// untranslated cause text, meant for logs and spans.
type Error struct {
	Code     Code
	Metadata map[string]string
	Cause    error
}

func newError(code Code, cause error, metadata map[string]string) *Error {
	return &Error{Code: code, Metadata: metadata, Cause: cause}
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return string(e.Code)
	}
	return e.Cause.Error()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error carrying the same code, so errors.Is(err,
// &Error{Code: CodeGramRunTooLong}) works across wrapping.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && e.Code == t.Code
}
