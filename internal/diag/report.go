package diag

import "fmt"

// Span is a minimal source-position range. corec does not own the lexer, so
// this is just enough structure to carry through from the AST.
type Span struct {
	StartLine, StartCol int
	EndLine, EndCol     int
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d:%d", s.StartLine, s.StartCol, s.EndLine, s.EndCol)
}

// Error is the structured error type returned by resolution and type
// checking. These errors carry a diag_id (Code) and do not mutate
// evaluator state, they pre-date evaluation entirely.
type Error struct {
	Code    Code
	Message string
	Span    Span
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%s] %s (%s)", e.Code, e.Message, e.Span)
}

// Errorf builds an *Error with a formatted message.
func Errorf(code Code, span Span, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Span: span}
}

// AsError extracts a *Error from a generic error, if present.
func AsError(err error) (*Error, bool) {
	e, ok := err.(*Error)
	return e, ok
}
