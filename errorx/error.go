package errorx

import (
	"errors"
	"fmt"
	"io"

	pkgerrors "github.com/pkg/errors"
)

type SubmitError struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`

	OriginalError error `json:"-"`

	stack pkgerrors.StackTrace
}

var _ error = (*SubmitError)(nil)

func (e *SubmitError) Error() string {
	if e.OriginalError != nil {
		return fmt.Sprintf("[%s] %s: %s", e.Type.String(), e.Message, e.OriginalError.Error())
	}
	return fmt.Sprintf("[%s] %s", e.Type.String(), e.Message)
}

func (e *SubmitError) Unwrap() error {
	return e.OriginalError
}

// WithCause attaches the underlying error. The cause is part of Error() and reachable through errors.Is/As.
func (e *SubmitError) WithCause(err error) *SubmitError {
	e.OriginalError = err
	return e
}

// StackTrace returns the frames of the call to the constructor that created e.
func (e *SubmitError) StackTrace() pkgerrors.StackTrace {
	return e.stack
}

// Format prints the stack trace after the message for %+v.
func (e *SubmitError) Format(s fmt.State, verb rune) {
	switch {
	case verb == 'v' && s.Flag('+'):
		io.WriteString(s, e.Error())
		fmt.Fprintf(s, "%+v", e.stack)
	case verb == 'q':
		fmt.Fprintf(s, "%q", e.Error())
	default:
		io.WriteString(s, e.Error())
	}
}

type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

// newError must only be called from the exported constructors: the two innermost frames are
// dropped from the stack trace.
func newError(t ErrorType, msg string) *SubmitError {
	var stack pkgerrors.StackTrace
	if st, ok := pkgerrors.New(msg).(stackTracer); ok {
		stack = st.StackTrace()
		if len(stack) > 2 {
			stack = stack[2:]
		}
	}

	return &SubmitError{
		Type:    t,
		Message: msg,
		stack:   stack,
	}
}

// IsSubmitError unwraps e and returns the first SubmitError found in its chain.
func IsSubmitError(e error) (*SubmitError, bool) {
	if e == nil {
		return nil, false
	}

	var sE *SubmitError
	if !errors.As(e, &sE) {
		return nil, false
	}

	if sE.Type == ErrorTypeUnspecified {
		return nil, false
	}

	return sE, true
}

func isType(e error, t ErrorType) bool {
	sE, ok := IsSubmitError(e)
	if !ok {
		return false
	}

	return sE.Type == t
}
