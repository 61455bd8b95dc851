package errorx

import "fmt"

// UnavailableErrorf creates a SubmitError with type ErrorTypeUnavailable and a formatted message
func UnavailableErrorf(format string, args ...any) *SubmitError {
	return newError(
		ErrorTypeUnavailable,
		fmt.Sprintf(format, args...),
	)
}

func IsUnavailableError(e error) bool {
	return isType(e, ErrorTypeUnavailable)
}
