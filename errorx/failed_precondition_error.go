package errorx

import "fmt"

// FailedPreconditionErrorf creates a SubmitError with type ErrorTypeFailedPrecondition and a formatted message
func FailedPreconditionErrorf(format string, args ...any) *SubmitError {
	return newError(
		ErrorTypeFailedPrecondition,
		fmt.Sprintf(format, args...),
	)
}

func IsFailedPreconditionError(e error) bool {
	return isType(e, ErrorTypeFailedPrecondition)
}
