package errorx

import "fmt"

// InternalErrorf creates a SubmitError with type ErrorTypeInternal and a formatted message
func InternalErrorf(format string, args ...any) *SubmitError {
	return newError(
		ErrorTypeInternal,
		fmt.Sprintf(format, args...),
	)
}

func IsInternalError(e error) bool {
	return isType(e, ErrorTypeInternal)
}
