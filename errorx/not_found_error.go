package errorx

import "fmt"

// NotFoundErrorf creates a SubmitError with type ErrorTypeNotFound and a formatted message
func NotFoundErrorf(format string, args ...any) *SubmitError {
	return newError(
		ErrorTypeNotFound,
		fmt.Sprintf(format, args...),
	)
}

func IsNotFoundError(e error) bool {
	return isType(e, ErrorTypeNotFound)
}
