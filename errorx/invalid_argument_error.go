package errorx

import "fmt"

// InvalidArgumentErrorf creates a SubmitError with type ErrorTypeInvalidArgument and a formatted message
func InvalidArgumentErrorf(format string, args ...any) *SubmitError {
	return newError(
		ErrorTypeInvalidArgument,
		fmt.Sprintf(format, args...),
	)
}

func IsInvalidArgumentError(e error) bool {
	return isType(e, ErrorTypeInvalidArgument)
}
