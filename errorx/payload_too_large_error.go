package errorx

import "fmt"

// PayloadTooLargeErrorf creates a SubmitError with type ErrorTypePayloadTooLarge and a formatted message
func PayloadTooLargeErrorf(format string, args ...any) *SubmitError {
	return newError(
		ErrorTypePayloadTooLarge,
		fmt.Sprintf(format, args...),
	)
}

func IsPayloadTooLargeError(e error) bool {
	return isType(e, ErrorTypePayloadTooLarge)
}
