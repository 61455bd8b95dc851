package errorx

type ErrorType string

const (
	// Only useful to assert whether or not an error is a SubmitError during cast
	ErrorTypeUnspecified        = ErrorType("")
	ErrorTypeFailedPrecondition = ErrorType("FAILED_PRECONDITION")
	ErrorTypeInternal           = ErrorType("INTERNAL")
	ErrorTypeInvalidArgument    = ErrorType("INVALID_ARGUMENT")
	ErrorTypeNotFound           = ErrorType("NOT_FOUND")
	ErrorTypePayloadTooLarge    = ErrorType("PAYLOAD_TOO_LARGE")
	ErrorTypeUnavailable        = ErrorType("UNAVAILABLE")
)

func ParseErrorType(s string) (ErrorType, error) {
	e := ErrorType(s)
	if err := e.Validate(); err != nil {
		return ErrorTypeUnspecified, err
	}

	return e, nil
}

func (e ErrorType) String() string {
	return string(e)
}

func (e ErrorType) Validate() error {
	switch e {
	case ErrorTypeFailedPrecondition,
		ErrorTypeInternal,
		ErrorTypeInvalidArgument,
		ErrorTypeNotFound,
		ErrorTypePayloadTooLarge,
		ErrorTypeUnavailable:
		return nil
	default:
		return InvalidArgumentErrorf("invalid error type: %s", e)
	}
}
