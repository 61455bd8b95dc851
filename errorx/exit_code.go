package errorx

const (
	ExitCodeOK        = 0
	ExitCodeFailure   = 1
	ExitCodeInput     = 2
	ExitCodeTransport = 3
	ExitCodeRejected  = 4
)

// ExitCode maps an error to the process exit status used by the command line tools.
// A rejected submission is one the server answered with a non-2xx status.
func ExitCode(err error) int {
	if err == nil {
		return ExitCodeOK
	}

	sE, ok := IsSubmitError(err)
	if !ok {
		return ExitCodeFailure
	}

	switch sE.Type {
	case ErrorTypeInvalidArgument, ErrorTypeNotFound, ErrorTypePayloadTooLarge:
		return ExitCodeInput
	case ErrorTypeUnavailable:
		return ExitCodeTransport
	case ErrorTypeFailedPrecondition:
		return ExitCodeRejected
	default:
		return ExitCodeFailure
	}
}
