package utilx

import "github.com/pkg/errors"

// Must returns item, or panics with err annotated with a stack trace. It is meant for calls that
// cannot fail with their arguments, such as a form built with a fixed boundary:
//
//	form := utilx.Must(multipartx.NewWithBoundary("0123456789abcdef"))
func Must[T any](item T, err error) T {
	if err != nil {
		panic(errors.WithStack(err))
	}
	return item
}
