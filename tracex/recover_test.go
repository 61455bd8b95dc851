package tracex

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/amphora/patentsafe-submit/errorx"
	loggerxtest "github.com/amphora/patentsafe-submit/loggerx/test"
)

func TestRecoverWithStackTrace(t *testing.T) {
	ctx := context.Background()

	t.Run("should recover from a panic and log the stack trace", func(t *testing.T) {
		l, buf := loggerxtest.NewTestLoggerWithTextBuffer(t)

		err := func() (err error) {
			defer RecoverWithStackTrace(ctx, l, "panic at the disco", &err)
			panic("test panic")
		}()

		assert.True(t, errorx.IsInternalError(err))
		assert.Contains(t, err.Error(), "test panic")
		assert.Contains(t, buf.String(), "panic at the disco")
		assert.Contains(t, buf.String(), "test panic")
		assert.Contains(t, buf.String(), "tracex")
	})

	t.Run("should describe error panics", func(t *testing.T) {
		err := func() (err error) {
			defer RecoverWithStackTrace(ctx, nil, "boom", &err)
			panic(errors.New("test panic"))
		}()

		assert.EqualError(t, err, "[INTERNAL] boom: test panic")
	})

	t.Run("should describe unknown panics", func(t *testing.T) {
		err := func() (err error) {
			defer RecoverWithStackTrace(ctx, nil, "boom", &err)
			panic(42)
		}()

		assert.EqualError(t, err, "[INTERNAL] boom: unknown panic")
	})

	t.Run("should leave the error alone without a panic", func(t *testing.T) {
		err := func() (err error) {
			defer RecoverWithStackTrace(ctx, nil, "boom", &err)
			return errorx.NotFoundErrorf("missing")
		}()

		assert.True(t, errorx.IsNotFoundError(err))
	})
}

func TestStackTraceAttrs(t *testing.T) {
	assert.Empty(t, StackTraceAttrs(nil))
	assert.Len(t, StackTraceAttrs("oops"), 2)
	assert.Contains(t, GetStackTrace(), "TestStackTraceAttrs")
}
