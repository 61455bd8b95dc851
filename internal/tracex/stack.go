package internaltracex

import (
	"fmt"
	"runtime"
	"strings"
)

const maxStackTraceLen = 2048

// GetStackTrace returns the stack trace of the caller, skipping skipLevels frames.
// GetStackTrace(2) skips runtime.Callers and GetStackTrace itself.
func GetStackTrace(skipLevels int) string {
	pc := make([]uintptr, 16)
	n := runtime.Callers(skipLevels, pc)
	frames := runtime.CallersFrames(pc[:n])

	var b strings.Builder
	for {
		frame, more := frames.Next()
		fmt.Fprintf(&b, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
		if !more || b.Len() > maxStackTraceLen {
			break
		}
	}

	return b.String()
}
