package assertx

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

type tHelper interface {
	Helper()
}

// EqualAsJSONExcept compares the JSON encodings of expected and actual after removing the
// except paths (gjson syntax) from both.
func EqualAsJSONExcept(t require.TestingT, expected, actual interface{}, except []string, args ...interface{}) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	ebs, abs := encode(t, expected), encode(t, actual)

	var err error
	for _, k := range except {
		ebs, err = sjson.Delete(ebs, k)
		require.NoError(t, err)

		abs, err = sjson.Delete(abs, k)
		require.NoError(t, err)
	}

	return assert.JSONEq(t, ebs, abs, args...)
}

func encode(t require.TestingT, v interface{}) string {
	switch raw := v.(type) {
	case string:
		return strings.TrimSpace(raw)
	case []byte:
		return strings.TrimSpace(string(raw))
	}
	var b bytes.Buffer
	require.NoError(t, json.NewEncoder(&b).Encode(v))
	return strings.TrimSpace(b.String())
}

// JSONLines parses newline delimited JSON, as written by the JSON log handler.
func JSONLines(t require.TestingT, s string) []gjson.Result {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	var out []gjson.Result
	for _, line := range strings.Split(strings.TrimSpace(s), "\n") {
		if line == "" {
			continue
		}
		require.True(t, gjson.Valid(line), "invalid json line: %s", line)
		out = append(out, gjson.Parse(line))
	}
	return out
}

// FindJSONLine returns the first line whose path holds value. It fails the test when no line
// matches.
func FindJSONLine(t require.TestingT, s, path, value string) gjson.Result {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	for _, line := range JSONLines(t, s) {
		if line.Get(path).String() == value {
			return line
		}
	}
	require.Failf(t, "no matching json line", "no line with %s=%q in:\n%s", path, value, s)
	return gjson.Result{}
}
