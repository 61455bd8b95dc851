package assertx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEqualAsJSONExcept(t *testing.T) {
	a := map[string]interface{}{"msg": "sending submission", "time": "2024-01-01T00:00:00Z"}
	b := `{"msg": "sending submission", "time": "2025-02-02T00:00:00Z"}`

	assert.True(t, EqualAsJSONExcept(t, a, b, []string{"time"}))

	mock := &mockT{}
	assert.False(t, EqualAsJSONExcept(mock, a, b, nil))
	assert.True(t, mock.failed)
}

type mockT struct {
	failed bool
}

func (m *mockT) Errorf(string, ...interface{}) {
	m.failed = true
}

func (m *mockT) FailNow() {
	m.failed = true
}

func TestFindJSONLine(t *testing.T) {
	logs := `{"level":"INFO","msg":"built metadata packet"}
{"level":"INFO","msg":"sending submission","request_id":"abc"}
`
	assert.Len(t, JSONLines(t, logs), 2)
	assert.Equal(t, "abc", FindJSONLine(t, logs, "msg", "sending submission").Get("request_id").String())
}
