package testx

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// RecordedRequest is a request received by a RecordingServer.
type RecordedRequest struct {
	Method        string
	Path          string
	Header        http.Header
	ContentLength int64
	Body          []byte
}

// Parts parses the multipart body of the request.
func (r RecordedRequest) Parts(t testing.TB) []FormPart {
	t.Helper()
	return ReadFormParts(t, r.Header.Get("Content-Type"), bytes.NewReader(r.Body))
}

// RecordingServer answers every request with a fixed status and body and keeps what it received.
type RecordingServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []RecordedRequest
}

func NewRecordingServer(t testing.TB, status int, body string) *RecordingServer {
	t.Helper()

	s := &RecordingServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		content, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		s.mu.Lock()
		s.requests = append(s.requests, RecordedRequest{
			Method:        r.Method,
			Path:          r.URL.Path,
			Header:        r.Header.Clone(),
			ContentLength: r.ContentLength,
			Body:          content,
		})
		s.mu.Unlock()

		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(s.Close)

	return s
}

// Host returns the host:port the server listens on.
func (s *RecordingServer) Host(t testing.TB) string {
	t.Helper()
	u, err := url.Parse(s.URL)
	require.NoError(t, err)
	return u.Host
}

func (s *RecordingServer) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]RecordedRequest(nil), s.requests...)
}

// LastRequest fails the test when nothing was received.
func (s *RecordingServer) LastRequest(t testing.TB) RecordedRequest {
	t.Helper()
	requests := s.Requests()
	require.NotEmpty(t, requests, "no request received")
	return requests[len(requests)-1]
}

// UnavailableHost returns the address of a server that has already been shut down.
func UnavailableHost(t testing.TB) string {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	u, err := url.Parse(srv.URL)
	srv.Close()
	require.NoError(t, err)
	return u.Host
}
