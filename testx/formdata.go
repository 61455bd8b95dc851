package testx

import (
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// FormPart is what a standards compliant reader recovers from one part of a multipart body.
type FormPart struct {
	Disposition string
	Name        string
	FileName    string
	ContentType string
	Body        string
}

// ReadFormParts parses a multipart body in order. Unlike http.Request.ParseMultipartForm it keeps
// parts whose disposition is "file".
func ReadFormParts(t testing.TB, contentType string, body io.Reader) []FormPart {
	t.Helper()

	mediaType, params, err := mime.ParseMediaType(contentType)
	require.NoError(t, err)
	require.Equal(t, "multipart/form-data", mediaType)

	r := multipart.NewReader(body, params["boundary"])
	var parts []FormPart
	for {
		p, err := r.NextPart()
		if errors.Is(err, io.EOF) {
			return parts
		}
		require.NoError(t, err)

		disposition, dParams, err := mime.ParseMediaType(p.Header.Get("Content-Disposition"))
		require.NoError(t, err)

		content, err := io.ReadAll(p)
		require.NoError(t, err)

		parts = append(parts, FormPart{
			Disposition: disposition,
			Name:        dParams["name"],
			FileName:    dParams["filename"],
			ContentType: p.Header.Get("Content-Type"),
			Body:        string(content),
		})
	}
}

func FormPartNames(parts []FormPart) []string {
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = p.Name
	}
	return out
}

// WriteFile writes content to name in a directory removed at the end of the test and returns its
// path.
func WriteFile(t testing.TB, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
