package cli

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amphora/patentsafe-submit/errorx"
	loggerxtest "github.com/amphora/patentsafe-submit/loggerx/test"
	"github.com/amphora/patentsafe-submit/patentsafe"
	"github.com/amphora/patentsafe-submit/testx"
)

type result struct {
	code   int
	stdout string
	stderr string
}

func execute(t *testing.T, cmd *Command, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := cmd.Execute(context.Background(), args, &stdout, &stderr)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func TestSubmitURL(t *testing.T) {
	t.Run("should submit and print the answer", func(t *testing.T) {
		srv := testx.NewRecordingServer(t, http.StatusOK, "OK:SJCC0100000059\n")
		report := testx.WriteFile(t, "report.txt", "hello")

		r := execute(t, SubmitURL(),
			"--scheme", "http",
			"--summary", "Weekly notes",
			"--urlQuery", "page=42",
			"--metadata", "Project,Apollo, phase 2",
			"--metadata", "Lab,B12",
			"--queue", "sign",
			"--submissionDate", "2019-6-05 13:45:00",
			"--attachment", report,
			"--validateAuthor",
			srv.Host(t), "jsmith", "wiki",
		)
		require.Equal(t, errorx.ExitCodeOK, r.code, r.stderr)
		assert.Equal(t, "OK:SJCC0100000059\n", r.stdout)

		received := srv.LastRequest(t)
		assert.Equal(t, patentsafe.HTTPRetrievalPath, received.Path)
		assert.Equal(t, DefaultUserAgent, received.Header.Get("User-Agent"))
		assert.Equal(t, []testx.FormPart{
			{Disposition: "form-data", Name: "urlTarget", Body: "wiki"},
			{Disposition: "form-data", Name: "authorId", Body: "jsmith"},
			{Disposition: "form-data", Name: "metadata", Body: `<metadata><tag name="Project">Apollo, phase 2</tag><tag name="Lab">B12</tag></metadata>`},
			{Disposition: "form-data", Name: "urlQuery", Body: "page=42"},
			{Disposition: "form-data", Name: "summary", Body: "Weekly notes"},
			{Disposition: "form-data", Name: "queue", Body: "sign"},
			{Disposition: "form-data", Name: "submissionDate", Body: "2019-6-05 13:45:00"},
			{Disposition: "form-data", Name: "validateAuthor", Body: "true"},
			{Disposition: "file", Name: "attachment", FileName: "report.txt", ContentType: "text/plain", Body: "hello"},
		}, received.Parts(t))
	})

	t.Run("should print the answer and fail on a rejection", func(t *testing.T) {
		srv := testx.NewRecordingServer(t, http.StatusBadRequest, "ERR:Unknown author jsmith\n")

		r := execute(t, SubmitURL(), "--scheme", "http", srv.Host(t), "jsmith", "wiki")
		assert.Equal(t, errorx.ExitCodeRejected, r.code)
		assert.Equal(t, "ERR:Unknown author jsmith\n", r.stdout)
		assert.Contains(t, r.stderr, "400 Bad Request")
	})

	t.Run("should fail on missing arguments", func(t *testing.T) {
		r := execute(t, SubmitURL(), "ps.example.com", "jsmith")
		assert.Equal(t, errorx.ExitCodeInput, r.code)
		assert.Contains(t, r.stderr, "usage: patentsafe-submit-url [flags] ps_hostname authorId target")
		assert.Empty(t, r.stdout)
	})

	t.Run("should fail on an unknown flag", func(t *testing.T) {
		r := execute(t, SubmitURL(), "--colour", "ps.example.com", "jsmith", "wiki")
		assert.Equal(t, errorx.ExitCodeInput, r.code)
		assert.Contains(t, r.stderr, "colour")
	})

	t.Run("should print the usage on help", func(t *testing.T) {
		r := execute(t, SubmitURL(), "--help")
		assert.Equal(t, errorx.ExitCodeOK, r.code)
		assert.Contains(t, r.stderr, "--urlQuery")
		assert.Contains(t, r.stderr, "--validateAuthor")
	})

	t.Run("should not send anything on invalid input", func(t *testing.T) {
		srv := testx.NewRecordingServer(t, http.StatusOK, "OK:1")

		for k, args := range [][]string{
			{"--metadata", "no-comma"},
			{"--submissionDate", "05/06/2019"},
			{"--attachment", "/does/not/exist.txt"},
			{"--max-attachment-size", "1KB", "--attachment", testx.WriteFile(t, "big.bin", strings.Repeat("x", 2048))},
			{"--max-attachment-size", "lots"},
			{"--log-format", "xml"},
			{"--log-level", "loud"},
		} {
			r := execute(t, SubmitURL(), append(append([]string{"--scheme", "http"}, args...), srv.Host(t), "jsmith", "wiki")...)
			assert.Equal(t, errorx.ExitCodeInput, r.code, "case=%d: %s", k, r.stderr)
			assert.Empty(t, r.stdout, "case=%d", k)
		}
		assert.Empty(t, srv.Requests())
	})

	t.Run("should fail when PatentSafe is unreachable", func(t *testing.T) {
		r := execute(t, SubmitURL(), "--scheme", "http", testx.UnavailableHost(t), "jsmith", "wiki")
		assert.Equal(t, errorx.ExitCodeTransport, r.code)
		assert.Contains(t, r.stderr, "UNAVAILABLE")
	})

	t.Run("should log the metadata packet when verbose", func(t *testing.T) {
		srv := testx.NewRecordingServer(t, http.StatusOK, "OK:1")

		r := execute(t, SubmitURL(), "--scheme", "http", "-v", "--metadata", "Project,Apollo", srv.Host(t), "jsmith", "wiki")
		require.Equal(t, errorx.ExitCodeOK, r.code, r.stderr)
		assert.Contains(t, r.stderr, "built metadata packet")
		assert.NotContains(t, r.stderr, "parsed arguments")

		r = execute(t, SubmitURL(), "--scheme", "http", "-vv", srv.Host(t), "jsmith", "wiki")
		require.Equal(t, errorx.ExitCodeOK, r.code, r.stderr)
		assert.Contains(t, r.stderr, "parsed arguments")
	})

	t.Run("should write spans to stderr", func(t *testing.T) {
		srv := testx.NewRecordingServer(t, http.StatusOK, "OK:1")

		r := execute(t, SubmitURL(), "--scheme", "http", "--trace-provider", "stdout", srv.Host(t), "jsmith", "wiki")
		require.Equal(t, errorx.ExitCodeOK, r.code, r.stderr)
		assert.Equal(t, "OK:1", r.stdout)
		assert.Contains(t, r.stderr, `"Name":"patentsafe.Client.post"`)
		assert.NotEmpty(t, srv.LastRequest(t).Header.Get("Traceparent"))
	})

	t.Run("should export spans to a plaintext collector", func(t *testing.T) {
		srv := testx.NewRecordingServer(t, http.StatusOK, "OK:1")
		collector := testx.NewRecordingServer(t, http.StatusOK, "")

		r := execute(t, SubmitURL(), "--scheme", "http",
			"--trace-provider", "otlp",
			"--trace-endpoint", collector.Host(t),
			"--trace-insecure",
			srv.Host(t), "jsmith", "wiki",
		)
		require.Equal(t, errorx.ExitCodeOK, r.code, r.stderr)
		assert.Equal(t, "/v1/traces", collector.LastRequest(t).Path)
		assert.NotEmpty(t, srv.LastRequest(t).Header.Get("Traceparent"))
	})

	t.Run("should reject an unknown trace provider", func(t *testing.T) {
		r := execute(t, SubmitURL(), "--trace-provider", "jaeger", "ps.example.com", "jsmith", "wiki")
		assert.Equal(t, errorx.ExitCodeInput, r.code)
		assert.Contains(t, r.stderr, "jaeger")
	})

	t.Run("should stay quiet by default", func(t *testing.T) {
		srv := testx.NewRecordingServer(t, http.StatusOK, "OK:1")

		r := execute(t, SubmitURL(), "--scheme", "http", "--metadata", "Project,Apollo", srv.Host(t), "jsmith", "wiki")
		require.Equal(t, errorx.ExitCodeOK, r.code)
		assert.Empty(t, r.stderr)
	})
}

func TestSubmitURL_Config(t *testing.T) {
	srv := testx.NewRecordingServer(t, http.StatusOK, "OK:1")
	config := testx.WriteFile(t, "patentsafe.yaml", "scheme: http\nuser-agent: from-file\n")

	t.Run("should read the config file", func(t *testing.T) {
		r := execute(t, SubmitURL(), "--config", config, srv.Host(t), "jsmith", "wiki")
		require.Equal(t, errorx.ExitCodeOK, r.code, r.stderr)
		assert.Equal(t, "from-file", srv.LastRequest(t).Header.Get("User-Agent"))
	})

	t.Run("should prefer the environment over the file", func(t *testing.T) {
		t.Setenv("PATENTSAFE_USER_AGENT", "from-env")

		r := execute(t, SubmitURL(), "--config", config, srv.Host(t), "jsmith", "wiki")
		require.Equal(t, errorx.ExitCodeOK, r.code, r.stderr)
		assert.Equal(t, "from-env", srv.LastRequest(t).Header.Get("User-Agent"))
	})

	t.Run("should prefer flags over everything", func(t *testing.T) {
		t.Setenv("PATENTSAFE_USER_AGENT", "from-env")

		r := execute(t, SubmitURL(), "--config", config, "--user-agent", "from-flag", srv.Host(t), "jsmith", "wiki")
		require.Equal(t, errorx.ExitCodeOK, r.code, r.stderr)
		assert.Equal(t, "from-flag", srv.LastRequest(t).Header.Get("User-Agent"))
	})

	t.Run("should log the loaded config file when verbose", func(t *testing.T) {
		r := execute(t, SubmitURL(), "-vv", "--config", config, srv.Host(t), "jsmith", "wiki")
		require.Equal(t, errorx.ExitCodeOK, r.code, r.stderr)
		assert.Contains(t, r.stderr, "loaded config file")
		assert.Contains(t, r.stderr, config)

		r = execute(t, SubmitURL(), "--config", config, srv.Host(t), "jsmith", "wiki")
		require.Equal(t, errorx.ExitCodeOK, r.code, r.stderr)
		assert.NotContains(t, r.stderr, "loaded config file")
	})

	t.Run("should fail on a missing config file", func(t *testing.T) {
		r := execute(t, SubmitURL(), "--config", config+".missing.yaml", srv.Host(t), "jsmith", "wiki")
		assert.Equal(t, errorx.ExitCodeInput, r.code)
	})

	t.Run("should reject an unsupported scheme", func(t *testing.T) {
		r := execute(t, SubmitURL(), "--scheme", "ftp", srv.Host(t), "jsmith", "wiki")
		assert.Equal(t, errorx.ExitCodeInput, r.code)
	})
}

func TestUploadPDF(t *testing.T) {
	pdf := testx.WriteFile(t, "notebook.pdf", "%PDF-1.4")

	t.Run("should upload the document", func(t *testing.T) {
		srv := testx.NewRecordingServer(t, http.StatusOK, "OK:SJCC0100000060")

		r := execute(t, UploadPDF(), "--scheme", "http", "--destination", "sign", srv.Host(t), "simonc", pdf)
		require.Equal(t, errorx.ExitCodeOK, r.code, r.stderr)
		assert.Equal(t, "OK:SJCC0100000060", r.stdout)

		received := srv.LastRequest(t)
		assert.Equal(t, patentsafe.PDFUploadPath, received.Path)
		assert.Equal(t, []testx.FormPart{
			{Disposition: "form-data", Name: "authorId", Body: "simonc"},
			{Disposition: "form-data", Name: "destination", Body: "sign"},
			{Disposition: "file", Name: "pdfContent", FileName: "notebook.pdf", ContentType: "application/pdf", Body: "%PDF-1.4"},
		}, received.Parts(t))
	})

	t.Run("should fail on a missing file", func(t *testing.T) {
		r := execute(t, UploadPDF(), "ps.example.com", "simonc", pdf+".missing")
		assert.Equal(t, errorx.ExitCodeInput, r.code)
		assert.Contains(t, r.stderr, "NOT_FOUND")
	})
}

func TestLoadConfig(t *testing.T) {
	t.Run("should keep server TLS checks apart from trace transport", func(t *testing.T) {
		cmd := SubmitURL()
		require.NoError(t, cmd.flags.Parse([]string{"--trace-insecure", "ps.example.com", "jsmith", "wiki"}))

		cfg, err := loadConfig(context.Background(), cmd.flags, loggerxtest.NewTestLogger(t))
		require.NoError(t, err)
		assert.True(t, cfg.TraceInsecure)
		assert.False(t, cfg.Insecure)
	})

	t.Run("should not let insecure turn trace transport plaintext", func(t *testing.T) {
		cmd := SubmitURL()
		require.NoError(t, cmd.flags.Parse([]string{"--insecure", "ps.example.com", "jsmith", "wiki"}))

		cfg, err := loadConfig(context.Background(), cmd.flags, loggerxtest.NewTestLogger(t))
		require.NoError(t, err)
		assert.True(t, cfg.Insecure)
		assert.False(t, cfg.TraceInsecure)
	})
}
