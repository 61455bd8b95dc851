package patentsafe

import (
	"context"
	"net/http"
	"net/url"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/inhies/go-bytesize"
	"github.com/samber/lo"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/amphora/patentsafe-submit/httpx"
	"github.com/amphora/patentsafe-submit/loggerx"
	"github.com/amphora/patentsafe-submit/multipartx"
	"github.com/amphora/patentsafe-submit/otelx"
	"github.com/amphora/patentsafe-submit/tracex"
)

const (
	DefaultScheme = "https"

	RequestIDHeader = "X-Request-Id"

	clientComponentName = "patentsafe.Client"
)

// Client sends submissions to a PatentSafe server. It makes exactly one request per call and
// does not retry.
type Client struct {
	http              *httpx.Client
	scheme            string
	maxAttachmentSize bytesize.ByteSize
	logger            *loggerx.Logger
	tracer            *otelx.Tracer
}

type ClientOption func(*Client)

func WithHTTPClient(c *httpx.Client) ClientOption {
	return func(pc *Client) {
		pc.http = c
	}
}

// WithScheme overrides the https scheme of submission URLs.
func WithScheme(scheme string) ClientOption {
	return func(pc *Client) {
		pc.scheme = scheme
	}
}

// WithMaxAttachmentSize rejects attachments larger than size before anything is sent.
func WithMaxAttachmentSize(size bytesize.ByteSize) ClientOption {
	return func(pc *Client) {
		pc.maxAttachmentSize = size
	}
}

func WithLogger(l *loggerx.Logger) ClientOption {
	return func(pc *Client) {
		pc.logger = l
	}
}

// WithTracer records a client span around every request.
func WithTracer(t *otelx.Tracer) ClientOption {
	return func(pc *Client) {
		pc.tracer = t
	}
}

func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		scheme: DefaultScheme,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = httpx.NewHTTPClient()
	}
	if c.logger == nil {
		c.logger = loggerx.NewNop()
	}
	if c.tracer == nil {
		c.tracer = otelx.NewNoop("")
	}
	return c
}

// SubmissionURL returns the endpoint at path on host.
func SubmissionURL(scheme, host, path string) string {
	return (&url.URL{Scheme: scheme, Host: host, Path: path}).String()
}

// Submit posts a URL retrieval submission. Any HTTP answer, including a non-2xx status, is
// returned as a Response; errors are input, attachment or transport failures.
func (c *Client) Submit(ctx context.Context, s *URLSubmission) (*httpx.Response, error) {
	form, err := s.Form(c.maxAttachmentSize)
	if err != nil {
		return nil, err
	}

	if metadata, ok := lo.Find(form.Fields(), func(f multipartx.Field) bool { return f.Name == FieldMetadata }); ok {
		c.logger.Info(ctx, "built metadata packet", attribute.String("metadata", metadata.Value))
	}
	c.logger.Debug(ctx, "built url retrieval submission",
		attribute.String("host", s.Host),
		attribute.String("author_id", s.AuthorID),
		attribute.String("target", s.Target),
		attribute.StringSlice("attachments", lo.Map(s.Attachments, func(p string, _ int) string { return filepath.Base(p) })),
	)

	return c.post(ctx, s.Host, HTTPRetrievalPath, form)
}

// UploadPDF posts a PDF document submission.
func (c *Client) UploadPDF(ctx context.Context, s *PDFSubmission) (*httpx.Response, error) {
	form, err := s.Form(c.maxAttachmentSize)
	if err != nil {
		return nil, err
	}

	c.logger.Debug(ctx, "built pdf submission",
		attribute.String("host", s.Host),
		attribute.String("author_id", s.AuthorID),
		attribute.String("file", filepath.Base(s.File)),
	)

	return c.post(ctx, s.Host, PDFUploadPath, form)
}

// post reuses the request id already carried by ctx, if any.
func (c *Client) post(ctx context.Context, host, path string, form *multipartx.Form) (*httpx.Response, error) {
	requestID, ok := loggerx.RequestIDFromContext(ctx)
	if !ok {
		requestID = uuid.NewString()
		ctx = loggerx.WithRequestID(ctx, requestID)
	}

	target := SubmissionURL(c.scheme, host, path)
	body := form.Bytes()

	ctx, span, l := tracex.Instrument(ctx, c.logger, c.tracer, clientComponentName, "post",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			semconv.HTTPRequestMethodPost,
			semconv.URLFull(target),
			attribute.String(loggerx.RequestIDFieldKey, requestID),
		),
	)
	defer span.End()

	l.Info(ctx, "sending submission",
		semconv.HTTPRequestMethodPost,
		semconv.URLFull(target),
		semconv.HTTPRequestBodySize(len(body)),
	)

	response, err := c.http.MakeHTTPRequest(ctx, &httpx.Request{
		Method:  http.MethodPost,
		URL:     target,
		RawBody: body,
		Headers: http.Header{
			"Content-Type":  {form.ContentType()},
			RequestIDHeader: {requestID},
		},
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		l.WithError(err).Warn(ctx, "submission could not be sent", semconv.URLFull(target))
		return nil, err
	}

	span.SetAttributes(semconv.HTTPResponseStatusCode(response.StatusCode))
	if !response.IsSuccess() {
		span.SetStatus(codes.Error, response.Status)
	}

	l.Info(ctx, "submission answered",
		semconv.HTTPResponseStatusCode(response.StatusCode),
		attribute.Int64("duration_ms", response.Duration.Milliseconds()),
	)

	return response, nil
}
