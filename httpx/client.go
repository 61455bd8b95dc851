package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptrace"
	"net/url"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/httptrace/otelhttptrace"

	"github.com/amphora/patentsafe-submit/errorx"
)

// MakeHTTPRequest sends input and reads the whole response body.
// Any status code is returned as a Response; only failures to send the request or to read the
// response are errors, typed as errorx UNAVAILABLE.
func (c *Client) MakeHTTPRequest(ctx context.Context, input *Request) (*Response, error) {
	if err := input.Validate(); err != nil {
		return nil, errorx.InvalidArgumentErrorf("invalid http request").WithCause(err)
	}

	var body io.Reader
	switch {
	case input.RawBody != nil:
		body = bytes.NewReader(input.RawBody)
	case input.Body != nil:
		requestBodyBytes, err := json.Marshal(input.Body)
		if err != nil {
			return nil, errorx.InvalidArgumentErrorf("cannot encode request body").WithCause(err)
		}
		body = bytes.NewReader(requestBodyBytes)
	}

	if c.clientTrace {
		ctx = httptrace.WithClientTrace(ctx, otelhttptrace.NewClientTrace(ctx))
	}

	httpRequest, err := http.NewRequestWithContext(ctx, input.Method, input.URL, body)
	if err != nil {
		return nil, errorx.InvalidArgumentErrorf("cannot create request for %s", input.URL).WithCause(err)
	}

	buildQueryParams(httpRequest, input.QueryParameters)

	for key, values := range input.Headers {
		for _, value := range values {
			httpRequest.Header.Add(key, value)
		}
	}
	if c.userAgent != "" && httpRequest.Header.Get("User-Agent") == "" {
		httpRequest.Header.Set("User-Agent", c.userAgent)
	}
	if c.clientTrace {
		otelhttptrace.Inject(ctx, httpRequest)
	}

	startTime := time.Now()

	httpResponse, err := c.httpClient.Do(httpRequest)
	if err != nil {
		return nil, transportError(input, err)
	}

	defer httpResponse.Body.Close()

	responseBody, err := io.ReadAll(httpResponse.Body)
	if err != nil {
		return nil, errorx.UnavailableErrorf("cannot read response from %s", redactURL(input.URL)).WithCause(err)
	}

	endTime := time.Since(startTime)

	return &Response{
		StatusCode: httpResponse.StatusCode,
		Status:     httpResponse.Status,
		Body:       responseBody,
		Headers:    httpResponse.Header,
		Duration:   endTime,
	}, nil
}

func transportError(input *Request, err error) error {
	var uErr *url.Error
	if errors.As(err, &uErr) && uErr.Timeout() {
		return errorx.UnavailableErrorf("%s %s timed out", input.Method, redactURL(input.URL)).WithCause(err)
	}
	return errorx.UnavailableErrorf("%s %s failed", input.Method, redactURL(input.URL)).WithCause(err)
}

// redactURL drops credentials and query from u for use in messages.
func redactURL(u string) string {
	parsed, err := url.Parse(u)
	if err != nil {
		return u
	}
	return (&url.URL{Scheme: parsed.Scheme, Host: parsed.Host, Path: parsed.Path}).String()
}

func buildQueryParams(httpRequest *http.Request, params url.Values) {
	if len(params) > 0 {
		requestQueryParams := httpRequest.URL.Query()

		for queryParamKey, queryParamValues := range params {
			for _, queryParamValue := range queryParamValues {
				requestQueryParams.Add(queryParamKey, queryParamValue)
			}
		}

		httpRequest.URL.RawQuery = requestQueryParams.Encode()
	}
}
