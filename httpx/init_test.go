package httpx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetDefaultHTTPClient(t *testing.T) {
	client := GetDefaultHTTPClient()

	assert.Equal(t, httpClientDefaultTimeout, client.Timeout)
}

func TestNewHTTPClient(t *testing.T) {
	client := NewHTTPClient()

	assert.Equal(t, httpClientDefaultTimeout, client.httpClient.Timeout)
	assert.False(t, client.transport.TLSClientConfig.InsecureSkipVerify)
	assert.False(t, client.clientTrace)
}

func TestNewClientWithOptions(t *testing.T) {
	client := NewClientWithOptions(WithTimeout(30*time.Second), WithSkipTLSVerification(), WithClientTrace(), WithUserAgent("ua"))

	assert.Equal(t, true, client.transport.TLSClientConfig.InsecureSkipVerify)
	assert.Equal(t, 30*time.Second, client.httpClient.Timeout)
	assert.True(t, client.clientTrace)
	assert.Equal(t, "ua", client.userAgent)
}
