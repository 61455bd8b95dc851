package multipartx

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/pkg/errors"

	"github.com/amphora/patentsafe-submit/errorx"
)

// boundaryBytes is the amount of randomness behind a generated boundary, rendered as 32 hex chars.
const boundaryBytes = 16

func randomBoundary() (string, error) {
	var buf [boundaryBytes]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", errors.WithStack(err)
	}
	return hex.EncodeToString(buf[:]), nil
}

// ValidateBoundary checks a boundary against rfc2046#section-5.1.1.
func ValidateBoundary(boundary string) error {
	if len(boundary) < 1 || len(boundary) > 70 {
		return errorx.InvalidArgumentErrorf("invalid boundary length %d, must be between 1 and 70", len(boundary))
	}
	if boundary[len(boundary)-1] == ' ' {
		return errorx.InvalidArgumentErrorf("boundary %q must not end with a space", boundary)
	}
	for _, b := range boundary {
		if 'A' <= b && b <= 'Z' || 'a' <= b && b <= 'z' || '0' <= b && b <= '9' {
			continue
		}
		switch b {
		case '\'', '(', ')', '+', '_', ',', '-', '.', '/', ':', '=', '?', ' ':
			continue
		}
		return errorx.InvalidArgumentErrorf("invalid boundary character %q", b)
	}
	return nil
}
