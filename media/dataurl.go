package media

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
)

const (
	dataURLScheme  = "data:"
	base64Selector = ";base64,"
)

// DecodeDataURL parses data:<mime>;base64,<payload> into raw bytes and the
// declared mime type. Only image types are accepted and the payload must be a
// single line. There is no size limit here; callers that need one must
// enforce it before calling.
func DecodeDataURL(dataURL string) ([]byte, string, error) {
	rest, ok := strings.CutPrefix(dataURL, dataURLScheme)
	if !ok {
		return nil, "", fmt.Errorf("%w: missing %q prefix", ErrMalformedInput, dataURLScheme)
	}

	semi := strings.IndexByte(rest, ';')
	if semi <= 0 {
		return nil, "", fmt.Errorf("%w: missing mime type", ErrMalformedInput)
	}

	mimeType := rest[:semi]
	payload, ok := strings.CutPrefix(rest[semi:], base64Selector)
	if !ok || payload == "" {
		return nil, "", fmt.Errorf("%w: expected ;base64,<payload>", ErrMalformedInput)
	}

	if strings.ContainsAny(payload, "\r\n") {
		return nil, "", fmt.Errorf("%w: line break in payload", ErrMalformedInput)
	}

	if !IsImageType(mimeType) {
		return nil, "", fmt.Errorf("%w: %q", ErrUnsupportedMediaType, mimeType)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}

	return data, mimeType, nil
}

// Digest returns the lowercase hex SHA-256 of b.
func Digest(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
