package media

import "errors"

var (
	// ErrMalformedInput indicates a data URL that is not data:<mime>;base64,<payload>
	// or whose payload is not valid base64.
	ErrMalformedInput = errors.New("malformed data url")

	// ErrUnsupportedMediaType indicates a data URL declaring a non-image type.
	ErrUnsupportedMediaType = errors.New("only image uploads are supported")

	// ErrInvalidMediaType indicates the resolved mime type of an upload is not an image type.
	ErrInvalidMediaType = errors.New("invalid image mime type")

	// ErrStorageWriteFailed indicates the store could not persist an artifact.
	ErrStorageWriteFailed = errors.New("media storage write failed")

	// ErrNotFound indicates the identifier does not resolve to a servable record.
	ErrNotFound = errors.New("media not found")
)
