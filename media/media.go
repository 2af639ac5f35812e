package media

import (
	"fmt"
	"strings"
	"time"
)

// Record is the metadata stored next to each binary artifact.
type Record struct {
	ID        string    `json:"id"`
	MimeType  string    `json:"mime_type"`
	FileSize  int64     `json:"file_size"`
	SHA256    string    `json:"sha256"`
	FileName  string    `json:"filename,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Reference is what callers get back after a successful create.
type Reference struct {
	ID       string `json:"id"`
	MimeType string `json:"mime_type"`
	FileSize int64  `json:"file_size"`
	SHA256   string `json:"sha256"`
	FileName string `json:"filename,omitempty"`
}

// Metadata is a Reference plus the URL the content can be downloaded from.
type Metadata struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	MimeType string `json:"mime_type"`
	FileSize int64  `json:"file_size"`
	SHA256   string `json:"sha256"`
	FileName string `json:"filename,omitempty"`
}

type Download struct {
	Bytes    []byte
	MimeType string
	FileName string
}

// Upload is the input to a store-level create. MimeType, when set, wins over
// DeclaredType.
type Upload struct {
	Bytes        []byte
	DeclaredType string
	MimeType     string
	FileName     string
}

// DataURLUpload is the caller-facing create input.
type DataURLUpload struct {
	DataURL  string
	MimeType string
	FileName string
}

// ResolveMimeType returns the effective mime type of the upload, or
// ErrInvalidMediaType when it is not an image type.
func (u Upload) ResolveMimeType() (string, error) {
	resolved := u.MimeType
	if resolved == "" {
		resolved = u.DeclaredType
	}

	if !IsImageType(resolved) {
		return "", fmt.Errorf("%w: %q", ErrInvalidMediaType, resolved)
	}

	return resolved, nil
}

// Reference projects the record onto its caller-facing fields.
func (r *Record) Reference() *Reference {
	return &Reference{
		ID:       r.ID,
		MimeType: r.MimeType,
		FileSize: r.FileSize,
		SHA256:   r.SHA256,
		FileName: r.FileName,
	}
}

func (r *Record) Metadata(url string) *Metadata {
	return &Metadata{
		ID:       r.ID,
		URL:      url,
		MimeType: r.MimeType,
		FileSize: r.FileSize,
		SHA256:   r.SHA256,
		FileName: r.FileName,
	}
}

func IsImageType(mimeType string) bool {
	return strings.HasPrefix(mimeType, "image/")
}
