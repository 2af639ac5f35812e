package media

import (
	"context"
	"fmt"

	"github.com/indieinfra/mockmedia/media"
)

// Store persists image uploads and resolves them back by id.
type Store interface {
	// function Create stores the upload under a freshly generated id and returns its reference.
	// Non-image types fail with media.ErrInvalidMediaType before anything is written; write
	// failures are reported as media.ErrStorageWriteFailed.
	Create(ctx context.Context, upload media.Upload) (*media.Reference, error)

	// function Metadata returns the stored fields for id along with a download URL rooted at baseURL.
	// Any failure to resolve id, including an invalid id, is reported as media.ErrNotFound.
	Metadata(ctx context.Context, id string, baseURL string) (*media.Metadata, error)

	// function Download returns the stored bytes, mime type and file name for id.
	// Any failure to resolve id, including an invalid id, is reported as media.ErrNotFound.
	Download(ctx context.Context, id string) (*media.Download, error)
}

// SaveDataURL decodes an inline image data URL and stores it.
func SaveDataURL(ctx context.Context, store Store, in media.DataURLUpload) (*media.Reference, error) {
	data, declared, err := media.DecodeDataURL(in.DataURL)
	if err != nil {
		return nil, err
	}

	ref, err := store.Create(ctx, media.Upload{
		Bytes:        data,
		DeclaredType: declared,
		MimeType:     in.MimeType,
		FileName:     in.FileName,
	})
	if err != nil {
		return nil, fmt.Errorf("save data url: %w", err)
	}

	return ref, nil
}
