package media

import (
	"context"

	"github.com/indieinfra/mockmedia/logging"
	"github.com/indieinfra/mockmedia/media"
)

// NoopMediaStore is a dry-run store: Create validates the upload and builds
// the reference it would have stored, but nothing is persisted, so lookups
// never succeed.
type NoopMediaStore struct {
	Logger logging.Logger
}

func (ms *NoopMediaStore) Create(ctx context.Context, upload media.Upload) (*media.Reference, error) {
	mimeType, err := upload.ResolveMimeType()
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	id, err := media.NewID()
	if err != nil {
		return nil, err
	}

	ref := &media.Reference{
		ID:       id,
		MimeType: mimeType,
		FileSize: int64(len(upload.Bytes)),
		SHA256:   media.Digest(upload.Bytes),
		FileName: upload.FileName,
	}

	if ms.Logger != nil {
		ms.Logger.Infof("received no-op media upload: id=%s mime=%s size=%d sha256=%s filename=%q", ref.ID, ref.MimeType, ref.FileSize, ref.SHA256, ref.FileName)
	}

	return ref, nil
}

func (ms *NoopMediaStore) Metadata(ctx context.Context, id string, baseURL string) (*media.Metadata, error) {
	return nil, media.ErrNotFound
}

func (ms *NoopMediaStore) Download(ctx context.Context, id string) (*media.Download, error) {
	return nil, media.ErrNotFound
}
