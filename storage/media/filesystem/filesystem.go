package filesystem

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/indieinfra/mockmedia/config"
	"github.com/indieinfra/mockmedia/logging"
	"github.com/indieinfra/mockmedia/media"
	storageutil "github.com/indieinfra/mockmedia/storage/util"
)

const (
	binaryExt   = ".bin"
	metadataExt = ".json"
)

var (
	newID = media.NewID
	now   = time.Now
)

// StoreImpl keeps each upload as <id>.bin plus <id>.json in a single flat
// directory. It holds no in-memory state: every call is answered from the
// filesystem, and artifacts are never modified once renamed into place.
type StoreImpl struct {
	basePath string
	logger   logging.Logger
}

// NewFilesystemMediaStore creates a new filesystem-based media store. The
// storage root is created lazily on the first write.
func NewFilesystemMediaStore(cfg *config.FilesystemMediaStrategy, logger logging.Logger) (*StoreImpl, error) {
	if cfg == nil {
		return nil, fmt.Errorf("filesystem media config is nil")
	}

	if cfg.Path == "" {
		return nil, fmt.Errorf("filesystem media path is empty")
	}

	if logger == nil {
		logger = logging.Discard()
	}

	return &StoreImpl{
		basePath: filepath.Clean(cfg.Path),
		logger:   logger,
	}, nil
}

// Create writes the binary and metadata artifacts concurrently. Each one goes
// to a temporary file first and is renamed into place, so readers see either
// a complete artifact or none. If one write fails the other is abandoned
// before its rename when possible; an artifact that already made it into
// place is left behind.
func (fs *StoreImpl) Create(ctx context.Context, upload media.Upload) (*media.Reference, error) {
	mimeType, err := upload.ResolveMimeType()
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(fs.basePath, 0755); err != nil {
		return nil, fmt.Errorf("%w: create storage root: %w", media.ErrStorageWriteFailed, err)
	}

	id, err := newID()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", media.ErrStorageWriteFailed, err)
	}

	record := &media.Record{
		ID:        id,
		MimeType:  mimeType,
		FileSize:  int64(len(upload.Bytes)),
		SHA256:    media.Digest(upload.Bytes),
		FileName:  upload.FileName,
		CreatedAt: now().UTC(),
	}

	meta, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: encode metadata: %w", media.ErrStorageWriteFailed, err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return fs.writeArtifact(gctx, id+binaryExt, upload.Bytes)
	})
	g.Go(func() error {
		return fs.writeArtifact(gctx, id+metadataExt, meta)
	})

	if err := g.Wait(); err != nil {
		fs.logger.Errorf("failed to store media %s: %v", id, err)
		return nil, fmt.Errorf("%w: %w", media.ErrStorageWriteFailed, err)
	}

	fs.logger.Debugf("stored media %s (%s, %d bytes)", id, record.MimeType, record.FileSize)

	return record.Reference(), nil
}

func (fs *StoreImpl) Metadata(ctx context.Context, id string, baseURL string) (*media.Metadata, error) {
	if !fs.lookupAllowed(ctx, id) {
		return nil, media.ErrNotFound
	}

	record, err := fs.readRecord(id)
	if err != nil {
		fs.logger.Debugf("media %s not servable: %v", id, err)
		return nil, media.ErrNotFound
	}

	return record.Metadata(storageutil.DownloadURL(baseURL, id)), nil
}

// Download reads both artifacts concurrently and rebuilds the download from
// them. A record whose binary length disagrees with its metadata is treated
// as absent.
func (fs *StoreImpl) Download(ctx context.Context, id string) (*media.Download, error) {
	if !fs.lookupAllowed(ctx, id) {
		return nil, media.ErrNotFound
	}

	var (
		record *media.Record
		data   []byte
		g      errgroup.Group
	)

	g.Go(func() error {
		r, err := fs.readRecord(id)
		record = r
		return err
	})
	g.Go(func() error {
		b, err := os.ReadFile(fs.artifactPath(id + binaryExt))
		data = b
		return err
	})

	if err := g.Wait(); err != nil {
		fs.logger.Debugf("media %s not servable: %v", id, err)
		return nil, media.ErrNotFound
	}

	if int64(len(data)) != record.FileSize {
		fs.logger.Debugf("media %s not servable: binary is %d bytes, metadata says %d", id, len(data), record.FileSize)
		return nil, media.ErrNotFound
	}

	return &media.Download{
		Bytes:    data,
		MimeType: record.MimeType,
		FileName: record.FileName,
	}, nil
}

// lookupAllowed gates every read. Nothing touches the filesystem for an id
// outside the permitted character class.
func (fs *StoreImpl) lookupAllowed(ctx context.Context, id string) bool {
	if !media.ValidID(id) {
		fs.logger.Debugf("rejected invalid media id %q", id)
		return false
	}

	if err := ctx.Err(); err != nil {
		fs.logger.Debugf("media lookup for %s abandoned: %v", id, err)
		return false
	}

	return true
}

func (fs *StoreImpl) readRecord(id string) (*media.Record, error) {
	raw, err := os.ReadFile(fs.artifactPath(id + metadataExt))
	if err != nil {
		return nil, err
	}

	var record media.Record
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, fmt.Errorf("decode metadata: %w", err)
	}

	if record.ID != id {
		return nil, fmt.Errorf("metadata id %q does not match %q", record.ID, id)
	}

	if !media.IsImageType(record.MimeType) {
		return nil, fmt.Errorf("metadata mime type %q is not an image type", record.MimeType)
	}

	return &record, nil
}

func (fs *StoreImpl) artifactPath(name string) string {
	return filepath.Join(fs.basePath, name)
}

func (fs *StoreImpl) writeArtifact(ctx context.Context, name string, data []byte) (err error) {
	tmp, err := os.CreateTemp(fs.basePath, "."+name+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", name, err)
	}

	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", name, err)
	}

	if err = tmp.Chmod(0644); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod %s: %w", name, err)
	}

	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync %s: %w", name, err)
	}

	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", name, err)
	}

	if err = ctx.Err(); err != nil {
		return fmt.Errorf("abandon %s: %w", name, err)
	}

	if err = os.Rename(tmpPath, fs.artifactPath(name)); err != nil {
		return fmt.Errorf("rename %s: %w", name, err)
	}

	return nil
}
