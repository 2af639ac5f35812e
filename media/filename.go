package media

import (
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gosimple/slug"
)

// DownloadName returns a file name safe to create on the local filesystem for
// a download. The stored file name is advisory only: its stem is slugified and
// its extension kept when it looks sane. Without a usable stored name the id
// is used with an extension derived from the mime type.
func DownloadName(d *Download, id string) string {
	if d != nil && d.FileName != "" {
		base := filepath.Base(filepath.FromSlash(strings.ReplaceAll(d.FileName, `\`, "/")))
		ext := strings.ToLower(filepath.Ext(base))
		stem := slug.Make(strings.TrimSuffix(base, filepath.Ext(base)))

		if !slug.IsSlug(strings.TrimPrefix(ext, ".")) {
			ext = ""
		}
		if ext == "" {
			ext = ExtensionForType(d.MimeType)
		}

		if stem != "" {
			return stem + ext
		}
	}

	var mimeType string
	if d != nil {
		mimeType = d.MimeType
	}

	return id + ExtensionForType(mimeType)
}

// ExtensionForType returns the conventional extension (with leading dot) for a
// mime type, or ".bin" when none is known.
func ExtensionForType(mimeType string) string {
	if mimeType == "" {
		return ".bin"
	}

	if m := mimetype.Lookup(mimeType); m != nil && m.Extension() != "" {
		return m.Extension()
	}

	return ".bin"
}
