package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/cobra"

	mediapkg "github.com/indieinfra/mockmedia/media"
	"github.com/indieinfra/mockmedia/storage/media"
)

func newPutCommand(a *app) *cobra.Command {
	var (
		dataURL     string
		dataURLFile string
		imagePath   string
		mimeType    string
		fileName    string
	)

	cmd := &cobra.Command{
		Use:   "put",
		Short: "Store an image from a data URL or an image file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			limit := int64(a.cfg.Limits.MaxPayloadSize)

			var (
				ref *mediapkg.Reference
				err error
			)

			switch {
			case imagePath != "":
				ref, err = a.putImage(cmd, imagePath, mimeType, fileName, limit)
			default:
				raw := dataURL
				if dataURLFile != "" {
					raw, err = readLimited(cmd, dataURLFile, limit)
					if err != nil {
						return err
					}
				}

				raw = strings.TrimSpace(raw)
				if int64(len(raw)) > limit {
					return fmt.Errorf("data url exceeds max payload size of %d bytes", limit)
				}

				ref, err = media.SaveDataURL(cmd.Context(), a.store, mediapkg.DataURLUpload{
					DataURL:  raw,
					MimeType: mimeType,
					FileName: fileName,
				})
			}
			if err != nil {
				return err
			}

			a.logger.Infof("stored media %s", ref.ID)
			return writeJSON(cmd.OutOrStdout(), ref)
		},
	}

	cmd.Flags().StringVar(&dataURL, "data-url", "", "Inline image as data:<mime>;base64,<payload>")
	cmd.Flags().StringVar(&dataURLFile, "data-url-file", "", "File containing the data URL, or - for stdin")
	cmd.Flags().StringVar(&imagePath, "image", "", "Raw image file; its type is detected from the content")
	cmd.Flags().StringVar(&mimeType, "mime-type", "", "Override the declared mime type")
	cmd.Flags().StringVar(&fileName, "filename", "", "Original file name to record")
	cmd.MarkFlagsMutuallyExclusive("data-url", "data-url-file", "image")
	cmd.MarkFlagsOneRequired("data-url", "data-url-file", "image")

	return cmd
}

func (a *app) putImage(cmd *cobra.Command, path string, mimeType string, fileName string, limit int64) (*mediapkg.Reference, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() > limit {
		return nil, fmt.Errorf("image exceeds max payload size of %d bytes", limit)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if fileName == "" {
		fileName = filepath.Base(path)
	}

	return a.store.Create(cmd.Context(), mediapkg.Upload{
		Bytes:        data,
		DeclaredType: mimetype.Detect(data).String(),
		MimeType:     mimeType,
		FileName:     fileName,
	})
}

func newResolveCommand(a *app) *cobra.Command {
	var baseURL string

	cmd := &cobra.Command{
		Use:   "resolve <id>",
		Short: "Print the stored metadata and download URL for a media id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if baseURL == "" {
				baseURL = a.cfg.Media.PublicUrl
			}
			if baseURL == "" {
				return errors.New("a base url is required: pass --base-url or set media.public_url")
			}

			meta, err := a.store.Metadata(cmd.Context(), args[0], baseURL)
			if err != nil {
				return notFoundOr(args[0], err)
			}

			return writeJSON(cmd.OutOrStdout(), meta)
		},
	}

	cmd.Flags().StringVar(&baseURL, "base-url", "", "Base URL for the download link (defaults to media.public_url)")

	return cmd
}

func newFetchCommand(a *app) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "fetch <id>",
		Short: "Write the stored bytes for a media id to a directory or stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			d, err := a.store.Download(cmd.Context(), id)
			if err != nil {
				return notFoundOr(id, err)
			}

			if out == "-" {
				_, err := cmd.OutOrStdout().Write(d.Bytes)
				return err
			}

			if err := os.MkdirAll(out, 0755); err != nil {
				return fmt.Errorf("create output directory: %w", err)
			}

			target := filepath.Join(out, mediapkg.DownloadName(d, id))
			if err := os.WriteFile(target, d.Bytes, 0644); err != nil {
				return fmt.Errorf("write %s: %w", target, err)
			}

			a.logger.Debugf("wrote media %s (%s) to %s", id, d.MimeType, target)
			fmt.Fprintln(cmd.OutOrStdout(), target)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", ".", "Directory to write into, or - for stdout")

	return cmd
}

func notFoundOr(id string, err error) error {
	if errors.Is(err, mediapkg.ErrNotFound) {
		return fmt.Errorf("media %q not found", id)
	}
	return err
}

func readLimited(cmd *cobra.Command, path string, limit int64) (string, error) {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return "", err
		}
		defer f.Close()
		r = f
	}

	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return "", err
	}

	// Checked before trimming: a cut-off data URL may still decode.
	if int64(len(data)) > limit {
		return "", fmt.Errorf("data url exceeds max payload size of %d bytes", limit)
	}

	return string(data), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
