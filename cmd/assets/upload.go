package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Alijeyrad/interiora_backend/cmd/cmdutil"
	"github.com/Alijeyrad/interiora_backend/internal/app"
	"github.com/Alijeyrad/interiora_backend/internal/repo"
	s3pkg "github.com/Alijeyrad/interiora_backend/pkg/s3"
)

func NewUploadCommand() *cobra.Command {
	var in repo.NewGalleryItem

	cmd := &cobra.Command{
		Use:   "upload <image>",
		Short: "Upload an image to the bucket and publish it in the gallery",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdutil.LoadConfig(cmd)
			if err != nil {
				return err
			}
			if !cfg.S3.Enabled {
				return errors.New("s3 is disabled; set s3.enabled to upload assets")
			}

			path := args[0]
			if in.Title == "" {
				in.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			}

			var (
				bucket  *s3pkg.Client
				content *repo.ContentRepo
			)
			return app.RunWithServices(cmd.Context(), cfg, func(ctx context.Context) error {
				key, err := upload(ctx, bucket, path)
				if err != nil {
					return err
				}

				in.ImageURL = key
				item, err := content.CreateGalleryItem(ctx, in)
				if err != nil {
					return err
				}
				fmt.Printf("Published %q as %s (object %s)\n", item.Title, item.ID, key)
				return nil
			}, &bucket, &content)
		},
	}

	cmd.Flags().StringVar(&in.Title, "title", "", "Title shown under the image (defaults to the file name)")
	cmd.Flags().StringVar(&in.Description, "description", "", "Optional caption")
	cmd.Flags().StringSliceVar(&in.Tags, "tags", nil, "Comma separated tags, e.g. kitchen,modern")
	cmd.Flags().BoolVar(&in.Featured, "featured", true, "Show the image on the landing page")
	cmd.Flags().IntVar(&in.DisplayOrder, "order", 0, "Display order, lowest first")

	return cmd
}

func upload(ctx context.Context, bucket *s3pkg.Client, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", err
	}

	contentType, err := detectContentType(f, path)
	if err != nil {
		return "", err
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("%s is %s, not an image", path, contentType)
	}

	key := GalleryKey(path)
	if err := bucket.Upload(ctx, key, contentType, f, info.Size()); err != nil {
		return "", err
	}
	return key, nil
}

// GalleryKey names the object for an uploaded gallery image.
func GalleryKey(path string) string {
	return "gallery/" + uuid.NewString() + strings.ToLower(filepath.Ext(path))
}

// detectContentType trusts the extension first and sniffs the content
// otherwise. f is rewound afterwards.
func detectContentType(f *os.File, path string) (string, error) {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); ct != "" {
		return ct, nil
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	return http.DetectContentType(head[:n]), nil
}
