// Package media uploads user images to a third-party host and returns a
// durable URL for them.
package media

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"recipe-api/config"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

const (
	FolderRecipes = "recipes"
	FolderAvatars = "avatars"
)

// ErrDisabled is returned by the uploader used when no provider is configured.
var ErrDisabled = errors.New("media uploads are not configured")

// ErrEmpty is returned for a zero-length payload.
var ErrEmpty = errors.New("empty media payload")

type Uploader interface {
	// Upload stores data under the logical folder and returns its public URL.
	Upload(ctx context.Context, data []byte, folder string) (string, error)
}

// New builds the uploader selected by cfg.Provider.
func New(ctx context.Context, cfg config.MediaConfig) (Uploader, error) {
	var (
		up  Uploader
		err error
	)
	switch cfg.Provider {
	case config.ProviderCloudinary:
		up, err = NewCloudinary(cfg.Cloudinary)
	case config.ProviderMinIO:
		up, err = NewMinIO(ctx, cfg.MinIO)
	case config.ProviderS3:
		up, err = NewS3(ctx, cfg.S3)
	case config.ProviderNone, "":
		return Disabled{}, nil
	default:
		return nil, fmt.Errorf("unknown media provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}
	return up, nil
}

type Disabled struct{}

func (Disabled) Upload(context.Context, []byte, string) (string, error) {
	return "", ErrDisabled
}

// objectKey names an upload "<folder>/<uuid><ext>", with the extension
// taken from the sniffed content type.
func objectKey(folder string, data []byte) (key, contentType string) {
	mt := mimetype.Detect(data)
	folder = strings.Trim(folder, "/")
	return folder + "/" + uuid.NewString() + mt.Extension(), mt.String()
}

// joinURL joins base and path segments with single slashes.
func joinURL(base string, parts ...string) string {
	out := strings.TrimRight(base, "/")
	for _, p := range parts {
		out += "/" + strings.Trim(p, "/")
	}
	return out
}
