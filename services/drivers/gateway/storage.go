package gateway

import (
	"context"
	"errors"
	"fmt"
	"io"
	nethttp "net/http"
	"strings"

	pkghttp "github.com/mashaweer/mashaweer/internal/pkg/http"
	"github.com/mashaweer/mashaweer/internal/pkg/models"
)

// StorageGW uploads driver photos to an object storage bucket over its REST API
type StorageGW struct {
	client *pkghttp.Client
	bucket string
}

// NewStorageGW creates a storage gateway for bucket
func NewStorageGW(client *pkghttp.Client, bucket string) *StorageGW {
	return &StorageGW{client: client, bucket: bucket}
}

// Upload stores body at path. Without upsert an existing object is reported
// as models.ErrPhotoExists.
func (g *StorageGW) Upload(ctx context.Context, path, contentType string, body io.Reader, upsert bool) error {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	headers := map[string]string{
		"Cache-Control": "max-age=3600",
		"x-upsert":      fmt.Sprintf("%t", upsert),
	}

	endpoint := fmt.Sprintf("/object/%s/%s", g.bucket, strings.TrimLeft(path, "/"))
	_, err := g.client.Do(ctx, nethttp.MethodPost, endpoint, contentType, body, headers)
	if err != nil {
		if isDuplicate(err) {
			return models.ErrPhotoExists
		}
		return fmt.Errorf("failed to upload %s: %w", path, err)
	}
	return nil
}

// PublicURL returns the address a stored object is served from
func (g *StorageGW) PublicURL(path string) string {
	return fmt.Sprintf("%s/object/public/%s/%s", g.client.BaseURL(), g.bucket, strings.TrimLeft(path, "/"))
}

func isDuplicate(err error) bool {
	var statusErr *pkghttp.StatusError
	if !errors.As(err, &statusErr) {
		return false
	}
	return statusErr.StatusCode == nethttp.StatusConflict ||
		strings.Contains(string(statusErr.Body), "Duplicate")
}
