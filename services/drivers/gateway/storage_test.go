package gateway

import (
	"context"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkghttp "github.com/mashaweer/mashaweer/internal/pkg/http"
	"github.com/mashaweer/mashaweer/internal/pkg/models"
)

func TestStorageGW_Upload(t *testing.T) {
	tests := []struct {
		name       string
		upsert     bool
		handler    nethttp.HandlerFunc
		assertFunc func(t *testing.T, err error)
	}{
		{
			name: "stores object",
			handler: func(w nethttp.ResponseWriter, r *nethttp.Request) {
				assert.Equal(t, nethttp.MethodPost, r.Method)
				assert.Equal(t, "/object/driver-photos/public/1_a.png", r.URL.Path)
				assert.Equal(t, "image/png", r.Header.Get("Content-Type"))
				assert.Equal(t, "false", r.Header.Get("x-upsert"))
				assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
				body, _ := io.ReadAll(r.Body)
				assert.Equal(t, "png-bytes", string(body))
				w.WriteHeader(nethttp.StatusOK)
				_, _ = w.Write([]byte(`{"Key":"driver-photos/public/1_a.png"}`))
			},
			assertFunc: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name:   "upsert is forwarded",
			upsert: true,
			handler: func(w nethttp.ResponseWriter, r *nethttp.Request) {
				assert.Equal(t, "true", r.Header.Get("x-upsert"))
				w.WriteHeader(nethttp.StatusOK)
			},
			assertFunc: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name: "conflict maps to photo exists",
			handler: func(w nethttp.ResponseWriter, r *nethttp.Request) {
				w.WriteHeader(nethttp.StatusConflict)
			},
			assertFunc: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, models.ErrPhotoExists)
			},
		},
		{
			name: "duplicate body maps to photo exists",
			handler: func(w nethttp.ResponseWriter, r *nethttp.Request) {
				w.WriteHeader(nethttp.StatusBadRequest)
				_, _ = w.Write([]byte(`{"error":"Duplicate","message":"The resource already exists"}`))
			},
			assertFunc: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, models.ErrPhotoExists)
			},
		},
		{
			name: "other failures are wrapped",
			handler: func(w nethttp.ResponseWriter, r *nethttp.Request) {
				w.WriteHeader(nethttp.StatusInternalServerError)
			},
			assertFunc: func(t *testing.T, err error) {
				require.Error(t, err)
				assert.NotErrorIs(t, err, models.ErrPhotoExists)
				assert.Contains(t, err.Error(), "public/1_a.png")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			server := httptest.NewServer(tt.handler)
			defer server.Close()
			client := pkghttp.NewClient(pkghttp.Config{BaseURL: server.URL, Headers: bearer("secret")})
			gw := NewStorageGW(client, "driver-photos")

			// Act
			err := gw.Upload(context.Background(), "public/1_a.png", "image/png", strings.NewReader("png-bytes"), tt.upsert)

			// Assert
			tt.assertFunc(t, err)
		})
	}
}

func TestStorageGW_PublicURL(t *testing.T) {
	client := pkghttp.NewClient(pkghttp.Config{BaseURL: "https://store.example.com/storage/v1/"})
	gw := NewStorageGW(client, "driver-photos")

	assert.Equal(t,
		"https://store.example.com/storage/v1/object/public/driver-photos/public/1_a.png",
		gw.PublicURL("public/1_a.png"))
}

func TestBearer(t *testing.T) {
	assert.Nil(t, bearer(""))
	assert.Equal(t, "Bearer k", bearer("k")["Authorization"])
}
