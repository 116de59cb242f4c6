// Package gallery lists the memorial photos kept on the image host.
package gallery

import (
	"context"
	"time"
)

// Image is one hosted photo.
type Image struct {
	PublicID  string    `json:"public_id"`
	URL       string    `json:"secure_url"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	CreatedAt time.Time `json:"created_at"`
}

// Provider lists images stored under a folder, newest first.
type Provider interface {
	ListImages(ctx context.Context, folder string, max int) ([]Image, error)
}

// Folder is a folder on the image host.
type Folder struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// Inspector exposes the image host's folder layout for troubleshooting.
type Inspector interface {
	RootFolders(ctx context.Context) ([]Folder, error)
	UploadedIDs(ctx context.Context, max int) ([]string, error)
}

// NoopProvider is used when the image host is not configured.
type NoopProvider struct{}

func (NoopProvider) ListImages(context.Context, string, int) ([]Image, error) {
	return nil, nil
}

var _ Provider = NoopProvider{}
