package storage

import (
	"context"
	"fmt"
	"io"

	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"pantryapi/internal/config"
)

// driveArchive implements Archive on Google Drive. The object ID is the Drive
// file ID; the URL prefers webViewLink over webContentLink.
type driveArchive struct {
	svc *drive.Service
}

// NewDrive creates a Drive-backed Archive using the shared service-account
// credentials.
func NewDrive(ctx context.Context, cfg config.GoogleConfig) (Archive, error) {
	if cfg.CredentialsJSON == "" {
		return nil, fmt.Errorf("google service account credentials are required")
	}
	svc, err := drive.NewService(ctx,
		option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)),
		option.WithScopes(drive.DriveFileScope),
	)
	if err != nil {
		return nil, fmt.Errorf("create drive client: %w", err)
	}
	return &driveArchive{svc: svc}, nil
}

func (d *driveArchive) Create(ctx context.Context, folder, name, contentType string, r io.Reader, size int64) (Object, error) {
	meta := &drive.File{
		Name:     name,
		MimeType: contentType,
	}
	if folder != "" {
		meta.Parents = []string{folder}
	}

	created, err := d.svc.Files.Create(meta).
		Media(r, googleapi.ContentType(contentType)).
		SupportsAllDrives(true).
		Fields("id, webViewLink, webContentLink").
		Context(ctx).Do()
	if err != nil {
		return Object{}, fmt.Errorf("drive create %q: %w", name, err)
	}

	url := created.WebViewLink
	if url == "" {
		url = created.WebContentLink
	}
	return Object{ID: created.Id, Name: name, URL: url}, nil
}

func (d *driveArchive) Open(ctx context.Context, id string) (io.ReadCloser, error) {
	resp, err := d.svc.Files.Get(id).SupportsAllDrives(true).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("drive download %s: %w", id, err)
	}
	return resp.Body, nil
}

func (d *driveArchive) Delete(ctx context.Context, id string) error {
	if err := d.svc.Files.Delete(id).SupportsAllDrives(true).Context(ctx).Do(); err != nil {
		return fmt.Errorf("drive delete %s: %w", id, err)
	}
	return nil
}
