package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"time"

	"github.com/gosimple/slug"
)

const archivePrefix = "archives"

// SnapshotArchive stores JSON snapshots of the league state before
// destructive admin operations.
type SnapshotArchive struct {
	uploader FileUploader
	now      func() time.Time
}

func NewSnapshotArchive(uploader FileUploader) *SnapshotArchive {
	return &SnapshotArchive{uploader: uploader, now: time.Now}
}

// Archive uploads v as JSON under archives/<slug of label>/<timestamp>.json
// and returns where it went.
func (a *SnapshotArchive) Archive(ctx context.Context, label string, v interface{}) (*UploadResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	key := ArchiveKey(label, a.now())
	return a.uploader.Upload(ctx, key, "application/json", bytes.NewReader(data))
}

// Discard removes an archive that turned out not to be needed.
func (a *SnapshotArchive) Discard(ctx context.Context, key string) error {
	return a.uploader.Delete(ctx, key)
}

func ArchiveKey(label string, at time.Time) string {
	name := slug.Make(label)
	if name == "" {
		name = "snapshot"
	}
	return path.Join(archivePrefix, name, at.UTC().Format("20060102T150405Z")+".json")
}
