// Package blob stores attachment files outside the database and hands
// back stable URLs for them.
package blob

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// AttachmentBucket is the bucket activity attachments live in.
const AttachmentBucket = "attachments"

// FileStore keeps blobs on the local filesystem under root/bucket/path.
// URLs use the file scheme so stored attachment links stay openable.
type FileStore struct {
	root string
}

// NewFileStore creates a store rooted at dir, creating it if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("blob store root cannot be empty")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create blob root: %w", err)
	}
	return &FileStore{root: dir}, nil
}

// Upload writes data under bucket/path, creating parent directories.
func (f *FileStore) Upload(ctx context.Context, bucket, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	full, err := f.resolve(bucket, path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o750); err != nil {
		return fmt.Errorf("failed to create blob dir: %w", err)
	}
	if err := os.WriteFile(full, data, 0o640); err != nil {
		return fmt.Errorf("failed to write blob: %w", err)
	}
	slog.Debug("uploaded blob", "bucket", bucket, "path", path, "bytes", len(data))
	return nil
}

// PublicURL returns the URL stored alongside the attachment record.
func (f *FileStore) PublicURL(bucket, path string) string {
	full := filepath.Join(f.root, bucket, filepath.FromSlash(path))
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(full)}).String()
}

// Remove deletes the given blobs. Missing files are not an error: a
// partially failed earlier delete may already have removed some.
func (f *FileStore) Remove(ctx context.Context, bucket string, paths []string) error {
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		full, err := f.resolve(bucket, path)
		if err != nil {
			return err
		}
		if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove blob %s: %w", path, err)
		}
	}
	slog.Debug("removed blobs", "bucket", bucket, "count", len(paths))
	return nil
}

func (f *FileStore) resolve(bucket, path string) (string, error) {
	if strings.TrimSpace(bucket) == "" || strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("bucket and path are required")
	}
	full := filepath.Join(f.root, bucket, filepath.FromSlash(path))
	base := filepath.Join(f.root, bucket)
	if !strings.HasPrefix(full, base+string(filepath.Separator)) {
		return "", fmt.Errorf("blob path escapes bucket: %q", path)
	}
	return full, nil
}

// AttachmentPath builds the storage path for an uploaded file: the owning
// record's ID, an upload timestamp, and a sanitized form of the original
// file name. The original name is kept separately on the attachment.
func AttachmentPath(dealID, filename string) string {
	return fmt.Sprintf("%s/%d_%s", dealID, time.Now().UnixMilli(), sanitizeName(filename))
}

// PathFromURL recovers the bucket-relative path from a stored URL, for
// deleting blobs during a cascade. Returns "" for URLs the store did not
// produce.
func (f *FileStore) PathFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme != "file" {
		return ""
	}
	base := filepath.ToSlash(filepath.Join(f.root, AttachmentBucket)) + "/"
	if !strings.HasPrefix(u.Path, base) {
		return ""
	}
	return strings.TrimPrefix(u.Path, base)
}

func sanitizeName(name string) string {
	name = filepath.Base(strings.TrimSpace(name))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return fmt.Sprintf("file_%d", time.Now().Unix())
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		case r >= 0xAC00 && r <= 0xD7A3: // Hangul syllables pass through
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
