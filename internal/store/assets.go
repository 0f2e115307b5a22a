package store

import (
	"context"
	"errors"
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/tracketdev/tracket/internal/githost"
	"github.com/tracketdev/tracket/internal/model"
)

// ErrAssetUnavailable is returned when an image exists in the listing but
// its content could not be loaded through either the contents API or the
// raw blob fallback. It is a terminal error, never silently empty content.
var ErrAssetUnavailable = errors.New("unable to load image content")

// allowedImageExts is the upload allow-list, checked before any network
// call is made.
var allowedImageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".svg":  true,
	".webp": true,
}

var unsafeNameChars = regexp.MustCompile(`[^a-z0-9._-]+`)

// UploadImage commits an image under the ticket's asset directory and
// returns the generated filename. The name combines an upload timestamp
// with the sanitized original name, so concurrent uploads of identically
// named files never collide.
//
// The caller is responsible for appending the returned name to the
// ticket's image list; upload and ticket linkage are deliberately
// decoupled, which can leave orphaned files if the link step is skipped.
func (s *Store) UploadImage(ctx context.Context, slug, originalName string, content []byte) (string, error) {
	if err := model.ValidateSlug(slug); err != nil {
		return "", err
	}

	ext := strings.ToLower(path.Ext(originalName))
	if !allowedImageExts[ext] {
		return "", fmt.Errorf("unsupported image type %q (allowed: png, jpg, jpeg, gif, svg, webp)", ext)
	}
	if len(content) == 0 {
		return "", fmt.Errorf("image %s is empty", originalName)
	}

	name := fmt.Sprintf("%d-%s", time.Now().UnixNano(), sanitizeImageName(originalName))
	message := fmt.Sprintf("Add image to ticket %s", slug)
	if _, err := s.client.PutFile(ctx, s.owner, s.repo, s.imagePath(slug, name), content, "", s.branch, message); err != nil {
		return "", err
	}
	return name, nil
}

// FetchImage returns an image's raw bytes. Content the contents API
// declines to inline (large files) is fetched through the raw blob
// endpoint instead, using the SHA from the directory listing. When both
// paths yield nothing, ErrAssetUnavailable is returned.
func (s *Store) FetchImage(ctx context.Context, slug, name string) ([]byte, error) {
	imagePath := s.imagePath(slug, name)

	content, sha, err := s.client.GetFile(ctx, s.owner, s.repo, imagePath, s.branch)
	if err != nil {
		return nil, err
	}
	if len(content) > 0 {
		return content, nil
	}

	if sha == "" {
		// The contents response carried neither content nor a SHA; fall
		// back to the directory listing's hash.
		sha, err = s.lookupImageSHA(ctx, slug, name)
		if err != nil {
			return nil, err
		}
	}
	if sha == "" {
		return nil, fmt.Errorf("image %s/%s: %w", slug, name, ErrAssetUnavailable)
	}

	content, err = s.client.GetBlob(ctx, s.owner, s.repo, sha)
	if err != nil {
		return nil, err
	}
	if len(content) == 0 {
		return nil, fmt.Errorf("image %s/%s: %w", slug, name, ErrAssetUnavailable)
	}
	return content, nil
}

// ListImages lists the stored image filenames for a ticket. A missing
// asset directory is an empty list.
func (s *Store) ListImages(ctx context.Context, slug string) ([]string, error) {
	entries, err := s.client.ListDir(ctx, s.owner, s.repo, s.imagesDir(slug), s.branch)
	if err != nil {
		if githost.IsNotFound(err) {
			return []string{}, nil
		}
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Type == "file" {
			names = append(names, entry.Name)
		}
	}
	return names, nil
}

// DeleteImage removes an image. The SHA is looked up fresh immediately
// before the delete: asset deletion is not preceded by a long-held
// in-memory copy the way ticket updates are, so a caller-supplied hash
// would more often be stale than useful.
func (s *Store) DeleteImage(ctx context.Context, slug, name string) error {
	imagePath := s.imagePath(slug, name)

	_, sha, err := s.client.GetFile(ctx, s.owner, s.repo, imagePath, s.branch)
	if err != nil {
		return err
	}

	message := fmt.Sprintf("Delete image from ticket %s", slug)
	err = s.client.DeleteFile(ctx, s.owner, s.repo, imagePath, sha, s.branch, message)
	return conflict(err, "image "+name)
}

// lookupImageSHA finds an image's blob SHA in its directory listing.
func (s *Store) lookupImageSHA(ctx context.Context, slug, name string) (string, error) {
	entries, err := s.client.ListDir(ctx, s.owner, s.repo, s.imagesDir(slug), s.branch)
	if err != nil {
		return "", err
	}
	for _, entry := range entries {
		if entry.Name == name {
			return entry.SHA, nil
		}
	}
	return "", nil
}

// sanitizeImageName lowercases the original filename and collapses any
// characters that are unsafe in repository paths.
func sanitizeImageName(name string) string {
	cleaned := unsafeNameChars.ReplaceAllString(strings.ToLower(path.Base(name)), "-")
	cleaned = strings.Trim(cleaned, "-")
	if cleaned == "" || cleaned == "." {
		return "image"
	}
	return cleaned
}
