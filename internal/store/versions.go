package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tracketdev/tracket/internal/codec"
	"github.com/tracketdev/tracket/internal/githost"
	"github.com/tracketdev/tracket/internal/model"
)

// Versions live in one shared list record, so every mutation here is a
// read-modify-write of that single file: fetch the current list and its
// SHA, compute the new full list, write it back gated on that SHA. Two
// sessions racing on the record is an expected failure mode and surfaces
// as Conflict on the loser.

// ListVersions returns all versions. A missing record is an empty list.
func (s *Store) ListVersions(ctx context.Context) ([]model.Version, error) {
	versions, _, err := s.loadVersions(ctx)
	return versions, err
}

// CreateVersion appends a new version with a generated id and returns it.
func (s *Store) CreateVersion(ctx context.Context, name, startDate, targetDate string) (*model.Version, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("version name is required")
	}

	versions, sha, err := s.loadVersions(ctx)
	if err != nil {
		return nil, err
	}

	version := model.Version{
		ID:         fmt.Sprintf("v%d", time.Now().UnixNano()),
		Name:       name,
		StartDate:  startDate,
		TargetDate: targetDate,
		CreatedAt:  time.Now().UTC().Truncate(time.Second),
	}
	versions = append(versions, version)

	message := fmt.Sprintf("Add version %s", name)
	if err := s.saveVersions(ctx, versions, sha, message); err != nil {
		return nil, err
	}
	return &version, nil
}

// UpdateVersion replaces the stored version with the same id.
func (s *Store) UpdateVersion(ctx context.Context, version model.Version) error {
	versions, sha, err := s.loadVersions(ctx)
	if err != nil {
		return err
	}

	found := false
	for i := range versions {
		if versions[i].ID == version.ID {
			// Creation time is immutable once assigned.
			version.CreatedAt = versions[i].CreatedAt
			versions[i] = version
			found = true
			break
		}
	}
	if !found {
		return &githost.Error{
			Kind:    githost.KindNotFound,
			Message: fmt.Sprintf("version %s not found", version.ID),
		}
	}

	message := fmt.Sprintf("Update version %s", version.Name)
	return s.saveVersions(ctx, versions, sha, message)
}

// DeleteVersion removes the version with the given id. Tickets referring
// to it keep their dangling reference; resolving that is the caller's
// concern.
func (s *Store) DeleteVersion(ctx context.Context, id string) error {
	versions, sha, err := s.loadVersions(ctx)
	if err != nil {
		return err
	}

	kept := versions[:0]
	for _, v := range versions {
		if v.ID != id {
			kept = append(kept, v)
		}
	}
	if len(kept) == len(versions) {
		return &githost.Error{
			Kind:    githost.KindNotFound,
			Message: fmt.Sprintf("version %s not found", id),
		}
	}

	message := fmt.Sprintf("Delete version %s", id)
	return s.saveVersions(ctx, kept, sha, message)
}

// loadVersions fetches the current versions record and the SHA the next
// write must be gated on. A missing record yields an empty list and an
// empty SHA, which turns the next write into a create.
func (s *Store) loadVersions(ctx context.Context) ([]model.Version, string, error) {
	content, sha, err := s.client.GetFile(ctx, s.owner, s.repo, s.versionsPath(), s.branch)
	if err != nil {
		if githost.IsNotFound(err) {
			return []model.Version{}, "", nil
		}
		return nil, "", err
	}
	if len(content) == 0 && sha != "" {
		content, err = s.client.GetBlob(ctx, s.owner, s.repo, sha)
		if err != nil {
			return nil, "", err
		}
	}

	versions, err := codec.DecodeVersions(content)
	if err != nil {
		return nil, "", &githost.Error{Kind: githost.KindMalformed, Message: err.Error()}
	}
	return versions, sha, nil
}

// saveVersions writes the full versions list gated on sha.
func (s *Store) saveVersions(ctx context.Context, versions []model.Version, sha, message string) error {
	content, err := codec.EncodeVersions(versions)
	if err != nil {
		return err
	}
	_, err = s.client.PutFile(ctx, s.owner, s.repo, s.versionsPath(), content, sha, s.branch, message)
	return conflict(err, "the versions record")
}
