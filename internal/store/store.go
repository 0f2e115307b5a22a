// Package store composes the githost client and the record codec into
// domain operations over a board hosted in a remote repository: tickets,
// versions, board configuration, and image assets.
//
// The store owns no long-lived resources and holds no global state; a
// Store value is just the repository coordinate, the config root, and the
// injected client. Writes are serialized only by the blob-SHA gating the
// host enforces: a write whose expected SHA is stale fails with Conflict
// and is never merged or retried here.
package store

import (
	"fmt"
	"log/slog"

	"github.com/tracketdev/tracket/internal/githost"
)

// DefaultRoot is the default config root directory on the remote branch.
const DefaultRoot = ".tracket"

// Store performs board operations against one repository branch.
type Store struct {
	client *githost.Client
	owner  string
	repo   string
	branch string
	root   string
	logger *slog.Logger
}

// Options configures a Store. Owner, Repo and Branch are required; Root
// defaults to DefaultRoot and Logger to slog.Default().
type Options struct {
	Owner  string
	Repo   string
	Branch string
	Root   string
	Logger *slog.Logger
}

// New creates a Store for one repository branch.
func New(client *githost.Client, options Options) (*Store, error) {
	if client == nil {
		return nil, fmt.Errorf("store: nil client")
	}
	if options.Owner == "" || options.Repo == "" {
		return nil, fmt.Errorf("store: repository coordinate is required")
	}
	if options.Branch == "" {
		return nil, fmt.Errorf("store: branch is required")
	}

	root := options.Root
	if root == "" {
		root = DefaultRoot
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Store{
		client: client,
		owner:  options.Owner,
		repo:   options.Repo,
		branch: options.Branch,
		root:   root,
		logger: logger,
	}, nil
}

// Coordinate returns the "owner/repo" coordinate the store operates on.
func (s *Store) Coordinate() string {
	return s.owner + "/" + s.repo
}

// Branch returns the branch the store commits to.
func (s *Store) Branch() string {
	return s.branch
}

func (s *Store) ticketsDir() string {
	return s.root + "/tickets"
}

func (s *Store) ticketPath(slug string) string {
	return s.ticketsDir() + "/" + slug + ".yml"
}

func (s *Store) columnsPath() string {
	return s.root + "/columns.yml"
}

func (s *Store) ticketTypesPath() string {
	return s.root + "/ticket-types.yml"
}

func (s *Store) versionsPath() string {
	return s.root + "/versions.yml"
}

func (s *Store) imagesDir(slug string) string {
	return s.root + "/images/" + slug
}

func (s *Store) imagePath(slug, name string) string {
	return s.imagesDir(slug) + "/" + name
}

// conflict rewraps a host Conflict error with a message that tells the
// caller what to do; other errors pass through unchanged.
func conflict(err error, resource string) error {
	if githost.IsConflict(err) {
		return fmt.Errorf("%s changed on the remote since it was last fetched; refresh and retry: %w", resource, err)
	}
	return err
}
