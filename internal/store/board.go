package store

import (
	"context"
	"time"

	"github.com/tracketdev/tracket/internal/codec"
	"github.com/tracketdev/tracket/internal/githost"
	"github.com/tracketdev/tracket/internal/model"
)

// ListColumns returns the board columns in display order. The synthetic
// backlog column always comes first and is never persisted; a missing
// columns record falls back to the default column set.
func (s *Store) ListColumns(ctx context.Context) ([]model.Column, error) {
	columns := []model.Column{model.BacklogColumn()}

	content, sha, err := s.client.GetFile(ctx, s.owner, s.repo, s.columnsPath(), s.branch)
	if err != nil {
		if githost.IsNotFound(err) {
			return append(columns, model.DefaultColumns()...), nil
		}
		return nil, err
	}
	if len(content) == 0 && sha != "" {
		content, err = s.client.GetBlob(ctx, s.owner, s.repo, sha)
		if err != nil {
			return nil, err
		}
	}

	stored, err := codec.DecodeColumns(content)
	if err != nil {
		return nil, &githost.Error{Kind: githost.KindMalformed, Message: err.Error()}
	}
	return append(columns, stored...), nil
}

// ListTicketTypes returns the board's ticket types. A missing record
// falls back to the four built-in types.
func (s *Store) ListTicketTypes(ctx context.Context) ([]model.TicketType, error) {
	content, sha, err := s.client.GetFile(ctx, s.owner, s.repo, s.ticketTypesPath(), s.branch)
	if err != nil {
		if githost.IsNotFound(err) {
			return model.BuiltinTicketTypes(), nil
		}
		return nil, err
	}
	if len(content) == 0 && sha != "" {
		content, err = s.client.GetBlob(ctx, s.owner, s.repo, sha)
		if err != nil {
			return nil, err
		}
	}

	types, err := codec.DecodeTicketTypes(content)
	if err != nil {
		return nil, &githost.Error{Kind: githost.KindMalformed, Message: err.Error()}
	}
	return types, nil
}

// ConfigExists reports whether the config root directory exists on the
// branch. Callers gate InitializeConfig behind this check; the seeding
// itself does not re-validate.
func (s *Store) ConfigExists(ctx context.Context) (bool, error) {
	_, err := s.client.ListDir(ctx, s.owner, s.repo, s.root, s.branch)
	if err != nil {
		if githost.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// InitializeConfig seeds the default columns, ticket types, an empty
// versions record, and one sample ticket. Each file is an independent
// commit. A repeated call overwrites the records with defaults again, so
// callers are expected to gate it behind ConfigExists.
func (s *Store) InitializeConfig(ctx context.Context) error {
	columns, err := codec.EncodeColumns(model.DefaultColumns())
	if err != nil {
		return err
	}
	if err := s.seedFile(ctx, s.columnsPath(), columns, "Initialize board columns"); err != nil {
		return err
	}

	types, err := codec.EncodeTicketTypes(model.BuiltinTicketTypes())
	if err != nil {
		return err
	}
	if err := s.seedFile(ctx, s.ticketTypesPath(), types, "Initialize ticket types"); err != nil {
		return err
	}

	versions, err := codec.EncodeVersions(nil)
	if err != nil {
		return err
	}
	if err := s.seedFile(ctx, s.versionsPath(), versions, "Initialize versions"); err != nil {
		return err
	}

	return s.seedSampleTicket(ctx)
}

// seedFile writes content to path, overwriting whatever is there. The
// current SHA is fetched immediately before the write so seeding works on
// both fresh and previously initialized boards.
func (s *Store) seedFile(ctx context.Context, path string, content []byte, message string) error {
	_, sha, err := s.client.GetFile(ctx, s.owner, s.repo, path, s.branch)
	if err != nil && !githost.IsNotFound(err) {
		return err
	}
	_, err = s.client.PutFile(ctx, s.owner, s.repo, path, content, sha, s.branch, message)
	return err
}

func (s *Store) seedSampleTicket(ctx context.Context) error {
	sample := &model.Ticket{
		Slug:        "welcome",
		Title:       "Welcome to your board",
		Type:        model.TypeTask,
		Status:      model.BacklogStatus,
		Priority:    model.PriorityMedium,
		Description: "Edit or delete this ticket to get started.",
		CreatedAt:   time.Now().UTC().Truncate(time.Second),
	}

	content, _, err := codec.EncodeTicket(sample)
	if err != nil {
		return err
	}
	return s.seedFile(ctx, s.ticketPath(sample.Slug), content, "Add sample ticket")
}
