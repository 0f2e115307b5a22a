package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/tracketdev/tracket/internal/codec"
	"github.com/tracketdev/tracket/internal/githost"
	"github.com/tracketdev/tracket/internal/model"
)

// ListTickets enumerates every ticket record on the branch via one
// recursive tree listing plus a blob fetch per record. A fetch or decode
// failure on one record is logged and that record skipped; the listing
// still returns every record that succeeded. The returned flag reports
// whether the host truncated the tree listing, in which case tickets may
// be missing and the caller must warn rather than treat the result as
// complete.
//
// An absent branch or tickets directory yields an empty slice, not an
// error. Result order is by slug; the per-record fetches carry no
// ordering guarantee of their own.
func (s *Store) ListTickets(ctx context.Context) ([]*model.Ticket, bool, error) {
	tree, err := s.client.ListTree(ctx, s.owner, s.repo, s.branch)
	if err != nil {
		if githost.IsNotFound(err) {
			return []*model.Ticket{}, false, nil
		}
		return nil, false, err
	}

	prefix := s.ticketsDir() + "/"
	tickets := []*model.Ticket{}
	for _, entry := range tree.Entries {
		if entry.Type != "blob" || !strings.HasPrefix(entry.Path, prefix) {
			continue
		}
		if !strings.HasSuffix(entry.Path, ".yml") && !strings.HasSuffix(entry.Path, ".yaml") {
			continue
		}

		content, err := s.client.GetBlob(ctx, s.owner, s.repo, entry.SHA)
		if err != nil {
			s.logger.Warn("skipping unreadable ticket record",
				"path", entry.Path,
				"error", err,
			)
			continue
		}

		ticket, err := codec.DecodeTicket(content, entry.Path, entry.SHA)
		if err != nil {
			s.logger.Warn("skipping malformed ticket record",
				"path", entry.Path,
				"error", err,
			)
			continue
		}
		tickets = append(tickets, ticket)
	}

	sort.Slice(tickets, func(i, j int) bool {
		return tickets[i].Slug < tickets[j].Slug
	})

	return tickets, tree.Truncated, nil
}

// GetTicket fetches and decodes one ticket record by slug.
func (s *Store) GetTicket(ctx context.Context, slug string) (*model.Ticket, error) {
	if err := model.ValidateSlug(slug); err != nil {
		return nil, err
	}

	recordPath := s.ticketPath(slug)
	content, sha, err := s.client.GetFile(ctx, s.owner, s.repo, recordPath, s.branch)
	if err != nil {
		return nil, err
	}
	if len(content) == 0 && sha != "" {
		// Content withheld past the inline size threshold.
		content, err = s.client.GetBlob(ctx, s.owner, s.repo, sha)
		if err != nil {
			return nil, err
		}
	}

	ticket, err := codec.DecodeTicket(content, recordPath, sha)
	if err != nil {
		return nil, &githost.Error{Kind: githost.KindMalformed, Message: err.Error()}
	}
	return ticket, nil
}

// CreateTicket commits a new ticket record. The write is gated on the
// file not existing yet; creating a slug that is already taken fails with
// Conflict. On success the entity is returned enriched with its assigned
// path, blob SHA, and timestamps.
func (s *Store) CreateTicket(ctx context.Context, ticket *model.Ticket) (*model.Ticket, error) {
	if err := model.ValidateSlug(ticket.Slug); err != nil {
		return nil, err
	}
	if strings.TrimSpace(ticket.Title) == "" {
		return nil, fmt.Errorf("ticket %s: title is required", ticket.Slug)
	}

	if ticket.Type == "" {
		ticket.Type = model.TypeTask
	}
	if ticket.Status == "" {
		ticket.Status = model.BacklogStatus
	}
	if ticket.Priority == "" {
		ticket.Priority = model.PriorityMedium
	}
	if err := model.ValidatePriority(ticket.Priority); err != nil {
		return nil, err
	}
	ticket.CreatedAt = time.Now().UTC().Truncate(time.Second)

	content, updatedAt, err := codec.EncodeTicket(ticket)
	if err != nil {
		return nil, err
	}

	recordPath := s.ticketPath(ticket.Slug)
	message := fmt.Sprintf("Create ticket %s", ticket.Slug)
	sha, err := s.client.PutFile(ctx, s.owner, s.repo, recordPath, content, "", s.branch, message)
	if err != nil {
		if githost.IsConflict(err) {
			return nil, fmt.Errorf("ticket %s already exists: %w", ticket.Slug, err)
		}
		return nil, err
	}

	ticket.Path = recordPath
	ticket.SHA = sha
	ticket.UpdatedAt = updatedAt
	return ticket, nil
}

// UpdateTicket commits a changed ticket record, gated on the entity's
// SHA still matching remote state. On Conflict the remote copy has
// changed since the last fetch; the store performs no merge and no retry,
// the caller must refetch and reapply. On success the entity's SHA and
// updated timestamp are refreshed in place.
func (s *Store) UpdateTicket(ctx context.Context, ticket *model.Ticket) (*model.Ticket, error) {
	if err := model.ValidateSlug(ticket.Slug); err != nil {
		return nil, err
	}
	if strings.TrimSpace(ticket.Title) == "" {
		return nil, fmt.Errorf("ticket %s: title is required", ticket.Slug)
	}
	if ticket.SHA == "" {
		return nil, fmt.Errorf("ticket %s has no content hash; fetch it before updating", ticket.Slug)
	}

	content, updatedAt, err := codec.EncodeTicket(ticket)
	if err != nil {
		return nil, err
	}

	recordPath := s.ticketPath(ticket.Slug)
	message := fmt.Sprintf("Update ticket %s", ticket.Slug)
	sha, err := s.client.PutFile(ctx, s.owner, s.repo, recordPath, content, ticket.SHA, s.branch, message)
	if err != nil {
		return nil, conflict(err, "ticket "+ticket.Slug)
	}

	ticket.Path = recordPath
	ticket.SHA = sha
	ticket.UpdatedAt = updatedAt
	return ticket, nil
}

// DeleteTicket removes a ticket record, gated on the entity's SHA. Images
// under the ticket's asset directory are not touched; their lifecycle is
// independent of the record.
func (s *Store) DeleteTicket(ctx context.Context, ticket *model.Ticket) error {
	if err := model.ValidateSlug(ticket.Slug); err != nil {
		return err
	}
	if ticket.SHA == "" {
		return fmt.Errorf("ticket %s has no content hash; fetch it before deleting", ticket.Slug)
	}

	message := fmt.Sprintf("Delete ticket %s", ticket.Slug)
	err := s.client.DeleteFile(ctx, s.owner, s.repo, s.ticketPath(ticket.Slug), ticket.SHA, s.branch, message)
	return conflict(err, "ticket "+ticket.Slug)
}
