// Package codec implements the bidirectional mapping between the YAML
// record encoding on the remote branch and the typed entities in
// internal/model. All transforms are pure; nothing here touches the
// network.
package codec

import (
	"fmt"
	"path"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tracketdev/tracket/internal/model"
)

// TicketExt is the file extension of ticket records.
const TicketExt = ".yml"

// looseNumber decodes a YAML scalar as a float64 but tolerates junk:
// a non-numeric estimate is dropped rather than failing the whole record.
type looseNumber float64

func (n *looseNumber) UnmarshalYAML(value *yaml.Node) error {
	var f float64
	if err := value.Decode(&f); err != nil {
		*n = 0
		return nil
	}
	*n = looseNumber(f)
	return nil
}

// ticketYAML is the YAML wire format for a ticket record. Timestamps are
// RFC3339 strings; empty optional fields are omitted on encode so that
// round-tripped records stay minimal and diff-friendly.
type ticketYAML struct {
	Title       string      `yaml:"title,omitempty"`
	Type        string      `yaml:"type,omitempty"`
	Status      string      `yaml:"status,omitempty"`
	Priority    string      `yaml:"priority,omitempty"`
	Version     string      `yaml:"version,omitempty"`
	Parent      string      `yaml:"parent,omitempty"`
	Assignees   []string    `yaml:"assignees,omitempty"`
	Labels      []string    `yaml:"labels,omitempty"`
	Estimate    looseNumber `yaml:"estimate,omitempty"`
	DueDate     string      `yaml:"dueDate,omitempty"`
	Description string      `yaml:"description,omitempty"`
	Images      []string    `yaml:"images,omitempty"`
	CreatedAt   string      `yaml:"createdAt,omitempty"`
	UpdatedAt   string      `yaml:"updatedAt,omitempty"`
}

// DecodeTicket maps one raw record to a Ticket. The slug is derived from
// the filename stem of recordPath; sha is the blob SHA the content was
// fetched at. Missing optional fields get defaults: type falls back to the
// generic task type, status to the backlog status.
func DecodeTicket(data []byte, recordPath, sha string) (*model.Ticket, error) {
	var wire ticketYAML
	if err := yaml.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("decoding ticket record %s: %w", recordPath, err)
	}

	ticket := &model.Ticket{
		Slug:        slugFromPath(recordPath),
		Title:       wire.Title,
		Type:        wire.Type,
		Status:      wire.Status,
		Priority:    model.Priority(wire.Priority),
		VersionID:   wire.Version,
		ParentSlug:  wire.Parent,
		Assignees:   wire.Assignees,
		Labels:      wire.Labels,
		Estimate:    float64(wire.Estimate),
		DueDate:     wire.DueDate,
		Description: wire.Description,
		Images:      wire.Images,
		Path:        recordPath,
		SHA:         sha,
	}

	if ticket.Type == "" {
		ticket.Type = model.TypeTask
	}
	if ticket.Status == "" {
		ticket.Status = model.BacklogStatus
	}

	ticket.CreatedAt = parseTimestamp(wire.CreatedAt)
	ticket.UpdatedAt = parseTimestamp(wire.UpdatedAt)

	return ticket, nil
}

// EncodeTicket maps a Ticket to its YAML record form. The updated
// timestamp is always refreshed to the current time as part of encoding,
// which makes encode deliberately not a pure inverse of decode; the
// stamped time is returned so the caller can merge it back into the
// entity after a successful commit.
func EncodeTicket(ticket *model.Ticket) ([]byte, time.Time, error) {
	now := time.Now().UTC().Truncate(time.Second)

	wire := ticketYAML{
		Title:       ticket.Title,
		Type:        ticket.Type,
		Status:      ticket.Status,
		Priority:    string(ticket.Priority),
		Version:     ticket.VersionID,
		Parent:      ticket.ParentSlug,
		Assignees:   ticket.Assignees,
		Labels:      ticket.Labels,
		Estimate:    looseNumber(ticket.Estimate),
		DueDate:     ticket.DueDate,
		Description: ticket.Description,
		Images:      ticket.Images,
		UpdatedAt:   now.Format(time.RFC3339),
	}
	if !ticket.CreatedAt.IsZero() {
		wire.CreatedAt = ticket.CreatedAt.UTC().Format(time.RFC3339)
	}

	data, err := yaml.Marshal(wire)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("encoding ticket %s: %w", ticket.Slug, err)
	}
	return data, now, nil
}

// slugFromPath derives the ticket slug from the filename stem.
func slugFromPath(recordPath string) string {
	base := path.Base(recordPath)
	base = strings.TrimSuffix(base, ".yaml")
	base = strings.TrimSuffix(base, ".yml")
	return base
}

// parseTimestamp reads an RFC3339 timestamp, returning the zero time for
// absent or unparseable values.
func parseTimestamp(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}
	}
	return parsed.UTC()
}
