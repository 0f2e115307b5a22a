package model

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Priority represents the urgency of a ticket.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

var validPriorities = []Priority{
	PriorityLow,
	PriorityMedium,
	PriorityHigh,
	PriorityCritical,
}

// ValidatePriority returns an error if p is not a recognized priority.
func ValidatePriority(p Priority) error {
	for _, v := range validPriorities {
		if p == v {
			return nil
		}
	}
	return fmt.Errorf("invalid priority %q: must be one of %v", p, validPriorities)
}

// Rank returns the sort rank of a priority, highest urgency first.
func (p Priority) Rank() int {
	switch p {
	case PriorityCritical:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	default:
		return 4
	}
}

// Color returns a color name string suitable for terminal rendering.
func (p Priority) Color() string {
	switch p {
	case PriorityCritical:
		return "red"
	case PriorityHigh:
		return "yellow"
	case PriorityMedium:
		return "blue"
	case PriorityLow:
		return "gray"
	default:
		return "white"
	}
}

// Icon returns a short marker string for the priority level.
func (p Priority) Icon() string {
	switch p {
	case PriorityCritical:
		return "!!!"
	case PriorityHigh:
		return "!!"
	case PriorityMedium:
		return "!"
	case PriorityLow:
		return "-"
	default:
		return " "
	}
}

// slugPattern constrains ticket slugs to names that are safe as filename
// stems and URL path segments.
var slugPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]*$`)

// ValidateSlug returns an error if slug is not usable as a ticket identity.
func ValidateSlug(slug string) error {
	if slug == "" {
		return fmt.Errorf("empty ticket id")
	}
	if !slugPattern.MatchString(slug) {
		return fmt.Errorf("invalid ticket id %q: use lowercase letters, digits, '.', '-' or '_', starting with a letter or digit", slug)
	}
	return nil
}

// Ticket represents one tracked ticket, backed by one YAML file on the
// remote branch. SHA is the blob SHA of the exact committed content the
// in-memory copy was fetched from (or written as); it is the
// optimistic-concurrency token for updates. Path is the repository path of
// the backing file. Both are store-assigned and must be carried unchanged
// between fetch and update.
type Ticket struct {
	Slug        string    `json:"id"`
	Title       string    `json:"title"`
	Type        string    `json:"type"`
	Status      string    `json:"status"`
	Priority    Priority  `json:"priority"`
	VersionID   string    `json:"version,omitempty"`
	ParentSlug  string    `json:"parent,omitempty"`
	Assignees   []string  `json:"assignees,omitempty"`
	Labels      []string  `json:"labels,omitempty"`
	Estimate    float64   `json:"estimate,omitempty"`
	DueDate     string    `json:"due_date,omitempty"`
	Description string    `json:"description,omitempty"`
	Images      []string  `json:"images,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Path string `json:"path,omitempty"`
	SHA  string `json:"sha,omitempty"`
}

// HasLabel reports whether the ticket carries the given label.
func (t *Ticket) HasLabel(label string) bool {
	for _, l := range t.Labels {
		if l == label {
			return true
		}
	}
	return false
}

// HasAssignee reports whether the ticket is assigned to the given login.
func (t *Ticket) HasAssignee(login string) bool {
	for _, a := range t.Assignees {
		if strings.EqualFold(a, login) {
			return true
		}
	}
	return false
}
