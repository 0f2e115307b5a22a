package filter

import "github.com/tracketdev/tracket/internal/model"

// Options narrows a ticket listing. Zero-valued fields match everything.
type Options struct {
	Statuses   []string
	Priorities []string
	Labels     []string
	Types      []string
	Assignee   string
	VersionID  string
}

// ToStringSet converts a slice of strings to a set for O(1) membership checks.
func ToStringSet(ss []string) map[string]struct{} {
	if len(ss) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(ss))
	for _, s := range ss {
		set[s] = struct{}{}
	}
	return set
}

// HasAllLabels returns true if the ticket has every label in the required set.
func HasAllLabels(ticket *model.Ticket, required map[string]struct{}) bool {
	have := make(map[string]struct{}, len(ticket.Labels))
	for _, l := range ticket.Labels {
		have[l] = struct{}{}
	}
	for l := range required {
		if _, ok := have[l]; !ok {
			return false
		}
	}
	return true
}

// Apply returns the tickets matching every set field of opts, preserving
// input order.
func Apply(tickets []*model.Ticket, opts Options) []*model.Ticket {
	statuses := ToStringSet(opts.Statuses)
	priorities := ToStringSet(opts.Priorities)
	types := ToStringSet(opts.Types)
	labels := ToStringSet(opts.Labels)

	matched := make([]*model.Ticket, 0, len(tickets))
	for _, ticket := range tickets {
		if statuses != nil {
			if _, ok := statuses[ticket.Status]; !ok {
				continue
			}
		}
		if priorities != nil {
			if _, ok := priorities[string(ticket.Priority)]; !ok {
				continue
			}
		}
		if types != nil {
			if _, ok := types[ticket.Type]; !ok {
				continue
			}
		}
		if labels != nil && !HasAllLabels(ticket, labels) {
			continue
		}
		if opts.Assignee != "" && !ticket.HasAssignee(opts.Assignee) {
			continue
		}
		if opts.VersionID != "" && ticket.VersionID != opts.VersionID {
			continue
		}
		matched = append(matched, ticket)
	}
	return matched
}
