package render

import (
	"fmt"
	"strings"

	humanize "github.com/dustin/go-humanize"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/tracketdev/tracket/internal/model"
)

// RenderTable renders a list of tickets as a formatted table. The ticket
// types supply per-type icons and colors; custom type ids render with a
// neutral fallback.
func RenderTable(tickets []*model.Ticket, types []model.TicketType) string {
	if len(tickets) == 0 {
		return EmptyState("No tickets found.", "Create one with: tracket ticket create", false)
	}

	if !ColorsEnabled() {
		return renderPlainTable(tickets, types)
	}

	headers := []string{"ID", "Status", "Priority", "Type", "Title", "Assignees", "Updated"}

	rows := make([][]string, 0, len(tickets))
	colors := make([]struct{ priority, kind string }, len(tickets))
	for i, ticket := range tickets {
		kind := model.TicketTypeByID(types, ticket.Type)
		rows = append(rows, ticketToRow(ticket, kind))
		colors[i] = struct{ priority, kind string }{
			priority: ticket.Priority.Color(),
			kind:     kind.Color,
		}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().PaddingLeft(1).PaddingRight(1)

			if row == table.HeaderRow {
				return s.Bold(true).Foreground(lipgloss.Color("15"))
			}

			if row < 0 || row >= len(colors) {
				return s
			}

			switch col {
			case 0: // ID
				return s.Foreground(lipgloss.Color("15"))
			case 1: // Status
				return s.Foreground(lipgloss.Color("14"))
			case 2: // Priority
				return s.Foreground(ColorFromName(colors[row].priority))
			case 3: // Type
				return s.Foreground(ColorFromName(colors[row].kind))
			case 4: // Title
				return s.Bold(true)
			default:
				return s
			}
		})

	return t.Render()
}

func ticketToRow(ticket *model.Ticket, kind model.TicketType) []string {
	return []string{
		ticket.Slug,
		ticket.Status,
		fmt.Sprintf("%s %s", ticket.Priority.Icon(), string(ticket.Priority)),
		fmt.Sprintf("%s %s", kind.Icon, kind.ID),
		truncate(ticket.Title, maxTitleWidth),
		strings.Join(ticket.Assignees, ", "),
		humanize.Time(ticket.UpdatedAt),
	}
}

func renderPlainTable(tickets []*model.Ticket, types []model.TicketType) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%-16s %-14s %-12s %-10s %-40s %-20s %s\n",
		"ID", "Status", "Priority", "Type", "Title", "Assignees", "Updated")
	fmt.Fprintf(&b, "%s\n", strings.Repeat("-", 120))

	for _, ticket := range tickets {
		kind := model.TicketTypeByID(types, ticket.Type)
		fmt.Fprintf(&b, "%-16s %-14s %-12s %-10s %-40s %-20s %s\n",
			ticket.Slug,
			ticket.Status,
			fmt.Sprintf("%s %s", ticket.Priority.Icon(), string(ticket.Priority)),
			kind.ID,
			truncate(ticket.Title, maxTitleWidth),
			strings.Join(ticket.Assignees, ", "),
			humanize.Time(ticket.UpdatedAt),
		)
	}

	return b.String()
}
