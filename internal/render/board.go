package render

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/tracketdev/tracket/internal/model"
)

const (
	maxCardsPerColumn = 10
	minColumnWidth    = 20
	defaultTermWidth  = 100
	cardPadding       = 2 // left+right padding inside cards
)

// GroupByColumn assigns each ticket to the first column whose status list
// matches the ticket's status. Tickets whose status matches no column land
// in the backlog column, which is expected to be first in columns.
func GroupByColumn(tickets []*model.Ticket, columns []model.Column) map[string][]*model.Ticket {
	groups := make(map[string][]*model.Ticket)
	for _, ticket := range tickets {
		id := columnIDFor(ticket, columns)
		groups[id] = append(groups[id], ticket)
	}
	return groups
}

func columnIDFor(ticket *model.Ticket, columns []model.Column) string {
	for i := range columns {
		if columns[i].Matches(ticket.Status) {
			return columns[i].ID
		}
	}
	return model.BacklogID
}

// RenderBoard renders tickets grouped into the configured board columns,
// in column declaration order.
func RenderBoard(tickets []*model.Ticket, columns []model.Column, types []model.TicketType) string {
	if len(tickets) == 0 {
		return EmptyState("No tickets on the board.", "Create one with: tracket ticket create", false)
	}

	if !ColorsEnabled() {
		return renderPlainBoard(tickets, columns, types)
	}

	return renderColorBoard(tickets, columns, types)
}

// terminalWidth returns the current terminal width, falling back to a default.
func terminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return defaultTermWidth
	}
	return w
}

func renderColorBoard(tickets []*model.Ticket, columns []model.Column, types []model.TicketType) string {
	groups := GroupByColumn(tickets, columns)

	var active []model.Column
	for _, c := range columns {
		if len(groups[c.ID]) > 0 {
			active = append(active, c)
		}
	}

	if len(active) == 0 {
		return ""
	}

	tw := terminalWidth()
	// Account for gaps between columns (1 space each).
	gaps := len(active) - 1
	colWidth := (tw - gaps) / len(active)
	if colWidth < minColumnWidth {
		colWidth = minColumnWidth
	}

	// Inner width available for card content (minus border/padding).
	cardContentWidth := max(colWidth-cardPadding-2, 5) // 2 for left+right border chars

	var rendered []string
	for _, column := range active {
		col := renderColorColumn(column, groups[column.ID], colWidth, cardContentWidth, types)
		rendered = append(rendered, col)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func renderColorColumn(column model.Column, tickets []*model.Ticket, colWidth, contentWidth int, types []model.TicketType) string {
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("14")).
		Width(colWidth).
		Align(lipgloss.Center)

	header := headerStyle.Render(fmt.Sprintf("%s (%d)", strings.ToUpper(column.Title), len(tickets)))

	// Render cards up to the maximum.
	visible := tickets
	overflow := 0
	if len(tickets) > maxCardsPerColumn {
		visible = tickets[:maxCardsPerColumn]
		overflow = len(tickets) - maxCardsPerColumn
	}

	cards := make([]string, 0, len(visible)+2) // +2 for header and possible overflow
	cards = append(cards, header)

	for _, ticket := range visible {
		cards = append(cards, renderColorCard(ticket, colWidth, contentWidth, types))
	}

	if overflow > 0 {
		moreStyle := lipgloss.NewStyle().
			Width(colWidth).
			Align(lipgloss.Center).
			Foreground(lipgloss.Color("8"))
		cards = append(cards, moreStyle.Render(fmt.Sprintf("+%d more", overflow)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

func renderColorCard(ticket *model.Ticket, colWidth, contentWidth int, types []model.TicketType) string {
	if contentWidth < 5 {
		contentWidth = 5
	}

	kind := model.TicketTypeByID(types, ticket.Type)

	// Line 1: type icon + slug + priority icon
	kindIcon := lipgloss.NewStyle().
		Foreground(ColorFromName(kind.Color)).
		Render(kind.Icon)
	priIcon := lipgloss.NewStyle().
		Foreground(ColorFromName(ticket.Priority.Color())).
		Render(ticket.Priority.Icon())
	line1 := fmt.Sprintf("%s %s %s", kindIcon, ticket.Slug, priIcon)

	// Line 2: Title (truncated)
	line2 := truncate(ticket.Title, contentWidth)

	// Line 3: Labels
	var line3 string
	if len(ticket.Labels) > 0 {
		line3 = truncate(strings.Join(ticket.Labels, ", "), contentWidth)
	}

	// Line 4: Assignees
	var line4 string
	if len(ticket.Assignees) > 0 {
		line4 = truncate("@"+strings.Join(ticket.Assignees, " @"), contentWidth)
	}

	var lines []string
	lines = append(lines, line1, line2)
	if line3 != "" {
		lines = append(lines, line3)
	}
	if line4 != "" {
		lines = append(lines, line4)
	}
	body := strings.Join(lines, "\n")

	cardStyle := lipgloss.NewStyle().
		Width(colWidth-2). // account for outer spacing
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorFromName(ticket.Priority.Color()))

	return cardStyle.Render(body)
}

// --- Plain text fallback ---

func renderPlainBoard(tickets []*model.Ticket, columns []model.Column, types []model.TicketType) string {
	groups := GroupByColumn(tickets, columns)

	var active []model.Column
	for _, c := range columns {
		if len(groups[c.ID]) > 0 {
			active = append(active, c)
		}
	}

	if len(active) == 0 {
		return ""
	}

	var b strings.Builder

	for i, column := range active {
		if i > 0 {
			b.WriteString("\n")
		}

		inColumn := groups[column.ID]
		fmt.Fprintf(&b, "=== %s (%d) ===\n", strings.ToUpper(column.Title), len(inColumn))

		visible := inColumn
		overflow := 0
		if len(inColumn) > maxCardsPerColumn {
			visible = inColumn[:maxCardsPerColumn]
			overflow = len(inColumn) - maxCardsPerColumn
		}

		for _, ticket := range visible {
			renderPlainCard(&b, ticket, types)
		}

		if overflow > 0 {
			fmt.Fprintf(&b, "  +%d more\n", overflow)
		}
	}

	return b.String()
}

func renderPlainCard(b *strings.Builder, ticket *model.Ticket, types []model.TicketType) {
	kind := model.TicketTypeByID(types, ticket.Type)
	fmt.Fprintf(b, "  %s [%s] (%s)\n", ticket.Slug, string(ticket.Priority), kind.ID)
	fmt.Fprintf(b, "  %s\n", truncate(ticket.Title, maxTitleWidth))

	if len(ticket.Labels) > 0 {
		fmt.Fprintf(b, "  %s\n", strings.Join(ticket.Labels, ", "))
	}
	if len(ticket.Assignees) > 0 {
		fmt.Fprintf(b, "  @%s\n", strings.Join(ticket.Assignees, " @"))
	}

	b.WriteString("\n")
}
