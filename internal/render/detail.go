package render

import (
	"fmt"
	"strings"

	humanize "github.com/dustin/go-humanize"

	"github.com/charmbracelet/lipgloss"

	"github.com/tracketdev/tracket/internal/model"
)

// RenderDetail renders a full ticket detail view: header, metadata,
// markdown description, and attached image names.
func RenderDetail(ticket *model.Ticket, types []model.TicketType, versions []model.Version) string {
	if !ColorsEnabled() {
		return renderPlainDetail(ticket, types, versions)
	}

	var sections []string

	sections = append(sections, renderHeader(ticket, types))
	sections = append(sections, renderMetadata(ticket, versions))

	if ticket.Description != "" {
		sections = append(sections, renderDescription(ticket.Description))
	}

	if len(ticket.Images) > 0 {
		sections = append(sections, renderImages(ticket.Images))
	}

	return strings.Join(sections, "\n\n")
}

func renderHeader(ticket *model.Ticket, types []model.TicketType) string {
	kind := model.TicketTypeByID(types, ticket.Type)

	idStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	titleStyle := lipgloss.NewStyle().Bold(true)
	kindStyle := lipgloss.NewStyle().
		Foreground(ColorFromName(kind.Color)).
		Bold(true)
	statusStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("14")).
		Bold(true)
	priorityStyle := lipgloss.NewStyle().
		Foreground(ColorFromName(ticket.Priority.Color())).
		Bold(true)

	return fmt.Sprintf("%s %s  %s\n%s  %s",
		kindStyle.Render(kind.Icon),
		idStyle.Render(ticket.Slug),
		titleStyle.Render(ticket.Title),
		statusStyle.Render(ticket.Status),
		priorityStyle.Render(fmt.Sprintf("%s %s", ticket.Priority.Icon(), string(ticket.Priority))),
	)
}

func renderMetadata(ticket *model.Ticket, versions []model.Version) string {
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	var lines []string

	lines = append(lines, fmt.Sprintf("%s %s", labelStyle.Render("Type:"), ticket.Type))

	if len(ticket.Assignees) > 0 {
		lines = append(lines, fmt.Sprintf("%s %s", labelStyle.Render("Assignees:"), strings.Join(ticket.Assignees, ", ")))
	}

	if len(ticket.Labels) > 0 {
		lines = append(lines, fmt.Sprintf("%s %s", labelStyle.Render("Labels:"), strings.Join(ticket.Labels, ", ")))
	}

	if ticket.VersionID != "" {
		name := ticket.VersionID
		if v := model.VersionByID(versions, ticket.VersionID); v != nil {
			name = v.Name
		}
		lines = append(lines, fmt.Sprintf("%s %s", labelStyle.Render("Version:"), name))
	}

	if ticket.ParentSlug != "" {
		lines = append(lines, fmt.Sprintf("%s %s", labelStyle.Render("Parent:"), ticket.ParentSlug))
	}

	if ticket.Estimate > 0 {
		lines = append(lines, fmt.Sprintf("%s %g", labelStyle.Render("Estimate:"), ticket.Estimate))
	}

	if ticket.DueDate != "" {
		lines = append(lines, fmt.Sprintf("%s %s", labelStyle.Render("Due:"), ticket.DueDate))
	}

	if !ticket.CreatedAt.IsZero() {
		lines = append(lines, fmt.Sprintf("%s %s", labelStyle.Render("Created:"), humanize.Time(ticket.CreatedAt)))
	}
	if !ticket.UpdatedAt.IsZero() {
		lines = append(lines, fmt.Sprintf("%s %s", labelStyle.Render("Updated:"), humanize.Time(ticket.UpdatedAt)))
	}

	return strings.Join(lines, "\n")
}

func renderDescription(description string) string {
	sectionStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	header := sectionStyle.Render("Description")

	return header + "\n" + RenderMarkdown(description)
}

func renderImages(images []string) string {
	sectionStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	header := sectionStyle.Render("Images")

	var lines []string
	for _, name := range images {
		lines = append(lines, "  "+dimStyle.Render("▸ "+name))
	}

	return header + "\n" + strings.Join(lines, "\n")
}

// --- Plain text fallback ---

func renderPlainDetail(ticket *model.Ticket, types []model.TicketType, versions []model.Version) string {
	var b strings.Builder

	kind := model.TicketTypeByID(types, ticket.Type)

	fmt.Fprintf(&b, "%s  %s\n", ticket.Slug, ticket.Title)
	fmt.Fprintf(&b, "%s  %s %s\n\n", ticket.Status, ticket.Priority.Icon(), string(ticket.Priority))

	fmt.Fprintf(&b, "Type: %s\n", kind.ID)
	if len(ticket.Assignees) > 0 {
		fmt.Fprintf(&b, "Assignees: %s\n", strings.Join(ticket.Assignees, ", "))
	}
	if len(ticket.Labels) > 0 {
		fmt.Fprintf(&b, "Labels: %s\n", strings.Join(ticket.Labels, ", "))
	}
	if ticket.VersionID != "" {
		name := ticket.VersionID
		if v := model.VersionByID(versions, ticket.VersionID); v != nil {
			name = v.Name
		}
		fmt.Fprintf(&b, "Version: %s\n", name)
	}
	if ticket.ParentSlug != "" {
		fmt.Fprintf(&b, "Parent: %s\n", ticket.ParentSlug)
	}
	if ticket.Estimate > 0 {
		fmt.Fprintf(&b, "Estimate: %g\n", ticket.Estimate)
	}
	if ticket.DueDate != "" {
		fmt.Fprintf(&b, "Due: %s\n", ticket.DueDate)
	}
	if !ticket.CreatedAt.IsZero() {
		fmt.Fprintf(&b, "Created: %s\n", humanize.Time(ticket.CreatedAt))
	}
	if !ticket.UpdatedAt.IsZero() {
		fmt.Fprintf(&b, "Updated: %s\n", humanize.Time(ticket.UpdatedAt))
	}

	if ticket.Description != "" {
		fmt.Fprintf(&b, "\nDescription\n%s\n", ticket.Description)
	}

	if len(ticket.Images) > 0 {
		fmt.Fprintf(&b, "\nImages\n")
		for _, name := range ticket.Images {
			fmt.Fprintf(&b, "  %s\n", name)
		}
	}

	return b.String()
}
