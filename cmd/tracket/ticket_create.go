package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/tracketdev/tracket/internal/model"
	"github.com/tracketdev/tracket/internal/output"
)

var ticketCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new ticket",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := getWriter(cmd)
		st := getStore(cmd)

		slug, _ := cmd.Flags().GetString("id")
		title, _ := cmd.Flags().GetString("title")
		description, _ := cmd.Flags().GetString("description")
		status, _ := cmd.Flags().GetString("status")
		priority, _ := cmd.Flags().GetString("priority")
		kind, _ := cmd.Flags().GetString("type")
		labelFlag, _ := cmd.Flags().GetStringSlice("label")
		assigneeFlag, _ := cmd.Flags().GetStringSlice("assignee")
		versionID, _ := cmd.Flags().GetString("version")
		parent, _ := cmd.Flags().GetString("parent")
		estimate, _ := cmd.Flags().GetFloat64("estimate")
		dueDate, _ := cmd.Flags().GetString("due")
		jsonMode, _ := cmd.Flags().GetBool("json")

		// In JSON mode there is no interactive fallback.
		if jsonMode && (slug == "" || title == "") {
			return cmdErr(fmt.Errorf("--id and --title are required in JSON mode"), output.ErrValidation)
		}

		// Without an id or title, launch the interactive form. The select
		// widgets pre-select the flag defaults passed via .Value(...).
		if !jsonMode && (slug == "" || title == "") {
			var labelStr string
			var assigneeStr string
			form := huh.NewForm(
				huh.NewGroup(
					huh.NewInput().
						Title("ID").
						Description("lowercase slug, becomes the filename").
						Value(&slug).
						Validate(func(s string) error {
							return model.ValidateSlug(strings.TrimSpace(s))
						}),
					huh.NewInput().
						Title("Title").
						Value(&title).
						Validate(func(s string) error {
							if strings.TrimSpace(s) == "" {
								return fmt.Errorf("title is required")
							}
							return nil
						}),
					huh.NewText().
						Title("Description").
						Value(&description),
					huh.NewSelect[string]().
						Title("Priority").
						Options(
							huh.NewOption("low", "low"),
							huh.NewOption("medium", "medium"),
							huh.NewOption("high", "high"),
							huh.NewOption("critical", "critical"),
						).
						Value(&priority), // pre-selects flag default ("medium")
					huh.NewSelect[string]().
						Title("Type").
						Options(
							huh.NewOption("task", "task"),
							huh.NewOption("bug", "bug"),
							huh.NewOption("feature", "feature"),
							huh.NewOption("epic", "epic"),
						).
						Value(&kind), // pre-selects flag default ("task")
					huh.NewInput().
						Title("Status").
						Value(&status), // pre-filled with flag default ("backlog")
					huh.NewInput().
						Title("Assignees (comma-separated)").
						Value(&assigneeStr),
					huh.NewInput().
						Title("Labels (comma-separated)").
						Value(&labelStr),
				),
			)

			if err := form.Run(); err != nil {
				if errors.Is(err, huh.ErrUserAborted) {
					w.Info("Cancelled.")
					return nil
				}
				return cmdErr(fmt.Errorf("interactive form failed: %w", err), output.ErrGeneral)
			}

			labelFlag = append(labelFlag, splitCommaList(labelStr)...)
			assigneeFlag = append(assigneeFlag, splitCommaList(assigneeStr)...)
		}

		// Read description from stdin if "-".
		if description == "-" {
			const maxStdinSize = 1 << 20 // 1 MiB
			data, err := io.ReadAll(io.LimitReader(os.Stdin, maxStdinSize))
			if err != nil {
				return cmdErr(fmt.Errorf("reading description from stdin: %w", err), output.ErrGeneral)
			}
			description = strings.TrimRight(string(data), "\n")
		}

		ticket := &model.Ticket{
			Slug:        strings.TrimSpace(slug),
			Title:       strings.TrimSpace(title),
			Type:        kind,
			Status:      status,
			Priority:    model.Priority(priority),
			VersionID:   versionID,
			ParentSlug:  parent,
			Assignees:   assigneeFlag,
			Labels:      labelFlag,
			Estimate:    estimate,
			DueDate:     dueDate,
			Description: description,
		}

		created, err := st.CreateTicket(cmd.Context(), ticket)
		if err != nil {
			return hostErr(fmt.Errorf("creating ticket: %w", err))
		}

		w.Success(created, fmt.Sprintf("Created %s: %s", created.Slug, created.Title))
		return nil
	},
}

// splitCommaList splits a comma-separated input, trimming blanks.
func splitCommaList(input string) []string {
	var items []string
	for _, item := range strings.Split(input, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

func init() {
	ticketCreateCmd.Flags().String("id", "", "Ticket id (slug, becomes the filename)")
	ticketCreateCmd.Flags().StringP("title", "t", "", "Ticket title")
	ticketCreateCmd.Flags().StringP("description", "d", "", "Ticket description (use \"-\" for stdin)")
	ticketCreateCmd.Flags().StringP("status", "s", "backlog", "Ticket status")
	ticketCreateCmd.Flags().StringP("priority", "p", "medium", "Ticket priority")
	ticketCreateCmd.Flags().StringP("type", "T", "task", "Ticket type")
	ticketCreateCmd.Flags().StringSliceP("label", "l", nil, "Ticket labels (repeatable)")
	ticketCreateCmd.Flags().StringSliceP("assignee", "a", nil, "Ticket assignees (repeatable)")
	ticketCreateCmd.Flags().String("version", "", "Version id the ticket is scheduled into")
	ticketCreateCmd.Flags().String("parent", "", "Parent ticket id")
	ticketCreateCmd.Flags().Float64("estimate", 0, "Numeric estimate")
	ticketCreateCmd.Flags().String("due", "", "Due date (YYYY-MM-DD)")
	ticketCmd.AddCommand(ticketCreateCmd)
}
