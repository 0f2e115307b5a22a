package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tracketdev/tracket/internal/githost"
	"github.com/tracketdev/tracket/internal/model"
	"github.com/tracketdev/tracket/internal/output"
)

var ticketEditCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Edit an existing ticket",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w := getWriter(cmd)
		st := getStore(cmd)

		ticket, err := st.GetTicket(cmd.Context(), args[0])
		if err != nil {
			if githost.IsNotFound(err) {
				return cmdErr(fmt.Errorf("ticket %s not found", args[0]), output.ErrNotFound)
			}
			return hostErr(fmt.Errorf("fetching ticket: %w", err))
		}

		changed := false

		if cmd.Flags().Changed("title") {
			title, _ := cmd.Flags().GetString("title")
			if strings.TrimSpace(title) == "" {
				return cmdErr(fmt.Errorf("title cannot be empty"), output.ErrValidation)
			}
			ticket.Title = title
			changed = true
		}

		if cmd.Flags().Changed("description") {
			description, _ := cmd.Flags().GetString("description")
			if description == "-" {
				const maxStdinSize = 1 << 20 // 1 MiB
				data, err := io.ReadAll(io.LimitReader(os.Stdin, maxStdinSize))
				if err != nil {
					return cmdErr(fmt.Errorf("reading description from stdin: %w", err), output.ErrGeneral)
				}
				description = strings.TrimRight(string(data), "\n")
			}
			ticket.Description = description
			changed = true
		}

		if cmd.Flags().Changed("status") {
			status, _ := cmd.Flags().GetString("status")
			ticket.Status = status
			changed = true
		}

		if cmd.Flags().Changed("priority") {
			priority, _ := cmd.Flags().GetString("priority")
			if err := model.ValidatePriority(model.Priority(priority)); err != nil {
				return cmdErr(err, output.ErrValidation)
			}
			ticket.Priority = model.Priority(priority)
			changed = true
		}

		if cmd.Flags().Changed("type") {
			kind, _ := cmd.Flags().GetString("type")
			ticket.Type = kind
			changed = true
		}

		if cmd.Flags().Changed("assignee") {
			assignees, _ := cmd.Flags().GetStringSlice("assignee")
			ticket.Assignees = assignees
			changed = true
		}

		if cmd.Flags().Changed("label") {
			labels, _ := cmd.Flags().GetStringSlice("label")
			ticket.Labels = labels
			changed = true
		}

		if cmd.Flags().Changed("version") {
			versionID, _ := cmd.Flags().GetString("version")
			if strings.EqualFold(versionID, "none") {
				versionID = ""
			}
			ticket.VersionID = versionID
			changed = true
		}

		if cmd.Flags().Changed("parent") {
			parent, _ := cmd.Flags().GetString("parent")
			if strings.EqualFold(parent, "none") {
				parent = ""
			} else if parent == ticket.Slug {
				return cmdErr(fmt.Errorf("cannot set parent to self"), output.ErrValidation)
			}
			ticket.ParentSlug = parent
			changed = true
		}

		if cmd.Flags().Changed("estimate") {
			estimate, _ := cmd.Flags().GetFloat64("estimate")
			ticket.Estimate = estimate
			changed = true
		}

		if cmd.Flags().Changed("due") {
			dueDate, _ := cmd.Flags().GetString("due")
			ticket.DueDate = dueDate
			changed = true
		}

		if !changed {
			if w.JSONMode {
				w.Success(ticket, "")
			} else {
				w.Info("No changes specified")
			}
			return nil
		}

		updated, err := st.UpdateTicket(cmd.Context(), ticket)
		if err != nil {
			return hostErr(fmt.Errorf("updating ticket: %w", err))
		}

		w.Success(updated, fmt.Sprintf("Updated %s: %s", updated.Slug, updated.Title))
		return nil
	},
}

func init() {
	ticketEditCmd.Flags().StringP("title", "t", "", "Ticket title")
	ticketEditCmd.Flags().StringP("description", "d", "", "Ticket description (use \"-\" for stdin)")
	ticketEditCmd.Flags().StringP("status", "s", "", "Ticket status")
	ticketEditCmd.Flags().StringP("priority", "p", "", "Ticket priority")
	ticketEditCmd.Flags().StringP("type", "T", "", "Ticket type")
	ticketEditCmd.Flags().StringSliceP("assignee", "a", nil, "Ticket assignees (repeatable, replaces existing)")
	ticketEditCmd.Flags().StringSliceP("label", "l", nil, "Ticket labels (repeatable, replaces existing)")
	ticketEditCmd.Flags().String("version", "", "Version id (use \"none\" to clear)")
	ticketEditCmd.Flags().String("parent", "", "Parent ticket id (use \"none\" to clear)")
	ticketEditCmd.Flags().Float64("estimate", 0, "Numeric estimate")
	ticketEditCmd.Flags().String("due", "", "Due date (YYYY-MM-DD)")
	ticketCmd.AddCommand(ticketEditCmd)
}
