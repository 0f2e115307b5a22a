package main

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/tracketdev/tracket/internal/githost"
	"github.com/tracketdev/tracket/internal/output"
)

type deleteResult struct {
	ID string `json:"id"`
}

var ticketDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a ticket",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w := getWriter(cmd)
		st := getStore(cmd)

		force, _ := cmd.Flags().GetBool("force")

		ticket, err := st.GetTicket(cmd.Context(), args[0])
		if err != nil {
			if githost.IsNotFound(err) {
				return cmdErr(fmt.Errorf("ticket %s not found", args[0]), output.ErrNotFound)
			}
			return hostErr(fmt.Errorf("fetching ticket: %w", err))
		}

		// JSON mode never prompts; require --force there.
		if !force && w.JSONMode {
			return cmdErr(fmt.Errorf("use --force to delete without confirmation"), output.ErrValidation)
		}

		if !force {
			var confirmed bool
			form := huh.NewForm(
				huh.NewGroup(
					huh.NewConfirm().
						Title(fmt.Sprintf("Delete %s: %s?", ticket.Slug, ticket.Title)).
						Value(&confirmed),
				),
			)

			if err := form.Run(); err != nil {
				if errors.Is(err, huh.ErrUserAborted) {
					w.Info("Cancelled.")
					return nil
				}
				return cmdErr(fmt.Errorf("interactive form failed: %w", err), output.ErrGeneral)
			}

			if !confirmed {
				w.Info("Cancelled.")
				return nil
			}
		}

		if err := st.DeleteTicket(cmd.Context(), ticket); err != nil {
			return hostErr(fmt.Errorf("deleting ticket: %w", err))
		}

		w.Success(deleteResult{ID: ticket.Slug}, fmt.Sprintf("Deleted %s: %s", ticket.Slug, ticket.Title))
		return nil
	},
}

func init() {
	ticketDeleteCmd.Flags().BoolP("force", "f", false, "Skip confirmation")
	ticketCmd.AddCommand(ticketDeleteCmd)
}
