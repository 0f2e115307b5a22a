package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tracketdev/tracket/internal/githost"
	"github.com/tracketdev/tracket/internal/output"
)

var ticketMoveCmd = &cobra.Command{
	Use:   "move [id] [status]",
	Short: "Move a ticket to a different status",
	Args:  cobra.ExactArgs(2),
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

		if ticket.Status == args[1] {
			if w.JSONMode {
				w.Success(ticket, "")
			} else {
				w.Info("Ticket %s is already in %s", ticket.Slug, ticket.Status)
			}
			return nil
		}

		ticket.Status = args[1]
		updated, err := st.UpdateTicket(cmd.Context(), ticket)
		if err != nil {
			return hostErr(fmt.Errorf("moving ticket: %w", err))
		}

		w.Success(updated, fmt.Sprintf("Moved %s to %s", updated.Slug, updated.Status))
		return nil
	},
}

func init() {
	ticketCmd.AddCommand(ticketMoveCmd)
}
