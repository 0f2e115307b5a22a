package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tracketdev/tracket/internal/githost"
	"github.com/tracketdev/tracket/internal/render"
)

var ticketShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one ticket",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w := getWriter(cmd)
		st := getStore(cmd)

		ticket, err := st.GetTicket(cmd.Context(), args[0])
		if err != nil {
			if githost.IsNotFound(err) {
				return hostErr(fmt.Errorf("ticket %s not found: %w", args[0], err))
			}
			return hostErr(fmt.Errorf("fetching ticket %s: %w", args[0], err))
		}

		if w.JSONMode {
			w.Success(ticket, "")
			return nil
		}

		ticketTypes, err := st.ListTicketTypes(cmd.Context())
		if err != nil {
			return hostErr(fmt.Errorf("loading ticket types: %w", err))
		}
		versions, err := st.ListVersions(cmd.Context())
		if err != nil {
			return hostErr(fmt.Errorf("loading versions: %w", err))
		}

		w.Success(nil, render.RenderDetail(ticket, ticketTypes, versions))
		return nil
	},
}

func init() {
	ticketCmd.AddCommand(ticketShowCmd)
}
