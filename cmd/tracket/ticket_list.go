package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tracketdev/tracket/internal/filter"
	"github.com/tracketdev/tracket/internal/model"
	"github.com/tracketdev/tracket/internal/output"
	"github.com/tracketdev/tracket/internal/render"
)

// listResult is the JSON output structure for the ticket list command.
type listResult struct {
	Tickets   []*model.Ticket `json:"tickets"`
	Total     int             `json:"total"`
	Truncated bool            `json:"truncated"`
}

var ticketListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List tickets",
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		w := getWriter(cmd)
		st := getStore(cmd)

		statuses, _ := cmd.Flags().GetStringSlice("status")
		priorities, _ := cmd.Flags().GetStringSlice("priority")
		labels, _ := cmd.Flags().GetStringSlice("label")
		types, _ := cmd.Flags().GetStringSlice("type")
		assignee, _ := cmd.Flags().GetString("assignee")
		versionID, _ := cmd.Flags().GetString("version")

		for _, p := range priorities {
			if err := model.ValidatePriority(model.Priority(p)); err != nil {
				return cmdErr(err, output.ErrValidation)
			}
		}

		tickets, truncated, err := st.ListTickets(cmd.Context())
		if err != nil {
			return hostErr(fmt.Errorf("listing tickets: %w", err))
		}
		if truncated {
			w.Warn("The remote listing was truncated; some tickets may be missing.")
		}

		tickets = filter.Apply(tickets, filter.Options{
			Statuses:   statuses,
			Priorities: priorities,
			Labels:     labels,
			Types:      types,
			Assignee:   assignee,
			VersionID:  versionID,
		})

		if w.JSONMode {
			w.Success(listResult{Tickets: tickets, Total: len(tickets), Truncated: truncated}, "")
			return nil
		}

		ticketTypes, err := st.ListTicketTypes(cmd.Context())
		if err != nil {
			return hostErr(fmt.Errorf("loading ticket types: %w", err))
		}

		w.Success(nil, render.RenderTable(tickets, ticketTypes))
		return nil
	},
}

func init() {
	ticketListCmd.Flags().StringSliceP("status", "s", nil, "Filter by status (repeatable)")
	ticketListCmd.Flags().StringSliceP("priority", "p", nil, "Filter by priority (repeatable)")
	ticketListCmd.Flags().StringSliceP("label", "l", nil, "Filter by label (repeatable)")
	ticketListCmd.Flags().StringSliceP("type", "T", nil, "Filter by ticket type (repeatable)")
	ticketListCmd.Flags().StringP("assignee", "a", "", "Filter by assignee")
	ticketListCmd.Flags().String("version", "", "Filter by version id")
	ticketCmd.AddCommand(ticketListCmd)
}
