package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tracketdev/tracket/internal/filter"
	"github.com/tracketdev/tracket/internal/model"
	"github.com/tracketdev/tracket/internal/output"
	"github.com/tracketdev/tracket/internal/render"
)

// boardColumn represents a single column in the board JSON output.
type boardColumn struct {
	ID      string          `json:"id"`
	Title   string          `json:"title"`
	Count   int             `json:"count"`
	Tickets []*model.Ticket `json:"tickets"`
}

// boardResult is the JSON output structure for the board command.
type boardResult struct {
	Columns   []boardColumn `json:"columns"`
	Truncated bool          `json:"truncated,omitempty"`
}

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Show the ticket board",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := getWriter(cmd)
		st := getStore(cmd)

		labels, _ := cmd.Flags().GetStringSlice("label")
		priorities, _ := cmd.Flags().GetStringSlice("priority")
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
			w.Warn("Ticket listing was truncated by the server; some tickets may be missing")
		}

		columns, err := st.ListColumns(cmd.Context())
		if err != nil {
			return hostErr(fmt.Errorf("loading columns: %w", err))
		}

		tickets = filter.Apply(tickets, filter.Options{
			Priorities: priorities,
			Labels:     labels,
			Assignee:   assignee,
			VersionID:  versionID,
		})

		if w.JSONMode {
			groups := render.GroupByColumn(tickets, columns)

			result := boardResult{Truncated: truncated}
			for _, column := range columns {
				group := groups[column.ID]
				if group == nil {
					group = []*model.Ticket{}
				}
				result.Columns = append(result.Columns, boardColumn{
					ID:      column.ID,
					Title:   column.Title,
					Count:   len(group),
					Tickets: group,
				})
			}

			w.Success(result, "")
			return nil
		}

		types, err := st.ListTicketTypes(cmd.Context())
		if err != nil {
			return hostErr(fmt.Errorf("loading ticket types: %w", err))
		}

		w.Success(nil, render.RenderBoard(tickets, columns, types))
		return nil
	},
}

func init() {
	boardCmd.Flags().StringSliceP("label", "l", nil, "Filter by label (repeatable)")
	boardCmd.Flags().StringSliceP("priority", "p", nil, "Filter by priority (repeatable)")
	boardCmd.Flags().StringP("assignee", "a", "", "Filter by assignee")
	boardCmd.Flags().String("version", "", "Filter by version id")
	rootCmd.AddCommand(boardCmd)
}
