package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tracketdev/tracket/internal/githost"
	"github.com/tracketdev/tracket/internal/model"
	"github.com/tracketdev/tracket/internal/output"
)

var versionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"v"},
	Short:   "Manage versions",
}

// versionListResult is the JSON output structure for version list.
type versionListResult struct {
	Versions []model.Version `json:"versions"`
	Total    int             `json:"total"`
}

var versionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List versions",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := getWriter(cmd)
		st := getStore(cmd)

		versions, err := st.ListVersions(cmd.Context())
		if err != nil {
			return hostErr(fmt.Errorf("listing versions: %w", err))
		}

		if w.JSONMode {
			w.Success(versionListResult{Versions: versions, Total: len(versions)}, "")
			return nil
		}

		if len(versions) == 0 {
			w.Success(nil, "No versions yet. Create one with: tracket version create")
			return nil
		}

		var b strings.Builder
		for _, v := range versions {
			line := fmt.Sprintf("%-20s %s", v.ID, v.Name)
			if v.TargetDate != "" {
				line += fmt.Sprintf("  (target %s)", v.TargetDate)
			}
			b.WriteString(line + "\n")
		}
		w.Success(nil, strings.TrimRight(b.String(), "\n"))
		return nil
	},
}

var versionCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a version",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w := getWriter(cmd)
		st := getStore(cmd)

		name := strings.TrimSpace(args[0])
		if name == "" {
			return cmdErr(fmt.Errorf("version name is required"), output.ErrValidation)
		}

		startDate, _ := cmd.Flags().GetString("start")
		targetDate, _ := cmd.Flags().GetString("target")

		created, err := st.CreateVersion(cmd.Context(), name, startDate, targetDate)
		if err != nil {
			return hostErr(fmt.Errorf("creating version: %w", err))
		}

		w.Success(created, fmt.Sprintf("Created version %s: %s", created.ID, created.Name))
		return nil
	},
}

var versionEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a version",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w := getWriter(cmd)
		st := getStore(cmd)

		versions, err := st.ListVersions(cmd.Context())
		if err != nil {
			return hostErr(fmt.Errorf("listing versions: %w", err))
		}

		existing := model.VersionByID(versions, args[0])
		if existing == nil {
			return cmdErr(fmt.Errorf("version %s not found", args[0]), output.ErrNotFound)
		}

		updated := *existing
		changed := false

		if cmd.Flags().Changed("name") {
			name, _ := cmd.Flags().GetString("name")
			if strings.TrimSpace(name) == "" {
				return cmdErr(fmt.Errorf("version name cannot be empty"), output.ErrValidation)
			}
			updated.Name = name
			changed = true
		}
		if cmd.Flags().Changed("start") {
			updated.StartDate, _ = cmd.Flags().GetString("start")
			changed = true
		}
		if cmd.Flags().Changed("target") {
			updated.TargetDate, _ = cmd.Flags().GetString("target")
			changed = true
		}

		if !changed {
			if w.JSONMode {
				w.Success(existing, "")
			} else {
				w.Info("No changes specified")
			}
			return nil
		}

		if err := st.UpdateVersion(cmd.Context(), updated); err != nil {
			if githost.IsNotFound(err) {
				return cmdErr(fmt.Errorf("version %s not found", args[0]), output.ErrNotFound)
			}
			return hostErr(fmt.Errorf("updating version: %w", err))
		}

		w.Success(updated, fmt.Sprintf("Updated version %s: %s", updated.ID, updated.Name))
		return nil
	},
}

var versionDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a version",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w := getWriter(cmd)
		st := getStore(cmd)

		if err := st.DeleteVersion(cmd.Context(), args[0]); err != nil {
			if githost.IsNotFound(err) {
				return cmdErr(fmt.Errorf("version %s not found", args[0]), output.ErrNotFound)
			}
			return hostErr(fmt.Errorf("deleting version: %w", err))
		}

		w.Success(deleteResult{ID: args[0]}, fmt.Sprintf("Deleted version %s", args[0]))
		return nil
	},
}

func init() {
	versionCreateCmd.Flags().String("start", "", "Start date (YYYY-MM-DD)")
	versionCreateCmd.Flags().String("target", "", "Target date (YYYY-MM-DD)")
	versionEditCmd.Flags().String("name", "", "Version name")
	versionEditCmd.Flags().String("start", "", "Start date (YYYY-MM-DD)")
	versionEditCmd.Flags().String("target", "", "Target date (YYYY-MM-DD)")
	versionCmd.AddCommand(versionListCmd)
	versionCmd.AddCommand(versionCreateCmd)
	versionCmd.AddCommand(versionEditCmd)
	versionCmd.AddCommand(versionDeleteCmd)
	rootCmd.AddCommand(versionCmd)
}
