package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Seed the board configuration on the remote branch",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := getWriter(cmd)
		st := getStore(cmd)
		force, _ := cmd.Flags().GetBool("force")

		exists, err := st.ConfigExists(cmd.Context())
		if err != nil {
			return hostErr(fmt.Errorf("checking board config: %w", err))
		}

		if exists && !force {
			w.Warn("Board already initialized in %s on %s (use --force to reseed defaults)", st.Coordinate(), st.Branch())
			w.Success(struct {
				Repository string `json:"repository"`
				Branch     string `json:"branch"`
				Created    bool   `json:"created"`
			}{
				Repository: st.Coordinate(),
				Branch:     st.Branch(),
				Created:    false,
			}, "Board already initialized")
			return nil
		}

		if err := st.InitializeConfig(cmd.Context()); err != nil {
			return hostErr(fmt.Errorf("seeding board config: %w", err))
		}

		w.Success(struct {
			Repository string `json:"repository"`
			Branch     string `json:"branch"`
			Created    bool   `json:"created"`
		}{
			Repository: st.Coordinate(),
			Branch:     st.Branch(),
			Created:    true,
		}, fmt.Sprintf("Initialized board in %s on %s", st.Coordinate(), st.Branch()))

		return nil
	},
}

func init() {
	initCmd.Flags().Bool("force", false, "Reseed defaults even if the board already exists")
	rootCmd.AddCommand(initCmd)
}
