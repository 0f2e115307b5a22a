package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tracketdev/tracket/internal/githost"
)

// whoamiResult is the JSON output structure for the whoami command.
type whoamiResult struct {
	Login         string   `json:"login"`
	Name          string   `json:"name,omitempty"`
	Repository    string   `json:"repository"`
	Branch        string   `json:"branch"`
	Push          bool     `json:"push"`
	Admin         bool     `json:"admin"`
	Collaborators []string `json:"collaborators,omitempty"`
	Forks         []string `json:"forks,omitempty"`
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the authenticated user and board access",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := getWriter(cmd)
		client := getClient(cmd)
		cfg := getCfg(cmd)
		st := getStore(cmd)

		user, err := client.GetAuthenticatedUser(cmd.Context())
		if err != nil {
			return hostErr(fmt.Errorf("fetching authenticated user: %w", err))
		}

		repository, err := client.GetRepository(cmd.Context(), cfg.Owner, cfg.Repo)
		if err != nil {
			return hostErr(fmt.Errorf("fetching repository: %w", err))
		}

		// Collaborator listing needs push permission; a Forbidden result
		// just means we skip that section.
		var collaborators []string
		if users, err := client.ListCollaborators(cmd.Context(), cfg.Owner, cfg.Repo); err == nil {
			for _, u := range users {
				collaborators = append(collaborators, u.Login)
			}
		} else if !githost.IsForbidden(err) && !githost.IsNotFound(err) {
			w.Warn("could not list collaborators: %v", err)
		}

		var forks []string
		if showForks, _ := cmd.Flags().GetBool("forks"); showForks {
			repos, err := client.ListForks(cmd.Context(), cfg.Owner, cfg.Repo)
			if err != nil {
				return hostErr(fmt.Errorf("listing forks: %w", err))
			}
			for _, fork := range repos {
				forks = append(forks, fork.FullName)
			}
		}

		result := whoamiResult{
			Login:         user.Login,
			Name:          user.Name,
			Repository:    repository.FullName,
			Branch:        st.Branch(),
			Push:          repository.Permissions.Push,
			Admin:         repository.Permissions.Admin,
			Collaborators: collaborators,
			Forks:         forks,
		}

		if w.JSONMode {
			w.Success(result, "")
			return nil
		}

		var b strings.Builder
		fmt.Fprintf(&b, "Logged in as %s", user.Login)
		if user.Name != "" {
			fmt.Fprintf(&b, " (%s)", user.Name)
		}
		fmt.Fprintf(&b, "\nBoard: %s @ %s", repository.FullName, st.Branch())
		access := "read-only"
		if repository.Permissions.Push {
			access = "read-write"
		}
		if repository.Permissions.Admin {
			access = "admin"
		}
		fmt.Fprintf(&b, "\nAccess: %s", access)
		if len(collaborators) > 0 {
			fmt.Fprintf(&b, "\nCollaborators: %s", strings.Join(collaborators, ", "))
		}
		if len(forks) > 0 {
			fmt.Fprintf(&b, "\nForks: %s", strings.Join(forks, ", "))
		}

		w.Success(result, b.String())
		return nil
	},
}

func init() {
	whoamiCmd.Flags().Bool("forks", false, "Also list forks of the board repository")
	rootCmd.AddCommand(whoamiCmd)
}
