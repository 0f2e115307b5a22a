package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tracketdev/tracket/internal/config"
	"github.com/tracketdev/tracket/internal/githost"
	"github.com/tracketdev/tracket/internal/output"
	"github.com/tracketdev/tracket/internal/store"
)

var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

type contextKey string

const (
	cfgKey    contextKey = "cfg"
	clientKey contextKey = "client"
	storeKey  contextKey = "store"
)

// CmdError wraps an error with a machine-readable error code for structured output.
type CmdError struct {
	Err  error
	Code output.ErrorCode
}

func (e *CmdError) Error() string { return e.Err.Error() }

func cmdErr(err error, code output.ErrorCode) *CmdError {
	return &CmdError{Err: err, Code: code}
}

// hostErr wraps a githost failure with the output code matching its
// classification, so exit codes track the error taxonomy.
func hostErr(err error) *CmdError {
	switch githost.ErrorKind(err) {
	case githost.KindNotFound:
		return cmdErr(err, output.ErrNotFound)
	case githost.KindUnauthorized:
		return cmdErr(err, output.ErrUnauthorized)
	case githost.KindForbidden:
		return cmdErr(err, output.ErrForbidden)
	case githost.KindConflict:
		return cmdErr(err, output.ErrConflict)
	case githost.KindUnavailable:
		return cmdErr(err, output.ErrUnavailable)
	default:
		return cmdErr(err, output.ErrGeneral)
	}
}

var rootCmd = &cobra.Command{
	Use:     "tracket",
	Short:   "Ticket board stored in a git repository",
	Long:    "tracket manages a ticket board whose records live as YAML files on a branch of a GitHub repository; every change is a commit.",
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Resolve()
		if err != nil {
			return cmdErr(err, output.ErrValidation)
		}

		client, err := githost.NewClient(githost.Config{Token: cfg.Token})
		if err != nil {
			return cmdErr(err, output.ErrValidation)
		}

		ctx := context.WithValue(cmd.Context(), cfgKey, cfg)
		ctx = context.WithValue(ctx, clientKey, client)

		if _, ok := cmd.Annotations["skipStore"]; ok {
			cmd.SetContext(ctx)
			return nil
		}

		branch := cfg.Branch
		if branch == "" {
			repository, err := client.GetRepository(ctx, cfg.Owner, cfg.Repo)
			if err != nil {
				return hostErr(fmt.Errorf("resolving default branch: %w", err))
			}
			branch = repository.DefaultBranch
		}

		st, err := store.New(client, store.Options{
			Owner:  cfg.Owner,
			Repo:   cfg.Repo,
			Branch: branch,
			Root:   cfg.Root,
		})
		if err != nil {
			return cmdErr(err, output.ErrValidation)
		}

		cmd.SetContext(context.WithValue(ctx, storeKey, st))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress non-essential output")
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func getWriter(cmd *cobra.Command) *output.Writer {
	jsonMode, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	return output.New(jsonMode, quietMode)
}

func getCfg(cmd *cobra.Command) *config.Config {
	cfg, _ := cmd.Context().Value(cfgKey).(*config.Config)
	return cfg
}

func getClient(cmd *cobra.Command) *githost.Client {
	client, _ := cmd.Context().Value(clientKey).(*githost.Client)
	return client
}

func getStore(cmd *cobra.Command) *store.Store {
	st, _ := cmd.Context().Value(storeKey).(*store.Store)
	return st
}

// Execute runs the root command and returns an exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		jsonMode, _ := rootCmd.PersistentFlags().GetBool("json")
		quietMode, _ := rootCmd.PersistentFlags().GetBool("quiet")
		w := output.New(jsonMode, quietMode)

		var ce *CmdError
		if errors.As(err, &ce) {
			return w.Error(ce.Err, ce.Code)
		}
		return w.Error(err, output.ErrGeneral)
	}
	return 0
}
