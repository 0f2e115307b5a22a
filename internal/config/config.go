package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables consulted by Resolve. TRACKET_TOKEN wins over
// GITHUB_TOKEN so a board-specific token can coexist with a general one.
const (
	EnvRepo   = "TRACKET_REPO"
	EnvBranch = "TRACKET_BRANCH"
	EnvRoot   = "TRACKET_ROOT"
	EnvToken  = "TRACKET_TOKEN"

	envFallbackToken = "GITHUB_TOKEN"
)

// Config holds the resolved repository coordinate and credential. It is
// plain data handed to the client and store; neither of those ever reads
// the environment themselves.
type Config struct {
	Owner  string
	Repo   string
	Branch string // empty means the repository's default branch
	Root   string // empty means the store's default config root
	Token  string
}

// Resolve reads the deployment pointer from the environment. A .env file
// in the working directory is loaded first, if present, so a checkout can
// pin its own board coordinate; real environment variables win over the
// file.
func Resolve() (*Config, error) {
	// godotenv never overrides variables that are already set.
	_ = godotenv.Load()

	coordinate := os.Getenv(EnvRepo)
	if coordinate == "" {
		return nil, fmt.Errorf("%s is not set (expected \"owner/repo\")", EnvRepo)
	}
	owner, repo, err := SplitCoordinate(coordinate)
	if err != nil {
		return nil, err
	}

	token := os.Getenv(EnvToken)
	if token == "" {
		token = os.Getenv(envFallbackToken)
	}
	if token == "" {
		return nil, fmt.Errorf("no token found: set %s or %s", EnvToken, envFallbackToken)
	}

	return &Config{
		Owner:  owner,
		Repo:   repo,
		Branch: os.Getenv(EnvBranch),
		Root:   os.Getenv(EnvRoot),
		Token:  token,
	}, nil
}

// SplitCoordinate parses an "owner/repo" coordinate.
func SplitCoordinate(coordinate string) (owner, repo string, err error) {
	parts := strings.Split(strings.TrimSpace(coordinate), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository coordinate %q (expected \"owner/repo\")", coordinate)
	}
	return parts[0], parts[1], nil
}
