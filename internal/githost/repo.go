package githost

import (
	"context"
	"fmt"
)

// User is a git host user reference.
type User struct {
	Login     string `json:"login"`
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
	HTMLURL   string `json:"html_url"`
}

// Repository is git host repository metadata.
type Repository struct {
	Name          string                `json:"name"`
	FullName      string                `json:"full_name"`
	DefaultBranch string                `json:"default_branch"`
	Fork          bool                  `json:"fork"`
	Private       bool                  `json:"private"`
	Owner         User                  `json:"owner"`
	Permissions   RepositoryPermissions `json:"permissions"`
}

// RepositoryPermissions are the caller's effective permissions on a
// repository, as reported for the authenticated token.
type RepositoryPermissions struct {
	Admin bool `json:"admin"`
	Push  bool `json:"push"`
	Pull  bool `json:"pull"`
}

// GetRepository fetches repository metadata, including the default branch
// and whether the token can push.
func (client *Client) GetRepository(ctx context.Context, owner, repo string) (*Repository, error) {
	var repository Repository
	path := fmt.Sprintf("/repos/%s/%s", owner, repo)
	if err := client.get(ctx, path, &repository); err != nil {
		return nil, err
	}
	return &repository, nil
}

// GetAuthenticatedUser fetches the profile of the token's user.
func (client *Client) GetAuthenticatedUser(ctx context.Context) (*User, error) {
	var user User
	if err := client.get(ctx, "/user", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListCollaborators lists the repository's collaborators. Requires push
// permission on most repositories; a Forbidden error degrades gracefully
// at the caller.
func (client *Client) ListCollaborators(ctx context.Context, owner, repo string) ([]User, error) {
	var users []User
	path := fmt.Sprintf("/repos/%s/%s/collaborators?per_page=100", owner, repo)
	if err := client.get(ctx, path, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ListForks lists forks of the repository. Unlike collaborators this needs
// only read access, so it works against boards the token cannot push to.
func (client *Client) ListForks(ctx context.Context, owner, repo string) ([]Repository, error) {
	var forks []Repository
	path := fmt.Sprintf("/repos/%s/%s/forks?per_page=100", owner, repo)
	if err := client.get(ctx, path, &forks); err != nil {
		return nil, err
	}
	return forks, nil
}
