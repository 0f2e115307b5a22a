package githost

import (
	"context"
	"fmt"
	"net/url"
)

// Tree is a recursive git tree listing. Truncated is set when the host
// capped the entry count; callers must surface it rather than silently
// working from a partial listing.
type Tree struct {
	SHA       string      `json:"sha"`
	Truncated bool        `json:"truncated"`
	Entries   []TreeEntry `json:"tree"`
}

// TreeEntry is a single entry in a git tree.
type TreeEntry struct {
	Path string `json:"path"`
	Mode string `json:"mode"`
	Type string `json:"type"` // "blob" or "tree"
	SHA  string `json:"sha"`
	Size int64  `json:"size,omitempty"`
}

// ref is the wire form of a git reference.
type ref struct {
	Ref    string `json:"ref"`
	Object struct {
		SHA  string `json:"sha"`
		Type string `json:"type"`
	} `json:"object"`
}

// blob is the wire form of a git blob object.
type blob struct {
	SHA      string `json:"sha"`
	Size     int64  `json:"size"`
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

// ResolveBranch returns the commit SHA a branch currently points to.
func (client *Client) ResolveBranch(ctx context.Context, owner, repo, branch string) (string, error) {
	path := fmt.Sprintf("/repos/%s/%s/git/ref/heads/%s", owner, repo, url.PathEscape(branch))

	var reference ref
	if err := client.get(ctx, path, &reference); err != nil {
		return "", err
	}
	if reference.Object.SHA == "" {
		return "", malformedError("resolving branch "+branch, fmt.Errorf("ref response missing object SHA"))
	}
	return reference.Object.SHA, nil
}

// ListTree resolves branch to its head commit and returns the full
// recursive tree. This is one API call for arbitrarily many files, which is
// why bulk enumeration goes through it instead of per-directory listings.
func (client *Client) ListTree(ctx context.Context, owner, repo, branch string) (*Tree, error) {
	commitSHA, err := client.ResolveBranch(ctx, owner, repo, branch)
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/repos/%s/%s/git/trees/%s?recursive=1", owner, repo, commitSHA)

	var tree Tree
	if err := client.get(ctx, path, &tree); err != nil {
		return nil, err
	}
	return &tree, nil
}

// GetBlob fetches raw blob content by SHA. This is the fallback for files
// whose content the contents API declines to inline.
func (client *Client) GetBlob(ctx context.Context, owner, repo, sha string) ([]byte, error) {
	path := fmt.Sprintf("/repos/%s/%s/git/blobs/%s", owner, repo, sha)

	var object blob
	if err := client.get(ctx, path, &object); err != nil {
		return nil, err
	}

	content, err := decodeBase64(object.Content)
	if err != nil {
		return nil, malformedError("decoding blob "+sha, err)
	}
	return content, nil
}
