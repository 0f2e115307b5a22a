package githost

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// fileContent is the wire form of a single file from the contents API.
// Content is base64 with embedded newlines; Encoding is "base64" or "none"
// (the API declines to inline content past a size threshold).
type fileContent struct {
	Type     string `json:"type"`
	Name     string `json:"name"`
	Path     string `json:"path"`
	SHA      string `json:"sha"`
	Size     int64  `json:"size"`
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

// DirEntry is one entry from a directory listing via the contents API.
type DirEntry struct {
	Name string `json:"name"`
	Path string `json:"path"`
	SHA  string `json:"sha"`
	Size int64  `json:"size"`
	Type string `json:"type"` // "file" or "dir"
}

// commitResponse is the wire form of a contents-API write response.
type commitResponse struct {
	Content *struct {
		SHA  string `json:"sha"`
		Path string `json:"path"`
	} `json:"content"`
	Commit struct {
		SHA string `json:"sha"`
	} `json:"commit"`
}

// GetFile fetches one file's raw content and its current blob SHA. The ref
// may be a branch name or commit SHA; empty means the default branch.
//
// When the contents API declines to inline the content (large files), the
// returned bytes are empty while the SHA is still valid; callers fall back
// to GetBlob with that SHA.
func (client *Client) GetFile(ctx context.Context, owner, repo, path, ref string) ([]byte, string, error) {
	requestPath := fmt.Sprintf("/repos/%s/%s/contents/%s", owner, repo, escapePath(path))
	if ref != "" {
		requestPath += "?ref=" + url.QueryEscape(ref)
	}

	var file fileContent
	if err := client.get(ctx, requestPath, &file); err != nil {
		return nil, "", err
	}
	if file.Type != "" && file.Type != "file" {
		return nil, "", &Error{
			Kind:    KindMalformed,
			Message: fmt.Sprintf("%s is a %s, not a file", path, file.Type),
		}
	}

	if file.Content == "" {
		// Inline content withheld (size threshold) or genuinely empty.
		return nil, file.SHA, nil
	}

	content, err := decodeBase64(file.Content)
	if err != nil {
		return nil, "", malformedError("decoding content of "+path, err)
	}
	return content, file.SHA, nil
}

// PutFile creates or updates one file as a single commit on branch. An
// empty sha means the file must not exist yet; a non-empty sha must match
// the currently stored blob SHA or the write fails with Conflict. Returns
// the new blob SHA.
func (client *Client) PutFile(ctx context.Context, owner, repo, path string, content []byte, sha, branch, message string) (string, error) {
	requestPath := fmt.Sprintf("/repos/%s/%s/contents/%s", owner, repo, escapePath(path))

	request := struct {
		Message string `json:"message"`
		Content string `json:"content"`
		Branch  string `json:"branch,omitempty"`
		SHA     string `json:"sha,omitempty"`
	}{
		Message: message,
		Content: base64.StdEncoding.EncodeToString(content),
		Branch:  branch,
		SHA:     sha,
	}

	body, err := client.do(ctx, http.MethodPut, requestPath, request)
	if err != nil {
		return "", err
	}

	var response commitResponse
	if err := unmarshalResponse(body, &response, path); err != nil {
		return "", err
	}
	if response.Content == nil || response.Content.SHA == "" {
		return "", malformedError("writing "+path, fmt.Errorf("commit response missing content SHA"))
	}
	return response.Content.SHA, nil
}

// DeleteFile removes one file as a single commit on branch. The sha must
// match the currently stored blob SHA or the delete fails with Conflict.
func (client *Client) DeleteFile(ctx context.Context, owner, repo, path, sha, branch, message string) error {
	requestPath := fmt.Sprintf("/repos/%s/%s/contents/%s", owner, repo, escapePath(path))

	request := struct {
		Message string `json:"message"`
		SHA     string `json:"sha"`
		Branch  string `json:"branch,omitempty"`
	}{
		Message: message,
		SHA:     sha,
		Branch:  branch,
	}

	_, err := client.do(ctx, http.MethodDelete, requestPath, request)
	return err
}

// ListDir lists the immediate entries of a directory via the contents API.
func (client *Client) ListDir(ctx context.Context, owner, repo, path, ref string) ([]DirEntry, error) {
	requestPath := fmt.Sprintf("/repos/%s/%s/contents/%s", owner, repo, escapePath(path))
	if ref != "" {
		requestPath += "?ref=" + url.QueryEscape(ref)
	}

	var entries []DirEntry
	if err := client.get(ctx, requestPath, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// unmarshalResponse decodes a JSON response body, classifying failures as
// Malformed.
func unmarshalResponse(body []byte, result any, path string) error {
	if err := json.Unmarshal(body, result); err != nil {
		return malformedError("decoding response for "+path, err)
	}
	return nil
}

// decodeBase64 decodes contents-API base64, which embeds newlines.
func decodeBase64(encoded string) ([]byte, error) {
	cleaned := strings.ReplaceAll(encoded, "\n", "")
	return base64.StdEncoding.DecodeString(cleaned)
}

// escapePath URL-escapes each segment of a repository path while keeping
// the separating slashes.
func escapePath(path string) string {
	segments := strings.Split(path, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return strings.Join(segments, "/")
}
