package store

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/tracketdev/tracket/internal/githost"
)

// fakeHost is an in-memory rendition of the GitHub endpoints the store
// uses: the contents API with blob-SHA gating, branch ref resolution, the
// recursive tree listing, and raw blob reads.
type fakeHost struct {
	mu       sync.Mutex
	files    map[string]*fakeFile
	nextSHA  int
	requests int

	// truncated is reported on tree listings.
	truncated bool

	// withheld paths answer contents-API reads with a SHA but no inline
	// content, the way the real API treats large files.
	withheld map[string]bool

	// prePut runs before a PUT is applied, letting tests move a file out
	// from under a gated write.
	prePut func(path string)

	server *httptest.Server
}

type fakeFile struct {
	content []byte
	sha     string
}

func newFakeHost(t *testing.T) *fakeHost {
	t.Helper()
	host := &fakeHost{
		files:    make(map[string]*fakeFile),
		withheld: make(map[string]bool),
	}
	host.server = httptest.NewTLSServer(http.HandlerFunc(host.handle))
	t.Cleanup(host.server.Close)
	return host
}

// put stores a file directly, bypassing the API. Returns the blob SHA.
func (h *fakeHost) put(path string, content []byte) string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.putLocked(path, content)
}

func (h *fakeHost) putLocked(path string, content []byte) string {
	h.nextSHA++
	sha := fmt.Sprintf("sha-%d", h.nextSHA)
	h.files[path] = &fakeFile{content: content, sha: sha}
	return sha
}

func (h *fakeHost) get(path string) (*fakeFile, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	file, ok := h.files[path]
	return file, ok
}

func (h *fakeHost) requestCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.requests
}

func (h *fakeHost) handle(writer http.ResponseWriter, request *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.requests++

	parts := strings.SplitN(strings.TrimPrefix(request.URL.Path, "/repos/owner/repo/"), "/", 2)
	if len(parts) != 2 {
		notFound(writer)
		return
	}
	kind, rest := parts[0], parts[1]

	switch {
	case kind == "contents":
		h.handleContents(writer, request, rest)
	case kind == "git" && strings.HasPrefix(rest, "ref/heads/"):
		writeJSON(writer, http.StatusOK, map[string]any{
			"ref":    "refs/heads/" + strings.TrimPrefix(rest, "ref/heads/"),
			"object": map[string]any{"sha": "head", "type": "commit"},
		})
	case kind == "git" && strings.HasPrefix(rest, "trees/"):
		h.handleTree(writer)
	case kind == "git" && strings.HasPrefix(rest, "blobs/"):
		h.handleBlob(writer, strings.TrimPrefix(rest, "blobs/"))
	default:
		notFound(writer)
	}
}

func (h *fakeHost) handleContents(writer http.ResponseWriter, request *http.Request, path string) {
	switch request.Method {
	case http.MethodGet:
		if file, ok := h.files[path]; ok {
			content := base64.StdEncoding.EncodeToString(file.content)
			if h.withheld[path] {
				content = ""
			}
			writeJSON(writer, http.StatusOK, map[string]any{
				"type":     "file",
				"name":     path[strings.LastIndex(path, "/")+1:],
				"path":     path,
				"sha":      file.sha,
				"size":     len(file.content),
				"content":  content,
				"encoding": "base64",
			})
			return
		}

		// Directory listing: immediate children of path.
		prefix := path + "/"
		seen := map[string]bool{}
		var entries []map[string]any
		var names []string
		for filePath := range h.files {
			if !strings.HasPrefix(filePath, prefix) {
				continue
			}
			child := strings.SplitN(strings.TrimPrefix(filePath, prefix), "/", 2)[0]
			if !seen[child] {
				seen[child] = true
				names = append(names, child)
			}
		}
		if len(names) == 0 {
			notFound(writer)
			return
		}
		sort.Strings(names)
		for _, name := range names {
			entryType := "file"
			sha := ""
			if file, ok := h.files[prefix+name]; ok {
				sha = file.sha
			} else {
				entryType = "dir"
			}
			entries = append(entries, map[string]any{
				"name": name,
				"path": prefix + name,
				"sha":  sha,
				"type": entryType,
			})
		}
		writeJSON(writer, http.StatusOK, entries)

	case http.MethodPut:
		var body struct {
			Message string `json:"message"`
			Content string `json:"content"`
			Branch  string `json:"branch"`
			SHA     string `json:"sha"`
		}
		raw, _ := io.ReadAll(request.Body)
		if err := json.Unmarshal(raw, &body); err != nil {
			writeJSON(writer, http.StatusBadRequest, map[string]any{"message": "bad body"})
			return
		}

		if h.prePut != nil {
			h.prePut(path)
		}

		existing, exists := h.files[path]
		if body.SHA == "" && exists {
			writeJSON(writer, http.StatusUnprocessableEntity, map[string]any{"message": `"sha" wasn't supplied`})
			return
		}
		if body.SHA != "" && (!exists || existing.sha != body.SHA) {
			writeJSON(writer, http.StatusConflict, map[string]any{"message": path + " does not match"})
			return
		}

		content, err := base64.StdEncoding.DecodeString(body.Content)
		if err != nil {
			writeJSON(writer, http.StatusBadRequest, map[string]any{"message": "bad content"})
			return
		}
		sha := h.putLocked(path, content)
		status := http.StatusOK
		if !exists {
			status = http.StatusCreated
		}
		writeJSON(writer, status, map[string]any{
			"content": map[string]any{"sha": sha, "path": path},
			"commit":  map[string]any{"sha": "commit-" + sha},
		})

	case http.MethodDelete:
		var body struct {
			SHA string `json:"sha"`
		}
		raw, _ := io.ReadAll(request.Body)
		json.Unmarshal(raw, &body)

		existing, exists := h.files[path]
		if !exists {
			notFound(writer)
			return
		}
		if existing.sha != body.SHA {
			writeJSON(writer, http.StatusConflict, map[string]any{"message": path + " does not match"})
			return
		}
		delete(h.files, path)
		writeJSON(writer, http.StatusOK, map[string]any{"commit": map[string]any{"sha": "commit-del"}})

	default:
		writeJSON(writer, http.StatusMethodNotAllowed, map[string]any{"message": "method not allowed"})
	}
}

func (h *fakeHost) handleTree(writer http.ResponseWriter) {
	var paths []string
	for path := range h.files {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	entries := []map[string]any{}
	for _, path := range paths {
		entries = append(entries, map[string]any{
			"path": path,
			"mode": "100644",
			"type": "blob",
			"sha":  h.files[path].sha,
		})
	}
	writeJSON(writer, http.StatusOK, map[string]any{
		"sha":       "head",
		"truncated": h.truncated,
		"tree":      entries,
	})
}

func (h *fakeHost) handleBlob(writer http.ResponseWriter, sha string) {
	for _, file := range h.files {
		if file.sha == sha {
			writeJSON(writer, http.StatusOK, map[string]any{
				"sha":      sha,
				"size":     len(file.content),
				"content":  base64.StdEncoding.EncodeToString(file.content),
				"encoding": "base64",
			})
			return
		}
	}
	notFound(writer)
}

func writeJSON(writer http.ResponseWriter, status int, value any) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	json.NewEncoder(writer).Encode(value)
}

func notFound(writer http.ResponseWriter) {
	writeJSON(writer, http.StatusNotFound, map[string]any{"message": "Not Found"})
}

// newTestStore creates a Store backed by a fresh fake host.
func newTestStore(t *testing.T) (*Store, *fakeHost) {
	t.Helper()
	host := newFakeHost(t)

	client, err := githost.NewClient(githost.Config{
		BaseURL:    host.server.URL,
		Token:      "test-token",
		HTTPClient: host.server.Client(),
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	st, err := New(client, Options{
		Owner:  "owner",
		Repo:   "repo",
		Branch: "main",
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return st, host
}
