package githost

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetFile(t *testing.T) {
	content := base64.StdEncoding.EncodeToString([]byte("title: Fix login\n"))
	server := httptest.NewTLSServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.URL.Path != "/repos/owner/repo/contents/.tracket/tickets/fix-login.yml" {
			t.Errorf("unexpected path %q", request.URL.Path)
		}
		if got := request.URL.Query().Get("ref"); got != "main" {
			t.Errorf("ref = %q, want %q", got, "main")
		}
		writer.Header().Set("Content-Type", "application/json")
		json.NewEncoder(writer).Encode(map[string]any{
			"type":     "file",
			"sha":      "abc123",
			"content":  content,
			"encoding": "base64",
		})
	}))
	defer server.Close()

	client := newTestClient(t, server)
	data, sha, err := client.GetFile(context.Background(), "owner", "repo", ".tracket/tickets/fix-login.yml", "main")
	if err != nil {
		t.Fatalf("GetFile: %v", err)
	}
	if string(data) != "title: Fix login\n" {
		t.Errorf("content = %q", data)
	}
	if sha != "abc123" {
		t.Errorf("sha = %q, want %q", sha, "abc123")
	}
}

func TestGetFile_NewlinesInBase64(t *testing.T) {
	// The contents API wraps base64 with embedded newlines.
	encoded := base64.StdEncoding.EncodeToString([]byte("hello world"))
	wrapped := encoded[:8] + "\n" + encoded[8:] + "\n"
	server := httptest.NewTLSServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		json.NewEncoder(writer).Encode(map[string]any{
			"type":     "file",
			"sha":      "abc",
			"content":  wrapped,
			"encoding": "base64",
		})
	}))
	defer server.Close()

	client := newTestClient(t, server)
	data, _, err := client.GetFile(context.Background(), "owner", "repo", "x.yml", "")
	if err != nil {
		t.Fatalf("GetFile: %v", err)
	}
	if string(data) != "hello world" {
		t.Errorf("content = %q, want %q", data, "hello world")
	}
}

func TestGetFile_LargeFileReturnsSHAOnly(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		json.NewEncoder(writer).Encode(map[string]any{
			"type":     "file",
			"sha":      "bigsha",
			"size":     5 << 20,
			"content":  "",
			"encoding": "none",
		})
	}))
	defer server.Close()

	client := newTestClient(t, server)
	data, sha, err := client.GetFile(context.Background(), "owner", "repo", "big.png", "main")
	if err != nil {
		t.Fatalf("GetFile: %v", err)
	}
	if len(data) != 0 {
		t.Errorf("expected empty content, got %d bytes", len(data))
	}
	if sha != "bigsha" {
		t.Errorf("sha = %q, want %q", sha, "bigsha")
	}
}

func TestGetFile_DirectoryIsMalformed(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		json.NewEncoder(writer).Encode(map[string]any{"type": "dir", "sha": "x"})
	}))
	defer server.Close()

	client := newTestClient(t, server)
	_, _, err := client.GetFile(context.Background(), "owner", "repo", "tickets", "main")
	if !IsMalformed(err) {
		t.Errorf("ErrorKind = %q, want %q", ErrorKind(err), KindMalformed)
	}
}

func TestPutFile_CreateOmitsSHA(t *testing.T) {
	var body map[string]any
	server := httptest.NewTLSServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.Method != http.MethodPut {
			t.Errorf("method = %q, want PUT", request.Method)
		}
		json.NewDecoder(request.Body).Decode(&body)
		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(http.StatusCreated)
		writer.Write([]byte(`{"content":{"sha":"newsha","path":"x.yml"},"commit":{"sha":"c1"}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	sha, err := client.PutFile(context.Background(), "owner", "repo", "x.yml", []byte("data"), "", "main", "Create x")
	if err != nil {
		t.Fatalf("PutFile: %v", err)
	}
	if sha != "newsha" {
		t.Errorf("sha = %q, want %q", sha, "newsha")
	}

	if _, present := body["sha"]; present {
		t.Error("create request must not carry a sha field")
	}
	if body["branch"] != "main" {
		t.Errorf("branch = %v, want main", body["branch"])
	}
	decoded, err := base64.StdEncoding.DecodeString(body["content"].(string))
	if err != nil || string(decoded) != "data" {
		t.Errorf("content = %v", body["content"])
	}
}

func TestPutFile_UpdateSendsSHA(t *testing.T) {
	var body map[string]any
	server := httptest.NewTLSServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		json.NewDecoder(request.Body).Decode(&body)
		writer.Header().Set("Content-Type", "application/json")
		writer.Write([]byte(`{"content":{"sha":"v2"},"commit":{"sha":"c2"}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	if _, err := client.PutFile(context.Background(), "owner", "repo", "x.yml", []byte("data"), "v1", "main", "Update x"); err != nil {
		t.Fatalf("PutFile: %v", err)
	}
	if body["sha"] != "v1" {
		t.Errorf("sha = %v, want v1", body["sha"])
	}
}

func TestPutFile_StaleSHAIsConflict(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusConflict)
		writer.Write([]byte(`{"message":"x.yml does not match"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	_, err := client.PutFile(context.Background(), "owner", "repo", "x.yml", []byte("data"), "stale", "main", "Update x")
	if !IsConflict(err) {
		t.Errorf("ErrorKind = %q, want %q", ErrorKind(err), KindConflict)
	}
}

func TestDeleteFile(t *testing.T) {
	var body map[string]any
	server := httptest.NewTLSServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.Method != http.MethodDelete {
			t.Errorf("method = %q, want DELETE", request.Method)
		}
		json.NewDecoder(request.Body).Decode(&body)
		writer.Header().Set("Content-Type", "application/json")
		writer.Write([]byte(`{"commit":{"sha":"c3"}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	if err := client.DeleteFile(context.Background(), "owner", "repo", "x.yml", "v1", "main", "Delete x"); err != nil {
		t.Fatalf("DeleteFile: %v", err)
	}
	if body["sha"] != "v1" {
		t.Errorf("sha = %v, want v1", body["sha"])
	}
}

func TestListDir(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		writer.Write([]byte(`[
			{"name":"a.yml","path":"tickets/a.yml","sha":"s1","type":"file"},
			{"name":"sub","path":"tickets/sub","sha":"s2","type":"dir"}
		]`))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	entries, err := client.ListDir(context.Background(), "owner", "repo", "tickets", "main")
	if err != nil {
		t.Fatalf("ListDir: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len = %d, want 2", len(entries))
	}
	if entries[0].Name != "a.yml" || entries[0].Type != "file" {
		t.Errorf("entry 0 = %+v", entries[0])
	}
}

func TestEscapePath(t *testing.T) {
	got := escapePath(".tracket/tickets/fix login.yml")
	want := ".tracket/tickets/fix%20login.yml"
	if got != want {
		t.Errorf("escapePath = %q, want %q", got, want)
	}
}
