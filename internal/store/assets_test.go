package store

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/tracketdev/tracket/internal/githost"
)

func TestUploadImage(t *testing.T) {
	st, host := newTestStore(t)

	name, err := st.UploadImage(context.Background(), "fix-login", "Screen Shot.PNG", []byte{1, 2, 3})
	if err != nil {
		t.Fatalf("UploadImage: %v", err)
	}
	if !strings.HasSuffix(name, "-screen-shot.png") {
		t.Errorf("name = %q, want sanitized lowercase suffix", name)
	}

	file, ok := host.get(".tracket/images/fix-login/" + name)
	if !ok {
		t.Fatal("image not committed")
	}
	if !bytes.Equal(file.content, []byte{1, 2, 3}) {
		t.Errorf("content = %v", file.content)
	}
}

func TestUploadImageNamesNeverCollide(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()

	first, err := st.UploadImage(ctx, "x", "shot.png", []byte{1})
	if err != nil {
		t.Fatalf("first UploadImage: %v", err)
	}
	second, err := st.UploadImage(ctx, "x", "shot.png", []byte{2})
	if err != nil {
		t.Fatalf("second UploadImage: %v", err)
	}
	if first == second {
		t.Errorf("both uploads produced %q", first)
	}
}

func TestUploadImageRejectsDisallowedTypeBeforeNetwork(t *testing.T) {
	st, host := newTestStore(t)

	_, err := st.UploadImage(context.Background(), "x", "photo.bmp", []byte{1})
	if err == nil {
		t.Fatal("expected error for .bmp upload")
	}
	if host.requestCount() != 0 {
		t.Errorf("%d requests made; the allow-list check must run before any network call", host.requestCount())
	}
}

func TestUploadImageRejectsEmptyContent(t *testing.T) {
	st, _ := newTestStore(t)
	if _, err := st.UploadImage(context.Background(), "x", "shot.png", nil); err == nil {
		t.Fatal("expected error for empty content")
	}
}

func TestFetchImage(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()

	name, err := st.UploadImage(ctx, "x", "shot.png", []byte{9, 8, 7})
	if err != nil {
		t.Fatalf("UploadImage: %v", err)
	}

	content, err := st.FetchImage(ctx, "x", name)
	if err != nil {
		t.Fatalf("FetchImage: %v", err)
	}
	if !bytes.Equal(content, []byte{9, 8, 7}) {
		t.Errorf("content = %v", content)
	}
}

func TestFetchImageBlobFallback(t *testing.T) {
	st, host := newTestStore(t)
	ctx := context.Background()

	name, err := st.UploadImage(ctx, "x", "big.png", []byte{4, 5, 6})
	if err != nil {
		t.Fatalf("UploadImage: %v", err)
	}
	// The contents API withholds inline content for large files; the
	// store must come back through the raw blob endpoint.
	host.withheld[".tracket/images/x/"+name] = true

	content, err := st.FetchImage(ctx, "x", name)
	if err != nil {
		t.Fatalf("FetchImage: %v", err)
	}
	if !bytes.Equal(content, []byte{4, 5, 6}) {
		t.Errorf("content = %v", content)
	}
}

func TestFetchImageNotFound(t *testing.T) {
	st, _ := newTestStore(t)
	_, err := st.FetchImage(context.Background(), "x", "missing.png")
	if !githost.IsNotFound(err) {
		t.Errorf("ErrorKind = %q, want not_found", githost.ErrorKind(err))
	}
}

func TestFetchImageUnavailableIsTerminal(t *testing.T) {
	st, host := newTestStore(t)
	ctx := context.Background()

	// A listed image whose content comes back empty through every path
	// must fail loudly, never return empty bytes as if they were the file.
	host.put(".tracket/images/x/1-ghost.png", nil)
	host.withheld[".tracket/images/x/1-ghost.png"] = true

	_, err := st.FetchImage(ctx, "x", "1-ghost.png")
	if !errors.Is(err, ErrAssetUnavailable) {
		t.Errorf("err = %v, want ErrAssetUnavailable", err)
	}
}

func TestListImages(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()

	names, err := st.ListImages(ctx, "x")
	if err != nil {
		t.Fatalf("ListImages: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("names = %v, want empty", names)
	}

	uploaded, err := st.UploadImage(ctx, "x", "shot.png", []byte{1})
	if err != nil {
		t.Fatalf("UploadImage: %v", err)
	}

	names, err = st.ListImages(ctx, "x")
	if err != nil {
		t.Fatalf("ListImages: %v", err)
	}
	if len(names) != 1 || names[0] != uploaded {
		t.Errorf("names = %v, want [%s]", names, uploaded)
	}
}

func TestDeleteImage(t *testing.T) {
	st, host := newTestStore(t)
	ctx := context.Background()

	name, err := st.UploadImage(ctx, "x", "shot.png", []byte{1})
	if err != nil {
		t.Fatalf("UploadImage: %v", err)
	}
	if err := st.DeleteImage(ctx, "x", name); err != nil {
		t.Fatalf("DeleteImage: %v", err)
	}
	if _, ok := host.get(".tracket/images/x/" + name); ok {
		t.Error("image still present after delete")
	}
}

func TestSanitizeImageName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Screen Shot 2026.png", "screen-shot-2026.png"},
		{"simple.png", "simple.png"},
		{"../../evil.png", "evil.png"},
		{"###", "image"},
	}
	for _, test := range tests {
		if got := sanitizeImageName(test.in); got != test.want {
			t.Errorf("sanitizeImageName(%q) = %q, want %q", test.in, got, test.want)
		}
	}
}
