package store

import (
	"context"
	"testing"

	"github.com/tracketdev/tracket/internal/githost"
	"github.com/tracketdev/tracket/internal/model"
)

func TestListVersionsEmpty(t *testing.T) {
	st, _ := newTestStore(t)
	versions, err := st.ListVersions(context.Background())
	if err != nil {
		t.Fatalf("ListVersions: %v", err)
	}
	if len(versions) != 0 {
		t.Errorf("versions = %+v, want empty", versions)
	}
}

func TestCreateVersion(t *testing.T) {
	st, host := newTestStore(t)
	ctx := context.Background()

	created, err := st.CreateVersion(ctx, "Sprint 1", "2026-08-01", "2026-08-15")
	if err != nil {
		t.Fatalf("CreateVersion: %v", err)
	}
	if created.ID == "" {
		t.Error("no id generated")
	}
	if created.CreatedAt.IsZero() {
		t.Error("no creation time assigned")
	}
	if _, ok := host.get(".tracket/versions.yml"); !ok {
		t.Error("versions record not committed")
	}

	second, err := st.CreateVersion(ctx, "Sprint 2", "", "")
	if err != nil {
		t.Fatalf("second CreateVersion: %v", err)
	}
	if second.ID == created.ID {
		t.Error("generated ids collide")
	}

	versions, err := st.ListVersions(ctx)
	if err != nil {
		t.Fatalf("ListVersions: %v", err)
	}
	if len(versions) != 2 {
		t.Fatalf("len = %d, want 2", len(versions))
	}
	if versions[0].Name != "Sprint 1" || versions[1].Name != "Sprint 2" {
		t.Errorf("versions = %+v", versions)
	}
}

func TestCreateVersionRequiresName(t *testing.T) {
	st, _ := newTestStore(t)
	if _, err := st.CreateVersion(context.Background(), "  ", "", ""); err == nil {
		t.Fatal("expected error for blank name")
	}
}

func TestUpdateVersionPreservesCreatedAt(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()

	created, err := st.CreateVersion(ctx, "Sprint 1", "", "")
	if err != nil {
		t.Fatalf("CreateVersion: %v", err)
	}

	err = st.UpdateVersion(ctx, model.Version{ID: created.ID, Name: "Sprint 1 (extended)", TargetDate: "2026-08-20"})
	if err != nil {
		t.Fatalf("UpdateVersion: %v", err)
	}

	versions, err := st.ListVersions(ctx)
	if err != nil {
		t.Fatalf("ListVersions: %v", err)
	}
	if versions[0].Name != "Sprint 1 (extended)" {
		t.Errorf("Name = %q", versions[0].Name)
	}
	if !versions[0].CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("CreatedAt changed: %v, want %v", versions[0].CreatedAt, created.CreatedAt)
	}
}

func TestUpdateVersionNotFound(t *testing.T) {
	st, _ := newTestStore(t)
	err := st.UpdateVersion(context.Background(), model.Version{ID: "nope", Name: "X"})
	if !githost.IsNotFound(err) {
		t.Errorf("ErrorKind = %q, want not_found", githost.ErrorKind(err))
	}
}

func TestDeleteVersion(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()

	keep, err := st.CreateVersion(ctx, "Keep", "", "")
	if err != nil {
		t.Fatalf("CreateVersion: %v", err)
	}
	drop, err := st.CreateVersion(ctx, "Drop", "", "")
	if err != nil {
		t.Fatalf("CreateVersion: %v", err)
	}

	if err := st.DeleteVersion(ctx, drop.ID); err != nil {
		t.Fatalf("DeleteVersion: %v", err)
	}

	versions, err := st.ListVersions(ctx)
	if err != nil {
		t.Fatalf("ListVersions: %v", err)
	}
	if len(versions) != 1 || versions[0].ID != keep.ID {
		t.Errorf("versions = %+v", versions)
	}
}

func TestDeleteVersionNotFound(t *testing.T) {
	st, _ := newTestStore(t)
	err := st.DeleteVersion(context.Background(), "nope")
	if !githost.IsNotFound(err) {
		t.Errorf("ErrorKind = %q, want not_found", githost.ErrorKind(err))
	}
}

func TestVersionWriteRaceIsConflict(t *testing.T) {
	st, host := newTestStore(t)
	ctx := context.Background()

	created, err := st.CreateVersion(ctx, "Sprint 1", "", "")
	if err != nil {
		t.Fatalf("CreateVersion: %v", err)
	}

	// Another session rewrites the record between this session's read and
	// its gated write.
	host.prePut = func(path string) {
		if path == ".tracket/versions.yml" {
			host.putLocked(path, []byte("versions: []\n"))
			host.prePut = nil
		}
	}

	err = st.UpdateVersion(ctx, model.Version{ID: created.ID, Name: "Renamed"})
	if !githost.IsConflict(err) {
		t.Errorf("ErrorKind = %q, want conflict", githost.ErrorKind(err))
	}
}
