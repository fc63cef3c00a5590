package userstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"movie-trends-dashboard/internal/models"
)

func newTestStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "users.json")
	s, err := NewFileStore(path)
	if err != nil {
		t.Fatal(err)
	}
	return s, path
}

func TestNewFileStore_SeedsAdmin(t *testing.T) {
	s, path := newTestStore(t)

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected the store file to exist: %v", err)
	}

	admin, err := s.Get("admin")
	if err != nil {
		t.Fatal(err)
	}
	if admin.Password != "123" || admin.FullName != "Admin User" {
		t.Fatalf("unexpected seeded admin: %+v", admin)
	}
	if admin.MovieChecklist == nil || admin.Notifications == nil {
		t.Fatal("seeded admin must have non-nil checklist and notifications")
	}
}

func TestNewFileStore_DoesNotOverwriteExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	existing := `{"alice":{"password":"pw","full_name":"Alice","dob":null,"email":"","avatar_path":null,"movie_checklist":{},"notifications":[]}}`
	if err := os.WriteFile(path, []byte(existing), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := NewFileStore(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Get("alice"); err != nil {
		t.Fatalf("expected alice to survive reopening: %v", err)
	}
	if _, err := s.Get("admin"); err != ErrNotFound {
		t.Fatalf("expected no admin seeded into an existing file, got %v", err)
	}
}

func TestGet_NotFound(t *testing.T) {
	s, _ := newTestStore(t)

	if _, err := s.Get("nobody"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPut_PersistsAcrossReopen(t *testing.T) {
	s, path := newTestStore(t)

	record := models.UserRecord{
		Password:       "secret",
		FullName:       "Bob",
		MovieChecklist: map[string]models.ChecklistEntry{},
		Notifications:  []models.Notification{},
	}
	if err := s.Put("bob", record); err != nil {
		t.Fatal(err)
	}

	reopened, err := NewFileStore(path)
	if err != nil {
		t.Fatal(err)
	}
	got, err := reopened.Get("bob")
	if err != nil {
		t.Fatal(err)
	}
	if got.Password != "secret" || got.FullName != "Bob" {
		t.Fatalf("unexpected record after reopen: %+v", got)
	}
}

func TestDelete(t *testing.T) {
	s, _ := newTestStore(t)

	if err := s.Put("bob", models.UserRecord{Password: "pw"}); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete("bob"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Get("bob"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	// Deleting an absent user is a no-op.
	if err := s.Delete("nobody"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestLoad_MigratesOldRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	// An old-format record without checklist or notification fields.
	old := `{"carol":{"password":"pw","full_name":"Carol","dob":null,"email":"c@example.com","avatar_path":null}}`
	if err := os.WriteFile(path, []byte(old), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := NewFileStore(path)
	if err != nil {
		t.Fatal(err)
	}
	carol, err := s.Get("carol")
	if err != nil {
		t.Fatal(err)
	}
	if carol.MovieChecklist == nil {
		t.Fatal("expected checklist to be back-filled")
	}
	if carol.Notifications == nil {
		t.Fatal("expected notifications to be back-filled")
	}
}

func TestSave_LeavesNoTempFile(t *testing.T) {
	s, path := newTestStore(t)

	if err := s.Save(map[string]models.UserRecord{"admin": seedAdmin()}); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("expected the temp file to be renamed away, got %v", err)
	}

	// The written file is valid JSON.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var records map[string]models.UserRecord
	if err := json.Unmarshal(data, &records); err != nil {
		t.Fatalf("store file is not valid JSON: %v", err)
	}
}

func TestLoad_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := NewFileStore(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Load(); err == nil {
		t.Fatal("expected an error for a corrupt store file")
	}
}
