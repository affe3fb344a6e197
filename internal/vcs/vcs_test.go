package vcs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	gogit "github.com/go-git/go-git/v5"
)

var author = Author{Name: "Test", Email: "test@example.com"}

func TestCommit(t *testing.T) {
	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	if err != nil {
		t.Fatal(err)
	}
	catalog := filepath.Join(dir, "venues.js")
	if err := os.WriteFile(catalog, []byte("const V = [];\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	outside := filepath.Join(t.TempDir(), "other.json")
	if err := os.WriteFile(outside, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	missing := filepath.Join(dir, "missing.json")

	hash, err := Commit([]string{catalog, outside, missing}, "Add catalog", author)
	if err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	if hash == "" {
		t.Fatal("Commit() made no commit")
	}
	head, err := repo.Head()
	if err != nil {
		t.Fatal(err)
	}
	if head.Hash().String() != hash {
		t.Errorf("HEAD = %s, want %s", head.Hash(), hash)
	}
	c, err := repo.CommitObject(head.Hash())
	if err != nil {
		t.Fatal(err)
	}
	if c.Message != "Add catalog" || c.Author.Name != "Test" {
		t.Errorf("commit = %q by %q", c.Message, c.Author.Name)
	}

	// Nothing changed.
	hash, err = Commit([]string{catalog}, "Again", author)
	if err != nil {
		t.Fatal(err)
	}
	if hash != "" {
		t.Errorf("Commit() of unchanged file = %s, want none", hash)
	}

	if err := os.WriteFile(catalog, []byte("const V = [1];\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	hash, err = Commit([]string{catalog}, "Update", author)
	if err != nil || hash == "" {
		t.Errorf("Commit() after change = %q, %v", hash, err)
	}
}

func TestCommit_NotRepository(t *testing.T) {
	f := filepath.Join(t.TempDir(), "venues.js")
	if err := os.WriteFile(f, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Commit([]string{f}, "msg", author); !errors.Is(err, ErrNotRepository) {
		t.Errorf("Commit() error = %v, want ErrNotRepository", err)
	}
}
