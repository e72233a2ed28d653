package analysis

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestCleanTreeRemovesSuspects(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "site_passwords.txt")
	content := "bob:zzz\ncarol:aaa\ndan:zzz\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	var removed bytes.Buffer
	kept, dropped, err := CleanTree(dir, []string{"zzz"}, &removed, nil)
	if err != nil {
		t.Fatalf("clean: %v", err)
	}
	if kept != 1 || dropped != 2 {
		t.Fatalf("expected kept=1 dropped=2, got kept=%d dropped=%d", kept, dropped)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "carol:aaa\n" {
		t.Fatalf("unexpected remaining content: %q", data)
	}
	if removed.String() != "bob:zzz\ndan:zzz\n" {
		t.Fatalf("unexpected removed log: %q", removed.String())
	}
}

func TestCleanTreeLeavesUntouchedFilesAlone(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "site_passwords.txt")
	if err := os.WriteFile(path, []byte("carol:aaa\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	before, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}

	kept, dropped, err := CleanTree(dir, []string{"zzz"}, nil, nil)
	if err != nil {
		t.Fatalf("clean: %v", err)
	}
	if kept != 1 || dropped != 0 {
		t.Fatalf("expected kept=1 dropped=0, got kept=%d dropped=%d", kept, dropped)
	}

	after, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if !after.ModTime().Equal(before.ModTime()) {
		t.Fatalf("file with no removals should not be rewritten")
	}
}
