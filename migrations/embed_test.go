package migrations

import (
	"strings"
	"testing"
)

func TestEmbeddedFS_ContainsMigrationFiles(t *testing.T) {
	// Given: The embedded filesystem
	// When: We read the directory
	entries, err := FS.ReadDir(".")
	if err != nil {
		t.Fatalf("failed to read embedded FS: %v", err)
	}

	// Then: It contains the key/value schema migration
	found := false
	for _, entry := range entries {
		if entry.Name() == "001_kv_schema.sql" {
			found = true
			break
		}
	}

	if !found {
		t.Error("001_kv_schema.sql not found in embedded FS")
	}
}

func TestEmbeddedFS_MigrationFileReadable(t *testing.T) {
	content, err := FS.ReadFile("001_kv_schema.sql")
	if err != nil {
		t.Fatalf("failed to read migration file: %v", err)
	}

	contentStr := string(content)
	if len(contentStr) == 0 {
		t.Fatal("migration file is empty")
	}

	for _, want := range []string{"-- +goose Up", "-- +goose Down", "CREATE TABLE kv_entries"} {
		if !strings.Contains(contentStr, want) {
			t.Errorf("migration missing %q", want)
		}
	}
}
