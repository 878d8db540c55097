package ops

import (
	"os"
	"path/filepath"
	"testing"
)

func seedRegistry(t *testing.T, dir, doc string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "events.json"), []byte(doc), 0o644); err != nil {
		t.Fatalf("seed registry: %v", err)
	}
}

func TestBackupRestoreRoundTrip(t *testing.T) {
	srcDir := t.TempDir()
	doc := `{"events":{"gala":{"eventId":"gala","planner":"P","eventName":"Gala","clickupTaskId":"t1"}}}`
	seedRegistry(t, srcDir, doc)

	archive := filepath.Join(t.TempDir(), "backups", "registry.json.gz")
	if err := BackupRegistry(srcDir, archive); err != nil {
		t.Fatalf("backup: %v", err)
	}

	restoreDir := t.TempDir()
	if err := RestoreRegistry(archive, restoreDir); err != nil {
		t.Fatalf("restore: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(restoreDir, "events.json"))
	if err != nil {
		t.Fatalf("read restored registry: %v", err)
	}
	if string(got) != doc {
		t.Fatalf("restored document differs:\nwant %s\ngot  %s", doc, got)
	}
}

func TestBackupMissingRegistryFails(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "registry.json.gz")
	if err := BackupRegistry(t.TempDir(), archive); err == nil {
		t.Fatal("expected error backing up a directory with no registry")
	}
}

func TestRestoreRejectsInvalidDocument(t *testing.T) {
	srcDir := t.TempDir()
	seedRegistry(t, srcDir, "{broken")

	archive := filepath.Join(t.TempDir(), "registry.json.gz")
	if err := BackupRegistry(srcDir, archive); err != nil {
		t.Fatalf("backup: %v", err)
	}
	if err := RestoreRegistry(archive, t.TempDir()); err == nil {
		t.Fatal("expected restore to reject a non-JSON document")
	}
}
