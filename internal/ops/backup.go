// Package ops holds operator tooling for the event registry. The
// registry is one JSON document, so backup and restore are a gzip
// round-trip of that single file.
package ops

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const registryFile = "events.json"

// BackupRegistry writes a gzip copy of the registry document. Backing
// up an empty registry (no file yet) is an error; there is nothing to
// protect.
func BackupRegistry(dataDir, archivePath string) error {
	dataDir = filepath.Clean(strings.TrimSpace(dataDir))
	archivePath = filepath.Clean(strings.TrimSpace(archivePath))
	if dataDir == "" || archivePath == "" {
		return fmt.Errorf("dataDir and archivePath are required")
	}

	src, err := os.Open(filepath.Join(dataDir, registryFile))
	if err != nil {
		return err
	}
	defer src.Close()

	if err := os.MkdirAll(filepath.Dir(archivePath), 0o755); err != nil {
		return err
	}
	dst, err := os.Create(archivePath)
	if err != nil {
		return err
	}
	defer dst.Close()

	gz := gzip.NewWriter(dst)
	gz.Name = registryFile
	if _, err := io.Copy(gz, src); err != nil {
		_ = gz.Close()
		return err
	}
	return gz.Close()
}

// RestoreRegistry unpacks a backup into dataDir, refusing archives
// that do not hold a valid JSON registry document.
func RestoreRegistry(archivePath, dataDir string) error {
	archivePath = filepath.Clean(strings.TrimSpace(archivePath))
	dataDir = filepath.Clean(strings.TrimSpace(dataDir))
	if archivePath == "" || dataDir == "" {
		return fmt.Errorf("archivePath and dataDir are required")
	}

	f, err := os.Open(archivePath)
	if err != nil {
		return err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return err
	}
	defer gz.Close()

	doc, err := io.ReadAll(gz)
	if err != nil {
		return err
	}
	if !json.Valid(doc) {
		return fmt.Errorf("archive %s does not contain a valid registry document", archivePath)
	}

	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dataDir, registryFile), doc, 0o644)
}
