package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// MigrationFile describes a generated up/down SQL pair.
type MigrationFile struct {
	Version     string
	Name        string
	Description string
	Timestamp   string
	UpPath      string
	DownPath    string
}

// CreateMigration writes an empty up/down SQL pair into dir, creating it
// if needed. The version prefix is the creation time in 20060102150405
// form so lexical order matches apply order.
func CreateMigration(dir, name, description string) (*MigrationFile, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create migrations directory: %w", err)
	}

	now := time.Now()
	mf := &MigrationFile{
		Version:     now.Format("20060102150405"),
		Name:        name,
		Description: description,
		Timestamp:   now.Format(time.RFC3339),
	}
	base := mf.Version + "_" + sanitizeName(name)
	mf.UpPath = filepath.Join(dir, base+".up.sql")
	mf.DownPath = filepath.Join(dir, base+".down.sql")

	if err := writeStub(mf.UpPath, mf, "up"); err != nil {
		return nil, err
	}
	if err := writeStub(mf.DownPath, mf, "down"); err != nil {
		// Never leave a half-created pair behind.
		_ = os.Remove(mf.UpPath)
		return nil, err
	}
	return mf, nil
}

func writeStub(path string, mf *MigrationFile, direction string) error {
	var b strings.Builder
	title := mf.Name
	if direction == "down" {
		title += " (rollback)"
	}
	fmt.Fprintf(&b, "-- %s\n", title)
	fmt.Fprintf(&b, "-- created %s\n", mf.Timestamp)
	if mf.Description != "" {
		fmt.Fprintf(&b, "-- %s\n", mf.Description)
	}
	fmt.Fprintf(&b, "\n-- write the %s migration SQL here\n", direction)

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write %s migration: %w", direction, err)
	}
	return nil
}

// sanitizeName lowercases a migration name and turns word separators into
// single underscores; anything else is dropped.
func sanitizeName(name string) string {
	var b strings.Builder
	sep := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if sep && b.Len() > 0 {
				b.WriteByte('_')
			}
			sep = false
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			sep = true
		}
	}
	return b.String()
}

// ListMigrations returns the base names of the up/down pairs in dir,
// sorted by version. A missing directory lists as empty.
func ListMigrations(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.up.sql"))
	if err != nil {
		return nil, fmt.Errorf("scan migrations directory: %w", err)
	}

	names := make([]string, 0, len(matches))
	for _, m := range matches {
		if info, err := os.Stat(m); err == nil && info.IsDir() {
			continue
		}
		names = append(names, strings.TrimSuffix(filepath.Base(m), ".up.sql"))
	}
	sort.Strings(names)
	return names, nil
}
