package lut

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteFile serializes the table and writes it to path atomically: the
// text goes to a temp file in the same directory, is flushed to disk, and
// is renamed into place. A crash mid-write leaves the previous table (or
// no table) visible to the consuming engine, never a truncated one.
func WriteFile(path string, t *Table) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp table file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op after a successful rename

	if _, err := tmp.WriteString(Serialize(t)); err != nil {
		tmp.Close()
		return fmt.Errorf("writing table: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("flushing table: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing table file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("publishing table: %w", err)
	}
	return nil
}

// ReadFile parses a table from path.
func ReadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading table file: %w", err)
	}
	t, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}
