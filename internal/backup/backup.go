// Package backup copies the database file to and from a backup location.
// The store must be closed (or quiesced) before Restore; Backup of a live
// SQLite database should go through the store's BackupTo instead.
package backup

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Backup copies the database file at dbPath to destPath, overwriting any
// existing file there.
func Backup(dbPath, destPath string) error {
	if _, err := os.Stat(dbPath); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("database file not found: %s", dbPath)
		}
		return fmt.Errorf("stat database: %w", err)
	}
	return copyFile(dbPath, destPath)
}

// Restore overwrites the database file at dbPath with the backup at
// backupPath.
func Restore(backupPath, dbPath string) error {
	if _, err := os.Stat(backupPath); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("backup file not found: %s", backupPath)
		}
		return fmt.Errorf("stat backup: %w", err)
	}
	return copyFile(backupPath, dbPath)
}

func copyFile(src, dst string) error {
	if src == "" || dst == "" {
		return errors.New("source and destination paths are required")
	}
	if dir := filepath.Dir(dst); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create destination directory: %w", err)
		}
	}
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("copy to %s: %w", dst, err)
	}
	return out.Close()
}
