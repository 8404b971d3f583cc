package apply

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/natefinch/atomic"
	"github.com/oklog/ulid/v2"
)

const (
	backupPrefix = "chezmoi."
	backupSuffix = ".toml"
)

// Backup is a saved copy of chezmoi.toml.
type Backup struct {
	ID   ulid.ULID
	Path string
	Size int64
}

// Time returns when the backup was taken.
func (b Backup) Time() time.Time {
	return ulid.Time(b.ID.Time())
}

// BackupName returns the file name used for a backup with the given ID.
func BackupName(id ulid.ULID) string {
	return backupPrefix + id.String() + backupSuffix
}

// ListBackups returns the backups in dir, newest first. A missing dir yields none.
func ListBackups(dir string) ([]Backup, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var backups []Backup
	for _, f := range files {
		name := f.Name()
		if f.IsDir() || !strings.HasPrefix(name, backupPrefix) || !strings.HasSuffix(name, backupSuffix) {
			continue
		}
		id, err := ulid.ParseStrict(strings.TrimSuffix(strings.TrimPrefix(name, backupPrefix), backupSuffix))
		if err != nil {
			continue
		}
		var size int64
		if info, err := f.Info(); err == nil {
			size = info.Size()
		}
		backups = append(backups, Backup{ID: id, Path: filepath.Join(dir, name), Size: size})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].ID.Compare(backups[j].ID) > 0
	})
	return backups, nil
}

// FindBackup looks up a backup by full ULID or unique prefix (case-insensitive).
func FindBackup(dir, ref string) (*Backup, error) {
	backups, err := ListBackups(dir)
	if err != nil {
		return nil, err
	}

	ref = strings.ToUpper(ref)
	var found *Backup
	for i := range backups {
		if !strings.HasPrefix(backups[i].ID.String(), ref) {
			continue
		}
		if found != nil {
			return nil, fmt.Errorf("backup reference %q is ambiguous", ref)
		}
		found = &backups[i]
	}
	if found == nil {
		return nil, fmt.Errorf("backup %q not found", ref)
	}
	return found, nil
}

// writeBackup stores data as a new backup named after id.
func writeBackup(dir string, id ulid.ULID, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}
	path := filepath.Join(dir, BackupName(id))
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}
	return path, nil
}

// PruneBackups removes all but the newest keep backups. keep <= 0 keeps everything.
// It returns the number of files removed.
func PruneBackups(dir string, keep int) (int, error) {
	if keep <= 0 {
		return 0, nil
	}

	backups, err := ListBackups(dir)
	if err != nil {
		return 0, err
	}
	if len(backups) <= keep {
		return 0, nil
	}

	removed := 0
	for _, b := range backups[keep:] {
		if err := os.Remove(b.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return removed, fmt.Errorf("failed to remove backup %s: %w", b.Path, err)
		}
		removed++
	}
	return removed, nil
}
