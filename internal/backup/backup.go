// Package backup keeps timestamped, optionally compressed copies of files
// before they are overwritten, and reads such copies back.
package backup

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

// TimeFormat is the timestamp layout used in backup names.
const TimeFormat = "20060102-150405"

// Options control where and how backups are written.
type Options struct {
	Dir    string           // Directory for backups; empty means next to the file
	Format Format           // Compression format
	Now    func() time.Time // Clock; time.Now when nil
}

// Name returns the backup file name for path taken at t:
// <name>.<YYYYMMDD-HHMMSS>.bak[.ext]
func Name(path string, t time.Time, format Format) string {
	return fmt.Sprintf("%s.%s.bak%s", filepath.Base(path), t.Format(TimeFormat), format.Ext())
}

// Write copies the current content of path into a new backup file and
// returns the backup's path. If path does not exist there is nothing to
// back up and Write returns "" and no error.
func Write(log logrus.FieldLogger, path string, opts Options) (string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.WithField("file", path).Debug("no existing file to back up")
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	dir := opts.Dir
	if dir == "" {
		dir = filepath.Dir(path)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create backup directory: %w", err)
	}

	compressed, err := Compress(data, opts.Format)
	if err != nil {
		return "", err
	}

	out, err := create(dir, path, now(), opts.Format)
	if err != nil {
		return "", err
	}
	if _, err := out.Write(compressed); err != nil {
		out.Close()
		return "", fmt.Errorf("write backup: %w", err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("close backup: %w", err)
	}

	log.WithFields(logrus.Fields{
		"file":   path,
		"backup": out.Name(),
		"format": opts.Format,
		"size":   len(compressed),
	}).Info("backup written")

	return out.Name(), nil
}

// create opens a new backup file in dir, adding a counter to the
// timestamp when a backup from the same second already exists.
func create(dir, path string, t time.Time, format Format) (*os.File, error) {
	name := Name(path, t, format)
	for i := 1; ; i++ {
		f, err := os.OpenFile(filepath.Join(dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return f, nil
		}
		if !errors.Is(err, fs.ErrExist) || i > 100 {
			return nil, fmt.Errorf("create backup: %w", err)
		}
		name = fmt.Sprintf("%s.%s-%d.bak%s", filepath.Base(path), t.Format(TimeFormat), i, format.Ext())
	}
}

// ReadFile reads path and decompresses it according to its extension, so
// backups and compressed inputs can be used wherever a plain file can.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	format := FormatFromName(path)
	out, err := Decompress(data, format)
	if err != nil {
		return nil, fmt.Errorf("decompress %s: %w", path, err)
	}
	return out, nil
}
