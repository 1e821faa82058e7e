package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dyuri/lvlinfo/internal/backup"
	"github.com/dyuri/lvlinfo/internal/model"
	"github.com/dyuri/lvlinfo/pkg/lvlinfo"
	"github.com/sirupsen/logrus"
)

// textFormatFor returns the text format implied by a file name, or ""
// for binary files. Compression extensions are ignored.
func textFormatFor(path string) string {
	name := strings.ToLower(path)
	if ext := backup.FormatFromName(name).Ext(); ext != "" {
		name = strings.TrimSuffix(name, ext)
	}
	switch filepath.Ext(name) {
	case ".yaml", ".yml":
		return lvlinfo.FormatYAML
	case ".json":
		return lvlinfo.FormatJSON
	default:
		return ""
	}
}

// readInput reads a file, decompressing it by extension.
func readInput(path string) ([]byte, error) {
	data, err := backup.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open input file: %w", err)
	}
	return data, nil
}

// loadBinary reads and decodes a binary LevelInfo file.
func (a *app) loadBinary(path string) (*model.File, error) {
	data, err := readInput(path)
	if err != nil {
		return nil, err
	}
	return a.decode(path, data)
}

func (a *app) decode(path string, data []byte) (*model.File, error) {
	f, err := lvlinfo.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("parse LevelInfo file: %w", err)
	}

	a.log.WithFields(logrus.Fields{
		"file":   path,
		"size":   len(data),
		"worlds": len(f.Worlds),
		"levels": f.LevelCount(),
	}).Debug("decoded")
	return f, nil
}

// loadAny reads a binary file or, when the name says so, a text form.
func (a *app) loadAny(path string) (*model.File, error) {
	format := textFormatFor(path)
	if format == "" {
		return a.loadBinary(path)
	}

	data, err := readInput(path)
	if err != nil {
		return nil, err
	}
	f, err := lvlinfo.ParseText(bytes.NewReader(data), format)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", format, err)
	}
	return f, nil
}

// checkWritable logs the validation issues of f and fails if any of
// them is an error, unless force is set.
func (a *app) checkWritable(f *model.File, force bool) error {
	issues := lvlinfo.Validate(f)

	var errs []string
	for _, issue := range issues {
		entry := a.log.WithField("field", issue.Field)
		if issue.Level == lvlinfo.LevelError {
			errs = append(errs, issue.String())
			entry.Error(issue.Message)
		} else {
			entry.Warn(issue.Message)
		}
	}

	if !lvlinfo.HasErrors(issues) || force {
		return nil
	}
	return fmt.Errorf("file would not read back as written (use --force to save anyway):\n  %s",
		strings.Join(errs, "\n  "))
}

// saveBinary encodes f and writes it to path, backing up the previous
// content first. A path ending in a compression extension is written
// compressed.
func (a *app) saveBinary(path string, f *model.File) error {
	data, err := lvlinfo.Encode(f)
	if err != nil {
		return fmt.Errorf("encode LevelInfo file: %w", err)
	}
	return a.save(path, data)
}

func (a *app) save(path string, data []byte) error {
	if a.cfg.Backup.Enabled {
		if _, err := a.backup(path); err != nil {
			return err
		}
	}

	out, err := backup.Compress(data, backup.FormatFromName(path))
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("write output file: %w", err)
	}

	a.log.WithFields(logrus.Fields{
		"file": path,
		"size": len(out),
	}).Info("saved")
	return nil
}

// backup copies the current content of path aside, as configured.
func (a *app) backup(path string) (string, error) {
	name, err := backup.Write(a.log, path, a.cfg.BackupOptions())
	if err != nil {
		return "", fmt.Errorf("back up %s: %w", path, err)
	}
	return name, nil
}
