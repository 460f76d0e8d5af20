// Package backup writes periodic JSON snapshots of every collection.
package backup

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/vbonduro/nichevendor/internal/store"
)

const (
	filePrefix = "backup-"
	fileSuffix = ".json"
	stampFmt   = "20060102T150405Z"
)

type snapshotter interface {
	Snapshot() store.Snapshot
}

type Writer struct {
	src    snapshotter
	dir    string
	keep   int
	now    func() time.Time
	logger *slog.Logger
}

func NewWriter(src snapshotter, dir string, keep int, logger *slog.Logger) *Writer {
	return &Writer{
		src:    src,
		dir:    dir,
		keep:   keep,
		now:    func() time.Time { return time.Now().UTC() },
		logger: logger,
	}
}

// Run writes one snapshot file and prunes all but the newest keep backups.
// It returns the path written.
func (w *Writer) Run() (string, error) {
	if err := os.MkdirAll(w.dir, 0750); err != nil {
		return "", fmt.Errorf("failed to create backup dir: %w", err)
	}

	data, err := json.MarshalIndent(w.src.Snapshot(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}

	name := filePrefix + w.now().UTC().Format(stampFmt) + fileSuffix
	path := filepath.Join(w.dir, name)

	tmp, err := os.CreateTemp(w.dir, ".backup-*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("failed to write backup: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("failed to close backup: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("failed to move backup into place: %w", err)
	}

	if err := w.prune(); err != nil {
		return path, err
	}
	w.logger.Info("backup written", "path", path, "bytes", len(data))
	return path, nil
}

func (w *Writer) prune() error {
	backups, err := w.List()
	if err != nil {
		return err
	}
	if len(backups) <= w.keep {
		return nil
	}
	for _, name := range backups[:len(backups)-w.keep] {
		if err := os.Remove(filepath.Join(w.dir, name)); err != nil {
			return fmt.Errorf("failed to prune backup %s: %w", name, err)
		}
	}
	return nil
}

// List returns backup file names, oldest first.
func (w *Writer) List() ([]string, error) {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		n := e.Name()
		if !e.IsDir() && strings.HasPrefix(n, filePrefix) && strings.HasSuffix(n, fileSuffix) {
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names, nil
}

var parser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Schedule starts a cron scheduler running w on spec. Callers stop it with
// Stop on shutdown.
func Schedule(w *Writer, spec string) (*cron.Cron, error) {
	c := cron.New(cron.WithLocation(time.UTC), cron.WithParser(parser))
	_, err := c.AddFunc(spec, func() {
		if _, err := w.Run(); err != nil {
			w.logger.Error("backup failed", "error", err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid backup schedule %q: %w", spec, err)
	}
	c.Start()
	return c, nil
}
