// Package logs archives raw meter frames to rotated per-meter files, for
// audit and offline replay. Unlike a general activity log, this is purely
// an append-only hex dump of what went on the wire — structured
// driver-level logging goes through internal/events instead.
package logs

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

type Writer struct {
	mu            sync.Mutex
	basePath      string
	retentionDays int
	files         map[string]*os.File
	lastRotation  map[string]time.Time
}

func NewWriter(basePath string, retentionDays int) *Writer {
	return &Writer{
		basePath:      basePath,
		retentionDays: retentionDays,
		files:         make(map[string]*os.File),
		lastRotation:  make(map[string]time.Time),
	}
}

// Write appends one hex-encoded frame line, timestamped, to meterName's
// current log file.
func (w *Writer) Write(meterName string, frame []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	f, err := w.getOrCreateFile(meterName)
	if err != nil {
		return err
	}

	line := fmt.Sprintf("%s %s\n", time.Now().Format(time.RFC3339Nano), hex.EncodeToString(frame))
	_, err = f.WriteString(line)
	return err
}

// CanRotate reports whether enough time has passed since the last rotation
// (2 minute cooldown).
func (w *Writer) CanRotate(meterName string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if lastTime, exists := w.lastRotation[meterName]; exists {
		if time.Since(lastTime) < 2*time.Minute {
			return false
		}
	}
	return true
}

func (w *Writer) Rotate(meterName string) error {
	_, err := w.RotateWithName(meterName, "")
	return err
}

func (w *Writer) RotateWithName(meterName, logName string) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if f, exists := w.files[meterName]; exists {
		f.Close()
		delete(w.files, meterName)
	}

	dir := filepath.Join(w.basePath, meterName)
	symlinkPath := filepath.Join(dir, "current.log")
	os.Remove(symlinkPath)

	w.lastRotation[meterName] = time.Now()

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create log directory: %w", err)
	}

	if logName == "" {
		logName = time.Now().Format("2006-01-02_15-04-05")
	} else {
		logName = filepath.Base(logName)
	}
	if filepath.Ext(logName) != ".log" {
		logName += ".log"
	}

	path := filepath.Join(dir, logName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to create log file: %w", err)
	}
	w.files[meterName] = f
	os.Symlink(logName, symlinkPath)

	log.Infof("Rotated frame log for %s to %s", meterName, logName)
	return logName, nil
}

func (w *Writer) getOrCreateFile(meterName string) (*os.File, error) {
	if f, exists := w.files[meterName]; exists {
		return f, nil
	}

	dir := filepath.Join(w.basePath, meterName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	symlinkPath := filepath.Join(dir, "current.log")
	if target, err := os.Readlink(symlinkPath); err == nil {
		existingPath := filepath.Join(dir, target)
		if f, err := os.OpenFile(existingPath, os.O_WRONLY|os.O_APPEND, 0644); err == nil {
			w.files[meterName] = f
			return f, nil
		}
	}

	filename := time.Now().Format("2006-01-02_15-04-05") + ".log"
	path := filepath.Join(dir, filename)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	w.files[meterName] = f
	os.Remove(symlinkPath)
	os.Symlink(filename, symlinkPath)

	log.Infof("Created frame log: %s", path)
	return f, nil
}

func (w *Writer) ListLogs(meterName string) ([]string, error) {
	dir := filepath.Join(w.basePath, meterName)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}

	type logEntry struct {
		name    string
		modTime time.Time
	}
	var found []logEntry
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".log" && entry.Name() != "current.log" {
			info, err := entry.Info()
			if err != nil {
				continue
			}
			found = append(found, logEntry{name: entry.Name(), modTime: info.ModTime()})
		}
	}

	sort.Slice(found, func(i, j int) bool { return found[i].modTime.After(found[j].modTime) })

	names := make([]string, len(found))
	for i, l := range found {
		names[i] = l.name
	}
	return names, nil
}

func (w *Writer) GetLogPath(meterName, filename string) string {
	return filepath.Join(w.basePath, meterName, filename)
}

func (w *Writer) SyncFile(meterName string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if f, exists := w.files[meterName]; exists {
		f.Sync()
	}
}

func (w *Writer) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, f := range w.files {
		f.Close()
	}
	w.files = make(map[string]*os.File)
}

// Cleanup deletes frame logs older than retentionDays.
func (w *Writer) Cleanup() {
	if w.retentionDays <= 0 {
		return
	}

	cutoff := time.Now().AddDate(0, 0, -w.retentionDays)

	entries, err := os.ReadDir(w.basePath)
	if err != nil {
		return
	}

	for _, meterDir := range entries {
		if !meterDir.IsDir() {
			continue
		}

		meterPath := filepath.Join(w.basePath, meterDir.Name())
		logFiles, err := os.ReadDir(meterPath)
		if err != nil {
			continue
		}

		for _, logFile := range logFiles {
			if logFile.IsDir() || filepath.Ext(logFile.Name()) != ".log" {
				continue
			}
			info, err := logFile.Info()
			if err != nil {
				continue
			}
			if info.ModTime().Before(cutoff) {
				path := filepath.Join(meterPath, logFile.Name())
				os.Remove(path)
				log.Infof("Cleaned up old frame log: %s", path)
			}
		}
	}
}
