// Package snapshot serializes the seven derived documents. Writing is
// all-or-nothing: every document is staged to a temp file first and the
// batch is renamed into place only after the last one serialized, so a
// failed run never leaves partial output behind.
package snapshot

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/RegiaYoung/ICLR-Analysis-sub000/internal/apperrors"
)

// Writer writes snapshots into one output directory.
type Writer struct {
	Dir string
}

// NewWriter returns a Writer rooted at dir.
func NewWriter(dir string) *Writer {
	return &Writer{Dir: dir}
}

// Write serializes every document of the snapshot.
func (w *Writer) Write(snap *Snapshot) error {
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return apperrors.NewSnapshotError(w.Dir, err)
	}

	staged := make(map[string]string, len(Files))
	cleanup := func() {
		for _, tmp := range staged {
			os.Remove(tmp)
		}
	}

	docs := snap.documents()
	for _, name := range Files {
		tmp := filepath.Join(w.Dir, name+".tmp")
		if err := writeJSON(tmp, docs[name]); err != nil {
			cleanup()
			return err
		}
		staged[name] = tmp
	}

	for _, name := range Files {
		if err := os.Rename(staged[name], filepath.Join(w.Dir, name)); err != nil {
			cleanup()
			return apperrors.NewSnapshotError(filepath.Join(w.Dir, name), err)
		}
		delete(staged, name)
	}

	slog.Info("snapshot written", "dir", w.Dir, "documents", len(Files))
	return nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return apperrors.NewSnapshotError(path, err)
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		f.Close()
		return apperrors.NewSnapshotError(path, err)
	}
	if err := f.Close(); err != nil {
		return apperrors.NewSnapshotError(path, err)
	}
	return nil
}
