package engine

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/chatmatch/backend/internal/domain"
)

// archiveRecord is the on-disk shape of one archived assessment.
type archiveRecord struct {
	Scenario   domain.Scenario    `json:"scenario"`
	Transcript []domain.Turn      `json:"transcript"`
	Assessment *domain.Assessment `json:"assessment"`
}

// ArchiveWriter persists completed assessments to disk off the request
// path. Writes are queued; a full queue drops the record with a warning
// rather than stalling the assessment response.
type ArchiveWriter struct {
	dir   string
	queue chan archiveRecord
	wg    sync.WaitGroup
}

// NewArchiveWriter creates the archive directory and starts the writer
// goroutine.
func NewArchiveWriter(dir string, queueSize int) (*ArchiveWriter, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	if queueSize <= 0 {
		queueSize = 16
	}

	w := &ArchiveWriter{
		dir:   dir,
		queue: make(chan archiveRecord, queueSize),
	}
	w.wg.Add(1)
	go w.run()
	return w, nil
}

// Enqueue schedules an assessment archive write. Never blocks.
func (w *ArchiveWriter) Enqueue(sess *domain.Session) {
	rec := archiveRecord{
		Scenario:   sess.Scenario,
		Transcript: sess.Transcript,
		Assessment: sess.Assessment,
	}
	select {
	case w.queue <- rec:
	default:
		slog.Warn("assessment archive queue full, dropping record", "session_id", sess.ID())
	}
}

// Close drains pending writes and stops the writer goroutine.
func (w *ArchiveWriter) Close() {
	close(w.queue)
	w.wg.Wait()
}

func (w *ArchiveWriter) run() {
	defer w.wg.Done()
	for rec := range w.queue {
		w.write(rec)
	}
}

func (w *ArchiveWriter) write(rec archiveRecord) {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		slog.Error("failed to marshal assessment archive", "session_id", rec.Scenario.ID, "error", err)
		return
	}

	path := filepath.Join(w.dir, rec.Scenario.ID+".json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		slog.Error("failed to write assessment archive", "path", path, "error", err)
		return
	}
	slog.Debug("assessment archived", "path", path)
}
