// Package activity folds hub lifecycle events into the history tables and the recent
// activity feed shown on the projects pages.
package activity

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/dukex/projecthub/pkg/catalog"
	"github.com/dukex/projecthub/pkg/eventbus"
	"github.com/dukex/projecthub/pkg/events"
	"github.com/dukex/projecthub/pkg/log"
	"github.com/dukex/projecthub/pkg/models"
)

const (
	DefaultFeedSize     = 50
	DefaultHistoryLimit = 10

	timestampLayout = "2006-01-02 15:04"
)

// Entry is one line of the recent activity feed.
type Entry struct {
	Type      events.EventType `json:"type"`
	SessionID string           `json:"session_id"`
	Summary   string           `json:"summary"`
	At        time.Time        `json:"at"`
}

type Option func(*Recorder)

func WithFeedSize(size int) Option {
	return func(r *Recorder) {
		if size > 0 {
			r.feed = make([]Entry, size)
		}
	}
}

func WithHistoryLimit(limit int) Option {
	return func(r *Recorder) {
		if limit > 0 {
			r.historyLimit = limit
		}
	}
}

// Recorder is safe for concurrent use; the bus subscriber writes while handlers read.
type Recorder struct {
	mu           sync.RWMutex
	prompt       catalog.Table
	analysis     catalog.Table
	historyLimit int

	feed  []Entry
	next  int
	count int

	logger *slog.Logger
}

// NewRecorder seeds the history tables from the catalog.
func NewRecorder(cat *catalog.Catalog, logger *slog.Logger, opts ...Option) *Recorder {
	r := &Recorder{
		prompt:       cloneTable(cat.PromptHistory),
		analysis:     cloneTable(cat.AnalysisHistory),
		historyLimit: DefaultHistoryLimit,
		feed:         make([]Entry, DefaultFeedSize),
		logger:       log.Named(logger, "activity_recorder"),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Register subscribes the recorder to every hub event type.
func (r *Recorder) Register(sub eventbus.EventSubscriber) error {
	handlers := map[events.EventType]eventbus.EventHandler{
		events.SessionStartedEvent:  r.handleSessionStarted,
		events.SessionEndedEvent:    r.handleSessionEnded,
		events.ReportGeneratedEvent: r.handleReportGenerated,
		events.ReportClearedEvent:   r.handleReportCleared,
		events.ExportRequestedEvent: r.handleExportRequested,
	}

	for eventType, handler := range handlers {
		if err := sub.Handle(eventType, handler); err != nil {
			return fmt.Errorf("failed to register %s handler: %w", eventType, err)
		}
	}

	return nil
}

func (r *Recorder) handleSessionStarted(_ context.Context, event any) error {
	e, ok := event.(*events.SessionStarted)
	if !ok {
		return nil
	}

	summary := e.Identity + " logged in"
	if e.DemoMode {
		summary = e.Identity + " entered demo mode"
	}

	r.push(Entry{Type: e.Type, SessionID: e.SessionID, Summary: summary, At: e.Timestamp})

	return nil
}

func (r *Recorder) handleSessionEnded(_ context.Context, event any) error {
	e, ok := event.(*events.SessionEnded)
	if !ok {
		return nil
	}

	r.push(Entry{Type: e.Type, SessionID: e.SessionID, Summary: e.Identity + " logged out", At: e.Timestamp})

	return nil
}

func (r *Recorder) handleReportGenerated(ctx context.Context, event any) error {
	e, ok := event.(*events.ReportGenerated)
	if !ok {
		return nil
	}

	kind := models.ReportKind(e.Kind)
	at := e.ProducedAt
	if at.IsZero() {
		at = e.Timestamp
	}

	r.mu.Lock()
	switch kind {
	case models.ReportKindPromptTest:
		r.prompt.Rows = r.prepend(r.prompt.Rows, []string{
			at.Format(timestampLayout),
			e.Facts["template"],
			e.Facts["model"],
			e.Facts["quality_score"],
			e.Facts["files"] + " files",
			"Success",
		})
	case models.ReportKindBulkAnalysis:
		r.analysis.Rows = r.prepend(r.analysis.Rows, []string{
			at.Format(timestampLayout),
			e.Facts["analysis_type"],
			e.Facts["files"],
			e.Facts["total_findings"],
			e.Facts["avg_confidence"],
			"Complete",
		})
	}
	r.mu.Unlock()

	r.logger.DebugContext(ctx, "report recorded", "kind", e.Kind, "report_id", e.ReportID)
	r.push(Entry{Type: e.Type, SessionID: e.SessionID, Summary: kind.Title() + " produced " + e.Title, At: at})

	return nil
}

func (r *Recorder) handleReportCleared(_ context.Context, event any) error {
	e, ok := event.(*events.ReportCleared)
	if !ok {
		return nil
	}

	kind := models.ReportKind(e.Kind)
	r.push(Entry{Type: e.Type, SessionID: e.SessionID, Summary: kind.Title() + " results cleared", At: e.Timestamp})

	return nil
}

func (r *Recorder) handleExportRequested(_ context.Context, event any) error {
	e, ok := event.(*events.ExportRequested)
	if !ok {
		return nil
	}

	summary := fmt.Sprintf("%s exported as %s", models.ReportKind(e.Kind).Title(), e.Format)
	if !e.Served {
		summary = fmt.Sprintf("%s export as %s is not available in demo", models.ReportKind(e.Kind).Title(), e.Format)
	}

	r.push(Entry{Type: e.Type, SessionID: e.SessionID, Summary: summary, At: e.Timestamp})

	return nil
}

// prepend must be called with mu held.
func (r *Recorder) prepend(rows [][]string, row []string) [][]string {
	rows = slices.Insert(rows, 0, row)
	if len(rows) > r.historyLimit {
		rows = rows[:r.historyLimit]
	}

	return rows
}

func (r *Recorder) push(entry Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.feed[r.next] = entry
	r.next = (r.next + 1) % len(r.feed)

	if r.count < len(r.feed) {
		r.count++
	}
}

// PromptHistory returns a copy of the prompt test history, newest first.
func (r *Recorder) PromptHistory() catalog.Table {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return cloneTable(r.prompt)
}

// AnalysisHistory returns a copy of the bulk analysis history, newest first.
func (r *Recorder) AnalysisHistory() catalog.Table {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return cloneTable(r.analysis)
}

// Recent returns up to limit feed entries, newest first. A non-positive limit returns all.
func (r *Recorder) Recent(limit int) []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 || limit > r.count {
		limit = r.count
	}

	entries := make([]Entry, 0, limit)
	for i := 1; i <= limit; i++ {
		idx := (r.next - i + len(r.feed)) % len(r.feed)
		entries = append(entries, r.feed[idx])
	}

	return entries
}

func cloneTable(table catalog.Table) catalog.Table {
	rows := make([][]string, len(table.Rows))
	for i, row := range table.Rows {
		rows[i] = slices.Clone(row)
	}

	return catalog.Table{Columns: slices.Clone(table.Columns), Rows: rows}
}
