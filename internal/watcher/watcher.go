// Package watcher polls source roots for added, changed and removed Java
// files and reports them in debounced batches.
package watcher

import (
	"context"
	"log/slog"
	"os"
	"sort"
	"time"

	"javadox/internal/loader"
	"javadox/internal/slogutil"
)

const (
	DefaultPollInterval = 2 * time.Second
	DefaultDebounce     = 500 * time.Millisecond
)

// EventType represents the type of file system event
type EventType int

const (
	EventCreate EventType = iota
	EventModify
	EventDelete
)

// String returns a string representation of the event type
func (e EventType) String() string {
	switch e {
	case EventCreate:
		return "create"
	case EventModify:
		return "modify"
	case EventDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Event represents a file system event
type Event struct {
	Type      EventType
	Path      string
	Timestamp time.Time
}

// ChangeHandler is called from Run with each debounced batch.
type ChangeHandler func(ctx context.Context, events []Event)

// Options selects the watched files and the timing of polls and batches.
type Options struct {
	Roots            []string
	Exclude          []string
	MaxFileSizeBytes int64
	PollInterval     time.Duration
	Debounce         time.Duration
}

type fileState struct {
	size    int64
	modTime time.Time
}

// Watcher polls the loader's file list for changes.
type Watcher struct {
	opts    Options
	logger  *slog.Logger
	handler ChangeHandler

	state map[string]fileState
	ready chan []Event
}

// New creates a watcher. Zero intervals take the package defaults.
func New(opts Options, logger *slog.Logger, handler ChangeHandler) *Watcher {
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	return &Watcher{
		opts:    opts,
		logger:  slogutil.OrDiscard(logger),
		handler: handler,
		ready:   make(chan []Event),
	}
}

// Scan lists the watched files and returns the differences from the
// previous scan, sorted by path. The first scan only records state.
func (w *Watcher) Scan() ([]Event, error) {
	files, _, err := loader.ListFiles(w.opts.Roots, w.opts.Exclude, w.opts.MaxFileSizeBytes)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	current := make(map[string]fileState, len(files))
	for _, f := range files {
		info, err := os.Stat(f)
		if err != nil {
			continue
		}
		current[f] = fileState{size: info.Size(), modTime: info.ModTime()}
	}

	first := w.state == nil
	previous := w.state
	w.state = current
	if first {
		return nil, nil
	}

	var events []Event
	for path, st := range current {
		old, ok := previous[path]
		switch {
		case !ok:
			events = append(events, Event{Type: EventCreate, Path: path, Timestamp: now})
		case old != st:
			events = append(events, Event{Type: EventModify, Path: path, Timestamp: now})
		}
	}
	for path := range previous {
		if _, ok := current[path]; !ok {
			events = append(events, Event{Type: EventDelete, Path: path, Timestamp: now})
		}
	}
	sort.Slice(events, func(i, j int) bool { return events[i].Path < events[j].Path })
	return events, nil
}

// Run polls until ctx is done, calling the handler with each batch. The
// handler runs on the Run goroutine, so batches never overlap. Changes are
// measured from the first Scan, whether made here or by the caller.
func (w *Watcher) Run(ctx context.Context) error {
	if w.state == nil {
		if _, err := w.Scan(); err != nil {
			return err
		}
	}

	debouncer := NewBatchDebouncer(w.opts.Debounce, func(events []Event) {
		select {
		case w.ready <- events:
		case <-ctx.Done():
		}
	})
	defer debouncer.Cancel()

	ticker := time.NewTicker(w.opts.PollInterval)
	defer ticker.Stop()

	w.logger.Info("Watching sources",
		"roots", len(w.opts.Roots),
		"files", len(w.state),
		"interval", w.opts.PollInterval,
	)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Stopped watching sources")
			return nil
		case <-ticker.C:
			events, err := w.Scan()
			if err != nil {
				w.logger.Warn("Source scan failed", "error", err)
				continue
			}
			for _, ev := range events {
				w.logger.Debug("Source changed", "type", ev.Type.String(), "path", ev.Path)
			}
			debouncer.Add(events...)
		case events := <-w.ready:
			if w.handler != nil {
				w.handler(ctx, events)
			}
		}
	}
}
