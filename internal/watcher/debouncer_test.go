package watcher

import (
	"sync"
	"testing"
	"time"
)

func TestBatchDebouncer_Batches(t *testing.T) {
	var mu sync.Mutex
	var batches [][]Event
	done := make(chan struct{}, 1)

	b := NewBatchDebouncer(30*time.Millisecond, func(events []Event) {
		mu.Lock()
		batches = append(batches, events)
		mu.Unlock()
		done <- struct{}{}
	})

	b.Add(Event{Path: "A.java"})
	b.Add(Event{Path: "B.java"}, Event{Path: "C.java"})
	if got := b.EventCount(); got != 3 {
		t.Errorf("EventCount = %d, want 3", got)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("batch was never emitted")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(batches) != 1 || len(batches[0]) != 3 {
		t.Errorf("batches = %v, want one batch of 3", batches)
	}
}

func TestBatchDebouncer_Cancel(t *testing.T) {
	emitted := make(chan struct{}, 1)
	b := NewBatchDebouncer(20*time.Millisecond, func([]Event) { emitted <- struct{}{} })

	b.Add(Event{Path: "A.java"})
	b.Cancel()

	select {
	case <-emitted:
		t.Fatal("cancelled batch was emitted")
	case <-time.After(80 * time.Millisecond):
	}
	if b.EventCount() != 0 {
		t.Errorf("EventCount after Cancel = %d", b.EventCount())
	}
}

func TestBatchDebouncer_Flush(t *testing.T) {
	var got []Event
	b := NewBatchDebouncer(time.Hour, func(events []Event) { got = events })

	b.Add(Event{Path: "A.java"})
	b.Flush()

	if len(got) != 1 || got[0].Path != "A.java" {
		t.Errorf("flushed = %v", got)
	}

	got = nil
	b.Flush()
	if got != nil {
		t.Errorf("empty flush emitted %v", got)
	}
}

func TestBatchDebouncer_AddNothing(t *testing.T) {
	b := NewBatchDebouncer(time.Millisecond, func([]Event) { t.Error("emit without events") })
	b.Add()
	time.Sleep(10 * time.Millisecond)
}
