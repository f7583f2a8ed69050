package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"
)

type recordingSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordingSink) Emit(_ context.Context, event Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

type blockingSink struct {
	release chan struct{}
	seen    chan Event
}

func (s *blockingSink) Emit(_ context.Context, event Event) {
	s.seen <- event
	<-s.release
}

func TestDispatcherDeliversEvents(t *testing.T) {
	sink := &recordingSink{}
	d := NewDispatcher(Config{Enabled: true, BufferSize: 8}, sink)

	for i := 0; i < 3; i++ {
		d.Emit(context.Background(), Event{EventType: "session.login", Success: true})
	}
	d.Close()

	if got := sink.count(); got != 3 {
		t.Fatalf("expected 3 delivered events, got %d", got)
	}
}

func TestDispatcherDisabledReturnsNil(t *testing.T) {
	d := NewDispatcher(Config{Enabled: false}, &recordingSink{})
	if d != nil {
		t.Fatal("expected nil dispatcher when disabled")
	}

	// All operations on a nil dispatcher are no-ops.
	d.Emit(context.Background(), Event{EventType: "session.login"})
	d.Close()
	if d.Dropped() != 0 {
		t.Fatal("nil dispatcher reported drops")
	}
}

func TestDispatcherDropsWhenFull(t *testing.T) {
	sink := &blockingSink{
		release: make(chan struct{}),
		seen:    make(chan Event, 1),
	}
	d := NewDispatcher(Config{Enabled: true, BufferSize: 1, DropIfFull: true}, sink)

	// First event occupies the worker, second fills the buffer.
	d.Emit(context.Background(), Event{EventType: "session.verify"})
	select {
	case <-sink.seen:
	case <-time.After(2 * time.Second):
		t.Fatal("worker never picked up the first event")
	}
	d.Emit(context.Background(), Event{EventType: "session.verify"})

	// Everything beyond that is dropped, not blocked.
	for i := 0; i < 5; i++ {
		d.Emit(context.Background(), Event{EventType: "session.verify"})
	}

	if got := d.Dropped(); got != 5 {
		t.Fatalf("expected 5 drops, got %d", got)
	}

	close(sink.release)
	d.Close()
}

func TestDispatcherCloseDrainsBuffer(t *testing.T) {
	sink := &recordingSink{}
	d := NewDispatcher(Config{Enabled: true, BufferSize: 16, DropIfFull: true}, sink)

	for i := 0; i < 10; i++ {
		d.Emit(context.Background(), Event{EventType: "session.logout"})
	}
	d.Close()

	if got := sink.count(); got != 10 {
		t.Fatalf("expected buffered events drained on close, got %d", got)
	}

	// Emit after close is silently ignored.
	d.Emit(context.Background(), Event{EventType: "session.logout"})
	if got := sink.count(); got != 10 {
		t.Fatalf("expected no delivery after close, got %d", got)
	}
}

func TestJSONWriterSinkWritesOneLinePerEvent(t *testing.T) {
	var buf bytes.Buffer
	sink := NewJSONWriterSink(&buf)

	sink.Emit(context.Background(), Event{
		EventType: "session.login",
		UserID:    "user-1",
		Success:   true,
	})
	sink.Emit(context.Background(), Event{
		EventType: "session.logout",
		Success:   true,
	})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), buf.String())
	}

	var first Event
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("first line is not JSON: %v", err)
	}
	if first.EventType != "session.login" || first.UserID != "user-1" || !first.Success {
		t.Fatalf("unexpected first event: %+v", first)
	}
}

func TestChannelSinkDeliversAndHonorsContext(t *testing.T) {
	sink := NewChannelSink(1)

	sink.Emit(context.Background(), Event{EventType: "session.verify"})
	select {
	case event := <-sink.Events():
		if event.EventType != "session.verify" {
			t.Fatalf("unexpected event %+v", event)
		}
	default:
		t.Fatal("expected buffered event")
	}

	// A full channel plus a cancelled context returns instead of blocking.
	sink.Emit(context.Background(), Event{EventType: "session.verify"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	done := make(chan struct{})
	go func() {
		sink.Emit(ctx, Event{EventType: "session.verify"})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Emit blocked on full channel despite cancelled context")
	}
}
