package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wbs.json")
	if err := os.WriteFile(path, []byte(`{"nodes":[]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := newFileWatcher(path)
	if err != nil {
		t.Fatalf("newFileWatcher() error: %v", err)
	}
	defer w.Close()

	// Other files in the directory are ignored.
	if err := os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(`{"nodes":[{"id":1}]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if msg := w.wait(ctx); msg != (fileChangedMsg{}) {
		t.Fatalf("wait() = %#v, want fileChangedMsg", msg)
	}
}

func TestFileWatcherWaitHonorsContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wbs.json")
	w, err := newFileWatcher(path)
	if err != nil {
		t.Fatalf("newFileWatcher() error: %v", err)
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if msg := w.wait(ctx); msg != nil {
		t.Errorf("wait() on cancelled context = %#v, want nil", msg)
	}
}

func TestFileWatcherWaitReturnsWhenSessionEnds(t *testing.T) {
	w, err := newFileWatcher(filepath.Join(t.TempDir(), "wbs.json"))
	if err != nil {
		t.Fatalf("newFileWatcher() error: %v", err)
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	got := make(chan any, 1)
	go func() { got <- w.wait(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()
	select {
	case msg := <-got:
		if msg != nil {
			t.Errorf("wait() = %#v, want nil", msg)
		}
	case <-time.After(time.Second):
		t.Fatal("wait() still blocked after the session context ended")
	}
}

func TestFileWatcherCloseReleasesWaiterAndTimer(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wbs.json")
	w, err := newFileWatcher(path)
	if err != nil {
		t.Fatalf("newFileWatcher() error: %v", err)
	}

	got := make(chan any, 1)
	go func() { got <- w.wait(context.Background()) }()

	// A save right before Close leaves a debounce pending at most.
	if err := os.WriteFile(path, []byte(`{"nodes":[]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() error: %v", err)
	}

	select {
	case <-w.stopped:
	default:
		t.Fatal("watch goroutine still running after Close")
	}
	select {
	case msg := <-got:
		if msg != nil && msg != (fileChangedMsg{}) {
			t.Errorf("wait() = %#v, want nil or a change seen before Close", msg)
		}
	case <-time.After(time.Second):
		t.Fatal("wait() still blocked after Close")
	}

	// Drop a change that was delivered before Close returned.
	select {
	case <-w.changes:
	default:
	}
	time.Sleep(2 * watchDebounce)
	select {
	case <-w.changes:
		t.Error("debounced change fired after Close")
	default:
	}
}
