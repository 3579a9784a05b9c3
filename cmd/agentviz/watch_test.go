package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agentviz/agentviz/internal/layout"
	"github.com/agentviz/agentviz/internal/platform"
	"github.com/agentviz/agentviz/internal/store"
	"github.com/agentviz/agentviz/internal/view"
)

func emptyPlatformServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/agents", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"agents":[]}`))
	})
	mux.HandleFunc("/api/connections", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"connections":[]}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func setWatchOutput(t *testing.T, path string) {
	t.Helper()
	old := watchOutput
	watchOutput = path
	t.Cleanup(func() { watchOutput = old })
}

func TestPollOnce_SkipsUnchangedEmptySnapshot(t *testing.T) {
	srv := emptyPlatformServer(t)
	dir := t.TempDir()
	setWatchOutput(t, filepath.Join(dir, "network.html"))

	client := platform.NewClient(srv.URL)
	db, err := store.Open(filepath.Join(dir, "snapshots.db"))
	if err != nil {
		t.Fatalf("store.Open() error = %v", err)
	}
	defer db.Close()

	vp := layout.Viewport{Width: 800, Height: 600}
	v := view.New(vp, 42, view.WithPositionCache(layout.NewPositionCache()))

	pollOnce(context.Background(), client, db, v, vp)
	pollOnce(context.Background(), client, db, v, vp)

	// An idle platform must not grow the store on every poll.
	infos, err := db.List(0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(infos) != 1 {
		t.Errorf("got %d stored snapshots after two identical empty polls, want 1", len(infos))
	}
}

func TestWriteLoadingPage(t *testing.T) {
	t.Run("html output is primed", func(t *testing.T) {
		setWatchOutput(t, filepath.Join(t.TempDir(), "network.html"))

		if err := writeLoadingPage(); err != nil {
			t.Fatalf("writeLoadingPage() error = %v", err)
		}
		data, err := os.ReadFile(watchOutput)
		if err != nil {
			t.Fatalf("reading primed output: %v", err)
		}
		if !strings.Contains(string(data), "Loading") {
			t.Error("primed page missing loading indicator")
		}
	})

	t.Run("svg output is untouched", func(t *testing.T) {
		setWatchOutput(t, filepath.Join(t.TempDir(), "network.svg"))

		if err := writeLoadingPage(); err != nil {
			t.Fatalf("writeLoadingPage() error = %v", err)
		}
		if _, err := os.Stat(watchOutput); !os.IsNotExist(err) {
			t.Error("svg output should not be primed with an html page")
		}
	})
}
