package configfile

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"wardmind/internal/app/heal"
)

const artifact = `# combat
attackAuto 2
attackDistance 1.5
` + heal.DisabledMarker + `teleportAuto 1
`

func writeArtifact(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.txt")
	if err := os.WriteFile(path, []byte(artifact), 0o644); err != nil {
		t.Fatalf("seed artifact: %v", err)
	}
	return NewStore(path)
}

func TestStore_RoundTrip(t *testing.T) {
	store := writeArtifact(t)
	ctx := context.Background()

	text, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if text != artifact {
		t.Fatalf("load mismatch:\n%s", text)
	}

	rewritten, _ := heal.Neutralize(text, []string{"attackAuto"})
	if err := store.Store(ctx, rewritten); err != nil {
		t.Fatalf("store: %v", err)
	}
	text, _ = store.Load(ctx)
	if !strings.Contains(text, heal.DisabledMarker+"attackAuto 2") {
		t.Fatalf("rewrite lost:\n%s", text)
	}
}

func TestStore_LoadMissingArtifact(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "absent.txt"))
	if _, err := store.Load(context.Background()); err == nil {
		t.Fatalf("missing artifact must error")
	}
}

func TestStore_LeavesNoTempFiles(t *testing.T) {
	store := writeArtifact(t)
	if err := store.Store(context.Background(), "lockMap prt_fild08\n"); err != nil {
		t.Fatalf("store: %v", err)
	}
	entries, err := os.ReadDir(filepath.Dir(store.Path()))
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected only the artifact, found %d entries", len(entries))
	}
}

func TestSignaler_StampsMarker(t *testing.T) {
	marker := filepath.Join(t.TempDir(), "reload.signal")
	s := NewSignaler(marker)

	if err := s.Signal(context.Background()); err != nil {
		t.Fatalf("signal: %v", err)
	}
	data, err := os.ReadFile(marker)
	if err != nil {
		t.Fatalf("marker not written: %v", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		t.Fatalf("marker is empty")
	}
}

func TestWatcher_SnapshotCountsLines(t *testing.T) {
	store := writeArtifact(t)
	w, err := NewWatcher(store)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer w.Close()

	snap := w.Snapshot()
	if snap.LoadError != "" {
		t.Fatalf("load error: %s", snap.LoadError)
	}
	// attackAuto and attackDistance are active; the comment header and the
	// neutralized teleportAuto line are not.
	if snap.ActiveLines != 2 || snap.DisabledLines != 1 || snap.Lines != 4 {
		t.Fatalf("snapshot=%+v", snap)
	}
}

func TestWatcher_RefreshAfterRewrite(t *testing.T) {
	store := writeArtifact(t)
	w, err := NewWatcher(store)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer w.Close()

	text, _ := store.Load(context.Background())
	rewritten, _ := heal.Neutralize(text, []string{"attackAuto"})
	if err := store.Store(context.Background(), rewritten); err != nil {
		t.Fatalf("store: %v", err)
	}

	w.Refresh()
	snap := w.Snapshot()
	if snap.ActiveLines != 1 || snap.DisabledLines != 2 {
		t.Fatalf("snapshot=%+v", snap)
	}
}

func TestWatcher_MissingArtifactReportsError(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "absent.txt"))
	w, err := NewWatcher(store)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer w.Close()

	if w.Snapshot().LoadError == "" {
		t.Fatalf("missing artifact must surface in the snapshot")
	}
}
