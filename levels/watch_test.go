package levels

import (
	"testing"
	"time"
)

func TestWatcherReportsChangedMaps(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	if err := writeFile(dir, "notes.txt", "ignored"); err != nil {
		t.Fatal(err)
	}
	if err := writeFile(dir, "cave.json", `{"width":1,"height":1}`); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		for _, name := range w.Poll() {
			if name != "cave" {
				t.Fatalf("unexpected map %q", name)
			}
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("no change reported for cave.json")
}
