package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestWatcherDebouncesImageWrites(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "processed")
	if err := os.MkdirAll(out, 0755); err != nil {
		t.Fatal(err)
	}

	var mu sync.Mutex
	calls := map[string]int{}
	got := make(chan string, 8)

	w := &Watcher{
		Dir:      dir,
		Skip:     out,
		Debounce: 50 * time.Millisecond,
		OnChange: func(path string) {
			mu.Lock()
			calls[filepath.Base(path)]++
			mu.Unlock()
			got <- path
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- w.Run(ctx) }()
	time.Sleep(100 * time.Millisecond) // let the watcher register

	icon := filepath.Join(dir, "icon.png")
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(icon, []byte{byte(i)}, 0644); err != nil {
			t.Fatal(err)
		}
	}
	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644)
	os.WriteFile(filepath.Join(out, "icon.png"), []byte("x"), 0644)

	select {
	case p := <-got:
		if filepath.Base(p) != "icon.png" || filepath.Dir(p) != dir {
			t.Errorf("OnChange(%s)", p)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no change reported")
	}

	time.Sleep(200 * time.Millisecond)
	cancel()
	if err := <-errc; err != nil {
		t.Fatal(err)
	}

	mu.Lock()
	defer mu.Unlock()
	if calls["icon.png"] != 1 || len(calls) != 1 {
		t.Errorf("calls = %v, want one call for icon.png", calls)
	}
}

func TestIsUnder(t *testing.T) {
	sep := string(filepath.Separator)
	tests := []struct {
		path, dir string
		want      bool
	}{
		{sep + "a" + sep + "b", sep + "a", true},
		{sep + "a", sep + "a", true},
		{sep + "a" + sep + ".hidden", sep + "a", true},
		{sep + "ab", sep + "a", false},
		{sep + "x" + sep + "a", sep + "a", false},
	}
	for _, tt := range tests {
		if got := isUnder(tt.path, tt.dir); got != tt.want {
			t.Errorf("isUnder(%q, %q) = %v, want %v", tt.path, tt.dir, got, tt.want)
		}
	}
}
