package seed

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
)

func TestHolder(t *testing.T) {
	var zero Holder
	if got := zero.Text(); got != "" {
		t.Errorf("zero Holder Text = %q, want empty", got)
	}

	h := NewHolder("first")
	if got := h.Text(); got != "first" {
		t.Errorf("Text = %q, want first", got)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				h.Set("concurrent")
				_ = h.Text()
			}
		}()
	}
	wg.Wait()
	if got := h.Text(); got != "concurrent" {
		t.Errorf("Text = %q after concurrent sets", got)
	}
}

func TestStripBOM(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"\uFEFFhello", "hello"},
		{"hello", "hello"},
		{"\uFEFF\uFEFFx", "\uFEFFx"},
		{"", ""},
		{"a\uFEFF", "a\uFEFF"},
	}
	for _, tt := range tests {
		if got := StripBOM(tt.in); got != tt.want {
			t.Errorf("StripBOM(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSamples(t *testing.T) {
	markers := map[string]string{
		PresetPython: "def main",
		PresetJava:   "public class Main",
		PresetCPP:    "#include",
	}
	for name, marker := range markers {
		t.Run(name, func(t *testing.T) {
			text, err := Sample(name)
			if err != nil {
				t.Fatalf("Sample: %v", err)
			}
			if strings.HasPrefix(text, "\uFEFF") {
				t.Error("sample still carries a byte-order mark")
			}
			if !strings.Contains(text, marker) {
				t.Errorf("sample missing %q", marker)
			}
			if n := len([]rune(strings.Join(strings.Fields(text), ""))); n <= 20 {
				t.Errorf("sample too short to seed glyphs: %d runes", n)
			}
		})
	}

	if _, err := Sample(PresetUser); !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("Sample(user) error = %v, want ErrUnknownPreset", err)
	}
}

func TestSwitcher(t *testing.T) {
	h := NewHolder("")
	s, err := NewSwitcher(h, PresetPython)
	if err != nil {
		t.Fatalf("NewSwitcher: %v", err)
	}
	python, _ := Sample(PresetPython)
	if h.Text() != python {
		t.Error("holder not seeded with initial preset")
	}

	s.SetUser("user text")
	if h.Text() != python {
		t.Error("user text published while another preset active")
	}

	order := []string{PresetJava, PresetCPP, PresetUser, PresetPython}
	for _, want := range order {
		if got := s.Next(); got != want {
			t.Fatalf("Next = %q, want %q", got, want)
		}
	}

	if err := s.SelectIndex(3); err != nil {
		t.Fatalf("SelectIndex(3): %v", err)
	}
	if s.Active() != PresetUser || h.Text() != "user text" {
		t.Errorf("active %q text %q, want user slot", s.Active(), h.Text())
	}

	s.SetUser("\uFEFFedited")
	if h.Text() != "edited" || s.User() != "edited" {
		t.Errorf("user edit not published: %q", h.Text())
	}

	if err := s.Select("rust"); !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("Select(rust) = %v, want ErrUnknownPreset", err)
	}
	if err := s.SelectIndex(9); !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("SelectIndex(9) = %v, want ErrUnknownPreset", err)
	}
	if s.Active() != PresetUser {
		t.Errorf("failed select changed active preset to %q", s.Active())
	}

	if _, err := NewSwitcher(h, "nope"); err == nil {
		t.Error("NewSwitcher accepted unknown preset")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	text, err := LoadFile(filepath.Join(dir, "missing.txt"))
	if err != nil || text != "" {
		t.Errorf("missing file: %q, %v", text, err)
	}

	path := filepath.Join(dir, "seed.txt")
	if err := os.WriteFile(path, []byte("\uFEFFcontent"), 0o644); err != nil {
		t.Fatal(err)
	}
	text, err = LoadFile(path)
	if err != nil || text != "content" {
		t.Errorf("LoadFile = %q, %v", text, err)
	}

	if _, err := LoadFile(dir); err == nil {
		t.Error("LoadFile on a directory succeeded")
	}
}

func TestWatcherReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scratch.txt")
	if err := os.WriteFile(path, []byte("initial"), 0o644); err != nil {
		t.Fatal(err)
	}

	loaded := make(chan string, 16)
	w, err := NewWatcher(path, func(s string) { loaded <- s }, nil)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	// Unrelated files in the same directory are ignored
	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("updated seed"), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(3 * time.Second)
	for {
		select {
		case got := <-loaded:
			if got == "updated seed" {
				return
			}
		case <-deadline:
			t.Fatal("watcher did not reload the file")
		}
	}
}

func TestWatcherClose(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(filepath.Join(dir, "seed.txt"), func(string) {}, nil)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}

func TestWatcherMissingDirectory(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "nope", "seed.txt"), func(string) {}, nil)
	if err == nil {
		t.Error("NewWatcher succeeded on a missing directory")
	}
}
