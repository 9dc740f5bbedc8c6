package editor

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/go-chi/chi/v5"
)

func TestPositionArgs(t *testing.T) {
	tests := []struct {
		bin  string
		want []string
	}{
		{"code", []string{"--goto", "/p/a.vue:3:7"}},
		{"/usr/local/bin/cursor", []string{"--goto", "/p/a.vue:3:7"}},
		{"subl", []string{"/p/a.vue:3:7"}},
		{"zed", []string{"/p/a.vue:3:7"}},
		{"webstorm", []string{"--line", "3", "--column", "7", "/p/a.vue"}},
		{"idea64.exe", []string{"--line", "3", "--column", "7", "/p/a.vue"}},
		{"nvim", []string{"+call cursor(3,7)", "/p/a.vue"}},
		{"emacsclient", []string{"+3:7", "/p/a.vue"}},
		{"my-weird-editor", []string{"/p/a.vue"}},
	}
	for _, tt := range tests {
		got := positionArgs(tt.bin, "/p/a.vue", 3, 7)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("positionArgs(%q) = %v, want %v", tt.bin, got, tt.want)
		}
	}
}

func TestLaunchArgsClampsPosition(t *testing.T) {
	bin, args := launchArgs("code", "/p/a.vue", 0, -5)
	if bin != "code" {
		t.Errorf("bin = %q, want code", bin)
	}
	want := []string{"--goto", "/p/a.vue:1:1"}
	if !reflect.DeepEqual(args, want) {
		t.Errorf("args = %v, want %v", args, want)
	}
}

func TestLaunchArgsKeepsEditorFlags(t *testing.T) {
	bin, args := launchArgs("code --reuse-window", "/p/a.vue", 2, 4)
	if bin != "code" {
		t.Errorf("bin = %q, want code", bin)
	}
	want := []string{"--reuse-window", "--goto", "/p/a.vue:2:4"}
	if !reflect.DeepEqual(args, want) {
		t.Errorf("args = %v, want %v", args, want)
	}
}

func TestOpenMissingFile(t *testing.T) {
	l := New(t.TempDir(), "echo")
	if err := l.Open("missing.vue", 1, 1); err == nil {
		t.Error("Open() error = nil for a missing file, want error")
	}
}

func TestOpenResolvesRelativePath(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "App.vue"), []byte("<template/>"), 0o644); err != nil {
		t.Fatal(err)
	}
	l := New(root, "echo")
	if err := l.Open("App.vue", 3, 7); err != nil {
		t.Errorf("Open() error = %v, want nil", err)
	}
}

func TestPickEditorPrefersConfigured(t *testing.T) {
	t.Setenv("LAUNCH_EDITOR", "from-env")
	l := New(".", "configured")
	got, err := l.pickEditor()
	if err != nil {
		t.Fatalf("pickEditor() error = %v", err)
	}
	if got != "configured" {
		t.Errorf("pickEditor() = %q, want the configured value", got)
	}
}

func TestPickEditorEnvChain(t *testing.T) {
	t.Setenv("LAUNCH_EDITOR", "")
	t.Setenv("VISUAL", "visual-editor")
	t.Setenv("EDITOR", "plain-editor")
	l := New(".", "")
	got, err := l.pickEditor()
	if err != nil {
		t.Fatalf("pickEditor() error = %v", err)
	}
	if got != "visual-editor" {
		t.Errorf("pickEditor() = %q, want VISUAL before EDITOR", got)
	}
}

func TestHandleOpenMissingFileParam(t *testing.T) {
	r := chi.NewRouter()
	RegisterRoutes(r, New(t.TempDir(), "echo"))

	req := httptest.NewRequest(http.MethodGet, OpenPath+"?line=3&column=7", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestHandleOpenAlwaysAccepts(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "App.vue"), []byte("<template/>"), 0o644); err != nil {
		t.Fatal(err)
	}
	r := chi.NewRouter()
	RegisterRoutes(r, New(root, "echo"))

	// A launchable target returns 204.
	req := httptest.NewRequest(http.MethodGet, OpenPath+"?file=App.vue&line=3&column=7", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}

	// A failing launch is logged, not surfaced: still 204.
	req = httptest.NewRequest(http.MethodGet, OpenPath+"?file=missing.vue&line=1&column=1", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Errorf("status for missing target = %d, want %d", rec.Code, http.StatusNoContent)
	}
}
