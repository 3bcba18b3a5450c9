package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/theirongolddev/ccq/internal/config"
	"github.com/theirongolddev/ccq/internal/source"
)

func touch(t testing.TB, root string, rel ...string) {
	t.Helper()
	for _, r := range rel {
		full := filepath.Join(root, filepath.FromSlash(r))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte("{}\n"), 0o600); err != nil {
			t.Fatal(err)
		}
	}
}

func testPaths(t *testing.T) config.Paths {
	t.Helper()
	home := t.TempDir()
	return config.Paths{
		Home:         home,
		ProjectsRoot: filepath.Join(home, ".claude", "projects"),
		WorkDir:      "/work",
	}
}

func TestDiscover_AllProjects(t *testing.T) {
	paths := testPaths(t)
	touch(t, paths.ProjectsRoot,
		"-work-a/s1.jsonl",
		"-work-a/s1/subagents/agent-1.jsonl",
		"-work-b/s2.jsonl",
		"-work-b/s3.jsonl",
		"-work-c/s4.jsonl",
		"-work-c/s4/subagents/agent-2.jsonl",
		"-work-c/s4/subagents/agent-3.jsonl",
	)

	for _, workers := range []int{0, 1, 2, 16} {
		res, err := Discover(context.Background(), paths, Request{Workers: workers}, nil)
		if err != nil {
			t.Fatalf("workers=%d: unexpected error: %v", workers, err)
		}
		info := res.Info
		if info.SessionCount != 4 || info.AgentCount != 3 || info.ProjectCount != 3 {
			t.Errorf("workers=%d: counts = (%d, %d, %d), want (4, 3, 3)",
				workers, info.SessionCount, info.AgentCount, info.ProjectCount)
		}
		want := "'" + filepath.Join(paths.ProjectsRoot, "*", "**", "*.jsonl") + "'"
		if info.Pattern.String() != want {
			t.Errorf("pattern = %s, want %s", info.Pattern, want)
		}
	}
}

func TestDiscover_AllProjectsFiltered(t *testing.T) {
	paths := testPaths(t)
	touch(t, paths.ProjectsRoot,
		"-work-a/abc1.jsonl",
		"-work-a/abc1/subagents/agent-1.jsonl",
		"-work-b/def2.jsonl",
	)

	res, err := Discover(context.Background(), paths, Request{Filter: "abc"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Info.SessionCount != 1 || res.Info.AgentCount != 1 {
		t.Errorf("counts = (%d, %d), want (1, 1)", res.Info.SessionCount, res.Info.AgentCount)
	}
	if !res.Info.Pattern.IsMultiple() {
		t.Errorf("expected multiple pattern, got %s", res.Info.Pattern)
	}
}

func TestDiscover_AllProjectsMissingRoot(t *testing.T) {
	paths := testPaths(t)

	res, err := Discover(context.Background(), paths, Request{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Info.Empty() {
		t.Errorf("expected empty info, got %+v", res.Info)
	}
	if res.SearchedPath != paths.ProjectsRoot {
		t.Errorf("SearchedPath = %q, want %q", res.SearchedPath, paths.ProjectsRoot)
	}
}

func TestDiscover_Project(t *testing.T) {
	paths := testPaths(t)
	touch(t, paths.ProjectsRoot, "-work-app/s1.jsonl", "-work-other/s2.jsonl")

	res, err := Discover(context.Background(), paths, Request{Mode: source.ModeProject, Path: "app"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantDir := filepath.Join(paths.ProjectsRoot, "-work-app")
	if res.SearchedPath != wantDir {
		t.Errorf("SearchedPath = %q, want %q", res.SearchedPath, wantDir)
	}
	if res.Info.SessionCount != 1 || res.Info.ProjectCount != 1 {
		t.Errorf("counts = (%d, project %d), want (1, 1)", res.Info.SessionCount, res.Info.ProjectCount)
	}
}

func TestDiscover_ProjectMissing(t *testing.T) {
	paths := testPaths(t)

	res, err := Discover(context.Background(), paths, Request{Mode: source.ModeProject, Path: "/nowhere"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Info.Empty() || !res.Info.Pattern.IsEmpty() {
		t.Errorf("expected empty info, got %+v", res.Info)
	}
	if res.SearchedPath != filepath.Join(paths.ProjectsRoot, "-nowhere") {
		t.Errorf("SearchedPath = %q", res.SearchedPath)
	}
}

func TestDiscover_DataDirFallback(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "agent-weird.jsonl", "nested/subagents/notes.jsonl")

	res, err := Discover(context.Background(), config.Paths{}, Request{Mode: source.ModeDataDir, Path: dir}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Info.SessionCount != 2 || res.Info.AgentCount != 0 {
		t.Errorf("counts = (%d, %d), want (2, 0)", res.Info.SessionCount, res.Info.AgentCount)
	}
}

func TestDiscover_CanceledContext(t *testing.T) {
	paths := testPaths(t)
	touch(t, paths.ProjectsRoot, "-a/s.jsonl", "-b/s.jsonl")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Discover(ctx, paths, Request{}, nil); err == nil {
		t.Fatal("expected error for canceled context")
	}
}
