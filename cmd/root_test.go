package cmd

import (
	"testing"

	"github.com/theirongolddev/ccq/internal/config"
	"github.com/theirongolddev/ccq/internal/pipeline"
	"github.com/theirongolddev/ccq/internal/source"

	"github.com/google/go-cmp/cmp"
)

func TestBuildRequest(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.General.Workers = 4

	tests := []struct {
		name    string
		dataDir string
		session string
		args    []string
		want    pipeline.Request
	}{
		{
			name: "all projects",
			want: pipeline.Request{Mode: source.ModeAllProjects, Workers: 4},
		},
		{
			name:    "project with filter",
			session: "abc",
			args:    []string{"~/code/app"},
			want:    pipeline.Request{Mode: source.ModeProject, Path: "~/code/app", Filter: "abc", Workers: 4},
		},
		{
			name:    "data dir wins over project",
			dataDir: "/tmp/logs",
			args:    []string{"~/code/app"},
			want:    pipeline.Request{Mode: source.ModeDataDir, Path: "/tmp/logs", Workers: 4},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flagDataDir, flagSession = tt.dataDir, tt.session
			t.Cleanup(func() { flagDataDir, flagSession = "", "" })

			if diff := cmp.Diff(tt.want, buildRequest(cfg, tt.args)); diff != "" {
				t.Errorf("request mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestProjectPathVersusSubcommand(t *testing.T) {
	tests := []struct {
		arg  string
		want string
	}{
		{"config", "config"},
		{"views", "views"},
		{"./config", "ccq"},
		{"./views", "ccq"},
		{"~/code/app", "ccq"},
	}
	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			cmd, _, err := rootCmd.Find([]string{tt.arg})
			if err != nil {
				t.Fatal(err)
			}
			if cmd.Name() != tt.want {
				t.Errorf("Find(%q) = %s, want %s", tt.arg, cmd.Name(), tt.want)
			}
		})
	}
}
