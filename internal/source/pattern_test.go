package source

import (
	"testing"

	"github.com/theirongolddev/ccq/internal/model"
)

func TestDataDirInfo(t *testing.T) {
	tests := []struct {
		name   string
		filter string
		counts Counts
		want   model.SessionInfo
	}{
		{
			name:   "no files",
			counts: Counts{},
			want:   model.SessionInfo{},
		},
		{
			name:   "nonstandard names fall back to every file",
			counts: Counts{TotalJSONL: 4},
			want: model.SessionInfo{
				SessionCount: 4,
				ProjectCount: 1,
				Pattern:      model.SinglePattern("/data/**/*.jsonl"),
			},
		},
		{
			name:   "fallback ignores filter",
			filter: "abc",
			counts: Counts{TotalJSONL: 2},
			want: model.SessionInfo{
				SessionCount: 2,
				ProjectCount: 1,
				Pattern:      model.SinglePattern("/data/**/*.jsonl"),
			},
		},
		{
			name:   "unfiltered",
			counts: Counts{Sessions: 2, Agents: 1, TotalJSONL: 3},
			want: model.SessionInfo{
				SessionCount: 2,
				AgentCount:   1,
				ProjectCount: 1,
				Pattern:      model.SinglePattern("/data/**/*.jsonl"),
			},
		},
		{
			name:   "filtered without agents",
			filter: "abc",
			counts: Counts{Sessions: 1, TotalJSONL: 2},
			want: model.SessionInfo{
				SessionCount: 1,
				ProjectCount: 1,
				Pattern:      model.SinglePattern("/data/abc*.jsonl"),
			},
		},
		{
			name:   "filtered with agents",
			filter: "abc",
			counts: Counts{Sessions: 1, Agents: 2, TotalJSONL: 5},
			want: model.SessionInfo{
				SessionCount: 1,
				AgentCount:   2,
				ProjectCount: 1,
				Pattern:      model.MultiplePattern("/data/abc*.jsonl", "/data/abc*/subagents/*.jsonl"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DataDirInfo("/data", tt.filter, tt.counts)
			assertInfo(t, tt.want, got)
		})
	}
}

func TestProjectInfo(t *testing.T) {
	if got := ProjectInfo("/p", "", Counts{Agents: 3, TotalJSONL: 3}); !got.Empty() || !got.Pattern.IsEmpty() {
		t.Errorf("project without sessions should be empty, got %+v", got)
	}

	got := ProjectInfo("/p", "", Counts{Sessions: 2, Agents: 1})
	assertInfo(t, model.SessionInfo{
		SessionCount: 2,
		AgentCount:   1,
		ProjectCount: 1,
		Pattern:      model.SinglePattern("/p/**/*.jsonl"),
	}, got)

	got = ProjectInfo("/p", "f0", Counts{Sessions: 1, Agents: 1})
	assertInfo(t, model.SessionInfo{
		SessionCount: 1,
		AgentCount:   1,
		ProjectCount: 1,
		Pattern:      model.MultiplePattern("/p/f0*.jsonl", "/p/f0*/subagents/*.jsonl"),
	}, got)
}

func TestAllProjectsInfo(t *testing.T) {
	got := AllProjectsInfo("/root/projects", "", Counts{Sessions: 5, Agents: 2}, 3)
	assertInfo(t, model.SessionInfo{
		SessionCount: 5,
		AgentCount:   2,
		ProjectCount: 3,
		Pattern:      model.SinglePattern("/root/projects/*/**/*.jsonl"),
	}, got)

	got = AllProjectsInfo("/root/projects", "ab", Counts{Sessions: 1}, 3)
	assertInfo(t, model.SessionInfo{
		SessionCount: 1,
		ProjectCount: 3,
		Pattern:      model.SinglePattern("/root/projects/*/ab*.jsonl"),
	}, got)

	got = AllProjectsInfo("/root/projects", "ab", Counts{Sessions: 1, Agents: 4}, 3)
	assertInfo(t, model.SessionInfo{
		SessionCount: 1,
		AgentCount:   4,
		ProjectCount: 3,
		Pattern:      model.MultiplePattern("/root/projects/*/ab*.jsonl", "/root/projects/*/ab*/subagents/*.jsonl"),
	}, got)

	if got := AllProjectsInfo("/root/projects", "", Counts{}, 3); !got.Empty() {
		t.Errorf("expected empty info, got %+v", got)
	}
}

func assertInfo(t *testing.T, want, got model.SessionInfo) {
	t.Helper()
	if got.SessionCount != want.SessionCount || got.AgentCount != want.AgentCount || got.ProjectCount != want.ProjectCount {
		t.Errorf("counts = (%d, %d, %d), want (%d, %d, %d)",
			got.SessionCount, got.AgentCount, got.ProjectCount,
			want.SessionCount, want.AgentCount, want.ProjectCount)
	}
	if got.Pattern.String() != want.Pattern.String() {
		t.Errorf("pattern = %s, want %s", got.Pattern, want.Pattern)
	}
}
