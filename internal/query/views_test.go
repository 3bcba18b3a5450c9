package query

import (
	"strings"
	"testing"

	"github.com/theirongolddev/ccq/internal/model"
)

func TestBuildViewsSQLCreatesEveryView(t *testing.T) {
	sql := BuildViewsSQL(model.SinglePattern("/data/**/*.jsonl"))

	if len(Views) != 11 {
		t.Fatalf("catalog has %d views, want 11", len(Views))
	}
	for _, v := range Views {
		if !strings.Contains(sql, "CREATE OR REPLACE VIEW "+v.Name+" AS") {
			t.Errorf("missing view %s", v.Name)
		}
	}
}

func TestBuildViewsSQLEmbedsPattern(t *testing.T) {
	tests := []struct {
		name    string
		pattern model.FilePattern
		want    string
	}{
		{"single", model.SinglePattern("/p/**/*.jsonl"), "'/p/**/*.jsonl'"},
		{"multiple", model.MultiplePattern("/p/abc*.jsonl", "/p/abc*/subagents/*.jsonl"), "['/p/abc*.jsonl', '/p/abc*/subagents/*.jsonl']"},
		{"quote", model.SinglePattern("/it's/*.jsonl"), "'/it''s/*.jsonl'"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql := BuildViewsSQL(tt.pattern)
			// Once in read_ndjson, once in read_ndjson_objects.
			if got := strings.Count(sql, tt.want); got != 2 {
				t.Errorf("pattern %s appears %d times, want 2", tt.want, got)
			}
			if strings.Contains(sql, "{{") {
				t.Error("unreplaced placeholder in output")
			}
		})
	}
}

func TestBuildViewsSQLDeterministic(t *testing.T) {
	p := model.MultiplePattern("/a/*.jsonl", "/a/*/subagents/*.jsonl")
	if BuildViewsSQL(p) != BuildViewsSQL(p) {
		t.Error("same pattern produced different SQL")
	}
}

func TestBuildViewsSQLDeclaresColumns(t *testing.T) {
	sql := BuildViewsSQL(model.SinglePattern("/x/*.jsonl"))
	for _, c := range messageColumns {
		decl := "'" + c[0] + "': '" + c[1] + "'"
		if !strings.Contains(sql, decl) {
			t.Errorf("missing column declaration %s", decl)
		}
	}
}
