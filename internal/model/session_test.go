package model

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFilePatternString(t *testing.T) {
	tests := []struct {
		name    string
		pattern FilePattern
		want    string
	}{
		{"single", SinglePattern("/a/*.jsonl"), "'/a/*.jsonl'"},
		{"multiple", MultiplePattern("/a/*.jsonl", "/b/*.jsonl"), "['/a/*.jsonl', '/b/*.jsonl']"},
		{"multiple one", MultiplePattern("/a/*.jsonl"), "['/a/*.jsonl']"},
		{"apostrophe", SinglePattern("/o'brien/*.jsonl"), "'/o''brien/*.jsonl'"},
		{"zero value", FilePattern{}, "''"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pattern.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFilePatternGlobsIsCopy(t *testing.T) {
	p := MultiplePattern("/a/*.jsonl", "/b/*.jsonl")
	globs := p.Globs()
	globs[0] = "mutated"

	if diff := cmp.Diff([]string{"/a/*.jsonl", "/b/*.jsonl"}, p.Globs()); diff != "" {
		t.Errorf("Globs() changed after caller mutation (-want +got):\n%s", diff)
	}
}

func TestFilePatternIsEmpty(t *testing.T) {
	if !(FilePattern{}).IsEmpty() {
		t.Error("zero FilePattern should be empty")
	}
	if !SinglePattern("").IsEmpty() {
		t.Error("SinglePattern(\"\") should be empty")
	}
	if SinglePattern("/a/*.jsonl").IsEmpty() {
		t.Error("SinglePattern with glob should not be empty")
	}
}

func TestSessionInfoEmpty(t *testing.T) {
	if !(SessionInfo{}).Empty() {
		t.Error("zero SessionInfo should be empty")
	}
	if (SessionInfo{AgentCount: 1}).Empty() {
		t.Error("SessionInfo with agents should not be empty")
	}
}

// FuzzFilePatternString checks that a rendered single glob is one quoted
// SQL literal that unquotes back to the input.
func FuzzFilePatternString(f *testing.F) {
	f.Add("/home/me/.claude/projects/*/**/*.jsonl")
	f.Add("it's")
	f.Add("''")
	f.Fuzz(func(t *testing.T, glob string) {
		got := SinglePattern(glob).String()
		if len(got) < 2 || got[0] != '\'' || got[len(got)-1] != '\'' {
			t.Fatalf("not a quoted literal: %q", got)
		}
		body := got[1 : len(got)-1]
		if strings.Count(body, "'")%2 != 0 {
			t.Fatalf("unbalanced quotes in %q", got)
		}
		if back := strings.ReplaceAll(body, "''", "'"); back != glob {
			t.Errorf("unquoted %q, want %q", back, glob)
		}
	})
}
