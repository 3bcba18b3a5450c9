// Package model defines domain types for ccq session discovery.
package model

import "strings"

// FilePattern addresses the JSONL files the query engine should read.
// It is either a single glob or an ordered list of globs covering
// disjoint file sets (main sessions vs. subagent files).
type FilePattern struct {
	globs    []string
	multiple bool
}

// SinglePattern returns a pattern with one glob.
func SinglePattern(glob string) FilePattern {
	return FilePattern{globs: []string{glob}}
}

// MultiplePattern returns a pattern with an ordered list of globs.
func MultiplePattern(globs ...string) FilePattern {
	return FilePattern{globs: append([]string(nil), globs...), multiple: true}
}

// IsMultiple reports whether the pattern renders as a list.
func (p FilePattern) IsMultiple() bool {
	return p.multiple
}

// Globs returns a copy of the globs in render order.
func (p FilePattern) Globs() []string {
	return append([]string(nil), p.globs...)
}

// IsEmpty reports whether the pattern addresses no files at all.
func (p FilePattern) IsEmpty() bool {
	for _, g := range p.globs {
		if g != "" {
			return false
		}
	}
	return true
}

// String renders the pattern as a DuckDB literal:
//
//	'/a/*.jsonl'
//	['/a/*.jsonl', '/b/*.jsonl']
func (p FilePattern) String() string {
	if !p.multiple {
		glob := ""
		if len(p.globs) > 0 {
			glob = p.globs[0]
		}
		return quote(glob)
	}

	var b strings.Builder
	b.WriteByte('[')
	for i, g := range p.globs {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(quote(g))
	}
	b.WriteByte(']')
	return b.String()
}

// quote wraps s in single quotes, doubling embedded quotes so a path
// containing an apostrophe stays a valid SQL literal.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// SessionInfo describes the files found by discovery. It is built once
// and never modified afterward.
type SessionInfo struct {
	SessionCount int
	AgentCount   int
	ProjectCount int
	Pattern      FilePattern
}

// Empty reports whether discovery found neither sessions nor agent files.
func (s SessionInfo) Empty() bool {
	return s.SessionCount == 0 && s.AgentCount == 0
}
