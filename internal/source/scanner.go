// Package source discovers Claude Code JSONL session files and synthesizes
// the glob patterns the query engine reads them through.
package source

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	subagentsDir = "subagents"
	agentPrefix  = "agent-"
	jsonlExt     = ".jsonl"
)

// WalkAndCount walks root once and classifies every *.jsonl file.
//
// Layout:
//
//	<root>/<session-id>.jsonl                      session
//	<root>/<session-id>/subagents/agent-<id>.jsonl agent
//
// With a non-empty filter, sessions count when their basename starts with
// it, while agents count when the session directory owning "subagents"
// starts with it. Agent filenames never carry the session ID, so the filter
// has to look two levels up.
func WalkAndCount(root, filter string) Counts {
	var c Counts

	// WalkDir does not descend into a symlinked root on its own.
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}

	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			c.Skipped++
			return nil //nolint:nilerr // intentionally skip unreadable entries
		}
		if !d.Type().IsRegular() {
			return nil
		}
		name := d.Name()
		if !strings.HasSuffix(name, jsonlExt) {
			return nil
		}

		c.TotalJSONL++

		isAgentName := strings.HasPrefix(name, agentPrefix)
		parent := filepath.Dir(path)

		switch {
		case isAgentName && filepath.Base(parent) == subagentsDir:
			sessionDir := filepath.Base(filepath.Dir(parent))
			if filter == "" || strings.HasPrefix(sessionDir, filter) {
				c.Agents++
			}
		case !isAgentName && !underSubagents(root, path):
			if filter == "" || strings.HasPrefix(name, filter) {
				c.Sessions++
			}
		}
		return nil
	})

	return c
}

// underSubagents reports whether any directory between root and path is
// named "subagents". Components of root itself are not inspected, so a data
// dir that lives inside a subagents directory still yields sessions.
func underSubagents(root, path string) bool {
	rel, err := filepath.Rel(root, filepath.Dir(path))
	if err != nil {
		return false
	}
	for _, part := range strings.Split(rel, string(filepath.Separator)) {
		if part == subagentsDir {
			return true
		}
	}
	return false
}

// ListProjectDirs returns the project directories directly under
// projectsRoot, sorted by name. A missing root yields no directories.
func ListProjectDirs(projectsRoot string) []string {
	entries, err := os.ReadDir(projectsRoot)
	if err != nil {
		return nil
	}

	dirs := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, filepath.Join(projectsRoot, e.Name()))
		}
	}
	sort.Strings(dirs)
	return dirs
}
