package source

import (
	"path/filepath"

	"github.com/theirongolddev/ccq/internal/model"
)

// DataDirInfo builds the SessionInfo for a directory used directly as the
// JSONL source. When standard naming finds nothing but the tree still holds
// JSONL files, every file is treated as a session.
func DataDirInfo(dir, filter string, c Counts) model.SessionInfo {
	if c.Sessions == 0 && c.Agents == 0 {
		if c.TotalJSONL == 0 {
			return model.SessionInfo{}
		}
		return model.SessionInfo{
			SessionCount: c.TotalJSONL,
			ProjectCount: 1,
			Pattern:      model.SinglePattern(filepath.Join(dir, "**", "*.jsonl")),
		}
	}

	return model.SessionInfo{
		SessionCount: c.Sessions,
		AgentCount:   c.Agents,
		ProjectCount: 1,
		Pattern:      synthesize(dir, filter, c.Agents),
	}
}

// ProjectInfo builds the SessionInfo for one project directory. A project
// with no main sessions is reported as empty even if agent files exist.
func ProjectInfo(dir, filter string, c Counts) model.SessionInfo {
	if c.Sessions == 0 {
		return model.SessionInfo{}
	}
	return model.SessionInfo{
		SessionCount: c.Sessions,
		AgentCount:   c.Agents,
		ProjectCount: 1,
		Pattern:      synthesize(dir, filter, c.Agents),
	}
}

// AllProjectsInfo builds the SessionInfo for every project under
// projectsRoot from counts already summed across projects.
func AllProjectsInfo(projectsRoot, filter string, c Counts, projects int) model.SessionInfo {
	if c.Sessions == 0 {
		return model.SessionInfo{}
	}

	var pattern model.FilePattern
	if filter == "" {
		pattern = model.SinglePattern(filepath.Join(projectsRoot, "*", "**", "*.jsonl"))
	} else {
		pattern = synthesize(filepath.Join(projectsRoot, "*"), filter, c.Agents)
	}

	return model.SessionInfo{
		SessionCount: c.Sessions,
		AgentCount:   c.Agents,
		ProjectCount: projects,
		Pattern:      pattern,
	}
}

// synthesize returns the glob(s) for root. Filtered patterns only list the
// subagent glob when agent files were actually counted, so the engine never
// sees a glob that matches nothing.
func synthesize(root, filter string, agents int) model.FilePattern {
	if filter == "" {
		return model.SinglePattern(filepath.Join(root, "**", "*.jsonl"))
	}

	sessions := filepath.Join(root, filter+"*.jsonl")
	if agents == 0 {
		return model.SinglePattern(sessions)
	}
	return model.MultiplePattern(
		sessions,
		filepath.Join(root, filter+"*", subagentsDir, "*.jsonl"),
	)
}
