package source

// Counts is the result of classifying the JSONL files under one root.
type Counts struct {
	Sessions   int // main session files matching the filter
	Agents     int // subagent files whose owning session matches the filter
	TotalJSONL int // every *.jsonl file seen, classified or not
	Skipped    int // entries the walk could not read
}

// Add returns the pairwise sum of c and o.
func (c Counts) Add(o Counts) Counts {
	return Counts{
		Sessions:   c.Sessions + o.Sessions,
		Agents:     c.Agents + o.Agents,
		TotalJSONL: c.TotalJSONL + o.TotalJSONL,
		Skipped:    c.Skipped + o.Skipped,
	}
}

// Mode selects how discovery addresses the log tree.
type Mode int

const (
	// ModeAllProjects scans every directory under the projects root.
	ModeAllProjects Mode = iota
	// ModeProject scans the directory of one named project.
	ModeProject
	// ModeDataDir treats a directory as the JSONL source directly.
	ModeDataDir
)

func (m Mode) String() string {
	switch m {
	case ModeProject:
		return "project"
	case ModeDataDir:
		return "data-dir"
	default:
		return "all-projects"
	}
}
