package config

import (
	"errors"
	"os"
	"path/filepath"
)

// ProjectDirEnv names the variable that relative project paths resolve against.
const ProjectDirEnv = "CLAUDE_PROJECT_DIR"

// ErrNoHome is returned when a path needs the home directory and none is known.
var ErrNoHome = errors.New("no home directory found")

// Paths is the filesystem context discovery runs in. It is probed once at
// startup and passed down explicitly so tests can substitute a synthetic root.
type Paths struct {
	Home         string // user home directory, empty if unknown
	ProjectsRoot string // <claude dir>/projects
	ProjectDir   string // value of CLAUDE_PROJECT_DIR, if set
	WorkDir      string // process working directory at startup
}

// ProbePaths reads the environment once and builds Paths. A non-empty
// claudeDir (from config or flag) replaces the default ~/.claude.
func ProbePaths(claudeDir string) (Paths, error) {
	home, _ := os.UserHomeDir()
	wd, _ := os.Getwd()

	p := Paths{
		Home:       home,
		ProjectDir: os.Getenv(ProjectDirEnv),
		WorkDir:    wd,
	}

	switch {
	case claudeDir != "":
		p.ProjectsRoot = filepath.Join(claudeDir, "projects")
	case home != "":
		p.ProjectsRoot = filepath.Join(home, ".claude", "projects")
	default:
		return p, ErrNoHome
	}
	return p, nil
}
