package source

import (
	"path/filepath"
	"strings"

	"github.com/theirongolddev/ccq/internal/config"
)

// ResolveProjectDir maps a user-supplied project path to the directory
// holding that project's logs under the projects root.
//
//	~/code/app      -> <root>/-home-me-code-app
//	app (cwd /src)  -> <root>/-src-app
func ResolveProjectDir(paths config.Paths, userPath string) (string, error) {
	abs, err := resolveProjectPath(paths, userPath)
	if err != nil {
		return "", err
	}
	return filepath.Join(paths.ProjectsRoot, ProjectSlug(abs)), nil
}

// resolveProjectPath expands a leading ~ and anchors relative paths at
// CLAUDE_PROJECT_DIR, or the working directory when that is unset.
func resolveProjectPath(paths config.Paths, p string) (string, error) {
	resolved := p
	switch {
	case p == "~":
		if paths.Home == "" {
			return "", config.ErrNoHome
		}
		resolved = paths.Home
	case strings.HasPrefix(p, "~/"):
		if paths.Home == "" {
			return "", config.ErrNoHome
		}
		resolved = filepath.Join(paths.Home, p[2:])
	}

	if filepath.IsAbs(resolved) {
		return resolved, nil
	}

	base := paths.ProjectDir
	if base == "" {
		base = paths.WorkDir
	}
	return filepath.Join(base, resolved), nil
}

// ProjectSlug encodes an absolute path the way Claude Code names project
// directories: every "/" and "." becomes "-".
func ProjectSlug(path string) string {
	return strings.NewReplacer("/", "-", ".", "-").Replace(path)
}
