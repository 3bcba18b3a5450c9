// Package pipeline runs session discovery across the three addressing modes.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/theirongolddev/ccq/internal/config"
	"github.com/theirongolddev/ccq/internal/model"
	"github.com/theirongolddev/ccq/internal/source"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Request describes what to discover.
type Request struct {
	Mode    source.Mode
	Path    string // data dir (ModeDataDir) or user project path (ModeProject)
	Filter  string // session ID prefix, optional
	Workers int    // all-projects walk concurrency, GOMAXPROCS when < 1
}

// Result is the outcome of discovery.
type Result struct {
	Info model.SessionInfo
	// SearchedPath is the directory that was scanned, reported when
	// nothing was found.
	SearchedPath string
}

// Discover resolves the request against paths and classifies the log tree.
func Discover(ctx context.Context, paths config.Paths, req Request, logger *zap.Logger) (*Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch req.Mode {
	case source.ModeDataDir:
		c := source.WalkAndCount(req.Path, req.Filter)
		logCounts(logger, req.Mode, req.Path, c)
		return &Result{
			Info:         source.DataDirInfo(req.Path, req.Filter, c),
			SearchedPath: req.Path,
		}, nil

	case source.ModeProject:
		dir, err := source.ResolveProjectDir(paths, req.Path)
		if err != nil {
			return nil, fmt.Errorf("resolving project %s: %w", req.Path, err)
		}
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			logger.Debug("project directory not found", zap.String("dir", dir))
			return &Result{Info: model.SessionInfo{ProjectCount: 1}, SearchedPath: dir}, nil
		}
		c := source.WalkAndCount(dir, req.Filter)
		logCounts(logger, req.Mode, dir, c)
		return &Result{
			Info:         source.ProjectInfo(dir, req.Filter, c),
			SearchedPath: dir,
		}, nil

	default:
		dirs := source.ListProjectDirs(paths.ProjectsRoot)
		c, err := countAll(ctx, dirs, req.Filter, req.Workers, logger)
		if err != nil {
			return nil, err
		}
		logCounts(logger, req.Mode, paths.ProjectsRoot, c)
		return &Result{
			Info:         source.AllProjectsInfo(paths.ProjectsRoot, req.Filter, c, len(dirs)),
			SearchedPath: paths.ProjectsRoot,
		}, nil
	}
}

// countAll walks each project directory on a bounded worker pool and sums
// the results. Each worker writes only its own slot, so the reduction
// needs no locking and its order does not matter.
func countAll(ctx context.Context, dirs []string, filter string, workers int, logger *zap.Logger) (source.Counts, error) {
	if len(dirs) == 0 {
		return source.Counts{}, nil
	}

	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(dirs) {
		workers = len(dirs)
	}

	results := make([]source.Counts, len(dirs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, dir := range dirs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = source.WalkAndCount(dir, filter)
			logger.Debug("walked project",
				zap.String("dir", dir),
				zap.Int("sessions", results[i].Sessions),
				zap.Int("agents", results[i].Agents),
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return source.Counts{}, fmt.Errorf("scanning projects: %w", err)
	}

	var total source.Counts
	for _, c := range results {
		total = total.Add(c)
	}
	return total, nil
}

func logCounts(logger *zap.Logger, mode source.Mode, root string, c source.Counts) {
	logger.Debug("discovery complete",
		zap.Stringer("mode", mode),
		zap.String("root", root),
		zap.Int("sessions", c.Sessions),
		zap.Int("agents", c.Agents),
		zap.Int("jsonl", c.TotalJSONL),
	)
	if c.Skipped > 0 {
		logger.Warn("skipped unreadable entries", zap.String("root", root), zap.Int("count", c.Skipped))
	}
}
