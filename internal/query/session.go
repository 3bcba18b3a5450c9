// Package query runs SQL over Claude Code session logs through DuckDB views.
package query

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/theirongolddev/ccq/internal/config"
	"github.com/theirongolddev/ccq/internal/model"
	"github.com/theirongolddev/ccq/internal/pipeline"

	_ "github.com/duckdb/duckdb-go/v2" // register duckdb driver
	"go.uber.org/zap"
)

// ErrNoSessions matches any *NoSessionsError via errors.Is.
var ErrNoSessions = errors.New("no sessions found")

// NoSessionsError reports that discovery found nothing under Path.
type NoSessionsError struct {
	Path string
}

func (e *NoSessionsError) Error() string {
	return "No JSONL files found in " + e.Path
}

// Is lets errors.Is(err, ErrNoSessions) match.
func (e *NoSessionsError) Is(target error) bool {
	return target == ErrNoSessions
}

// Options configures Open.
type Options struct {
	Paths   config.Paths
	Request pipeline.Request
	Logger  *zap.Logger
}

// Session is an in-memory DuckDB connection with the session views
// defined over the discovered files. It is not safe for concurrent use.
type Session struct {
	db     *sql.DB
	info   model.SessionInfo
	logger *zap.Logger
}

// Open discovers session files and builds the views over them. It fails
// with a *NoSessionsError when no session or agent file matched.
func Open(ctx context.Context, opts Options) (*Session, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	res, err := pipeline.Discover(ctx, opts.Paths, opts.Request, logger)
	if err != nil {
		return nil, err
	}
	if res.Info.Empty() {
		return nil, &NoSessionsError{Path: res.SearchedPath}
	}

	return OpenInfo(ctx, res.Info, logger)
}

// OpenInfo builds the views for an already discovered SessionInfo.
func OpenInfo(ctx context.Context, info model.SessionInfo, logger *zap.Logger) (*Session, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("opening duckdb: %w", err)
	}
	db.SetMaxOpenConns(1)

	logger.Debug("creating views",
		zap.Strings("globs", info.Pattern.Globs()),
		zap.Bool("multiple", info.Pattern.IsMultiple()),
	)
	if _, err := db.ExecContext(ctx, BuildViewsSQL(info.Pattern)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating views: %w", err)
	}

	return &Session{db: db, info: info, logger: logger}, nil
}

// Info returns what discovery found.
func (s *Session) Info() model.SessionInfo {
	return s.info
}

// Close releases the database.
func (s *Session) Close() error {
	return s.db.Close()
}
