// Package repl implements the interactive shell and the piped batch mode.
package repl

import (
	"context"
	"io"

	"github.com/theirongolddev/ccq/internal/cli"
	"github.com/theirongolddev/ccq/internal/model"
	"github.com/theirongolddev/ccq/internal/query"
	"github.com/theirongolddev/ccq/internal/store"

	"go.uber.org/zap"
)

const (
	prompt             = "ccq> "
	continuationPrompt = "  -> "
)

// Querier executes statements against the session views.
type Querier interface {
	Query(ctx context.Context, stmt string) (*query.Result, error)
	StreamTSV(ctx context.Context, stmt string, w io.Writer) (int, error)
	Info() model.SessionInfo
}

// Shell reads statements and writes results. Results go to Out and
// statement errors to Err.
type Shell struct {
	Querier Querier
	Out     io.Writer
	Err     io.Writer

	// Render styles banner, help and error text. The zero value is plain.
	Render cli.Renderer

	// History is optional; nil disables persistence.
	History      *store.History
	HistoryLimit int

	Logger *zap.Logger
}

func (s *Shell) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}
