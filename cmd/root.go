package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/theirongolddev/ccq/internal/cli"
	"github.com/theirongolddev/ccq/internal/config"
	"github.com/theirongolddev/ccq/internal/pipeline"
	"github.com/theirongolddev/ccq/internal/query"
	"github.com/theirongolddev/ccq/internal/repl"
	"github.com/theirongolddev/ccq/internal/source"
	"github.com/theirongolddev/ccq/internal/store"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flagSession   string
	flagDataDir   string
	flagClaudeDir string
	flagExecute   string
	flagTSV       bool
	flagDebug     bool
)

var logger = zap.NewNop()

var rootCmd = &cobra.Command{
	Use:   "ccq [project-path]",
	Short: "SQL REPL for querying Claude Code session data",
	Long: `Query Claude Code session logs with SQL.

With no arguments every project under ~/.claude/projects is loaded. Pass a
project path to load a single project, or --data-dir to read JSONL files
from any directory. Statements are read interactively on a terminal and
from stdin otherwise.

A project directory named config or views collides with the subcommand of
that name; pass it as ./config or ./views instead.`,
	Args:              cobra.MaximumNArgs(1),
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogger,
	RunE:              runRoot,
}

// Execute is the main entry point called from main.go.
func Execute() {
	defer func() { _ = logger.Sync() }()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error: "+err.Error())
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&flagSession, "session", "s", "", "Filter to sessions matching ID prefix")
	rootCmd.Flags().StringVarP(&flagDataDir, "data-dir", "d", "", "Use directory directly as JSONL data source")
	rootCmd.Flags().StringVarP(&flagExecute, "execute", "e", "", "Run one statement, print the result and exit")
	rootCmd.Flags().BoolVar(&flagTSV, "tsv", false, "Print --execute output as tab-separated values")
	rootCmd.PersistentFlags().StringVar(&flagClaudeDir, "claude-dir", "", "Claude data directory (default ~/.claude)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Log discovery and query timing to stderr")
}

func setupLogger(_ *cobra.Command, _ []string) error {
	if !flagDebug {
		return nil
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	l, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	logger = l
	return nil
}

// loadEnv reads the config file and probes the environment once.
func loadEnv() (config.Config, config.Paths, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, config.Paths{}, err
	}
	claudeDir := cfg.General.ClaudeDir
	if flagClaudeDir != "" {
		claudeDir = flagClaudeDir
	}
	paths, err := config.ProbePaths(claudeDir)
	if err != nil {
		return cfg, paths, err
	}
	return cfg, paths, nil
}

// buildRequest picks the addressing mode: --data-dir wins, then a project
// path, else every project.
func buildRequest(cfg config.Config, args []string) pipeline.Request {
	req := pipeline.Request{
		Filter:  flagSession,
		Workers: cfg.General.Workers,
	}
	switch {
	case flagDataDir != "":
		req.Mode = source.ModeDataDir
		req.Path = flagDataDir
	case len(args) == 1:
		req.Mode = source.ModeProject
		req.Path = args[0]
	default:
		req.Mode = source.ModeAllProjects
	}
	return req
}

func runRoot(cmd *cobra.Command, args []string) error {
	cfg, paths, err := loadEnv()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	sess, err := query.Open(ctx, query.Options{
		Paths:   paths,
		Request: buildRequest(cfg, args),
		Logger:  logger,
	})
	if err != nil {
		return err
	}
	defer func() { _ = sess.Close() }()

	if flagExecute != "" {
		return executeOnce(ctx, sess, cfg)
	}

	sh := &repl.Shell{
		Querier: sess,
		Out:     os.Stdout,
		Err:     os.Stderr,
		Logger:  logger,
	}

	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return sh.RunPiped(ctx, os.Stdin)
	}

	sh.Render = cli.Renderer{Color: isatty.IsTerminal(os.Stdout.Fd())}
	if cfg.History.Enabled {
		h, err := store.Open(config.HistoryPath(cfg), cfg.History.Limit)
		if err != nil {
			logger.Debug("history unavailable", zap.Error(err))
		} else {
			defer func() { _ = h.Close() }()
			sh.History = h
			sh.HistoryLimit = cfg.History.Limit
		}
	}
	// The line editor handles Ctrl-C itself.
	stop()
	return sh.RunInteractive(context.WithoutCancel(ctx))
}

func executeOnce(ctx context.Context, sess *query.Session, cfg config.Config) error {
	res, err := sess.Query(ctx, flagExecute)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return errors.New("interrupted")
		}
		return err
	}
	if flagTSV || cfg.Output.Format == config.FormatTSV {
		fmt.Println(res.TSV())
	} else {
		fmt.Println(res.Table())
	}
	return nil
}
