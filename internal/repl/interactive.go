package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"go.uber.org/zap"
)

// lineReader is the subset of *readline.Instance the loop needs.
type lineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
	SaveHistory(content string) error
}

// RunInteractive runs the line-editing shell on the terminal until EOF,
// Ctrl-C or a quit command.
func (s *Shell) RunInteractive(ctx context.Context) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:                 prompt,
		HistoryLimit:           s.HistoryLimit,
		DisableAutoSaveHistory: true,
		Stdout:                 s.Out,
		Stderr:                 s.Err,
	})
	if err != nil {
		return fmt.Errorf("starting line editor: %w", err)
	}
	defer func() { _ = rl.Close() }()

	s.loadHistory(rl)
	fmt.Fprint(s.Out, s.banner())
	return s.loop(ctx, rl)
}

// loadHistory seeds the editor from the history store. Failures leave the
// shell without history.
func (s *Shell) loadHistory(lr lineReader) {
	if s.History == nil {
		return
	}
	lines, err := s.History.Recent(s.HistoryLimit)
	if err != nil {
		s.logger().Debug("loading history", zap.Error(err))
		return
	}
	for _, l := range lines {
		_ = lr.SaveHistory(l)
	}
}

func (s *Shell) remember(lr lineReader, line string) {
	_ = lr.SaveHistory(line)
	if s.History == nil {
		return
	}
	if err := s.History.Append(line); err != nil {
		s.logger().Debug("saving history", zap.Error(err))
	}
}

// loop reads lines until exit. A statement runs once a line ends with
// ';'; until then lines accumulate under the continuation prompt.
func (s *Shell) loop(ctx context.Context, lr lineReader) error {
	var pending strings.Builder

	for {
		if pending.Len() == 0 {
			lr.SetPrompt(prompt)
		} else {
			lr.SetPrompt(continuationPrompt)
		}

		line, err := lr.Readline()
		if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
		trimmed := strings.TrimSpace(line)

		if pending.Len() > 0 {
			pending.WriteByte('\n')
			pending.WriteString(line)
			if strings.HasSuffix(trimmed, ";") {
				stmt := pending.String()
				pending.Reset()
				s.remember(lr, stmt)
				s.execute(ctx, stmt)
			}
			continue
		}

		switch {
		case trimmed == "":
		case strings.HasPrefix(trimmed, "."):
			s.remember(lr, trimmed)
			if s.dotCommand(ctx, trimmed, s.Out) {
				fmt.Fprintln(s.Out, "Goodbye!")
				return nil
			}
		case strings.HasSuffix(trimmed, ";"):
			s.remember(lr, trimmed)
			s.execute(ctx, trimmed)
		default:
			pending.WriteString(line)
		}
	}

	fmt.Fprintln(s.Out, "Goodbye!")
	return nil
}

// execute runs one statement in materializing mode and prints a table.
func (s *Shell) execute(ctx context.Context, stmt string) {
	res, err := s.Querier.Query(ctx, stmt)
	if err != nil {
		s.printError(err)
		return
	}
	fmt.Fprintln(s.Out, res.Table())
}
