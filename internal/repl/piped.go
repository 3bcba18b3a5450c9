package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
)

// SplitStatements splits input on ';', trims each piece and drops empty
// ones. Semicolons inside string literals are not special-cased.
func SplitStatements(input string) []string {
	var stmts []string
	for _, part := range strings.Split(input, ";") {
		if p := strings.TrimSpace(part); p != "" {
			stmts = append(stmts, p)
		}
	}
	return stmts
}

// RunPiped reads every statement from r and streams each result to Out as
// TSV. Results after the first successful one are preceded by a "---"
// line. Statement errors go to Err and processing continues; write
// errors on Out abort the run.
func (s *Shell) RunPiped(ctx context.Context, r io.Reader) error {
	input, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	w := bufio.NewWriter(s.Out)
	emitted := false

	for _, stmt := range SplitStatements(string(input)) {
		if err := ctx.Err(); err != nil {
			return err
		}

		if strings.HasPrefix(stmt, ".") {
			if err := w.Flush(); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
			if s.dotCommand(ctx, stmt, s.Out) {
				break
			}
			continue
		}

		if emitted {
			if _, err := w.WriteString("---\n"); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
		}

		n, err := s.Querier.StreamTSV(ctx, stmt, w)
		if err != nil {
			// bufio.Writer keeps the first write error, so a failed flush
			// means the output side broke rather than the statement.
			if ferr := w.Flush(); ferr != nil {
				return fmt.Errorf("writing output: %w", ferr)
			}
			s.printError(err)
			continue
		}
		s.logger().Debug("statement streamed", zap.Int("rows", n))
		emitted = true
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
