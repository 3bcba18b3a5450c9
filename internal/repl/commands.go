package repl

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/theirongolddev/ccq/internal/query"
)

const examples = `Example queries:
  -- Count messages by type
  SELECT type, count(*) as cnt FROM messages GROUP BY type ORDER BY cnt DESC;

  -- Messages by project (when querying all projects)
  SELECT project, count(*) as cnt FROM messages GROUP BY project ORDER BY cnt DESC;

  -- Recent assistant messages
  SELECT timestamp, message->>'role', message->>'stop_reason'
  FROM assistant_messages ORDER BY timestamp DESC LIMIT 10;

  -- Most used tools
  SELECT tool_name, count(*) as cnt FROM tool_uses GROUP BY tool_name ORDER BY cnt DESC;

  -- Sessions summary
  SELECT sessionId, count(*) as msgs, min(timestamp) as started
  FROM messages GROUP BY sessionId ORDER BY started DESC;

  -- System message subtypes
  SELECT subtype, count(*) FROM system_messages GROUP BY subtype;

  -- Agent vs main session breakdown
  SELECT isAgent, count(*) FROM messages GROUP BY isAgent;
`

const jsonHints = `JSON field access (DuckDB syntax):
  message->'field'        Access JSON field (returns JSON)
  message->>'field'       Access JSON field as string
  message->'a'->'b'       Nested access

Useful functions:
  arr[n]                 Get nth element (1-indexed)
  UNNEST(arr)            Expand array into rows
  json_extract_string()  Extract string from JSON
`

// helpText returns the .help output.
func (s *Shell) helpText() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(s.Render.Heading("Commands:"))
	b.WriteString("\n")
	b.WriteString("  .help, .h      Show this help\n")
	b.WriteString("  .schema, .s    Show schemas for all views\n")
	b.WriteString("  .schema <view> Show schema for a specific view\n")
	b.WriteString("  .quit, .q      Exit\n\n")

	b.WriteString(s.Render.Heading("Views:"))
	b.WriteString("\n")
	for _, v := range query.Views {
		fmt.Fprintf(&b, "  %-19s %s\n", v.Name, v.Description)
	}
	b.WriteString("\n")

	b.WriteString(s.Render.Muted(examples))
	b.WriteString("\n")
	b.WriteString(s.Render.Muted(jsonHints))
	return b.String()
}

// banner returns the startup summary printed by the interactive shell.
func (s *Shell) banner() string {
	info := s.Querier.Info()
	var line string
	if info.ProjectCount > 1 {
		line = fmt.Sprintf("Loaded %d project(s), %d session(s), %d agent file(s)",
			info.ProjectCount, info.SessionCount, info.AgentCount)
	} else {
		line = fmt.Sprintf("Loaded %d session(s), %d agent file(s)",
			info.SessionCount, info.AgentCount)
	}
	return s.Render.Banner(line) + "\n" + s.Render.Muted(`Type ".help" for usage hints.`) + "\n\n"
}

// dotCommand runs a dot-command, writing output to w. It reports whether
// the shell should exit.
func (s *Shell) dotCommand(ctx context.Context, line string, w io.Writer) (exit bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}

	switch strings.ToLower(fields[0]) {
	case ".quit", ".exit", ".q":
		return true

	case ".help", ".h":
		fmt.Fprintln(w, s.helpText())

	case ".schema", ".s":
		if len(fields) > 1 {
			s.describe(ctx, fields[1], w)
			return false
		}
		for _, v := range query.Views {
			fmt.Fprintf(w, "\n%s\n", s.Render.Heading("=== "+v.Name+" ==="))
			s.describe(ctx, v.Name, w)
		}

	default:
		fmt.Fprintf(w, "Unknown command: %s. Type .help for usage.\n", line)
	}
	return false
}

func (s *Shell) describe(ctx context.Context, view string, w io.Writer) {
	res, err := s.Querier.Query(ctx, "DESCRIBE "+view)
	if err != nil {
		s.printError(err)
		return
	}
	fmt.Fprintln(w, res.Table())
}

func (s *Shell) printError(err error) {
	fmt.Fprintln(s.Err, s.Render.Error(err.Error()))
}
