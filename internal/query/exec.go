package query

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/theirongolddev/ccq/internal/cli"

	"go.uber.org/zap"
)

// Result holds a fully materialized query result.
type Result struct {
	Columns []string
	Rows    [][]string
}

// RowCount returns the number of rows returned.
func (r *Result) RowCount() int {
	return len(r.Rows)
}

// Table formats the result with box-drawing characters.
func (r *Result) Table() string {
	return cli.FormatTable(r.Columns, r.Rows)
}

// TSV formats the result as tab-separated values.
func (r *Result) TSV() string {
	return cli.FormatTSV(r.Columns, r.Rows)
}

// cursor wraps sql.Rows with reusable scan slots.
type cursor struct {
	rows  *sql.Rows
	cols  []string
	kinds []columnKind
	vals  []any
	ptrs  []any
}

func (s *Session) open(ctx context.Context, stmt string) (*cursor, error) {
	rows, err := s.db.QueryContext(ctx, s.jsonAsText(ctx, stmt))
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	// Column metadata is only reliable after execution.
	cols, err := rows.Columns()
	if err != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("reading columns: %w", err)
	}
	types, err := rows.ColumnTypes()
	if err != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("reading column types: %w", err)
	}

	c := &cursor{
		rows:  rows,
		cols:  cols,
		kinds: columnKinds(types),
		vals:  make([]any, len(cols)),
		ptrs:  make([]any, len(cols)),
	}
	for i := range c.vals {
		c.ptrs[i] = &c.vals[i]
	}
	return c, nil
}

func (c *cursor) next() (bool, error) {
	if !c.rows.Next() {
		if err := c.rows.Err(); err != nil {
			return false, fmt.Errorf("database error: %w", err)
		}
		return false, nil
	}
	if err := c.rows.Scan(c.ptrs...); err != nil {
		return false, fmt.Errorf("database error: %w", err)
	}
	return true, nil
}

func (c *cursor) close() {
	_ = c.rows.Close()
}

// Query executes stmt and returns every row rendered as display text.
func (s *Session) Query(ctx context.Context, stmt string) (*Result, error) {
	start := time.Now()
	c, err := s.open(ctx, stmt)
	if err != nil {
		return nil, err
	}
	defer c.close()

	result := &Result{Columns: c.cols}
	var buf []byte
	for {
		ok, err := c.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		row := make([]string, len(c.vals))
		for i, v := range c.vals {
			buf = appendValue(buf[:0], v, c.kinds[i])
			row[i] = string(buf)
		}
		result.Rows = append(result.Rows, row)
	}

	s.logger.Debug("query complete",
		zap.Int("rows", result.RowCount()),
		zap.Duration("elapsed", time.Since(start)),
	)
	return result, nil
}

// StreamTSV executes stmt and writes a tab-joined header line followed by
// one tab-joined line per row to w as rows arrive. Only the row being
// written is buffered. It returns the number of data rows written. A write
// error aborts the stream.
func (s *Session) StreamTSV(ctx context.Context, stmt string, w io.Writer) (int, error) {
	c, err := s.open(ctx, stmt)
	if err != nil {
		return 0, err
	}
	defer c.close()

	if _, err := io.WriteString(w, strings.Join(c.cols, "\t")+"\n"); err != nil {
		return 0, fmt.Errorf("writing header: %w", err)
	}

	var (
		buf []byte
		n   int
	)
	for {
		ok, err := c.next()
		if err != nil {
			return n, err
		}
		if !ok {
			return n, nil
		}
		buf = buf[:0]
		for i, v := range c.vals {
			if i > 0 {
				buf = append(buf, '\t')
			}
			buf = appendValue(buf, v, c.kinds[i])
		}
		buf = append(buf, '\n')
		if _, err := w.Write(buf); err != nil {
			return n, fmt.Errorf("writing row: %w", err)
		}
		n++
	}
}

// jsonAsText rewrites stmt so JSON result columns arrive as their source
// text. The driver decodes JSON cells into Go values, which sorts object
// keys and rounds integers above 2^53. Statements DESCRIBE cannot bind, or
// that return no JSON column, are returned unchanged.
//
//	SELECT uuid, message FROM messages
//	-> SELECT #1 AS "uuid", CAST(#2 AS VARCHAR) AS "message" FROM (
//	   SELECT uuid, message FROM messages
//	   ) AS q
func (s *Session) jsonAsText(ctx context.Context, stmt string) string {
	body := strings.TrimRight(strings.TrimSpace(stmt), "; \t\r\n")
	if body == "" {
		return stmt
	}

	rows, err := s.db.QueryContext(ctx, "DESCRIBE "+body)
	if err != nil {
		return stmt
	}
	defer func() { _ = rows.Close() }()

	cols, err := rows.Columns()
	if err != nil || len(cols) < 2 {
		return stmt
	}
	vals := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}

	var (
		proj    []string
		hasJSON bool
	)
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return stmt
		}
		name, _ := vals[0].(string)
		typ, _ := vals[1].(string)
		ref := "#" + strconv.Itoa(len(proj)+1)
		if kindOf(typ) == kindJSON {
			ref = "CAST(" + ref + " AS VARCHAR)"
			hasJSON = true
		}
		proj = append(proj, ref+" AS "+quoteIdent(name))
	}
	if rows.Err() != nil || !hasJSON {
		return stmt
	}

	// The body sits on its own lines so a trailing line comment cannot
	// swallow the closing parenthesis.
	return "SELECT " + strings.Join(proj, ", ") + " FROM (\n" + body + "\n) AS q"
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
