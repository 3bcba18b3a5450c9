package query

import (
	"strings"

	"github.com/theirongolddev/ccq/internal/model"
)

// View describes one view in the catalog.
type View struct {
	Name        string
	Description string
}

// Views lists every view BuildViewsSQL creates, in creation order.
var Views = []View{
	{"messages", "All messages (user, assistant, system)"},
	{"user_messages", "User messages with user-specific fields"},
	{"human_messages", "Human-typed messages (excludes tool results)"},
	{"assistant_messages", "Assistant messages with error, requestId, etc."},
	{"system_messages", "System messages with hooks, retry info, etc."},
	{"raw_messages", "Raw JSON for each message by uuid"},
	{"tool_uses", "All tool calls with unnested content blocks"},
	{"tool_results", "Tool results with duration and error status"},
	{"token_usage", "Token counts per assistant message"},
	{"bash_commands", "Bash tool calls with extracted command"},
	{"file_operations", "Read/Write/Edit/Glob/Grep with file paths"},
}

// messageColumns is the explicit read_ndjson schema. Declaring every known
// field keeps the column set stable when individual records omit fields.
var messageColumns = [][2]string{
	{"uuid", "UUID"},
	{"type", "VARCHAR"},
	{"subtype", "VARCHAR"},
	{"parentUuid", "UUID"},
	{"timestamp", "TIMESTAMP"},
	{"sessionId", "UUID"},
	{"cwd", "VARCHAR"},
	{"gitBranch", "VARCHAR"},
	{"slug", "VARCHAR"},
	{"version", "VARCHAR"},
	{"isSidechain", "BOOLEAN"},
	{"userType", "VARCHAR"},
	{"message", "JSON"},
	{"isCompactSummary", "BOOLEAN"},
	{"isMeta", "BOOLEAN"},
	{"isVisibleInTranscriptOnly", "BOOLEAN"},
	{"sourceToolUseID", "VARCHAR"},
	{"thinkingMetadata", "JSON"},
	{"todos", "JSON"},
	{"toolUseResult", "JSON"},
	{"error", "JSON"},
	{"isApiErrorMessage", "BOOLEAN"},
	{"requestId", "VARCHAR"},
	{"sourceToolAssistantUUID", "UUID"},
	{"content", "VARCHAR"},
	{"compactMetadata", "JSON"},
	{"hasOutput", "BOOLEAN"},
	{"hookCount", "INTEGER"},
	{"hookErrors", "JSON"},
	{"hookInfos", "JSON"},
	{"level", "VARCHAR"},
	{"logicalParentUuid", "UUID"},
	{"maxRetries", "INTEGER"},
	{"preventedContinuation", "BOOLEAN"},
	{"retryAttempt", "INTEGER"},
	{"retryInMs", "INTEGER"},
	{"stopReason", "VARCHAR"},
	{"toolUseID", "VARCHAR"},
}

// BuildViewsSQL returns the statements that create every view in Views
// over the files addressed by pattern. The output depends only on pattern.
func BuildViewsSQL(pattern model.FilePattern) string {
	var cols, names strings.Builder
	for i, c := range messageColumns {
		if i > 0 {
			cols.WriteString(", ")
			names.WriteString(",\n      ")
		}
		cols.WriteString("'" + c[0] + "': '" + c[1] + "'")
		names.WriteString(c[0])
	}

	return strings.NewReplacer(
		"{{pattern}}", pattern.String(),
		"{{columns}}", cols.String(),
		"{{names}}", names.String(),
	).Replace(viewsTemplate)
}

const viewsTemplate = `
    -- Base messages view with explicit schema
    CREATE OR REPLACE VIEW messages AS
    SELECT
      {{names}},
      regexp_extract(filename, '[^/]+$') AS file,
      starts_with(regexp_extract(filename, '[^/]+$'), 'agent-') AS isAgent,
      CASE WHEN starts_with(regexp_extract(filename, '[^/]+$'), 'agent-')
           THEN regexp_extract(regexp_extract(filename, '[^/]+$'), 'agent-([^.]+)', 1)
           ELSE NULL
      END AS agentId,
      regexp_extract(filename, '/projects/([^/]+)/', 1) AS project,
      ordinality AS rownum
    FROM read_ndjson(
      {{pattern}},
      filename=true,
      ignore_errors=true,
      columns={{{columns}}}
    ) WITH ORDINALITY
    WHERE type IN ('user', 'assistant', 'system');

    CREATE OR REPLACE VIEW user_messages AS
    SELECT
      uuid, parentUuid, timestamp, sessionId, cwd, gitBranch, slug, version,
      isSidechain, userType, message, isCompactSummary, isMeta,
      isVisibleInTranscriptOnly, sourceToolUseID, sourceToolAssistantUUID,
      thinkingMetadata, todos, toolUseResult, file, isAgent, agentId, project, rownum
    FROM messages
    WHERE type = 'user';

    -- Human-typed prompts: plain string content, main session, not injected
    CREATE OR REPLACE VIEW human_messages AS
    SELECT
      uuid, parentUuid, timestamp, sessionId, cwd, gitBranch, slug, version,
      isSidechain, message->>'content' AS content, file, project, rownum
    FROM user_messages
    WHERE json_type(message->'content') = 'VARCHAR'
      AND (agentId IS NULL OR agentId = '')
      AND (isMeta IS NULL OR isMeta = false);

    CREATE OR REPLACE VIEW assistant_messages AS
    SELECT
      uuid, parentUuid, timestamp, sessionId, cwd, gitBranch, slug, version,
      isSidechain, userType, message, error, isApiErrorMessage, requestId,
      file, isAgent, agentId, project, rownum
    FROM messages
    WHERE type = 'assistant';

    CREATE OR REPLACE VIEW system_messages AS
    SELECT
      uuid, subtype, parentUuid, timestamp, sessionId, cwd, gitBranch, slug,
      version, isSidechain, userType, content, error, compactMetadata,
      hasOutput, hookCount, hookErrors, hookInfos, level, logicalParentUuid,
      maxRetries, preventedContinuation, retryAttempt, retryInMs, stopReason,
      toolUseID, isMeta, file, isAgent, agentId, project, rownum
    FROM messages
    WHERE type = 'system';

    -- Schema-less read of the same files, for fields the typed views omit
    CREATE OR REPLACE VIEW raw_messages AS
    SELECT
      (json->>'uuid')::UUID AS uuid,
      json AS raw
    FROM read_ndjson_objects({{pattern}}, ignore_errors=true)
    WHERE json->>'uuid' IS NOT NULL AND length(json->>'uuid') > 0;

    -- One row per tool_use block, numbered by position within its message
    CREATE OR REPLACE VIEW tool_uses AS
    WITH blocks AS (
      SELECT
        m.uuid, m.timestamp, m.sessionId, m.isAgent, m.agentId, m.project, m.rownum,
        b.pos,
        CAST(m.message->'content' AS JSON[])[b.pos + 1] AS block
      FROM assistant_messages m,
      LATERAL (SELECT unnest(range(CAST(json_array_length(m.message->'content') AS BIGINT))) AS pos) b
      WHERE json_type(m.message->'content') = 'ARRAY'
    )
    SELECT
      uuid, timestamp, sessionId, isAgent, agentId, project, rownum,
      block->>'name' AS tool_name,
      block->>'id' AS tool_id,
      block->'input' AS tool_input,
      row_number() OVER (PARTITION BY rownum ORDER BY pos) - 1 AS block_index
    FROM blocks
    WHERE block->>'type' = 'tool_use';

    -- One row per tool_result block in array-content user messages
    CREATE OR REPLACE VIEW tool_results AS
    WITH blocks AS (
      SELECT
        m.uuid, m.timestamp, m.sessionId, m.isAgent, m.agentId, m.project, m.rownum,
        m.toolUseResult, m.sourceToolAssistantUUID,
        b.pos,
        CAST(m.message->'content' AS JSON[])[b.pos + 1] AS block
      FROM user_messages m,
      LATERAL (SELECT unnest(range(CAST(json_array_length(m.message->'content') AS BIGINT))) AS pos) b
      WHERE json_type(m.message->'content') = 'ARRAY'
    )
    SELECT
      uuid, timestamp, sessionId, isAgent, agentId, project, rownum,
      block->>'tool_use_id' AS tool_use_id,
      CAST(block->>'is_error' AS BOOLEAN) AS is_error,
      block->>'content' AS result_content,
      CAST(toolUseResult->>'durationMs' AS INTEGER) AS duration_ms,
      sourceToolAssistantUUID,
      row_number() OVER (PARTITION BY rownum ORDER BY pos) - 1 AS block_index
    FROM blocks
    WHERE block->>'type' = 'tool_result';

    CREATE OR REPLACE VIEW token_usage AS
    SELECT
      uuid, timestamp, sessionId, isAgent, agentId, project,
      message->>'model' AS model,
      message->>'stop_reason' AS stop_reason,
      CAST(message->'usage'->>'input_tokens' AS BIGINT) AS input_tokens,
      CAST(message->'usage'->>'output_tokens' AS BIGINT) AS output_tokens,
      CAST(message->'usage'->>'cache_read_input_tokens' AS BIGINT) AS cache_read_tokens,
      CAST(message->'usage'->>'cache_creation_input_tokens' AS BIGINT) AS cache_creation_tokens
    FROM assistant_messages
    WHERE (message->'usage') IS NOT NULL;

    CREATE OR REPLACE VIEW bash_commands AS
    SELECT
      uuid, timestamp, sessionId, isAgent, agentId, project, rownum, tool_id,
      tool_input->>'command' AS command,
      tool_input->>'description' AS description,
      CAST(tool_input->>'timeout' AS INTEGER) AS timeout,
      CAST(tool_input->>'run_in_background' AS BOOLEAN) AS run_in_background
    FROM tool_uses
    WHERE tool_name = 'Bash';

    CREATE OR REPLACE VIEW file_operations AS
    SELECT
      uuid, timestamp, sessionId, isAgent, agentId, project, rownum, tool_id, tool_name,
      COALESCE(tool_input->>'file_path', tool_input->>'path') AS file_path,
      tool_input->>'pattern' AS pattern
    FROM tool_uses
    WHERE tool_name IN ('Read', 'Write', 'Edit', 'Glob', 'Grep');
`
