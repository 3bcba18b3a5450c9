package query

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/duckdb/duckdb-go/v2"
)

const (
	timestampLayout = "2006-01-02 15:04:05.000"
	dateLayout      = "2006-01-02"
	timeLayout      = "15:04:05.999999"
)

// TimeUnit is the storage resolution of a raw timestamp value.
type TimeUnit int

const (
	Second TimeUnit = iota
	Millisecond
	Microsecond
	Nanosecond
)

// FormatTimestamp renders a timestamp stored as value units since the Unix
// epoch as "YYYY-MM-DD HH:MM:SS.mmm" in UTC. Every unit converges to
// millisecond precision.
func FormatTimestamp(unit TimeUnit, value int64) string {
	return string(appendTimestamp(nil, unixTime(unit, value)))
}

func unixTime(unit TimeUnit, value int64) time.Time {
	switch unit {
	case Second:
		return time.Unix(value, 0)
	case Millisecond:
		return time.UnixMilli(value)
	case Nanosecond:
		return time.Unix(0, value)
	default:
		return time.UnixMicro(value)
	}
}

// FormatDate renders a date stored as days since 1970-01-01 as "YYYY-MM-DD".
func FormatDate(days int32) string {
	return string(appendDate(nil, days))
}

func appendTimestamp(dst []byte, t time.Time) []byte {
	return t.UTC().AppendFormat(dst, timestampLayout)
}

func appendDate(dst []byte, days int32) []byte {
	return time.Unix(int64(days)*86400, 0).UTC().AppendFormat(dst, dateLayout)
}

// daysSinceEpoch floors t to whole UTC days since 1970-01-01.
func daysSinceEpoch(t time.Time) int32 {
	secs := t.UTC().Unix()
	days := secs / 86400
	if secs%86400 < 0 {
		days--
	}
	return int32(days)
}

// columnKind refines how a scanned value is displayed when the Go type
// alone is ambiguous (a DATE and a TIMESTAMP both scan as time.Time).
type columnKind int

const (
	kindDefault columnKind = iota
	kindTimestamp
	kindDate
	kindTime
	kindUUID
	kindJSON
)

func kindOf(databaseType string) columnKind {
	switch strings.ToUpper(databaseType) {
	case "DATE":
		return kindDate
	case "TIME", "TIMETZ", "TIME WITH TIME ZONE":
		return kindTime
	case "UUID":
		return kindUUID
	case "JSON":
		return kindJSON
	}
	if strings.HasPrefix(strings.ToUpper(databaseType), "TIMESTAMP") {
		return kindTimestamp
	}
	return kindDefault
}

func columnKinds(types []*sql.ColumnType) []columnKind {
	kinds := make([]columnKind, len(types))
	for i, ct := range types {
		kinds[i] = kindOf(ct.DatabaseTypeName())
	}
	return kinds
}

// appendValue appends the display text of a scanned cell to dst. Both the
// materializing and the streaming paths go through here, so a cell renders
// the same way in a table and in TSV.
func appendValue(dst []byte, v any, kind columnKind) []byte {
	switch x := v.(type) {
	case nil:
		return append(dst, "NULL"...)
	case bool:
		return strconv.AppendBool(dst, x)
	case int8:
		return strconv.AppendInt(dst, int64(x), 10)
	case int16:
		return strconv.AppendInt(dst, int64(x), 10)
	case int32:
		return strconv.AppendInt(dst, int64(x), 10)
	case int64:
		return strconv.AppendInt(dst, x, 10)
	case int:
		return strconv.AppendInt(dst, int64(x), 10)
	case uint8:
		return strconv.AppendUint(dst, uint64(x), 10)
	case uint16:
		return strconv.AppendUint(dst, uint64(x), 10)
	case uint32:
		return strconv.AppendUint(dst, uint64(x), 10)
	case uint64:
		return strconv.AppendUint(dst, x, 10)
	case float32:
		return strconv.AppendFloat(dst, float64(x), 'f', -1, 32)
	case float64:
		return strconv.AppendFloat(dst, x, 'f', -1, 64)
	case *big.Int:
		return x.Append(dst, 10)
	case string:
		if kind == kindJSON {
			// A decoded JSON string; "123" must not print as the number 123.
			return appendJSON(dst, x)
		}
		return appendText(dst, x)
	case []byte:
		if kind == kindUUID && len(x) == 16 {
			if id, err := uuid.FromBytes(x); err == nil {
				return append(dst, id.String()...)
			}
		}
		return fmt.Appendf(dst, "<%d bytes>", len(x))
	case duckdb.UUID:
		return append(dst, uuid.UUID(x).String()...)
	case *duckdb.UUID:
		if x == nil {
			return append(dst, "NULL"...)
		}
		return append(dst, uuid.UUID(*x).String()...)
	case time.Time:
		switch kind {
		case kindDate:
			return appendDate(dst, daysSinceEpoch(x))
		case kindTime:
			return x.AppendFormat(dst, timeLayout)
		default:
			return appendTimestamp(dst, x)
		}
	case duckdb.Decimal:
		return appendDecimal(dst, x)
	case duckdb.Interval:
		return fmt.Appendf(dst, "%d months %d days %d micros", x.Months, x.Days, x.Micros)
	case []any, map[string]any:
		return appendJSON(dst, x)
	case fmt.Stringer:
		return appendText(dst, x.String())
	default:
		return fmt.Append(dst, x)
	}
}

// appendText appends s, replacing invalid UTF-8 sequences with U+FFFD.
func appendText(dst []byte, s string) []byte {
	if utf8.ValidString(s) {
		return append(dst, s...)
	}
	return append(dst, strings.ToValidUTF8(s, "\uFFFD")...)
}

// appendJSON appends the compact JSON encoding of v. It only sees JSON
// cells the source-text rewrite in jsonAsText could not reach, such as
// statements DESCRIBE cannot bind; those lose key order and integer
// precision to the driver's decoding.
func appendJSON(dst []byte, v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Append(dst, v)
	}
	return append(dst, b...)
}

func appendDecimal(dst []byte, d duckdb.Decimal) []byte {
	if d.Value == nil {
		return append(dst, '0')
	}
	digits := new(big.Int).Abs(d.Value).String()
	if d.Value.Sign() < 0 {
		dst = append(dst, '-')
	}
	scale := int(d.Scale)
	if scale == 0 {
		return append(dst, digits...)
	}
	if len(digits) <= scale {
		digits = strings.Repeat("0", scale-len(digits)+1) + digits
	}
	dst = append(dst, digits[:len(digits)-scale]...)
	dst = append(dst, '.')
	return append(dst, digits[len(digits)-scale:]...)
}
