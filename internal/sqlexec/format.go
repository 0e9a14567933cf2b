package sqlexec

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

const (
	// sqliteTimeLayout is the text form of SQLite's datetime() function,
	// with fractional seconds kept when present.
	sqliteTimeLayout = "2006-01-02 15:04:05.999999999"
	sqliteDateLayout = "2006-01-02"
)

// FormatResults renders rows as a pipe-delimited table: a header of column
// names, a dashed separator as wide as the header, then one line per row.
func FormatResults(columns []string, rows [][]any) string {
	header := "| " + strings.Join(columns, " | ") + " |"

	var sb strings.Builder
	sb.WriteString(header)
	sb.WriteByte('\n')
	sb.WriteString("|" + strings.Repeat("-", utf8.RuneCountInString(header)-2) + "|")
	sb.WriteByte('\n')

	for _, row := range rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = formatValue(v)
		}
		sb.WriteString("| " + strings.Join(cells, " | ") + " |")
		sb.WriteByte('\n')
	}

	return strings.TrimRightFunc(sb.String(), unicode.IsSpace)
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "None"
	case []byte:
		return string(val)
	case float64:
		return formatFloat(val)
	case time.Time:
		return formatTime(val, false)
	default:
		return fmt.Sprint(val)
	}
}

// formatFloat prints the shortest representation that round-trips, always
// with a fractional part or exponent so REAL values never look like
// integers: 3.0, 9.5, 1e-05, 1e+16.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	if abs := math.Abs(f); abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// formatTime turns a value the driver parsed out of a DATE, DATETIME or
// TIMESTAMP column back into SQLite's text form. dateOnly drops a
// midnight clock for DATE columns.
func formatTime(t time.Time, dateOnly bool) string {
	if t.Location() != time.UTC {
		return t.Format(sqliteTimeLayout + "-07:00")
	}
	if dateOnly && t.Equal(t.Truncate(24*time.Hour)) {
		return t.Format(sqliteDateLayout)
	}
	return t.Format(sqliteTimeLayout)
}

func formatError(err error) string {
	return fmt.Sprintf("Database error: %v", err)
}
