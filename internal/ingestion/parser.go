package ingestion

import (
	"math"
	"strconv"
	"strings"

	"github.com/guttosm/stockaigent/internal/domain/models"
	"github.com/guttosm/stockaigent/internal/logger"
)

// Required and optional quote columns, matched case-insensitively.
const (
	colDate   = "date"
	colOpen   = "open"
	colHigh   = "high"
	colLow    = "low"
	colClose  = "close"
	colVolume = "volume"
)

// ParseQuotes converts delimited quote text into a BarSeries.
//
// Format:
//   - The first non-empty line is the header. Column names are trimmed and
//     matched case-insensitively; "date" and "close" are required.
//   - Each line is one row. Fields are separated by ',' unless the header
//     uses ';' exclusively. Delimiters inside quotes are not supported.
//
// Tolerance:
//   - A missing required column yields an empty series (no data).
//   - Rows with fewer fields than the header, or with an unbalanced quote,
//     are dropped without affecting the rows after them.
//   - Numeric cells that do not parse become nil, never zero.
//   - Rows without a date or a valid close are dropped.
//
// ParseQuotes never fails: partial and empty results are valid output.
func ParseQuotes(raw string) models.BarSeries {
	series, skipped := parseQuotes(raw)
	if skipped > 0 {
		logger.L().Debug().Int("kept", len(series)).Int("skipped", skipped).Msg("quote rows skipped")
	}
	return series
}

func parseQuotes(raw string) (models.BarSeries, int) {
	lines := strings.Split(raw, "\n")
	first := -1
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			first = i
			break
		}
	}
	if first < 0 {
		return models.BarSeries{}, 0
	}

	header := strings.TrimSpace(lines[first])
	delim := detectDelimiter(header)
	cols := splitLine(header, delim)
	idx := indexColumns(cols)
	dateIdx, okDate := idx[colDate]
	closeIdx, okClose := idx[colClose]
	if !okDate || !okClose {
		return models.BarSeries{}, 0
	}

	out := make(models.BarSeries, 0, len(lines)-first)
	skipped := 0
	for _, line := range lines[first+1:] {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		// An unbalanced quote only spoils its own row.
		if strings.Count(line, `"`)%2 != 0 {
			skipped++
			continue
		}

		rec := splitLine(line, delim)
		if len(rec) < len(cols) {
			skipped++
			continue
		}

		date := rec[dateIdx]
		closePx := parseNumber(rec[closeIdx])
		if date == "" || closePx == nil {
			skipped++
			continue
		}

		out = append(out, models.Bar{
			Date:   date,
			Open:   optionalNumber(rec, idx, colOpen),
			High:   optionalNumber(rec, idx, colHigh),
			Low:    optionalNumber(rec, idx, colLow),
			Close:  closePx,
			Volume: optionalNumber(rec, idx, colVolume),
		})
	}

	return out, skipped
}

// splitLine splits one row on delim. Cells are trimmed and a pair of
// enclosing double quotes is removed.
func splitLine(line, delim string) []string {
	fields := strings.Split(line, delim)
	for i, f := range fields {
		f = strings.TrimSpace(f)
		if len(f) >= 2 && f[0] == '"' && f[len(f)-1] == '"' {
			f = strings.TrimSpace(f[1 : len(f)-1])
		}
		fields[i] = f
	}
	return fields
}

// detectDelimiter picks ";" for locales that export semicolon separated
// files and "," otherwise.
func detectDelimiter(header string) string {
	if strings.Contains(header, ";") && !strings.Contains(header, ",") {
		return ";"
	}
	return ","
}

func indexColumns(cols []string) map[string]int {
	idx := make(map[string]int, len(cols))
	for i, c := range cols {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(c, "\ufeff")))
		if _, dup := idx[name]; !dup {
			idx[name] = i
		}
	}
	return idx
}

func optionalNumber(rec []string, idx map[string]int, col string) *float64 {
	i, ok := idx[col]
	if !ok {
		return nil
	}
	return parseNumber(rec[i])
}

// parseNumber returns nil for empty, non-numeric and non-finite cells.
func parseNumber(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
