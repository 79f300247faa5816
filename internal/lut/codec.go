package lut

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
)

// Precision is the significant-digit count used when serializing values.
// Six digits round-trips well within the consuming engine's parser.
const Precision = 6

// Serialize renders the table as text: one "angle force_ratio" pair per
// line, space-separated, ascending, no header. The output parses back via
// Parse (round-trip within Precision).
func Serialize(t *Table) string {
	var b strings.Builder
	for _, p := range t.points {
		b.WriteString(formatValue(p.SlipAngleDeg))
		b.WriteByte(' ')
		b.WriteString(formatValue(p.ForceRatio))
		b.WriteByte('\n')
	}
	return b.String()
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', Precision, 64)
}

// Parse is the inverse of Serialize. It also accepts the engine's native
// LUT dialect: "angle|ratio" rows, blank lines, and ";" comment lines.
// Returns FormatError for rows with fewer than two fields, non-numeric
// fields, or non-ascending angles.
func Parse(text string) (*Table, error) {
	var points []Point
	sc := bufio.NewScanner(strings.NewReader(text))
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}
		fields := splitRow(line)
		if len(fields) < 2 {
			return nil, &FormatError{Line: lineNo, Reason: fmt.Sprintf("expected 2 fields, got %d", len(fields))}
		}
		angle, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, &FormatError{Line: lineNo, Reason: fmt.Sprintf("bad slip angle %q", fields[0])}
		}
		ratio, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, &FormatError{Line: lineNo, Reason: fmt.Sprintf("bad force ratio %q", fields[1])}
		}
		if n := len(points); n > 0 && angle <= points[n-1].SlipAngleDeg {
			return nil, &FormatError{Line: lineNo, Reason: fmt.Sprintf("slip angle %g not ascending (previous %g)", angle, points[n-1].SlipAngleDeg)}
		}
		points = append(points, Point{SlipAngleDeg: angle, ForceRatio: ratio})
	}
	if err := sc.Err(); err != nil {
		return nil, &FormatError{Reason: err.Error()}
	}
	return NewTable(points)
}

// splitRow splits on "|" when present, whitespace otherwise.
func splitRow(line string) []string {
	if strings.Contains(line, "|") {
		parts := strings.Split(line, "|")
		out := parts[:0]
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	}
	return strings.Fields(line)
}
