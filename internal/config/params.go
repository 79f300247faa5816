package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ParseParams extracts numeric KEY=VALUE pairs from the engine's ini-style
// tyre configuration text. "[SECTION]" headers are accepted and ignored
// (section names do not qualify keys), ";" starts a comment, and entries
// whose value is not numeric are skipped — the engine mixes strings and
// numbers in the same file, and only the numeric tyre constants matter
// here. Required-key validation happens downstream in tire.FromMap.
func ParseParams(text string) (map[string]float64, error) {
	values := make(map[string]float64)
	sc := bufio.NewScanner(strings.NewReader(text))
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if i := strings.Index(line, ";"); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "[") {
			if !strings.HasSuffix(line, "]") {
				return nil, fmt.Errorf("line %d: unterminated section header %q", lineNo, line)
			}
			continue
		}
		key, rawValue, found := strings.Cut(line, "=")
		if !found {
			return nil, fmt.Errorf("line %d: expected KEY=VALUE, got %q", lineNo, line)
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("line %d: empty key", lineNo)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(rawValue), 64)
		if err != nil {
			continue // non-numeric entry, not a tyre constant
		}
		values[key] = v
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return values, nil
}

// ParseParamsFile reads and parses an engine parameter file.
func ParseParamsFile(path string) (map[string]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading parameter file: %w", err)
	}
	values, err := ParseParams(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return values, nil
}
