package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// TablePattern matches table names excluded from schema dumps.
// A pattern written as /expr/ is a regular expression; anything else
// must equal the table name exactly.
type TablePattern struct {
	raw string
	re  *regexp.Regexp
}

// ParseTablePattern parses a literal name or a /regexp/ pattern.
func ParseTablePattern(s string) (TablePattern, error) {
	if s == "" {
		return TablePattern{}, fmt.Errorf("%w: empty table pattern", ErrInvalidInput)
	}
	if len(s) >= 2 && strings.HasPrefix(s, "/") && strings.HasSuffix(s, "/") {
		re, err := regexp.Compile(s[1 : len(s)-1])
		if err != nil {
			return TablePattern{}, fmt.Errorf("%w: table pattern %s: %v", ErrInvalidInput, s, err)
		}
		return TablePattern{raw: s, re: re}, nil
	}
	return TablePattern{raw: s}, nil
}

// ParseTablePatterns parses every pattern, stopping at the first invalid one.
func ParseTablePatterns(raw []string) ([]TablePattern, error) {
	patterns := make([]TablePattern, 0, len(raw))
	for _, s := range raw {
		p, err := ParseTablePattern(s)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, p)
	}
	return patterns, nil
}

// Match reports whether name is matched by the pattern.
func (p TablePattern) Match(name string) bool {
	if p.re != nil {
		return p.re.MatchString(name)
	}
	return p.raw == name
}

// IsRegexp reports whether the pattern is a regular expression.
func (p TablePattern) IsRegexp() bool {
	return p.re != nil
}

// String returns the pattern as it was written.
func (p TablePattern) String() string {
	return p.raw
}

// MatchAny reports whether any pattern matches name.
func MatchAny(patterns []TablePattern, name string) bool {
	for _, p := range patterns {
		if p.Match(name) {
			return true
		}
	}
	return false
}

// FilterTables returns the tables matched by any pattern, preserving order.
func FilterTables(patterns []TablePattern, tables []string) []string {
	var matched []string
	for _, table := range tables {
		if MatchAny(patterns, table) {
			matched = append(matched, table)
		}
	}
	return matched
}
