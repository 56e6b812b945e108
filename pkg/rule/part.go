// Package rule defines the declarative rule model — parts, operators,
// conditions, and rules — shared by the loader, the index, and the engine.
package rule

import "strings"

// Part identifies one of the four URL components a condition can target.
// Parts are addressed by dense ordinal so they can index directly into
// fixed-size arrays on the hot path.
type Part int

const (
	Host Part = iota
	Path
	File
	Query
)

// PartCount is the number of distinct Part values.
const PartCount = 4

func (p Part) String() string {
	switch p {
	case Host:
		return "host"
	case Path:
		return "path"
	case File:
		return "file"
	case Query:
		return "query"
	default:
		return "unknown"
	}
}

// ParsePart resolves a case-insensitive part name into a Part.
func ParsePart(s string) (Part, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "host":
		return Host, true
	case "path":
		return Path, true
	case "file":
		return File, true
	case "query":
		return Query, true
	default:
		return 0, false
	}
}

// ParsedURL holds the four decomposed URL parts. Absent parts are the
// empty string, never a null/nil sentinel.
type ParsedURL struct {
	Host  string
	Path  string
	File  string
	Query string
}

// Part returns the string value of the requested URL part.
func (u ParsedURL) Part(p Part) string {
	switch p {
	case Host:
		return u.Host
	case Path:
		return u.Path
	case File:
		return u.File
	case Query:
		return u.Query
	default:
		return ""
	}
}
