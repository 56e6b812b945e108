// Package urlx parses raw URL strings into the host/path/file/query parts
// the rule engine matches against.
//
// It deliberately avoids net/url: a full RFC 3986 decomposition does more
// work than the engine needs (no percent-decoding, no userinfo, no
// fragment) and a hand-rolled byte scan is both faster and closer to what
// the original URL parser this was ported from does.
package urlx

import (
	"fmt"
	"strings"

	"github.com/omirandette/rule-engine/pkg/rule"
)

// ParseError reports that a raw URL string could not be decomposed into a
// ParsedURL. It is always recoverable: callers processing a batch of URLs
// should record rule.ParsedURL{} as invalid for this one line and continue.
type ParseError struct {
	Raw string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("urlx: could not parse host from URL: %q", e.Raw)
}

// Parse decomposes a raw URL string into its host, path, file, and query
// parts (see spec.md §3 for the exact normalization rules):
//
//   - host is lowercased and has any ":port" suffix stripped
//   - path is everything from the first '/' up to (not including) '?'
//   - file is the path's last segment after the final '/', or "" if the
//     path is empty or ends in '/'
//   - query is everything after '?', excluding the '?' itself
//
// An optional "scheme://" prefix is skipped if present; an empty scheme
// (e.g. "://bad") or a blank/host-less input is a *ParseError.
func Parse(raw string) (rule.ParsedURL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return rule.ParsedURL{}, &ParseError{Raw: raw}
	}

	hostStart := 0
	if schemeEnd := strings.Index(trimmed, "://"); schemeEnd == 0 {
		return rule.ParsedURL{}, &ParseError{Raw: raw}
	} else if schemeEnd > 0 {
		hostStart = schemeEnd + 3
	}

	rest := trimmed[hostStart:]
	pathStart := strings.IndexByte(rest, '/')
	queryStart := strings.IndexByte(rest, '?')

	hostEnd := len(rest)
	switch {
	case pathStart >= 0 && queryStart >= 0:
		hostEnd = min(pathStart, queryStart)
	case pathStart >= 0:
		hostEnd = pathStart
	case queryStart >= 0:
		hostEnd = queryStart
	}

	host := rest[:hostEnd]
	if portIdx := strings.IndexByte(host, ':'); portIdx >= 0 {
		host = host[:portIdx]
	}
	if host == "" {
		return rule.ParsedURL{}, &ParseError{Raw: raw}
	}
	host = strings.ToLower(host)

	var path string
	if pathStart >= 0 && (queryStart < 0 || pathStart < queryStart) {
		pathEnd := len(rest)
		if queryStart >= 0 {
			pathEnd = queryStart
		}
		path = rest[pathStart:pathEnd]
	}

	var query string
	if queryStart >= 0 {
		query = rest[queryStart+1:]
	}

	return rule.ParsedURL{
		Host:  host,
		Path:  path,
		File:  lastSegment(path),
		Query: query,
	}, nil
}

// lastSegment returns the path's final "/"-delimited segment, or "" if the
// path is empty or ends in '/'.
func lastSegment(path string) string {
	if path == "" {
		return ""
	}
	if idx := strings.LastIndexByte(path, '/'); idx >= 0 {
		return path[idx+1:]
	}
	return path
}
