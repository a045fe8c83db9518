// Package gst matches GStreamer capability queries against package
// provides entries, for codec-provider lookups.
package gst

import (
	"regexp"
	"strings"
)

// Query is one parsed capability request, e.g.
// "gstreamer1.0(decoder-audio/x-vorbis)".
type Query struct {
	Version    string // gstreamer API version, e.g. "1.0"
	Capability string // e.g. "decoder-audio/x-vorbis"
}

var queryRE = regexp.MustCompile(`^gstreamer([\d.]+)\(([^)]+)\)`)

// ParseQuery parses a daemon codec query. Unparsable strings return
// false, the daemon sends free-form values here.
func ParseQuery(s string) (Query, bool) {
	m := queryRE.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Query{}, false
	}

	return Query{Version: m[1], Capability: m[2]}, true
}

// Matcher holds a set of capability queries.
type Matcher struct {
	queries []Query
}

// NewMatcher parses the daemon's query values; entries that do not
// look like codec queries are dropped.
func NewMatcher(values []string) *Matcher {
	m := &Matcher{}
	for _, v := range values {
		if q, ok := ParseQuery(v); ok {
			m.queries = append(m.queries, q)
		}
	}

	return m
}

// Valid reports whether any query survived parsing.
func (m *Matcher) Valid() bool {
	return len(m.queries) > 0
}

// Matches reports whether a package provides entry satisfies one of
// the queries. Provides entries carry optional trailing groups, as in
// "gstreamer1.0(decoder-audio/x-vorbis)()(64bit)"; those are ignored
// for matching.
func (m *Matcher) Matches(provide string) bool {
	p, ok := ParseQuery(provide)
	if !ok {
		return false
	}

	for _, q := range m.queries {
		if q.Version == p.Version && q.Capability == p.Capability {
			return true
		}
	}

	return false
}
