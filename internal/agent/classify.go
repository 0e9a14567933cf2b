package agent

import (
	"regexp"
	"strings"
)

// Kind is how a model reply is handled.
type Kind int

const (
	// KindText is prose returned to the user unchanged.
	KindText Kind = iota
	// KindRead is a SELECT statement.
	KindRead
	// KindWrite is an INSERT, UPDATE or DELETE statement, run with commit.
	KindWrite
)

func (k Kind) String() string {
	switch k {
	case KindRead:
		return "read"
	case KindWrite:
		return "write"
	default:
		return "text"
	}
}

var sqlFence = regexp.MustCompile("(?s)```sql\n(.*?)\n```")

var writePrefixes = []string{"insert", "update", "delete"}

// Classify extracts the statement candidate from a reply and decides its
// kind. The candidate is the body of the first ```sql fenced block, or the
// whole reply when there is none, trimmed either way. Matching is a
// case-insensitive prefix test, so "selection criteria..." reads as a
// SELECT.
func Classify(reply string) (candidate string, kind Kind) {
	reply = strings.TrimSpace(reply)
	candidate = reply
	if m := sqlFence.FindStringSubmatch(reply); m != nil {
		candidate = strings.TrimSpace(m[1])
	}

	lower := strings.ToLower(candidate)
	for _, prefix := range writePrefixes {
		if strings.HasPrefix(lower, prefix) {
			return candidate, KindWrite
		}
	}
	if strings.HasPrefix(lower, "select") {
		return candidate, KindRead
	}
	return candidate, KindText
}
