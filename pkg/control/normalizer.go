package control

import (
	"regexp"
	"strconv"
	"strings"
)

// Statements of control arrive as free-text descriptors in a handful of
// quasi-standard shapes:
//
//	ownership-of-shares-25-to-50-percent
//	voting-rights-over-75-percent
//	ownership-of-shares-exact-50
//
// Anything else degrades to the Unknown range rather than an error, so a
// malformed record never costs the graph an edge.
var (
	bandPattern      = regexp.MustCompile(`^(.*?)-?(\d+(?:\.\d+)?)-to-(\d+(?:\.\d+)?)-percent$`)
	thresholdPattern = regexp.MustCompile(`^(.*?)-?over-(\d+(?:\.\d+)?)-percent$`)
	exactPattern     = regexp.MustCompile(`^(.*?)-?exact-(\d+(?:\.\d+)?)(?:-percent)?$`)
)

// Normalize parses a control-strength descriptor into a Range. It never
// fails: unrecognized or inconsistent input yields Unknown() with the
// Unparsed flag set, which downstream aggregation surfaces as degraded
// confidence.
func Normalize(descriptor string) Range {
	s := strings.ToLower(strings.TrimSpace(descriptor))
	if s == "" {
		return Unknown()
	}

	if m := bandPattern.FindStringSubmatch(s); m != nil {
		low, err1 := strconv.ParseFloat(m[2], 64)
		high, err2 := strconv.ParseFloat(m[3], 64)
		if err1 == nil && err2 == nil && low >= 0 && low <= high && high <= 100 {
			return Range{Min: low, Max: high, Kind: classifyKind(m[1])}
		}
		return Unknown()
	}

	if m := thresholdPattern.FindStringSubmatch(s); m != nil {
		threshold, err := strconv.ParseFloat(m[2], 64)
		if err == nil && threshold >= 0 && threshold <= 100 {
			return Range{Min: threshold, Max: 100, Kind: classifyKind(m[1])}
		}
		return Unknown()
	}

	if m := exactPattern.FindStringSubmatch(s); m != nil {
		value, err := strconv.ParseFloat(m[2], 64)
		if err == nil && value >= 0 && value <= 100 {
			return Range{Min: value, Max: value, Kind: classifyKind(m[1])}
		}
		return Unknown()
	}

	return Unknown()
}

// classifyKind maps the descriptor prefix to a RangeKind
func classifyKind(prefix string) RangeKind {
	switch {
	case strings.HasPrefix(prefix, "ownership"):
		return KindOwnership
	case strings.HasPrefix(prefix, "voting"):
		return KindVoting
	default:
		return KindOther
	}
}
