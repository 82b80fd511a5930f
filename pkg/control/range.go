package control

import "fmt"

// RangeKind classifies what a control range measures
type RangeKind uint8

const (
	KindOwnership RangeKind = iota
	KindVoting
	KindOther
)

// String returns the string representation of a range kind
func (k RangeKind) String() string {
	switch k {
	case KindOwnership:
		return "ownership"
	case KindVoting:
		return "voting"
	default:
		return "other"
	}
}

// Range is a [Min,Max] percentage bound on control strength.
// Source descriptors are inherently ranged ("25-to-50-percent"), so the
// range is carried through aggregation instead of being collapsed to a
// midpoint; a band straddling a legal threshold must stay a band.
type Range struct {
	Min      float64
	Max      float64
	Kind     RangeKind
	Unparsed bool // true when the source descriptor was unrecognized
}

// Unknown is the maximal-uncertainty fallback range. An edge whose
// descriptor cannot be parsed keeps this range rather than being dropped:
// a missed link is a worse outcome than an overly wide band.
func Unknown() Range {
	return Range{Min: 0, Max: 100, Kind: KindOther, Unparsed: true}
}

// Exact returns a degenerate range [v,v]
func Exact(v float64, kind RangeKind) Range {
	return Range{Min: clamp(v), Max: clamp(v), Kind: kind}
}

// Valid reports whether the range satisfies 0 <= Min <= Max <= 100
func (r Range) Valid() bool {
	return r.Min >= 0 && r.Min <= r.Max && r.Max <= 100
}

// IsUnknown reports whether the range carries no information
func (r Range) IsUnknown() bool {
	return r.Min == 0 && r.Max == 100
}

// Compose multiplies two ranges, modeling attenuation through an
// intermediary: holding 50% of a company that holds 50% of another yields
// at most 25% effective control.
func (r Range) Compose(next Range) Range {
	return Range{
		Min:      r.Min * next.Min / 100,
		Max:      r.Max * next.Max / 100,
		Kind:     composeKind(r.Kind, next.Kind),
		Unparsed: r.Unparsed || next.Unparsed,
	}
}

// Add sums two ranges and caps at 100. Control exercised via distinct
// channels accumulates.
func (r Range) Add(other Range) Range {
	return Range{
		Min:      clamp(r.Min + other.Min),
		Max:      clamp(r.Max + other.Max),
		Kind:     composeKind(r.Kind, other.Kind),
		Unparsed: r.Unparsed || other.Unparsed,
	}
}

// Midpoint returns the center of the range, used only for ranking output,
// never for aggregation.
func (r Range) Midpoint() float64 {
	return (r.Min + r.Max) / 2
}

func (r Range) String() string {
	return fmt.Sprintf("[%.2f,%.2f]%%:%s", r.Min, r.Max, r.Kind)
}

func composeKind(a, b RangeKind) RangeKind {
	if a == b {
		return a
	}
	return KindOther
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
