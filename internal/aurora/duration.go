package aurora

import "fmt"

// CumulativeDuration selects the accumulation window of a cumulative
// energy request. Code 2 is reserved by the protocol and unassigned.
type CumulativeDuration byte

const (
	DurationDaily      CumulativeDuration = 0
	DurationWeekly     CumulativeDuration = 1
	DurationMonthly    CumulativeDuration = 3
	DurationYearly     CumulativeDuration = 4
	DurationTotal      CumulativeDuration = 5
	DurationSinceReset CumulativeDuration = 6
)

// Valid reports whether d is an assigned duration code.
func (d CumulativeDuration) Valid() bool {
	switch d {
	case DurationDaily, DurationWeekly, DurationMonthly,
		DurationYearly, DurationTotal, DurationSinceReset:
		return true
	}
	return false
}

func (d CumulativeDuration) String() string {
	switch d {
	case DurationDaily:
		return "daily"
	case DurationWeekly:
		return "weekly"
	case DurationMonthly:
		return "monthly"
	case DurationYearly:
		return "yearly"
	case DurationTotal:
		return "total"
	case DurationSinceReset:
		return "since reset"
	default:
		return fmt.Sprintf("CumulativeDuration(%d)", byte(d))
	}
}
