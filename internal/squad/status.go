package squad

import "fmt"

// Availability is the closed set of player availability states. The provider
// publishes these as single-letter codes; anything outside the known set is a
// parse error rather than a silently-ignored string.
type Availability int

const (
	Available Availability = iota
	Doubtful
	Injured
	Unavailable
	Suspended
	NotInSquad
)

// ParseAvailability maps the provider's status code onto the closed
// enumeration.
func ParseAvailability(code string) (Availability, error) {
	switch code {
	case "a":
		return Available, nil
	case "d":
		return Doubtful, nil
	case "i":
		return Injured, nil
	case "u":
		return Unavailable, nil
	case "s":
		return Suspended, nil
	case "n":
		return NotInSquad, nil
	default:
		return 0, fmt.Errorf("unknown availability code %q", code)
	}
}

// String returns the provider code for the status.
func (a Availability) String() string {
	switch a {
	case Available:
		return "a"
	case Doubtful:
		return "d"
	case Injured:
		return "i"
	case Unavailable:
		return "u"
	case Suspended:
		return "s"
	case NotInSquad:
		return "n"
	default:
		return fmt.Sprintf("Availability(%d)", int(a))
	}
}

// Label returns a human-readable description for reports.
func (a Availability) Label() string {
	switch a {
	case Available:
		return "available"
	case Doubtful:
		return "doubtful"
	case Injured:
		return "injured"
	case Unavailable:
		return "unavailable"
	case Suspended:
		return "suspended"
	case NotInSquad:
		return "not in squad"
	default:
		return "unknown"
	}
}

// BuyEligible reports whether a player with this status may be transferred
// in. Only available and doubtful players are purchasable.
func (a Availability) BuyEligible() bool {
	return a == Available || a == Doubtful
}

// RemainEligible reports whether an already-owned player with this status may
// stay in the squad. Every status qualifies; the optimizer may still choose
// to move an unavailable player out but is never forced to.
func (a Availability) RemainEligible() bool {
	switch a {
	case Available, Doubtful, Injured, Unavailable, Suspended, NotInSquad:
		return true
	default:
		return false
	}
}
