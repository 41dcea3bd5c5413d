// Package squad defines the player pool and squad state data model consumed
// by the transfer optimization engine. A pool plus a state forms an
// immutable-per-solve snapshot; nothing in this package mutates after
// construction.
package squad

import "fmt"

// Position is one of the four squad position categories.
type Position int

// Position values follow the provider's 1-4 numbering.
const (
	Goalkeeper Position = iota + 1
	Defender
	Midfielder
	Forward
)

// Positions lists all positions in display order.
var Positions = []Position{Goalkeeper, Defender, Midfielder, Forward}

// ParsePosition converts the provider's numeric position code.
func ParsePosition(code int) (Position, error) {
	switch code {
	case 1:
		return Goalkeeper, nil
	case 2:
		return Defender, nil
	case 3:
		return Midfielder, nil
	case 4:
		return Forward, nil
	default:
		return 0, fmt.Errorf("unknown position code %d", code)
	}
}

// String returns the conventional short label.
func (p Position) String() string {
	switch p {
	case Goalkeeper:
		return "GKP"
	case Defender:
		return "DEF"
	case Midfielder:
		return "MID"
	case Forward:
		return "FWD"
	default:
		return fmt.Sprintf("Position(%d)", int(p))
	}
}

// Valid reports whether p is one of the four known positions.
func (p Position) Valid() bool {
	return p >= Goalkeeper && p <= Forward
}
