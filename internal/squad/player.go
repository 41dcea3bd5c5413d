package squad

import (
	"math"

	"github.com/nawaneetkmr-cyber/fpl-tactix/pkg/constants"
)

// Player is one candidate in the pool. Prices are in millions; SellPrice is
// what the club pays when the player is sold and carries no ordering
// invariant relative to Price beyond both being non-negative.
type Player struct {
	ID        int
	Name      string
	Club      string
	Position  Position
	Price     float64
	SellPrice float64
	// XPByGW maps an absolute gameweek to a projected score for that week.
	// Gameweeks without an entry fall back to an estimate.
	XPByGW    map[int]float64
	Form      float64
	Ownership float64
	Status    Availability
}

// ProjectedAt returns the projected score for the given gameweek, falling
// back to EstimatedXP when no per-week projection exists.
func (p *Player) ProjectedAt(gameweek int) float64 {
	if xp, ok := p.XPByGW[gameweek]; ok {
		return xp
	}
	return p.EstimatedXP()
}

// EstimatedXP is the projection used when a per-gameweek value is missing:
// the mean of known projections, else form floored at a minimum.
func (p *Player) EstimatedXP() float64 {
	if len(p.XPByGW) > 0 {
		sum := 0.0
		for _, xp := range p.XPByGW {
			sum += xp
		}
		return sum / float64(len(p.XPByGW))
	}
	return math.Max(p.Form, constants.MinFormProjection)
}

// HorizonScore sums projected scores over the given number of future
// gameweeks with geometric decay: sum over t=1..horizon of xp(gw+t)*gamma^t.
// Later weeks are less reliable and can be re-optimized next period, so
// their present value shrinks.
func (p *Player) HorizonScore(fromGameweek, horizon int, gamma float64) float64 {
	total := 0.0
	decay := 1.0
	for t := 1; t <= horizon; t++ {
		decay *= gamma
		total += p.ProjectedAt(fromGameweek+t) * decay
	}
	return total
}
