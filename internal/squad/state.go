package squad

import "fmt"

// Rules is the fixed squad composition ruleset for the sport modeled. It is
// passed explicitly into the engine rather than read from process-wide
// state, so concurrent solves can carry different rulesets.
type Rules struct {
	SquadSize     int
	LineupSize    int
	PositionQuota map[Position]int
	LineupMin     map[Position]int
	LineupMax     map[Position]int
	ClubCap       int
}

// DefaultRules returns the standard ruleset: 15-player squad split
// 2/5/5/3, 11 starters with a single goalkeeper, and at most 3 players
// per club.
func DefaultRules() Rules {
	return Rules{
		SquadSize:  15,
		LineupSize: 11,
		PositionQuota: map[Position]int{
			Goalkeeper: 2,
			Defender:   5,
			Midfielder: 5,
			Forward:    3,
		},
		LineupMin: map[Position]int{
			Goalkeeper: 1,
			Defender:   3,
			Midfielder: 2,
			Forward:    1,
		},
		LineupMax: map[Position]int{
			Goalkeeper: 1,
			Defender:   5,
			Midfielder: 5,
			Forward:    3,
		},
		ClubCap: 3,
	}
}

// Validate checks internal consistency of the ruleset itself.
func (r Rules) Validate() error {
	quotaTotal := 0
	minTotal := 0
	maxTotal := 0
	for _, pos := range Positions {
		quotaTotal += r.PositionQuota[pos]
		minTotal += r.LineupMin[pos]
		maxTotal += r.LineupMax[pos]
		if r.LineupMin[pos] > r.LineupMax[pos] {
			return fmt.Errorf("lineup minimum for %s exceeds maximum", pos)
		}
		if r.LineupMax[pos] > r.PositionQuota[pos] {
			return fmt.Errorf("lineup maximum for %s exceeds squad quota", pos)
		}
	}
	if quotaTotal != r.SquadSize {
		return fmt.Errorf("position quotas sum to %d, want squad size %d", quotaTotal, r.SquadSize)
	}
	if minTotal > r.LineupSize || maxTotal < r.LineupSize {
		return fmt.Errorf("lineup bounds [%d, %d] cannot produce a lineup of %d", minTotal, maxTotal, r.LineupSize)
	}
	if r.ClubCap < 1 {
		return fmt.Errorf("club cap must be at least 1, got %d", r.ClubCap)
	}
	return nil
}

// State is the user's current roster before optimization.
type State struct {
	// PlayerIDs holds the currently-owned squad, exactly SquadSize entries.
	PlayerIDs []int
	// LineupIDs optionally holds the current starting lineup as reported
	// by the provider. May be empty, in which case baselines pick a
	// lineup by projection.
	LineupIDs []int
	// Bank is the remaining budget in millions.
	Bank float64
	// FreeTransfers is the number of penalty-free moves this gameweek.
	FreeTransfers int
	// Gameweek is the reference period aligning multi-week projections.
	Gameweek int
}

// Owns reports whether the given player is currently in the squad.
func (s *State) Owns(id int) bool {
	for _, owned := range s.PlayerIDs {
		if owned == id {
			return true
		}
	}
	return false
}

// Validate checks the entry invariants: the current squad must already
// satisfy the composition rules. The engine produces a valid target state
// but does not repair an invalid starting one.
func (s *State) Validate(pool *Pool, rules Rules) error {
	if len(s.PlayerIDs) != rules.SquadSize {
		return fmt.Errorf("squad has %d players, want %d", len(s.PlayerIDs), rules.SquadSize)
	}
	if s.Bank < 0 {
		return fmt.Errorf("bank cannot be negative, got %.1f", s.Bank)
	}
	if s.FreeTransfers < 0 {
		return fmt.Errorf("free transfer count cannot be negative, got %d", s.FreeTransfers)
	}

	seen := make(map[int]bool, len(s.PlayerIDs))
	positionCounts := make(map[Position]int)
	clubCounts := make(map[string]int)
	for _, id := range s.PlayerIDs {
		if seen[id] {
			return fmt.Errorf("player %d appears twice in the squad", id)
		}
		seen[id] = true
		p := pool.Get(id)
		if p == nil {
			return fmt.Errorf("squad player %d missing from the pool", id)
		}
		positionCounts[p.Position]++
		clubCounts[p.Club]++
	}

	for _, pos := range Positions {
		if positionCounts[pos] != rules.PositionQuota[pos] {
			return fmt.Errorf("squad holds %d %s, want %d", positionCounts[pos], pos, rules.PositionQuota[pos])
		}
	}
	for club, count := range clubCounts {
		if count > rules.ClubCap {
			return fmt.Errorf("squad holds %d players from %s, cap is %d", count, club, rules.ClubCap)
		}
	}

	if len(s.LineupIDs) > 0 {
		if len(s.LineupIDs) != rules.LineupSize {
			return fmt.Errorf("current lineup has %d players, want %d", len(s.LineupIDs), rules.LineupSize)
		}
		for _, id := range s.LineupIDs {
			if !seen[id] {
				return fmt.Errorf("lineup player %d is not in the squad", id)
			}
		}
	}

	return nil
}
