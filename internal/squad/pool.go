package squad

import "sort"

// Pool is the identifier-indexed set of candidate players for one solve.
// Membership questions always go through IDs; two distinct players that
// compare equal on partial fields never collide.
type Pool struct {
	players map[int]*Player
}

// NewPool builds a pool from the given players, deduplicating by ID. A later
// duplicate wins, which lets callers merge provider candidates with the
// currently-owned squad in either order.
func NewPool(players []Player) *Pool {
	pool := &Pool{players: make(map[int]*Player, len(players))}
	for i := range players {
		p := players[i]
		pool.players[p.ID] = &p
	}
	return pool
}

// Get returns the player with the given ID, or nil.
func (pl *Pool) Get(id int) *Player {
	return pl.players[id]
}

// Has reports whether the pool contains the given ID.
func (pl *Pool) Has(id int) bool {
	_, ok := pl.players[id]
	return ok
}

// Len returns the number of distinct players in the pool.
func (pl *Pool) Len() int {
	return len(pl.players)
}

// IDs returns all player IDs in ascending order. Deterministic iteration
// order keeps model variable numbering, and therefore solver tie-breaking,
// reproducible across runs on identical input.
func (pl *Pool) IDs() []int {
	ids := make([]int, 0, len(pl.players))
	for id := range pl.players {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Add inserts or replaces a player.
func (pl *Pool) Add(p Player) {
	pl.players[p.ID] = &p
}
