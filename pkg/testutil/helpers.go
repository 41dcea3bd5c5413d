// Package testutil provides common fixture builders for testing.
package testutil

import (
	"fmt"

	"github.com/nawaneetkmr-cyber/fpl-tactix/internal/squad"
)

// Player builds a pool player with a flat projection across gameweeks 1-10
// and a resale value equal to price.
func Player(id int, pos squad.Position, club string, price, xp float64) squad.Player {
	projections := make(map[int]float64, 10)
	for gw := 1; gw <= 10; gw++ {
		projections[gw] = xp
	}
	return squad.Player{
		ID:        id,
		Name:      fmt.Sprintf("Player %d", id),
		Club:      club,
		Position:  pos,
		Price:     price,
		SellPrice: price,
		XPByGW:    projections,
		Form:      xp,
		Status:    squad.Available,
	}
}

// StandardSquad returns a legal 15-player squad split 2/5/5/3 with IDs 1-15,
// spread across enough clubs to stay under the club cap.
func StandardSquad() []squad.Player {
	var players []squad.Player
	id := 1
	add := func(pos squad.Position, count int, price, xp float64) {
		for i := 0; i < count; i++ {
			club := fmt.Sprintf("Club %d", (id-1)%8)
			players = append(players, Player(id, pos, club, price, xp))
			id++
		}
	}
	add(squad.Goalkeeper, 2, 4.5, 3.0)
	add(squad.Defender, 5, 5.0, 3.5)
	add(squad.Midfielder, 5, 7.0, 4.5)
	add(squad.Forward, 3, 8.0, 5.0)
	return players
}

// StandardState owns the StandardSquad with the given bank and free
// transfer allowance, planning gameweek 1.
func StandardState(bank float64, freeTransfers int) *squad.State {
	ids := make([]int, 15)
	for i := range ids {
		ids[i] = i + 1
	}
	return &squad.State{
		PlayerIDs:     ids,
		Bank:          bank,
		FreeTransfers: freeTransfers,
		Gameweek:      1,
	}
}

// PoolWith returns a pool holding the StandardSquad plus any extra
// candidates supplied by the test.
func PoolWith(extras ...squad.Player) *squad.Pool {
	return squad.NewPool(append(StandardSquad(), extras...))
}
