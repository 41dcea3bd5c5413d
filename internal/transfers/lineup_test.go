package transfers

import (
	"testing"

	"github.com/nawaneetkmr-cyber/fpl-tactix/internal/squad"
	"github.com/nawaneetkmr-cyber/fpl-tactix/pkg/testutil"
)

func standardPlayers(pool *squad.Pool, ids []int) []*squad.Player {
	players := make([]*squad.Player, 0, len(ids))
	for _, id := range ids {
		players = append(players, pool.Get(id))
	}
	return players
}

func TestPickLineupFormation(t *testing.T) {
	pool := testutil.PoolWith()
	state := testutil.StandardState(0, 1)
	players := standardPlayers(pool, state.PlayerIDs)
	rules := squad.DefaultRules()

	lineup, bench := pickLineup(players, rules, 1, 5, 0.85)

	if len(lineup) != rules.LineupSize {
		t.Fatalf("lineup has %d players, want %d", len(lineup), rules.LineupSize)
	}
	if len(bench) != rules.SquadSize-rules.LineupSize {
		t.Fatalf("bench has %d players, want %d", len(bench), rules.SquadSize-rules.LineupSize)
	}

	counts := make(map[squad.Position]int)
	for _, p := range lineup {
		counts[p.Position]++
	}
	if counts[squad.Goalkeeper] != 1 {
		t.Errorf("lineup has %d goalkeepers, want exactly 1", counts[squad.Goalkeeper])
	}
	for _, pos := range squad.Positions {
		if counts[pos] < rules.LineupMin[pos] || counts[pos] > rules.LineupMax[pos] {
			t.Errorf("lineup has %d %s, want between %d and %d",
				counts[pos], pos, rules.LineupMin[pos], rules.LineupMax[pos])
		}
	}
}

func TestPickLineupPrefersProjection(t *testing.T) {
	// One defender projects far above everyone; he must start.
	star := testutil.Player(99, squad.Defender, "Club X", 6.0, 12.0)
	pool := testutil.PoolWith(star)
	state := testutil.StandardState(0, 1)
	ids := append(append([]int{}, state.PlayerIDs[:14]...), 99)
	players := standardPlayers(pool, ids)

	lineup, _ := pickLineup(players, squad.DefaultRules(), 1, 5, 0.85)
	found := false
	for _, p := range lineup {
		if p.ID == 99 {
			found = true
		}
	}
	if !found {
		t.Error("highest-projected defender left out of the lineup")
	}
}

func TestPickLineupDeterministic(t *testing.T) {
	pool := testutil.PoolWith()
	state := testutil.StandardState(0, 1)
	players := standardPlayers(pool, state.PlayerIDs)
	rules := squad.DefaultRules()

	first, _ := pickLineup(players, rules, 1, 5, 0.85)
	second, _ := pickLineup(players, rules, 1, 5, 0.85)
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("lineup order differs between runs at index %d", i)
		}
	}
}

func TestPickCaptainAndVice(t *testing.T) {
	players := []*squad.Player{
		{ID: 1, Position: squad.Forward, XPByGW: map[int]float64{1: 8}},
		{ID: 2, Position: squad.Forward, XPByGW: map[int]float64{1: 10}},
		{ID: 3, Position: squad.Midfielder, XPByGW: map[int]float64{1: 9}},
	}

	captain, vice := pickCaptain(players, 1, 1, 1.0)
	if captain == nil || captain.ID != 2 {
		t.Fatalf("captain = %+v, want player 2", captain)
	}
	if vice == nil || vice.ID != 3 {
		t.Fatalf("vice = %+v, want player 3", vice)
	}
}

func TestPickCaptainTieBreaksOnLowerID(t *testing.T) {
	players := []*squad.Player{
		{ID: 7, Position: squad.Forward, XPByGW: map[int]float64{1: 10}},
		{ID: 3, Position: squad.Forward, XPByGW: map[int]float64{1: 10}},
	}

	captain, vice := pickCaptain(players, 1, 1, 1.0)
	if captain.ID != 3 {
		t.Errorf("captain = %d, want 3 on tie", captain.ID)
	}
	if vice.ID != 7 {
		t.Errorf("vice = %d, want 7", vice.ID)
	}
}

func TestScoreLineupWeights(t *testing.T) {
	starter := &squad.Player{ID: 1, XPByGW: map[int]float64{1: 10}}
	benched := &squad.Player{ID: 2, XPByGW: map[int]float64{1: 6}}

	// Starter 10, bench 6 at weight 0.1, captain doubles the starter.
	got := scoreLineup([]*squad.Player{starter}, []*squad.Player{benched}, starter, 0.1, 1, 1, 1.0)
	want := 10.0 + 0.6 + 10.0
	if got != want {
		t.Errorf("scoreLineup = %v, want %v", got, want)
	}
}
