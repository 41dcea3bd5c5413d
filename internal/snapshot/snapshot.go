// Package snapshot decodes the point-in-time input document: the candidate
// player pool and the user's current roster for one gameweek. JSON and YAML
// encodings are accepted; unknown fields and malformed records are
// rejected rather than silently dropped.
package snapshot

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nawaneetkmr-cyber/fpl-tactix/internal/squad"
)

type playerRecord struct {
	ID        int             `json:"id" yaml:"id"`
	Name      string          `json:"name" yaml:"name"`
	Club      string          `json:"club" yaml:"club"`
	Position  int             `json:"position" yaml:"position"`
	Price     float64         `json:"price" yaml:"price"`
	SellPrice float64         `json:"sellPrice,omitempty" yaml:"sellPrice,omitempty"`
	XPByGW    map[int]float64 `json:"xpByGw,omitempty" yaml:"xpByGw,omitempty"`
	Form      float64         `json:"form,omitempty" yaml:"form,omitempty"`
	Ownership float64         `json:"ownership,omitempty" yaml:"ownership,omitempty"`
	Status    string          `json:"status,omitempty" yaml:"status,omitempty"`
}

type teamRecord struct {
	PlayerIDs     []int   `json:"playerIds" yaml:"playerIds"`
	LineupIDs     []int   `json:"lineupIds,omitempty" yaml:"lineupIds,omitempty"`
	Bank          float64 `json:"bank" yaml:"bank"`
	FreeTransfers int     `json:"freeTransfers" yaml:"freeTransfers"`
}

type document struct {
	Gameweek int            `json:"gameweek" yaml:"gameweek"`
	Players  []playerRecord `json:"players" yaml:"players"`
	Team     teamRecord     `json:"team" yaml:"team"`
}

// ParseJSON decodes a JSON snapshot. Unknown fields are errors.
func ParseJSON(r io.Reader) (*squad.Pool, *squad.State, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil, nil, fmt.Errorf("decoding JSON snapshot: %w", err)
	}
	return build(&doc)
}

// ParseYAML decodes a YAML snapshot. Unknown fields are errors.
func ParseYAML(r io.Reader) (*squad.Pool, *squad.State, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil, nil, fmt.Errorf("decoding YAML snapshot: %w", err)
	}
	return build(&doc)
}

// Load reads a snapshot file, choosing the decoder by extension. Files
// without a .yaml or .yml extension are treated as JSON.
func Load(path string) (*squad.Pool, *squad.State, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening snapshot %s: %w", path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(f)
	default:
		return ParseJSON(f)
	}
}

// build validates the decoded document and converts it into the pool and
// roster state the engine consumes.
func build(doc *document) (*squad.Pool, *squad.State, error) {
	if doc.Gameweek < 1 {
		return nil, nil, fmt.Errorf("gameweek must be at least 1, got %d", doc.Gameweek)
	}
	if len(doc.Players) == 0 {
		return nil, nil, fmt.Errorf("snapshot contains no players")
	}

	players := make([]squad.Player, 0, len(doc.Players))
	seen := make(map[int]bool, len(doc.Players))
	for i, rec := range doc.Players {
		if rec.ID <= 0 {
			return nil, nil, fmt.Errorf("player at index %d: id must be positive, got %d", i, rec.ID)
		}
		if seen[rec.ID] {
			return nil, nil, fmt.Errorf("player %d appears twice in the pool", rec.ID)
		}
		seen[rec.ID] = true
		if rec.Name == "" {
			return nil, nil, fmt.Errorf("player %d: name is required", rec.ID)
		}
		if rec.Club == "" {
			return nil, nil, fmt.Errorf("player %d: club is required", rec.ID)
		}
		pos, err := squad.ParsePosition(rec.Position)
		if err != nil {
			return nil, nil, fmt.Errorf("player %d: %w", rec.ID, err)
		}
		if rec.Price < 0 || rec.SellPrice < 0 {
			return nil, nil, fmt.Errorf("player %d: prices cannot be negative", rec.ID)
		}
		for gw, xp := range rec.XPByGW {
			if gw < 1 {
				return nil, nil, fmt.Errorf("player %d: projection keyed on gameweek %d", rec.ID, gw)
			}
			if xp < 0 {
				return nil, nil, fmt.Errorf("player %d: projection for gameweek %d is negative", rec.ID, gw)
			}
		}

		statusCode := rec.Status
		if statusCode == "" {
			statusCode = "a"
		}
		status, err := squad.ParseAvailability(statusCode)
		if err != nil {
			return nil, nil, fmt.Errorf("player %d: %w", rec.ID, err)
		}

		sell := rec.SellPrice
		if sell == 0 {
			// Absent a recorded purchase price the resale value is the
			// current price.
			sell = rec.Price
		}

		players = append(players, squad.Player{
			ID:        rec.ID,
			Name:      rec.Name,
			Club:      rec.Club,
			Position:  pos,
			Price:     rec.Price,
			SellPrice: sell,
			XPByGW:    rec.XPByGW,
			Form:      rec.Form,
			Ownership: rec.Ownership,
			Status:    status,
		})
	}

	pool := squad.NewPool(players)
	for _, id := range doc.Team.PlayerIDs {
		if !pool.Has(id) {
			return nil, nil, fmt.Errorf("team references player %d, which is not in the pool", id)
		}
	}
	for _, id := range doc.Team.LineupIDs {
		if !pool.Has(id) {
			return nil, nil, fmt.Errorf("lineup references player %d, which is not in the pool", id)
		}
	}

	state := &squad.State{
		PlayerIDs:     doc.Team.PlayerIDs,
		LineupIDs:     doc.Team.LineupIDs,
		Bank:          doc.Team.Bank,
		FreeTransfers: doc.Team.FreeTransfers,
		Gameweek:      doc.Gameweek,
	}
	return pool, state, nil
}
