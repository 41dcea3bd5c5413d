// Package report provides utilities for formatting and displaying planning
// results.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/nawaneetkmr-cyber/fpl-tactix/internal/transfers"
	"github.com/nawaneetkmr-cyber/fpl-tactix/pkg/format"
)

// PrettyFormat writes a human-readable rather than machine-readable report.
func PrettyFormat(w io.Writer, result *transfers.Result) {
	p := message.NewPrinter(language.English)

	fmt.Fprintf(w, "--- Gameweek %d plan (%s) ---\n", result.Gameweek, result.Method)
	_, _ = p.Fprintf(w, "Projected over %d gameweeks: %s  (baseline %s, net %s after hits)\n",
		result.Horizon,
		format.Points(result.TotalScore),
		format.Points(result.BaselineScore),
		format.Points(result.NetScore),
	)

	writeTransfers(w, p, result)
	writeTeamSheet(w, result)
	writeVerdict(w, p, result)
}

// JSONFormat writes the result as indented JSON for machine consumption.
func JSONFormat(w io.Writer, result *transfers.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func writeTransfers(w io.Writer, p *message.Printer, result *transfers.Result) {
	if len(result.TransfersIn) == 0 && len(result.TransfersOut) == 0 {
		fmt.Fprintf(w, "\nNo transfers recommended.\n")
		return
	}

	fmt.Fprintf(w, "\nTransfers:\n")
	table := tablewriter.NewWriter(w)
	table.Header("Direction", "Player", "Club", "Pos", "Price", "Projected")
	for _, pv := range result.TransfersOut {
		table.Append("OUT", pv.Name, pv.Club, pv.Position, format.Money(pv.SellPrice), format.Points(pv.Projected))
	}
	for _, pv := range result.TransfersIn {
		table.Append("IN", pv.Name, pv.Club, pv.Position, format.Money(pv.Price), format.Points(pv.Projected))
	}
	table.Render()

	_, _ = p.Fprintf(w, "Spend %s, recoup %s, %s left in the bank.\n",
		format.Money(result.BudgetSpent),
		format.Money(result.BudgetRecouped),
		format.Money(result.BudgetRemaining),
	)
	if result.HitCount > 0 {
		_, _ = p.Fprintf(w, "Taking %d hit(s) for %s.\n", result.HitCount, format.Points(result.HitCost))
	}
}

func writeTeamSheet(w io.Writer, result *transfers.Result) {
	fmt.Fprintf(w, "\nStarting lineup:\n")
	table := tablewriter.NewWriter(w)
	table.Header("Pos", "Player", "Club", "Projected", "Role")
	for _, pv := range result.Lineup {
		table.Append(pv.Position, pv.Name, pv.Club, format.Points(pv.Projected), roleOf(pv, result))
	}
	table.Render()

	if len(result.Bench) > 0 {
		fmt.Fprintf(w, "\nBench:\n")
		bench := tablewriter.NewWriter(w)
		bench.Header("Pos", "Player", "Club", "Projected", "Status")
		for _, pv := range result.Bench {
			bench.Append(pv.Position, pv.Name, pv.Club, format.Points(pv.Projected), pv.Status)
		}
		bench.Render()
	}
}

func roleOf(pv transfers.PlayerView, result *transfers.Result) string {
	if result.Captain != nil && pv.ID == result.Captain.ID {
		return "Captain"
	}
	if result.ViceCaptain != nil && pv.ID == result.ViceCaptain.ID {
		return "Vice"
	}
	return ""
}

func writeVerdict(w io.Writer, p *message.Printer, result *transfers.Result) {
	fmt.Fprintf(w, "\n")
	switch {
	case len(result.TransfersIn) == 0:
		fmt.Fprintf(w, "Verdict: HOLD. The current squad is already the best available.\n")
	case result.ShouldRoll:
		_, _ = p.Fprintf(w, "Verdict: ROLL THE TRANSFER. Net gain of %s is below the threshold worth acting on.\n",
			format.PointsDelta(result.NetImprovement))
	default:
		_, _ = p.Fprintf(w, "Verdict: MAKE THE TRANSFERS. Net gain of %s over the horizon.\n",
			format.PointsDelta(result.NetImprovement))
	}
}

// SuggestionsFormat writes the greedy swap candidates as a ranked table.
func SuggestionsFormat(w io.Writer, suggestions []transfers.Suggestion) {
	if len(suggestions) == 0 {
		fmt.Fprintf(w, "No profitable swaps found.\n")
		return
	}

	table := tablewriter.NewWriter(w)
	table.Header("#", "Out", "In", "Club", "Price", "Gain")
	for i, s := range suggestions {
		table.Append(
			fmt.Sprintf("%d", i+1),
			s.Out.Name,
			s.In.Name,
			s.In.Club,
			format.Money(s.In.Price),
			format.PointsDelta(s.Gain),
		)
	}
	table.Render()
}
