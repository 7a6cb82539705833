package services

import (
	"fmt"
	"io"
	"strings"

	"football-stats/models"
)

// Print writes the data-quality summary followed by the query results.
func (s *InsightService) Print(w io.Writer, r *models.Report) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Fprintf(w, "%s\n", sep)
	fmt.Fprintf(w, "  FOOTBALL MATCH STATISTICS (key scheme: %s)\n", r.KeyScheme)
	fmt.Fprintf(w, "%s\n\n", sep)

	fmt.Fprintf(w, "Data quality:\n")
	fmt.Fprintf(w, "%s\n", thin)
	for _, q := range r.Quality {
		fmt.Fprintf(w, "  %-12s flagged: %d | duplicates: %d | kept: %d of %d\n",
			q.Table, q.Flagged, q.Duplicates, q.Kept, q.Total)
	}
	fmt.Fprintln(w)

	ins := r.Insights
	if ins == nil {
		fmt.Fprintf(w, "No insights computed.\n")
		return
	}

	if ins.HasAverage {
		fmt.Fprintf(w, "1. Average goals per game (%d–%d): %.2f\n", ins.YearFrom, ins.YearTo, ins.AverageGoals)
	} else {
		fmt.Fprintf(w, "1. Average goals per game (%d–%d): no data available\n", ins.YearFrom, ins.YearTo)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "2. Shootout wins by country (alphabetical):\n")
	if len(ins.ShootoutWins) == 0 {
		fmt.Fprintf(w, "  no data available\n")
	}
	for _, cw := range ins.ShootoutWins {
		fmt.Fprintf(w, "%s: %d\n", cw.Country, cw.Wins)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "4. Teams that won a shootout after a 1–1 draw:\n")
	if len(ins.DrawShootoutWinners) == 0 {
		fmt.Fprintf(w, "  no data available\n")
	}
	for _, team := range ins.DrawShootoutWinners {
		fmt.Fprintf(w, "%s\n", team)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "5. Top goal scorer by tournament:\n")
	if len(ins.TopScorers) == 0 {
		fmt.Fprintf(w, "  no data available\n")
	}
	for _, ts := range ins.TopScorers {
		fmt.Fprintf(w, "{tournament: %s, top_scorer: %s, goals: %d, percentage_of_total: %.2f}\n",
			ts.Tournament, ts.Scorer, ts.Goals, ts.PercentageOfTotal)
	}
}
