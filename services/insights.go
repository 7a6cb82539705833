package services

import (
	"sort"

	"github.com/shopspring/decimal"

	"football-stats/models"
	"football-stats/utils"
)

// InsightService runs the analytical queries over cleaned, keyed tables.
type InsightService struct {
	logger   *utils.Logger
	yearFrom int
	yearTo   int
}

// NewInsightService creates an InsightService averaging goals over [yearFrom, yearTo].
func NewInsightService(logger *utils.Logger, yearFrom, yearTo int) *InsightService {
	return &InsightService{logger: logger, yearFrom: yearFrom, yearTo: yearTo}
}

// Generate runs every query. Inputs must already carry join keys built with one scheme.
func (s *InsightService) Generate(results []models.MatchResult, goals []models.GoalEvent, shootouts []models.ShootoutResult) *models.InsightReport {
	report := &models.InsightReport{YearFrom: s.yearFrom, YearTo: s.yearTo}

	report.AverageGoals, report.HasAverage = AverageGoals(results, s.yearFrom, s.yearTo)
	if !report.HasAverage {
		s.logger.Warn("[insights] no matches between %d and %d", s.yearFrom, s.yearTo)
	}

	report.ShootoutWins = ShootoutWins(shootouts)
	report.DrawShootoutWinners = DrawShootoutWinners(results, shootouts)
	report.TopScorers = TopScorers(results, goals)

	s.logger.Info("[insights] %d shootout winners, %d 1–1 shootout winners, %d tournaments with scorers",
		len(report.ShootoutWins), len(report.DrawShootoutWinners), len(report.TopScorers))
	return report
}

// AverageGoals returns the mean total score of matches played in [from, to],
// rounded to 2 places. ok is false when no match falls in the range.
func AverageGoals(results []models.MatchResult, from, to int) (avg float64, ok bool) {
	var total, n int
	for _, m := range results {
		if m.Year < from || m.Year > to {
			continue
		}
		total += m.TotalGoals()
		n++
	}
	if n == 0 {
		return 0, false
	}
	return round2(float64(total) / float64(n)), true
}

// ShootoutWins counts shootout wins per country, sorted by country name.
func ShootoutWins(shootouts []models.ShootoutResult) []models.CountryWins {
	counts := make(map[string]int)
	for _, s := range shootouts {
		if s.Winner == "" {
			continue
		}
		counts[s.Winner]++
	}

	wins := make([]models.CountryWins, 0, len(counts))
	for country, n := range counts {
		wins = append(wins, models.CountryWins{Country: country, Wins: n})
	}
	sort.Slice(wins, func(i, j int) bool {
		return wins[i].Country < wins[j].Country
	})
	return wins
}

// DrawShootoutWinners returns the distinct winners of shootouts that followed a
// 1–1 draw, in the order first encountered. Results without a matching shootout
// contribute nothing.
func DrawShootoutWinners(results []models.MatchResult, shootouts []models.ShootoutResult) []string {
	byKey := make(map[string][]string)
	for _, s := range shootouts {
		if s.JoinKey == "" || s.Winner == "" {
			continue
		}
		byKey[s.JoinKey] = append(byKey[s.JoinKey], s.Winner)
	}

	winners := utils.NewOrderedSet()
	for _, m := range results {
		if m.HomeScore != 1 || m.AwayScore != 1 || m.JoinKey == "" {
			continue
		}
		for _, w := range byKey[m.JoinKey] {
			winners.Add(w)
		}
	}
	return winners.Values()
}

// TopScorers finds the leading scorer of each tournament and their share of the
// tournament's goals. A goal event takes its tournament from every result with
// the same join key; events matching no result, or only results without a
// tournament, are skipped. Ties go to the lexicographically smallest name.
// Records are sorted by tournament.
func TopScorers(results []models.MatchResult, goals []models.GoalEvent) []models.TopScorer {
	tournamentsByKey := make(map[string][]string)
	for _, m := range results {
		if m.JoinKey == "" || m.Tournament == "" {
			continue
		}
		tournamentsByKey[m.JoinKey] = append(tournamentsByKey[m.JoinKey], m.Tournament)
	}

	perTournament := make(map[string]map[string]int)
	totals := make(map[string]int)
	count := func(tournament, scorer string) {
		if perTournament[tournament] == nil {
			perTournament[tournament] = make(map[string]int)
		}
		perTournament[tournament][scorer]++
		totals[tournament]++
	}

	for _, g := range goals {
		if g.Scorer == "" {
			continue
		}
		// Keyless events miss the index, which never holds "".
		for _, t := range tournamentsByKey[g.JoinKey] {
			count(t, g.Scorer)
		}
	}

	out := make([]models.TopScorer, 0, len(perTournament))
	for tournament, scorers := range perTournament {
		top := models.TopScorer{Tournament: tournament}
		for scorer, n := range scorers {
			if n > top.Goals || (n == top.Goals && scorer < top.Scorer) {
				top.Scorer = scorer
				top.Goals = n
			}
		}
		top.PercentageOfTotal = round2(100 * float64(top.Goals) / float64(totals[tournament]))
		out = append(out, top)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Tournament < out[j].Tournament
	})
	return out
}

// round2 rounds half away from zero to 2 decimal places.
func round2(f float64) float64 {
	return decimal.NewFromFloat(f).Round(2).InexactFloat64()
}
