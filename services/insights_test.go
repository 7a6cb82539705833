package services

import (
	"reflect"
	"sort"
	"testing"
	"time"

	"football-stats/models"
)

func match(date string, year int, home, away string, hs, as int, tournament string) models.MatchResult {
	d, _ := time.Parse(DateLayout, date)
	return models.MatchResult{Date: d, Year: year, HomeTeam: home, AwayTeam: away, HomeScore: hs, AwayScore: as, Tournament: tournament}
}

func shootout(date, home, away, winner string) models.ShootoutResult {
	d, _ := time.Parse(DateLayout, date)
	return models.ShootoutResult{Date: d, Year: d.Year(), HomeTeam: home, AwayTeam: away, Winner: winner}
}

func goal(date, home, away, scorer string) models.GoalEvent {
	d, _ := time.Parse(DateLayout, date)
	return models.GoalEvent{Date: d, Year: d.Year(), HomeTeam: home, AwayTeam: away, Scorer: scorer}
}

func TestAverageGoalsInclusiveRange(t *testing.T) {
	results := []models.MatchResult{
		match("1899-05-01", 1899, "A", "B", 0, 0, "Friendly"),
		match("1950-05-01", 1950, "A", "B", 1, 2, "Friendly"),
		match("2000-05-01", 2000, "A", "B", 3, 1, "Friendly"),
		match("2001-05-01", 2001, "A", "B", 5, 5, "Friendly"),
	}

	avg, ok := AverageGoals(results, 1900, 2000)
	if !ok {
		t.Fatal("expected data in range")
	}
	if avg != 3.5 {
		t.Errorf("AverageGoals: got %.2f, want 3.50", avg)
	}
}

func TestAverageGoalsRounds(t *testing.T) {
	results := []models.MatchResult{
		match("1950-05-01", 1950, "A", "B", 1, 0, "Friendly"),
		match("1951-05-01", 1951, "A", "B", 1, 0, "Friendly"),
		match("1952-05-01", 1952, "A", "B", 0, 0, "Friendly"),
	}
	avg, _ := AverageGoals(results, 1900, 2000)
	if avg != 0.67 {
		t.Errorf("AverageGoals: got %v, want 0.67", avg)
	}
}

func TestAverageGoalsNoData(t *testing.T) {
	if _, ok := AverageGoals(nil, 1900, 2000); ok {
		t.Error("expected no data for empty input")
	}
	results := []models.MatchResult{match("2010-05-01", 2010, "A", "B", 1, 1, "Friendly")}
	if _, ok := AverageGoals(results, 1900, 2000); ok {
		t.Error("expected no data when nothing falls in range")
	}
}

func TestShootoutWinsSortedByCountry(t *testing.T) {
	shootouts := []models.ShootoutResult{
		shootout("1990-07-03", "Italy", "Argentina", "Italy"),
		shootout("1990-07-04", "France", "Spain", "France"),
		shootout("1994-07-17", "Italy", "Brazil", "Italy"),
	}

	got := ShootoutWins(shootouts)
	want := []models.CountryWins{{Country: "France", Wins: 1}, {Country: "Italy", Wins: 2}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ShootoutWins: got %v, want %v", got, want)
	}

	if got := ShootoutWins(nil); len(got) != 0 {
		t.Errorf("expected no wins for empty input, got %v", got)
	}
}

func TestDrawShootoutWinners(t *testing.T) {
	results := SchemeDate.AssignResultKeys([]models.MatchResult{
		match("2006-07-09", 2006, "Italy", "France", 1, 1, "FIFA World Cup"),
		match("2006-07-01", 2006, "Germany", "Argentina", 1, 1, "FIFA World Cup"),
		match("1994-07-17", 1994, "Brazil", "Italy", 0, 0, "FIFA World Cup"),
		match("2010-07-02", 2010, "Uruguay", "Ghana", 1, 1, "FIFA World Cup"),
		match("2014-07-05", 2014, "Netherlands", "Costa Rica", 1, 1, "FIFA World Cup"),
	})
	shootouts := SchemeDate.AssignShootoutKeys([]models.ShootoutResult{
		shootout("2006-07-09", "Italy", "France", "Italy"),
		shootout("2006-07-01", "Germany", "Argentina", "Germany"),
		shootout("1994-07-17", "Brazil", "Italy", "Brazil"),
		shootout("2010-07-02", "Uruguay", "Ghana", "Uruguay"),
		shootout("2012-06-24", "England", "Italy", "Italy"),
	})

	got := DrawShootoutWinners(results, shootouts)
	want := []string{"Italy", "Germany", "Uruguay"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DrawShootoutWinners: got %v, want %v", got, want)
	}
}

func TestDrawShootoutWinnersSingleMatch(t *testing.T) {
	results := SchemeDate.AssignResultKeys([]models.MatchResult{
		match("2000-01-01", 2000, "A", "B", 1, 1, "Cup"),
		match("2000-01-02", 2000, "C", "D", 1, 1, "Cup"),
	})
	shootouts := SchemeDate.AssignShootoutKeys([]models.ShootoutResult{
		shootout("2000-01-01", "A", "B", "A"),
	})

	got := DrawShootoutWinners(results, shootouts)
	if !reflect.DeepEqual(got, []string{"A"}) {
		t.Errorf("DrawShootoutWinners: got %v, want [A]", got)
	}
	if got := DrawShootoutWinners(results, nil); len(got) != 0 {
		t.Errorf("expected no winners without shootouts, got %v", got)
	}
}

func TestDrawShootoutWinnersDeduplicates(t *testing.T) {
	results := SchemeDate.AssignResultKeys([]models.MatchResult{
		match("2000-01-01", 2000, "A", "B", 1, 1, "Cup"),
		match("2000-02-01", 2000, "A", "C", 1, 1, "Cup"),
	})
	shootouts := SchemeDate.AssignShootoutKeys([]models.ShootoutResult{
		shootout("2000-01-01", "A", "B", "A"),
		shootout("2000-02-01", "A", "C", "A"),
	})
	if got := DrawShootoutWinners(results, shootouts); !reflect.DeepEqual(got, []string{"A"}) {
		t.Errorf("DrawShootoutWinners: got %v, want [A]", got)
	}
}

func TestTopScorersShare(t *testing.T) {
	results := SchemeDate.AssignResultKeys([]models.MatchResult{
		match("2000-01-01", 2000, "A", "B", 2, 1, "T"),
	})
	goals := SchemeDate.AssignGoalKeys([]models.GoalEvent{
		goal("2000-01-01", "A", "B", "X"),
		goal("2000-01-01", "A", "B", "X"),
		goal("2000-01-01", "A", "B", "Y"),
	})

	got := TopScorers(results, goals)
	want := []models.TopScorer{{Tournament: "T", Scorer: "X", Goals: 2, PercentageOfTotal: 66.67}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TopScorers: got %+v, want %+v", got, want)
	}
}

func TestTopScorersTieBreakByName(t *testing.T) {
	results := SchemeDate.AssignResultKeys([]models.MatchResult{
		match("2000-01-01", 2000, "A", "B", 1, 1, "T"),
	})
	goals := SchemeDate.AssignGoalKeys([]models.GoalEvent{
		goal("2000-01-01", "A", "B", "Zico"),
		goal("2000-01-01", "A", "B", "Adriano"),
	})

	got := TopScorers(results, goals)
	if len(got) != 1 || got[0].Scorer != "Adriano" || got[0].PercentageOfTotal != 50 {
		t.Errorf("TopScorers: got %+v", got)
	}
}

func TestTopScorersJoinSemantics(t *testing.T) {
	results := SchemeDate.AssignResultKeys([]models.MatchResult{
		match("2000-01-01", 2000, "A", "B", 1, 0, "Cup"),
		match("2000-03-01", 2000, "C", "D", 1, 0, "League"),
		// Same date and teams as above: the key collides and the goal overmatches.
		match("2000-03-01", 2000, "C", "D", 2, 0, "Friendly"),
	})
	orphan := goal("1999-01-01", "E", "F", "Nobody")
	ownTournament := goal("1999-02-01", "G", "H", "Someone")
	ownTournament.Tournament = "Qualifier"
	goals := SchemeDate.AssignGoalKeys([]models.GoalEvent{
		goal("2000-01-01", "A", "B", "P"),
		goal("2000-03-01", "C", "D", "Q"),
		orphan,
		ownTournament,
	})

	got := TopScorers(results, goals)
	var tournaments []string
	for _, ts := range got {
		tournaments = append(tournaments, ts.Tournament)
	}
	want := []string{"Cup", "Friendly", "League"}
	if !sort.StringsAreSorted(tournaments) || !reflect.DeepEqual(tournaments, want) {
		t.Errorf("tournaments: got %v, want %v", tournaments, want)
	}
	for _, ts := range got {
		if ts.Scorer == "Nobody" || ts.Scorer == "Someone" {
			t.Errorf("goal matching no result must be excluded, got %+v", ts)
		}
	}
}

func TestTopScorersSkipsBlankTournament(t *testing.T) {
	c := NewCleaner(newTestLogger())
	cleaned, report := c.CleanResults(resultsTable(
		rawResult(2, "2000-01-01", "A", "B", "1", "0", "   "),
	))
	if report.Kept != 1 {
		t.Fatalf("blank tournament is not an identifier, expected row kept: %+v", report)
	}

	results := SchemeDate.AssignResultKeys(cleaned)
	goals := SchemeDate.AssignGoalKeys([]models.GoalEvent{goal("2000-01-01", "A", "B", "X")})
	if got := TopScorers(results, goals); len(got) != 0 {
		t.Errorf("expected no tournament records, got %+v", got)
	}
}

func TestTopScorersEmpty(t *testing.T) {
	if got := TopScorers(nil, nil); len(got) != 0 {
		t.Errorf("expected no scorers, got %v", got)
	}
}

func TestInsightServiceGenerate(t *testing.T) {
	svc := NewInsightService(newTestLogger(), 1900, 2000)
	r := svc.Generate(nil, nil, nil)
	if r.HasAverage {
		t.Error("expected no average for empty input")
	}
	if r.YearFrom != 1900 || r.YearTo != 2000 {
		t.Errorf("year range: got %d–%d", r.YearFrom, r.YearTo)
	}
	if len(r.ShootoutWins) != 0 || len(r.DrawShootoutWinners) != 0 || len(r.TopScorers) != 0 {
		t.Errorf("expected empty results, got %+v", r)
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{66.666666, 66.67},
		{3.5, 3.5},
		{2.675, 2.68},
		{0.004, 0},
	}
	for _, tt := range tests {
		if got := round2(tt.in); got != tt.want {
			t.Errorf("round2(%v) = %v; want %v", tt.in, got, tt.want)
		}
	}
}
