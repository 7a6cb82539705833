package models

import "time"

// Column names consumed from the source files.
const (
	ColDate       = "date"
	ColYear       = "year"
	ColHomeTeam   = "home_team"
	ColAwayTeam   = "away_team"
	ColHomeScore  = "home_score"
	ColAwayScore  = "away_score"
	ColTournament = "tournament"
	ColScorer     = "scorer"
	ColPlayer     = "player"
	ColWinner     = "winner"
)

// Table names, matching the source file stems.
const (
	TableResults     = "results"
	TableGoalscorers = "goalscorers"
	TableShootouts   = "shootouts"
)

// RawTable is a table exactly as read from its source, before any cleaning.
type RawTable[R any] struct {
	Name    string
	Columns []string
	Rows    []R
}

// HasColumn reports whether the source header carried the named column.
func (t RawTable[R]) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// RawMatchResult holds one unprocessed row of the results table.
// Year is empty when the source has no year column.
type RawMatchResult struct {
	Line       int
	Date       string
	Year       string
	HomeTeam   string
	AwayTeam   string
	HomeScore  string
	AwayScore  string
	Tournament string
	Cells      []string
}

// RawGoalEvent holds one unprocessed row of the goalscorers table.
type RawGoalEvent struct {
	Line       int
	Date       string
	Year       string
	HomeTeam   string
	AwayTeam   string
	Scorer     string
	Tournament string
	Cells      []string
}

// RawShootoutResult holds one unprocessed row of the shootouts table.
// Tournament is empty unless the source carries the column.
type RawShootoutResult struct {
	Line       int
	Date       string
	Year       string
	HomeTeam   string
	AwayTeam   string
	Winner     string
	Tournament string
	Cells      []string
}

// MatchResult is a cleaned, typed results row.
type MatchResult struct {
	Date       time.Time
	Year       int
	HomeTeam   string
	AwayTeam   string
	HomeScore  int
	AwayScore  int
	Tournament string
	JoinKey    string
}

// TotalGoals returns the combined score of both sides.
func (m MatchResult) TotalGoals() int {
	return m.HomeScore + m.AwayScore
}

// GoalEvent is a cleaned goal row. Tournament is empty unless the source carried it.
type GoalEvent struct {
	Date       time.Time
	Year       int
	HomeTeam   string
	AwayTeam   string
	Scorer     string
	Tournament string
	JoinKey    string
}

// ShootoutResult is a cleaned shootout row. Tournament is empty unless the
// source carried it.
type ShootoutResult struct {
	Date       time.Time
	Year       int
	HomeTeam   string
	AwayTeam   string
	Winner     string
	Tournament string
	JoinKey    string
}

// Dataset bundles the three raw tables loaded at startup.
type Dataset struct {
	Results     RawTable[RawMatchResult]
	Goalscorers RawTable[RawGoalEvent]
	Shootouts   RawTable[RawShootoutResult]
}
