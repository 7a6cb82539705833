package models

// Reasons a row is rejected by the quality filter.
const (
	ReasonMissingValue    = "missing value"
	ReasonBlankIdentifier = "blank identifier"
	ReasonInvalidValue    = "invalid value"
	ReasonDuplicate       = "duplicate"
)

// Rejection records one row dropped during cleaning.
type Rejection struct {
	Table  string
	Line   int
	Reason string
	Cells  []string
}

// QualityReport summarises what the quality filter did to one table.
// Flagged and Duplicates are both assessed on the raw rows, so a row that is
// both a duplicate and defective is counted in each.
type QualityReport struct {
	Table      string
	Total      int
	Flagged    int
	Duplicates int
	Kept       int
	Rejected   []Rejection
}

// CountryWins is the number of shootouts won by one country.
type CountryWins struct {
	Country string
	Wins    int
}

// TopScorer is the leading goal scorer of one tournament.
type TopScorer struct {
	Tournament        string
	Scorer            string
	Goals             int
	PercentageOfTotal float64
}

// InsightReport holds the computed analytics over the cleaned tables.
type InsightReport struct {
	YearFrom int
	YearTo   int

	// AverageGoals is only meaningful when HasAverage is true.
	AverageGoals float64
	HasAverage   bool

	ShootoutWins        []CountryWins
	DrawShootoutWinners []string
	TopScorers          []TopScorer
}

// Report is the full output of one pipeline run.
type Report struct {
	KeyScheme string
	Quality   []QualityReport
	Insights  *InsightReport
}
