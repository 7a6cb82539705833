package services

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"

	"football-stats/models"
	"football-stats/utils"
)

// DateLayout is the canonical date format of every source table.
const DateLayout = "2006-01-02"

// nullTokens are cell values read as missing, the same set pandas treats as NaN
// by default. Matching is exact; a whitespace-only cell is present but blank.
var nullTokens = map[string]struct{}{
	"": {}, "NA": {}, "N/A": {}, "n/a": {}, "NaN": {}, "nan": {}, "-NaN": {}, "-nan": {},
	"null": {}, "NULL": {}, "None": {}, "<NA>": {}, "#N/A": {}, "#NA": {},
}

// Cleaner turns raw tables into clean, typed tables. It never mutates its input.
type Cleaner struct {
	logger *utils.Logger
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *utils.Logger) *Cleaner {
	return &Cleaner{logger: logger}
}

// FlagResults returns one flag per row, true when the row is defective.
func (c *Cleaner) FlagResults(t models.RawTable[models.RawMatchResult]) []bool {
	return flags(t.Rows, resultConverter(t.HasColumn(models.ColYear)))
}

// FlagGoals returns one flag per goal event row, true when the row is defective.
func (c *Cleaner) FlagGoals(t models.RawTable[models.RawGoalEvent]) []bool {
	return flags(t.Rows, goalConverter(t.HasColumn(models.ColYear), t.HasColumn(models.ColTournament)))
}

// FlagShootouts returns one flag per shootout row, true when the row is defective.
func (c *Cleaner) FlagShootouts(t models.RawTable[models.RawShootoutResult]) []bool {
	return flags(t.Rows, shootoutConverter(t.HasColumn(models.ColYear), t.HasColumn(models.ColTournament)))
}

// CleanResults drops duplicate and defective rows and returns the typed remainder.
func (c *Cleaner) CleanResults(t models.RawTable[models.RawMatchResult]) ([]models.MatchResult, models.QualityReport) {
	return cleanTable(c, t.Name, len(t.Columns), t.Rows, resultRow, resultConverter(t.HasColumn(models.ColYear)))
}

// CleanGoals drops duplicate and defective goal events and returns the typed remainder.
func (c *Cleaner) CleanGoals(t models.RawTable[models.RawGoalEvent]) ([]models.GoalEvent, models.QualityReport) {
	conv := goalConverter(t.HasColumn(models.ColYear), t.HasColumn(models.ColTournament))
	return cleanTable(c, t.Name, len(t.Columns), t.Rows, goalRow, conv)
}

// CleanShootouts drops duplicate and defective shootouts and returns the typed remainder.
func (c *Cleaner) CleanShootouts(t models.RawTable[models.RawShootoutResult]) ([]models.ShootoutResult, models.QualityReport) {
	conv := shootoutConverter(t.HasColumn(models.ColYear), t.HasColumn(models.ColTournament))
	return cleanTable(c, t.Name, len(t.Columns), t.Rows, shootoutRow, conv)
}

// converter parses a raw row, returning a non-empty rejection reason on failure.
type converter[R, T any] func(R) (T, string)

// rowInfo exposes what the filter needs to know about a raw row.
type rowInfo struct {
	line  int
	cells []string
}

func flags[R, T any](rows []R, conv converter[R, T]) []bool {
	out := make([]bool, len(rows))
	for i, r := range rows {
		_, reason := conv(r)
		out[i] = reason != ""
	}
	return out
}

func cleanTable[R, T any](c *Cleaner, table string, width int, rows []R, info func(R) rowInfo, conv converter[R, T]) ([]T, models.QualityReport) {
	report := models.QualityReport{Table: table, Total: len(rows)}
	result := make([]T, 0, len(rows))
	seen := make(map[string]struct{}, len(rows))

	for _, r := range rows {
		ri := info(r)
		typed, reason := conv(r)
		if reason != "" {
			report.Flagged++
		}

		key := dedupKey(ri.cells, width)
		if _, dup := seen[key]; dup {
			report.Duplicates++
			c.logger.Debug("[cleaner] %s line %d: duplicate row skipped", table, ri.line)
			report.Rejected = append(report.Rejected, rejection(table, ri, models.ReasonDuplicate))
			continue
		}
		seen[key] = struct{}{}

		if reason != "" {
			c.logger.Debug("[cleaner] %s line %d: dropping row (%s)", table, ri.line, reason)
			report.Rejected = append(report.Rejected, rejection(table, ri, reason))
			continue
		}
		result = append(result, typed)
	}

	report.Kept = len(result)
	c.logger.Info("[cleaner] %s: cleaned %d → %d rows (flagged %d, duplicates %d)",
		table, report.Total, report.Kept, report.Flagged, report.Duplicates)
	return result, report
}

// dedupKey joins a row's cells padded to width, so short rows compare equal to
// the same row with trailing missing cells.
func dedupKey(cells []string, width int) string {
	if pad := width - len(cells); pad > 0 {
		cells = append(cells[:len(cells):len(cells)], make([]string, pad)...)
	}
	return strings.Join(cells, "\x1f")
}

func rejection(table string, ri rowInfo, reason string) models.Rejection {
	return models.Rejection{Table: table, Line: ri.line, Reason: reason, Cells: ri.cells}
}

func resultRow(r models.RawMatchResult) rowInfo {
	cells := r.Cells
	if cells == nil {
		cells = []string{r.Date, r.Year, r.HomeTeam, r.AwayTeam, r.HomeScore, r.AwayScore, r.Tournament}
	}
	return rowInfo{line: r.Line, cells: cells}
}

func goalRow(r models.RawGoalEvent) rowInfo {
	cells := r.Cells
	if cells == nil {
		cells = []string{r.Date, r.Year, r.HomeTeam, r.AwayTeam, r.Scorer, r.Tournament}
	}
	return rowInfo{line: r.Line, cells: cells}
}

func shootoutRow(r models.RawShootoutResult) rowInfo {
	cells := r.Cells
	if cells == nil {
		cells = []string{r.Date, r.Year, r.HomeTeam, r.AwayTeam, r.Winner, r.Tournament}
	}
	return rowInfo{line: r.Line, cells: cells}
}

func resultConverter(hasYear bool) converter[models.RawMatchResult, models.MatchResult] {
	return func(r models.RawMatchResult) (models.MatchResult, string) {
		var m models.MatchResult
		values := []string{r.Date, r.HomeTeam, r.AwayTeam, r.HomeScore, r.AwayScore, r.Tournament}
		if hasYear {
			values = append(values, r.Year)
		}
		if reason := checkPresence(values, r.Date, r.HomeTeam, r.AwayTeam); reason != "" {
			return m, reason
		}

		date, year, ok := parseDateYear(r.Date, r.Year, hasYear)
		if !ok {
			return m, models.ReasonInvalidValue
		}
		home, okHome := parseCount(r.HomeScore)
		away, okAway := parseCount(r.AwayScore)
		if !okHome || !okAway {
			return m, models.ReasonInvalidValue
		}

		return models.MatchResult{
			Date:       date,
			Year:       year,
			HomeTeam:   normaliseText(r.HomeTeam),
			AwayTeam:   normaliseText(r.AwayTeam),
			HomeScore:  home,
			AwayScore:  away,
			Tournament: normaliseText(r.Tournament),
		}, ""
	}
}

func goalConverter(hasYear, hasTournament bool) converter[models.RawGoalEvent, models.GoalEvent] {
	return func(r models.RawGoalEvent) (models.GoalEvent, string) {
		var g models.GoalEvent
		values := []string{r.Date, r.HomeTeam, r.AwayTeam, r.Scorer}
		if hasYear {
			values = append(values, r.Year)
		}
		if reason := checkPresence(values, r.Date, r.HomeTeam, r.AwayTeam); reason != "" {
			return g, reason
		}

		date, year, ok := parseDateYear(r.Date, r.Year, hasYear)
		if !ok {
			return g, models.ReasonInvalidValue
		}

		// The tournament column is joined in later when the source lacks it,
		// so a missing value here is not a defect.
		tournament := ""
		if hasTournament && !isMissing(r.Tournament) {
			tournament = normaliseText(r.Tournament)
		}

		return models.GoalEvent{
			Date:       date,
			Year:       year,
			HomeTeam:   normaliseText(r.HomeTeam),
			AwayTeam:   normaliseText(r.AwayTeam),
			Scorer:     normaliseText(r.Scorer),
			Tournament: tournament,
		}, ""
	}
}

func shootoutConverter(hasYear, hasTournament bool) converter[models.RawShootoutResult, models.ShootoutResult] {
	return func(r models.RawShootoutResult) (models.ShootoutResult, string) {
		var s models.ShootoutResult
		values := []string{r.Date, r.HomeTeam, r.AwayTeam, r.Winner}
		if hasYear {
			values = append(values, r.Year)
		}
		if reason := checkPresence(values, r.Date, r.HomeTeam, r.AwayTeam); reason != "" {
			return s, reason
		}

		date, year, ok := parseDateYear(r.Date, r.Year, hasYear)
		if !ok {
			return s, models.ReasonInvalidValue
		}

		s = models.ShootoutResult{
			Date:     date,
			Year:     year,
			HomeTeam: normaliseText(r.HomeTeam),
			AwayTeam: normaliseText(r.AwayTeam),
			Winner:   normaliseText(r.Winner),
		}
		if hasTournament && !isMissing(r.Tournament) {
			s.Tournament = normaliseText(r.Tournament)
		}
		return s, ""
	}
}

// checkPresence applies the missing-value and blank-identifier rules.
func checkPresence(values []string, date, home, away string) string {
	for _, v := range values {
		if isMissing(v) {
			return models.ReasonMissingValue
		}
	}
	if isBlank(date) || isBlank(home) || isBlank(away) {
		return models.ReasonBlankIdentifier
	}
	return ""
}

func isMissing(v string) bool {
	_, null := nullTokens[v]
	return null
}

func isBlank(v string) bool {
	return strings.TrimSpace(v) == ""
}

// parseDateYear parses the date and takes the year from the year column when
// present, otherwise from the date.
func parseDateYear(rawDate, rawYear string, hasYear bool) (time.Time, int, bool) {
	date, err := time.Parse(DateLayout, strings.TrimSpace(rawDate))
	if err != nil {
		return time.Time{}, 0, false
	}
	if !hasYear {
		return date, date.Year(), true
	}
	year, ok := parseCount(rawYear)
	if !ok {
		return time.Time{}, 0, false
	}
	return date, year, true
}

// parseCount parses a non-negative integer, accepting integral floats such as "2.0".
func parseCount(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if n, err := strconv.Atoi(raw); err == nil {
		return n, n >= 0
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f < 0 || f != math.Trunc(f) || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

// normaliseText strips leading/trailing whitespace and collapses internal whitespace.
func normaliseText(s string) string {
	s = strings.TrimSpace(s)
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r)
	})
	return strings.Join(fields, " ")
}
