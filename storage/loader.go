package storage

import (
	"football-stats/models"
	"football-stats/utils"
)

// Loader reads the three source tables into raw, uncleaned form.
type Loader struct {
	logger *utils.Logger
}

// NewLoader creates a Loader with the given logger.
func NewLoader(logger *utils.Logger) *Loader {
	return &Loader{logger: logger}
}

// LoadDataset reads all three sources. Any unreadable file or missing required
// column aborts the load.
func (l *Loader) LoadDataset(resultsPath, goalscorersPath, shootoutsPath string) (*models.Dataset, error) {
	results, err := l.LoadResults(resultsPath)
	if err != nil {
		return nil, err
	}
	goals, err := l.LoadGoalscorers(goalscorersPath)
	if err != nil {
		return nil, err
	}
	shootouts, err := l.LoadShootouts(shootoutsPath)
	if err != nil {
		return nil, err
	}
	return &models.Dataset{Results: results, Goalscorers: goals, Shootouts: shootouts}, nil
}

// LoadResults reads the results table.
func (l *Loader) LoadResults(path string) (models.RawTable[models.RawMatchResult], error) {
	table := models.RawTable[models.RawMatchResult]{Name: models.TableResults}

	recs, err := readRecords(path)
	if err != nil {
		return table, err
	}
	cols := newColumnIndex(recs.header)

	var idx [6]int
	for i, name := range []string{
		models.ColDate, models.ColHomeTeam, models.ColAwayTeam,
		models.ColHomeScore, models.ColAwayScore, models.ColTournament,
	} {
		if idx[i], err = cols.require(table.Name, name); err != nil {
			return table, err
		}
	}
	year := cols.optional(models.ColYear)

	table.Columns = recs.header
	table.Rows = make([]models.RawMatchResult, 0, len(recs.rows))
	for n, rec := range recs.rows {
		table.Rows = append(table.Rows, models.RawMatchResult{
			Line:       n + 2,
			Date:       cell(rec, idx[0]),
			Year:       cell(rec, year),
			HomeTeam:   cell(rec, idx[1]),
			AwayTeam:   cell(rec, idx[2]),
			HomeScore:  cell(rec, idx[3]),
			AwayScore:  cell(rec, idx[4]),
			Tournament: cell(rec, idx[5]),
			Cells:      cloneRow(rec),
		})
	}

	l.logger.Info("[loader] %s: %d rows from %s", table.Name, len(table.Rows), path)
	return table, nil
}

// LoadGoalscorers reads the goal events table. The scorer column may be named
// "scorer" or "player"; tournament and year are optional.
func (l *Loader) LoadGoalscorers(path string) (models.RawTable[models.RawGoalEvent], error) {
	table := models.RawTable[models.RawGoalEvent]{Name: models.TableGoalscorers}

	recs, err := readRecords(path)
	if err != nil {
		return table, err
	}
	cols := newColumnIndex(recs.header)

	var idx [3]int
	for i, name := range []string{models.ColDate, models.ColHomeTeam, models.ColAwayTeam} {
		if idx[i], err = cols.require(table.Name, name); err != nil {
			return table, err
		}
	}
	scorer, err := cols.require(table.Name, models.ColScorer, models.ColPlayer)
	if err != nil {
		return table, err
	}
	year := cols.optional(models.ColYear)
	tournament := cols.optional(models.ColTournament)

	table.Columns = recs.header
	table.Rows = make([]models.RawGoalEvent, 0, len(recs.rows))
	for n, rec := range recs.rows {
		table.Rows = append(table.Rows, models.RawGoalEvent{
			Line:       n + 2,
			Date:       cell(rec, idx[0]),
			Year:       cell(rec, year),
			HomeTeam:   cell(rec, idx[1]),
			AwayTeam:   cell(rec, idx[2]),
			Scorer:     cell(rec, scorer),
			Tournament: cell(rec, tournament),
			Cells:      cloneRow(rec),
		})
	}

	l.logger.Info("[loader] %s: %d rows from %s", table.Name, len(table.Rows), path)
	return table, nil
}

// LoadShootouts reads the shootouts table; tournament and year are optional.
func (l *Loader) LoadShootouts(path string) (models.RawTable[models.RawShootoutResult], error) {
	table := models.RawTable[models.RawShootoutResult]{Name: models.TableShootouts}

	recs, err := readRecords(path)
	if err != nil {
		return table, err
	}
	cols := newColumnIndex(recs.header)

	var idx [4]int
	for i, name := range []string{
		models.ColDate, models.ColHomeTeam, models.ColAwayTeam, models.ColWinner,
	} {
		if idx[i], err = cols.require(table.Name, name); err != nil {
			return table, err
		}
	}
	year := cols.optional(models.ColYear)
	tournament := cols.optional(models.ColTournament)

	table.Columns = recs.header
	table.Rows = make([]models.RawShootoutResult, 0, len(recs.rows))
	for n, rec := range recs.rows {
		table.Rows = append(table.Rows, models.RawShootoutResult{
			Line:       n + 2,
			Date:       cell(rec, idx[0]),
			Year:       cell(rec, year),
			HomeTeam:   cell(rec, idx[1]),
			AwayTeam:   cell(rec, idx[2]),
			Winner:     cell(rec, idx[3]),
			Tournament: cell(rec, tournament),
			Cells:      cloneRow(rec),
		})
	}

	l.logger.Info("[loader] %s: %d rows from %s", table.Name, len(table.Rows), path)
	return table, nil
}
