package services

import (
	"football-stats/models"
	"football-stats/utils"
)

// Pipeline cleans, keys and queries a dataset. Each stage returns new values;
// the raw dataset is left untouched.
type Pipeline struct {
	logger   *utils.Logger
	cleaner  *Cleaner
	scheme   KeyScheme
	insights *InsightService
}

// NewPipeline wires the stages together using one key scheme for every table.
func NewPipeline(logger *utils.Logger, scheme KeyScheme, insights *InsightService) *Pipeline {
	return &Pipeline{
		logger:   logger,
		cleaner:  NewCleaner(logger),
		scheme:   scheme,
		insights: insights,
	}
}

// Run returns the full report. It fails only when a table cannot carry the key scheme.
func (p *Pipeline) Run(ds *models.Dataset) (*models.Report, error) {
	checks := []struct {
		table     string
		hasColumn func(string) bool
	}{
		{ds.Results.Name, ds.Results.HasColumn},
		{ds.Goalscorers.Name, ds.Goalscorers.HasColumn},
		{ds.Shootouts.Name, ds.Shootouts.HasColumn},
	}
	for _, c := range checks {
		if err := p.scheme.Supports(c.table, c.hasColumn); err != nil {
			return nil, err
		}
	}

	results, resultsQ := p.cleaner.CleanResults(ds.Results)
	goals, goalsQ := p.cleaner.CleanGoals(ds.Goalscorers)
	shootouts, shootoutsQ := p.cleaner.CleanShootouts(ds.Shootouts)

	p.logger.Debug("[pipeline] building join keys with scheme %q", p.scheme.Name)
	results = p.scheme.AssignResultKeys(results)
	goals = p.scheme.AssignGoalKeys(goals)
	shootouts = p.scheme.AssignShootoutKeys(shootouts)

	return &models.Report{
		KeyScheme: p.scheme.Name,
		Quality:   []models.QualityReport{resultsQ, goalsQ, shootoutsQ},
		Insights:  p.insights.Generate(results, goals, shootouts),
	}, nil
}
