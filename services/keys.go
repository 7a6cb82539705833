package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"football-stats/models"
)

// ErrSchemeUnsupported is returned when a table lacks a column the key scheme needs.
var ErrSchemeUnsupported = errors.New("key scheme not supported by table")

// KeyField names one component of a composite join key.
type KeyField string

const (
	FieldDate       KeyField = models.ColDate
	FieldYear       KeyField = models.ColYear
	FieldTournament KeyField = models.ColTournament
	FieldHomeTeam   KeyField = models.ColHomeTeam
	FieldAwayTeam   KeyField = models.ColAwayTeam
)

const keySeparator = "_"

// KeyScheme is an ordered field list from which join keys are built. The same
// scheme must be applied to every table joined in a run.
type KeyScheme struct {
	Name   string
	Fields []KeyField
}

var (
	// SchemeDate keys a match by its date and both team names.
	SchemeDate = KeyScheme{Name: "date", Fields: []KeyField{FieldDate, FieldHomeTeam, FieldAwayTeam}}
	// SchemeTournament keys a match by tournament, year and both team names.
	SchemeTournament = KeyScheme{Name: "tournament", Fields: []KeyField{FieldTournament, FieldYear, FieldHomeTeam, FieldAwayTeam}}
)

// SchemeByName resolves a configured scheme name.
func SchemeByName(name string) (KeyScheme, error) {
	switch name {
	case SchemeDate.Name:
		return SchemeDate, nil
	case SchemeTournament.Name:
		return SchemeTournament, nil
	}
	return KeyScheme{}, fmt.Errorf("keys: unknown scheme %q", name)
}

// keySource is a row that can supply canonical key field values.
type keySource interface {
	keyField(f KeyField) (string, bool)
}

type resultKeys models.MatchResult
type goalKeys models.GoalEvent
type shootoutKeys models.ShootoutResult

func (r resultKeys) keyField(f KeyField) (string, bool) {
	return canonical(f, r.Date.Format(DateLayout), r.Year, r.Tournament, r.HomeTeam, r.AwayTeam)
}

func (g goalKeys) keyField(f KeyField) (string, bool) {
	return canonical(f, g.Date.Format(DateLayout), g.Year, g.Tournament, g.HomeTeam, g.AwayTeam)
}

func (s shootoutKeys) keyField(f KeyField) (string, bool) {
	return canonical(f, s.Date.Format(DateLayout), s.Year, s.Tournament, s.HomeTeam, s.AwayTeam)
}

func canonical(f KeyField, date string, year int, tournament, home, away string) (string, bool) {
	switch f {
	case FieldDate:
		return date, true
	case FieldYear:
		return strconv.Itoa(year), true
	case FieldTournament:
		return tournament, tournament != ""
	case FieldHomeTeam:
		return home, true
	case FieldAwayTeam:
		return away, true
	}
	return "", false
}

func (s KeyScheme) key(src keySource) (string, bool) {
	parts := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		v, ok := src.keyField(f)
		if !ok {
			return "", false
		}
		parts[i] = v
	}
	return strings.Join(parts, keySeparator), true
}

// ResultKey builds the join key of a match result.
func (s KeyScheme) ResultKey(m models.MatchResult) (string, bool) { return s.key(resultKeys(m)) }

// GoalKey builds the join key of a goal event.
func (s KeyScheme) GoalKey(g models.GoalEvent) (string, bool) { return s.key(goalKeys(g)) }

// ShootoutKey builds the join key of a shootout result.
func (s KeyScheme) ShootoutKey(r models.ShootoutResult) (string, bool) {
	return s.key(shootoutKeys(r))
}

// Supports checks that a table's header carries every column the scheme reads.
// Date and team columns are always required by the loader and year is derived
// from the date when absent, so only tournament can be missing.
func (s KeyScheme) Supports(table string, hasColumn func(string) bool) error {
	for _, f := range s.Fields {
		if f != FieldTournament {
			continue
		}
		if !hasColumn(string(f)) {
			return fmt.Errorf("keys: scheme %q needs column %q in %s: %w", s.Name, f, table, ErrSchemeUnsupported)
		}
	}
	return nil
}

// AssignResultKeys returns a copy of rows with JoinKey set.
func (s KeyScheme) AssignResultKeys(rows []models.MatchResult) []models.MatchResult {
	out := make([]models.MatchResult, len(rows))
	for i, r := range rows {
		r.JoinKey, _ = s.ResultKey(r)
		out[i] = r
	}
	return out
}

// AssignGoalKeys returns a copy of rows with JoinKey set. Rows whose key cannot
// be built keep an empty JoinKey and never join.
func (s KeyScheme) AssignGoalKeys(rows []models.GoalEvent) []models.GoalEvent {
	out := make([]models.GoalEvent, len(rows))
	for i, r := range rows {
		r.JoinKey, _ = s.GoalKey(r)
		out[i] = r
	}
	return out
}

// AssignShootoutKeys returns a copy of rows with JoinKey set.
func (s KeyScheme) AssignShootoutKeys(rows []models.ShootoutResult) []models.ShootoutResult {
	out := make([]models.ShootoutResult, len(rows))
	for i, r := range rows {
		r.JoinKey, _ = s.ShootoutKey(r)
		out[i] = r
	}
	return out
}
