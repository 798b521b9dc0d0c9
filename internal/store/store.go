package store

import (
	"database/sql"
	"errors"
	"fmt"

	"volei-app/internal/model"

	"github.com/google/uuid"
)

var ErrMatchNotFound = errors.New("match not found")

type Result struct {
	SetsA    int
	SetsB    int
	Partials []model.SetScore
}

type Store interface {
	LoadTournament() (model.Tournament, error)
	GetMatch(id string) (model.Match, bool)
	ReplaceTournament(t model.Tournament) (model.Tournament, error)
	UpdateMatchResult(id string, result Result) error
}

func (r Result) validate() error {
	if r.SetsA < 0 || r.SetsB < 0 {
		return errors.New("set counts must not be negative")
	}
	for _, set := range r.Partials {
		if set.A < 0 || set.B < 0 {
			return errors.New("set points must not be negative")
		}
	}
	return nil
}

// checkMatchUpdated turns an UPDATE that touched no row into ErrMatchNotFound.
func checkMatchUpdated(res sql.Result) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("match update rows affected: %w", err)
	}
	if rows == 0 {
		return ErrMatchNotFound
	}
	return nil
}

// prepareTournament copies t, giving every match without an ID a fresh one.
func prepareTournament(t model.Tournament) (model.Tournament, error) {
	out := model.Tournament{
		Teams:   append([]model.Team(nil), t.Teams...),
		Matches: make([]model.Match, len(t.Matches)),
	}
	seen := make(map[string]bool, len(t.Matches))
	for i, match := range t.Matches {
		if match.ID == "" {
			match.ID = uuid.NewString()
		}
		if seen[match.ID] {
			return model.Tournament{}, fmt.Errorf("duplicate match id %q", match.ID)
		}
		seen[match.ID] = true
		match.Partials = copyPartials(match.Partials)
		out.Matches[i] = match
	}
	return out, nil
}

func copyPartials(partials []model.SetScore) []model.SetScore {
	if partials == nil {
		return nil
	}
	return append(make([]model.SetScore, 0, len(partials)), partials...)
}
