package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"volei-app/internal/model"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	db *sql.DB
}

type SQLiteOptions struct {
	// MigrationsDir overrides Migrations with .sql files read from disk.
	MigrationsDir string
	Migrations    fs.FS
}

func NewSQLiteStore(path string, opts SQLiteOptions) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite path is required")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if err := migrate(db, migrationSource(opts.MigrationsDir, opts.Migrations, "migrations"), "?"); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) LoadTournament() (model.Tournament, error) {
	t := model.Tournament{}
	rows, err := s.db.Query(`SELECT name, group_name, gender FROM teams ORDER BY position`)
	if err != nil {
		return model.Tournament{}, fmt.Errorf("load teams: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var team model.Team
		var gender string
		if err := rows.Scan(&team.Name, &team.Group, &gender); err != nil {
			return model.Tournament{}, fmt.Errorf("scan team: %w", err)
		}
		team.Gender = model.Gender(gender)
		t.Teams = append(t.Teams, team)
	}
	if err := rows.Err(); err != nil {
		return model.Tournament{}, fmt.Errorf("load teams: %w", err)
	}

	matchRows, err := s.db.Query(`SELECT ` + matchColumns + ` FROM matches ORDER BY position`)
	if err != nil {
		return model.Tournament{}, fmt.Errorf("load matches: %w", err)
	}
	defer matchRows.Close()
	for matchRows.Next() {
		match, err := scanMatchRow(matchRows)
		if err != nil {
			return model.Tournament{}, fmt.Errorf("scan match: %w", err)
		}
		t.Matches = append(t.Matches, match)
	}
	if err := matchRows.Err(); err != nil {
		return model.Tournament{}, fmt.Errorf("load matches: %w", err)
	}
	return t, nil
}

func (s *SQLiteStore) GetMatch(id string) (model.Match, bool) {
	row := s.db.QueryRow(`SELECT `+matchColumns+` FROM matches WHERE id = ?`, id)
	match, err := scanMatchRow(row)
	if err != nil {
		return model.Match{}, false
	}
	return match, true
}

func (s *SQLiteStore) ReplaceTournament(t model.Tournament) (model.Tournament, error) {
	prepared, err := prepareTournament(t)
	if err != nil {
		return model.Tournament{}, err
	}
	tx, err := s.db.Begin()
	if err != nil {
		return model.Tournament{}, fmt.Errorf("begin import tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM matches`); err != nil {
		return model.Tournament{}, err
	}
	if _, err := tx.Exec(`DELETE FROM teams`); err != nil {
		return model.Tournament{}, err
	}
	for i, team := range prepared.Teams {
		if _, err := tx.Exec(`INSERT INTO teams (position, name, group_name, gender) VALUES (?,?,?,?)`,
			i, team.Name, team.Group, string(team.Gender),
		); err != nil {
			return model.Tournament{}, fmt.Errorf("insert team %q: %w", team.Name, err)
		}
	}
	for i, m := range prepared.Matches {
		if _, err := tx.Exec(`INSERT INTO matches (id, position, team_a, team_b, sets_a, sets_b, partials_json, match_date, match_time, venue, phase, gender) VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
			m.ID, i, m.TeamA, m.TeamB, m.SetsA, m.SetsB, partialsValue(m.Partials), dateValue(m), m.Time, m.Venue, m.Phase, string(m.Gender),
		); err != nil {
			return model.Tournament{}, fmt.Errorf("insert match %s: %w", m, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return model.Tournament{}, fmt.Errorf("commit import tx: %w", err)
	}
	return prepared, nil
}

func (s *SQLiteStore) UpdateMatchResult(id string, result Result) error {
	if err := result.validate(); err != nil {
		return err
	}
	res, err := s.db.Exec(`UPDATE matches SET sets_a = ?, sets_b = ?, partials_json = ? WHERE id = ?`,
		result.SetsA, result.SetsB, partialsValue(result.Partials), id,
	)
	if err != nil {
		return err
	}
	return checkMatchUpdated(res)
}

const matchColumns = `id, team_a, team_b, sets_a, sets_b, partials_json, match_date, match_time, venue, phase, gender`

func scanMatchRow(scanner interface{ Scan(dest ...any) error }) (model.Match, error) {
	var match model.Match
	var partialsJSON, date sql.NullString
	var gender string
	if err := scanner.Scan(
		&match.ID,
		&match.TeamA,
		&match.TeamB,
		&match.SetsA,
		&match.SetsB,
		&partialsJSON,
		&date,
		&match.Time,
		&match.Venue,
		&match.Phase,
		&gender,
	); err != nil {
		return model.Match{}, err
	}
	match.Gender = model.Gender(gender)
	if date.Valid && strings.TrimSpace(date.String) != "" {
		parsed, err := model.ParseDate(date.String)
		if err != nil {
			return model.Match{}, fmt.Errorf("match %s date: %w", match.ID, err)
		}
		match.Date = parsed
	}
	if partialsJSON.Valid && strings.TrimSpace(partialsJSON.String) != "" {
		if err := json.Unmarshal([]byte(partialsJSON.String), &match.Partials); err != nil {
			return model.Match{}, fmt.Errorf("match %s partials: %w", match.ID, err)
		}
	}
	return match, nil
}

// partialsValue keeps the difference between "no partials" (NULL) and an
// empty sequence ("[]").
func partialsValue(partials []model.SetScore) any {
	if partials == nil {
		return nil
	}
	return string(toJSON(partials))
}

func dateValue(m model.Match) any {
	if m.Date.IsZero() {
		return nil
	}
	return m.Date.Format(model.DateLayout)
}

func toJSON(v any) []byte {
	if v == nil {
		return []byte("null")
	}
	data, err := json.Marshal(v)
	if err != nil {
		return []byte("null")
	}
	return data
}
