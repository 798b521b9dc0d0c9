package store

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"volei-app/internal/model"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type PostgresStore struct {
	db *sql.DB
}

type PostgresOptions struct {
	// MigrationsDir overrides Migrations with .sql files read from disk.
	MigrationsDir string
	Migrations    fs.FS
}

func NewPostgresStore(dsn string, opts PostgresOptions) (*PostgresStore, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, errors.New("postgres dsn is required")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if err := migrate(db, migrationSource(opts.MigrationsDir, opts.Migrations, "migrations/postgres"), "$1"); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) LoadTournament() (model.Tournament, error) {
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

func (s *PostgresStore) GetMatch(id string) (model.Match, bool) {
	row := s.db.QueryRow(`SELECT `+matchColumns+` FROM matches WHERE id = $1`, id)
	match, err := scanMatchRow(row)
	if err != nil {
		return model.Match{}, false
	}
	return match, true
}

func (s *PostgresStore) ReplaceTournament(t model.Tournament) (model.Tournament, error) {
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
		if _, err := tx.Exec(`INSERT INTO teams (position, name, group_name, gender) VALUES ($1,$2,$3,$4)`,
			i, team.Name, team.Group, string(team.Gender),
		); err != nil {
			return model.Tournament{}, fmt.Errorf("insert team %q: %w", team.Name, err)
		}
	}
	for i, m := range prepared.Matches {
		if _, err := tx.Exec(`INSERT INTO matches (id, position, team_a, team_b, sets_a, sets_b, partials_json, match_date, match_time, venue, phase, gender) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
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

func (s *PostgresStore) UpdateMatchResult(id string, result Result) error {
	if err := result.validate(); err != nil {
		return err
	}
	res, err := s.db.Exec(`UPDATE matches SET sets_a = $1, sets_b = $2, partials_json = $3 WHERE id = $4`,
		result.SetsA, result.SetsB, partialsValue(result.Partials), id,
	)
	if err != nil {
		return err
	}
	return checkMatchUpdated(res)
}
