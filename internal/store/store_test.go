package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"volei-app/internal/model"
	"volei-app/internal/standings"
)

func sampleTournament(t *testing.T) model.Tournament {
	t.Helper()
	day, err := model.ParseDate("2025-10-12")
	require.NoError(t, err)
	return model.Tournament{
		Teams: []model.Team{
			{Name: "Leoas", Group: "A", Gender: model.GenderFemale},
			{Name: "Panteras", Group: "A", Gender: model.GenderFemale},
			{Name: "Finalista", Gender: model.GenderFemale},
		},
		Matches: []model.Match{
			{ID: "m1", TeamA: "Leoas", TeamB: "Panteras", SetsA: 3, SetsB: 2,
				Partials: []model.SetScore{{A: 25, B: 20}, {A: 20, B: 25}, {A: 25, B: 23}, {A: 22, B: 25}, {A: 15, B: 10}},
				Date:     day, Time: "19:00", Venue: "Ginásio", Phase: "Grupos"},
			{TeamA: "Panteras", TeamB: "Leoas", Date: day, Venue: "Ginásio", Phase: "Grupos", Partials: []model.SetScore{}},
			{TeamA: "1º Grupo A", TeamB: "Finalista", Venue: "Quadra 2", Phase: "Final", Gender: model.GenderFemale},
		},
	}
}

func runStoreContract(t *testing.T, s Store) {
	saved, err := s.ReplaceTournament(sampleTournament(t))
	require.NoError(t, err)
	require.Len(t, saved.Matches, 3)
	assert.Equal(t, "m1", saved.Matches[0].ID)
	assert.NotEmpty(t, saved.Matches[1].ID)
	assert.NotEmpty(t, saved.Matches[2].ID)

	loaded, err := s.LoadTournament()
	require.NoError(t, err)
	assert.Equal(t, saved.Teams, loaded.Teams)
	require.Len(t, loaded.Matches, 3)
	for i := range saved.Matches {
		assert.Equal(t, saved.Matches[i], loaded.Matches[i], "match %d", i)
	}
	assert.NotNil(t, loaded.Matches[1].Partials, "empty partials stay distinct from none")
	assert.Nil(t, loaded.Matches[2].Partials)
	assert.True(t, loaded.Matches[2].Date.IsZero())

	secondID := saved.Matches[1].ID
	err = s.UpdateMatchResult(secondID, Result{SetsA: 1, SetsB: 1, Partials: []model.SetScore{{A: 25, B: 19}, {A: 23, B: 25}}})
	require.NoError(t, err)
	got, ok := s.GetMatch(secondID)
	require.True(t, ok)
	assert.Equal(t, 1, got.SetsA)
	assert.Equal(t, []model.SetScore{{A: 25, B: 19}, {A: 23, B: 25}}, got.Partials)

	assert.ErrorIs(t, s.UpdateMatchResult("missing", Result{SetsA: 3}), ErrMatchNotFound)
	assert.Error(t, s.UpdateMatchResult(secondID, Result{SetsA: -1}))
	_, ok = s.GetMatch("missing")
	assert.False(t, ok)

	loaded, err = s.LoadTournament()
	require.NoError(t, err)
	result := standings.Compute(loaded.Teams, loaded.Matches)
	assert.Empty(t, result.Diagnostics)
	require.Len(t, result.Standings, 2)
	assert.Equal(t, "Leoas", result.Standings[0].Team)
	assert.Equal(t, 2, result.Standings[0].P)
	assert.Equal(t, 0, result.Standings[0].SP, "+4 from the 3-2 win, -4 from the live match")
	assert.Equal(t, 1, result.Standings[1].P)
	assert.Equal(t, 0, result.Standings[1].SP)

	_, err = s.ReplaceTournament(model.Tournament{Matches: []model.Match{{ID: "x"}, {ID: "x"}}})
	assert.Error(t, err)
	after, err := s.LoadTournament()
	require.NoError(t, err)
	assert.Len(t, after.Matches, 3, "failed import must not clear existing data")
}

func TestMemoryStore(t *testing.T) {
	t.Setenv("APP", "prod")
	s := NewMemoryStore()

	empty, err := s.LoadTournament()
	require.NoError(t, err)
	assert.Empty(t, empty.Teams)

	runStoreContract(t, s)
}

func TestMemoryStore_LoadReturnsCopies(t *testing.T) {
	t.Setenv("APP", "prod")
	s := NewMemoryStore()
	_, err := s.ReplaceTournament(sampleTournament(t))
	require.NoError(t, err)

	first, err := s.LoadTournament()
	require.NoError(t, err)
	first.Matches[0].Partials[0].A = 99
	first.Teams[0].Name = "changed"

	second, err := s.LoadTournament()
	require.NoError(t, err)
	assert.Equal(t, 25, second.Matches[0].Partials[0].A)
	assert.Equal(t, "Leoas", second.Teams[0].Name)
}

func TestMemoryStore_SeedIsConsistent(t *testing.T) {
	t.Setenv("APP", "dev")
	s := NewMemoryStore()
	tournament, err := s.LoadTournament()
	require.NoError(t, err)
	require.NotEmpty(t, tournament.Teams)
	require.NotEmpty(t, tournament.Matches)

	result := standings.Compute(tournament.Teams, tournament.Matches)
	assert.Empty(t, result.Diagnostics)
	for _, entry := range result.Standings {
		assert.Equal(t, entry.J, entry.V+entry.D, entry.Team)
	}
	for _, m := range tournament.Matches {
		if m.Status() != model.MatchFinished {
			continue
		}
		setsA, setsB := 0, 0
		for _, set := range m.Partials {
			if set.A > set.B {
				setsA++
			} else {
				setsB++
			}
		}
		assert.Equal(t, m.SetsA, setsA, "partials of %s", m)
		assert.Equal(t, m.SetsB, setsB, "partials of %s", m)
	}
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "volei.db")
	s, err := NewSQLiteStore(path, SQLiteOptions{MigrationsDir: filepath.Join("..", "..", "migrations")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	runStoreContract(t, s)

	reopened, err := NewSQLiteStore(path, SQLiteOptions{MigrationsDir: filepath.Join("..", "..", "migrations")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })
	loaded, err := reopened.LoadTournament()
	require.NoError(t, err)
	assert.Len(t, loaded.Matches, 3)
}

func TestSQLiteStore_EmbeddedMigrations(t *testing.T) {
	schema, err := os.ReadFile(filepath.Join("..", "..", "migrations", "0001_tournament.sql"))
	require.NoError(t, err)
	migrations := fstest.MapFS{
		"0001_tournament.sql": {Data: schema},
		"0002_blank.sql":      {Data: []byte("  \n")},
		"notes.txt":           {Data: []byte("not a migration")},
	}

	path := filepath.Join(t.TempDir(), "embedded.db")
	s, err := NewSQLiteStore(path, SQLiteOptions{Migrations: migrations})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	var count int
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&count))
	assert.Equal(t, 1, count)

	runStoreContract(t, s)
}

func TestReadMigrations(t *testing.T) {
	migrations, err := readMigrations(fstest.MapFS{
		"0002_b.sql":     {Data: []byte("CREATE TABLE b (id INTEGER);")},
		"0001_a.sql":     {Data: []byte("CREATE TABLE a (id INTEGER);")},
		"0003_empty.sql": {Data: []byte("")},
		"sub/0004_x.sql": {Data: []byte("CREATE TABLE x (id INTEGER);")},
		"README.md":      {Data: []byte("docs")},
	})
	require.NoError(t, err)
	require.Len(t, migrations, 2)
	assert.Equal(t, "0001_a.sql", migrations[0].name)
	assert.Equal(t, "0002_b.sql", migrations[1].name)

	none, err := readMigrations(os.DirFS(filepath.Join(t.TempDir(), "missing")))
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestNewSQLiteStore_RequiresPath(t *testing.T) {
	_, err := NewSQLiteStore("  ", SQLiteOptions{})
	assert.Error(t, err)
}

func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("POSTGRES_TEST_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_TEST_DSN not set")
	}
	s, err := NewPostgresStore(dsn, PostgresOptions{MigrationsDir: filepath.Join("..", "..", "migrations", "postgres")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	runStoreContract(t, s)
}

type affectedResult struct {
	rows int64
	err  error
}

func (r affectedResult) LastInsertId() (int64, error) { return 0, nil }
func (r affectedResult) RowsAffected() (int64, error) { return r.rows, r.err }

func TestCheckMatchUpdated(t *testing.T) {
	assert.NoError(t, checkMatchUpdated(affectedResult{rows: 1}))
	assert.ErrorIs(t, checkMatchUpdated(affectedResult{rows: 0}), ErrMatchNotFound)

	driverErr := errors.New("rows affected not supported")
	err := checkMatchUpdated(affectedResult{err: driverErr})
	require.Error(t, err)
	assert.ErrorIs(t, err, driverErr)
	assert.NotErrorIs(t, err, ErrMatchNotFound)
}
