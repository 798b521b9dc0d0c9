package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"volei-app/internal/model"
)

func day(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := model.ParseDate(value)
	require.NoError(t, err)
	return d
}

func TestInferGenders(t *testing.T) {
	teams := []model.Team{
		{Name: "Leoas", Gender: model.GenderFemale},
		{Name: "Touros", Gender: model.GenderMale},
	}
	matches := []model.Match{
		{TeamA: "Leoas", TeamB: "X"},
		{TeamA: "1º Grupo A", TeamB: "Touros"},
		{TeamA: "Touros", TeamB: "Leoas", Gender: model.GenderFemale},
		{TeamA: "?", TeamB: "??"},
	}
	got := InferGenders(teams, matches)

	assert.Equal(t, model.GenderFemale, got[0].Gender)
	assert.Equal(t, model.GenderMale, got[1].Gender)
	assert.Equal(t, model.GenderFemale, got[2].Gender)
	assert.Equal(t, model.Gender(""), got[3].Gender)
	assert.Equal(t, model.Gender(""), matches[0].Gender, "source records must not change")
}

func TestDates(t *testing.T) {
	matches := []model.Match{
		{Date: day(t, "2025-10-12")},
		{Date: day(t, "2025-10-03")},
		{Date: day(t, "2025-10-12")},
		{},
		{Date: day(t, "2025-11-01")},
	}
	got := Dates(matches)
	require.Len(t, got, 3)
	assert.Equal(t, "2025-10-03", got[0].Format(model.DateLayout))
	assert.Equal(t, "2025-10-12", got[1].Format(model.DateLayout))
	assert.Equal(t, "2025-11-01", got[2].Format(model.DateLayout))
}

func TestForDay_GroupsByVenueThenPhase(t *testing.T) {
	d := day(t, "2025-10-12")
	other := day(t, "2025-10-13")
	matches := []model.Match{
		{ID: "1", Date: d, Venue: "Quadra 2", Phase: "Grupos", Gender: model.GenderMale},
		{ID: "2", Date: d, Venue: "Quadra 1", Phase: "Semifinal", Gender: model.GenderFemale},
		{ID: "3", Date: d, Venue: "Quadra 1", Phase: "Grupos", Gender: model.GenderMale},
		{ID: "4", Date: other, Venue: "Quadra 1", Phase: "Final", Gender: model.GenderMale},
		{ID: "5", Date: d, Venue: "Quadra 1", Phase: "Semifinal", Gender: model.GenderMale},
	}

	result := ForDay(matches, Filter{Date: d})
	require.Len(t, result.Venues, 2)
	assert.Equal(t, "Quadra 1", result.Venues[0].Name)
	assert.Equal(t, "Quadra 2", result.Venues[1].Name)

	phases := result.Venues[0].Phases
	require.Len(t, phases, 2)
	assert.Equal(t, "Semifinal", phases[0].Name)
	assert.Equal(t, "Grupos", phases[1].Name)
	require.Len(t, phases[0].Matches, 2)
	assert.Equal(t, "2", phases[0].Matches[0].ID)
	assert.Equal(t, "5", phases[0].Matches[1].ID)
}

func TestForDay_Filters(t *testing.T) {
	d := day(t, "2025-10-12")
	matches := []model.Match{
		{ID: "1", Date: d, Venue: "Quadra 2", Gender: model.GenderMale},
		{ID: "2", Date: d, Venue: "Quadra 1", Gender: model.GenderFemale},
		{ID: "3", Date: d, Venue: "Quadra 1", Gender: model.GenderMale},
	}

	byGender := ForDay(matches, Filter{Date: d, Gender: model.GenderMale})
	require.Len(t, byGender.Venues, 2)
	assert.Equal(t, "3", byGender.Venues[0].Phases[0].Matches[0].ID)

	byVenue := ForDay(matches, Filter{Date: d, Gender: model.GenderMale, Venue: "Quadra 2"})
	require.Len(t, byVenue.Venues, 1)
	assert.Equal(t, "1", byVenue.Venues[0].Phases[0].Matches[0].ID)

	none := ForDay(matches, Filter{Date: day(t, "2030-01-01")})
	assert.True(t, none.Empty())
}

func TestVenues(t *testing.T) {
	got := Venues([]model.Match{{Venue: "B"}, {Venue: "A"}, {Venue: "B"}, {}})
	assert.Equal(t, []string{"A", "B"}, got)
}

func TestFormatDay(t *testing.T) {
	assert.Equal(t, "05/11", FormatDay(day(t, "2025-11-05")))
	assert.Equal(t, "", FormatDay(time.Time{}))
}

func TestSummarize(t *testing.T) {
	unplayed := Summarize(model.Match{})
	assert.Equal(t, "? x ?", unplayed.ScoreLine)
	assert.Equal(t, "Aguardando Resultados", unplayed.PartialsLine)
	assert.False(t, unplayed.Finished)

	live := Summarize(model.Match{SetsA: 1, SetsB: 1, Partials: []model.SetScore{{A: 25, B: 20}, {A: 18, B: 25}}})
	assert.Equal(t, "1 x 1", live.ScoreLine)
	assert.Equal(t, "25-20, 18-25", live.PartialsLine)
	assert.Equal(t, SideNone, live.Winner)

	done := Summarize(model.Match{SetsA: 1, SetsB: 3})
	assert.True(t, done.Finished)
	assert.Equal(t, "1 x 3", done.ScoreLine)
	assert.Equal(t, SideB, done.Winner)
}
