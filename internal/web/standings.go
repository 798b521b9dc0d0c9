package web

import (
	"fmt"
	"html/template"
	"net/url"
	"time"

	"volei-app/internal/model"
	"volei-app/internal/schedule"
	"volei-app/internal/standings"
)

func buildStandingsTables(tables []standings.Table, gender model.Gender) []StandingsTableView {
	views := make([]StandingsTableView, 0, len(tables))
	for _, table := range tables {
		if gender != "" && table.Key.Gender != gender {
			continue
		}
		view := StandingsTableView{
			Key:         table.Key.String(),
			GenderLabel: table.Key.Gender.Label(),
			Group:       table.Key.Group,
			Rows:        make([]StandingRowView, 0, len(table.Standings)),
		}
		view.Title = view.GenderLabel
		if table.Key.Group != "" {
			view.Title = fmt.Sprintf("%s - Grupo %s", view.GenderLabel, table.Key.Group)
		}
		for i, entry := range table.Standings {
			view.Rows = append(view.Rows, StandingRowView{
				Position: i + 1,
				Team:     entry.Team,
				P:        entry.P,
				J:        entry.J,
				V:        entry.V,
				D:        entry.D,
				SS:       standings.FormatDiff(entry.SS),
				SP:       standings.FormatDiff(entry.SP),
			})
		}
		views = append(views, view)
	}
	return views
}

func buildDateButtons(dates []time.Time, filter schedule.Filter) []DateButtonView {
	buttons := make([]DateButtonView, 0, len(dates))
	for _, date := range dates {
		value := date.Format(model.DateLayout)
		query := url.Values{"date": {value}}
		if filter.Gender != "" {
			query.Set("gender", string(filter.Gender))
		}
		if filter.Venue != "" {
			query.Set("venue", filter.Venue)
		}
		buttons = append(buttons, DateButtonView{
			Value:    value,
			Label:    schedule.FormatDay(date),
			Query:    template.URL(query.Encode()),
			Selected: date.Equal(filter.Date),
		})
	}
	return buttons
}

func buildGenderOptions(selected model.Gender) []GenderOptionView {
	options := []GenderOptionView{{Value: "", Label: "Todos", Selected: selected == ""}}
	for _, g := range []model.Gender{model.GenderFemale, model.GenderMale} {
		options = append(options, GenderOptionView{Value: string(g), Label: g.Label(), Selected: g == selected})
	}
	return options
}

// buildScheduleView renders day together with the filter controls that
// produced it. dates and venueNames span the whole tournament.
func buildScheduleView(day schedule.Day, filter schedule.Filter, dates []time.Time, venueNames []string) ScheduleView {
	view := ScheduleView{
		Gender:     string(filter.Gender),
		Venue:      filter.Venue,
		Dates:      buildDateButtons(dates, filter),
		Genders:    buildGenderOptions(filter.Gender),
		VenueNames: venueNames,
		Empty:      day.Empty(),
		Venues:     make([]VenueView, 0, len(day.Venues)),
	}
	if !day.Date.IsZero() {
		view.Date = day.Date.Format(model.DateLayout)
		view.DateLabel = schedule.FormatDay(day.Date)
	}
	for _, venue := range day.Venues {
		venueView := VenueView{Name: venue.Name}
		for _, phase := range venue.Phases {
			phaseView := PhaseView{Name: phase.Name}
			for _, match := range phase.Matches {
				phaseView.Matches = append(phaseView.Matches, buildMatchView(match))
			}
			venueView.Phases = append(venueView.Phases, phaseView)
		}
		view.Venues = append(view.Venues, venueView)
	}
	return view
}

func buildMatchView(match model.Match) MatchView {
	summary := schedule.Summarize(match)
	return MatchView{
		Match:        match,
		GenderLabel:  match.Gender.Label(),
		ScoreLine:    summary.ScoreLine,
		PartialsLine: summary.PartialsLine,
		Finished:     summary.Finished,
		WinnerA:      summary.Winner == schedule.SideA,
		WinnerB:      summary.Winner == schedule.SideB,
	}
}

// skippedMatches counts the matches left out of the standings because a side
// could not be resolved. Other diagnostics still let the match count.
func skippedMatches(diags []standings.Diagnostic) int {
	seen := make(map[int]bool)
	for _, d := range diags {
		if d.Kind == standings.KindUnknownTeam {
			seen[d.MatchIndex] = true
		}
	}
	return len(seen)
}
