// Package schedule slices the match log for display: by day, division and
// venue, grouped by venue and phase. It carries no scoring rules.
package schedule

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"volei-app/internal/model"
)

// InferGenders returns a copy of matches where a missing gender is taken from
// side A's team, falling back to side B's. The input slice is not modified.
func InferGenders(teams []model.Team, matches []model.Match) []model.Match {
	genders := make(map[string]model.Gender, len(teams))
	for _, team := range teams {
		if _, exists := genders[team.Name]; !exists {
			genders[team.Name] = team.Gender
		}
	}
	out := make([]model.Match, len(matches))
	for i, match := range matches {
		if match.Gender == "" {
			if g, ok := genders[match.TeamA]; ok {
				match.Gender = g
			} else if g, ok := genders[match.TeamB]; ok {
				match.Gender = g
			}
		}
		out[i] = match
	}
	return out
}

func Dates(matches []model.Match) []time.Time {
	seen := map[string]bool{}
	dates := []time.Time{}
	for _, match := range matches {
		if match.Date.IsZero() {
			continue
		}
		key := match.Date.Format(model.DateLayout)
		if seen[key] {
			continue
		}
		seen[key] = true
		dates = append(dates, match.Date)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

type Filter struct {
	Date   time.Time
	Gender model.Gender
	Venue  string
}

type Phase struct {
	Name    string
	Matches []model.Match
}

type Venue struct {
	Name   string
	Phases []Phase
}

type Day struct {
	Date   time.Time
	Venues []Venue
}

func (d Day) Empty() bool {
	return len(d.Venues) == 0
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// ForDay returns the matches played on f.Date, grouped by venue name and,
// inside each venue, by phase in order of first appearance.
func ForDay(matches []model.Match, f Filter) Day {
	byVenue := map[string][]model.Match{}
	for _, match := range matches {
		if !sameDay(match.Date, f.Date) {
			continue
		}
		if f.Gender != "" && match.Gender != f.Gender {
			continue
		}
		if f.Venue != "" && match.Venue != f.Venue {
			continue
		}
		byVenue[match.Venue] = append(byVenue[match.Venue], match)
	}
	names := make([]string, 0, len(byVenue))
	for name := range byVenue {
		names = append(names, name)
	}
	sort.Strings(names)

	day := Day{Date: f.Date, Venues: make([]Venue, 0, len(names))}
	for _, name := range names {
		venue := Venue{Name: name}
		phaseIndex := map[string]int{}
		for _, match := range byVenue[name] {
			idx, ok := phaseIndex[match.Phase]
			if !ok {
				idx = len(venue.Phases)
				phaseIndex[match.Phase] = idx
				venue.Phases = append(venue.Phases, Phase{Name: match.Phase})
			}
			venue.Phases[idx].Matches = append(venue.Phases[idx].Matches, match)
		}
		day.Venues = append(day.Venues, venue)
	}
	return day
}

func Venues(matches []model.Match) []string {
	seen := map[string]bool{}
	venues := []string{}
	for _, match := range matches {
		if match.Venue == "" || seen[match.Venue] {
			continue
		}
		seen[match.Venue] = true
		venues = append(venues, match.Venue)
	}
	sort.Strings(venues)
	return venues
}

// FormatDay renders a date as DD/MM.
func FormatDay(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01")
}

type Side string

const (
	SideNone Side = ""
	SideA    Side = "A"
	SideB    Side = "B"
)

type MatchSummary struct {
	ScoreLine    string
	PartialsLine string
	Finished     bool
	Winner       Side
}

func Summarize(m model.Match) MatchSummary {
	summary := MatchSummary{ScoreLine: "? x ?", PartialsLine: "Aguardando Resultados"}
	if len(m.Partials) > 0 {
		parts := make([]string, 0, len(m.Partials))
		for _, set := range m.Partials {
			parts = append(parts, fmt.Sprintf("%d-%d", set.A, set.B))
		}
		summary.PartialsLine = strings.Join(parts, ", ")
	}
	switch m.Status() {
	case model.MatchFinished:
		summary.Finished = true
		summary.ScoreLine = fmt.Sprintf("%d x %d", m.SetsA, m.SetsB)
		if m.SetsA > m.SetsB {
			summary.Winner = SideA
		} else if m.SetsB > m.SetsA {
			summary.Winner = SideB
		}
	case model.MatchInProgress:
		summary.ScoreLine = fmt.Sprintf("%d x %d", m.SetsA, m.SetsB)
	}
	return summary
}
