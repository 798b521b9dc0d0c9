package web

import (
	"html/template"

	"volei-app/internal/model"
)

type BaseView struct {
	Title        string
	IsDev        bool
	FlashSuccess string
}

type HomeView struct {
	BaseView
	Tables         []StandingsTableView
	Schedule       ScheduleView
	SkippedMatches int
}

type StandingsTableView struct {
	Key         string
	Title       string
	GenderLabel string
	Group       string
	Rows        []StandingRowView
}

type StandingRowView struct {
	Position int
	Team     string
	P        int
	J        int
	V        int
	D        int
	SS       string
	SP       string
}

// DateButtonView is one day in the date nav. Query carries the other active
// filters so switching days keeps them.
type DateButtonView struct {
	Value    string
	Label    string
	Query    template.URL
	Selected bool
}

type GenderOptionView struct {
	Value    string
	Label    string
	Selected bool
}

// ScheduleView is the swappable schedule block: the filter controls plus the
// selected day. Every HTMX swap rebuilds the controls from the same filter.
type ScheduleView struct {
	Date       string
	DateLabel  string
	Gender     string
	Venue      string
	Dates      []DateButtonView
	Genders    []GenderOptionView
	VenueNames []string
	Venues     []VenueView
	Empty      bool
}

type VenueView struct {
	Name   string
	Phases []PhaseView
}

type PhaseView struct {
	Name    string
	Matches []MatchView
}

type MatchView struct {
	Match        model.Match
	GenderLabel  string
	ScoreLine    string
	PartialsLine string
	Finished     bool
	WinnerA      bool
	WinnerB      bool
}

type ErrorView struct {
	BaseView
	Message string
}
