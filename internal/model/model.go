package model

import (
	"fmt"
	"time"
)

type Gender string

type MatchStatus string

const (
	GenderFemale Gender = "F"
	GenderMale   Gender = "M"

	MatchScheduled  MatchStatus = "scheduled"
	MatchInProgress MatchStatus = "in_progress"
	MatchFinished   MatchStatus = "finished"
)

func (g Gender) Label() string {
	switch g {
	case GenderFemale:
		return "Feminino"
	case GenderMale:
		return "Masculino"
	}
	return string(g)
}

func (g Gender) Valid() bool {
	return g == GenderFemale || g == GenderMale
}

type Team struct {
	Name   string
	Group  string
	Gender Gender
}

type SetScore struct {
	A int
	B int
}

type Match struct {
	ID       string
	TeamA    string
	TeamB    string
	SetsA    int
	SetsB    int
	Partials []SetScore
	Date     time.Time
	Time     string
	Venue    string
	Phase    string
	Gender   Gender
}

// HasPartials reports whether the match carries a per-set point sequence.
// A nil slice means the source had none; an empty one still counts.
func (m Match) HasPartials() bool {
	return m.Partials != nil
}

func (m Match) Status() MatchStatus {
	if m.SetsA == 0 && m.SetsB == 0 {
		return MatchScheduled
	}
	if (m.SetsA >= 3 || m.SetsB >= 3) && m.SetsA+m.SetsB >= 3 {
		return MatchFinished
	}
	return MatchInProgress
}

func (m Match) String() string {
	return fmt.Sprintf("%s vs %s", m.TeamA, m.TeamB)
}

type TeamStanding struct {
	Team   string
	Group  string
	Gender Gender
	P      int
	J      int
	V      int
	D      int
	SS     int
	SP     int
}

type Tournament struct {
	Teams   []Team
	Matches []Match
}

const DateLayout = "2006-01-02"

func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}
