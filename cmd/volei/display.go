package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"volei-app/internal/schedule"
	"volei-app/internal/standings"

	"gopkg.in/yaml.v3"
)

type standingOutput struct {
	Team string `json:"team" yaml:"team"`
	P    int    `json:"p" yaml:"p"`
	J    int    `json:"j" yaml:"j"`
	V    int    `json:"v" yaml:"v"`
	D    int    `json:"d" yaml:"d"`
	SS   int    `json:"ss" yaml:"ss"`
	SP   int    `json:"sp" yaml:"sp"`
}

type tableOutput struct {
	Gender    string           `json:"gender" yaml:"gender"`
	Group     string           `json:"group" yaml:"group"`
	Standings []standingOutput `json:"standings" yaml:"standings"`
}

func writeStandings(w io.Writer, tables []standings.Table, format string) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text":
		if len(tables) == 0 {
			fmt.Fprintln(w, "no standings")
		}
		for _, table := range tables {
			printStandingsTable(w, table)
		}
		return nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(tablesOutput(tables))
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(tablesOutput(tables)); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown output format %q", format)
}

func tablesOutput(tables []standings.Table) []tableOutput {
	out := make([]tableOutput, 0, len(tables))
	for _, table := range tables {
		t := tableOutput{Gender: string(table.Key.Gender), Group: table.Key.Group}
		for _, entry := range table.Standings {
			t.Standings = append(t.Standings, standingOutput{
				Team: entry.Team, P: entry.P, J: entry.J, V: entry.V, D: entry.D, SS: entry.SS, SP: entry.SP,
			})
		}
		out = append(out, t)
	}
	return out
}

func printStandingsTable(w io.Writer, table standings.Table) {
	title := table.Key.Gender.Label()
	if table.Key.Group != "" {
		title = fmt.Sprintf("%s - Grupo %s", title, table.Key.Group)
	}
	fmt.Fprintf(w, "\n=========== %s ===========\n", strings.ToUpper(title))
	fmt.Fprintf(w, "%-3s | %-24s | %3s | %3s | %3s | %3s | %4s | %5s\n", "#", "Time", "P", "J", "V", "D", "SS", "SP")
	fmt.Fprintf(w, "%s-+-%s-+-%s-+-%s-+-%s-+-%s-+-%s-+-%s\n",
		strings.Repeat("-", 3), strings.Repeat("-", 24), strings.Repeat("-", 3), strings.Repeat("-", 3),
		strings.Repeat("-", 3), strings.Repeat("-", 3), strings.Repeat("-", 4), strings.Repeat("-", 5))
	for i, entry := range table.Standings {
		fmt.Fprintf(w, "%-3d | %-24s | %3d | %3d | %3d | %3d | %4s | %5s\n",
			i+1, entry.Team, entry.P, entry.J, entry.V, entry.D, standings.FormatDiff(entry.SS), standings.FormatDiff(entry.SP))
	}
}

func printDay(w io.Writer, day schedule.Day) {
	if day.Empty() {
		fmt.Fprintf(w, "no matches on %s\n", schedule.FormatDay(day.Date))
		return
	}
	fmt.Fprintf(w, "=========== %s ===========\n", schedule.FormatDay(day.Date))
	for _, venue := range day.Venues {
		fmt.Fprintf(w, "\n%s\n", venue.Name)
		for _, phase := range venue.Phases {
			fmt.Fprintf(w, "  %s\n", phase.Name)
			for _, match := range phase.Matches {
				summary := schedule.Summarize(match)
				fmt.Fprintf(w, "    %-5s %-2s %-20s %-5s %-20s %s\n",
					match.Time, match.Gender, match.TeamA, summary.ScoreLine, match.TeamB, summary.PartialsLine)
			}
		}
	}
}

func printCheckReport(w io.Writer, report checkReport) {
	if report.Err != nil {
		fmt.Fprintf(w, "FAIL %s: %v\n", report.Path, report.Err)
		return
	}
	status := "ok  "
	if !report.ok() {
		status = "WARN"
	}
	fmt.Fprintf(w, "%s %s: %d teams, %d matches, %d problems\n",
		status, report.Path, report.Teams, report.Matches, len(report.Diagnostics))
	for _, d := range report.Diagnostics {
		fmt.Fprintf(w, "     [%s] %s\n", d.Kind, d.Message)
	}
}
