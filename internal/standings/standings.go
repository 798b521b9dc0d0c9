// Package standings derives group tables from a roster and a match log.
//
// Everything here is a pure function of its arguments: no package state,
// no I/O. Data problems are returned as Diagnostics instead of aborting the
// computation, so one bad match never hides the rest of the table.
package standings

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"volei-app/internal/model"
)

type Rule struct {
	Winner int
	Loser  int
}

var scoringRules = map[string]Rule{
	"3-0": {Winner: 3, Loser: 0},
	"3-1": {Winner: 3, Loser: 0},
	"3-2": {Winner: 2, Loser: 1},
}

// RuleFor looks up the points awarded for a final set count. Scores outside
// the best-of-five table (3-3, 2-1, 4-0, ...) are not found.
func RuleFor(setsA, setsB int) (Rule, bool) {
	rule, ok := scoringRules[canonicalScore(setsA, setsB)]
	return rule, ok
}

func canonicalScore(setsA, setsB int) string {
	if setsA > setsB {
		return fmt.Sprintf("%d-%d", setsA, setsB)
	}
	return fmt.Sprintf("%d-%d", setsB, setsA)
}

type DiagnosticKind string

const (
	KindUnknownTeam   DiagnosticKind = "unknown_team"
	KindInvalidScore  DiagnosticKind = "invalid_score"
	KindDuplicateTeam DiagnosticKind = "duplicate_team"
)

type Diagnostic struct {
	Kind       DiagnosticKind
	MatchIndex int
	MatchID    string
	Team       string
	Message    string
}

func (d Diagnostic) Error() string {
	return d.Message
}

type Result struct {
	Standings   []model.TeamStanding
	Diagnostics []Diagnostic
}

var (
	ordinalRef = regexp.MustCompile(`^\s*\d+\s*[ºª°]`)
	bracketRef = regexp.MustCompile(`(?i)\b(vencedor|vencedora|perdedor|perdedora|winner|loser)\b`)
)

// IsPlaceholder reports whether ref names a knockout slot that has not been
// filled yet, e.g. "1º Grupo A", "Vencedor Jogo 3" or a blank side.
func IsPlaceholder(ref string) bool {
	if strings.TrimSpace(ref) == "" {
		return true
	}
	return ordinalRef.MatchString(ref) || bracketRef.MatchString(ref)
}

// FormatDiff renders a set or point difference with an explicit plus sign
// for positive values. Zero has no sign.
func FormatDiff(value int) string {
	if value > 0 {
		return fmt.Sprintf("+%d", value)
	}
	return fmt.Sprintf("%d", value)
}

// Compute aggregates the match log into one standing per roster team.
//
// Teams keep roster order. A roster entry repeating an earlier name is
// rejected with a KindDuplicateTeam diagnostic; the first definition wins.
// The result drops teams that have neither played a counted match nor
// belong to a group.
func Compute(roster []model.Team, matches []model.Match) Result {
	var diags []Diagnostic
	order := make([]string, 0, len(roster))
	index := make(map[string]*model.TeamStanding, len(roster))
	for _, team := range roster {
		if _, exists := index[team.Name]; exists {
			diags = append(diags, Diagnostic{
				Kind:       KindDuplicateTeam,
				MatchIndex: -1,
				Team:       team.Name,
				Message:    fmt.Sprintf("team %q is defined more than once; keeping the first definition", team.Name),
			})
			continue
		}
		index[team.Name] = &model.TeamStanding{Team: team.Name, Group: team.Group, Gender: team.Gender}
		order = append(order, team.Name)
	}

	for i, match := range matches {
		entryA := index[match.TeamA]
		entryB := index[match.TeamB]
		if entryA == nil || entryB == nil {
			for _, ref := range []string{match.TeamA, match.TeamB} {
				if index[ref] != nil || IsPlaceholder(ref) {
					continue
				}
				diags = append(diags, Diagnostic{
					Kind:       KindUnknownTeam,
					MatchIndex: i,
					MatchID:    match.ID,
					Team:       ref,
					Message:    fmt.Sprintf("team %q not found in roster (%s)", ref, match),
				})
			}
			continue
		}

		if match.HasPartials() {
			totalA, totalB := 0, 0
			for _, set := range match.Partials {
				totalA += set.A
				totalB += set.B
			}
			entryA.SP += totalA - totalB
			entryB.SP -= totalA - totalB
		}

		if match.SetsA+match.SetsB < 3 {
			continue
		}
		rule, ok := RuleFor(match.SetsA, match.SetsB)
		if !ok {
			diags = append(diags, Diagnostic{
				Kind:       KindInvalidScore,
				MatchIndex: i,
				MatchID:    match.ID,
				Message:    fmt.Sprintf("invalid set score %d x %d for %s; points not counted", match.SetsA, match.SetsB, match),
			})
			continue
		}

		diff := match.SetsA - match.SetsB
		entryA.J++
		entryB.J++
		entryA.SS += diff
		entryB.SS -= diff

		winner, loser := entryA, entryB
		if diff < 0 {
			winner, loser = entryB, entryA
		}
		winner.P += rule.Winner
		winner.V++
		loser.P += rule.Loser
		loser.D++
	}

	standings := make([]model.TeamStanding, 0, len(order))
	for _, name := range order {
		entry := index[name]
		if entry.J > 0 || entry.Group != "" {
			standings = append(standings, *entry)
		}
	}
	return Result{Standings: standings, Diagnostics: diags}
}

// Order sorts by points, then set differential, then point differential,
// all descending. Full ties keep their input order.
func Order(standings []model.TeamStanding) []model.TeamStanding {
	ordered := make([]model.TeamStanding, len(standings))
	copy(ordered, standings)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.P != b.P {
			return a.P > b.P
		}
		if a.SS != b.SS {
			return a.SS > b.SS
		}
		return a.SP > b.SP
	})
	return ordered
}

type GroupKey struct {
	Gender model.Gender
	Group  string
}

func (k GroupKey) String() string {
	return string(k.Gender) + "_" + k.Group
}

type Table struct {
	Key       GroupKey
	Standings []model.TeamStanding
}

// Group partitions standings into one ordered table per (gender, group).
// Tables come back sorted by the key's string form.
func Group(standings []model.TeamStanding) []Table {
	buckets := make(map[GroupKey][]model.TeamStanding)
	for _, entry := range standings {
		key := GroupKey{Gender: entry.Gender, Group: entry.Group}
		buckets[key] = append(buckets[key], entry)
	}
	keys := make([]GroupKey, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		return strings.Compare(keys[i].String(), keys[j].String()) < 0
	})

	tables := make([]Table, 0, len(keys))
	for _, key := range keys {
		tables = append(tables, Table{Key: key, Standings: Order(buckets[key])})
	}
	return tables
}

// Tables runs the whole pipeline: aggregate, then group and order.
func Tables(t model.Tournament) ([]Table, []Diagnostic) {
	result := Compute(t.Teams, t.Matches)
	return Group(result.Standings), result.Diagnostics
}
