// Package source reads a tournament document (the dados.json layout) from a
// file, an HTTP endpoint or any reader.
package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"volei-app/internal/model"
)

// ErrUnavailable wraps every failure to obtain or parse tournament data.
var ErrUnavailable = errors.New("tournament data unavailable")

type document struct {
	Teams   []teamRecord  `json:"times"`
	Matches []matchRecord `json:"jogos"`
}

type teamRecord struct {
	Name   string `json:"time"`
	Group  string `json:"grupo"`
	Gender string `json:"naipe"`
}

type matchRecord struct {
	ID       string   `json:"id,omitempty"`
	TeamA    string   `json:"timeA"`
	TeamB    string   `json:"timeB"`
	Sets     []int    `json:"sets"`
	Partials [][]*int `json:"parciais,omitempty"`
	Date     string   `json:"data"`
	Time     string   `json:"hora,omitempty"`
	Venue    string   `json:"local"`
	Phase    string   `json:"fase"`
	Gender   string   `json:"naipe,omitempty"`
}

func Decode(r io.Reader) (model.Tournament, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return model.Tournament{}, fmt.Errorf("%w: decode: %v", ErrUnavailable, err)
	}
	return doc.tournament()
}

func LoadFile(path string) (model.Tournament, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Tournament{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer f.Close()
	return Decode(f)
}

func Fetch(ctx context.Context, client *http.Client, url string) (model.Tournament, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return model.Tournament{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return model.Tournament{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return model.Tournament{}, fmt.Errorf("%w: GET %s: status %d", ErrUnavailable, url, resp.StatusCode)
	}
	return Decode(resp.Body)
}

// Encode writes t in the same layout Decode reads.
func Encode(w io.Writer, t model.Tournament) error {
	doc := document{
		Teams:   make([]teamRecord, 0, len(t.Teams)),
		Matches: make([]matchRecord, 0, len(t.Matches)),
	}
	for _, team := range t.Teams {
		doc.Teams = append(doc.Teams, teamRecord{Name: team.Name, Group: team.Group, Gender: string(team.Gender)})
	}
	for _, m := range t.Matches {
		rec := matchRecord{
			ID:     m.ID,
			TeamA:  m.TeamA,
			TeamB:  m.TeamB,
			Sets:   []int{m.SetsA, m.SetsB},
			Time:   m.Time,
			Venue:  m.Venue,
			Phase:  m.Phase,
			Gender: string(m.Gender),
		}
		if !m.Date.IsZero() {
			rec.Date = m.Date.Format(model.DateLayout)
		}
		if m.Partials != nil {
			rec.Partials = make([][]*int, 0, len(m.Partials))
			for _, set := range m.Partials {
				a, b := set.A, set.B
				rec.Partials = append(rec.Partials, []*int{&a, &b})
			}
		}
		doc.Matches = append(doc.Matches, rec)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func (doc document) tournament() (model.Tournament, error) {
	t := model.Tournament{
		Teams:   make([]model.Team, 0, len(doc.Teams)),
		Matches: make([]model.Match, 0, len(doc.Matches)),
	}
	for i, rec := range doc.Teams {
		if strings.TrimSpace(rec.Name) == "" {
			return model.Tournament{}, fmt.Errorf("%w: team %d has no name", ErrUnavailable, i)
		}
		t.Teams = append(t.Teams, model.Team{
			Name:   rec.Name,
			Group:  strings.TrimSpace(rec.Group),
			Gender: model.Gender(strings.ToUpper(strings.TrimSpace(rec.Gender))),
		})
	}
	for i, rec := range doc.Matches {
		match, err := rec.match()
		if err != nil {
			return model.Tournament{}, fmt.Errorf("%w: match %d: %v", ErrUnavailable, i, err)
		}
		t.Matches = append(t.Matches, match)
	}
	return t, nil
}

func (rec matchRecord) match() (model.Match, error) {
	m := model.Match{
		ID:     strings.TrimSpace(rec.ID),
		TeamA:  rec.TeamA,
		TeamB:  rec.TeamB,
		Time:   rec.Time,
		Venue:  rec.Venue,
		Phase:  rec.Phase,
		Gender: model.Gender(strings.ToUpper(strings.TrimSpace(rec.Gender))),
	}
	switch len(rec.Sets) {
	case 0:
	case 2:
		m.SetsA, m.SetsB = rec.Sets[0], rec.Sets[1]
	default:
		return model.Match{}, fmt.Errorf("sets must have two values, got %d", len(rec.Sets))
	}
	if m.SetsA < 0 || m.SetsB < 0 {
		return model.Match{}, fmt.Errorf("negative set count %d x %d", m.SetsA, m.SetsB)
	}
	if rec.Partials != nil {
		m.Partials = make([]model.SetScore, 0, len(rec.Partials))
		for _, pair := range rec.Partials {
			m.Partials = append(m.Partials, model.SetScore{A: valueAt(pair, 0), B: valueAt(pair, 1)})
		}
	}
	if strings.TrimSpace(rec.Date) != "" {
		date, err := model.ParseDate(strings.TrimSpace(rec.Date))
		if err != nil {
			return model.Match{}, fmt.Errorf("invalid date %q", rec.Date)
		}
		m.Date = date
	}
	return m, nil
}

func valueAt(pair []*int, i int) int {
	if i >= len(pair) || pair[i] == nil {
		return 0
	}
	return *pair[i]
}
