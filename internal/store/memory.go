package store

import (
	"fmt"
	"math/rand"
	"os"
	"strings"
	"sync"
	"time"

	"volei-app/internal/model"
)

type MemoryStore struct {
	mu      sync.RWMutex
	teams   []model.Team
	matches []model.Match
}

func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{}
	if strings.ToLower(strings.TrimSpace(os.Getenv("APP"))) != "prod" {
		seedData(s)
	}
	return s
}

func (s *MemoryStore) LoadTournament() (model.Tournament, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snapshotLocked(), nil
}

func (s *MemoryStore) GetMatch(id string) (model.Match, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, m := range s.matches {
		if m.ID == id {
			m.Partials = copyPartials(m.Partials)
			return m, true
		}
	}
	return model.Match{}, false
}

func (s *MemoryStore) ReplaceTournament(t model.Tournament) (model.Tournament, error) {
	prepared, err := prepareTournament(t)
	if err != nil {
		return model.Tournament{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.teams = prepared.Teams
	s.matches = prepared.Matches
	return s.snapshotLocked(), nil
}

func (s *MemoryStore) snapshotLocked() model.Tournament {
	t := model.Tournament{
		Teams:   append(make([]model.Team, 0, len(s.teams)), s.teams...),
		Matches: make([]model.Match, 0, len(s.matches)),
	}
	for _, m := range s.matches {
		m.Partials = copyPartials(m.Partials)
		t.Matches = append(t.Matches, m)
	}
	return t
}

func (s *MemoryStore) UpdateMatchResult(id string, result Result) error {
	if err := result.validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.matches {
		if s.matches[i].ID != id {
			continue
		}
		s.matches[i].SetsA = result.SetsA
		s.matches[i].SetsB = result.SetsB
		s.matches[i].Partials = copyPartials(result.Partials)
		return nil
	}
	return ErrMatchNotFound
}

var seedGroups = []struct {
	Gender model.Gender
	Group  string
	Teams  []string
}{
	{model.GenderFemale, "A", []string{"Leoas do Vale", "Panteras", "Estrela Azul", "Ipê Amarelo"}},
	{model.GenderFemale, "B", []string{"Águias", "Sereias", "Atlética Central", "Colégio Norte"}},
	{model.GenderMale, "A", []string{"Touros", "Tubarões", "Falcões", "Guerreiros"}},
	{model.GenderMale, "B", []string{"Lobos", "Dragões", "Titãs", "Gaviões"}},
}

var seedResults = [][2]int{{3, 0}, {3, 1}, {3, 2}, {0, 3}, {1, 3}, {2, 3}}

func seedData(s *MemoryStore) {
	rng := rand.New(rand.NewSource(42))
	start := time.Date(time.Now().Year(), time.October, 4, 0, 0, 0, 0, time.UTC)
	venues := []string{"Ginásio Municipal", "Quadra do Clube"}

	teams := []model.Team{}
	matches := []model.Match{}
	for gi, g := range seedGroups {
		for _, name := range g.Teams {
			teams = append(teams, model.Team{Name: name, Group: g.Group, Gender: g.Gender})
		}
		round := 0
		for i := 0; i < len(g.Teams); i++ {
			for j := i + 1; j < len(g.Teams); j++ {
				match := model.Match{
					TeamA: g.Teams[i],
					TeamB: g.Teams[j],
					Date:  start.AddDate(0, 0, 7*(round/2)),
					Time:  fmt.Sprintf("%02d:00", 9+gi*2+round%2),
					Venue: venues[gi%len(venues)],
					Phase: "Fase de Grupos",
				}
				// The last round of each group is still to be played.
				if round < 4 {
					score := seedResults[rng.Intn(len(seedResults))]
					match.SetsA, match.SetsB = score[0], score[1]
					match.Partials = seedPartials(rng, score[0], score[1])
				}
				matches = append(matches, match)
				round++
			}
		}
	}

	finalDay := start.AddDate(0, 0, 21)
	for _, gender := range []model.Gender{model.GenderFemale, model.GenderMale} {
		matches = append(matches,
			model.Match{TeamA: "1º Grupo A", TeamB: "2º Grupo B", Date: finalDay, Time: "09:00", Venue: venues[0], Phase: "Semifinal", Gender: gender},
			model.Match{TeamA: "1º Grupo B", TeamB: "2º Grupo A", Date: finalDay, Time: "10:30", Venue: venues[1], Phase: "Semifinal", Gender: gender},
			model.Match{TeamA: "Vencedor Semifinal 1", TeamB: "Vencedor Semifinal 2", Date: finalDay, Time: "16:00", Venue: venues[0], Phase: "Final", Gender: gender},
		)
	}

	prepared, err := prepareTournament(model.Tournament{Teams: teams, Matches: matches})
	if err != nil {
		return
	}
	s.teams = prepared.Teams
	s.matches = prepared.Matches
}

// seedPartials produces set tallies consistent with the final set count:
// the winner always takes the last set.
func seedPartials(rng *rand.Rand, setsA, setsB int) []model.SetScore {
	aWinsMatch := setsA > setsB
	if aWinsMatch {
		setsA--
	} else {
		setsB--
	}
	order := make([]bool, 0, setsA+setsB+1)
	for i := 0; i < setsA; i++ {
		order = append(order, true)
	}
	for i := 0; i < setsB; i++ {
		order = append(order, false)
	}
	rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
	order = append(order, aWinsMatch)

	partials := make([]model.SetScore, 0, len(order))
	for i, aWins := range order {
		target := 25
		if i == 4 {
			target = 15
		}
		loser := target - 2 - rng.Intn(target/2)
		if aWins {
			partials = append(partials, model.SetScore{A: target, B: loser})
		} else {
			partials = append(partials, model.SetScore{A: loser, B: target})
		}
	}
	return partials
}
