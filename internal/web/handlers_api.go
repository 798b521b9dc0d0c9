package web

import (
	"encoding/json"
	"net/http"

	"volei-app/internal/model"
	"volei-app/internal/schedule"
	"volei-app/internal/standings"

	"go.uber.org/zap"
)

type standingJSON struct {
	Team   string `json:"team"`
	Group  string `json:"group"`
	Gender string `json:"gender"`
	P      int    `json:"p"`
	J      int    `json:"j"`
	V      int    `json:"v"`
	D      int    `json:"d"`
	SS     int    `json:"ss"`
	SP     int    `json:"sp"`
}

type tableJSON struct {
	Key       string         `json:"key"`
	Gender    string         `json:"gender"`
	Group     string         `json:"group"`
	Standings []standingJSON `json:"standings"`
}

type diagnosticJSON struct {
	Kind       string `json:"kind"`
	MatchIndex int    `json:"match_index"`
	MatchID    string `json:"match_id,omitempty"`
	Team       string `json:"team,omitempty"`
	Message    string `json:"message"`
}

type standingsResponse struct {
	Tables      []tableJSON      `json:"tables"`
	Diagnostics []diagnosticJSON `json:"diagnostics"`
}

type matchJSON struct {
	ID           string   `json:"id"`
	TeamA        string   `json:"team_a"`
	TeamB        string   `json:"team_b"`
	Sets         [2]int   `json:"sets"`
	Partials     [][2]int `json:"partials,omitempty"`
	Time         string   `json:"time,omitempty"`
	Phase        string   `json:"phase"`
	Gender       string   `json:"gender"`
	Status       string   `json:"status"`
	ScoreLine    string   `json:"score_line"`
	PartialsLine string   `json:"partials_line"`
	Winner       string   `json:"winner,omitempty"`
}

type phaseJSON struct {
	Name    string      `json:"name"`
	Matches []matchJSON `json:"matches"`
}

type venueJSON struct {
	Name   string      `json:"name"`
	Phases []phaseJSON `json:"phases"`
}

type scheduleResponse struct {
	Date   string      `json:"date,omitempty"`
	Venues []venueJSON `json:"venues"`
}

type datesResponse struct {
	Dates []string `json:"dates"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleAPIStandings(w http.ResponseWriter, r *http.Request) {
	data, err := s.loadTournament()
	if err != nil {
		s.writeUnavailable(w, err)
		return
	}
	filter, err := parseFilter(r, nil)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	resp := standingsResponse{
		Tables:      make([]tableJSON, 0, len(data.Tables)),
		Diagnostics: diagnosticsJSON(data.Diagnostics),
	}
	for _, table := range data.Tables {
		if filter.Gender != "" && table.Key.Gender != filter.Gender {
			continue
		}
		resp.Tables = append(resp.Tables, tableToJSON(table))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAPIDates(w http.ResponseWriter, r *http.Request) {
	data, err := s.loadTournament()
	if err != nil {
		s.writeUnavailable(w, err)
		return
	}
	resp := datesResponse{Dates: make([]string, 0, len(data.Dates))}
	for _, date := range data.Dates {
		resp.Dates = append(resp.Dates, date.Format(model.DateLayout))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAPISchedule(w http.ResponseWriter, r *http.Request) {
	data, err := s.loadTournament()
	if err != nil {
		s.writeUnavailable(w, err)
		return
	}
	filter, err := parseFilter(r, data.Dates)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	day := schedule.ForDay(data.Matches, filter)
	resp := scheduleResponse{Venues: make([]venueJSON, 0, len(day.Venues))}
	if !day.Date.IsZero() {
		resp.Date = day.Date.Format(model.DateLayout)
	}
	for _, venue := range day.Venues {
		v := venueJSON{Name: venue.Name}
		for _, phase := range venue.Phases {
			p := phaseJSON{Name: phase.Name}
			for _, match := range phase.Matches {
				p.Matches = append(p.Matches, matchToJSON(match))
			}
			v.Phases = append(v.Phases, p)
		}
		resp.Venues = append(resp.Venues, v)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) writeUnavailable(w http.ResponseWriter, err error) {
	s.logger.Error("tournament data unavailable", zap.Error(err))
	writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "tournament data unavailable"})
}

func tableToJSON(table standings.Table) tableJSON {
	out := tableJSON{
		Key:       table.Key.String(),
		Gender:    string(table.Key.Gender),
		Group:     table.Key.Group,
		Standings: make([]standingJSON, 0, len(table.Standings)),
	}
	for _, entry := range table.Standings {
		out.Standings = append(out.Standings, standingJSON{
			Team:   entry.Team,
			Group:  entry.Group,
			Gender: string(entry.Gender),
			P:      entry.P,
			J:      entry.J,
			V:      entry.V,
			D:      entry.D,
			SS:     entry.SS,
			SP:     entry.SP,
		})
	}
	return out
}

func diagnosticsJSON(diags []standings.Diagnostic) []diagnosticJSON {
	out := make([]diagnosticJSON, 0, len(diags))
	for _, d := range diags {
		out = append(out, diagnosticJSON{
			Kind:       string(d.Kind),
			MatchIndex: d.MatchIndex,
			MatchID:    d.MatchID,
			Team:       d.Team,
			Message:    d.Message,
		})
	}
	return out
}

func matchToJSON(match model.Match) matchJSON {
	summary := schedule.Summarize(match)
	var partials [][2]int
	for _, set := range match.Partials {
		partials = append(partials, [2]int{set.A, set.B})
	}
	return matchJSON{
		ID:           match.ID,
		TeamA:        match.TeamA,
		TeamB:        match.TeamB,
		Sets:         [2]int{match.SetsA, match.SetsB},
		Partials:     partials,
		Time:         match.Time,
		Phase:        match.Phase,
		Gender:       string(match.Gender),
		Status:       string(match.Status()),
		ScoreLine:    summary.ScoreLine,
		PartialsLine: summary.PartialsLine,
		Winner:       string(summary.Winner),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
