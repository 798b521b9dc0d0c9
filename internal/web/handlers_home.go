package web

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"volei-app/internal/logging"
	"volei-app/internal/model"
	"volei-app/internal/schedule"
	"volei-app/internal/standings"

	"go.uber.org/zap"
)

var (
	errInvalidDate   = errors.New("data inválida")
	errInvalidGender = errors.New("naipe inválido")
)

// tournament is the snapshot behind every page: the stored tournament with
// match genders inferred and the standings already computed.
type tournament struct {
	Teams       []model.Team
	Matches     []model.Match
	Tables      []standings.Table
	Diagnostics []standings.Diagnostic
	Dates       []time.Time
}

func (s *Server) loadTournament() (tournament, error) {
	if err := s.sourceError(); err != nil {
		return tournament{}, err
	}
	t, err := s.store.LoadTournament()
	if err != nil {
		return tournament{}, err
	}
	tables, diags := standings.Tables(t)
	logging.Diagnostics(s.logger, diags)
	matches := schedule.InferGenders(t.Teams, t.Matches)
	return tournament{
		Teams:       t.Teams,
		Matches:     matches,
		Tables:      tables,
		Diagnostics: diags,
		Dates:       schedule.Dates(matches),
	}, nil
}

// parseFilter reads date, gender and venue from the query string. A missing
// date selects the first day with matches.
func parseFilter(r *http.Request, dates []time.Time) (schedule.Filter, error) {
	query := r.URL.Query()
	filter := schedule.Filter{Venue: strings.TrimSpace(query.Get("venue"))}

	if raw := strings.TrimSpace(query.Get("date")); raw != "" {
		date, err := model.ParseDate(raw)
		if err != nil {
			return schedule.Filter{}, errInvalidDate
		}
		filter.Date = date
	} else if len(dates) > 0 {
		filter.Date = dates[0]
	}

	if raw := strings.ToUpper(strings.TrimSpace(query.Get("gender"))); raw != "" {
		gender := model.Gender(raw)
		if !gender.Valid() {
			return schedule.Filter{}, errInvalidGender
		}
		filter.Gender = gender
	}
	return filter, nil
}

func (s *Server) baseView() BaseView {
	return BaseView{Title: s.opts.Title, IsDev: s.opts.IsDev}
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	data, err := s.loadTournament()
	if err != nil {
		s.renderUnavailable(w, r, err)
		return
	}
	filter, err := parseFilter(r, data.Dates)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	base := s.baseView()
	base.FlashSuccess = flashMessage(r.URL.Query().Get("notice"))
	view := HomeView{
		BaseView:       base,
		Tables:         buildStandingsTables(data.Tables, filter.Gender),
		Schedule:       s.scheduleView(data, filter),
		SkippedMatches: skippedMatches(data.Diagnostics),
	}
	if err := s.templates.Render(w, "home.html", view); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	if !htmxRequest(r) {
		s.handleHome(w, r)
		return
	}
	data, err := s.loadTournament()
	if err != nil {
		s.renderUnavailable(w, r, err)
		return
	}
	filter, err := parseFilter(r, data.Dates)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.templates.RenderPartial(w, "schedule.html", s.scheduleView(data, filter)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) scheduleView(data tournament, filter schedule.Filter) ScheduleView {
	return buildScheduleView(schedule.ForDay(data.Matches, filter), filter, data.Dates, schedule.Venues(data.Matches))
}

// renderUnavailable answers with the failure page when tournament data cannot
// be read. The standings are never computed in this state.
func (s *Server) renderUnavailable(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("tournament data unavailable", zap.Error(err), zap.String("path", r.URL.Path))
	message := "Não foi possível carregar os dados do campeonato. Tente novamente mais tarde."
	if htmxRequest(r) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`<p class="error">` + message + `</p>`))
		return
	}
	view := ErrorView{BaseView: s.baseView(), Message: message}
	if err := s.templates.RenderStatus(w, http.StatusServiceUnavailable, "error.html", view); err != nil {
		http.Error(w, message, http.StatusServiceUnavailable)
	}
}
