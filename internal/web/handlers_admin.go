package web

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"volei-app/internal/logging"
	"volei-app/internal/model"
	"volei-app/internal/source"
	"volei-app/internal/standings"
	"volei-app/internal/store"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const maxImportBytes = 4 << 20

type importResponse struct {
	Teams       int              `json:"teams"`
	Matches     int              `json:"matches"`
	Diagnostics []diagnosticJSON `json:"diagnostics"`
}

// handleAdminImport replaces the whole tournament with the posted document.
// A successful import clears any earlier source failure.
func (s *Server) handleAdminImport(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, maxImportBytes)
	t, err := source.Decode(body)
	if err != nil {
		s.logger.Warn("import rejected", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	saved, err := s.store.ReplaceTournament(t)
	if err != nil {
		s.logger.Warn("import not stored", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	s.SetSourceError(nil)

	result := standings.Compute(saved.Teams, saved.Matches)
	logging.Diagnostics(s.logger, result.Diagnostics)
	s.logger.Info("tournament imported",
		zap.Int("teams", len(saved.Teams)),
		zap.Int("matches", len(saved.Matches)),
		zap.Int("diagnostics", len(result.Diagnostics)),
	)
	writeJSON(w, http.StatusOK, importResponse{
		Teams:       len(saved.Teams),
		Matches:     len(saved.Matches),
		Diagnostics: diagnosticsJSON(result.Diagnostics),
	})
}

func (s *Server) handleAdminMatchResult(w http.ResponseWriter, r *http.Request) {
	matchID := strings.TrimSpace(chi.URLParam(r, "matchID"))
	if err := r.ParseForm(); err != nil {
		http.Error(w, "formulário inválido", http.StatusBadRequest)
		return
	}
	setsA, errA := parseSetCount(r.FormValue("sets_a"))
	setsB, errB := parseSetCount(r.FormValue("sets_b"))
	if errA != nil || errB != nil {
		http.Error(w, errInvalidSetCount.Error(), http.StatusBadRequest)
		return
	}
	result := store.Result{SetsA: setsA, SetsB: setsB, Partials: parseSets(r, maxSets)}
	if err := s.store.UpdateMatchResult(matchID, result); err != nil {
		if errors.Is(err, store.ErrMatchNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	match, _ := s.store.GetMatch(matchID)
	s.logger.Info("match result saved",
		zap.String("match_id", matchID),
		zap.String("match", match.String()),
		zap.Int("sets_a", setsA),
		zap.Int("sets_b", setsB),
		zap.Int("partials", len(result.Partials)),
	)

	query := url.Values{"notice": {"result_saved"}}
	if !match.Date.IsZero() {
		query.Set("date", match.Date.Format(model.DateLayout))
	}
	target := "/?" + query.Encode()
	if htmxRequest(r) {
		w.Header().Set("HX-Redirect", target)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
