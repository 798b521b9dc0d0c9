package web

import (
	"net/http"

	"volei-app/internal/source"

	"go.uber.org/zap"
)

// handleDevExport dumps the stored tournament in the import layout, so a
// seeded or edited dataset can be saved and loaded again later.
func (s *Server) handleDevExport(w http.ResponseWriter, r *http.Request) {
	if !s.opts.IsDev {
		http.NotFound(w, r)
		return
	}
	t, err := s.store.LoadTournament()
	if err != nil {
		s.writeUnavailable(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="dados.json"`)
	if err := source.Encode(w, t); err != nil {
		s.logger.Error("export failed", zap.Error(err))
	}
}
