package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/inkwellapp/inkwell-server/internal/http/response"
	"github.com/inkwellapp/inkwell-server/internal/prefs"
)

// viewPreference is the wire shape of a screen's view preference.
type viewPreference struct {
	Screen string `json:"screen"`
	View   string `json:"view"`
}

func (s *Server) handleGetViewPreference(w http.ResponseWriter, r *http.Request) {
	screen := chi.URLParam(r, "screen")
	response.Success(w, viewPreference{
		Screen: screen,
		View:   string(s.prefs.View(screen)),
	}, s.logger)
}

func (s *Server) handleSetViewPreference(w http.ResponseWriter, r *http.Request) {
	screen := chi.URLParam(r, "screen")

	var req viewPreference
	if err := decodeBody(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	if err := s.prefs.SetView(screen, prefs.ViewMode(req.View)); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, viewPreference{Screen: screen, View: req.View}, s.logger)
}
