package api

import (
	"net/http"

	"github.com/inkwellapp/inkwell-server/internal/domain"
	"github.com/inkwellapp/inkwell-server/internal/draft"
	"github.com/inkwellapp/inkwell-server/internal/http/response"
)

func (s *Server) handleListInvestigations(w http.ResponseWriter, r *http.Request) {
	params := parseListParams(r)

	switch {
	case params.Query != "":
		response.Success(w, s.investigationService.Search(params.Query), s.logger)
	case params.Sort != "":
		if params.Sort != "titulo" {
			response.BadRequest(w, "unsupported sort field, use titulo", s.logger)
			return
		}
		response.Success(w, s.investigationService.SortByTitle(params.Descending), s.logger)
	default:
		response.Success(w, s.investigationService.List(), s.logger)
	}
}

func (s *Server) handleGetInvestigation(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	inv, err := s.investigationService.Get(id)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, inv, s.logger)
}

func (s *Server) handleCreateInvestigation(w http.ResponseWriter, r *http.Request) {
	var inv domain.Investigation
	if err := decodeBody(r, &inv); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	inv.ID = 0

	created, err := s.investigationService.Create(r.Context(), inv)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Created(w, created, s.logger)
}

func (s *Server) handlePatchInvestigation(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	var patch map[string]any
	if err := decodeBody(r, &patch); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	delete(patch, "id")

	session := draft.NewSession(s.investigations, s.logger)
	if err := session.Begin(id); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	session.Apply(patch)
	merged, err := session.Draft()
	session.Cancel()
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	updated, err := s.investigationService.Update(r.Context(), merged)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, updated, s.logger)
}

func (s *Server) handleDeleteInvestigation(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	if err := s.investigationService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.NoContent(w)
}

func (s *Server) handleRetryInvestigations(w http.ResponseWriter, r *http.Request) {
	source := s.investigations.Retry(r.Context())
	response.Success(w, map[string]string{"source": string(source)}, s.logger)
}
