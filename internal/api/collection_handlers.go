package api

import (
	"net/http"

	"github.com/inkwellapp/inkwell-server/internal/domain"
	"github.com/inkwellapp/inkwell-server/internal/draft"
	"github.com/inkwellapp/inkwell-server/internal/http/response"
)

func (s *Server) handleListCollections(w http.ResponseWriter, r *http.Request) {
	params := parseListParams(r)

	switch {
	case params.Query != "":
		response.Success(w, s.collectionService.Search(params.Query), s.logger)
	case params.Sort != "":
		if params.Sort != "nombre" {
			response.BadRequest(w, "unsupported sort field, use nombre", s.logger)
			return
		}
		response.Success(w, s.collectionService.SortByName(params.Descending), s.logger)
	default:
		response.Success(w, s.collectionService.List(), s.logger)
	}
}

func (s *Server) handleGetCollection(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	col, err := s.collectionService.Get(id)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, col, s.logger)
}

func (s *Server) handleCreateCollection(w http.ResponseWriter, r *http.Request) {
	var col domain.Collection
	if err := decodeBody(r, &col); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	col.ID = 0

	created, err := s.collectionService.Create(r.Context(), col)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Created(w, created, s.logger)
}

func (s *Server) handlePatchCollection(w http.ResponseWriter, r *http.Request) {
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

	session := draft.NewSession(s.collections, s.logger)
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

	updated, err := s.collectionService.Update(r.Context(), merged)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, updated, s.logger)
}

func (s *Server) handleDeleteCollection(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	if err := s.collectionService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.NoContent(w)
}

func (s *Server) handleRetryCollections(w http.ResponseWriter, r *http.Request) {
	source := s.collections.Retry(r.Context())
	response.Success(w, map[string]string{"source": string(source)}, s.logger)
}

func (s *Server) handleAddBookToCollection(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	bookID, err := idParam(r, "bookID")
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	updated, err := s.collectionService.AddBook(r.Context(), id, bookID)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, updated, s.logger)
}

func (s *Server) handleRemoveBookFromCollection(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	bookID, err := idParam(r, "bookID")
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	updated, err := s.collectionService.RemoveBook(r.Context(), id, bookID)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, updated, s.logger)
}
