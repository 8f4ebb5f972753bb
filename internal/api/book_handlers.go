package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/inkwellapp/inkwell-server/internal/domain"
	"github.com/inkwellapp/inkwell-server/internal/draft"
	domainerrors "github.com/inkwellapp/inkwell-server/internal/errors"
	"github.com/inkwellapp/inkwell-server/internal/http/response"
)

// handleListBooks returns books, optionally searched, filtered or sorted.
// Exactly one of q / field+value / sort applies, in that precedence.
func (s *Server) handleListBooks(w http.ResponseWriter, r *http.Request) {
	params := parseListParams(r)

	switch {
	case params.Query != "":
		response.Success(w, s.bookService.Search(params.Query), s.logger)
	case params.FilterField != "":
		books, err := s.filterBooks(params.FilterField, params.FilterValue)
		if err != nil {
			response.HandleError(w, err, s.logger)
			return
		}
		response.Success(w, books, s.logger)
	case params.Sort != "":
		if params.Sort != "titulo" {
			response.BadRequest(w, "unsupported sort field, use titulo", s.logger)
			return
		}
		response.Success(w, s.bookService.SortByTitle(params.Descending), s.logger)
	default:
		response.Success(w, s.bookService.List(), s.logger)
	}
}

func (s *Server) filterBooks(field, value string) ([]domain.Book, error) {
	switch field {
	case "estado":
		return s.bookService.FilterByStatus(domain.BookStatus(value)), nil
	case "nivelContenido":
		return s.books.Filter(func(b *domain.Book) bool {
			return b.ContentTier == domain.ContentTier(value)
		}), nil
	default:
		return nil, domainerrors.Validationf("unsupported filter field %q", field)
	}
}

func (s *Server) handleGetBook(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	book, err := s.bookService.Get(id)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, book, s.logger)
}

func (s *Server) handleCreateBook(w http.ResponseWriter, r *http.Request) {
	var book domain.Book
	if err := decodeBody(r, &book); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	book.ID = 0 // ids are always assigned by the store

	created, err := s.bookService.Create(r.Context(), book)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Created(w, created, s.logger)
}

// handlePatchBook applies a partial update: the patch is layered over a
// snapshot of the current record through an edit session, then the merged
// result goes through the normal update path.
func (s *Server) handlePatchBook(w http.ResponseWriter, r *http.Request) {
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

	session := draft.NewSession(s.books, s.logger)
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

	updated, err := s.bookService.Update(r.Context(), merged)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, updated, s.logger)
}

func (s *Server) handleDeleteBook(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	if err := s.bookService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.NoContent(w)
}

func (s *Server) handleRetryBooks(w http.ResponseWriter, r *http.Request) {
	source := s.books.Retry(r.Context())
	response.Success(w, map[string]string{"source": string(source)}, s.logger)
}

// noteRequest is the request body for adding a note to a book.
type noteRequest struct {
	Text     string           `json:"texto"`
	Reminder *domain.Reminder `json:"recordatorio,omitempty"`
}

func (s *Server) handleAddNote(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	var req noteRequest
	if err := decodeBody(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	note, err := s.bookService.AddNote(r.Context(), id, req.Text, req.Reminder)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Created(w, note, s.logger)
}

func (s *Server) handleRemoveNote(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	noteID := chi.URLParam(r, "noteID")

	if err := s.bookService.RemoveNote(r.Context(), id, noteID); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.NoContent(w)
}
