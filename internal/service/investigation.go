package service

import (
	"context"
	"log/slog"

	"github.com/inkwellapp/inkwell-server/internal/domain"
	domainerrors "github.com/inkwellapp/inkwell-server/internal/errors"
	"github.com/inkwellapp/inkwell-server/internal/syncstore"
	"github.com/inkwellapp/inkwell-server/internal/validation"
)

// InvestigationService manages research threads. The investigation holds the
// authoritative link to its book; the book's InvestigationID and the
// investigation's BookTitle are denormalized copies this service maintains.
type InvestigationService struct {
	investigations *syncstore.Store[domain.Investigation]
	books          *syncstore.Store[domain.Book]
	validator      *validation.Validator
	logger         *slog.Logger
}

// NewInvestigationService creates an InvestigationService.
func NewInvestigationService(
	investigations *syncstore.Store[domain.Investigation],
	books *syncstore.Store[domain.Book],
	validator *validation.Validator,
	logger *slog.Logger,
) *InvestigationService {
	return &InvestigationService{
		investigations: investigations,
		books:          books,
		validator:      validator,
		logger:         logger,
	}
}

// List returns every investigation.
func (s *InvestigationService) List() []domain.Investigation {
	return s.investigations.All()
}

// Get returns one investigation by id.
func (s *InvestigationService) Get(investigationID int64) (domain.Investigation, error) {
	return s.investigations.Get(investigationID)
}

// Search matches investigations whose title, description or linked book
// title contains the query.
func (s *InvestigationService) Search(query string) []domain.Investigation {
	return s.investigations.Search(query, func(i *domain.Investigation) []string {
		return []string{i.Title, i.Description, i.BookTitle}
	})
}

// SortByTitle returns the investigations ordered by title.
func (s *InvestigationService) SortByTitle(descending bool) []domain.Investigation {
	return s.investigations.SortBy(func(i *domain.Investigation) string { return i.Title }, descending)
}

// Create validates and publishes a new investigation. A linked book must
// exist; its title is copied onto the investigation and the book gains the
// back-reference.
func (s *InvestigationService) Create(ctx context.Context, inv domain.Investigation) (domain.Investigation, error) {
	if err := s.validator.Validate(inv); err != nil {
		return domain.Investigation{}, err
	}

	if inv.BookID != 0 {
		book, err := s.books.Get(inv.BookID)
		if err != nil {
			return domain.Investigation{}, domainerrors.Validationf("book %d does not exist", inv.BookID)
		}
		inv.BookTitle = book.Title
	} else {
		inv.BookTitle = ""
	}
	inv.Touch()

	created, err := s.investigations.Create(ctx, inv)
	if err != nil {
		return created, err
	}

	if created.BookID != 0 {
		s.setBookBackRef(ctx, created.BookID, &created.ID)
	}
	return created, nil
}

// Update validates and publishes the new version of an investigation,
// re-copies the linked book's title, and moves the back-reference when the
// link changed.
func (s *InvestigationService) Update(ctx context.Context, inv domain.Investigation) (domain.Investigation, error) {
	if err := s.validator.Validate(inv); err != nil {
		return domain.Investigation{}, err
	}

	previous, err := s.investigations.Get(inv.ID)
	if err != nil {
		return domain.Investigation{}, err
	}

	if inv.BookID != 0 {
		book, err := s.books.Get(inv.BookID)
		if err != nil {
			return domain.Investigation{}, domainerrors.Validationf("book %d does not exist", inv.BookID)
		}
		inv.BookTitle = book.Title
	} else {
		inv.BookTitle = ""
	}
	inv.Touch()

	updated, err := s.investigations.Update(ctx, inv)
	if err != nil {
		return updated, err
	}

	if previous.BookID != updated.BookID {
		if previous.BookID != 0 {
			s.setBookBackRef(ctx, previous.BookID, nil)
		}
		if updated.BookID != 0 {
			s.setBookBackRef(ctx, updated.BookID, &updated.ID)
		}
	}
	return updated, nil
}

// Delete removes an investigation and clears the back-reference on its book.
func (s *InvestigationService) Delete(ctx context.Context, investigationID int64) error {
	inv, err := s.investigations.Get(investigationID)
	if err != nil {
		if domainerrors.IsNotFound(err) {
			return nil
		}
		return err
	}

	if err := s.investigations.Delete(ctx, investigationID); err != nil {
		return err
	}

	if inv.BookID != 0 {
		s.setBookBackRef(ctx, inv.BookID, nil)
	}
	return nil
}

func (s *InvestigationService) setBookBackRef(ctx context.Context, bookID int64, investigationID *int64) {
	book, err := s.books.Get(bookID)
	if err != nil {
		return
	}
	book.InvestigationID = investigationID
	if _, err := s.books.Update(ctx, book); err != nil {
		s.logger.Error("failed to update investigation reference on book",
			"book_id", bookID, "error", err)
	}
}
