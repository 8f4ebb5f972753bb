package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/inkwellapp/inkwell-server/internal/domain"
	domainerrors "github.com/inkwellapp/inkwell-server/internal/errors"
	"github.com/inkwellapp/inkwell-server/internal/syncstore"
	"github.com/inkwellapp/inkwell-server/internal/validation"
)

// CollectionService manages collections and keeps book-side references
// consistent with membership changes.
type CollectionService struct {
	collections *syncstore.Store[domain.Collection]
	books       *syncstore.Store[domain.Book]
	validator   *validation.Validator
	logger      *slog.Logger
}

// NewCollectionService creates a CollectionService.
func NewCollectionService(
	collections *syncstore.Store[domain.Collection],
	books *syncstore.Store[domain.Book],
	validator *validation.Validator,
	logger *slog.Logger,
) *CollectionService {
	return &CollectionService{
		collections: collections,
		books:       books,
		validator:   validator,
		logger:      logger,
	}
}

// List returns every collection.
func (s *CollectionService) List() []domain.Collection {
	return s.collections.All()
}

// Get returns one collection by id.
func (s *CollectionService) Get(collectionID int64) (domain.Collection, error) {
	return s.collections.Get(collectionID)
}

// Search matches collections whose name or description contains the query.
func (s *CollectionService) Search(query string) []domain.Collection {
	return s.collections.Search(query, func(c *domain.Collection) []string {
		return []string{c.Name, c.Description}
	})
}

// SortByName returns the collections ordered by name.
func (s *CollectionService) SortByName(descending bool) []domain.Collection {
	return s.collections.SortBy(func(c *domain.Collection) string { return c.Name }, descending)
}

// Create validates and publishes a new collection and records the collection
// on every member book.
func (s *CollectionService) Create(ctx context.Context, col domain.Collection) (domain.Collection, error) {
	if err := s.validator.Validate(col); err != nil {
		return domain.Collection{}, err
	}
	if err := s.checkBookRefs(col.BookIDs); err != nil {
		return domain.Collection{}, err
	}
	if col.CreatedAt.IsZero() {
		col.CreatedAt = time.Now()
	}
	col.BookCount = len(col.BookIDs)

	created, err := s.collections.Create(ctx, col)
	if err != nil {
		return created, err
	}

	s.attachToBooks(ctx, created.ID, created.BookIDs)
	return created, nil
}

// Update validates and publishes the new version of a collection and
// reconciles membership on the book side.
func (s *CollectionService) Update(ctx context.Context, col domain.Collection) (domain.Collection, error) {
	if err := s.validator.Validate(col); err != nil {
		return domain.Collection{}, err
	}

	previous, err := s.collections.Get(col.ID)
	if err != nil {
		return domain.Collection{}, err
	}
	if err := s.checkBookRefs(col.BookIDs); err != nil {
		return domain.Collection{}, err
	}
	col.BookCount = len(col.BookIDs)

	updated, err := s.collections.Update(ctx, col)
	if err != nil {
		return updated, err
	}

	added, removed := diffIDs(previous.BookIDs, updated.BookIDs)
	s.attachToBooks(ctx, updated.ID, added)
	s.detachFromBooks(ctx, updated.ID, removed)
	return updated, nil
}

// Delete removes a collection and drops the reference from every member book.
func (s *CollectionService) Delete(ctx context.Context, collectionID int64) error {
	col, err := s.collections.Get(collectionID)
	if err != nil {
		if domainerrors.IsNotFound(err) {
			return nil
		}
		return err
	}

	if err := s.collections.Delete(ctx, collectionID); err != nil {
		return err
	}

	s.detachFromBooks(ctx, collectionID, col.BookIDs)
	return nil
}

// AddBook puts a book into a collection, updating both sides. Adding a book
// that is already a member is a no-op.
func (s *CollectionService) AddBook(ctx context.Context, collectionID, bookID int64) (domain.Collection, error) {
	col, err := s.collections.Get(collectionID)
	if err != nil {
		return domain.Collection{}, err
	}
	book, err := s.books.Get(bookID)
	if err != nil {
		return domain.Collection{}, err
	}

	if !col.AddBook(bookID) {
		return col, nil
	}
	updated, err := s.collections.Update(ctx, col)
	if err != nil {
		return updated, err
	}

	if book.AddCollection(collectionID) {
		if _, err := s.books.Update(ctx, book); err != nil {
			s.logger.Error("failed to record collection on book",
				"collection_id", collectionID, "book_id", bookID, "error", err)
		}
	}
	return updated, nil
}

// RemoveBook takes a book out of a collection, updating both sides.
func (s *CollectionService) RemoveBook(ctx context.Context, collectionID, bookID int64) (domain.Collection, error) {
	col, err := s.collections.Get(collectionID)
	if err != nil {
		return domain.Collection{}, err
	}

	if !col.RemoveBook(bookID) {
		return col, nil
	}
	updated, err := s.collections.Update(ctx, col)
	if err != nil {
		return updated, err
	}

	if book, err := s.books.Get(bookID); err == nil && book.RemoveCollection(collectionID) {
		if _, err := s.books.Update(ctx, book); err != nil {
			s.logger.Error("failed to remove collection from book",
				"collection_id", collectionID, "book_id", bookID, "error", err)
		}
	}
	return updated, nil
}

func (s *CollectionService) checkBookRefs(bookIDs []int64) error {
	for _, bookID := range bookIDs {
		if _, err := s.books.Get(bookID); err != nil {
			return domainerrors.Validationf("book %d does not exist", bookID)
		}
	}
	return nil
}

func (s *CollectionService) attachToBooks(ctx context.Context, collectionID int64, bookIDs []int64) {
	for _, bookID := range bookIDs {
		book, err := s.books.Get(bookID)
		if err != nil {
			s.logger.Warn("referenced book vanished mid-update",
				"collection_id", collectionID, "book_id", bookID)
			continue
		}
		if !book.AddCollection(collectionID) {
			continue
		}
		if _, err := s.books.Update(ctx, book); err != nil {
			s.logger.Error("failed to record collection on book",
				"collection_id", collectionID, "book_id", bookID, "error", err)
		}
	}
}

func (s *CollectionService) detachFromBooks(ctx context.Context, collectionID int64, bookIDs []int64) {
	for _, bookID := range bookIDs {
		book, err := s.books.Get(bookID)
		if err != nil {
			continue
		}
		if !book.RemoveCollection(collectionID) {
			continue
		}
		if _, err := s.books.Update(ctx, book); err != nil {
			s.logger.Error("failed to remove collection from book",
				"collection_id", collectionID, "book_id", bookID, "error", err)
		}
	}
}
