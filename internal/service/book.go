// Package service implements the business operations on top of the entity
// stores: validation, cross-entity bookkeeping, and the note helpers. The
// stores own persistence and mirroring; the services own the rules.
package service

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/inkwellapp/inkwell-server/internal/domain"
	domainerrors "github.com/inkwellapp/inkwell-server/internal/errors"
	"github.com/inkwellapp/inkwell-server/internal/id"
	"github.com/inkwellapp/inkwell-server/internal/syncstore"
	"github.com/inkwellapp/inkwell-server/internal/validation"
)

// BookService manages books and keeps the denormalized references on
// collections and investigations in step with book mutations.
type BookService struct {
	books          *syncstore.Store[domain.Book]
	collections    *syncstore.Store[domain.Collection]
	investigations *syncstore.Store[domain.Investigation]
	validator      *validation.Validator
	logger         *slog.Logger
}

// NewBookService creates a BookService.
func NewBookService(
	books *syncstore.Store[domain.Book],
	collections *syncstore.Store[domain.Collection],
	investigations *syncstore.Store[domain.Investigation],
	validator *validation.Validator,
	logger *slog.Logger,
) *BookService {
	return &BookService{
		books:          books,
		collections:    collections,
		investigations: investigations,
		validator:      validator,
		logger:         logger,
	}
}

// List returns every book.
func (s *BookService) List() []domain.Book {
	return s.books.All()
}

// Get returns one book by id.
func (s *BookService) Get(bookID int64) (domain.Book, error) {
	return s.books.Get(bookID)
}

// Search matches books whose title, subtitle or author contains the query.
func (s *BookService) Search(query string) []domain.Book {
	return s.books.Search(query, func(b *domain.Book) []string {
		return []string{b.Title, b.Subtitle, b.Author}
	})
}

// FilterByStatus returns books in the given pipeline status.
func (s *BookService) FilterByStatus(status domain.BookStatus) []domain.Book {
	return s.books.Filter(func(b *domain.Book) bool { return b.Status == status })
}

// SortByTitle returns the books ordered by title.
func (s *BookService) SortByTitle(descending bool) []domain.Book {
	return s.books.SortBy(func(b *domain.Book) string { return b.Title }, descending)
}

// Create validates and publishes a new book, then records the book on every
// collection it references.
func (s *BookService) Create(ctx context.Context, book domain.Book) (domain.Book, error) {
	if err := s.validator.Validate(book); err != nil {
		return domain.Book{}, err
	}
	if err := s.checkCollectionRefs(book.CollectionIDs); err != nil {
		return domain.Book{}, err
	}

	created, err := s.books.Create(ctx, book)
	if err != nil {
		return created, err
	}

	s.attachToCollections(ctx, created.ID, created.CollectionIDs)
	return created, nil
}

// Update validates and publishes the new version of a book, reconciles
// collection membership on both sides, and refreshes the denormalized book
// title on any linked investigation when the title changed.
func (s *BookService) Update(ctx context.Context, book domain.Book) (domain.Book, error) {
	if err := s.validator.Validate(book); err != nil {
		return domain.Book{}, err
	}

	previous, err := s.books.Get(book.ID)
	if err != nil {
		return domain.Book{}, err
	}
	if err := s.checkCollectionRefs(book.CollectionIDs); err != nil {
		return domain.Book{}, err
	}

	updated, err := s.books.Update(ctx, book)
	if err != nil {
		return updated, err
	}

	added, removed := diffIDs(previous.CollectionIDs, updated.CollectionIDs)
	s.attachToCollections(ctx, updated.ID, added)
	s.detachFromCollections(ctx, updated.ID, removed)

	if previous.Title != updated.Title {
		s.refreshInvestigationTitles(ctx, updated.ID, updated.Title)
	}
	return updated, nil
}

// Delete removes a book and scrubs every reference to it: collections drop
// the member, investigations lose their link but keep the last known title
// for display.
func (s *BookService) Delete(ctx context.Context, bookID int64) error {
	book, err := s.books.Get(bookID)
	if err != nil {
		if domainerrors.IsNotFound(err) {
			return nil
		}
		return err
	}

	if err := s.books.Delete(ctx, bookID); err != nil {
		return err
	}

	s.detachFromCollections(ctx, bookID, book.CollectionIDs)

	for _, inv := range s.investigations.Filter(func(i *domain.Investigation) bool { return i.BookID == bookID }) {
		inv.BookID = 0
		inv.Touch()
		if _, err := s.investigations.Update(ctx, inv); err != nil {
			s.logger.Error("failed to unlink investigation from deleted book",
				"investigation_id", inv.ID, "book_id", bookID, "error", err)
		}
	}
	return nil
}

// AddNote appends a timestamped note to a book, optionally with a reminder.
func (s *BookService) AddNote(ctx context.Context, bookID int64, text string, reminder *domain.Reminder) (domain.Note, error) {
	if text == "" {
		return domain.Note{}, domainerrors.Validation("note text is required")
	}
	if reminder != nil && reminder.Status == "" {
		reminder.Status = domain.ReminderPending
	}

	book, err := s.books.Get(bookID)
	if err != nil {
		return domain.Note{}, err
	}

	noteID, err := id.Generate("note")
	if err != nil {
		return domain.Note{}, domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to generate note id")
	}

	note := domain.Note{
		ID:        noteID,
		Text:      text,
		CreatedAt: time.Now(),
		Reminder:  reminder,
	}
	book.Notes = append(book.Notes, note)

	if _, err := s.books.Update(ctx, book); err != nil {
		return domain.Note{}, err
	}
	return note, nil
}

// RemoveNote deletes a note from a book by note id.
func (s *BookService) RemoveNote(ctx context.Context, bookID int64, noteID string) error {
	book, err := s.books.Get(bookID)
	if err != nil {
		return err
	}

	idx := slices.IndexFunc(book.Notes, func(n domain.Note) bool { return n.ID == noteID })
	if idx < 0 {
		return domainerrors.NotFoundf("note %s not found on book %d", noteID, bookID)
	}
	book.Notes = slices.Delete(book.Notes, idx, idx+1)

	_, err = s.books.Update(ctx, book)
	return err
}

// checkCollectionRefs rejects references to collections that do not exist.
func (s *BookService) checkCollectionRefs(collectionIDs []int64) error {
	for _, collectionID := range collectionIDs {
		if _, err := s.collections.Get(collectionID); err != nil {
			return domainerrors.Validationf("collection %d does not exist", collectionID)
		}
	}
	return nil
}

func (s *BookService) attachToCollections(ctx context.Context, bookID int64, collectionIDs []int64) {
	for _, collectionID := range collectionIDs {
		col, err := s.collections.Get(collectionID)
		if err != nil {
			s.logger.Warn("referenced collection vanished mid-update",
				"collection_id", collectionID, "book_id", bookID)
			continue
		}
		if !col.AddBook(bookID) {
			continue
		}
		if _, err := s.collections.Update(ctx, col); err != nil {
			s.logger.Error("failed to record book on collection",
				"collection_id", collectionID, "book_id", bookID, "error", err)
		}
	}
}

func (s *BookService) detachFromCollections(ctx context.Context, bookID int64, collectionIDs []int64) {
	for _, collectionID := range collectionIDs {
		col, err := s.collections.Get(collectionID)
		if err != nil {
			continue
		}
		if !col.RemoveBook(bookID) {
			continue
		}
		if _, err := s.collections.Update(ctx, col); err != nil {
			s.logger.Error("failed to remove book from collection",
				"collection_id", collectionID, "book_id", bookID, "error", err)
		}
	}
}

func (s *BookService) refreshInvestigationTitles(ctx context.Context, bookID int64, title string) {
	for _, inv := range s.investigations.Filter(func(i *domain.Investigation) bool { return i.BookID == bookID }) {
		inv.BookTitle = title
		inv.Touch()
		if _, err := s.investigations.Update(ctx, inv); err != nil {
			s.logger.Error("failed to refresh investigation book title",
				"investigation_id", inv.ID, "book_id", bookID, "error", err)
		}
	}
}

// diffIDs returns the ids present only in next (added) and only in prev (removed).
func diffIDs(prev, next []int64) (added, removed []int64) {
	for _, idValue := range next {
		if !slices.Contains(prev, idValue) {
			added = append(added, idValue)
		}
	}
	for _, idValue := range prev {
		if !slices.Contains(next, idValue) {
			removed = append(removed, idValue)
		}
	}
	return added, removed
}
