package domain

import (
	"slices"
	"time"
)

// Collection is an explicit ordered grouping of books (a series, a box set, a
// marketing bundle). BookCount is denormalized for the dashboard's list cards
// and must equal len(BookIDs) after every committed mutation.
type Collection struct {
	ID          int64     `json:"id"`
	Name        string    `json:"nombre" validate:"required"`
	Description string    `json:"descripcion,omitempty"`
	CreatedAt   time.Time `json:"fechaCreacion"`
	BookIDs     []int64   `json:"libros"`
	BookCount   int       `json:"cantidadLibros"`
}

// AddBook appends a book ID to the collection if not already present and keeps
// the denormalized count in step.
func (c *Collection) AddBook(bookID int64) bool {
	if slices.Contains(c.BookIDs, bookID) {
		return false
	}
	c.BookIDs = append(c.BookIDs, bookID)
	c.BookCount = len(c.BookIDs)
	return true
}

// RemoveBook removes a book ID from the collection, preserving order.
func (c *Collection) RemoveBook(bookID int64) bool {
	for i, id := range c.BookIDs {
		if id == bookID {
			c.BookIDs = append(c.BookIDs[:i], c.BookIDs[i+1:]...)
			c.BookCount = len(c.BookIDs)
			return true
		}
	}
	return false
}

// ContainsBook checks membership.
func (c *Collection) ContainsBook(bookID int64) bool {
	return slices.Contains(c.BookIDs, bookID)
}

// HydrateCollection applies the default-value table for collections.
// Idempotent; also repairs a drifted BookCount, which is always derived.
//
// Defaults:
//   - BookIDs   -> empty slice
//   - BookCount -> len(BookIDs)
func HydrateCollection(c *Collection) {
	FinalizeCollection(c)
}

// FinalizeCollection recomputes the derived fields after a mutation.
// BookCount is never authoritative; BookIDs is.
func FinalizeCollection(c *Collection) {
	if c.BookIDs == nil {
		c.BookIDs = []int64{}
	}
	c.BookCount = len(c.BookIDs)
}
