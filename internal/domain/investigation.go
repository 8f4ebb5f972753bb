package domain

import "time"

// Investigation is a research thread attached to exactly one book: market
// research, comp-title analysis, keyword digging. BookTitle is a denormalized
// copy of the associated book's title so list screens render without a join;
// the book service refreshes it whenever the book is renamed.
type Investigation struct {
	ID          int64     `json:"id"`
	Title       string    `json:"titulo" validate:"required"`
	Description string    `json:"descripcion,omitempty"`
	UpdatedAt   time.Time `json:"ultimaActualizacion"`
	BookID      int64     `json:"libroId"`
	BookTitle   string    `json:"tituloLibro,omitempty"`
}

// Touch updates the last-updated stamp. Call on every committed change.
func (i *Investigation) Touch() {
	i.UpdatedAt = time.Now()
}

// HydrateInvestigation applies the default-value table for investigations.
// Idempotent. UpdatedAt zero values are left alone; the dashboard renders
// them as "never".
func HydrateInvestigation(_ *Investigation) {
	// No slice or map fields today. The function exists so all three entity
	// types hydrate through the same load path.
}
