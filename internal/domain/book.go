// Package domain contains the core business entities for the Inkwell publishing dashboard.
package domain

import "time"

// BookStatus tracks where a book sits in the publishing pipeline.
// Values are the Spanish wire strings the dashboard and remote backend exchange.
type BookStatus string

// Book statuses.
const (
	StatusDraft     BookStatus = "Borrador"
	StatusInReview  BookStatus = "En Revisión"
	StatusPublished BookStatus = "Publicado"
	StatusArchived  BookStatus = "Archivado"
)

// ContentTier is the editorial quality tier assigned to a book.
type ContentTier string

// Content tiers.
const (
	TierHigh   ContentTier = "Alto"
	TierMedium ContentTier = "Medio"
	TierLow    ContentTier = "Bajo"
)

// Book represents a self-published title and everything the dashboard tracks about it.
// JSON tags follow the original dashboard's wire format so cached and remote payloads
// stay interchangeable.
type Book struct {
	ID              int64       `json:"id"`
	Title           string      `json:"titulo" validate:"required"`
	Subtitle        string      `json:"subtitulo,omitempty"`
	Author          string      `json:"autor,omitempty"`
	ISBN            string      `json:"isbn,omitempty"`
	ASIN            string      `json:"asin,omitempty"`
	Status          BookStatus  `json:"estado"`
	ContentTier     ContentTier `json:"nivelContenido,omitempty"`
	PublicationDate *time.Time  `json:"fechaPublicacion,omitempty"`
	LaunchDate      *time.Time  `json:"fechaLanzamiento,omitempty"`

	// Per-format sub-records. Nil means the book is not offered in that format.
	Hardcover *Format `json:"tapaDura,omitempty"`
	Paperback *Format `json:"tapaBlanda,omitempty"`
	Ebook     *Format `json:"ebook,omitempty"`

	Notes []Note `json:"notas"`

	// Denormalized relations held on the referencing side. No foreign-key
	// enforcement; the services keep both ends consistent.
	InvestigationID *int64  `json:"investigacionId,omitempty"`
	CollectionIDs   []int64 `json:"coleccionesIds"`
}

// Format holds the pricing and distribution details for one edition of a book.
type Format struct {
	Price        float64           `json:"precio"`
	Royalty      float64           `json:"regalias"` // fraction, e.g. 0.70
	PrintingCost float64           `json:"costoImpresion"`
	ISBN         string            `json:"isbn,omitempty"`
	ASIN         string            `json:"asin,omitempty"`
	Files        []FileRef         `json:"archivos"`
	Links        map[string]string `json:"enlaces"`
}

// FileRef describes a file attached to a format (manuscript, cover, proof).
type FileRef struct {
	Name       string    `json:"nombre"`
	URL        string    `json:"url,omitempty"`
	UploadedAt time.Time `json:"fechaSubida"`
}

// Note is a free-text timestamped note on a book.
type Note struct {
	ID        string    `json:"id"`
	Text      string    `json:"texto"`
	CreatedAt time.Time `json:"fecha"`
	Reminder  *Reminder `json:"recordatorio,omitempty"`
}

// ReminderStatus is the delivery state of a note reminder.
type ReminderStatus string

// Reminder statuses.
const (
	ReminderPending   ReminderStatus = "pendiente"
	ReminderFired     ReminderStatus = "enviado"
	ReminderCancelled ReminderStatus = "cancelado"
)

// Reminder schedules a nudge attached to a note.
type Reminder struct {
	FireAt  time.Time      `json:"fechaAviso"`
	Channel string         `json:"canal"` // "email", "push"
	Status  ReminderStatus `json:"estado"`
}

// NetRoyalty returns the per-unit earnings for this format.
func (f *Format) NetRoyalty() float64 {
	return f.Price*f.Royalty - f.PrintingCost
}

// Formats returns the non-nil formats of the book keyed by wire name.
func (b *Book) Formats() map[string]*Format {
	out := make(map[string]*Format, 3)
	if b.Hardcover != nil {
		out["tapaDura"] = b.Hardcover
	}
	if b.Paperback != nil {
		out["tapaBlanda"] = b.Paperback
	}
	if b.Ebook != nil {
		out["ebook"] = b.Ebook
	}
	return out
}

// BestEarningFormat returns the wire name of the format with the highest net
// royalty, or "" if the book has no formats.
func (b *Book) BestEarningFormat() string {
	best := ""
	var bestNet float64
	for name, f := range b.Formats() {
		net := f.NetRoyalty()
		if best == "" || net > bestNet {
			best = name
			bestNet = net
		}
	}
	return best
}

// InCollection checks whether the book references the given collection.
func (b *Book) InCollection(collectionID int64) bool {
	for _, id := range b.CollectionIDs {
		if id == collectionID {
			return true
		}
	}
	return false
}

// AddCollection records a collection reference on the book if not already present.
func (b *Book) AddCollection(collectionID int64) bool {
	if b.InCollection(collectionID) {
		return false
	}
	b.CollectionIDs = append(b.CollectionIDs, collectionID)
	return true
}

// RemoveCollection drops a collection reference from the book.
func (b *Book) RemoveCollection(collectionID int64) bool {
	for i, id := range b.CollectionIDs {
		if id == collectionID {
			b.CollectionIDs = append(b.CollectionIDs[:i], b.CollectionIDs[i+1:]...)
			return true
		}
	}
	return false
}

// HydrateBook applies the default-value table for books. It runs once at load
// time and is idempotent, so records from any tier come out with the same shape.
//
// Defaults:
//   - Status        -> Borrador
//   - Notes         -> empty slice (wire requires an array)
//   - CollectionIDs -> empty slice
//   - each Format   -> Files empty slice, Links empty map
func HydrateBook(b *Book) {
	if b.Status == "" {
		b.Status = StatusDraft
	}
	if b.Notes == nil {
		b.Notes = []Note{}
	}
	if b.CollectionIDs == nil {
		b.CollectionIDs = []int64{}
	}
	for _, f := range []*Format{b.Hardcover, b.Paperback, b.Ebook} {
		if f == nil {
			continue
		}
		if f.Files == nil {
			f.Files = []FileRef{}
		}
		if f.Links == nil {
			f.Links = map[string]string{}
		}
	}
}
