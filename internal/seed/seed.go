// Package seed provides the built-in fallback datasets. Every function
// returns a freshly constructed value, so callers can mutate the result
// without poisoning later loads, and two calls always produce equal data.
// This tier is what guarantees the dashboard is usable with zero network
// and zero prior local state.
package seed

import (
	"time"

	"github.com/inkwellapp/inkwell-server/internal/domain"
)

// Fixed reference dates keep the datasets deterministic for tests.
var (
	datePublished = time.Date(2024, time.March, 12, 0, 0, 0, 0, time.UTC)
	dateLaunch    = time.Date(2024, time.April, 2, 0, 0, 0, 0, time.UTC)
	dateCreated   = time.Date(2024, time.January, 8, 0, 0, 0, 0, time.UTC)
	dateNote      = time.Date(2024, time.February, 20, 10, 30, 0, 0, time.UTC)
)

// Books returns the built-in book dataset.
func Books() []domain.Book {
	return []domain.Book{
		{
			ID:              1,
			Title:           "El Jardín de Medianoche",
			Subtitle:        "Una novela",
			Author:          "Elena Vidal",
			ISBN:            "978-84-123456-1-1",
			Status:          domain.StatusPublished,
			ContentTier:     domain.TierHigh,
			PublicationDate: ptr(datePublished),
			LaunchDate:      ptr(dateLaunch),
			Paperback: &domain.Format{
				Price:        14.99,
				Royalty:      0.60,
				PrintingCost: 3.95,
				ISBN:         "978-84-123456-1-1",
				Files:        []domain.FileRef{{Name: "interior-v3.pdf", UploadedAt: dateCreated}},
				Links:        map[string]string{"amazon": "https://www.amazon.es/dp/8412345611"},
			},
			Ebook: &domain.Format{
				Price:   4.99,
				Royalty: 0.70,
				ASIN:    "B0C1JARD1N",
				Files:   []domain.FileRef{{Name: "jardin.epub", UploadedAt: dateCreated}},
				Links:   map[string]string{"kdp": "https://kdp.amazon.com/titles/B0C1JARD1N"},
			},
			Notes: []domain.Note{
				{
					ID:        "nota-1",
					Text:      "Revisar la portada antes de la promo de verano",
					CreatedAt: dateNote,
					Reminder: &domain.Reminder{
						FireAt:  dateNote.AddDate(0, 1, 0),
						Channel: "email",
						Status:  domain.ReminderPending,
					},
				},
			},
			CollectionIDs: []int64{1},
		},
		{
			ID:          2,
			Title:       "Cartas desde el Faro",
			Author:      "Elena Vidal",
			Status:      domain.StatusInReview,
			ContentTier: domain.TierMedium,
			Ebook: &domain.Format{
				Price:   3.99,
				Royalty: 0.70,
				Files:   []domain.FileRef{},
				Links:   map[string]string{},
			},
			Notes:         []domain.Note{},
			CollectionIDs: []int64{1},
		},
		{
			ID:              3,
			Title:           "Guía del Autor Independiente",
			Author:          "Marcos Peña",
			ASIN:            "B0C1GU1A00",
			Status:          domain.StatusPublished,
			ContentTier:     domain.TierHigh,
			PublicationDate: ptr(datePublished.AddDate(0, -6, 0)),
			Hardcover: &domain.Format{
				Price:        24.99,
				Royalty:      0.60,
				PrintingCost: 8.50,
				Files:        []domain.FileRef{},
				Links:        map[string]string{},
			},
			Paperback: &domain.Format{
				Price:        16.99,
				Royalty:      0.60,
				PrintingCost: 4.20,
				Files:        []domain.FileRef{},
				Links:        map[string]string{},
			},
			Notes:           []domain.Note{},
			InvestigationID: ptr(int64(1)),
			CollectionIDs:   []int64{},
		},
		{
			ID:            4,
			Title:         "Relatos del Andén",
			Author:        "Lucía Márquez",
			Status:        domain.StatusDraft,
			ContentTier:   domain.TierLow,
			Notes:         []domain.Note{},
			CollectionIDs: []int64{},
		},
	}
}

// Collections returns the built-in collection dataset.
func Collections() []domain.Collection {
	return []domain.Collection{
		{
			ID:          1,
			Name:        "Universo Vidal",
			Description: "Todas las obras ambientadas en el pueblo de Soto",
			CreatedAt:   dateCreated,
			BookIDs:     []int64{1, 2},
			BookCount:   2,
		},
		{
			ID:          2,
			Name:        "No ficción",
			Description: "Guías y manuales",
			CreatedAt:   dateCreated.AddDate(0, 1, 0),
			BookIDs:     []int64{},
			BookCount:   0,
		},
	}
}

// Investigations returns the built-in investigation dataset.
func Investigations() []domain.Investigation {
	return []domain.Investigation{
		{
			ID:          1,
			Title:       "Palabras clave KDP no ficción",
			Description: "Comparativa de categorías y términos de búsqueda para la guía",
			UpdatedAt:   dateNote,
			BookID:      3,
			BookTitle:   "Guía del Autor Independiente",
		},
		{
			ID:          2,
			Title:       "Comps de ficción literaria",
			Description: "Títulos comparables para el posicionamiento de El Jardín",
			UpdatedAt:   dateNote.AddDate(0, 0, 14),
			BookID:      1,
			BookTitle:   "El Jardín de Medianoche",
		},
	}
}

func ptr[T any](v T) *T { return &v }
