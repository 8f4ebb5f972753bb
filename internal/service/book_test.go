package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/inkwellapp/inkwell-server/internal/domain"
	domainerrors "github.com/inkwellapp/inkwell-server/internal/errors"
)

func TestBookService_CreateRequiresTitle(t *testing.T) {
	f := setup(t)

	_, err := f.bookSvc.Create(context.Background(), domain.Book{})
	require.True(t, domainerrors.IsValidation(err))
}

func TestBookService_CreateAttachesToCollections(t *testing.T) {
	f := setup(t)

	created, err := f.bookSvc.Create(context.Background(), domain.Book{
		Title:         "La Ruta del Sur",
		CollectionIDs: []int64{2},
	})
	require.NoError(t, err)
	require.Equal(t, int64(5), created.ID)
	require.Equal(t, domain.StatusDraft, created.Status, "status defaults via hydration")

	col, err := f.colSvc.Get(2)
	require.NoError(t, err)
	require.True(t, col.ContainsBook(created.ID))
	requireCountInvariant(t, f)
}

func TestBookService_CreateRejectsUnknownCollection(t *testing.T) {
	f := setup(t)

	_, err := f.bookSvc.Create(context.Background(), domain.Book{
		Title:         "Huérfano",
		CollectionIDs: []int64{77},
	})
	require.True(t, domainerrors.IsValidation(err))
	require.Len(t, f.bookSvc.List(), 4, "nothing published on validation failure")
}

func TestBookService_UpdateReconcilesMembershipBothSides(t *testing.T) {
	f := setup(t)

	// Book 1 starts in collection 1. Move it to collection 2.
	book, err := f.bookSvc.Get(1)
	require.NoError(t, err)
	book.CollectionIDs = []int64{2}

	_, err = f.bookSvc.Update(context.Background(), book)
	require.NoError(t, err)

	colOne, err := f.colSvc.Get(1)
	require.NoError(t, err)
	require.False(t, colOne.ContainsBook(1))

	colTwo, err := f.colSvc.Get(2)
	require.NoError(t, err)
	require.True(t, colTwo.ContainsBook(1))
	requireCountInvariant(t, f)
}

func TestBookService_RenameRefreshesInvestigationTitle(t *testing.T) {
	f := setup(t)

	book, err := f.bookSvc.Get(3)
	require.NoError(t, err)
	book.Title = "Guía del Autor Independiente (2ª ed.)"

	_, err = f.bookSvc.Update(context.Background(), book)
	require.NoError(t, err)

	inv, err := f.invSvc.Get(1)
	require.NoError(t, err)
	require.Equal(t, "Guía del Autor Independiente (2ª ed.)", inv.BookTitle)
}

func TestBookService_DeleteScrubsReferences(t *testing.T) {
	f := setup(t)

	require.NoError(t, f.bookSvc.Delete(context.Background(), 1))

	_, err := f.bookSvc.Get(1)
	require.True(t, domainerrors.IsNotFound(err))

	// Collection 1 no longer lists the book.
	col, err := f.colSvc.Get(1)
	require.NoError(t, err)
	require.False(t, col.ContainsBook(1))
	requireCountInvariant(t, f)

	// Investigation 2 keeps its historical title but loses the link.
	inv, err := f.invSvc.Get(2)
	require.NoError(t, err)
	require.Zero(t, inv.BookID)
	require.Equal(t, "El Jardín de Medianoche", inv.BookTitle)
}

func TestBookService_DeleteMissingIsNoOp(t *testing.T) {
	f := setup(t)
	require.NoError(t, f.bookSvc.Delete(context.Background(), 999))
	require.Len(t, f.bookSvc.List(), 4)
}

func TestBookService_SearchMatchesAuthor(t *testing.T) {
	f := setup(t)

	got := f.bookSvc.Search("vidal")
	require.Len(t, got, 2)
}

func TestBookService_FilterByStatus(t *testing.T) {
	f := setup(t)

	published := f.bookSvc.FilterByStatus(domain.StatusPublished)
	require.Len(t, published, 2)
	for _, b := range published {
		require.Equal(t, domain.StatusPublished, b.Status)
	}
}

func TestBookService_SortByTitleUsesSpanishOrder(t *testing.T) {
	f := setup(t)

	sorted := f.bookSvc.SortByTitle(false)
	require.Equal(t, "Cartas desde el Faro", sorted[0].Title)
	require.Equal(t, "El Jardín de Medianoche", sorted[1].Title)
	require.Equal(t, "Guía del Autor Independiente", sorted[2].Title)
	require.Equal(t, "Relatos del Andén", sorted[3].Title)
}

func TestBookService_AddNote(t *testing.T) {
	f := setup(t)

	note, err := f.bookSvc.AddNote(context.Background(), 4, "Pedir segunda ronda de correcciones", nil)
	require.NoError(t, err)
	require.NotEmpty(t, note.ID)
	require.False(t, note.CreatedAt.IsZero())

	book, err := f.bookSvc.Get(4)
	require.NoError(t, err)
	require.Len(t, book.Notes, 1)
	require.Equal(t, note.ID, book.Notes[0].ID)
}

func TestBookService_AddNoteWithReminderDefaultsPending(t *testing.T) {
	f := setup(t)

	note, err := f.bookSvc.AddNote(context.Background(), 4, "Aviso de lanzamiento", &domain.Reminder{
		Channel: "email",
	})
	require.NoError(t, err)
	require.NotNil(t, note.Reminder)
	require.Equal(t, domain.ReminderPending, note.Reminder.Status)
}

func TestBookService_AddNoteRequiresText(t *testing.T) {
	f := setup(t)

	_, err := f.bookSvc.AddNote(context.Background(), 4, "", nil)
	require.True(t, domainerrors.IsValidation(err))
}

func TestBookService_RemoveNote(t *testing.T) {
	f := setup(t)

	// Book 1 ships with one seed note.
	require.NoError(t, f.bookSvc.RemoveNote(context.Background(), 1, "nota-1"))

	book, err := f.bookSvc.Get(1)
	require.NoError(t, err)
	require.Empty(t, book.Notes)

	err = f.bookSvc.RemoveNote(context.Background(), 1, "nota-1")
	require.True(t, domainerrors.IsNotFound(err))
}
