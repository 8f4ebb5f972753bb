package providers

import (
	"github.com/samber/do/v2"

	"github.com/inkwellapp/inkwell-server/internal/logger"
	"github.com/inkwellapp/inkwell-server/internal/service"
	"github.com/inkwellapp/inkwell-server/internal/validation"
)

// ProvideValidator provides the request validator.
func ProvideValidator(i do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}

// ProvideBookService provides the book service.
func ProvideBookService(i do.Injector) (*service.BookService, error) {
	books := do.MustInvoke[*BookStore](i)
	collections := do.MustInvoke[*CollectionStore](i)
	investigations := do.MustInvoke[*InvestigationStore](i)
	v := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewBookService(books.Store, collections.Store, investigations.Store, v, log.Logger), nil
}

// ProvideCollectionService provides the collection service.
func ProvideCollectionService(i do.Injector) (*service.CollectionService, error) {
	collections := do.MustInvoke[*CollectionStore](i)
	books := do.MustInvoke[*BookStore](i)
	v := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCollectionService(collections.Store, books.Store, v, log.Logger), nil
}

// ProvideInvestigationService provides the investigation service.
func ProvideInvestigationService(i do.Injector) (*service.InvestigationService, error) {
	investigations := do.MustInvoke[*InvestigationStore](i)
	books := do.MustInvoke[*BookStore](i)
	v := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewInvestigationService(investigations.Store, books.Store, v, log.Logger), nil
}
