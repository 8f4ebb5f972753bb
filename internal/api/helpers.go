package api

import (
	"encoding/json/v2"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	domainerrors "github.com/inkwellapp/inkwell-server/internal/errors"
)

// idParam parses the {id} URL parameter.
func idParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domainerrors.Validationf("invalid %s %q", name, raw)
	}
	return id, nil
}

// decodeBody decodes a JSON request body into dest.
func decodeBody(r *http.Request, dest any) error {
	if err := json.UnmarshalRead(r.Body, dest); err != nil {
		return domainerrors.Wrap(err, domainerrors.CodeValidation, "invalid request body")
	}
	return nil
}

// listParams are the common query parameters of the list endpoints.
type listParams struct {
	Query       string
	FilterField string
	FilterValue string
	Sort        string
	Descending  bool
}

func parseListParams(r *http.Request) listParams {
	q := r.URL.Query()
	return listParams{
		Query:       q.Get("q"),
		FilterField: q.Get("field"),
		FilterValue: q.Get("value"),
		Sort:        q.Get("sort"),
		Descending:  q.Get("order") == "desc",
	}
}
