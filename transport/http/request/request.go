// Package request extracts path and query values shared by the HTTP handlers.
package request

import (
	"net/http"

	"edurooms/shared"
	"edurooms/shared/dto"
	"edurooms/shared/failure"

	"github.com/go-chi/chi/v5"
)

// PathID parses a positive identifier from the named chi URL parameter.
func PathID(r *http.Request, param string) (int64, error) {
	id, err := shared.ConvertStringToID(chi.URLParam(r, param))
	if err != nil {
		return 0, failure.Format(err.Error()) // nolint:wrapcheck
	}

	return id, nil
}

// Filters builds an AND group from the query string. Fields in exact are matched with
// equality and fields in partial with a case-insensitive LIKE. Empty values are skipped.
func Filters(r *http.Request, table string, exact []string, partial []string) dto.FilterGroup {
	query := r.URL.Query()
	group := dto.FilterGroup{Operator: dto.FilterGroupOperatorAnd}

	for _, field := range exact {
		if value := query.Get(field); value != "" {
			group.Add(dto.Filter{Field: field, Value: value, Operator: dto.FilterOperatorEq, Table: table})
		}
	}

	for _, field := range partial {
		if value := query.Get(field); value != "" {
			group.Add(dto.Filter{Field: field, Value: value, Operator: dto.FilterOperatorLike, Table: table})
		}
	}

	return group
}

// QueryID parses an optional positive identifier from the query string.
// A missing value yields zero.
func QueryID(r *http.Request, param string) (int64, error) {
	value := r.URL.Query().Get(param)
	if value == "" {
		return 0, nil
	}

	id, err := shared.ConvertStringToID(value)
	if err != nil {
		return 0, failure.Format(err.Error()) // nolint:wrapcheck
	}

	return id, nil
}
