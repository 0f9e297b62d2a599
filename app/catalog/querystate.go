package catalog

import (
	"net/url"
)

// Query parameter names shared by the request and canonical URL forms.
const (
	ParamQuery  = "query"
	ParamStatus = "status"
	ParamSort   = "sort"
)

// DefaultQueryState returns the fixed per-field defaults.
func DefaultQueryState() QueryState {
	return QueryState{
		Query:  "",
		Status: StatusAll,
		Sort:   SortDateDesc,
	}
}

// StateFromValues builds a QueryState from request query parameters. A
// missing parameter falls back to its default; an explicitly empty value is
// a valid, distinct state and is kept as-is.
func StateFromValues(values url.Values) QueryState {
	state := DefaultQueryState()
	if values.Has(ParamQuery) {
		state.Query = values.Get(ParamQuery)
	}
	if values.Has(ParamStatus) {
		state.Status = values.Get(ParamStatus)
	}
	if values.Has(ParamSort) {
		state.Sort = values.Get(ParamSort)
	}
	return state
}

// HasStateParams reports whether the request carries any of the three
// recognized parameters. Persisted state is consulted only when it carries
// none, so explicit links stay reproducible.
func HasStateParams(values url.Values) bool {
	return values.Has(ParamQuery) || values.Has(ParamStatus) || values.Has(ParamSort)
}

// Values renders the canonical parameter form. All three parameters are
// always present, defaults included, to keep shareable URLs canonical.
func (s QueryState) Values() url.Values {
	values := url.Values{}
	values.Set(ParamQuery, s.Query)
	values.Set(ParamStatus, s.Status)
	values.Set(ParamSort, s.Sort)
	return values
}

// Encode returns the canonical query string.
func (s QueryState) Encode() string {
	return s.Values().Encode()
}
