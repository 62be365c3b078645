package job

import (
	"net/url"
	"strings"
)

// FilterAll is the UI sentinel meaning "no constraint on this axis". It only
// exists at the presentation boundary: internally an unconstrained axis is
// the empty string and the sentinel is never serialized into a URL.
const FilterAll = "all"

// Filters holds the three independent job filter axes. An empty field imposes
// no restriction.
type Filters struct {
	Search   string
	Location string
	JobType  string
}

// ParseFiltersFromQuery derives filter state from careers page query
// parameters. An omitted parameter and the "all" sentinel collapse to the
// same unset state.
func ParseFiltersFromQuery(query url.Values) Filters {
	return Filters{
		Search:   strings.TrimSpace(query.Get("search")),
		Location: normalizeAxis(query.Get("location")),
		JobType:  normalizeAxis(query.Get("type")),
	}
}

func normalizeAxis(v string) string {
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, FilterAll) {
		return ""
	}
	return v
}

// QueryValues renders the canonical external representation: unset axes are
// omitted entirely so the visible URL state stays minimal and round-trips
// through ParseFiltersFromQuery.
func (f Filters) QueryValues() url.Values {
	params := url.Values{}
	if f.Search != "" {
		params.Set("search", f.Search)
	}
	if f.Location != "" {
		params.Set("location", f.Location)
	}
	if f.JobType != "" {
		params.Set("type", f.JobType)
	}
	return params
}

func (f Filters) Encode() string {
	return f.QueryValues().Encode()
}

func (f Filters) Active() bool {
	return f.Search != "" || f.Location != "" || f.JobType != ""
}

// LocationOrAll and JobTypeOrAll render the sentinel for select inputs.
func (f Filters) LocationOrAll() string {
	if f.Location == "" {
		return FilterAll
	}
	return f.Location
}

func (f Filters) JobTypeOrAll() string {
	if f.JobType == "" {
		return FilterAll
	}
	return f.JobType
}
