package job

import (
	"net/url"
	"testing"
)

func TestParseFiltersFromQuery_CollapsesAllSentinel(t *testing.T) {
	query := url.Values{}
	query.Set("search", "backend")
	query.Set("location", "all")
	query.Set("type", "All")

	f := ParseFiltersFromQuery(query)

	if f.Search != "backend" {
		t.Fatalf("Search = %q, want backend", f.Search)
	}
	if f.Location != "" {
		t.Fatalf("Location = %q, want unset", f.Location)
	}
	if f.JobType != "" {
		t.Fatalf("JobType = %q, want unset", f.JobType)
	}
}

func TestParseFiltersFromQuery_MissingParamsAreUnset(t *testing.T) {
	f := ParseFiltersFromQuery(url.Values{})

	if f.Active() {
		t.Fatalf("empty query parsed as active filters: %+v", f)
	}
}

func TestFiltersEncode_OmitsUnsetAxes(t *testing.T) {
	f := Filters{Search: "engineer", JobType: "Full-time"}

	got := f.QueryValues()

	if _, ok := got["location"]; ok {
		t.Fatal("unset location axis serialized into query")
	}
	if got.Get("search") != "engineer" || got.Get("type") != "Full-time" {
		t.Fatalf("encoded values off: %v", got)
	}
}

func TestFilters_RoundTrip(t *testing.T) {
	f := Filters{Search: "data scientist", Location: "Remote", JobType: "Contract"}

	parsed := ParseFiltersFromQuery(f.QueryValues())

	if parsed != f {
		t.Fatalf("round trip changed filters: %+v != %+v", parsed, f)
	}
}

func TestFilters_AxesAreIndependent(t *testing.T) {
	f := ParseFiltersFromQuery(url.Values{
		"search":   {"backend"},
		"location": {"Berlin"},
		"type":     {"all"},
	})

	// clearing one axis must not disturb the others
	f.Search = ""
	if f.Location != "Berlin" {
		t.Fatalf("Location = %q, want Berlin", f.Location)
	}
	if f.Encode() != "location=Berlin" {
		t.Fatalf("Encode() = %q, want location=Berlin", f.Encode())
	}
}

func TestFilters_PresentationSentinels(t *testing.T) {
	var f Filters
	if f.LocationOrAll() != FilterAll || f.JobTypeOrAll() != FilterAll {
		t.Fatal("unset axes should render the all sentinel")
	}
	f.Location = "Remote"
	if f.LocationOrAll() != "Remote" {
		t.Fatalf("LocationOrAll = %q, want Remote", f.LocationOrAll())
	}
}
