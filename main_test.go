package main

import (
	"strings"
	"testing"

	"github.com/AdnanSameer1724/careers-page-builder/internal/template"
)

func TestViewsParse(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("embedded views failed to parse: %v", r)
		}
	}()
	if template.NewTemplate(viewsFS) == nil {
		t.Fatal("no template set built from embedded views")
	}
}

// Every write on the edit page must disable its triggering control until the
// request settles, so a double click cannot fire two concurrent writes.
func TestEditPageWritesDisableTheirControl(t *testing.T) {
	raw, err := viewsFS.ReadFile("static/views/edit.html")
	if err != nil {
		t.Fatalf("reading edit view: %v", err)
	}
	page := string(raw)

	if !strings.Contains(page, "function withDisabled(control, fn)") {
		t.Fatal("edit view lost its in-flight disable helper")
	}
	writes := []string{
		`"PUT", "/companies/"`,
		`"POST", "/sections"`,
		`"POST", "/jobs"`,
		`"PUT", "/jobs/"`,
		`"DELETE", "/jobs/"`,
	}
	for _, w := range writes {
		idx := strings.Index(page, w)
		if idx < 0 {
			t.Fatalf("edit view no longer issues %s", w)
		}
		// the nearest preceding withDisabled( must sit closer than the
		// previous event handler registration
		preceding := page[:idx]
		if strings.LastIndex(preceding, "withDisabled(") < strings.LastIndex(preceding, "addEventListener(") {
			t.Fatalf("write %s is not wrapped in withDisabled", w)
		}
	}
}
