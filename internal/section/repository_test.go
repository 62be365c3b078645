package section

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestNormalizeDrafts_DropsBlankTitles(t *testing.T) {
	drafts := []SectionRq{
		{Title: "About Us", Content: "who we are"},
		{Title: "   ", Content: "orphaned"},
		{Title: "Perks", Content: "coffee"},
		{Title: ""},
	}

	got := NormalizeDrafts(drafts)

	if len(got) != 2 {
		t.Fatalf("normalized count = %d, want 2", len(got))
	}
	if got[0].Title != "About Us" || got[1].Title != "Perks" {
		t.Fatalf("surviving titles = %q, %q; want About Us, Perks", got[0].Title, got[1].Title)
	}
}

func TestNormalizeDrafts_DefaultsSectionType(t *testing.T) {
	got := NormalizeDrafts([]SectionRq{
		{Title: "Mission"},
		{Title: "Values", SectionType: "values"},
	})

	if got[0].SectionType != DefaultSectionType {
		t.Fatalf("section type = %q, want %q", got[0].SectionType, DefaultSectionType)
	}
	if got[1].SectionType != "values" {
		t.Fatalf("section type = %q, want values", got[1].SectionType)
	}
}

func TestNormalizeDrafts_Idempotent(t *testing.T) {
	drafts := []SectionRq{
		{Title: "About Us", Content: "who we are"},
		{Title: " "},
		{Title: "Perks", SectionType: "perks"},
	}

	once := NormalizeDrafts(drafts)
	twice := NormalizeDrafts(once)

	if len(once) != len(twice) {
		t.Fatalf("second pass changed count: %d != %d", len(once), len(twice))
	}
	for i := range once {
		if once[i] != twice[i] {
			t.Fatalf("second pass changed draft %d: %+v != %+v", i, once[i], twice[i])
		}
	}
}

func TestReplaceSections_DeleteAndInsertInOneTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM company_section WHERE company_id").
		WithArgs("comp1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("INSERT INTO company_section").
		WithArgs(sqlmock.AnyArg(), "comp1", "custom", "About Us", "who we are", 0).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO company_section").
		WithArgs(sqlmock.AnyArg(), "comp1", "perks", "Perks", "coffee", 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := NewRepository(db)
	err = repo.ReplaceSections("comp1", []SectionRq{
		{Title: "About Us", Content: "who we are"},
		{Title: "  "},
		{Title: "Perks", Content: "coffee", SectionType: "perks"},
	})
	if err != nil {
		t.Fatalf("ReplaceSections: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReplaceSections_RollsBackOnInsertFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	insertErr := errors.New("value too long for type character varying")

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM company_section WHERE company_id").
		WithArgs("comp1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO company_section").
		WillReturnError(insertErr)
	mock.ExpectRollback()

	repo := NewRepository(db)
	err = repo.ReplaceSections("comp1", []SectionRq{{Title: "About Us"}})
	if err != insertErr {
		t.Fatalf("err = %v, want %v", err, insertErr)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReplaceSections_AllBlankClearsSections(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM company_section WHERE company_id").
		WithArgs("comp1").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	repo := NewRepository(db)
	if err := repo.ReplaceSections("comp1", []SectionRq{{Title: " "}, {Title: ""}}); err != nil {
		t.Fatalf("ReplaceSections: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
