package user

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

var tokenColumns = []string{"token", "id", "email", "company_id", "created_at"}

func TestGetUserFromToken_ResolvesRecruiter(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`FROM user_sign_on_token t LEFT JOIN users u`).
		WithArgs("tok1").
		WillReturnRows(sqlmock.NewRows(tokenColumns).
			AddRow("tok1", "u1", "recruiter@acme.test", "comp1", time.Now().UTC()))

	repo := NewRepository(db)
	u, err := repo.GetUserFromToken("tok1")
	if err != nil {
		t.Fatalf("GetUserFromToken: %v", err)
	}
	if u.ID != "u1" || u.CompanyID != "comp1" {
		t.Fatalf("user = %+v, want u1/comp1", u)
	}
}

func TestGetUserFromToken_NoRecruiterAccount(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	// token exists but its email has no recruiter row on the join
	mock.ExpectQuery(`FROM user_sign_on_token t LEFT JOIN users u`).
		WithArgs("tok2").
		WillReturnRows(sqlmock.NewRows(tokenColumns).
			AddRow("tok2", nil, nil, nil, nil))

	repo := NewRepository(db)
	if _, err := repo.GetUserFromToken("tok2"); err == nil {
		t.Fatal("token without recruiter account accepted")
	}
}
