package user

import (
	"database/sql"
	"errors"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/segmentio/ksuid"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db}
}

func (r *Repository) SaveTokenSignOn(email, token string) error {
	if _, err := r.db.Exec(`INSERT INTO user_sign_on_token (token, email, created_at) VALUES ($1, $2, $3)`, token, email, time.Now().UTC()); err != nil {
		return err
	}
	return nil
}

// GetUserFromToken resolves a sign-on token to its recruiter account.
// Recruiters are provisioned together with their company, so an email without
// an account is rejected rather than auto-created.
func (r *Repository) GetUserFromToken(token string) (User, error) {
	u := User{}
	row := r.db.QueryRow(`SELECT t.token, u.id, u.email, u.company_id, u.created_at FROM user_sign_on_token t LEFT JOIN users u ON t.email = u.email WHERE t.token = $1`, token)
	var tokenRes, id, email, companyID sql.NullString
	var createdAt sql.NullTime
	if err := row.Scan(&tokenRes, &id, &email, &companyID, &createdAt); err != nil {
		return u, err
	}
	if !tokenRes.Valid {
		return u, errors.New("token not found")
	}
	if !email.Valid {
		return u, errors.New("no recruiter account for sign on token")
	}
	u.ID = id.String
	u.Email = email.String
	u.CompanyID = companyID.String
	u.CreatedAt = createdAt.Time
	u.CreatedAtHumanised = humanize.Time(u.CreatedAt.UTC())

	return u, nil
}

func (r *Repository) CreateUser(email, companyID string) (User, error) {
	userID, err := ksuid.NewRandom()
	if err != nil {
		return User{}, err
	}
	u := User{
		ID:        userID.String(),
		Email:     email,
		CompanyID: companyID,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := r.db.Exec(`INSERT INTO users (id, email, company_id, created_at) VALUES ($1, $2, $3, $4)`, u.ID, u.Email, u.CompanyID, u.CreatedAt); err != nil {
		return User{}, err
	}

	return u, nil
}

func (r *Repository) GetUser(email string) (User, error) {
	u := User{}
	row := r.db.QueryRow(`SELECT id, email, company_id, created_at FROM users WHERE email = $1`, email)
	if err := row.Scan(&u.ID, &u.Email, &u.CompanyID, &u.CreatedAt); err != nil {
		return u, err
	}
	return u, nil
}

// DeleteExpiredUserSignOnTokens deletes user_sign_on_tokens older than 1 week
func (r *Repository) DeleteExpiredUserSignOnTokens() error {
	_, err := r.db.Exec(`DELETE FROM user_sign_on_token WHERE created_at < NOW() - INTERVAL '7 DAYS'`)
	return err
}
