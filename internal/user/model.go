package user

import "time"

// User is a recruiter account bound to exactly one company.
type User struct {
	ID                 string
	Email              string
	CompanyID          string
	CreatedAt          time.Time
	CreatedAtHumanised string
}
