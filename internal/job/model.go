package job

import (
	"time"
)

const DefaultJobType = "Full-time"

type Job struct {
	ID           string
	CompanyID    string
	Title        string
	Location     string
	JobType      string
	Department   string
	Description  string
	Requirements string
	IsActive     bool
	CreatedAt    time.Time
	TimeAgo      string
}

type JobRq struct {
	CompanyID    string `json:"company_id"`
	Title        string `json:"title"`
	Location     string `json:"location,omitempty"`
	JobType      string `json:"job_type,omitempty"`
	Department   string `json:"department,omitempty"`
	Description  string `json:"description,omitempty"`
	Requirements string `json:"requirements,omitempty"`
}

type JobRqUpdate struct {
	Title        string `json:"title"`
	Location     string `json:"location,omitempty"`
	JobType      string `json:"job_type,omitempty"`
	Department   string `json:"department,omitempty"`
	Description  string `json:"description,omitempty"`
	Requirements string `json:"requirements,omitempty"`
}
