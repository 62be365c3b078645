package job

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/segmentio/ksuid"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db}
}

func (r *Repository) SaveJob(jobRq *JobRq) (*Job, error) {
	jobID, err := ksuid.NewRandom()
	if err != nil {
		return nil, err
	}
	jobType := jobRq.JobType
	if jobType == "" {
		jobType = DefaultJobType
	}
	j := &Job{
		ID:           jobID.String(),
		CompanyID:    jobRq.CompanyID,
		Title:        jobRq.Title,
		Location:     jobRq.Location,
		JobType:      jobType,
		Department:   jobRq.Department,
		Description:  jobRq.Description,
		Requirements: jobRq.Requirements,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}
	stmt := `INSERT INTO job (id, company_id, title, location, job_type, department, description, requirements, is_active, created_at)
	VALUES ($1, $2, $3, NULLIF($4, ''), $5, NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''), $9, $10)`
	_, err = r.db.Exec(
		stmt,
		j.ID,
		j.CompanyID,
		j.Title,
		j.Location,
		j.JobType,
		j.Department,
		j.Description,
		j.Requirements,
		j.IsActive,
		j.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return j, nil
}

func (r *Repository) UpdateJob(jobRq *JobRqUpdate, jobID string) error {
	jobType := jobRq.JobType
	if jobType == "" {
		jobType = DefaultJobType
	}
	res, err := r.db.Exec(
		`UPDATE job SET title = $1, location = NULLIF($2, ''), job_type = $3, department = NULLIF($4, ''), description = NULLIF($5, ''), requirements = NULLIF($6, '') WHERE id = $7`,
		jobRq.Title,
		jobRq.Location,
		jobType,
		jobRq.Department,
		jobRq.Description,
		jobRq.Requirements,
		jobID,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *Repository) DeleteJob(jobID string) error {
	_, err := r.db.Exec(`DELETE FROM job WHERE id = $1`, jobID)
	return err
}

func (r *Repository) JobByID(jobID string) (*Job, error) {
	row := r.db.QueryRow(
		`SELECT id, company_id, title, location, job_type, department, description, requirements, is_active, created_at FROM job WHERE id = $1`,
		jobID,
	)
	j := &Job{}
	if err := scanJobRow(row.Scan, j); err != nil {
		return nil, err
	}

	return j, nil
}

// JobsByCompanyID returns all jobs for the manager view, inactive ones
// included.
func (r *Repository) JobsByCompanyID(companyID string) ([]*Job, error) {
	return r.queryJobs(
		`SELECT id, company_id, title, location, job_type, department, description, requirements, is_active, created_at FROM job WHERE company_id = $1 ORDER BY created_at DESC`,
		companyID,
	)
}

// ActiveJobsByFilters returns the public listing: active jobs only, all
// supplied predicates combined with AND, newest first. Search is a
// case-insensitive substring match on the title, location and job type match
// exactly.
func (r *Repository) ActiveJobsByFilters(companyID string, filters Filters) ([]*Job, error) {
	query := `SELECT id, company_id, title, location, job_type, department, description, requirements, is_active, created_at FROM job WHERE company_id = $1 AND is_active = TRUE`
	args := []interface{}{companyID}
	if filters.Search != "" {
		args = append(args, filters.Search)
		query += fmt.Sprintf(` AND title ILIKE '%%' || $%d || '%%'`, len(args))
	}
	if filters.Location != "" {
		args = append(args, filters.Location)
		query += fmt.Sprintf(` AND location = $%d`, len(args))
	}
	if filters.JobType != "" {
		args = append(args, filters.JobType)
		query += fmt.Sprintf(` AND job_type = $%d`, len(args))
	}
	query += ` ORDER BY created_at DESC`

	return r.queryJobs(query, args...)
}

// FilterOptions computes the distinct non-empty locations and job types
// across a company's active jobs, offered as the select options on the
// careers page.
func (r *Repository) FilterOptions(companyID string) (locations []string, jobTypes []string, err error) {
	locations = make([]string, 0)
	jobTypes = make([]string, 0)
	rows, err := r.db.Query(
		`SELECT DISTINCT location FROM job WHERE company_id = $1 AND is_active = TRUE AND location IS NOT NULL AND location != '' ORDER BY location ASC`,
		companyID,
	)
	if err != nil {
		return locations, jobTypes, err
	}
	defer rows.Close()
	for rows.Next() {
		var loc string
		if err := rows.Scan(&loc); err != nil {
			return locations, jobTypes, err
		}
		locations = append(locations, loc)
	}
	if err := rows.Err(); err != nil {
		return locations, jobTypes, err
	}
	typeRows, err := r.db.Query(
		`SELECT DISTINCT job_type FROM job WHERE company_id = $1 AND is_active = TRUE AND job_type IS NOT NULL AND job_type != '' ORDER BY job_type ASC`,
		companyID,
	)
	if err != nil {
		return locations, jobTypes, err
	}
	defer typeRows.Close()
	for typeRows.Next() {
		var jt string
		if err := typeRows.Scan(&jt); err != nil {
			return locations, jobTypes, err
		}
		jobTypes = append(jobTypes, jt)
	}

	return locations, jobTypes, typeRows.Err()
}

func (r *Repository) queryJobs(query string, args ...interface{}) ([]*Job, error) {
	jobs := []*Job{}
	rows, err := r.db.Query(query, args...)
	if err == sql.ErrNoRows {
		return jobs, nil
	}
	if err != nil {
		return jobs, err
	}
	defer rows.Close()
	for rows.Next() {
		j := &Job{}
		if err := scanJobRow(rows.Scan, j); err != nil {
			return jobs, err
		}
		jobs = append(jobs, j)
	}

	return jobs, rows.Err()
}

func scanJobRow(scan func(dest ...interface{}) error, j *Job) error {
	var location, jobType, department, description, requirements sql.NullString
	err := scan(
		&j.ID,
		&j.CompanyID,
		&j.Title,
		&location,
		&jobType,
		&department,
		&description,
		&requirements,
		&j.IsActive,
		&j.CreatedAt,
	)
	if err != nil {
		return err
	}
	if location.Valid {
		j.Location = location.String
	}
	if jobType.Valid {
		j.JobType = jobType.String
	}
	if department.Valid {
		j.Department = department.String
	}
	if description.Valid {
		j.Description = description.String
	}
	if requirements.Valid {
		j.Requirements = requirements.String
	}
	j.TimeAgo = j.CreatedAt.UTC().Format("January 2006")

	return nil
}
