package section

import (
	"database/sql"
	"strings"

	"github.com/segmentio/ksuid"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db}
}

// NormalizeDrafts drops drafts whose title is blank after trimming and
// defaults the section type. The returned slice index of each draft is its
// final order index.
func NormalizeDrafts(drafts []SectionRq) []SectionRq {
	normalized := make([]SectionRq, 0, len(drafts))
	for _, d := range drafts {
		if strings.TrimSpace(d.Title) == "" {
			continue
		}
		if d.SectionType == "" {
			d.SectionType = DefaultSectionType
		}
		normalized = append(normalized, d)
	}

	return normalized
}

// ReplaceSections swaps the whole section set for a company with the given
// ordered drafts. Delete and insert run in one transaction so a failed insert
// can never leave the company with zero sections.
func (r *Repository) ReplaceSections(companyID string, drafts []SectionRq) error {
	normalized := NormalizeDrafts(drafts)
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM company_section WHERE company_id = $1`, companyID); err != nil {
		tx.Rollback()
		return err
	}
	for i, d := range normalized {
		sectionID, err := ksuid.NewRandom()
		if err != nil {
			tx.Rollback()
			return err
		}
		_, err = tx.Exec(
			`INSERT INTO company_section (id, company_id, section_type, title, content, order_index, created_at) VALUES ($1, $2, $3, $4, $5, $6, NOW())`,
			sectionID.String(),
			companyID,
			d.SectionType,
			d.Title,
			d.Content,
			i,
		)
		if err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

func (r *Repository) SectionsByCompanyID(companyID string) ([]Section, error) {
	sections := make([]Section, 0)
	rows, err := r.db.Query(
		`SELECT id, company_id, section_type, title, content, order_index, created_at FROM company_section WHERE company_id = $1 ORDER BY order_index ASC`,
		companyID,
	)
	if err == sql.ErrNoRows {
		return sections, nil
	}
	if err != nil {
		return sections, err
	}
	defer rows.Close()
	for rows.Next() {
		var s Section
		var content sql.NullString
		if err := rows.Scan(&s.ID, &s.CompanyID, &s.SectionType, &s.Title, &content, &s.OrderIndex, &s.CreatedAt); err != nil {
			return sections, err
		}
		if content.Valid {
			s.Content = content.String
		}
		sections = append(sections, s)
	}

	return sections, rows.Err()
}
