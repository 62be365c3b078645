package company

import (
	"database/sql"
	"time"

	"github.com/gosimple/slug"
	"github.com/segmentio/ksuid"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db}
}

func (r *Repository) CreateCompany(name, primaryColor, secondaryColor string) (*Company, error) {
	companyID, err := ksuid.NewRandom()
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	c := &Company{
		ID:                  companyID.String(),
		Slug:                slug.Make(name),
		Name:                name,
		BrandPrimaryColor:   primaryColor,
		BrandSecondaryColor: secondaryColor,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	stmt := `INSERT INTO company (id, slug, name, brand_primary_color, brand_secondary_color, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err = r.db.Exec(stmt, c.ID, c.Slug, c.Name, c.BrandPrimaryColor, c.BrandSecondaryColor, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return c, nil
}

func (r *Repository) UpdateCompany(companySlug string, rq *CompanyRqUpdate) error {
	stmt := `UPDATE company SET name = $1, tagline = NULLIF($2, ''), brand_primary_color = $3, brand_secondary_color = $4, logo_image_id = NULLIF($5, ''), banner_image_id = NULLIF($6, ''), culture_video_url = NULLIF($7, ''), updated_at = NOW() WHERE slug = $8`
	res, err := r.db.Exec(
		stmt,
		rq.Name,
		rq.Tagline,
		rq.BrandPrimaryColor,
		rq.BrandSecondaryColor,
		rq.LogoImageID,
		rq.BannerImageID,
		rq.CultureVideoURL,
		companySlug,
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

func (r *Repository) CompanyBySlug(companySlug string) (*Company, error) {
	company := &Company{}
	row := r.db.QueryRow(`SELECT id, slug, name, tagline, brand_primary_color, brand_secondary_color, logo_image_id, banner_image_id, culture_video_url, created_at, updated_at FROM company WHERE slug = $1`, companySlug)
	if err := scanCompany(row, company); err != nil {
		return company, err
	}

	return company, nil
}

func (r *Repository) CompanyByID(companyID string) (*Company, error) {
	company := &Company{}
	row := r.db.QueryRow(`SELECT id, slug, name, tagline, brand_primary_color, brand_secondary_color, logo_image_id, banner_image_id, culture_video_url, created_at, updated_at FROM company WHERE id = $1`, companyID)
	if err := scanCompany(row, company); err != nil {
		return company, err
	}

	return company, nil
}

func (r *Repository) GetCompanySlugs() ([]string, error) {
	slugs := make([]string, 0)
	rows, err := r.db.Query(`SELECT slug FROM company ORDER BY slug ASC`)
	if err != nil {
		return slugs, err
	}
	defer rows.Close()
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return slugs, err
		}
		slugs = append(slugs, s)
	}

	return slugs, rows.Err()
}

func scanCompany(row *sql.Row, c *Company) error {
	var tagline, logoImageID, bannerImageID, cultureVideoURL sql.NullString
	err := row.Scan(
		&c.ID,
		&c.Slug,
		&c.Name,
		&tagline,
		&c.BrandPrimaryColor,
		&c.BrandSecondaryColor,
		&logoImageID,
		&bannerImageID,
		&cultureVideoURL,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tagline.Valid {
		c.Tagline = &tagline.String
	}
	if logoImageID.Valid {
		c.LogoImageID = &logoImageID.String
	}
	if bannerImageID.Valid {
		c.BannerImageID = &bannerImageID.String
	}
	if cultureVideoURL.Valid {
		c.CultureVideoURL = &cultureVideoURL.String
	}

	return nil
}
