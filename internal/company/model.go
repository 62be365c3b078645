package company

import (
	"time"
)

type Company struct {
	ID                  string
	Slug                string
	Name                string
	Tagline             *string
	BrandPrimaryColor   string
	BrandSecondaryColor string
	LogoImageID         *string
	BannerImageID       *string
	CultureVideoURL     *string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// CompanyRqUpdate carries the brand/identity fields a recruiter can change
// from the edit page.
type CompanyRqUpdate struct {
	Name                string `json:"name"`
	Tagline             string `json:"tagline,omitempty"`
	BrandPrimaryColor   string `json:"brand_primary_color"`
	BrandSecondaryColor string `json:"brand_secondary_color"`
	LogoImageID         string `json:"logo_image_id,omitempty"`
	BannerImageID       string `json:"banner_image_id,omitempty"`
	CultureVideoURL     string `json:"culture_video_url,omitempty"`
}
