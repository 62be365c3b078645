package section

import (
	"time"
)

const DefaultSectionType = "custom"

type Section struct {
	ID          string
	CompanyID   string
	SectionType string
	Title       string
	Content     string
	OrderIndex  int
	CreatedAt   time.Time
}

// SectionRq is a client-side section draft. The position within the submitted
// list is the sole source of truth for ordering, any order index the client
// may hold locally is never sent nor trusted.
type SectionRq struct {
	Title       string `json:"title"`
	Content     string `json:"content,omitempty"`
	SectionType string `json:"section_type,omitempty"`
}

type ReconcileRq struct {
	CompanyID string      `json:"companyId"`
	Sections  []SectionRq `json:"sections"`
}
