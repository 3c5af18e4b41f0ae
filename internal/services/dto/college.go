package dto

import "essaylab_backend/internal/models"

// CreateCollegeRequest - admin catalog entry
type CreateCollegeRequest struct {
	Name    string `json:"name" binding:"required,max=255"`
	Country string `json:"country,omitempty"`
}

// UpdateCollegeRequest - partial catalog update
type UpdateCollegeRequest struct {
	Name    *string `json:"name,omitempty" binding:"omitempty,max=255"`
	Country *string `json:"country,omitempty"`
}

// CreateProgrammeRequest - programme under a college
type CreateProgrammeRequest struct {
	Name           string                `json:"name" binding:"required,max=255"`
	Degree         string                `json:"degree,omitempty"`
	EnglishVariant models.EnglishVariant `json:"english_variant,omitempty" binding:"omitempty,is-english-variant"`
}

// UpdateProgrammeRequest - partial programme update
type UpdateProgrammeRequest struct {
	Name           *string                `json:"name,omitempty" binding:"omitempty,max=255"`
	Degree         *string                `json:"degree,omitempty"`
	EnglishVariant *models.EnglishVariant `json:"english_variant,omitempty" binding:"omitempty,is-english-variant"`
}

// CollegeResponse - catalog view with nested programmes
type CollegeResponse struct {
	ID         string              `json:"id"`
	Name       string              `json:"name"`
	Country    string              `json:"country,omitempty"`
	Programmes []ProgrammeResponse `json:"programmes,omitempty"`
}

// ProgrammeResponse - programme view
type ProgrammeResponse struct {
	ID             string                `json:"id"`
	CollegeID      string                `json:"college_id"`
	Name           string                `json:"name"`
	Degree         string                `json:"degree,omitempty"`
	EnglishVariant models.EnglishVariant `json:"english_variant"`
}

// NewProgrammeResponse maps a programme row to its view.
func NewProgrammeResponse(p *models.Programme) ProgrammeResponse {
	return ProgrammeResponse{
		ID:             p.ID,
		CollegeID:      p.CollegeID,
		Name:           p.Name,
		Degree:         p.Degree,
		EnglishVariant: p.EnglishVariant,
	}
}

// NewCollegeResponse maps a college row, including preloaded programmes.
func NewCollegeResponse(c *models.College) CollegeResponse {
	resp := CollegeResponse{
		ID:      c.ID,
		Name:    c.Name,
		Country: c.Country,
	}
	for i := range c.Programmes {
		resp.Programmes = append(resp.Programmes, NewProgrammeResponse(&c.Programmes[i]))
	}
	return resp
}
