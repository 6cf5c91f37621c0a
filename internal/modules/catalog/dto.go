package catalog

import (
	"cabinrental/internal/domain"
	"cabinrental/internal/pkg/daterange"
)

const (
	PublicDefaultLimit = 12
	PublicMaxLimit     = 50
	AdminDefaultLimit  = 20
	AdminMaxLimit      = 100
	MaxGuestsFilter    = 50
)

// SearchQuery is the parsed public listing query. Dates are validated by the
// service when DatesRequested is set.
type SearchQuery struct {
	DatesRequested bool
	From           string
	To             string
	Guests         int
	MinPrice       *float64
	MaxPrice       *float64
	Sort           string
	Page           int
	Limit          int
}

type SearchResult struct {
	Items      []domain.CabinSummary `json:"items"`
	Page       int                   `json:"page"`
	Limit      int                   `json:"limit"`
	Total      int64                 `json:"total"`
	TotalPages int                   `json:"total_pages"`
}

type ImageInput struct {
	URL string  `json:"url"`
	Alt *string `json:"alt"`
}

// CabinInput is the admin create/update form. Images nil means "not sent";
// an empty slice clears the gallery on update.
type CabinInput struct {
	Title            string        `json:"title" validate:"required,max=200"`
	Slug             string        `json:"slug" validate:"max=220"`
	ShortDescription string        `json:"short_description" validate:"required,max=500"`
	Description      string        `json:"description" validate:"required"`
	City             string        `json:"city" validate:"max=120"`
	Province         string        `json:"province" validate:"max=120"`
	PricePerNight    float64       `json:"price_per_night" validate:"gt=0"`
	MaxGuests        int           `json:"max_guests" validate:"gt=0"`
	Bedrooms         *int          `json:"bedrooms" validate:"omitempty,gte=0"`
	Bathrooms        *int          `json:"bathrooms" validate:"omitempty,gte=0"`
	IsFeatured       bool          `json:"is_featured"`
	IsActive         *bool         `json:"is_active"`
	Images           *[]ImageInput `json:"images"`
}

type SetActiveRequest struct {
	Active *bool `json:"active"`
}

type ImageResponse struct {
	ID        int64   `json:"id"`
	URL       string  `json:"url"`
	Alt       *string `json:"alt"`
	SortOrder int     `json:"sort_order"`
}

type CabinDetail struct {
	ID               int64           `json:"id"`
	Title            string          `json:"title"`
	Slug             string          `json:"slug"`
	ShortDescription string          `json:"short_description"`
	Description      string          `json:"description"`
	City             string          `json:"city"`
	Province         string          `json:"province"`
	PricePerNight    float64         `json:"price_per_night"`
	MaxGuests        int             `json:"max_guests"`
	Bedrooms         int             `json:"bedrooms"`
	Bathrooms        int             `json:"bathrooms"`
	IsFeatured       bool            `json:"is_featured"`
	IsActive         bool            `json:"is_active"`
	CoverImage       *string         `json:"cover_image"`
	Images           []ImageResponse `json:"images"`
}

func toDetail(c *domain.Cabin) *CabinDetail {
	images := make([]ImageResponse, 0, len(c.Images))
	for _, img := range c.Images {
		images = append(images, ImageResponse{ID: img.ID, URL: img.ImageURL, Alt: img.AltText, SortOrder: img.SortOrder})
	}
	return &CabinDetail{
		ID:               c.ID,
		Title:            c.Title,
		Slug:             c.Slug,
		ShortDescription: c.ShortDescription,
		Description:      c.Description,
		City:             c.City,
		Province:         c.Province,
		PricePerNight:    c.PricePerNight,
		MaxGuests:        c.MaxGuests,
		Bedrooms:         c.Bedrooms,
		Bathrooms:        c.Bathrooms,
		IsFeatured:       c.IsFeatured,
		IsActive:         c.IsActive,
		CoverImage:       c.CoverImage(),
		Images:           images,
	}
}

// Quote prices a stay without reserving it.
type Quote struct {
	CabinID int64 `json:"cabin_id"`
	daterange.Range
	Nights        int     `json:"nights"`
	PricePerNight float64 `json:"price_per_night"`
	// Total is nights*price computed in float64 and rounded half away from
	// zero to cents; it may differ by a cent from exact decimal arithmetic.
	Total         float64 `json:"total"`
	Available     bool    `json:"available"`
}

type ActiveResponse struct {
	ID       int64 `json:"id"`
	IsActive bool  `json:"is_active"`
}
