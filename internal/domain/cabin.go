package domain

import "time"

const (
	DefaultCity     = "Córdoba"
	DefaultProvince = "Córdoba"
)

type Cabin struct {
	ID               int64     `json:"id" gorm:"primaryKey"`
	Title            string    `json:"title" gorm:"size:200;not null"`
	Slug             string    `json:"slug" gorm:"size:220;not null;uniqueIndex"`
	ShortDescription string    `json:"short_description" gorm:"size:500;not null"`
	Description      string    `json:"description" gorm:"type:text;not null"`
	City             string    `json:"city" gorm:"size:120;not null"`
	Province         string    `json:"province" gorm:"size:120;not null"`
	PricePerNight    float64   `json:"price_per_night" gorm:"type:numeric(12,2);not null;index;check:chk_cabins_price,price_per_night > 0"`
	MaxGuests        int       `json:"max_guests" gorm:"not null;index;check:chk_cabins_guests,max_guests > 0"`
	Bedrooms         int       `json:"bedrooms" gorm:"not null"`
	Bathrooms        int       `json:"bathrooms" gorm:"not null"`
	IsFeatured       bool      `json:"is_featured" gorm:"not null"`
	IsActive         bool      `json:"is_active" gorm:"not null;index"`
	CreatedAt        time.Time `json:"created_at" gorm:"index"`
	UpdatedAt        time.Time `json:"updated_at"`

	Images []CabinImage `json:"images,omitempty" gorm:"foreignKey:CabinID"`
}

// CoverImage is the image with the lowest sort order, ties broken by id.
func (c *Cabin) CoverImage() *string {
	var best *CabinImage
	for i := range c.Images {
		img := &c.Images[i]
		if best == nil || img.SortOrder < best.SortOrder ||
			(img.SortOrder == best.SortOrder && img.ID < best.ID) {
			best = img
		}
	}
	if best == nil {
		return nil
	}
	url := best.ImageURL
	return &url
}

type CabinImage struct {
	ID        int64   `json:"id" gorm:"primaryKey"`
	CabinID   int64   `json:"cabin_id" gorm:"not null;index:idx_cabin_images_order,priority:1"`
	ImageURL  string  `json:"image_url" gorm:"type:text;not null"`
	AltText   *string `json:"alt_text" gorm:"size:300"`
	SortOrder int     `json:"sort_order" gorm:"not null;index:idx_cabin_images_order,priority:2"`

	Cabin *Cabin `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// CabinSummary is a listing row: the cabin without descriptions or image
// list, plus its cover image.
type CabinSummary struct {
	ID               int64     `json:"id"`
	Title            string    `json:"title"`
	Slug             string    `json:"slug"`
	ShortDescription string    `json:"short_description"`
	City             string    `json:"city"`
	Province         string    `json:"province"`
	PricePerNight    float64   `json:"price_per_night"`
	MaxGuests        int       `json:"max_guests"`
	Bedrooms         int       `json:"bedrooms"`
	Bathrooms        int       `json:"bathrooms"`
	IsFeatured       bool      `json:"is_featured"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
	CoverImage       *string   `json:"cover_image"`
}
