package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cabinrental/internal/domain"
	"cabinrental/internal/pkg/daterange"
)

const (
	SortNewest    = "newest"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
)

var cabinOrder = map[string]string{
	SortNewest:    "cabins.created_at DESC, cabins.id DESC",
	SortPriceAsc:  "cabins.price_per_night ASC, cabins.id ASC",
	SortPriceDesc: "cabins.price_per_night DESC, cabins.id ASC",
}

var summaryColumns = []string{
	"cabins.id", "cabins.title", "cabins.slug", "cabins.short_description",
	"cabins.city", "cabins.province", "cabins.price_per_night", "cabins.max_guests",
	"cabins.bedrooms", "cabins.bathrooms", "cabins.is_featured", "cabins.is_active",
	"cabins.created_at",
}

// CabinFilter narrows a cabin listing. Zero values disable a filter.
type CabinFilter struct {
	ActiveOnly bool
	Dates      *daterange.Range
	MinGuests  int
	MinPrice   *float64
	MaxPrice   *float64
	Sort       string
	Limit      int
	Offset     int
}

type CabinRepository struct {
	db *gorm.DB
}

func NewCabinRepository(db *gorm.DB) *CabinRepository {
	return &CabinRepository{db: db}
}

// Search returns one page of cabin summaries and the total number of matches.
// A cabin is excluded when any of its blocks overlaps f.Dates.
func (r *CabinRepository) Search(ctx context.Context, f CabinFilter) ([]domain.CabinSummary, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Cabin{})

	if f.ActiveOnly {
		q = q.Where("cabins.is_active = ?", true)
	}

	if f.Dates != nil {
		cond, args := f.Dates.OverlapCondition("b.from_date", "b.to_date")
		blocked := r.db.Table("blocks AS b").
			Select("1").
			Where("b.cabin_id = cabins.id").
			Where(cond, args...)
		q = q.Where("NOT EXISTS (?)", blocked)
	}

	if f.MinGuests > 0 {
		q = q.Where("cabins.max_guests >= ?", f.MinGuests)
	}
	if f.MinPrice != nil {
		q = q.Where("cabins.price_per_night >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("cabins.price_per_night <= ?", *f.MaxPrice)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order, ok := cabinOrder[f.Sort]
	if !ok {
		order = cabinOrder[SortNewest]
	}

	var cabins []domain.Cabin
	err := q.Select(summaryColumns).
		Order(order).
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&cabins).Error
	if err != nil {
		return nil, 0, err
	}

	covers, err := r.coverImages(ctx, cabins)
	if err != nil {
		return nil, 0, err
	}

	items := make([]domain.CabinSummary, 0, len(cabins))
	for _, c := range cabins {
		items = append(items, toSummary(c, covers[c.ID]))
	}
	return items, total, nil
}

// coverImages maps cabin id to the url of its first image.
func (r *CabinRepository) coverImages(ctx context.Context, cabins []domain.Cabin) (map[int64]*string, error) {
	covers := make(map[int64]*string, len(cabins))
	if len(cabins) == 0 {
		return covers, nil
	}

	ids := make([]int64, 0, len(cabins))
	for _, c := range cabins {
		ids = append(ids, c.ID)
	}

	var images []domain.CabinImage
	err := r.db.WithContext(ctx).
		Where("cabin_id IN ?", ids).
		Order("cabin_id ASC, sort_order ASC, id ASC").
		Find(&images).Error
	if err != nil {
		return nil, err
	}

	for _, img := range images {
		if _, seen := covers[img.CabinID]; seen {
			continue
		}
		url := img.ImageURL
		covers[img.CabinID] = &url
	}
	return covers, nil
}

func toSummary(c domain.Cabin, cover *string) domain.CabinSummary {
	return domain.CabinSummary{
		ID:               c.ID,
		Title:            c.Title,
		Slug:             c.Slug,
		ShortDescription: c.ShortDescription,
		City:             c.City,
		Province:         c.Province,
		PricePerNight:    c.PricePerNight,
		MaxGuests:        c.MaxGuests,
		Bedrooms:         c.Bedrooms,
		Bathrooms:        c.Bathrooms,
		IsFeatured:       c.IsFeatured,
		IsActive:         c.IsActive,
		CreatedAt:        c.CreatedAt,
		CoverImage:       cover,
	}
}

// GetByID loads a cabin with its images in display order.
func (r *CabinRepository) GetByID(ctx context.Context, id int64) (*domain.Cabin, error) {
	var cabin domain.Cabin
	err := r.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		First(&cabin, id).Error
	if err != nil {
		return nil, mapError(err)
	}
	return &cabin, nil
}

// Create inserts the cabin and its images in one transaction.
func (r *CabinRepository) Create(ctx context.Context, cabin *domain.Cabin) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		images := cabin.Images
		if err := tx.Omit(clause.Associations).Create(cabin).Error; err != nil {
			return err
		}
		cabin.Images = nil
		return insertImages(tx, cabin, images)
	})
	return mapError(err)
}

// Update overwrites the descriptive and numeric fields. is_active is left
// alone. When replaceImages is set the image list is swapped for cabin.Images.
func (r *CabinRepository) Update(ctx context.Context, cabin *domain.Cabin, replaceImages bool) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Cabin{}).
			Where("id = ?", cabin.ID).
			Updates(map[string]any{
				"title":             cabin.Title,
				"slug":              cabin.Slug,
				"short_description": cabin.ShortDescription,
				"description":       cabin.Description,
				"city":              cabin.City,
				"province":          cabin.Province,
				"price_per_night":   cabin.PricePerNight,
				"max_guests":        cabin.MaxGuests,
				"bedrooms":          cabin.Bedrooms,
				"bathrooms":         cabin.Bathrooms,
				"is_featured":       cabin.IsFeatured,
				"updated_at":        time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if replaceImages {
			images := cabin.Images
			if err := tx.Where("cabin_id = ?", cabin.ID).Delete(&domain.CabinImage{}).Error; err != nil {
				return err
			}
			if err := insertImages(tx, cabin, images); err != nil {
				return err
			}
		}

		return tx.Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).First(cabin, cabin.ID).Error
	})
	return mapError(err)
}

// SetActive sets is_active, or flips it when active is nil.
func (r *CabinRepository) SetActive(ctx context.Context, id int64, active *bool) (*domain.Cabin, error) {
	var cabin domain.Cabin
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&cabin, id).Error; err != nil {
			return err
		}

		next := !cabin.IsActive
		if active != nil {
			next = *active
		}

		now := time.Now()
		err := tx.Model(&domain.Cabin{}).
			Where("id = ?", id).
			Updates(map[string]any{"is_active": next, "updated_at": now}).Error
		if err != nil {
			return err
		}
		cabin.IsActive = next
		cabin.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, mapError(err)
	}
	return &cabin, nil
}

func insertImages(tx *gorm.DB, cabin *domain.Cabin, images []domain.CabinImage) error {
	if len(images) == 0 {
		cabin.Images = []domain.CabinImage{}
		return nil
	}
	rows := make([]domain.CabinImage, len(images))
	for i, img := range images {
		rows[i] = domain.CabinImage{
			CabinID:   cabin.ID,
			ImageURL:  img.ImageURL,
			AltText:   img.AltText,
			SortOrder: img.SortOrder,
		}
	}
	if err := tx.Create(&rows).Error; err != nil {
		return err
	}
	cabin.Images = rows
	return nil
}
