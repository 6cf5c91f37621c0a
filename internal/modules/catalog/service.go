package catalog

import (
	"context"
	"errors"
	"math"
	"strings"

	"cabinrental/internal/domain"
	"cabinrental/internal/modules/events"
	"cabinrental/internal/pkg/daterange"
	"cabinrental/internal/pkg/pagination"
	"cabinrental/internal/pkg/utils"
	"cabinrental/internal/pkg/validator"
	"cabinrental/internal/repository"
)

type Service struct {
	cabins CabinRepository
	blocks BlockReader
	events EventPublisher
}

func NewService(cabins CabinRepository, blocks BlockReader, publisher EventPublisher) *Service {
	return &Service{cabins: cabins, blocks: blocks, events: publisher}
}

// Search lists active cabins free of blocks over the requested dates.
func (s *Service) Search(ctx context.Context, q SearchQuery) (*SearchResult, error) {
	f := repository.CabinFilter{
		ActiveOnly: true,
		MinGuests:  q.Guests,
		MinPrice:   q.MinPrice,
		MaxPrice:   q.MaxPrice,
		Sort:       q.Sort,
	}

	if q.DatesRequested {
		r, err := daterange.Validate(q.From, q.To)
		if err != nil {
			return nil, err
		}
		f.Dates = &r
	}

	return s.list(ctx, f, pagination.Params{Page: q.Page, Limit: q.Limit})
}

// AdminList lists every cabin, inactive included, newest first.
func (s *Service) AdminList(ctx context.Context, page pagination.Params) (*SearchResult, error) {
	return s.list(ctx, repository.CabinFilter{Sort: repository.SortNewest}, page)
}

func (s *Service) list(ctx context.Context, f repository.CabinFilter, page pagination.Params) (*SearchResult, error) {
	f.Limit = page.Limit
	f.Offset = page.Offset()

	items, total, err := s.cabins.Search(ctx, f)
	if err != nil {
		return nil, err
	}

	return &SearchResult{
		Items:      items,
		Page:       page.Page,
		Limit:      page.Limit,
		Total:      total,
		TotalPages: page.TotalPages(total),
	}, nil
}

// GetPublic returns an active cabin. Inactive cabins are reported as missing.
func (s *Service) GetPublic(ctx context.Context, id int64) (*CabinDetail, error) {
	cabin, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !cabin.IsActive {
		return nil, ErrNotFound
	}
	return toDetail(cabin), nil
}

func (s *Service) GetAdmin(ctx context.Context, id int64) (*CabinDetail, error) {
	cabin, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDetail(cabin), nil
}

// Quote prices [from,to) for an active cabin and reports whether any block
// overlaps it.
func (s *Service) Quote(ctx context.Context, id int64, from, to string) (*Quote, error) {
	r, err := daterange.Validate(from, to)
	if err != nil {
		return nil, err
	}

	cabin, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !cabin.IsActive {
		return nil, ErrNotFound
	}

	blocks, err := s.blocks.ListByCabin(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	available := true
	for _, b := range blocks {
		if r.Overlaps(daterange.Range{From: b.FromDate, To: b.ToDate}) {
			available = false
			break
		}
	}

	nights := r.Nights()
	return &Quote{
		CabinID:       cabin.ID,
		Range:         r,
		Nights:        nights,
		PricePerNight: cabin.PricePerNight,
		Total:         math.Round(float64(nights)*cabin.PricePerNight*100) / 100,
		Available:     available,
	}, nil
}

func (s *Service) Create(ctx context.Context, admin domain.AdminIdentity, in CabinInput) (*domain.Cabin, error) {
	if admin.IsZero() {
		return nil, domain.ErrUnauthenticated
	}

	cabin, err := buildCabin(in)
	if err != nil {
		return nil, err
	}
	cabin.IsActive = in.IsActive == nil || *in.IsActive
	if in.Images != nil {
		cabin.Images = buildImages(*in.Images)
	}

	if err := s.cabins.Create(ctx, cabin); err != nil {
		return nil, mapWriteError(err)
	}

	s.publish(ctx, events.New(events.CabinCreated, cabin.ID, admin.AdminID))
	return cabin, nil
}

// Update replaces the cabin's fields. The image list is replaced only when
// the input carries one; is_active is never changed here.
func (s *Service) Update(ctx context.Context, admin domain.AdminIdentity, id int64, in CabinInput) (*domain.Cabin, error) {
	if admin.IsZero() {
		return nil, domain.ErrUnauthenticated
	}

	cabin, err := buildCabin(in)
	if err != nil {
		return nil, err
	}
	cabin.ID = id

	replaceImages := in.Images != nil
	if replaceImages {
		cabin.Images = buildImages(*in.Images)
	}

	if err := s.cabins.Update(ctx, cabin, replaceImages); err != nil {
		return nil, mapWriteError(err)
	}

	s.publish(ctx, events.New(events.CabinUpdated, id, admin.AdminID))
	return cabin, nil
}

// SetActive sets the flag, or toggles it when active is nil.
func (s *Service) SetActive(ctx context.Context, admin domain.AdminIdentity, id int64, active *bool) (*domain.Cabin, error) {
	if admin.IsZero() {
		return nil, domain.ErrUnauthenticated
	}

	cabin, err := s.cabins.SetActive(ctx, id, active)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	s.publish(ctx, events.New(events.CabinActivation, id, admin.AdminID).WithActive(cabin.IsActive))
	return cabin, nil
}

func (s *Service) get(ctx context.Context, id int64) (*domain.Cabin, error) {
	cabin, err := s.cabins.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return cabin, nil
}

func (s *Service) publish(ctx context.Context, e events.Event) {
	if s.events != nil {
		s.events.Publish(ctx, e)
	}
}

func mapWriteError(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrDuplicate), errors.Is(err, repository.ErrConstraint):
		return ErrDuplicateSlug
	}
	return err
}

// buildCabin trims and validates the form and applies defaults.
func buildCabin(in CabinInput) (*domain.Cabin, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Slug = strings.TrimSpace(in.Slug)
	in.ShortDescription = strings.TrimSpace(in.ShortDescription)
	in.Description = strings.TrimSpace(in.Description)
	in.City = strings.TrimSpace(in.City)
	in.Province = strings.TrimSpace(in.Province)

	if fields := validator.Validate(in); fields != nil {
		return nil, &ValidationError{Fields: fields}
	}

	slug := in.Slug
	if slug == "" {
		slug = in.Title
	}
	slug = utils.Slugify(slug)
	if slug == "" {
		return nil, &ValidationError{Fields: map[string]string{"slug": "required"}}
	}

	cabin := &domain.Cabin{
		Title:            in.Title,
		Slug:             slug,
		ShortDescription: in.ShortDescription,
		Description:      in.Description,
		City:             orDefault(in.City, domain.DefaultCity),
		Province:         orDefault(in.Province, domain.DefaultProvince),
		PricePerNight:    in.PricePerNight,
		MaxGuests:        in.MaxGuests,
		Bedrooms:         1,
		Bathrooms:        1,
		IsFeatured:       in.IsFeatured,
	}
	if in.Bedrooms != nil {
		cabin.Bedrooms = *in.Bedrooms
	}
	if in.Bathrooms != nil {
		cabin.Bathrooms = *in.Bathrooms
	}
	return cabin, nil
}

// buildImages drops blank urls; sort order is the position in the input.
func buildImages(in []ImageInput) []domain.CabinImage {
	images := make([]domain.CabinImage, 0, len(in))
	for idx, img := range in {
		url := strings.TrimSpace(img.URL)
		if url == "" {
			continue
		}
		var alt *string
		if img.Alt != nil {
			trimmed := strings.TrimSpace(*img.Alt)
			alt = &trimmed
		}
		images = append(images, domain.CabinImage{ImageURL: url, AltText: alt, SortOrder: idx})
	}
	return images
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
