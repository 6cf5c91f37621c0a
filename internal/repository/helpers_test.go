package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"cabinrental/internal/domain"
)

func newCabin(t *testing.T, repo *CabinRepository, title string, price float64, guests int, active bool) *domain.Cabin {
	t.Helper()

	c := &domain.Cabin{
		Title:            title,
		Slug:             title,
		ShortDescription: "short " + title,
		Description:      "long " + title,
		City:             domain.DefaultCity,
		Province:         domain.DefaultProvince,
		PricePerNight:    price,
		MaxGuests:        guests,
		Bedrooms:         1,
		Bathrooms:        1,
		IsActive:         active,
	}
	require.NoError(t, repo.Create(context.Background(), c))
	return c
}
