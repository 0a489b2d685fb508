package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kvasnev/hotel_listing/internal/errs"
	"github.com/kvasnev/hotel_listing/internal/models"
)

func TestCountriesRepository_GetDetails(t *testing.T) {
	db := newTestDB(t)
	r := NewCountries(db)
	hotels := New[models.Hotel](db)
	ctx := context.Background()

	country, err := r.Add(ctx, models.Country{Name: "Wakanda", ShortName: "WK"})
	require.NoError(t, err)

	_, err = hotels.Add(ctx, models.Hotel{Name: "Golden City Grand", Address: "Birnin Zana", Rating: 4.9, CountryID: country.ID})
	require.NoError(t, err)
	_, err = hotels.Add(ctx, models.Hotel{Name: "Border Lodge", Address: "Border Tribe lands", Rating: 4.1, CountryID: country.ID})
	require.NoError(t, err)

	details, err := r.GetDetails(ctx, country.ID)
	require.NoError(t, err)

	assert.Equal(t, country.ID, details.ID)
	assert.Equal(t, "Wakanda", details.Name)
	assert.Equal(t, "WK", details.ShortName)
	require.Len(t, details.Hotels, 2)
	assert.Equal(t, "Golden City Grand", details.Hotels[0].Name)
	assert.Equal(t, country.ID, details.Hotels[0].CountryID)
}

func TestCountriesRepository_GetDetailsNotFound(t *testing.T) {
	db := newTestDB(t)
	r := NewCountries(db)

	details, err := r.GetDetails(context.Background(), 123)
	assert.Nil(t, details)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestCountriesRepository_GetDetailsNoHotels(t *testing.T) {
	db := newTestDB(t)
	r := NewCountries(db)
	ctx := context.Background()

	country, err := r.Add(ctx, models.Country{Name: "Latveria", ShortName: "LV"})
	require.NoError(t, err)

	details, err := r.GetDetails(ctx, country.ID)
	require.NoError(t, err)

	assert.NotNil(t, details.Hotels, "zero hotels is a success with an empty slice")
	assert.Empty(t, details.Hotels)
}

func TestCountriesRepository_FullLifecycle(t *testing.T) {
	db := newTestDB(t)
	r := NewCountries(db)
	ctx := context.Background()

	created, err := r.Add(ctx, models.Country{Name: "Wakanda", ShortName: "WK"})
	require.NoError(t, err)

	details, err := r.GetDetails(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Wakanda", details.Name)
	assert.Empty(t, details.Hotels)

	loaded, err := r.Get(ctx, created.ID)
	require.NoError(t, err)
	loaded.Name = "New Wakanda"
	require.NoError(t, r.Update(ctx, loaded))

	details, err = r.GetDetails(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "New Wakanda", details.Name)
	assert.Equal(t, "WK", details.ShortName)

	require.NoError(t, r.Delete(ctx, created.ID))
	ok, err := r.Exists(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}
