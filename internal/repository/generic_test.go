package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/kvasnev/hotel_listing/internal/errs"
	"github.com/kvasnev/hotel_listing/internal/models"
	"github.com/kvasnev/hotel_listing/internal/transport"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to open in-memory db")

	require.NoError(t, db.AutoMigrate(
		&models.Country{}, &models.Hotel{},
		&models.User{}, &models.UserRole{}, &models.NamedToken{},
	))
	return db
}

func seedCountries(t *testing.T, r *Repository[models.Country], n int) {
	t.Helper()
	ctx := context.Background()
	for i := 1; i <= n; i++ {
		_, err := r.Add(ctx, models.Country{Name: fmt.Sprintf("Country %02d", i), ShortName: fmt.Sprintf("C%d", i)})
		require.NoError(t, err)
	}
}

func TestRepository_AddGetExistsDelete(t *testing.T) {
	db := newTestDB(t)
	r := New[models.Country](db)
	ctx := context.Background()

	created, err := r.Add(ctx, models.Country{Name: "Wakanda", ShortName: "WK"})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, err := r.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Wakanda", got.Name)
	assert.Equal(t, "WK", got.ShortName)

	ok, err := r.Exists(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, r.Delete(ctx, created.ID))

	ok, err = r.Exists(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = r.Get(ctx, created.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestRepository_GetZeroID(t *testing.T) {
	db := newTestDB(t)
	r := New[models.Country](db)

	_, err := r.Get(context.Background(), 0)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestRepository_DeleteMissing(t *testing.T) {
	db := newTestDB(t)
	r := New[models.Country](db)

	err := r.Delete(context.Background(), 42)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestPagedAll_RespectsPageSizeAndTotalCount(t *testing.T) {
	db := newTestDB(t)
	r := New[models.Country](db)
	seedCountries(t, r, 20)
	ctx := context.Background()

	tests := []struct {
		name       string
		params     transport.QueryParameters
		wantItems  int
		wantRecord int
	}{
		{name: "first page", params: transport.QueryParameters{StartIndex: 0, PageNumber: 1, PageSize: 5}, wantItems: 5, wantRecord: 5},
		{name: "middle page", params: transport.QueryParameters{StartIndex: 15, PageNumber: 4, PageSize: 5}, wantItems: 5, wantRecord: 5},
		{name: "past the end", params: transport.QueryParameters{StartIndex: 25, PageNumber: 6, PageSize: 5}, wantItems: 0, wantRecord: 5},
		{name: "default page size", params: transport.QueryParameters{}, wantItems: 15, wantRecord: transport.DefaultPageSize},
		{name: "negative start index clamped", params: transport.QueryParameters{StartIndex: -3, PageSize: 4}, wantItems: 4, wantRecord: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := PagedAll[models.Country, transport.GetCountryDto](ctx, r, tt.params)
			require.NoError(t, err)

			assert.Equal(t, int64(20), page.TotalCount, "totalCount must be the unfiltered row count")
			assert.Len(t, page.Items, tt.wantItems)
			assert.LessOrEqual(t, len(page.Items), tt.wantRecord)
			assert.Equal(t, tt.wantRecord, page.RecordNumber)
			assert.Equal(t, tt.params.PageNumber, page.PageNumber)
		})
	}
}

func TestPagedAll_ProjectsIntoResultShape(t *testing.T) {
	db := newTestDB(t)
	r := New[models.Country](db)
	seedCountries(t, r, 3)

	page, err := PagedAll[models.Country, transport.GetCountryDto](context.Background(), r, transport.QueryParameters{PageSize: 2})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)

	assert.Equal(t, "Country 01", page.Items[0].Name)
	assert.Equal(t, "C1", page.Items[0].ShortName)
	assert.NotZero(t, page.Items[0].ID)
}

func TestRepository_UpdateDetectsConflicts(t *testing.T) {
	db := newTestDB(t)
	r := New[models.Country](db)
	ctx := context.Background()

	created, err := r.Add(ctx, models.Country{Name: "Original", ShortName: "OR"})
	require.NoError(t, err)

	// two readers load the same version
	first, err := r.Get(ctx, created.ID)
	require.NoError(t, err)
	second, err := r.Get(ctx, created.ID)
	require.NoError(t, err)

	first.Name = "First Writer"
	require.NoError(t, r.Update(ctx, first))

	second.Name = "Second Writer"
	err = r.Update(ctx, second)
	assert.ErrorIs(t, err, errs.ErrConcurrencyConflict)

	got, err := r.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "First Writer", got.Name, "losing write must not overwrite")
}

func TestRepository_UpdateZeroID(t *testing.T) {
	db := newTestDB(t)
	r := New[models.Country](db)
	ctx := context.Background()
	seedCountries(t, r, 3)

	err := r.Update(ctx, models.Country{Name: "Anonymous"})
	assert.ErrorIs(t, err, errs.ErrNotFound)

	// no stored row may be touched by an unsaved entity
	all, err := r.GetAll(ctx)
	require.NoError(t, err)
	for _, c := range all {
		assert.Zero(t, c.Version)
		assert.NotEqual(t, "Anonymous", c.Name)
	}
}

func TestRepository_UpdateMissing(t *testing.T) {
	db := newTestDB(t)
	r := New[models.Country](db)

	err := r.Update(context.Background(), models.Country{ID: 99, Name: "Ghost"})
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestUpdateMapped_PatchesOnlyProvidedFields(t *testing.T) {
	db := newTestDB(t)
	r := New[models.Country](db)
	ctx := context.Background()

	created, err := r.Add(ctx, models.Country{Name: "Wakanda", ShortName: "WK"})
	require.NoError(t, err)

	name := "New Wakanda"
	err = UpdateMapped(ctx, r, created.ID, transport.UpdateCountryDto{Name: &name}, transport.ApplyCountryUpdate)
	require.NoError(t, err)

	got, err := r.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "New Wakanda", got.Name)
	assert.Equal(t, "WK", got.ShortName, "absent patch fields stay untouched")
}

func TestUpdateMapped_MissingEntity(t *testing.T) {
	db := newTestDB(t)
	r := New[models.Country](db)

	name := "Nowhere"
	err := UpdateMapped(context.Background(), r, 404, transport.UpdateCountryDto{Name: &name}, transport.ApplyCountryUpdate)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestAddMapped_ReturnsResultShape(t *testing.T) {
	db := newTestDB(t)
	r := New[models.Country](db)

	dto, err := AddMapped(context.Background(), r, transport.CreateCountryDto{Name: "Wakanda", ShortName: "WK"},
		transport.CountryFromCreate, transport.CountryToGet)
	require.NoError(t, err)

	assert.NotZero(t, dto.ID)
	assert.Equal(t, "Wakanda", dto.Name)
	assert.Equal(t, "WK", dto.ShortName)
}

func TestRepository_GetAll(t *testing.T) {
	db := newTestDB(t)
	r := New[models.Country](db)
	seedCountries(t, r, 4)

	all, err := r.GetAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 4)
}
