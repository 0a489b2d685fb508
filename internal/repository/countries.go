package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/kvasnev/hotel_listing/internal/errs"
	"github.com/kvasnev/hotel_listing/internal/models"
	"github.com/kvasnev/hotel_listing/internal/transport"
)

// CountriesRepository adds the detail-with-hotels projection on top of the
// generic contract.
type CountriesRepository struct {
	*Repository[models.Country]
	db *gorm.DB
}

func NewCountries(db *gorm.DB) *CountriesRepository {
	return &CountriesRepository{Repository: New[models.Country](db), db: db}
}

// GetDetails eager-loads the country's hotels in the same pass and projects
// parent and children into their result shapes. A country with no hotels is
// a success with an empty (never nil) hotels slice.
func (r *CountriesRepository) GetDetails(ctx context.Context, id uint) (*transport.CountryDetailsDto, error) {
	var country models.Country
	err := r.db.WithContext(ctx).
		Preload("Hotels", func(db *gorm.DB) *gorm.DB { return db.Order("hotels.id ASC") }).
		First(&country, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	details := transport.CountryToDetails(country)
	return &details, nil
}
