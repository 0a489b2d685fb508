package transport

import "github.com/kvasnev/hotel_listing/internal/models"

// Mapping between entities and result shapes is one explicit function per
// direction; a missing field here is a compile error, not a silent drop.

func CountryFromCreate(src CreateCountryDto) models.Country {
	return models.Country{Name: src.Name, ShortName: src.ShortName}
}

func CountryToGet(c models.Country) GetCountryDto {
	return GetCountryDto{ID: c.ID, Name: c.Name, ShortName: c.ShortName}
}

func CountryToDetails(c models.Country) CountryDetailsDto {
	hotels := make([]HotelDto, 0, len(c.Hotels))
	for _, h := range c.Hotels {
		hotels = append(hotels, HotelToDto(h))
	}
	return CountryDetailsDto{ID: c.ID, Name: c.Name, ShortName: c.ShortName, Hotels: hotels}
}

func ApplyCountryUpdate(c *models.Country, src UpdateCountryDto) {
	if src.Name != nil {
		c.Name = *src.Name
	}
	if src.ShortName != nil {
		c.ShortName = *src.ShortName
	}
}

func HotelFromCreate(src CreateHotelDto) models.Hotel {
	return models.Hotel{
		Name:      src.Name,
		Address:   src.Address,
		Rating:    src.Rating,
		CountryID: src.CountryID,
	}
}

func HotelToDto(h models.Hotel) HotelDto {
	return HotelDto{ID: h.ID, Name: h.Name, Address: h.Address, Rating: h.Rating, CountryID: h.CountryID}
}

func ApplyHotelUpdate(h *models.Hotel, src UpdateHotelDto) {
	if src.Name != nil {
		h.Name = *src.Name
	}
	if src.Address != nil {
		h.Address = *src.Address
	}
	if src.Rating != nil {
		h.Rating = *src.Rating
	}
}
