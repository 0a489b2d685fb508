package transport

const DefaultPageSize = 15

// QueryParameters describes the slice of an ordered result set to return.
type QueryParameters struct {
	StartIndex int `query:"startIndex" json:"startIndex"`
	PageNumber int `query:"pageNumber" json:"pageNumber"`
	PageSize   int `query:"pageSize"   json:"pageSize"`
}

// Normalize clamps the cursor so a query never runs with a non-positive page
// size or a negative offset.
func (q *QueryParameters) Normalize() {
	if q.PageSize <= 0 {
		q.PageSize = DefaultPageSize
	}
	if q.StartIndex < 0 {
		q.StartIndex = 0
	}
}

// PagedResult carries one page of projected rows. TotalCount is the full
// unfiltered row count, not len(Items); RecordNumber echoes the requested
// page size.
type PagedResult[T any] struct {
	TotalCount   int64 `json:"totalCount"`
	PageNumber   int   `json:"pageNumber"`
	RecordNumber int   `json:"recordNumber"`
	Items        []T   `json:"items"`
}

type GetCountryDto struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
}

type CountryDetailsDto struct {
	ID        uint       `json:"id"`
	Name      string     `json:"name"`
	ShortName string     `json:"shortName"`
	Hotels    []HotelDto `json:"hotels"`
}

type CreateCountryDto struct {
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
}

// UpdateCountryDto is a patch: nil fields are left untouched. ID, when set,
// must match the path id.
type UpdateCountryDto struct {
	ID        uint    `json:"id,omitempty"`
	Name      *string `json:"name"`
	ShortName *string `json:"shortName"`
}

type HotelDto struct {
	ID        uint    `json:"id"`
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Rating    float64 `json:"rating"`
	CountryID uint    `json:"countryId"`
}

type CreateHotelDto struct {
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Rating    float64 `json:"rating"`
	CountryID uint    `json:"countryId"`
}

type UpdateHotelDto struct {
	ID      uint     `json:"id,omitempty"`
	Name    *string  `json:"name"`
	Address *string  `json:"address"`
	Rating  *float64 `json:"rating"`
}

type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is both the login/refresh reply and the refresh request body.
type AuthResponse struct {
	Token        string `json:"token"`
	UserID       uint   `json:"userId"`
	RefreshToken string `json:"refreshToken"`
}
