package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kvasnev/hotel_listing/internal/errs"
	"github.com/kvasnev/hotel_listing/internal/events"
	"github.com/kvasnev/hotel_listing/internal/logging"
	"github.com/kvasnev/hotel_listing/internal/models"
	"github.com/kvasnev/hotel_listing/internal/repository"
	"github.com/kvasnev/hotel_listing/internal/search"
	"github.com/kvasnev/hotel_listing/internal/transport"
)

type HotelHandler struct {
	Repo      *repository.Repository[models.Hotel]
	Countries *repository.CountriesRepository
	Producer  *events.Producer
	Index     *search.HotelIndex
}

func (h *HotelHandler) reindex(c echo.Context, hotel models.Hotel) {
	if err := h.Index.IndexHotel(c.Request().Context(), hotel); err != nil {
		logging.FromContext(c.Request().Context()).Error("index_failed", "hotel_id", hotel.ID, "error", err)
	}
}

func (h *HotelHandler) GetHotels(c echo.Context) error {
	q := bindQueryParameters(c)
	page, err := repository.PagedAll[models.Hotel, transport.HotelDto](c.Request().Context(), h.Repo, q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

func (h *HotelHandler) GetHotel(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	hotel, err := h.Repo.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.HotelToDto(hotel))
}

func (h *HotelHandler) CreateHotel(c echo.Context) error {
	var req transport.CreateHotelDto
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Name == "" {
		return errs.Validation("Required", "name is required")
	}

	ok, err := h.Countries.Exists(c.Request().Context(), req.CountryID)
	if err != nil {
		return err
	}
	if !ok {
		return errs.Validation("UnknownCountry", "countryId does not exist")
	}

	hotel, err := h.Repo.Add(c.Request().Context(), transport.HotelFromCreate(req))
	if err != nil {
		return err
	}

	h.reindex(c, hotel)
	publishCatalog(c, h.Producer, req.Name, map[string]any{"type": "hotel_created", "hotelID": hotel.ID})
	return c.JSON(http.StatusCreated, transport.HotelToDto(hotel))
}

func (h *HotelHandler) UpdateHotel(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req transport.UpdateHotelDto
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.ID != 0 && req.ID != id {
		return errs.Validation("IDMismatch", "body id does not match path id")
	}

	if err := repository.UpdateMapped(c.Request().Context(), h.Repo, id, req, transport.ApplyHotelUpdate); err != nil {
		return err
	}

	hotel, err := h.Repo.Get(c.Request().Context(), id)
	if err != nil {
		logging.FromContext(c.Request().Context()).Error("index_refresh_failed", "hotel_id", id, "error", err)
	} else {
		h.reindex(c, hotel)
	}
	publishCatalog(c, h.Producer, c.Param("id"), map[string]any{"type": "hotel_updated", "hotelID": id})
	return c.NoContent(http.StatusNoContent)
}

func (h *HotelHandler) DeleteHotel(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.Repo.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	if err := h.Index.DeleteHotel(c.Request().Context(), id); err != nil {
		logging.FromContext(c.Request().Context()).Error("index_delete_failed", "hotel_id", id, "error", err)
	}
	publishCatalog(c, h.Producer, c.Param("id"), map[string]any{"type": "hotel_deleted", "hotelID": id})
	return c.NoContent(http.StatusNoContent)
}

// SearchHotels queries the Elasticsearch index, not the relational store.
func (h *HotelHandler) SearchHotels(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return errs.Validation("Required", "q is required")
	}
	q := bindQueryParameters(c)

	total, hotels, err := h.Index.Search(c.Request().Context(), query, q.StartIndex, q.PageSize)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.PagedResult[transport.HotelDto]{
		TotalCount:   total,
		PageNumber:   q.PageNumber,
		RecordNumber: q.PageSize,
		Items:        hotels,
	})
}
