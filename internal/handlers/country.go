package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kvasnev/hotel_listing/internal/errs"
	"github.com/kvasnev/hotel_listing/internal/events"
	"github.com/kvasnev/hotel_listing/internal/logging"
	"github.com/kvasnev/hotel_listing/internal/models"
	"github.com/kvasnev/hotel_listing/internal/repository"
	"github.com/kvasnev/hotel_listing/internal/transport"
)

type CountryHandler struct {
	Repo     *repository.CountriesRepository
	Producer *events.Producer
}

func pathID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, errs.Validation("InvalidID", "id must be a positive integer")
	}
	return uint(id), nil
}

func bindQueryParameters(c echo.Context) transport.QueryParameters {
	var q transport.QueryParameters
	q.StartIndex, _ = strconv.Atoi(c.QueryParam("startIndex"))
	q.PageNumber, _ = strconv.Atoi(c.QueryParam("pageNumber"))
	q.PageSize, _ = strconv.Atoi(c.QueryParam("pageSize"))
	q.Normalize()
	return q
}

func publishCatalog(c echo.Context, p *events.Producer, key string, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := p.PublishEvent(ctx, "catalog_events", key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("publish_failed", "error", err)
	}
}

// GetCountries returns one page of countries projected into the list shape;
// full entities are not loaded.
func (h *CountryHandler) GetCountries(c echo.Context) error {
	q := bindQueryParameters(c)
	page, err := repository.PagedAll[models.Country, transport.GetCountryDto](c.Request().Context(), h.Repo.Repository, q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

func (h *CountryHandler) GetCountry(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	details, err := h.Repo.GetDetails(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, details)
}

func (h *CountryHandler) CreateCountry(c echo.Context) error {
	var req transport.CreateCountryDto
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Name == "" {
		return errs.Validation("Required", "name is required")
	}

	dto, err := repository.AddMapped(c.Request().Context(), h.Repo.Repository, req,
		transport.CountryFromCreate, transport.CountryToGet)
	if err != nil {
		return err
	}

	publishCatalog(c, h.Producer, req.Name, map[string]any{"type": "country_created", "countryID": dto.ID})
	return c.JSON(http.StatusCreated, dto)
}

func (h *CountryHandler) UpdateCountry(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req transport.UpdateCountryDto
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.ID != 0 && req.ID != id {
		return errs.Validation("IDMismatch", "body id does not match path id")
	}

	if err := repository.UpdateMapped(c.Request().Context(), h.Repo.Repository, id, req, transport.ApplyCountryUpdate); err != nil {
		return err
	}

	publishCatalog(c, h.Producer, c.Param("id"), map[string]any{"type": "country_updated", "countryID": id})
	return c.NoContent(http.StatusNoContent)
}

func (h *CountryHandler) DeleteCountry(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.Repo.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	publishCatalog(c, h.Producer, c.Param("id"), map[string]any{"type": "country_deleted", "countryID": id})
	return c.NoContent(http.StatusNoContent)
}
