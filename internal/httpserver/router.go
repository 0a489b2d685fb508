package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/kvasnev/hotel_listing/internal/handlers"
	"github.com/kvasnev/hotel_listing/internal/middleware"
)

type Deps struct {
	AuthHandler    *handlers.AuthHandler
	CountryHandler *handlers.CountryHandler
	HotelHandler   *handlers.HotelHandler
	JWTSecret      []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })

	v1 := e.Group("/api/v1")

	v1.POST("/accounts/register", d.AuthHandler.Register)
	v1.POST("/accounts/login", d.AuthHandler.Login)
	v1.POST("/accounts/refreshtoken", d.AuthHandler.Refresh)

	v1.GET("/countries", d.CountryHandler.GetCountries)
	v1.GET("/countries/:id", d.CountryHandler.GetCountry)
	v1.GET("/hotels", d.HotelHandler.GetHotels)
	v1.GET("/hotels/:id", d.HotelHandler.GetHotel)
	v1.GET("/hotels/search", d.HotelHandler.SearchHotels)

	authed := v1.Group("", middleware.JWTAuth(d.JWTSecret))

	authed.POST("/countries", d.CountryHandler.CreateCountry)
	authed.PUT("/countries/:id", d.CountryHandler.UpdateCountry)
	authed.POST("/hotels", d.HotelHandler.CreateHotel)
	authed.PUT("/hotels/:id", d.HotelHandler.UpdateHotel)

	admin := authed.Group("", middleware.RequireRole("Administrator"))

	admin.DELETE("/countries/:id", d.CountryHandler.DeleteCountry)
	admin.DELETE("/hotels/:id", d.HotelHandler.DeleteHotel)
}
