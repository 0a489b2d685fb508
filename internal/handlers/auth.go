package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kvasnev/hotel_listing/internal/auth"
	"github.com/kvasnev/hotel_listing/internal/events"
	"github.com/kvasnev/hotel_listing/internal/logging"
	"github.com/kvasnev/hotel_listing/internal/transport"
)

type AuthHandler struct {
	Manager  *auth.Manager
	Producer *events.Producer
}

func (h *AuthHandler) publish(c echo.Context, key string, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "user_events", key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("publish_failed", "error", err)
	}
}

func (h *AuthHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	verrs, err := h.Manager.Register(ctx, req)
	if err != nil {
		return err
	}
	if len(verrs) > 0 {
		l.Warn("register_failed", "status", 400, "errors", len(verrs))
		return c.JSON(http.StatusBadRequest, verrs)
	}

	h.publish(c, req.Email, map[string]any{"type": "user_registered", "email": req.Email})

	l.Info("register_success")
	return c.NoContent(http.StatusCreated)
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	resp, err := h.Manager.Login(ctx, req)
	if err != nil {
		return err
	}
	if resp == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid email or password")
	}

	h.publish(c, req.Email, map[string]any{"type": "user_logged_in", "userID": resp.UserID})

	l.Info("login_success", "user_id", resp.UserID)
	return c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Refresh(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_refresh")

	var req transport.AuthResponse
	if err := c.Bind(&req); err != nil {
		l.Warn("refresh_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	resp, err := h.Manager.VerifyRefreshToken(ctx, req)
	if err != nil {
		return err
	}
	if resp == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid refresh token")
	}

	l.Info("refresh_success", "user_id", resp.UserID)
	return c.JSON(http.StatusOK, resp)
}
