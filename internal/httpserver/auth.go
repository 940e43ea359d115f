package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/misthy/shop-api/internal/jwtmiddleware"
	"github.com/misthy/shop-api/internal/logging"
	"github.com/misthy/shop-api/internal/repo"
	"github.com/misthy/shop-api/internal/service"
	"github.com/misthy/shop-api/internal/transport"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "All fields are required!")
	}
	if err := c.Validate(&req); err != nil {
		l.Warn("register_failed", "status", 400, "reason", "missing fields", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "All fields are required!")
	}

	if err := h.Svc.Register(ctx, req.Username, req.Email, req.Password); err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			return echo.NewHTTPError(http.StatusBadRequest, "All fields are required!")
		case errors.Is(err, service.ErrEmailTaken):
			l.Warn("register_failed", "status", 400, "reason", "email taken")
			return echo.NewHTTPError(http.StatusBadRequest, "User already exists!")
		default:
			l.Error("register_failed", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
		}
	}

	return c.JSON(http.StatusCreated, transport.MessageResponse{
		Message: "User registered successfully!",
	})
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Email and password are required!")
	}
	if err := c.Validate(&req); err != nil {
		l.Warn("login_failed", "status", 400, "reason", "missing fields", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Email and password are required!")
	}

	res, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrInvalidCredentials):
			// One message for unknown email and wrong password alike.
			l.Warn("login_failed", "status", 400, "reason", "invalid credentials")
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid email or password!")
		default:
			l.Error("login_failed", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
		}
	}

	return c.JSON(http.StatusOK, transport.LoginResponse{
		Message: "Login successful!",
		Token:   res.Token,
		User: transport.UserView{
			Email:    res.Email,
			Username: res.Username,
		},
	})
}

func (h *AuthHTTP) Profile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_profile")

	userID, ok := c.Get(jwtmiddleware.UserIDKey).(uint)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
	}

	user, err := h.Svc.Profile(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			l.Warn("profile_failed", "status", 404, "userID", userID)
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		l.Error("profile_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}

	return c.JSON(http.StatusOK, transport.ProfileResponse{
		ID:       user.ID,
		Email:    user.Email,
		Username: user.Username,
	})
}
