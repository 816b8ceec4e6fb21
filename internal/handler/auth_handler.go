package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"gamecatalog/internal/auth"
	"gamecatalog/internal/model"
	"gamecatalog/internal/service"
)

// CookieSettings controls the session cookie.
type CookieSettings struct {
	Name   string
	Secure bool
}

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
	cookie      CookieSettings
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, cookie CookieSettings) *AuthHandler {
	return &AuthHandler{authService: authService, cookie: cookie}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Email                string `json:"email" validate:"required,email,min=10"`
	FirstName            string `json:"first_name" validate:"required,min=3"`
	LastName             string `json:"last_name" validate:"required,min=3"`
	Password             string `json:"password" validate:"required,min=4"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
}

func (r *RegisterRequest) normalize() {
	trim(&r.Email, &r.FirstName, &r.LastName)
}

// LoginRequest represents a user login request. Coordinates come in pairs.
type LoginRequest struct {
	Email     string   `json:"email" validate:"required,min=10"`
	Password  string   `json:"password" validate:"required,min=4"`
	Latitude  *float64 `json:"latitude" validate:"required_with=Longitude,omitempty,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" validate:"required_with=Latitude,omitempty,gte=-180,lte=180"`
}

func (r *LoginRequest) normalize() {
	trim(&r.Email)
}

// AuthResponse represents an authentication response.
type AuthResponse struct {
	User       *model.User `json:"user"`
	Token      string      `json:"token"`
	ExpiresAt  time.Time   `json:"expires_at"`
	Suspicious bool        `json:"suspicious,omitempty"`
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user, err := h.authService.Register(c.Request().Context(), service.RegisterInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		return err
	}

	token, expiresAt, err := h.authService.IssueToken(user)
	if err != nil {
		return err
	}
	h.setSessionCookie(c, token, expiresAt)

	return c.JSON(http.StatusCreated, AuthResponse{User: user, Token: token, ExpiresAt: expiresAt})
}

// Login godoc
// @Summary Login user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	result, err := h.authService.Login(c.Request().Context(), service.LoginInput{
		Email:     req.Email,
		Password:  req.Password,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		return err
	}
	h.setSessionCookie(c, result.Token, result.ExpiresAt)

	return c.JSON(http.StatusOK, AuthResponse{
		User:       result.User,
		Token:      result.Token,
		ExpiresAt:  result.ExpiresAt,
		Suspicious: result.Suspicious,
	})
}

// Logout godoc
// @Summary Logout user
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]bool
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Security CookieAuth
// @Router /logout [get]
func (h *AuthHandler) Logout(c echo.Context, p auth.Principal) error {
	if err := h.authService.Logout(c.Request().Context(), p); err != nil {
		return err
	}
	h.clearSessionCookie(c)
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

func (h *AuthHandler) setSessionCookie(c echo.Context, token string, expiresAt time.Time) {
	c.SetCookie(&http.Cookie{
		Name:     h.cookie.Name,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
