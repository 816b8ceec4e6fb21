package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"gamecatalog/internal/auth"
	"gamecatalog/internal/model"
	"gamecatalog/internal/service"
)

// UserHandler bundles profile endpoints.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// PublicProfile is what other users see.
type PublicProfile struct {
	ID         string    `json:"id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	PictureURL string    `json:"picture_url"`
	LastPlayed *string   `json:"last_played_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func publicProfile(u *model.User) PublicProfile {
	return PublicProfile{
		ID:         u.ID,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		PictureURL: u.PictureURL,
		LastPlayed: u.LastPlayedID,
		CreatedAt:  u.CreatedAt,
	}
}

// ProfileRequest is the body of a profile update.
type ProfileRequest struct {
	FirstName string `json:"first_name" validate:"required,min=3"`
	LastName  string `json:"last_name" validate:"required,min=3"`
}

func (r *ProfileRequest) normalize() {
	trim(&r.FirstName, &r.LastName)
}

// PictureRequest names the content type the client will upload.
type PictureRequest struct {
	ContentType string `json:"content_type" validate:"omitempty,oneof=image/png image/jpeg image/gif image/webp"`
}

// ConfirmPictureRequest names the uploaded object that becomes the profile picture.
type ConfirmPictureRequest struct {
	Key string `json:"key" validate:"required"`
}

func (r *ConfirmPictureRequest) normalize() {
	trim(&r.Key)
}

// GetUser godoc
// @Summary Get a public profile
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} PublicProfile
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	user, err := h.svc.GetProfile(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, publicProfile(user))
}

// Me godoc
// @Summary Own account with recent logins
// @Tags users
// @Produce json
// @Success 200 {object} service.Account
// @Failure 401 {object} errors.ErrorResponse
// @Security CookieAuth
// @Router /me [get]
func (h *UserHandler) Me(c echo.Context, p auth.Principal) error {
	account, err := h.svc.Account(c.Request().Context(), p.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, account)
}

// UpdateMe godoc
// @Summary Update own profile
// @Tags users
// @Accept json
// @Produce json
// @Param request body ProfileRequest true "Profile fields"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Security CookieAuth
// @Router /me [patch]
func (h *UserHandler) UpdateMe(c echo.Context, p auth.Principal) error {
	var req ProfileRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	user, err := h.svc.UpdateProfile(c.Request().Context(), p.UserID, service.ProfileInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Picture godoc
// @Summary Presigned upload for a new profile picture
// @Tags users
// @Accept json
// @Produce json
// @Param request body PictureRequest false "Upload content type"
// @Success 200 {object} storage.PresignedUpload
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Security CookieAuth
// @Router /me/picture [post]
func (h *UserHandler) Picture(c echo.Context, p auth.Principal) error {
	var req PictureRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	upload, err := h.svc.PictureUploadURL(c.Request().Context(), p.UserID, req.ContentType)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, upload)
}

// ConfirmPicture godoc
// @Summary Use an uploaded picture as the profile picture
// @Tags users
// @Accept json
// @Produce json
// @Param request body ConfirmPictureRequest true "Uploaded object key"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Security CookieAuth
// @Router /me/picture/confirm [post]
func (h *UserHandler) ConfirmPicture(c echo.Context, p auth.Principal) error {
	var req ConfirmPictureRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	user, err := h.svc.ConfirmPicture(c.Request().Context(), p.UserID, req.Key)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Dashboard godoc
// @Summary Listings owned and liked by the caller
// @Tags users
// @Produce json
// @Success 200 {object} service.Dashboard
// @Failure 401 {object} errors.ErrorResponse
// @Security CookieAuth
// @Router /me/dashboard [get]
func (h *UserHandler) Dashboard(c echo.Context, p auth.Principal) error {
	dash, err := h.svc.Dashboard(c.Request().Context(), p.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dash)
}
