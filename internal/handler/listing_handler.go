package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"gamecatalog/internal/auth"
	"gamecatalog/internal/model"
	"gamecatalog/internal/service"
)

// ListingHandler handles catalog endpoints.
type ListingHandler struct {
	svc service.ListingService
}

// NewListingHandler creates a new listing handler.
func NewListingHandler(svc service.ListingService) *ListingHandler {
	return &ListingHandler{svc: svc}
}

// ListingRequest carries the descriptive fields of a listing.
type ListingRequest struct {
	Name         string `json:"name" validate:"required,min=2"`
	Manufacturer string `json:"manufacturer" validate:"required,min=3"`
	Genre        string `json:"genre" validate:"required,min=2"`
	ImageURL     string `json:"image_url" validate:"required,http_url"`
	IframeURL    string `json:"iframe_url" validate:"required,http_url"`
	Description  string `json:"description" validate:"required,min=5,max=500"`
}

func (r *ListingRequest) normalize() {
	trim(&r.Name, &r.Manufacturer, &r.Genre, &r.ImageURL, &r.IframeURL, &r.Description)
}

func (r ListingRequest) fields() model.ListingFields {
	return model.ListingFields{
		Name:         r.Name,
		Manufacturer: r.Manufacturer,
		Genre:        r.Genre,
		ImageURL:     r.ImageURL,
		IframeURL:    r.IframeURL,
		Description:  r.Description,
	}
}

// Create godoc
// @Summary Create a listing
// @Tags catalog
// @Accept json
// @Produce json
// @Param request body ListingRequest true "Listing fields"
// @Success 201 {object} model.Listing
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Security CookieAuth
// @Router /catalog [post]
func (h *ListingHandler) Create(c echo.Context, p auth.Principal) error {
	var req ListingRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	listing, err := h.svc.Create(c.Request().Context(), p.UserID, req.fields())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, listing)
}

// List godoc
// @Summary List all listings
// @Tags catalog
// @Produce json
// @Success 200 {array} model.Listing
// @Router /catalog [get]
func (h *ListingHandler) List(c echo.Context) error {
	listings, err := h.svc.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listings)
}

// Latest godoc
// @Summary The three newest listings
// @Tags catalog
// @Produce json
// @Success 200 {array} model.Listing
// @Router /catalog/latest [get]
func (h *ListingHandler) Latest(c echo.Context) error {
	listings, err := h.svc.Latest(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listings)
}

// Details godoc
// @Summary Listing details
// @Description Counts a view. Owner and interaction flags are relative to the caller when signed in.
// @Tags catalog
// @Produce json
// @Param id path string true "Listing ID"
// @Success 200 {object} service.ListingDetails
// @Failure 404 {object} errors.ErrorResponse
// @Router /catalog/{id} [get]
func (h *ListingHandler) Details(c echo.Context, viewer *auth.Principal) error {
	details, err := h.svc.Details(c.Request().Context(), c.Param("id"), viewer)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, details)
}

// Update godoc
// @Summary Update a listing
// @Tags catalog
// @Accept json
// @Produce json
// @Param id path string true "Listing ID"
// @Param request body ListingRequest true "Listing fields"
// @Success 200 {object} model.Listing
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security CookieAuth
// @Router /catalog/{id} [patch]
func (h *ListingHandler) Update(c echo.Context, p auth.Principal, l *model.Listing) error {
	var req ListingRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	listing, err := h.svc.Update(c.Request().Context(), l.ID, p.UserID, req.fields())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listing)
}

// Delete godoc
// @Summary Delete a listing
// @Tags catalog
// @Produce json
// @Param id path string true "Listing ID"
// @Success 200 {object} map[string]bool
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security CookieAuth
// @Router /catalog/{id} [delete]
func (h *ListingHandler) Delete(c echo.Context, p auth.Principal, l *model.Listing) error {
	if err := h.svc.Delete(c.Request().Context(), l.ID, p.UserID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// Interact godoc
// @Summary Like a listing
// @Tags catalog
// @Produce json
// @Param id path string true "Listing ID"
// @Success 200 {object} model.Listing
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Security CookieAuth
// @Router /catalog/{id}/interact [get]
func (h *ListingHandler) Interact(c echo.Context, p auth.Principal) error {
	listing, err := h.svc.Interact(c.Request().Context(), c.Param("id"), p.UserID, service.InteractionLike)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listing)
}

// Play godoc
// @Summary Count a play
// @Tags catalog
// @Produce json
// @Param id path string true "Listing ID"
// @Success 200 {object} model.Listing
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security CookieAuth
// @Router /catalog/{id}/play [post]
func (h *ListingHandler) Play(c echo.Context, p auth.Principal) error {
	listing, err := h.svc.Play(c.Request().Context(), c.Param("id"), p.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listing)
}
