package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "gamecatalog/internal/errors"
	"gamecatalog/internal/service"
)

// RankingHandler serves the aggregate read endpoints.
type RankingHandler struct {
	svc service.ListingService
}

// NewRankingHandler creates a new ranking handler.
func NewRankingHandler(svc service.ListingService) *RankingHandler {
	return &RankingHandler{svc: svc}
}

type rankingQuery struct {
	Limit int `query:"limit" validate:"omitempty,min=1,max=50"`
}

// TopPlayed godoc
// @Summary Five most played listings
// @Tags rankings
// @Produce json
// @Success 200 {array} model.Listing
// @Router /rankings/top-played [get]
func (h *RankingHandler) TopPlayed(c echo.Context) error {
	listings, err := h.svc.TopFivePlayed(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listings)
}

// MostViewed godoc
// @Summary Most viewed listings
// @Tags rankings
// @Produce json
// @Param limit query int false "Result size (1-50, default 5)"
// @Success 200 {array} model.Listing
// @Failure 400 {object} errors.ErrorResponse
// @Router /rankings/most-viewed [get]
func (h *RankingHandler) MostViewed(c echo.Context) error {
	q, err := h.query(c)
	if err != nil {
		return err
	}
	listings, err := h.svc.MostViewed(c.Request().Context(), q.Limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listings)
}

// MostLiked godoc
// @Summary Most liked listings, ranked by live interactor count
// @Tags rankings
// @Produce json
// @Param limit query int false "Result size (1-50, default 5)"
// @Success 200 {array} model.RankedListing
// @Failure 400 {object} errors.ErrorResponse
// @Router /rankings/most-liked [get]
func (h *RankingHandler) MostLiked(c echo.Context) error {
	q, err := h.query(c)
	if err != nil {
		return err
	}
	listings, err := h.svc.MostLiked(c.Request().Context(), q.Limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listings)
}

func (h *RankingHandler) query(c echo.Context) (rankingQuery, error) {
	var q rankingQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return q, apperrors.NewValidationError(apperrors.FieldError{Field: "limit", Message: "must be a number"})
	}
	return q, c.Validate(&q)
}
