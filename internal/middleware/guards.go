package middleware

import (
	"context"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"gamecatalog/internal/auth"
	apperrors "gamecatalog/internal/errors"
	"gamecatalog/internal/model"
)

const principalKey = "principal"

// Authenticator resolves a raw session token.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (auth.Principal, error)
}

// ListingLoader loads the listing a guarded route targets.
type ListingLoader interface {
	GetByID(ctx context.Context, id string) (*model.Listing, error)
}

// AuthedHandler receives the resolved principal directly.
type AuthedHandler func(c echo.Context, p auth.Principal) error

// OptionalHandler receives the principal when a valid token was presented.
type OptionalHandler func(c echo.Context, p *auth.Principal) error

// OwnerHandler receives the principal and the listing it owns.
type OwnerHandler func(c echo.Context, p auth.Principal, l *model.Listing) error

// Guards are the pre-handler checks of the HTTP layer.
type Guards struct {
	auth       Authenticator
	listings   ListingLoader
	jwt        echo.MiddlewareFunc
	extractors []echomw.ValuesExtractor
}

// NewGuards builds the guards. The token is read from cookieName first and
// then from an Authorization bearer header.
func NewGuards(authenticator Authenticator, listings ListingLoader, cookieName string) (*Guards, error) {
	lookup := "cookie:" + cookieName + ",header:" + echo.HeaderAuthorization + ":Bearer "
	extractors, err := echomw.CreateExtractors(lookup)
	if err != nil {
		return nil, err
	}

	g := &Guards{auth: authenticator, listings: listings, extractors: extractors}
	g.jwt = echojwt.WithConfig(echojwt.Config{
		ContextKey:     principalKey,
		TokenLookup:    lookup,
		ParseTokenFunc: g.parseToken,
		ErrorHandler: func(c echo.Context, err error) error {
			return apperrors.ErrUnauthorized
		},
	})
	return g, nil
}

func (g *Guards) parseToken(c echo.Context, token string) (interface{}, error) {
	p, err := g.auth.Authenticate(c.Request().Context(), token)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Authenticated requires a valid, unexpired, correctly signed token.
func (g *Guards) Authenticated(next AuthedHandler) echo.HandlerFunc {
	return g.jwt(func(c echo.Context) error {
		p, ok := c.Get(principalKey).(auth.Principal)
		if !ok {
			return apperrors.ErrUnauthorized
		}
		return next(c, p)
	})
}

// GuestOnly denies requests that carry a valid token. Invalid or expired
// tokens count as absent.
func (g *Guards) GuestOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := g.principal(c); ok {
			return apperrors.ErrAlreadyAuthenticated
		}
		return next(c)
	}
}

// Optional passes the principal when a valid token is present and nil otherwise.
func (g *Guards) Optional(next OptionalHandler) echo.HandlerFunc {
	return func(c echo.Context) error {
		if p, ok := g.principal(c); ok {
			return next(c, &p)
		}
		return next(c, nil)
	}
}

// Owner requires the authenticated user to own the listing named by :id.
func (g *Guards) Owner(next OwnerHandler) echo.HandlerFunc {
	return g.Authenticated(func(c echo.Context, p auth.Principal) error {
		listing, err := g.listings.GetByID(c.Request().Context(), c.Param("id"))
		if err != nil {
			return err
		}
		if listing.OwnerID != p.UserID {
			return apperrors.ErrForbidden
		}
		return next(c, p, listing)
	})
}

// NotYetInteracted requires that the authenticated user is not in the
// interactor set of the listing named by :id.
func (g *Guards) NotYetInteracted(next AuthedHandler) echo.HandlerFunc {
	return g.Authenticated(func(c echo.Context, p auth.Principal) error {
		listing, err := g.listings.GetByID(c.Request().Context(), c.Param("id"))
		if err != nil {
			return err
		}
		if listing.HasInteractor(p.UserID) {
			return apperrors.ErrConflict
		}
		return next(c, p)
	})
}

func (g *Guards) principal(c echo.Context) (auth.Principal, bool) {
	for _, extract := range g.extractors {
		values, err := extract(c)
		if err != nil {
			continue
		}
		for _, v := range values {
			if p, err := g.auth.Authenticate(c.Request().Context(), v); err == nil {
				return p, true
			}
		}
	}
	return auth.Principal{}, false
}
