package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"gamecatalog/internal/auth"
	apperrors "gamecatalog/internal/errors"
	"gamecatalog/internal/geo"
	"gamecatalog/internal/metrics"
	"gamecatalog/internal/model"
	"gamecatalog/internal/repository"
)

// AuthSettings is the injected configuration of the auth service.
type AuthSettings struct {
	BcryptCost           int
	LoginHistory         int
	SuspiciousDistanceKm float64
}

// RegisterInput is the typed body of a registration.
type RegisterInput struct {
	Email     string
	FirstName string
	LastName  string
	Password  string
}

// LoginInput is the typed body of a login. Coordinates are optional.
type LoginInput struct {
	Email     string
	Password  string
	Latitude  *float64
	Longitude *float64
}

// LoginResult carries the signed-in user and the issued session token.
type LoginResult struct {
	User       *model.User
	Token      string
	ExpiresAt  time.Time
	Suspicious bool
	DistanceKm float64
}

// AuthService handles registration, login and session tokens.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*model.User, error)
	Login(ctx context.Context, in LoginInput) (*LoginResult, error)
	IssueToken(user *model.User) (token string, expiresAt time.Time, err error)
	Authenticate(ctx context.Context, token string) (auth.Principal, error)
	Logout(ctx context.Context, p auth.Principal) error
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
	settings   AuthSettings
	dummyHash  []byte
	log        *slog.Logger
	metrics    *metrics.Metrics
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	userRepo repository.UserRepository,
	jwtService *auth.JWTService,
	tokenStore auth.TokenStoreInterface,
	settings AuthSettings,
	log *slog.Logger,
	m *metrics.Metrics,
) AuthService {
	if settings.BcryptCost < bcrypt.MinCost {
		settings.BcryptCost = bcrypt.DefaultCost
	}
	if settings.LoginHistory < 1 {
		settings.LoginHistory = 5
	}
	// compared against when the email is unknown so both paths pay for bcrypt
	dummy, _ := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), settings.BcryptCost)
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		tokenStore: tokenStore,
		settings:   settings,
		dummyHash:  dummy,
		log:        log,
		metrics:    m,
	}
}

// NormalizeEmail makes identities case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new user with a hashed password.
func (s *authService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	email := NormalizeEmail(in.Email)
	firstName, lastName := strings.TrimSpace(in.FirstName), strings.TrimSpace(in.LastName)
	if err := checkNames(firstName, lastName); err != nil {
		return nil, err
	}

	// Fast path only; the unique index decides concurrent registrations.
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		s.metrics.AuthResult("register", "duplicate")
		return nil, apperrors.ErrDuplicateIdentity
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.settings.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: string(hashedPassword),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			s.metrics.AuthResult("register", "duplicate")
			return nil, apperrors.ErrDuplicateIdentity
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.metrics.AuthResult("register", "ok")
	return user, nil
}

// Login authenticates a user, records the login and issues a session token.
func (s *authService) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, NormalizeEmail(in.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(in.Password))
			s.metrics.AuthResult("login", "invalid_credentials")
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		s.metrics.AuthResult("login", "invalid_credentials")
		return nil, apperrors.ErrInvalidCredentials
	}

	result := &LoginResult{User: user}
	s.recordLogin(ctx, user, in, result)

	token, expiresAt, err := s.IssueToken(user)
	if err != nil {
		return nil, err
	}
	result.Token = token
	result.ExpiresAt = expiresAt

	s.metrics.AuthResult("login", "ok")
	return result, nil
}

// recordLogin appends to the login history and flags distant logins. It never
// fails the login.
func (s *authService) recordLogin(ctx context.Context, user *model.User, in LoginInput, result *LoginResult) {
	event := &model.LoginEvent{UserID: user.ID}
	if in.Latitude != nil && in.Longitude != nil {
		event.Latitude = in.Latitude
		event.Longitude = in.Longitude

		previous, err := s.userRepo.RecentLogins(ctx, user.ID, 1)
		if err != nil {
			s.log.Warn("load login history", "user_id", user.ID, "error", err)
		} else if len(previous) > 0 && previous[0].HasLocation() {
			from := geo.Point{Lat: *previous[0].Latitude, Lon: *previous[0].Longitude}
			to := geo.Point{Lat: *in.Latitude, Lon: *in.Longitude}
			result.DistanceKm = geo.Distance(from, to)
			if result.DistanceKm > s.settings.SuspiciousDistanceKm {
				result.Suspicious = true
				s.metrics.SuspiciousLogin()
				s.log.Warn("suspicious login",
					"user_id", user.ID,
					"distance_km", result.DistanceKm,
					"previous_lat", from.Lat,
					"previous_lon", from.Lon,
					"lat", to.Lat,
					"lon", to.Lon,
				)
			}
		}
	}

	if err := s.userRepo.AppendLogin(ctx, event, s.settings.LoginHistory); err != nil {
		s.log.Warn("append login history", "user_id", user.ID, "error", err)
	}
}

// IssueToken signs a session token embedding the user id and email.
func (s *authService) IssueToken(user *model.User) (string, time.Time, error) {
	token, claims, err := s.jwtService.GenerateToken(user.ID, user.Email)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("generate token: %w", err)
	}
	return token, claims.ExpiresAt.Time, nil
}

// Authenticate resolves a session token to its principal. Malformed, expired,
// badly signed and revoked tokens all fail with ErrUnauthorized.
func (s *authService) Authenticate(ctx context.Context, token string) (auth.Principal, error) {
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return auth.Principal{}, apperrors.ErrUnauthorized
	}
	if s.tokenStore.IsRevoked(ctx, claims.ID) {
		return auth.Principal{}, apperrors.ErrUnauthorized
	}
	return claims.Principal(), nil
}

// Logout revokes the token until it would have expired anyway.
func (s *authService) Logout(ctx context.Context, p auth.Principal) error {
	if err := s.tokenStore.Revoke(ctx, p.TokenID, time.Until(p.ExpiresAt)); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}
