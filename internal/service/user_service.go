package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gamecatalog/internal/cache"
	apperrors "gamecatalog/internal/errors"
	"gamecatalog/internal/model"
	"gamecatalog/internal/repository"
	"gamecatalog/internal/storage"
)

const userCacheTTL = 5 * time.Minute

// PictureStorage issues picture uploads, confirms them and removes replaced pictures.
type PictureStorage interface {
	PresignUpload(ctx context.Context, userID, contentType string) (*storage.PresignedUpload, error)
	Exists(ctx context.Context, key string) (bool, error)
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
}

// ProfileInput is the typed body of a profile update.
type ProfileInput struct {
	FirstName string
	LastName  string
}

// Account is the signed-in user's own view.
type Account struct {
	User         *model.User        `json:"user"`
	RecentLogins []model.LoginEvent `json:"recent_logins"`
}

// Dashboard lists what a user owns and what they liked.
type Dashboard struct {
	Owned []model.Listing `json:"owned"`
	Liked []model.Listing `json:"liked"`
}

// UserService exposes profile operations.
type UserService interface {
	GetProfile(ctx context.Context, id string) (*model.User, error)
	Account(ctx context.Context, id string) (*Account, error)
	Dashboard(ctx context.Context, id string) (*Dashboard, error)
	UpdateProfile(ctx context.Context, id string, in ProfileInput) (*model.User, error)
	PictureUploadURL(ctx context.Context, id, contentType string) (*storage.PresignedUpload, error)
	ConfirmPicture(ctx context.Context, id, key string) (*model.User, error)
}

type userService struct {
	userRepo     repository.UserRepository
	listingRepo  repository.ListingRepository
	pictures     PictureStorage
	cache        *cache.Client
	loginHistory int
	log          *slog.Logger
}

// NewUserService builds a UserService with repositories, picture storage and cache.
func NewUserService(
	userRepo repository.UserRepository,
	listingRepo repository.ListingRepository,
	pictures PictureStorage,
	cache *cache.Client,
	loginHistory int,
	log *slog.Logger,
) UserService {
	return &userService{
		userRepo:     userRepo,
		listingRepo:  listingRepo,
		pictures:     pictures,
		cache:        cache,
		loginHistory: loginHistory,
		log:          log,
	}
}

func (s *userService) cacheKey(id string) string {
	return fmt.Sprintf("user:%s", id)
}

// GetProfile is cache-aside over the credential store.
func (s *userService) GetProfile(ctx context.Context, id string) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr("find user", err)
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, userCacheTTL)
	}
	return user, nil
}

func (s *userService) Account(ctx context.Context, id string) (*Account, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr("find user", err)
	}
	logins, err := s.userRepo.RecentLogins(ctx, id, s.loginHistory)
	if err != nil {
		return nil, fmt.Errorf("recent logins: %w", err)
	}
	return &Account{User: user, RecentLogins: logins}, nil
}

func (s *userService) Dashboard(ctx context.Context, id string) (*Dashboard, error) {
	owned, err := s.listingRepo.ListByOwner(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("owned listings: %w", err)
	}
	liked, err := s.listingRepo.ListLikedBy(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("liked listings: %w", err)
	}
	return &Dashboard{Owned: owned, Liked: liked}, nil
}

func (s *userService) UpdateProfile(ctx context.Context, id string, in ProfileInput) (*model.User, error) {
	firstName, lastName := strings.TrimSpace(in.FirstName), strings.TrimSpace(in.LastName)
	if err := checkNames(firstName, lastName); err != nil {
		return nil, err
	}
	if err := s.userRepo.UpdateProfile(ctx, id, firstName, lastName); err != nil {
		return nil, storeErr("update profile", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr("find user", err)
	}
	return user, nil
}

// PictureUploadURL presigns an upload for a new picture. The profile keeps its
// current picture until the upload is confirmed.
func (s *userService) PictureUploadURL(ctx context.Context, id, contentType string) (*storage.PresignedUpload, error) {
	if _, err := s.userRepo.FindByID(ctx, id); err != nil {
		return nil, storeErr("find user", err)
	}

	upload, err := s.pictures.PresignUpload(ctx, id, contentType)
	if err != nil {
		return nil, fmt.Errorf("presign picture: %w", err)
	}
	return upload, nil
}

// ConfirmPicture points the profile at an uploaded picture object. The key
// must belong to the user and the object must exist. The previous picture
// object is removed best-effort.
func (s *userService) ConfirmPicture(ctx context.Context, id, key string) (*model.User, error) {
	key = strings.TrimSpace(key)
	if !strings.HasPrefix(key, storage.KeyPrefix(id)) || len(key) == len(storage.KeyPrefix(id)) {
		return nil, apperrors.NewValidationError(apperrors.FieldError{Field: "key", Message: "is not an upload of this user"})
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr("find user", err)
	}
	if user.PictureKey == key {
		return user, nil
	}

	uploaded, err := s.pictures.Exists(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("check picture: %w", err)
	}
	if !uploaded {
		return nil, apperrors.NewValidationError(apperrors.FieldError{Field: "key", Message: "has not been uploaded"})
	}

	publicURL := s.pictures.PublicURL(key)
	if err := s.userRepo.SetPicture(ctx, id, publicURL, key); err != nil {
		return nil, storeErr("set picture", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))

	if user.PictureKey != "" {
		if err := s.pictures.Delete(ctx, user.PictureKey); err != nil {
			s.log.Warn("delete previous picture", "user_id", id, "key", user.PictureKey, "error", err)
		}
	}
	user.PictureURL = publicURL
	user.PictureKey = key
	return user, nil
}
