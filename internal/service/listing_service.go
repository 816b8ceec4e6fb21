package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"gamecatalog/internal/auth"
	apperrors "gamecatalog/internal/errors"
	"gamecatalog/internal/metrics"
	"gamecatalog/internal/model"
	"gamecatalog/internal/repository"
)

const (
	// TopPlayedLimit is the size of the most played ranking.
	TopPlayedLimit = 5
	// LatestLimit is the number of newest listings shown on the home page.
	LatestLimit = 3
	// DefaultRankingLimit applies when a ranking is requested without a limit.
	DefaultRankingLimit = 5
	// MaxRankingLimit caps client supplied ranking limits.
	MaxRankingLimit = 50
)

// InteractionKind names an interactor set of a listing.
type InteractionKind string

// InteractionLike is the only interaction kind.
const InteractionLike InteractionKind = "likes"

// ListingDetails is the detail view of one listing for an optional viewer.
type ListingDetails struct {
	Listing          *model.Listing `json:"listing"`
	OwnerFirstName   string         `json:"owner_first_name"`
	InteractionCount int            `json:"interaction_count"`
	InteractorNames  []string       `json:"interactor_names"`
	IsOwner          bool           `json:"is_owner"`
	HasInteracted    bool           `json:"has_interacted"`
}

// ListingService handles catalog listings, interactions and rankings.
type ListingService interface {
	Create(ctx context.Context, ownerID string, fields model.ListingFields) (*model.Listing, error)
	GetByID(ctx context.Context, id string) (*model.Listing, error)
	Details(ctx context.Context, id string, viewer *auth.Principal) (*ListingDetails, error)
	List(ctx context.Context) ([]model.Listing, error)
	Latest(ctx context.Context) ([]model.Listing, error)
	Update(ctx context.Context, id, requesterID string, fields model.ListingFields) (*model.Listing, error)
	Delete(ctx context.Context, id, requesterID string) error
	Interact(ctx context.Context, id, userID string, kind InteractionKind) (*model.Listing, error)
	Play(ctx context.Context, id, userID string) (*model.Listing, error)
	TopFivePlayed(ctx context.Context) ([]model.Listing, error)
	MostViewed(ctx context.Context, limit int) ([]model.Listing, error)
	MostLiked(ctx context.Context, limit int) ([]model.RankedListing, error)
}

type listingService struct {
	listingRepo repository.ListingRepository
	userRepo    repository.UserRepository
	rankings    singleflight.Group
	log         *slog.Logger
	metrics     *metrics.Metrics
}

// NewListingService creates a new listing service.
func NewListingService(
	listingRepo repository.ListingRepository,
	userRepo repository.UserRepository,
	log *slog.Logger,
	m *metrics.Metrics,
) ListingService {
	return &listingService{
		listingRepo: listingRepo,
		userRepo:    userRepo,
		log:         log,
		metrics:     m,
	}
}

// Create stores a new listing owned by ownerID with zero counters and no interactors.
func (s *listingService) Create(ctx context.Context, ownerID string, fields model.ListingFields) (*model.Listing, error) {
	if ownerID == "" {
		return nil, apperrors.ErrUnauthorized
	}
	fields = trimFields(fields)
	if err := checkListingFields(fields); err != nil {
		return nil, err
	}
	listing := &model.Listing{OwnerID: ownerID}
	listing.Apply(fields)

	if err := s.listingRepo.Create(ctx, listing); err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			// owner vanished between token issue and insert
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("create listing: %w", err)
	}
	listing.Likes = []string{}
	return listing, nil
}

func (s *listingService) GetByID(ctx context.Context, id string) (*model.Listing, error) {
	listing, err := s.listingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr("find listing", err)
	}
	return listing, nil
}

// Details counts a view and returns the listing with viewer-relative flags.
func (s *listingService) Details(ctx context.Context, id string, viewer *auth.Principal) (*ListingDetails, error) {
	if err := s.listingRepo.IncrementViews(ctx, id); err != nil {
		return nil, storeErr("increment views", err)
	}
	listing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	details := &ListingDetails{
		Listing:          listing,
		InteractionCount: len(listing.Likes),
		InteractorNames:  []string{},
	}
	if len(listing.Likes) > 0 {
		names, err := s.listingRepo.InteractorNames(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("load interactor names: %w", err)
		}
		details.InteractorNames = names
	}
	if owner, err := s.userRepo.FindByID(ctx, listing.OwnerID); err == nil {
		details.OwnerFirstName = owner.FirstName
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find owner: %w", err)
	}
	if viewer != nil {
		details.IsOwner = viewer.UserID == listing.OwnerID
		details.HasInteracted = listing.HasInteractor(viewer.UserID)
	}
	return details, nil
}

func (s *listingService) List(ctx context.Context) ([]model.Listing, error) {
	listings, err := s.listingRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}
	return listings, nil
}

// Latest returns the newest listings, newest first.
func (s *listingService) Latest(ctx context.Context) ([]model.Listing, error) {
	listings, err := s.listingRepo.Latest(ctx, LatestLimit)
	if err != nil {
		return nil, fmt.Errorf("latest listings: %w", err)
	}
	return listings, nil
}

// Update replaces the descriptive fields. The owner is read under a row lock
// so a concurrent delete surfaces as ErrNotFound.
func (s *listingService) Update(ctx context.Context, id, requesterID string, fields model.ListingFields) (*model.Listing, error) {
	fields = trimFields(fields)
	if err := checkListingFields(fields); err != nil {
		return nil, err
	}
	var updated *model.Listing
	err := s.listingRepo.WithTransaction(ctx, func(ctx context.Context, txRepo repository.ListingRepository) error {
		current, err := txRepo.FindByIDForUpdate(ctx, id)
		if err != nil {
			return storeErr("lock listing", err)
		}
		if current.OwnerID != requesterID {
			return apperrors.ErrForbidden
		}

		current.Apply(fields)
		if err := txRepo.UpdateFields(ctx, current); err != nil {
			return storeErr("update listing", err)
		}
		updated = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the listing when requesterID owns it.
func (s *listingService) Delete(ctx context.Context, id, requesterID string) error {
	return s.listingRepo.WithTransaction(ctx, func(ctx context.Context, txRepo repository.ListingRepository) error {
		current, err := txRepo.FindByIDForUpdate(ctx, id)
		if err != nil {
			return storeErr("lock listing", err)
		}
		if current.OwnerID != requesterID {
			return apperrors.ErrForbidden
		}
		if err := txRepo.Delete(ctx, id); err != nil {
			return storeErr("delete listing", err)
		}
		return nil
	})
}

// Interact adds userID to the interactor set. Repeating it is a no-op.
func (s *listingService) Interact(ctx context.Context, id, userID string, kind InteractionKind) (*model.Listing, error) {
	if kind != InteractionLike {
		return nil, apperrors.NewValidationError(apperrors.FieldError{
			Field:   "kind",
			Message: fmt.Sprintf("unsupported interaction %q", kind),
		})
	}

	listing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	added, err := s.listingRepo.AddInteractor(ctx, id, userID)
	if err != nil {
		return nil, storeErr("add interactor", err)
	}
	s.metrics.Interaction(string(kind), added)

	likes, err := s.listingRepo.Interactors(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load interactors: %w", err)
	}
	listing.Likes = likes
	return listing, nil
}

// Play counts a play and remembers it as the user's last played listing.
func (s *listingService) Play(ctx context.Context, id, userID string) (*model.Listing, error) {
	if err := s.listingRepo.IncrementPlayed(ctx, id); err != nil {
		return nil, storeErr("increment played", err)
	}
	if err := s.userRepo.SetLastPlayed(ctx, userID, id); err != nil {
		s.log.Warn("set last played", "user_id", userID, "listing_id", id, "error", err)
	}
	return s.GetByID(ctx, id)
}

// Ranking reads are shared between concurrent callers, so they run detached
// from any single caller's cancellation.

// TopFivePlayed returns the five listings with the highest play count.
func (s *listingService) TopFivePlayed(ctx context.Context) ([]model.Listing, error) {
	v, err, _ := s.rankings.Do("top-played", func() (any, error) {
		return s.listingRepo.TopPlayed(context.WithoutCancel(ctx), TopPlayedLimit)
	})
	if err != nil {
		return nil, fmt.Errorf("top played: %w", err)
	}
	return v.([]model.Listing), nil
}

func (s *listingService) MostViewed(ctx context.Context, limit int) ([]model.Listing, error) {
	limit = clampLimit(limit)
	v, err, _ := s.rankings.Do(fmt.Sprintf("most-viewed:%d", limit), func() (any, error) {
		return s.listingRepo.MostViewed(context.WithoutCancel(ctx), limit)
	})
	if err != nil {
		return nil, fmt.Errorf("most viewed: %w", err)
	}
	return v.([]model.Listing), nil
}

// MostLiked is computed from the live interactor sets on every call.
func (s *listingService) MostLiked(ctx context.Context, limit int) ([]model.RankedListing, error) {
	limit = clampLimit(limit)
	v, err, _ := s.rankings.Do(fmt.Sprintf("most-liked:%d", limit), func() (any, error) {
		return s.listingRepo.MostLiked(context.WithoutCancel(ctx), limit)
	})
	if err != nil {
		return nil, fmt.Errorf("most liked: %w", err)
	}
	return v.([]model.RankedListing), nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultRankingLimit
	}
	if limit > MaxRankingLimit {
		return MaxRankingLimit
	}
	return limit
}

func trimFields(f model.ListingFields) model.ListingFields {
	return model.ListingFields{
		Name:         strings.TrimSpace(f.Name),
		Manufacturer: strings.TrimSpace(f.Manufacturer),
		Genre:        strings.TrimSpace(f.Genre),
		ImageURL:     strings.TrimSpace(f.ImageURL),
		IframeURL:    strings.TrimSpace(f.IframeURL),
		Description:  strings.TrimSpace(f.Description),
	}
}
