package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"gamecatalog/internal/model"
	"gamecatalog/internal/repository"
	"gamecatalog/internal/storage"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, id, firstName, lastName string) error {
	args := m.Called(ctx, id, firstName, lastName)
	return args.Error(0)
}

func (m *MockUserRepository) SetPicture(ctx context.Context, id, url, key string) error {
	args := m.Called(ctx, id, url, key)
	return args.Error(0)
}

func (m *MockUserRepository) SetLastPlayed(ctx context.Context, userID, listingID string) error {
	args := m.Called(ctx, userID, listingID)
	return args.Error(0)
}

func (m *MockUserRepository) AppendLogin(ctx context.Context, event *model.LoginEvent, keep int) error {
	args := m.Called(ctx, event, keep)
	return args.Error(0)
}

func (m *MockUserRepository) RecentLogins(ctx context.Context, userID string, limit int) ([]model.LoginEvent, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.LoginEvent), args.Error(1)
}

// MockListingRepository is a mock implementation of ListingRepository.
type MockListingRepository struct {
	mock.Mock
}

func (m *MockListingRepository) Create(ctx context.Context, listing *model.Listing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}

func (m *MockListingRepository) FindByID(ctx context.Context, id string) (*model.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Listing), args.Error(1)
}

func (m *MockListingRepository) FindByIDForUpdate(ctx context.Context, id string) (*model.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Listing), args.Error(1)
}

func (m *MockListingRepository) UpdateFields(ctx context.Context, listing *model.Listing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}

func (m *MockListingRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockListingRepository) listings(args mock.Arguments) ([]model.Listing, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Listing), args.Error(1)
}

func (m *MockListingRepository) List(ctx context.Context) ([]model.Listing, error) {
	return m.listings(m.Called(ctx))
}

func (m *MockListingRepository) ListByOwner(ctx context.Context, ownerID string) ([]model.Listing, error) {
	return m.listings(m.Called(ctx, ownerID))
}

func (m *MockListingRepository) ListLikedBy(ctx context.Context, userID string) ([]model.Listing, error) {
	return m.listings(m.Called(ctx, userID))
}

func (m *MockListingRepository) AddInteractor(ctx context.Context, listingID, userID string) (bool, error) {
	args := m.Called(ctx, listingID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockListingRepository) Interactors(ctx context.Context, listingID string) ([]string, error) {
	args := m.Called(ctx, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockListingRepository) InteractorNames(ctx context.Context, listingID string) ([]string, error) {
	args := m.Called(ctx, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockListingRepository) Latest(ctx context.Context, limit int) ([]model.Listing, error) {
	return m.listings(m.Called(ctx, limit))
}

func (m *MockListingRepository) IncrementViews(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockListingRepository) IncrementPlayed(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockListingRepository) TopPlayed(ctx context.Context, limit int) ([]model.Listing, error) {
	return m.listings(m.Called(ctx, limit))
}

func (m *MockListingRepository) MostViewed(ctx context.Context, limit int) ([]model.Listing, error) {
	return m.listings(m.Called(ctx, limit))
}

func (m *MockListingRepository) MostLiked(ctx context.Context, limit int) ([]model.RankedListing, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.RankedListing), args.Error(1)
}

// WithTransaction runs fn against the mock itself.
func (m *MockListingRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo repository.ListingRepository) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx, m)
}

// MockTokenStore is a mock implementation of TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) IsRevoked(ctx context.Context, tokenID string) bool {
	args := m.Called(ctx, tokenID)
	return args.Bool(0)
}

// MockPictureStorage is a mock implementation of PictureStorage.
type MockPictureStorage struct {
	mock.Mock
}

func (m *MockPictureStorage) PresignUpload(ctx context.Context, userID, contentType string) (*storage.PresignedUpload, error) {
	args := m.Called(ctx, userID, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.PresignedUpload), args.Error(1)
}

func (m *MockPictureStorage) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockPictureStorage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockPictureStorage) PublicURL(key string) string {
	return "http://cdn/" + key
}
