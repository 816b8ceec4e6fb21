package router

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"gamecatalog/internal/auth"
	"gamecatalog/internal/model"
	"gamecatalog/internal/service"
	"gamecatalog/internal/storage"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, in service.RegisterInput) (*model.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, in service.LoginInput) (*service.LoginResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.LoginResult), args.Error(1)
}

func (m *MockAuthService) IssueToken(user *model.User) (string, time.Time, error) {
	args := m.Called(user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockAuthService) Authenticate(ctx context.Context, token string) (auth.Principal, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(auth.Principal), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, p auth.Principal) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

type MockListingService struct {
	mock.Mock
}

func (m *MockListingService) Create(ctx context.Context, ownerID string, fields model.ListingFields) (*model.Listing, error) {
	args := m.Called(ctx, ownerID, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Listing), args.Error(1)
}

func (m *MockListingService) GetByID(ctx context.Context, id string) (*model.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Listing), args.Error(1)
}

func (m *MockListingService) Details(ctx context.Context, id string, viewer *auth.Principal) (*service.ListingDetails, error) {
	args := m.Called(ctx, id, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListingDetails), args.Error(1)
}

func (m *MockListingService) List(ctx context.Context) ([]model.Listing, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Listing), args.Error(1)
}

func (m *MockListingService) Latest(ctx context.Context) ([]model.Listing, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Listing), args.Error(1)
}

func (m *MockListingService) Update(ctx context.Context, id, requesterID string, fields model.ListingFields) (*model.Listing, error) {
	args := m.Called(ctx, id, requesterID, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Listing), args.Error(1)
}

func (m *MockListingService) Delete(ctx context.Context, id, requesterID string) error {
	args := m.Called(ctx, id, requesterID)
	return args.Error(0)
}

func (m *MockListingService) Interact(ctx context.Context, id, userID string, kind service.InteractionKind) (*model.Listing, error) {
	args := m.Called(ctx, id, userID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Listing), args.Error(1)
}

func (m *MockListingService) Play(ctx context.Context, id, userID string) (*model.Listing, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Listing), args.Error(1)
}

func (m *MockListingService) TopFivePlayed(ctx context.Context) ([]model.Listing, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Listing), args.Error(1)
}

func (m *MockListingService) MostViewed(ctx context.Context, limit int) ([]model.Listing, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]model.Listing), args.Error(1)
}

func (m *MockListingService) MostLiked(ctx context.Context, limit int) ([]model.RankedListing, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]model.RankedListing), args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetProfile(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) Account(ctx context.Context, id string) (*service.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Account), args.Error(1)
}

func (m *MockUserService) Dashboard(ctx context.Context, id string) (*service.Dashboard, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Dashboard), args.Error(1)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, id string, in service.ProfileInput) (*model.User, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) PictureUploadURL(ctx context.Context, id, contentType string) (*storage.PresignedUpload, error) {
	args := m.Called(ctx, id, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.PresignedUpload), args.Error(1)
}

func (m *MockUserService) ConfirmPicture(ctx context.Context, id, key string) (*model.User, error) {
	args := m.Called(ctx, id, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}
