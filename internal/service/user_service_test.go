package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "gamecatalog/internal/errors"
	"gamecatalog/internal/logger"
	"gamecatalog/internal/model"
	"gamecatalog/internal/storage"
)

func newTestUserService(users *MockUserRepository, listings *MockListingRepository, pictures *MockPictureStorage) UserService {
	// nil cache behaves like a permanent miss
	return NewUserService(users, listings, pictures, nil, 5, logger.Discard())
}

func TestUserService_GetProfile(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name: "found",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, "u-1").Return(&model.User{ID: "u-1", FirstName: "Ann"}, nil)
			},
		},
		{
			name: "missing",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, "u-1").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserRepository)
			tt.setupMock(users)
			service := newTestUserService(users, new(MockListingRepository), new(MockPictureStorage))

			user, err := service.GetProfile(context.Background(), "u-1")

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "Ann", user.FirstName)
			}
			users.AssertExpectations(t)
		})
	}
}

func TestUserService_Account(t *testing.T) {
	users := new(MockUserRepository)
	users.On("FindByID", mock.Anything, "u-1").Return(&model.User{ID: "u-1"}, nil)
	users.On("RecentLogins", mock.Anything, "u-1", 5).Return([]model.LoginEvent{{ID: 2}, {ID: 1}}, nil)
	service := newTestUserService(users, new(MockListingRepository), new(MockPictureStorage))

	account, err := service.Account(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Len(t, account.RecentLogins, 2)
	assert.Equal(t, uint64(2), account.RecentLogins[0].ID)
}

func TestUserService_Dashboard(t *testing.T) {
	listings := new(MockListingRepository)
	listings.On("ListByOwner", mock.Anything, "u-1").Return([]model.Listing{{ID: "l-1"}}, nil)
	listings.On("ListLikedBy", mock.Anything, "u-1").Return([]model.Listing{{ID: "l-2"}, {ID: "l-3"}}, nil)
	service := newTestUserService(new(MockUserRepository), listings, new(MockPictureStorage))

	dash, err := service.Dashboard(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Len(t, dash.Owned, 1)
	assert.Len(t, dash.Liked, 2)
}

func TestUserService_UpdateProfile(t *testing.T) {
	users := new(MockUserRepository)
	users.On("UpdateProfile", mock.Anything, "u-1", "Anna", "Lee").Return(nil)
	users.On("FindByID", mock.Anything, "u-1").Return(&model.User{ID: "u-1", FirstName: "Anna", LastName: "Lee"}, nil)
	service := newTestUserService(users, new(MockListingRepository), new(MockPictureStorage))

	user, err := service.UpdateProfile(context.Background(), "u-1", ProfileInput{FirstName: " Anna ", LastName: "Lee"})
	require.NoError(t, err)
	assert.Equal(t, "Anna", user.FirstName)
	users.AssertExpectations(t)
}

func TestUserService_UpdateProfile_RejectsBlankNames(t *testing.T) {
	users := new(MockUserRepository)
	service := newTestUserService(users, new(MockListingRepository), new(MockPictureStorage))

	user, err := service.UpdateProfile(context.Background(), "u-1", ProfileInput{FirstName: "      ", LastName: "Lee"})

	assert.Nil(t, user)
	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []apperrors.FieldError{{Field: "first_name", Message: "is required"}}, verr.Fields)
	users.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUserService_PictureUploadURL_LeavesProfileUntouched(t *testing.T) {
	upload := &storage.PresignedUpload{Key: "pictures/u-1/new", URL: "http://s3/put", PublicURL: "http://cdn/pictures/u-1/new"}
	users := new(MockUserRepository)
	pictures := new(MockPictureStorage)
	users.On("FindByID", mock.Anything, "u-1").Return(&model.User{ID: "u-1", PictureKey: "pictures/u-1/old"}, nil)
	pictures.On("PresignUpload", mock.Anything, "u-1", "image/png").Return(upload, nil)
	service := newTestUserService(users, new(MockListingRepository), pictures)

	got, err := service.PictureUploadURL(context.Background(), "u-1", "image/png")
	require.NoError(t, err)
	assert.Equal(t, upload, got)

	users.AssertNotCalled(t, "SetPicture", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	pictures.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestUserService_ConfirmPicture(t *testing.T) {
	const newKey = "pictures/u-1/new"

	tests := []struct {
		name       string
		key        string
		oldKey     string
		exists     bool
		existsErr  error
		deleteErr  error
		wantField  string
		wantInfra  bool
		wantSet    bool
		wantDelete bool
	}{
		{name: "first picture", key: newKey, exists: true, wantSet: true},
		{name: "replaces previous picture", key: newKey, oldKey: "pictures/u-1/old", exists: true, wantSet: true, wantDelete: true},
		{name: "failed cleanup is not an error", key: newKey, oldKey: "pictures/u-1/old", exists: true, deleteErr: errors.New("access denied"), wantSet: true, wantDelete: true},
		{name: "upload never happened", key: newKey, oldKey: "pictures/u-1/old", wantField: "key"},
		{name: "key of another user", key: "pictures/u-2/new", wantField: "key"},
		{name: "bare prefix", key: "pictures/u-1/", wantField: "key"},
		{name: "storage unavailable", key: newKey, existsErr: errors.New("dial tcp: i/o timeout"), wantInfra: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserRepository)
			pictures := new(MockPictureStorage)
			users.On("FindByID", mock.Anything, "u-1").Return(&model.User{ID: "u-1", PictureKey: tt.oldKey}, nil).Maybe()
			pictures.On("Exists", mock.Anything, tt.key).Return(tt.exists, tt.existsErr).Maybe()
			if tt.wantSet {
				users.On("SetPicture", mock.Anything, "u-1", "http://cdn/"+tt.key, tt.key).Return(nil)
			}
			if tt.wantDelete {
				pictures.On("Delete", mock.Anything, tt.oldKey).Return(tt.deleteErr)
			}
			service := newTestUserService(users, new(MockListingRepository), pictures)

			user, err := service.ConfirmPicture(context.Background(), "u-1", tt.key)

			switch {
			case tt.wantField != "":
				var verr *apperrors.ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, tt.wantField, verr.Fields[0].Field)
				assert.Nil(t, user)
			case tt.wantInfra:
				assert.Error(t, err)
				assert.Nil(t, user)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.key, user.PictureKey)
				assert.Equal(t, "http://cdn/"+tt.key, user.PictureURL)
			}

			users.AssertExpectations(t)
			pictures.AssertExpectations(t)
			if !tt.wantSet {
				users.AssertNotCalled(t, "SetPicture", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			}
			if !tt.wantDelete {
				pictures.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
			}
		})
	}
}
