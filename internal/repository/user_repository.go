package repository

import (
	"context"

	"gorm.io/gorm"

	"gamecatalog/internal/model"
)

// UserRepository defines persistence operations of the credential store.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateProfile(ctx context.Context, id, firstName, lastName string) error
	SetPicture(ctx context.Context, id, url, key string) error
	SetLastPlayed(ctx context.Context, userID, listingID string) error
	// AppendLogin stores event and keeps only the newest keep events of the user.
	AppendLogin(ctx context.Context, event *model.LoginEvent, keep int) error
	RecentLogins(ctx context.Context, userID string, limit int) ([]model.LoginEvent, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create relies on the unique email index; a duplicate surfaces as gorm.ErrDuplicatedKey.
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, id, firstName, lastName string) error {
	return r.updateColumns(ctx, id, map[string]any{
		"first_name": firstName,
		"last_name":  lastName,
	})
}

func (r *userRepository) SetPicture(ctx context.Context, id, url, key string) error {
	return r.updateColumns(ctx, id, map[string]any{
		"picture_url": url,
		"picture_key": key,
	})
}

func (r *userRepository) SetLastPlayed(ctx context.Context, userID, listingID string) error {
	return r.updateColumns(ctx, userID, map[string]any{"last_played_id": listingID})
}

func (r *userRepository) updateColumns(ctx context.Context, id string, cols map[string]any) error {
	res := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(cols)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *userRepository) AppendLogin(ctx context.Context, event *model.LoginEvent, keep int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(event).Error; err != nil {
			return err
		}

		var newest []uint64
		if err := tx.Model(&model.LoginEvent{}).
			Where("user_id = ?", event.UserID).
			Order("id DESC").
			Limit(keep).
			Pluck("id", &newest).Error; err != nil {
			return err
		}

		return tx.Where("user_id = ? AND id NOT IN ?", event.UserID, newest).
			Delete(&model.LoginEvent{}).Error
	})
}

func (r *userRepository) RecentLogins(ctx context.Context, userID string, limit int) ([]model.LoginEvent, error) {
	var events []model.LoginEvent
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id DESC").
		Limit(limit).
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
