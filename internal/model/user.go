package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultPictureURL is shown for users that never uploaded a picture.
const DefaultPictureURL = "https://spng.pngfind.com/pngs/s/16-168087_wikipedia-user-icon-bynightsight-user-image-icon-png.png"

// User represents a registered catalog user.
type User struct {
	ID           string    `json:"id" gorm:"type:char(36);primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	FirstName    string    `json:"first_name" gorm:"size:100;not null"`
	LastName     string    `json:"last_name" gorm:"size:100;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	PictureURL   string    `json:"picture_url" gorm:"size:512"`
	PictureKey   string    `json:"-" gorm:"size:255"`
	LastPlayedID *string   `json:"last_played_id,omitempty" gorm:"type:char(36)"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID and default picture before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.PictureURL == "" {
		u.PictureURL = DefaultPictureURL
	}
	return nil
}

// LoginEvent is one entry of a user's bounded login history.
type LoginEvent struct {
	ID        uint64    `json:"-" gorm:"primaryKey;autoIncrement"`
	UserID    string    `json:"-" gorm:"type:char(36);not null;index"`
	Latitude  *float64  `json:"latitude,omitempty"`
	Longitude *float64  `json:"longitude,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// HasLocation reports whether both coordinates were recorded.
func (e LoginEvent) HasLocation() bool {
	return e.Latitude != nil && e.Longitude != nil
}
