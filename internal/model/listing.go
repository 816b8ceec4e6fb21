package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Listing is a game entry of the catalog. OwnerID is fixed at creation.
type Listing struct {
	ID           string    `json:"id" gorm:"type:char(36);primaryKey"`
	OwnerID      string    `json:"owner_id" gorm:"type:char(36);not null;index"`
	Name         string    `json:"name" gorm:"size:255;not null"`
	Manufacturer string    `json:"manufacturer" gorm:"size:255;not null"`
	Genre        string    `json:"genre" gorm:"size:100;not null;index"`
	ImageURL     string    `json:"image_url" gorm:"size:1024;not null"`
	IframeURL    string    `json:"iframe_url" gorm:"size:1024;not null"`
	Description  string    `json:"description" gorm:"size:500;not null"`
	Played       uint64    `json:"played" gorm:"not null;default:0"`
	Views        uint64    `json:"views" gorm:"not null;default:0"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Likes is the interactor set, loaded from listing_likes.
	Likes []string `json:"likes" gorm:"-"`
}

// BeforeCreate sets UUID before creating the record.
func (l *Listing) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

// HasInteractor reports whether userID is in the interactor set.
func (l *Listing) HasInteractor(userID string) bool {
	for _, id := range l.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// Apply replaces the descriptive fields. Owner, counters and likes are untouched.
func (l *Listing) Apply(f ListingFields) {
	l.Name = f.Name
	l.Manufacturer = f.Manufacturer
	l.Genre = f.Genre
	l.ImageURL = f.ImageURL
	l.IframeURL = f.IframeURL
	l.Description = f.Description
}

// ListingFields are the mutable descriptive fields of a listing.
type ListingFields struct {
	Name         string
	Manufacturer string
	Genre        string
	ImageURL     string
	IframeURL    string
	Description  string
}

// ListingLike is one membership of a listing's interactor set.
type ListingLike struct {
	ListingID string `gorm:"type:char(36);primaryKey"`
	UserID    string `gorm:"type:char(36);primaryKey"`
	CreatedAt time.Time
}

// TableName pins the join table name.
func (ListingLike) TableName() string {
	return "listing_likes"
}

// RankedListing is a listing together with its computed like count.
type RankedListing struct {
	Listing
	LikeCount int64 `json:"like_count"`
}
