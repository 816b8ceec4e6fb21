package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gamecatalog/internal/model"
)

// ListingRepository defines persistence operations of the catalog store.
type ListingRepository interface {
	Create(ctx context.Context, listing *model.Listing) error
	FindByID(ctx context.Context, id string) (*model.Listing, error)
	// FindByIDForUpdate locks the row until the surrounding transaction ends.
	FindByIDForUpdate(ctx context.Context, id string) (*model.Listing, error)
	UpdateFields(ctx context.Context, listing *model.Listing) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]model.Listing, error)
	Latest(ctx context.Context, limit int) ([]model.Listing, error)
	ListByOwner(ctx context.Context, ownerID string) ([]model.Listing, error)
	ListLikedBy(ctx context.Context, userID string) ([]model.Listing, error)

	// AddInteractor is a set-add; it reports whether the membership is new.
	AddInteractor(ctx context.Context, listingID, userID string) (bool, error)
	Interactors(ctx context.Context, listingID string) ([]string, error)
	InteractorNames(ctx context.Context, listingID string) ([]string, error)

	IncrementViews(ctx context.Context, id string) error
	IncrementPlayed(ctx context.Context, id string) error

	TopPlayed(ctx context.Context, limit int) ([]model.Listing, error)
	MostViewed(ctx context.Context, limit int) ([]model.Listing, error)
	MostLiked(ctx context.Context, limit int) ([]model.RankedListing, error)

	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo ListingRepository) error) error
}

type listingRepository struct {
	db *gorm.DB
}

// NewListingRepository creates a new listing repository.
func NewListingRepository(db *gorm.DB) ListingRepository {
	return &listingRepository{db: db}
}

func (r *listingRepository) Create(ctx context.Context, listing *model.Listing) error {
	return r.db.WithContext(ctx).Create(listing).Error
}

func (r *listingRepository) FindByID(ctx context.Context, id string) (*model.Listing, error) {
	return r.find(ctx, r.db.WithContext(ctx), id)
}

func (r *listingRepository) FindByIDForUpdate(ctx context.Context, id string) (*model.Listing, error) {
	return r.find(ctx, r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *listingRepository) find(ctx context.Context, q *gorm.DB, id string) (*model.Listing, error) {
	var listing model.Listing
	if err := q.Where("id = ?", id).First(&listing).Error; err != nil {
		return nil, err
	}
	likes, err := r.Interactors(ctx, id)
	if err != nil {
		return nil, err
	}
	listing.Likes = likes
	return &listing, nil
}

// UpdateFields writes the descriptive columns only.
func (r *listingRepository) UpdateFields(ctx context.Context, listing *model.Listing) error {
	res := r.db.WithContext(ctx).Model(&model.Listing{}).
		Where("id = ?", listing.ID).
		Updates(map[string]any{
			"name":         listing.Name,
			"manufacturer": listing.Manufacturer,
			"genre":        listing.Genre,
			"image_url":    listing.ImageURL,
			"iframe_url":   listing.IframeURL,
			"description":  listing.Description,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *listingRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Listing{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *listingRepository) List(ctx context.Context) ([]model.Listing, error) {
	return r.findMany(ctx, r.db.WithContext(ctx).Order("created_at DESC"))
}

func (r *listingRepository) Latest(ctx context.Context, limit int) ([]model.Listing, error) {
	return r.findMany(ctx, r.db.WithContext(ctx).Order("created_at DESC").Limit(limit))
}

func (r *listingRepository) ListByOwner(ctx context.Context, ownerID string) ([]model.Listing, error) {
	return r.findMany(ctx, r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("created_at DESC"))
}

func (r *listingRepository) ListLikedBy(ctx context.Context, userID string) ([]model.Listing, error) {
	return r.findMany(ctx, r.db.WithContext(ctx).
		Joins("JOIN listing_likes ON listing_likes.listing_id = listings.id").
		Where("listing_likes.user_id = ?", userID).
		Order("listing_likes.created_at DESC"))
}

// AddInteractor inserts into listing_likes with ON DUPLICATE KEY so a repeat
// is a no-op. A missing listing fails on the foreign key.
func (r *listingRepository) AddInteractor(ctx context.Context, listingID, userID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.ListingLike{ListingID: listingID, UserID: userID})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *listingRepository) Interactors(ctx context.Context, listingID string) ([]string, error) {
	likes := []string{}
	if err := r.db.WithContext(ctx).Model(&model.ListingLike{}).
		Where("listing_id = ?", listingID).
		Order("created_at ASC").
		Pluck("user_id", &likes).Error; err != nil {
		return nil, err
	}
	return likes, nil
}

// InteractorNames returns the first names of the interactors in the order
// they interacted.
func (r *listingRepository) InteractorNames(ctx context.Context, listingID string) ([]string, error) {
	names := []string{}
	if err := r.db.WithContext(ctx).Model(&model.ListingLike{}).
		Joins("JOIN users ON users.id = listing_likes.user_id").
		Where("listing_likes.listing_id = ?", listingID).
		Order("listing_likes.created_at ASC").
		Pluck("users.first_name", &names).Error; err != nil {
		return nil, err
	}
	return names, nil
}

func (r *listingRepository) IncrementViews(ctx context.Context, id string) error {
	return r.increment(ctx, id, "views")
}

func (r *listingRepository) IncrementPlayed(ctx context.Context, id string) error {
	return r.increment(ctx, id, "played")
}

func (r *listingRepository) increment(ctx context.Context, id, column string) error {
	res := r.db.WithContext(ctx).Model(&model.Listing{}).
		Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + ?", 1))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *listingRepository) TopPlayed(ctx context.Context, limit int) ([]model.Listing, error) {
	return r.findMany(ctx, r.db.WithContext(ctx).Order("played DESC").Order("created_at ASC").Limit(limit))
}

func (r *listingRepository) MostViewed(ctx context.Context, limit int) ([]model.Listing, error) {
	return r.findMany(ctx, r.db.WithContext(ctx).Order("views DESC").Order("created_at ASC").Limit(limit))
}

// MostLiked ranks by the live size of each interactor set.
func (r *listingRepository) MostLiked(ctx context.Context, limit int) ([]model.RankedListing, error) {
	var ranked []model.RankedListing
	if err := r.db.WithContext(ctx).Model(&model.Listing{}).
		Select("listings.*, COUNT(listing_likes.user_id) AS like_count").
		Joins("LEFT JOIN listing_likes ON listing_likes.listing_id = listings.id").
		Group("listings.id").
		Order("like_count DESC").
		Order("listings.created_at ASC").
		Limit(limit).
		Scan(&ranked).Error; err != nil {
		return nil, err
	}

	listings := make([]model.Listing, len(ranked))
	for i := range ranked {
		listings[i] = ranked[i].Listing
	}
	if err := r.attachLikes(ctx, listings); err != nil {
		return nil, err
	}
	for i := range ranked {
		ranked[i].Likes = listings[i].Likes
	}
	return ranked, nil
}

func (r *listingRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo ListingRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &listingRepository{db: tx}
		return fn(ctx, txRepo)
	})
}

func (r *listingRepository) findMany(ctx context.Context, q *gorm.DB) ([]model.Listing, error) {
	listings := []model.Listing{}
	if err := q.Select("listings.*").Find(&listings).Error; err != nil {
		return nil, err
	}
	if err := r.attachLikes(ctx, listings); err != nil {
		return nil, err
	}
	return listings, nil
}

// attachLikes loads the interactor sets of all listings with one query.
func (r *listingRepository) attachLikes(ctx context.Context, listings []model.Listing) error {
	if len(listings) == 0 {
		return nil
	}
	ids := make([]string, len(listings))
	for i := range listings {
		ids[i] = listings[i].ID
		listings[i].Likes = []string{}
	}

	var likes []model.ListingLike
	if err := r.db.WithContext(ctx).
		Where("listing_id IN ?", ids).
		Order("created_at ASC").
		Find(&likes).Error; err != nil {
		return err
	}

	index := make(map[string]int, len(listings))
	for i := range listings {
		index[listings[i].ID] = i
	}
	for _, like := range likes {
		if i, ok := index[like.ListingID]; ok {
			listings[i].Likes = append(listings[i].Likes, like.UserID)
		}
	}
	return nil
}
