package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gamecatalog/internal/auth"
	"gamecatalog/internal/cache"
	"gamecatalog/internal/config"
	"gamecatalog/internal/db"
	apperrors "gamecatalog/internal/errors"
	"gamecatalog/internal/logger"
	"gamecatalog/internal/model"
	"gamecatalog/internal/repository"
	"gamecatalog/internal/service"
)

//go:embed seed.json
var fixture []byte

type seedUser struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password"`
}

type seedListing struct {
	Owner        string   `json:"owner"`
	Name         string   `json:"name"`
	Manufacturer string   `json:"manufacturer"`
	Genre        string   `json:"genre"`
	ImageURL     string   `json:"image_url"`
	IframeURL    string   `json:"iframe_url"`
	Description  string   `json:"description"`
	LikedBy      []string `json:"liked_by"`
	Plays        int      `json:"plays"`
}

type seedData struct {
	Users    []seedUser    `json:"users"`
	Listings []seedListing `json:"listings"`
}

func main() {
	if err := run(); err != nil {
		slog.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(cfg.App.Name+"-seed", logger.ParseLevel(cfg.App.LogLevel))

	var data seedData
	if err := json.Unmarshal(fixture, &data); err != nil {
		return fmt.Errorf("parse fixture: %w", err)
	}

	gormDB, err := db.NewMySQL(cfg.MySQL.DSN)
	if err != nil {
		return fmt.Errorf("database init: %w", err)
	}
	defer db.Close(gormDB)
	if err := db.Migrate(gormDB); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	cacheClient := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	defer cacheClient.Close()

	userRepo := repository.NewUserRepository(gormDB)
	listingRepo := repository.NewListingRepository(gormDB)
	authService := service.NewAuthService(
		userRepo,
		auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		auth.NewTokenStore(cacheClient),
		service.AuthSettings{
			BcryptCost:           cfg.Auth.BcryptCost,
			LoginHistory:         cfg.Auth.LoginHistory,
			SuspiciousDistanceKm: cfg.Geo.SuspiciousDistanceKm,
		},
		log, nil,
	)
	listingService := service.NewListingService(listingRepo, userRepo, log, nil)

	ctx := context.Background()
	users, created, err := seedUsers(ctx, authService, userRepo, data.Users)
	if err != nil {
		return err
	}
	log.Info("users seeded", "created", created, "existing", len(users)-created)

	listings, skipped, err := seedListings(ctx, listingService, listingRepo, users, data.Listings)
	if err != nil {
		return err
	}
	log.Info("seed completed", "listings_created", listings, "listings_skipped", skipped)
	return nil
}

// seedUsers registers every fixture user. Users that already exist are
// looked up instead.
func seedUsers(ctx context.Context, authService service.AuthService, repo repository.UserRepository, in []seedUser) (map[string]*model.User, int, error) {
	users := make(map[string]*model.User, len(in))
	created := 0
	for _, u := range in {
		user, err := authService.Register(ctx, service.RegisterInput{
			Email:     u.Email,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Password:  u.Password,
		})
		switch {
		case err == nil:
			created++
		case errors.Is(err, apperrors.ErrDuplicateIdentity):
			user, err = repo.FindByEmail(ctx, service.NormalizeEmail(u.Email))
			if err != nil {
				return nil, created, fmt.Errorf("load user %s: %w", u.Email, err)
			}
		default:
			return nil, created, fmt.Errorf("register %s: %w", u.Email, err)
		}
		users[u.Email] = user
	}
	return users, created, nil
}

// seedListings creates fixture listings with their likes and plays. A listing
// whose owner already has one with the same name is skipped.
func seedListings(ctx context.Context, svc service.ListingService, repo repository.ListingRepository, users map[string]*model.User, in []seedListing) (created, skipped int, err error) {
	for _, l := range in {
		owner, ok := users[l.Owner]
		if !ok {
			return created, skipped, fmt.Errorf("listing %q: unknown owner %s", l.Name, l.Owner)
		}
		owned, err := repo.ListByOwner(ctx, owner.ID)
		if err != nil {
			return created, skipped, fmt.Errorf("list listings of %s: %w", l.Owner, err)
		}
		if containsName(owned, l.Name) {
			skipped++
			continue
		}

		listing, err := svc.Create(ctx, owner.ID, model.ListingFields{
			Name:         l.Name,
			Manufacturer: l.Manufacturer,
			Genre:        l.Genre,
			ImageURL:     l.ImageURL,
			IframeURL:    l.IframeURL,
			Description:  l.Description,
		})
		if err != nil {
			return created, skipped, fmt.Errorf("create listing %q: %w", l.Name, err)
		}

		for _, email := range l.LikedBy {
			liker, ok := users[email]
			if !ok {
				return created, skipped, fmt.Errorf("listing %q: unknown liker %s", l.Name, email)
			}
			if _, err := svc.Interact(ctx, listing.ID, liker.ID, service.InteractionLike); err != nil {
				return created, skipped, fmt.Errorf("like listing %q: %w", l.Name, err)
			}
		}
		for i := 0; i < l.Plays; i++ {
			if _, err := svc.Play(ctx, listing.ID, owner.ID); err != nil {
				return created, skipped, fmt.Errorf("play listing %q: %w", l.Name, err)
			}
		}
		created++
	}
	return created, skipped, nil
}

func containsName(listings []model.Listing, name string) bool {
	for _, l := range listings {
		if l.Name == name {
			return true
		}
	}
	return false
}
