package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"

	"cabinrental/internal/config"
	"cabinrental/internal/database"
	"cabinrental/internal/domain"
	"cabinrental/internal/modules/auth"
	"cabinrental/internal/pkg/logger"
	"cabinrental/internal/pkg/utils"
	"cabinrental/internal/repository"
)

type demoCabin struct {
	title     string
	short     string
	price     float64
	guests    int
	bedrooms  int
	featured  bool
	imageURLs []string
}

var demoCabins = []demoCabin{
	{
		title: "Cabaña del Lago", short: "Frente al lago, con muelle propio",
		price: 85000, guests: 4, bedrooms: 2, featured: true,
		imageURLs: []string{"https://images.example.com/lago-1.jpg", "https://images.example.com/lago-2.jpg"},
	},
	{
		title: "Refugio de Montaña", short: "Entre las sierras, con hogar a leña",
		price: 62000, guests: 2, bedrooms: 1,
		imageURLs: []string{"https://images.example.com/refugio-1.jpg"},
	},
	{
		title: "Casa de los Pinos", short: "Para grupos grandes, con pileta",
		price: 140000, guests: 8, bedrooms: 4, featured: true,
		imageURLs: []string{"https://images.example.com/pinos-1.jpg", "https://images.example.com/pinos-2.jpg", "https://images.example.com/pinos-3.jpg"},
	},
	{
		title: "Cabaña El Arroyo", short: "Junto al arroyo, ideal para familias",
		price: 78000, guests: 5, bedrooms: 2,
	},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal(slog.Default(), "config load failed", "error", err)
	}
	log := logger.New(logger.Config{Env: cfg.AppEnv, Level: cfg.LogLevel})
	ctx := context.Background()

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		logger.Fatal(log, "db connect failed", "error", err)
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatal(log, "db migrate failed", "error", err)
	}

	username := strings.TrimSpace(os.Getenv("ADMIN_USERNAME"))
	password := os.Getenv("ADMIN_PASSWORD")
	if username == "" || password == "" {
		logger.Fatal(log, "ADMIN_USERNAME and ADMIN_PASSWORD are required")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		logger.Fatal(log, "hash password failed", "error", err)
	}
	admin := &domain.Admin{Username: username, PasswordHash: hash}
	if err := repository.NewAdminRepository(db).Upsert(ctx, admin); err != nil {
		logger.Fatal(log, "upsert admin failed", "error", err)
	}
	log.Info("admin ready", "username", admin.Username, "id", admin.ID)

	cabins := repository.NewCabinRepository(db)
	blocks := repository.NewBlockRepository(db)

	var first *domain.Cabin
	for _, d := range demoCabins {
		cabin := d.toCabin()
		err := cabins.Create(ctx, cabin)
		if errors.Is(err, repository.ErrDuplicate) {
			log.Info("cabin already seeded", "slug", cabin.Slug)
			continue
		}
		if err != nil {
			logger.Fatal(log, "create cabin failed", "slug", cabin.Slug, "error", err)
		}
		log.Info("cabin created", "id", cabin.ID, "slug", cabin.Slug)
		if first == nil {
			first = cabin
		}
	}

	if first != nil {
		reason := "Mantenimiento de techo"
		block := &domain.MaintenanceBlock{CabinID: first.ID, FromDate: "2026-07-01", ToDate: "2026-07-08", Reason: &reason}
		var overlap *repository.OverlapError
		switch err := blocks.CreateExclusive(ctx, block); {
		case errors.As(err, &overlap):
			log.Info("demo block already present", "cabin_id", first.ID)
		case err != nil:
			logger.Fatal(log, "create block failed", "error", err)
		default:
			log.Info("block created", "id", block.ID, "cabin_id", first.ID)
		}
	}

	log.Info("seed completed")
}

func (d demoCabin) toCabin() *domain.Cabin {
	images := make([]domain.CabinImage, 0, len(d.imageURLs))
	for i, url := range d.imageURLs {
		alt := d.title
		images = append(images, domain.CabinImage{ImageURL: url, AltText: &alt, SortOrder: i})
	}
	return &domain.Cabin{
		Title:            d.title,
		Slug:             utils.Slugify(d.title),
		ShortDescription: d.short,
		Description:      d.short + ". Equipada con cocina completa, ropa de cama y estacionamiento.",
		City:             domain.DefaultCity,
		Province:         domain.DefaultProvince,
		PricePerNight:    d.price,
		MaxGuests:        d.guests,
		Bedrooms:         d.bedrooms,
		Bathrooms:        1,
		IsFeatured:       d.featured,
		IsActive:         true,
		Images:           images,
	}
}
