package store

import (
	"context"

	"github.com/artyatra/artyatra/models"
)

// Storage is the injected repository behind the HTTP layer. The catalog is
// seeded once at startup; classifications and users accumulate for the
// process lifetime (memory driver) or durably (postgres driver).
type Storage interface {
	GetAllArtStyles(ctx context.Context) ([]models.ArtStyle, error)
	GetArtStyleByID(ctx context.Context, id string) (models.ArtStyle, error)
	GetArtStyleByName(ctx context.Context, name string) (models.ArtStyle, error)
	CreateArtStyle(ctx context.Context, style models.ArtStyle) (models.ArtStyle, error)

	CreateClassification(ctx context.Context, artStyleID, imageData string, confidence float64) (models.Classification, error)
	GetClassificationsByArtStyle(ctx context.Context, artStyleID string) ([]models.Classification, error)

	CreateUser(ctx context.Context, username, passwordHash string) (models.User, error)
	GetUserByUsername(ctx context.Context, username string) (models.User, error)

	Close() error
}
