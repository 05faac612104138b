package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/artyatra/artyatra/models"
)

// MemoryStorage keeps everything in process memory. It is the default driver:
// state resets on restart, which is all the product needs today. Unlike the
// naive global-list approach it is safe for concurrent requests.
type MemoryStorage struct {
	mu              sync.RWMutex
	artStyles       []models.ArtStyle
	classifications []models.Classification
	users           map[string]models.User // keyed by username
}

// NewMemoryStorage returns a storage seeded with the static art-style catalog.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		artStyles: SeedArtStyles(),
		users:     make(map[string]models.User),
	}
}

func (s *MemoryStorage) GetAllArtStyles(ctx context.Context) ([]models.ArtStyle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.ArtStyle, len(s.artStyles))
	copy(out, s.artStyles)
	return out, nil
}

func (s *MemoryStorage) GetArtStyleByID(ctx context.Context, id string) (models.ArtStyle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, style := range s.artStyles {
		if style.ID == id {
			return style, nil
		}
	}
	return models.ArtStyle{}, models.ErrArtStyleNotFound
}

func (s *MemoryStorage) GetArtStyleByName(ctx context.Context, name string) (models.ArtStyle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, style := range s.artStyles {
		if style.Name == name {
			return style, nil
		}
	}
	return models.ArtStyle{}, models.ErrArtStyleNotFound
}

func (s *MemoryStorage) CreateArtStyle(ctx context.Context, style models.ArtStyle) (models.ArtStyle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if style.ID == "" {
		style.ID = uuid.NewString()
	}
	if style.CreatedAt.IsZero() {
		style.CreatedAt = time.Now()
	}
	s.artStyles = append(s.artStyles, style)
	return style, nil
}

func (s *MemoryStorage) CreateClassification(ctx context.Context, artStyleID, imageData string, confidence float64) (models.Classification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := models.Classification{
		ID:         uuid.NewString(),
		ArtStyleID: artStyleID,
		ImageData:  imageData,
		Confidence: models.ClampConfidence(confidence),
		CreatedAt:  time.Now(),
	}
	s.classifications = append(s.classifications, rec)
	return rec, nil
}

func (s *MemoryStorage) GetClassificationsByArtStyle(ctx context.Context, artStyleID string) ([]models.Classification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Classification, 0)
	for _, rec := range s.classifications {
		if rec.ArtStyleID == artStyleID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (s *MemoryStorage) CreateUser(ctx context.Context, username, passwordHash string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[username]; exists {
		return models.User{}, models.ErrUserExists
	}
	user := models.User{ID: uuid.NewString(), Username: username, Password: passwordHash}
	s.users[username] = user
	return user, nil
}

func (s *MemoryStorage) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, exists := s.users[username]
	if !exists {
		return models.User{}, models.ErrUserNotFound
	}
	return user, nil
}

func (s *MemoryStorage) Close() error { return nil }
