package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/artyatra/artyatra/models"
)

// PostgresStorage persists the catalog, classifications and users in
// Postgres. Schema lives under migrations/ and is applied with the migrate
// command.
type PostgresStorage struct {
	DB *sql.DB
}

// NewPostgres connects to Postgres and seeds any catalog entries that are not
// present yet. Seeding is idempotent so restarts are safe.
func NewPostgres(ctx context.Context, dsn string) (*PostgresStorage, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	st := &PostgresStorage{DB: db}
	if err := st.seedCatalog(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return st, nil
}

func (s *PostgresStorage) seedCatalog(ctx context.Context) error {
	for _, style := range SeedArtStyles() {
		facts, err := json.Marshal(style.FunFacts)
		if err != nil {
			return err
		}
		_, err = s.DB.ExecContext(ctx, `
			INSERT INTO art_styles (id, name, origin_lat, origin_lng, description, fun_facts, image_url, cultural_significance, state)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
			ON CONFLICT (id) DO NOTHING`,
			style.ID, style.Name, style.OriginLocation.Lat, style.OriginLocation.Lng,
			style.Description, facts, style.ImageURL, style.CulturalSignificance, style.State)
		if err != nil {
			return fmt.Errorf("seed art style %q: %w", style.Name, err)
		}
	}
	return nil
}

const artStyleColumns = `id, name, origin_lat, origin_lng, description, fun_facts, image_url, cultural_significance, state, created_at`

func scanArtStyle(row interface{ Scan(...interface{}) error }) (models.ArtStyle, error) {
	var style models.ArtStyle
	var facts []byte
	err := row.Scan(&style.ID, &style.Name, &style.OriginLocation.Lat, &style.OriginLocation.Lng,
		&style.Description, &facts, &style.ImageURL, &style.CulturalSignificance, &style.State, &style.CreatedAt)
	if err != nil {
		return models.ArtStyle{}, err
	}
	if err := json.Unmarshal(facts, &style.FunFacts); err != nil {
		return models.ArtStyle{}, fmt.Errorf("decode fun_facts: %w", err)
	}
	return style, nil
}

func (s *PostgresStorage) GetAllArtStyles(ctx context.Context) ([]models.ArtStyle, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT `+artStyleColumns+` FROM art_styles ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var styles []models.ArtStyle
	for rows.Next() {
		style, err := scanArtStyle(rows)
		if err != nil {
			return nil, err
		}
		styles = append(styles, style)
	}
	return styles, rows.Err()
}

func (s *PostgresStorage) GetArtStyleByID(ctx context.Context, id string) (models.ArtStyle, error) {
	row := s.DB.QueryRowContext(ctx, `SELECT `+artStyleColumns+` FROM art_styles WHERE id=$1`, id)
	style, err := scanArtStyle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ArtStyle{}, models.ErrArtStyleNotFound
	}
	return style, err
}

func (s *PostgresStorage) GetArtStyleByName(ctx context.Context, name string) (models.ArtStyle, error) {
	row := s.DB.QueryRowContext(ctx, `SELECT `+artStyleColumns+` FROM art_styles WHERE name=$1`, name)
	style, err := scanArtStyle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ArtStyle{}, models.ErrArtStyleNotFound
	}
	return style, err
}

func (s *PostgresStorage) CreateArtStyle(ctx context.Context, style models.ArtStyle) (models.ArtStyle, error) {
	facts, err := json.Marshal(style.FunFacts)
	if err != nil {
		return models.ArtStyle{}, err
	}
	if style.ID == "" {
		style.ID = uuid.NewString()
	}
	err = s.DB.QueryRowContext(ctx, `
		INSERT INTO art_styles (id, name, origin_lat, origin_lng, description, fun_facts, image_url, cultural_significance, state)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING created_at`,
		style.ID, style.Name, style.OriginLocation.Lat, style.OriginLocation.Lng,
		style.Description, facts, style.ImageURL, style.CulturalSignificance, style.State).
		Scan(&style.CreatedAt)
	if err != nil {
		return models.ArtStyle{}, err
	}
	return style, nil
}

func (s *PostgresStorage) CreateClassification(ctx context.Context, artStyleID, imageData string, confidence float64) (models.Classification, error) {
	rec := models.Classification{
		ArtStyleID: artStyleID,
		ImageData:  imageData,
		Confidence: models.ClampConfidence(confidence),
	}
	err := s.DB.QueryRowContext(ctx, `
		INSERT INTO classifications (art_style_id, image_data, confidence)
		VALUES ($1,$2,$3)
		RETURNING id, created_at`,
		artStyleID, imageData, rec.Confidence).
		Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		return models.Classification{}, err
	}
	return rec, nil
}

func (s *PostgresStorage) GetClassificationsByArtStyle(ctx context.Context, artStyleID string) ([]models.Classification, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, art_style_id, image_data, confidence, created_at
		FROM classifications WHERE art_style_id=$1 ORDER BY created_at`, artStyleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]models.Classification, 0)
	for rows.Next() {
		var rec models.Classification
		if err := rows.Scan(&rec.ID, &rec.ArtStyleID, &rec.ImageData, &rec.Confidence, &rec.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *PostgresStorage) CreateUser(ctx context.Context, username, passwordHash string) (models.User, error) {
	var user models.User
	user.Username = username
	user.Password = passwordHash
	err := s.DB.QueryRowContext(ctx, `
		INSERT INTO users (username, password) VALUES ($1,$2) RETURNING id`,
		username, passwordHash).Scan(&user.ID)
	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return models.User{}, models.ErrUserExists
		}
		return models.User{}, err
	}
	return user, nil
}

func (s *PostgresStorage) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	var user models.User
	err := s.DB.QueryRowContext(ctx, `SELECT id, username, password FROM users WHERE username=$1`, username).
		Scan(&user.ID, &user.Username, &user.Password)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, models.ErrUserNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (s *PostgresStorage) Close() error { return s.DB.Close() }

var _ Storage = (*PostgresStorage)(nil)
var _ Storage = (*MemoryStorage)(nil)
