package store

import (
	"context"
	"errors"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"

	"github.com/artyatra/artyatra/models"
)

func newPostgresTest(t *testing.T) (*PostgresStorage, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return &PostgresStorage{DB: db}, mock
}

func artStyleRows(t *testing.T) *sqlmock.Rows {
	t.Helper()
	return sqlmock.NewRows([]string{
		"id", "name", "origin_lat", "origin_lng", "description",
		"fun_facts", "image_url", "cultural_significance", "state", "created_at",
	}).AddRow("warli-art-001", "Warli Art", 19.7515, 73.7139, "Tribal art",
		[]byte(`["fact one","fact two"]`), nil, "Ritual art", "Maharashtra", time.Now())
}

func TestPostgresGetArtStyleByID(t *testing.T) {
	s, mock := newPostgresTest(t)

	mock.ExpectQuery(`SELECT .+ FROM art_styles WHERE id=\$1`).
		WithArgs("warli-art-001").
		WillReturnRows(artStyleRows(t))

	style, err := s.GetArtStyleByID(context.Background(), "warli-art-001")
	if err != nil {
		t.Fatalf("GetArtStyleByID: %v", err)
	}
	if style.Name != "Warli Art" || len(style.FunFacts) != 2 {
		t.Fatalf("unexpected style: %+v", style)
	}
	if style.OriginLocation.Lat != 19.7515 {
		t.Fatalf("coordinates not scanned: %+v", style.OriginLocation)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPostgresGetArtStyleByIDNotFound(t *testing.T) {
	s, mock := newPostgresTest(t)

	mock.ExpectQuery(`SELECT .+ FROM art_styles WHERE id=\$1`).
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := s.GetArtStyleByID(context.Background(), "nope")
	if !errors.Is(err, models.ErrArtStyleNotFound) {
		t.Fatalf("expected ErrArtStyleNotFound, got %v", err)
	}
}

func TestPostgresCreateClassificationClamps(t *testing.T) {
	s, mock := newPostgresTest(t)

	mock.ExpectQuery(`INSERT INTO classifications`).
		WithArgs("warli-art-001", "aW1n", float64(100)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).
			AddRow("rec-1", time.Now()))

	rec, err := s.CreateClassification(context.Background(), "warli-art-001", "aW1n", 150)
	if err != nil {
		t.Fatalf("CreateClassification: %v", err)
	}
	if rec.Confidence != 100 || rec.ID != "rec-1" {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPostgresCreateUserDuplicate(t *testing.T) {
	s, mock := newPostgresTest(t)

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("asha", "hash").
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := s.CreateUser(context.Background(), "asha", "hash")
	if !errors.Is(err, models.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestPostgresGetUserByUsernameNotFound(t *testing.T) {
	s, mock := newPostgresTest(t)

	mock.ExpectQuery(`SELECT id, username, password FROM users WHERE username=\$1`).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password"}))

	_, err := s.GetUserByUsername(context.Background(), "ghost")
	if !errors.Is(err, models.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
