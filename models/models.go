package models

import (
	"errors"
	"time"
)

var (
	ErrArtStyleNotFound = errors.New("art style not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrUserExists       = errors.New("user already exists")
)

// LatLng is a geographic coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ArtStyle is one catalog entry describing a traditional Indian art style and
// its geographic origin. Entries are seeded once at startup and never change.
type ArtStyle struct {
	ID                   string    `json:"id"`
	Name                 string    `json:"name"`
	OriginLocation       LatLng    `json:"originLocation"`
	Description          string    `json:"description"`
	FunFacts             []string  `json:"funFacts"`
	ImageURL             *string   `json:"imageUrl"`
	CulturalSignificance string    `json:"culturalSignificance"`
	State                string    `json:"state"`
	CreatedAt            time.Time `json:"createdAt"`
}

// Classification is the stored result of one AI-assisted image classification.
// It always references an existing ArtStyle.
type Classification struct {
	ID         string    `json:"id"`
	ArtStyleID string    `json:"artStyleId"`
	ImageData  string    `json:"imageData"` // base64 encoded
	Confidence float64   `json:"confidence"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ArtClassification is the adapter-level result of a classification call.
type ArtClassification struct {
	ArtStyleName string  `json:"artStyleName"`
	Confidence   float64 `json:"confidence"`
	Reasoning    string  `json:"reasoning"`
}

// ClampConfidence forces a confidence value into [0,100]. Out-of-range values
// from the upstream model are clamped, not rejected.
func ClampConfidence(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Category is a static regional art/craft category used by the search pages.
type Category struct {
	Name        string   `json:"name"`
	OriginName  string   `json:"originName"`
	Lat         float64  `json:"lat"`
	Lng         float64  `json:"lng"`
	Description string   `json:"description"`
	FunFacts    []string `json:"funFacts"`
}

// User is a locally registered account. Password holds a bcrypt hash.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"`
}
