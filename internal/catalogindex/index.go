// Package catalogindex holds an in-memory bleve index over the static
// catalog so the search page can do free-text lookups instead of exact
// dropdown matches only.
package catalogindex

import (
	"fmt"
	"strings"

	"github.com/blevesearch/bleve"

	"github.com/artyatra/artyatra/models"
)

const (
	KindArtStyle = "artstyle"
	KindCategory = "category"
)

// Doc is what gets indexed per catalog entry.
type Doc struct {
	Kind        string  `json:"kind"`
	Name        string  `json:"name"`
	Origin      string  `json:"origin"`
	Description string  `json:"description"`
	FunFacts    string  `json:"fun_facts"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
}

// Hit is one search result.
type Hit struct {
	ID    string  `json:"id"`
	Kind  string  `json:"kind"`
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

type Index struct {
	idx  bleve.Index
	docs map[string]Doc
}

// New builds a memory-only index over the seeded art styles and categories.
func New(styles []models.ArtStyle, categories []models.Category) (*Index, error) {
	idx, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create catalog index: %w", err)
	}
	ci := &Index{idx: idx, docs: make(map[string]Doc)}

	for _, s := range styles {
		doc := Doc{
			Kind:        KindArtStyle,
			Name:        s.Name,
			Origin:      s.State,
			Description: s.Description + " " + s.CulturalSignificance,
			FunFacts:    strings.Join(s.FunFacts, " "),
			Lat:         s.OriginLocation.Lat,
			Lng:         s.OriginLocation.Lng,
		}
		if err := ci.add(KindArtStyle+":"+s.ID, doc); err != nil {
			return nil, err
		}
	}
	for _, c := range categories {
		doc := Doc{
			Kind:        KindCategory,
			Name:        c.Name,
			Origin:      c.OriginName,
			Description: c.Description,
			FunFacts:    strings.Join(c.FunFacts, " "),
			Lat:         c.Lat,
			Lng:         c.Lng,
		}
		if err := ci.add(KindCategory+":"+c.Name, doc); err != nil {
			return nil, err
		}
	}
	return ci, nil
}

func (ci *Index) add(id string, doc Doc) error {
	ci.docs[id] = doc
	return ci.idx.Index(id, doc)
}

// Search runs a query-string search and maps hits back to catalog entries.
func (ci *Index) Search(q string, limit int) ([]Hit, error) {
	if limit <= 0 {
		limit = 10
	}
	query := bleve.NewQueryStringQuery(q)
	req := bleve.NewSearchRequestOptions(query, limit, 0, false)
	res, err := ci.idx.Search(req)
	if err != nil {
		return nil, err
	}
	hits := make([]Hit, 0, len(res.Hits))
	for _, h := range res.Hits {
		doc, ok := ci.docs[h.ID]
		if !ok {
			continue
		}
		hits = append(hits, Hit{ID: h.ID, Kind: doc.Kind, Name: doc.Name, Score: h.Score})
	}
	return hits, nil
}

func (ci *Index) Close() error { return ci.idx.Close() }
