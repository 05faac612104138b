package classifier

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/artyatra/artyatra/config"
	"github.com/artyatra/artyatra/models"
)

// Gemini classifies artwork images with Google's Gemini API using a JSON
// response schema, the same contract the product originally shipped with.
type Gemini struct {
	cfg config.GeminiConfig
}

func NewGemini(cfg config.GeminiConfig) *Gemini {
	return &Gemini{cfg: cfg}
}

func (g *Gemini) Classify(ctx context.Context, image []byte, mimeType string) (models.ArtClassification, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(g.cfg.APIKey))
	if err != nil {
		return models.ArtClassification{}, fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(g.cfg.Model)
	model.SetTemperature(float32(g.cfg.Temperature))
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"artStyleName": {Type: genai.TypeString},
			"confidence":   {Type: genai.TypeNumber},
			"reasoning":    {Type: genai.TypeString},
		},
		Required: []string{"artStyleName", "confidence", "reasoning"},
	}

	// genai wants the bare image format, e.g. "jpeg" not "image/jpeg"
	format := strings.TrimPrefix(mimeType, "image/")
	if format == "" || format == mimeType {
		format = "jpeg"
	}

	resp, err := model.GenerateContent(ctx, genai.ImageData(format, image), genai.Text(classificationPrompt()))
	if err != nil {
		return models.ArtClassification{}, fmt.Errorf("failed to classify artwork: %w", err)
	}
	if len(resp.Candidates) == 0 {
		return models.ArtClassification{}, fmt.Errorf("no candidates returned from gemini")
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return models.ArtClassification{}, fmt.Errorf("empty content returned from gemini")
	}
	txt, ok := candidate.Content.Parts[0].(genai.Text)
	if !ok {
		return models.ArtClassification{}, fmt.Errorf("unexpected response format from gemini")
	}
	return parseResult(string(txt))
}
