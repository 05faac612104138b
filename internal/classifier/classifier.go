package classifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/artyatra/artyatra/config"
	"github.com/artyatra/artyatra/models"
)

// Classifier wraps one call against a generative-AI endpoint: it takes an
// image and returns a label from the fixed style set, a confidence in
// [0,100] and a short justification. A failed call is surfaced as-is; there
// is no retry.
type Classifier interface {
	Classify(ctx context.Context, image []byte, mimeType string) (models.ArtClassification, error)
}

// The closed label set the model chooses from. Must match the catalog names
// exactly; the classify endpoint resolves the returned label against the
// catalog afterwards.
var styleLabels = []string{
	"Warli Art - Tribal art from Maharashtra with geometric patterns",
	"Pochampally Ikat - Tie-dye textile art from Telangana",
	"Thanjavur Painting - Classical painting from Tamil Nadu with gold foil",
	"Madhubani Painting - Folk art from Bihar with vibrant colors",
	"Kalamkari - Hand-painted textile art from Andhra Pradesh",
	"Pattachitra - Traditional painting from Odisha",
	"Gond Art - Tribal art from Central India",
	"Pichwai Painting - Religious art from Rajasthan",
}

func classificationPrompt() string {
	var b strings.Builder
	b.WriteString("Analyze this image and classify it as one of these traditional Indian art styles:\n\n")
	for i, label := range styleLabels {
		fmt.Fprintf(&b, "%d. %s\n", i+1, label)
	}
	b.WriteString(`
Respond with JSON in this exact format:
{
  "artStyleName": "exact name from the list above",
  "confidence": number between 0 and 100,
  "reasoning": "brief explanation of why this classification was chosen"
}

If the image doesn't clearly match any of these styles, choose the closest match and indicate lower confidence.`)
	return b.String()
}

// parseResult decodes the model's JSON answer and clamps the confidence.
func parseResult(raw string) (models.ArtClassification, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return models.ArtClassification{}, errors.New("empty response from model")
	}
	var result models.ArtClassification
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return models.ArtClassification{}, fmt.Errorf("unparseable model response: %w", err)
	}
	if result.ArtStyleName == "" {
		return models.ArtClassification{}, errors.New("model response missing artStyleName")
	}
	result.Confidence = models.ClampConfidence(result.Confidence)
	return result, nil
}

// New builds the classifier selected by llm.provider.
func New(cfg config.LLMConfig) (Classifier, error) {
	switch cfg.Provider {
	case "gemini":
		if cfg.Gemini.APIKey == "" {
			return nil, errors.New("llm.gemini.api_key not configured")
		}
		return NewGemini(cfg.Gemini), nil
	case "openai":
		if cfg.OpenAI.APIKey == "" {
			return nil, errors.New("llm.openai.api_key not configured")
		}
		return NewOpenAI(cfg.OpenAI), nil
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", cfg.Provider)
	}
}
