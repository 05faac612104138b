package classifier

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"github.com/artyatra/artyatra/config"
	"github.com/artyatra/artyatra/models"
)

// OpenAI is the alternative provider: a vision chat completion with the image
// passed as a base64 data URL and a JSON-object response format.
type OpenAI struct {
	client *openai.Client
	cfg    config.OpenAIConfig
}

func NewOpenAI(cfg config.OpenAIConfig) *OpenAI {
	return &OpenAI{client: openai.NewClient(cfg.APIKey), cfg: cfg}
}

func (o *OpenAI) Classify(ctx context.Context, image []byte, mimeType string) (models.ArtClassification, error) {
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(image))

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.cfg.Model,
		MaxTokens:   o.cfg.MaxTokens,
		Temperature: float32(o.cfg.Temperature),
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: classificationPrompt()},
					{
						Type:     openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{URL: dataURL},
					},
				},
			},
		},
	})
	if err != nil {
		return models.ArtClassification{}, fmt.Errorf("failed to classify artwork: %w", err)
	}
	if len(resp.Choices) == 0 {
		return models.ArtClassification{}, fmt.Errorf("no choices returned from openai")
	}
	return parseResult(resp.Choices[0].Message.Content)
}
