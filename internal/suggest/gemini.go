package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/mbellotti/cardbox/internal/logger"
)

const promptTemplate = `You are helping build flashcards for spaced-repetition study.
From the topic below, produce concise question/answer pairs.
Respond with JSON only, in this exact shape:
{"cards": [{"front": "question", "back": "answer"}]}

Topic:
%s`

// responseSchema is the expected structure of the model's JSON reply.
type responseSchema struct {
	Cards []struct {
		Front string `json:"front"`
		Back  string `json:"back"`
	} `json:"cards"`
}

// GeminiGenerator implements Generator using Google's Gemini API.
type GeminiGenerator struct {
	client *genai.Client
	model  string
	log    *logger.Logger
}

// NewGeminiGenerator creates a Gemini-backed Generator.
func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key cannot be empty")
	}
	if model == "" {
		return nil, fmt.Errorf("gemini model name cannot be empty")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &GeminiGenerator{
		client: client,
		model:  model,
		log:    logger.Default().WithPrefix("suggest"),
	}, nil
}

func (g *GeminiGenerator) SuggestCards(ctx context.Context, prompt string) ([]Suggestion, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, fmt.Errorf("prompt cannot be empty")
	}

	g.log.Debug("requesting card suggestions: prompt_length=%d", len(prompt))

	resp, err := g.client.Models.GenerateContent(ctx, g.model,
		genai.Text(fmt.Sprintf(promptTemplate, prompt)), nil)
	if err != nil {
		g.log.Error("gemini call failed: %v", err)
		return nil, fmt.Errorf("generate suggestions: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("generate suggestions: empty response")
	}

	// Models occasionally wrap JSON in a markdown fence despite the
	// instructions.
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	var parsed responseSchema
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		g.log.Error("unparseable model response: %v", err)
		return nil, fmt.Errorf("generate suggestions: invalid response: %w", err)
	}

	suggestions := make([]Suggestion, 0, len(parsed.Cards))
	for _, c := range parsed.Cards {
		if strings.TrimSpace(c.Front) == "" || strings.TrimSpace(c.Back) == "" {
			continue
		}
		suggestions = append(suggestions, Suggestion{FrontText: c.Front, BackText: c.Back})
	}

	g.log.Info("generated %d card suggestions", len(suggestions))
	return suggestions, nil
}
