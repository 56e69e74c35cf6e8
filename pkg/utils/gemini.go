package utils

import (
	"context"
	"fmt"
	"log"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"navigo/internal/models/response_models"
)

const composerMaxAttempts = 3

// GeminiComposer implements ItineraryComposer on Google's Gemini models.
type GeminiComposer struct {
	client *genai.Client
	model  string
}

func NewGeminiComposer(apiKey, model string) (*GeminiComposer, error) {
	if model == "" {
		model = "gemini-1.5-flash"
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiComposer{
		client: client,
		model:  model,
	}, nil
}

func (c *GeminiComposer) ComposeItinerary(ctx context.Context, input ComposeInput) (*response_models.TravelPlan, error) {
	if input.Days < 1 || input.Days > 30 {
		return nil, fmt.Errorf("bad day count: %d", input.Days)
	}
	if len(input.Places) == 0 {
		return nil, fmt.Errorf("no places to schedule")
	}

	m := c.client.GenerativeModel(c.model)
	// JSON-only output removes the need for brace-matching hacks downstream.
	m.ResponseMIMEType = "application/json"
	m.SetTemperature(0.1)
	m.SetTopP(0.5)
	m.SetTopK(20)
	m.SetMaxOutputTokens(5000)

	prompt := buildItineraryPrompt(input)

	var lastErr error
	for attempt := 1; attempt <= composerMaxAttempts; attempt++ {
		resp, err := m.GenerateContent(ctx, genai.Text(prompt))
		if err != nil {
			lastErr = fmt.Errorf("gemini: %w", err)
			log.Printf("Gemini call failed (attempt %d/%d): %v", attempt, composerMaxAttempts, err)
			continue
		}
		if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
			lastErr = fmt.Errorf("gemini: no content generated")
			continue
		}

		content := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
		plan, err := parseTravelPlan(content, input.Days)
		if err != nil {
			lastErr = err
			log.Printf("Gemini response rejected (attempt %d/%d): %v", attempt, composerMaxAttempts, err)
			continue
		}
		return plan, nil
	}

	return nil, lastErr
}
