package ai

import (
	"context"

	"tripstoryer/internal/trip"
)

// StoryModel defines the contract for the generative itinerary backend.
// This interface allows swapping providers (Gemini, OpenAI, etc.) and stubbing in tests.
type StoryModel interface {
	// GenerateItinerary asks the model for a structured day-by-day plan for the
	// given trip parameters. The returned plan has passed schema validation.
	GenerateItinerary(ctx context.Context, req trip.Request) (*trip.Plan, error)
}
