// README: Trip domain model; request and itinerary structures shared across modules.
package trip

import (
	"errors"
	"fmt"
	"strings"
)

// Request carries the parameters for one itinerary generation.
// It is built from the HTTP payload, validated once at the boundary and
// discarded after the response is produced.
type Request struct {
	Origin       string   `json:"origin"`
	Destination  string   `json:"destination"`
	StartDate    string   `json:"start_date,omitempty"`
	DurationDays int      `json:"duration_days"`
	BudgetUSD    float64  `json:"budget"`
	TravelStyle  string   `json:"travel_style"`
	Interests    []string `json:"interests"`
	EatOut       bool     `json:"eat_out"`
}

// ErrInvalidRequest marks request validation failures surfaced as 422.
var ErrInvalidRequest = errors.New("invalid trip request")

// Validate checks the field-level constraints of the request.
func (r Request) Validate() error {
	var problems []string
	if strings.TrimSpace(r.Origin) == "" {
		problems = append(problems, "origin must not be empty")
	}
	if strings.TrimSpace(r.Destination) == "" {
		problems = append(problems, "destination must not be empty")
	}
	if r.DurationDays <= 0 {
		problems = append(problems, "duration_days must be positive")
	}
	if r.BudgetUSD < 0 {
		problems = append(problems, "budget must not be negative")
	}
	if strings.TrimSpace(r.TravelStyle) == "" {
		problems = append(problems, "travel_style must not be empty")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidRequest, strings.Join(problems, "; "))
	}
	return nil
}

// Plan is the structured itinerary produced by the story model.
// Chapters are ordered by day; a well-formed plan has one chapter per
// requested day, numbered 1..DurationDays.
type Plan struct {
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	Destination string    `json:"destination"`
	TravelStyle string    `json:"travel_style,omitempty"`
	Chapters    []Chapter `json:"chapters"`
}

// Chapter is one day of the itinerary plus its narrative paragraph.
type Chapter struct {
	Day              int        `json:"day"`
	Title            string     `json:"title"`
	TimeWindow       string     `json:"time_window"`
	StoryParagraph   string     `json:"story_paragraph"`
	StoryImagePrompt string     `json:"story_image_prompt,omitempty"`
	Activities       []Activity `json:"activities"`
}

// Activity is a single planned action within a chapter.
type Activity struct {
	Type              string   `json:"type"`
	Description       string   `json:"description"`
	EstimatedPriceUSD *float64 `json:"estimated_price_usd,omitempty"`
	TimeAllocation    string   `json:"time_allocation,omitempty"`
	Places            []Place  `json:"places"`
}

// Place is a concrete venue associated with an activity.
type Place struct {
	Name          string   `json:"name"`
	Address       string   `json:"address,omitempty"`
	Geo           *GeoPos  `json:"geo,omitempty"`
	URL           string   `json:"url,omitempty"`
	PriceEstimate string   `json:"price_estimate,omitempty"`
	Description   string   `json:"description,omitempty"`
	MenuItems     []string `json:"menu_items,omitempty"`
}

// GeoPos is a WGS84 coordinate pair in floating point degrees.
type GeoPos struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
