package ai

import (
	"fmt"
	"strings"

	"tripstoryer/internal/trip"
)

// BuildItineraryPrompt constructs the instructions for the story model.
// Pure function: the same request always yields byte-identical prompt text.
func BuildItineraryPrompt(req trip.Request) string {
	var b strings.Builder

	b.WriteString("You are TripStoryer — produce a JSON itinerary + story. Output only valid JSON.\n\n")

	b.WriteString(`Top-level keys:
- title (string)
- summary (string)
- destination (string)
- travel_style (string)
- chapters (array, one entry per day). Each chapter:
  - day (int, 1-based), title (string), time_window (string, e.g. "morning to late evening")
  - story_paragraph (string): a short narrative paragraph for the day, written in the requested travel style
  - story_image_prompt (string): a one-sentence visual prompt describing the day's scene
  - activities (array). Each activity:
    - type (string tag, e.g. "museum", "dinner", "walk")
    - description (string)
    - estimated_price_usd (number, omit if unknown)
    - time_allocation (string, e.g. "2h")
    - places (array, may be empty). Each place: name (string), address (string),
      geo {lat, lng} (numbers), url (string), price_estimate (tier string such as "$$"),
      description (string), menu_items (array of strings, only for dining places)

Example chapter:
{"day": 1, "title": "Arrival and Old Town", "time_window": "afternoon to evening",
 "story_paragraph": "You step off the train into the low afternoon light...",
 "story_image_prompt": "A cobbled old-town square at golden hour",
 "activities": [{"type": "walk", "description": "Stroll the old town walls",
   "estimated_price_usd": 0, "time_allocation": "2h", "places": []}]}

`)

	b.WriteString("User constraints:\n")
	fmt.Fprintf(&b, "origin: %s\n", req.Origin)
	fmt.Fprintf(&b, "destination: %s\n", req.Destination)
	if req.StartDate != "" {
		fmt.Fprintf(&b, "start_date: %s\n", req.StartDate)
	}
	fmt.Fprintf(&b, "duration_days: %d\n", req.DurationDays)
	fmt.Fprintf(&b, "budget_usd: %.2f\n", req.BudgetUSD)
	fmt.Fprintf(&b, "travel_style: %s\n", req.TravelStyle)
	fmt.Fprintf(&b, "interests: %s\n", strings.Join(req.Interests, ", "))
	fmt.Fprintf(&b, "eat_out: %t\n", req.EatOut)

	fmt.Fprintf(&b, "\nProduce exactly %d chapters (one per day, day numbered 1..%d). "+
		"Keep the total estimated cost within the budget. "+
		"Keep the JSON syntactically valid and machine-parseable. No markdown, no comments.\n",
		req.DurationDays, req.DurationDays)

	return b.String()
}
