package ai

import (
	"errors"
	"strings"
	"testing"
)

const validPlanJSON = `{
  "title": "Three Days in Paris",
  "summary": "A romantic long weekend.",
  "destination": "Paris",
  "travel_style": "romantic",
  "chapters": [
    {"day": 1, "title": "Arrival", "time_window": "afternoon", "story_paragraph": "You arrive...",
     "story_image_prompt": "Evening over the Seine",
     "activities": [
       {"type": "dinner", "description": "Bistro dinner", "estimated_price_usd": 60,
        "time_allocation": "2h",
        "places": [{"name": "Chez Janou", "address": "2 Rue Roger Verlomme",
                    "geo": {"lat": 48.855, "lng": 2.366}, "price_estimate": "$$",
                    "menu_items": ["cassoulet"]}]}
     ]},
    {"day": 2, "title": "Museums", "time_window": "all day", "story_paragraph": "Morning light...",
     "activities": [{"type": "museum", "description": "Louvre visit", "places": []}]},
    {"day": 3, "title": "Departure", "time_window": "morning", "story_paragraph": "One last café...",
     "activities": []}
  ]
}`

func TestDecodeTripPlan_Valid(t *testing.T) {
	plan, err := DecodeTripPlan(validPlanJSON)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.Destination != "Paris" {
		t.Errorf("destination = %q, want Paris", plan.Destination)
	}
	if len(plan.Chapters) != 3 {
		t.Fatalf("chapters = %d, want 3", len(plan.Chapters))
	}
	if plan.Chapters[0].Day != 1 || plan.Chapters[2].Day != 3 {
		t.Error("chapter day numbering not preserved")
	}
	act := plan.Chapters[0].Activities[0]
	if act.EstimatedPriceUSD == nil || *act.EstimatedPriceUSD != 60 {
		t.Error("estimated_price_usd not decoded")
	}
	if len(act.Places) != 1 || act.Places[0].Geo == nil || act.Places[0].Geo.Lat != 48.855 {
		t.Error("place geo not decoded")
	}
}

func TestDecodeTripPlan_MarkdownFences(t *testing.T) {
	fenced := "```json\n" + validPlanJSON + "\n```"
	plan, err := DecodeTripPlan(fenced)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plan.Chapters) != 3 {
		t.Errorf("chapters = %d, want 3", len(plan.Chapters))
	}
}

func TestDecodeTripPlan_NotJSON(t *testing.T) {
	raw := "Sorry, I cannot plan this trip today."
	_, err := DecodeTripPlan(raw)
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected *GenerationError, got %v", err)
	}
	if genErr.Transient {
		t.Error("malformed output must be permanent, not transient")
	}
	if !strings.Contains(err.Error(), "Sorry, I cannot") {
		t.Errorf("error %q does not carry a prefix of the raw response", err)
	}
}

func TestDecodeTripPlan_MissingChapters(t *testing.T) {
	raw := `{"title": "T", "summary": "S", "destination": "Paris"}`
	_, err := DecodeTripPlan(raw)
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected *GenerationError, got %v", err)
	}
	if genErr.Transient {
		t.Error("schema violation must be permanent")
	}
	if !strings.Contains(err.Error(), "chapters") {
		t.Errorf("error %q does not name the missing key", err)
	}
}

func TestDecodeTripPlan_Empty(t *testing.T) {
	_, err := DecodeTripPlan("   ")
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected *GenerationError, got %v", err)
	}
	if !genErr.Transient {
		t.Error("empty body is a transient failure, retry should be allowed")
	}
}

func TestDecodeTripPlan_RawExcerptTruncated(t *testing.T) {
	raw := strings.Repeat("x", 1000)
	_, err := DecodeTripPlan(raw)
	if err == nil {
		t.Fatal("expected error")
	}
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected *GenerationError, got %v", err)
	}
	if len(genErr.Raw) > 200 {
		t.Errorf("raw excerpt length %d exceeds 200", len(genErr.Raw))
	}
}
