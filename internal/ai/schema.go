package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"tripstoryer/internal/trip"
)

// planSchema is the shape the story model must return. The model's output is
// untrusted input: anything that does not validate is rejected, never coerced.
const planSchema = `{
  "type": "object",
  "required": ["title", "summary", "destination", "chapters"],
  "properties": {
    "title": {"type": "string", "minLength": 1},
    "summary": {"type": "string"},
    "destination": {"type": "string", "minLength": 1},
    "travel_style": {"type": "string"},
    "chapters": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["day", "title", "story_paragraph", "activities"],
        "properties": {
          "day": {"type": "integer", "minimum": 1},
          "title": {"type": "string"},
          "time_window": {"type": "string"},
          "story_paragraph": {"type": "string"},
          "story_image_prompt": {"type": "string"},
          "activities": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["type", "description"],
              "properties": {
                "type": {"type": "string"},
                "description": {"type": "string"},
                "estimated_price_usd": {"type": "number", "minimum": 0},
                "time_allocation": {"type": "string"},
                "places": {
                  "type": "array",
                  "items": {
                    "type": "object",
                    "required": ["name"],
                    "properties": {
                      "name": {"type": "string"},
                      "address": {"type": "string"},
                      "url": {"type": "string"},
                      "price_estimate": {"type": "string"},
                      "description": {"type": "string"},
                      "menu_items": {"type": "array", "items": {"type": "string"}},
                      "geo": {
                        "type": "object",
                        "properties": {
                          "lat": {"type": "number"},
                          "lng": {"type": "number"}
                        }
                      }
                    }
                  }
                }
              }
            }
          }
        }
      }
    }
  }
}`

var schemaLoader = gojsonschema.NewStringLoader(planSchema)

// DecodeTripPlan validates the raw model output against planSchema and decodes
// it into a trip.Plan. Failures return a *GenerationError carrying a truncated
// excerpt of the raw text. An empty body is transient (worth one retry);
// malformed or schema-violating output is permanent.
func DecodeTripPlan(raw string) (*trip.Plan, error) {
	cleaned := cleanJSONString(raw)
	if cleaned == "" {
		return nil, newGenerationError("empty response body", raw, true, nil)
	}

	if !json.Valid([]byte(cleaned)) {
		return nil, newGenerationError("response is not valid JSON", cleaned, false, nil)
	}

	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewStringLoader(cleaned))
	if err != nil {
		return nil, newGenerationError("schema check failed", cleaned, false, err)
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}
		return nil, newGenerationError(
			fmt.Sprintf("plan failed schema validation: %s", strings.Join(details, "; ")),
			cleaned, false, nil)
	}

	var plan trip.Plan
	if err := json.Unmarshal([]byte(cleaned), &plan); err != nil {
		return nil, newGenerationError("failed to decode plan", cleaned, false, err)
	}
	return &plan, nil
}

// cleanJSONString removes markdown code fences if present (e.g. ```json ... ```).
func cleanJSONString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	return strings.TrimSpace(input)
}
