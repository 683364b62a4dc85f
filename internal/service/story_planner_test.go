package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"tripstoryer/internal/ai"
	"tripstoryer/internal/trip"
)

// stubModel is a test double for ai.StoryModel returning queued results.
type stubModel struct {
	plans []*trip.Plan
	errs  []error
	calls int
}

func (m *stubModel) GenerateItinerary(_ context.Context, _ trip.Request) (*trip.Plan, error) {
	i := m.calls
	m.calls++
	var plan *trip.Plan
	var err error
	if i < len(m.plans) {
		plan = m.plans[i]
	}
	if i < len(m.errs) {
		err = m.errs[i]
	}
	return plan, err
}

// stubFinder is a test double for PlaceFinder.
type stubFinder struct {
	places []trip.Place
	err    error
	calls  int
}

func (f *stubFinder) Lookup(_ context.Context, _, _, _ string) ([]trip.Place, error) {
	f.calls++
	return f.places, f.err
}

// stubQuota is a test double for QuotaKeeper.
type stubQuota struct {
	err   error
	calls int
	keys  []string
}

func (q *stubQuota) Consume(_ context.Context, key string) error {
	q.calls++
	q.keys = append(q.keys, key)
	return q.err
}

func planWithEmptyPlaces(days int) *trip.Plan {
	plan := &trip.Plan{Title: "T", Summary: "S", Destination: "Paris"}
	for d := 1; d <= days; d++ {
		plan.Chapters = append(plan.Chapters, trip.Chapter{
			Day:        d,
			Title:      "Day",
			TimeWindow: "all day",
			Activities: []trip.Activity{
				{Type: "museum", Description: "Visit"},
			},
		})
	}
	return plan
}

func request(days int) trip.Request {
	return trip.Request{
		Origin:       "NYC",
		Destination:  "Paris",
		DurationDays: days,
		BudgetUSD:    1500,
		TravelStyle:  "romantic",
		Interests:    []string{"food", "art"},
		EatOut:       true,
	}
}

func newPlanner(model ai.StoryModel, places PlaceFinder, quota QuotaKeeper) *StoryPlanner {
	return NewStoryPlanner(PlannerDeps{
		Model:       model,
		Places:      places,
		Quota:       quota,
		MaxAttempts: 2,
		RetryDelay:  time.Millisecond,
	})
}

func TestPlanTrip_Success(t *testing.T) {
	model := &stubModel{plans: []*trip.Plan{planWithEmptyPlaces(3)}}
	finder := &stubFinder{places: []trip.Place{{Name: "Louvre"}}}
	planner := newPlanner(model, finder, nil)

	plan, err := planner.PlanTrip(context.Background(), "1.2.3.4", request(3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plan.Chapters) != 3 {
		t.Fatalf("chapters = %d, want 3", len(plan.Chapters))
	}
	if got := plan.Chapters[0].Activities[0].Places; len(got) != 1 || got[0].Name != "Louvre" {
		t.Errorf("enrichment did not fill places: %+v", got)
	}
	if finder.calls != 3 {
		t.Errorf("finder calls = %d, want 3 (one per empty activity)", finder.calls)
	}
}

func TestPlanTrip_InvalidRequest(t *testing.T) {
	model := &stubModel{}
	planner := newPlanner(model, nil, nil)

	req := request(3)
	req.DurationDays = 0
	_, err := planner.PlanTrip(context.Background(), "k", req)
	if !errors.Is(err, trip.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
	if model.calls != 0 {
		t.Error("model must not be called for an invalid request")
	}
}

func TestPlanTrip_TransientFailureRetried(t *testing.T) {
	transient := &ai.GenerationError{Reason: "gemini call failed", Transient: true}
	model := &stubModel{
		errs:  []error{transient, nil},
		plans: []*trip.Plan{nil, planWithEmptyPlaces(2)},
	}
	planner := newPlanner(model, nil, nil)

	plan, err := planner.PlanTrip(context.Background(), "k", request(2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if model.calls != 2 {
		t.Errorf("model calls = %d, want 2", model.calls)
	}
	if len(plan.Chapters) != 2 {
		t.Errorf("chapters = %d, want 2", len(plan.Chapters))
	}
}

func TestPlanTrip_PermanentFailureNotRetried(t *testing.T) {
	permanent := &ai.GenerationError{Reason: "plan failed schema validation", Transient: false}
	model := &stubModel{errs: []error{permanent, nil}, plans: []*trip.Plan{nil, planWithEmptyPlaces(2)}}
	planner := newPlanner(model, nil, nil)

	_, err := planner.PlanTrip(context.Background(), "k", request(2))
	var genErr *ai.GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected *GenerationError, got %v", err)
	}
	if model.calls != 1 {
		t.Errorf("model calls = %d, want 1 (validation failures must not be retried)", model.calls)
	}
}

func TestPlanTrip_TransientFailureExhaustsAttempts(t *testing.T) {
	transient := &ai.GenerationError{Reason: "gemini call failed", Transient: true}
	model := &stubModel{errs: []error{transient, transient}}
	planner := newPlanner(model, nil, nil)

	_, err := planner.PlanTrip(context.Background(), "k", request(2))
	if err == nil {
		t.Fatal("expected error after exhausting attempts")
	}
	if model.calls != 2 {
		t.Errorf("model calls = %d, want 2", model.calls)
	}
}

func TestPlanTrip_EnrichmentFailureDegradesGracefully(t *testing.T) {
	model := &stubModel{plans: []*trip.Plan{planWithEmptyPlaces(1)}}
	finder := &stubFinder{err: errors.New("places api down")}
	planner := newPlanner(model, finder, nil)

	plan, err := planner.PlanTrip(context.Background(), "k", request(1))
	if err != nil {
		t.Fatalf("plan must not fail because enrichment failed: %v", err)
	}
	places := plan.Chapters[0].Activities[0].Places
	if places == nil || len(places) != 0 {
		t.Errorf("activity places = %v, want empty non-nil list", places)
	}
}

func TestPlanTrip_EnrichmentSkipsFilledActivities(t *testing.T) {
	plan := planWithEmptyPlaces(1)
	plan.Chapters[0].Activities[0].Places = []trip.Place{{Name: "Already Set"}}
	model := &stubModel{plans: []*trip.Plan{plan}}
	finder := &stubFinder{places: []trip.Place{{Name: "Other"}}}
	planner := newPlanner(model, finder, nil)

	got, err := planner.PlanTrip(context.Background(), "k", request(1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if finder.calls != 0 {
		t.Errorf("finder calls = %d, want 0", finder.calls)
	}
	if got.Chapters[0].Activities[0].Places[0].Name != "Already Set" {
		t.Error("model-supplied places must be preserved")
	}
}

func TestPlanTrip_ChapterCountMismatchStillServed(t *testing.T) {
	// The model returned 2 chapters for a 3-day request: flagged, not coerced.
	model := &stubModel{plans: []*trip.Plan{planWithEmptyPlaces(2)}}
	planner := newPlanner(model, nil, nil)

	plan, err := planner.PlanTrip(context.Background(), "k", request(3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plan.Chapters) != 2 {
		t.Errorf("chapters = %d, want the model's 2 untouched", len(plan.Chapters))
	}
}

func TestPlanTrip_QuotaExceeded(t *testing.T) {
	quotaErr := errors.New("monthly plan quota exceeded")
	model := &stubModel{plans: []*trip.Plan{planWithEmptyPlaces(1)}}
	quota := &stubQuota{err: quotaErr}
	planner := newPlanner(model, nil, quota)

	_, err := planner.PlanTrip(context.Background(), "1.2.3.4", request(1))
	if !errors.Is(err, quotaErr) {
		t.Fatalf("expected quota error, got %v", err)
	}
	if model.calls != 0 {
		t.Error("model must not be called when the quota is exhausted")
	}
	if len(quota.keys) != 1 || quota.keys[0] != "1.2.3.4" {
		t.Errorf("quota charged for %v, want [1.2.3.4]", quota.keys)
	}
}
