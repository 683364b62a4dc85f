// README: StoryPlanner orchestrates quota, generation with retry, and place enrichment.
package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"tripstoryer/internal/ai"
	"tripstoryer/internal/metrics"
	"tripstoryer/internal/trip"
)

// PlaceFinder looks up candidate venues for an activity. Implemented by the
// maps module; stubbed in tests.
type PlaceFinder interface {
	Lookup(ctx context.Context, activityType, destination, timeWindow string) ([]trip.Place, error)
}

// QuotaKeeper deducts one plan generation from a client's monthly allowance.
type QuotaKeeper interface {
	Consume(ctx context.Context, clientKey string) error
}

// PlannerDeps carries the collaborators and tuning knobs for a StoryPlanner.
// Places and Quota may be nil; the corresponding step is then skipped.
type PlannerDeps struct {
	Model       ai.StoryModel
	Places      PlaceFinder
	Quota       QuotaKeeper
	Logger      *zap.Logger
	MaxAttempts int
	CallTimeout time.Duration
	RetryDelay  time.Duration
}

// StoryPlanner turns a validated trip request into an enriched plan.
type StoryPlanner struct {
	model       ai.StoryModel
	places      PlaceFinder
	quota       QuotaKeeper
	log         *zap.Logger
	maxAttempts int
	callTimeout time.Duration
	retryDelay  time.Duration
}

// NewStoryPlanner creates a StoryPlanner with initialized dependencies.
func NewStoryPlanner(deps PlannerDeps) *StoryPlanner {
	if deps.MaxAttempts <= 0 {
		deps.MaxAttempts = 2
	}
	if deps.CallTimeout <= 0 {
		deps.CallTimeout = 30 * time.Second
	}
	if deps.RetryDelay <= 0 {
		deps.RetryDelay = 500 * time.Millisecond
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &StoryPlanner{
		model:       deps.Model,
		places:      deps.Places,
		quota:       deps.Quota,
		log:         deps.Logger,
		maxAttempts: deps.MaxAttempts,
		callTimeout: deps.CallTimeout,
		retryDelay:  deps.RetryDelay,
	}
}

// PlanTrip validates the request, charges the quota, generates the itinerary
// and fills empty place lists. clientKey identifies the caller for quota
// accounting (remote IP when no stronger identity exists).
func (p *StoryPlanner) PlanTrip(ctx context.Context, clientKey string, req trip.Request) (*trip.Plan, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if p.quota != nil {
		if err := p.quota.Consume(ctx, clientKey); err != nil {
			return nil, err
		}
	}

	plan, err := p.generateWithRetry(ctx, req)
	if err != nil {
		return nil, err
	}

	// The model is asked for exactly one chapter per day but is not trusted to
	// comply. A mismatched plan is still served; the discrepancy is flagged.
	if len(plan.Chapters) != req.DurationDays {
		p.log.Warn("chapter count differs from requested duration",
			zap.Int("chapters", len(plan.Chapters)),
			zap.Int("duration_days", req.DurationDays),
			zap.String("destination", req.Destination))
	}

	p.enrich(ctx, req.Destination, plan)
	return plan, nil
}

// generateWithRetry calls the story model with a per-call timeout, retrying
// transient failures with doubling backoff. Validation failures are permanent
// and returned immediately.
func (p *StoryPlanner) generateWithRetry(ctx context.Context, req trip.Request) (*trip.Plan, error) {
	delay := p.retryDelay
	var lastErr error

	for attempt := 1; attempt <= p.maxAttempts; attempt++ {
		callCtx, cancel := context.WithTimeout(ctx, p.callTimeout)
		start := time.Now()
		plan, err := p.model.GenerateItinerary(callCtx, req)
		metrics.GenerationDuration.Observe(time.Since(start).Seconds())
		cancel()

		if err == nil {
			return plan, nil
		}
		lastErr = err

		var genErr *ai.GenerationError
		transient := errors.As(err, &genErr) && genErr.Transient
		if transient {
			metrics.GenerationFailures.WithLabelValues("transient").Inc()
		} else {
			metrics.GenerationFailures.WithLabelValues("permanent").Inc()
			return nil, err
		}

		p.log.Warn("story model call failed",
			zap.Int("attempt", attempt),
			zap.Error(err))

		if attempt == p.maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}

	return nil, lastErr
}

// enrich fills empty place lists via the lookup service. Lookup failures are
// swallowed: an itinerary is never withheld because enrichment failed.
func (p *StoryPlanner) enrich(ctx context.Context, destination string, plan *trip.Plan) {
	if p.places == nil {
		return
	}

	for ci := range plan.Chapters {
		chapter := &plan.Chapters[ci]
		for idx := range chapter.Activities {
			activity := &chapter.Activities[idx]
			if len(activity.Places) > 0 {
				continue
			}

			places, err := p.places.Lookup(ctx, activity.Type, destination, chapter.TimeWindow)
			if err != nil {
				metrics.PlaceLookups.WithLabelValues("error").Inc()
				p.log.Warn("place lookup failed",
					zap.String("activity_type", activity.Type),
					zap.String("destination", destination),
					zap.Error(err))
				activity.Places = []trip.Place{}
				continue
			}
			if len(places) == 0 {
				metrics.PlaceLookups.WithLabelValues("empty").Inc()
				activity.Places = []trip.Place{}
				continue
			}
			metrics.PlaceLookups.WithLabelValues("ok").Inc()
			activity.Places = places
		}
	}
}
