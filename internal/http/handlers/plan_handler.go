// README: Plan handler for POST /api/plan.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"tripstoryer/internal/metrics"
	"tripstoryer/internal/trip"
)

// TripPlanner is the planning contract the handler depends on.
// Implemented by service.StoryPlanner; stubbed in tests.
type TripPlanner interface {
	PlanTrip(ctx context.Context, clientKey string, req trip.Request) (*trip.Plan, error)
}

type PlanHandler struct {
	planner TripPlanner
}

func NewPlanHandler(planner TripPlanner) *PlanHandler {
	return &PlanHandler{planner: planner}
}

type planReq struct {
	Origin       string   `json:"origin"`
	Destination  string   `json:"destination"`
	StartDate    string   `json:"start_date"`
	DurationDays int      `json:"duration_days"`
	Budget       float64  `json:"budget"`
	TravelStyle  string   `json:"travel_style"`
	Interests    []string `json:"interests"`
	EatOut       bool     `json:"eat_out"`
}

// Create handles POST /api/plan.
func (h *PlanHandler) Create(c *gin.Context) {
	var req planReq
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.PlanRequests.WithLabelValues("bad_request").Inc()
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	plan, err := h.planner.PlanTrip(c.Request.Context(), c.ClientIP(), trip.Request{
		Origin:       req.Origin,
		Destination:  req.Destination,
		StartDate:    req.StartDate,
		DurationDays: req.DurationDays,
		BudgetUSD:    req.Budget,
		TravelStyle:  req.TravelStyle,
		Interests:    req.Interests,
		EatOut:       req.EatOut,
	})
	if err != nil {
		metrics.PlanRequests.WithLabelValues("error").Inc()
		writePlanError(c, err)
		return
	}

	metrics.PlanRequests.WithLabelValues("ok").Inc()
	writeJSON(c, http.StatusOK, plan)
}
