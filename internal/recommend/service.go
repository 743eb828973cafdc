package recommend

import (
	"context"
	"time"

	"github.com/google/uuid"

	"roomrec-backend/internal/artifacts"
	"roomrec-backend/internal/history"
	"roomrec-backend/internal/shared/metrics"
	"roomrec-backend/internal/shared/telemetry"
)

// DefaultTopK is applied at the boundary when a request omits top_k.
const DefaultTopK = 10

// Service runs the recommendation pipeline against the currently loaded
// artifact set and records served requests in the history store.
type Service struct {
	Artifacts *artifacts.Holder
	History   history.Repo
}

// NewService constructs a Service.
func NewService(holder *artifacts.Holder, historyRepo history.Repo) *Service {
	return &Service{Artifacts: holder, History: historyRepo}
}

// Recommend generates, scores and ranks candidate slots for the request.
// Returns ErrNotReady while the service is degraded and ErrInference when
// the classifier rejects the feature matrix.
func (s *Service) Recommend(ctx context.Context, req Request) ([]Recommendation, error) {
	art := s.Artifacts.Current()
	if art == nil {
		return nil, ErrNotReady
	}

	metrics.IncRecommendStarted()
	start := time.Now()

	gen := Generator{Catalog: art.Catalog}
	candidates := gen.Generate(req.UserID, req.Purpose, req.Attendees, req.TargetDate, req.TargetHours)

	engine := Engine{Schema: art.Schema, Encoder: art.Encoder, Model: art.Model}
	recs, err := engine.ScoreAndRank(candidates, req.TopK)
	if err != nil {
		metrics.IncRecommendFailed()
		return nil, err
	}

	metrics.IncRecommendCompleted()
	metrics.ObserveRecommendDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)

	s.recordRequest(ctx, req, recs)
	return recs, nil
}

// recordRequest persists the served request. Best-effort: a history failure
// is logged and never fails the recommendation.
func (s *Service) recordRequest(ctx context.Context, req Request, recs []Recommendation) {
	if s.History == nil {
		return
	}
	record := history.SlotRequest{
		ID:             uuid.NewString(),
		UserID:         req.UserID,
		Purpose:        req.Purpose,
		Attendees:      req.Attendees,
		TargetDate:     req.TargetDate,
		RequestedHours: append([]int(nil), req.TargetHours...),
		Returned:       len(recs),
		CreatedAt:      time.Now().UTC(),
	}
	if len(recs) > 0 {
		record.TopProbability = recs[0].SuccessProbability
	}
	if err := s.History.Create(ctx, record); err != nil {
		telemetry.Warn("history.record_failed", map[string]any{
			"user_id": req.UserID,
			"error":   err.Error(),
		})
	}
}
