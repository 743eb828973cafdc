package recommend

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"roomrec-backend/internal/shared/server/respond"
	"roomrec-backend/internal/shared/telemetry"
)

// Handler wires HTTP handlers to the recommendation service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches recommendation routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/recommend", h.recommend)
}

type recommendRequest struct {
	UserID      *int   `json:"user_id"`
	Purpose     string `json:"purpose"`
	Attendees   int    `json:"attendees"`
	TargetDate  string `json:"target_date"`
	TargetHours []int  `json:"target_hours"`
	TopK        *int   `json:"top_k"`
}

func (h *Handler) recommend(c *gin.Context) {
	var raw recommendRequest
	if err := c.ShouldBindJSON(&raw); err != nil {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "invalid request body", nil)
		return
	}

	req, details := validateRequest(raw)
	if len(details) > 0 {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "invalid recommendation request", details)
		return
	}

	c.Set("userId", req.UserID)

	recs, err := h.Svc.Recommend(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotReady):
			respond.Error(c, http.StatusServiceUnavailable, ErrorCodeUnavailable, "model artifacts are not loaded", nil)
		case errors.Is(err, ErrInference):
			telemetry.Error("recommend.inference_failed", map[string]any{
				"user_id": req.UserID,
				"error":   err.Error(),
			})
			respond.Error(c, http.StatusInternalServerError, ErrorCodeInference, "failed to score candidates", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, ErrorCodeInternal, "failed to build recommendations", nil)
		}
		return
	}

	c.Set("recommendationCount", len(recs))
	respond.OK(c, gin.H{
		"success":               true,
		"recommendations":       recs,
		"total_recommendations": len(recs),
	})
}

// validateRequest enforces the caller contract before any candidate is
// generated. Returns the normalized request and field-level details for
// everything that failed.
func validateRequest(raw recommendRequest) (Request, []map[string]string) {
	var details []map[string]string
	fail := func(field, issue string) {
		details = append(details, map[string]string{"field": field, "issue": issue})
	}

	if raw.UserID == nil {
		fail("user_id", "required")
	}
	if strings.TrimSpace(raw.Purpose) == "" {
		fail("purpose", "required")
	}
	if raw.Attendees <= 0 {
		fail("attendees", "must be positive")
	}

	targetDate, err := parseTargetDate(raw.TargetDate)
	if err != nil {
		fail("target_date", err.Error())
	}

	if len(raw.TargetHours) == 0 {
		fail("target_hours", "must not be empty")
	}
	for _, hour := range raw.TargetHours {
		if hour < 0 || hour > 23 {
			fail("target_hours", fmt.Sprintf("hour %d out of range [0,23]", hour))
			break
		}
	}

	topK := DefaultTopK
	if raw.TopK != nil {
		if *raw.TopK <= 0 {
			fail("top_k", "must be positive")
		} else {
			topK = *raw.TopK
		}
	}

	if len(details) > 0 {
		return Request{}, details
	}
	return Request{
		UserID:      *raw.UserID,
		Purpose:     strings.TrimSpace(raw.Purpose),
		Attendees:   raw.Attendees,
		TargetDate:  targetDate,
		TargetHours: raw.TargetHours,
		TopK:        topK,
	}, nil
}

func parseTargetDate(raw string) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, errors.New("required")
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("must be an ISO-8601 date or timestamp")
}
