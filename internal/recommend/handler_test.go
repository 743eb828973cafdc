package recommend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"roomrec-backend/internal/artifacts"
	"roomrec-backend/internal/history"
)

func newRecommendRouter(holder *artifacts.Holder, repo history.Repo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api/v1")
	NewHandler(NewService(holder, repo)).RegisterRoutes(api)
	return router
}

func postRecommend(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/recommend", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

type recommendResponse struct {
	Success              bool             `json:"success"`
	Recommendations      []Recommendation `json:"recommendations"`
	TotalRecommendations int              `json:"total_recommendations"`
}

func TestRecommendEndToEnd(t *testing.T) {
	repo := history.NewMemoryRepo()
	router := newRecommendRouter(testHolder(t, utilizationStump()), repo)

	resp := postRecommend(router, `{
		"user_id": 5,
		"purpose": "Team meeting",
		"attendees": 10,
		"target_date": "2024-03-01",
		"target_hours": [9, 14],
		"top_k": 3
	}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var body recommendResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !body.Success || body.TotalRecommendations != 3 || len(body.Recommendations) != 3 {
		t.Fatalf("unexpected body: %+v", body)
	}
	// 10 attendees overload R1 (cap 8) but fit R2 (cap 15), so both R2
	// slots outrank R1.
	if body.Recommendations[0].RoomID != "R2" || body.Recommendations[1].RoomID != "R2" {
		t.Fatalf("expected R2 slots first, got %+v", body.Recommendations)
	}
	for i, rec := range body.Recommendations {
		start, err := time.Parse(time.RFC3339, rec.StartTime)
		if err != nil {
			t.Fatalf("rec %d start_time: %v", i, err)
		}
		if h := start.Hour(); h != 9 && h != 14 {
			t.Fatalf("rec %d starts at hour %d, requested [9, 14]", i, h)
		}
		if i > 0 && rec.SuccessProbability > body.Recommendations[i-1].SuccessProbability {
			t.Fatalf("recommendations not sorted at %d", i)
		}
	}

	// The served request lands in history with the top probability.
	records, err := repo.ListRecent(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 history record, got %d", len(records))
	}
	rec := records[0]
	if rec.UserID != 5 || rec.Returned != 3 || rec.TopProbability != body.Recommendations[0].SuccessProbability {
		t.Fatalf("unexpected history record: %+v", rec)
	}
}

func TestRecommendDefaultTopK(t *testing.T) {
	router := newRecommendRouter(testHolder(t, utilizationStump()), nil)

	resp := postRecommend(router, `{
		"user_id": 5,
		"purpose": "Team meeting",
		"attendees": 4,
		"target_date": "2024-03-01T00:00:00Z",
		"target_hours": [9, 14]
	}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var body recommendResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	// 2 hours x 2 rooms, all under the default cap of 10.
	if body.TotalRecommendations != 4 {
		t.Fatalf("expected all 4 candidates returned, got %d", body.TotalRecommendations)
	}
}

func TestRecommendValidation(t *testing.T) {
	router := newRecommendRouter(testHolder(t, utilizationStump()), nil)

	cases := []struct {
		name string
		body string
	}{
		{"missing user_id", `{"purpose":"Team meeting","attendees":4,"target_date":"2024-03-01","target_hours":[9]}`},
		{"empty purpose", `{"user_id":5,"purpose":"  ","attendees":4,"target_date":"2024-03-01","target_hours":[9]}`},
		{"zero attendees", `{"user_id":5,"purpose":"Team meeting","attendees":0,"target_date":"2024-03-01","target_hours":[9]}`},
		{"bad date", `{"user_id":5,"purpose":"Team meeting","attendees":4,"target_date":"March 1st","target_hours":[9]}`},
		{"empty hours", `{"user_id":5,"purpose":"Team meeting","attendees":4,"target_date":"2024-03-01","target_hours":[]}`},
		{"hour out of range", `{"user_id":5,"purpose":"Team meeting","attendees":4,"target_date":"2024-03-01","target_hours":[9,24]}`},
		{"negative hour", `{"user_id":5,"purpose":"Team meeting","attendees":4,"target_date":"2024-03-01","target_hours":[-1]}`},
		{"zero top_k", `{"user_id":5,"purpose":"Team meeting","attendees":4,"target_date":"2024-03-01","target_hours":[9],"top_k":0}`},
		{"malformed json", `{"user_id": 5,`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := postRecommend(router, tc.body)
			if resp.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", resp.Code, resp.Body.String())
			}
			var body struct {
				Error struct {
					Code string `json:"code"`
				} `json:"error"`
			}
			if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if body.Error.Code != ErrorCodeValidation {
				t.Fatalf("expected code %q, got %q", ErrorCodeValidation, body.Error.Code)
			}
		})
	}
}

func TestRecommendWhileDegraded(t *testing.T) {
	router := newRecommendRouter(artifacts.NewHolder(), nil)

	resp := postRecommend(router, `{
		"user_id": 5,
		"purpose": "Team meeting",
		"attendees": 4,
		"target_date": "2024-03-01",
		"target_hours": [9]
	}`)
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d: %s", resp.Code, resp.Body.String())
	}
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Error.Code != ErrorCodeUnavailable {
		t.Fatalf("expected code %q, got %q", ErrorCodeUnavailable, body.Error.Code)
	}
}

func TestRecommendInferenceFailure(t *testing.T) {
	// Model width disagrees with the schema and encoder.
	router := newRecommendRouter(testHolder(t, constantModel(7)), nil)

	resp := postRecommend(router, `{
		"user_id": 5,
		"purpose": "Team meeting",
		"attendees": 4,
		"target_date": "2024-03-01",
		"target_hours": [9]
	}`)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d: %s", resp.Code, resp.Body.String())
	}
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Error.Code != ErrorCodeInference {
		t.Fatalf("expected code %q, got %q", ErrorCodeInference, body.Error.Code)
	}
}

func TestRecommendHistoryFailureDoesNotFailRequest(t *testing.T) {
	router := newRecommendRouter(testHolder(t, utilizationStump()), failingRepo{})

	resp := postRecommend(router, `{
		"user_id": 5,
		"purpose": "Team meeting",
		"attendees": 4,
		"target_date": "2024-03-01",
		"target_hours": [9]
	}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 despite history failure, got %d: %s", resp.Code, resp.Body.String())
	}
}

type failingRepo struct{}

func (failingRepo) Create(context.Context, history.SlotRequest) error {
	return context.DeadlineExceeded
}

func (failingRepo) ListRecent(context.Context, int) ([]history.SlotRequest, error) {
	return nil, context.DeadlineExceeded
}
