package history

import "time"

// SlotRequest is one served recommendation request, kept for auditing and
// future retraining datasets.
type SlotRequest struct {
	ID             string    `json:"id"`
	UserID         int       `json:"user_id"`
	Purpose        string    `json:"purpose"`
	Attendees      int       `json:"attendees"`
	TargetDate     time.Time `json:"target_date"`
	RequestedHours []int     `json:"requested_hours"`
	Returned       int       `json:"returned"`
	TopProbability float64   `json:"top_probability"`
	CreatedAt      time.Time `json:"created_at"`
}
