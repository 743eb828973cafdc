package recommend

import (
	"strconv"
	"time"
)

// Request is a validated recommendation request. Validation happens at the
// HTTP boundary; by the time a Request reaches the service every field is
// in range and TopK is positive.
type Request struct {
	UserID      int
	Purpose     string
	Attendees   int
	TargetDate  time.Time
	TargetHours []int
	TopK        int
}

// Candidate is one (room, start-time) hypothesis for a request. Candidates
// are ephemeral: created per request, scored, and discarded once the
// response is built. Every field is fully determined by the request, the
// catalog and the derived-feature formulas.
type Candidate struct {
	UserID              int
	Purpose             string
	RoomType            string
	HasProjector        bool
	HasWhiteboard       bool
	Attendees           int
	RoomCapacity        int
	HourOfDay           int
	DayOfWeek           int
	IsWeekend           int
	IsPreferredRoom     int
	CapacityUtilization float64
	Season              int
	RoomID              string
	StartTime           time.Time
}

// Recommendation is the scored subset of a Candidate returned to callers.
type Recommendation struct {
	RoomID              string  `json:"room_id"`
	StartTime           string  `json:"start_time"`
	SuccessProbability  float64 `json:"success_probability"`
	RoomType            string  `json:"room_type"`
	RoomCapacity        int     `json:"room_capacity"`
	HasProjector        bool    `json:"has_projector"`
	HasWhiteboard       bool    `json:"has_whiteboard"`
	CapacityUtilization float64 `json:"capacity_utilization"`
}

// categoricalValue returns the raw categorical value for a schema feature
// name, matching the representation the encoder was fitted on.
func (c Candidate) categoricalValue(name string) (string, bool) {
	switch name {
	case "user_id":
		return strconv.Itoa(c.UserID), true
	case "purpose":
		return c.Purpose, true
	case "room_type":
		return c.RoomType, true
	default:
		return "", false
	}
}

// numericValue returns the numeric value for a schema feature name.
func (c Candidate) numericValue(name string) (float64, bool) {
	switch name {
	case "has_projector":
		return boolToFloat(c.HasProjector), true
	case "has_whiteboard":
		return boolToFloat(c.HasWhiteboard), true
	case "attendees":
		return float64(c.Attendees), true
	case "room_capacity":
		return float64(c.RoomCapacity), true
	case "hour_of_day":
		return float64(c.HourOfDay), true
	case "day_of_week":
		return float64(c.DayOfWeek), true
	case "is_weekend":
		return float64(c.IsWeekend), true
	case "is_preferred_room":
		return float64(c.IsPreferredRoom), true
	case "capacity_utilization":
		return c.CapacityUtilization, true
	case "season":
		return float64(c.Season), true
	default:
		return 0, false
	}
}

func boolToFloat(v bool) float64 {
	if v {
		return 1
	}
	return 0
}
