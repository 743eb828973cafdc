package recommend

import (
	"time"

	"roomrec-backend/internal/catalog"
)

// Generator expands a request into the full rooms x hours candidate space.
type Generator struct {
	Catalog *catalog.Catalog
}

// Generate emits one candidate per (hour, room) pair: outer loop over the
// requested hours in caller order, inner loop over the catalog's room
// order. No feasibility filtering happens here; the classifier is the
// arbiter of viability. Empty hours or an empty catalog yield an empty
// slice, which is a valid outcome, not an error.
func (g *Generator) Generate(userID int, purpose string, attendees int, targetDate time.Time, targetHours []int) []Candidate {
	rooms := g.Catalog.Rooms()
	preferred := make(map[string]bool)
	for _, id := range g.Catalog.PreferredRooms(userID) {
		preferred[id] = true
	}

	candidates := make([]Candidate, 0, len(targetHours)*len(rooms))
	for _, hour := range targetHours {
		start := time.Date(
			targetDate.Year(), targetDate.Month(), targetDate.Day(),
			hour, 0, 0, 0, targetDate.Location(),
		)
		dayOfWeek := isoWeekday(start)
		isWeekend := 0
		if dayOfWeek >= 5 {
			isWeekend = 1
		}
		// Month-mod season: 1=Dec-Feb, 2=Mar-May, 3=Jun-Aug, 4=Sep-Nov.
		// The model was trained on this exact mapping.
		season := (int(start.Month())%12)/3 + 1

		for _, room := range rooms {
			isPreferred := 0
			if preferred[room.ID] {
				isPreferred = 1
			}
			candidates = append(candidates, Candidate{
				UserID:              userID,
				Purpose:             purpose,
				RoomType:            room.Type,
				HasProjector:        room.HasProjector,
				HasWhiteboard:       room.HasWhiteboard,
				Attendees:           attendees,
				RoomCapacity:        room.Capacity,
				HourOfDay:           hour,
				DayOfWeek:           dayOfWeek,
				IsWeekend:           isWeekend,
				IsPreferredRoom:     isPreferred,
				CapacityUtilization: float64(attendees) / float64(room.Capacity),
				Season:              season,
				RoomID:              room.ID,
				StartTime:           start,
			})
		}
	}
	return candidates
}

// isoWeekday maps to 0=Monday .. 6=Sunday.
func isoWeekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
