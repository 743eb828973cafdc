package catalog

import (
	"sort"
	"strconv"
)

// Catalog is the static room and user-preference lookup. It is built once
// at artifact load and never mutated afterwards, so concurrent readers need
// no locking.
type Catalog struct {
	rooms map[string]Attributes
	order []string
	prefs map[string][]string
}

// New builds a catalog from the artifact tables. Room iteration order is
// fixed at construction by sorting room ids, since JSON object order is not
// observable through a Go map.
func New(rooms map[string]Attributes, prefs map[string][]string) *Catalog {
	order := make([]string, 0, len(rooms))
	for id := range rooms {
		order = append(order, id)
	}
	sort.Strings(order)

	copied := make(map[string]Attributes, len(rooms))
	for id, attrs := range rooms {
		copied[id] = attrs
	}
	prefCopy := make(map[string][]string, len(prefs))
	for user, roomIDs := range prefs {
		prefCopy[user] = append([]string(nil), roomIDs...)
	}

	return &Catalog{rooms: copied, order: order, prefs: prefCopy}
}

// Room returns the room for the given id. A missing id is not an error;
// callers treat it as "no recommendation possible for that room".
func (c *Catalog) Room(id string) (Room, bool) {
	attrs, ok := c.rooms[id]
	if !ok {
		return Room{}, false
	}
	return Room{ID: id, Attributes: attrs}, true
}

// Rooms returns every room in the catalog's fixed iteration order.
func (c *Catalog) Rooms() []Room {
	out := make([]Room, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, Room{ID: id, Attributes: c.rooms[id]})
	}
	return out
}

// RoomCount returns the number of rooms in the catalog.
func (c *Catalog) RoomCount() int {
	return len(c.order)
}

// RoomTable returns the full id -> attributes table for the rooms endpoint.
func (c *Catalog) RoomTable() map[string]Attributes {
	out := make(map[string]Attributes, len(c.rooms))
	for id, attrs := range c.rooms {
		out[id] = attrs
	}
	return out
}

// PreferredRooms returns the user's preferred room ids in stored order.
// Unknown users get an empty list, never an error.
func (c *Catalog) PreferredRooms(userID int) []string {
	prefs, ok := c.prefs[strconv.Itoa(userID)]
	if !ok {
		return []string{}
	}
	return append([]string(nil), prefs...)
}
