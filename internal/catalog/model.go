package catalog

// Attributes are the per-room fields carried in the room lookup artifact
// and echoed back on recommendation and room endpoints.
type Attributes struct {
	Capacity      int    `json:"room_capacity"`
	Type          string `json:"room_type"`
	HasProjector  bool   `json:"has_projector"`
	HasWhiteboard bool   `json:"has_whiteboard"`
}

// Room pairs a room identifier with its attributes.
type Room struct {
	ID string
	Attributes
}
