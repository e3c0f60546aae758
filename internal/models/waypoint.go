package models

import "time"

// Waypoint is a single logbook entry recorded against a boat.
type Waypoint struct {
	ID   string `json:"id"`
	Rev  int64  `json:"-"`
	Boat string `json:"boat"`

	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Note      string  `json:"note,omitempty"`

	// Navigation data at the moment of the entry.
	BTM       float64 `json:"btm,omitempty"` // bearing to mark
	DTM       float64 `json:"dtm,omitempty"` // distance to mark
	COG       float64 `json:"cog,omitempty"` // course over ground
	SOG       float64 `json:"sog,omitempty"` // speed over ground
	HeadedFor string  `json:"headed_for,omitempty"`
	Maneuver  string  `json:"maneuver,omitempty"`
	ForeSail  string  `json:"foresail,omitempty"`
	MainSail  string  `json:"mainsail,omitempty"`

	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UpdateWaypointRequest struct {
	Name      *string  `json:"name,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Note      *string  `json:"note,omitempty"`
	BTM       *float64 `json:"btm,omitempty"`
	DTM       *float64 `json:"dtm,omitempty"`
	COG       *float64 `json:"cog,omitempty"`
	SOG       *float64 `json:"sog,omitempty"`
	HeadedFor *string  `json:"headed_for,omitempty"`
	Maneuver  *string  `json:"maneuver,omitempty"`
	ForeSail  *string  `json:"foresail,omitempty"`
	MainSail  *string  `json:"mainsail,omitempty"`
}
