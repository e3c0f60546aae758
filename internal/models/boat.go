package models

import "time"

// Boat belongs to exactly one account (Owner). Membership is mirrored in
// the owner's Boats set.
type Boat struct {
	ID    string `json:"id"`
	Rev   int64  `json:"-"`
	Owner string `json:"owner"`

	BoatName         string  `json:"boat_name"`
	RegisterNr       string  `json:"register_nr,omitempty"`
	SailSign         string  `json:"sail_sign,omitempty"`
	HomePort         string  `json:"home_port,omitempty"`
	YachtClub        string  `json:"yacht_club,omitempty"`
	CallSign         string  `json:"call_sign,omitempty"`
	Type             string  `json:"type,omitempty"`
	ConstructionYear int     `json:"construction_year,omitempty"`
	Length           float64 `json:"length,omitempty"`
	Width            float64 `json:"width,omitempty"`
	Draft            float64 `json:"draft,omitempty"`
	MastHeight       float64 `json:"mast_height,omitempty"`
	Displacement     float64 `json:"displacement,omitempty"`
	Rigging          string  `json:"rigging,omitempty"`
	Engine           string  `json:"engine,omitempty"`
	TankSize         float64 `json:"tank_size,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UpdateBoatRequest struct {
	BoatName         *string  `json:"boat_name,omitempty"`
	RegisterNr       *string  `json:"register_nr,omitempty"`
	SailSign         *string  `json:"sail_sign,omitempty"`
	HomePort         *string  `json:"home_port,omitempty"`
	YachtClub        *string  `json:"yacht_club,omitempty"`
	CallSign         *string  `json:"call_sign,omitempty"`
	Type             *string  `json:"type,omitempty"`
	ConstructionYear *int     `json:"construction_year,omitempty"`
	Length           *float64 `json:"length,omitempty"`
	Width            *float64 `json:"width,omitempty"`
	Draft            *float64 `json:"draft,omitempty"`
	MastHeight       *float64 `json:"mast_height,omitempty"`
	Displacement     *float64 `json:"displacement,omitempty"`
	Rigging          *string  `json:"rigging,omitempty"`
	Engine           *string  `json:"engine,omitempty"`
	TankSize         *float64 `json:"tank_size,omitempty"`
}
