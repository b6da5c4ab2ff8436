package models

import "github.com/shopspring/decimal"

// Patient is the aggregate the status projector writes to. ReleasedSessions
// and CarryAmount mirror the active package and are kept for older clients.
type Patient struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Phone            string          `json:"phone"`
	Gender           *string         `json:"gender,omitempty"`
	Age              *int            `json:"age,omitempty"`
	Address          *string         `json:"address,omitempty"`
	Status           string          `json:"status"`
	ReleasedSessions int             `json:"released_sessions"`
	CarryAmount      decimal.Decimal `json:"carry_amount"`
	TimeModel
}
