package models

import "time"

// LedgerEvent is published after a ledger mutation commits.
type LedgerEvent struct {
	ID         string      `json:"id"`
	Type       string      `json:"type"`
	RequestID  string      `json:"request_id,omitempty"`
	PatientID  string      `json:"patient_id"`
	PackageID  string      `json:"package_id,omitempty"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload,omitempty"`
}
