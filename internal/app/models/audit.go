package models

import "time"

// AuditRecord is one entry of the ledger audit trail.
type AuditRecord struct {
	ID         string                 `bson:"_id" json:"id"`
	RequestID  string                 `bson:"request_id" json:"request_id"`
	Action     string                 `bson:"action" json:"action"`
	EntityType string                 `bson:"entity_type" json:"entity_type"`
	EntityID   string                 `bson:"entity_id" json:"entity_id"`
	PatientID  string                 `bson:"patient_id" json:"patient_id"`
	ActorID    string                 `bson:"actor_id,omitempty" json:"actor_id,omitempty"`
	Details    map[string]interface{} `bson:"details,omitempty" json:"details,omitempty"`
	OccurredAt time.Time              `bson:"occurred_at" json:"occurred_at"`
}
