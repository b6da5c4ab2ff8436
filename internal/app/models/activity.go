package models

type Activity struct {
	Action     string
	EntityType string
	EntityID   string
	PatientID  string
	PackageID  string
	ActorID    string
	Details    map[string]interface{}
}
