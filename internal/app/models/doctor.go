package models

type Doctor struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Specialization *string `json:"specialization,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	IsActive       bool    `json:"is_active"`
	TimeModel
}
