package models

// Identity is the verified caller of a request.
type Identity struct {
	UserID string
	Role   string
}
