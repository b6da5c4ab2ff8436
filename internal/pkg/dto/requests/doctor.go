package requests

type RegisterDoctor struct {
	Name           string  `json:"name" validate:"required,min=2,max=100"`
	Specialization *string `json:"specialization" validate:"omitempty,max=100"`
	Phone          *string `json:"phone" validate:"omitempty,phone_number"`
}

type UpdateDoctor struct {
	Name           *string `json:"name" validate:"omitempty,min=2,max=100"`
	Specialization *string `json:"specialization" validate:"omitempty,max=100"`
	Phone          *string `json:"phone" validate:"omitempty,phone_number"`
	IsActive       *bool   `json:"is_active"`
}
